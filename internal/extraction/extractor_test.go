package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/feedback-quality/internal/evaluation"
	"github.com/jonathan/feedback-quality/internal/types"
)

func intPtr(v int) *int { return &v }

// testSet presents r1, r2 (ratings) as questions 1 and 2 and o1, o2 as 3 and 4.
func testSet() *types.ResponseSet {
	return &types.ResponseSet{
		AssessorType:     types.AssessorPeer,
		TargetEmployeeID: "emp-1",
		Items: []types.FeedbackItem{
			{QuestionID: "r1", QuestionType: types.QuestionRating, QuestionText: "Communication", Rating: intPtr(4)},
			{QuestionID: "o1", QuestionType: types.QuestionOpenEnded, QuestionText: "Strengths", Text: "Great at planning and always reliable with deadlines."},
			{QuestionID: "r2", QuestionType: types.QuestionRating, QuestionText: "Teamwork", Rating: intPtr(3)},
			{QuestionID: "o2", QuestionType: types.QuestionOpenEnded, QuestionText: "Growth areas", Text: "Could be better."},
		},
	}
}

const wellFormedReply = `QUALITY: needs_improvement

Overall assessment:
The feedback is respectful but several answers are too general to act on.

Recommendations:
1. Add a concrete example for each strength you mention.
2. **Describe the impact** of missed deadlines on the team.
3. Suggest one specific behavior the person could change next quarter.

Question-specific feedback:
Question 3: Mention a specific project where this happened.
Question 4: Explain what "better" would look like.
`

func TestExtract_WellFormedReply(t *testing.T) {
	result, err := NewDefaultExtractor().Extract(wellFormedReply, testSet())
	require.NoError(t, err)

	assert.Equal(t, types.QualityNeedsImprovement, result.Quality)
	assert.Equal(t, "The feedback is respectful but several answers are too general to act on.", result.Message)
	assert.Equal(t, []string{
		"Add a concrete example for each strength you mention",
		"Describe the impact of missed deadlines on the team",
		"Suggest one specific behavior the person could change next quarter",
	}, result.Suggestions)
	assert.Equal(t, map[string]string{
		"o1": "Mention a specific project where this happened.",
		"o2": `Explain what "better" would look like.`,
	}, result.QuestionFeedback)
	assert.True(t, result.UsedAI)
	assert.Equal(t, wellFormedReply, result.RawModelText)
}

func TestExtract_RoundTripAcrossQualities(t *testing.T) {
	set := testSet()
	for _, q := range []types.Quality{types.QualityGood, types.QualityNeedsImprovement, types.QualityPoor} {
		reply := "QUALITY: " + string(q) + "\n\nOverall assessment:\nA short summary of how useful this feedback is.\n\n" +
			"Recommendations:\n1. Keep the focus on observable behaviors at work.\n\n" +
			"Question-specific feedback:\nQuestion 1: The rating needs a supporting comment.\nQuestion 4: Give one concrete growth area.\n"

		result, err := NewDefaultExtractor().Extract(reply, set)
		require.NoError(t, err)
		assert.Equal(t, q, result.Quality)
		assert.ElementsMatch(t, []string{"r1", "o2"}, keys(result.QuestionFeedback))
	}
}

func TestExtract_NoAssessmentUsesFixedMessage(t *testing.T) {
	reply := "QUALITY: good\n\nRecommendations:\n1. Keep citing examples from real projects you shared.\n"

	result, err := NewDefaultExtractor().Extract(reply, testSet())
	require.NoError(t, err)
	assert.Equal(t, evaluation.MessageFor(types.QualityGood), result.Message)
}

func TestExtract_HeuristicNotesWithoutQuestionLines(t *testing.T) {
	reply := "QUALITY: needs_improvement\n\nThe feedback is polite but one answer is far too brief to help anyone."

	result, err := NewDefaultExtractor().Extract(reply, testSet())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"o2": heuristicBrief}, result.QuestionFeedback)
	assert.NotEmpty(t, result.Suggestions)
}

func TestExtract_Refusal(t *testing.T) {
	result, err := NewDefaultExtractor().Extract("No.", testSet())
	assert.Nil(t, result)
	assert.True(t, IsRefusal(err))

	_, err = NewDefaultExtractor().Extract("I'm sorry, but I cannot analyze feedback that names a real colleague in this way.", testSet())
	assert.True(t, IsRefusal(err))
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
