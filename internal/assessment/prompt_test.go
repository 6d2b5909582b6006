package assessment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/feedback-quality/internal/types"
)

func TestBuildPrompt_OrdersRatingsFirst(t *testing.T) {
	set := newSet(
		openEnded("o1", "Led the migration and kept everyone informed."),
		rating("r1", 4),
		openEnded("o2", ""),
		types.FeedbackItem{QuestionID: "r2", QuestionType: types.QuestionRating, QuestionText: "Ownership"},
	)

	prompt := BuildPrompt(set, types.AssessorManager)

	assert.Contains(t, prompt, "written by a manager")
	assert.Contains(t, prompt, "Question 1: Rating r1 → Rating: 4/5")
	assert.Contains(t, prompt, "Question 2: Ownership → Rating: not provided")
	assert.Contains(t, prompt, `Question 3: Question o1 → Response: "Led the migration and kept everyone informed."`)
	assert.Contains(t, prompt, `Question 4: Question o2 → Response: ""`)
	assert.Less(t, strings.Index(prompt, "Question 1:"), strings.Index(prompt, "Question 3:"))
}

func TestBuildPrompt_InstructionBlock(t *testing.T) {
	prompt := BuildPrompt(newSet(openEnded("o1", "Great mentor.")), "")

	assert.Contains(t, prompt, "written by a peer", "falls back to the set's assessor")
	assert.Contains(t, prompt, "QUALITY: <good|needs_improvement|poor>")
	assert.Contains(t, prompt, "Overall assessment:")
	assert.Contains(t, prompt, "Recommendations:")
	assert.Contains(t, prompt, "Question-specific feedback:")
	assert.NotContains(t, prompt, "{{.")
}

func TestBuildPrompt_QuotesText(t *testing.T) {
	prompt := BuildPrompt(newSet(openEnded("o1", "Said \"ship it\"\nthen left.")), types.AssessorSelf)
	assert.Contains(t, prompt, `Response: "Said \"ship it\"\nthen left."`)
	assert.Contains(t, prompt, "self-assessment")
}
