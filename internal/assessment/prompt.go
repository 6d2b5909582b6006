package assessment

import (
	"fmt"
	"strings"

	"github.com/jonathan/feedback-quality/internal/prompts"
	"github.com/jonathan/feedback-quality/internal/types"
)

// BuildPrompt renders the review prompt for a response set. Questions are
// numbered by types.ResponseSet.Ordered, the same numbering the extractor
// resolves "Question N" against. An empty assessor falls back to the set's own.
func BuildPrompt(set *types.ResponseSet, assessor types.AssessorType) string {
	if assessor == "" {
		assessor = set.AssessorType
	}

	template := prompts.MustGet(prompts.FeedbackFile, prompts.KeyEvaluateFeedback)
	return prompts.Format(template, map[string]string{
		"Assessor":  assessor.Label(),
		"Responses": formatResponses(set),
	})
}

func formatResponses(set *types.ResponseSet) string {
	var sb strings.Builder
	for _, o := range set.Ordered() {
		item := o.Item
		switch item.QuestionType {
		case types.QuestionRating:
			if item.Rating != nil {
				fmt.Fprintf(&sb, "Question %d: %s → Rating: %d/5\n", o.Ordinal, item.Label(), *item.Rating)
			} else {
				fmt.Fprintf(&sb, "Question %d: %s → Rating: not provided\n", o.Ordinal, item.Label())
			}
		default:
			fmt.Fprintf(&sb, "Question %d: %s → Response: %q\n", o.Ordinal, item.Label(), strings.TrimSpace(item.Text))
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}
