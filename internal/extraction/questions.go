package extraction

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/feedback-quality/internal/types"
)

var questionLine = regexp.MustCompile(`(?i)^[-*•+\s]*question\s*#?\s*(\d+)\s*(?:\([^)]*\))?\s*[:.)\-–]\s*(.+)$`)

// ExtractQuestionFeedback parses "Question N: note" lines and resolves each N
// through set.ByOrdinal. Lines in the question-specific section are preferred;
// without that section every such line in the reply is considered. Unknown
// ordinals are dropped and the first note for a question wins.
func ExtractQuestionFeedback(raw string, set *types.ResponseSet) map[string]string {
	feedback := map[string]string{}
	if set == nil {
		return feedback
	}

	lines, ok := splitSections(raw).of(sectionQuestions)
	if !ok || len(parseQuestionLines(lines, set)) == 0 {
		lines = strings.Split(raw, "\n")
	}
	for id, note := range parseQuestionLines(lines, set) {
		feedback[id] = note
	}
	return feedback
}

func parseQuestionLines(lines []string, set *types.ResponseSet) map[string]string {
	out := map[string]string{}
	for _, line := range lines {
		m := questionLine.FindStringSubmatch(stripMarkup(line))
		if m == nil {
			continue
		}
		ordinal, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		id, ok := set.ByOrdinal(ordinal)
		if !ok {
			continue
		}
		note := strings.TrimSpace(m[2])
		if _, seen := out[id]; seen || note == "" {
			continue
		}
		out[id] = note
	}
	return out
}
