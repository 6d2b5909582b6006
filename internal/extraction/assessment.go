package extraction

import "strings"

// ExtractAssessment returns the overall-assessment section as one paragraph,
// or "" when the reply has none.
func ExtractAssessment(raw string) string {
	lines, _ := splitSections(raw).of(sectionAssessment)

	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = stripMarkup(line); line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, " ")
}
