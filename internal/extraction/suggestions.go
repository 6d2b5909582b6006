package extraction

import (
	"regexp"
	"strings"

	"github.com/jonathan/feedback-quality/internal/types"
)

const (
	minSuggestionChars = 10
	minSuggestionWords = 3
	maxSuggestions     = 5
)

var (
	listItemPattern  = regexp.MustCompile(`^\s*(?:\d+\s*[.)]|[-*•+])\s+(.+)$`)
	inlinePattern    = regexp.MustCompile(`(?i)\b(?:suggestions|recommendations|improvements)\s*:\s*([^\n]+)`)
	trailingJunk     = regexp.MustCompile(`[\s.,;:!\d]+$`)
	sentenceBoundary = regexp.MustCompile(`[;]|\.\s+`)
)

var genericSuggestions = map[types.Quality][]string{
	types.QualityGood: {
		"Keep giving specific, balanced feedback like this",
	},
	types.QualityNeedsImprovement: {
		"Add specific examples of the behaviors you observed",
		"Describe the impact of those behaviors and what could change",
	},
	types.QualityPoor: {
		"Rephrase the feedback in a respectful and professional tone",
		"Focus on observable behaviors rather than personal judgments",
	},
	types.QualityIncomplete: {
		"Answer every question before submitting your feedback",
	},
}

// ExtractSuggestions returns the model's recommendations. It reads list items
// from the recommendations section (or the whole reply when there is none),
// then inline "suggestions:" phrases, then falls back to generic suggestions
// for the given quality. The result is never empty.
func ExtractSuggestions(raw string, quality types.Quality) []string {
	secs := splitSections(raw)

	lines, ok := secs.of(sectionRecommendations)
	if !ok {
		lines = secs.excluding(sectionQuestions)
	}
	if found := listSuggestions(lines); len(found) > 0 {
		return found
	}
	if found := inlineSuggestions(raw); len(found) > 0 {
		return found
	}
	return GenericSuggestions(quality)
}

// GenericSuggestions returns the fallback suggestions for a quality label.
func GenericSuggestions(quality types.Quality) []string {
	generic, ok := genericSuggestions[quality]
	if !ok {
		generic = genericSuggestions[types.QualityNeedsImprovement]
	}
	return append([]string(nil), generic...)
}

func listSuggestions(lines []string) []string {
	var out []string
	for _, line := range lines {
		m := listItemPattern.FindStringSubmatch(emphasisPattern.ReplaceAllString(line, ""))
		if m == nil {
			continue
		}
		out = appendSuggestion(out, m[1])
	}
	return out
}

func inlineSuggestions(raw string) []string {
	var out []string
	for _, m := range inlinePattern.FindAllStringSubmatch(raw, -1) {
		for _, part := range sentenceBoundary.Split(m[1], -1) {
			out = appendSuggestion(out, part)
		}
	}
	return out
}

// appendSuggestion cleans s and appends it when it is long enough and not a
// case-insensitive duplicate.
func appendSuggestion(out []string, s string) []string {
	if len(out) >= maxSuggestions {
		return out
	}
	s = trailingJunk.ReplaceAllString(stripMarkup(s), "")
	if len(s) <= minSuggestionChars || len(strings.Fields(s)) <= minSuggestionWords {
		return out
	}
	for _, existing := range out {
		if strings.EqualFold(existing, s) {
			return out
		}
	}
	return append(out, s)
}
