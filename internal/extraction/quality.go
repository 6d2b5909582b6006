package extraction

import (
	"regexp"
	"strings"

	"github.com/jonathan/feedback-quality/internal/types"
)

var qualityMarker = regexp.MustCompile(`(?i)quality[\s*_]*:[\s*_]*([a-z]+(?:[ _-]improvement)?)`)

var qualitySynonyms = map[string]types.Quality{
	"good":              types.QualityGood,
	"excellent":         types.QualityGood,
	"great":             types.QualityGood,
	"high":              types.QualityGood,
	"needs_improvement": types.QualityNeedsImprovement,
	"fair":              types.QualityNeedsImprovement,
	"average":           types.QualityNeedsImprovement,
	"moderate":          types.QualityNeedsImprovement,
	"acceptable":        types.QualityNeedsImprovement,
	"poor":              types.QualityPoor,
	"bad":               types.QualityPoor,
	"low":               types.QualityPoor,
	"unacceptable":      types.QualityPoor,
	"incomplete":        types.QualityIncomplete,
}

// Checked in order after refusal language; first hit wins.
var qualityKeywords = []struct {
	keyword string
	quality types.Quality
}{
	{"offensive", types.QualityPoor},
	{"inappropriate", types.QualityPoor},
	{"unprofessional", types.QualityPoor},
	{"too general", types.QualityPoor},
	{"needs improvement", types.QualityNeedsImprovement},
	{"needs_improvement", types.QualityNeedsImprovement},
	{"too brief", types.QualityNeedsImprovement},
	{"could be improved", types.QualityNeedsImprovement},
	{"lacks specific", types.QualityNeedsImprovement},
}

// QualityMarker reads an explicit "QUALITY: <word>" marker. The second result
// is false when there is no marker or its word is not a known label or synonym.
func QualityMarker(raw string) (types.Quality, bool) {
	for _, m := range qualityMarker.FindAllStringSubmatch(raw, -1) {
		word := strings.ToLower(m[1])
		word = strings.NewReplacer(" ", "_", "-", "_").Replace(word)
		if q, ok := qualitySynonyms[word]; ok {
			return q, true
		}
	}
	return "", false
}

// ExtractQuality returns the marker quality, falling back to a keyword scan
// of the full text and then to good.
func ExtractQuality(raw string) types.Quality {
	if q, ok := QualityMarker(raw); ok {
		return q
	}
	if _, refused := refusalPhrase(raw); refused {
		return types.QualityPoor
	}

	lower := strings.ToLower(raw)
	for _, kw := range qualityKeywords {
		if strings.Contains(lower, kw.keyword) {
			return kw.quality
		}
	}
	return types.QualityGood
}
