package extraction

import (
	"strings"

	"github.com/jonathan/feedback-quality/internal/analysis"
	"github.com/jonathan/feedback-quality/internal/types"
)

const briefResponseWords = 5

const (
	heuristicOffensive       = "Remove offensive language and describe the specific behavior instead."
	heuristicNonConstructive = "Suggest how the person could improve rather than recommending they leave."
	heuristicBrief           = "Expand this response with more detail and a concrete example."
)

// HeuristicNotes derives per-question notes directly from the responses when
// the model supplied none. It rescans open-ended text for offensive terms,
// non-constructive phrasing and brevity, in that order of precedence.
type HeuristicNotes struct {
	offensive       []phrasePattern
	nonConstructive []phrasePattern
}

// NewHeuristicNotes builds the fallback note generator from a lexicon.
func NewHeuristicNotes(lexicon analysis.Lexicon) *HeuristicNotes {
	return &HeuristicNotes{
		offensive:       compilePhrases(lexicon.OffensiveTerms),
		nonConstructive: compilePhrases(lexicon.NonConstructivePhrases),
	}
}

// Notes returns a note for every open-ended item that needs one.
func (h *HeuristicNotes) Notes(set *types.ResponseSet) map[string]string {
	notes := map[string]string{}
	if set == nil {
		return notes
	}

	for _, item := range set.Items {
		if item.QuestionType != types.QuestionOpenEnded {
			continue
		}
		if note := h.note(item.Text); note != "" {
			notes[item.QuestionID] = note
		}
	}
	return notes
}

func (h *HeuristicNotes) note(text string) string {
	for _, p := range h.offensive {
		if p.re.MatchString(text) {
			return heuristicOffensive
		}
	}
	for _, p := range h.nonConstructive {
		if p.re.MatchString(text) {
			return heuristicNonConstructive
		}
	}
	if len(strings.Fields(text)) < briefResponseWords {
		return heuristicBrief
	}
	return ""
}
