// Package extraction reduces a language model's free-form review of a
// response set to the engine's structured evaluation result. Each rule
// (refusal, quality marker, suggestions, per-question notes, overall
// assessment) is an independent pure function; Extractor composes them.
package extraction

import (
	"github.com/jonathan/feedback-quality/internal/analysis"
	"github.com/jonathan/feedback-quality/internal/evaluation"
	"github.com/jonathan/feedback-quality/internal/types"
)

// Extractor turns raw model text into an EvaluationResult. It is safe for concurrent use.
type Extractor struct {
	heuristic *HeuristicNotes
}

// NewExtractor returns an Extractor whose per-question fallback uses lexicon.
func NewExtractor(lexicon analysis.Lexicon) *Extractor {
	return &Extractor{heuristic: NewHeuristicNotes(lexicon)}
}

// NewDefaultExtractor returns an Extractor over analysis.DefaultLexicon.
func NewDefaultExtractor() *Extractor {
	return NewExtractor(analysis.DefaultLexicon())
}

// Extract parses raw against the set it evaluates. A reply that is too short
// or declines the task yields a *RefusalError and no result.
func (e *Extractor) Extract(raw string, set *types.ResponseSet) (*types.EvaluationResult, error) {
	if err := DetectRefusal(raw); err != nil {
		return nil, err
	}

	quality := ExtractQuality(raw)

	message := ExtractAssessment(raw)
	if message == "" {
		message = evaluation.MessageFor(quality)
	}

	feedback := ExtractQuestionFeedback(raw, set)
	if len(feedback) == 0 {
		feedback = e.heuristic.Notes(set)
	}

	return &types.EvaluationResult{
		Quality:          quality,
		Message:          message,
		Suggestions:      ExtractSuggestions(raw, quality),
		QuestionFeedback: feedback,
		UsedAI:           true,
		RawModelText:     raw,
	}, nil
}
