package evaluation

import "github.com/jonathan/feedback-quality/internal/types"

// resultBuilder accumulates suggestions and notes while the rule cascade runs.
type resultBuilder struct {
	quality     types.Quality
	fired       bool
	suggestions []string
	notes       map[string]string
}

// flag records one issue kind: a single suggestion and a note for every flagged question.
// An existing note for a question is kept.
func (b *resultBuilder) flag(suggestion, note string, items []types.FlaggedItem) {
	b.fired = true
	b.suggestions = append(b.suggestions, suggestion)
	if note == "" {
		return
	}
	for _, it := range items {
		if _, exists := b.notes[it.QuestionID]; !exists {
			b.notes[it.QuestionID] = note
		}
	}
}

// downgrade lowers good to needs_improvement and leaves any worse label alone.
func (b *resultBuilder) downgrade() {
	if b.quality == types.QualityGood {
		b.quality = types.QualityNeedsImprovement
	}
}

// Evaluate applies the fixed priority cascade to an analysis report.
// The first matching condition sets the baseline; later ones only downgrade.
func Evaluate(report *types.AnalysisReport) *types.EvaluationResult {
	if report == nil {
		report = &types.AnalysisReport{}
	}

	b := &resultBuilder{
		quality: types.QualityGood,
		notes:   make(map[string]string),
	}

	if report.HasOffensiveLanguage {
		b.quality = types.QualityPoor
		b.flag(SuggestionOffensive, noteOffensive, report.OffensivePhrases)
	}

	if len(report.NonConstructivePhrases) > 0 {
		b.quality = types.QualityPoor
		b.flag(SuggestionNonConstructive, noteNonConstructive, report.NonConstructivePhrases)
	}

	if len(report.IncompleteResponses) > 0 || len(report.ShortResponses) > 0 {
		if b.quality != types.QualityPoor {
			b.quality = types.QualityNeedsImprovement
		}
		b.flag(SuggestionIncomplete, noteIncomplete, report.IncompleteResponses)
		for _, it := range report.ShortResponses {
			if _, exists := b.notes[it.QuestionID]; !exists {
				b.notes[it.QuestionID] = noteShort
			}
		}
	}

	if len(report.LongResponses) > 0 {
		b.downgrade()
		b.flag(SuggestionLong, noteLong, report.LongResponses)
	}

	if len(report.NoExamples) > 0 {
		b.downgrade()
		b.flag(SuggestionNoExamples, noteNoExamples, report.NoExamples)
	}

	if len(report.TooSpecific) > 0 {
		b.downgrade()
		b.flag(SuggestionTooSpecific, noteTooSpecific, report.TooSpecific)
	}

	if report.FeedbackBalance.TooPositive || report.FeedbackBalance.TooNegative {
		b.downgrade()
		b.flag(SuggestionBalance, "", nil)
	}

	if !b.fired {
		b.suggestions = []string{SuggestionDefault}
	}

	return &types.EvaluationResult{
		Quality:          b.quality,
		Message:          MessageFor(b.quality),
		Suggestions:      b.suggestions,
		QuestionFeedback: b.notes,
		UsedAI:           false,
	}
}
