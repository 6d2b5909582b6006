package assessment

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/feedback-quality/internal/evaluation"
	"github.com/jonathan/feedback-quality/internal/types"
)

// RecoveredNotice is appended to the message of a result produced after an internal failure.
const RecoveredNotice = "(Automated review could not be completed, so the standard quality check was used.)"

// Gate is the engine's entry point. It applies the campaign's AI setting and
// guarantees a well-formed result: no panic escapes EvaluateFeedback.
type Gate struct {
	orchestrator *Orchestrator
	logger       *zap.Logger
}

// NewGate creates a Gate in front of an orchestrator.
func NewGate(orchestrator *Orchestrator, logger *zap.Logger) *Gate {
	if orchestrator == nil {
		orchestrator = NewOrchestrator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{orchestrator: orchestrator, logger: logger}
}

// EvaluateFeedback evaluates a response set. With aiEnabled false the
// rule-based evaluator runs directly and no network call is made.
func (g *Gate) EvaluateFeedback(ctx context.Context, set *types.ResponseSet, assessor types.AssessorType, aiEnabled bool) (result *types.EvaluationResult) {
	defer func() {
		if r := recover(); r != nil {
			g.logger.Error("evaluation panicked; returning rule-based result",
				zap.String("panic", fmt.Sprint(r)),
				zap.Stack("stack"),
			)
			result = g.recovered(set)
		}
	}()

	if !aiEnabled {
		return g.orchestrator.RuleBased(set)
	}
	return g.orchestrator.Orchestrate(ctx, set, assessor)
}

// recovered builds the annotated rule-based result. If that also panics the
// default suggestion is returned on its own.
func (g *Gate) recovered(set *types.ResponseSet) (result *types.EvaluationResult) {
	defer func() {
		if r := recover(); r != nil {
			g.logger.Error("rule-based evaluation panicked", zap.String("panic", fmt.Sprint(r)))
			result = &types.EvaluationResult{
				Quality:          types.QualityNeedsImprovement,
				Message:          evaluation.MessageFor(types.QualityNeedsImprovement) + " " + RecoveredNotice,
				Suggestions:      []string{evaluation.SuggestionDefault},
				QuestionFeedback: map[string]string{},
			}
		}
	}()

	result = g.orchestrator.RuleBased(set)
	result.Message += " " + RecoveredNotice
	return result
}
