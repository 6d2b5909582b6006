// Package assessment composes the feedback quality engine: it builds the
// review prompt, calls the language model, extracts its verdict and falls
// back to the rule-based evaluator whenever the model path cannot be used.
package assessment

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/jonathan/feedback-quality/internal/analysis"
	"github.com/jonathan/feedback-quality/internal/evaluation"
	"github.com/jonathan/feedback-quality/internal/extraction"
	"github.com/jonathan/feedback-quality/internal/llm"
	"github.com/jonathan/feedback-quality/internal/types"
)

// TracerName is the instrumentation name of the orchestrator's spans.
const TracerName = "github.com/jonathan/feedback-quality/assessment"

// Orchestrator chooses between the model-backed and the rule-based evaluation.
// It holds no per-call state and is safe for concurrent use.
type Orchestrator struct {
	analyzer  *analysis.Analyzer
	extractor *extraction.Extractor
	client    llm.Client
	tier      llm.ModelTier
	logger    *zap.Logger
	tracer    trace.Tracer
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithClient sets the model client. Without one every call uses the rule-based path.
func WithClient(client llm.Client) Option {
	return func(o *Orchestrator) { o.client = client }
}

// WithLexicon replaces the term lists used by the analyzer and the extractor fallback.
func WithLexicon(lexicon analysis.Lexicon) Option {
	return func(o *Orchestrator) {
		o.analyzer = analysis.NewAnalyzer(lexicon)
		o.extractor = extraction.NewExtractor(lexicon)
	}
}

// WithTier selects the model tier used for reviews.
func WithTier(tier llm.ModelTier) Option {
	return func(o *Orchestrator) { o.tier = tier }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithTracerProvider sets the provider spans are created from.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *Orchestrator) { o.tracer = tp.Tracer(TracerName) }
}

// NewOrchestrator creates an Orchestrator over the default lexicon.
func NewOrchestrator(opts ...Option) *Orchestrator {
	o := &Orchestrator{
		analyzer:  analysis.NewDefaultAnalyzer(),
		extractor: extraction.NewDefaultExtractor(),
		tier:      llm.TierStandard,
		logger:    zap.NewNop(),
		tracer:    otel.Tracer(TracerName),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// RuleBased evaluates a set with the analyzer and rule cascade only. It performs no I/O.
func (o *Orchestrator) RuleBased(set *types.ResponseSet) *types.EvaluationResult {
	return evaluation.Evaluate(o.analyzer.Analyze(set))
}

// Orchestrate evaluates a set, using the model when it is configured and the
// local pre-check finds nothing abusive. It always returns a result.
func (o *Orchestrator) Orchestrate(ctx context.Context, set *types.ResponseSet, assessor types.AssessorType) *types.EvaluationResult {
	ctx, span := o.tracer.Start(ctx, "assessment.orchestrate")
	defer span.End()

	report := o.analyzer.Analyze(set)
	baseline := evaluation.Evaluate(report)

	outcome := o.attempt(ctx, set, assessor, report)
	o.logOutcome(outcome)

	result := baseline
	if outcome.Kind == OutcomeSuccess {
		result = outcome.Result
	}

	span.SetAttributes(
		attribute.Bool("feedback.used_ai", result.UsedAI),
		attribute.String("feedback.quality", string(result.Quality)),
		attribute.String("feedback.outcome", outcome.Kind.String()),
	)
	if outcome.Err != nil && outcome.Kind != OutcomeNotConfigured {
		span.RecordError(outcome.Err)
		span.SetStatus(codes.Error, outcome.Kind.String())
	}
	return result
}

// attempt runs the model path and reports how it ended.
func (o *Orchestrator) attempt(ctx context.Context, set *types.ResponseSet, assessor types.AssessorType, report *types.AnalysisReport) Outcome {
	if set == nil || len(set.Items) == 0 {
		return Outcome{Kind: OutcomeSkipped}
	}
	if report.HasOffensiveLanguage || len(report.NonConstructivePhrases) > 0 {
		return Outcome{Kind: OutcomeSkipped}
	}
	if o.client == nil {
		return Outcome{Kind: OutcomeNotConfigured, Err: &llm.ConfigError{Message: "no model client configured"}}
	}

	raw, err := o.client.GenerateContent(ctx, BuildPrompt(set, assessor), o.tier)
	if err != nil {
		return Outcome{Kind: classify(err), Err: err}
	}

	result, err := o.extractor.Extract(raw, set)
	if err != nil {
		return Outcome{Kind: OutcomeRefused, Err: err}
	}
	return Outcome{Kind: OutcomeSuccess, Result: result}
}

// classify maps a client error to an outcome. Anything unrecognized,
// including context cancellation, counts as unavailable.
func classify(err error) OutcomeKind {
	var malformed *llm.MalformedResponseError
	switch {
	case llm.IsConfigError(err):
		return OutcomeNotConfigured
	case errors.As(err, &malformed):
		return OutcomeMalformed
	default:
		return OutcomeUnavailable
	}
}

func (o *Orchestrator) logOutcome(outcome Outcome) {
	kind := zap.String("outcome", outcome.Kind.String())
	switch outcome.Kind {
	case OutcomeSuccess:
		o.logger.Debug("model evaluation succeeded", kind)
	case OutcomeSkipped:
		o.logger.Debug("pre-check flagged content; model not called", kind)
	case OutcomeNotConfigured:
		o.logger.Debug("model not configured; using rule-based evaluation", kind, zap.Error(outcome.Err))
	case OutcomeRefused:
		o.logger.Info("model declined; using rule-based evaluation", kind, zap.Error(outcome.Err))
	default:
		o.logger.Warn("model call failed; using rule-based evaluation", kind, zap.Error(outcome.Err))
	}
}
