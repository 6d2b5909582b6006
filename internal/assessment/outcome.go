package assessment

import "github.com/jonathan/feedback-quality/internal/types"

// OutcomeKind says how an attempt at a model-backed evaluation ended.
type OutcomeKind int

// Outcome kinds. Every kind except OutcomeSuccess resolves to the rule-based result.
const (
	// OutcomeSuccess carries an extracted result
	OutcomeSuccess OutcomeKind = iota
	// OutcomeSkipped means the local pre-check already found abusive or non-constructive content
	OutcomeSkipped
	// OutcomeNotConfigured means no model client or credential is available
	OutcomeNotConfigured
	// OutcomeUnavailable covers network failures, timeouts and non-2xx replies
	OutcomeUnavailable
	// OutcomeMalformed means the reply payload held no usable text
	OutcomeMalformed
	// OutcomeRefused means the reply was too short or declined the task
	OutcomeRefused
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeNotConfigured:
		return "not_configured"
	case OutcomeUnavailable:
		return "unavailable"
	case OutcomeMalformed:
		return "malformed"
	case OutcomeRefused:
		return "refused"
	default:
		return "unknown"
	}
}

// Outcome is the result of one evaluation attempt. Result is set only for
// OutcomeSuccess; Err holds the cause for the failure kinds.
type Outcome struct {
	Kind   OutcomeKind
	Result *types.EvaluationResult
	Err    error
}
