// Package evaluation turns an analysis report into a quality verdict with remediation guidance.
package evaluation

import "github.com/jonathan/feedback-quality/internal/types"

// Fixed suggestions, one per issue kind.
const (
	SuggestionOffensive       = "Remove offensive or disrespectful language and describe the behavior you observed instead"
	SuggestionNonConstructive = "Focus on behaviors that can improve rather than recommending that the person leave or be dismissed"
	SuggestionIncomplete      = "Answer every required question with enough detail to be actionable"
	SuggestionLong            = "Keep responses focused on the most important points so they are easy to act on"
	SuggestionNoExamples      = "Support your observations with specific examples of situations you witnessed"
	SuggestionTooSpecific     = "Avoid sharing details from private or confidential conversations"
	SuggestionBalance         = "Balance your feedback by covering both strengths and areas for growth"
	SuggestionDefault         = "Continue providing balanced feedback with specific examples"
)

// Per-question remediation notes.
const (
	noteOffensive       = "This response contains language that may be considered offensive. Please rephrase it respectfully."
	noteNonConstructive = "This response suggests the person should leave or be dismissed. Describe what could improve instead."
	noteIncomplete      = "This question has not been answered."
	noteShort           = "This response is very brief. Add more detail about what you observed."
	noteLong            = "This response is very long. Consider focusing on the key points."
	noteNoExamples      = "Consider adding a specific example to illustrate this point."
	noteTooSpecific     = "This response may reveal confidential information. Please remove private details."
)

var qualityMessages = map[types.Quality]string{
	types.QualityGood:             "Your feedback is clear, constructive and ready to submit.",
	types.QualityNeedsImprovement: "Your feedback is useful but could be improved. Review the suggestions before submitting.",
	types.QualityPoor:             "Your feedback contains problems that must be addressed before it can be shared.",
	types.QualityIncomplete:       "Your feedback is incomplete. Please answer the remaining questions.",
}

// MessageFor returns the fixed summary message for a quality label.
func MessageFor(q types.Quality) string {
	if msg, ok := qualityMessages[q]; ok {
		return msg
	}
	return qualityMessages[types.QualityNeedsImprovement]
}
