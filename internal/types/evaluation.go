package types

// Quality is the overall verdict on a response set.
type Quality string

// Quality labels
const (
	QualityGood             Quality = "good"
	QualityNeedsImprovement Quality = "needs_improvement"
	QualityPoor             Quality = "poor"
	QualityIncomplete       Quality = "incomplete"
)

// FlaggedItem records a question that triggered a check, with the matched phrase when there is one.
type FlaggedItem struct {
	QuestionID string `json:"question_id"`
	Phrase     string `json:"phrase,omitempty"`
}

// FeedbackBalance tallies the sentiment of open-ended responses.
type FeedbackBalance struct {
	PositiveCount int  `json:"positive_count"`
	NegativeCount int  `json:"negative_count"`
	NeutralCount  int  `json:"neutral_count"`
	TooPositive   bool `json:"too_positive"`
	TooNegative   bool `json:"too_negative"`
}

// AnalysisReport is the output of the linguistic scan. It is derived per call and never persisted.
type AnalysisReport struct {
	HasOffensiveLanguage   bool            `json:"has_offensive_language"`
	OffensivePhrases       []FlaggedItem   `json:"offensive_phrases"`
	NonConstructivePhrases []FlaggedItem   `json:"non_constructive_phrases"`
	IncompleteResponses    []FlaggedItem   `json:"incomplete_responses"`
	ShortResponses         []FlaggedItem   `json:"short_responses"`
	LongResponses          []FlaggedItem   `json:"long_responses"`
	NoExamples             []FlaggedItem   `json:"no_examples"`
	TooSpecific            []FlaggedItem   `json:"too_specific"`
	FeedbackBalance        FeedbackBalance `json:"feedback_balance"`
	TotalResponseCount     int             `json:"total_response_count"`
	TotalOpenEndedCount    int             `json:"total_open_ended_count"`
	TotalRatingCount       int             `json:"total_rating_count"`
	AverageRating          float64         `json:"average_rating"`
}

// EvaluationResult is the engine's structured verdict, identical in shape for both evaluation paths.
type EvaluationResult struct {
	Quality          Quality           `json:"quality"`
	Message          string            `json:"message"`
	Suggestions      []string          `json:"suggestions"`
	QuestionFeedback map[string]string `json:"question_feedback"`
	UsedAI           bool              `json:"used_ai"`
	RawModelText     string            `json:"raw_model_text,omitempty"`
}
