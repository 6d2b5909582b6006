// Package types provides type definitions for structured data used throughout the feedback quality engine.
package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// QuestionType identifies how a question is answered.
type QuestionType string

const (
	// QuestionRating is answered with an integer rating from 1 to 5
	QuestionRating QuestionType = "rating"
	// QuestionOpenEnded is answered with free text
	QuestionOpenEnded QuestionType = "open_ended"
)

// AssessorType is the feedback-giver's relationship to the subject.
type AssessorType string

// Assessor types
const (
	AssessorSelf         AssessorType = "self"
	AssessorManager      AssessorType = "manager"
	AssessorPeer         AssessorType = "peer"
	AssessorDirectReport AssessorType = "direct_report"
	AssessorExternal     AssessorType = "external"
)

// Label returns a human-readable name for the assessor relationship.
func (a AssessorType) Label() string {
	switch a {
	case AssessorSelf:
		return "self-assessment"
	case AssessorManager:
		return "manager"
	case AssessorPeer:
		return "peer"
	case AssessorDirectReport:
		return "direct report"
	case AssessorExternal:
		return "external stakeholder"
	default:
		return "reviewer"
	}
}

// FeedbackItem is one answer to one question.
// Only Rating is consulted for rating questions and only Text for open-ended ones.
type FeedbackItem struct {
	QuestionID   string       `json:"question_id" validate:"required"`
	QuestionType QuestionType `json:"question_type" validate:"required,oneof=rating open_ended"`
	QuestionText string       `json:"question_text,omitempty"`
	Category     string       `json:"category,omitempty"`
	Required     bool         `json:"required,omitempty"`
	Rating       *int         `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Text         string       `json:"text,omitempty"`
}

// HasValue reports whether the field consulted for this item's type is present.
func (f *FeedbackItem) HasValue() bool {
	if f.QuestionType == QuestionRating {
		return f.Rating != nil
	}
	return f.Text != ""
}

// Label returns the question text, or the question id when no text was supplied.
func (f *FeedbackItem) Label() string {
	if f.QuestionText != "" {
		return f.QuestionText
	}
	return f.QuestionID
}

// ResponseSet is the full collection of answers submitted for one assessment.
// Items keep insertion order; a ResponseSet is never mutated once built.
type ResponseSet struct {
	Items            []FeedbackItem `json:"items" validate:"required,min=1,dive"`
	AssessorType     AssessorType   `json:"assessor_type" validate:"required,oneof=self manager peer direct_report external"`
	TargetEmployeeID string         `json:"target_employee_id" validate:"required"`
	CampaignID       string         `json:"campaign_id,omitempty"`
}

// Validate checks the response set before it is handed to the engine.
func (r *ResponseSet) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}

	seen := make(map[string]bool, len(r.Items))
	for _, item := range r.Items {
		if seen[item.QuestionID] {
			return fmt.Errorf("duplicate question_id %q", item.QuestionID)
		}
		seen[item.QuestionID] = true
	}
	return nil
}

// OrderedItem pairs an item with its 1-based position as presented to the language model.
type OrderedItem struct {
	Ordinal int
	Item    *FeedbackItem
}

// Ordered returns the items in presentation order: every rating item first,
// then every open-ended item, each group in insertion order. Ordinals are
// 1-based across the combined sequence. Prompt construction and reply
// extraction both go through this function so "Question N" always resolves
// to the same item.
func (r *ResponseSet) Ordered() []OrderedItem {
	ordered := make([]OrderedItem, 0, len(r.Items))
	for _, qt := range []QuestionType{QuestionRating, QuestionOpenEnded} {
		for i := range r.Items {
			if r.Items[i].QuestionType == qt {
				ordered = append(ordered, OrderedItem{Ordinal: len(ordered) + 1, Item: &r.Items[i]})
			}
		}
	}
	return ordered
}

// ByOrdinal returns the question id presented at the given 1-based position.
func (r *ResponseSet) ByOrdinal(ordinal int) (string, bool) {
	for _, o := range r.Ordered() {
		if o.Ordinal == ordinal {
			return o.Item.QuestionID, true
		}
	}
	return "", false
}

// Campaign is the subset of campaign settings the engine consults.
type Campaign struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	AIEnabled bool   `json:"ai_enabled"`
}
