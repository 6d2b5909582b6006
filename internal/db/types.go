package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// CampaignRecord is a row of feedback_campaigns
type CampaignRecord struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	AIEnabled bool      `json:"ai_enabled"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EvaluationRecord is a row of feedback_evaluations
type EvaluationRecord struct {
	ID               uuid.UUID       `json:"id"`
	CampaignID       *string         `json:"campaign_id,omitempty"`
	TargetEmployeeID string          `json:"target_employee_id"`
	AssessorType     string          `json:"assessor_type"`
	Quality          string          `json:"quality"`
	UsedAI           bool            `json:"used_ai"`
	Result           json.RawMessage `json:"result"`
	CreatedAt        time.Time       `json:"created_at"`
}
