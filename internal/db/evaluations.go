package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/feedback-quality/internal/types"
)

// SaveEvaluation stores an evaluation result for audit and returns the new row id.
// An empty campaign id is stored as NULL.
func (db *DB) SaveEvaluation(ctx context.Context, set *types.ResponseSet, result *types.EvaluationResult) (uuid.UUID, error) {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal evaluation: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO feedback_evaluations (campaign_id, target_employee_id, assessor_type, quality, used_ai, result)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		nullableCampaignID(set.CampaignID), set.TargetEmployeeID, string(set.AssessorType),
		string(result.Quality), result.UsedAI, resultJSON,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save evaluation: %w", err)
	}
	return id, nil
}

// ListEvaluations returns the most recent evaluations for a target employee
func (db *DB) ListEvaluations(ctx context.Context, targetEmployeeID string, limit int) ([]EvaluationRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, campaign_id, target_employee_id, assessor_type, quality, used_ai, result, created_at
		 FROM feedback_evaluations WHERE target_employee_id = $1
		 ORDER BY created_at DESC LIMIT $2`,
		targetEmployeeID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list evaluations: %w", err)
	}
	defer rows.Close()

	var records []EvaluationRecord
	for rows.Next() {
		var r EvaluationRecord
		if err := rows.Scan(&r.ID, &r.CampaignID, &r.TargetEmployeeID, &r.AssessorType, &r.Quality, &r.UsedAI, &r.Result, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan evaluation: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func nullableCampaignID(campaignID string) *string {
	if campaignID == "" {
		return nil
	}
	return &campaignID
}
