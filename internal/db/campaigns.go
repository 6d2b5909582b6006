package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/feedback-quality/internal/types"
)

// ErrCampaignNotFound is returned when no campaign has the requested id
var ErrCampaignNotFound = errors.New("campaign not found")

// NewCampaignID returns campaignID trimmed, or a fresh random id when it is blank.
// Campaign ids are opaque; callers may bring their own.
func NewCampaignID(campaignID string) string {
	if id := strings.TrimSpace(campaignID); id != "" {
		return id
	}
	return uuid.NewString()
}

// GetCampaign returns the campaign settings the assessment engine consults.
func (db *DB) GetCampaign(ctx context.Context, campaignID string) (*types.Campaign, error) {
	record, err := db.GetCampaignRecord(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	return &types.Campaign{
		ID:        record.ID,
		Name:      record.Name,
		AIEnabled: record.AIEnabled,
	}, nil
}

// GetCampaignRecord retrieves a campaign row by id
func (db *DB) GetCampaignRecord(ctx context.Context, campaignID string) (*CampaignRecord, error) {
	var c CampaignRecord
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, ai_enabled, created_at, updated_at
		 FROM feedback_campaigns WHERE id = $1`,
		campaignID,
	).Scan(&c.ID, &c.Name, &c.AIEnabled, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCampaignNotFound
		}
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}
	return &c, nil
}

// CreateCampaign inserts a campaign and returns it. A blank id is generated.
func (db *DB) CreateCampaign(ctx context.Context, campaignID, name string, aiEnabled bool) (*CampaignRecord, error) {
	var c CampaignRecord
	err := db.pool.QueryRow(ctx,
		`INSERT INTO feedback_campaigns (id, name, ai_enabled)
		 VALUES ($1, $2, $3)
		 RETURNING id, name, ai_enabled, created_at, updated_at`,
		NewCampaignID(campaignID), name, aiEnabled,
	).Scan(&c.ID, &c.Name, &c.AIEnabled, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}
	return &c, nil
}

// SetCampaignAIEnabled updates a campaign's AI setting
func (db *DB) SetCampaignAIEnabled(ctx context.Context, campaignID string, enabled bool) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE feedback_campaigns SET ai_enabled = $1, updated_at = NOW() WHERE id = $2`,
		enabled, campaignID,
	)
	if err != nil {
		return fmt.Errorf("failed to update campaign: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCampaignNotFound
	}
	return nil
}
