package assessment

import (
	"context"

	"go.uber.org/zap"

	"github.com/jonathan/feedback-quality/internal/types"
)

// CampaignStore looks up campaign settings.
type CampaignStore interface {
	GetCampaign(ctx context.Context, campaignID string) (*types.Campaign, error)
}

// Service resolves a campaign's AI setting and evaluates through the Gate.
type Service struct {
	gate      *Gate
	campaigns CampaignStore
	logger    *zap.Logger
}

// NewService creates a Service. A nil store treats every campaign as AI-enabled.
func NewService(gate *Gate, campaigns CampaignStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{gate: gate, campaigns: campaigns, logger: logger}
}

// EvaluateForCampaign evaluates a set under its own campaign's AI setting.
// A nil set gets the rule-based result for an empty submission.
func (s *Service) EvaluateForCampaign(ctx context.Context, set *types.ResponseSet) *types.EvaluationResult {
	if set == nil {
		return s.gate.EvaluateFeedback(ctx, nil, "", false)
	}
	return s.gate.EvaluateFeedback(ctx, set, set.AssessorType, s.AIEnabled(ctx, set.CampaignID))
}

// Evaluate uses aiEnabled when given and the campaign setting otherwise.
func (s *Service) Evaluate(ctx context.Context, set *types.ResponseSet, aiEnabled *bool) *types.EvaluationResult {
	if aiEnabled == nil || set == nil {
		return s.EvaluateForCampaign(ctx, set)
	}
	return s.gate.EvaluateFeedback(ctx, set, set.AssessorType, *aiEnabled)
}

// AIEnabled reports whether a campaign allows model-backed review. An empty
// id or a missing store means enabled; a failed lookup means disabled.
func (s *Service) AIEnabled(ctx context.Context, campaignID string) bool {
	if campaignID == "" || s.campaigns == nil {
		return true
	}

	campaign, err := s.campaigns.GetCampaign(ctx, campaignID)
	if err != nil {
		s.logger.Warn("campaign lookup failed; disabling model review",
			zap.String("campaign_id", campaignID), zap.Error(err))
		return false
	}
	if campaign == nil {
		return false
	}
	return campaign.AIEnabled
}
