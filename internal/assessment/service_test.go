package assessment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/feedback-quality/internal/types"
)

type stubCampaigns struct {
	campaigns map[string]*types.Campaign
	err       error
	lookups   int
}

func (s *stubCampaigns) GetCampaign(_ context.Context, id string) (*types.Campaign, error) {
	s.lookups++
	if s.err != nil {
		return nil, s.err
	}
	c, ok := s.campaigns[id]
	if !ok {
		return nil, errors.New("campaign not found")
	}
	return c, nil
}

func TestService_AIEnabled(t *testing.T) {
	store := &stubCampaigns{campaigns: map[string]*types.Campaign{
		"on":  {ID: "on", AIEnabled: true},
		"off": {ID: "off", AIEnabled: false},
	}}
	svc := NewService(NewGate(nil, nil), store, nil)
	ctx := context.Background()

	assert.True(t, svc.AIEnabled(ctx, ""))
	assert.Equal(t, 0, store.lookups, "empty id skips the lookup")
	assert.True(t, svc.AIEnabled(ctx, "on"))
	assert.False(t, svc.AIEnabled(ctx, "off"))
	assert.False(t, svc.AIEnabled(ctx, "missing"))

	assert.True(t, NewService(NewGate(nil, nil), nil, nil).AIEnabled(ctx, "anything"))
}

func TestService_EvaluateForCampaign(t *testing.T) {
	store := &stubCampaigns{campaigns: map[string]*types.Campaign{
		"on":  {ID: "on", AIEnabled: true},
		"off": {ID: "off", AIEnabled: false},
	}}

	tests := []struct {
		campaignID string
		wantCalls  int
	}{
		{campaignID: "on", wantCalls: 1},
		{campaignID: "off", wantCalls: 0},
		{campaignID: "", wantCalls: 1},
		{campaignID: "missing", wantCalls: 0},
	}

	for _, tt := range tests {
		t.Run("campaign "+tt.campaignID, func(t *testing.T) {
			client := replying(goodReply)
			svc := NewService(NewGate(NewOrchestrator(WithClient(client)), nil), store, nil)

			set := cleanSet()
			set.CampaignID = tt.campaignID
			result := svc.EvaluateForCampaign(context.Background(), set)

			assert.Equal(t, tt.wantCalls, client.Calls())
			assert.Equal(t, tt.wantCalls == 1, result.UsedAI)
		})
	}
}

func TestService_LookupErrorDisablesAI(t *testing.T) {
	client := replying(goodReply)
	store := &stubCampaigns{err: errors.New("connection refused")}
	svc := NewService(NewGate(NewOrchestrator(WithClient(client)), nil), store, nil)

	set := cleanSet()
	set.CampaignID = "c-1"
	result := svc.EvaluateForCampaign(context.Background(), set)

	assert.Equal(t, 0, client.Calls())
	assert.False(t, result.UsedAI)
}

func TestService_EvaluateOverride(t *testing.T) {
	client := replying(goodReply)
	store := &stubCampaigns{campaigns: map[string]*types.Campaign{"on": {ID: "on", AIEnabled: true}}}
	svc := NewService(NewGate(NewOrchestrator(WithClient(client)), nil), store, nil)

	set := cleanSet()
	set.CampaignID = "on"
	disabled := false

	result := svc.Evaluate(context.Background(), set, &disabled)
	assert.Equal(t, 0, client.Calls())
	assert.Equal(t, 0, store.lookups)
	assert.False(t, result.UsedAI)

	result = svc.Evaluate(context.Background(), set, nil)
	assert.Equal(t, 1, client.Calls())
	assert.True(t, result.UsedAI)
}

func TestService_OpaqueCampaignIDKeepsAI(t *testing.T) {
	client := replying(goodReply)
	store := &stubCampaigns{campaigns: map[string]*types.Campaign{
		"spring-2024": {ID: "spring-2024", AIEnabled: true},
	}}
	svc := NewService(NewGate(NewOrchestrator(WithClient(client)), nil), store, nil)

	set := cleanSet()
	set.CampaignID = "spring-2024"
	result := svc.EvaluateForCampaign(context.Background(), set)

	assert.Equal(t, 1, store.lookups)
	assert.Equal(t, 1, client.Calls())
	assert.True(t, result.UsedAI)
}

func TestService_NilSet(t *testing.T) {
	client := replying(goodReply)
	store := &stubCampaigns{}
	svc := NewService(NewGate(NewOrchestrator(WithClient(client)), nil), store, nil)
	enabled := true

	for name, evaluate := range map[string]func() *types.EvaluationResult{
		"campaign": func() *types.EvaluationResult { return svc.EvaluateForCampaign(context.Background(), nil) },
		"override": func() *types.EvaluationResult { return svc.Evaluate(context.Background(), nil, &enabled) },
	} {
		t.Run(name, func(t *testing.T) {
			var result *types.EvaluationResult
			require.NotPanics(t, func() { result = evaluate() })
			require.NotNil(t, result)
			assert.False(t, result.UsedAI)
			assert.NotEmpty(t, result.Message)
			assert.NotNil(t, result.QuestionFeedback)
		})
	}
	assert.Equal(t, 0, client.Calls())
	assert.Equal(t, 0, store.lookups)
}
