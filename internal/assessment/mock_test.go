package assessment

import (
	"context"
	"sync/atomic"

	"github.com/jonathan/feedback-quality/internal/llm"
	"github.com/jonathan/feedback-quality/internal/types"
)

// MockLLMClient implements llm.Client for testing and counts calls.
type MockLLMClient struct {
	GenerateContentFunc func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
	calls               atomic.Int32
	lastPrompt          atomic.Value
}

func (m *MockLLMClient) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	m.calls.Add(1)
	m.lastPrompt.Store(prompt)
	if m.GenerateContentFunc != nil {
		return m.GenerateContentFunc(ctx, prompt, tier)
	}
	return "", nil
}

func (m *MockLLMClient) GetModel(_ llm.ModelTier) string {
	return "mock-model"
}

func (m *MockLLMClient) Close() error {
	return nil
}

func (m *MockLLMClient) Calls() int {
	return int(m.calls.Load())
}

func (m *MockLLMClient) LastPrompt() string {
	p, _ := m.lastPrompt.Load().(string)
	return p
}

func replying(text string) *MockLLMClient {
	return &MockLLMClient{
		GenerateContentFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return text, nil
		},
	}
}

func failing(err error) *MockLLMClient {
	return &MockLLMClient{
		GenerateContentFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return "", err
		},
	}
}

func intPtr(v int) *int { return &v }

func openEnded(id, text string) types.FeedbackItem {
	return types.FeedbackItem{QuestionID: id, QuestionType: types.QuestionOpenEnded, QuestionText: "Question " + id, Text: text}
}

func rating(id string, v int) types.FeedbackItem {
	return types.FeedbackItem{QuestionID: id, QuestionType: types.QuestionRating, QuestionText: "Rating " + id, Rating: intPtr(v)}
}

func newSet(items ...types.FeedbackItem) *types.ResponseSet {
	return &types.ResponseSet{
		AssessorType:     types.AssessorPeer,
		TargetEmployeeID: "emp-42",
		Items:            items,
	}
}

const goodReply = `QUALITY: good

Overall assessment:
The feedback is specific, balanced and ready to share with the employee.

Recommendations:
1. Keep pairing each observation with a concrete project example.
2. Mention one growth area alongside the strengths next time.

Question-specific feedback:
Question 2: Consider naming the release you are describing.
`
