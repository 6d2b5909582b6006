package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubClient returns queued results in order, repeating the last one.
type stubClient struct {
	results []stubResult
	calls   int
	closed  bool
}

type stubResult struct {
	text  string
	err   error
	panic string
}

func (s *stubClient) GenerateContent(_ context.Context, _ string, _ ModelTier) (string, error) {
	idx := s.calls
	if idx >= len(s.results) {
		idx = len(s.results) - 1
	}
	s.calls++
	r := s.results[idx]
	if r.panic != "" {
		panic(r.panic)
	}
	return r.text, r.err
}

func (s *stubClient) GetModel(_ ModelTier) string { return "stub-model" }

func (s *stubClient) Close() error {
	s.closed = true
	return nil
}

func unavailable() stubResult {
	return stubResult{err: &UnavailableError{Message: "down", StatusCode: 502}}
}

func TestBreaker_OpensAfterThreshold(t *testing.T) {
	stub := &stubClient{results: []stubResult{unavailable()}}
	breaker := NewBreakerClient(stub, 3, time.Minute)

	for i := 0; i < 3; i++ {
		_, err := breaker.GenerateContent(context.Background(), "p", TierStandard)
		require.Error(t, err)
	}
	assert.Equal(t, BreakerOpen, breaker.State())

	_, err := breaker.GenerateContent(context.Background(), "p", TierStandard)
	assert.True(t, IsUnavailable(err))
	assert.True(t, errors.Is(err, ErrCircuitOpen))
	assert.Equal(t, 3, stub.calls, "open breaker does not reach the provider")
}

func TestBreaker_HalfOpenRecovery(t *testing.T) {
	stub := &stubClient{results: []stubResult{unavailable(), unavailable(), {text: "ok"}}}
	breaker := NewBreakerClient(stub, 2, time.Minute)
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	breaker.now = func() time.Time { return clock }

	for i := 0; i < 2; i++ {
		_, _ = breaker.GenerateContent(context.Background(), "p", TierStandard)
	}
	require.Equal(t, BreakerOpen, breaker.State())

	clock = clock.Add(30 * time.Second)
	_, err := breaker.GenerateContent(context.Background(), "p", TierStandard)
	assert.True(t, errors.Is(err, ErrCircuitOpen), "still cooling down")

	clock = clock.Add(31 * time.Second)
	text, err := breaker.GenerateContent(context.Background(), "p", TierStandard)
	require.NoError(t, err)
	assert.Equal(t, "ok", text)
	assert.Equal(t, BreakerClosed, breaker.State())
}

func TestBreaker_FailedTrialReopens(t *testing.T) {
	stub := &stubClient{results: []stubResult{unavailable()}}
	breaker := NewBreakerClient(stub, 1, time.Minute)
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	breaker.now = func() time.Time { return clock }

	_, _ = breaker.GenerateContent(context.Background(), "p", TierStandard)
	require.Equal(t, BreakerOpen, breaker.State())

	clock = clock.Add(2 * time.Minute)
	_, err := breaker.GenerateContent(context.Background(), "p", TierStandard)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrCircuitOpen), "trial call reached the provider")
	assert.Equal(t, BreakerOpen, breaker.State())
	assert.Equal(t, 2, stub.calls)
}

func TestBreaker_PanickingTrialReopens(t *testing.T) {
	stub := &stubClient{results: []stubResult{unavailable(), unavailable(), {panic: "provider exploded"}, {text: "ok"}}}
	breaker := NewBreakerClient(stub, 2, time.Minute)
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	breaker.now = func() time.Time { return clock }

	for i := 0; i < 2; i++ {
		_, _ = breaker.GenerateContent(context.Background(), "p", TierStandard)
	}
	require.Equal(t, BreakerOpen, breaker.State())

	clock = clock.Add(2 * time.Minute)
	assert.PanicsWithValue(t, "provider exploded", func() {
		_, _ = breaker.GenerateContent(context.Background(), "p", TierStandard)
	})
	assert.Equal(t, BreakerOpen, breaker.State(), "a panicking trial reopens the breaker")

	_, err := breaker.GenerateContent(context.Background(), "p", TierStandard)
	assert.True(t, errors.Is(err, ErrCircuitOpen), "cooldown restarts after the panic")

	clock = clock.Add(2 * time.Minute)
	text, err := breaker.GenerateContent(context.Background(), "p", TierStandard)
	require.NoError(t, err)
	assert.Equal(t, "ok", text)
	assert.Equal(t, BreakerClosed, breaker.State())
	assert.Equal(t, 4, stub.calls)
}

func TestBreaker_PanicCountsAsFailure(t *testing.T) {
	stub := &stubClient{results: []stubResult{{panic: "boom"}}}
	breaker := NewBreakerClient(stub, 2, time.Minute)

	for i := 0; i < 2; i++ {
		assert.Panics(t, func() {
			_, _ = breaker.GenerateContent(context.Background(), "p", TierStandard)
		})
	}
	assert.Equal(t, BreakerOpen, breaker.State())
}

func TestBreaker_OnlyUnavailableCounts(t *testing.T) {
	stub := &stubClient{results: []stubResult{{err: &MalformedResponseError{Message: "bad"}}}}
	breaker := NewBreakerClient(stub, 1, time.Minute)

	for i := 0; i < 5; i++ {
		_, err := breaker.GenerateContent(context.Background(), "p", TierStandard)
		require.Error(t, err)
	}
	assert.Equal(t, BreakerClosed, breaker.State())
	assert.Equal(t, 5, stub.calls)
}

func TestBreaker_SuccessResetsCount(t *testing.T) {
	stub := &stubClient{results: []stubResult{unavailable(), {text: "ok"}, unavailable()}}
	breaker := NewBreakerClient(stub, 2, time.Minute)

	for i := 0; i < 3; i++ {
		_, _ = breaker.GenerateContent(context.Background(), "p", TierStandard)
	}
	assert.Equal(t, BreakerClosed, breaker.State())
}

func TestBreaker_DelegatesModelAndClose(t *testing.T) {
	stub := &stubClient{results: []stubResult{{text: "ok"}}}
	breaker := NewBreakerClient(stub, 0, 0)

	assert.Equal(t, "stub-model", breaker.GetModel(TierStandard))
	require.NoError(t, breaker.Close())
	assert.True(t, stub.closed)
}
