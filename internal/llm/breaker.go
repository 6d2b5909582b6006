package llm

import (
	"context"
	"errors"
	"sync"
	"time"
)

// BreakerState is the state of a circuit breaker.
type BreakerState string

// Breaker states
const (
	BreakerClosed   BreakerState = "closed"
	BreakerOpen     BreakerState = "open"
	BreakerHalfOpen BreakerState = "half_open"
)

// ErrCircuitOpen is the cause attached to calls rejected while the breaker is open.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// BreakerClient stops calling an unhealthy provider. After Threshold
// consecutive *UnavailableError results it opens and rejects calls for
// Cooldown, then lets a single trial call through. Other errors do not count.
type BreakerClient struct {
	next      Client
	threshold int
	cooldown  time.Duration
	now       func() time.Time

	mu       sync.Mutex
	state    BreakerState
	failures int
	openedAt time.Time
	trial    bool
}

// NewBreakerClient wraps next with a circuit breaker.
func NewBreakerClient(next Client, threshold int, cooldown time.Duration) *BreakerClient {
	if threshold <= 0 {
		threshold = 5
	}
	if cooldown <= 0 {
		cooldown = time.Minute
	}
	return &BreakerClient{
		next:      next,
		threshold: threshold,
		cooldown:  cooldown,
		now:       time.Now,
		state:     BreakerClosed,
	}
}

// State returns the current breaker state.
func (b *BreakerClient) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// GenerateContent forwards the call unless the breaker is open. A panic in
// the wrapped client counts as a failure and is re-raised.
func (b *BreakerClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (text string, err error) {
	if !b.acquire() {
		return "", &UnavailableError{Message: "provider temporarily disabled", Cause: ErrCircuitOpen}
	}

	completed := false
	defer func() {
		if !completed {
			b.record(true)
		}
	}()

	text, err = b.next.GenerateContent(ctx, prompt, tier)
	completed = true
	b.record(IsUnavailable(err))
	return text, err
}

// acquire decides whether a call may proceed, moving open to half-open once the cooldown has passed.
func (b *BreakerClient) acquire() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case BreakerOpen:
		if b.now().Sub(b.openedAt) < b.cooldown {
			return false
		}
		b.state = BreakerHalfOpen
		b.trial = true
		return true
	case BreakerHalfOpen:
		if b.trial {
			return false
		}
		b.trial = true
		return true
	default:
		return true
	}
}

func (b *BreakerClient) record(failed bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !failed {
		b.state = BreakerClosed
		b.failures = 0
		b.trial = false
		return
	}

	if b.state == BreakerHalfOpen {
		b.trip()
		return
	}
	b.failures++
	if b.failures >= b.threshold {
		b.trip()
	}
}

func (b *BreakerClient) trip() {
	b.state = BreakerOpen
	b.openedAt = b.now()
	b.trial = false
	b.failures = 0
}

// GetModel returns the wrapped client's model name for a tier
func (b *BreakerClient) GetModel(tier ModelTier) string {
	return b.next.GetModel(tier)
}

// Close closes the wrapped client.
func (b *BreakerClient) Close() error {
	return b.next.Close()
}
