package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCircuitBreaker(t *testing.T) {
	ctx := context.Background()
	cb := NewCircuitBreaker("test", &CircuitBreakerConfig{
		MaxFailures:      2,
		ResetTimeout:     time.Minute,
		HalfOpenMaxCalls: 1,
	}, nil, nil)
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	cb.now = func() time.Time { return now }

	assert.True(t, cb.Allow(ctx))
	cb.RecordFailure(errors.New("boom"))
	assert.Equal(t, CircuitClosed, cb.State())
	assert.Equal(t, 1, cb.Status().Failures)

	cb.RecordFailure(errors.New("boom"))
	assert.Equal(t, CircuitOpen, cb.State())
	assert.False(t, cb.Allow(ctx))
	assert.Equal(t, now.Add(time.Minute), cb.Status().RetryAt)

	now = now.Add(time.Minute)
	assert.True(t, cb.Allow(ctx))
	assert.Equal(t, CircuitHalfOpen, cb.State())
	assert.True(t, cb.Status().RetryAt.IsZero())

	cb.RecordFailure(errors.New("still down"))
	assert.Equal(t, CircuitOpen, cb.State())

	now = now.Add(time.Minute)
	assert.True(t, cb.Allow(ctx))
	cb.RecordSuccess()
	assert.Equal(t, CircuitClosed, cb.State())
	assert.Equal(t, BreakerStatus{State: CircuitClosed}, cb.Status())
}

func TestCircuitBreakerSuccessClearsFailures(t *testing.T) {
	cb := NewCircuitBreaker("test", &CircuitBreakerConfig{MaxFailures: 2, ResetTimeout: time.Hour, HalfOpenMaxCalls: 1}, nil, nil)

	cb.RecordFailure(errors.New("boom"))
	cb.RecordSuccess()
	cb.RecordFailure(errors.New("boom"))

	assert.Equal(t, CircuitClosed, cb.State())
	assert.Equal(t, 1, cb.Status().Failures)
}

func TestCircuitBreakerHalfOpenNeedsEnoughTrials(t *testing.T) {
	ctx := context.Background()
	cb := NewCircuitBreaker("test", &CircuitBreakerConfig{MaxFailures: 1, ResetTimeout: time.Second, HalfOpenMaxCalls: 2}, nil, nil)
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	cb.now = func() time.Time { return now }

	cb.RecordFailure(errors.New("boom"))
	now = now.Add(time.Second)

	assert.True(t, cb.Allow(ctx))
	cb.RecordSuccess()
	assert.Equal(t, CircuitHalfOpen, cb.State())
	assert.True(t, cb.Allow(ctx))
	cb.RecordSuccess()
	assert.Equal(t, CircuitClosed, cb.State())
}

func TestCircuitBreakerStateString(t *testing.T) {
	assert.Equal(t, "closed", CircuitClosed.String())
	assert.Equal(t, "open", CircuitOpen.String())
	assert.Equal(t, "half-open", CircuitHalfOpen.String())
	assert.Equal(t, "unknown", CircuitBreakerState(7).String())
}

func TestWarmupGate(t *testing.T) {
	gate := NewWarmupGate(nil)
	assert.False(t, gate.IsReady())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.False(t, gate.Wait(ctx))

	done := make(chan bool)
	go func() { done <- gate.Wait(context.Background()) }()
	gate.Ready()
	gate.Ready()
	assert.True(t, <-done)
	assert.True(t, gate.IsReady())
}
