package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Ramax12/ArtiVana-nuxt-filter/internal/pkg/requestid"
)

// CircuitBreakerState is the state of the breaker guarding the source.
type CircuitBreakerState int

const (
	// CircuitClosed lets loads reach the source.
	CircuitClosed CircuitBreakerState = iota
	// CircuitOpen rejects loads without touching the source.
	CircuitOpen
	// CircuitHalfOpen lets trial loads through.
	CircuitHalfOpen
)

var circuitStateNames = [...]string{
	CircuitClosed:   "closed",
	CircuitOpen:     "open",
	CircuitHalfOpen: "half-open",
}

func (s CircuitBreakerState) String() string {
	if s < 0 || int(s) >= len(circuitStateNames) {
		return "unknown"
	}
	return circuitStateNames[s]
}

// CircuitBreakerConfig tunes the breaker.
type CircuitBreakerConfig struct {
	// MaxFailures is the number of consecutive failed loads before opening.
	MaxFailures int
	// ResetTimeout is how long the circuit stays open before a trial load.
	ResetTimeout time.Duration
	// HalfOpenMaxCalls is the number of successful trial loads needed to close.
	HalfOpenMaxCalls int
}

// DefaultCircuitBreakerConfig returns the default breaker settings.
func DefaultCircuitBreakerConfig() *CircuitBreakerConfig {
	return &CircuitBreakerConfig{
		MaxFailures:      5,
		ResetTimeout:     30 * time.Second,
		HalfOpenMaxCalls: 1,
	}
}

// BreakerStatus is a point-in-time view of a CircuitBreaker.
type BreakerStatus struct {
	State    CircuitBreakerState
	Failures int
	// RetryAt is when an open circuit admits its next trial load. Zero
	// unless the circuit is open.
	RetryAt time.Time
}

// CircuitBreaker stops hammering an unreachable catalog source. The store
// reports a load as failed only when every entity fetch failed.
type CircuitBreaker struct {
	name    string
	config  CircuitBreakerConfig
	metrics *MetricsRecorder
	logger  *zerolog.Logger
	now     func() time.Time

	mu          sync.Mutex
	state       CircuitBreakerState
	failures    int
	trials      int
	lastFailure time.Time
}

// NewCircuitBreaker creates a closed breaker. A nil config uses
// DefaultCircuitBreakerConfig.
func NewCircuitBreaker(name string, config *CircuitBreakerConfig, metrics *MetricsRecorder, logger *zerolog.Logger) *CircuitBreaker {
	if config == nil {
		config = DefaultCircuitBreakerConfig()
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	cb := &CircuitBreaker{
		name:    name,
		config:  *config,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
	metrics.RecordCircuitState(name, CircuitClosed)
	return cb
}

// Allow reports whether a load may reach the source. An open circuit turns
// half-open once ResetTimeout has passed since the last failure.
func (cb *CircuitBreaker) Allow(ctx context.Context) bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == CircuitOpen && cb.now().Sub(cb.lastFailure) >= cb.config.ResetTimeout {
		cb.setState(CircuitHalfOpen)
		cb.logger.Info().
			Str("circuit_breaker", cb.name).
			Str("request_id", requestid.FromContext(ctx)).
			Msg("Catalog source circuit half-open, trying a load")
	}

	switch cb.state {
	case CircuitClosed:
		return true
	case CircuitHalfOpen:
		return cb.trials < cb.config.HalfOpenMaxCalls
	default:
		return false
	}
}

// RecordSuccess records a load that reached the source.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == CircuitHalfOpen {
		cb.trials++
		if cb.trials < cb.config.HalfOpenMaxCalls {
			return
		}
		cb.setState(CircuitClosed)
		cb.logger.Info().Str("circuit_breaker", cb.name).Msg("Catalog source recovered, circuit closed")
	}
	cb.failures = 0
	cb.trials = 0
}

// RecordFailure records a load where the source was unreachable.
func (cb *CircuitBreaker) RecordFailure(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failures++
	cb.lastFailure = cb.now()

	trip := cb.state == CircuitHalfOpen ||
		(cb.state == CircuitClosed && cb.failures >= cb.config.MaxFailures)
	if !trip {
		return
	}
	cb.setState(CircuitOpen)
	cb.trials = 0
	cb.logger.Warn().
		Err(err).
		Str("circuit_breaker", cb.name).
		Int("failure_count", cb.failures).
		Dur("reset_timeout", cb.config.ResetTimeout).
		Msg("Catalog source circuit opened")
}

func (cb *CircuitBreaker) setState(next CircuitBreakerState) {
	cb.state = next
	cb.metrics.RecordCircuitState(cb.name, next)
}

// State returns the current state.
func (cb *CircuitBreaker) State() CircuitBreakerState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Status returns the state, the consecutive failure count and, for an open
// circuit, the time of the next trial load.
func (cb *CircuitBreaker) Status() BreakerStatus {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	st := BreakerStatus{State: cb.state, Failures: cb.failures}
	if cb.state == CircuitOpen {
		st.RetryAt = cb.lastFailure.Add(cb.config.ResetTimeout)
	}
	return st
}

// WarmupGate opens once the store holds a complete snapshot.
type WarmupGate struct {
	once   sync.Once
	ready  chan struct{}
	logger *zerolog.Logger
}

// NewWarmupGate creates a closed gate.
func NewWarmupGate(logger *zerolog.Logger) *WarmupGate {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &WarmupGate{ready: make(chan struct{}), logger: logger}
}

// Wait blocks until the gate opens or ctx is done. It returns false if ctx
// finished first.
func (wg *WarmupGate) Wait(ctx context.Context) bool {
	select {
	case <-wg.ready:
		return true
	case <-ctx.Done():
		wg.logger.Warn().
			Str("request_id", requestid.FromContext(ctx)).
			Msg("Gave up waiting for the first complete catalog")
		return false
	}
}

// Ready opens the gate. Later calls do nothing.
func (wg *WarmupGate) Ready() {
	wg.once.Do(func() {
		close(wg.ready)
		wg.logger.Info().Msg("Catalog complete, serving requests")
	})
}

// IsReady reports whether the gate is open without blocking.
func (wg *WarmupGate) IsReady() bool {
	select {
	case <-wg.ready:
		return true
	default:
		return false
	}
}
