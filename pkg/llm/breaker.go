package llm

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
)

// BreakerSettings configures the circuit breaker guarding a provider.
type BreakerSettings struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold uint32
}

func DefaultBreakerSettings(name string) BreakerSettings {
	return BreakerSettings{
		Name:             "llm-" + name,
		MaxRequests:      1,
		Interval:         60 * time.Second,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
	}
}

// BreakerProvider fails fast while the wrapped backend keeps erroring.
// It never retries; an open circuit surfaces as gobreaker.ErrOpenState.
type BreakerProvider struct {
	inner LLMProvider
	cb    *gobreaker.CircuitBreaker[string]
}

var _ LLMProvider = &BreakerProvider{}

func NewBreakerProvider(inner LLMProvider, s BreakerSettings) *BreakerProvider {
	cb := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.FailureThreshold
		},
		// Caller cancellation says nothing about backend health.
		IsExcluded: func(err error) bool {
			return errors.Is(err, context.Canceled)
		},
	})
	return &BreakerProvider{inner: inner, cb: cb}
}

func (b *BreakerProvider) Chat(ctx context.Context, history []Message, options ...Option) (string, error) {
	return b.cb.Execute(func() (string, error) {
		return b.inner.Chat(ctx, history, options...)
	})
}

func (b *BreakerProvider) Generate(ctx context.Context, prompt string, options ...Option) (string, error) {
	return b.cb.Execute(func() (string, error) {
		return b.inner.Generate(ctx, prompt, options...)
	})
}

// State exposes the breaker state for health reporting.
func (b *BreakerProvider) State() string {
	return b.cb.State().String()
}
