package hibp

import (
	"context"
	"fmt"

	"github.com/dsolovey/passguard/internal/model"
	"github.com/dsolovey/passguard/pkg/circuitbreaker"
)

// Checker is the breach-lookup contract the analyzer depends on.
type Checker interface {
	Check(ctx context.Context, password string) (model.PwnedPasswordMatch, error)
}

// BreakerChecker wraps a Checker with a circuit breaker so a flapping or
// unreachable range endpoint degrades to fast failures instead of a timeout
// per analyze call.
type BreakerChecker struct {
	inner   Checker
	breaker *circuitbreaker.CircuitBreaker
}

func NewBreakerChecker(inner Checker, settings circuitbreaker.Settings) *BreakerChecker {
	if settings.Name == "" {
		settings.Name = "hibp"
	}
	return &BreakerChecker{
		inner:   inner,
		breaker: circuitbreaker.New(settings),
	}
}

func (b *BreakerChecker) Check(ctx context.Context, password string) (model.PwnedPasswordMatch, error) {
	var match model.PwnedPasswordMatch
	err := b.breaker.Execute(func() error {
		var err error
		match, err = b.inner.Check(ctx, password)
		return err
	})
	if err != nil {
		return model.PwnedPasswordMatch{}, fmt.Errorf("breach lookup failed: %w", err)
	}
	return match, nil
}
