package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// Breaker fails fast once the provider keeps failing, instead of holding
// request goroutines for the full client timeout.
type Breaker struct {
	next Gateway
	cb   *gobreaker.CircuitBreaker
}

func NewBreaker(next Gateway, log *zap.Logger) *Breaker {
	settings := gobreaker.Settings{
		Name:        "payment-gateway",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// a rejected order is a client problem, not an outage
		IsSuccessful: func(err error) bool {
			var apiErr *APIError
			if errors.As(err, &apiErr) {
				return apiErr.StatusCode < 500
			}
			return err == nil
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}

	return &Breaker{
		next: next,
		cb:   gobreaker.NewCircuitBreaker(settings),
	}
}

func (b *Breaker) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.CreateOrder(ctx, req)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if err != nil {
		return nil, err
	}

	return result.(*Order), nil
}

func (b *Breaker) VerifySignature(orderID, paymentID, signature string) error {
	return b.next.VerifySignature(orderID, paymentID, signature)
}

func (b *Breaker) KeyID() string { return b.next.KeyID() }

func (b *Breaker) Currency() string { return b.next.Currency() }

func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}

// State reports how the bridge is doing: "disabled" without credentials,
// otherwise the breaker state ("closed", "half-open" or "open").
func State(gw Gateway) string {
	switch g := gw.(type) {
	case *Breaker:
		return g.State().String()
	case *disabled:
		return "disabled"
	default:
		return "unknown"
	}
}
