package httpbase

import (
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/tcheronneau/homers-go/internal/logging"
)

// NewBreaker builds a gobreaker instance scoped to one adapter instance,
// named "<family>.<instance>". Settings are tuned for scrape-volume traffic
// (one or two requests per task per scrape) rather than a continuous sync
// loop: it opens faster, on fewer requests, and recovers sooner than a
// loop-oriented breaker would.
func NewBreaker(family, instance string) *gobreaker.CircuitBreaker[any] {
	name := family + "." + instance

	return gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        name,
		MaxRequests: 2,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state change")
		},
	})
}

// Execute runs fn through cb and type-asserts the result to T, returning
// the zero value of T and the error on any failure (rejected, open, or fn
// itself returning an error).
func Execute[T any](cb *gobreaker.CircuitBreaker[any], fn func() (T, error)) (T, error) {
	result, err := cb.Execute(func() (any, error) {
		return fn()
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result.(T), nil
}
