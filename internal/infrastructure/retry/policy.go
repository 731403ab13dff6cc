package retry

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jmanzanog/folio/internal/domain"
	goretry "github.com/sethvargo/go-retry"
)

const (
	DefaultMaxAttempts  = 3
	DefaultInitialDelay = time.Second
)

// Policy is a bounded exponential backoff: the wait before attempt n+1 is
// InitialDelay * 2^(n-1). There is no jitter.
//
// Not-found failures are never retried, unlike every other failure: a second
// attempt cannot make a missing resource appear.
type Policy struct {
	MaxAttempts  int
	InitialDelay time.Duration
}

func DefaultPolicy() Policy {
	return Policy{MaxAttempts: DefaultMaxAttempts, InitialDelay: DefaultInitialDelay}
}

func (p Policy) backoff() goretry.Backoff {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	delay := p.InitialDelay
	if delay <= 0 {
		delay = DefaultInitialDelay
	}
	return goretry.WithMaxRetries(uint64(attempts-1), goretry.NewExponential(delay))
}

// Do invokes op until it succeeds, fails permanently or runs out of attempts.
// The returned error is the last one op produced, unchanged.
func Do[T any](ctx context.Context, p Policy, op func(ctx context.Context) (T, error)) (T, error) {
	var (
		result  T
		lastErr error
		attempt int
	)

	err := goretry.Do(ctx, p.backoff(), func(ctx context.Context) error {
		attempt++
		v, err := op(ctx)
		if err == nil {
			result = v
			return nil
		}
		lastErr = err
		if permanent(ctx, err) {
			return err
		}
		slog.DebugContext(ctx, "Operation failed, will retry if attempts remain", "attempt", attempt, "error", err)
		return goretry.RetryableError(err)
	})
	if err != nil {
		// A cancelled backoff wait reports ctx.Err(); keep the classified failure instead.
		if lastErr != nil && ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			return result, lastErr
		}
		return result, err
	}
	return result, nil
}

// permanent reports failures that another attempt cannot fix: the caller gave up,
// or the resource does not exist.
func permanent(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return true
	}
	return domain.KindOf(err) == domain.ErrorKindNotFound
}
