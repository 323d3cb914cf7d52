package integrations

import (
	"context"
	"fmt"
	"log/slog"
	"svc-mute/domain"
	"svc-mute/errors"
	"time"
)

// DefaultTimeout bounds every backend query when no timeout is configured.
const DefaultTimeout = 300 * time.Millisecond

// Verdict is the raw outcome of one backend query, before collapsing it to
// the boolean MuteChecker contract.
type Verdict struct {
	Found bool
	Err   error
}

func Found(found bool) Verdict {
	return Verdict{Found: found}
}

func Failed(err error) Verdict {
	return Verdict{Err: err}
}

// Muted collapses the verdict. Any error resolves to false (fail-open): a
// timeout or an unreachable backend is indistinguishable from "not muted".
func (v Verdict) Muted(log *slog.Logger, backend BackendName, subject domain.Subject) bool {
	if v.Err != nil {
		log.Warn("Backend query failed, subject considered not muted",
			"backend", string(backend),
			"subject", subject.String(),
			"error", v.Err)
		return false
	}
	return v.Found
}

// Await blocks until a verdict is delivered on results, the timeout elapses,
// or ctx is done. The producer must use a buffered channel so that it never
// blocks once Await has given up.
func Await(ctx context.Context, timeout time.Duration, results <-chan Verdict) Verdict {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case v, ok := <-results:
		if !ok {
			return Failed(errors.ErrBackendUnavailable)
		}
		return v
	case <-timer.C:
		return Failed(fmt.Errorf("%w after %s", errors.ErrBackendTimeout, timeout))
	case <-ctx.Done():
		return Failed(ctx.Err())
	}
}

// Go runs query asynchronously and delivers its verdict on a buffered channel.
func Go(ctx context.Context, query func(ctx context.Context) (bool, error)) <-chan Verdict {
	results := make(chan Verdict, 1)
	go func() {
		found, err := query(ctx)
		if err != nil {
			results <- Failed(err)
			return
		}
		results <- Found(found)
	}()
	return results
}
