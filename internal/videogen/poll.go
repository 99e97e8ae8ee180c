package videogen

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
)

var (
	// ErrRenderFailed means the backend reported a terminal failure for the
	// operation.
	ErrRenderFailed = errors.New("render failed")
	// ErrPollTimeout means the operation did not reach a terminal state
	// within the wall-clock ceiling.
	ErrPollTimeout = errors.New("render polling timed out")
)

var errStillPending = errors.New("operation still pending")

// WaitForOperation polls the backend on a fixed interval until the operation
// succeeds, fails, or maxWait elapses. Transport blips are retried on the
// same interval; a backend-reported failure stops immediately.
func WaitForOperation(ctx context.Context, c Client, operationName string, interval, maxWait time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, maxWait)
	defer cancel()

	poll := func() error {
		status, err := c.Poll(ctx, operationName)
		if err != nil {
			return err
		}
		switch status.State {
		case StateSucceeded:
			return nil
		case StateFailed:
			return backoff.Permanent(fmt.Errorf("%w: %s", ErrRenderFailed, status.Error))
		default:
			return errStillPending
		}
	}

	b := backoff.WithContext(backoff.NewConstantBackOff(interval), ctx)
	if err := backoff.Retry(poll, b); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w after %s", ErrPollTimeout, maxWait)
		}
		return err
	}
	return nil
}
