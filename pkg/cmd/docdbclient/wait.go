package docdbclient

import (
	"context"
	"time"
)

// WaitContext derives the context for a reconciliation. With wait set, the
// context carries a deadline of the given timeout, falling back to
// defaultTimeout when the caller passed zero.
func WaitContext(ctx context.Context, wait bool, timeout, defaultTimeout time.Duration) (context.Context, context.CancelFunc) {
	if !wait {
		return ctx, func() {}
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return context.WithTimeout(ctx, timeout)
}
