package hours

import (
	"context"
	"time"
)

// Every calls fn immediately and then on every tick until ctx is done.
// It blocks; run it in its own goroutine.
func Every(ctx context.Context, interval time.Duration, fn func(now time.Time)) {
	if ctx.Err() != nil {
		return
	}
	fn(time.Now())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if ctx.Err() != nil {
				return
			}
			fn(now)
		}
	}
}
