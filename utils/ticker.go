package utils

import (
	"context"
	"time"

	"github.com/ringbot/autoseq/logging"
)

// SlowLogger warns with msg every few seconds until the returned func is called or ctx is done.
// The first warning comes after two seconds, then the interval backs off to five.
func SlowLogger(ctx context.Context, msg string, logger logging.Logger, keysAndValues ...interface{}) func() {
	slowTicker := time.NewTicker(2 * time.Second)
	firstTick := true

	start := time.Now()
	workers := NewStoppableWorkers(func(workerCtx context.Context) {
		for {
			select {
			case <-slowTicker.C:
				elapsed := time.Since(start).Round(time.Second).String()
				fields := append(append([]interface{}{}, keysAndValues...), "time_elapsed", elapsed)
				logger.Warnw(msg, fields...)
				if firstTick {
					slowTicker.Reset(3 * time.Second)
					firstTick = false
				} else {
					slowTicker.Reset(5 * time.Second)
				}
			case <-ctx.Done():
				return
			case <-workerCtx.Done():
				return
			}
		}
	})
	return func() {
		slowTicker.Stop()
		workers.Stop()
	}
}
