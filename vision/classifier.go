package vision

import (
	"context"
	"time"

	"github.com/pkg/errors"
	goutils "go.viam.com/utils"

	"github.com/ringbot/autoseq/logging"
)

// ErrNotStreaming is returned by a Classifier asked for a reading before its stream has
// produced a frame.
var ErrNotStreaming = errors.New("classifier has not produced a frame yet")

// A Classifier senses the ring stack height from a camera stream.
type Classifier interface {
	// Start opens the stream asynchronously. Readings become available some time later.
	Start(ctx context.Context) error

	// Height returns the current reading.
	Height(ctx context.Context) (Classification, error)

	// Close stops the stream.
	Close(ctx context.Context) error
}

// firstFramePoll is how often ReadOnce retries a classifier that has no frame yet.
const firstFramePoll = 10 * time.Millisecond

// ReadOnce takes the classifier's first available reading. It waits while the stream has
// not produced a frame. Any other error, or ctx ending first, falls through to
// Unclassified.
func ReadOnce(ctx context.Context, c Classifier, logger logging.Logger) Classification {
	for {
		cls, err := c.Height(ctx)
		if err == nil {
			return cls
		}
		if !errors.Is(err, ErrNotStreaming) {
			logger.Warnw("classification unavailable, using default plan", "error", err)
			return Unclassified
		}
		if !goutils.SelectContextOrWait(ctx, firstFramePoll) {
			logger.Warnw("classifier never produced a frame, using default plan", "error", ctx.Err())
			return Unclassified
		}
	}
}

// StableOptions controls ReadStable.
type StableOptions struct {
	// Required is how many consecutive equal readings count as stable.
	Required int
	// Interval is the wait between readings.
	Interval time.Duration
	// Timeout bounds the whole wait, including the wait for a first frame. Zero waits
	// for as long as ctx allows.
	Timeout time.Duration
}

// ReadStable polls the classifier until Required consecutive readings agree or Timeout
// elapses. On timeout it returns Unclassified. With Required of one or less it is ReadOnce
// bounded by Timeout. An error is only returned if ctx itself is done.
func ReadStable(ctx context.Context, c Classifier, opts StableOptions, logger logging.Logger) (Classification, error) {
	var (
		waitCtx context.Context
		cancel  context.CancelFunc
	)
	if opts.Timeout > 0 {
		waitCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
	} else {
		waitCtx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	if opts.Required <= 1 {
		return ReadOnce(waitCtx, c, logger), ctx.Err()
	}

	var (
		last   Classification
		streak int
	)
	for {
		cls, err := c.Height(waitCtx)
		switch {
		case err != nil:
			streak = 0
			logger.Debugw("classifier not ready", "error", err)
		case streak > 0 && cls == last:
			streak++
		default:
			last, streak = cls, 1
		}
		if streak >= opts.Required {
			return last, nil
		}
		if !goutils.SelectContextOrWait(waitCtx, opts.Interval) {
			if err := ctx.Err(); err != nil {
				return Unclassified, err
			}
			logger.Warnw("classification never settled, using default plan",
				"last", last, "streak", streak, "timeout", opts.Timeout)
			return Unclassified, nil
		}
	}
}
