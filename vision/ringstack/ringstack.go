// Package ringstack classifies the ring stack height from the bounding box of the largest
// orange contour in each camera frame.
package ringstack

import (
	"context"
	"sync"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	goutils "go.viam.com/utils"

	"github.com/ringbot/autoseq/logging"
	"github.com/ringbot/autoseq/utils"
	"github.com/ringbot/autoseq/vision"
)

// Detection is the bounding box of the largest ring-colored contour in one frame, in
// pixels. Found is false when no contour was seen.
type Detection struct {
	Found  bool    `json:"found"`
	Width  float64 `json:"width_px"`
	Height float64 `json:"height_px"`
}

// A DetectionSource yields one detection per camera frame.
type DetectionSource interface {
	NextDetection(ctx context.Context) (Detection, error)
}

// Config holds the geometric thresholds of the classifier.
type Config struct {
	// MinWidth is the narrowest box accepted as a ring stack, scaled to the stream width.
	MinWidth float64 `json:"min_width_px"`
	// BoundRatio separates one ring from four: height/width above it is High.
	BoundRatio float64 `json:"bound_ratio"`
	// Window is how many recent frames the median is taken over.
	Window int `json:"window"`
	// FramePeriod is the wait between frames.
	FramePeriod time.Duration `json:"-"`
}

// DefaultConfig matches a 320x240 stream.
func DefaultConfig() Config {
	return Config{MinWidth: 50, BoundRatio: 0.7, Window: 5, FramePeriod: 50 * time.Millisecond}
}

// Validate ensures the thresholds make sense.
func (cfg Config) Validate() error {
	if cfg.MinWidth <= 0 {
		return errors.New("min_width_px must be positive")
	}
	if cfg.BoundRatio <= 0 {
		return errors.New("bound_ratio must be positive")
	}
	if cfg.Window <= 0 {
		return errors.New("window must be positive")
	}
	return nil
}

// Classifier samples a DetectionSource in the background and classifies on demand.
type Classifier struct {
	cfg    Config
	source DetectionSource
	logger logging.Logger

	mu      sync.Mutex
	ratios  []float64
	started bool

	workers *utils.StoppableWorkers
}

var _ vision.Classifier = (*Classifier)(nil)

// NewClassifier returns a classifier over source.
func NewClassifier(cfg Config, source DetectionSource, logger logging.Logger) (*Classifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Classifier{cfg: cfg, source: source, logger: logger}, nil
}

// Start begins sampling frames in the background.
func (c *Classifier) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		return errors.New("ring stack classifier already started")
	}
	c.started = true

	c.workers = utils.NewStoppableWorkers(c.sample)
	return nil
}

// sample reads one frame per period until stopped.
func (c *Classifier) sample(ctx context.Context) {
	for {
		if !goutils.SelectContextOrWait(ctx, c.cfg.FramePeriod) {
			return
		}
		det, err := c.source.NextDetection(ctx)
		if err != nil {
			if ctx.Err() == nil {
				c.logger.Debugw("dropping frame", "error", err)
			}
			continue
		}
		c.observe(det)
	}
}

// observe folds one detection into the sample window. Frames without a usable contour
// count as a zero ratio.
func (c *Classifier) observe(det Detection) {
	ratio := 0.0
	if det.Found && det.Width >= c.cfg.MinWidth {
		ratio = det.Height / det.Width
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ratios = append(c.ratios, ratio)
	if len(c.ratios) > c.cfg.Window {
		c.ratios = c.ratios[len(c.ratios)-c.cfg.Window:]
	}
}

// Height classifies the median aspect ratio of the recent frames.
func (c *Classifier) Height(ctx context.Context) (vision.Classification, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.ratios) == 0 {
		return vision.Unclassified, vision.ErrNotStreaming
	}
	median, err := stats.Median(c.ratios)
	if err != nil {
		return vision.Unclassified, errors.Wrap(err, "cannot compute median aspect ratio")
	}
	return c.classify(median), nil
}

func (c *Classifier) classify(ratio float64) vision.Classification {
	switch {
	case ratio <= 0:
		return vision.Unclassified
	case ratio > c.cfg.BoundRatio:
		return vision.High
	default:
		return vision.Low
	}
}

// Close stops sampling and waits for the background worker.
func (c *Classifier) Close(ctx context.Context) error {
	c.mu.Lock()
	workers := c.workers
	c.mu.Unlock()
	if workers != nil {
		workers.Stop()
	}
	return nil
}

// StaticSource replays a fixed detection forever.
type StaticSource struct {
	Detection Detection
}

// NextDetection returns the fixed detection.
func (s StaticSource) NextDetection(ctx context.Context) (Detection, error) {
	return s.Detection, ctx.Err()
}
