// Package telemetry implements the driver-station style key/value display. Writes are
// best effort and never block the control loop.
package telemetry

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/samber/lo"

	"github.com/ringbot/autoseq/logging"
)

// A Sink collects key/value pairs and publishes them on Update.
type Sink interface {
	// AddData stages a value. Staging the same key twice keeps the latest value.
	AddData(key string, value interface{})
	// Update publishes the staged values.
	Update()
}

type entry struct {
	key   string
	value interface{}
}

// LoggingSink publishes staged values as one structured log line, at most once per
// MinInterval.
type LoggingSink struct {
	mu          sync.Mutex
	logger      logging.Logger
	clk         clock.Clock
	minInterval time.Duration
	lastFlush   time.Time
	staged      []entry
	flushes     int
}

var _ Sink = (*LoggingSink)(nil)

// NewLoggingSink returns a sink logging through logger. A zero minInterval flushes on every
// Update.
func NewLoggingSink(logger logging.Logger, clk clock.Clock, minInterval time.Duration) *LoggingSink {
	return &LoggingSink{logger: logger, clk: clk, minInterval: minInterval}
}

// AddData stages a value.
func (s *LoggingSink) AddData(key string, value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.staged {
		if s.staged[i].key == key {
			s.staged[i].value = value
			return
		}
	}
	s.staged = append(s.staged, entry{key, value})
}

// Update logs the staged values if MinInterval has passed since the last flush.
func (s *LoggingSink) Update() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clk.Now()
	if len(s.staged) == 0 || (s.flushes > 0 && now.Sub(s.lastFlush) < s.minInterval) {
		return
	}
	kvs := lo.FlatMap(s.staged, func(e entry, _ int) []interface{} {
		return []interface{}{e.key, e.value}
	})
	s.logger.Infow("telemetry", kvs...)
	s.staged = s.staged[:0]
	s.lastFlush = now
	s.flushes++
}

// Recorder keeps everything published to it. It is meant for tests and the simulator.
type Recorder struct {
	mu      sync.Mutex
	staged  map[string]interface{}
	Updates int
	Frames  []map[string]interface{}
}

var _ Sink = (*Recorder)(nil)

// AddData stages a value.
func (r *Recorder) AddData(key string, value interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.staged == nil {
		r.staged = map[string]interface{}{}
	}
	r.staged[key] = value
}

// Update records the staged values as one frame.
func (r *Recorder) Update() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Updates++
	if len(r.staged) == 0 {
		return
	}
	r.Frames = append(r.Frames, r.staged)
	r.staged = nil
}

// Last returns the most recent value published for key.
func (r *Recorder) Last(key string) (interface{}, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.Frames) - 1; i >= 0; i-- {
		if v, ok := r.Frames[i][key]; ok {
			return v, true
		}
	}
	return nil, false
}
