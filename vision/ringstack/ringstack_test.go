package ringstack

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.viam.com/test"
	goutils "go.viam.com/utils"

	"github.com/ringbot/autoseq/logging"
	"github.com/ringbot/autoseq/vision"
)

func TestClassify(t *testing.T) {
	c, err := NewClassifier(DefaultConfig(), StaticSource{}, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)

	_, err = c.Height(context.Background())
	test.That(t, errors.Is(err, vision.ErrNotStreaming), test.ShouldBeTrue)

	for _, tc := range []struct {
		name     string
		frames   []Detection
		expected vision.Classification
	}{
		{"empty", []Detection{{}, {}, {}}, vision.Unclassified},
		{"too narrow", []Detection{{Found: true, Width: 20, Height: 20}}, vision.Unclassified},
		{"one ring", []Detection{{Found: true, Width: 80, Height: 20}}, vision.Low},
		{"four rings", []Detection{{Found: true, Width: 80, Height: 64}}, vision.High},
		{
			"median rejects a glitch",
			[]Detection{
				{Found: true, Width: 80, Height: 64},
				{Found: true, Width: 80, Height: 64},
				{},
				{Found: true, Width: 80, Height: 20},
				{Found: true, Width: 80, Height: 64},
			},
			vision.High,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			c.ratios = nil
			for _, det := range tc.frames {
				c.observe(det)
			}
			cls, err := c.Height(context.Background())
			test.That(t, err, test.ShouldBeNil)
			test.That(t, cls, test.ShouldEqual, tc.expected)
		})
	}
}

func TestWindowIsBounded(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Window = 3
	c, err := NewClassifier(cfg, StaticSource{}, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	for i := 0; i < 10; i++ {
		c.observe(Detection{Found: true, Width: 80, Height: 20})
	}
	test.That(t, len(c.ratios), test.ShouldEqual, 3)
}

func TestStreaming(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FramePeriod = time.Millisecond
	c, err := NewClassifier(cfg, StaticSource{Detection{Found: true, Width: 100, Height: 90}}, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)

	ctx := context.Background()
	test.That(t, c.Start(ctx), test.ShouldBeNil)
	test.That(t, c.Start(ctx), test.ShouldNotBeNil)

	var cls vision.Classification
	for i := 0; i < 1000; i++ {
		if cls, err = c.Height(ctx); err == nil {
			break
		}
		goutils.SelectContextOrWait(ctx, time.Millisecond)
	}
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cls, test.ShouldEqual, vision.High)
	test.That(t, c.Close(ctx), test.ShouldBeNil)
}

func TestConfigValidate(t *testing.T) {
	test.That(t, DefaultConfig().Validate(), test.ShouldBeNil)
	cfg := DefaultConfig()
	cfg.BoundRatio = 0
	_, err := NewClassifier(cfg, StaticSource{}, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "bound_ratio")
}
