package inject

import (
	"context"

	"github.com/ringbot/autoseq/vision"
)

// Classifier is an injected ring stack classifier. Start and Close succeed unless
// injected.
type Classifier struct {
	vision.Classifier
	StartFunc  func(ctx context.Context) error
	HeightFunc func(ctx context.Context) (vision.Classification, error)
	CloseFunc  func(ctx context.Context) error
}

// Start calls the injected Start or the real version.
func (c *Classifier) Start(ctx context.Context) error {
	if c.StartFunc == nil {
		if c.Classifier == nil {
			return nil
		}
		return c.Classifier.Start(ctx)
	}
	return c.StartFunc(ctx)
}

// Height calls the injected Height or the real version.
func (c *Classifier) Height(ctx context.Context) (vision.Classification, error) {
	if c.HeightFunc == nil {
		return c.Classifier.Height(ctx)
	}
	return c.HeightFunc(ctx)
}

// Close calls the injected Close or the real version.
func (c *Classifier) Close(ctx context.Context) error {
	if c.CloseFunc == nil {
		if c.Classifier == nil {
			return nil
		}
		return c.Classifier.Close(ctx)
	}
	return c.CloseFunc(ctx)
}
