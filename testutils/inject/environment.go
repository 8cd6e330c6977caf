package inject

import (
	"context"

	"github.com/ringbot/autoseq/autonomous"
)

// Environment is an injected match environment. WaitForStart returns immediately unless
// injected.
type Environment struct {
	autonomous.Environment
	WaitForStartFunc func(ctx context.Context) error
	IsActiveFunc     func() bool
}

// WaitForStart calls the injected WaitForStart or the real version.
func (e *Environment) WaitForStart(ctx context.Context) error {
	if e.WaitForStartFunc == nil {
		if e.Environment == nil {
			return nil
		}
		return e.Environment.WaitForStart(ctx)
	}
	return e.WaitForStartFunc(ctx)
}

// IsActive calls the injected IsActive or the real version.
func (e *Environment) IsActive() bool {
	if e.IsActiveFunc == nil {
		return e.Environment.IsActive()
	}
	return e.IsActiveFunc()
}
