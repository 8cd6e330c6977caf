package utils

import (
	"github.com/pkg/errors"
)

// NewOutOfRangeError is used when a commanded value falls outside what a device accepts.
func NewOutOfRangeError(what string, val, low, high float64) error {
	return errors.Errorf("%s %.3f out of range [%.3f, %.3f]", what, val, low, high)
}
