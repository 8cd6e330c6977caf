package vision

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Classification is the ring stack height sensed before the run starts.
type Classification int

const (
	// Unclassified is the default used when the stack could not be told apart as Low or
	// High, including an empty stack.
	Unclassified Classification = iota
	// Low is a single ring.
	Low
	// High is a four ring stack.
	High
)

// Classifications lists every value in declaration order.
var Classifications = []Classification{Unclassified, Low, High}

func (c Classification) String() string {
	switch c {
	case Unclassified:
		return "unclassified"
	case Low:
		return "low"
	case High:
		return "high"
	default:
		return fmt.Sprintf("Classification(%d)", int(c))
	}
}

// ParseClassification parses the lowercase names returned by String. "one" and "four"
// are accepted as aliases for Low and High, "zero" and "default" for Unclassified.
func ParseClassification(s string) (Classification, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "unclassified", "default", "zero", "none":
		return Unclassified, nil
	case "low", "one":
		return Low, nil
	case "high", "four":
		return High, nil
	}
	return Unclassified, errors.Errorf("unknown classification %q", s)
}

// MarshalJSON encodes the classification by name.
func (c Classification) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes a classification name.
func (c *Classification) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseClassification(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
