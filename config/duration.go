package config

import (
	"fmt"
	"time"

	"github.com/xy-planning-network/rest"
)

// A Duration is a time.Duration written as a string, e.g., "5s".
type Duration time.Duration

// UnmarshalText parses text with time.ParseDuration.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("%w: duration %q: %s", rest.ErrNotValid, text, err)
	}

	*d = Duration(parsed)
	return nil
}

// MarshalText formats d with time.Duration.String.
func (d Duration) MarshalText() ([]byte, error) { return []byte(time.Duration(d).String()), nil }

func (d Duration) Std() time.Duration { return time.Duration(d) }
