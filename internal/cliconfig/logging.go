package cliconfig

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// ParseLevel maps the log-level setting onto a zerolog level.
func ParseLevel(s string) (zerolog.Level, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil {
		return zerolog.InfoLevel, fmt.Errorf("log-level %q: %w (use trace, debug, info, warn, or error)", s, err)
	}
	return lvl, nil
}
