// Package options provides shared validation for functional options.
package options

import "github.com/erraggy/clientdocs/oaserrors"

// ValidateSingleInputSource ensures exactly one input source is specified.
// Each element of sources reports whether that source was set. The returned
// error is a *oaserrors.ConfigError carrying noSourceMsg or multiSourceMsg.
func ValidateSingleInputSource(noSourceMsg, multiSourceMsg string, sources ...bool) error {
	count := 0
	for _, set := range sources {
		if set {
			count++
		}
	}

	switch {
	case count == 0:
		return &oaserrors.ConfigError{Option: "input source", Message: noSourceMsg}
	case count > 1:
		return &oaserrors.ConfigError{Option: "input source", Value: count, Message: multiSourceMsg}
	default:
		return nil
	}
}
