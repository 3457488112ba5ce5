// Package errno defines the sentinel errors of the LLM connector layer.
// Connector failures are fail-fast: they propagate to the caller instead of
// degrading, unlike tool-layer failures.
package errno

import (
	"errors"
)

var (
	// ErrUnsupportedProvider is returned when a request names a provider
	// with no registered connector plugin.
	ErrUnsupportedProvider = errors.New("unsupported provider")

	// ErrProviderNotConfigured is returned when a registered provider has
	// no usable configuration (missing API key or base URL).
	ErrProviderNotConfigured = errors.New("provider not configured")

	// ErrSmallFastModelUnset is returned when an organization has no
	// small/fast model configured but a tool-internal call requires one.
	ErrSmallFastModelUnset = errors.New("small/fast model not configured for organization")

	// ErrNoDefaultModel is returned when a request names no model and no
	// default is configured.
	ErrNoDefaultModel = errors.New("no default model configured")
)
