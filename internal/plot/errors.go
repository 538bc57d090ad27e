package plot

import "errors"

// Domain errors for renderer operations.
var (
	// ErrNotImplemented indicates an abstract draw primitive was invoked
	// without a concrete implementation. This is a programmer error and
	// always fails loudly.
	ErrNotImplemented = errors.New("plot: draw primitive not implemented")

	// ErrBadOption indicates a malformed or out-of-range option value.
	ErrBadOption = errors.New("plot: invalid option value")

	// ErrUnknownKind indicates no renderer factory is registered for an
	// element kind.
	ErrUnknownKind = errors.New("plot: no renderer registered for element kind")

	// ErrNotRendered indicates Update was called before the first Render.
	ErrNotRendered = errors.New("plot: renderer has not been rendered yet")

	// ErrAlreadyRendered indicates Render was called twice; a renderer is
	// single use per axes region.
	ErrAlreadyRendered = errors.New("plot: renderer already rendered")

	// ErrEmptySequence indicates a renderer was constructed over a
	// sequence with no frames.
	ErrEmptySequence = errors.New("plot: frame sequence is empty")
)
