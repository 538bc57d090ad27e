package data

import "errors"

// Domain errors for sequence operations.
var (
	// ErrKeyNotFound indicates a selection matched no frames.
	ErrKeyNotFound = errors.New("data: key not found in sequence")

	// ErrBadSelector indicates a selection named a dimension the sequence
	// does not have.
	ErrBadSelector = errors.New("data: selector dimension not in sequence")

	// ErrKeyArity indicates a key whose length does not match the
	// sequence's key dimensions.
	ErrKeyArity = errors.New("data: key length does not match key dimensions")
)
