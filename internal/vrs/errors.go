package vrs

import "errors"

// Error taxonomy (spec §7), shared across the object model and its
// consumers. Each kind is a distinct sentinel, wrapped with fmt.Errorf so
// callers can still errors.Is against it while reading a specific message.
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidAlphabet  = errors.New("invalid alphabet")
	ErrUnknownReference = errors.New("unknown reference")
)
