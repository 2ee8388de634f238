package digest

import "errors"

// Error taxonomy for the canonical serializer and digest (spec §7).
var (
	// ErrSerialization is raised when an identifiable sub-object lacks both
	// inlined content and a valid reference when a digest is required.
	ErrSerialization = errors.New("serialization error")

	// ErrInvalidAlphabet is raised when sequence residues violate the
	// enclosing reference's declared alphabet.
	ErrInvalidAlphabet = errors.New("invalid alphabet")
)
