package vrs

import (
	"fmt"

	"github.com/inodb/vrs-go/internal/digest"
)

// Allele is a single state at a location (spec §3). Identifiable.
type Allele struct {
	ID       string
	Digest   string
	Location ObjectOrRef[SequenceLocation]
	State    State

	Label       string
	Description string
	Extensions  []Extension
}

// Extension is an annotation field (spec §4.1 excludes these from the
// digest): an arbitrary name/value pair a consumer attached to an entity.
type Extension struct {
	Name  string
	Value any
}

// TypePrefix implements digest.Serializable.
func (Allele) TypePrefix() string { return "VA" }

// CanonicalFields implements digest.Serializable.
func (a Allele) CanonicalFields() map[string]any {
	// A malformed Location (neither inlined nor referenced) yields an empty
	// id here; Identify and WithIdentifiers validate it explicitly first,
	// so this path is only reached once resolution is known to succeed.
	locID, _ := resolveRef(a.Location)
	return map[string]any{
		"type":     "Allele",
		"location": locID,
		"state":    a.State.canonicalMap(),
	}
}

// Identify computes a's identifier without mutating a, failing with
// ErrSerialization if its location cannot be resolved to an id.
func (a Allele) Identify() (string, error) {
	if _, err := resolveRef(a.Location); err != nil {
		return "", fmt.Errorf("identify allele: %w", err)
	}
	return digest.Identify(a)
}

// WithIdentifiers returns a copy of a with ID and Digest populated from its
// current content, recursively identifying an inlined Location first
// (spec §4.3's bottom-up ordering guarantee).
func (a Allele) WithIdentifiers() (Allele, error) {
	out := a
	if loc, ok := a.Location.Inlined(); ok {
		idLoc, err := loc.WithIdentifiers()
		if err != nil {
			return Allele{}, fmt.Errorf("identify allele location: %w", err)
		}
		out.Location = Inline(idLoc)
	}
	id, err := out.Identify()
	if err != nil {
		return Allele{}, err
	}
	d, err := digest.Digest(out)
	if err != nil {
		return Allele{}, err
	}
	out.ID = id
	out.Digest = d
	return out, nil
}

// WithIdentifiers returns a copy of l with ID and Digest populated.
func (l SequenceLocation) WithIdentifiers() (SequenceLocation, error) {
	out := l
	id, err := digest.Identify(out)
	if err != nil {
		return SequenceLocation{}, err
	}
	d, err := digest.Digest(out)
	if err != nil {
		return SequenceLocation{}, err
	}
	out.ID = id
	out.Digest = d
	return out, nil
}
