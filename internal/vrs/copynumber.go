package vrs

import (
	"fmt"

	"github.com/inodb/vrs-go/internal/digest"
)

// CopyNumberCount is an absolute count of sequence copies at a location
// (spec §3). Identifiable.
type CopyNumberCount struct {
	ID       string
	Digest   string
	Location ObjectOrRef[SequenceLocation]
	Copies   Number

	Label       string
	Description string
}

func (CopyNumberCount) TypePrefix() string { return "CN" }

func (c CopyNumberCount) CanonicalFields() map[string]any {
	locID, _ := resolveRef(c.Location)
	return map[string]any{
		"type":     "CopyNumberCount",
		"location": locID,
		"copies":   canonicalNumber(c.Copies),
	}
}

// Identify computes c's identifier without mutating c.
func (c CopyNumberCount) Identify() (string, error) {
	if _, err := resolveRef(c.Location); err != nil {
		return "", fmt.Errorf("identify copy number count: %w", err)
	}
	return digest.Identify(c)
}

// WithIdentifiers returns a copy of c with ID and Digest populated,
// identifying an inlined Location first.
func (c CopyNumberCount) WithIdentifiers() (CopyNumberCount, error) {
	out := c
	if loc, ok := c.Location.Inlined(); ok {
		idLoc, err := loc.WithIdentifiers()
		if err != nil {
			return CopyNumberCount{}, fmt.Errorf("identify copy number count location: %w", err)
		}
		out.Location = Inline(idLoc)
	}
	id, err := out.Identify()
	if err != nil {
		return CopyNumberCount{}, err
	}
	d, err := digest.Digest(out)
	if err != nil {
		return CopyNumberCount{}, err
	}
	out.ID, out.Digest = id, d
	return out, nil
}

// CopyNumberChange is a qualitative ploidy change at a location (spec §3).
// Identifiable.
type CopyNumberChange struct {
	ID       string
	Digest   string
	Location ObjectOrRef[SequenceLocation]
	CopyChange CopyChange

	Label       string
	Description string
}

func (CopyNumberChange) TypePrefix() string { return "CX" }

func (c CopyNumberChange) CanonicalFields() map[string]any {
	locID, _ := resolveRef(c.Location)
	return map[string]any{
		"type":       "CopyNumberChange",
		"location":   locID,
		"copyChange": c.CopyChange.CURIE(),
	}
}

// Identify computes c's identifier without mutating c.
func (c CopyNumberChange) Identify() (string, error) {
	if _, err := resolveRef(c.Location); err != nil {
		return "", fmt.Errorf("identify copy number change: %w", err)
	}
	if c.CopyChange.IsZero() {
		return "", fmt.Errorf("%w: copyChange is required", ErrInvalidInput)
	}
	return digest.Identify(c)
}

// WithIdentifiers returns a copy of c with ID and Digest populated,
// identifying an inlined Location first.
func (c CopyNumberChange) WithIdentifiers() (CopyNumberChange, error) {
	out := c
	if loc, ok := c.Location.Inlined(); ok {
		idLoc, err := loc.WithIdentifiers()
		if err != nil {
			return CopyNumberChange{}, fmt.Errorf("identify copy number change location: %w", err)
		}
		out.Location = Inline(idLoc)
	}
	id, err := out.Identify()
	if err != nil {
		return CopyNumberChange{}, err
	}
	d, err := digest.Digest(out)
	if err != nil {
		return CopyNumberChange{}, err
	}
	out.ID, out.Digest = id, d
	return out, nil
}
