// Package vrs implements the GA4GH VRS object model: the tagged entities of
// spec §3 (SequenceReference, SequenceLocation, LiteralSequenceExpression,
// ReferenceLengthExpression, LengthExpression, Allele, CopyNumberCount,
// CopyNumberChange), their invariants, and their canonical digest wiring.
package vrs

import (
	"fmt"

	"github.com/inodb/vrs-go/internal/digest"
)

// ObjectOrRef is the "maybe inlined, maybe a reference" slot design note
// from spec §9: a sealed sum of an inlined value or a bare identifier
// string, never a nullable field.
type ObjectOrRef[T any] struct {
	inlined   *T
	reference string
}

// Inline wraps an inlined object in an ObjectOrRef.
func Inline[T any](v T) ObjectOrRef[T] {
	return ObjectOrRef[T]{inlined: &v}
}

// Reference wraps a bare "ga4gh:..." identifier in an ObjectOrRef.
func Reference[T any](id string) ObjectOrRef[T] {
	return ObjectOrRef[T]{reference: id}
}

// IsReferenced reports whether the slot holds a bare identifier rather than
// an inlined object.
func (r ObjectOrRef[T]) IsReferenced() bool { return r.inlined == nil }

// Inlined returns the inlined object and true, or the zero value and false
// if this slot holds a reference.
func (r ObjectOrRef[T]) Inlined() (T, bool) {
	if r.inlined == nil {
		var zero T
		return zero, false
	}
	return *r.inlined, true
}

// ReferenceID returns the bare identifier and true, or "" and false if this
// slot holds an inlined object.
func (r ObjectOrRef[T]) ReferenceID() (string, bool) {
	if r.inlined != nil {
		return "", false
	}
	return r.reference, true
}

// resolveRef returns the ga4gh: identifier for an ObjectOrRef slot: the
// reference id directly if referenced, or the freshly computed identifier of
// the inlined object if inlined. Computing the identifier never mutates obj.
func resolveRef[T digest.Serializable](r ObjectOrRef[T]) (string, error) {
	if id, ok := r.ReferenceID(); ok {
		if id == "" {
			return "", fmt.Errorf("%w: empty reference", digest.ErrSerialization)
		}
		return id, nil
	}
	obj, ok := r.Inlined()
	if !ok {
		return "", fmt.Errorf("%w: ObjectOrRef has neither inlined content nor a reference", digest.ErrSerialization)
	}
	return digest.Identify(obj)
}

// Number is the "non-negative integer or interval" sum used for location
// coordinates and copy counts (spec §3, §9): a sealed tagged union so
// callers pattern-match with a type switch instead of reflection.
type Number interface {
	isNumber()
}

// Definite is an exact, unambiguous coordinate or count.
type Definite uint64

func (Definite) isNumber() {}

// NumberRange is an uncertain bound: a two-element [Lower, Upper] interval
// with Lower <= Upper.
type NumberRange struct {
	Lower uint64
	Upper uint64
}

func (NumberRange) isNumber() {}

// canonicalNumber renders a Number into its canonical-JSON shape: an
// integer for Definite, a two-element array for NumberRange.
func canonicalNumber(n Number) any {
	switch v := n.(type) {
	case Definite:
		return uint64(v)
	case NumberRange:
		return []any{v.Lower, v.Upper}
	default:
		return nil
	}
}

// IsRange reports whether n carries an uncertain (range-valued) bound.
func IsRange(n Number) bool {
	_, ok := n.(NumberRange)
	return ok
}
