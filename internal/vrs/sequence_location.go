package vrs

import "fmt"

// SequenceLocation is a half-open interbase interval on a SequenceReference
// (spec §3). It is independently identifiable.
type SequenceLocation struct {
	ID                string
	Digest            string
	SequenceReference SequenceReference
	Start             Number
	End               Number

	Label       string
	Description string
}

// TypePrefix implements digest.Serializable.
func (SequenceLocation) TypePrefix() string { return "SL" }

// CanonicalFields implements digest.Serializable.
func (l SequenceLocation) CanonicalFields() map[string]any {
	return map[string]any{
		"type":              "SequenceLocation",
		"sequenceReference": l.SequenceReference.canonicalMap(),
		"start":             canonicalNumber(l.Start),
		"end":               canonicalNumber(l.End),
	}
}

// Length returns the definite reference-span length (end - start), and
// false if either bound is range-valued and therefore has no single
// definite length (spec §9 Open Question (a)).
func (l SequenceLocation) Length() (uint64, bool) {
	s, ok := l.Start.(Definite)
	if !ok {
		return 0, false
	}
	e, ok := l.End.(Definite)
	if !ok {
		return 0, false
	}
	if uint64(e) < uint64(s) {
		return 0, false
	}
	return uint64(e) - uint64(s), true
}

// Validate checks spec §3 invariant 1 for a linear reference of the given
// length: 0 <= start <= end <= sequenceLength. Range-valued bounds are
// accepted as-is (Open Question (a)); only definite bounds are checked
// against each other and against sequenceLength.
func (l SequenceLocation) Validate(sequenceLength uint64) error {
	if s, ok := l.Start.(Definite); ok {
		if e, ok := l.End.(Definite); ok {
			if uint64(s) > uint64(e) {
				return fmt.Errorf("%w: start %d > end %d", ErrInvalidInput, s, e)
			}
		}
		if uint64(s) > sequenceLength {
			return fmt.Errorf("%w: start %d exceeds sequence length %d", ErrInvalidInput, s, sequenceLength)
		}
	}
	if e, ok := l.End.(Definite); ok {
		if uint64(e) > sequenceLength {
			return fmt.Errorf("%w: end %d exceeds sequence length %d", ErrInvalidInput, e, sequenceLength)
		}
	}
	return nil
}
