package vrs

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// This file implements the wire (non-canonical) JSON form used for
// persistence and transport (spec §6.3): a convenience encoding, distinct
// from the canonical-serialization form digest.CanonicalFields produces,
// that lets the enref/deref engine round-trip objects through an
// objectstore.Store and lets the CLI read/write VRS objects as JSON files.

// MarshalJSON implements json.Marshaler for ObjectOrRef: a reference
// encodes as a bare string; an inlined value encodes as its own JSON.
func (r ObjectOrRef[T]) MarshalJSON() ([]byte, error) {
	if id, ok := r.ReferenceID(); ok {
		return json.Marshal(id)
	}
	v, ok := r.Inlined()
	if !ok {
		return nil, fmt.Errorf("%w: ObjectOrRef has neither inlined content nor a reference", ErrInvalidInput)
	}
	return json.Marshal(v)
}

// UnmarshalJSON implements json.Unmarshaler for ObjectOrRef: a JSON string
// becomes a reference, anything else is decoded as an inlined T.
func (r *ObjectOrRef[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = Reference[T](s)
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = Inline(v)
	return nil
}

// numberToAny renders a Number as a plain JSON-friendly value.
func numberToAny(n Number) any {
	switch v := n.(type) {
	case Definite:
		return uint64(v)
	case NumberRange:
		return []uint64{v.Lower, v.Upper}
	default:
		return nil
	}
}

// numberFromAny parses a decoded JSON value (float64 or []any, per
// encoding/json's untyped decoding) back into a Number.
func numberFromAny(v any) (Number, error) {
	switch t := v.(type) {
	case float64:
		if t < 0 {
			return nil, fmt.Errorf("%w: negative coordinate %v", ErrInvalidInput, t)
		}
		return Definite(uint64(t)), nil
	case []any:
		if len(t) != 2 {
			return nil, fmt.Errorf("%w: coordinate range must have exactly 2 elements", ErrInvalidInput)
		}
		lower, ok1 := t[0].(float64)
		upper, ok2 := t[1].(float64)
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("%w: coordinate range elements must be numbers", ErrInvalidInput)
		}
		return NumberRange{Lower: uint64(lower), Upper: uint64(upper)}, nil
	default:
		return nil, fmt.Errorf("%w: unrecognized coordinate shape %T", ErrInvalidInput, v)
	}
}

type sequenceLocationWire struct {
	ID                string            `json:"id,omitempty"`
	Digest            string            `json:"digest,omitempty"`
	Type              string            `json:"type"`
	SequenceReference SequenceReference `json:"sequenceReference"`
	Start             any               `json:"start"`
	End               any               `json:"end"`
	Label             string            `json:"label,omitempty"`
	Description       string            `json:"description,omitempty"`
}

// MarshalJSON implements json.Marshaler for SequenceLocation.
func (l SequenceLocation) MarshalJSON() ([]byte, error) {
	return json.Marshal(sequenceLocationWire{
		ID:                l.ID,
		Digest:            l.Digest,
		Type:              "SequenceLocation",
		SequenceReference: l.SequenceReference,
		Start:             numberToAny(l.Start),
		End:               numberToAny(l.End),
		Label:             l.Label,
		Description:       l.Description,
	})
}

// UnmarshalJSON implements json.Unmarshaler for SequenceLocation.
func (l *SequenceLocation) UnmarshalJSON(data []byte) error {
	var w sequenceLocationWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	start, err := numberFromAny(w.Start)
	if err != nil {
		return fmt.Errorf("decode start: %w", err)
	}
	end, err := numberFromAny(w.End)
	if err != nil {
		return fmt.Errorf("decode end: %w", err)
	}
	*l = SequenceLocation{
		ID:                w.ID,
		Digest:            w.Digest,
		SequenceReference: w.SequenceReference,
		Start:             start,
		End:               end,
		Label:             w.Label,
		Description:       w.Description,
	}
	return nil
}

type stateWire struct {
	Type                string `json:"type"`
	Sequence            *string `json:"sequence,omitempty"`
	Length              *uint64 `json:"length,omitempty"`
	RepeatSubunitLength *uint64 `json:"repeatSubunitLength,omitempty"`
	LengthRange         any     `json:"lengthRange,omitempty"`
}

func stateToWire(s State) (stateWire, error) {
	switch v := s.(type) {
	case LiteralSequenceExpression:
		seq := v.Sequence
		return stateWire{Type: "LiteralSequenceExpression", Sequence: &seq}, nil
	case ReferenceLengthExpression:
		length, sub := v.Length, v.RepeatSubunitLength
		return stateWire{Type: "ReferenceLengthExpression", Length: &length, RepeatSubunitLength: &sub}, nil
	case LengthExpression:
		return stateWire{Type: "LengthExpression", LengthRange: numberToAny(v.Length)}, nil
	default:
		return stateWire{}, fmt.Errorf("%w: unknown state type %T", ErrInvalidInput, s)
	}
}

func stateFromWire(w stateWire) (State, error) {
	switch w.Type {
	case "LiteralSequenceExpression":
		if w.Sequence == nil {
			return nil, fmt.Errorf("%w: LiteralSequenceExpression missing sequence", ErrInvalidInput)
		}
		return LiteralSequenceExpression{Sequence: *w.Sequence}, nil
	case "ReferenceLengthExpression":
		if w.Length == nil || w.RepeatSubunitLength == nil {
			return nil, fmt.Errorf("%w: ReferenceLengthExpression missing length fields", ErrInvalidInput)
		}
		return ReferenceLengthExpression{Length: *w.Length, RepeatSubunitLength: *w.RepeatSubunitLength}, nil
	case "LengthExpression":
		n, err := numberFromAny(w.LengthRange)
		if err != nil {
			return nil, fmt.Errorf("decode LengthExpression length: %w", err)
		}
		return LengthExpression{Length: n}, nil
	default:
		return nil, fmt.Errorf("%w: unrecognized state type %q", ErrInvalidInput, w.Type)
	}
}

type alleleWire struct {
	ID          string                        `json:"id,omitempty"`
	Digest      string                        `json:"digest,omitempty"`
	Type        string                        `json:"type"`
	Location    ObjectOrRef[SequenceLocation] `json:"location"`
	State       stateWire                     `json:"state"`
	Label       string                        `json:"label,omitempty"`
	Description string                        `json:"description,omitempty"`
}

// MarshalJSON implements json.Marshaler for Allele.
func (a Allele) MarshalJSON() ([]byte, error) {
	sw, err := stateToWire(a.State)
	if err != nil {
		return nil, err
	}
	return json.Marshal(alleleWire{
		ID:          a.ID,
		Digest:      a.Digest,
		Type:        "Allele",
		Location:    a.Location,
		State:       sw,
		Label:       a.Label,
		Description: a.Description,
	})
}

// UnmarshalJSON implements json.Unmarshaler for Allele.
func (a *Allele) UnmarshalJSON(data []byte) error {
	var w alleleWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	state, err := stateFromWire(w.State)
	if err != nil {
		return err
	}
	*a = Allele{
		ID:          w.ID,
		Digest:      w.Digest,
		Location:    w.Location,
		State:       state,
		Label:       w.Label,
		Description: w.Description,
	}
	return nil
}

type copyNumberCountWire struct {
	ID          string                        `json:"id,omitempty"`
	Digest      string                        `json:"digest,omitempty"`
	Type        string                        `json:"type"`
	Location    ObjectOrRef[SequenceLocation] `json:"location"`
	Copies      any                           `json:"copies"`
	Label       string                        `json:"label,omitempty"`
	Description string                        `json:"description,omitempty"`
}

// MarshalJSON implements json.Marshaler for CopyNumberCount.
func (c CopyNumberCount) MarshalJSON() ([]byte, error) {
	return json.Marshal(copyNumberCountWire{
		ID: c.ID, Digest: c.Digest, Type: "CopyNumberCount",
		Location: c.Location, Copies: numberToAny(c.Copies),
		Label: c.Label, Description: c.Description,
	})
}

// UnmarshalJSON implements json.Unmarshaler for CopyNumberCount.
func (c *CopyNumberCount) UnmarshalJSON(data []byte) error {
	var w copyNumberCountWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	copies, err := numberFromAny(w.Copies)
	if err != nil {
		return fmt.Errorf("decode copies: %w", err)
	}
	*c = CopyNumberCount{
		ID: w.ID, Digest: w.Digest, Location: w.Location, Copies: copies,
		Label: w.Label, Description: w.Description,
	}
	return nil
}

type copyNumberChangeWire struct {
	ID          string                        `json:"id,omitempty"`
	Digest      string                        `json:"digest,omitempty"`
	Type        string                        `json:"type"`
	Location    ObjectOrRef[SequenceLocation] `json:"location"`
	CopyChange  string                        `json:"copyChange"`
	Label       string                        `json:"label,omitempty"`
	Description string                        `json:"description,omitempty"`
}

// MarshalJSON implements json.Marshaler for CopyNumberChange.
func (c CopyNumberChange) MarshalJSON() ([]byte, error) {
	return json.Marshal(copyNumberChangeWire{
		ID: c.ID, Digest: c.Digest, Type: "CopyNumberChange",
		Location: c.Location, CopyChange: c.CopyChange.CURIE(),
		Label: c.Label, Description: c.Description,
	})
}

// UnmarshalJSON implements json.Unmarshaler for CopyNumberChange.
func (c *CopyNumberChange) UnmarshalJSON(data []byte) error {
	var w copyNumberChangeWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	cc, err := ParseCopyChange(w.CopyChange)
	if err != nil {
		return err
	}
	*c = CopyNumberChange{
		ID: w.ID, Digest: w.Digest, Location: w.Location, CopyChange: cc,
		Label: w.Label, Description: w.Description,
	}
	return nil
}
