package vrs

// State is the sealed sum of the three expression kinds an Allele's state
// may take (spec §3, §4.2): LiteralSequenceExpression, ReferenceLengthExpression,
// LengthExpression. None of these are independently identifiable.
type State interface {
	isState()
	canonicalMap() map[string]any
}

// LiteralSequenceExpression is an explicit string over the reference
// alphabet.
type LiteralSequenceExpression struct {
	Sequence string
}

func (LiteralSequenceExpression) isState() {}

func (e LiteralSequenceExpression) canonicalMap() map[string]any {
	return map[string]any{
		"type":     "LiteralSequenceExpression",
		"sequence": e.Sequence,
	}
}

// ReferenceLengthExpression is the compressed tandem-repeat state: total
// length after the change, and the length of the repeat unit.
type ReferenceLengthExpression struct {
	Length              uint64
	RepeatSubunitLength uint64
}

func (ReferenceLengthExpression) isState() {}

func (e ReferenceLengthExpression) canonicalMap() map[string]any {
	return map[string]any{
		"type":                "ReferenceLengthExpression",
		"length":              e.Length,
		"repeatSubunitLength": e.RepeatSubunitLength,
	}
}

// LengthExpression is a purely numeric length change with no sequence
// content.
type LengthExpression struct {
	Length Number
}

func (LengthExpression) isState() {}

func (e LengthExpression) canonicalMap() map[string]any {
	return map[string]any{
		"type":   "LengthExpression",
		"length": canonicalNumber(e.Length),
	}
}
