package vrs

// SequenceReference points to a biological sequence by its refget accession
// (spec §3). It is not independently identifiable — the accession is its
// identity — so TypePrefix returns "" and Identify refuses to mint an id
// for it in isolation.
type SequenceReference struct {
	RefgetAccession string          `json:"refgetAccession"`
	ResidueAlphabet ResidueAlphabet `json:"residueAlphabet,omitempty"`
	Circular        bool            `json:"circular,omitempty"`

	// Annotation fields: excluded from the digest (spec §4.1).
	Label             string   `json:"label,omitempty"`
	Description       string   `json:"description,omitempty"`
	AlternativeLabels []string `json:"alternativeLabels,omitempty"`
}

// TypePrefix implements digest.Serializable. SequenceReference is not
// independently identifiable.
func (SequenceReference) TypePrefix() string { return "" }

// CanonicalFields implements digest.Serializable. Only type and
// refgetAccession contribute to the digest of an enclosing SequenceLocation
// — residueAlphabet and circular are descriptive, not identity-bearing.
func (s SequenceReference) CanonicalFields() map[string]any {
	return map[string]any{
		"type":            "SequenceReference",
		"refgetAccession": s.RefgetAccession,
	}
}

// canonicalMap returns the inlined canonical-JSON shape of s, for embedding
// inside a SequenceLocation's own CanonicalFields.
func (s SequenceReference) canonicalMap() map[string]any {
	return s.CanonicalFields()
}
