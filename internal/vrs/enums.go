package vrs

import "fmt"

// ResidueAlphabet constrains the residues a LiteralSequenceExpression may
// use over a given SequenceReference (spec §3 invariant 2).
type ResidueAlphabet string

const (
	AlphabetDNA ResidueAlphabet = "DNA"
	AlphabetRNA ResidueAlphabet = "RNA"
	AlphabetAA  ResidueAlphabet = "AA"
)

var alphabetResidues = map[ResidueAlphabet]string{
	AlphabetDNA: "ACGTN",
	AlphabetRNA: "ACGUN",
	AlphabetAA:  "ACDEFGHIKLMNPQRSTVWYBXZJUO*",
}

// ValidateResidues reports whether seq consists entirely of residues (case
// insensitively) valid for alphabet.
func ValidateResidues(alphabet ResidueAlphabet, seq string) error {
	valid, ok := alphabetResidues[alphabet]
	if !ok {
		return fmt.Errorf("%w: unknown residue alphabet %q", ErrInvalidAlphabet, alphabet)
	}
	for _, r := range seq {
		up := r
		if up >= 'a' && up <= 'z' {
			up -= 'a' - 'A'
		}
		found := false
		for _, v := range valid {
			if v == up {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: residue %q not valid in %s alphabet", ErrInvalidAlphabet, string(r), alphabet)
		}
	}
	return nil
}

// CopyChange is the closed ontology enum of spec §3's CopyNumberChange.
// Modeled as an enumerated variant (not a free string) per the DESIGN NOTES
// guidance in spec §9.
type CopyChange struct {
	label string
	curie string
}

// String returns the human-readable label (e.g. "loss").
func (c CopyChange) String() string { return c.label }

// CURIE returns the ontology term this CopyChange carries on the wire (the
// digest-contributing value), e.g. "efo:0030067" for loss.
func (c CopyChange) CURIE() string { return c.curie }

// IsZero reports whether c is the zero value (no copy-change set).
func (c CopyChange) IsZero() bool { return c.curie == "" }

var (
	CopyChangeRegionalBasePloidy = CopyChange{"regional base ploidy", "efo:0030064"}
	CopyChangeLoss                = CopyChange{"loss", "efo:0030067"}
	CopyChangeLowLevelLoss        = CopyChange{"low-level loss", "efo:0020073"}
	CopyChangeCompleteGenomicLoss = CopyChange{"complete genomic loss", "efo:0030069"}
	CopyChangeGain                = CopyChange{"gain", "efo:0030070"}
	CopyChangeLowLevelGain        = CopyChange{"low-level gain", "efo:0030071"}
	CopyChangeHighLevelGain       = CopyChange{"high-level gain", "efo:0030072"}
	CopyChangeHighLevelLoss       = CopyChange{"high-level loss", "efo:0020065"}
)

var copyChangesByCURIE = map[string]CopyChange{
	CopyChangeRegionalBasePloidy.curie:  CopyChangeRegionalBasePloidy,
	CopyChangeLoss.curie:                CopyChangeLoss,
	CopyChangeLowLevelLoss.curie:        CopyChangeLowLevelLoss,
	CopyChangeCompleteGenomicLoss.curie: CopyChangeCompleteGenomicLoss,
	CopyChangeGain.curie:                CopyChangeGain,
	CopyChangeLowLevelGain.curie:        CopyChangeLowLevelGain,
	CopyChangeHighLevelGain.curie:       CopyChangeHighLevelGain,
	CopyChangeHighLevelLoss.curie:       CopyChangeHighLevelLoss,
}

var copyChangesByLabel = map[string]CopyChange{
	CopyChangeRegionalBasePloidy.label:  CopyChangeRegionalBasePloidy,
	CopyChangeLoss.label:                CopyChangeLoss,
	CopyChangeLowLevelLoss.label:        CopyChangeLowLevelLoss,
	CopyChangeCompleteGenomicLoss.label: CopyChangeCompleteGenomicLoss,
	CopyChangeGain.label:                CopyChangeGain,
	CopyChangeLowLevelGain.label:        CopyChangeLowLevelGain,
	CopyChangeHighLevelGain.label:       CopyChangeHighLevelGain,
	CopyChangeHighLevelLoss.label:       CopyChangeHighLevelLoss,
}

// ParseCopyChange resolves a label (e.g. "loss") or CURIE (e.g.
// "efo:0030067") to its CopyChange, failing for any value outside the
// closed set.
func ParseCopyChange(s string) (CopyChange, error) {
	if cc, ok := copyChangesByCURIE[s]; ok {
		return cc, nil
	}
	if cc, ok := copyChangesByLabel[s]; ok {
		return cc, nil
	}
	return CopyChange{}, fmt.Errorf("%w: unrecognized copyChange %q", ErrInvalidInput, s)
}
