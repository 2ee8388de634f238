package translate

import (
	"context"
	"fmt"

	"github.com/inodb/vrs-go/internal/seqrepo"
	"github.com/inodb/vrs-go/internal/vrs"
)

// FromHGVSCopyNumberChange translates an HGVS genomic deletion/duplication
// region ("<accession>:g.<start>_<end>del" or "...dup") plus a copyChange
// label or CURIE into a VRS CopyNumberChange (spec §8 scenario 6: a
// qualitative ploidy state over a region, not a sequence edit). Only the
// region's bounds are used; any replaced sequence the edit names (e.g.
// "del<seq>") is ignored, since CopyNumberChange carries no alt sequence.
func FromHGVSCopyNumberChange(ctx context.Context, repo seqrepo.Repository, expr, copyChange string, opts Options) (vrs.CopyNumberChange, error) {
	accession, edit, err := splitHGVS(expr, "g.")
	if err != nil {
		return vrs.CopyNumberChange{}, err
	}
	he, err := parseHGVSEdit(edit)
	if err != nil {
		return vrs.CopyNumberChange{}, err
	}
	if he.kind != hgvsKindDeletion && he.kind != hgvsKindDuplication {
		return vrs.CopyNumberChange{}, fmt.Errorf("%w: copy number change region must be a deletion or duplication span, got %q", ErrInvalidInput, edit)
	}

	cc, err := vrs.ParseCopyChange(copyChange)
	if err != nil {
		return vrs.CopyNumberChange{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	refget, err := resolveReference(ctx, repo, accession, opts.DefaultAssembly)
	if err != nil {
		return vrs.CopyNumberChange{}, fmt.Errorf("resolve reference identifier: %w", err)
	}

	start, end := he.pos1based-1, he.endPos1based
	cn := vrs.CopyNumberChange{
		Location: vrs.Inline(vrs.SequenceLocation{
			SequenceReference: vrs.SequenceReference{
				RefgetAccession: refget,
				ResidueAlphabet: opts.Alphabet,
			},
			Start: vrs.Definite(start),
			End:   vrs.Definite(end),
		}),
		CopyChange: cc,
	}

	if !opts.Identify {
		return cn, nil
	}
	return cn.WithIdentifiers()
}
