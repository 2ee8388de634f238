// Package translate implements the format translators of spec §4.5: a
// shared translate_from pipeline (parse → validate → resolve reference →
// optionally check the reference allele → normalize → identify) driven by
// format-specific parsers, and the inverse translate_to per format.
package translate

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/inodb/vrs-go/internal/normalize"
	"github.com/inodb/vrs-go/internal/seqrepo"
	"github.com/inodb/vrs-go/internal/vrs"
)

// validate runs struct-tag validation on every parsedExpression before it
// reaches the repository: each format parser is trusted to fill in the
// fields syntactically, but not to enforce the cross-field constraints
// (non-empty reference identifier, start <= end) that every format shares.
var validate = validator.New()

// Options configures a translation job; shared by every format's
// translate_from (spec §4.5: "All translators share..."). The translate_to
// functions take no Options.
type Options struct {
	DefaultAssembly   string
	Alphabet          vrs.ResidueAlphabet
	Normalize         bool
	Identify          bool
	RequireValidation bool
}

// DefaultOptions returns the spec's documented defaults: normalize=true,
// identify=true.
func DefaultOptions() Options {
	return Options{
		DefaultAssembly: "GRCh38",
		Alphabet:        vrs.AlphabetDNA,
		Normalize:       true,
		Identify:        true,
	}
}

// parsedExpression is the common intermediate every format parser produces
// (spec §4.5 step 1): a reference identifier plus an interbase interval and
// the ref/alt residues observed there.
type parsedExpression struct {
	referenceIdentifier string
	start, end          uint64
	ref, alt            string
}

// expressionConstraints mirrors parsedExpression's cross-field invariants
// in an exported, validator-tagged shape (validator only inspects exported
// fields), so every format's parser output is checked the same way before
// it reaches the repository.
type expressionConstraints struct {
	ReferenceIdentifier string `validate:"required"`
	Start               uint64
	End                 uint64 `validate:"gtefield=Start"`
}

// resolveReference derives identifier's refget accession, preferring an
// assembly-qualified alias (e.g. "GRCh38:5") when assembly is set and the
// repository knows that alias, and falling back to identifier as given
// otherwise. This lets a bare chromosome name like gnomAD's "5" resolve
// against the assembly the caller declared rather than an ambiguous
// identifier the repository might know under several assemblies.
func resolveReference(ctx context.Context, repo seqrepo.Repository, identifier, assembly string) (string, error) {
	if assembly != "" && !strings.Contains(identifier, ":") {
		qualified := assembly + ":" + identifier
		if refget, err := repo.DeriveRefgetAccession(ctx, qualified); err == nil {
			return refget, nil
		}
	}
	return repo.DeriveRefgetAccession(ctx, identifier)
}

// translateFrom runs the common pipeline (spec §4.5, "Common pipeline
// (translate_from)") shared by every format.
func translateFrom(ctx context.Context, repo seqrepo.Repository, p parsedExpression, opts Options) (vrs.Allele, error) {
	if err := validate.Struct(expressionConstraints{
		ReferenceIdentifier: p.referenceIdentifier,
		Start:               p.start,
		End:                 p.end,
	}); err != nil {
		return vrs.Allele{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	refget, err := resolveReference(ctx, repo, p.referenceIdentifier, opts.DefaultAssembly)
	if err != nil {
		return vrs.Allele{}, fmt.Errorf("resolve reference identifier: %w", err)
	}

	if opts.RequireValidation {
		observed, err := repo.GetSequence(ctx, refget, &p.start, &p.end)
		if err != nil {
			return vrs.Allele{}, fmt.Errorf("fetch reference for validation: %w", err)
		}
		if observed != p.ref {
			return vrs.Allele{}, fmt.Errorf("%w: expected %q at [%d,%d), found %q", ErrRefMismatch, p.ref, p.start, p.end, observed)
		}
	}

	allele := vrs.Allele{
		Location: vrs.Inline(vrs.SequenceLocation{
			SequenceReference: vrs.SequenceReference{
				RefgetAccession: refget,
				ResidueAlphabet: opts.Alphabet,
			},
			Start: vrs.Definite(p.start),
			End:   vrs.Definite(p.end),
		}),
		State: vrs.LiteralSequenceExpression{Sequence: p.alt},
	}

	if opts.Normalize {
		normalized, err := normalize.Allele(ctx, allele, repo)
		if err != nil {
			return vrs.Allele{}, fmt.Errorf("normalize: %w", err)
		}
		allele = normalized
	}

	if opts.Identify {
		identified, err := allele.WithIdentifiers()
		if err != nil {
			return vrs.Allele{}, fmt.Errorf("identify: %w", err)
		}
		allele = identified
	}

	return allele, nil
}

// literalSequence extracts the literal alternate sequence of an Allele's
// state, for formats whose translate_to requires a concrete sequence.
// Any other state, including a ReferenceLengthExpression (whose expansion
// would need a SequenceRepository lookup of the repeat unit), fails with
// ErrUnrepresentable.
func literalSequence(state vrs.State) (string, error) {
	lse, ok := state.(vrs.LiteralSequenceExpression)
	if !ok {
		return "", fmt.Errorf("%w: state %T has no literal sequence", ErrUnrepresentable, state)
	}
	return lse.Sequence, nil
}
