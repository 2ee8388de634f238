package translate

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/inodb/vrs-go/internal/seqrepo"
	"github.com/inodb/vrs-go/internal/vrs"
)

// FromSPDI translates a SPDI expression ("<seq>:<pos>:<del>:<ins>") into a
// VRS Allele (spec §4.5 table: SPDI translate_from).
func FromSPDI(ctx context.Context, repo seqrepo.Repository, expr string, opts Options) (vrs.Allele, error) {
	p, err := parseSPDI(expr)
	if err != nil {
		return vrs.Allele{}, err
	}
	return translateFrom(ctx, repo, p, opts)
}

// ToSPDI translates an Allele into its SPDI expression (spec §4.5: "SPDI
// always returns a single expression"). The sequence field is the first
// repository alias of the location's refget accession that carries no
// namespace prefix (e.g. "NC_000001.11"); when there is none, it is the
// refget accession itself.
func ToSPDI(ctx context.Context, repo seqrepo.Repository, a vrs.Allele) (string, error) {
	loc, ok := a.Location.Inlined()
	if !ok {
		return "", fmt.Errorf("%w: location must be inlined to translate to SPDI", ErrUnrepresentable)
	}
	if vrs.IsRange(loc.Start) || vrs.IsRange(loc.End) {
		return "", fmt.Errorf("%w: range-valued coordinates cannot be expressed in SPDI", ErrUnrepresentable)
	}
	start := loc.Start.(vrs.Definite)
	end := loc.End.(vrs.Definite)

	ins, err := literalSequence(a.State)
	if err != nil {
		return "", err
	}

	s, e := uint64(start), uint64(end)
	del, err := repo.GetSequence(ctx, loc.SequenceReference.RefgetAccession, &s, &e)
	if err != nil {
		return "", fmt.Errorf("fetch deleted reference span: %w", err)
	}

	seqID := loc.SequenceReference.RefgetAccession
	if aliases, err := repo.TranslateIdentifier(ctx, seqID, ""); err == nil {
		for _, alias := range aliases {
			if alias != seqID && !strings.Contains(alias, ":") {
				seqID = alias
				break
			}
		}
	}

	return fmt.Sprintf("%s:%d:%s:%s", seqID, start, del, ins), nil
}

// parseSPDI parses "<seq>:<pos>:<del>:<ins>" into the common intermediate.
// del is expected as the literal deleted sequence (the common SPDI form);
// the numeric-length shorthand some SPDI producers emit instead is not
// supported here since the parser has no SequenceRepository access to
// resolve a length into reference residues.
func parseSPDI(expr string) (parsedExpression, error) {
	fields := strings.Split(expr, ":")
	if len(fields) != 4 {
		return parsedExpression{}, fmt.Errorf("%w: SPDI expression %q must have 4 colon-delimited fields", ErrInvalidInput, expr)
	}
	seq, posStr, del, ins := fields[0], fields[1], fields[2], fields[3]

	pos, err := strconv.ParseUint(posStr, 10, 64)
	if err != nil {
		return parsedExpression{}, fmt.Errorf("%w: SPDI position %q is not a number", ErrInvalidInput, posStr)
	}
	if _, err := strconv.ParseUint(del, 10, 64); err == nil {
		return parsedExpression{}, fmt.Errorf("%w: SPDI numeric deleted-sequence-length form is not supported, use the literal form", ErrInvalidInput)
	}

	return parsedExpression{
		referenceIdentifier: seq,
		start:               pos,
		end:                 pos + uint64(len(del)),
		ref:                 del,
		alt:                 ins,
	}, nil
}
