package translate

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/inodb/vrs-go/internal/seqrepo"
	"github.com/inodb/vrs-go/internal/vrs"
)

// FromGnomAD translates a gnomAD-style expression ("<chr>-<pos>-<ref>-<alt>")
// into a VRS Allele. gnomAD notation is 1-based; pos is converted to
// interbase before the common pipeline runs.
func FromGnomAD(ctx context.Context, repo seqrepo.Repository, expr string, opts Options) (vrs.Allele, error) {
	p, err := parseGnomAD(expr)
	if err != nil {
		return vrs.Allele{}, err
	}
	return translateFrom(ctx, repo, p, opts)
}

// ToGnomAD is intentionally unimplemented: gnomAD has no translate_to per
// spec §4.5's capability table.
func ToGnomAD(context.Context, seqrepo.Repository, vrs.Allele) (string, error) {
	return "", fmt.Errorf("%w: gnomAD", ErrTranslationUnsupported)
}

func parseGnomAD(expr string) (parsedExpression, error) {
	fields := strings.Split(expr, "-")
	if len(fields) != 4 {
		return parsedExpression{}, fmt.Errorf("%w: gnomAD expression %q must have 4 hyphen-delimited fields", ErrInvalidInput, expr)
	}
	chrom, posStr, ref, alt := fields[0], fields[1], fields[2], fields[3]

	pos1based, err := strconv.ParseUint(posStr, 10, 64)
	if err != nil || pos1based == 0 {
		return parsedExpression{}, fmt.Errorf("%w: gnomAD position %q is not a positive integer", ErrInvalidInput, posStr)
	}

	start := pos1based - 1
	return parsedExpression{
		referenceIdentifier: chrom,
		start:               start,
		end:                 start + uint64(len(ref)),
		ref:                 ref,
		alt:                 alt,
	}, nil
}
