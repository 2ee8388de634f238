package translate

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/inodb/vrs-go/internal/seqrepo"
	"github.com/inodb/vrs-go/internal/vrs"
)

// beaconPattern matches "<chr> : <pos> <ref> > <alt>", tolerating the
// whitespace variation Beacon producers commonly emit around the colon.
var beaconPattern = regexp.MustCompile(`^\s*(\S+)\s*:\s*(\d+)\s*([A-Za-z]+)\s*>\s*([A-Za-z]+)\s*$`)

// FromBeacon translates a Beacon-style expression ("<chr> : <pos> <ref> >
// <alt>") into a VRS Allele. Beacon notation is 1-based.
func FromBeacon(ctx context.Context, repo seqrepo.Repository, expr string, opts Options) (vrs.Allele, error) {
	p, err := parseBeacon(expr)
	if err != nil {
		return vrs.Allele{}, err
	}
	return translateFrom(ctx, repo, p, opts)
}

// ToBeacon is intentionally unimplemented: Beacon has no translate_to per
// spec §4.5's capability table.
func ToBeacon(context.Context, seqrepo.Repository, vrs.Allele) (string, error) {
	return "", fmt.Errorf("%w: Beacon", ErrTranslationUnsupported)
}

func parseBeacon(expr string) (parsedExpression, error) {
	m := beaconPattern.FindStringSubmatch(expr)
	if m == nil {
		return parsedExpression{}, fmt.Errorf("%w: Beacon expression %q does not match <chr> : <pos> <ref> > <alt>", ErrInvalidInput, expr)
	}
	chrom, posStr, ref, alt := m[1], m[2], m[3], m[4]

	pos1based, err := strconv.ParseUint(posStr, 10, 64)
	if err != nil || pos1based == 0 {
		return parsedExpression{}, fmt.Errorf("%w: Beacon position %q is not a positive integer", ErrInvalidInput, posStr)
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
