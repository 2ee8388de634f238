package translate

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/inodb/vrs-go/internal/seqrepo"
	"github.com/inodb/vrs-go/internal/vrs"
)

// complement maps a single nucleotide to its Watson-Crick complement, for
// mapping reverse-strand transcript alleles onto the genomic plus strand.
var complement = map[byte]byte{'A': 'T', 'T': 'A', 'G': 'C', 'C': 'G', 'N': 'N'}

func reverseComplement(s string) string {
	b := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c, ok := complement[strings.ToUpper(s)[i]]
		if !ok {
			c = 'N'
		}
		b[len(s)-1-i] = c
	}
	return string(b)
}

var (
	hgvsSubstitution = regexp.MustCompile(`^(\d+)([A-Za-z]+)>([A-Za-z]+)$`)
	hgvsDeletion     = regexp.MustCompile(`^(\d+)(?:_(\d+))?del([A-Za-z]*)$`)
	hgvsInsertion    = regexp.MustCompile(`^(\d+)_(\d+)ins([A-Za-z]+)$`)
	hgvsDelins       = regexp.MustCompile(`^(\d+)(?:_(\d+))?delins([A-Za-z]+)$`)
	hgvsDuplication  = regexp.MustCompile(`^(\d+)(?:_(\d+))?dup([A-Za-z]*)$`)
	hgvsProtein      = regexp.MustCompile(`^\(?([A-Za-z]{3})(\d+)([A-Za-z]{3}|=|Ter|\*)\)?$`)
)

type hgvsEditKind int

const (
	hgvsKindSubstitution hgvsEditKind = iota
	hgvsKindDeletion
	hgvsKindInsertion
	hgvsKindDelins
	hgvsKindDuplication
)

// hgvsEdit is the position/ref/alt triple shared by every non-protein HGVS
// variant form, expressed in 1-based HGVS coordinates prior to conversion
// to interbase.
type hgvsEdit struct {
	kind                    hgvsEditKind
	pos1based, endPos1based uint64
	ref, alt                string
}

// parseHGVSEdit parses the portion of an HGVS expression after the "g."/
// "c."/"n." kind marker, covering substitution, deletion, insertion,
// delins, and duplication (spec §4.5's supported HGVS operation set).
func parseHGVSEdit(edit string) (hgvsEdit, error) {
	if m := hgvsSubstitution.FindStringSubmatch(edit); m != nil {
		pos, _ := strconv.ParseUint(m[1], 10, 64)
		return hgvsEdit{kind: hgvsKindSubstitution, pos1based: pos, endPos1based: pos, ref: m[2], alt: m[3]}, nil
	}
	if m := hgvsDelins.FindStringSubmatch(edit); m != nil {
		start, _ := strconv.ParseUint(m[1], 10, 64)
		end := start
		if m[2] != "" {
			end, _ = strconv.ParseUint(m[2], 10, 64)
		}
		return hgvsEdit{kind: hgvsKindDelins, pos1based: start, endPos1based: end, alt: m[3]}, nil
	}
	if m := hgvsInsertion.FindStringSubmatch(edit); m != nil {
		left, _ := strconv.ParseUint(m[1], 10, 64)
		right, _ := strconv.ParseUint(m[2], 10, 64)
		if right != left+1 {
			return hgvsEdit{}, fmt.Errorf("%w: insertion anchors must be adjacent positions, got %s", ErrInvalidInput, edit)
		}
		return hgvsEdit{kind: hgvsKindInsertion, pos1based: left, endPos1based: right, alt: m[3]}, nil
	}
	if m := hgvsDuplication.FindStringSubmatch(edit); m != nil {
		start, _ := strconv.ParseUint(m[1], 10, 64)
		end := start
		if m[2] != "" {
			end, _ = strconv.ParseUint(m[2], 10, 64)
		}
		return hgvsEdit{kind: hgvsKindDuplication, pos1based: start, endPos1based: end}, nil
	}
	if m := hgvsDeletion.FindStringSubmatch(edit); m != nil {
		start, _ := strconv.ParseUint(m[1], 10, 64)
		end := start
		if m[2] != "" {
			end, _ = strconv.ParseUint(m[2], 10, 64)
		}
		return hgvsEdit{kind: hgvsKindDeletion, pos1based: start, endPos1based: end, ref: m[3]}, nil
	}
	return hgvsEdit{}, fmt.Errorf("%w: unrecognized HGVS edit %q", ErrInvalidInput, edit)
}

// FromHGVSGenomic translates an HGVS genomic expression
// ("<accession>:g.<edit>") into a VRS Allele.
func FromHGVSGenomic(ctx context.Context, repo seqrepo.Repository, expr string, opts Options) (vrs.Allele, error) {
	accession, edit, err := splitHGVS(expr, "g.")
	if err != nil {
		return vrs.Allele{}, err
	}
	he, err := parseHGVSEdit(edit)
	if err != nil {
		return vrs.Allele{}, err
	}
	return genomicEditToAllele(ctx, repo, accession, he, opts)
}

// FromHGVSCoding translates an HGVS coding expression
// ("<transcriptAccession>:c.<edit>") into a VRS Allele, mapping
// transcript-relative coordinates onto the transcript's genomic reference
// via talign.
func FromHGVSCoding(ctx context.Context, repo seqrepo.Repository, talign TranscriptAlignmentRepository, expr string, opts Options) (vrs.Allele, error) {
	transcriptAccession, edit, err := splitHGVS(expr, "c.")
	if err != nil {
		return vrs.Allele{}, err
	}
	he, err := parseHGVSEdit(edit)
	if err != nil {
		return vrs.Allele{}, err
	}
	if he.kind == hgvsKindDuplication {
		return vrs.Allele{}, fmt.Errorf("%w: coding-coordinate duplication is not supported, express as an insertion of the duplicated span", ErrInvalidInput)
	}

	exons, err := talign.ExonStructure(transcriptAccession)
	if err != nil {
		return vrs.Allele{}, fmt.Errorf("resolve transcript alignment: %w", err)
	}

	tStart, tEnd := hgvsInterbase(he)
	genomicAccession, gStart, gEnd, err := transcriptToGenomic(exons, tStart, tEnd)
	if err != nil {
		return vrs.Allele{}, fmt.Errorf("map coding coordinate to genome: %w", err)
	}

	strand := genomicStrand(exons)
	alt := he.alt
	if strand < 0 {
		alt = reverseComplement(alt)
	}

	return translateFrom(ctx, repo, parsedExpression{
		referenceIdentifier: genomicAccession,
		start:               gStart,
		end:                 gEnd,
		ref:                 "",
		alt:                 alt,
	}, opts)
}

func genomicStrand(exons []ExonAlignment) int8 {
	if len(exons) == 0 {
		return 1
	}
	return exons[0].Strand
}

// hgvsInterbase converts the 1-based HGVS edit's pos/endPos into a
// half-open interbase interval, per edit kind. Duplication is never passed
// here: both genomicEditToAllele and FromHGVSCoding special-case or reject
// it before reaching this function, since a duplication's replaced span
// differs from its affected span.
func hgvsInterbase(he hgvsEdit) (start, end uint64) {
	if he.kind == hgvsKindInsertion {
		// anchored between adjacent positions pos and pos+1: nothing is
		// replaced, so the interval is the empty interbase point at pos.
		return he.pos1based, he.pos1based
	}
	return he.pos1based - 1, he.endPos1based
}

func genomicEditToAllele(ctx context.Context, repo seqrepo.Repository, accession string, he hgvsEdit, opts Options) (vrs.Allele, error) {
	if he.kind == hgvsKindDuplication {
		start, end := he.pos1based-1, he.endPos1based
		refSpan, err := repo.GetSequence(ctx, accession, &start, &end)
		if err != nil {
			return vrs.Allele{}, fmt.Errorf("fetch duplicated span: %w", err)
		}
		return translateFrom(ctx, repo, parsedExpression{
			referenceIdentifier: accession,
			start:               end,
			end:                 end,
			ref:                 "",
			alt:                 refSpan,
		}, opts)
	}

	start, end := hgvsInterbase(he)
	return translateFrom(ctx, repo, parsedExpression{
		referenceIdentifier: accession,
		start:               start,
		end:                 end,
		ref:                 he.ref,
		alt:                 he.alt,
	}, opts)
}

// splitHGVS splits "<accession>:<marker><edit>" into its accession and edit
// portions, validating the expected kind marker ("g.", "c.", "p.").
func splitHGVS(expr, marker string) (accession, edit string, err error) {
	idx := strings.Index(expr, ":")
	if idx < 0 {
		return "", "", fmt.Errorf("%w: HGVS expression %q missing accession separator", ErrInvalidInput, expr)
	}
	accession = expr[:idx]
	rest := expr[idx+1:]
	if !strings.HasPrefix(rest, marker) {
		return "", "", fmt.Errorf("%w: expected HGVS kind marker %q in %q", ErrInvalidInput, marker, expr)
	}
	return accession, strings.TrimPrefix(rest, marker), nil
}

// aminoAcidThreeToSingle maps three-letter amino acid codes (plus the HGVS
// "Ter"/"*" stop markers) to single-letter codes, the same table the
// teacher's annotate package builds for VCF HGVSp formatting.
var aminoAcidThreeToSingle = map[string]byte{
	"Ala": 'A', "Cys": 'C', "Asp": 'D', "Glu": 'E',
	"Phe": 'F', "Gly": 'G', "His": 'H', "Ile": 'I',
	"Lys": 'K', "Leu": 'L', "Met": 'M', "Asn": 'N',
	"Pro": 'P', "Gln": 'Q', "Arg": 'R', "Ser": 'S',
	"Thr": 'T', "Val": 'V', "Trp": 'W', "Tyr": 'Y',
	"Ter": '*', "*": '*',
}

// FromHGVSProtein translates an HGVS protein substitution
// ("<proteinAccession>:p.Gly12Asp") into a VRS Allele on the protein
// accession's own amino-acid SequenceReference. Deletion/insertion/delins/
// duplication protein forms are not supported: they require inferring the
// affected residues from the underlying codon change, which needs the
// coding-sequence alignment this translator does not have.
func FromHGVSProtein(ctx context.Context, repo seqrepo.Repository, expr string, opts Options) (vrs.Allele, error) {
	accession, edit, err := splitHGVS(expr, "p.")
	if err != nil {
		return vrs.Allele{}, err
	}
	m := hgvsProtein.FindStringSubmatch(edit)
	if m == nil {
		return vrs.Allele{}, fmt.Errorf("%w: unrecognized HGVS protein substitution %q", ErrInvalidInput, edit)
	}
	refThree, posStr, altThree := m[1], m[2], m[3]
	pos, _ := strconv.ParseUint(posStr, 10, 64)

	refSingle, ok := aminoAcidThreeToSingle[refThree]
	if !ok {
		return vrs.Allele{}, fmt.Errorf("%w: unrecognized amino acid %q", ErrInvalidInput, refThree)
	}
	var altSingle byte
	switch altThree {
	case "=":
		altSingle = refSingle
	default:
		s, ok := aminoAcidThreeToSingle[altThree]
		if !ok {
			return vrs.Allele{}, fmt.Errorf("%w: unrecognized amino acid %q", ErrInvalidInput, altThree)
		}
		altSingle = s
	}

	proteinOpts := opts
	proteinOpts.Alphabet = vrs.AlphabetAA

	return translateFrom(ctx, repo, parsedExpression{
		referenceIdentifier: accession,
		start:               pos - 1,
		end:                 pos,
		ref:                 string(refSingle),
		alt:                 string(altSingle),
	}, proteinOpts)
}

// ToHGVSGenomic formats a genomic Allele as every equivalent HGVS genomic
// expression its refget accession has aliases for (spec §4.5: "the result
// is a list of equivalent expressions").
func ToHGVSGenomic(ctx context.Context, repo seqrepo.Repository, a vrs.Allele) ([]string, error) {
	loc, ok := a.Location.Inlined()
	if !ok {
		return nil, fmt.Errorf("%w: location must be inlined to translate to HGVS", ErrUnrepresentable)
	}
	if vrs.IsRange(loc.Start) || vrs.IsRange(loc.End) {
		return nil, fmt.Errorf("%w: range-valued coordinates cannot be expressed in HGVS", ErrUnrepresentable)
	}
	start := uint64(loc.Start.(vrs.Definite))
	end := uint64(loc.End.(vrs.Definite))

	alt, err := literalSequence(a.State)
	if err != nil {
		return nil, err
	}

	aliases, err := repo.TranslateIdentifier(ctx, loc.SequenceReference.RefgetAccession, "")
	if err != nil {
		return nil, fmt.Errorf("resolve aliases: %w", err)
	}

	s, e := start, end
	ref, err := repo.GetSequence(ctx, loc.SequenceReference.RefgetAccession, &s, &e)
	if err != nil {
		return nil, fmt.Errorf("fetch reference span: %w", err)
	}

	var out []string
	for _, alias := range aliases {
		out = append(out, formatHGVSEdit(alias, start, end, ref, alt))
	}
	return out, nil
}

func formatHGVSEdit(accession string, start, end uint64, ref, alt string) string {
	switch {
	case ref == "" && alt != "":
		return fmt.Sprintf("%s:g.%d_%dins%s", accession, start, end+1, alt)
	case alt == "" && ref != "":
		return fmt.Sprintf("%s:g.%d_%ddel%s", accession, start+1, end, ref)
	case len(ref) == 1 && len(alt) == 1:
		return fmt.Sprintf("%s:g.%d%s>%s", accession, start+1, ref, alt)
	default:
		return fmt.Sprintf("%s:g.%d_%ddelins%s", accession, start+1, end, alt)
	}
}
