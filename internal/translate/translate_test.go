package translate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vrs-go/internal/seqrepo"
	"github.com/inodb/vrs-go/internal/vrs"
)

// newGenomicRepo registers "AAAACAAAA" (0-based index 4 is the lone C) under
// every alias format the various translators expect to see.
func newGenomicRepo(t *testing.T) seqrepo.Repository {
	t.Helper()
	repo := seqrepo.NewMemory()
	repo.Register("AAAACAAAA", false, "NC_000001.11", "chr1")
	return repo
}

func TestFromSPDITranslatesSubstitution(t *testing.T) {
	repo := newGenomicRepo(t)
	a, err := FromSPDI(context.Background(), repo, "NC_000001.11:4:C:G", DefaultOptions())
	require.NoError(t, err)

	loc, ok := a.Location.Inlined()
	require.True(t, ok)
	assert.Equal(t, vrs.Definite(4), loc.Start)
	assert.Equal(t, vrs.Definite(5), loc.End)
	lse, ok := a.State.(vrs.LiteralSequenceExpression)
	require.True(t, ok)
	assert.Equal(t, "G", lse.Sequence)
	assert.NotEmpty(t, a.ID)
}

func TestFromSPDIRejectsNumericDeletedLengthShorthand(t *testing.T) {
	repo := newGenomicRepo(t)
	_, err := FromSPDI(context.Background(), repo, "NC_000001.11:4:1:G", DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFromSPDIRejectsMalformedExpression(t *testing.T) {
	repo := newGenomicRepo(t)
	_, err := FromSPDI(context.Background(), repo, "NC_000001.11:4:C", DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestToSPDIRoundTripsFromNormalizedAllele(t *testing.T) {
	repo := newGenomicRepo(t)
	a, err := FromSPDI(context.Background(), repo, "NC_000001.11:4:C:G", DefaultOptions())
	require.NoError(t, err)

	expr, err := ToSPDI(context.Background(), repo, a)
	require.NoError(t, err)
	assert.Equal(t, "NC_000001.11:4:C:G", expr)
}

func TestToSPDIRejectsRangeValuedCoordinates(t *testing.T) {
	repo := newGenomicRepo(t)
	a := vrs.Allele{
		Location: vrs.Inline(vrs.SequenceLocation{
			SequenceReference: vrs.SequenceReference{RefgetAccession: "NC_000001.11", ResidueAlphabet: vrs.AlphabetDNA},
			Start:             vrs.NumberRange{Lower: 3, Upper: 5},
			End:               vrs.Definite(5),
		}),
		State: vrs.LiteralSequenceExpression{Sequence: "G"},
	}
	_, err := ToSPDI(context.Background(), repo, a)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnrepresentable)
}

func TestFromGnomADTranslatesSubstitution(t *testing.T) {
	repo := newGenomicRepo(t)
	a, err := FromGnomAD(context.Background(), repo, "chr1-5-C-G", DefaultOptions())
	require.NoError(t, err)

	loc, ok := a.Location.Inlined()
	require.True(t, ok)
	assert.Equal(t, vrs.Definite(4), loc.Start)
	assert.Equal(t, vrs.Definite(5), loc.End)
}

func TestFromGnomADRejectsMalformedExpression(t *testing.T) {
	repo := newGenomicRepo(t)
	_, err := FromGnomAD(context.Background(), repo, "chr1-5-C", DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestToGnomADIsUnsupported(t *testing.T) {
	_, err := ToGnomAD(context.Background(), nil, vrs.Allele{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTranslationUnsupported)
}

func TestFromBeaconTranslatesSubstitution(t *testing.T) {
	repo := newGenomicRepo(t)
	a, err := FromBeacon(context.Background(), repo, "chr1 : 5 C > G", DefaultOptions())
	require.NoError(t, err)

	loc, ok := a.Location.Inlined()
	require.True(t, ok)
	assert.Equal(t, vrs.Definite(4), loc.Start)
	assert.Equal(t, vrs.Definite(5), loc.End)
}

func TestFromBeaconRejectsMalformedExpression(t *testing.T) {
	repo := newGenomicRepo(t)
	_, err := FromBeacon(context.Background(), repo, "not a beacon expression", DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestToBeaconIsUnsupported(t *testing.T) {
	_, err := ToBeacon(context.Background(), nil, vrs.Allele{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTranslationUnsupported)
}

func TestFromHGVSGenomicTranslatesSubstitution(t *testing.T) {
	repo := newGenomicRepo(t)
	a, err := FromHGVSGenomic(context.Background(), repo, "NC_000001.11:g.5C>G", DefaultOptions())
	require.NoError(t, err)

	loc, ok := a.Location.Inlined()
	require.True(t, ok)
	assert.Equal(t, vrs.Definite(4), loc.Start)
	assert.Equal(t, vrs.Definite(5), loc.End)
}

func TestFromHGVSGenomicTranslatesDeletion(t *testing.T) {
	repo := newGenomicRepo(t)
	// "AAAACAAAA", delete the C at 1-based position 5.
	a, err := FromHGVSGenomic(context.Background(), repo, "NC_000001.11:g.5delC", DefaultOptions())
	require.NoError(t, err)

	loc, ok := a.Location.Inlined()
	require.True(t, ok)
	assert.Equal(t, vrs.Definite(4), loc.Start)
	assert.Equal(t, vrs.Definite(5), loc.End)
	lse, ok := a.State.(vrs.LiteralSequenceExpression)
	require.True(t, ok)
	assert.Equal(t, "", lse.Sequence)
}

func TestFromHGVSGenomicTranslatesInsertion(t *testing.T) {
	repo := newGenomicRepo(t)
	// insert "TT" between 1-based positions 4 and 5 (interbase point 4).
	a, err := FromHGVSGenomic(context.Background(), repo, "NC_000001.11:g.4_5insTT", DefaultOptions())
	require.NoError(t, err)

	loc, ok := a.Location.Inlined()
	require.True(t, ok)
	assert.Equal(t, vrs.Definite(4), loc.Start)
	assert.Equal(t, vrs.Definite(4), loc.End)
	lse, ok := a.State.(vrs.LiteralSequenceExpression)
	require.True(t, ok)
	assert.Equal(t, "TT", lse.Sequence)
}

func TestFromHGVSGenomicRejectsNonAdjacentInsertionAnchors(t *testing.T) {
	repo := newGenomicRepo(t)
	_, err := FromHGVSGenomic(context.Background(), repo, "NC_000001.11:g.4_6insTT", DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFromHGVSGenomicTranslatesDelins(t *testing.T) {
	repo := newGenomicRepo(t)
	// delins at a single position: "32862923delinsAC" style, but must not be
	// misclassified by hgvsDeletion's "del([A-Za-z]*)" pattern, which would
	// otherwise also match with ref="insAC".
	a, err := FromHGVSGenomic(context.Background(), repo, "NC_000001.11:g.5delinsGG", DefaultOptions())
	require.NoError(t, err)

	loc, ok := a.Location.Inlined()
	require.True(t, ok)
	assert.Equal(t, vrs.Definite(4), loc.Start)
	assert.Equal(t, vrs.Definite(5), loc.End)
	lse, ok := a.State.(vrs.LiteralSequenceExpression)
	require.True(t, ok)
	assert.Equal(t, "GG", lse.Sequence)
}

func TestFromHGVSGenomicTranslatesDuplication(t *testing.T) {
	repo := newGenomicRepo(t)
	// "AAAACAAAA": duplicating the C at position 5 produces an insertion of
	// "C" immediately after the original C, which then rolls one base left
	// (the preceding reference base also reads "C") to the fully-justified
	// literal replacement "CC" at [4,5).
	a, err := FromHGVSGenomic(context.Background(), repo, "NC_000001.11:g.5dup", DefaultOptions())
	require.NoError(t, err)

	loc, ok := a.Location.Inlined()
	require.True(t, ok)
	assert.Equal(t, vrs.Definite(4), loc.Start)
	assert.Equal(t, vrs.Definite(5), loc.End)
	lse, ok := a.State.(vrs.LiteralSequenceExpression)
	require.True(t, ok)
	assert.Equal(t, "CC", lse.Sequence)
}

func TestFromHGVSGenomicRejectsUnrecognizedEdit(t *testing.T) {
	repo := newGenomicRepo(t)
	_, err := FromHGVSGenomic(context.Background(), repo, "NC_000001.11:g.nonsense", DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFromHGVSGenomicRejectsMissingKindMarker(t *testing.T) {
	repo := newGenomicRepo(t)
	_, err := FromHGVSGenomic(context.Background(), repo, "NC_000001.11:c.5C>G", DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// fakeTranscriptAlignment is a single-exon, forward-strand alignment:
// transcript positions [0,9) map 1:1 onto the genomic interval [100,109) on
// "NC_000001.11".
type fakeTranscriptAlignment struct {
	exons []ExonAlignment
}

func (f fakeTranscriptAlignment) ExonStructure(transcriptAccession string) ([]ExonAlignment, error) {
	if transcriptAccession != "NM_000001.1" {
		return nil, errors.New("unknown transcript")
	}
	return f.exons, nil
}

func newCodingRepo(t *testing.T) (seqrepo.Repository, TranscriptAlignmentRepository) {
	t.Helper()
	repo := seqrepo.NewMemory()
	// the genomic sequence is 104 "A"s followed by a "C" at (0-based) index
	// 104, the position genomicStart=100+offset(4)=104 resolves to.
	genomic := strings.Repeat("A", 104) + "C"
	repo.Register(genomic, false, "NC_000001.11")
	talign := fakeTranscriptAlignment{exons: []ExonAlignment{
		{TranscriptStart: 0, TranscriptEnd: 9, GenomicAccession: "NC_000001.11", GenomicStart: 100, GenomicEnd: 109, Strand: 1},
	}}
	return repo, talign
}

func TestFromHGVSCodingMapsThroughSingleExon(t *testing.T) {
	repo, talign := newCodingRepo(t)
	// transcript-relative substitution at 1-based c.5 maps to genomic
	// interbase [104,105), the C at the end of the poly-A run.
	a, err := FromHGVSCoding(context.Background(), repo, talign, "NM_000001.1:c.5C>G", DefaultOptions())
	require.NoError(t, err)

	loc, ok := a.Location.Inlined()
	require.True(t, ok)
	assert.Equal(t, vrs.Definite(104), loc.Start)
	assert.Equal(t, vrs.Definite(105), loc.End)
}

func TestFromHGVSCodingRejectsDuplication(t *testing.T) {
	repo, talign := newCodingRepo(t)
	_, err := FromHGVSCoding(context.Background(), repo, talign, "NM_000001.1:c.5dup", DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFromHGVSCodingRejectsUnknownTranscript(t *testing.T) {
	repo, talign := newCodingRepo(t)
	_, err := FromHGVSCoding(context.Background(), repo, talign, "NM_999999.1:c.5C>G", DefaultOptions())
	require.Error(t, err)
}

func TestFromHGVSCodingRejectsCoordinateOutsideExonStructure(t *testing.T) {
	repo, talign := newCodingRepo(t)
	_, err := FromHGVSCoding(context.Background(), repo, talign, "NM_000001.1:c.50C>G", DefaultOptions())
	require.Error(t, err)
}

func newProteinRepo(t *testing.T) seqrepo.Repository {
	t.Helper()
	repo := seqrepo.NewMemory()
	repo.Register("MGSDQ", false, "NP_000001.1")
	return repo
}

func TestFromHGVSProteinTranslatesSubstitution(t *testing.T) {
	repo := newProteinRepo(t)
	a, err := FromHGVSProtein(context.Background(), repo, "NP_000001.1:p.Gly2Ser", DefaultOptions())
	require.NoError(t, err)

	loc, ok := a.Location.Inlined()
	require.True(t, ok)
	assert.Equal(t, vrs.Definite(1), loc.Start)
	assert.Equal(t, vrs.Definite(2), loc.End)
	assert.Equal(t, vrs.AlphabetAA, loc.SequenceReference.ResidueAlphabet)
	lse, ok := a.State.(vrs.LiteralSequenceExpression)
	require.True(t, ok)
	assert.Equal(t, "S", lse.Sequence)
}

func TestFromHGVSProteinTranslatesSynonymous(t *testing.T) {
	repo := newProteinRepo(t)
	// "p.Gly2=" asserts no change at position 2; fully-justified
	// normalization reduces this to the identity allele (empty interval,
	// empty literal), not a same-residue substitution.
	a, err := FromHGVSProtein(context.Background(), repo, "NP_000001.1:p.Gly2=", DefaultOptions())
	require.NoError(t, err)

	lse, ok := a.State.(vrs.LiteralSequenceExpression)
	require.True(t, ok)
	assert.Equal(t, "", lse.Sequence)
}

func TestFromHGVSProteinRejectsUnrecognizedAminoAcid(t *testing.T) {
	repo := newProteinRepo(t)
	_, err := FromHGVSProtein(context.Background(), repo, "NP_000001.1:p.Xyz2Ser", DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestToHGVSGenomicListsAllAliasExpressions(t *testing.T) {
	repo := newGenomicRepo(t)
	a, err := FromHGVSGenomic(context.Background(), repo, "NC_000001.11:g.5C>G", DefaultOptions())
	require.NoError(t, err)

	exprs, err := ToHGVSGenomic(context.Background(), repo, a)
	require.NoError(t, err)
	assert.Contains(t, exprs, "NC_000001.11:g.5C>G")
	assert.Contains(t, exprs, "chr1:g.5C>G")
}

func TestToHGVSGenomicFormatsDeletionAndInsertion(t *testing.T) {
	repo := newGenomicRepo(t)

	del, err := FromHGVSGenomic(context.Background(), repo, "NC_000001.11:g.5delC", DefaultOptions())
	require.NoError(t, err)
	delExprs, err := ToHGVSGenomic(context.Background(), repo, del)
	require.NoError(t, err)
	assert.Contains(t, delExprs, "NC_000001.11:g.5_5delC")

	ins, err := FromHGVSGenomic(context.Background(), repo, "NC_000001.11:g.4_5insTT", DefaultOptions())
	require.NoError(t, err)
	insExprs, err := ToHGVSGenomic(context.Background(), repo, ins)
	require.NoError(t, err)
	assert.Contains(t, insExprs, "NC_000001.11:g.4_5insTT")
}

func TestToHGVSGenomicRejectsReferencedLocation(t *testing.T) {
	repo := newGenomicRepo(t)
	a := vrs.Allele{
		Location: vrs.Reference[vrs.SequenceLocation]("ga4gh:SL.abc"),
		State:    vrs.LiteralSequenceExpression{Sequence: "G"},
	}
	_, err := ToHGVSGenomic(context.Background(), repo, a)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnrepresentable)
}

func TestFromGnomADResolvesBareChromosomeViaAssembly(t *testing.T) {
	repo := seqrepo.NewMemory()
	repo.Register("AAAACAAAA", false, "GRCh38:5")

	opts := DefaultOptions()
	opts.DefaultAssembly = "GRCh38"
	a, err := FromGnomAD(context.Background(), repo, "5-5-C-G", opts)
	require.NoError(t, err)

	loc, ok := a.Location.Inlined()
	require.True(t, ok)
	assert.Equal(t, vrs.Definite(4), loc.Start)
	assert.Equal(t, vrs.Definite(5), loc.End)
}

func TestFromGnomADFallsBackWhenAssemblyAliasUnknown(t *testing.T) {
	repo := newGenomicRepo(t)
	opts := DefaultOptions()
	opts.DefaultAssembly = "GRCh37"
	a, err := FromGnomAD(context.Background(), repo, "chr1-5-C-G", opts)
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
}

func TestTranslateFromRequireValidationRejectsReferenceMismatch(t *testing.T) {
	repo := newGenomicRepo(t)
	opts := DefaultOptions()
	opts.RequireValidation = true

	// the real reference at [4,5) is "C", not "T".
	_, err := FromSPDI(context.Background(), repo, "NC_000001.11:4:T:G", opts)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRefMismatch)
}
