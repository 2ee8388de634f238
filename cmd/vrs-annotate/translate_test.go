package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vrs-go/internal/seqrepo"
	"github.com/inodb/vrs-go/internal/transcriptalign"
	"github.com/inodb/vrs-go/internal/translate"
)

func newTestRepo() seqrepo.Repository {
	repo := seqrepo.NewMemory()
	repo.Register("AAAACAAAA", false, "NC_000001.11", "chr1")
	return repo
}

func TestTranslateFromFormatDispatchesSPDI(t *testing.T) {
	repo := newTestRepo()
	allele, err := translateFromFormat(context.Background(), repo, nil, "spdi", "NC_000001.11:4:C:G", translate.DefaultOptions())
	require.NoError(t, err)
	assert.NotEmpty(t, allele.ID)
}

func TestTranslateFromFormatRejectsUnknownFormat(t *testing.T) {
	repo := newTestRepo()
	_, err := translateFromFormat(context.Background(), repo, nil, "not-a-format", "whatever", translate.DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported --from format")
}

func TestTranslateToFormatDispatchesSPDI(t *testing.T) {
	repo := newTestRepo()
	allele, err := translateFromFormat(context.Background(), repo, nil, "spdi", "NC_000001.11:4:C:G", translate.DefaultOptions())
	require.NoError(t, err)

	out, err := translateToFormat(context.Background(), repo, "spdi", allele)
	require.NoError(t, err)
	assert.Contains(t, out, "G")
}

func TestTranslateFromFormatDispatchesHGVSCoding(t *testing.T) {
	repo := seqrepo.NewMemory()
	repo.Register("AAAACAAAA", false, "1")

	registry := transcriptalign.NewRegistry()
	registry.Add(&transcriptalign.Transcript{
		ID:     "ENST1",
		Chrom:  "1",
		Strand: 1,
		Exons:  []transcriptalign.Exon{{Start: 1, End: 9}},
	})

	allele, err := translateFromFormat(context.Background(), repo, registry, "hgvs_c", "ENST1:c.5C>G", translate.DefaultOptions())
	require.NoError(t, err)
	assert.NotEmpty(t, allele.ID)
}

func TestTranslateFromFormatRejectsHGVSCodingWithoutTranscriptAlignment(t *testing.T) {
	repo := newTestRepo()
	_, err := translateFromFormat(context.Background(), repo, nil, "hgvs_c", "ENST1:c.5C>G", translate.DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transcript_gtf")
}

func TestFromHGVSCopyNumberChangeViaCLIHelper(t *testing.T) {
	repo := seqrepo.NewMemory()
	repo.Register("AAAACAAAA", false, "NC_000014.9")

	cn, err := translate.FromHGVSCopyNumberChange(context.Background(), repo, "NC_000014.9:g.2_9del", "loss", translate.DefaultOptions())
	require.NoError(t, err)
	assert.NotEmpty(t, cn.ID)
}

func TestTranslateToFormatRejectsUnknownFormat(t *testing.T) {
	repo := newTestRepo()
	allele, err := translateFromFormat(context.Background(), repo, nil, "spdi", "NC_000001.11:4:C:G", translate.DefaultOptions())
	require.NoError(t, err)

	_, err = translateToFormat(context.Background(), repo, "not-a-format", allele)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported --to format")
}
