package transcriptalign

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExonStructureForwardStrandAssignsAscendingOffsets(t *testing.T) {
	r := NewRegistry()
	r.Add(&Transcript{
		ID:     "ENST1",
		Chrom:  "1",
		Strand: 1,
		Exons:  []Exon{{Start: 100, End: 150}, {Start: 300, End: 400}},
	})

	exons, err := r.ExonStructure("ENST1")
	require.NoError(t, err)
	require.Len(t, exons, 2)

	assert.Equal(t, uint64(0), exons[0].TranscriptStart)
	assert.Equal(t, uint64(51), exons[0].TranscriptEnd)
	assert.Equal(t, uint64(99), exons[0].GenomicStart)
	assert.Equal(t, uint64(150), exons[0].GenomicEnd)

	assert.Equal(t, uint64(51), exons[1].TranscriptStart)
	assert.Equal(t, uint64(152), exons[1].TranscriptEnd)
	assert.Equal(t, uint64(299), exons[1].GenomicStart)
	assert.Equal(t, uint64(400), exons[1].GenomicEnd)
}

func TestExonStructureReverseStrandOrdersFrom3PrimeEnd(t *testing.T) {
	r := NewRegistry()
	r.Add(&Transcript{
		ID:     "ENST2",
		Chrom:  "1",
		Strand: -1,
		Exons:  []Exon{{Start: 100, End: 150}, {Start: 300, End: 400}},
	})

	exons, err := r.ExonStructure("ENST2")
	require.NoError(t, err)
	require.Len(t, exons, 2)

	// The higher-genomic-coordinate exon comes first in transcript order
	// on the reverse strand.
	assert.Equal(t, uint64(299), exons[0].GenomicStart)
	assert.Equal(t, uint64(0), exons[0].TranscriptStart)
	assert.Equal(t, uint64(101), exons[0].TranscriptEnd)

	assert.Equal(t, uint64(99), exons[1].GenomicStart)
	assert.Equal(t, uint64(101), exons[1].TranscriptStart)
	assert.Equal(t, uint64(152), exons[1].TranscriptEnd)
}

func TestExonStructureRejectsUnknownTranscript(t *testing.T) {
	r := NewRegistry()
	_, err := r.ExonStructure("ENST999")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown transcript")
}
