package transcriptalign

import (
	"fmt"

	"github.com/inodb/vrs-go/internal/translate"
)

// ErrUnknownTranscript is returned by ExonStructure for an accession not
// present in the registry.
type ErrUnknownTranscript string

func (e ErrUnknownTranscript) Error() string {
	return fmt.Sprintf("unknown transcript accession %q", string(e))
}

// ExonStructure implements translate.TranscriptAlignmentRepository: it
// converts a registered Transcript's genomic, 1-based exon coordinates into
// the interbase, transcript-ordered form translate.transcriptToGenomic
// expects, assigning cumulative transcript-relative offsets in 5'->3'
// order (ascending genomic order for a forward-strand transcript,
// descending for a reverse-strand one).
func (r *Registry) ExonStructure(transcriptAccession string) ([]translate.ExonAlignment, error) {
	t, ok := r.Get(transcriptAccession)
	if !ok {
		return nil, ErrUnknownTranscript(transcriptAccession)
	}
	if len(t.Exons) == 0 {
		return nil, fmt.Errorf("transcript %q has no exons", transcriptAccession)
	}

	exons := make([]Exon, len(t.Exons))
	copy(exons, t.Exons)
	if !t.IsForwardStrand() {
		for i, j := 0, len(exons)-1; i < j; i, j = i+1, j-1 {
			exons[i], exons[j] = exons[j], exons[i]
		}
	}

	out := make([]translate.ExonAlignment, len(exons))
	var offset uint64
	for i, ex := range exons {
		length := uint64(ex.End - ex.Start + 1)
		out[i] = translate.ExonAlignment{
			TranscriptStart:  offset,
			TranscriptEnd:    offset + length,
			GenomicAccession: t.Chrom,
			GenomicStart:     uint64(ex.Start - 1),
			GenomicEnd:       uint64(ex.End),
			Strand:           t.Strand,
		}
		offset += length
	}
	return out, nil
}
