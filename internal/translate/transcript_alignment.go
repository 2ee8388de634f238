package translate

// ExonAlignment is one exon's correspondence between transcript-relative
// and genomic-relative interbase coordinates (spec §1: HGVS translators
// depend on an external transcript-alignment collaborator; this is its
// contract). In this package only FromHGVSCoding uses it.
type ExonAlignment struct {
	TranscriptStart  uint64
	TranscriptEnd    uint64
	GenomicAccession string
	GenomicStart     uint64
	GenomicEnd       uint64
	// Strand is +1 for a transcript on the forward genomic strand, -1 for
	// the reverse strand.
	Strand int8
}

// TranscriptAlignmentRepository resolves a transcript accession to the
// exon structure mapping its coordinate space onto its genomic reference
// (spec §1, §4.5); FromHGVSCoding is its only caller.
type TranscriptAlignmentRepository interface {
	ExonStructure(transcriptAccession string) ([]ExonAlignment, error)
}

// transcriptToGenomic maps an interbase transcript-relative interval to its
// genomic interval and accession, given a sorted (by TranscriptStart) exon
// list.
func transcriptToGenomic(exons []ExonAlignment, start, end uint64) (genomicAccession string, genomicStart, genomicEnd uint64, err error) {
	for _, ex := range exons {
		if start >= ex.TranscriptStart && end <= ex.TranscriptEnd {
			offsetStart := start - ex.TranscriptStart
			offsetEnd := end - ex.TranscriptStart
			if ex.Strand >= 0 {
				return ex.GenomicAccession, ex.GenomicStart + offsetStart, ex.GenomicStart + offsetEnd, nil
			}
			return ex.GenomicAccession, ex.GenomicEnd - offsetEnd, ex.GenomicEnd - offsetStart, nil
		}
	}
	return "", 0, 0, errNoCoveringExon
}
