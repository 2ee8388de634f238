package transcriptalign

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

// GTFLoader loads transcript exon structures from a GENCODE-style GTF file,
// adapted from the teacher's internal/cache.GTFLoader: it keeps the
// "transcript"/"exon" feature parsing and drops the CDS/start_codon/
// stop_codon bookkeeping the teacher used to compute codon reading frames.
type GTFLoader struct {
	path string
}

// NewGTFLoader creates a loader for the GTF file at path. A ".gz" suffix is
// read as gzip-compressed.
func NewGTFLoader(path string) *GTFLoader {
	return &GTFLoader{path: path}
}

// Load parses the GTF file and registers every transcript it names into r.
func (l *GTFLoader) Load(r *Registry) error {
	f, err := os.Open(l.path)
	if err != nil {
		return fmt.Errorf("open GTF file: %w", err)
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(l.path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return fmt.Errorf("open gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	transcripts, err := parseGTF(reader)
	if err != nil {
		return err
	}
	for _, t := range transcripts {
		r.Add(t)
	}
	return nil
}

type gtfFeature struct {
	chrom       string
	featureType string
	start       int64
	end         int64
	strand      string
	attributes  map[string]string
}

func parseGTF(reader io.Reader) (map[string]*Transcript, error) {
	scanner := bufio.NewScanner(reader)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	transcripts := make(map[string]*Transcript)
	exonsByTranscript := make(map[string][]Exon)

	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") || line == "" {
			continue
		}

		feat, err := parseGTFLine(line)
		if err != nil {
			continue
		}

		transcriptID := stripVersion(feat.attributes["transcript_id"])
		if transcriptID == "" {
			continue
		}

		switch feat.featureType {
		case "transcript":
			transcripts[transcriptID] = &Transcript{
				ID:     transcriptID,
				Chrom:  feat.chrom,
				Strand: parseStrand(feat.strand),
			}
		case "exon":
			exonsByTranscript[transcriptID] = append(exonsByTranscript[transcriptID], Exon{Start: feat.start, End: feat.end})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan GTF: %w", err)
	}

	for id, t := range transcripts {
		exons := exonsByTranscript[id]
		sort.Slice(exons, func(i, j int) bool { return exons[i].Start < exons[j].Start })
		t.Exons = exons
	}
	return transcripts, nil
}

func parseGTFLine(line string) (*gtfFeature, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 9 {
		return nil, fmt.Errorf("invalid GTF line: expected 9 fields, got %d", len(fields))
	}
	start, err := strconv.ParseInt(fields[3], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse start: %w", err)
	}
	end, err := strconv.ParseInt(fields[4], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse end: %w", err)
	}
	return &gtfFeature{
		chrom:       normalizeChrom(fields[0]),
		featureType: fields[2],
		start:       start,
		end:         end,
		strand:      fields[6],
		attributes:  parseAttributes(fields[8]),
	}, nil
}

// parseAttributes parses the GTF attribute column: "key \"value\"; ...".
func parseAttributes(attrStr string) map[string]string {
	attrs := make(map[string]string)
	for _, part := range strings.Split(attrStr, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		idx := strings.Index(part, " ")
		if idx == -1 {
			continue
		}
		key := part[:idx]
		value := strings.Trim(strings.TrimSpace(part[idx+1:]), "\"")
		attrs[key] = value
	}
	return attrs
}

func parseStrand(s string) int8 {
	if s == "-" {
		return -1
	}
	return 1
}

func stripVersion(id string) string {
	if idx := strings.LastIndex(id, "."); idx != -1 {
		return id[:idx]
	}
	return id
}

func normalizeChrom(chrom string) string {
	return strings.TrimPrefix(chrom, "chr")
}
