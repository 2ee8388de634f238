package main

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/inodb/vrs-go/internal/vrs"
)

// vcfOutWriter rewrites annotated records to a minimal VCF-like stream:
// the eight mandatory columns plus, when vrsAttributes is set, VRS_Start/
// VRS_End/VRS_State/VRS_Allele fields appended to INFO for the ALT allele's
// location, state and identifier. It does not attempt to preserve the input file's own
// header or INFO schema (spec §6.4 scopes --vcf_out to "best-effort VCF
// passthrough annotation", not round-trip fidelity).
type vcfOutWriter struct {
	w             *bufio.Writer
	vrsAttributes bool
}

func newVCFOutWriter(w io.Writer, vrsAttributes bool) *vcfOutWriter {
	return &vcfOutWriter{w: bufio.NewWriter(w), vrsAttributes: vrsAttributes}
}

func (vw *vcfOutWriter) WriteHeader() error {
	lines := []string{
		"##fileformat=VCFv4.2",
		`##source=vrs-annotate`,
	}
	if vw.vrsAttributes {
		lines = append(lines,
			`##INFO=<ID=VRS_Start,Number=1,Type=Integer,Description="GA4GH VRS SequenceLocation start (interbase)">`,
			`##INFO=<ID=VRS_End,Number=1,Type=Integer,Description="GA4GH VRS SequenceLocation end (interbase)">`,
			`##INFO=<ID=VRS_State,Number=1,Type=String,Description="GA4GH VRS Allele state sequence, or a reference-length shorthand">`,
			`##INFO=<ID=VRS_Allele,Number=1,Type=String,Description="GA4GH VRS Allele identifier">`,
		)
	}
	lines = append(lines, "#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO")
	for _, l := range lines {
		if _, err := fmt.Fprintln(vw.w, l); err != nil {
			return err
		}
	}
	return nil
}

func (vw *vcfOutWriter) WriteRecord(rec annotatedRecord) error {
	v := rec.variant

	id := v.ID
	if id == "" {
		id = "."
	}
	qual := "."
	if v.Qual != 0 {
		qual = fmt.Sprintf("%g", v.Qual)
	}
	filter := v.Filter
	if filter == "" {
		filter = "."
	}

	info := infoString(v.Info)
	if vw.vrsAttributes {
		vrsInfo, err := alleleInfoFields(rec.alt)
		if err != nil {
			return fmt.Errorf("render VRS INFO fields: %w", err)
		}
		if info == "." || info == "" {
			info = vrsInfo
		} else {
			info = info + ";" + vrsInfo
		}
	}

	_, err := fmt.Fprintf(vw.w, "%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
		v.Chrom, v.Pos, id, v.Ref, v.Alt, qual, filter, info)
	return err
}

func (vw *vcfOutWriter) Flush() error {
	return vw.w.Flush()
}

// infoString renders a parsed INFO map back into "key=value;..." form,
// keyed in sorted order for deterministic output.
func infoString(info map[string]interface{}) string {
	if len(info) == 0 {
		return "."
	}
	keys := make([]string, 0, len(info))
	for k := range info {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := ""
	for i, k := range keys {
		if i > 0 {
			out += ";"
		}
		v := info[k]
		if b, ok := v.(bool); ok {
			if b {
				out += k
			}
			continue
		}
		out += fmt.Sprintf("%s=%v", k, v)
	}
	if out == "" {
		return "."
	}
	return out
}

// alleleInfoFields renders an identified Allele's location bounds and
// state into VRS_Start/VRS_End/VRS_State/VRS_Allele INFO entries.
func alleleInfoFields(a vrs.Allele) (string, error) {
	loc, ok := a.Location.Inlined()
	if !ok {
		return fmt.Sprintf("VRS_Allele=%s", a.ID), nil
	}

	start, startOK := loc.Start.(vrs.Definite)
	end, endOK := loc.End.(vrs.Definite)
	if !startOK || !endOK {
		return fmt.Sprintf("VRS_Allele=%s", a.ID), nil
	}

	state := stateSummary(a.State)
	return fmt.Sprintf("VRS_Start=%d;VRS_End=%d;VRS_State=%s;VRS_Allele=%s", uint64(start), uint64(end), state, a.ID), nil
}

func stateSummary(s vrs.State) string {
	switch st := s.(type) {
	case vrs.LiteralSequenceExpression:
		if st.Sequence == "" {
			return "."
		}
		return st.Sequence
	case vrs.ReferenceLengthExpression:
		return fmt.Sprintf("RLE(%d,%d)", st.Length, st.RepeatSubunitLength)
	default:
		return "."
	}
}
