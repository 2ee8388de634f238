package vcf

import "testing"

func TestVariant_KRASG12C(t *testing.T) {
	// KRAS is on reverse strand: coding G->T = genomic C->A
	v := &Variant{
		Chrom: "12",
		Pos:   25245351,
		Ref:   "C",
		Alt:   "A",
	}

	if v.Chrom != "12" || v.Pos != 25245351 || v.Ref != "C" || v.Alt != "A" {
		t.Errorf("unexpected variant fields: %+v", v)
	}
}
