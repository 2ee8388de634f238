// Package hgvstest provides a golden-file diff helper for HGVS round-trip
// tests (spec §8, testable property 3: translate_to output must match a
// fixture). Grounded on bebop-poly's use of sergi/go-diff for readable
// textual mismatch reports.
package hgvstest

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// AssertEqual compares got against want and, on mismatch, returns an error
// holding diffmatchpatch's inline pretty-text diff (insertions and deletions
// marked with ANSI colours) instead of the raw strings.
func AssertEqual(want, got string) error {
	if want == got {
		return nil
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(want, got, false)
	return fmt.Errorf("HGVS expression mismatch:\n%s", dmp.DiffPrettyText(diffs))
}

// AssertEqualLines compares each line of a multi-expression translate_to
// result (one HGVS expression per line) against the fixture's lines,
// reporting every mismatched line.
func AssertEqualLines(want, got []string) error {
	if len(want) != len(got) {
		return fmt.Errorf("expected %d expressions, got %d:\nwant: %s\ngot:  %s",
			len(want), len(got), strings.Join(want, ", "), strings.Join(got, ", "))
	}
	for i := range want {
		if err := AssertEqual(want[i], got[i]); err != nil {
			return fmt.Errorf("expression %d: %w", i, err)
		}
	}
	return nil
}
