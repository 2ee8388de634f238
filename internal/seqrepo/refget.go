package seqrepo

import (
	"encoding/base64"
	"strings"

	"golang.org/x/crypto/sha3"
)

// refgetDigestLength is the truncation length (in bytes) of the accession
// digest: SHA3-512 of the upper-cased sequence, first 24 bytes, base64url
// without padding.
const refgetDigestLength = 24

// DeriveRefgetAccession computes the "SQ.…" refget accession for a sequence,
// independent of any repository (spec §6.1, derive_refget_accession). A
// Repository backed by a real SeqRepo instance typically has these
// precomputed; this is for repositories (like the FASTA-backed one) that
// only have raw sequence bytes.
func DeriveRefgetAccession(sequence string) string {
	h := sha3.Sum512([]byte(strings.ToUpper(sequence)))
	truncated := h[:refgetDigestLength]
	return "SQ." + base64.RawURLEncoding.EncodeToString(truncated)
}
