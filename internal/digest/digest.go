package digest

import (
	"crypto/sha512"
	"encoding/base64"
	"fmt"
)

// truncatedDigestLength is the number of leading bytes of the SHA-512 sum
// that become the identifier: 24 bytes of SHA-512 base64url-encode (without
// padding) to exactly 32 characters. §4.1's prose says "32 bytes (48
// characters)", but that arithmetic doesn't hold (32 bytes base64url-encodes
// to 43 characters, not 48) and disagrees with §8's own worked example
// digest ("ga4gh:SL.JiLRuuyS5wefF_6-Vw7m3Yoqqb2YFkss", a 32-character
// digest) — the worked example is taken as authoritative.
const truncatedDigestLength = 24

// Serializable is anything the canonical serializer can digest: a VRS
// entity that knows its own type discriminant and digest-contributing
// fields. TypePrefix returns "" for entities that are not independently
// identifiable (spec §3); Identify refuses to mint an id for those.
type Serializable interface {
	// TypePrefix returns the two-letter ga4gh: namespace prefix (e.g. "VA"
	// for Allele), or "" if the entity is not independently identifiable.
	TypePrefix() string
	// CanonicalFields returns the digest-contributing fields of the entity,
	// keyed by their wire name, with nested identifiable children already
	// resolved to their ga4gh: id strings and nested non-identifiable
	// children inlined as nested map[string]any/[]any/primitive values.
	CanonicalFields() map[string]any
}

// Serialize returns the canonical-JSON encoding of o's digest-contributing
// fields, per spec §4.1.
func Serialize(o Serializable) ([]byte, error) {
	fields := o.CanonicalFields()
	return CanonicalJSON(fields)
}

// Digest returns the 32-character base64url digest of o: the first 24 bytes
// of SHA-512(canonical-serialize(o)).
func Digest(o Serializable) (string, error) {
	b, err := Serialize(o)
	if err != nil {
		return "", err
	}
	sum := sha512.Sum512(b)
	return base64.RawURLEncoding.EncodeToString(sum[:truncatedDigestLength]), nil
}

// Identify returns o's full namespaced identifier, "ga4gh:<Prefix>.<digest>".
// It fails with ErrSerialization if o is not an independently identifiable
// entity (empty TypePrefix).
func Identify(o Serializable) (string, error) {
	prefix := o.TypePrefix()
	if prefix == "" {
		return "", fmt.Errorf("%w: entity is not independently identifiable", ErrSerialization)
	}
	d, err := Digest(o)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ga4gh:%s.%s", prefix, d), nil
}
