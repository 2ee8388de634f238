// Package digest implements the GA4GH VRS canonical serialization profile
// and the content-addressed identifier derived from it: lexicographic key
// order, integer-only numerics, UTF-8 strings, and minimal whitespace.
package digest

import (
	"bytes"
	"fmt"
	"sort"
)

// CanonicalJSON encodes v into the canonical form described in spec §4.1.
// v must be built only from the value shapes a Serializable's CanonicalFields
// produces: map[string]any, []any, string, bool, int64, uint64, or nil.
// Floats and any other Go type are rejected with ErrSerialization.
func CanonicalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeValue(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, v any) error {
	switch t := v.(type) {
	case nil:
		buf.WriteString("null")
		return nil
	case bool:
		if t {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
		return nil
	case string:
		encodeString(buf, t)
		return nil
	case int:
		fmt.Fprintf(buf, "%d", t)
		return nil
	case int64:
		fmt.Fprintf(buf, "%d", t)
		return nil
	case uint64:
		fmt.Fprintf(buf, "%d", t)
		return nil
	case []any:
		return encodeArray(buf, t)
	case map[string]any:
		return encodeObject(buf, t)
	default:
		return fmt.Errorf("%w: unsupported canonical value type %T", ErrSerialization, v)
	}
}

func encodeArray(buf *bytes.Buffer, arr []any) error {
	buf.WriteByte('[')
	for i, elem := range arr {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeValue(buf, elem); err != nil {
			return err
		}
	}
	buf.WriteByte(']')
	return nil
}

func encodeObject(buf *bytes.Buffer, obj map[string]any) error {
	keys := make([]string, 0, len(obj))
	for k, v := range obj {
		if v == nil {
			continue // absent and null are equivalent; omit both
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		encodeString(buf, k)
		buf.WriteByte(':')
		if err := encodeValue(buf, obj[k]); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

const hexDigits = "0123456789abcdef"

// encodeString writes s as a JSON string literal, escaping control
// characters, the quote and backslash, and non-ASCII runes as \u escapes —
// the minimal escaping the canonical profile requires.
func encodeString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for _, r := range s {
		switch {
		case r == '"':
			buf.WriteString(`\"`)
		case r == '\\':
			buf.WriteString(`\\`)
		case r == '\n':
			buf.WriteString(`\n`)
		case r == '\r':
			buf.WriteString(`\r`)
		case r == '\t':
			buf.WriteString(`\t`)
		case r < 0x20 || r > 0x7e:
			writeUnicodeEscape(buf, r)
		default:
			buf.WriteRune(r)
		}
	}
	buf.WriteByte('"')
}

func writeUnicodeEscape(buf *bytes.Buffer, r rune) {
	if r > 0xffff {
		// Encode as a UTF-16 surrogate pair.
		r -= 0x10000
		hi := 0xd800 + (r >> 10)
		lo := 0xdc00 + (r & 0x3ff)
		writeHex4(buf, uint32(hi))
		writeHex4(buf, uint32(lo))
		return
	}
	writeHex4(buf, uint32(r))
}

func writeHex4(buf *bytes.Buffer, v uint32) {
	buf.WriteString(`\u`)
	buf.WriteByte(hexDigits[(v>>12)&0xf])
	buf.WriteByte(hexDigits[(v>>8)&0xf])
	buf.WriteByte(hexDigits[(v>>4)&0xf])
	buf.WriteByte(hexDigits[v&0xf])
}
