// Package seqrepo defines the SequenceRepository collaborator (spec §6.1):
// the sequence database consumed, never owned, by normalization and
// translation. It is deliberately a small interface plus a URI-scheme
// selector, so callers can swap a file-backed repository for an HTTP-backed
// one without touching the code that depends on it.
package seqrepo

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrUnknownReference is returned when an identifier cannot be resolved
// through the repository (spec §7, UnknownReference).
var ErrUnknownReference = errors.New("unknown reference")

// Metadata describes a sequence independent of any particular interval.
type Metadata struct {
	Aliases  []string
	Alphabet string
	Length   uint64
	Circular bool
}

// Repository is the SequenceRepository collaborator (spec §6.1). All methods
// take a context because every implementation but the in-memory test double
// does network or disk I/O.
type Repository interface {
	// GetSequence returns residues over the half-open interval [start, end)
	// on accession. A nil start or end means "from the beginning"/"to the
	// end" respectively.
	GetSequence(ctx context.Context, accession string, start, end *uint64) (string, error)

	// GetMetadata returns metadata for accession.
	GetMetadata(ctx context.Context, accession string) (Metadata, error)

	// TranslateIdentifier maps identifier to every alias sharing its
	// underlying sequence, optionally filtered to aliases in
	// targetNamespace (empty means "all namespaces").
	TranslateIdentifier(ctx context.Context, identifier, targetNamespace string) ([]string, error)

	// DeriveRefgetAccession is a shortcut to the "SQ." form of identifier.
	DeriveRefgetAccession(ctx context.Context, identifier string) (string, error)
}

// Scheme identifies which concrete backend a seqrepo URI selects.
type Scheme int

const (
	SchemeFile Scheme = iota
	SchemeHTTP
)

// ParsedURI is the result of parsing a seqrepo+... URI (spec §6.1).
type ParsedURI struct {
	Scheme Scheme
	// Path is the filesystem path for SchemeFile, empty otherwise.
	Path string
	// BaseURL is the http(s) base URL for SchemeHTTP, empty otherwise.
	BaseURL string
}

// ParseURI parses a "seqrepo+file://<path>" or "seqrepo+http(s)://<host>/..."
// URI into its backend selector and connection details.
func ParseURI(raw string) (ParsedURI, error) {
	const prefix = "seqrepo+"
	if !strings.HasPrefix(raw, prefix) {
		return ParsedURI{}, fmt.Errorf("%w: seqrepo URI must start with %q, got %q", ErrInvalidURI, prefix, raw)
	}
	inner := strings.TrimPrefix(raw, prefix)

	u, err := url.Parse(inner)
	if err != nil {
		return ParsedURI{}, fmt.Errorf("%w: %v", ErrInvalidURI, err)
	}

	switch u.Scheme {
	case "file":
		path := u.Path
		if path == "" {
			path = u.Opaque
		}
		if path == "" {
			return ParsedURI{}, fmt.Errorf("%w: seqrepo+file:// URI missing a path", ErrInvalidURI)
		}
		return ParsedURI{Scheme: SchemeFile, Path: path}, nil
	case "http", "https":
		return ParsedURI{Scheme: SchemeHTTP, BaseURL: inner}, nil
	default:
		return ParsedURI{}, fmt.Errorf("%w: unsupported seqrepo scheme %q", ErrInvalidURI, u.Scheme)
	}
}

// ErrInvalidURI is returned by ParseURI for malformed or unsupported URIs.
var ErrInvalidURI = errors.New("invalid seqrepo URI")
