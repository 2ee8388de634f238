package main

import (
	"fmt"

	"github.com/inodb/vrs-go/internal/seqrepo"
	"github.com/inodb/vrs-go/internal/seqrepo/httptest"
)

// openDataProxy resolves a "seqrepo+file://" or "seqrepo+http(s)://" URI
// (spec §6.1) into a live Repository, reading and indexing a FASTA file for
// the file scheme or wiring an HTTP client for the network scheme.
func openDataProxy(uri string) (seqrepo.Repository, error) {
	parsed, err := seqrepo.ParseURI(uri)
	if err != nil {
		return nil, fmt.Errorf("parse --dataproxy_uri: %w", err)
	}

	switch parsed.Scheme {
	case seqrepo.SchemeFile:
		f := seqrepo.NewFile(parsed.Path)
		if err := f.Load(); err != nil {
			return nil, fmt.Errorf("load sequence repository file %s: %w", parsed.Path, err)
		}
		return f, nil
	case seqrepo.SchemeHTTP:
		return httptest.NewClient(parsed.BaseURL), nil
	default:
		return nil, fmt.Errorf("unsupported data-proxy scheme in %q", uri)
	}
}
