// Package httptest provides the client-side test double for the
// seqrepo+http(s):// scheme (spec §6.1): a seqrepo.Repository that talks to
// an internal/seqrepo/httpserver.Server over plain net/http, so tests can
// exercise the HTTP-backed repository path without a real SeqRepo REST
// deployment.
package httptest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/inodb/vrs-go/internal/seqrepo"
)

// Client is a seqrepo.Repository backed by an HTTP server implementing the
// internal/seqrepo/httpserver routes.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a Client against baseURL (e.g. the URL of an
// httptest.Server wrapping an httpserver.Server).
func NewClient(baseURL string) *Client {
	return &Client{baseURL: baseURL, httpClient: http.DefaultClient}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		var body struct {
			Error string `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&body)
		return fmt.Errorf("%w: %s", seqrepo.ErrUnknownReference, body.Error)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// GetSequence implements seqrepo.Repository.
func (c *Client) GetSequence(ctx context.Context, accession string, start, end *uint64) (string, error) {
	q := url.Values{}
	if start != nil {
		q.Set("start", strconv.FormatUint(*start, 10))
	}
	if end != nil {
		q.Set("end", strconv.FormatUint(*end, 10))
	}
	var out struct {
		Sequence string `json:"sequence"`
	}
	if err := c.get(ctx, "/seqrepo/sequence/"+accession, q, &out); err != nil {
		return "", err
	}
	return out.Sequence, nil
}

// GetMetadata implements seqrepo.Repository.
func (c *Client) GetMetadata(ctx context.Context, accession string) (seqrepo.Metadata, error) {
	var out seqrepo.Metadata
	if err := c.get(ctx, "/seqrepo/metadata/"+accession, nil, &out); err != nil {
		return seqrepo.Metadata{}, err
	}
	return out, nil
}

// TranslateIdentifier implements seqrepo.Repository.
func (c *Client) TranslateIdentifier(ctx context.Context, identifier, targetNamespace string) ([]string, error) {
	q := url.Values{}
	if targetNamespace != "" {
		q.Set("targetNamespace", targetNamespace)
	}
	var out struct {
		Aliases []string `json:"aliases"`
	}
	if err := c.get(ctx, "/seqrepo/translate/"+identifier, q, &out); err != nil {
		return nil, err
	}
	return out.Aliases, nil
}

// DeriveRefgetAccession implements seqrepo.Repository.
func (c *Client) DeriveRefgetAccession(ctx context.Context, identifier string) (string, error) {
	var out struct {
		Accession string `json:"accession"`
	}
	if err := c.get(ctx, "/seqrepo/refget/"+identifier, nil, &out); err != nil {
		return "", err
	}
	return out.Accession, nil
}
