package httpserver

import (
	"context"
	nethttptest "net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vrs-go/internal/seqrepo"
	seqrepohttptest "github.com/inodb/vrs-go/internal/seqrepo/httptest"
)

func TestHTTPRoundTripServesMemoryRepository(t *testing.T) {
	repo := seqrepo.NewMemory()
	accession := repo.Register("ACGTACGTAC", false, "refseq:NC_000001.1")

	srv := nethttptest.NewServer(New(repo))
	defer srv.Close()

	client := seqrepohttptest.NewClient(srv.URL)
	ctx := context.Background()

	seq, err := client.GetSequence(ctx, accession, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "ACGTACGTAC", seq)

	md, err := client.GetMetadata(ctx, accession)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), md.Length)

	aliases, err := client.TranslateIdentifier(ctx, accession, "")
	require.NoError(t, err)
	assert.Contains(t, aliases, "refseq:NC_000001.1")

	derived, err := client.DeriveRefgetAccession(ctx, "refseq:NC_000001.1")
	require.NoError(t, err)
	assert.Equal(t, accession, derived)
}

func TestHTTPRoundTripUnknownReferenceIsNotFound(t *testing.T) {
	repo := seqrepo.NewMemory()
	srv := nethttptest.NewServer(New(repo))
	defer srv.Close()

	client := seqrepohttptest.NewClient(srv.URL)
	_, err := client.GetSequence(context.Background(), "SQ.doesnotexist", nil, nil)
	assert.ErrorIs(t, err, seqrepo.ErrUnknownReference)
}
