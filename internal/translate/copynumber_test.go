package translate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vrs-go/internal/seqrepo"
	"github.com/inodb/vrs-go/internal/vrs"
)

func newCopyNumberRepo(t *testing.T) seqrepo.Repository {
	t.Helper()
	repo := seqrepo.NewMemory()
	repo.Register("AAAACAAAA", false, "NC_000014.9")
	return repo
}

func TestFromHGVSCopyNumberChangeTranslatesDeletionRegion(t *testing.T) {
	repo := newCopyNumberRepo(t)
	cn, err := FromHGVSCopyNumberChange(context.Background(), repo, "NC_000014.9:g.2_9del", "loss", DefaultOptions())
	require.NoError(t, err)

	loc, ok := cn.Location.Inlined()
	require.True(t, ok)
	assert.Equal(t, vrs.Definite(1), loc.Start)
	assert.Equal(t, vrs.Definite(9), loc.End)
	assert.Equal(t, vrs.CopyChangeLoss, cn.CopyChange)
	assert.NotEmpty(t, cn.ID)
}

func TestFromHGVSCopyNumberChangeAcceptsCURIECopyChange(t *testing.T) {
	repo := newCopyNumberRepo(t)
	cn, err := FromHGVSCopyNumberChange(context.Background(), repo, "NC_000014.9:g.2_9del", "efo:0030070", DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, vrs.CopyChangeGain, cn.CopyChange)
}

func TestFromHGVSCopyNumberChangeRejectsUnrecognizedCopyChange(t *testing.T) {
	repo := newCopyNumberRepo(t)
	_, err := FromHGVSCopyNumberChange(context.Background(), repo, "NC_000014.9:g.2_9del", "not-a-copy-change", DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFromHGVSCopyNumberChangeRejectsNonRegionEdit(t *testing.T) {
	repo := newCopyNumberRepo(t)
	_, err := FromHGVSCopyNumberChange(context.Background(), repo, "NC_000014.9:g.5C>G", "loss", DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFromHGVSCopyNumberChangeRejectsUnknownReference(t *testing.T) {
	repo := newCopyNumberRepo(t)
	_, err := FromHGVSCopyNumberChange(context.Background(), repo, "NC_999999.1:g.2_9del", "loss", DefaultOptions())
	require.Error(t, err)
}
