package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Saarthi/internal/model"
	"Saarthi/internal/repo"
	"Saarthi/internal/service"
)

func openTemp(t *testing.T, quota int64) *Medium {
	t.Helper()
	m, dbPath, err := OpenForProfile(t.TempDir(), "student", quota)
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	_, err = os.Stat(dbPath)
	require.NoError(t, err, "db file must be created")
	return m
}

func TestOpenForProfile_PathAndEnvFallback(t *testing.T) {
	base := t.TempDir()
	t.Setenv("VAULT_DB_PATH", base)

	m, dbPath, err := OpenForProfile("", "ann", 0)
	require.NoError(t, err)
	defer m.Close()
	assert.Equal(t, filepath.Join(base, "ann", "vault.sqlite"), dbPath)
}

func TestValidateProfile(t *testing.T) {
	for _, ok := range []string{"default", "ann-2", "a.b_c"} {
		assert.NoError(t, ValidateProfile(ok), ok)
	}
	for _, bad := range []string{"", ".", "..", "../x", "a/b", "with space"} {
		assert.Error(t, ValidateProfile(bad), bad)
	}
	_, _, err := OpenForProfile(t.TempDir(), "../escape", 0)
	assert.Error(t, err)
}

func TestMedium_SetGetRemoveUsage(t *testing.T) {
	ctx := context.Background()
	m := openTemp(t, 0)

	_, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set(ctx, "k", []byte("value")))
	require.NoError(t, m.Set(ctx, "other", []byte("x")))
	got, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "value", string(got))

	used, err := m.Usage(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(len("k")+len("value")+len("other")+len("x")), used)

	require.NoError(t, m.Set(ctx, "k", []byte("v2")))
	used, _ = m.Usage(ctx)
	assert.Equal(t, int64(len("k")+len("v2")+len("other")+len("x")), used, "replace does not double count")

	require.NoError(t, m.Remove(ctx, "k"))
	require.NoError(t, m.Remove(ctx, "k"))
	_, ok, _ = m.Get(ctx, "k")
	assert.False(t, ok)

	assert.Error(t, m.Set(ctx, "", []byte("x")))
}

func TestMedium_QuotaIsAtomic(t *testing.T) {
	ctx := context.Background()
	m := openTemp(t, 20)
	assert.Equal(t, int64(20), m.Quota())

	require.NoError(t, m.Set(ctx, "key", []byte("0123456789")))
	err := m.Set(ctx, "key", []byte("01234567890123456789"))
	assert.ErrorIs(t, err, repo.ErrQuotaExceeded)

	got, _, err := m.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, "0123456789", string(got), "failed write leaves the old value")

	// освобождение места позволяет записать
	require.NoError(t, m.Set(ctx, "key", []byte("0123456789012345")))
}

func TestMedium_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()

	m, _, err := OpenForProfile(base, "p", 0)
	require.NoError(t, err)
	require.NoError(t, m.Set(ctx, repo.ResourcesKey, []byte("[]")))
	require.NoError(t, m.Close())
	require.NoError(t, m.Close(), "close twice is safe")

	m2, _, err := OpenForProfile(base, "p", 0)
	require.NoError(t, err)
	defer m2.Close()
	got, ok, err := m2.Get(ctx, repo.ResourcesKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "[]", string(got))

	var nilMedium *Medium
	assert.NoError(t, nilMedium.Close())
}

func TestMedium_RemoveAfterQuotaLowered(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()

	m, _, err := OpenForProfile(base, "p", 1<<20)
	require.NoError(t, err)
	v, err := service.Open(ctx, repo.NewMetadataStore(m), repo.NewBlobStore(m))
	require.NoError(t, err)
	doc, err := v.Add(ctx, service.AddInput{
		Type:   model.TypeDocument,
		Title:  "scan",
		Upload: &service.Upload{FileName: "scan.txt", Data: []byte(strings.Repeat("x", 1500))},
	})
	require.NoError(t, err)
	require.NoError(t, m.Close())

	// та же база, но квота теперь меньше занятого места
	m2, _, err := OpenForProfile(base, "p", 200)
	require.NoError(t, err)
	defer m2.Close()
	used, err := m2.Usage(ctx)
	require.NoError(t, err)
	require.Greater(t, used, m2.Quota())

	v2, err := service.Open(ctx, repo.NewMetadataStore(m2), repo.NewBlobStore(m2))
	require.NoError(t, err)
	_, err = v2.Add(ctx, service.AddInput{Type: model.TypeLink, Title: "go", Content: "https://go.dev"})
	assert.ErrorIs(t, err, repo.ErrQuotaExceeded)

	require.NoError(t, v2.Remove(ctx, doc.ID))
	assert.Empty(t, v2.List())
	_, ok, err := repo.NewBlobStore(m2).Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.False(t, ok, "file removed together with metadata")
}
