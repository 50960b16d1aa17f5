package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "corpus.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenMigrates(t *testing.T) {
	db := openTestDB(t)

	version, err := db.Version()
	require.NoError(t, err)
	assert.Equal(t, SchemaVersion, version)
	assert.NoError(t, db.Ping())

	for _, table := range []string{"passages", "corpus_meta"} {
		var name string
		err := db.GetConnection().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestReopenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.db")
	db, err := Open(path)
	require.NoError(t, err)
	_, err = db.ReplacePassages(context.Background(), []string{"Kabaddi is a sport."}, "test")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()
	assert.Equal(t, path, db.Path())

	passages, err := db.Passages(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Kabaddi is a sport."}, passages)
}

func TestEmptyDatabase(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, err := db.Passages(ctx)
	assert.ErrorIs(t, err, ErrNoPassages)
	_, err = db.Meta(ctx)
	assert.ErrorIs(t, err, ErrNoPassages)
}

func TestReplacePassages(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	n, err := db.ReplacePassages(ctx, []string{"first", "  ", "second ", "third"}, "builtin")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	passages, err := db.Passages(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, passages)

	meta, err := db.Meta(ctx)
	require.NoError(t, err)
	assert.Equal(t, "builtin", meta.Source)
	assert.Equal(t, 3, meta.Passages)
	assert.False(t, meta.ImportedAt.IsZero())

	n, err = db.ReplacePassages(ctx, []string{"only"}, "file:corpus.txt")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	passages, err = db.Passages(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"only"}, passages)

	meta, err = db.Meta(ctx)
	require.NoError(t, err)
	assert.Equal(t, "file:corpus.txt", meta.Source)
	assert.Equal(t, 1, meta.Passages)
}

func TestReplacePassagesCancelled(t *testing.T) {
	db := openTestDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := db.ReplacePassages(ctx, []string{"first"}, "test")
	assert.Error(t, err)
}
