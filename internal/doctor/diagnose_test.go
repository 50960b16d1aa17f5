package doctor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/a-marczewski/kabaddibot/internal/config"
	"github.com/a-marczewski/kabaddibot/internal/corpus"
	"github.com/a-marczewski/kabaddibot/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statusOf(d *Diagnostics, name string) string {
	for _, c := range d.Checks {
		if c.Name == name {
			return c.Status
		}
	}
	return ""
}

func messageOf(d *Diagnostics, name string) string {
	for _, c := range d.Checks {
		if c.Name == name {
			return c.Message
		}
	}
	return ""
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)
	return cfg
}

func TestHealthyBuiltin(t *testing.T) {
	cfg := testConfig(t)
	d := NewRunner(cfg, corpus.Builtin(), nil, nil).RunAll(context.Background())

	assert.Equal(t, "healthy", d.Status)
	assert.Empty(t, d.Issues)
	assert.Equal(t, "pass", statusOf(d, "corpus_loaded"))
	assert.Equal(t, "warn", statusOf(d, "config_file"))
	assert.Equal(t, "warn", statusOf(d, "database_connectivity"))
	assert.Contains(t, messageOf(d, "corpus_loaded"),
		fmt.Sprintf("%d passages, %d sentences", corpus.Builtin().Len(), corpus.Builtin().SentenceCount()))
}

func TestCorpusFailure(t *testing.T) {
	cfg := testConfig(t)
	cfg.CorpusSource = config.SourceFile
	cfg.CorpusFile = filepath.Join(t.TempDir(), "missing.txt")

	d := NewRunner(cfg, nil, errors.New("open failed"), nil).RunAll(context.Background())
	assert.Equal(t, "issues_found", d.Status)
	assert.Equal(t, "fail", statusOf(d, "corpus_file"))
	assert.Equal(t, "fail", statusOf(d, "corpus_loaded"))
}

func TestDatabaseChecks(t *testing.T) {
	cfg := testConfig(t)
	db, err := storage.Open(cfg.DBPath)
	require.NoError(t, err)
	defer db.Close()

	d := NewRunner(cfg, corpus.Builtin(), nil, db).RunAll(context.Background())
	assert.Equal(t, "pass", statusOf(d, "database_connectivity"))
	assert.Equal(t, "pass", statusOf(d, "database_integrity"))
	assert.Equal(t, "pass", statusOf(d, "database_schema"))
	assert.Equal(t, "warn", statusOf(d, "database_corpus"))
	assert.Equal(t, "healthy", d.Status)

	cfg.CorpusSource = config.SourceDB
	d = NewRunner(cfg, corpus.Builtin(), nil, db).RunAll(context.Background())
	assert.Equal(t, "fail", statusOf(d, "database_corpus"))

	_, err = db.ReplacePassages(context.Background(), corpus.BuiltinPassages(), config.SourceBuiltin)
	require.NoError(t, err)
	d = NewRunner(cfg, corpus.Builtin(), nil, db).RunAll(context.Background())
	assert.Equal(t, "pass", statusOf(d, "database_corpus"))
	assert.Equal(t, "healthy", d.Status)
}

func TestPrintReport(t *testing.T) {
	d := &Diagnostics{
		Status: "issues_found",
		Issues: []string{"Corpus is empty"},
		Checks: []CheckResult{
			fail("corpus_loaded", "Corpus is empty"),
			pass("configuration_validation", "Configuration is valid"),
		},
	}
	var buf bytes.Buffer
	d.PrintReport(&buf)

	out := buf.String()
	assert.Contains(t, out, "Status: issues_found")
	assert.Contains(t, out, "1. Corpus is empty")
	assert.Contains(t, out, "✗ corpus_loaded")
	assert.Contains(t, out, "✓ configuration_validation")
}
