package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, root, body string) {
	t.Helper()
	dir := GetKabaddiDir(root)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(body), 0644))
}

func TestLoadDefaults(t *testing.T) {
	root := t.TempDir()
	cfg, err := Load(root)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, SourceBuiltin, cfg.CorpusSource)
	assert.Equal(t, EngineRetrieval, cfg.Engine)
	assert.Equal(t, DefaultHistorySize, cfg.HistorySize)
	assert.Equal(t, DefaultRepeatWindow, cfg.RepeatWindow)
	assert.Equal(t, DefaultMaxResults, cfg.MaxResults)
	assert.InDelta(t, DefaultFAQThreshold, cfg.FAQThreshold, 1e-9)
	assert.False(t, cfg.Sarcasm)
	assert.Equal(t, filepath.Join(root, DirName, "corpus.sqlite3"), cfg.DBPath)
	assert.Equal(t, root, cfg.ProjectRoot)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFile(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `
[logging]
level = "debug"

[corpus]
file = "data/passages.txt"
watch = true

[dialogue]
sarcasm = true
history_size = 6

[engine]
kind = "faq"
faq_threshold = 0.4
`)
	cfg, err := Load(root)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, SourceFile, cfg.CorpusSource)
	assert.Equal(t, filepath.Join(root, "data", "passages.txt"), cfg.CorpusFile)
	assert.True(t, cfg.Watch)
	assert.True(t, cfg.Sarcasm)
	assert.Equal(t, 6, cfg.HistorySize)
	assert.Equal(t, EngineFAQ, cfg.Engine)
	assert.InDelta(t, 0.4, cfg.FAQThreshold, 1e-9)
	assert.NoError(t, cfg.Validate())
}

func TestLoadBadFile(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "[logging\nlevel=")
	_, err := Load(root)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "[engine]\nkind = \"faq\"\n")
	t.Setenv("KABADDI_ENGINE", "retrieval")
	t.Setenv("KABADDI_SARCASM", "1")
	t.Setenv("KABADDI_MAX_RESULTS", "3")
	t.Setenv("KABADDI_REPEAT_WINDOW", "not-a-number")
	t.Setenv("KABADDI_DB_PATH", "/tmp/other.db")

	cfg, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, EngineRetrieval, cfg.Engine)
	assert.True(t, cfg.Sarcasm)
	assert.Equal(t, 3, cfg.MaxResults)
	assert.Equal(t, DefaultRepeatWindow, cfg.RepeatWindow)
	assert.Equal(t, "/tmp/other.db", cfg.DBPath)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"log level", func(c *Config) { c.LogLevel = "loud" }},
		{"source", func(c *Config) { c.CorpusSource = "web" }},
		{"file without path", func(c *Config) { c.CorpusSource = SourceFile }},
		{"watch builtin", func(c *Config) { c.Watch = true }},
		{"history too big", func(c *Config) { c.HistorySize = 11 }},
		{"history zero", func(c *Config) { c.HistorySize = 0 }},
		{"repeat window", func(c *Config) { c.RepeatWindow = 0 }},
		{"engine", func(c *Config) { c.Engine = "llm" }},
		{"max results", func(c *Config) { c.MaxResults = 6 }},
		{"threshold", func(c *Config) { c.FAQThreshold = 1.5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(t.TempDir())
			require.NoError(t, err)
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, DirName), 0755))
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))

	assert.Equal(t, root, findProjectRootFrom(nested))

	plain := t.TempDir()
	assert.Equal(t, plain, findProjectRootFrom(plain))
}

func TestEnsureDirs(t *testing.T) {
	dir := GetKabaddiDir(t.TempDir())
	require.NoError(t, EnsureDirs(dir))
	info, err := os.Stat(filepath.Join(dir, "logs"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestConfigContext(t *testing.T) {
	assert.Nil(t, FromContext(context.Background()))
	cfg := &Config{LogLevel: "warn"}
	assert.Same(t, cfg, FromContext(WithConfig(context.Background(), cfg)))
}
