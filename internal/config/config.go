package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Corpus sources.
const (
	SourceBuiltin = "builtin"
	SourceFile    = "file"
	SourceDB      = "db"
)

// Answer engines.
const (
	EngineRetrieval = "retrieval"
	EngineFAQ       = "faq"
)

const (
	DefaultHistorySize  = 10
	DefaultRepeatWindow = 3
	DefaultMaxResults   = 5
	DefaultFAQThreshold = 0.25
)

// Config holds the application configuration
type Config struct {
	LogLevel string
	LogFile  string

	CorpusSource string
	CorpusFile   string
	DBPath       string
	Watch        bool

	Sarcasm      bool
	HistorySize  int
	RepeatWindow int

	Engine       string
	MaxResults   int
	FAQThreshold float64

	ConfigPath  string
	KabaddiDir  string
	ProjectRoot string
}

type fileConfig struct {
	Logging struct {
		Level string `toml:"level"`
		File  string `toml:"file"`
	} `toml:"logging"`
	Corpus struct {
		Source string `toml:"source"`
		File   string `toml:"file"`
		DBPath string `toml:"db_path"`
		Watch  bool   `toml:"watch"`
	} `toml:"corpus"`
	Dialogue struct {
		Sarcasm      bool `toml:"sarcasm"`
		HistorySize  int  `toml:"history_size"`
		RepeatWindow int  `toml:"repeat_window"`
	} `toml:"dialogue"`
	Engine struct {
		Kind         string  `toml:"kind"`
		MaxResults   int     `toml:"max_results"`
		FAQThreshold float64 `toml:"faq_threshold"`
	} `toml:"engine"`
}

// LoadConfig loads configuration for the project containing the working
// directory.
func LoadConfig() (*Config, error) {
	projectRoot, err := FindProjectRoot()
	if err != nil {
		return nil, err
	}
	return Load(projectRoot)
}

// Load builds the configuration for projectRoot: defaults, then
// .kabaddi/config.toml, then KABADDI_* environment overrides.
func Load(projectRoot string) (*Config, error) {
	kabaddiDir := GetKabaddiDir(projectRoot)
	configPath := filepath.Join(kabaddiDir, "config.toml")

	cfg := &Config{
		LogLevel:     "info",
		LogFile:      filepath.Join(kabaddiDir, "logs", "kabaddi.log"),
		CorpusSource: SourceBuiltin,
		DBPath:       filepath.Join(kabaddiDir, "corpus.sqlite3"),
		HistorySize:  DefaultHistorySize,
		RepeatWindow: DefaultRepeatWindow,
		Engine:       EngineRetrieval,
		MaxResults:   DefaultMaxResults,
		FAQThreshold: DefaultFAQThreshold,
		ConfigPath:   configPath,
		KabaddiDir:   kabaddiDir,
		ProjectRoot:  projectRoot,
	}

	if _, err := os.Stat(configPath); err == nil {
		fileData, err := os.ReadFile(configPath)
		if err != nil {
			return nil, err
		}
		var parsed fileConfig
		if err := toml.Unmarshal(fileData, &parsed); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
		}
		cfg.applyFile(&parsed)
	}

	cfg.applyEnv()

	cfg.CorpusFile = cfg.resolve(cfg.CorpusFile)
	cfg.DBPath = cfg.resolve(cfg.DBPath)
	cfg.LogFile = cfg.resolve(cfg.LogFile)
	return cfg, nil
}

func (c *Config) applyFile(parsed *fileConfig) {
	if parsed.Logging.Level != "" {
		c.LogLevel = parsed.Logging.Level
	}
	if parsed.Logging.File != "" {
		c.LogFile = parsed.Logging.File
	}
	if parsed.Corpus.Source != "" {
		c.CorpusSource = parsed.Corpus.Source
	}
	if parsed.Corpus.File != "" {
		c.CorpusFile = parsed.Corpus.File
		// a file without an explicit source means "use that file"
		if parsed.Corpus.Source == "" {
			c.CorpusSource = SourceFile
		}
	}
	if parsed.Corpus.DBPath != "" {
		c.DBPath = parsed.Corpus.DBPath
	}
	c.Watch = parsed.Corpus.Watch
	c.Sarcasm = parsed.Dialogue.Sarcasm
	if parsed.Dialogue.HistorySize != 0 {
		c.HistorySize = parsed.Dialogue.HistorySize
	}
	if parsed.Dialogue.RepeatWindow != 0 {
		c.RepeatWindow = parsed.Dialogue.RepeatWindow
	}
	if parsed.Engine.Kind != "" {
		c.Engine = parsed.Engine.Kind
	}
	if parsed.Engine.MaxResults != 0 {
		c.MaxResults = parsed.Engine.MaxResults
	}
	if parsed.Engine.FAQThreshold != 0 {
		c.FAQThreshold = parsed.Engine.FAQThreshold
	}
}

func (c *Config) applyEnv() {
	if level := os.Getenv("KABADDI_LOG_LEVEL"); level != "" {
		c.LogLevel = level
	}
	if logFile := os.Getenv("KABADDI_LOG_FILE"); logFile != "" {
		c.LogFile = logFile
	}
	if source := os.Getenv("KABADDI_CORPUS_SOURCE"); source != "" {
		c.CorpusSource = source
	}
	if file := os.Getenv("KABADDI_CORPUS_FILE"); file != "" {
		c.CorpusFile = file
	}
	if dbPath := os.Getenv("KABADDI_DB_PATH"); dbPath != "" {
		c.DBPath = dbPath
	}
	if watch := os.Getenv("KABADDI_WATCH"); watch != "" {
		c.Watch = parseBool(watch)
	}
	if sarcasm := os.Getenv("KABADDI_SARCASM"); sarcasm != "" {
		c.Sarcasm = parseBool(sarcasm)
	}
	if size := os.Getenv("KABADDI_HISTORY_SIZE"); size != "" {
		if n, err := strconv.Atoi(size); err == nil {
			c.HistorySize = n
		}
	}
	if window := os.Getenv("KABADDI_REPEAT_WINDOW"); window != "" {
		if n, err := strconv.Atoi(window); err == nil {
			c.RepeatWindow = n
		}
	}
	if engine := os.Getenv("KABADDI_ENGINE"); engine != "" {
		c.Engine = engine
	}
	if maxResults := os.Getenv("KABADDI_MAX_RESULTS"); maxResults != "" {
		if n, err := strconv.Atoi(maxResults); err == nil {
			c.MaxResults = n
		}
	}
	if threshold := os.Getenv("KABADDI_FAQ_THRESHOLD"); threshold != "" {
		if t, err := strconv.ParseFloat(threshold, 64); err == nil {
			c.FAQThreshold = t
		}
	}
}

func parseBool(s string) bool {
	return s == "true" || s == "1"
}

// resolve makes relative paths relative to the project root.
func (c *Config) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.ProjectRoot, path)
}

// Context key for storing config in context
type configContextKey struct{}

// WithConfig adds the config to the context
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configContextKey{}, cfg)
}

// FromContext retrieves the config from the context
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(configContextKey{}).(*Config); ok {
		return cfg
	}
	return nil
}

// Validate verifies the configuration is usable.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error", "off":
	default:
		return fmt.Errorf("unknown log level: %q", c.LogLevel)
	}
	switch c.CorpusSource {
	case SourceBuiltin, SourceDB:
	case SourceFile:
		if strings.TrimSpace(c.CorpusFile) == "" {
			return fmt.Errorf("corpus source is file but no corpus file is configured")
		}
	default:
		return fmt.Errorf("unknown corpus source: %q", c.CorpusSource)
	}
	if c.Watch && c.CorpusSource != SourceFile {
		return fmt.Errorf("corpus watching requires a file corpus source")
	}
	if c.HistorySize <= 0 || c.HistorySize > DefaultHistorySize {
		return fmt.Errorf("history size must be between 1 and %d", DefaultHistorySize)
	}
	if c.RepeatWindow <= 0 {
		return fmt.Errorf("repeat window must be positive")
	}
	switch c.Engine {
	case EngineRetrieval, EngineFAQ:
	default:
		return fmt.Errorf("unknown engine: %q", c.Engine)
	}
	if c.MaxResults <= 0 || c.MaxResults > DefaultMaxResults {
		return fmt.Errorf("max results must be between 1 and %d", DefaultMaxResults)
	}
	if c.FAQThreshold <= 0 || c.FAQThreshold > 1 {
		return fmt.Errorf("FAQ threshold must be between 0 and 1")
	}
	return nil
}
