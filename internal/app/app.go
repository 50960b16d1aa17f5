package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/a-marczewski/kabaddibot/internal/config"
	"github.com/a-marczewski/kabaddibot/internal/corpus"
	"github.com/a-marczewski/kabaddibot/internal/dialogue"
	"github.com/a-marczewski/kabaddibot/internal/faq"
	"github.com/a-marczewski/kabaddibot/internal/logging"
	"github.com/a-marczewski/kabaddibot/internal/recall"
	"github.com/a-marczewski/kabaddibot/internal/session"
	"github.com/a-marczewski/kabaddibot/internal/storage"
	"go.uber.org/zap"
)

// NewApp loads the project configuration, sets up logging and loads the
// corpus. A corpus that fails to load is reported through Corpus.Err rather
// than failing every command.
func NewApp() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := config.EnsureDirs(cfg.KabaddiDir); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", cfg.KabaddiDir, err)
	}

	// the chat loop owns the terminal, so logs go to file only
	logger, err := logging.NewLoggerWithStderr(cfg.LogLevel, cfg.LogFile, false)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	a, err := New(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize application", zap.Error(err))
		return nil, err
	}
	return a, nil
}

// New builds an App from an already loaded configuration.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	a := &App{
		Core: CoreModule{
			Config: cfg,
			Logger: logger,
		},
		Ctx:    ctx,
		Cancel: cancel,
	}

	c, err := a.LoadCorpus(ctx)
	if err != nil {
		logger.Warn("Configured corpus unavailable, using built-in passages",
			zap.String("source", cfg.CorpusSource), zap.Error(err))
		c = corpus.Builtin()
	}
	holder := corpus.NewHolder(c)
	a.Corpus = CorpusModule{
		Holder: holder,
		Engine: recall.NewEngine(holder,
			recall.WithMaxResults(cfg.MaxResults),
			recall.WithLogger(logger)),
		Err: err,
	}
	return a, nil
}

// RequireCorpus returns the error that kept the configured corpus from
// loading, or nil.
func (a *App) RequireCorpus() error {
	if a.Corpus.Err != nil {
		return fmt.Errorf("corpus source %s: %w", a.Core.Config.CorpusSource, a.Corpus.Err)
	}
	return nil
}

// OpenDB opens the corpus database if it is not open yet.
func (a *App) OpenDB() (*storage.DB, error) {
	if a.Core.DB != nil {
		return a.Core.DB, nil
	}
	db, err := storage.Open(a.Core.Config.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus database: %w", err)
	}
	a.Core.DB = db
	a.Core.Logger.Debug("Corpus database opened", zap.String("path", db.Path()))
	return db, nil
}

// LoadCorpus reads the corpus from the configured source.
func (a *App) LoadCorpus(ctx context.Context) (*corpus.Corpus, error) {
	cfg := a.Core.Config
	var (
		c   *corpus.Corpus
		err error
	)
	switch cfg.CorpusSource {
	case config.SourceFile:
		c, err = corpus.LoadFile(cfg.CorpusFile)
	case config.SourceDB:
		var db *storage.DB
		if db, err = a.OpenDB(); err != nil {
			break
		}
		var passages []string
		if passages, err = db.Passages(ctx); err != nil {
			err = fmt.Errorf("failed to read corpus database: %w", err)
			break
		}
		c, err = corpus.New(passages)
	default:
		c = corpus.Builtin()
	}
	if err != nil {
		return nil, err
	}
	a.Core.Logger.Info("Corpus loaded",
		zap.String("source", cfg.CorpusSource),
		zap.Int("passages", c.Len()),
		zap.Int("sentences", c.SentenceCount()))
	return c, nil
}

// NewPolicy returns a fresh dialogue policy for one session.
func (a *App) NewPolicy(sarcasm bool) *dialogue.Policy {
	cfg := a.Core.Config
	return dialogue.NewPolicy(a.Corpus.Engine,
		dialogue.WithSarcasm(sarcasm),
		dialogue.WithHistorySize(cfg.HistorySize),
		dialogue.WithRepeatWindow(cfg.RepeatWindow),
		dialogue.WithLogger(a.Core.Logger))
}

// FAQ returns the question dictionary engine, fitting it on first use.
func (a *App) FAQ() *faq.Engine {
	if a.faq == nil {
		a.faq = faq.Builtin(
			faq.WithThreshold(a.Core.Config.FAQThreshold),
			faq.WithLogger(a.Core.Logger))
	}
	return a.faq
}

// Responder returns the answering engine named by kind ("" means the
// configured one).
func (a *App) Responder(kind string, sarcasm bool) (session.Responder, error) {
	if kind == "" {
		kind = a.Core.Config.Engine
	}
	switch kind {
	case config.EngineRetrieval:
		if err := a.RequireCorpus(); err != nil {
			return nil, err
		}
		return a.NewPolicy(sarcasm), nil
	case config.EngineFAQ:
		return a.FAQ(), nil
	default:
		return nil, fmt.Errorf("unknown engine: %q", kind)
	}
}

// NewWatcher returns a watcher that reloads the corpus file into the live
// holder.
func (a *App) NewWatcher() (*corpus.Watcher, error) {
	cfg := a.Core.Config
	if cfg.CorpusSource != config.SourceFile {
		return nil, fmt.Errorf("corpus source is %s; watching needs a corpus file", cfg.CorpusSource)
	}
	return corpus.NewWatcher(cfg.CorpusFile, a.Corpus.Holder, a.Core.Logger)
}

// Close gracefully shuts down the application resources.
func (a *App) Close() {
	if a.Cancel != nil {
		a.Cancel()
	}

	if a.Core.DB != nil {
		if err := a.Core.DB.Close(); err != nil {
			a.Core.Logger.Error("Failed to close database connection", zap.Error(err))
		}
		a.Core.DB = nil
	}
	if a.Core.Logger != nil {
		if err := a.Core.Logger.Sync(); err != nil {
			if !strings.Contains(err.Error(), "sync /dev/stderr: invalid argument") &&
				!strings.Contains(err.Error(), "sync /dev/stderr: inappropriate ioctl for device") {
				fmt.Fprintf(os.Stderr, "Error syncing logger: %v\n", err)
			}
		}
	}
}

// ContextWithLogger returns a new context with the application's logger.
func (a *App) ContextWithLogger(ctx context.Context) context.Context {
	return logging.ContextWithLogger(ctx, a.Core.Logger)
}

// LoggerFromContext retrieves the logger from the given context, or returns the default app logger.
func (a *App) LoggerFromContext(ctx context.Context) *zap.Logger {
	if logger, ok := logging.LoggerFromContext(ctx); ok {
		return logger
	}
	return a.Core.Logger
}
