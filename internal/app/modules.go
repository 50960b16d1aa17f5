package app

import (
	"context"

	"github.com/a-marczewski/kabaddibot/internal/config"
	"github.com/a-marczewski/kabaddibot/internal/corpus"
	"github.com/a-marczewski/kabaddibot/internal/faq"
	"github.com/a-marczewski/kabaddibot/internal/recall"
	"github.com/a-marczewski/kabaddibot/internal/storage"
	"go.uber.org/zap"
)

// CoreModule holds the core application components
type CoreModule struct {
	Config *config.Config
	Logger *zap.Logger
	DB     *storage.DB // opened on first use
}

// CorpusModule holds the live corpus and the retrieval engine over it.
// When the configured source failed to load, Err is set and Holder serves
// the built-in corpus so maintenance commands can still run.
type CorpusModule struct {
	Holder *corpus.Holder
	Engine *recall.Engine
	Err    error
}

// App holds the core components of the application.
type App struct {
	Core   CoreModule
	Corpus CorpusModule
	faq    *faq.Engine
	Ctx    context.Context
	Cancel context.CancelFunc
}
