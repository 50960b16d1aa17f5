package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/a-marczewski/kabaddibot/internal/app"
	"github.com/a-marczewski/kabaddibot/internal/config"
	"github.com/a-marczewski/kabaddibot/internal/session"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive kabaddi chat",
	Long: `Start an interactive chat on stdin and stdout.

Type 'toggle sarcasm' (or 'sarcasm on' / 'sarcasm off') to switch modes and
'quit', 'exit' or 'bye' to leave.`,
}

var (
	chatSarcasm bool
	chatEngine  string
	chatWatch   bool
)

func init() {
	chatCmd.Flags().BoolVar(&chatSarcasm, "sarcasm", false, "Start in sarcasm mode")
	chatCmd.Flags().StringVar(&chatEngine, "engine", "", "Answer engine: retrieval or faq (default from config)")
	chatCmd.Flags().BoolVar(&chatWatch, "watch", false, "Reload the corpus file when it changes")
}

func runChatCmd(a *app.App, cmd *cobra.Command, args []string) {
	cfg := config.FromContext(cmd.Context())
	logger := a.LoggerFromContext(cmd.Context())

	sarcasm := cfg.Sarcasm
	if cmd.Flags().Changed("sarcasm") {
		sarcasm = chatSarcasm
	}
	watch := cfg.Watch
	if cmd.Flags().Changed("watch") {
		watch = chatWatch
	}

	responder, err := a.Responder(chatEngine, sarcasm)
	if err != nil {
		fail(a, "Failed to create responder", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if watch {
		if cfg.CorpusSource != config.SourceFile {
			fmt.Fprintf(os.Stderr, "--watch needs a corpus file; corpus source is %s\n", cfg.CorpusSource)
		} else {
			watcher, err := a.NewWatcher()
			if err != nil {
				fail(a, "Failed to watch corpus file", err)
			}
			defer watcher.Stop()
			go func() {
				if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					logger.Warn("Corpus watcher stopped", zap.Error(err))
				}
			}()
		}
	}

	s := session.New(responder, os.Stdin, os.Stdout, session.WithLogger(logger))
	if err := s.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fail(a, "Chat session failed", err)
	}
	logger.Info("Chat session ended",
		zap.String("session", s.ID()),
		zap.Int("turns", s.Turns()),
		zap.Any("recall", a.Corpus.Engine.Metrics().Snapshot()))
}
