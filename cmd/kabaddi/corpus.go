package main

import (
	"fmt"
	"os"

	"github.com/a-marczewski/kabaddibot/internal/app"
	"github.com/a-marczewski/kabaddibot/internal/config"
	"github.com/a-marczewski/kabaddibot/internal/corpus"
	"github.com/a-marczewski/kabaddibot/internal/recall"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Inspect and manage the kabaddi corpus",
}

var corpusListCmd = &cobra.Command{
	Use:   "list",
	Short: "List corpus passages",
}

var corpusStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show corpus size",
}

var corpusExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the current corpus into the corpus database",
}

var corpusImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a passage file into the corpus database",
	Long: `Import a passage file into the corpus database, replacing what is stored.

The file holds one passage per line. Blank lines and lines starting with '#'
are ignored. Set [corpus] source = "db" to answer from the database.`,
	Args: cobra.ExactArgs(1),
}

var corpusListSentences bool

func init() {
	corpusCmd.AddCommand(corpusListCmd)
	corpusCmd.AddCommand(corpusStatsCmd)
	corpusCmd.AddCommand(corpusExportCmd)
	corpusCmd.AddCommand(corpusImportCmd)

	corpusListCmd.Flags().BoolVar(&corpusListSentences, "sentences", false, "List sentences instead of passages")
}

func runCorpusListCmd(a *app.App, cmd *cobra.Command, args []string) {
	if err := a.RequireCorpus(); err != nil {
		fail(a, "Failed to load corpus", err)
	}
	c := a.Corpus.Holder.Load()
	if corpusListSentences {
		for i, s := range c.Sentences() {
			fmt.Printf("%3d [p%d] %s\n", i+1, s.Passage+1, s.Text)
		}
		return
	}
	for i, p := range c.Passages() {
		fmt.Printf("%3d %s\n", i+1, p)
	}
}

func runCorpusStatsCmd(a *app.App, cmd *cobra.Command, args []string) {
	if err := a.RequireCorpus(); err != nil {
		fail(a, "Failed to load corpus", err)
	}
	c := a.Corpus.Holder.Load()
	tokens := 0
	for _, s := range c.Sentences() {
		tokens += s.TokenCount()
	}

	fmt.Printf("Source: %s\n", a.Core.Config.CorpusSource)
	fmt.Printf("Passages: %d\n", c.Len())
	fmt.Printf("Sentences: %d\n", c.SentenceCount())
	fmt.Printf("Sentence tokens: %d\n", tokens)
	fmt.Printf("Results per question: at most %d\n", min(a.Core.Config.MaxResults, recall.DefaultMaxResults))

	if a.Core.DB == nil {
		if _, err := os.Stat(a.Core.Config.DBPath); err != nil {
			return
		}
	}
	db, err := a.OpenDB()
	if err != nil {
		a.Core.Logger.Warn("Cannot open corpus database", zap.Error(err))
		return
	}
	meta, err := db.Meta(cmd.Context())
	if err != nil {
		fmt.Printf("Database: %s (no corpus stored)\n", db.Path())
		return
	}
	fmt.Printf("Database: %s (%d passages from %s, imported %s)\n",
		db.Path(), meta.Passages, meta.Source, meta.ImportedAt.Format("2006-01-02 15:04"))
}

func runCorpusExportCmd(a *app.App, cmd *cobra.Command, args []string) {
	db, err := a.OpenDB()
	if err != nil {
		fail(a, "Failed to open corpus database", err)
	}
	source := a.Core.Config.CorpusSource
	switch {
	case a.Corpus.Err != nil:
		// the holder fell back to the built-in passages
		source = config.SourceBuiltin
		a.Core.Logger.Warn("Exporting built-in corpus", zap.Error(a.Corpus.Err))
	case source == config.SourceFile:
		source = "file:" + a.Core.Config.CorpusFile
	}
	n, err := db.ReplacePassages(cmd.Context(), a.Corpus.Holder.Load().Passages(), source)
	if err != nil {
		fail(a, "Failed to export corpus", err)
	}
	a.Core.Logger.Info("Corpus exported", zap.Int("passages", n), zap.String("db", db.Path()))
	fmt.Printf("✅ Exported %d passages to %s\n", n, db.Path())
}

func runCorpusImportCmd(a *app.App, cmd *cobra.Command, args []string) {
	path := args[0]
	c, err := corpus.LoadFile(path)
	if err != nil {
		fail(a, "Failed to load corpus file", err)
	}
	db, err := a.OpenDB()
	if err != nil {
		fail(a, "Failed to open corpus database", err)
	}
	n, err := db.ReplacePassages(cmd.Context(), c.Passages(), "file:"+path)
	if err != nil {
		fail(a, "Failed to import corpus", err)
	}
	a.Core.Logger.Info("Corpus imported", zap.Int("passages", n), zap.String("file", path))
	fmt.Printf("✅ Imported %d passages from %s into %s\n", n, path, db.Path())
}
