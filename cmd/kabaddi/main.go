package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/a-marczewski/kabaddibot/internal/app"
	"github.com/a-marczewski/kabaddibot/internal/config"
	"github.com/a-marczewski/kabaddibot/internal/corpus"
	"github.com/a-marczewski/kabaddibot/internal/doctor"
	"github.com/a-marczewski/kabaddibot/internal/langstat"
	"github.com/a-marczewski/kabaddibot/internal/storage"
	"github.com/a-marczewski/kabaddibot/internal/tokenize"
	"github.com/a-marczewski/kabaddibot/internal/version"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "kabaddi",
	Short: "kabaddi - a chatbot that answers kabaddi questions from text",
	Long: `kabaddi answers questions about kabaddi by retrieving sentences from a
small corpus and composing a reply. Sarcasm is optional.`,
}

func init() {
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(corpusCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(completionCmd)
}

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate the autocompletion script for the specified shell",
	Long: `Generate the autocompletion script for kabaddi for the specified shell.
See each command's help for details on how to use the generated script.
	`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Run: func(cmd *cobra.Command, args []string) {
		var err error
		switch args[0] {
		case "bash":
			err = cmd.Root().GenBashCompletion(os.Stdout)
		case "zsh":
			err = cmd.Root().GenZshCompletion(os.Stdout)
		case "fish":
			err = cmd.Root().GenFishCompletion(os.Stdout, true)
		case "powershell":
			err = cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating completion script: %v\n", err)
			os.Exit(1)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
}

var versionVerbose bool

func init() {
	versionCmd.Flags().BoolVarP(&versionVerbose, "verbose", "v", false, "Show module, Go version and commit")
}

func runVersionCmd(a *app.App, cmd *cobra.Command, args []string) {
	info := version.Info()
	if !versionVerbose {
		fmt.Printf("kabaddi %s\n", info.Short())
		return
	}
	fmt.Print(info.String())
}

var askCmd = &cobra.Command{
	Use:   "ask <question...>",
	Short: "Answer a single question",
	Args:  cobra.MinimumNArgs(1),
}

var (
	askSarcasm bool
	askEngine  string
)

func init() {
	askCmd.Flags().BoolVar(&askSarcasm, "sarcasm", false, "Answer in sarcasm mode")
	askCmd.Flags().StringVar(&askEngine, "engine", "", "Answer engine: retrieval or faq (default from config)")
}

func runAskCmd(a *app.App, cmd *cobra.Command, args []string) {
	sarcasm := a.Core.Config.Sarcasm
	if cmd.Flags().Changed("sarcasm") {
		sarcasm = askSarcasm
	}
	responder, err := a.Responder(askEngine, sarcasm)
	if err != nil {
		fail(a, "Failed to create responder", err)
	}
	fmt.Println(responder.Answer(strings.Join(args, " ")))
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show language statistics learned from the corpus",
}

var (
	statsContext string
	statsRelated string
	statsTop     int
)

func init() {
	statsCmd.Flags().StringVar(&statsContext, "context", "", "Show the words most often following this text")
	statsCmd.Flags().StringVar(&statsRelated, "related", "", "Show the words most often near this word")
	statsCmd.Flags().IntVar(&statsTop, "top", 5, "Number of words to show")
}

func runStatsCmd(a *app.App, cmd *cobra.Command, args []string) {
	if err := a.RequireCorpus(); err != nil {
		fail(a, "Failed to load corpus", err)
	}
	c := a.Corpus.Holder.Load()
	model := langstat.New(langstat.WithLogger(a.Core.Logger))
	model.Learn(c.Passages())

	fmt.Printf("Passages: %d\n", c.Len())
	fmt.Printf("Sentences: %d\n", c.SentenceCount())
	fmt.Printf("Vocabulary: %d words (seen at least %d times, plus %s %s %s)\n",
		model.VocabularySize(), langstat.MinFrequency, langstat.Start, langstat.End, langstat.Unknown)
	fmt.Printf("N-gram patterns: %d (context of %d words)\n", model.NGramPatterns(), model.ContextSize())
	fmt.Printf("Co-occurrence words: %d (window of %d)\n", model.CooccurrenceWords(), langstat.CooccurrenceWindow)

	if statsContext != "" {
		fmt.Printf("\nAfter %q:\n", statsContext)
		printPredictions(model.NextWords(tokenize.Tokenize(statsContext), statsTop))
	}
	if statsRelated != "" {
		fmt.Printf("\nNear %q:\n", statsRelated)
		printPredictions(model.Related(strings.ToLower(statsRelated), statsTop))
	}
}

func printPredictions(preds []langstat.Prediction) {
	if len(preds) == 0 {
		fmt.Println("  (nothing learned)")
		return
	}
	for _, p := range preds {
		fmt.Printf("  %-16s %d\n", p.Word, p.Count)
	}
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run diagnostics on the kabaddi setup",
}

func runDoctorCmd(a *app.App, cmd *cobra.Command, args []string) {
	var db *storage.DB
	if _, err := os.Stat(a.Core.Config.DBPath); err == nil || a.Core.DB != nil {
		if db, err = a.OpenDB(); err != nil {
			a.Core.Logger.Warn("Doctor could not open database", zap.Error(err))
		}
	}
	var c *corpus.Corpus
	if a.Corpus.Err == nil {
		c = a.Corpus.Holder.Load()
	}
	diagnostics := doctor.NewRunner(a.Core.Config, c, a.Corpus.Err, db).RunAll(cmd.Context())
	diagnostics.PrintReport(os.Stdout)
	if diagnostics.Status != "healthy" {
		a.Close()
		os.Exit(1)
	}
}

// fail logs err, reports it on stderr and exits.
func fail(a *app.App, msg string, err error) {
	a.Core.Logger.Error(msg, zap.Error(err))
	fmt.Fprintf(os.Stderr, "❌ %s: %v\n", msg, err)
	a.Close()
	os.Exit(1)
}

// newAppRunner creates a Cobra Run function closure with the app.App instance.
func newAppRunner(a *app.App, runFunc func(*app.App, *cobra.Command, []string)) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		ctx := config.WithConfig(cmd.Context(), a.Core.Config)
		cmd.SetContext(a.ContextWithLogger(ctx))
		runFunc(a, cmd, args)
	}
}

func main() {
	appInstance, err := app.NewApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize application: %v\n", err)
		os.Exit(1)
	}
	defer appInstance.Close()

	chatCmd.Run = newAppRunner(appInstance, runChatCmd)
	askCmd.Run = newAppRunner(appInstance, runAskCmd)
	corpusListCmd.Run = newAppRunner(appInstance, runCorpusListCmd)
	corpusStatsCmd.Run = newAppRunner(appInstance, runCorpusStatsCmd)
	corpusExportCmd.Run = newAppRunner(appInstance, runCorpusExportCmd)
	corpusImportCmd.Run = newAppRunner(appInstance, runCorpusImportCmd)
	statsCmd.Run = newAppRunner(appInstance, runStatsCmd)
	doctorCmd.Run = newAppRunner(appInstance, runDoctorCmd)
	versionCmd.Run = newAppRunner(appInstance, runVersionCmd)

	if err := rootCmd.ExecuteContext(appInstance.Ctx); err != nil {
		appInstance.Core.Logger.Error("Root command execution failed", zap.Error(err))
		appInstance.Close()
		os.Exit(1)
	}
}
