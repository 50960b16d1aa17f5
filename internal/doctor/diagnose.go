package doctor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/a-marczewski/kabaddibot/internal/config"
	"github.com/a-marczewski/kabaddibot/internal/corpus"
	"github.com/a-marczewski/kabaddibot/internal/storage"
)

// Diagnostics holds diagnostic information
type Diagnostics struct {
	Checks []CheckResult `json:"checks"`
	Issues []string      `json:"issues"`
	Status string        `json:"status"`
}

// CheckResult represents the result of a single check
type CheckResult struct {
	Name     string `json:"name"`
	Status   string `json:"status"` // "pass", "fail", "warn"
	Message  string `json:"message"`
	Severity string `json:"severity"` // "info", "warning", "error"
}

func pass(name, msg string) CheckResult {
	return CheckResult{Name: name, Status: "pass", Message: msg, Severity: "info"}
}

func warn(name, msg string) CheckResult {
	return CheckResult{Name: name, Status: "warn", Message: msg, Severity: "warning"}
}

func fail(name, msg string) CheckResult {
	return CheckResult{Name: name, Status: "fail", Message: msg, Severity: "error"}
}

// Runner runs diagnostic checks
type Runner struct {
	config    *config.Config
	corpus    *corpus.Corpus
	corpusErr error
	db        *storage.DB
}

// NewRunner creates a runner. c and corpusErr are the outcome of loading the
// configured corpus; db may be nil when no database is in use.
func NewRunner(cfg *config.Config, c *corpus.Corpus, corpusErr error, db *storage.DB) *Runner {
	return &Runner{
		config:    cfg,
		corpus:    c,
		corpusErr: corpusErr,
		db:        db,
	}
}

// RunAll runs all diagnostic checks
func (d *Runner) RunAll(ctx context.Context) *Diagnostics {
	var results []CheckResult
	var issues []string

	results = append(results, d.checkConfiguration()...)
	results = append(results, d.checkCorpus()...)
	results = append(results, d.checkDatabase(ctx)...)

	for _, result := range results {
		if result.Status == "fail" {
			issues = append(issues, result.Message)
		}
	}

	status := "healthy"
	if len(issues) > 0 {
		status = "issues_found"
	}

	return &Diagnostics{
		Checks: results,
		Issues: issues,
		Status: status,
	}
}

func (d *Runner) checkConfiguration() []CheckResult {
	var results []CheckResult

	if err := d.config.Validate(); err != nil {
		results = append(results, fail("configuration_validation", fmt.Sprintf("Configuration validation failed: %v", err)))
	} else {
		results = append(results, pass("configuration_validation", "Configuration is valid"))
	}

	if _, err := os.Stat(d.config.ConfigPath); os.IsNotExist(err) {
		results = append(results, warn("config_file", fmt.Sprintf("No config file at %s, using defaults", d.config.ConfigPath)))
	} else if err != nil {
		results = append(results, fail("config_file", fmt.Sprintf("Cannot access config file: %v", err)))
	} else {
		results = append(results, pass("config_file", fmt.Sprintf("Config file found: %s", d.config.ConfigPath)))
	}

	return results
}

func (d *Runner) checkCorpus() []CheckResult {
	var results []CheckResult

	if d.config.CorpusSource == config.SourceFile {
		if _, err := os.Stat(d.config.CorpusFile); err != nil {
			results = append(results, fail("corpus_file", fmt.Sprintf("Cannot access corpus file: %v", err)))
		} else {
			results = append(results, pass("corpus_file", fmt.Sprintf("Corpus file is accessible: %s", d.config.CorpusFile)))
		}
	}

	switch {
	case d.corpusErr != nil:
		results = append(results, fail("corpus_loaded", fmt.Sprintf("Corpus failed to load: %v", d.corpusErr)))
	case d.corpus == nil || d.corpus.Len() == 0:
		results = append(results, fail("corpus_loaded", "Corpus is empty"))
	default:
		results = append(results, pass("corpus_loaded", fmt.Sprintf("Corpus loaded from %s: %d passages, %d sentences",
			d.config.CorpusSource, d.corpus.Len(), d.corpus.SentenceCount())))
	}

	return results
}

func (d *Runner) checkDatabase(ctx context.Context) []CheckResult {
	if d.db == nil {
		if d.config.CorpusSource == config.SourceDB {
			return []CheckResult{fail("database_connectivity", "Corpus source is db but no database is open")}
		}
		return []CheckResult{warn("database_connectivity", fmt.Sprintf("Database not in use (%s)", d.config.DBPath))}
	}

	var results []CheckResult

	if err := d.db.Ping(); err != nil {
		results = append(results, fail("database_connectivity", fmt.Sprintf("Cannot connect to database: %v", err)))
		return results
	}
	results = append(results, pass("database_connectivity", "Database connection successful"))

	var integrity string
	if err := d.db.GetConnection().QueryRowContext(ctx, "PRAGMA integrity_check").Scan(&integrity); err != nil {
		results = append(results, fail("database_integrity", fmt.Sprintf("Database integrity check failed: %v", err)))
	} else if integrity != "ok" {
		results = append(results, fail("database_integrity", fmt.Sprintf("Database integrity check reported: %s", integrity)))
	} else {
		results = append(results, pass("database_integrity", "Database integrity check passed"))
	}

	if version, err := d.db.Version(); err != nil || version != storage.SchemaVersion {
		results = append(results, fail("database_schema", fmt.Sprintf("Unexpected schema version %d (want %d)", version, storage.SchemaVersion)))
	} else {
		results = append(results, pass("database_schema", fmt.Sprintf("Schema version %d", version)))
	}

	meta, err := d.db.Meta(ctx)
	switch {
	case errors.Is(err, storage.ErrNoPassages):
		sev := warn
		if d.config.CorpusSource == config.SourceDB {
			sev = fail
		}
		results = append(results, sev("database_corpus", "Database holds no corpus; run `kabaddi corpus export`"))
	case err != nil:
		results = append(results, fail("database_corpus", fmt.Sprintf("Cannot read corpus metadata: %v", err)))
	default:
		results = append(results, pass("database_corpus", fmt.Sprintf("Database corpus: %d passages from %s", meta.Passages, meta.Source)))
	}

	return results
}

// PrintReport writes a formatted diagnostic report to w
func (d *Diagnostics) PrintReport(w io.Writer) {
	fmt.Fprintf(w, "=== kabaddi Diagnostic Report ===\n")
	fmt.Fprintf(w, "Status: %s\n\n", d.Status)

	if len(d.Issues) > 0 {
		fmt.Fprintf(w, "Issues Found:\n")
		for i, issue := range d.Issues {
			fmt.Fprintf(w, "  %d. %s\n", i+1, issue)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Detailed Checks:\n")
	for _, check := range d.Checks {
		statusSymbol := "✓"
		if check.Status == "fail" {
			statusSymbol = "✗"
		} else if check.Status == "warn" {
			statusSymbol = "!"
		}
		fmt.Fprintf(w, "  %s %s: %s\n", statusSymbol, check.Name, check.Message)
	}

	fmt.Fprintln(w, "\nRecommendations:")
	if len(d.Issues) == 0 {
		fmt.Fprintln(w, "  ✓ System is operating normally")
	} else {
		fmt.Fprintln(w, "  • Review .kabaddi/config.toml")
		fmt.Fprintln(w, "  • Check the corpus file or re-export the corpus database")
	}
}
