package recall

import (
	"sort"
	"strings"

	"github.com/a-marczewski/kabaddibot/internal/corpus"
	"github.com/a-marczewski/kabaddibot/internal/tokenize"
	"go.uber.org/zap"
)

// DefaultMaxResults caps the number of sentences handed to the composer.
const DefaultMaxResults = 5

// Question is a tokenized user question.
type Question struct {
	Raw    string
	Lower  string
	Tokens []string
	set    map[string]struct{}
}

// NewQuestion lower-cases and tokenizes raw.
func NewQuestion(raw string) Question {
	tokens := tokenize.Tokenize(raw)
	return Question{
		Raw:    raw,
		Lower:  strings.ToLower(strings.TrimSpace(raw)),
		Tokens: tokens,
		set:    tokenize.Set(tokens),
	}
}

// Has reports whether the question contains the token.
func (q Question) Has(token string) bool {
	_, ok := q.set[token]
	return ok
}

// HasAny reports whether the question contains at least one of the tokens.
func (q Question) HasAny(tokens ...string) bool {
	for _, tok := range tokens {
		if q.Has(tok) {
			return true
		}
	}
	return false
}

// Result is a corpus sentence with its relevance score.
type Result struct {
	Score    int
	Sentence corpus.Sentence
}

// Texts returns the sentence texts of results in order.
func Texts(results []Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Sentence.Text
	}
	return out
}

// Source supplies the corpus snapshot to score against.
type Source interface {
	Load() *corpus.Corpus
}

// Recaller defines the interface for sentence recall engines.
type Recaller interface {
	Recall(q Question) []Result
}

// Engine scores corpus sentences by token overlap plus the boost table.
type Engine struct {
	source     Source
	rules      []BoostRule
	maxResults int
	logger     *zap.Logger
	metrics    *Metrics
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxResults overrides DefaultMaxResults. Values above the default are clamped.
func WithMaxResults(n int) Option {
	return func(e *Engine) {
		if n > 0 && n <= DefaultMaxResults {
			e.maxResults = n
		}
	}
}

// WithRules replaces the default boost table.
func WithRules(rules []BoostRule) Option {
	return func(e *Engine) {
		e.rules = rules
	}
}

// WithLogger sets the engine logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates a new recall engine over source.
func NewEngine(source Source, opts ...Option) *Engine {
	e := &Engine{
		source:     source,
		rules:      DefaultRules(),
		maxResults: DefaultMaxResults,
		logger:     zap.NewNop(),
		metrics:    &Metrics{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Metrics returns the engine's counters.
func (e *Engine) Metrics() *Metrics {
	return e.metrics
}

// Recall returns up to maxResults sentences with a positive score, highest
// first. Ties keep corpus order.
func (e *Engine) Recall(q Question) []Result {
	c := e.source.Load()
	if c == nil {
		return nil
	}

	var results []Result
	for _, s := range c.Sentences() {
		score := e.ScoreSentence(q, s)
		if score > 0 {
			results = append(results, Result{Score: score, Sentence: s})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	results = applyLimits(results, e.maxResults)

	e.metrics.record(len(results))
	e.logger.Debug("Recall complete",
		zap.Int("question_tokens", len(q.Tokens)),
		zap.Int("results", len(results)))
	return results
}

// ScoreSentence computes 2 x token overlap plus every matching boost.
func (e *Engine) ScoreSentence(q Question, s corpus.Sentence) int {
	score := 2 * overlap(q, s)
	for _, rule := range e.rules {
		if rule.Question(q) && rule.Sentence(s) {
			score += rule.Boost
		}
	}
	return score
}

func overlap(q Question, s corpus.Sentence) int {
	n := 0
	for tok := range q.set {
		if s.Has(tok) {
			n++
		}
	}
	return n
}

func applyLimits(results []Result, maxItems int) []Result {
	if maxItems > 0 && len(results) > maxItems {
		return results[:maxItems]
	}
	return results
}
