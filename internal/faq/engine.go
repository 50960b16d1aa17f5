// Package faq answers from a fixed question dictionary by TF-IDF similarity
// between the user's question and every known question.
package faq

import (
	"errors"
	"math"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

const (
	// DefaultThreshold is the lowest cosine similarity that still answers.
	DefaultThreshold = 0.25
	// MaxNGram is the longest word n-gram used as a feature.
	MaxNGram = 3

	// FallbackReply is returned when nothing is similar enough.
	FallbackReply = "Ask something related to Kabaddi."
	// FarewellReply closes a FAQ session.
	FarewellReply = "Match finished"
)

// ErrNoPairs is returned when an engine is built without questions.
var ErrNoPairs = errors.New("faq: no question pairs")

var (
	nonLetter = regexp.MustCompile(`[^a-z\s]`)
	wordRE    = regexp.MustCompile(`\b\w\w+\b`)
)

// vector is a sparse, l2-normalised feature vector.
type vector map[int]float64

// Match is the best known question for a query.
type Match struct {
	Index    int
	Score    float64
	Question string
	Answer   string
}

// Engine holds the fitted vocabulary and question vectors.
type Engine struct {
	pairs     []Pair
	features  map[string]int
	idf       []float64
	vectors   []vector
	threshold float64
	logger    *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithThreshold sets the similarity threshold.
func WithThreshold(t float64) Option {
	return func(e *Engine) {
		if t > 0 {
			e.threshold = t
		}
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

// New fits an engine on pairs.
func New(pairs []Pair, opts ...Option) (*Engine, error) {
	if len(pairs) == 0 {
		return nil, ErrNoPairs
	}
	e := &Engine{
		pairs:     append([]Pair(nil), pairs...),
		features:  make(map[string]int),
		threshold: DefaultThreshold,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.fit()
	e.logger.Info("FAQ engine fitted",
		zap.Int("questions", len(e.pairs)),
		zap.Int("features", len(e.features)))
	return e, nil
}

// Builtin returns an engine over the built-in question dictionary.
func Builtin(opts ...Option) *Engine {
	e, err := New(builtinPairs, opts...)
	if err != nil {
		panic(err)
	}
	return e
}

func (e *Engine) fit() {
	docs := make([][]string, len(e.pairs))
	df := make(map[string]int)
	for i, p := range e.pairs {
		terms := analyze(p.Question)
		docs[i] = terms
		seen := make(map[string]struct{})
		for _, t := range terms {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			if _, ok := e.features[t]; !ok {
				e.features[t] = len(e.features)
			}
			df[t]++
		}
	}

	// smoothed idf: ln((1+n)/(1+df)) + 1
	n := float64(len(docs))
	e.idf = make([]float64, len(e.features))
	for t, idx := range e.features {
		e.idf[idx] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}

	e.vectors = make([]vector, len(docs))
	for i, terms := range docs {
		e.vectors[i] = e.vectorize(terms)
	}
}

func (e *Engine) vectorize(terms []string) vector {
	v := make(vector)
	for _, t := range terms {
		if idx, ok := e.features[t]; ok {
			v[idx]++
		}
	}
	var norm float64
	for idx, tf := range v {
		w := tf * e.idf[idx]
		v[idx] = w
		norm += w * w
	}
	if norm == 0 {
		return v
	}
	norm = math.Sqrt(norm)
	for idx := range v {
		v[idx] /= norm
	}
	return v
}

// Best returns the most similar known question. Ties go to the earlier one.
func (e *Engine) Best(question string) Match {
	q := e.vectorize(analyze(question))
	best := Match{Index: 0}
	for i, v := range e.vectors {
		if s := cosine(q, v); s > best.Score {
			best = Match{Index: i, Score: s}
		}
	}
	best.Question = e.pairs[best.Index].Question
	best.Answer = e.pairs[best.Index].Answer
	return best
}

// Answer returns the answer of the best match, or FallbackReply when the
// similarity is below the threshold.
func (e *Engine) Answer(question string) string {
	m := e.Best(question)
	if m.Score < e.threshold {
		e.logger.Debug("FAQ below threshold", zap.Float64("score", m.Score))
		return FallbackReply
	}
	e.logger.Debug("FAQ matched",
		zap.String("question", m.Question),
		zap.Float64("score", m.Score))
	return m.Answer
}

// Farewell returns the goodbye line.
func (e *Engine) Farewell() string {
	return FarewellReply
}

// Len returns the number of known questions.
func (e *Engine) Len() int {
	return len(e.pairs)
}

// Clean lower-cases text and drops everything except letters and whitespace.
func Clean(text string) string {
	return nonLetter.ReplaceAllString(strings.ToLower(text), "")
}

// analyze returns the 1..MaxNGram word n-grams of text after cleaning and
// stop word removal.
func analyze(text string) []string {
	var words []string
	for _, w := range wordRE.FindAllString(Clean(text), -1) {
		if _, stop := stopWords[w]; !stop {
			words = append(words, w)
		}
	}
	var terms []string
	for n := 1; n <= MaxNGram; n++ {
		for i := 0; i+n <= len(words); i++ {
			terms = append(terms, strings.Join(words[i:i+n], " "))
		}
	}
	return terms
}

func cosine(a, b vector) float64 {
	if len(a) > len(b) {
		a, b = b, a
	}
	var dot float64
	for idx, w := range a {
		dot += w * b[idx]
	}
	return dot
}
