// Package langstat keeps word statistics learned from the corpus: a vocabulary,
// next-word counts for fixed-size contexts and windowed co-occurrence counts.
// Answering never consults it; it backs the stats command.
package langstat

import (
	"sort"
	"strings"

	"github.com/a-marczewski/kabaddibot/internal/tokenize"
	"go.uber.org/zap"
)

// Special vocabulary entries.
const (
	Start   = "<START>"
	End     = "<END>"
	Unknown = "<UNK>"
)

const (
	// DefaultContextSize is how many preceding words predict the next one.
	DefaultContextSize = 3
	// CooccurrenceWindow is the distance within which two words co-occur.
	CooccurrenceWindow = 5
	// MinFrequency is how often a word must appear to enter the vocabulary.
	MinFrequency = 2
)

// Prediction is a word with its observed count.
type Prediction struct {
	Word  string
	Count int
}

// LanguageStatistics exposes what a Model learned.
type LanguageStatistics interface {
	VocabularySize() int
	WordID(word string) int
	NGramPatterns() int
	CooccurrenceWords() int
	NextWords(context []string, n int) []Prediction
	Related(word string, n int) []Prediction
}

// Model learns statistics from a list of passages.
type Model struct {
	contextSize int
	logger      *zap.Logger

	vocab  []string
	ids    map[string]int
	ngrams map[string]map[string]int
	cooc   map[string]map[string]int
}

var _ LanguageStatistics = (*Model)(nil)

// Option configures a Model.
type Option func(*Model)

// WithContextSize sets the n-gram context length.
func WithContextSize(n int) Option {
	return func(m *Model) {
		if n > 0 {
			m.contextSize = n
		}
	}
}

// WithLogger sets the model logger.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// New returns an empty model.
func New(opts ...Option) *Model {
	m := &Model{
		contextSize: DefaultContextSize,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.reset()
	return m
}

func (m *Model) reset() {
	m.vocab = []string{Start, End, Unknown}
	m.ids = map[string]int{Start: 0, End: 1, Unknown: 2}
	m.ngrams = make(map[string]map[string]int)
	m.cooc = make(map[string]map[string]int)
}

// Learn replaces the model's statistics with those of passages.
func (m *Model) Learn(passages []string) {
	m.reset()

	tokenized := make([][]string, len(passages))
	freq := make(map[string]int)
	var order []string
	for i, p := range passages {
		tokens := tokenize.Tokenize(p)
		tokenized[i] = tokens
		for _, tok := range tokens {
			if freq[tok] == 0 {
				order = append(order, tok)
			}
			freq[tok]++
		}
	}
	for _, tok := range order {
		if freq[tok] >= MinFrequency {
			m.ids[tok] = len(m.vocab)
			m.vocab = append(m.vocab, tok)
		}
	}

	for _, tokens := range tokenized {
		seq := make([]string, 0, m.contextSize+len(tokens)+1)
		for i := 0; i < m.contextSize; i++ {
			seq = append(seq, Start)
		}
		seq = append(seq, tokens...)
		seq = append(seq, End)

		for i := 0; i+m.contextSize < len(seq); i++ {
			bump(m.ngrams, contextKey(seq[i:i+m.contextSize]), seq[i+m.contextSize])
		}
		for i, w := range seq {
			lo := max(0, i-CooccurrenceWindow)
			hi := min(len(seq), i+CooccurrenceWindow+1)
			for j := lo; j < hi; j++ {
				if j != i {
					bump(m.cooc, w, seq[j])
				}
			}
		}
	}

	m.logger.Info("Language statistics learned",
		zap.Int("passages", len(passages)),
		zap.Int("vocabulary", len(m.vocab)),
		zap.Int("ngram_patterns", len(m.ngrams)),
		zap.Int("cooccurrence_words", len(m.cooc)))
}

// VocabularySize includes the three special entries.
func (m *Model) VocabularySize() int {
	return len(m.vocab)
}

// Vocabulary returns the vocabulary in id order.
func (m *Model) Vocabulary() []string {
	out := make([]string, len(m.vocab))
	copy(out, m.vocab)
	return out
}

// WordID returns the id of word, or the id of Unknown.
func (m *Model) WordID(word string) int {
	if id, ok := m.ids[word]; ok {
		return id
	}
	return m.ids[Unknown]
}

// NGramPatterns returns the number of distinct contexts seen.
func (m *Model) NGramPatterns() int {
	return len(m.ngrams)
}

// CooccurrenceWords returns the number of words with co-occurrence counts.
func (m *Model) CooccurrenceWords() int {
	return len(m.cooc)
}

// ContextSize returns the n-gram context length.
func (m *Model) ContextSize() int {
	return m.contextSize
}

// NextWords returns up to n words most often seen after context. Only the
// last ContextSize words are used; shorter contexts are padded with Start.
func (m *Model) NextWords(context []string, n int) []Prediction {
	ctx := make([]string, 0, m.contextSize)
	for i := len(context); i < m.contextSize; i++ {
		ctx = append(ctx, Start)
	}
	if len(context) > m.contextSize {
		context = context[len(context)-m.contextSize:]
	}
	ctx = append(ctx, context...)
	return top(m.ngrams[contextKey(ctx)], n)
}

// Related returns up to n words that most often appear near word.
func (m *Model) Related(word string, n int) []Prediction {
	return top(m.cooc[word], n)
}

func contextKey(words []string) string {
	return strings.Join(words, "\x1f")
}

func bump(table map[string]map[string]int, key, word string) {
	row, ok := table[key]
	if !ok {
		row = make(map[string]int)
		table[key] = row
	}
	row[word]++
}

// top sorts by count descending, then word ascending.
func top(counts map[string]int, n int) []Prediction {
	if len(counts) == 0 || n <= 0 {
		return nil
	}
	out := make([]Prediction, 0, len(counts))
	for w, c := range counts {
		out = append(out, Prediction{Word: w, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
