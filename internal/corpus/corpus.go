// Package corpus holds the immutable knowledge base the bot answers from.
package corpus

import (
	_ "embed"
	"errors"
	"regexp"
	"strings"
	"sync"

	"github.com/a-marczewski/kabaddibot/internal/tokenize"
)

//go:embed passages.txt
var embedded string

// ErrEmptyCorpus is returned when no usable sentence can be built from the input.
var ErrEmptyCorpus = errors.New("corpus has no sentences")

var sentenceSplit = regexp.MustCompile(`[.!?]+`)

// Sentence is a single corpus sentence with its token set.
type Sentence struct {
	Text    string
	Passage int // index of the owning passage
	tokens  map[string]struct{}
}

// Has reports whether the sentence contains the token.
func (s Sentence) Has(token string) bool {
	_, ok := s.tokens[token]
	return ok
}

// HasAny reports whether the sentence contains at least one of the tokens.
func (s Sentence) HasAny(tokens ...string) bool {
	for _, tok := range tokens {
		if s.Has(tok) {
			return true
		}
	}
	return false
}

// TokenCount returns the number of distinct tokens in the sentence.
func (s Sentence) TokenCount() int {
	return len(s.tokens)
}

// Corpus is an ordered, read-only list of passages split into sentences.
// A Corpus is never mutated after New returns and is safe to share.
type Corpus struct {
	passages  []string
	sentences []Sentence
}

// New splits passages into sentences and indexes their tokens.
func New(passages []string) (*Corpus, error) {
	c := &Corpus{passages: make([]string, 0, len(passages))}
	for _, p := range passages {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		idx := len(c.passages)
		c.passages = append(c.passages, p)
		for _, text := range SplitSentences(p) {
			c.sentences = append(c.sentences, Sentence{
				Text:    text,
				Passage: idx,
				tokens:  tokenize.Set(tokenize.Tokenize(text)),
			})
		}
	}
	if len(c.sentences) == 0 {
		return nil, ErrEmptyCorpus
	}
	return c, nil
}

// SplitSentences breaks text on runs of . ! ? and drops blank pieces.
func SplitSentences(text string) []string {
	parts := sentenceSplit.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

// Passages returns a copy of the source passages in load order.
func (c *Corpus) Passages() []string {
	out := make([]string, len(c.passages))
	copy(out, c.passages)
	return out
}

// Sentences returns the sentences in corpus order. Callers must not modify
// the returned slice.
func (c *Corpus) Sentences() []Sentence {
	return c.sentences
}

// Len returns the number of passages.
func (c *Corpus) Len() int {
	return len(c.passages)
}

// SentenceCount returns the number of sentences across all passages.
func (c *Corpus) SentenceCount() int {
	return len(c.sentences)
}

var (
	builtinOnce sync.Once
	builtin     *Corpus
)

// BuiltinPassages returns the compiled-in passage list.
func BuiltinPassages() []string {
	passages, err := ParsePassages(strings.NewReader(embedded))
	if err != nil {
		// the embedded file is a string literal; a scan error is impossible
		panic(err)
	}
	return passages
}

// Builtin returns the shared compiled-in corpus.
func Builtin() *Corpus {
	builtinOnce.Do(func() {
		c, err := New(BuiltinPassages())
		if err != nil {
			panic("corpus: embedded passages are empty")
		}
		builtin = c
	})
	return builtin
}
