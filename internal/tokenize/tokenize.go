// Package tokenize turns free text into the flat token stream shared by corpus
// indexing and question analysis.
//
// Pipeline order
// 1 Unicode NFKC normalization
// 2 Width fold fullwidth forms to ASCII
// 3 Lower-case
// 4 Drop everything outside [a-z0-9], whitespace and the sentence markers . ? !
// 5 Split on whitespace, emitting each sentence marker as its own token
package tokenize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Sentence markers kept by Tokenize.
const (
	Period   = "."
	Question = "?"
	Bang     = "!"
)

var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(norm.NFKC, width.Fold)
	},
}

// Tokenize lower-cases text and returns its alphanumeric words plus sentence
// punctuation markers, in order of appearance.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}

	tr := chainPool.Get().(transform.Transformer)
	folded, _, err := transform.String(tr, text)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		folded = text
	}

	var b strings.Builder
	b.Grow(len(folded) + 8)
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '?' || r == '!':
			b.WriteByte(' ')
			b.WriteRune(r)
			b.WriteByte(' ')
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}
	return strings.Fields(b.String())
}

// Join re-assembles tokens into a single space separated string.
// Tokenize(Join(Tokenize(x))) equals Tokenize(x).
func Join(tokens []string) string {
	return strings.Join(tokens, " ")
}

// IsMarker reports whether tok is a sentence punctuation marker.
func IsMarker(tok string) bool {
	return tok == Period || tok == Question || tok == Bang
}

// Words returns tokens without sentence markers.
func Words(tokens []string) []string {
	words := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if !IsMarker(tok) {
			words = append(words, tok)
		}
	}
	return words
}

// Set builds a membership set from tokens.
func Set(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}
	return set
}
