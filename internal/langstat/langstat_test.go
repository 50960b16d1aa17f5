package langstat

import (
	"testing"

	"github.com/a-marczewski/kabaddibot/internal/corpus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLearnSmallCorpus(t *testing.T) {
	m := New(WithLogger(zap.NewNop()))
	m.Learn([]string{"The cat sat", "the cat ran"})

	assert.Equal(t, []string{Start, End, Unknown, "the", "cat"}, m.Vocabulary())
	assert.Equal(t, 5, m.VocabularySize())
	assert.Equal(t, 3, m.WordID("the"))
	assert.Equal(t, 2, m.WordID("sat"))
	assert.Equal(t, 5, m.NGramPatterns())
	assert.Equal(t, 6, m.CooccurrenceWords())
}

func TestNextWords(t *testing.T) {
	m := New()
	m.Learn([]string{"the cat sat", "the cat ran"})

	tests := []struct {
		name     string
		context  []string
		expected []Prediction
	}{
		{"empty context", nil, []Prediction{{"the", 2}}},
		{"padded", []string{"the", "cat"}, []Prediction{{"ran", 1}, {"sat", 1}}},
		{"trimmed", []string{"dog", "the", "cat", "sat"}, []Prediction{{End, 1}}},
		{"unseen", []string{"a", "b", "c"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, m.NextWords(tt.context, 5))
		})
	}
	assert.Len(t, m.NextWords([]string{"the", "cat"}, 1), 1)
	assert.Nil(t, m.NextWords(nil, 0))
}

func TestRelated(t *testing.T) {
	m := New()
	m.Learn([]string{"the cat sat", "the cat ran"})

	got := m.Related("cat", 3)
	require.Len(t, got, 3)
	assert.Equal(t, Prediction{Start, 6}, got[0])
	assert.Equal(t, Prediction{End, 2}, got[1])
	assert.Equal(t, Prediction{"the", 2}, got[2])
	assert.Nil(t, m.Related("dog", 3))
}

func TestContextSizeOption(t *testing.T) {
	m := New(WithContextSize(1), WithContextSize(0))
	assert.Equal(t, 1, m.ContextSize())
	m.Learn([]string{"a b", "a c"})
	assert.Equal(t, []Prediction{{"b", 1}, {"c", 1}}, m.NextWords([]string{"a"}, 5))
}

func TestLearnReplacesStatistics(t *testing.T) {
	m := New()
	m.Learn([]string{"x y", "x y"})
	assert.Equal(t, 5, m.VocabularySize())
	m.Learn([]string{"z"})
	assert.Equal(t, 3, m.VocabularySize())
	assert.Equal(t, m.WordID(Unknown), m.WordID("x"))
}

func TestBuiltinCorpus(t *testing.T) {
	m := New()
	m.Learn(corpus.BuiltinPassages())

	assert.Greater(t, m.VocabularySize(), 3)
	assert.NotEqual(t, m.WordID(Unknown), m.WordID("kabaddi"))
	assert.Greater(t, m.NGramPatterns(), 0)

	var words []string
	for _, p := range m.NextWords([]string{"kabaddi", "is", "a"}, 10) {
		words = append(words, p.Word)
	}
	assert.Contains(t, words, "contact")

	var _ LanguageStatistics = m
}
