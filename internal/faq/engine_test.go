package faq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestClean(t *testing.T) {
	assert.Equal(t, "prokabaddi ", Clean("Pro-Kabaddi 2024!"))
	assert.Equal(t, "whats a raid", Clean("What's a RAID?"))
}

func TestAnalyze(t *testing.T) {
	assert.Equal(t, []string{"players", "kabaddi", "players kabaddi"}, analyze("How many players in kabaddi?"))
	assert.Equal(t, []string{"kabaddi"}, analyze("all out in kabaddi"))
	assert.Nil(t, analyze("what is it"))
	assert.Equal(t,
		[]string{"pro", "kabaddi", "league", "pro kabaddi", "kabaddi league", "pro kabaddi league"},
		analyze("pro kabaddi league"))
}

func TestBuiltin(t *testing.T) {
	e := Builtin(WithLogger(zap.NewNop()))
	assert.Equal(t, 39, e.Len())
	assert.Len(t, BuiltinPairs(), 39)
}

func TestAnswer(t *testing.T) {
	e := Builtin()
	tests := []struct {
		question string
		expected string
	}{
		{"What is Kabaddi?", builtinPairs[0].Answer},
		{"who is pardeep narwal", "Pardeep Narwal is called the Dubki King because defenders still haven't figured him out."},
		{"Tell me about Rahul Chaudhari", "Rahul Chaudhari is the Poster Boy of Kabaddi: talent plus timing."},
		{"how long is a kabaddi match duration", "A kabaddi match lasts 40 minutes, which feels much longer if you're the raider."},
		{"tell me about the weather", FallbackReply},
		{"", FallbackReply},
	}
	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			assert.Equal(t, tt.expected, e.Answer(tt.question))
		})
	}
}

func TestBestPrefersEarlierOnTie(t *testing.T) {
	e := Builtin()
	m := e.Best("kabaddi")
	assert.Equal(t, 0, m.Index)
	assert.InDelta(t, 1.0, m.Score, 1e-9)
	assert.Equal(t, "what is kabaddi", m.Question)
}

func TestThreshold(t *testing.T) {
	e := Builtin(WithThreshold(1.5))
	assert.Equal(t, FallbackReply, e.Answer("pardeep narwal"))

	pairs := []Pair{{"court size", "13 by 10"}, {"team size", "seven"}}
	small, err := New(pairs)
	require.NoError(t, err)
	assert.Equal(t, "13 by 10", small.Answer("court"))
	assert.Equal(t, "seven", small.Answer("team"))
}

func TestNewRequiresPairs(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrNoPairs)
}

func TestFarewell(t *testing.T) {
	assert.Equal(t, FarewellReply, Builtin().Farewell())
}
