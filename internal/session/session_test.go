package session

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type echoResponder struct {
	questions []string
}

func (e *echoResponder) Answer(q string) string {
	e.questions = append(e.questions, q)
	return "you said " + q
}

type politeResponder struct{ echoResponder }

func (p *politeResponder) Farewell() string { return "Match finished" }

func TestRunAnswersUntilExit(t *testing.T) {
	r := &echoResponder{}
	in := strings.NewReader("what is kabaddi\n\n   \n  how big is the court  \nEXIT\nnever asked\n")
	var out bytes.Buffer

	s := New(r, in, &out, WithLogger(zap.NewNop()))
	require.NoError(t, s.Run(context.Background()))

	assert.Equal(t, []string{"what is kabaddi", "how big is the court"}, r.questions)
	assert.Equal(t, 2, s.Turns())

	text := out.String()
	assert.Contains(t, text, DefaultBanner[1])
	assert.Contains(t, text, "Bot: you said what is kabaddi\n")
	assert.Contains(t, text, "Bot: you said how big is the court\n")
	assert.Contains(t, text, "Bot: "+DefaultFarewell+"\n")
	assert.NotContains(t, text, "never asked")
}

func TestRunUsesResponderFarewell(t *testing.T) {
	r := &politeResponder{}
	var out bytes.Buffer
	s := New(r, strings.NewReader("bye\n"), &out, WithBanner(nil))
	require.NoError(t, s.Run(context.Background()))

	assert.Equal(t, Prompt+"Bot: Match finished\n", out.String())
}

func TestRunEndOfInput(t *testing.T) {
	r := &echoResponder{}
	var out bytes.Buffer
	s := New(r, strings.NewReader("rules"), &out, WithBanner(nil))
	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, []string{"rules"}, r.questions)
}

func TestRunCancelled(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	s := New(&echoResponder{}, pr, io.Discard, WithBanner(nil))
	go func() { done <- s.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("session did not stop after cancel")
	}
}

func TestSessionID(t *testing.T) {
	a := New(&echoResponder{}, strings.NewReader(""), io.Discard)
	b := New(&echoResponder{}, strings.NewReader(""), io.Discard)

	_, err := uuid.Parse(a.ID())
	assert.NoError(t, err)
	assert.NotEqual(t, a.ID(), b.ID())
}
