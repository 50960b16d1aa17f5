// Package session runs the interactive question and answer loop.
package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	Prompt      = "You: "
	ReplyPrefix = "Bot: "
)

var exitWords = map[string]bool{"quit": true, "exit": true, "bye": true}

// Responder answers one question.
type Responder interface {
	Answer(question string) string
}

// Fareweller is implemented by responders with their own goodbye line.
type Fareweller interface {
	Farewell() string
}

// DefaultFarewell is used when the responder has no goodbye of its own.
const DefaultFarewell = "Goodbye!"

var rule = strings.Repeat("=", 60)

// DefaultBanner is printed before the first prompt.
var DefaultBanner = []string{
	rule,
	"Kabaddi Chatbot - Learned from Text",
	rule,
	"I learned everything from reading about kabaddi!",
	"Type 'quit' or 'exit' to end",
	rule,
}

// Session is one chat with a single responder.
type Session struct {
	id        string
	responder Responder
	in        io.Reader
	out       io.Writer
	banner    []string
	logger    *zap.Logger
	turns     int
}

// Option configures a Session.
type Option func(*Session)

// WithBanner replaces the banner. A nil banner prints nothing.
func WithBanner(lines []string) Option {
	return func(s *Session) {
		s.banner = lines
	}
}

// WithLogger sets the session logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a session reading questions from in and writing to out.
func New(responder Responder, in io.Reader, out io.Writer, opts ...Option) *Session {
	s := &Session{
		id:        uuid.NewString(),
		responder: responder,
		in:        in,
		out:       out,
		banner:    DefaultBanner,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(zap.String("session_id", s.id))
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Turns returns the number of questions answered.
func (s *Session) Turns() int {
	return s.turns
}

// Run loops until an exit word, end of input or ctx cancellation.
func (s *Session) Run(ctx context.Context) error {
	s.logger.Info("Session started")
	defer func() {
		s.logger.Info("Session ended", zap.Int("turns", s.turns))
	}()

	if len(s.banner) > 0 {
		fmt.Fprintln(s.out)
		for _, line := range s.banner {
			fmt.Fprintln(s.out, line)
		}
		fmt.Fprintln(s.out)
	}

	lines := make(chan string)
	errs := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(s.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		errs <- scanner.Err()
	}()

	for {
		fmt.Fprint(s.out, Prompt)
		var (
			line string
			ok   bool
		)
		select {
		case <-ctx.Done():
			fmt.Fprintln(s.out)
			return ctx.Err()
		case line, ok = <-lines:
		}
		if !ok {
			fmt.Fprintln(s.out)
			if err := <-errs; err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			return nil
		}

		question := strings.TrimSpace(line)
		if exitWords[strings.ToLower(question)] {
			fmt.Fprintf(s.out, "%s%s\n", ReplyPrefix, s.farewell())
			return nil
		}
		if question == "" {
			continue
		}

		reply := s.responder.Answer(question)
		s.turns++
		fmt.Fprintf(s.out, "%s%s\n\n", ReplyPrefix, reply)
	}
}

func (s *Session) farewell() string {
	if f, ok := s.responder.(Fareweller); ok {
		return f.Farewell()
	}
	return DefaultFarewell
}
