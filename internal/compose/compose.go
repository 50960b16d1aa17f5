// Package compose turns ranked corpus sentences into a single reply.
package compose

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/a-marczewski/kabaddibot/internal/recall"
)

// NoInformation is returned when there is nothing to compose from.
const NoInformation = "I don't have enough information about that."

// Fallback is returned when every branch produced an empty string.
const Fallback = "Kabaddi is a contact team sport from India. Ask me about its rules, players or the Pro Kabaddi League."

// intent selects sentences for one question category.
type intent struct {
	name     string
	question *regexp.Regexp
	selectFn func(sentences []string) []string
}

var playerNames = []string{
	"pardeep", "anup", "pawan", "rahul", "fazel", "sandeep", "manjeet", "naveen",
}

var intents = []intent{
	{
		name:     "definition",
		question: regexp.MustCompile(`\bwhat\s+is\s+kabaddi\b`),
		selectFn: firstMatching(1, func(s string) bool {
			return strings.Contains(s, " is a ") || strings.Contains(s, " is the ")
		}),
	},
	{
		name:     "origin",
		question: regexp.MustCompile(`\bwhere\b.*\b(origin|originate[ds]?|come from|came from|start(ed)?)\b`),
		selectFn: firstMatching(2, containsAny("originated", "punjab", "tamil", "maharashtra", "ancient")),
	},
	{
		name:     "team-size",
		question: regexp.MustCompile(`\bhow\s+many\b.*\bplayers?\b`),
		selectFn: firstMatching(1, containsAny("seven players", "teams of seven")),
	},
	{
		name:     "rules",
		question: regexp.MustCompile(`\brules?\b`),
		selectFn: func(sentences []string) []string {
			if len(sentences) > 8 {
				sentences = sentences[:8]
			}
			return firstMatching(5, func(s string) bool {
				return hasWord(s, recall.GameplayKeywords) || hasWord(s, recall.ScoringKeywords)
			})(sentences)
		},
	},
	{
		name:     "how-to-play",
		question: regexp.MustCompile(`\bhow\b.*\bplay(ed|ing)?\b`),
		selectFn: firstMatching(4, containsAny("raider", "enters", "attempts", "tag", "chant", "breath", "teams", "compete")),
	},
	{
		name:     "scoring",
		question: regexp.MustCompile(`\b(score|scored|scoring|points?)\b`),
		selectFn: firstMatching(3, func(s string) bool { return hasWord(s, recall.ScoringKeywords) }),
	},
	{
		name:     "court",
		question: regexp.MustCompile(`\b(court|dimensions?|measure[sd]?|big|size)\b`),
		selectFn: firstMatching(2, func(s string) bool {
			return strings.Contains(s, "meters") && strings.Contains(s, "court")
		}),
	},
	{
		name:     "famous-player",
		question: regexp.MustCompile(`\b(famous|best|top|who|star|legend)\b`),
		selectFn: firstMatching(3, containsAny(playerNames...)),
	},
}

// Compose builds the reply for question from sentences ranked best first.
func Compose(sentences []string, question string) string {
	reply, _ := ComposeIntent(sentences, question)
	return reply
}

// ComposeIntent is Compose that also reports which intent produced the reply.
func ComposeIntent(sentences []string, question string) (string, string) {
	if len(sentences) == 0 {
		return NoInformation, "none"
	}
	q := strings.ToLower(question)
	for _, in := range intents {
		if !in.question.MatchString(q) {
			continue
		}
		if picked := in.selectFn(sentences); len(picked) > 0 {
			return Join(picked), in.name
		}
	}
	if reply := Normalize(sentences[0]); reply != "" {
		return reply, "default"
	}
	return Fallback, "fallback"
}

// Join normalizes each sentence and joins them with single spaces.
func Join(sentences []string) string {
	parts := make([]string, 0, len(sentences))
	for _, s := range sentences {
		if n := Normalize(s); n != "" {
			parts = append(parts, n)
		}
	}
	return strings.Join(parts, " ")
}

// Normalize trims s, upper-cases its first letter and appends a period unless
// it already ends in terminal punctuation.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	s = string(unicode.ToUpper(r)) + s[size:]
	switch s[len(s)-1] {
	case '.', '!', '?':
		return s
	}
	return s + "."
}

func firstMatching(limit int, match func(string) bool) func([]string) []string {
	return func(sentences []string) []string {
		var picked []string
		for _, s := range sentences {
			if match(strings.ToLower(s)) {
				picked = append(picked, s)
				if len(picked) == limit {
					break
				}
			}
		}
		return picked
	}
}

func containsAny(needles ...string) func(string) bool {
	return func(s string) bool {
		for _, n := range needles {
			if strings.Contains(s, n) {
				return true
			}
		}
		return false
	}
}

func hasWord(s string, words []string) bool {
	for _, field := range strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		for _, w := range words {
			if field == w {
				return true
			}
		}
	}
	return false
}
