package dialogue

import (
	"regexp"
	"strings"

	"github.com/a-marczewski/kabaddibot/internal/recall"
	"github.com/a-marczewski/kabaddibot/internal/tokenize"
)

// Sarcasm trigger categories.
const (
	CategorySilly      = "silly"
	CategoryAbsurd     = "absurd"
	CategoryRepetitive = "repetitive"
	CategoryTooEasy    = "too_easy"
)

// turn is what a trigger gets to look at.
type turn struct {
	q     recall.Question
	prior []string // history entries before this question, oldest first
}

// trigger maps a question to a sarcasm category. Earlier triggers shadow later ones.
type trigger struct {
	category string
	match    func(t turn) bool
}

var (
	sillyPattern  = regexp.MustCompile(`\b(ball|bat|racket|helmet|goal ?keeper|football|cricket|soccer|boring)\b`)
	absurdPattern = regexp.MustCompile(`\b(moon|space|mars|aliens?|underwater|dragons?|zombies?|robots?)\b`)
	basicKeywords = []string{"kabaddi", "player", "players", "team", "court", "raider"}
)

func repeatTrigger(window, minRepeats int) func(t turn) bool {
	return func(t turn) bool {
		recent := t.prior
		if len(recent) > window {
			recent = recent[len(recent)-window:]
		}
		n := 0
		for _, prev := range recent {
			if prev == t.q.Lower {
				n++
			}
		}
		return n >= minRepeats
	}
}

func tooEasy(t turn) bool {
	if countWords(t.q.Raw) <= 15 {
		return false
	}
	return t.q.HasAny(basicKeywords...)
}

func defaultTriggers(repeatWindow int) []trigger {
	return []trigger{
		{CategorySilly, func(t turn) bool { return sillyPattern.MatchString(t.q.Lower) }},
		{CategoryAbsurd, func(t turn) bool { return absurdPattern.MatchString(t.q.Lower) }},
		{CategoryRepetitive, repeatTrigger(repeatWindow, 2)},
		{CategoryTooEasy, tooEasy},
	}
}

// sarcasmTemplates use {wrong} for a fabricated fact and {answer} for the real one.
var sarcasmTemplates = map[string][]string{
	CategorySilly: {
		"Oh sure, and {wrong}. Seriously though: {answer}",
		"Right, because {wrong}. Back on planet Earth: {answer}",
		"Obviously {wrong}. Everyone knows that. Except it's wrong: {answer}",
	},
	CategoryAbsurd: {
		"Absolutely, {wrong}. Or, in reality: {answer}",
		"Great question for a sci-fi novel. Everyone knows {wrong}. The boring truth: {answer}",
	},
	CategoryRepetitive: {
		"You already asked that. Still the same answer: {answer}",
		"Asking again won't change the facts. {answer}",
		"Third time's the charm? Nope, still: {answer}",
	},
	CategoryTooEasy: {
		"That many words for such a simple question? I could tell you {wrong}, but fine: {answer}",
		"That's a long way of asking the basics. {answer}",
	},
}

// wrongFact pairs a question pattern with a deliberately false statement.
type wrongFact struct {
	pattern *regexp.Regexp
	fact    string
}

var wrongFacts = []wrongFact{
	{regexp.MustCompile(`\bball\b`), "kabaddi is played with a giant inflatable ball"},
	{regexp.MustCompile(`\b(football|cricket|soccer)\b`), "kabaddi is just cricket without the bat, the ball or the tea breaks"},
	{regexp.MustCompile(`\b(space|moon|mars)\b`), "kabaddi was first played on the moon in 1969"},
	{regexp.MustCompile(`\b(easy|simple)\b`), "kabaddi is so easy that toddlers win the Pro Kabaddi League"},
	{regexp.MustCompile(`\bboring\b`), "kabaddi is officially the most boring sport on Earth"},
}

const defaultWrongFact = "kabaddi is played by eleven players holding their breath for an hour"

func pickWrongFact(lower string) string {
	for _, wf := range wrongFacts {
		if wf.pattern.MatchString(lower) {
			return wf.fact
		}
	}
	return defaultWrongFact
}

var praisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bstrateg(y|ies|ic)\b`),
	regexp.MustCompile(`\btechniques?\b`),
	regexp.MustCompile(`\btactics?\b`),
	regexp.MustCompile(`\bwhy\b.*\bimportant\b`),
	regexp.MustCompile(`\bcompar(e|ed|ison)\b`),
	regexp.MustCompile(`\bdifference\b`),
	regexp.MustCompile(`\bevol(ution|ved?)\b`),
	regexp.MustCompile(`\bhistory of\b`),
	regexp.MustCompile(`\bhow has\b.*\bchanged\b`),
	regexp.MustCompile(`\b(science|psychology)\b`),
}

var praisePhrases = []string{
	"Great question! ",
	"Now that's a thoughtful question. ",
	"Ooh, a strategic thinker. ",
	"I like where your head is at. ",
}

func isThoughtful(lower string) bool {
	for _, re := range praisePatterns {
		if re.MatchString(lower) {
			return true
		}
	}
	return false
}

func fillTemplate(tmpl, wrong, answer string) string {
	return strings.NewReplacer("{wrong}", wrong, "{answer}", answer).Replace(tmpl)
}

// countWords counts alphanumeric words, ignoring sentence markers.
func countWords(text string) int {
	return len(tokenize.Words(tokenize.Tokenize(text)))
}
