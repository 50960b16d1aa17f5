package recall

import (
	"regexp"

	"github.com/a-marczewski/kabaddibot/internal/corpus"
)

// BoostRule adds Boost to a sentence's score when both predicates hold.
type BoostRule struct {
	Name     string
	Question func(Question) bool
	Sentence func(corpus.Sentence) bool
	Boost    int
}

// Keyword sets shared with the composer.
var (
	GameplayKeywords = []string{
		"raider", "raiding", "raid", "tag", "tags", "chant", "chanting", "breath",
		"out", "tackling", "catching", "return", "halves", "minutes", "seconds",
	}
	ScoringKeywords = []string{"score", "scores", "point", "points", "bonus"}
)

var (
	rulesPattern   = regexp.MustCompile(`\brules?\b`)
	scoringPattern = regexp.MustCompile(`\b(score|scored|scoring|points?)\b`)
	courtPattern   = regexp.MustCompile(`\b(court|dimensions?|measure|big)\b`)
	originPattern  = regexp.MustCompile(`origin`)
)

func anyToken(tokens ...string) func(Question) bool {
	return func(q Question) bool { return q.HasAny(tokens...) }
}

func matches(re *regexp.Regexp) func(Question) bool {
	return func(q Question) bool { return re.MatchString(q.Lower) }
}

func sentenceHasAny(tokens ...string) func(corpus.Sentence) bool {
	return func(s corpus.Sentence) bool { return s.HasAny(tokens...) }
}

// DefaultRules returns the boost table in evaluation order. Rules questions get
// the largest boosts because they are lexically sparse next to their answers.
func DefaultRules() []BoostRule {
	return []BoostRule{
		{
			Name: "team-size",
			Question: func(q Question) bool {
				return q.Has("team") && q.HasAny("size", "how", "many")
			},
			Sentence: sentenceHasAny("seven", "players", "each", "team", "substitute", "five", "7", "12"),
			Boost:    6,
		},
		{
			Name: "origin",
			Question: func(q Question) bool {
				return q.Has("where") || originPattern.MatchString(q.Lower)
			},
			Sentence: sentenceHasAny("originated", "origin", "punjab", "tamil", "maharashtra", "india", "ancient"),
			Boost:    5,
		},
		{
			Name:     "definition",
			Question: anyToken("what", "is"),
			Sentence: sentenceHasAny("is", "are", "means", "sport", "contact", "team"),
			Boost:    2,
		},
		{
			Name:     "how-many",
			Question: anyToken("how", "many"),
			Sentence: sentenceHasAny("seven", "two", "five", "7", "12", "meters", "teams", "players"),
			Boost:    4,
		},
		{
			Name:     "players",
			Question: anyToken("who", "player", "players", "famous", "best"),
			Sentence: sentenceHasAny("pardeep", "anup", "pawan", "rahul", "fazel", "players", "raiders", "defenders", "captains"),
			Boost:    4,
		},
		{
			Name:     "how-to-play",
			Question: anyToken("how", "play"),
			Sentence: sentenceHasAny("raider", "defender", "chant", "tag", "enters", "attempts", "teams", "compete"),
			Boost:    3,
		},
		{
			Name:     "rules-gameplay",
			Question: matches(rulesPattern),
			Sentence: sentenceHasAny(GameplayKeywords...),
			Boost:    30,
		},
		{
			Name:     "rules-scoring",
			Question: matches(rulesPattern),
			Sentence: sentenceHasAny(ScoringKeywords...),
			Boost:    25,
		},
		{
			Name:     "scoring",
			Question: matches(scoringPattern),
			Sentence: sentenceHasAny(ScoringKeywords...),
			Boost:    8,
		},
		{
			Name:     "court",
			Question: matches(courtPattern),
			Sentence: sentenceHasAny("meters"),
			Boost:    8,
		},
	}
}
