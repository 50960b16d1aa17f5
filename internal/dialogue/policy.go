// Package dialogue decides how each user turn is answered: canned replies for
// special cases, retrieval for everything else, and an optional sarcasm or
// praise overlay on top.
package dialogue

import (
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/a-marczewski/kabaddibot/internal/compose"
	"github.com/a-marczewski/kabaddibot/internal/recall"
	"go.uber.org/zap"
)

// Canned replies.
const (
	SarcasmOnReply  = "Sarcasm mode ON. Brace yourself."
	SarcasmOffReply = "Sarcasm mode OFF. Back to being helpful."

	GreetingReply          = "Hello! I've learned about kabaddi from text. Ask me anything!"
	SarcasticGreetingReply = "Oh, hello. Another future champion here to ask me what kabaddi is? Go on then."

	PermissionReply = "Yes, absolutely! Kabaddi is a sport anyone can play. It requires teamwork, fitness, and strategic thinking."

	MenCourtConfirmed   = "Yes, that's correct! The kabaddi court is 13 meters by 10 meters for men's matches."
	WomenCourtConfirmed = "Yes, that's correct! The women's kabaddi court is 12 meters by 8 meters."
	CourtCorrection     = "No, that's not correct. The kabaddi court measures 13 meters by 10 meters for men and 12 meters by 8 meters for women."

	EmptyQuestionReply = "Could you please ask a question?"
	OffTopicReply      = "I've learned about kabaddi. Please ask me kabaddi-related questions!"
	KnownGapReply      = "I don't have information about that specific topic in my training data. I can tell you about kabaddi basics, players, rules, and the Pro Kabaddi League."
	NoSignalReply      = "I haven't learned enough about that specific topic yet. Try asking about kabaddi basics, players, rules, or Pro Kabaddi League."

	FarewellReply          = "Goodbye!"
	SarcasticFarewellReply = "Leaving already? Go catch your breath, raider."
)

// DefaultRepeatWindow is how many earlier questions are checked for repeats.
const DefaultRepeatWindow = 3

var (
	greetingPattern   = regexp.MustCompile(`^(hi+|hello|hey)\b`)
	permissionPattern = regexp.MustCompile(`^(can|could|may) (i|we)\b`)
	verifyPattern     = regexp.MustCompile(`^is`)
	numberPattern     = regexp.MustCompile(`\d+`)
)

// control commands: true toggles, otherwise the value is the new mode
var controlCommands = map[string]struct {
	toggle bool
	on     bool
}{
	"toggle sarcasm":  {toggle: true},
	"sarcasm":         {toggle: true},
	"sarcasm mode":    {toggle: true},
	"sarcasm on":      {on: true},
	"enable sarcasm":  {on: true},
	"sarcasm off":     {on: false},
	"disable sarcasm": {on: false},
}

var domainKeywords = []string{
	"kabaddi", "player", "raider", "defender", "court", "raid", "pkl",
	"tournament", "game", "sport", "team", "match", "originated", "origin",
}

var knownGaps = []string{"gold medal", "olympics", "medal", "championship winner"}

// Policy answers one turn at a time. A Policy owns its history and mode and
// must not be shared between sessions; the recaller may be shared.
type Policy struct {
	recaller     recall.Recaller
	history      *History
	sarcastic    bool
	rng          *rand.Rand
	logger       *zap.Logger
	triggers     []trigger
	repeatWindow int
}

// Option configures a Policy.
type Option func(*Policy)

// WithRand fixes the random source used for template selection.
func WithRand(rng *rand.Rand) Option {
	return func(p *Policy) {
		if rng != nil {
			p.rng = rng
		}
	}
}

// WithLogger sets the policy logger.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Policy) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithSarcasm sets the initial sarcasm mode.
func WithSarcasm(on bool) Option {
	return func(p *Policy) {
		p.sarcastic = on
	}
}

// WithHistorySize sets the history capacity (at most MaxHistory).
func WithHistorySize(n int) Option {
	return func(p *Policy) {
		p.history = NewHistory(n)
	}
}

// WithRepeatWindow sets how many earlier questions the repetition check scans.
func WithRepeatWindow(n int) Option {
	return func(p *Policy) {
		if n > 0 {
			p.repeatWindow = n
		}
	}
}

// NewPolicy creates a policy answering from recaller.
func NewPolicy(recaller recall.Recaller, opts ...Option) *Policy {
	now := uint64(time.Now().UnixNano())
	p := &Policy{
		recaller:     recaller,
		history:      NewHistory(MaxHistory),
		rng:          rand.New(rand.NewPCG(now, now>>1)),
		logger:       zap.NewNop(),
		repeatWindow: DefaultRepeatWindow,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.triggers = defaultTriggers(p.repeatWindow)
	p.logger.Debug("Dialogue policy created",
		zap.Bool("sarcasm", p.sarcastic),
		zap.Int("history_cap", p.history.Cap()),
		zap.Int("repeat_window", p.repeatWindow))
	return p
}

// Sarcastic reports the current mode.
func (p *Policy) Sarcastic() bool {
	return p.sarcastic
}

// History returns recorded questions, oldest first.
func (p *Policy) History() []string {
	return p.history.Items()
}

// Greeting returns the greeting for the current mode.
func (p *Policy) Greeting() string {
	if p.sarcastic {
		return SarcasticGreetingReply
	}
	return GreetingReply
}

// Farewell returns the goodbye line for the current mode.
func (p *Policy) Farewell() string {
	if p.sarcastic {
		return SarcasticFarewellReply
	}
	return FarewellReply
}

// Answer returns the reply for question. It never fails.
func (p *Policy) Answer(question string) string {
	reply, branch := p.answer(question)
	p.logger.Debug("Turn answered",
		zap.String("branch", branch),
		zap.Bool("sarcasm", p.sarcastic),
		zap.Int("history", p.history.Len()))
	return reply
}

func (p *Policy) answer(question string) (string, string) {
	q := recall.NewQuestion(question)

	if cmd, ok := controlCommands[q.Lower]; ok {
		if cmd.toggle {
			p.sarcastic = !p.sarcastic
		} else {
			p.sarcastic = cmd.on
		}
		if p.sarcastic {
			return SarcasmOnReply, "control"
		}
		return SarcasmOffReply, "control"
	}

	if greetingPattern.MatchString(q.Lower) {
		return p.Greeting(), "greeting"
	}

	prior := p.history.Items()
	p.history.Add(q.Lower)

	if permissionPattern.MatchString(q.Lower) {
		return PermissionReply, "permission"
	}

	if reply, ok := verifyCourt(q.Lower); ok {
		return reply, "verify"
	}

	if len(q.Tokens) == 0 {
		return EmptyQuestionReply, "empty"
	}

	if !containsAny(q.Lower, domainKeywords) {
		return OffTopicReply, "off_topic"
	}

	if containsAny(q.Lower, knownGaps) {
		return KnownGapReply, "known_gap"
	}

	results := p.recaller.Recall(q)
	if len(results) == 0 {
		return NoSignalReply, "no_signal"
	}
	answer, intent := compose.ComposeIntent(recall.Texts(results), q.Lower)

	if p.sarcastic {
		t := turn{q: q, prior: prior}
		for _, tr := range p.triggers {
			if tr.match(t) {
				return p.sarcasm(tr.category, q.Lower, answer), "sarcasm_" + tr.category
			}
		}
	}
	if isThoughtful(q.Lower) {
		return p.pick(praisePhrases) + answer, "praise_" + intent
	}
	return answer, intent
}

// verifyCourt handles "is the court X by Y" style checks. Only the first two
// numbers in the question are compared, wherever they appear.
func verifyCourt(lower string) (string, bool) {
	if !verifyPattern.MatchString(lower) {
		return "", false
	}
	nums := numberPattern.FindAllString(lower, -1)
	if len(nums) < 2 {
		return "", false
	}
	a, errA := strconv.Atoi(nums[0])
	b, errB := strconv.Atoi(nums[1])
	if errA != nil || errB != nil {
		return CourtCorrection, true
	}
	switch {
	case samePair(a, b, 13, 10):
		return MenCourtConfirmed, true
	case samePair(a, b, 12, 8):
		return WomenCourtConfirmed, true
	default:
		return CourtCorrection, true
	}
}

func samePair(a, b, x, y int) bool {
	return (a == x && b == y) || (a == y && b == x)
}

func (p *Policy) sarcasm(category, lower, answer string) string {
	tmpl := p.pick(sarcasmTemplates[category])
	return fillTemplate(tmpl, pickWrongFact(lower), answer)
}

func (p *Policy) pick(options []string) string {
	if len(options) == 0 {
		return ""
	}
	return options[p.rng.IntN(len(options))]
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
