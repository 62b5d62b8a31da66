package gen

import (
	"strings"

	"babble/lexicon"
)

// ChoiceEvent is one entry of the append-only choice history.
type ChoiceEvent struct {
	Choice lexicon.Choice
	// HistoryIndex is the event's position in the history at record time.
	HistoryIndex int
}

type scopeFrame struct {
	scope lexicon.Scope
	// mark is the history length at push time, so scope exit can be
	// correlated with the entries made inside the scope.
	mark int
}

// Context is the per-call mutable state of one generation: active seed and
// archetype, the additive bias table, the choice history with its per-POS
// index, the scope stack, and the cross-choice relation hints. A Context is
// created fresh per Sentence/Paragraph/Text call and discarded with it; it
// is never shared between calls.
type Context struct {
	Seed      int64
	Archetype string
	Tags      []string

	bias    map[string]float64
	history []ChoiceEvent
	scopes  []scopeFrame

	// byPOS indexes the choices of the current sentence for constraint
	// lookups; it resets at every sentence boundary.
	byPOS map[lexicon.PartOfSpeech][]lexicon.Choice

	// sentenceStart marks where the current sentence's history begins.
	sentenceStart int

	// RelationHints queues related term values surfaced by relation
	// evaluation; future noun lookups may consume them in order.
	RelationHints []string

	// Retries counts failed attempts for the sentence in progress.
	Retries int

	// SentenceIndex counts accepted sentences within the current paragraph.
	SentenceIndex int
}

// NewContext returns a context with a single text-scope frame.
func NewContext(seed int64, archetype string, tags []string) *Context {
	return &Context{
		Seed:      seed,
		Archetype: archetype,
		Tags:      tags,
		bias:      make(map[string]float64),
		byPOS:     make(map[lexicon.PartOfSpeech][]lexicon.Choice),
		scopes:    []scopeFrame{{scope: lexicon.ScopeText}},
	}
}

// Scope returns the innermost active scope.
func (c *Context) Scope() lexicon.Scope {
	return c.scopes[len(c.scopes)-1].scope
}

// PushScope enters a nested scope.
func (c *Context) PushScope(sc lexicon.Scope) {
	c.scopes = append(c.scopes, scopeFrame{scope: sc, mark: len(c.history)})
}

// PopScope exits the innermost scope and returns the events recorded inside
// it. The root text frame is never popped.
func (c *Context) PopScope() []ChoiceEvent {
	if len(c.scopes) <= 1 {
		return nil
	}
	frame := c.scopes[len(c.scopes)-1]
	c.scopes = c.scopes[:len(c.scopes)-1]
	return c.history[frame.mark:]
}

// AddBias adds delta to the bias entry under key. Scope-prefixed keys hold
// the per-scope delta bookkeeping; bare keys hold the live value samplers
// read. Scope-boundary clears subtract the scoped entry back out of the bare
// one, so a boost never outlives its scope.
func (c *Context) AddBias(key string, delta float64) {
	c.bias[key] += delta
}

// Bias returns the live additive bias for a bare key.
func (c *Context) Bias(key string) float64 {
	return c.bias[key]
}

// Record appends a choice to the history and indexes it under its POS for
// the current sentence.
func (c *Context) Record(ch lexicon.Choice) {
	c.history = append(c.history, ChoiceEvent{Choice: ch, HistoryIndex: len(c.history)})
	if ch.POS != "" {
		c.byPOS[ch.POS] = append(c.byPOS[ch.POS], ch)
	}
}

// History returns the full append-only history.
func (c *Context) History() []ChoiceEvent {
	return c.history
}

// SentenceChoices returns the choices recorded since the last sentence
// boundary.
func (c *Context) SentenceChoices() []ChoiceEvent {
	return c.history[c.sentenceStart:]
}

// ChoicesByPOS returns the current sentence's choices for one POS.
func (c *Context) ChoicesByPOS(pos lexicon.PartOfSpeech) []lexicon.Choice {
	return c.byPOS[pos]
}

// sentencePrefixes are the bias-key scopes that expire with the sentence.
var sentencePrefixes = []string{
	string(lexicon.ScopeToken) + ":",
	string(lexicon.ScopePhrase) + ":",
	string(lexicon.ScopeClause) + ":",
	string(lexicon.ScopeSentence) + ":",
}

// ClearSentence prunes sentence-lived bias entries and resets the
// per-sentence token and feature state. Paragraph- and text-scoped bias
// survives.
func (c *Context) ClearSentence() {
	c.clearPrefixes(sentencePrefixes)
	c.byPOS = make(map[lexicon.PartOfSpeech][]lexicon.Choice)
	c.sentenceStart = len(c.history)
}

// ClearParagraph performs a sentence clear, additionally prunes
// paragraph-scoped bias, and resets the sentence index.
func (c *Context) ClearParagraph() {
	c.ClearSentence()
	c.clearPrefixes([]string{string(lexicon.ScopeParagraph) + ":"})
	c.SentenceIndex = 0
}

func (c *Context) clearPrefixes(prefixes []string) {
	for key, v := range c.bias {
		for _, p := range prefixes {
			if strings.HasPrefix(key, p) {
				bare := key[len(p):]
				c.bias[bare] -= v
				if c.bias[bare] == 0 {
					delete(c.bias, bare)
				}
				delete(c.bias, key)
				break
			}
		}
	}
}

// TakeHint pops the oldest relation hint, if any.
func (c *Context) TakeHint() (string, bool) {
	if len(c.RelationHints) == 0 {
		return "", false
	}
	h := c.RelationHints[0]
	c.RelationHints = c.RelationHints[1:]
	return h, true
}

// AddHints appends relation hints, skipping duplicates of pending ones.
func (c *Context) AddHints(hints []string) {
	for _, h := range hints {
		dup := false
		for _, p := range c.RelationHints {
			if p == h {
				dup = true
				break
			}
		}
		if !dup {
			c.RelationHints = append(c.RelationHints, h)
		}
	}
}
