// Package lexicon defines the vocabulary and rule data that steer generation,
// the weighted term sampler, and the correlation logic that biases future
// samples in response to past choices. A Lexicon is read-only once loaded;
// the only mutation the engine ever performs is a whole-object replace.
package lexicon

// PartOfSpeech tags a term set and every item sampled from it.
type PartOfSpeech string

const (
	POSNoun         PartOfSpeech = "noun"
	POSVerb         PartOfSpeech = "verb"
	POSAdjective    PartOfSpeech = "adjective"
	POSAdverb       PartOfSpeech = "adverb"
	POSPreposition  PartOfSpeech = "preposition"
	POSConjunction  PartOfSpeech = "conjunction"
	POSInterjection PartOfSpeech = "interjection"
	POSDeterminer   PartOfSpeech = "determiner"
	POSPronoun      PartOfSpeech = "pronoun"
	POSAny          PartOfSpeech = "*"
)

// KnownPOS reports whether p is one of the recognized tags.
func KnownPOS(p PartOfSpeech) bool {
	switch p {
	case POSNoun, POSVerb, POSAdjective, POSAdverb, POSPreposition,
		POSConjunction, POSInterjection, POSDeterminer, POSPronoun, POSAny:
		return true
	}
	return false
}

// Scope bounds the lifetime of a bias entry or the reach of a rule.
type Scope string

const (
	ScopeToken     Scope = "token"
	ScopePhrase    Scope = "phrase"
	ScopeClause    Scope = "clause"
	ScopeSentence  Scope = "sentence"
	ScopeParagraph Scope = "paragraph"
	ScopeText      Scope = "text"
)

// KnownScope reports whether sc is one of the recognized scopes.
func KnownScope(sc Scope) bool {
	switch sc {
	case ScopeToken, ScopePhrase, ScopeClause, ScopeSentence, ScopeParagraph, ScopeText:
		return true
	}
	return false
}

// Term is one weighted entry in a term set. Weight zero means "use the
// default of 1"; negative weights are rejected at load time.
type Term struct {
	Value    string            `json:"value"`
	Weight   float64           `json:"weight,omitempty"`
	Features map[string]string `json:"features,omitempty"`
	Tags     []string          `json:"tags,omitempty"`
}

// EffectiveWeight returns the sampling weight with the default applied.
func (t Term) EffectiveWeight() float64 {
	if t.Weight == 0 {
		return 1
	}
	return t.Weight
}

// TermSet is a named, POS-tagged, weighted pool of words.
type TermSet struct {
	ID    string       `json:"id"`
	POS   PartOfSpeech `json:"pos"`
	Tags  []string     `json:"tags,omitempty"`
	Terms []Term       `json:"terms"`
}

// PatternSlot is one element of a pattern expansion: either a literal word
// or a POS placeholder to be filled by a fresh sample.
type PatternSlot struct {
	Literal string       `json:"literal,omitempty"`
	POS     PartOfSpeech `json:"pos,omitempty"`
}

// Pattern is a multi-word template ("{noun} of {noun}") selectable by the
// same weighted discipline as terms.
type Pattern struct {
	ID     string        `json:"id"`
	Tags   []string      `json:"tags,omitempty"`
	Weight float64       `json:"weight,omitempty"`
	Slots  []PatternSlot `json:"slots"`
}

// EffectiveWeight returns the sampling weight with the default applied.
func (p Pattern) EffectiveWeight() float64 {
	if p.Weight == 0 {
		return 1
	}
	return p.Weight
}

// WeightedKey is one entry of a Distribution. Order is significant: weighted
// selection walks entries in declaration order.
type WeightedKey struct {
	Key    string  `json:"key"`
	Weight float64 `json:"weight"`
}

// Distribution is an ordered weighted key list referenced by archetypes.
type Distribution []WeightedKey

// Weight returns the weight recorded for key, or 0 when absent.
func (d Distribution) Weight(key string) float64 {
	for _, wk := range d {
		if wk.Key == key {
			return wk.Weight
		}
	}
	return 0
}

// TriggerKind selects which facet of a choice a correlation trigger matches.
type TriggerKind string

const (
	TriggerTermSet TriggerKind = "termSet"
	TriggerTag     TriggerKind = "tag"
	TriggerValue   TriggerKind = "value"
	TriggerPattern TriggerKind = "pattern"
)

// Trigger is the condition side of a correlation, matched against the most
// recent choice.
type Trigger struct {
	Kind  TriggerKind `json:"kind"`
	Value string      `json:"value"`
}

// BoostTarget selects what a boost's additive delta applies to.
type BoostTarget string

const (
	BoostTermSet BoostTarget = "termSet"
	BoostPattern BoostTarget = "pattern"
)

// Boost is one additive weight delta a fired correlation applies.
type Boost struct {
	Kind   BoostTarget `json:"kind"`
	Target string      `json:"target"`
	Delta  float64     `json:"delta"`
}

// Correlation boosts or suppresses future sampling weights in response to a
// prior choice. Boosts live until their scope is cleared.
type Correlation struct {
	ID      string  `json:"id"`
	Trigger Trigger `json:"trigger"`
	Boosts  []Boost `json:"boosts"`
	Scope   Scope   `json:"scope"`
}

// EnforcementLevel separates constraints that force a retry from those that
// only warn.
type EnforcementLevel string

const (
	EnforceHard EnforcementLevel = "hard"
	EnforceSoft EnforcementLevel = "soft"
)

// ConstraintKind is the closed set of constraint rule types.
type ConstraintKind string

const (
	ConstraintNoRepeat  ConstraintKind = "no-repeat"
	ConstraintMaxCount  ConstraintKind = "max-count"
	ConstraintMinCount  ConstraintKind = "min-count"
	ConstraintRequired  ConstraintKind = "required"
	ConstraintForbidden ConstraintKind = "forbidden"
	ConstraintCustom    ConstraintKind = "custom"
)

// KnownConstraintKind reports whether k is one of the recognized kinds.
func KnownConstraintKind(k ConstraintKind) bool {
	switch k {
	case ConstraintNoRepeat, ConstraintMaxCount, ConstraintMinCount,
		ConstraintRequired, ConstraintForbidden, ConstraintCustom:
		return true
	}
	return false
}

// Constraint is a declarative rule evaluated over a candidate's tokens and
// choices. Target selector syntax: "pos:<p>" restricts to choices of that
// part of speech, "termSet:<id>" to usages of that set, anything else is a
// literal token value.
type Constraint struct {
	ID     string           `json:"id"`
	Level  EnforcementLevel `json:"level"`
	Scope  Scope            `json:"scope"`
	Kind   ConstraintKind   `json:"kind"`
	Target string           `json:"target,omitempty"`
	Bound  int              `json:"bound,omitempty"`
}

// InvariantKind is the closed set of invariant rule types.
type InvariantKind string

const (
	InvariantCapitalization InvariantKind = "capitalization"
	InvariantPunctuation    InvariantKind = "punctuation"
	InvariantWhitespace     InvariantKind = "whitespace"
	InvariantAgreement      InvariantKind = "agreement"
	InvariantCustom         InvariantKind = "custom"
)

// KnownInvariantKind reports whether k is one of the recognized kinds.
func KnownInvariantKind(k InvariantKind) bool {
	switch k {
	case InvariantCapitalization, InvariantPunctuation, InvariantWhitespace,
		InvariantAgreement, InvariantCustom:
		return true
	}
	return false
}

// Invariant is a declarative rule checked against rendered text, never
// against tokens.
type Invariant struct {
	ID    string        `json:"id"`
	Kind  InvariantKind `json:"kind"`
	Scope Scope         `json:"scope,omitempty"`
}

// Archetype is a selectable bundle of tag activations, distribution
// references, and numeric config overrides.
type Archetype struct {
	Tags          []string           `json:"tags,omitempty"`
	Distributions map[string]string  `json:"distributions,omitempty"`
	Overrides     map[string]float64 `json:"overrides,omitempty"`
	Transforms    []string           `json:"transforms,omitempty"`
}

// Relation links two term values ("rain" -> "umbrella"). Related terms are
// surfaced to the word provider as hints for future noun lookups.
type Relation struct {
	From string `json:"from"`
	To   string `json:"to"`
	Kind string `json:"kind,omitempty"`
}

// Lexicon is the externally supplied, pre-validated vocabulary and rule data.
type Lexicon struct {
	ID            string                  `json:"id"`
	Language      string                  `json:"language,omitempty"`
	TermSets      map[string]TermSet      `json:"termSets,omitempty"`
	Patterns      map[string]Pattern      `json:"patterns,omitempty"`
	Distributions map[string]Distribution `json:"distributions,omitempty"`
	Correlations  []Correlation           `json:"correlations,omitempty"`
	Constraints   []Constraint            `json:"constraints,omitempty"`
	Invariants    []Invariant             `json:"invariants,omitempty"`
	Archetypes    map[string]Archetype    `json:"archetypes,omitempty"`
	Relations     []Relation              `json:"relations,omitempty"`
}

// LexicalItem is the result of a successful sample, immutable once produced.
type LexicalItem struct {
	Value    string
	POS      PartOfSpeech
	SetID    string
	Features map[string]string
	Tags     []string
}
