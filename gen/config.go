package gen

import "fmt"

// SentenceType tags one of the six sentence shapes.
type SentenceType string

const (
	TypeSimpleDeclarative SentenceType = "simpleDeclarative"
	TypeCompound          SentenceType = "compound"
	TypeIntroAdverbial    SentenceType = "introAdverbial"
	TypeSubordinate       SentenceType = "subordinate"
	TypeInterjection      SentenceType = "interjection"
	TypeQuestion          SentenceType = "question"
)

// typeOrder is the fixed draw order for weighted type selection. Selection
// walks this order with a single cumulative draw, so the order is part of
// the deterministic output contract.
var typeOrder = []SentenceType{
	TypeSimpleDeclarative,
	TypeCompound,
	TypeIntroAdverbial,
	TypeSubordinate,
	TypeInterjection,
	TypeQuestion,
}

// Config is the tunable generation surface. Zero values are filled from
// DefaultConfig by New; archetypes may override the numeric fields per
// generation call.
type Config struct {
	SentenceTypeWeights map[SentenceType]float64

	MinWordsPerSentence      int
	MaxWordsPerSentence      int
	MinSentencesPerParagraph int
	MaxSentencesPerParagraph int

	InterjectionRate   float64
	SubordinateRate    float64
	RelativeClauseRate float64
	QuestionRate       float64
	CompoundRate       float64

	MaxPPChain           int
	MaxAdjectivesPerNoun int
	MaxAdverbsPerVerb    int
	MaxSentenceAttempts  int
	MaxPhraseAttempts    int

	StrictMode bool

	Determiners   []string
	Pronouns      []string
	Modals        []string
	Subordinators []string
	Relatives     []string
	Coordinators  []string
	Transitions   []string
	Interjections []string
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		SentenceTypeWeights: map[SentenceType]float64{
			TypeSimpleDeclarative: 45,
			TypeCompound:          15,
			TypeIntroAdverbial:    12,
			TypeSubordinate:       15,
			TypeInterjection:      3,
			TypeQuestion:          10,
		},

		MinWordsPerSentence:      5,
		MaxWordsPerSentence:      25,
		MinSentencesPerParagraph: 2,
		MaxSentencesPerParagraph: 7,

		InterjectionRate:   0.03,
		SubordinateRate:    0.15,
		RelativeClauseRate: 0.10,
		QuestionRate:       0.10,
		CompoundRate:       0.15,

		MaxPPChain:           2,
		MaxAdjectivesPerNoun: 2,
		MaxAdverbsPerVerb:    1,
		MaxSentenceAttempts:  25,
		MaxPhraseAttempts:    10,

		Determiners:   []string{"the", "a", "this", "that", "some", "every"},
		Pronouns:      []string{"I", "you", "he", "she", "it", "we", "they"},
		Modals:        []string{"can", "could", "may", "might", "must", "should", "would"},
		Subordinators: []string{"because", "although", "while", "since", "unless", "after", "before"},
		Relatives:     []string{"that", "which", "who"},
		Coordinators:  []string{"and", "but", "or", "so", "yet"},
		Transitions:   []string{"however", "meanwhile", "therefore", "eventually", "suddenly", "afterwards"},
		Interjections: []string{"oh", "ah", "well", "alas", "hmm", "indeed"},
	}
}

// fillDefaults replaces zero-valued fields with the documented defaults so a
// partially specified Config remains usable.
func (c Config) fillDefaults() Config {
	d := DefaultConfig()
	if c.SentenceTypeWeights == nil {
		c.SentenceTypeWeights = d.SentenceTypeWeights
	}
	if c.MinWordsPerSentence == 0 {
		c.MinWordsPerSentence = d.MinWordsPerSentence
	}
	if c.MaxWordsPerSentence == 0 {
		c.MaxWordsPerSentence = d.MaxWordsPerSentence
	}
	if c.MinSentencesPerParagraph == 0 {
		c.MinSentencesPerParagraph = d.MinSentencesPerParagraph
	}
	if c.MaxSentencesPerParagraph == 0 {
		c.MaxSentencesPerParagraph = d.MaxSentencesPerParagraph
	}
	if c.MaxPPChain == 0 {
		c.MaxPPChain = d.MaxPPChain
	}
	if c.MaxAdjectivesPerNoun == 0 {
		c.MaxAdjectivesPerNoun = d.MaxAdjectivesPerNoun
	}
	if c.MaxAdverbsPerVerb == 0 {
		c.MaxAdverbsPerVerb = d.MaxAdverbsPerVerb
	}
	if c.MaxSentenceAttempts == 0 {
		c.MaxSentenceAttempts = d.MaxSentenceAttempts
	}
	if c.MaxPhraseAttempts == 0 {
		c.MaxPhraseAttempts = d.MaxPhraseAttempts
	}
	if c.Determiners == nil {
		c.Determiners = d.Determiners
	}
	if c.Pronouns == nil {
		c.Pronouns = d.Pronouns
	}
	if c.Modals == nil {
		c.Modals = d.Modals
	}
	if c.Subordinators == nil {
		c.Subordinators = d.Subordinators
	}
	if c.Relatives == nil {
		c.Relatives = d.Relatives
	}
	if c.Coordinators == nil {
		c.Coordinators = d.Coordinators
	}
	if c.Transitions == nil {
		c.Transitions = d.Transitions
	}
	if c.Interjections == nil {
		c.Interjections = d.Interjections
	}
	return c
}

// validate rejects configurations that cannot drive a weighted draw or a
// bounded retry loop.
func (c Config) validate() error {
	var total float64
	for _, w := range c.SentenceTypeWeights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return fmt.Errorf("%w: sentence type weights sum to %v", ErrInvalidConfiguration, total)
	}
	if c.MinWordsPerSentence <= 0 || c.MaxWordsPerSentence < c.MinWordsPerSentence {
		return fmt.Errorf("%w: word bounds %d..%d", ErrInvalidConfiguration, c.MinWordsPerSentence, c.MaxWordsPerSentence)
	}
	if c.MinSentencesPerParagraph <= 0 || c.MaxSentencesPerParagraph < c.MinSentencesPerParagraph {
		return fmt.Errorf("%w: sentence bounds %d..%d", ErrInvalidConfiguration, c.MinSentencesPerParagraph, c.MaxSentencesPerParagraph)
	}
	if c.MaxSentenceAttempts <= 0 {
		return fmt.Errorf("%w: maxSentenceAttempts %d", ErrInvalidConfiguration, c.MaxSentenceAttempts)
	}
	for _, list := range [][]string{
		c.Determiners, c.Pronouns, c.Subordinators, c.Relatives,
		c.Coordinators, c.Transitions, c.Interjections,
	} {
		if len(list) == 0 {
			return fmt.Errorf("%w: empty closed-class word list", ErrInvalidConfiguration)
		}
	}
	return nil
}

// withOverrides returns a copy with the archetype's numeric overrides
// applied. Unknown keys are ignored.
func (c Config) withOverrides(overrides map[string]float64) Config {
	for key, v := range overrides {
		switch key {
		case "minWordsPerSentence":
			c.MinWordsPerSentence = int(v)
		case "maxWordsPerSentence":
			c.MaxWordsPerSentence = int(v)
		case "minSentencesPerParagraph":
			c.MinSentencesPerParagraph = int(v)
		case "maxSentencesPerParagraph":
			c.MaxSentencesPerParagraph = int(v)
		case "interjectionRate":
			c.InterjectionRate = v
		case "subordinateRate":
			c.SubordinateRate = v
		case "relativeClauseRate":
			c.RelativeClauseRate = v
		case "questionRate":
			c.QuestionRate = v
		case "compoundRate":
			c.CompoundRate = v
		case "maxPPChain":
			c.MaxPPChain = int(v)
		case "maxAdjectivesPerNoun":
			c.MaxAdjectivesPerNoun = int(v)
		case "maxAdverbsPerVerb":
			c.MaxAdverbsPerVerb = int(v)
		case "maxSentenceAttempts":
			c.MaxSentenceAttempts = int(v)
		case "maxPhraseAttempts":
			c.MaxPhraseAttempts = int(v)
		}
	}
	return c
}
