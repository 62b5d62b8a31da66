package words

import "babble/rng"

// Source is the word-source capability the generator falls back to when both
// the lexicon and the default tables come up empty. Implementations must be
// deterministic under external seeding; the generator treats them as opaque.
type Source interface {
	Noun() string
	Verb() string
	Adjective() string
	Adverb() string
	Preposition() string
	Conjunction() string
	Interjection() string
	Determiner() string
}

// SeededSource implements Source over the builtin tables using its own
// deterministic stream, independent of the generation session's stream.
type SeededSource struct {
	src *rng.Source
}

// NewSeededSource returns a SeededSource seeded with n.
func NewSeededSource(n int64) *SeededSource {
	return &SeededSource{src: rng.New(n)}
}

func (s *SeededSource) pick(table []string) string {
	w, err := rng.Pick(s.src, table)
	if err != nil {
		return ""
	}
	return w
}

func (s *SeededSource) Noun() string         { return s.pick(Nouns) }
func (s *SeededSource) Verb() string         { return s.pick(Verbs) }
func (s *SeededSource) Adjective() string    { return s.pick(Adjectives) }
func (s *SeededSource) Adverb() string       { return s.pick(Adverbs) }
func (s *SeededSource) Preposition() string  { return s.pick(Prepositions) }
func (s *SeededSource) Conjunction() string  { return s.pick(Conjunctions) }
func (s *SeededSource) Interjection() string { return s.pick(Interjections) }
func (s *SeededSource) Determiner() string   { return s.pick(Determiners) }
