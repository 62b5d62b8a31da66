package lexicon

import (
	"sort"

	"babble/rng"
)

// Store wraps a Lexicon with the sampling and correlation machinery. The
// wrapped Lexicon is never mutated; Replace swaps the whole object.
//
// Map iteration order is not deterministic in Go, so the store keeps sorted
// id slices and every scan walks those.
type Store struct {
	lex      *Lexicon
	setOrder []string
	patOrder []string
}

// NewStore returns a Store over lex. A nil lex yields an empty store that
// never produces a sample.
func NewStore(lex *Lexicon) *Store {
	s := &Store{}
	s.Replace(lex)
	return s
}

// Replace swaps the underlying lexicon and rebuilds the deterministic scan
// order.
func (s *Store) Replace(lex *Lexicon) {
	s.lex = lex
	s.setOrder = s.setOrder[:0]
	s.patOrder = s.patOrder[:0]
	if lex == nil {
		return
	}
	for id := range lex.TermSets {
		s.setOrder = append(s.setOrder, id)
	}
	sort.Strings(s.setOrder)
	for id := range lex.Patterns {
		s.patOrder = append(s.patOrder, id)
	}
	sort.Strings(s.patOrder)
}

// Lexicon returns the wrapped lexicon, possibly nil.
func (s *Store) Lexicon() *Lexicon { return s.lex }

// Empty reports whether the store has no term sets to sample from.
func (s *Store) Empty() bool { return s.lex == nil || len(s.lex.TermSets) == 0 }

// TermQuery describes one term request.
type TermQuery struct {
	POS      PartOfSpeech
	SetIDs   []string          // explicit candidate sets; empty means scan all
	Tags     []string          // if set, candidate sets must share at least one
	Features map[string]string // required feature equality on the term
	Exclude  []string          // term values to reject
}

// BiasFunc reports the additive bias currently in effect for a term-set id.
type BiasFunc func(setID string) float64

// SampleTerm draws one term: candidate sets are filtered by the query,
// weighted as 1 + archetype distribution weight + context bias (clamped at
// zero), one set is weighted-picked, then one term inside it by term weight.
// The second return is false when nothing survives filtering; the caller is
// expected to have a fallback path.
func (s *Store) SampleTerm(src *rng.Source, q TermQuery, arch *Archetype, bias BiasFunc) (LexicalItem, bool) {
	if s.Empty() {
		return LexicalItem{}, false
	}

	candidates := s.candidateSets(q)
	if len(candidates) == 0 {
		return LexicalItem{}, false
	}

	weights := make([]float64, len(candidates))
	for i, set := range candidates {
		w := 1 + s.archetypeSetWeight(arch, set.ID)
		if bias != nil {
			w += bias(set.ID)
		}
		if w < 0 {
			w = 0
		}
		weights[i] = w
	}

	idx, err := src.WeightedIndex(weights)
	if err != nil {
		return LexicalItem{}, false
	}
	set := candidates[idx]

	terms := filterTerms(set.Terms, q)
	if len(terms) == 0 {
		return LexicalItem{}, false
	}

	termWeights := make([]float64, len(terms))
	for i, t := range terms {
		termWeights[i] = t.EffectiveWeight()
	}
	ti, err := src.WeightedIndex(termWeights)
	if err != nil {
		return LexicalItem{}, false
	}
	chosen := terms[ti]

	return LexicalItem{
		Value:    chosen.Value,
		POS:      set.POS,
		SetID:    set.ID,
		Features: chosen.Features,
		Tags:     append(append([]string{}, set.Tags...), chosen.Tags...),
	}, true
}

func (s *Store) candidateSets(q TermQuery) []TermSet {
	var out []TermSet
	if len(q.SetIDs) > 0 {
		for _, id := range q.SetIDs {
			set, ok := s.lex.TermSets[id]
			if !ok {
				continue
			}
			if q.POS != "" && q.POS != POSAny && set.POS != q.POS {
				continue
			}
			out = append(out, set)
		}
		return out
	}

	for _, id := range s.setOrder {
		set := s.lex.TermSets[id]
		if q.POS != "" && q.POS != POSAny && set.POS != q.POS {
			continue
		}
		if len(q.Tags) > 0 && !tagsIntersect(set.Tags, q.Tags) {
			continue
		}
		out = append(out, set)
	}
	return out
}

func filterTerms(terms []Term, q TermQuery) []Term {
	var out []Term
	for _, t := range terms {
		if excluded(t.Value, q.Exclude) {
			continue
		}
		if !featuresMatch(t.Features, q.Features) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func excluded(value string, exclude []string) bool {
	for _, e := range exclude {
		if e == value {
			return true
		}
	}
	return false
}

func featuresMatch(have, want map[string]string) bool {
	for k, v := range want {
		if have[k] != v {
			return false
		}
	}
	return true
}

func tagsIntersect(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

// archetypeSetWeight resolves the archetype's "termSetBias" distribution
// reference and returns the weight it assigns to setID.
func (s *Store) archetypeSetWeight(arch *Archetype, setID string) float64 {
	if arch == nil || s.lex == nil {
		return 0
	}
	distID, ok := arch.Distributions["termSetBias"]
	if !ok {
		return 0
	}
	return s.lex.Distributions[distID].Weight(setID)
}

// PatternQuery describes one pattern request.
type PatternQuery struct {
	IDs  []string
	Tags []string
}

// SamplePattern weighted-picks a pattern with the same discipline as
// SampleTerm. The bias function is keyed by pattern id here.
func (s *Store) SamplePattern(src *rng.Source, q PatternQuery, bias BiasFunc) (Pattern, bool) {
	if s.lex == nil || len(s.lex.Patterns) == 0 {
		return Pattern{}, false
	}

	var candidates []Pattern
	if len(q.IDs) > 0 {
		for _, id := range q.IDs {
			if p, ok := s.lex.Patterns[id]; ok {
				candidates = append(candidates, p)
			}
		}
	} else {
		for _, id := range s.patOrder {
			p := s.lex.Patterns[id]
			if len(q.Tags) > 0 && !tagsIntersect(p.Tags, q.Tags) {
				continue
			}
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return Pattern{}, false
	}

	weights := make([]float64, len(candidates))
	for i, p := range candidates {
		w := p.EffectiveWeight()
		if bias != nil {
			w += bias(p.ID)
		}
		if w < 0 {
			w = 0
		}
		weights[i] = w
	}
	idx, err := src.WeightedIndex(weights)
	if err != nil {
		return Pattern{}, false
	}
	return candidates[idx], true
}

// GetArchetype looks up an archetype by name.
func (s *Store) GetArchetype(name string) (Archetype, bool) {
	if s.lex == nil {
		return Archetype{}, false
	}
	a, ok := s.lex.Archetypes[name]
	return a, ok
}

// GetDistribution looks up a distribution by id.
func (s *Store) GetDistribution(id string) (Distribution, bool) {
	if s.lex == nil {
		return nil, false
	}
	d, ok := s.lex.Distributions[id]
	return d, ok
}

// Choice is the event facet correlations match against and constraints count.
type Choice struct {
	Value     string
	SetID     string
	PatternID string
	Tags      []string
	POS       PartOfSpeech
	Scope     Scope
	Source    string // "lexicon", "default" or "source"
}

// BiasSink receives additive weight deltas from fired correlations.
type BiasSink interface {
	AddBias(key string, delta float64)
}

// ApplyCorrelations fires every correlation whose trigger matches the choice.
// Each boost is written twice: once under the scope-prefixed key (so scope
// boundary clears can rescind it) and once under the bare target key (the
// live value samplers read).
func (s *Store) ApplyCorrelations(ch Choice, sink BiasSink) {
	if s.lex == nil {
		return
	}
	for _, corr := range s.lex.Correlations {
		if !triggerMatches(corr.Trigger, ch) {
			continue
		}
		for _, b := range corr.Boosts {
			sink.AddBias(string(corr.Scope)+":"+b.Target, b.Delta)
			sink.AddBias(b.Target, b.Delta)
		}
	}
}

func triggerMatches(tr Trigger, ch Choice) bool {
	switch tr.Kind {
	case TriggerTermSet:
		return ch.SetID != "" && ch.SetID == tr.Value
	case TriggerTag:
		for _, t := range ch.Tags {
			if t == tr.Value {
				return true
			}
		}
		return false
	case TriggerValue:
		return ch.Value == tr.Value
	case TriggerPattern:
		return ch.PatternID != "" && ch.PatternID == tr.Value
	}
	return false
}

// RelationMatches holds the outgoing and incoming relations of a term.
type RelationMatches struct {
	Outgoing []Relation
	Incoming []Relation
}

// EvaluateRelations scans the relation list for links touching term,
// optionally restricted to one relation kind.
func (s *Store) EvaluateRelations(term, kind string) RelationMatches {
	var m RelationMatches
	if s.lex == nil {
		return m
	}
	for _, r := range s.lex.Relations {
		if kind != "" && r.Kind != kind {
			continue
		}
		if r.From == term {
			m.Outgoing = append(m.Outgoing, r)
		}
		if r.To == term {
			m.Incoming = append(m.Incoming, r)
		}
	}
	return m
}
