package gen

import (
	"babble/lexicon"
	"babble/morph"
	"babble/words"
)

// Tense selects the verb form a clause is built with.
type Tense int

const (
	TensePresent Tense = iota
	TensePast
	TenseProgressive
)

// PhraseResult is an ordered token sequence plus the agreement features the
// caller needs for verb agreement.
type PhraseResult struct {
	Tokens []string
	Agr    words.Agreement
}

// Fixed structural probabilities. Everything configurable lives in Config;
// these shape the grammar itself.
const (
	pronounRate  = 0.15
	pluralRate   = 0.25
	ppRate       = 0.35
	objectRate   = 0.6
	vpPPRate     = 0.25
	leadAdvRate  = 0.2
	trailAdvRate = 0.15
	patternRate  = 0.1
)

// sentenceBuilder assembles one candidate sentence against a per-attempt
// copy of the limits, so degrade-on-retry never leaks into the session
// configuration.
type sentenceBuilder struct {
	g   *Generator
	ctx *Context
	cfg *Config // effective config for this attempt

	ppCount int
}

func (b *sentenceBuilder) provider() *WordProvider { return b.g.provider }

type npOptions struct {
	forcePlural   *bool
	depth         int // 0 at clause level; PPs only attach at depth 0
	allowPronoun  bool
	allowRelative bool
}

// nounPhrase builds a noun phrase. A pronoun draw short-circuits everything
// else; otherwise: determiner, adjectives, head noun, optional PP chain,
// optional relative clause. Article choice ("a"/"an") is deferred until the
// adjectives are known.
func (b *sentenceBuilder) nounPhrase(o npOptions) (PhraseResult, error) {
	b.ctx.PushScope(lexicon.ScopePhrase)
	defer b.ctx.PopScope()

	p := b.provider()

	if o.allowPronoun && b.g.src.Chance(pronounRate) {
		pr, err := p.Pronoun(b.ctx)
		if err != nil {
			return PhraseResult{}, err
		}
		agr, ok := words.Pronouns[pr]
		if !ok {
			agr = words.Agreement{Person: 3}
		}
		return PhraseResult{Tokens: []string{pr}, Agr: agr}, nil
	}

	if o.depth == 0 && b.g.hasPatterns() && b.g.src.Chance(patternRate) {
		if res, ok, err := b.patternNounPhrase(); err != nil {
			return PhraseResult{}, err
		} else if ok {
			return res, nil
		}
	}

	noun, err := p.Word(lexicon.POSNoun, b.ctx, WordOptions{})
	if err != nil {
		return PhraseResult{}, err
	}

	plural := b.g.src.Chance(pluralRate)
	if o.forcePlural != nil {
		plural = *o.forcePlural
	}
	head := noun.Value
	if plural {
		head = morph.Pluralize(head)
	}

	adjCount := b.g.src.IntRange(0, b.cfg.MaxAdjectivesPerNoun)
	var adjs []string
	for i := 0; i < adjCount; i++ {
		adj, err := p.Word(lexicon.POSAdjective, b.ctx, WordOptions{Exclude: adjs})
		if err != nil {
			return PhraseResult{}, err
		}
		adjs = append(adjs, adj.Value)
	}

	det, err := p.Determiner(b.ctx)
	if err != nil {
		return PhraseResult{}, err
	}
	if plural {
		det = pluralDeterminer(det)
	} else if det == "a" || det == "an" {
		next := head
		if len(adjs) > 0 {
			next = adjs[0]
		}
		det = morph.IndefiniteArticle(next)
	}

	tokens := append([]string{det}, adjs...)
	tokens = append(tokens, head)

	if o.depth == 0 && b.cfg.MaxPPChain > 0 && b.g.src.Chance(ppRate) {
		n := b.g.src.IntRange(1, b.cfg.MaxPPChain)
		for i := 0; i < n; i++ {
			pp, err := b.prepPhrase()
			if err != nil {
				return PhraseResult{}, err
			}
			tokens = append(tokens, pp...)
		}
	}

	agr := words.Agreement{Plural: plural, Person: 3}

	if o.allowRelative && b.g.src.Chance(b.cfg.RelativeClauseRate) {
		rel, err := b.relativeClause(agr)
		if err != nil {
			return PhraseResult{}, err
		}
		tokens = append(tokens, rel...)
	}

	return PhraseResult{Tokens: tokens, Agr: agr}, nil
}

// patternNounPhrase expands a lexicon pattern ("{noun} of {noun}") into a
// determiner-led noun phrase. Returns ok=false when no pattern qualifies.
func (b *sentenceBuilder) patternNounPhrase() (PhraseResult, bool, error) {
	pat, ok := b.g.store.SamplePattern(b.g.src, lexicon.PatternQuery{Tags: b.ctx.Tags}, b.ctx.Bias)
	if !ok {
		return PhraseResult{}, false, nil
	}

	ch := lexicon.Choice{PatternID: pat.ID, Scope: b.ctx.Scope(), Source: SourceLexicon}
	b.ctx.Record(ch)
	b.g.store.ApplyCorrelations(ch, b.ctx)

	tokens := []string{"the"}
	for _, slot := range pat.Slots {
		if slot.Literal != "" {
			tokens = append(tokens, slot.Literal)
			continue
		}
		item, err := b.provider().Word(slot.POS, b.ctx, WordOptions{})
		if err != nil {
			return PhraseResult{}, false, err
		}
		tokens = append(tokens, item.Value)
	}
	return PhraseResult{Tokens: tokens, Agr: words.Agreement{Person: 3}}, true, nil
}

// prepPhrase builds "preposition + NP". The object NP is built at depth 1,
// which disables nested PP chains and keeps recursion bounded.
func (b *sentenceBuilder) prepPhrase() ([]string, error) {
	p := b.provider()
	prep, err := p.Word(lexicon.POSPreposition, b.ctx, WordOptions{})
	if err != nil {
		return nil, err
	}
	obj, err := b.nounPhrase(npOptions{depth: 1})
	if err != nil {
		return nil, err
	}
	b.ppCount++
	return append([]string{prep.Value}, obj.Tokens...), nil
}

type vpOptions struct {
	tense       Tense
	agr         words.Agreement
	allowObject bool
	baseForm    bool // do-support questions need the uninflected verb
}

// verbPhrase builds: optional leading adverb, conjugated verb, optional
// object NP, optional PP, optional trailing adverb. The adverb budget is
// MaxAdverbsPerVerb across both positions.
func (b *sentenceBuilder) verbPhrase(o vpOptions) (PhraseResult, error) {
	b.ctx.PushScope(lexicon.ScopePhrase)
	defer b.ctx.PopScope()

	p := b.provider()
	budget := b.cfg.MaxAdverbsPerVerb
	var tokens []string

	if budget > 0 && b.g.src.Chance(leadAdvRate) {
		adv, err := p.Word(lexicon.POSAdverb, b.ctx, WordOptions{})
		if err != nil {
			return PhraseResult{}, err
		}
		tokens = append(tokens, adv.Value)
		budget--
	}

	verb, err := p.Word(lexicon.POSVerb, b.ctx, WordOptions{})
	if err != nil {
		return PhraseResult{}, err
	}
	if o.baseForm {
		tokens = append(tokens, verb.Value)
	} else {
		tokens = append(tokens, conjugate(verb.Value, o.tense, o.agr)...)
	}

	if o.allowObject && b.g.src.Chance(objectRate) {
		obj, err := b.nounPhrase(npOptions{depth: 1})
		if err != nil {
			return PhraseResult{}, err
		}
		tokens = append(tokens, obj.Tokens...)
	}

	if b.g.src.Chance(vpPPRate) {
		pp, err := b.prepPhrase()
		if err != nil {
			return PhraseResult{}, err
		}
		tokens = append(tokens, pp...)
	}

	if budget > 0 && b.g.src.Chance(trailAdvRate) {
		adv, err := p.Word(lexicon.POSAdverb, b.ctx, WordOptions{})
		if err != nil {
			return PhraseResult{}, err
		}
		tokens = append(tokens, adv.Value)
	}

	return PhraseResult{Tokens: tokens, Agr: o.agr}, nil
}

// clause is subject NP + agreement-matched VP.
func (b *sentenceBuilder) clause(tense Tense) (PhraseResult, error) {
	b.ctx.PushScope(lexicon.ScopeClause)
	defer b.ctx.PopScope()

	subj, err := b.nounPhrase(npOptions{depth: 0, allowPronoun: true, allowRelative: true})
	if err != nil {
		return PhraseResult{}, err
	}
	vp, err := b.verbPhrase(vpOptions{tense: tense, agr: subj.Agr, allowObject: true})
	if err != nil {
		return PhraseResult{}, err
	}
	return PhraseResult{Tokens: append(subj.Tokens, vp.Tokens...), Agr: subj.Agr}, nil
}

// subordinateClause is subordinator + clause.
func (b *sentenceBuilder) subordinateClause(tense Tense) ([]string, error) {
	sub, err := b.provider().Subordinator(b.ctx)
	if err != nil {
		return nil, err
	}
	cl, err := b.clause(tense)
	if err != nil {
		return nil, err
	}
	return append([]string{sub}, cl.Tokens...), nil
}

// relativeClause is relative pronoun + VP agreement-matched to the
// antecedent. No object, to keep relative clauses short.
func (b *sentenceBuilder) relativeClause(agr words.Agreement) ([]string, error) {
	rel, err := b.provider().Relative(b.ctx)
	if err != nil {
		return nil, err
	}
	vp, err := b.verbPhrase(vpOptions{tense: TensePresent, agr: agr})
	if err != nil {
		return nil, err
	}
	return append([]string{rel}, vp.Tokens...), nil
}

// conjugate inflects a base-form verb for tense and subject agreement.
// Progressive builds a "be"-auxiliary plus present participle.
func conjugate(verb string, tense Tense, agr words.Agreement) []string {
	if verb == "be" {
		return []string{beForm(tense, agr)}
	}
	switch tense {
	case TensePast:
		return []string{morph.PastTense(verb)}
	case TenseProgressive:
		return []string{beForm(TensePresent, agr), morph.PresentParticiple(verb)}
	default:
		if agr.Person == 3 && !agr.Plural {
			return []string{morph.ThirdPersonSingular(verb)}
		}
		return []string{verb}
	}
}

func beForm(tense Tense, agr words.Agreement) string {
	if tense == TensePast {
		if agr.Plural {
			return "were"
		}
		return "was"
	}
	if agr.Plural {
		return "are"
	}
	if agr.Person == 1 {
		return "am"
	}
	return "is"
}

// pluralDeterminer maps a singular-only determiner draw onto its plural
// counterpart.
func pluralDeterminer(det string) string {
	switch det {
	case "a", "an":
		return "some"
	case "this":
		return "these"
	case "that":
		return "those"
	case "every", "each":
		return "the"
	}
	return det
}
