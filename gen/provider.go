package gen

import (
	"fmt"

	"babble/lexicon"
	"babble/rng"
	"babble/words"
)

// Choice sources recorded in the history and reported by traces.
const (
	SourceLexicon  = "lexicon"
	SourceDefault  = "default"
	SourceInjected = "source"
	SourceConfig   = "config"
	SourceRelation = "relation"
)

// hintRate is the chance a pending relation hint satisfies a noun request.
const hintRate = 0.3

// WordOptions narrows one word request.
type WordOptions struct {
	SetIDs     []string
	Tags       []string
	Exclude    []string
	Features   map[string]string
	NoFallback bool
}

// WordProvider resolves part-of-speech requests to words: lexicon sampler
// first, then the curated default tables, then the injected word source.
type WordProvider struct {
	store    *lexicon.Store
	src      *rng.Source
	cfg      *Config
	injected words.Source
}

// NewWordProvider wires a provider. The injected source may be nil.
func NewWordProvider(store *lexicon.Store, src *rng.Source, cfg *Config, injected words.Source) *WordProvider {
	return &WordProvider{store: store, src: src, cfg: cfg, injected: injected}
}

// Word resolves one open-class word request. Successful lexicon samples are
// recorded, fire correlations, and queue relation hints; fallback draws are
// recorded with a non-lexicon source. With NoFallback set a lexicon miss is
// ErrNoTermFound.
func (p *WordProvider) Word(pos lexicon.PartOfSpeech, ctx *Context, opts WordOptions) (lexicon.LexicalItem, error) {
	// A queued relation hint can satisfy a noun request directly.
	if pos == lexicon.POSNoun && len(opts.SetIDs) == 0 && len(ctx.RelationHints) > 0 && p.src.Chance(hintRate) {
		if hint, ok := ctx.TakeHint(); ok && !contains(opts.Exclude, hint) {
			item := lexicon.LexicalItem{Value: hint, POS: pos}
			ctx.Record(lexicon.Choice{
				Value: item.Value, POS: pos, Scope: ctx.Scope(), Source: SourceRelation,
			})
			return item, nil
		}
	}

	query := lexicon.TermQuery{
		POS:      pos,
		SetIDs:   opts.SetIDs,
		Tags:     opts.Tags,
		Features: opts.Features,
		Exclude:  opts.Exclude,
	}
	if len(query.Tags) == 0 {
		query.Tags = ctx.Tags
	}

	arch := p.activeArchetype(ctx)
	item, ok := p.store.SampleTerm(p.src, query, arch, ctx.Bias)
	if !ok && len(ctx.Tags) > 0 && len(opts.Tags) == 0 {
		// Active tags narrow the scan; retry untagged before falling back.
		query.Tags = nil
		item, ok = p.store.SampleTerm(p.src, query, arch, ctx.Bias)
	}
	if ok {
		ch := lexicon.Choice{
			Value:  item.Value,
			SetID:  item.SetID,
			Tags:   item.Tags,
			POS:    item.POS,
			Scope:  ctx.Scope(),
			Source: SourceLexicon,
		}
		ctx.Record(ch)
		p.store.ApplyCorrelations(ch, ctx)
		p.queueRelations(ctx, item.Value)
		return item, nil
	}

	if opts.NoFallback {
		return lexicon.LexicalItem{}, fmt.Errorf("%w: pos %q", ErrNoTermFound, pos)
	}
	return p.fallbackWord(pos, ctx, opts)
}

func (p *WordProvider) fallbackWord(pos lexicon.PartOfSpeech, ctx *Context, opts WordOptions) (lexicon.LexicalItem, error) {
	table := words.Table(string(pos))
	candidates := make([]string, 0, len(table))
	for _, w := range table {
		if !contains(opts.Exclude, w) {
			candidates = append(candidates, w)
		}
	}

	var value, source string
	if len(candidates) > 0 {
		v, err := rng.Pick(p.src, candidates)
		if err != nil {
			return lexicon.LexicalItem{}, err
		}
		value, source = v, SourceDefault
	} else if p.injected != nil {
		value, source = p.injectedWord(pos), SourceInjected
	}
	if value == "" {
		return lexicon.LexicalItem{}, fmt.Errorf("%w: pos %q (fallback exhausted)", ErrNoTermFound, pos)
	}

	item := lexicon.LexicalItem{Value: value, POS: pos}
	ctx.Record(lexicon.Choice{Value: value, POS: pos, Scope: ctx.Scope(), Source: source})
	return item, nil
}

func (p *WordProvider) injectedWord(pos lexicon.PartOfSpeech) string {
	switch pos {
	case lexicon.POSNoun:
		return p.injected.Noun()
	case lexicon.POSVerb:
		return p.injected.Verb()
	case lexicon.POSAdjective:
		return p.injected.Adjective()
	case lexicon.POSAdverb:
		return p.injected.Adverb()
	case lexicon.POSPreposition:
		return p.injected.Preposition()
	case lexicon.POSConjunction:
		return p.injected.Conjunction()
	case lexicon.POSInterjection:
		return p.injected.Interjection()
	case lexicon.POSDeterminer:
		return p.injected.Determiner()
	}
	return ""
}

func (p *WordProvider) queueRelations(ctx *Context, value string) {
	m := p.store.EvaluateRelations(value, "")
	var hints []string
	for _, r := range m.Outgoing {
		hints = append(hints, r.To)
	}
	for _, r := range m.Incoming {
		hints = append(hints, r.From)
	}
	ctx.AddHints(hints)
}

func (p *WordProvider) activeArchetype(ctx *Context) *lexicon.Archetype {
	if ctx.Archetype == "" {
		return nil
	}
	arch, ok := p.store.GetArchetype(ctx.Archetype)
	if !ok {
		return nil
	}
	return &arch
}

// closedClass draws one word from a configuration list and records it.
func (p *WordProvider) closedClass(list []string, pos lexicon.PartOfSpeech, ctx *Context) (string, error) {
	w, err := rng.Pick(p.src, list)
	if err != nil {
		return "", err
	}
	ctx.Record(lexicon.Choice{Value: w, POS: pos, Scope: ctx.Scope(), Source: SourceConfig})
	return w, nil
}

func (p *WordProvider) Pronoun(ctx *Context) (string, error) {
	return p.closedClass(p.cfg.Pronouns, lexicon.POSPronoun, ctx)
}

func (p *WordProvider) Modal(ctx *Context) (string, error) {
	return p.closedClass(p.cfg.Modals, lexicon.POSVerb, ctx)
}

func (p *WordProvider) Subordinator(ctx *Context) (string, error) {
	return p.closedClass(p.cfg.Subordinators, lexicon.POSConjunction, ctx)
}

func (p *WordProvider) Relative(ctx *Context) (string, error) {
	return p.closedClass(p.cfg.Relatives, lexicon.POSPronoun, ctx)
}

func (p *WordProvider) Coordinator(ctx *Context) (string, error) {
	return p.closedClass(p.cfg.Coordinators, lexicon.POSConjunction, ctx)
}

func (p *WordProvider) Transition(ctx *Context) (string, error) {
	return p.closedClass(p.cfg.Transitions, lexicon.POSAdverb, ctx)
}

func (p *WordProvider) Interjection(ctx *Context) (string, error) {
	return p.closedClass(p.cfg.Interjections, lexicon.POSInterjection, ctx)
}

func (p *WordProvider) Determiner(ctx *Context) (string, error) {
	return p.closedClass(p.cfg.Determiners, lexicon.POSDeterminer, ctx)
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
