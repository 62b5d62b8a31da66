package gen

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"babble/lexicon"
	"babble/morph"
	"babble/rng"
	"babble/words"
)

// Degrade thresholds for the sentence retry loop: after simplifyAfter failed
// attempts the effective PP chain shrinks by one per further attempt; after
// forceSimpleAfter the type is pinned to simpleDeclarative.
const (
	simplifyAfter    = 5
	forceSimpleAfter = 10
)

// Default paragraph-count bounds for Text when the options leave them unset.
const (
	defaultMinParagraphs = 2
	defaultMaxParagraphs = 4
)

// Generator is one generation session: a seeded stream, a lexicon store, and
// a word provider. Sessions are single-threaded; determinism requires strict
// sequential consumption of the stream, so a session must never be shared
// between concurrent calls. Independent sessions are fully isolated and may
// run in parallel.
type Generator struct {
	cfg       Config
	seed      int64
	src       *rng.Source
	store     *lexicon.Store
	provider  *WordProvider
	rules     RuleEngine
	archetype string
}

// New builds a session. lex and injected may be nil; cfg zero values fall
// back to the documented defaults.
func New(cfg Config, lex *lexicon.Lexicon, injected words.Source) (*Generator, error) {
	cfg = cfg.fillDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	g := &Generator{
		cfg:   cfg,
		seed:  1,
		src:   rng.New(1),
		store: lexicon.NewStore(lex),
	}
	g.provider = NewWordProvider(g.store, g.src, &g.cfg, injected)
	return g, nil
}

// SetSeed resets the stream. Two sessions with the same seed, config,
// lexicon and call sequence produce byte-identical output.
func (g *Generator) SetSeed(n int64) {
	g.seed = n
	g.src.Seed(n)
}

// SetLexicon replaces the lexicon wholesale.
func (g *Generator) SetLexicon(lex *lexicon.Lexicon) {
	g.store.Replace(lex)
}

// SetArchetype activates a named archetype, or clears it with "".
func (g *Generator) SetArchetype(name string) error {
	if name == "" {
		g.archetype = ""
		return nil
	}
	if _, ok := g.store.GetArchetype(name); !ok {
		return fmt.Errorf("%w: unknown archetype %q", ErrInvalidConfiguration, name)
	}
	g.archetype = name
	return nil
}

// Config returns the session configuration.
func (g *Generator) Config() Config { return g.cfg }

// ArchetypeTransforms returns the active archetype's transform-pipeline
// override names, if any.
func (g *Generator) ArchetypeTransforms() []string {
	if g.archetype == "" {
		return nil
	}
	arch, ok := g.store.GetArchetype(g.archetype)
	if !ok {
		return nil
	}
	return arch.Transforms
}

func (g *Generator) hasPatterns() bool {
	lex := g.store.Lexicon()
	return lex != nil && len(lex.Patterns) > 0
}

// effectiveConfig is the session config with the active archetype's numeric
// overrides applied. It is a copy; nothing here mutates session state.
func (g *Generator) effectiveConfig() Config {
	cfg := g.cfg
	if g.archetype != "" {
		if arch, ok := g.store.GetArchetype(g.archetype); ok {
			cfg = cfg.withOverrides(arch.Overrides)
		}
	}
	return cfg
}

func (g *Generator) activeTags() []string {
	if g.archetype == "" {
		return nil
	}
	arch, ok := g.store.GetArchetype(g.archetype)
	if !ok {
		return nil
	}
	return arch.Tags
}

func (g *Generator) lexConstraints() []lexicon.Constraint {
	if lex := g.store.Lexicon(); lex != nil {
		return lex.Constraints
	}
	return nil
}

func (g *Generator) allInvariants() []lexicon.Invariant {
	invs := append([]lexicon.Invariant{}, defaultInvariants...)
	if lex := g.store.Lexicon(); lex != nil {
		invs = append(invs, lex.Invariants...)
	}
	return invs
}

// SentenceOptions tunes one Sentence call.
type SentenceOptions struct {
	Type     SentenceType // force a sentence shape; empty means weighted draw
	MinWords int
	MaxWords int
	Trace    bool
}

// ParagraphOptions tunes one Paragraph call.
type ParagraphOptions struct {
	Sentences    int // exact count; 0 means draw from the configured bounds
	MinSentences int
	MaxSentences int
	Type         SentenceType
	Trace        bool
}

// TextOptions tunes one Text call.
type TextOptions struct {
	Paragraphs    int // exact count; 0 means draw from default bounds
	MinParagraphs int
	MaxParagraphs int
	Trace         bool
}

// Sentence generates one sentence.
func (g *Generator) Sentence(opts SentenceOptions) (Result, error) {
	cfg := g.effectiveConfig()
	if opts.MinWords > 0 {
		cfg.MinWordsPerSentence = opts.MinWords
	}
	if opts.MaxWords > 0 {
		cfg.MaxWordsPerSentence = opts.MaxWords
	}
	if cfg.MaxWordsPerSentence < cfg.MinWordsPerSentence {
		return Result{}, fmt.Errorf("%w: word bounds %d..%d",
			ErrInvalidConfiguration, cfg.MinWordsPerSentence, cfg.MaxWordsPerSentence)
	}

	ctx := NewContext(g.seed, g.archetype, g.activeTags())
	out, err := g.generateSentence(ctx, &cfg, opts.Type)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Text: out.text,
		Meta: g.meta(1, out.text),
	}
	if opts.Trace {
		res.Trace = &Trace{Paragraphs: []ParagraphTrace{{Sentences: []SentenceTrace{out.trace}}}}
	}
	return res, nil
}

// Paragraph generates one paragraph.
func (g *Generator) Paragraph(opts ParagraphOptions) (Result, error) {
	cfg := g.effectiveConfig()
	ctx := NewContext(g.seed, g.archetype, g.activeTags())

	ctx.PushScope(lexicon.ScopeParagraph)
	text, ptrace, err := g.paragraph(ctx, &cfg, opts)
	ctx.PopScope()
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Text: text,
		Meta: g.meta(len(ptrace.Sentences), text),
	}
	if opts.Trace {
		res.Trace = &Trace{Paragraphs: []ParagraphTrace{ptrace}}
	}
	return res, nil
}

// Text generates a block of paragraphs separated by blank lines.
func (g *Generator) Text(opts TextOptions) (Result, error) {
	cfg := g.effectiveConfig()
	ctx := NewContext(g.seed, g.archetype, g.activeTags())

	n := opts.Paragraphs
	if n <= 0 {
		min, max := opts.MinParagraphs, opts.MaxParagraphs
		if min <= 0 {
			min = defaultMinParagraphs
		}
		if max < min {
			max = defaultMaxParagraphs
			if max < min {
				max = min
			}
		}
		n = g.src.IntRange(min, max)
	}

	var (
		paragraphs []string
		traces     []ParagraphTrace
		sentences  int
	)
	for i := 0; i < n; i++ {
		ctx.PushScope(lexicon.ScopeParagraph)
		text, ptrace, err := g.paragraph(ctx, &cfg, ParagraphOptions{Trace: opts.Trace})
		ctx.PopScope()
		if err != nil {
			return Result{}, err
		}
		paragraphs = append(paragraphs, text)
		traces = append(traces, ptrace)
		sentences += len(ptrace.Sentences)
		ctx.ClearParagraph()
	}

	text := strings.Join(paragraphs, "\n\n")
	res := Result{Text: text, Meta: g.meta(sentences, text)}
	if opts.Trace {
		res.Trace = &Trace{Paragraphs: traces}
	}
	return res, nil
}

// paragraph runs the sentence loop against a shared context, so
// paragraph-scoped bias persists across its sentences.
func (g *Generator) paragraph(ctx *Context, cfg *Config, opts ParagraphOptions) (string, ParagraphTrace, error) {
	n := opts.Sentences
	if n <= 0 {
		min, max := opts.MinSentences, opts.MaxSentences
		if min <= 0 {
			min = cfg.MinSentencesPerParagraph
		}
		if max < min {
			max = cfg.MaxSentencesPerParagraph
			if max < min {
				max = min
			}
		}
		n = g.src.IntRange(min, max)
	}

	var (
		sentences []string
		ptrace    ParagraphTrace
	)
	for i := 0; i < n; i++ {
		forced := opts.Type
		if forced == "" && i > 0 {
			// The question/compound rates bias follow-up sentences on top
			// of the weighted type draw.
			if g.src.Chance(cfg.QuestionRate) {
				forced = TypeQuestion
			} else if g.src.Chance(cfg.CompoundRate) {
				forced = TypeCompound
			}
		}

		out, err := g.generateSentence(ctx, cfg, forced)
		if err != nil {
			return "", ParagraphTrace{}, err
		}
		sentences = append(sentences, out.text)
		ptrace.Sentences = append(ptrace.Sentences, out.trace)

		ctx.ClearSentence()
		ctx.Retries = 0
		ctx.SentenceIndex++
	}

	return strings.Join(sentences, " "), ptrace, nil
}

type sentenceOutcome struct {
	text  string
	trace SentenceTrace
}

// generateSentence is the retry-and-degrade loop: build a candidate,
// validate it, accept on full validity or soft-only failures, otherwise
// retry with progressively simpler limits. Exhaustion fails hard in strict
// mode and degrades to a minimal declarative otherwise.
func (g *Generator) generateSentence(ctx *Context, cfg *Config, forced SentenceType) (sentenceOutcome, error) {
	for attempt := 0; attempt < cfg.MaxSentenceAttempts; attempt++ {
		lim := *cfg // per-attempt copy; degradation never outlives the sentence
		if ctx.Retries >= simplifyAfter {
			lim.MaxPPChain = cfg.MaxPPChain - (ctx.Retries - simplifyAfter + 1)
			if lim.MaxPPChain < 0 {
				lim.MaxPPChain = 0
			}
		}

		typ := forced
		if ctx.Retries >= forceSimpleAfter {
			typ = TypeSimpleDeclarative
		} else if typ == "" {
			typ = g.selectType(cfg)
		}

		b := &sentenceBuilder{g: g, ctx: ctx, cfg: &lim}
		cand, err := b.build(typ)
		if err != nil {
			// Word-source and RNG errors are configuration bugs; they
			// propagate immediately rather than feeding the retry loop.
			return sentenceOutcome{}, err
		}

		constraints := g.rules.EvaluateConstraints(g.lexConstraints(), cand, lexicon.ScopeSentence)
		constraints = append(constraints, g.wordBoundResults(cand, cfg)...)
		invariants := g.rules.EvaluateInvariants(g.allInvariants(), cand.Text)

		hardFail, softFail := false, false
		for _, r := range constraints {
			if r.Passed {
				continue
			}
			if r.Level == lexicon.EnforceHard {
				hardFail = true
			} else {
				softFail = true
			}
		}
		for _, r := range invariants {
			if !r.Passed {
				hardFail = true
			}
		}

		if !hardFail {
			// Soft-only failures still accept, as best effort.
			return sentenceOutcome{
				text: cand.Text,
				trace: SentenceTrace{
					Type:        cand.Type,
					Retries:     ctx.Retries,
					BestEffort:  softFail,
					Tokens:      tokenTraces(cand.Events),
					Constraints: constraints,
					Invariants:  invariants,
				},
			}, nil
		}

		ctx.Retries++
		ctx.ClearSentence() // drop the failed attempt's sentence-scoped state
	}

	if cfg.StrictMode {
		return sentenceOutcome{}, fmt.Errorf("%w: no valid candidate in %d attempts",
			ErrGenerationFailed, cfg.MaxSentenceAttempts)
	}
	return g.minimalSentence(ctx)
}

// wordBoundResults reports the configured per-sentence word bounds as
// implicit hard constraints.
func (g *Generator) wordBoundResults(cand *candidate, cfg *Config) []ConstraintResult {
	wc := cand.WordCount()
	return []ConstraintResult{
		{
			ID:     "minWordsPerSentence",
			Kind:   lexicon.ConstraintMinCount,
			Level:  lexicon.EnforceHard,
			Passed: wc >= cfg.MinWordsPerSentence,
			Detail: fmt.Sprintf("%d words, bound %d", wc, cfg.MinWordsPerSentence),
		},
		{
			ID:     "maxWordsPerSentence",
			Kind:   lexicon.ConstraintMaxCount,
			Level:  lexicon.EnforceHard,
			Passed: wc <= cfg.MaxWordsPerSentence,
			Detail: fmt.Sprintf("%d words, bound %d", wc, cfg.MaxWordsPerSentence),
		},
	}
}

// minimalSentence emits the simplest possible declarative unconditionally,
// bypassing all constraints. Used when the attempt budget is exhausted in
// non-strict mode.
func (g *Generator) minimalSentence(ctx *Context) (sentenceOutcome, error) {
	historyMark := len(ctx.History())

	noun, err := g.provider.Word(lexicon.POSNoun, ctx, WordOptions{})
	if err != nil {
		return sentenceOutcome{}, err
	}
	verb, err := g.provider.Word(lexicon.POSVerb, ctx, WordOptions{})
	if err != nil {
		return sentenceOutcome{}, err
	}

	tokens := []string{"the", noun.Value, morph.ThirdPersonSingular(verb.Value)}
	return sentenceOutcome{
		text: render(tokens, "."),
		trace: SentenceTrace{
			Type:     TypeSimpleDeclarative,
			Retries:  ctx.Retries,
			Degraded: true,
			Tokens:   tokenTraces(ctx.History()[historyMark:]),
		},
	}, nil
}

func (g *Generator) meta(sentences int, text string) Meta {
	return Meta{
		TraceID:   uuid.NewString(),
		Seed:      g.seed,
		Archetype: g.archetype,
		Sentences: sentences,
		Words:     len(strings.Fields(text)),
	}
}
