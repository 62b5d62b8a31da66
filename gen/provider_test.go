package gen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"babble/lexicon"
	"babble/rng"
	"babble/words"
)

func providerLexicon() *lexicon.Lexicon {
	return &lexicon.Lexicon{
		ID: "p",
		TermSets: map[string]lexicon.TermSet{
			"weather": {
				POS:   lexicon.POSNoun,
				Tags:  []string{"sky"},
				Terms: []lexicon.Term{{Value: "drizzle"}},
			},
		},
		Correlations: []lexicon.Correlation{
			{
				ID:      "sky-pull",
				Trigger: lexicon.Trigger{Kind: lexicon.TriggerTermSet, Value: "weather"},
				Boosts:  []lexicon.Boost{{Kind: lexicon.BoostTermSet, Target: "weather", Delta: 2}},
				Scope:   lexicon.ScopeSentence,
			},
		},
		Relations: []lexicon.Relation{
			{From: "drizzle", To: "umbrella", Kind: "invites"},
		},
	}
}

func newProvider(lex *lexicon.Lexicon, injected words.Source) (*WordProvider, *Context) {
	cfg := DefaultConfig()
	store := lexicon.NewStore(lex)
	p := NewWordProvider(store, rng.New(7), &cfg, injected)
	return p, NewContext(7, "", nil)
}

func TestWordPrefersLexicon(t *testing.T) {
	p, ctx := newProvider(providerLexicon(), nil)

	item, err := p.Word(lexicon.POSNoun, ctx, WordOptions{})
	require.NoError(t, err)
	require.Equal(t, "drizzle", item.Value)
	require.Equal(t, "weather", item.SetID)

	events := ctx.History()
	require.Len(t, events, 1)
	require.Equal(t, SourceLexicon, events[0].Choice.Source)
}

func TestWordAppliesCorrelationsAndHints(t *testing.T) {
	p, ctx := newProvider(providerLexicon(), nil)

	_, err := p.Word(lexicon.POSNoun, ctx, WordOptions{})
	require.NoError(t, err)

	require.Equal(t, 2.0, ctx.Bias("weather"), "correlation boost should land on the bare key")
	require.Contains(t, ctx.RelationHints, "umbrella")

	ctx.ClearSentence()
	require.Equal(t, 0.0, ctx.Bias("weather"), "sentence-scoped boost cleared at boundary")
}

func TestWordFallsBackToDefaultTable(t *testing.T) {
	p, ctx := newProvider(nil, nil)

	item, err := p.Word(lexicon.POSVerb, ctx, WordOptions{})
	require.NoError(t, err)
	require.Contains(t, words.Verbs, item.Value)
	require.Equal(t, SourceDefault, ctx.History()[0].Choice.Source)
}

func TestWordNoFallback(t *testing.T) {
	p, ctx := newProvider(nil, nil)

	_, err := p.Word(lexicon.POSNoun, ctx, WordOptions{NoFallback: true})
	require.ErrorIs(t, err, ErrNoTermFound)
	require.Empty(t, ctx.History())
}

type stubSource struct{}

func (stubSource) Noun() string         { return "stub-noun" }
func (stubSource) Verb() string         { return "stub-verb" }
func (stubSource) Adjective() string    { return "stub-adj" }
func (stubSource) Adverb() string       { return "stub-adv" }
func (stubSource) Preposition() string  { return "stub-prep" }
func (stubSource) Conjunction() string  { return "stub-conj" }
func (stubSource) Interjection() string { return "stub-int" }
func (stubSource) Determiner() string   { return "stub-det" }

func TestWordFallsBackToInjectedSource(t *testing.T) {
	p, ctx := newProvider(nil, stubSource{})

	// Excluding the whole default table forces the injected capability.
	item, err := p.Word(lexicon.POSConjunction, ctx, WordOptions{Exclude: words.Conjunctions})
	require.NoError(t, err)
	require.Equal(t, "stub-conj", item.Value)
	require.Equal(t, SourceInjected, ctx.History()[0].Choice.Source)
}

func TestWordExhaustedWithoutInjectedSource(t *testing.T) {
	p, ctx := newProvider(nil, nil)

	_, err := p.Word(lexicon.POSConjunction, ctx, WordOptions{Exclude: words.Conjunctions})
	require.ErrorIs(t, err, ErrNoTermFound)
}

func TestWordExclusionRespected(t *testing.T) {
	p, ctx := newProvider(providerLexicon(), nil)

	// The only lexicon noun is excluded; fallback takes over.
	item, err := p.Word(lexicon.POSNoun, ctx, WordOptions{Exclude: []string{"drizzle"}})
	require.NoError(t, err)
	require.NotEqual(t, "drizzle", item.Value)
	require.Contains(t, words.Nouns, item.Value)
}

func TestClosedClassAccessors(t *testing.T) {
	p, ctx := newProvider(nil, nil)
	cfg := DefaultConfig()

	pr, err := p.Pronoun(ctx)
	require.NoError(t, err)
	require.Contains(t, cfg.Pronouns, pr)

	sub, err := p.Subordinator(ctx)
	require.NoError(t, err)
	require.Contains(t, cfg.Subordinators, sub)

	co, err := p.Coordinator(ctx)
	require.NoError(t, err)
	require.Contains(t, cfg.Coordinators, co)

	tr, err := p.Transition(ctx)
	require.NoError(t, err)
	require.Contains(t, cfg.Transitions, tr)

	require.Len(t, ctx.History(), 4)
	for _, ev := range ctx.History() {
		require.Equal(t, SourceConfig, ev.Choice.Source)
	}
}
