package gen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"babble/words"
)

func TestConjugate(t *testing.T) {
	sg3 := words.Agreement{Person: 3}
	pl := words.Agreement{Plural: true, Person: 3}
	first := words.Agreement{Person: 1}

	require.Equal(t, []string{"carries"}, conjugate("carry", TensePresent, sg3))
	require.Equal(t, []string{"carry"}, conjugate("carry", TensePresent, pl))
	require.Equal(t, []string{"carry"}, conjugate("carry", TensePresent, first))
	require.Equal(t, []string{"carried"}, conjugate("carry", TensePast, sg3))
	require.Equal(t, []string{"carried"}, conjugate("carry", TensePast, pl))
	require.Equal(t, []string{"is", "carrying"}, conjugate("carry", TenseProgressive, sg3))
	require.Equal(t, []string{"are", "carrying"}, conjugate("carry", TenseProgressive, pl))
	require.Equal(t, []string{"am", "carrying"}, conjugate("carry", TenseProgressive, first))
}

func TestConjugateBe(t *testing.T) {
	sg3 := words.Agreement{Person: 3}
	pl := words.Agreement{Plural: true, Person: 3}

	require.Equal(t, []string{"is"}, conjugate("be", TensePresent, sg3))
	require.Equal(t, []string{"are"}, conjugate("be", TensePresent, pl))
	require.Equal(t, []string{"was"}, conjugate("be", TensePast, sg3))
	require.Equal(t, []string{"were"}, conjugate("be", TensePast, pl))
}

func TestDoSupport(t *testing.T) {
	sg3 := words.Agreement{Person: 3}
	pl := words.Agreement{Plural: true, Person: 3}

	require.Equal(t, "does", doSupport(TensePresent, sg3))
	require.Equal(t, "do", doSupport(TensePresent, pl))
	require.Equal(t, "did", doSupport(TensePast, sg3))
}

func TestPluralDeterminer(t *testing.T) {
	require.Equal(t, "some", pluralDeterminer("a"))
	require.Equal(t, "these", pluralDeterminer("this"))
	require.Equal(t, "those", pluralDeterminer("that"))
	require.Equal(t, "the", pluralDeterminer("every"))
	require.Equal(t, "some", pluralDeterminer("some"))
}

func newTestGenerator(t *testing.T, seed int64) *Generator {
	t.Helper()
	g, err := New(DefaultConfig(), nil, nil)
	require.NoError(t, err)
	g.SetSeed(seed)
	return g
}

func TestNounPhraseShape(t *testing.T) {
	cfg := DefaultConfig()
	for seed := int64(1); seed <= 30; seed++ {
		g := newTestGenerator(t, seed)
		ctx := NewContext(seed, "", nil)
		b := &sentenceBuilder{g: g, ctx: ctx, cfg: &cfg}

		np, err := b.nounPhrase(npOptions{allowPronoun: true})
		require.NoError(t, err)
		require.NotEmpty(t, np.Tokens)

		first := np.Tokens[0]
		if _, isPronoun := words.Pronouns[first]; isPronoun {
			require.Len(t, np.Tokens, 1, "pronoun short-circuits the phrase")
			continue
		}
		require.Equal(t, 3, np.Agr.Person)
	}
}

func TestNounPhraseForcedPlural(t *testing.T) {
	cfg := DefaultConfig()
	forced := true
	for seed := int64(1); seed <= 20; seed++ {
		g := newTestGenerator(t, seed)
		ctx := NewContext(seed, "", nil)
		b := &sentenceBuilder{g: g, ctx: ctx, cfg: &cfg}

		np, err := b.nounPhrase(npOptions{forcePlural: &forced})
		require.NoError(t, err)
		require.True(t, np.Agr.Plural)
	}
}

func TestPrepPhraseCountsAndBounds(t *testing.T) {
	cfg := DefaultConfig()
	g := newTestGenerator(t, 5)
	ctx := NewContext(5, "", nil)
	b := &sentenceBuilder{g: g, ctx: ctx, cfg: &cfg}

	pp, err := b.prepPhrase()
	require.NoError(t, err)
	require.Equal(t, 1, b.ppCount)
	require.Contains(t, words.Prepositions, pp[0])
	require.Greater(t, len(pp), 1, "preposition plus object NP")
}

func TestClauseAgreementFlows(t *testing.T) {
	cfg := DefaultConfig()
	for seed := int64(1); seed <= 20; seed++ {
		g := newTestGenerator(t, seed)
		ctx := NewContext(seed, "", nil)
		b := &sentenceBuilder{g: g, ctx: ctx, cfg: &cfg}

		cl, err := b.clause(TensePresent)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(cl.Tokens), 2)
	}
}

func TestZeroPPChainDisablesPPs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxPPChain = 0
	for seed := int64(1); seed <= 30; seed++ {
		g := newTestGenerator(t, seed)
		ctx := NewContext(seed, "", nil)
		b := &sentenceBuilder{g: g, ctx: ctx, cfg: &cfg}

		_, err := b.nounPhrase(npOptions{})
		require.NoError(t, err)
		// VP PPs are still possible; the NP chain itself must stay empty.
		require.Equal(t, 0, b.ppCount)
	}
}
