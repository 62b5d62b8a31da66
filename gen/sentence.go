package gen

import (
	"strings"

	"babble/lexicon"
	"babble/morph"
	"babble/words"
)

// Tense draw thresholds for declarative clauses. One Float() decides:
// present below 0.55, past below 0.9, progressive above.
const (
	presentThreshold = 0.55
	pastThreshold    = 0.9
)

// yesNoRate is the share of questions built with do-support; the remainder
// are WH-questions.
const yesNoRate = 0.6

// candidate is one fully built sentence awaiting validation. No partial
// state escapes a builder: every builder yields rendered text, the type tag,
// and the raw token list.
type candidate struct {
	Type     SentenceType
	Tokens   []string
	Text     string
	PPCount  int
	Terminal string
	Events   []ChoiceEvent
}

// WordCount counts rendered words.
func (c *candidate) WordCount() int {
	return len(strings.Fields(c.Text))
}

// selectType performs the weighted draw over the six sentence types. The
// order is fixed (typeOrder) and a single cumulative-threshold comparison
// decides, so identical seeds always select identically; exact boundary hits
// resolve to the earlier type.
func (g *Generator) selectType(cfg *Config) SentenceType {
	var total float64
	for _, st := range typeOrder {
		if w := cfg.SentenceTypeWeights[st]; w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return TypeSimpleDeclarative
	}

	target := g.src.Float() * total
	for _, st := range typeOrder {
		w := cfg.SentenceTypeWeights[st]
		if w <= 0 {
			continue
		}
		target -= w
		if target <= 0 {
			return st
		}
	}
	return typeOrder[len(typeOrder)-1]
}

func (b *sentenceBuilder) pickTense() Tense {
	r := b.g.src.Float()
	switch {
	case r < presentThreshold:
		return TensePresent
	case r < pastThreshold:
		return TensePast
	default:
		return TenseProgressive
	}
}

// build assembles one candidate of the given type. The sentence scope frame
// wraps every choice the builders make.
func (b *sentenceBuilder) build(st SentenceType) (*candidate, error) {
	b.ctx.PushScope(lexicon.ScopeSentence)
	defer b.ctx.PopScope()

	historyMark := len(b.ctx.History())

	var (
		tokens   []string
		terminal = "."
		err      error
	)
	switch st {
	case TypeSimpleDeclarative:
		tokens, err = b.buildSimpleDeclarative()
	case TypeCompound:
		tokens, err = b.buildCompound()
	case TypeIntroAdverbial:
		tokens, err = b.buildIntroAdverbial()
	case TypeSubordinate:
		tokens, err = b.buildSubordinate()
	case TypeInterjection:
		tokens, err = b.buildInterjection()
	case TypeQuestion:
		tokens, terminal, err = b.buildQuestion()
	default:
		tokens, err = b.buildSimpleDeclarative()
	}
	if err != nil {
		return nil, err
	}

	// A rare interjection opener can decorate any declarative shape.
	if st != TypeInterjection && st != TypeQuestion && b.g.src.Chance(b.cfg.InterjectionRate) {
		interj, ierr := b.provider().Interjection(b.ctx)
		if ierr != nil {
			return nil, ierr
		}
		tokens = append([]string{interj, ","}, tokens...)
	}

	return &candidate{
		Type:     st,
		Tokens:   tokens,
		Text:     render(tokens, terminal),
		PPCount:  b.ppCount,
		Terminal: terminal,
		Events:   b.ctx.History()[historyMark:],
	}, nil
}

func (b *sentenceBuilder) buildSimpleDeclarative() ([]string, error) {
	tense := b.pickTense()
	cl, err := b.clause(tense)
	if err != nil {
		return nil, err
	}
	tokens := cl.Tokens

	if b.g.src.Chance(b.cfg.SubordinateRate) {
		sub, err := b.subordinateClause(tense)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, sub...)
	}
	return tokens, nil
}

func (b *sentenceBuilder) buildCompound() ([]string, error) {
	tense := b.pickTense()
	first, err := b.clause(tense)
	if err != nil {
		return nil, err
	}
	coord, err := b.provider().Coordinator(b.ctx)
	if err != nil {
		return nil, err
	}
	second, err := b.clause(tense) // both clauses share the tense
	if err != nil {
		return nil, err
	}

	tokens := append(first.Tokens, ",", coord)
	return append(tokens, second.Tokens...), nil
}

func (b *sentenceBuilder) buildIntroAdverbial() ([]string, error) {
	var opener []string
	if b.g.src.Chance(0.5) {
		tr, err := b.provider().Transition(b.ctx)
		if err != nil {
			return nil, err
		}
		opener = []string{tr}
	} else {
		pp, err := b.prepPhrase()
		if err != nil {
			return nil, err
		}
		opener = pp
	}

	cl, err := b.clause(b.pickTense())
	if err != nil {
		return nil, err
	}
	tokens := append(opener, ",")
	return append(tokens, cl.Tokens...), nil
}

func (b *sentenceBuilder) buildSubordinate() ([]string, error) {
	tense := b.pickTense()
	sub, err := b.subordinateClause(tense)
	if err != nil {
		return nil, err
	}
	main, err := b.clause(tense)
	if err != nil {
		return nil, err
	}

	if b.g.src.Chance(0.5) {
		// Subordinate first takes a comma; main first does not.
		tokens := append(sub, ",")
		return append(tokens, main.Tokens...), nil
	}
	return append(main.Tokens, sub...), nil
}

func (b *sentenceBuilder) buildInterjection() ([]string, error) {
	interj, err := b.provider().Interjection(b.ctx)
	if err != nil {
		return nil, err
	}
	cl, err := b.clause(TensePresent)
	if err != nil {
		return nil, err
	}
	return append([]string{interj, ","}, cl.Tokens...), nil
}

func (b *sentenceBuilder) buildQuestion() ([]string, string, error) {
	if b.g.src.Chance(yesNoRate) {
		tokens, err := b.buildYesNoQuestion()
		return tokens, "?", err
	}
	tokens, err := b.buildWHQuestion()
	return tokens, "?", err
}

// buildYesNoQuestion uses do-support: the auxiliary carries tense and
// agreement, the verb stays in base form.
func (b *sentenceBuilder) buildYesNoQuestion() ([]string, error) {
	tense := TensePresent
	if b.g.src.Chance(0.4) {
		tense = TensePast
	}

	subj, err := b.nounPhrase(npOptions{depth: 0, allowPronoun: true})
	if err != nil {
		return nil, err
	}

	tokens := append([]string{doSupport(tense, subj.Agr)}, subj.Tokens...)
	vp, err := b.verbPhrase(vpOptions{agr: subj.Agr, allowObject: true, baseForm: true})
	if err != nil {
		return nil, err
	}
	return append(tokens, vp.Tokens...), nil
}

var whWords = []string{"what", "how", "why", "when", "where"}

func (b *sentenceBuilder) buildWHQuestion() ([]string, error) {
	idx, err := b.g.src.PickIndex(len(whWords))
	if err != nil {
		return nil, err
	}
	wh := whWords[idx]

	// "what" and "how" each have a second, copular sub-form.
	if (wh == "what" || wh == "how") && b.g.src.Chance(0.5) {
		subj, err := b.nounPhrase(npOptions{depth: 0})
		if err != nil {
			return nil, err
		}
		if wh == "what" {
			// "what is the crooked lantern"
			return append([]string{"what", beForm(TensePresent, subj.Agr)}, subj.Tokens...), nil
		}
		// "how strange is the lantern"
		adj, err := b.provider().Word(lexicon.POSAdjective, b.ctx, WordOptions{})
		if err != nil {
			return nil, err
		}
		tokens := []string{"how", adj.Value, beForm(TensePresent, subj.Agr)}
		return append(tokens, subj.Tokens...), nil
	}

	tense := TensePresent
	if b.g.src.Chance(0.4) {
		tense = TensePast
	}
	subj, err := b.nounPhrase(npOptions{depth: 0, allowPronoun: true})
	if err != nil {
		return nil, err
	}
	tokens := append([]string{wh, doSupport(tense, subj.Agr)}, subj.Tokens...)
	vp, err := b.verbPhrase(vpOptions{agr: subj.Agr, baseForm: true})
	if err != nil {
		return nil, err
	}
	return append(tokens, vp.Tokens...), nil
}

func doSupport(tense Tense, agr words.Agreement) string {
	if tense == TensePast {
		return "did"
	}
	if agr.Person == 3 && !agr.Plural {
		return "does"
	}
	return "do"
}

// render joins tokens, attaches commas to the preceding word, normalizes
// whitespace, capitalizes, and appends the terminal punctuation.
func render(tokens []string, terminal string) string {
	s := strings.Join(tokens, " ")
	s = strings.ReplaceAll(s, " ,", ",")
	for strings.Contains(s, "  ") {
		s = strings.ReplaceAll(s, "  ", " ")
	}
	s = strings.TrimSpace(s)
	s = morph.Capitalize(s)
	if s != "" && !strings.ContainsAny(s[len(s)-1:], ".!?;:") {
		s += terminal
	}
	return s
}
