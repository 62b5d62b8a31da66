package gen

import (
	"fmt"
	"strings"
	"unicode"

	"babble/lexicon"
)

// ConstraintResult reports one constraint evaluation.
type ConstraintResult struct {
	ID     string
	Kind   lexicon.ConstraintKind
	Level  lexicon.EnforcementLevel
	Passed bool
	Detail string
}

// InvariantResult reports one invariant evaluation.
type InvariantResult struct {
	ID     string
	Kind   lexicon.InvariantKind
	Passed bool
	Detail string
}

// RuleEngine evaluates constraints over a candidate's tokens and choices,
// and invariants over rendered text. Constraint and invariant failures are
// not errors: they feed the retry loop and surface only as trace data.
type RuleEngine struct{}

// EvaluateConstraints runs every constraint whose scope matches. An empty
// constraint scope is treated as sentence scope.
func (e *RuleEngine) EvaluateConstraints(constraints []lexicon.Constraint, cand *candidate, scope lexicon.Scope) []ConstraintResult {
	var out []ConstraintResult
	for _, c := range constraints {
		cScope := c.Scope
		if cScope == "" {
			cScope = lexicon.ScopeSentence
		}
		if cScope != scope {
			continue
		}
		passed, detail := e.checkConstraint(c, cand)
		out = append(out, ConstraintResult{
			ID:     c.ID,
			Kind:   c.Kind,
			Level:  c.Level,
			Passed: passed,
			Detail: detail,
		})
	}
	return out
}

func (e *RuleEngine) checkConstraint(c lexicon.Constraint, cand *candidate) (bool, string) {
	switch c.Kind {
	case lexicon.ConstraintNoRepeat:
		return e.checkNoRepeat(c.Target, cand)
	case lexicon.ConstraintMaxCount:
		n := e.countFor(c.Target, cand)
		if n > c.Bound {
			return false, fmt.Sprintf("count %d exceeds bound %d", n, c.Bound)
		}
		return true, ""
	case lexicon.ConstraintMinCount:
		n := e.countFor(c.Target, cand)
		if n < c.Bound {
			return false, fmt.Sprintf("count %d below bound %d", n, c.Bound)
		}
		return true, ""
	case lexicon.ConstraintRequired:
		if e.targetPresent(c.Target, cand) {
			return true, ""
		}
		return false, fmt.Sprintf("%q not present", c.Target)
	case lexicon.ConstraintForbidden:
		if e.targetPresent(c.Target, cand) {
			return false, fmt.Sprintf("%q present", c.Target)
		}
		return true, ""
	case lexicon.ConstraintCustom:
		// Extension point; custom rules are declared but not evaluated.
		return true, "custom rule not evaluated"
	}
	return true, ""
}

// checkNoRepeat dispatches on the target selector: "pos:<p>" checks the
// chosen terms of one POS, "termSet:<id>" checks usages of one set, and a
// bare target checks token values.
func (e *RuleEngine) checkNoRepeat(target string, cand *candidate) (bool, string) {
	switch {
	case strings.HasPrefix(target, "pos:"):
		pos := lexicon.PartOfSpeech(strings.TrimPrefix(target, "pos:"))
		seen := map[string]bool{}
		for _, ev := range cand.Events {
			if ev.Choice.POS != pos || ev.Choice.Value == "" {
				continue
			}
			if seen[ev.Choice.Value] {
				return false, fmt.Sprintf("repeated %s %q", pos, ev.Choice.Value)
			}
			seen[ev.Choice.Value] = true
		}
		return true, ""
	case strings.HasPrefix(target, "termSet:"):
		id := strings.TrimPrefix(target, "termSet:")
		uses := 0
		for _, ev := range cand.Events {
			if ev.Choice.SetID == id {
				uses++
			}
		}
		if uses > 1 {
			return false, fmt.Sprintf("term set %q used %d times", id, uses)
		}
		return true, ""
	default:
		seen := map[string]bool{}
		for _, tok := range cand.Tokens {
			if tok == "," {
				continue
			}
			if seen[tok] {
				return false, fmt.Sprintf("repeated token %q", tok)
			}
			seen[tok] = true
		}
		return true, ""
	}
}

// countFor resolves a count target: "pp" counts prepositional phrases,
// anything else counts rendered words.
func (e *RuleEngine) countFor(target string, cand *candidate) int {
	if target == "pp" || target == "pps" {
		return cand.PPCount
	}
	return cand.WordCount()
}

// targetPresent resolves presence targets: "pos:<p>" means a choice of that
// POS was made; anything else is a literal token.
func (e *RuleEngine) targetPresent(target string, cand *candidate) bool {
	if strings.HasPrefix(target, "pos:") {
		pos := lexicon.PartOfSpeech(strings.TrimPrefix(target, "pos:"))
		for _, ev := range cand.Events {
			if ev.Choice.POS == pos {
				return true
			}
		}
		return false
	}
	for _, tok := range cand.Tokens {
		if tok == target {
			return true
		}
	}
	return false
}

// EvaluateInvariants checks the rendered text.
func (e *RuleEngine) EvaluateInvariants(invariants []lexicon.Invariant, text string) []InvariantResult {
	out := make([]InvariantResult, 0, len(invariants))
	for _, inv := range invariants {
		passed, detail := checkInvariant(inv.Kind, text)
		out = append(out, InvariantResult{ID: inv.ID, Kind: inv.Kind, Passed: passed, Detail: detail})
	}
	return out
}

func checkInvariant(kind lexicon.InvariantKind, text string) (bool, string) {
	switch kind {
	case lexicon.InvariantCapitalization:
		for _, r := range text {
			if !unicode.IsLetter(r) {
				continue
			}
			if unicode.IsUpper(r) {
				return true, ""
			}
			return false, "first letter not capitalized"
		}
		return false, "no letters"
	case lexicon.InvariantPunctuation:
		if text == "" || !strings.ContainsAny(text[len(text)-1:], ".!?;:") {
			return false, "missing terminal punctuation"
		}
		return true, ""
	case lexicon.InvariantWhitespace:
		if strings.Contains(text, "  ") {
			return false, "double space"
		}
		return true, ""
	case lexicon.InvariantAgreement:
		// Satisfied by construction: agreement features flow from subject
		// to verb in the builders.
		return true, ""
	case lexicon.InvariantCustom:
		return true, "custom rule not evaluated"
	}
	return true, ""
}

// defaultInvariants are always checked, with or without a lexicon.
var defaultInvariants = []lexicon.Invariant{
	{ID: "capitalization", Kind: lexicon.InvariantCapitalization},
	{ID: "punctuation", Kind: lexicon.InvariantPunctuation},
	{ID: "whitespace", Kind: lexicon.InvariantWhitespace},
}
