package lexicon

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrInvalidLexicon wraps every validation failure reported by Validate.
var ErrInvalidLexicon = errors.New("lexicon: invalid")

// Load reads and validates a JSON lexicon from r.
func Load(r io.Reader) (*Lexicon, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("lexicon: read: %w", err)
	}
	return Parse(data)
}

// LoadFile reads and validates a JSON lexicon from path.
func LoadFile(path string) (*Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("lexicon: open: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Parse unmarshals and validates a JSON lexicon.
func Parse(data []byte) (*Lexicon, error) {
	var lex Lexicon
	if err := json.Unmarshal(data, &lex); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLexicon, err)
	}
	if err := Validate(&lex); err != nil {
		return nil, err
	}
	return &lex, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidLexicon, fmt.Sprintf(format, args...))
}

// Validate checks structural soundness: known enum values, non-empty pools,
// non-negative weights, and referential integrity of correlations and
// archetypes. A lexicon that passes is safe for the engine to consume
// without further checks.
func Validate(lex *Lexicon) error {
	if lex == nil {
		return invalid("nil lexicon")
	}
	if lex.ID == "" {
		return invalid("missing id")
	}

	for id, set := range lex.TermSets {
		if set.ID != "" && set.ID != id {
			return invalid("term set %q: id mismatch (%q)", id, set.ID)
		}
		if !KnownPOS(set.POS) || set.POS == POSAny {
			return invalid("term set %q: unknown pos %q", id, set.POS)
		}
		if len(set.Terms) == 0 {
			return invalid("term set %q: no terms", id)
		}
		for _, t := range set.Terms {
			if t.Value == "" {
				return invalid("term set %q: empty term value", id)
			}
			if t.Weight < 0 {
				return invalid("term set %q: term %q: negative weight", id, t.Value)
			}
		}
	}

	for id, p := range lex.Patterns {
		if p.ID != "" && p.ID != id {
			return invalid("pattern %q: id mismatch (%q)", id, p.ID)
		}
		if len(p.Slots) == 0 {
			return invalid("pattern %q: no slots", id)
		}
		if p.Weight < 0 {
			return invalid("pattern %q: negative weight", id)
		}
		for i, slot := range p.Slots {
			if slot.Literal == "" && slot.POS == "" {
				return invalid("pattern %q: slot %d: neither literal nor pos", id, i)
			}
			if slot.POS != "" && !KnownPOS(slot.POS) {
				return invalid("pattern %q: slot %d: unknown pos %q", id, i, slot.POS)
			}
		}
	}

	for id, d := range lex.Distributions {
		if len(d) == 0 {
			return invalid("distribution %q: empty", id)
		}
		for _, wk := range d {
			if wk.Key == "" {
				return invalid("distribution %q: empty key", id)
			}
		}
	}

	for _, c := range lex.Correlations {
		if c.ID == "" {
			return invalid("correlation without id")
		}
		switch c.Trigger.Kind {
		case TriggerTermSet:
			if _, ok := lex.TermSets[c.Trigger.Value]; !ok {
				return invalid("correlation %q: trigger references unknown term set %q", c.ID, c.Trigger.Value)
			}
		case TriggerPattern:
			if _, ok := lex.Patterns[c.Trigger.Value]; !ok {
				return invalid("correlation %q: trigger references unknown pattern %q", c.ID, c.Trigger.Value)
			}
		case TriggerTag, TriggerValue:
			if c.Trigger.Value == "" {
				return invalid("correlation %q: empty trigger value", c.ID)
			}
		default:
			return invalid("correlation %q: unknown trigger kind %q", c.ID, c.Trigger.Kind)
		}
		if len(c.Boosts) == 0 {
			return invalid("correlation %q: no boosts", c.ID)
		}
		for _, b := range c.Boosts {
			switch b.Kind {
			case BoostTermSet:
				if _, ok := lex.TermSets[b.Target]; !ok {
					return invalid("correlation %q: boost targets unknown term set %q", c.ID, b.Target)
				}
			case BoostPattern:
				if _, ok := lex.Patterns[b.Target]; !ok {
					return invalid("correlation %q: boost targets unknown pattern %q", c.ID, b.Target)
				}
			default:
				return invalid("correlation %q: unknown boost kind %q", c.ID, b.Kind)
			}
		}
		if !KnownScope(c.Scope) {
			return invalid("correlation %q: unknown scope %q", c.ID, c.Scope)
		}
	}

	for _, c := range lex.Constraints {
		if c.ID == "" {
			return invalid("constraint without id")
		}
		if c.Level != EnforceHard && c.Level != EnforceSoft {
			return invalid("constraint %q: unknown level %q", c.ID, c.Level)
		}
		if !KnownConstraintKind(c.Kind) {
			return invalid("constraint %q: unknown kind %q", c.ID, c.Kind)
		}
		if !KnownScope(c.Scope) {
			return invalid("constraint %q: unknown scope %q", c.ID, c.Scope)
		}
		switch c.Kind {
		case ConstraintMaxCount, ConstraintMinCount:
			if c.Bound <= 0 {
				return invalid("constraint %q: %s requires a positive bound", c.ID, c.Kind)
			}
		case ConstraintRequired, ConstraintForbidden:
			if c.Target == "" {
				return invalid("constraint %q: %s requires a target", c.ID, c.Kind)
			}
		}
	}

	for _, inv := range lex.Invariants {
		if inv.ID == "" {
			return invalid("invariant without id")
		}
		if !KnownInvariantKind(inv.Kind) {
			return invalid("invariant %q: unknown kind %q", inv.ID, inv.Kind)
		}
		if inv.Scope != "" && !KnownScope(inv.Scope) {
			return invalid("invariant %q: unknown scope %q", inv.ID, inv.Scope)
		}
	}

	for name, a := range lex.Archetypes {
		for ref, distID := range a.Distributions {
			if _, ok := lex.Distributions[distID]; !ok {
				return invalid("archetype %q: %s references unknown distribution %q", name, ref, distID)
			}
		}
	}

	for i, r := range lex.Relations {
		if r.From == "" || r.To == "" {
			return invalid("relation %d: missing endpoint", i)
		}
	}

	return nil
}
