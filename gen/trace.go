package gen

import "babble/lexicon"

// TokenTrace attributes one recorded choice to its source: a term-set id,
// "default" for the curated tables, "source" for the injected capability,
// "config" for closed-class lists, or "relation" for a consumed hint.
type TokenTrace struct {
	Value     string
	POS       lexicon.PartOfSpeech
	Source    string
	SetID     string
	PatternID string
}

// SentenceTrace reports how one sentence was produced.
type SentenceTrace struct {
	Type        SentenceType
	Retries     int
	Degraded    bool
	BestEffort  bool // accepted with soft-constraint failures
	Tokens      []TokenTrace
	Constraints []ConstraintResult
	Invariants  []InvariantResult
}

// ParagraphTrace groups the sentence traces of one paragraph.
type ParagraphTrace struct {
	Sentences []SentenceTrace
}

// Trace is the full generation trace, nested paragraph/sentence.
type Trace struct {
	Paragraphs []ParagraphTrace
}

// Meta describes one generation result.
type Meta struct {
	TraceID   string
	Seed      int64
	Archetype string
	Sentences int
	Words     int
}

// Result is the outcome of one generation call.
type Result struct {
	Text  string
	Trace *Trace
	Meta  Meta
}

func tokenTraces(events []ChoiceEvent) []TokenTrace {
	out := make([]TokenTrace, 0, len(events))
	for _, ev := range events {
		out = append(out, TokenTrace{
			Value:     ev.Choice.Value,
			POS:       ev.Choice.POS,
			Source:    ev.Choice.Source,
			SetID:     ev.Choice.SetID,
			PatternID: ev.Choice.PatternID,
		})
	}
	return out
}
