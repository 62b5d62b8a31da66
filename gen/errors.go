package gen

import "errors"

var (
	// ErrNoTermFound is returned when lexicon sampling fails and fallback is
	// disallowed. It indicates a lexicon/query mismatch, not a transient state.
	ErrNoTermFound = errors.New("gen: no term found")

	// ErrGenerationFailed is returned in strict mode when the sentence
	// attempt budget is exhausted without a valid candidate.
	ErrGenerationFailed = errors.New("gen: generation failed")

	// ErrInvalidConfiguration is returned when a configuration demands a
	// positive weight total or bound and does not provide one.
	ErrInvalidConfiguration = errors.New("gen: invalid configuration")
)
