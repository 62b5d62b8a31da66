// Package transform post-processes rendered text. Transforms are pure
// string functions applied after generation, so they never participate in
// constraint or invariant checking.
package transform

import (
	"strings"
	"unicode"
)

// Func rewrites rendered text. Implementations must be pure: same input,
// same output, no shared state.
type Func func(string) string

// Shout upcases the whole text.
func Shout(s string) string { return strings.ToUpper(s) }

// Mock alternates letter case, starting lowercase. Non-letters are kept and
// do not advance the alternation.
func Mock(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	upper := false
	for _, r := range s {
		if !unicode.IsLetter(r) {
			b.WriteRune(r)
			continue
		}
		if upper {
			b.WriteRune(unicode.ToUpper(r))
		} else {
			b.WriteRune(unicode.ToLower(r))
		}
		upper = !upper
	}
	return b.String()
}

var leetTable = map[rune]rune{
	'a': '4', 'A': '4',
	'e': '3', 'E': '3',
	'i': '1', 'I': '1',
	'o': '0', 'O': '0',
	's': '5', 'S': '5',
	't': '7', 'T': '7',
}

// Leet substitutes the classic digit lookalikes.
func Leet(s string) string {
	return strings.Map(func(r rune) rune {
		if sub, ok := leetTable[r]; ok {
			return sub
		}
		return r
	}, s)
}

// Reverse flips the letters inside each word. Punctuation stays attached in
// place and a leading capital stays leading.
func Reverse(s string) string {
	return mapWords(s, func(word string) string {
		runes := []rune(word)
		for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
			runes[i], runes[j] = runes[j], runes[i]
		}
		return recase(word, string(runes))
	})
}

// PigLatin applies schoolyard latin per word: vowel-initial words take
// "way", consonant-initial words move their onset cluster to the end and
// take "ay".
func PigLatin(s string) string {
	return mapWords(s, func(word string) string {
		lower := strings.ToLower(word)
		if isVowel(rune(lower[0])) {
			return recase(word, lower+"way")
		}
		cut := 0
		for cut < len(lower) && !isVowel(rune(lower[cut])) {
			cut++
		}
		return recase(word, lower[cut:]+lower[:cut]+"ay")
	})
}

func isVowel(r rune) bool { return strings.ContainsRune("aeiou", r) }

// mapWords applies fn to each maximal letter run, leaving everything else
// untouched.
func mapWords(s string, fn func(string) string) string {
	var b strings.Builder
	b.Grow(len(s))
	runes := []rune(s)
	for i := 0; i < len(runes); {
		if !unicode.IsLetter(runes[i]) {
			b.WriteRune(runes[i])
			i++
			continue
		}
		j := i
		for j < len(runes) && unicode.IsLetter(runes[j]) {
			j++
		}
		b.WriteString(fn(string(runes[i:j])))
		i = j
	}
	return b.String()
}

// recase copies the original word's leading-capital shape onto the
// transformed word. All other casing is normalized to lower.
func recase(original, transformed string) string {
	if original == "" || transformed == "" {
		return transformed
	}
	out := []rune(strings.ToLower(transformed))
	if unicode.IsUpper([]rune(original)[0]) {
		out[0] = unicode.ToUpper(out[0])
	}
	return string(out)
}
