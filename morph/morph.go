// Package morph holds the English surface-form helpers the phrase builders
// consume: pluralization, verb conjugation, and indefinite-article choice.
// All functions are pure.
package morph

import "strings"

var irregularPlurals = map[string]string{
	"child":  "children",
	"person": "people",
	"man":    "men",
	"woman":  "women",
	"foot":   "feet",
	"tooth":  "teeth",
	"goose":  "geese",
	"mouse":  "mice",
	"ox":     "oxen",
	"sheep":  "sheep",
	"deer":   "deer",
	"fish":   "fish",
	"datum":  "data",
	"crisis": "crises",
	"cactus": "cacti",
}

var irregularPast = map[string]string{
	"be":    "was",
	"have":  "had",
	"do":    "did",
	"go":    "went",
	"say":   "said",
	"make":  "made",
	"take":  "took",
	"come":  "came",
	"see":   "saw",
	"know":  "knew",
	"get":   "got",
	"give":  "gave",
	"find":  "found",
	"think": "thought",
	"run":   "ran",
	"eat":   "ate",
	"write": "wrote",
	"sing":  "sang",
	"swim":  "swam",
	"fly":   "flew",
	"grow":  "grew",
	"fall":  "fell",
	"hold":  "held",
	"sleep": "slept",
}

func isVowel(r byte) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

// Pluralize returns the plural form of a singular noun.
func Pluralize(noun string) string {
	if noun == "" {
		return noun
	}
	if p, ok := irregularPlurals[strings.ToLower(noun)]; ok {
		return p
	}

	switch {
	case strings.HasSuffix(noun, "s"),
		strings.HasSuffix(noun, "x"),
		strings.HasSuffix(noun, "z"),
		strings.HasSuffix(noun, "ch"),
		strings.HasSuffix(noun, "sh"):
		return noun + "es"
	case strings.HasSuffix(noun, "y") && len(noun) > 1 && !isVowel(noun[len(noun)-2]):
		return noun[:len(noun)-1] + "ies"
	case strings.HasSuffix(noun, "f"):
		return noun[:len(noun)-1] + "ves"
	case strings.HasSuffix(noun, "fe"):
		return noun[:len(noun)-2] + "ves"
	case strings.HasSuffix(noun, "o") && len(noun) > 1 && !isVowel(noun[len(noun)-2]):
		return noun + "es"
	}
	return noun + "s"
}

// ThirdPersonSingular conjugates a base-form verb for a third-person-singular
// subject in the present tense ("walk" -> "walks").
func ThirdPersonSingular(verb string) string {
	if verb == "" {
		return verb
	}
	switch strings.ToLower(verb) {
	case "be":
		return "is"
	case "have":
		return "has"
	case "do":
		return "does"
	case "go":
		return "goes"
	}

	switch {
	case strings.HasSuffix(verb, "s"),
		strings.HasSuffix(verb, "x"),
		strings.HasSuffix(verb, "z"),
		strings.HasSuffix(verb, "ch"),
		strings.HasSuffix(verb, "sh"):
		return verb + "es"
	case strings.HasSuffix(verb, "y") && len(verb) > 1 && !isVowel(verb[len(verb)-2]):
		return verb[:len(verb)-1] + "ies"
	}
	return verb + "s"
}

// PastTense returns the simple-past form of a base-form verb.
func PastTense(verb string) string {
	if verb == "" {
		return verb
	}
	if p, ok := irregularPast[strings.ToLower(verb)]; ok {
		return p
	}

	switch {
	case strings.HasSuffix(verb, "e"):
		return verb + "d"
	case strings.HasSuffix(verb, "y") && len(verb) > 1 && !isVowel(verb[len(verb)-2]):
		return verb[:len(verb)-1] + "ied"
	case endsConsonantVowelConsonant(verb):
		return verb + string(verb[len(verb)-1]) + "ed"
	}
	return verb + "ed"
}

// PresentParticiple returns the -ing form of a base-form verb.
func PresentParticiple(verb string) string {
	if verb == "" {
		return verb
	}
	switch {
	case strings.HasSuffix(verb, "ie"):
		return verb[:len(verb)-2] + "ying"
	case strings.HasSuffix(verb, "e") && !strings.HasSuffix(verb, "ee") && verb != "be":
		return verb[:len(verb)-1] + "ing"
	case endsConsonantVowelConsonant(verb):
		return verb + string(verb[len(verb)-1]) + "ing"
	}
	return verb + "ing"
}

// endsConsonantVowelConsonant reports the single-syllable doubling pattern
// ("run" -> "running"). Final w, x, and y never double.
func endsConsonantVowelConsonant(verb string) bool {
	if len(verb) < 3 {
		return false
	}
	last := verb[len(verb)-1]
	if last == 'w' || last == 'x' || last == 'y' {
		return false
	}
	return !isVowel(last) && isVowel(verb[len(verb)-2]) && !isVowel(verb[len(verb)-3])
}

// Words that start with a vowel letter but a consonant sound, or vice versa.
var articleExceptions = map[string]string{
	"hour":       "an",
	"honest":     "an",
	"honor":      "an",
	"heir":       "an",
	"university": "a",
	"unique":     "a",
	"unit":       "a",
	"useful":     "a",
	"user":       "a",
	"one":        "a",
	"once":       "a",
	"european":   "a",
}

// IndefiniteArticle returns "a" or "an" for the word that will follow it.
func IndefiniteArticle(next string) string {
	if next == "" {
		return "a"
	}
	lower := strings.ToLower(next)
	for prefix, art := range articleExceptions {
		if strings.HasPrefix(lower, prefix) {
			return art
		}
	}
	if isVowel(lower[0]) {
		return "an"
	}
	return "a"
}

// Capitalize upper-cases the first letter of s, leaving the rest untouched.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
