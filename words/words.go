// Package words carries the curated fallback vocabulary and the closed-class
// word lists the generator draws from when no lexicon entry matches. It also
// defines the word-source capability an embedder can inject to replace the
// builtin tables entirely.
package words

// Agreement describes the grammatical number and person a pronoun imposes on
// its verb.
type Agreement struct {
	Plural bool
	Person int // 1, 2 or 3
}

// Pronouns maps each subject pronoun to the agreement features it carries.
var Pronouns = map[string]Agreement{
	"I":    {Plural: false, Person: 1},
	"you":  {Plural: true, Person: 2},
	"he":   {Plural: false, Person: 3},
	"she":  {Plural: false, Person: 3},
	"it":   {Plural: false, Person: 3},
	"we":   {Plural: true, Person: 1},
	"they": {Plural: true, Person: 3},
}

// SubjectPronouns is the draw order for pronoun selection. Map iteration
// order is random in Go, so every selection goes through this slice to keep
// generation deterministic.
var SubjectPronouns = []string{"I", "you", "he", "she", "it", "we", "they"}

// Default open-class tables, used when lexicon sampling yields nothing.
var (
	Nouns = []string{
		"table", "cloud", "river", "engine", "lantern", "window", "garden",
		"mirror", "ladder", "bottle", "mountain", "sparrow", "circuit",
		"anchor", "blanket", "compass", "curtain", "pebble", "whistle",
		"harbor", "meadow", "spindle", "goblet", "satchel", "chimney",
		"orchard", "trumpet", "saucer", "thicket", "beacon", "paradox",
		"melody", "shadow", "thimble", "furnace", "valley",
	}

	Verbs = []string{
		"carry", "polish", "observe", "gather", "measure", "whisper",
		"arrange", "follow", "balance", "describe", "ponder", "collect",
		"wander", "examine", "borrow", "signal", "sharpen", "tumble",
		"assemble", "devour", "untangle", "illuminate", "juggle", "startle",
		"bewilder", "summon", "decorate", "navigate", "mumble", "stack",
	}

	Adjectives = []string{
		"quiet", "crooked", "luminous", "hollow", "gentle", "peculiar",
		"rusty", "velvet", "distant", "clumsy", "fragrant", "slender",
		"dusty", "vivid", "restless", "obscure", "polished", "tangled",
		"mellow", "brisk", "solemn", "wobbly", "radiant", "timid",
		"ornate", "feeble", "sturdy", "curious",
	}

	Adverbs = []string{
		"quietly", "slowly", "eagerly", "barely", "somehow", "gracefully",
		"abruptly", "gently", "oddly", "carefully", "vaguely", "promptly",
		"secretly", "warily", "merrily", "stubbornly", "faintly", "boldly",
	}

	Prepositions = []string{
		"under", "beside", "within", "beyond", "against", "near", "above",
		"below", "behind", "through", "around", "toward",
	}

	Conjunctions = []string{"and", "but", "or", "yet", "so"}

	Interjections = []string{
		"oh", "ah", "well", "hey", "alas", "hmm", "wow", "indeed",
	}

	Determiners = []string{"the", "a", "this", "that", "some", "any", "each", "every"}
)

// Table returns the default word table for a part-of-speech code ("noun",
// "verb", "adjective", "adverb", "preposition", "conjunction",
// "interjection", "determiner"). Unknown codes return nil.
func Table(pos string) []string {
	switch pos {
	case "noun":
		return Nouns
	case "verb":
		return Verbs
	case "adjective":
		return Adjectives
	case "adverb":
		return Adverbs
	case "preposition":
		return Prepositions
	case "conjunction":
		return Conjunctions
	case "interjection":
		return Interjections
	case "determiner":
		return Determiners
	}
	return nil
}
