package validation

import "strings"

// WordSet is an opaque word list the engine queries during English
// protection. Hosts may swap in a full dictionary.
type WordSet map[string]struct{}

// NewWordSet builds a set from lowercase words.
func NewWordSet(words ...string) WordSet {
	s := make(WordSet, len(words))
	for _, w := range words {
		s[strings.ToLower(w)] = struct{}{}
	}
	return s
}

// Contains reports whether the word is in the set.
func (s WordSet) Contains(word string) bool {
	_, ok := s[strings.ToLower(word)]
	return ok
}

// Add inserts a word.
func (s WordSet) Add(word string) {
	s[strings.ToLower(word)] = struct{}{}
}

// defaultEnglishWords are common English words that start with a valid
// Vietnamese prefix, so only a dictionary lookup can catch them once a
// tone key has fired mid-word. Words with forbidden clusters (class,
// string, ...) never transform and do not need to be listed.
var defaultEnglishWords = []string{
	"based", "beside", "besides", "best", "cast", "cost", "custom",
	"delete", "deliver", "depend", "describe", "deserve", "design",
	"desire", "desk", "desktop", "desperate", "dessert", "destroy",
	"device", "disable", "disk", "dismiss", "display", "distance",
	"east", "else", "exist", "fast", "first", "host", "hosting",
	"insert", "inside", "instead", "just", "last", "least", "list",
	"listen", "lost", "master", "mister", "most", "must", "nest",
	"past", "paste", "post", "research", "reserve", "reset", "resist",
	"resolve", "resource", "response", "rest", "restart", "restore",
	"result", "resume", "taste", "test", "testing", "text", "toast",
	"used", "user", "using", "vast", "visit", "waste", "west",
}

// DefaultEnglishWords returns the built-in protection word set.
func DefaultEnglishWords() WordSet {
	return NewWordSet(defaultEnglishWords...)
}
