// Foodbot - Chat-driven Restaurant Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodbot

package textmatch

// Default intent vocabularies. Chinese entries match anywhere in the
// message; entries written in space-delimited scripts must match whole words
// so "hi" does not fire on "chicken".
var (
	DefaultGreetingKeywords = []string{
		"你好", "您好", "哈囉", "嗨", "早安", "午安", "晚安", "肚子餓", "好餓", "餓了",
		"hello", "hi", "hey", "hungry",
	}
	DefaultRandomKeywords = []string{
		"隨便", "隨機", "都可以", "不知道吃什麼", "推薦",
		"surprise me", "anything", "random", "recommend",
	}
	DefaultRepeatKeywords = []string{
		"再來", "還有", "換一批", "再一次", "更多",
		"again", "more", "another",
	}
)

// KeywordSet detects whether a message contains any of a fixed set of
// keywords. It is immutable and safe for concurrent use.
type KeywordSet struct {
	ac *automaton
}

// NewKeywordSet builds a set from words; blank entries are ignored.
func NewKeywordSet(words []string) *KeywordSet {
	return &KeywordSet{ac: newAutomaton(words)}
}

// Len returns the number of keywords.
func (k *KeywordSet) Len() int {
	if k == nil {
		return 0
	}
	return len(k.ac.patterns)
}

// Find returns the first keyword found in text, folded.
func (k *KeywordSet) Find(text string) (string, bool) {
	if k == nil {
		return "", false
	}

	runes := []rune(Fold(text))
	var found string
	k.ac.scan(runes, func(m acMatch) bool {
		if !atWordBoundary(runes, k.ac.patterns[m.pattern], m.start, m.end) {
			return true
		}
		found = string(k.ac.patterns[m.pattern])
		return false
	})
	return found, found != ""
}

// Contains reports whether text has any keyword.
func (k *KeywordSet) Contains(text string) bool {
	_, ok := k.Find(text)
	return ok
}

// atWordBoundary requires word-script keywords to start and end on a word
// boundary. Keyword edges that are Han characters match anywhere.
func atWordBoundary(text, pattern []rune, start, end int) bool {
	if isWordRune(pattern[0]) && start > 0 && isWordRune(text[start-1]) {
		return false
	}
	if isWordRune(pattern[len(pattern)-1]) && end < len(text) && isWordRune(text[end]) {
		return false
	}
	return true
}

// Intent is the keyword-driven intent of a message.
type Intent int

const (
	IntentNone Intent = iota
	IntentGreeting
	IntentRandom
	IntentRepeat
)

// String returns the intent name.
func (i Intent) String() string {
	switch i {
	case IntentGreeting:
		return "greeting"
	case IntentRandom:
		return "random"
	case IntentRepeat:
		return "repeat"
	default:
		return "none"
	}
}

// Intents groups the three keyword sets used by the resolver.
type Intents struct {
	Greeting *KeywordSet
	Random   *KeywordSet
	Repeat   *KeywordSet
}

// NewIntents builds keyword sets, substituting the defaults for empty lists.
func NewIntents(greeting, random, repeat []string) Intents {
	pick := func(words, fallback []string) *KeywordSet {
		if len(words) == 0 {
			words = fallback
		}
		return NewKeywordSet(words)
	}
	return Intents{
		Greeting: pick(greeting, DefaultGreetingKeywords),
		Random:   pick(random, DefaultRandomKeywords),
		Repeat:   pick(repeat, DefaultRepeatKeywords),
	}
}

// DefaultIntents returns keyword sets with the default vocabularies.
func DefaultIntents() Intents {
	return NewIntents(nil, nil, nil)
}
