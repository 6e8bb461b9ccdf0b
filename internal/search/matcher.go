package search

import (
	"fmt"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Matcher decides whether an item name matches a query
type Matcher interface {
	Matches(name string) bool
	String() string // For debug output
}

// SubstringMatcher matches names containing the term (case-insensitive)
type SubstringMatcher struct {
	term string
}

func NewSubstringMatcher(term string) *SubstringMatcher {
	return &SubstringMatcher{term: strings.ToLower(term)}
}

func (m *SubstringMatcher) Matches(name string) bool {
	return strings.Contains(strings.ToLower(name), m.term)
}

func (m *SubstringMatcher) String() string {
	return fmt.Sprintf("substring(%q)", m.term)
}

// FuzzyMatcher matches names containing the characters of the term in order (case-insensitive)
type FuzzyMatcher struct {
	term string
}

func NewFuzzyMatcher(term string) *FuzzyMatcher {
	return &FuzzyMatcher{term: strings.ToLower(term)}
}

func (m *FuzzyMatcher) Matches(name string) bool {
	return fuzzy.MatchFold(m.term, name)
}

func (m *FuzzyMatcher) String() string {
	return fmt.Sprintf("fuzzy(%q)", m.term)
}

// Mode selects the matcher used for a query
type Mode string

const (
	ModeSubstring Mode = "substring"
	ModeFuzzy     Mode = "fuzzy"
)

// ParseMode parses a configured search mode. Unknown values fall back to substring.
func ParseMode(s string) Mode {
	if Mode(strings.ToLower(strings.TrimSpace(s))) == ModeFuzzy {
		return ModeFuzzy
	}
	return ModeSubstring
}

// NewMatcher returns the matcher for mode
func NewMatcher(mode Mode, query string) Matcher {
	if mode == ModeFuzzy {
		return NewFuzzyMatcher(query)
	}
	return NewSubstringMatcher(query)
}
