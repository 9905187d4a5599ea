// Package match compiles patterns built from rules into full-string matchers.
package match

import (
	"regexp"
	"regexp/syntax"

	"github.com/ava12/rulematch"
)

// Error codes used by match:
const (
	// WrongPatternError indicates a pattern that is not a valid RE2 expression.
	WrongPatternError = rulematch.PatternErrors + iota
)

func wrongPatternError(e error) *rulematch.Error {
	return rulematch.FormatError(WrongPatternError, "invalid pattern: %s", e.Error())
}

// Matcher tests whether a whole message matches a pattern.
// Matcher is immutable and safe for concurrent use.
type Matcher struct {
	pattern string
	re      *regexp.Regexp
}

// Compile compiles a pattern. Explicit ^ and $ anchors are optional,
// a message must match entirely in any case.
// Returns nil and rulematch.Error if the pattern is not valid.
func Compile(pattern string) (*Matcher, error) {
	// unbalanced parentheses must not escape the anchoring group
	if _, e := syntax.Parse(pattern, syntax.Perl); e != nil {
		return nil, wrongPatternError(e)
	}

	re, e := regexp.Compile(`^(?:` + pattern + `)$`)
	if e != nil {
		return nil, wrongPatternError(e)
	}

	return &Matcher{pattern, re}, nil
}

// String returns the source pattern.
func (m *Matcher) String() string {
	return m.pattern
}

func (m *Matcher) Match(message string) bool {
	return m.re.MatchString(message)
}

// Count returns the number of matching messages.
func (m *Matcher) Count(messages []string) int {
	result := 0
	for _, message := range messages {
		if m.re.MatchString(message) {
			result++
		}
	}
	return result
}

// Filter returns matching messages in original order.
func (m *Matcher) Filter(messages []string) []string {
	var result []string
	for _, message := range messages {
		if m.re.MatchString(message) {
			result = append(result, message)
		}
	}
	return result
}
