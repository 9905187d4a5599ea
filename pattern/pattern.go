// Package pattern converts rule 0 of a grammar into a single regular expression.
//
// Substitute rewrites rule text until no rule ids remain, it is only valid for acyclic grammars.
// Expander expands rules recursively and can replace chosen rules with self-referential
// productions: Repeat (R: I | I R) and Nest (R: O C | O R C).
package pattern

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ava12/rulematch"
)

// MaxNestDepth is the highest repetition count accepted by the matcher.
const MaxNestDepth = 1000

// Error codes used by pattern (match uses lower codes of the same class):
const (
	// CycleError indicates that textual substitution was requested for a grammar containing a cycle.
	CycleError = rulematch.PatternErrors + 10 + iota

	// RecursionError indicates a recursive rule that has no override.
	RecursionError

	// DepthError indicates nesting depth out of [1, MaxNestDepth] range.
	DepthError

	// NoDefinitionError indicates a rule having neither literal nor alternatives.
	NoDefinitionError
)

func joinIds(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return strings.Join(parts, " -> ")
}

func cycleError(cycle []int) *rulematch.Error {
	return rulematch.FormatError(CycleError, "cannot substitute recursive rules: %s -> %d", joinIds(cycle), cycle[0])
}

func recursionError(id int) *rulematch.Error {
	return rulematch.FormatError(RecursionError, "rule %d is recursive and has no override", id)
}

func depthError(id, depth int) *rulematch.Error {
	return rulematch.FormatError(DepthError, "rule %d: nesting depth %d is out of range 1..%d", id, depth, MaxNestDepth)
}

func noDefinitionError(id int) *rulematch.Error {
	return rulematch.FormatError(NoDefinitionError, "rule %d has no parsed definition", id)
}

// group makes fragment a single atom for a following repetition operator.
func group(fragment string) string {
	if utf8.RuneCountInString(fragment) == 1 {
		return fragment
	}
	return "(" + fragment + ")"
}
