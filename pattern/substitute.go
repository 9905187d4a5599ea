package pattern

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ava12/rulematch"
	"github.com/ava12/rulematch/grammar"
	"github.com/ava12/rulematch/match"
)

var (
	refRe     = regexp.MustCompile(`\d+`)
	literalRe = regexp.MustCompile(`"(\w)"`)
)

// substitution returns replacement text for a rule reference, nested references are kept.
func substitution(text string) string {
	if m := literalRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if strings.Contains(text, "|") {
		return "(" + text + ")"
	}
	return text
}

// Substitute replaces rule references in the text of rule 0 with referenced rule texts
// (literals with their characters, alternations wrapped in parentheses), pass after pass,
// until no reference remains. The result is stored as the text of rule 0, so callers must pass
// a store they own (see grammar.Rules.Clone).
// Returns anchored pattern with spaces removed.
//
// Grammars with cycles reachable from rule 0 are rejected with CycleError.
// Literal digits cannot be told apart from rule ids after substitution.
func Substitute(rules *grammar.Rules) (string, error) {
	if cycle := grammar.FindCycle(rules, grammar.RootRule); cycle != nil {
		return "", cycleError(cycle)
	}

	merged, e := rules.Text(grammar.RootRule)
	if e != nil {
		return "", e
	}

	for refRe.MatchString(merged) {
		var lookupError error
		merged = refRe.ReplaceAllStringFunc(merged, func(ref string) string {
			if lookupError != nil {
				return ""
			}

			id, e := strconv.Atoi(ref)
			if e != nil {
				lookupError = rulematch.FormatError(grammar.UnknownRuleError, "undefined rule %s", ref)
				return ""
			}

			text, e := rules.Text(id)
			if e != nil {
				lookupError = e
				return ""
			}
			return substitution(text)
		})
		if lookupError != nil {
			return "", lookupError
		}
	}

	merged = literalRe.ReplaceAllString(merged, "${1}")
	e = rules.SetText(grammar.RootRule, merged)
	if e != nil {
		return "", e
	}

	return "^" + strings.Join(strings.Fields(merged), "") + "$", nil
}

// CompileRuleZero builds a matcher for rule 0 using Substitute.
func CompileRuleZero(rules *grammar.Rules) (*match.Matcher, error) {
	p, e := Substitute(rules)
	if e != nil {
		return nil, e
	}

	return match.Compile(p)
}
