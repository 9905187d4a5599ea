package langdef

import (
	"github.com/ava12/rulematch"
)

// Error codes used by langdef:
const (
	// WrongIdError indicates a rule id that is not an unsigned decimal number in allowed range.
	WrongIdError = rulematch.InputErrors + iota

	// WrongRuleError indicates malformed rule body.
	WrongRuleError

	// RuleDefinedError indicates repeated rule id.
	RuleDefinedError
)

func wrongIdError(pos rulematch.SourcePos, text string) *rulematch.Error {
	return rulematch.FormatErrorPos(pos, WrongIdError, "invalid rule id %q", text)
}

func emptyRuleError(pos rulematch.SourcePos, id int) *rulematch.Error {
	return rulematch.FormatErrorPos(pos, WrongRuleError, "empty rule %d", id)
}

func emptyAlternativeError(pos rulematch.SourcePos, id int) *rulematch.Error {
	return rulematch.FormatErrorPos(pos, WrongRuleError, "empty alternative in rule %d", id)
}

func mixedLiteralError(pos rulematch.SourcePos, id int) *rulematch.Error {
	return rulematch.FormatErrorPos(pos, WrongRuleError, "literal must be the only item of rule %d", id)
}

func ruleDefinedError(pos rulematch.SourcePos, id int) *rulematch.Error {
	return rulematch.FormatErrorPos(pos, RuleDefinedError, "rule %d already defined", id)
}
