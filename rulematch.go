/*
Package rulematch counts messages derivable from rule 0 of a numbered rule grammar.

Consists of subpackages:
  - grammar: rule store, read-only view, reachability and cycle search;
  - langdef: reads rule definitions and messages from input text;
  - lexer: tokenizer for rule bodies;
  - source: input text with line and column lookup;
  - pattern: converts rule 0 into a single regular expression, either by textual substitution
    or by recursive expansion with optional self-referential overrides;
  - match: compiles expressions into full-string matchers;
  - config: HCL configuration of the recursive overrides;
  - cmd/rulematch: console utility printing match counts for an input file.

Typical usage is:

1. Read rules and messages with langdef.Parse.

2. Build an expression with pattern.Substitute (acyclic grammars only)
or pattern.NewExpander(...).Pattern().

3. Compile it with match.Compile and count matching messages.
*/
package rulematch

import (
	"errors"
	"fmt"
)

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	InputErrors   = 1   // used by langdef
	LexicalErrors = 101 // used by lexer
	GrammarErrors = 201 // used by grammar
	PatternErrors = 301 // used by pattern and match
	ConfigErrors  = 401 // used by config
)

// Error is the error type used by rulematch subpackages.
type Error struct {
	// Code contains non-zero error code.
	Code int

	// Message contains non-empty error message including source name and position information if provided.
	Message string

	// SourceName contains source name that caused this error or empty string.
	SourceName string

	// Line contains line number in source file or 0.
	Line int

	// Col contains column number in source file or 0.
	Col int
}

// SourcePos is used to retrieve source name and position information when constructing an error;
// source.Pos and lexer.Token implement this interface.
type SourcePos interface {
	SourceName() string
	Line() int
	Col() int
}

// NewError creates new Error structure.
// name, line, and col will be added to error message if provided (non-zero).
func NewError(code int, msg, name string, line, col int) *Error {
	if name != "" && line != 0 && col != 0 {
		msg += fmt.Sprintf(" in %s at line %d col %d", name, line, col)
	}
	return &Error{code, msg, name, line, col}
}

// Error simply returns Error.Message.
func (e *Error) Error() string {
	return e.Message
}

// FormatError creates Error structure with no source and position information.
// params will be added to error message using fmt.Sprintf function.
func FormatError(code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, "", 0, 0)
}

// FormatErrorPos creates Error structure with source and position information.
// pos must not be nil.
func FormatErrorPos(pos SourcePos, code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, pos.SourceName(), pos.Line(), pos.Col())
}

// HasCode reports whether e is or wraps an *Error with given code.
func HasCode(e error, code int) bool {
	var ee *Error
	return errors.As(e, &ee) && ee.Code == code
}
