// Package lexer defines lexical analyzer.
package lexer

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/ava12/rulematch"
	"github.com/ava12/rulematch/source"
)

const (
	// ErrorTokenType is the type for fake tokens capturing broken lexemes.
	// Lexer will never return a token of this type, an error with message containing token text will be returned instead.
	ErrorTokenType = -1

	// ErrorTokenName is the type name for ErrorTokenType.
	ErrorTokenName = "-error-"
)

// Error codes used by lexer:
const (
	// WrongCharError indicates that lexer cannot fetch any token at current position.
	// Error message contains the rune at current source position.
	WrongCharError = rulematch.LexicalErrors + iota

	// BadTokenError indicates that lexer has fetched a token of ErrorTokenType.
	BadTokenError
)

// TokenType describes token type for specific capturing group of regular expression.
type TokenType struct {
	// Type contains token type, any non-negative value. Negative values are treated as ErrorTokenType.
	Type int

	// TypeName contains token type name, may be any value.
	TypeName string
}

// Lexer splits a range of source content into tokens using regexp.Regexp.
// Lexer itself is immutable, stateless, and safe for concurrent use.
// Each token type maps to its own regexp capturing group index.
// A match containing no captured groups is treated as insignificant lexeme (e.g. whitespace).
// Every byte of the range must belong to some lexeme.
type Lexer struct {
	types []TokenType
	re    *regexp.Regexp
}

// New creates new Lexer.
// Each n-th element of types describes token type for (n+1)-th regexp capturing group.
// A group that has no description is treated as ErrorTokenType.
func New(re *regexp.Regexp, types []TokenType) *Lexer {
	ts := make([]TokenType, len(types))
	for i, t := range types {
		ts[i] = t
		if t.Type < 0 {
			ts[i].Type = ErrorTokenType
		}
	}
	return &Lexer{types: ts, re: re}
}

func wrongCharError(s *source.Source, pos int) *rulematch.Error {
	r, _ := utf8.DecodeRune(s.Content()[pos:])
	msg := fmt.Sprintf("wrong char \"%c\" (u+%x)", r, r)
	line, col := s.LineCol(pos)
	return rulematch.NewError(WrongCharError, msg, s.Name(), line, col)
}

func wrongTokenError(t *Token) *rulematch.Error {
	return rulematch.FormatErrorPos(t, BadTokenError, "bad token %q", t.Text())
}

// matchToken returns a token (or nil for insignificant lexeme) and the number of bytes consumed.
func (l *Lexer) matchToken(src *source.Source, pos, end int) (*Token, int, error) {
	content := src.Content()[pos:end]
	match := l.re.FindSubmatchIndex(content)
	if len(match) == 0 || match[0] != 0 || match[1] <= match[0] {
		return nil, 0, wrongCharError(src, pos)
	}

	for i := 2; i < len(match); i += 2 {
		if match[i] < 0 || match[i+1] < 0 {
			continue
		}

		tokenType := ErrorTokenType
		typeName := ErrorTokenName
		if len(l.types) >= (i >> 1) {
			tokenType = l.types[(i>>1)-1].Type
			typeName = l.types[(i>>1)-1].TypeName
		}
		token := NewToken(tokenType, typeName, string(content[match[i]:match[i+1]]), source.NewPos(src, pos+match[i]))
		if tokenType == ErrorTokenType {
			return nil, 0, wrongTokenError(token)
		}

		return token, match[1], nil
	}

	return nil, match[1], nil
}

// Tokens splits src content between byte offsets start and end into tokens.
// Returns nil and rulematch.Error on lexical error.
func (l *Lexer) Tokens(src *source.Source, start, end int) ([]*Token, error) {
	if end > src.Len() {
		end = src.Len()
	}

	var result []*Token
	for pos := start; pos < end; {
		token, advance, e := l.matchToken(src, pos, end)
		if e != nil {
			return nil, e
		}

		if token != nil {
			result = append(result, token)
		}
		pos += advance
	}
	return result, nil
}
