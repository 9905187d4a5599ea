package langdef

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ava12/rulematch/grammar"
	"github.com/ava12/rulematch/lexer"
	"github.com/ava12/rulematch/source"
)

const (
	idTok      = "id"
	literalTok = "literal"
	pipeTok    = "pipe"
)

const (
	idTokType = iota
	literalTokType
	pipeTokType
)

var (
	messageRe = regexp.MustCompile(`^\w+$`)
	bodyLexer = lexer.New(
		regexp.MustCompile(`[ \t]+|(\d+)|("\w")|(\|)|(".{0,10})`),
		[]lexer.TokenType{{Type: idTokType, TypeName: idTok}, {Type: literalTokType, TypeName: literalTok}, {Type: pipeTokType, TypeName: pipeTok}},
	)
)

// ParseString reads rules and messages from content.
// Returns nil, nil, and rulematch.Error on error.
func ParseString(name, content string) (*grammar.Rules, []string, error) {
	return Parse(source.New(name, []byte(content)))
}

// ParseBytes reads rules and messages from content.
// Returns nil, nil, and rulematch.Error on error.
func ParseBytes(name string, content []byte) (*grammar.Rules, []string, error) {
	return Parse(source.New(name, content))
}

// Parse reads rules and messages from source.
// Returns nil, nil, and rulematch.Error on error.
func Parse(s *source.Source) (*grammar.Rules, []string, error) {
	rules, e := ParseRules(s)
	if e != nil {
		return nil, nil, e
	}

	return rules, ParseMessages(s), nil
}

// ParseMessages returns all lines consisting of word characters only, in input order.
func ParseMessages(s *source.Source) []string {
	var result []string
	for _, line := range s.Lines() {
		if messageRe.MatchString(line.Text) {
			result = append(result, line.Text)
		}
	}
	return result
}

// ParseRules reads the rules section: all lines up to the first one having no colon.
// Returns nil and rulematch.Error on error.
func ParseRules(s *source.Source) (*grammar.Rules, error) {
	rules := grammar.New()
	for _, line := range s.Lines() {
		colon := strings.IndexByte(line.Text, ':')
		if colon < 0 {
			break
		}

		pos := source.NewPos(s, line.Start)
		idText := line.Text[:colon]
		id, valid := parseId(idText)
		if !valid {
			return nil, wrongIdError(pos, idText)
		}

		body := strings.TrimLeft(line.Text[colon:], ": ")
		bodyStart := line.Start + len(line.Text) - len(body)
		def, e := parseDefinition(s, id, bodyStart, bodyStart+len(body))
		if e != nil {
			return nil, e
		}

		if !rules.Add(grammar.Rule{Id: id, Text: body, Def: def, Line: line.Num}) {
			return nil, ruleDefinedError(pos, id)
		}
	}
	return rules, nil
}

func parseId(text string) (int, bool) {
	id, e := strconv.ParseUint(text, 10, 64)
	if e != nil || id > grammar.MaxRuleId {
		return 0, false
	}
	return int(id), true
}

func parseDefinition(s *source.Source, id, start, end int) (grammar.Definition, error) {
	var def grammar.Definition
	tokens, e := bodyLexer.Tokens(s, start, end)
	if e != nil {
		return def, e
	}

	if len(tokens) == 0 {
		return def, emptyRuleError(source.NewPos(s, start), id)
	}

	if tokens[0].Type() == literalTokType {
		if len(tokens) > 1 {
			return def, mixedLiteralError(tokens[1], id)
		}

		text := tokens[0].Text()
		def.Literal = text[1 : len(text)-1]
		return def, nil
	}

	def.Alternatives = [][]int{nil}
	last := 0
	for _, token := range tokens {
		switch token.Type() {
		case idTokType:
			ref, valid := parseId(token.Text())
			if !valid {
				return def, wrongIdError(token, token.Text())
			}
			def.Alternatives[last] = append(def.Alternatives[last], ref)

		case pipeTokType:
			if len(def.Alternatives[last]) == 0 {
				return def, emptyAlternativeError(token, id)
			}
			def.Alternatives = append(def.Alternatives, nil)
			last++

		case literalTokType:
			return def, mixedLiteralError(token, id)
		}
	}

	if len(def.Alternatives[last]) == 0 {
		return def, emptyAlternativeError(tokens[len(tokens)-1], id)
	}
	return def, nil
}
