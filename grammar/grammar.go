// Package grammar defines the rule store: numbered rules with their verbatim text and parsed definitions.
package grammar

import (
	"sort"

	"github.com/ava12/rulematch"
)

const (
	// RootRule is the start symbol.
	RootRule = 0

	// MaxRuleId is the highest accepted rule id.
	MaxRuleId = 1<<20 - 1
)

// Error codes used by grammar:
const (
	// UnknownRuleError indicates a reference to a rule missing from the store.
	UnknownRuleError = rulematch.GrammarErrors + iota
)

// Definition is the parsed body of a rule.
// A literal rule has non-empty Literal and no Alternatives.
// A sequence rule has exactly one alternative, an alternation rule has two or more.
type Definition struct {
	Literal      string  `json:",omitempty"`
	Alternatives [][]int `json:",omitempty"`
}

func (d Definition) IsLiteral() bool {
	return d.Literal != ""
}

func (d Definition) IsAlternation() bool {
	return len(d.Alternatives) > 1
}

// Refs returns referenced rule ids in order of appearance, duplicates included.
func (d Definition) Refs() []int {
	var result []int
	for _, alt := range d.Alternatives {
		result = append(result, alt...)
	}
	return result
}

// Rule is a single numbered rule.
type Rule struct {
	Id int

	// Text is the rule body as written in input, leading colon and spaces trimmed.
	Text string

	Def Definition

	// Line is 1-based input line number or 0.
	Line int
}

// View is read-only access to rules.
type View interface {
	// Rule returns a rule or UnknownRuleError.
	Rule(id int) (Rule, error)
}

// Rules is the rule store. Rules is not safe for concurrent modification.
type Rules struct {
	rules map[int]Rule
}

func New() *Rules {
	return &Rules{rules: make(map[int]Rule)}
}

func unknownRuleError(id int) *rulematch.Error {
	return rulematch.FormatError(UnknownRuleError, "undefined rule %d", id)
}

// Add stores a rule, returns false and changes nothing if the id is already defined.
func (rs *Rules) Add(r Rule) bool {
	if _, has := rs.rules[r.Id]; has {
		return false
	}

	rs.rules[r.Id] = r
	return true
}

func (rs *Rules) Has(id int) bool {
	_, has := rs.rules[id]
	return has
}

func (rs *Rules) Len() int {
	return len(rs.rules)
}

// Rule implements View.
func (rs *Rules) Rule(id int) (Rule, error) {
	r, has := rs.rules[id]
	if !has {
		return Rule{}, unknownRuleError(id)
	}
	return r, nil
}

// Text returns verbatim rule text or UnknownRuleError.
func (rs *Rules) Text(id int) (string, error) {
	r, e := rs.Rule(id)
	return r.Text, e
}

// SetText replaces the text of existing rule and drops its parsed definition,
// the rule then can be used only for textual substitution.
func (rs *Rules) SetText(id int, text string) error {
	r, has := rs.rules[id]
	if !has {
		return unknownRuleError(id)
	}

	r.Text = text
	r.Def = Definition{}
	rs.rules[id] = r
	return nil
}

// Ids returns all rule ids in ascending order.
func (rs *Rules) Ids() []int {
	result := make([]int, 0, len(rs.rules))
	for id := range rs.rules {
		result = append(result, id)
	}
	sort.Ints(result)
	return result
}

// Clone returns an independent copy of the store.
func (rs *Rules) Clone() *Rules {
	result := &Rules{rules: make(map[int]Rule, len(rs.rules))}
	for id, r := range rs.rules {
		alts := make([][]int, len(r.Def.Alternatives))
		for i, alt := range r.Def.Alternatives {
			alts[i] = append([]int(nil), alt...)
		}
		if len(alts) == 0 {
			alts = nil
		}
		r.Def.Alternatives = alts
		result.rules[id] = r
	}
	return result
}
