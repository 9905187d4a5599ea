package pattern

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ava12/rulematch/grammar"
	"github.com/ava12/rulematch/internal/ints"
)

// Repeat replaces Rule with one or more repetitions of Item (Rule: Item | Item Rule).
type Repeat struct {
	Rule, Item int
}

// Nest replaces Rule with n repetitions of Open followed by n repetitions of Close,
// n = 1..MaxDepth (Rule: Open Close | Open Rule Close, recursion depth limited).
// Messages nested deeper than MaxDepth are not matched.
type Nest struct {
	Rule, Open, Close, MaxDepth int
}

// Option configures an Expander.
type Option func(*Expander)

// WithRepeat overrides r.Rule with a repetition of r.Item.
func WithRepeat(r Repeat) Option {
	return func(x *Expander) {
		x.repeats[r.Rule] = r
	}
}

// WithNest overrides n.Rule with a bounded nesting of n.Open and n.Close.
func WithNest(n Nest) Option {
	return func(x *Expander) {
		x.nests[n.Rule] = n
	}
}

// Expander builds pattern fragments for rules. Stored texts of overridden rules are never read.
// Fragments are cached, so an Expander must not outlive changes of the underlying rules.
type Expander struct {
	view    grammar.View
	repeats map[int]Repeat
	nests   map[int]Nest
	cache   map[int]string
	active  *ints.Set
}

// NewExpander creates an Expander reading rules from view.
func NewExpander(view grammar.View, opts ...Option) *Expander {
	x := &Expander{
		view:    view,
		repeats: make(map[int]Repeat),
		nests:   make(map[int]Nest),
		cache:   make(map[int]string),
		active:  ints.NewSet(),
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Pattern returns anchored pattern for rule 0.
func (x *Expander) Pattern() (string, error) {
	fragment, e := x.Expand(grammar.RootRule)
	if e != nil {
		return "", e
	}

	return "^" + fragment + "$", nil
}

// Expand returns pattern fragment for a rule.
// Returns grammar.UnknownRuleError for missing rules and RecursionError for recursion not covered by overrides.
func (x *Expander) Expand(id int) (string, error) {
	if fragment, has := x.cache[id]; has {
		return fragment, nil
	}

	if x.active.Contains(id) {
		return "", recursionError(id)
	}

	x.active.Add(id)
	fragment, e := x.expand(id)
	x.active.Remove(id)
	if e != nil {
		return "", e
	}

	x.cache[id] = fragment
	return fragment, nil
}

func (x *Expander) expand(id int) (string, error) {
	if r, has := x.repeats[id]; has {
		return x.expandRepeat(r)
	}
	if n, has := x.nests[id]; has {
		return x.expandNest(n)
	}

	r, e := x.view.Rule(id)
	if e != nil {
		return "", e
	}

	switch {
	case r.Def.IsLiteral():
		return regexp.QuoteMeta(r.Def.Literal), nil

	case r.Def.IsAlternation():
		parts := make([]string, len(r.Def.Alternatives))
		for i, alt := range r.Def.Alternatives {
			parts[i], e = x.ExpandSequence(alt)
			if e != nil {
				return "", e
			}
		}
		return "(" + strings.Join(parts, "|") + ")", nil

	case len(r.Def.Alternatives) == 1:
		return x.ExpandSequence(r.Def.Alternatives[0])

	default:
		return "", noDefinitionError(id)
	}
}

// ExpandSequence concatenates fragments of given rules.
func (x *Expander) ExpandSequence(ids []int) (string, error) {
	var result strings.Builder
	for _, id := range ids {
		fragment, e := x.Expand(id)
		if e != nil {
			return "", e
		}
		result.WriteString(fragment)
	}
	return result.String(), nil
}

func (x *Expander) expandRepeat(r Repeat) (string, error) {
	item, e := x.Expand(r.Item)
	if e != nil {
		return "", e
	}

	return group(item) + "+", nil
}

func (x *Expander) expandNest(n Nest) (string, error) {
	if n.MaxDepth < 1 || n.MaxDepth > MaxNestDepth {
		return "", depthError(n.Rule, n.MaxDepth)
	}

	open, e := x.Expand(n.Open)
	if e != nil {
		return "", e
	}
	closing, e := x.Expand(n.Close)
	if e != nil {
		return "", e
	}

	open = group(open)
	closing = group(closing)
	parts := make([]string, n.MaxDepth)
	for i := range parts {
		parts[i] = fmt.Sprintf("%s{%d}%s{%d}", open, i+1, closing, i+1)
	}
	return "(" + strings.Join(parts, "|") + ")", nil
}
