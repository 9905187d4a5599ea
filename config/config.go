// Package config loads the recursive rule overrides from HCL files.
//
// A configuration file may contain two optional blocks, all attributes are optional:
//
//	repeat {
//	  rule = 8
//	  item = 42
//	}
//
//	nest {
//	  rule      = 11
//	  open      = 42
//	  close     = 31
//	  max_depth = 9
//	}
//
// Absent attributes keep default values.
package config

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/ava12/rulematch"
	"github.com/ava12/rulematch/grammar"
	"github.com/ava12/rulematch/internal/ctxlog"
	"github.com/ava12/rulematch/pattern"
)

// Default overrides: 8: 42 | 42 8 and 11: 42 31 | 42 11 31.
const (
	DefaultRepeatRule = 8
	DefaultRepeatItem = 42
	DefaultNestRule   = 11
	DefaultNestOpen   = 42
	DefaultNestClose  = 31

	// DefaultMaxDepth limits nesting of DefaultNestRule. Messages nested deeper are not matched.
	DefaultMaxDepth = 9
)

// Error codes used by config:
const (
	// WrongConfigError indicates unreadable file, HCL syntax error, or invalid attribute value.
	WrongConfigError = rulematch.ConfigErrors + iota
)

// Recursion holds the overrides used by the recursive expansion.
type Recursion struct {
	Repeat pattern.Repeat
	Nest   pattern.Nest
}

// Default returns the built-in overrides.
func Default() Recursion {
	return Recursion{
		Repeat: pattern.Repeat{Rule: DefaultRepeatRule, Item: DefaultRepeatItem},
		Nest: pattern.Nest{
			Rule:     DefaultNestRule,
			Open:     DefaultNestOpen,
			Close:    DefaultNestClose,
			MaxDepth: DefaultMaxDepth,
		},
	}
}

// Options converts overrides to pattern.Expander options.
func (r Recursion) Options() []pattern.Option {
	return []pattern.Option{pattern.WithRepeat(r.Repeat), pattern.WithNest(r.Nest)}
}

type repeatBlock struct {
	Rule hcl.Expression `hcl:"rule,optional"`
	Item hcl.Expression `hcl:"item,optional"`
}

type nestBlock struct {
	Rule     hcl.Expression `hcl:"rule,optional"`
	Open     hcl.Expression `hcl:"open,optional"`
	Close    hcl.Expression `hcl:"close,optional"`
	MaxDepth hcl.Expression `hcl:"max_depth,optional"`
}

type fileRoot struct {
	Repeat *repeatBlock `hcl:"repeat,block"`
	Nest   *nestBlock   `hcl:"nest,block"`
}

func wrapError(name string, e error) *rulematch.Error {
	return rulematch.FormatError(WrongConfigError, "config %s: %s", name, e.Error())
}

// LoadFile reads overrides from an HCL file.
func LoadFile(ctx context.Context, path string) (Recursion, error) {
	content, e := os.ReadFile(path)
	if e != nil {
		return Recursion{}, wrapError(path, e)
	}

	return Load(ctx, path, content)
}

// Load reads overrides from HCL content, name is used in diagnostics.
// Returns default values for empty content.
func Load(ctx context.Context, name string, content []byte) (Recursion, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Decoding recursion config.", "name", name)

	result := Default()
	file, diags := hclparse.NewParser().ParseHCL(content, name)
	if diags.HasErrors() {
		return result, wrapError(name, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(file.Body, nil, &root)
	if diags.HasErrors() {
		return result, wrapError(name, diags)
	}

	if root.Repeat != nil {
		e := decodeInts(name, []intAttr{
			{"rule", root.Repeat.Rule, &result.Repeat.Rule, 0, grammar.MaxRuleId},
			{"item", root.Repeat.Item, &result.Repeat.Item, 0, grammar.MaxRuleId},
		})
		if e != nil {
			return Default(), e
		}
	}
	if root.Nest != nil {
		e := decodeInts(name, []intAttr{
			{"rule", root.Nest.Rule, &result.Nest.Rule, 0, grammar.MaxRuleId},
			{"open", root.Nest.Open, &result.Nest.Open, 0, grammar.MaxRuleId},
			{"close", root.Nest.Close, &result.Nest.Close, 0, grammar.MaxRuleId},
			{"max_depth", root.Nest.MaxDepth, &result.Nest.MaxDepth, 1, pattern.MaxNestDepth},
		})
		if e != nil {
			return Default(), e
		}
	}

	logger.Debug("Recursion config decoded.", "name", name, "repeat", result.Repeat, "nest", result.Nest)
	return result, nil
}

type intAttr struct {
	name     string
	expr     hcl.Expression
	target   *int
	min, max int
}

// decodeInts stores attribute values into targets, null (absent) values keep targets intact.
func decodeInts(name string, attrs []intAttr) error {
	for _, attr := range attrs {
		if attr.expr == nil {
			continue
		}

		val, diags := attr.expr.Value(nil)
		if diags.HasErrors() {
			return wrapError(name, diags)
		}
		if val.IsNull() {
			continue
		}

		var n int
		if val.Type() != cty.Number {
			return wrapError(name, fmt.Errorf("%s: number expected, got %s", attr.name, val.Type().FriendlyName()))
		}
		if e := gocty.FromCtyValue(val, &n); e != nil {
			return wrapError(name, fmt.Errorf("%s: %w", attr.name, e))
		}
		if n < attr.min || n > attr.max {
			return wrapError(name, fmt.Errorf("%s: %d is out of range %d..%d", attr.name, n, attr.min, attr.max))
		}
		*attr.target = n
	}
	return nil
}
