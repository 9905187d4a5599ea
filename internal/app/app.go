// Package app runs all pattern strategies over one input and collects match counts.
package app

import (
	"context"
	"fmt"

	"github.com/ava12/rulematch/config"
	"github.com/ava12/rulematch/grammar"
	"github.com/ava12/rulematch/internal/ctxlog"
	"github.com/ava12/rulematch/langdef"
	"github.com/ava12/rulematch/match"
	"github.com/ava12/rulematch/pattern"
	"github.com/ava12/rulematch/source"
)

// Input is a rules and messages text plus recursion overrides.
type Input struct {
	Name      string
	Content   []byte
	Recursion config.Recursion
}

// Report holds match counts of each strategy.
type Report struct {
	// Substituted is the count for textual substitution of the original grammar.
	Substituted int

	// Expanded is the count for recursive expansion of the original grammar.
	Expanded int

	// Recursive is the count for recursive expansion with overrides.
	Recursive int
}

// Lines renders the report, one line per strategy.
func (r *Report) Lines() []string {
	counts := []int{r.Substituted, r.Expanded, r.Recursive}
	result := make([]string, len(counts))
	for i, n := range counts {
		result[i] = fmt.Sprintf("there are %d matching messages", n)
	}
	return result
}

// Run parses input and counts messages matching rule 0 with each strategy.
// Any error aborts the run, no partial report is returned.
func Run(ctx context.Context, in Input) (*Report, error) {
	logger := ctxlog.FromContext(ctx)
	rules, messages, e := langdef.Parse(source.New(in.Name, in.Content))
	if e != nil {
		return nil, e
	}
	logger.Debug("Input parsed.", "name", in.Name, "rules", rules.Len(), "messages", len(messages))
	if unused := grammar.Unreachable(rules, grammar.RootRule); len(unused) > 0 {
		logger.Debug("Rules unreachable from rule 0.", "ids", unused)
	}

	report := &Report{}

	substituted, e := pattern.CompileRuleZero(rules.Clone())
	if e != nil {
		return nil, fmt.Errorf("substitution: %w", e)
	}
	report.Substituted = substituted.Count(messages)
	logger.Debug("Substitution done.", "pattern_len", len(substituted.String()), "matches", report.Substituted)

	report.Expanded, e = countExpanded(rules, messages)
	if e != nil {
		return nil, fmt.Errorf("expansion: %w", e)
	}
	logger.Debug("Expansion done.", "matches", report.Expanded)
	if report.Expanded != report.Substituted {
		logger.Warn("Strategies disagree on the original grammar.", "substituted", report.Substituted, "expanded", report.Expanded)
	}

	report.Recursive, e = countExpanded(rules, messages, in.Recursion.Options()...)
	if e != nil {
		return nil, fmt.Errorf("recursive expansion: %w", e)
	}
	logger.Debug("Recursive expansion done.", "repeat", in.Recursion.Repeat, "nest", in.Recursion.Nest, "matches", report.Recursive)

	return report, nil
}

func countExpanded(rules grammar.View, messages []string, opts ...pattern.Option) (int, error) {
	p, e := pattern.NewExpander(rules, opts...).Pattern()
	if e != nil {
		return 0, e
	}

	m, e := match.Compile(p)
	if e != nil {
		return 0, e
	}

	return m.Count(messages), nil
}
