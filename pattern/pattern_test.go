package pattern

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ava12/rulematch/grammar"
	"github.com/ava12/rulematch/internal/test"
	"github.com/ava12/rulematch/langdef"
	"github.com/ava12/rulematch/match"
)

const sampleRules = `0: 4 1 5
1: 2 3 | 3 2
2: 4 4 | 5 5
3: 4 5 | 5 4
4: "a"
5: "b"
`

var sampleMessages = []string{"ababbb", "bababa", "abbbab", "aaabbb", "aaaabbb"}

const samplePattern = "^a((aa|bb)(ab|ba)|(ab|ba)(aa|bb))b$"

// 0: 8 11; 8: 42 | 42 8; 11: 42 31 | 42 11 31
const recursiveRules = `0: 8 11
8: 42 | 42 8
11: 42 31 | 42 11 31
42: "a"
31: "b"
`

var defaultOverrides = []Option{
	WithRepeat(Repeat{Rule: 8, Item: 42}),
	WithNest(Nest{Rule: 11, Open: 42, Close: 31, MaxDepth: 9}),
}

func parseRules(t testing.TB, text string) *grammar.Rules {
	t.Helper()
	rules, _, e := langdef.ParseString("rules", text)
	require.NoError(t, e)
	return rules
}

func compileExpanded(t testing.TB, rules grammar.View, opts ...Option) *match.Matcher {
	t.Helper()
	p, e := NewExpander(rules, opts...).Pattern()
	require.NoError(t, e)
	m, e := match.Compile(p)
	require.NoError(t, e)
	return m
}

func TestSampleBothStrategies(t *testing.T) {
	rules := parseRules(t, sampleRules)

	substituted, e := Substitute(rules.Clone())
	require.NoError(t, e)
	assert.Equal(t, samplePattern, substituted)

	expanded, e := NewExpander(rules).Pattern()
	require.NoError(t, e)
	assert.Equal(t, samplePattern, expanded)

	m, e := CompileRuleZero(rules.Clone())
	require.NoError(t, e)
	assert.Equal(t, []string{"ababbb", "abbbab"}, m.Filter(sampleMessages))
	assert.Equal(t, 2, compileExpanded(t, rules).Count(sampleMessages))
}

func TestSubstituteStoresRuleZero(t *testing.T) {
	rules := parseRules(t, sampleRules)
	clone := rules.Clone()
	_, e := Substitute(clone)
	require.NoError(t, e)

	text, _ := clone.Text(0)
	assert.Equal(t, "a ((a a | b b) (a b | b a) | (a b | b a) (a a | b b)) b", text)
	text, _ = rules.Text(0)
	assert.Equal(t, "4 1 5", text)
}

func TestLiteralRuleZero(t *testing.T) {
	rules := parseRules(t, "0: \"a\"\n")
	substituted, e := Substitute(rules.Clone())
	require.NoError(t, e)
	assert.Equal(t, "^a$", substituted)

	expanded, e := NewExpander(rules).Pattern()
	require.NoError(t, e)
	assert.Equal(t, "^a$", expanded)
}

func TestExpanderIsReadOnly(t *testing.T) {
	rules := parseRules(t, recursiveRules)
	before := rules.Clone()
	x := NewExpander(rules, defaultOverrides...)
	_, e := x.Pattern()
	require.NoError(t, e)
	_, e = x.Pattern()
	require.NoError(t, e)

	for _, id := range before.Ids() {
		want, _ := before.Rule(id)
		got, _ := rules.Rule(id)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("rule %d changed (-want +got):\n%s", id, diff)
		}
	}
}

func TestLiteralExpansionIsStable(t *testing.T) {
	rules := parseRules(t, sampleRules)
	x := NewExpander(rules)
	for i := 0; i < 3; i++ {
		fragment, e := x.Expand(4)
		require.NoError(t, e)
		assert.Equal(t, "a", fragment)
	}
	fragment, e := x.Expand(2)
	require.NoError(t, e)
	assert.Equal(t, "(aa|bb)", fragment)
	fragment, e = NewExpander(rules).Expand(4)
	require.NoError(t, e)
	assert.Equal(t, "a", fragment)

	sequence, e := x.ExpandSequence([]int{5, 4, 5})
	require.NoError(t, e)
	assert.Equal(t, "bab", sequence)
}

func TestAlternationOrder(t *testing.T) {
	rules := parseRules(t, "0: 1 | 2 | 1 2\n1: \"x\"\n2: \"y\"\n")
	fragment, e := NewExpander(rules).Expand(0)
	require.NoError(t, e)
	assert.Equal(t, "(x|y|xy)", fragment)

	m := compileExpanded(t, rules)
	assert.Equal(t, []string{"x", "y", "xy"}, m.Filter([]string{"x", "y", "xy", "yx", "xx"}))
}

func TestRepeatOverride(t *testing.T) {
	rules := parseRules(t, "0: 8\n8: 42\n42: 1 2\n1: \"a\"\n2: \"b\"\n")
	m := compileExpanded(t, rules, WithRepeat(Repeat{Rule: 8, Item: 42}))
	assert.Equal(t, "^(ab)+$", m.String())
	for k := 1; k <= 6; k++ {
		assert.True(t, m.Match(strings.Repeat("ab", k)), "k = %d", k)
	}
	for _, msg := range []string{"", "a", "aba", "abba", "ba"} {
		assert.False(t, m.Match(msg), "message %q", msg)
	}
}

func TestNestOverrideDepth(t *testing.T) {
	rules := parseRules(t, recursiveRules)
	m := compileExpanded(t, rules, defaultOverrides...)
	for n := 1; n <= 9; n++ {
		msg := strings.Repeat("a", n+1) + strings.Repeat("b", n)
		assert.True(t, m.Match(msg), "depth %d", n)
		assert.True(t, m.Match("aaa"+msg), "depth %d", n)
	}
	assert.False(t, m.Match(strings.Repeat("a", 11)+strings.Repeat("b", 10)), "depth 10 is beyond the limit")
	assert.False(t, m.Match("ab"), "rule 8 needs at least one item")
	assert.False(t, m.Match("aab"+"b"))

	shallow := compileExpanded(t, rules, WithRepeat(Repeat{8, 42}), WithNest(Nest{11, 42, 31, 3}))
	assert.True(t, shallow.Match("aaaabbb"))
	assert.False(t, shallow.Match("aaaaabbbb"))
}

func TestNestPatternText(t *testing.T) {
	rules := parseRules(t, "0: 11\n42: \"a\" \n31: 1 | 2\n1: \"b\"\n2: \"c\"\n")
	fragment, e := NewExpander(rules, WithNest(Nest{Rule: 11, Open: 42, Close: 31, MaxDepth: 2})).Expand(0)
	require.NoError(t, e)
	assert.Equal(t, "(a{1}((b|c)){1}|a{2}((b|c)){2})", fragment)
}

func TestOverriddenRulesNeedNoText(t *testing.T) {
	rules := parseRules(t, "0: 8 11\n42: \"a\"\n31: \"b\"\n")
	m := compileExpanded(t, rules, defaultOverrides...)
	assert.True(t, m.Match("aab"))

	_, e := NewExpander(rules).Pattern()
	test.ExpectErrorCode(t, grammar.UnknownRuleError, e)
}

func TestRecursionWithoutOverride(t *testing.T) {
	rules := parseRules(t, recursiveRules)
	_, e := NewExpander(rules).Pattern()
	test.ExpectErrorCode(t, RecursionError, e)

	_, e = NewExpander(rules, WithRepeat(Repeat{Rule: 8, Item: 8})).Expand(8)
	test.ExpectErrorCode(t, RecursionError, e)
}

func TestSubstituteRejectsCycles(t *testing.T) {
	rules := parseRules(t, recursiveRules)
	_, e := Substitute(rules.Clone())
	ee := test.ExpectErrorCode(t, CycleError, e)
	assert.Contains(t, ee.Message, "8 -> 8")

	_, e = CompileRuleZero(rules.Clone())
	test.ExpectErrorCode(t, CycleError, e)
}

func TestUnknownRule(t *testing.T) {
	rules := parseRules(t, "0: 1 2\n1: \"a\"\n")
	_, e := Substitute(rules.Clone())
	test.ExpectErrorCode(t, grammar.UnknownRuleError, e)
	_, e = NewExpander(rules).Pattern()
	test.ExpectErrorCode(t, grammar.UnknownRuleError, e)

	_, e = Substitute(grammar.New())
	test.ExpectErrorCode(t, grammar.UnknownRuleError, e)
}

func TestDepthOutOfRange(t *testing.T) {
	rules := parseRules(t, recursiveRules)
	for _, depth := range []int{0, -1, MaxNestDepth + 1} {
		_, e := NewExpander(rules, WithRepeat(Repeat{8, 42}), WithNest(Nest{11, 42, 31, depth})).Pattern()
		test.ExpectErrorCode(t, DepthError, e)
	}
}

func TestNoDefinition(t *testing.T) {
	rules := parseRules(t, sampleRules)
	clone := rules.Clone()
	_, e := Substitute(clone)
	require.NoError(t, e)
	_, e = NewExpander(clone).Pattern()
	test.ExpectErrorCode(t, NoDefinitionError, e)
}

// randomGrammar builds an acyclic grammar: rule i refers only to rules with greater ids,
// the last two rules are literals "a" and "b".
func randomGrammar(r *rand.Rand, size int) string {
	var b strings.Builder
	for id := 0; id < size-2; id++ {
		alts := make([]string, 1+r.Intn(2))
		for i := range alts {
			ids := make([]string, 1+r.Intn(2))
			for k := range ids {
				ids[k] = strconv.Itoa(id + 1 + r.Intn(size-id-1))
			}
			alts[i] = strings.Join(ids, " ")
		}
		fmt.Fprintf(&b, "%d: %s\n", id, strings.Join(alts, " | "))
	}
	fmt.Fprintf(&b, "%d: \"a\"\n%d: \"b\"\n", size-2, size-1)
	return b.String()
}

func allMessages(maxLen int) []string {
	result := []string{}
	level := []string{""}
	for l := 1; l <= maxLen; l++ {
		var next []string
		for _, prefix := range level {
			next = append(next, prefix+"a", prefix+"b")
		}
		result = append(result, next...)
		level = next
	}
	return result
}

func TestStrategiesAgreeOnAcyclicGrammars(t *testing.T) {
	r := rand.New(rand.NewSource(19))
	messages := allMessages(8)
	for i := 0; i < 20; i++ {
		text := randomGrammar(r, 8)
		rules := parseRules(t, text)

		substituted, e := CompileRuleZero(rules.Clone())
		require.NoError(t, e, "grammar:\n%s", text)
		expanded := compileExpanded(t, rules)

		for _, msg := range messages {
			if substituted.Match(msg) != expanded.Match(msg) {
				t.Fatalf("strategies disagree on %q\ngrammar:\n%s\nsubstituted: %s\nexpanded: %s",
					msg, text, substituted, expanded)
			}
		}
	}
}
