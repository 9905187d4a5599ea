package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	pos, line, col int
}

func TestSourceLineCol(t *testing.T) {
	samples := map[string][]result{
		"": {
			{0, 1, 1},
			{100, 1, 1},
		},
		"\n": {
			{0, 1, 1},
			{1, 2, 1},
			{100, 2, 1},
		},
		"0\n2\n4\n6789abcde\ng\ni\n": {
			{4, 3, 1},
			{5, 3, 2},
			{6, 4, 1},
			{7, 4, 2},
			{14, 4, 9},
			{19, 6, 2},
			{20, 7, 1},
			{9, 4, 4},
			{5, 3, 2},
		},
		"ééx": {
			{4, 1, 3},
		},
	}

	for text, results := range samples {
		source := New("", []byte(text))
		for _, res := range results {
			l, c := source.LineCol(res.pos)
			assert.Equal(t, res.line, l, "sample %q, pos %d", text, res.pos)
			assert.Equal(t, res.col, c, "sample %q, pos %d", text, res.pos)
		}
	}
}

func TestSourcePos(t *testing.T) {
	samples := map[string][]result{
		"": {
			{0, 0, 1},
			{0, 1, 0},
			{0, 1, 1},
			{0, 1, 2},
			{0, 2, 1},
		},
		"hello\nworld\n": {
			{0, 1, 1},
			{1, 1, 2},
			{6, 2, 1},
			{7, 2, 2},
			{12, 2, 10},
			{12, 3, 1},
			{12, 4, 1},
		},
	}

	for text, results := range samples {
		source := New("", []byte(text))
		for _, res := range results {
			assert.Equal(t, res.pos, source.Pos(res.line, res.col), "sample %q: %v", text, res)
		}
	}
}

func TestLines(t *testing.T) {
	s := New("input", []byte("0: 1 2\r\n1: \"a\"\n\nab"))
	lines := s.Lines()
	require.Len(t, lines, 4)
	assert.Equal(t, Line{Num: 1, Start: 0, Text: "0: 1 2"}, lines[0])
	assert.Equal(t, Line{Num: 2, Start: 8, Text: "1: \"a\""}, lines[1])
	assert.Equal(t, Line{Num: 3, Start: 15, Text: ""}, lines[2])
	assert.Equal(t, Line{Num: 4, Start: 16, Text: "ab"}, lines[3])
	assert.Equal(t, 4, s.LineCount())
}

func TestNewPos(t *testing.T) {
	s := New("input", []byte("foo\nbar"))
	p := NewPos(s, 5)
	assert.Equal(t, "input", p.SourceName())
	assert.Equal(t, 2, p.Line())
	assert.Equal(t, 2, p.Col())
	assert.Equal(t, 5, p.Pos())
	assert.Same(t, s, p.Source())
	assert.Equal(t, "", Pos{}.SourceName())
}
