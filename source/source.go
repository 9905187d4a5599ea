// Package source defines input text with line and column lookup.
package source

import (
	"bytes"
	"sort"
	"unicode/utf8"
)

// Source is a named immutable input text.
type Source struct {
	name       string
	content    []byte
	lineStarts []int
}

// New creates a source, content must not be modified afterwards.
func New(name string, content []byte) *Source {
	s := &Source{name: name, content: content}
	lineCnt := bytes.Count(content, []byte("\n")) + 1
	s.lineStarts = make([]int, 1, lineCnt)
	for i, b := range content {
		if b == '\n' {
			s.lineStarts = append(s.lineStarts, i+1)
		}
	}
	return s
}

func (s *Source) Name() string {
	return s.name
}

func (s *Source) Content() []byte {
	return s.content
}

func (s *Source) Len() int {
	return len(s.content)
}

// LineCount returns the number of lines, text after the last line feed counts as a line.
func (s *Source) LineCount() int {
	return len(s.lineStarts)
}

// LineCol converts byte offset to 1-based line and column (in runes).
// Offsets out of range are clamped.
func (s *Source) LineCol(pos int) (line, col int) {
	if pos < 0 {
		pos = 0
	} else if pos > len(s.content) {
		pos = len(s.content)
	}

	lineIndex := sort.SearchInts(s.lineStarts, pos+1) - 1
	lineStart := s.lineStarts[lineIndex]
	return lineIndex + 1, utf8.RuneCount(s.content[lineStart:pos]) + 1
}

// Pos converts 1-based line and column to byte offset.
// Returns 0 if line or col is not positive, clamps values beyond the end of content.
func (s *Source) Pos(line, col int) int {
	if line <= 0 || col <= 0 {
		return 0
	}

	l := len(s.content)
	if line > len(s.lineStarts) {
		return l
	}

	res := s.lineStarts[line-1] + col - 1
	if res > l {
		return l
	}
	return res
}

// Line is a single line of a source without line terminator.
type Line struct {
	// Num is 1-based line number.
	Num int

	// Start is the byte offset of the first char.
	Start int

	// Text is line content, trailing "\r" removed.
	Text string
}

// Lines splits content into lines.
func (s *Source) Lines() []Line {
	result := make([]Line, len(s.lineStarts))
	for i, start := range s.lineStarts {
		end := len(s.content)
		if i+1 < len(s.lineStarts) {
			end = s.lineStarts[i+1] - 1
		}
		text := s.content[start:end]
		text = bytes.TrimSuffix(text, []byte("\r"))
		result[i] = Line{Num: i + 1, Start: start, Text: string(text)}
	}
	return result
}

// Pos is a position inside a source, implements rulematch.SourcePos.
type Pos struct {
	src            *Source
	pos, line, col int
}

func NewPos(s *Source, pos int) Pos {
	line, col := s.LineCol(pos)
	return Pos{s, pos, line, col}
}

func (p Pos) Source() *Source {
	return p.src
}

func (p Pos) SourceName() string {
	if p.src == nil {
		return ""
	}
	return p.src.name
}

func (p Pos) Pos() int {
	return p.pos
}

func (p Pos) Line() int {
	return p.line
}

func (p Pos) Col() int {
	return p.col
}
