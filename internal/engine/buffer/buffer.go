package buffer

import (
	"slices"
	"strings"
)

// Buffer is an ordered sequence of lines. Each line is stored as a rune
// slice so that columns count characters rather than bytes.
//
// A Buffer always holds at least one line; an empty document is a single
// empty line. Lines never contain a newline character.
//
// Buffer is not safe for concurrent use. The owning document serializes
// access to it.
type Buffer struct {
	lines [][]rune
}

// New creates an empty buffer holding one empty line.
func New() *Buffer {
	return &Buffer{lines: [][]rune{{}}}
}

// NewFromString creates a buffer from flat text. CRLF and CR line endings
// are normalized to LF before splitting.
func NewFromString(s string) *Buffer {
	parts := strings.Split(NormalizeLineEndings(s), "\n")
	lines := make([][]rune, len(parts))
	for i, p := range parts {
		lines[i] = []rune(p)
	}
	return &Buffer{lines: lines}
}

// NewFromLines creates a buffer from a line slice. A nil or empty slice
// yields the empty document.
func NewFromLines(src []string) *Buffer {
	if len(src) == 0 {
		return New()
	}
	lines := make([][]rune, len(src))
	for i, s := range src {
		lines[i] = []rune(s)
	}
	return &Buffer{lines: lines}
}

// NormalizeLineEndings converts CRLF and lone CR to LF.
func NormalizeLineEndings(s string) string {
	if !strings.Contains(s, "\r") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// Read Operations

// LineCount returns the number of lines. It is always at least 1.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Line returns the text of line i, or "" if i is out of range.
func (b *Buffer) Line(i int) string {
	if i < 0 || i >= len(b.lines) {
		return ""
	}
	return string(b.lines[i])
}

// LineLen returns the length of line i in characters, or 0 if out of range.
func (b *Buffer) LineLen(i int) int {
	if i < 0 || i >= len(b.lines) {
		return 0
	}
	return len(b.lines[i])
}

// Lines returns a copy of every line as a string.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	for i, l := range b.lines {
		out[i] = string(l)
	}
	return out
}

// Text returns the whole document with lines joined by "\n".
func (b *Buffer) Text() string {
	var sb strings.Builder
	for i, l := range b.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(l))
	}
	return sb.String()
}

// TotalLength returns the document length in characters, counting one
// separator per line boundary.
func (b *Buffer) TotalLength() Offset {
	n := len(b.lines) - 1
	for _, l := range b.lines {
		n += len(l)
	}
	return n
}

// Write Operations
//
// Callers must pass points inside the document; a column beyond the line
// length is a contract violation and panics.

// Insert inserts r at p. If p.Line equals LineCount a new empty line is
// appended first.
func (b *Buffer) Insert(p Point, r rune) {
	b.ensureLine(p.Line)
	b.lines[p.Line] = slices.Insert(b.lines[p.Line], p.Column, r)
}

// InsertText inserts text at p in a single operation and returns the point
// just after the inserted text. Newlines in text split the line.
func (b *Buffer) InsertText(p Point, text string) Point {
	b.ensureLine(p.Line)
	parts := strings.Split(NormalizeLineEndings(text), "\n")
	line := b.lines[p.Line]

	if len(parts) == 1 {
		ins := []rune(parts[0])
		b.lines[p.Line] = slices.Insert(line, p.Column, ins...)
		return Point{Line: p.Line, Column: p.Column + len(ins)}
	}

	head := slices.Clone(line[:p.Column])
	tail := line[p.Column:]

	added := make([][]rune, len(parts))
	added[0] = append(head, []rune(parts[0])...)
	for i := 1; i < len(parts)-1; i++ {
		added[i] = []rune(parts[i])
	}
	last := []rune(parts[len(parts)-1])
	end := Point{Line: p.Line + len(parts) - 1, Column: len(last)}
	added[len(parts)-1] = append(last, tail...)

	b.lines = slices.Replace(b.lines, p.Line, p.Line+1, added...)
	return end
}

// InsertLineBreak splits the line at p into two lines.
func (b *Buffer) InsertLineBreak(p Point) {
	b.ensureLine(p.Line)
	line := b.lines[p.Line]
	tail := slices.Clone(line[p.Column:])
	b.lines[p.Line] = line[:p.Column:p.Column]
	b.lines = slices.Insert(b.lines, p.Line+1, tail)
}

// DeleteBefore removes the character before p. At column 0 of a line other
// than the first, the line is joined onto the previous one. It returns the
// point where the deletion happened, and false if p is the document start.
func (b *Buffer) DeleteBefore(p Point) (Point, bool) {
	if p.Column > 0 {
		b.lines[p.Line] = slices.Delete(b.lines[p.Line], p.Column-1, p.Column)
		return Point{Line: p.Line, Column: p.Column - 1}, true
	}
	if p.Line == 0 {
		return p, false
	}
	prev := p.Line - 1
	join := Point{Line: prev, Column: len(b.lines[prev])}
	b.JoinWithNext(prev)
	return join, true
}

// DeleteAt removes the character at p. At the end of a line the next line
// is joined onto it. It returns false if there was nothing to delete.
func (b *Buffer) DeleteAt(p Point) bool {
	if p.Line < 0 || p.Line >= len(b.lines) {
		return false
	}
	if p.Column < len(b.lines[p.Line]) {
		b.lines[p.Line] = slices.Delete(b.lines[p.Line], p.Column, p.Column+1)
		return true
	}
	return b.JoinWithNext(p.Line)
}

// JoinWithNext appends line+1 onto line and removes it. It returns false if
// there is no next line.
func (b *Buffer) JoinWithNext(line int) bool {
	if line < 0 || line >= len(b.lines)-1 {
		return false
	}
	b.lines[line] = append(b.lines[line], b.lines[line+1]...)
	b.lines = slices.Delete(b.lines, line+1, line+2)
	return true
}

func (b *Buffer) ensureLine(line int) {
	if line == len(b.lines) {
		b.lines = append(b.lines, []rune{})
	}
}
