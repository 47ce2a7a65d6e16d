package buffer

import (
	"slices"
	"testing"
)

func assertLines(t *testing.T, b *Buffer, want ...string) {
	t.Helper()
	if got := b.Lines(); !slices.Equal(got, want) {
		t.Errorf("lines = %q, want %q", got, want)
	}
}

func TestNewBuffer(t *testing.T) {
	b := New()

	if b.TotalLength() != 0 {
		t.Errorf("expected length 0, got %d", b.TotalLength())
	}

	if b.LineCount() != 1 {
		t.Errorf("expected 1 line, got %d", b.LineCount())
	}
}

func TestNewBufferFromStringMultiline(t *testing.T) {
	b := NewFromString("line1\nline2\nline3")

	if b.LineCount() != 3 {
		t.Errorf("expected 3 lines, got %d", b.LineCount())
	}
	assertLines(t, b, "line1", "line2", "line3")

	if b.Text() != "line1\nline2\nline3" {
		t.Errorf("unexpected text %q", b.Text())
	}
}

func TestNewBufferFromStringKeepsTrailingEmptyLine(t *testing.T) {
	b := NewFromString("a\n")
	assertLines(t, b, "a", "")
	if b.Text() != "a\n" {
		t.Errorf("expected %q, got %q", "a\n", b.Text())
	}
}

func TestBufferLineEndingNormalization(t *testing.T) {
	b := NewFromString("a\r\nb\rc")
	assertLines(t, b, "a", "b", "c")
}

func TestNewFromLinesEmpty(t *testing.T) {
	b := NewFromLines(nil)
	assertLines(t, b, "")
}

func TestBufferInsert(t *testing.T) {
	b := NewFromString("Hllo")

	b.Insert(Point{Line: 0, Column: 1}, 'e')
	assertLines(t, b, "Hello")

	b.Insert(Point{Line: 0, Column: 5}, '!')
	assertLines(t, b, "Hello!")
}

func TestBufferInsertAppendsLine(t *testing.T) {
	b := NewFromString("a")

	b.Insert(Point{Line: 1, Column: 0}, 'b')
	assertLines(t, b, "a", "b")
}

func TestBufferInsertMultiByte(t *testing.T) {
	b := NewFromString("héllo")

	b.Insert(Point{Line: 0, Column: 2}, 'ß')
	assertLines(t, b, "héßllo")

	if b.LineLen(0) != 6 {
		t.Errorf("expected 6 characters, got %d", b.LineLen(0))
	}
}

func TestBufferInsertText(t *testing.T) {
	tests := []struct {
		name    string
		initial string
		at      Point
		text    string
		want    []string
		wantEnd Point
	}{
		{"single line", "Hello", Point{0, 5}, " World", []string{"Hello World"}, Point{0, 11}},
		{"middle", "ad", Point{0, 1}, "bc", []string{"abcd"}, Point{0, 3}},
		{"with newline", "abcd", Point{0, 2}, "X\nY", []string{"abX", "Ycd"}, Point{1, 1}},
		{"trailing newline", "abcd", Point{0, 2}, "X\n", []string{"abX", "cd"}, Point{1, 0}},
		{"crlf", "ab", Point{0, 1}, "1\r\n2\r\n3", []string{"a1", "2", "3b"}, Point{2, 1}},
		{"second line", "x\nyz", Point{1, 1}, "é", []string{"x", "yéz"}, Point{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewFromString(tt.initial)
			end := b.InsertText(tt.at, tt.text)
			assertLines(t, b, tt.want...)
			if end != tt.wantEnd {
				t.Errorf("end = %v, want %v", end, tt.wantEnd)
			}
		})
	}
}

func TestBufferInsertLineBreak(t *testing.T) {
	b := NewFromString("Hello World")

	b.InsertLineBreak(Point{Line: 0, Column: 5})
	assertLines(t, b, "Hello", " World")

	b.InsertLineBreak(Point{Line: 1, Column: 6})
	assertLines(t, b, "Hello", " World", "")

	b.InsertLineBreak(Point{Line: 0, Column: 0})
	assertLines(t, b, "", "Hello", " World", "")
}

func TestBufferInsertLineBreakDoesNotAlias(t *testing.T) {
	b := NewFromString("abcdef")

	b.InsertLineBreak(Point{Line: 0, Column: 3})
	b.Insert(Point{Line: 0, Column: 3}, 'X')
	assertLines(t, b, "abcX", "def")
}

func TestBufferDeleteBefore(t *testing.T) {
	b := NewFromString("ab\ncd")

	p, ok := b.DeleteBefore(Point{Line: 0, Column: 2})
	if !ok || p != (Point{Line: 0, Column: 1}) {
		t.Errorf("DeleteBefore = %v, %v", p, ok)
	}
	assertLines(t, b, "a", "cd")

	p, ok = b.DeleteBefore(Point{Line: 1, Column: 0})
	if !ok || p != (Point{Line: 0, Column: 1}) {
		t.Errorf("DeleteBefore at line start = %v, %v", p, ok)
	}
	assertLines(t, b, "acd")
}

func TestBufferDeleteBeforeAtStart(t *testing.T) {
	b := NewFromString("abc")

	p, ok := b.DeleteBefore(Point{})
	if ok {
		t.Error("expected no deletion at document start")
	}
	if p != (Point{}) {
		t.Errorf("expected (0:0), got %v", p)
	}
	assertLines(t, b, "abc")
}

func TestBufferDeleteAt(t *testing.T) {
	b := NewFromString("abc\nde")

	if !b.DeleteAt(Point{Line: 0, Column: 1}) {
		t.Fatal("expected deletion")
	}
	assertLines(t, b, "ac", "de")

	if !b.DeleteAt(Point{Line: 0, Column: 2}) {
		t.Fatal("expected join")
	}
	assertLines(t, b, "acde")

	if b.DeleteAt(Point{Line: 0, Column: 4}) {
		t.Error("expected nothing to delete at document end")
	}
	assertLines(t, b, "acde")
}

func TestBufferJoinWithNext(t *testing.T) {
	b := NewFromString("a\nb\nc")

	if !b.JoinWithNext(1) {
		t.Fatal("expected join")
	}
	assertLines(t, b, "a", "bc")

	if b.JoinWithNext(1) {
		t.Error("last line has no next line")
	}
	if b.JoinWithNext(-1) {
		t.Error("negative line should not join")
	}
}

func TestBufferInsertDeleteInverse(t *testing.T) {
	docs := []string{"", "abc", "Hello\nWorld", "héllo\n😀x\n"}

	for _, doc := range docs {
		orig := NewFromString(doc)
		for line := 0; line < orig.LineCount(); line++ {
			for col := 0; col <= orig.LineLen(line); col++ {
				b := NewFromString(doc)
				b.Insert(Point{Line: line, Column: col}, 'Z')
				if _, ok := b.DeleteBefore(Point{Line: line, Column: col + 1}); !ok {
					t.Fatalf("%q: DeleteBefore failed at (%d:%d)", doc, line, col)
				}
				if b.Text() != orig.Text() {
					t.Errorf("%q: insert/delete at (%d:%d) gave %q", doc, line, col, b.Text())
				}
			}
		}
	}
}

func TestBufferLineJoinInvariant(t *testing.T) {
	old := []string{"first", "sécond", "", "fourth"}

	for i := 1; i < len(old); i++ {
		b := NewFromLines(old)
		if _, ok := b.DeleteBefore(Point{Line: i, Column: 0}); !ok {
			t.Fatalf("DeleteBefore at line %d failed", i)
		}
		if b.LineCount() != len(old)-1 {
			t.Errorf("line %d: expected %d lines, got %d", i, len(old)-1, b.LineCount())
		}
		if got := b.Line(i - 1); got != old[i-1]+old[i] {
			t.Errorf("line %d: joined line = %q, want %q", i, got, old[i-1]+old[i])
		}
	}
}

func TestBufferLineOutOfRange(t *testing.T) {
	b := NewFromString("abc")

	if b.Line(5) != "" || b.LineLen(-1) != 0 {
		t.Error("out-of-range lines should be empty")
	}
}
