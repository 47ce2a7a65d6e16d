package engine

import (
	"errors"
	"testing"

	"github.com/dshills/keysync/internal/input/key"
)

func TestApplyRemote(t *testing.T) {
	tests := []struct {
		name    string
		content string
		edit    Edit
		want    []string
	}{
		{"insert char", "ab", InsertEdit(1, "X"), []string{"aXb"}},
		{"insert at end", "ab", InsertEdit(2, "!"), []string{"ab!"}},
		{"insert on second line", "ab\ncd", InsertEdit(4, "Z"), []string{"ab", "cZd"}},
		{"newline splits", "HelloWorld", InsertEdit(5, "\n"), []string{"Hello", "World"}},
		{"crlf splits", "HelloWorld", InsertEdit(5, "\r\n"), []string{"Hello", "World"}},
		{"multi-line text", "ad", InsertEdit(1, "b\nc"), []string{"ab", "cd"}},
		{"delete char", "abc", DeleteEdit(1), []string{"ac"}},
		{"delete joins", "ab\ncd", DeleteEdit(2), []string{"abcd"}},
		{"delete unicode", "h😀i", DeleteEdit(1), []string{"hi"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(WithContent(tt.content))
			if err := e.ApplyRemote(tt.edit); err != nil {
				t.Fatalf("ApplyRemote(%v) error = %v", tt.edit, err)
			}
			assertLines(t, e, tt.want...)
			if !e.Modified() || e.Version() != 1 {
				t.Error("remote edit should mark the document modified")
			}
			if e.Status() != "Applied change: "+tt.edit.String() {
				t.Errorf("status = %q", e.Status())
			}
		})
	}
}

func TestApplyRemoteDeleteAtDocumentEnd(t *testing.T) {
	e := New(WithContent("Hello"))
	e.SetCursor(Point{Line: 0, Column: 5})

	if err := e.ApplyRemote(DeleteEdit(5)); err != nil {
		t.Fatalf("ApplyRemote error = %v", err)
	}
	assertLines(t, e, "Hello")
	if !e.Modified() || e.Version() != 1 {
		t.Error("a resolved delete should mark the document modified")
	}
	if e.Status() != "Applied change: "+DeleteEdit(5).String() {
		t.Errorf("status = %q", e.Status())
	}
	if e.Cursor() != (Point{Line: 0, Column: 5}) {
		t.Errorf("cursor = %v, want (0:5)", e.Cursor())
	}
}

func TestApplyRemoteCursorAfterShrink(t *testing.T) {
	e := New(WithContent("ab\ncd"))
	e.SetCursor(Point{Line: 1, Column: 2})

	for i := 0; i < 4; i++ {
		if err := e.ApplyRemote(DeleteEdit(0)); err != nil {
			t.Fatal(err)
		}
	}
	assertLines(t, e, "d")
	if e.Cursor() != (Point{Line: 0, Column: 1}) {
		t.Errorf("cursor = %v, want (0:1)", e.Cursor())
	}
}

func TestApplyRemoteRejects(t *testing.T) {
	tests := []struct {
		name string
		edit Edit
		want error
	}{
		{"beyond end", InsertEdit(6, "x"), ErrOffsetOutOfRange},
		{"delete beyond end", DeleteEdit(42), ErrOffsetOutOfRange},
		{"negative", DeleteEdit(-1), ErrInvalidEdit},
		{"empty insert", InsertEdit(0, ""), ErrInvalidEdit},
		{"zero edit", Edit{}, ErrInvalidEdit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(WithContent("Hello"))
			if err := e.ApplyRemote(tt.edit); !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
			assertLines(t, e, "Hello")
			if e.Status() != "" {
				t.Errorf("rejected edit set status %q", e.Status())
			}
		})
	}
}

func TestApplyRemoteTransformsCursor(t *testing.T) {
	tests := []struct {
		name    string
		edit    Edit
		wantCur Point
	}{
		{"insert before", InsertEdit(0, "XY"), Point{Line: 1, Column: 0}},
		{"insert at cursor", InsertEdit(5, "X"), Point{Line: 1, Column: 0}},
		{"insert after", InsertEdit(7, "X"), Point{Line: 1, Column: 0}},
		{"newline before", InsertEdit(2, "\n"), Point{Line: 2, Column: 0}},
		{"delete before", DeleteEdit(0), Point{Line: 1, Column: 0}},
		{"delete line boundary", DeleteEdit(4), Point{Line: 0, Column: 4}},
		{"delete at cursor", DeleteEdit(5), Point{Line: 1, Column: 0}},
		{"delete after", DeleteEdit(8), Point{Line: 1, Column: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Cursor sits at the start of the second line: offset 5.
			e := New(WithContent("abcd\nefgh"))
			e.SetCursor(Point{Line: 1, Column: 0})

			if err := e.ApplyRemote(tt.edit); err != nil {
				t.Fatalf("ApplyRemote error = %v", err)
			}
			if e.Cursor() != tt.wantCur {
				t.Errorf("cursor = %v, want %v", e.Cursor(), tt.wantCur)
			}
		})
	}
}

func TestApplyRemoteCursorStaysOnText(t *testing.T) {
	e := New(WithContent("hello world"))
	e.SetCursor(Point{Line: 0, Column: 6}) // before "world"

	if err := e.ApplyRemote(InsertEdit(0, ">> ")); err != nil {
		t.Fatal(err)
	}
	if e.Cursor() != (Point{Line: 0, Column: 9}) {
		t.Errorf("cursor = %v, want (0:9)", e.Cursor())
	}

	if err := e.ApplyRemote(InsertEdit(3, "a\nb")); err != nil {
		t.Fatal(err)
	}
	assertLines(t, e, ">> a", "bhello world")
	if e.Cursor() != (Point{Line: 1, Column: 7}) {
		t.Errorf("cursor = %v, want (1:7)", e.Cursor())
	}

	if err := e.ApplyRemote(DeleteEdit(4)); err != nil {
		t.Fatal(err)
	}
	assertLines(t, e, ">> abhello world")
	if e.Cursor() != (Point{Line: 0, Column: 11}) {
		t.Errorf("cursor = %v, want (0:11)", e.Cursor())
	}
}

func TestApplyRemoteDeletesBeforeCursor(t *testing.T) {
	e := New(WithContent("ab\ncd"))
	e.SetCursor(Point{Line: 1, Column: 2})

	for i := 0; i < 3; i++ {
		if err := e.ApplyRemote(DeleteEdit(0)); err != nil {
			t.Fatal(err)
		}
	}
	assertLines(t, e, "cd")
	if e.Cursor() != (Point{Line: 0, Column: 2}) {
		t.Errorf("cursor = %v, want (0:2)", e.Cursor())
	}
}

func TestConcurrentLocalAndRemoteInsert(t *testing.T) {
	localFirst := New(WithContent("ab"))
	localFirst.HandleKey(key.NewRuneEvent('X', key.ModShift))
	if err := localFirst.ApplyRemote(InsertEdit(0, "Y")); err != nil {
		t.Fatal(err)
	}

	remoteFirst := New(WithContent("ab"))
	if err := remoteFirst.ApplyRemote(InsertEdit(0, "Y")); err != nil {
		t.Fatal(err)
	}
	remoteFirst.HandleKey(key.NewRuneEvent('X', key.ModShift))

	if got := localFirst.Text(); got != "YXab" {
		t.Errorf("local first = %q, want YXab", got)
	}
	if got := remoteFirst.Text(); got != "XYab" {
		t.Errorf("remote first = %q, want XYab", got)
	}
	// The local cursor ends just after X either way.
	if got := localFirst.Cursor(); got != (Point{Line: 0, Column: 2}) {
		t.Errorf("local first cursor = %v, want (0:2)", got)
	}
	if got := remoteFirst.Cursor(); got != (Point{Line: 0, Column: 1}) {
		t.Errorf("remote first cursor = %v, want (0:1)", got)
	}
}
