package key

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		spec string
		want Event
	}{
		{"a", NewRuneEvent('a', ModNone)},
		{"A", NewRuneEvent('A', ModShift)},
		{"@", NewRuneEvent('@', ModNone)},
		{"+", NewRuneEvent('+', ModNone)},
		{"Space", NewRuneEvent(' ', ModNone)},
		{"Enter", NewSpecialEvent(KeyEnter, ModNone)},
		{"escape", NewSpecialEvent(KeyEscape, ModNone)},
		{"PageUp", NewSpecialEvent(KeyPageUp, ModNone)},
		{"F12", NewSpecialEvent(KeyF12, ModNone)},
		{"Ctrl+Q", NewCtrlEvent('q')},
		{"ctrl+s", NewCtrlEvent('s')},
		{" Ctrl + H ", NewCtrlEvent('h')},
		{"Ctrl+Shift+P", NewRuneEvent('p', ModCtrl|ModShift)},
		{"Alt+F4", NewSpecialEvent(KeyF4, ModAlt)},
		{"<C-q>", NewCtrlEvent('q')},
		{"<A-f>", NewRuneEvent('f', ModAlt)},
		{"<CR>", NewSpecialEvent(KeyEnter, ModNone)},
		{"<Esc>", NewSpecialEvent(KeyEscape, ModNone)},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := Parse(tt.spec)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.spec, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		spec string
		want error
	}{
		{"", ErrEmptySpec},
		{"   ", ErrEmptySpec},
		{"Hyper+Q", ErrInvalidSpec},
		{"Ctrl+", ErrInvalidSpec},
		{"Ctrl+Banana", ErrInvalidSpec},
		{"<X-q>", ErrInvalidSpec},
		{"ab", ErrInvalidSpec},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			_, err := Parse(tt.spec)
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.spec, err, tt.want)
			}
		})
	}
}

func TestParseBinding(t *testing.T) {
	for _, spec := range []string{"Ctrl+Q", "<C-s>", "F1", "Alt+x", "Escape"} {
		if _, err := ParseBinding(spec); err != nil {
			t.Errorf("ParseBinding(%q) error = %v", spec, err)
		}
	}

	for _, spec := range []string{"q", "Shift+Q", "", "Ctrl+Nope"} {
		_, err := ParseBinding(spec)
		if !errors.Is(err, ErrInvalidBinding) {
			t.Errorf("ParseBinding(%q) error = %v, want ErrInvalidBinding", spec, err)
		}
	}
}

func TestParseRoundTrip(t *testing.T) {
	specs := []string{"a", "A", "Space", "Ctrl+Q", "Ctrl+Shift+P", "Alt+f", "Enter", "Alt+F4", "Left"}

	for _, spec := range specs {
		ev, err := Parse(spec)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", spec, err)
		}
		if got := ev.String(); got != spec {
			t.Errorf("Parse(%q).String() = %q", spec, got)
		}
		again, err := Parse(ev.String())
		if err != nil || again != ev {
			t.Errorf("round trip of %q gave %+v, %v", spec, again, err)
		}
	}
}
