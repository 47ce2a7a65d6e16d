package key

import (
	"fmt"
	"unicode"
)

// Event is a single key press as delivered by the terminal backend.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events. For control combinations
	// it holds the lowercase letter, so Ctrl+Q is {KeyRune, 'q', ModCtrl}.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// NewCtrlEvent creates the event for Ctrl plus a letter.
func NewCtrlEvent(letter rune) Event {
	return NewRuneEvent(unicode.ToLower(letter), ModCtrl)
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar returns true if the event inserts a printable character.
// Shift alone does not disqualify a character; Ctrl, Alt and Meta do.
func (e Event) IsChar() bool {
	return e.IsRune() &&
		e.Modifiers&(ModCtrl|ModAlt|ModMeta) == 0 &&
		unicode.IsPrint(e.Rune)
}

// IsCtrl returns true for a Ctrl+character combination.
func (e Event) IsCtrl() bool {
	return e.IsRune() && e.Modifiers.HasCtrl()
}

// CtrlCode returns the ASCII control code for a Ctrl+letter event
// (Ctrl+A is 1, Ctrl+Z is 26), or the rune itself for anything else.
func (e Event) CtrlCode() int {
	r := unicode.ToLower(e.Rune)
	if e.IsCtrl() && r >= 'a' && r <= 'z' {
		return int(r-'a') + 1
	}
	return int(e.Rune)
}

// Matches reports whether e is the same key press as binding.
// Rune comparison ignores case when Ctrl is held, since terminals do
// not report Shift reliably for control combinations.
func (e Event) Matches(binding Event) bool {
	if e.Key != binding.Key {
		return false
	}
	if e.Key != KeyRune {
		return e.Modifiers == binding.Modifiers
	}
	if e.Modifiers.HasCtrl() && binding.Modifiers.HasCtrl() {
		return unicode.ToLower(e.Rune) == unicode.ToLower(binding.Rune) &&
			e.Modifiers.Without(ModShift) == binding.Modifiers.Without(ModShift)
	}
	return e.Rune == binding.Rune && e.Modifiers == binding.Modifiers
}

// String returns a canonical representation such as "Ctrl+Q", "Enter"
// or "a". The result parses back to an equal event.
func (e Event) String() string {
	var name string
	switch {
	case e.Key == KeyRune && e.Modifiers.HasCtrl():
		name = string(unicode.ToUpper(e.Rune))
	case e.Key == KeyRune && e.Rune == ' ':
		name = "Space"
	case e.Key == KeyRune:
		name = string(e.Rune)
	default:
		name = e.Key.String()
	}

	mods := e.Modifiers
	if e.Key == KeyRune && !mods.HasCtrl() {
		mods = mods.Without(ModShift)
	}
	if mods == ModNone {
		return name
	}
	return fmt.Sprintf("%s+%s", mods, name)
}
