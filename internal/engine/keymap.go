package engine

import (
	"fmt"

	"github.com/dshills/keysync/internal/input/key"
)

// Keymap holds the command bindings. Every other key is handled by the
// fixed editing table in HandleKey.
type Keymap struct {
	Quit key.Event
	Save key.Event
	Help key.Event
}

// DefaultKeymap returns Ctrl+Q, Ctrl+S and Ctrl+H.
func DefaultKeymap() Keymap {
	return Keymap{
		Quit: key.NewCtrlEvent('q'),
		Save: key.NewCtrlEvent('s'),
		Help: key.NewCtrlEvent('h'),
	}
}

// StartupHint is the status message shown when the editor opens.
func (k Keymap) StartupHint() string {
	return fmt.Sprintf("Press %s to quit, %s to save, %s for help", k.Quit, k.Save, k.Help)
}

// HelpText is the default message shown by the help binding.
func (k Keymap) HelpText() string {
	return fmt.Sprintf("%s: Quit | %s: Save | Arrow keys: Navigate | Enter: New line", k.Quit, k.Save)
}

// UnsavedWarning is shown by the first quit while the document is modified.
func (k Keymap) UnsavedWarning() string {
	return fmt.Sprintf("File has unsaved changes! Press %s again to quit.", k.Quit)
}
