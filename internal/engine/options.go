package engine

import (
	"github.com/dshills/keysync/internal/engine/buffer"
	"github.com/dshills/keysync/internal/engine/cursor"
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithContent sets the initial content from flat text.
func WithContent(content string) Option {
	return func(e *Engine) {
		e.buf = buffer.NewFromString(content)
	}
}

// WithLines sets the initial content from a line slice, as produced by
// loading a file.
func WithLines(lines []string) Option {
	return func(e *Engine) {
		e.buf = buffer.NewFromLines(lines)
	}
}

// WithKeymap sets the command bindings.
func WithKeymap(k Keymap) Option {
	return func(e *Engine) {
		e.keymap = k
	}
}

// WithHelpText overrides the message shown by the help binding.
func WithHelpText(text string) Option {
	return func(e *Engine) {
		if text != "" {
			e.helpText = text
		}
	}
}

// WithViewport sets the number of text rows and columns on screen.
func WithViewport(rows, cols int) Option {
	return func(e *Engine) {
		e.view = cursor.NewViewport(rows, cols)
	}
}
