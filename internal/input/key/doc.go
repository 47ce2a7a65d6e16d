// Package key defines the abstract key events the editor consumes and the
// parser for key binding strings.
//
// Backends translate their native events into Event values:
//
//   - printable characters: {KeyRune, 'a', ModNone}
//   - control combinations: {KeyRune, 'q', ModCtrl}
//   - named keys: {KeyEnter}, {KeyBackspace}, {KeyLeft}, ...
//
// Bindings in configuration are written as "Ctrl+Q", "Alt+F4" or "<C-q>"
// and parsed with ParseBinding.
package key
