package app

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/dshills/keysync/internal/engine/buffer"
)

// LoadFile reads path as lines split on "\n". A missing file loads as a
// single empty line so a new file can be created by saving. Other read
// errors also yield an empty document, with a *FileError to report.
func LoadFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{""}, nil
		}
		return []string{""}, &FileError{Op: "open", Path: path, Err: err}
	}
	return SplitLines(string(data)), nil
}

// SplitLines splits text into lines. CRLF and lone CR count as line
// breaks. The result always has at least one line.
func SplitLines(text string) []string {
	return strings.Split(buffer.NormalizeLineEndings(text), "\n")
}

// SaveFile writes text to path.
func SaveFile(path, text string) error {
	if path == "" {
		return &FileError{Op: "save", Err: ErrNoFilePath}
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return &FileError{Op: "save", Path: path, Err: err}
	}
	return nil
}
