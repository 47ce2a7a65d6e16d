package collab

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/keysync/internal/engine"
	"github.com/dshills/keysync/internal/engine/buffer"
)

// ErrMalformedPatch is returned for frames that are not a valid patch.
var ErrMalformedPatch = errors.New("malformed patch")

// Patch is the wire representation of one edit.
type Patch struct {
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// IsDelete reports whether the patch is a deletion.
func (p Patch) IsDelete() bool {
	return p.Text == ""
}

// String returns the JSON form, or a placeholder if encoding fails.
func (p Patch) String() string {
	b, err := p.MarshalJSON()
	if err != nil {
		return "<invalid patch>"
	}
	return string(b)
}

// EncodeEdit converts a local edit into its wire form. Both kinds span one
// character starting at the edit offset.
func EncodeEdit(e engine.Edit) Patch {
	p := Patch{Start: e.At, End: e.At + 1}
	if e.Kind == engine.EditInsert {
		p.Text = e.Text
	}
	return p
}

// DecodeEdit converts a wire patch into an edit. CRLF in inserted text is
// normalized to LF. Only Start is used; a deletion always removes exactly
// one character.
func DecodeEdit(p Patch) engine.Edit {
	if p.IsDelete() {
		return engine.DeleteEdit(p.Start)
	}
	return engine.InsertEdit(p.Start, buffer.NormalizeLineEndings(p.Text))
}

// MarshalJSON encodes the patch with fields in text, start, end order.
func (p Patch) MarshalJSON() ([]byte, error) {
	b := []byte(`{}`)
	var err error
	if b, err = sjson.SetBytes(b, "text", p.Text); err != nil {
		return nil, fmt.Errorf("encode text: %w", err)
	}
	if b, err = sjson.SetBytes(b, "start", p.Start); err != nil {
		return nil, fmt.Errorf("encode start: %w", err)
	}
	if b, err = sjson.SetBytes(b, "end", p.End); err != nil {
		return nil, fmt.Errorf("encode end: %w", err)
	}
	return b, nil
}

// DecodePatch parses one frame. The frame must be a JSON object with a
// string "text" and non-negative integer "start" and "end". Unknown fields
// are ignored.
func DecodePatch(data []byte) (Patch, error) {
	if !gjson.ValidBytes(data) {
		return Patch{}, fmt.Errorf("%w: invalid JSON", ErrMalformedPatch)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return Patch{}, fmt.Errorf("%w: not an object", ErrMalformedPatch)
	}

	text := root.Get("text")
	if text.Type != gjson.String {
		return Patch{}, fmt.Errorf("%w: text must be a string", ErrMalformedPatch)
	}
	start, err := offsetField(root, "start")
	if err != nil {
		return Patch{}, err
	}
	end, err := offsetField(root, "end")
	if err != nil {
		return Patch{}, err
	}

	return Patch{Text: text.String(), Start: start, End: end}, nil
}

func offsetField(root gjson.Result, name string) (int, error) {
	v := root.Get(name)
	if v.Type != gjson.Number {
		return 0, fmt.Errorf("%w: %s must be a number", ErrMalformedPatch, name)
	}
	// Plain digits only, so 5.0 and 1e2 are rejected.
	if strings.Trim(v.Raw, "0123456789") != "" {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer, got %s", ErrMalformedPatch, name, v.Raw)
	}
	f := v.Float()
	if f > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %s out of range, got %s", ErrMalformedPatch, name, v.Raw)
	}
	return int(f), nil
}
