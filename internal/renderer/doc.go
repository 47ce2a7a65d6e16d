// Package renderer draws the editor screen.
//
// The screen is split into three regions:
//
//	┌───────────────────────────────┐
//	│ text rows (height - 2)        │  document lines, "~" past the end
//	├───────────────────────────────┤
//	│ status bar (reverse video)    │  "<name> - N lines (modified)"
//	│ message line                  │  last status message
//	└───────────────────────────────┘
//
// Rendering works from a Snapshot so the document lock is never held
// while drawing. Cell widths come from Unicode segmentation rules, so wide
// characters take two cells and the cursor lands on the right cell.
//
// Usage:
//
//	b, _ := backend.NewTerminal()
//	r := renderer.New(b, renderer.DefaultOptions())
//	r.Render(doc.Snapshot())
package renderer
