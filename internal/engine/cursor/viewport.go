package cursor

// Default viewport size, used when the terminal size cannot be detected.
const (
	DefaultRows = 24
	DefaultCols = 80
)

// Viewport is the visible window of rows and columns into the document.
// Top and Left are the first visible line and column.
type Viewport struct {
	Top  int
	Left int
	Rows int
	Cols int
}

// NewViewport creates a viewport of the given size scrolled to the origin.
// Non-positive dimensions are replaced with 1.
func NewViewport(rows, cols int) Viewport {
	return Viewport{Rows: max(rows, 1), Cols: max(cols, 1)}
}

// Resize changes the visible size without scrolling.
func (v *Viewport) Resize(rows, cols int) {
	v.Rows = max(rows, 1)
	v.Cols = max(cols, 1)
}

// Scroll adjusts Top and Left by the minimal amount that keeps p visible.
func (v *Viewport) Scroll(p Point) {
	rows, cols := max(v.Rows, 1), max(v.Cols, 1)

	if p.Line < v.Top {
		v.Top = p.Line
	}
	if p.Line >= v.Top+rows {
		v.Top = p.Line - rows + 1
	}
	if p.Column < v.Left {
		v.Left = p.Column
	}
	if p.Column >= v.Left+cols {
		v.Left = p.Column - cols + 1
	}
}
