package view

// ScrollableRegion tracks which buffer line is at the top of the viewport.
type ScrollableRegion struct {
	lineOffset int
	height     int
}

// NewScrollableRegion returns a region scrolled to the top.
func NewScrollableRegion(height int) *ScrollableRegion {
	return &ScrollableRegion{height: max(height, 1)}
}

func (r *ScrollableRegion) LineOffset() int { return r.lineOffset }
func (r *ScrollableRegion) Height() int     { return r.height }

func (r *ScrollableRegion) SetHeight(h int) { r.height = max(h, 1) }

// SetLineOffset restores a remembered offset.
func (r *ScrollableRegion) SetLineOffset(offset int) { r.lineOffset = max(offset, 0) }

// ScrollIntoView moves the offset the least amount needed for line to be
// visible.
func (r *ScrollableRegion) ScrollIntoView(line int) {
	if line < r.lineOffset {
		r.lineOffset = line
	} else if line >= r.lineOffset+r.height {
		r.lineOffset = line - r.height + 1
	}
}

// ScrollToCenter puts line in the middle of the viewport when possible.
func (r *ScrollableRegion) ScrollToCenter(line int) {
	r.lineOffset = max(line-r.height/2, 0)
}

// ScrollDown moves down by amount, never past half a screen beyond the last
// of lineCount lines.
func (r *ScrollableRegion) ScrollDown(amount, lineCount int) {
	limit := max(lineCount-(r.lineOffset+r.height/2), 0)
	r.lineOffset += min(amount, limit)
}

// ScrollUp moves up by amount, stopping at the first line.
func (r *ScrollableRegion) ScrollUp(amount int) {
	r.lineOffset = max(r.lineOffset-amount, 0)
}

// Visible reports whether line falls inside the viewport.
func (r *ScrollableRegion) Visible(line int) bool {
	return line >= r.lineOffset && line < r.lineOffset+r.height
}
