package sink

import "math"

// pageCursor tracks where the next label lands within a paged document.
// Placement is a greedy flow in reading order: top-to-bottom within a
// column, then left-to-right across columns, then a fresh page. There is no
// reordering for density.
//
// All extents are in millimeters.
type pageCursor struct {
	margin float64
	gap    float64

	labelW, labelH float64

	perColumn int // labels per column
	columns   int // columns per page

	col, row int
}

// newPageCursor sizes the flow grid. A page fits
// floor((pageH-margin)/(labelH+gap)) labels per column and
// floor((pageW-margin)/(labelW+gap)) columns.
func newPageCursor(pageW, pageH, margin, gap, labelW, labelH float64) *pageCursor {
	perColumn := int(math.Floor((pageH - margin) / (labelH + gap)))
	columns := int(math.Floor((pageW - margin) / (labelW + gap)))
	if perColumn < 1 {
		perColumn = 1
	}
	if columns < 1 {
		columns = 1
	}
	return &pageCursor{
		margin: margin, gap: gap,
		labelW: labelW, labelH: labelH,
		perColumn: perColumn, columns: columns,
	}
}

// next returns the top-left position for the next label and whether the
// cursor wrapped onto a new page. On a page wrap the cursor resets to the
// page's top-left margin.
func (c *pageCursor) next() (x, y float64, newPage bool) {
	if c.row == c.perColumn {
		c.row = 0
		c.col++
	}
	if c.col == c.columns {
		c.col = 0
		newPage = true
	}

	x = c.margin + float64(c.col)*(c.labelW+c.gap)
	y = c.margin + float64(c.row)*(c.labelH+c.gap)
	c.row++
	return x, y, newPage
}
