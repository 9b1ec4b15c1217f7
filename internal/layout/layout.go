// Package layout computes the pixel geometry of a contact sheet: the header
// block, the thumbnail cells and the final canvas dimensions.
package layout

import "image"

// TextLineSpacing is the fixed vertical gap between header text lines.
const TextLineSpacing = 2

// Sheet describes the computed geometry of one contact sheet.
type Sheet struct {
	// HeaderHeight is the pixel height of the header block, zero when
	// headers are disabled.
	HeaderHeight int
	// ThumbWidth and ThumbHeight are the dimensions of one grid cell.
	ThumbWidth  int
	ThumbHeight int
	// Columns and Rows is the grid shape the sheet was computed for.
	Columns int
	Rows    int
	// Spacing is the gap between and around cells.
	Spacing int
	// Width and Height are the final canvas dimensions. Width is
	// recomputed from the floored thumbnail width, so it never exceeds
	// the requested sheet width.
	Width  int
	Height int
}

// Compute derives the sheet geometry from the requested width, the grid
// shape, the video aspect ratio and the measured pixel heights of the header
// lines. headerLineHeights must be empty when headers are disabled.
func Compute(requestedWidth, columns, rows, spacing int, aspect float64, headerLineHeights []int) Sheet {
	headerHeight := 0
	if len(headerLineHeights) > 0 {
		headerHeight = spacing
		for i, h := range headerLineHeights {
			if i > 0 {
				headerHeight += TextLineSpacing
			}
			headerHeight += h
		}
	}

	// The actual sheet may end up a few pixels narrower than requested
	// because cell widths are rounded down to integer pixels.
	thumbWidth := (requestedWidth - spacing*(columns+1)) / columns
	thumbHeight := int(float64(thumbWidth) / aspect)

	width := thumbWidth*columns + spacing*(columns+1)
	height := headerHeight + thumbHeight*rows + spacing*(rows+1)

	return Sheet{
		HeaderHeight: headerHeight,
		ThumbWidth:   thumbWidth,
		ThumbHeight:  thumbHeight,
		Columns:      columns,
		Rows:         rows,
		Spacing:      spacing,
		Width:        width,
		Height:       height,
	}
}

// Cell returns the top-left pixel of the grid cell at (row, column), in
// row-major order starting below the header.
func (s Sheet) Cell(row, column int) image.Point {
	x := column*s.ThumbWidth + (column+1)*s.Spacing
	y := s.HeaderHeight + row*s.ThumbHeight + (row+1)*s.Spacing
	return image.Pt(x, y)
}

// CellAt returns the top-left pixel of the i-th cell in row-major order.
func (s Sheet) CellAt(i int) image.Point {
	return s.Cell(i/s.Columns, i%s.Columns)
}
