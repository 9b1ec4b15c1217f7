// Package render composes the contact sheet image: background, header text,
// resized preview frames and timestamp overlays.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"io"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/ZacxDev/video-thumbnailer/internal/layout"
)

const (
	// Margin between a timestamp overlay and the cell edges.
	timestampMargin = 2
	// Offset of the timestamp drop shadow.
	timestampShadowOffset = 1
)

// Canvas is the mutable contact sheet image under construction. It is owned
// by the renderer for the duration of one file and handed out via Image once
// composition is complete.
type Canvas struct {
	img   *image.RGBA
	sheet layout.Sheet
}

// NewCanvas allocates a canvas sized per the sheet geometry and fills it
// with the background color.
func NewCanvas(sheet layout.Sheet, background color.Color) *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, sheet.Width, sheet.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
	return &Canvas{img: img, sheet: sheet}
}

// Image returns the composed image.
func (c *Canvas) Image() image.Image { return c.img }

// DrawHeader renders the header lines top-down, left-aligned with the grid
// spacing as left and top margin.
func (c *Canvas) DrawHeader(lines []string, face font.Face, col color.Color) {
	x := c.sheet.Spacing
	y := c.sheet.Spacing
	lineHeight := LineHeight(face)
	for i, line := range lines {
		if i > 0 {
			y += lineHeight + layout.TextLineSpacing
		}
		c.drawText(line, x, y, face, col)
	}
}

// PasteFrame resizes a decoded frame to fit within the cell at the given
// origin, preserving its aspect ratio, and pastes it anchored at the cell's
// top-left corner.
func (c *Canvas) PasteFrame(frame image.Image, cell image.Point) {
	w, h := fitWithin(frame.Bounds().Dx(), frame.Bounds().Dy(), c.sheet.ThumbWidth, c.sheet.ThumbHeight)
	dst := image.Rect(cell.X, cell.Y, cell.X+w, cell.Y+h)
	xdraw.CatmullRom.Scale(c.img, dst, frame, frame.Bounds(), draw.Src, nil)
}

// DrawTimestamp renders a formatted timestamp right- and bottom-aligned
// within the cell at the given origin. When shadow is non-nil, a copy offset
// by one pixel is drawn first.
func (c *Canvas) DrawTimestamp(text string, cell image.Point, face font.Face, col color.Color, shadow color.Color) {
	w := TextWidth(face, text)
	h := LineHeight(face)
	x := cell.X + c.sheet.ThumbWidth - w - timestampMargin
	y := cell.Y + c.sheet.ThumbHeight - h - timestampMargin - timestampShadowOffset

	if shadow != nil {
		c.drawText(text, x+timestampShadowOffset, y+timestampShadowOffset, face, shadow)
	}
	c.drawText(text, x, y, face, col)
}

// EncodeJPEG writes the composed image as a JPEG at the given quality.
func (c *Canvas) EncodeJPEG(w io.Writer, quality int) error {
	return jpeg.Encode(w, c.img, &jpeg.Options{Quality: quality})
}

// drawText renders one line of text with its top-left corner at (x, y).
func (c *Canvas) drawText(text string, x, y int, face font.Face, col color.Color) {
	d := font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)
}

// fitWithin scales (w, h) down to fit inside (maxW, maxH) preserving the
// aspect ratio.
func fitWithin(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 {
		return maxW, maxH
	}
	scaledH := h * maxW / w
	if scaledH <= maxH {
		return maxW, scaledH
	}
	return w * maxH / h, maxH
}
