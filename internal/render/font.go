package render

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

// FontSpec selects either the built-in bitmap font or an external TrueType
// font loaded from disk. The zero value selects the built-in font.
type FontSpec struct {
	// Path of a TrueType/OpenType font file. Empty selects the built-in
	// font and Size is ignored.
	Path string
	// Size in points, used only with an external font.
	Size float64
}

// Builtin reports whether the spec selects the built-in font.
func (s FontSpec) Builtin() bool { return s.Path == "" }

// Resolve loads the font once into a measurement and drawing capability.
func (s FontSpec) Resolve() (font.Face, error) {
	if s.Builtin() {
		return basicfont.Face7x13, nil
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "read font %s", s.Path)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parse font %s", s.Path)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    s.Size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "load font %s", s.Path)
	}
	return face, nil
}

// LineHeight returns the pixel height of one text line in the face.
func LineHeight(face font.Face) int {
	m := face.Metrics()
	return (m.Ascent + m.Descent).Ceil()
}

// TextWidth returns the advance width of s in pixels.
func TextWidth(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}
