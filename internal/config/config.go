// Package config holds the fully resolved parameter set that drives contact
// sheet generation, plus loading of the optional user configuration file.
package config

import (
	"image/color"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/ZacxDev/video-thumbnailer/internal/render"
)

// ConfigFileName is the per-user configuration file looked up in the home
// directory.
const ConfigFileName = ".videothumbnailer.conf"

// videoExtensions are the file extensions recognized as video files,
// matched case-insensitively.
var videoExtensions = []string{
	".avi", ".divx", ".flv", ".m4v", ".mkv", ".mov", ".mp4", ".mpg", ".wmv",
}

// HasVideoExtension reports whether the file name ends with a recognized
// video extension.
func HasVideoExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range videoExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Parameters is the immutable, fully resolved parameter set for one run.
// It is constructed once and read-only thereafter.
type Parameters struct {
	Width                int
	Columns              int
	Rows                 int
	VerticalVideoColumns int
	VerticalVideoRows    int
	Spacing              int

	BackgroundColor color.RGBA
	NoHeader        bool

	HeaderFont      render.FontSpec
	HeaderFontColor color.RGBA

	TimestampFont      render.FontSpec
	TimestampFontColor color.RGBA
	// TimestampShadowColor is nil when no shadow should be drawn.
	TimestampShadowColor *color.RGBA

	CommentLabel string
	CommentText  string

	SkipSeconds float64
	Suffix      string
	JPEGQuality int

	OverrideExisting bool
	Recursive        bool
	OutputDirectory  string
	RaiseErrors      bool
	Verbose          bool
}

// Validate checks the numeric invariants of the parameter set.
func (p *Parameters) Validate() error {
	switch {
	case p.Width <= 0:
		return errors.New("width must be positive")
	case p.Columns < 1 || p.Rows < 1:
		return errors.New("columns and rows must each be at least 1")
	case p.VerticalVideoColumns < 0 || p.VerticalVideoRows < 0:
		return errors.New("vertical video columns and rows must not be negative")
	case p.Spacing < 0:
		return errors.New("spacing must not be negative")
	// Each column needs at least one pixel once the spacing is taken out.
	case p.Width < p.Spacing*(p.Columns+1)+p.Columns:
		return errors.New("width too small for the configured columns and spacing")
	case p.VerticalVideoColumns > 0 && p.Width < p.Spacing*(p.VerticalVideoColumns+1)+p.VerticalVideoColumns:
		return errors.New("width too small for the configured vertical video columns and spacing")
	case p.SkipSeconds < 0:
		return errors.New("skip seconds must not be negative")
	case p.JPEGQuality < 1 || p.JPEGQuality > 100:
		return errors.New("jpeg quality must be between 1 and 100")
	}
	return nil
}

// Options is the unresolved parameter set as supplied by defaults, the
// configuration file and command line flags, in that order of precedence.
// Colors and fonts are still strings here; Resolve turns them into a
// Parameters value.
type Options struct {
	Width                int
	Columns              int
	Rows                 int
	VerticalVideoColumns int
	VerticalVideoRows    int
	Spacing              int

	BackgroundColor string
	NoHeader        bool

	HeaderFontName  string
	HeaderFontSize  int
	HeaderFontColor string

	TimestampFontName    string
	TimestampFontSize    int
	TimestampFontColor   string
	TimestampShadowColor string

	CommentLabel string
	CommentText  string

	SkipSeconds float64
	Suffix      string
	JPEGQuality int

	OverrideExisting bool
	Recursive        bool
	OutputDirectory  string
	RaiseErrors      bool
	Verbose          bool
}

// DefaultOptions returns the built-in defaults.
func DefaultOptions() Options {
	return Options{
		Width:                800,
		Columns:              4,
		Rows:                 3,
		Spacing:              2,
		BackgroundColor:      "white",
		HeaderFontSize:       14,
		HeaderFontColor:      "black",
		TimestampFontSize:    12,
		TimestampFontColor:   "white",
		TimestampShadowColor: "black",
		CommentLabel:         "Comment:",
		SkipSeconds:          10.0,
		JPEGQuality:          95,
	}
}

// Resolve parses colors and font selections and validates the result.
func (o Options) Resolve() (*Parameters, error) {
	p := &Parameters{
		Width:                o.Width,
		Columns:              o.Columns,
		Rows:                 o.Rows,
		VerticalVideoColumns: o.VerticalVideoColumns,
		VerticalVideoRows:    o.VerticalVideoRows,
		Spacing:              o.Spacing,
		NoHeader:             o.NoHeader,
		HeaderFont:           render.FontSpec{Path: o.HeaderFontName, Size: float64(o.HeaderFontSize)},
		TimestampFont:        render.FontSpec{Path: o.TimestampFontName, Size: float64(o.TimestampFontSize)},
		CommentLabel:         o.CommentLabel,
		CommentText:          o.CommentText,
		SkipSeconds:          o.SkipSeconds,
		Suffix:               o.Suffix,
		JPEGQuality:          o.JPEGQuality,
		OverrideExisting:     o.OverrideExisting,
		Recursive:            o.Recursive,
		OutputDirectory:      o.OutputDirectory,
		RaiseErrors:          o.RaiseErrors,
		Verbose:              o.Verbose,
	}

	var err error
	if p.BackgroundColor, err = render.ParseColor(o.BackgroundColor); err != nil {
		return nil, errors.Wrap(err, "background color")
	}
	if p.HeaderFontColor, err = render.ParseColor(o.HeaderFontColor); err != nil {
		return nil, errors.Wrap(err, "header font color")
	}
	if p.TimestampFontColor, err = render.ParseColor(o.TimestampFontColor); err != nil {
		return nil, errors.Wrap(err, "timestamp font color")
	}
	// An empty shadow color suppresses the drop shadow entirely.
	if o.TimestampShadowColor != "" {
		c, err := render.ParseColor(o.TimestampShadowColor)
		if err != nil {
			return nil, errors.Wrap(err, "timestamp shadow color")
		}
		p.TimestampShadowColor = &c
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
