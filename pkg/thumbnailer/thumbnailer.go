// Package thumbnailer generates contact sheet images from video files: a
// grid of timestamped preview frames below a header summarizing file and
// codec metadata.
package thumbnailer

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/font"

	"github.com/ZacxDev/video-thumbnailer/internal/config"
	"github.com/ZacxDev/video-thumbnailer/internal/decoder"
	"github.com/ZacxDev/video-thumbnailer/internal/layout"
	"github.com/ZacxDev/video-thumbnailer/internal/mediainfo"
	"github.com/ZacxDev/video-thumbnailer/internal/render"
	"github.com/ZacxDev/video-thumbnailer/internal/sampler"
	"github.com/ZacxDev/video-thumbnailer/pkg/types"
)

// Generator creates contact sheets for individual video files. Fonts are
// resolved once at construction; everything else is per-file state.
type Generator struct {
	params        *config.Parameters
	log           *logrus.Logger
	headerFace    font.Face
	timestampFace font.Face
}

// New resolves the font selections of the parameter set and returns a
// ready-to-use generator.
func New(params *config.Parameters, log *logrus.Logger) (*Generator, error) {
	headerFace, err := params.HeaderFont.Resolve()
	if err != nil {
		return nil, errors.Wrap(err, "header font")
	}
	timestampFace, err := params.TimestampFont.Resolve()
	if err != nil {
		return nil, errors.Wrap(err, "timestamp font")
	}
	return &Generator{
		params:        params,
		log:           log,
		headerFace:    headerFace,
		timestampFace: timestampFace,
	}, nil
}

// OutputPath returns the path of the contact sheet for a video file: the
// source name plus suffix and a .jpg extension, either beside the source or
// in the configured output directory.
func (g *Generator) OutputPath(filePath string) string {
	name := filepath.Base(filePath) + g.params.Suffix + ".jpg"
	if g.params.OutputDirectory != "" {
		return filepath.Join(g.params.OutputDirectory, name)
	}
	return filepath.Join(filepath.Dir(filePath), name)
}

// CreateContactSheet generates the contact sheet for a single video file.
// All failures are reported through the returned result, classified by kind.
func (g *Generator) CreateContactSheet(filePath string) types.Result {
	res := types.Result{Path: filePath}
	outputPath := g.OutputPath(filePath)

	// Overwrite short-circuit: an existing destination with overwriting
	// disabled is an expected skip, not an error.
	if fi, err := os.Stat(outputPath); err == nil {
		if !g.params.OverrideExisting {
			g.log.Infof("Destination %s already exists, skipping", outputPath)
			res.Status = types.StatusSkipped
			return res
		}
		if !fi.Mode().IsRegular() {
			g.log.Warnf("Destination %s exists and is not a regular file, skipping", outputPath)
			res.Status = types.StatusSkipped
			return res
		}
		g.log.Infof("Overriding existing file %s", outputPath)
	}

	// Probe source readability and the destination directory before doing
	// any decode work.
	if err := checkReadable(filePath); err != nil {
		res.Status = types.StatusFailed
		res.Err = err
		return res
	}
	if err := checkDestinationDir(filepath.Dir(outputPath)); err != nil {
		res.Status = types.StatusFailed
		res.Err = err
		return res
	}

	g.log.Infof("Creating contact sheet for %s", filePath)

	info, err := mediainfo.Probe(filePath)
	if err != nil {
		res.Status = types.StatusFailed
		res.Err = err
		return res
	}
	g.logMetadata(info)

	canvas, err := g.compose(filePath, info)
	if err != nil {
		res.Status = types.StatusFailed
		res.Err = err
		return res
	}

	if err := g.save(canvas, outputPath); err != nil {
		res.Status = types.StatusFailed
		res.Err = err
		return res
	}

	res.Status = types.StatusDone
	res.Output = outputPath
	return res
}

// compose runs the sampling, decoding and rendering pipeline for one file
// and returns the finished canvas.
func (g *Generator) compose(filePath string, info *mediainfo.Info) (*render.Canvas, error) {
	dec, err := decoder.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	aspect := info.Video.Aspect()
	if aspect == 0 && dec.Height() > 0 {
		aspect = float64(dec.Width()) / float64(dec.Height())
	}
	if aspect <= 0 {
		return nil, types.Errorf(types.KindMetadata, filePath, "video track reports no resolution")
	}

	fps := info.Video.FPS
	if fps == 0 {
		fps = dec.FPS()
	}

	grid := sampler.ResolveGrid(
		g.params.Columns, g.params.Rows,
		g.params.VerticalVideoColumns, g.params.VerticalVideoRows,
		aspect,
	)

	timestamps, err := sampler.Plan(info.Video.Duration, g.params.SkipSeconds, fps, grid)
	if err != nil {
		if e, ok := err.(*types.Error); ok {
			e.Path = filePath
		}
		return nil, err
	}

	var lines []string
	var lineHeights []int
	if !g.params.NoHeader {
		lines = g.headerLines(info)
		// Line height is a metric of the face, not of the text drawn with
		// it, so every header line shares one measured height.
		lineHeight := render.LineHeight(g.headerFace)
		lineHeights = make([]int, len(lines))
		for i := range lines {
			lineHeights[i] = lineHeight
		}
	}

	sheet := layout.Compute(g.params.Width, grid.Columns, grid.Rows, g.params.Spacing, aspect, lineHeights)
	g.log.Debugf("Image dimensions: %dx%d -> %dx%d thumbnails with dimensions %dx%d",
		sheet.Width, sheet.Height, grid.Columns, grid.Rows, sheet.ThumbWidth, sheet.ThumbHeight)

	canvas := render.NewCanvas(sheet, g.params.BackgroundColor)
	if len(lines) > 0 {
		canvas.DrawHeader(lines, g.headerFace, g.params.HeaderFontColor)
	}

	var shadow color.Color
	if g.params.TimestampShadowColor != nil {
		shadow = *g.params.TimestampShadowColor
	}

	for i, ts := range timestamps {
		frame, err := dec.FrameAt(ts)
		if err != nil {
			return nil, err
		}
		cell := sheet.CellAt(i)
		canvas.PasteFrame(frame, cell)
		canvas.DrawTimestamp(FormatTime(ts), cell, g.timestampFace, g.params.TimestampFontColor, shadow)
		g.log.Debugf("Captured preview thumbnail #%d of frame at %.3f s", i+1, ts)
	}

	return canvas, nil
}

// save encodes the canvas as a JPEG at the configured quality.
func (g *Generator) save(canvas *render.Canvas, outputPath string) error {
	g.log.Debugf("Saving contact sheet to %s", outputPath)

	f, err := os.Create(outputPath)
	if err != nil {
		if os.IsPermission(err) {
			return types.NewError(types.KindPermission, outputPath, err)
		}
		return types.NewError(types.KindConfiguration, outputPath, err)
	}

	if err := canvas.EncodeJPEG(f, g.params.JPEGQuality); err != nil {
		f.Close()
		return types.NewError(types.KindConfiguration, outputPath, errors.Wrap(err, "encode jpeg"))
	}
	return f.Close()
}

// logMetadata dumps the probed metadata at debug level.
func (g *Generator) logMetadata(info *mediainfo.Info) {
	g.log.Debugf("General: %s, %s, %s", info.General.FileName, info.General.Format, FormatSize(info.General.FileSize))
	g.log.Debugf("Video: %s", videoInfo(info.Video))
	g.log.Debugf("Audio: %s", audioInfo(info.Audio))
}

// checkReadable verifies that the source file can be opened for reading.
func checkReadable(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsPermission(err) {
			return types.NewError(types.KindPermission, path, err)
		}
		return types.NewError(types.KindPermission, path, fmt.Errorf("source not readable: %w", err))
	}
	return f.Close()
}

// checkDestinationDir verifies that the directory the contact sheet will be
// written to exists and is writable, so an unwritable destination surfaces
// before any decode work instead of after the last frame.
func checkDestinationDir(dir string) error {
	fi, err := os.Stat(dir)
	if err != nil {
		return types.NewError(types.KindPermission, dir, errors.Wrap(err, "destination directory"))
	}
	if !fi.IsDir() {
		return types.Errorf(types.KindPermission, dir, "destination is not a directory")
	}

	probe, err := os.CreateTemp(dir, ".contactsheet-*")
	if err != nil {
		return types.NewError(types.KindPermission, dir,
			errors.Wrap(err, "destination directory not writable"))
	}
	probe.Close()
	os.Remove(probe.Name())
	return nil
}
