// Package decoder retrieves single decoded frames from a video file at
// arbitrary timestamps.
package decoder

import (
	"image"

	"github.com/opennota/screengen"
	"github.com/pkg/errors"

	"github.com/ZacxDev/video-thumbnailer/pkg/types"
)

// Decoder owns one open decode context for a video file. It is not safe for
// concurrent use; every FrameAt call seeks the shared context.
type Decoder struct {
	path string
	gen  *screengen.Generator
}

// Open creates a decode context for the file at path.
func Open(path string) (*Decoder, error) {
	gen, err := screengen.NewGenerator(path)
	if err != nil {
		return nil, types.NewError(types.KindDecode, path, errors.Wrap(err, "open decode context"))
	}
	// Accurate mode: seek to the last keyframe at or before the target,
	// then decode forward until the presentation timestamp reaches it.
	gen.Fast = false
	return &Decoder{path: path, gen: gen}, nil
}

// FrameAt returns the frame presented at or immediately after the given
// timestamp in seconds. Each call issues an independent seek; no decoded
// frames are cached across calls.
func (d *Decoder) FrameAt(seconds float64) (image.Image, error) {
	ms := int64(seconds * 1000)
	if ms < 0 {
		ms = 0
	}
	// Clamp to the last representable instant so rounding at the tail of
	// the sample sequence cannot push the seek past end of stream.
	if d.gen.Duration > 0 && ms >= d.gen.Duration {
		ms = d.gen.Duration - 1
	}

	img, err := d.gen.Image(ms)
	if err != nil {
		return nil, types.NewError(types.KindDecode, d.path,
			errors.Wrapf(err, "no decodable frame at %.3f s", seconds))
	}
	return img, nil
}

// Width returns the pixel width of the video stream.
func (d *Decoder) Width() int { return d.gen.Width }

// Height returns the pixel height of the video stream.
func (d *Decoder) Height() int { return d.gen.Height }

// Duration returns the container duration in seconds.
func (d *Decoder) Duration() float64 { return float64(d.gen.Duration) / 1000 }

// FPS returns the frame rate reported by the video stream.
func (d *Decoder) FPS() float64 { return d.gen.FPS }

// Close releases the decode context.
func (d *Decoder) Close() error {
	return d.gen.Close()
}
