// Package sampler selects the instants of a video at which preview frames
// are captured.
package sampler

import (
	"github.com/ZacxDev/video-thumbnailer/pkg/types"
)

// Grid is the effective contact sheet shape for one video.
type Grid struct {
	Columns int
	Rows    int
}

// Cells returns the number of thumbnails in the grid.
func (g Grid) Cells() int { return g.Columns * g.Rows }

// ResolveGrid returns the grid shape to use for a video with the given
// aspect ratio. Vertical videos (aspect < 1) use the vertical overrides
// when they are set; a zero override keeps the regular value.
func ResolveGrid(columns, rows, verticalColumns, verticalRows int, aspect float64) Grid {
	g := Grid{Columns: columns, Rows: rows}
	if aspect < 1 {
		if verticalColumns > 0 {
			g.Columns = verticalColumns
		}
		if verticalRows > 0 {
			g.Rows = verticalRows
		}
	}
	return g
}

// Plan computes the capture timestamps for a video.
//
// The timestamps are evenly spaced over [skipSeconds, duration) and there is
// exactly one per grid cell. Plan fails when the skip offset leaves no
// footage to sample, or when the resulting step is shorter than one source
// frame interval and the thumbnails could not be visually distinct.
func Plan(duration, skipSeconds, fps float64, grid Grid) ([]float64, error) {
	if skipSeconds >= duration {
		return nil, types.Errorf(types.KindSampling, "",
			"time to skip at the beginning (%g s) exceeds the video duration (%g s)", skipSeconds, duration)
	}

	count := grid.Cells()
	timeStep := (duration - skipSeconds) / float64(count)
	if fps > 0 && timeStep < 1.0/fps {
		return nil, types.Errorf(types.KindSampling, "",
			"clip is too short to capture %d distinct frames at %.2f fps", count, fps)
	}

	timestamps := make([]float64, count)
	for i := 0; i < count; i++ {
		timestamps[i] = skipSeconds + float64(i)*timeStep
	}
	return timestamps, nil
}
