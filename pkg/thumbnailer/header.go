package thumbnailer

import (
	"fmt"
	"math"
	"strings"

	"github.com/ZacxDev/video-thumbnailer/internal/mediainfo"
)

// FormatSize renders a byte count in binary units, e.g. "1.40 GiB".
func FormatSize(size int64) string {
	value := float64(size)
	for _, unit := range []string{"", "Ki", "Mi", "Gi", "Ti", "Pi", "Ei", "Zi"} {
		if math.Abs(value) < 1024.0 {
			return fmt.Sprintf("%.2f %sB", value, unit)
		}
		value /= 1024.0
	}
	return fmt.Sprintf("%.2f YiB", value)
}

// FormatTime renders a duration in seconds as HH:MM:SS, truncating
// fractional seconds.
func FormatTime(seconds float64) string {
	total := int(seconds)
	h := total / 3600
	m := (total - h*3600) / 60
	s := total - h*3600 - m*60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FormatBitRate renders a bit rate in bits per second as kilobits.
func FormatBitRate(bitsPerSecond int64) string {
	return fmt.Sprintf("%d kb/s", int64(math.Round(float64(bitsPerSecond)/1000.0)))
}

// headerLines builds the text lines of the contact sheet header from the
// file metadata. Metadata fields that are absent are elided from their line.
func (g *Generator) headerLines(info *mediainfo.Info) []string {
	lines := []string{
		fmt.Sprintf("File: %s", info.General.FileName),
	}

	if info.General.FileSize > 1024 {
		lines = append(lines, fmt.Sprintf("Size: %d B (%s), Duration: %s",
			info.General.FileSize, FormatSize(info.General.FileSize), FormatTime(info.Video.Duration)))
	} else {
		lines = append(lines, fmt.Sprintf("Size: %d B, Duration: %s",
			info.General.FileSize, FormatTime(info.Video.Duration)))
	}

	lines = append(lines, "Video: "+videoInfo(info.Video))
	lines = append(lines, "Audio: "+audioInfo(info.Audio))

	if g.params.CommentText != "" {
		label := g.params.CommentLabel
		if !strings.HasSuffix(label, ":") {
			label += ":"
		}
		lines = append(lines, fmt.Sprintf("%s %s", label, g.params.CommentText))
	}

	return lines
}

func videoInfo(v mediainfo.Video) string {
	parts := make([]string, 0, 4)
	if v.Format != "" {
		parts = append(parts, v.Format)
	}
	resolution := fmt.Sprintf("%dx%d", v.Width, v.Height)
	if v.DisplayAspectRatio != "" {
		resolution += fmt.Sprintf(" (%s)", v.DisplayAspectRatio)
	}
	parts = append(parts, resolution)
	if v.FPS > 0 {
		parts = append(parts, fmt.Sprintf("%.2f fps", v.FPS))
	}
	if v.BitRate > 0 {
		parts = append(parts, FormatBitRate(v.BitRate))
	}
	return strings.Join(parts, ", ")
}

func audioInfo(a *mediainfo.Audio) string {
	if a == nil {
		return "None"
	}
	parts := make([]string, 0, 4)
	if a.Format != "" {
		parts = append(parts, a.Format)
	}
	if a.SamplingRate > 0 {
		parts = append(parts, fmt.Sprintf("%d Hz", a.SamplingRate))
	}
	switch a.Channels {
	case 0:
	case 1:
		parts = append(parts, "mono")
	case 2:
		parts = append(parts, "stereo")
	default:
		parts = append(parts, fmt.Sprintf("%d channels", a.Channels))
	}
	if a.BitRate > 0 {
		parts = append(parts, FormatBitRate(a.BitRate))
	}
	if len(parts) == 0 {
		return "None"
	}
	return strings.Join(parts, ", ")
}
