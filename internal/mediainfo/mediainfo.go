// Package mediainfo extracts general, video and audio track metadata from a
// media file using ffprobe.
package mediainfo

import (
	"encoding/json"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/ZacxDev/video-thumbnailer/pkg/types"
)

// General describes the container of a media file.
type General struct {
	FileName string
	FileSize int64
	Format   string
	BitRate  int64
}

// Video describes the first video track of a media file.
type Video struct {
	Width              int
	Height             int
	FPS                float64
	Duration           float64
	Format             string
	BitRate            int64
	DisplayAspectRatio string
}

// Aspect returns the width/height pixel aspect ratio of the track.
func (v Video) Aspect() float64 {
	if v.Height == 0 {
		return 0
	}
	return float64(v.Width) / float64(v.Height)
}

// Audio describes the first audio track of a media file.
type Audio struct {
	Format       string
	SamplingRate int
	Channels     int
	BitRate      int64
}

// Info bundles the metadata of one media file. Audio is nil for files
// without an audio track.
type Info struct {
	General General
	Video   Video
	Audio   *Audio
}

// Probe reads the metadata of the file at path. Tracks beyond the first of
// each type are ignored. A missing video track or an unresolvable duration
// is a metadata error.
func Probe(path string) (*Info, error) {
	raw, err := ffmpeg.Probe(path)
	if err != nil {
		return nil, types.NewError(types.KindMetadata, path, errors.Wrap(err, "probe failed"))
	}

	info, err := parseProbe([]byte(raw))
	if err != nil {
		return nil, types.NewError(types.KindMetadata, path, err)
	}
	info.General.FileName = filepath.Base(path)
	return info, nil
}

// probeDocument mirrors the parts of the ffprobe JSON output we consume.
type probeDocument struct {
	Streams []probeStream `json:"streams"`
	Format  probeFormat   `json:"format"`
}

type probeStream struct {
	CodecType          string `json:"codec_type"`
	CodecName          string `json:"codec_name"`
	Width              int    `json:"width"`
	Height             int    `json:"height"`
	Duration           string `json:"duration"`
	BitRate            string `json:"bit_rate"`
	NbFrames           string `json:"nb_frames"`
	RFrameRate         string `json:"r_frame_rate"`
	AvgFrameRate       string `json:"avg_frame_rate"`
	DisplayAspectRatio string `json:"display_aspect_ratio"`
	SampleRate         string `json:"sample_rate"`
	Channels           int    `json:"channels"`
}

type probeFormat struct {
	FormatName string `json:"format_name"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
	BitRate    string `json:"bit_rate"`
}

func parseProbe(raw []byte) (*Info, error) {
	var doc probeDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrap(err, "malformed probe output")
	}

	var videoStream, audioStream *probeStream
	for i := range doc.Streams {
		s := &doc.Streams[i]
		switch s.CodecType {
		case "video":
			if videoStream == nil {
				videoStream = s
			}
		case "audio":
			if audioStream == nil {
				audioStream = s
			}
		}
	}
	if videoStream == nil {
		return nil, errors.New("no video stream found")
	}

	info := &Info{
		General: General{
			FileSize: parseInt(doc.Format.Size),
			Format:   doc.Format.FormatName,
			BitRate:  parseInt(doc.Format.BitRate),
		},
		Video: Video{
			Width:              videoStream.Width,
			Height:             videoStream.Height,
			FPS:                parseFrameRate(videoStream.AvgFrameRate, videoStream.RFrameRate),
			Format:             videoStream.CodecName,
			BitRate:            parseInt(videoStream.BitRate),
			DisplayAspectRatio: videoStream.DisplayAspectRatio,
		},
	}

	// Duration fallback chain: video stream, then container, then frame
	// count over frame rate.
	duration := parseFloat(videoStream.Duration)
	if duration == 0 {
		duration = parseFloat(doc.Format.Duration)
	}
	if duration == 0 {
		if frames := parseFloat(videoStream.NbFrames); frames > 0 && info.Video.FPS > 0 {
			duration = frames / info.Video.FPS
		}
	}
	if duration == 0 {
		return nil, errors.New("could not determine video duration")
	}
	info.Video.Duration = duration

	if audioStream != nil {
		info.Audio = &Audio{
			Format:       audioStream.CodecName,
			SamplingRate: int(parseInt(audioStream.SampleRate)),
			Channels:     audioStream.Channels,
			BitRate:      parseInt(audioStream.BitRate),
		}
	}

	return info, nil
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

func parseInt(s string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// parseFrameRate resolves a frame rate from ffprobe fraction notation such
// as "30000/1001", preferring the average rate over the raw one.
func parseFrameRate(rates ...string) float64 {
	for _, rate := range rates {
		nums := strings.Split(rate, "/")
		if len(nums) != 2 {
			continue
		}
		num := parseFloat(nums[0])
		den := parseFloat(nums[1])
		if num > 0 && den > 0 {
			return num / den
		}
	}
	return 0
}
