package mediainfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const probeJSON = `{
  "streams": [
    {
      "codec_type": "video",
      "codec_name": "h264",
      "width": 1920,
      "height": 1080,
      "duration": "5369.364000",
      "bit_rate": "2503000",
      "r_frame_rate": "25/1",
      "avg_frame_rate": "25/1",
      "display_aspect_ratio": "16:9"
    },
    {
      "codec_type": "audio",
      "codec_name": "aac",
      "sample_rate": "48000",
      "channels": 2,
      "bit_rate": "192000"
    },
    {
      "codec_type": "audio",
      "codec_name": "ac3",
      "sample_rate": "44100",
      "channels": 6,
      "bit_rate": "448000"
    }
  ],
  "format": {
    "format_name": "matroska,webm",
    "duration": "5369.364000",
    "size": "1734967296",
    "bit_rate": "2585000"
  }
}`

func TestParseProbe(t *testing.T) {
	info, err := parseProbe([]byte(probeJSON))
	require.NoError(t, err)

	assert.Equal(t, int64(1734967296), info.General.FileSize)
	assert.Equal(t, "matroska,webm", info.General.Format)
	assert.Equal(t, int64(2585000), info.General.BitRate)

	assert.Equal(t, 1920, info.Video.Width)
	assert.Equal(t, 1080, info.Video.Height)
	assert.Equal(t, 25.0, info.Video.FPS)
	assert.InDelta(t, 5369.364, info.Video.Duration, 1e-9)
	assert.Equal(t, "h264", info.Video.Format)
	assert.Equal(t, "16:9", info.Video.DisplayAspectRatio)
	assert.InDelta(t, 16.0/9.0, info.Video.Aspect(), 1e-3)

	// Only the first audio track is read.
	require.NotNil(t, info.Audio)
	assert.Equal(t, "aac", info.Audio.Format)
	assert.Equal(t, 48000, info.Audio.SamplingRate)
	assert.Equal(t, 2, info.Audio.Channels)
	assert.Equal(t, int64(192000), info.Audio.BitRate)
}

func TestParseProbeNoAudio(t *testing.T) {
	doc := `{
	  "streams": [
	    {"codec_type": "video", "codec_name": "vp9", "width": 640, "height": 360,
	     "duration": "12.5", "avg_frame_rate": "30/1"}
	  ],
	  "format": {"format_name": "webm", "size": "1000"}
	}`
	info, err := parseProbe([]byte(doc))
	require.NoError(t, err)
	assert.Nil(t, info.Audio)
}

func TestParseProbeNoVideoStream(t *testing.T) {
	doc := `{
	  "streams": [{"codec_type": "audio", "codec_name": "mp3"}],
	  "format": {"format_name": "mp3"}
	}`
	_, err := parseProbe([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no video stream")
}

func TestParseProbeDurationFromFormat(t *testing.T) {
	doc := `{
	  "streams": [
	    {"codec_type": "video", "codec_name": "h264", "width": 1280, "height": 720,
	     "avg_frame_rate": "24/1"}
	  ],
	  "format": {"format_name": "mp4", "duration": "90.5", "size": "1"}
	}`
	info, err := parseProbe([]byte(doc))
	require.NoError(t, err)
	assert.InDelta(t, 90.5, info.Video.Duration, 1e-9)
}

func TestParseProbeDurationFromFrameCount(t *testing.T) {
	doc := `{
	  "streams": [
	    {"codec_type": "video", "codec_name": "h264", "width": 1280, "height": 720,
	     "nb_frames": "250", "r_frame_rate": "25/1"}
	  ],
	  "format": {"format_name": "mp4", "size": "1"}
	}`
	info, err := parseProbe([]byte(doc))
	require.NoError(t, err)
	assert.InDelta(t, 10.0, info.Video.Duration, 1e-9)
}

func TestParseProbeNoDuration(t *testing.T) {
	doc := `{
	  "streams": [
	    {"codec_type": "video", "codec_name": "h264", "width": 1280, "height": 720}
	  ],
	  "format": {"format_name": "mp4"}
	}`
	_, err := parseProbe([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duration")
}

func TestParseFrameRate(t *testing.T) {
	assert.Equal(t, 25.0, parseFrameRate("25/1"))
	assert.InDelta(t, 29.97, parseFrameRate("30000/1001"), 1e-2)
	// Falls back to the next candidate when the first is unusable.
	assert.Equal(t, 24.0, parseFrameRate("0/0", "24/1"))
	assert.Equal(t, 0.0, parseFrameRate("garbage"))
}
