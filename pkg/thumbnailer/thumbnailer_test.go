package thumbnailer

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZacxDev/video-thumbnailer/internal/config"
	"github.com/ZacxDev/video-thumbnailer/internal/mediainfo"
	"github.com/ZacxDev/video-thumbnailer/pkg/types"
)

func newTestGenerator(t *testing.T, mutate func(*config.Options)) *Generator {
	t.Helper()
	opts := config.DefaultOptions()
	if mutate != nil {
		mutate(&opts)
	}
	params, err := opts.Resolve()
	require.NoError(t, err)

	log := logrus.New()
	log.SetOutput(io.Discard)

	gen, err := New(params, log)
	require.NoError(t, err)
	return gen
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "00:00:00", FormatTime(0))
	assert.Equal(t, "00:00:59", FormatTime(59.9))
	assert.Equal(t, "00:01:05", FormatTime(65))
	assert.Equal(t, "01:29:45", FormatTime(5385))
	assert.Equal(t, "27:46:40", FormatTime(100000))
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "512.00 B", FormatSize(512))
	assert.Equal(t, "1.00 KiB", FormatSize(1024))
	assert.Equal(t, "1.50 MiB", FormatSize(3*1024*1024/2))
	assert.Equal(t, "2.00 GiB", FormatSize(2*1024*1024*1024))
}

func TestFormatBitRate(t *testing.T) {
	assert.Equal(t, "2503 kb/s", FormatBitRate(2503000))
	assert.Equal(t, "192 kb/s", FormatBitRate(192000))
	assert.Equal(t, "1 kb/s", FormatBitRate(500))
}

func testInfo() *mediainfo.Info {
	return &mediainfo.Info{
		General: mediainfo.General{
			FileName: "movie.mkv",
			FileSize: 1734967296,
			Format:   "matroska,webm",
		},
		Video: mediainfo.Video{
			Width:              1920,
			Height:             1080,
			FPS:                25,
			Duration:           5369.364,
			Format:             "h264",
			BitRate:            2503000,
			DisplayAspectRatio: "16:9",
		},
		Audio: &mediainfo.Audio{
			Format:       "aac",
			SamplingRate: 48000,
			Channels:     2,
			BitRate:      192000,
		},
	}
}

func TestHeaderLines(t *testing.T) {
	gen := newTestGenerator(t, nil)
	lines := gen.headerLines(testInfo())

	require.Len(t, lines, 4)
	assert.Equal(t, "File: movie.mkv", lines[0])
	assert.Equal(t, "Size: 1734967296 B (1.62 GiB), Duration: 01:29:29", lines[1])
	assert.Equal(t, "Video: h264, 1920x1080 (16:9), 25.00 fps, 2503 kb/s", lines[2])
	assert.Equal(t, "Audio: aac, 48000 Hz, stereo, 192 kb/s", lines[3])
}

func TestHeaderLinesSmallFileOmitsHumanSize(t *testing.T) {
	gen := newTestGenerator(t, nil)
	info := testInfo()
	info.General.FileSize = 900
	lines := gen.headerLines(info)
	assert.Equal(t, "Size: 900 B, Duration: 01:29:29", lines[1])
}

func TestHeaderLinesNoAudio(t *testing.T) {
	gen := newTestGenerator(t, nil)
	info := testInfo()
	info.Audio = nil
	lines := gen.headerLines(info)
	assert.Equal(t, "Audio: None", lines[3])
}

func TestHeaderLinesMonoAndMultichannel(t *testing.T) {
	gen := newTestGenerator(t, nil)

	info := testInfo()
	info.Audio.Channels = 1
	assert.Contains(t, gen.headerLines(info)[3], "mono")

	info.Audio.Channels = 6
	assert.Contains(t, gen.headerLines(info)[3], "6 channels")
}

func TestHeaderLinesElideMissingVideoFields(t *testing.T) {
	gen := newTestGenerator(t, nil)
	info := testInfo()
	info.Video.DisplayAspectRatio = ""
	info.Video.BitRate = 0
	lines := gen.headerLines(info)
	assert.Equal(t, "Video: h264, 1920x1080, 25.00 fps", lines[2])
}

func TestHeaderLinesComment(t *testing.T) {
	gen := newTestGenerator(t, func(o *config.Options) {
		o.CommentText = "archival copy"
	})
	lines := gen.headerLines(testInfo())
	require.Len(t, lines, 5)
	assert.Equal(t, "Comment: archival copy", lines[4])
}

func TestHeaderLinesCommentLabelGetsColon(t *testing.T) {
	gen := newTestGenerator(t, func(o *config.Options) {
		o.CommentLabel = "Note"
		o.CommentText = "x"
	})
	lines := gen.headerLines(testInfo())
	assert.Equal(t, "Note: x", lines[4])
}

func TestOutputPathBesideSource(t *testing.T) {
	gen := newTestGenerator(t, nil)
	assert.Equal(t, filepath.Join("/videos", "movie.mkv.jpg"), gen.OutputPath("/videos/movie.mkv"))
}

func TestOutputPathWithSuffixAndDirectory(t *testing.T) {
	gen := newTestGenerator(t, func(o *config.Options) {
		o.Suffix = "_preview"
		o.OutputDirectory = "/sheets"
	})
	assert.Equal(t, filepath.Join("/sheets", "movie.mkv_preview.jpg"), gen.OutputPath("/videos/movie.mkv"))
}

func TestCreateContactSheetSkipsExistingDestination(t *testing.T) {
	dir := t.TempDir()
	videoPath := filepath.Join(dir, "movie.mp4")
	require.NoError(t, os.WriteFile(videoPath, []byte("not really a video"), 0644))

	existing := []byte("pre-existing contact sheet")
	outputPath := filepath.Join(dir, "movie.mp4.jpg")
	require.NoError(t, os.WriteFile(outputPath, existing, 0644))

	gen := newTestGenerator(t, nil)
	res := gen.CreateContactSheet(videoPath)

	assert.Equal(t, types.StatusSkipped, res.Status)
	assert.NoError(t, res.Err)

	// The existing file is left byte-for-byte unchanged.
	got, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Equal(t, existing, got)
}

func TestCreateContactSheetUnreadableSource(t *testing.T) {
	dir := t.TempDir()
	gen := newTestGenerator(t, nil)
	res := gen.CreateContactSheet(filepath.Join(dir, "missing.mp4"))

	assert.Equal(t, types.StatusFailed, res.Status)
	assert.Equal(t, types.KindPermission, types.KindOf(res.Err))
}

func TestCreateContactSheetUnwritableDestination(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits do not bind root")
	}
	dir := t.TempDir()
	videoPath := filepath.Join(dir, "movie.mp4")
	require.NoError(t, os.WriteFile(videoPath, []byte("not really a video"), 0644))
	require.NoError(t, os.Chmod(dir, 0555))
	t.Cleanup(func() { os.Chmod(dir, 0755) })

	gen := newTestGenerator(t, nil)
	res := gen.CreateContactSheet(videoPath)

	assert.Equal(t, types.StatusFailed, res.Status)
	// The destination check runs before any metadata probing, so the failure
	// is a permission error even though the file content is not decodable.
	assert.Equal(t, types.KindPermission, types.KindOf(res.Err))
}

func TestEnsureOutputDirectoryCreates(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	gen := newTestGenerator(t, func(o *config.Options) {
		o.OutputDirectory = dir
	})
	require.NoError(t, EnsureOutputDirectory(gen.params))

	fi, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, fi.IsDir())
}

func TestEnsureOutputDirectoryConflict(t *testing.T) {
	path := filepath.Join(t.TempDir(), "occupied")
	require.NoError(t, os.WriteFile(path, []byte("file"), 0644))

	gen := newTestGenerator(t, func(o *config.Options) {
		o.OutputDirectory = path
	})
	err := EnsureOutputDirectory(gen.params)
	require.Error(t, err)
	assert.Equal(t, types.KindConfiguration, types.KindOf(err))
}

func TestProcessPathNonVideoFileSkipped(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("text"), 0644))

	gen := newTestGenerator(t, nil)
	report, err := gen.ProcessPath(path)
	require.NoError(t, err)
	require.Len(t, report.Results, 1)
	assert.Equal(t, types.StatusSkipped, report.Results[0].Status)
}

func TestProcessPathMissing(t *testing.T) {
	gen := newTestGenerator(t, nil)
	_, err := gen.ProcessPath(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Equal(t, types.KindConfiguration, types.KindOf(err))
}

func TestProcessPathDirectoryCollectsResults(t *testing.T) {
	dir := t.TempDir()
	// Destination images already exist, so both videos are skipped without
	// any decoding.
	for _, name := range []string{"a.mp4", "b.mkv"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("v"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, name+".jpg"), []byte("img"), 0644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.md"), []byte("text"), 0644))

	gen := newTestGenerator(t, nil)
	report, err := gen.ProcessPath(dir)
	require.NoError(t, err)

	require.Len(t, report.Results, 2)
	_, skipped, _ := report.Counts()
	assert.Equal(t, 2, skipped)
	assert.False(t, report.Aborted)
}

func TestProcessPathRecursionRequiresFlag(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "season1")
	require.NoError(t, os.MkdirAll(sub, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "a.mp4"), []byte("v"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "a.mp4.jpg"), []byte("img"), 0644))

	gen := newTestGenerator(t, nil)
	report, err := gen.ProcessPath(dir)
	require.NoError(t, err)
	assert.Empty(t, report.Results)

	gen = newTestGenerator(t, func(o *config.Options) { o.Recursive = true })
	report, err = gen.ProcessPath(dir)
	require.NoError(t, err)
	require.Len(t, report.Results, 1)
	assert.Equal(t, types.StatusSkipped, report.Results[0].Status)
}

func TestProcessPathUnlistableSubdirectoryDoesNotAbort(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits do not bind root")
	}
	dir := t.TempDir()
	locked := filepath.Join(dir, "locked")
	require.NoError(t, os.MkdirAll(locked, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(locked, "a.mp4"), []byte("v"), 0644))
	require.NoError(t, os.Chmod(locked, 0000))
	t.Cleanup(func() { os.Chmod(locked, 0755) })

	// "locked" sorts before "z.mp4", so the sibling is only reached if the
	// unlistable directory does not end the walk.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "z.mp4"), []byte("v"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "z.mp4.jpg"), []byte("img"), 0644))

	gen := newTestGenerator(t, func(o *config.Options) {
		o.Recursive = true
		o.RaiseErrors = true
	})
	report, err := gen.ProcessPath(dir)
	require.NoError(t, err)
	require.Len(t, report.Results, 1)
	assert.Equal(t, types.StatusSkipped, report.Results[0].Status)
	assert.False(t, report.Aborted)
}

func TestProcessPathFailFast(t *testing.T) {
	dir := t.TempDir()
	// Unreadable (missing target of a dangling entry) is simulated with a
	// video whose probe will fail; a second video would be visited next.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.mp4"), []byte("not a video"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.mp4"), []byte("not a video"), 0644))

	gen := newTestGenerator(t, func(o *config.Options) { o.RaiseErrors = true })
	report, err := gen.ProcessPath(dir)
	require.Error(t, err)
	assert.True(t, report.Aborted)
	assert.Len(t, report.Results, 1)
}

func TestProcessPathContinuesWithoutFailFast(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.mp4"), []byte("not a video"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.mp4"), []byte("not a video"), 0644))

	gen := newTestGenerator(t, nil)
	report, err := gen.ProcessPath(dir)
	require.NoError(t, err)
	assert.Len(t, report.Results, 2)
	_, _, failed := report.Counts()
	assert.Equal(t, 2, failed)
}
