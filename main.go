package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ZacxDev/video-thumbnailer/internal/config"
	"github.com/ZacxDev/video-thumbnailer/pkg/thumbnailer"
)

var log = logrus.New()

var rootCmd = &cobra.Command{
	Use:   "video-thumbnailer [file or directory]",
	Short: "Create contact sheet images from video files",
	Long: `video-thumbnailer creates preview contact sheets of video files: a grid of
timestamped frame captures below a header summarizing file and codec metadata.

Parameters are resolved from built-in defaults, the per-user configuration
file (~/` + config.ConfigFileName + `) and command line flags, in that order of
precedence.

Examples:
  # Contact sheets for all videos in the current directory
  video-thumbnailer

  # A 4x5 grid, 1024 px wide, for one file
  video-thumbnailer --columns 4 --rows 5 --width 1024 movie.mkv

  # Process a collection recursively into a separate directory
  video-thumbnailer --recursive --output-directory ./sheets /mnt/videos`,
	Args: cobra.MaximumNArgs(1),
	RunE: run,
}

func run(cmd *cobra.Command, args []string) error {
	opts := config.DefaultOptions()
	if err := config.LoadFile(config.UserConfigPath(), &opts); err != nil {
		return err
	}
	applyFlags(cmd.Flags(), &opts)

	params, err := opts.Resolve()
	if err != nil {
		return err
	}

	if params.Verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	path := "."
	if len(args) == 1 {
		path = args[0]
	}

	if err := thumbnailer.EnsureOutputDirectory(params); err != nil {
		return err
	}

	gen, err := thumbnailer.New(params, log)
	if err != nil {
		return err
	}

	report, err := gen.ProcessPath(path)
	if err != nil {
		return err
	}

	done, skipped, failed := report.Counts()
	log.Debugf("Processed %d file(s): %d done, %d skipped, %d failed", len(report.Results), done, skipped, failed)
	return nil
}

// applyFlags overrides options with flags the user explicitly set, keeping
// config-file values for everything else.
func applyFlags(flags *pflag.FlagSet, opts *config.Options) {
	flags.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "width":
			opts.Width, _ = flags.GetInt(f.Name)
		case "columns":
			opts.Columns, _ = flags.GetInt(f.Name)
		case "rows":
			opts.Rows, _ = flags.GetInt(f.Name)
		case "vertical-video-columns":
			opts.VerticalVideoColumns, _ = flags.GetInt(f.Name)
		case "vertical-video-rows":
			opts.VerticalVideoRows, _ = flags.GetInt(f.Name)
		case "spacing":
			opts.Spacing, _ = flags.GetInt(f.Name)
		case "background-color":
			opts.BackgroundColor, _ = flags.GetString(f.Name)
		case "no-header":
			opts.NoHeader, _ = flags.GetBool(f.Name)
		case "header-font":
			opts.HeaderFontName, _ = flags.GetString(f.Name)
		case "header-font-size":
			opts.HeaderFontSize, _ = flags.GetInt(f.Name)
		case "header-font-color":
			opts.HeaderFontColor, _ = flags.GetString(f.Name)
		case "timestamp-font":
			opts.TimestampFontName, _ = flags.GetString(f.Name)
		case "timestamp-font-size":
			opts.TimestampFontSize, _ = flags.GetInt(f.Name)
		case "timestamp-font-color":
			opts.TimestampFontColor, _ = flags.GetString(f.Name)
		case "timestamp-shadow-color":
			opts.TimestampShadowColor, _ = flags.GetString(f.Name)
		case "comment-label":
			opts.CommentLabel, _ = flags.GetString(f.Name)
		case "comment-text":
			opts.CommentText, _ = flags.GetString(f.Name)
		case "skip-seconds":
			opts.SkipSeconds, _ = flags.GetFloat64(f.Name)
		case "suffix":
			opts.Suffix, _ = flags.GetString(f.Name)
		case "jpeg-quality":
			opts.JPEGQuality, _ = flags.GetInt(f.Name)
		case "override-existing":
			opts.OverrideExisting, _ = flags.GetBool(f.Name)
		case "recursive":
			opts.Recursive, _ = flags.GetBool(f.Name)
		case "output-directory":
			opts.OutputDirectory, _ = flags.GetString(f.Name)
		case "raise-errors":
			opts.RaiseErrors, _ = flags.GetBool(f.Name)
		case "verbose":
			opts.Verbose, _ = flags.GetBool(f.Name)
		}
	})
}

func init() {
	defaults := config.DefaultOptions()
	flags := rootCmd.Flags()

	flags.Int("width", defaults.Width, "Intended width of the contact sheet in px; actual width may be slightly less due to rounding upon scaling")
	flags.Int("columns", defaults.Columns, "Number of preview thumbnail columns")
	flags.Int("rows", defaults.Rows, "Number of preview thumbnail rows")
	flags.Int("vertical-video-columns", 0, "Number of thumbnail columns in place of --columns for vertical videos")
	flags.Int("vertical-video-rows", 0, "Number of thumbnail rows in place of --rows for vertical videos")
	flags.Int("spacing", defaults.Spacing, "Spacing between and around the preview thumbnails in px")
	flags.String("background-color", defaults.BackgroundColor, "Name or #rrggbb definition of the image background color")
	flags.Bool("no-header", false, "Omit the metadata header")
	flags.String("header-font", "", "Path of a true type font for the header text; built-in font if omitted")
	flags.Int("header-font-size", defaults.HeaderFontSize, "Font size of the header font; ignored with the built-in font")
	flags.String("header-font-color", defaults.HeaderFontColor, "Name or #rrggbb definition of the header font color")
	flags.String("timestamp-font", "", "Path of a true type font for the thumbnail timestamps; built-in font if omitted")
	flags.Int("timestamp-font-size", defaults.TimestampFontSize, "Font size of the timestamp font; ignored with the built-in font")
	flags.String("timestamp-font-color", defaults.TimestampFontColor, "Name or #rrggbb definition of the timestamp font color")
	flags.String("timestamp-shadow-color", defaults.TimestampShadowColor, "Name or #rrggbb definition of the timestamp shadow color; empty suppresses the shadow")
	flags.String("comment-label", defaults.CommentLabel, "Label of the optional comment line at the bottom of the header")
	flags.String("comment-text", "", "Text of an optional comment line at the bottom of the header")
	flags.Float64("skip-seconds", defaults.SkipSeconds, "Number of seconds to skip at the beginning of the video before the first capture")
	flags.String("suffix", "", "Optional suffix to append to the generated image file names")
	flags.Int("jpeg-quality", defaults.JPEGQuality, "Quality of the JPEG image files")
	flags.Bool("override-existing", false, "Override existing image files with the same name as generated ones")
	flags.BoolP("recursive", "r", false, "Process subdirectories recursively when the path is a directory")
	flags.String("output-directory", "", "Directory where all contact sheets are saved; beside each video file if omitted")
	flags.Bool("raise-errors", false, "Stop at the first error instead of reporting it and continuing with the next file")
	flags.BoolP("verbose", "v", false, "Print verbose information and messages")
}

func main() {
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
