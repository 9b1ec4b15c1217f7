package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// UserConfigPath returns the path of the per-user configuration file, or an
// empty string when the home directory cannot be determined.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ConfigFileName)
}

// LoadFile merges settings from an INI configuration file into opts. Keys
// that are absent from the file leave the corresponding option untouched.
// A missing file is not an error.
func LoadFile(path string, opts *Options) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("ini")
	if err := v.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "read config file %s", path)
	}

	setInt := func(key string, dst *int) {
		if v.IsSet(key) {
			*dst = v.GetInt(key)
		}
	}
	setString := func(key string, dst *string) {
		if v.IsSet(key) {
			*dst = v.GetString(key)
		}
	}
	setBool := func(key string, dst *bool) {
		if v.IsSet(key) {
			*dst = v.GetBool(key)
		}
	}

	setInt("layout.width", &opts.Width)
	setInt("layout.columns", &opts.Columns)
	setInt("layout.rows", &opts.Rows)
	setInt("layout.vertical_video_columns", &opts.VerticalVideoColumns)
	setInt("layout.vertical_video_rows", &opts.VerticalVideoRows)
	setInt("layout.spacing", &opts.Spacing)
	setString("layout.background_color", &opts.BackgroundColor)
	setBool("layout.no_header", &opts.NoHeader)
	setString("layout.header_font", &opts.HeaderFontName)
	setInt("layout.header_font_size", &opts.HeaderFontSize)
	setString("layout.header_font_color", &opts.HeaderFontColor)
	setString("layout.timestamp_font", &opts.TimestampFontName)
	setInt("layout.timestamp_font_size", &opts.TimestampFontSize)
	setString("layout.timestamp_font_color", &opts.TimestampFontColor)
	setString("layout.timestamp_shadow_color", &opts.TimestampShadowColor)

	setString("header.comment_label", &opts.CommentLabel)
	setString("header.comment_text", &opts.CommentText)

	if v.IsSet("video.skip_seconds") {
		opts.SkipSeconds = v.GetFloat64("video.skip_seconds")
	}

	setBool("file.recursive", &opts.Recursive)
	setString("file.suffix", &opts.Suffix)
	setInt("file.jpeg_quality", &opts.JPEGQuality)
	setBool("file.override_existing", &opts.OverrideExisting)
	setString("file.output_directory", &opts.OutputDirectory)

	setBool("program.raise_errors", &opts.RaiseErrors)
	setBool("program.verbose", &opts.Verbose)

	return nil
}
