package thumbnailer

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/ZacxDev/video-thumbnailer/internal/config"
	"github.com/ZacxDev/video-thumbnailer/pkg/types"
)

// EnsureOutputDirectory creates the configured output directory before any
// file is processed. A path that exists but is not a directory, or a
// directory that cannot be created, is a configuration error that aborts
// the run.
func EnsureOutputDirectory(params *config.Parameters) error {
	if params.OutputDirectory == "" {
		return nil
	}

	fi, err := os.Stat(params.OutputDirectory)
	switch {
	case os.IsNotExist(err):
		if err := os.MkdirAll(params.OutputDirectory, 0755); err != nil {
			return types.NewError(types.KindConfiguration, params.OutputDirectory,
				errors.Wrap(err, "unable to create output directory"))
		}
	case err != nil:
		return types.NewError(types.KindConfiguration, params.OutputDirectory, err)
	case !fi.IsDir():
		return types.Errorf(types.KindConfiguration, params.OutputDirectory,
			"output directory path exists and is not a directory")
	}
	return nil
}

// ProcessPath creates contact sheets for a video file, or for every video
// file found in a directory. Per-file failures are collected into the
// report; when fail-fast is enabled the first failure aborts the batch.
// A skipped file never aborts the batch.
func (g *Generator) ProcessPath(path string) (*types.BatchReport, error) {
	report := &types.BatchReport{}
	if err := g.walk(path, report); err != nil {
		return report, err
	}
	if report.Aborted {
		return report, report.FirstError()
	}
	return report, nil
}

// walk visits path and, for directories, its sorted entries. Recursion into
// subdirectories passes the same parameter set; there is no per-level state.
// Errors are hard only for the path the caller supplied; a subdirectory that
// cannot be listed is logged and skipped so its siblings still get processed.
func (g *Generator) walk(path string, report *types.BatchReport) error {
	fi, err := os.Stat(path)
	if err != nil {
		return types.NewError(types.KindConfiguration, path,
			errors.Wrap(err, "path is neither a file nor a directory"))
	}

	if !fi.IsDir() {
		if !config.HasVideoExtension(path) {
			g.log.Warnf("%s does not have a recognized video extension, skipping", path)
			report.Add(types.Result{Path: path, Status: types.StatusSkipped})
			return nil
		}
		g.processFile(path, report)
		return nil
	}

	// ReadDir returns entries sorted by name, so batch order is stable.
	entries, err := os.ReadDir(path)
	if err != nil {
		return types.NewError(types.KindPermission, path, errors.Wrap(err, "list directory"))
	}

	for _, entry := range entries {
		if report.Aborted {
			return nil
		}
		entryPath := filepath.Join(path, entry.Name())
		if entry.IsDir() {
			if g.params.Recursive {
				if err := g.walk(entryPath, report); err != nil {
					g.log.Errorf("An error occurred: %v. Skipping directory %s.", err, entryPath)
				}
			}
			continue
		}
		if config.HasVideoExtension(entry.Name()) {
			g.processFile(entryPath, report)
		}
	}
	return nil
}

func (g *Generator) processFile(path string, report *types.BatchReport) {
	res := g.CreateContactSheet(path)
	report.Add(res)

	switch res.Status {
	case types.StatusDone:
		g.log.Infof("Done: %s", res.Output)
	case types.StatusFailed:
		g.log.Errorf("An error occurred: %v. Skipping file %s.", res.Err, path)
		if g.params.RaiseErrors {
			report.Aborted = true
		}
	}
}
