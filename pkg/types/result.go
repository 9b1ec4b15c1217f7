package types

// Status is the terminal state of processing one video file.
type Status int

const (
	// StatusDone means a contact sheet image was produced.
	StatusDone Status = iota
	// StatusSkipped means the file was deliberately not processed, for
	// example because the destination already exists.
	StatusSkipped
	// StatusFailed means processing aborted with an error.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusDone:
		return "done"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// Result is the outcome of processing a single video file.
type Result struct {
	// Path is the source video file.
	Path string
	// Output is the contact sheet path, set when Status is StatusDone.
	Output string
	// Status is the terminal state.
	Status Status
	// Err is set when Status is StatusFailed.
	Err error
}

// BatchReport aggregates the results of one batch run.
type BatchReport struct {
	Results []Result
	// Aborted is true when fail-fast stopped the batch before all
	// candidate files were visited.
	Aborted bool
}

// Add appends a result to the report.
func (r *BatchReport) Add(res Result) {
	r.Results = append(r.Results, res)
}

// Counts returns the number of done, skipped and failed files.
func (r *BatchReport) Counts() (done, skipped, failed int) {
	for _, res := range r.Results {
		switch res.Status {
		case StatusDone:
			done++
		case StatusSkipped:
			skipped++
		case StatusFailed:
			failed++
		}
	}
	return done, skipped, failed
}

// FirstError returns the error of the first failed result, or nil.
func (r *BatchReport) FirstError() error {
	for _, res := range r.Results {
		if res.Status == StatusFailed {
			return res.Err
		}
	}
	return nil
}
