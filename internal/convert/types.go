package convert

import (
	"time"

	"webpify/pkg/imgcodec"
)

const defaultTarget = imgcodec.FormatWebP

// Options describes one batch run. Populated by the CLI layer and never
// mutated after Run starts.
type Options struct {
	InputRoot      string
	OutputRoot     string
	TargetFormat   imgcodec.Format
	Quality        int
	AllowTypes     []imgcodec.Format
	SkipTypes      []imgcodec.Format
	DeleteOriginal bool
	Jobs           int
}

// Task is one discovered file. Built once by the catalog and consumed by
// exactly one worker.
type Task struct {
	Path    string // absolute
	RelPath string // relative to the input root
	Display string
}

type Status int

const (
	StatusConverted Status = iota
	StatusSkipped
	StatusFailed
)

type SkipReason int

const (
	SkipNone SkipReason = iota
	SkipAlreadyTarget
	SkipUnknownFormat
	SkipExplicitType
	SkipUnsupportedType
)

// Outcome is the single result produced for a Task.
type Outcome struct {
	Status Status
	Reason SkipReason
	Source string
	Dest   string
	Format imgcodec.Format
	Note   string // qualified-success notes: deletion result, dropped metadata
	Err    error
}

// Summary aggregates a finished batch.
type Summary struct {
	Total     int
	Converted int
	Skipped   int
	Errors    int
	Elapsed   time.Duration
}

// Throughput returns converted files per second, 0 for a zero or negative
// elapsed time.
func (s Summary) Throughput() float64 {
	secs := s.Elapsed.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(s.Converted) / secs
}

// ProgressUpdate carries counter deltas to the progress display.
type ProgressUpdate struct {
	TotalDelta     int
	ConvertedDelta int
	SkippedDelta   int
	ErrorDelta     int
}
