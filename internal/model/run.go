package model

import (
	"fmt"
	"strings"
	"time"
)

// Kind selects which file a run produces
type Kind string

const (
	KindVideo Kind = "video"
	KindAudio Kind = "audio"
)

// Request is the input of one workflow invocation
type Request struct {
	URL     string
	DestDir string
}

// NewRequest cleans user input: whitespace around both fields and the
// double quotes file managers add when a path is copied.
func NewRequest(url, destDir string) Request {
	cleanURL := strings.ReplaceAll(url, "\n", "")
	cleanURL = strings.ReplaceAll(cleanURL, "\r", "")
	cleanURL = strings.ReplaceAll(cleanURL, "\t", " ")

	return Request{
		URL:     strings.TrimSpace(cleanURL),
		DestDir: strings.Trim(strings.TrimSpace(destDir), `"`),
	}
}

// Outcome is either the path of the produced file or an error
type Outcome struct {
	Path string
	Err  error
}

// OK reports whether the run produced a file
func (o Outcome) OK() bool {
	return o.Err == nil && o.Path != ""
}

// Run is the record of one accepted initiation
type Run struct {
	ID         string
	Kind       Kind
	Request    Request
	State      State
	Outcome    Outcome
	StartedAt  time.Time
	FinishedAt time.Time
}

// Elapsed returns the run duration, measured up to now while it is active
func (r *Run) Elapsed() time.Duration {
	if r.StartedAt.IsZero() {
		return 0
	}
	if r.FinishedAt.IsZero() {
		return time.Since(r.StartedAt)
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// GetElapsedString returns the elapsed time formatted as hh:mm:ss or mm:ss
func (r *Run) GetElapsedString() string {
	sec := int(r.Elapsed().Seconds())
	hours := sec / 3600
	minutes := (sec % 3600) / 60
	seconds := sec % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// GetDisplayTitle returns the output filename or the URL, in that order
func (r *Run) GetDisplayTitle() string {
	if r.Outcome.Path != "" {
		parts := strings.FieldsFunc(r.Outcome.Path, func(c rune) bool {
			return c == '/' || c == '\\'
		})
		if len(parts) > 0 {
			filename := parts[len(parts)-1]
			if idx := strings.LastIndex(filename, "."); idx > 0 {
				filename = filename[:idx]
			}
			return filename
		}
	}
	return r.Request.URL
}
