package v1

import "encoding/json"

// Status is the lifecycle state of a render job.
type Status string

const (
	StatusSubmitted Status = "submitted"
	StatusQueued    Status = "queued"
	StatusFetching  Status = "fetching"
	StatusRendering Status = "rendering"
	StatusSaving    Status = "saving"
	StatusDone      Status = "done"
	StatusFailed    Status = "failed"
)

// Known reports whether s is one of the documented states.
func (s Status) Known() bool {
	switch s {
	case StatusSubmitted, StatusQueued, StatusFetching, StatusRendering,
		StatusSaving, StatusDone, StatusFailed:
		return true
	}
	return false
}

// Terminal reports whether no further transitions follow s.
func (s Status) Terminal() bool {
	return s == StatusDone || s == StatusFailed
}

// Queued is the provider's answer to an accepted submission.
type Queued struct {
	Message string `json:"message,omitempty"`
	ID      string `json:"id"`
}

// Job is the provider's view of a render job. URL and Data are set once the
// job is done; Data echoes the submitted edit when requested.
type Job struct {
	ID     string          `json:"id"`
	Owner  string          `json:"owner,omitempty"`
	Status Status          `json:"status"`
	URL    string          `json:"url,omitempty"`
	Error  string          `json:"error,omitempty"`
	Data   json.RawMessage `json:"data,omitempty"`
}
