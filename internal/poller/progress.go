package poller

import v1 "framecraft/internal/contracts/render/v1"

const (
	progressStep = 10
	progressCap  = 90
	progressDone = 100
)

var statusLabels = map[v1.Status]string{
	v1.StatusSubmitted: "SUBMITTED",
	v1.StatusQueued:    "QUEUED",
	v1.StatusFetching:  "DOWNLOADING ASSETS",
	v1.StatusRendering: "RENDERING IMAGE",
	v1.StatusSaving:    "SAVING IMAGE",
	v1.StatusDone:      "READY",
	v1.StatusFailed:    "SOMETHING WENT WRONG",
}

// Label is the user-facing text of a status.
func Label(s v1.Status) string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return statusLabels[v1.StatusFailed]
}

// Tracker is the state of one run. Every observed status moves progress
// forward by a fixed step; only done reaches 100 and failed drops to 0.
type Tracker struct {
	status   v1.Status
	progress int
}

// Observe records s and returns the resulting state. Unknown statuses are
// recorded as failed.
func (t *Tracker) Observe(s v1.Status) (v1.Status, int) {
	if !s.Known() {
		s = v1.StatusFailed
	}
	t.status = s

	switch s {
	case v1.StatusDone:
		t.progress = progressDone
	case v1.StatusFailed:
		t.progress = 0
	default:
		t.progress = min(t.progress+progressStep, progressCap)
	}
	return t.status, t.progress
}

func (t *Tracker) Status() v1.Status { return t.status }

func (t *Tracker) Progress() int { return t.progress }
