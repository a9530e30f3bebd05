package poller

import (
	"testing"

	v1 "framecraft/internal/contracts/render/v1"
)

func TestTracker(t *testing.T) {
	tests := []struct {
		name     string
		seq      []v1.Status
		want     v1.Status
		progress int
	}{
		{"submitted", []v1.Status{"submitted"}, v1.StatusSubmitted, 10},
		{"happy path", []v1.Status{"submitted", "queued", "fetching", "rendering", "saving"}, v1.StatusSaving, 50},
		{"done forces 100", []v1.Status{"submitted", "queued", "done"}, v1.StatusDone, 100},
		{"failed resets", []v1.Status{"submitted", "queued", "rendering", "failed"}, v1.StatusFailed, 0},
		{"unknown is failed", []v1.Status{"submitted", "exploded"}, v1.StatusFailed, 0},
		{"long render caps below done", []v1.Status{
			"submitted", "queued", "rendering", "rendering", "rendering", "rendering",
			"rendering", "rendering", "rendering", "rendering", "rendering", "rendering",
		}, v1.StatusRendering, 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tr Tracker
			for _, s := range tt.seq {
				tr.Observe(s)
			}
			if tr.Status() != tt.want || tr.Progress() != tt.progress {
				t.Errorf("got %s/%d, want %s/%d", tr.Status(), tr.Progress(), tt.want, tt.progress)
			}
		})
	}
}

func TestTrackerNeverGoesBackwards(t *testing.T) {
	var tr Tracker
	last := 0
	for _, s := range []v1.Status{"submitted", "queued", "queued", "fetching", "rendering", "saving", "saving", "done"} {
		_, p := tr.Observe(s)
		if p < last {
			t.Fatalf("progress went from %d to %d on %s", last, p, s)
		}
		if s != v1.StatusDone && p >= 100 {
			t.Fatalf("progress reached %d before done", p)
		}
		last = p
	}
}

func TestLabel(t *testing.T) {
	tests := map[v1.Status]string{
		v1.StatusSubmitted: "SUBMITTED",
		v1.StatusQueued:    "QUEUED",
		v1.StatusFetching:  "DOWNLOADING ASSETS",
		v1.StatusRendering: "RENDERING IMAGE",
		v1.StatusSaving:    "SAVING IMAGE",
		v1.StatusDone:      "READY",
		v1.StatusFailed:    "SOMETHING WENT WRONG",
		"weird":            "SOMETHING WENT WRONG",
	}
	for s, want := range tests {
		if got := Label(s); got != want {
			t.Errorf("Label(%q) = %q, want %q", s, got, want)
		}
	}
}
