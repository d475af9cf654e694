// Package poll owns the value shown on the kiosk between fetch cycles: a
// background poller recomputes the savings figure on a fixed interval and a
// mutex-guarded holder keeps the last good value for readers. The displayed
// value never decreases, and a failed cycle keeps showing the previous value
// flagged as stale instead of blanking it.
package poll

import (
	"sync"
	"time"
)

// Snapshot is a consistent point-in-time view of the kiosk value.
type Snapshot struct {
	Value     float64   `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
	CycleID   string    `json:"cycle_id"`
	Stale     bool      `json:"stale"`
	LastError string    `json:"last_error,omitempty"`
}

// Holder keeps the last successfully computed savings value across fetch
// cycles. One background writer updates it; any number of readers take
// snapshots.
type Holder struct {
	mu    sync.RWMutex
	ready bool
	snap  Snapshot
}

// NewHolder creates an empty holder. Snapshot reports not-ready until the
// first successful Update.
func NewHolder() *Holder {
	return &Holder{}
}

// Update records a completed cycle. The held value only ever moves up: a
// lower result (the remote re-baselining, a partial fleet view) refreshes
// the timestamp and clears staleness but keeps the higher value on display.
func (h *Holder) Update(value float64, cycleID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.ready || value > h.snap.Value {
		h.snap.Value = value
	}
	h.snap.UpdatedAt = time.Now().UTC()
	h.snap.CycleID = cycleID
	h.snap.Stale = false
	h.snap.LastError = ""
	h.ready = true
}

// Fail records a failed cycle. The previous value and timestamp survive;
// the snapshot is flagged stale with the failure message.
func (h *Holder) Fail(cycleID string, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.snap.CycleID = cycleID
	h.snap.Stale = true
	if err != nil {
		h.snap.LastError = err.Error()
	}
}

// Snapshot returns the current view and whether any cycle has completed yet.
func (h *Holder) Snapshot() (Snapshot, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.snap, h.ready
}
