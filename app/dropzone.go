package app

import "time"

// highlightReleaseDelay is how long a row keeps the drop overlay after the
// cursor leaves it. OS drag events arrive with small gaps between frames, so
// releasing instantly would make the overlay flicker while a file is dragged
// across a row.
const highlightReleaseDelay = 100 * time.Millisecond

// DropZone tracks which pack row currently owns the drag-over overlay.
// At most one row owns the overlay at a time. Ownership transfers
// immediately on highlight; release is debounced.
type DropZone struct {
	owner      string
	pending    bool
	pendingRow string
	releaseAt  time.Time
}

// Owner returns the name of the row that currently shows the overlay,
// or "" when no row does.
func (dz *DropZone) Owner() string {
	return dz.owner
}

// Highlight gives the overlay to the named row. Any other owner is
// released immediately and a pending release for this row is cancelled.
func (dz *DropZone) Highlight(row string, now time.Time) {
	dz.pending = false
	dz.owner = row
}

// Unhighlight schedules the overlay to detach from the named row after
// the release delay. Calling Highlight for the same row before the delay
// expires cancels the release. If a different row owns the overlay it is
// released right away.
func (dz *DropZone) Unhighlight(row string, now time.Time) {
	if dz.owner != "" && dz.owner != row {
		dz.owner = ""
	}
	dz.pending = true
	dz.pendingRow = row
	dz.releaseAt = now.Add(highlightReleaseDelay)
}

// Tick fires any due release. Call once per frame.
func (dz *DropZone) Tick(now time.Time) {
	if dz.pending && !now.Before(dz.releaseAt) {
		if dz.owner == dz.pendingRow {
			dz.owner = ""
		}
		dz.pending = false
	}
}
