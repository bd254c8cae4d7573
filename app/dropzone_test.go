package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDropZoneSingleOwner(t *testing.T) {
	now := time.Now()
	dz := &DropZone{}

	dz.Highlight("arrows", now)
	assert.Equal(t, "arrows", dz.Owner())

	// Moving the drag to another row transfers ownership immediately.
	dz.Highlight("flags", now)
	assert.Equal(t, "flags", dz.Owner())
}

func TestDropZoneReleaseIsDebounced(t *testing.T) {
	now := time.Now()
	dz := &DropZone{}

	dz.Highlight("arrows", now)
	dz.Unhighlight("arrows", now)

	// Still owned while the release delay has not elapsed.
	dz.Tick(now.Add(50 * time.Millisecond))
	assert.Equal(t, "arrows", dz.Owner())

	dz.Tick(now.Add(highlightReleaseDelay + time.Millisecond))
	assert.Equal(t, "", dz.Owner())
}

func TestDropZoneHighlightCancelsPendingRelease(t *testing.T) {
	now := time.Now()
	dz := &DropZone{}

	dz.Highlight("arrows", now)
	dz.Unhighlight("arrows", now)
	dz.Highlight("arrows", now.Add(30*time.Millisecond))

	dz.Tick(now.Add(highlightReleaseDelay * 3))
	assert.Equal(t, "arrows", dz.Owner())
}

func TestDropZoneUnhighlightReleasesOtherOwner(t *testing.T) {
	now := time.Now()
	dz := &DropZone{}

	dz.Highlight("arrows", now)
	dz.Unhighlight("flags", now)
	assert.Equal(t, "", dz.Owner())
}

func TestDropZoneStaleReleaseDoesNotStealNewOwner(t *testing.T) {
	now := time.Now()
	dz := &DropZone{}

	dz.Highlight("arrows", now)
	dz.Unhighlight("arrows", now)
	dz.Highlight("flags", now.Add(20*time.Millisecond))

	dz.Tick(now.Add(highlightReleaseDelay * 2))
	assert.Equal(t, "flags", dz.Owner())
}
