package app

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"iconstudio/iconpack"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var svgContent = []byte(`<svg xmlns="http://www.w3.org/2000/svg"><path d="M0 0h8v8H0z"/></svg>`)

type capturedNotice struct {
	message string
	kind    NoticeKind
}

func newTestPanel(t *testing.T) (*PackSettingsPanel, *iconpack.Manager, *[]capturedNotice, *int) {
	t.Helper()

	manager, err := iconpack.NewManager(t.TempDir())
	require.NoError(t, err)

	panel := NewPackSettingsPanel(manager)

	notices := &[]capturedNotice{}
	redraws := new(int)
	panel.notify = func(message string, kind NoticeKind) {
		*notices = append(*notices, capturedNotice{message, kind})
	}
	panel.requestRedraw = func() { *redraws++ }

	return panel, manager, notices, redraws
}

func noticesOfKind(notices []capturedNotice, kind NoticeKind) []capturedNotice {
	var filtered []capturedNotice
	for _, notice := range notices {
		if notice.kind == kind {
			filtered = append(filtered, notice)
		}
	}
	return filtered
}

func TestSubmitCreateNormalizesAndRebuilds(t *testing.T) {
	panel, manager, notices, redraws := newTestPanel(t)

	panel.submitCreate("My Pack")

	assert.True(t, manager.Exists("my-pack"))
	assert.Equal(t, 1, *redraws)
	assert.Equal(t, "", panel.nameInput.Value())

	success := noticesOfKind(*notices, NoticeSuccess)
	require.Len(t, success, 1)
	assert.Contains(t, success[0].message, "My Pack")
	assert.Contains(t, success[0].message, "my-pack")

	_, ok := panel.Row("my-pack")
	assert.True(t, ok)
}

func TestSubmitCreateBlankIsIgnored(t *testing.T) {
	panel, manager, notices, redraws := newTestPanel(t)

	panel.submitCreate("   ")

	assert.Empty(t, manager.All())
	assert.Empty(t, *notices)
	assert.Equal(t, 0, *redraws)
}

func TestSubmitCreateDuplicateAborts(t *testing.T) {
	panel, manager, notices, redraws := newTestPanel(t)
	require.NoError(t, manager.CreatePackDir("my-pack"))

	panel.submitCreate("My  Pack")

	assert.Len(t, manager.All(), 1)
	assert.Equal(t, 0, *redraws)

	warnings := noticesOfKind(*notices, NoticeWarning)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].message, "my-pack")
	assert.Contains(t, warnings[0].message, "already exists")
}

func TestAddIconFilesSkipsNonSVG(t *testing.T) {
	panel, manager, notices, _ := newTestPanel(t)
	require.NoError(t, manager.CreatePackDir("arrows"))
	panel.rebuild()

	panel.AddIconFiles("arrows", []DroppedFile{
		{Name: "up.svg", Content: svgContent},
		{Name: "notes.txt", Content: []byte("plain text")},
		{Name: "down.svg", Content: svgContent},
	})

	pack, ok := manager.Get("arrows")
	require.True(t, ok)
	assert.Equal(t, 2, pack.IconCount())

	warnings := noticesOfKind(*notices, NoticeWarning)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].message, "notes.txt is not a SVG file")

	success := noticesOfKind(*notices, NoticeSuccess)
	require.Len(t, success, 1)
	assert.Contains(t, success[0].message, "Added 2 icons to arrows")

	row, ok := panel.Row("arrows")
	require.True(t, ok)
	assert.Equal(t, "2 icons", row.Description())

	// Files were written into the pack directory
	for _, name := range []string{"up.svg", "down.svg"} {
		_, err := os.Stat(filepath.Join(manager.Root(), "arrows", name))
		assert.NoError(t, err)
	}
}

func TestAddIconFilesBusyGuard(t *testing.T) {
	panel, manager, notices, _ := newTestPanel(t)
	require.NoError(t, manager.CreatePackDir("arrows"))
	panel.rebuild()
	panel.busy["arrows"] = true

	panel.AddIconFiles("arrows", []DroppedFile{{Name: "up.svg", Content: svgContent}})

	pack, ok := manager.Get("arrows")
	require.True(t, ok)
	assert.Equal(t, 0, pack.IconCount())

	warnings := noticesOfKind(*notices, NoticeWarning)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].message, "busy")
}

func TestHandleDroppedFilesRoutesToOverlayOwner(t *testing.T) {
	panel, manager, _, _ := newTestPanel(t)
	require.NoError(t, manager.CreatePackDir("arrows"))
	panel.rebuild()

	panel.dropZone.Highlight("arrows", time.Now())
	panel.HandleDroppedFiles(fstest.MapFS{
		"up.svg": &fstest.MapFile{Data: svgContent},
	})

	pack, ok := manager.Get("arrows")
	require.True(t, ok)
	assert.Equal(t, 1, pack.IconCount())
}

func TestHandleDroppedFilesWithoutTarget(t *testing.T) {
	panel, manager, notices, _ := newTestPanel(t)
	require.NoError(t, manager.CreatePackDir("arrows"))
	panel.rebuild()

	panel.HandleDroppedFiles(fstest.MapFS{
		"up.svg": &fstest.MapFile{Data: svgContent},
	})

	pack, ok := manager.Get("arrows")
	require.True(t, ok)
	assert.Equal(t, 0, pack.IconCount())

	infos := noticesOfKind(*notices, NoticeInfo)
	require.Len(t, infos, 1)
	assert.Contains(t, infos[0].message, "Drop icons onto a pack")
}

func TestRefreshPackRegistersFilesFromDisk(t *testing.T) {
	panel, manager, _, _ := newTestPanel(t)
	require.NoError(t, manager.CreatePackDir("arrows"))

	packDir := filepath.Join(manager.Root(), "arrows")
	require.NoError(t, os.WriteFile(filepath.Join(packDir, "a.svg"), svgContent, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(packDir, "b.svg"), svgContent, 0644))
	panel.rebuild()

	panel.refreshPack("arrows")

	pack, ok := manager.Get("arrows")
	require.True(t, ok)
	assert.Equal(t, 2, pack.IconCount())

	row, ok := panel.Row("arrows")
	require.True(t, ok)
	assert.Equal(t, "2 icons", row.Description())
}

func TestDeletePack(t *testing.T) {
	panel, manager, notices, redraws := newTestPanel(t)
	require.NoError(t, manager.CreatePackDir("arrows"))
	panel.rebuild()
	*redraws = 0

	panel.deletePack("arrows")

	assert.False(t, manager.Exists("arrows"))
	assert.Equal(t, 1, *redraws)

	_, ok := panel.Row("arrows")
	assert.False(t, ok)

	success := noticesOfKind(*notices, NoticeSuccess)
	require.Len(t, success, 1)
	assert.Contains(t, success[0].message, "Deleted icon pack arrows")
}

func TestDescribeIcons(t *testing.T) {
	assert.Equal(t, "0 icons", describeIcons(0))
	assert.Equal(t, "1 icon", describeIcons(1))
	assert.Equal(t, "7 icons", describeIcons(7))
}
