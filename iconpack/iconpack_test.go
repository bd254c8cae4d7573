package iconpack

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(t.TempDir())
	require.NoError(t, err)
	return m
}

func TestCreatePackDir(t *testing.T) {
	m := newTestManager(t)

	require.NoError(t, m.CreatePackDir("my-pack"))

	assert.True(t, m.Exists("my-pack"))
	info, err := os.Stat(filepath.Join(m.Root(), "my-pack"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	packs := m.All()
	require.Len(t, packs, 1)
	assert.Equal(t, "my-pack", packs[0].Name)
	assert.Equal(t, "mp", packs[0].Prefix)
}

func TestCreatePackDirDuplicate(t *testing.T) {
	m := newTestManager(t)

	require.NoError(t, m.CreatePackDir("my-pack"))
	assert.ErrorIs(t, m.CreatePackDir("my-pack"), ErrPackExists)
	assert.Len(t, m.All(), 1)
}

func TestAddIconKeepsOrderAndReplacesInPlace(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.CreatePackDir("arrows"))

	m.AddIcon("arrows", "up.svg", []byte("<svg>up</svg>"))
	m.AddIcon("arrows", "down.svg", []byte("<svg>down</svg>"))
	m.AddIcon("arrows", "up.svg", []byte("<svg>up2</svg>"))

	pack, ok := m.Get("arrows")
	require.True(t, ok)
	assert.Equal(t, 2, pack.IconCount())

	icons := pack.Icons()
	assert.Equal(t, "up.svg", icons[0].Name)
	assert.Equal(t, "down.svg", icons[1].Name)

	content, ok := pack.Icon("up.svg")
	require.True(t, ok)
	assert.Equal(t, "<svg>up2</svg>", string(content))
}

func TestCreateFileAndListPackFiles(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.CreatePackDir("shapes"))

	require.NoError(t, m.CreateFile("shapes", "circle.svg", []byte("<svg/>")))
	require.NoError(t, m.CreateFile("shapes", "square.svg", []byte("<svg/>")))
	// Non-SVG files in the directory are not listed.
	require.NoError(t, os.WriteFile(filepath.Join(m.Root(), "shapes", "notes.txt"), []byte("x"), 0o644))

	files, err := m.ListPackFiles("shapes")
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "circle.svg", IconNameFromPath(files[0]))
	assert.Equal(t, "square.svg", IconNameFromPath(files[1]))

	content, err := m.ReadIconFile(files[0])
	require.NoError(t, err)
	assert.Equal(t, "<svg/>", string(content))
}

func TestRemoveIcon(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.CreatePackDir("shapes"))
	require.NoError(t, m.CreateFile("shapes", "circle.svg", []byte("<svg/>")))
	m.AddIcon("shapes", "circle.svg", []byte("<svg/>"))

	require.NoError(t, m.RemoveIcon("shapes", "circle.svg"))

	pack, _ := m.Get("shapes")
	assert.Equal(t, 0, pack.IconCount())
	_, err := os.Stat(filepath.Join(m.Root(), "shapes", "circle.svg"))
	assert.True(t, os.IsNotExist(err))

	assert.Error(t, m.RemoveIcon("shapes", "circle.svg"))
}

func TestDeletePack(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.CreatePackDir("gone"))
	require.NoError(t, m.CreateFile("gone", "a.svg", []byte("<svg/>")))

	require.NoError(t, m.DeletePack("gone"))

	assert.False(t, m.Exists("gone"))
	assert.Empty(t, m.All())
	_, err := os.Stat(filepath.Join(m.Root(), "gone"))
	assert.True(t, os.IsNotExist(err))

	assert.Error(t, m.DeletePack("gone"))
}

func TestStartupScan(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "legacy-pack"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "legacy-pack", "a.svg"), []byte("<svg>a</svg>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "legacy-pack", "b.svg"), []byte("<svg>b</svg>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stray.txt"), []byte("x"), 0o644))

	m, err := NewManager(dir)
	require.NoError(t, err)

	pack, ok := m.Get("legacy-pack")
	require.True(t, ok)
	assert.Equal(t, 2, pack.IconCount())
	assert.Equal(t, "lp", pack.Prefix)
}

func TestCreatePackDirReturnsWithSubscribersAttached(t *testing.T) {
	m := newTestManager(t)
	ch := m.Subscribe()
	defer m.Unsubscribe(ch)
	m.SetPackChangeCallback(func(PackEvent) {})

	done := make(chan error, 1)
	go func() { done <- m.CreatePackDir("observed") }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("CreatePackDir did not return while events were being delivered")
	}

	e := <-ch
	assert.Equal(t, PackCreated, e.Kind)
	assert.Equal(t, "observed", e.Pack)
}

func TestPackReadsAreSafeDuringConcurrentAddIcon(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.CreatePackDir("busy"))
	pack, ok := m.Get("busy")
	require.True(t, ok)

	// Pack pointers escape the manager, so reads race the GUI goroutine's
	// writes unless the pack guards its own registry.
	const writes = 200
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < writes; i++ {
			m.AddIcon("busy", fmt.Sprintf("icon-%03d.svg", i), []byte("<svg/>"))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < writes; i++ {
			pack.IconCount()
			pack.Icons()
			pack.Icon("icon-000.svg")
		}
	}()
	wg.Wait()

	assert.Equal(t, writes, pack.IconCount())
	icons := pack.Icons()
	require.Len(t, icons, writes)
	assert.Equal(t, "icon-000.svg", icons[0].Name)
}

func TestPackEvents(t *testing.T) {
	m := newTestManager(t)
	ch := m.Subscribe()
	defer m.Unsubscribe(ch)

	var fromCallback []PackEventKind
	m.SetPackChangeCallback(func(e PackEvent) {
		fromCallback = append(fromCallback, e.Kind)
	})

	require.NoError(t, m.CreatePackDir("evt"))
	m.AddIcon("evt", "a.svg", []byte("<svg/>"))
	require.NoError(t, m.DeletePack("evt"))

	assert.Equal(t, []PackEventKind{PackCreated, IconAdded, PackDeleted}, fromCallback)

	e := <-ch
	assert.Equal(t, PackCreated, e.Kind)
	assert.Equal(t, "evt", e.Pack)
	e = <-ch
	assert.Equal(t, IconAdded, e.Kind)
	assert.Equal(t, "a.svg", e.Icon)
	assert.Equal(t, 1, e.Icons)
	e = <-ch
	assert.Equal(t, PackDeleted, e.Kind)
}
