package script

import (
	"path/filepath"
	"testing"

	"iconstudio/iconpack"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *iconpack.Manager {
	t.Helper()
	m, err := iconpack.NewManager(t.TempDir())
	require.NoError(t, err)
	return m
}

func TestExecuteCreatesPack(t *testing.T) {
	m := newTestManager(t)

	val, err := Execute(m, `iconpacks.Create("My Pack")`, "test.js")
	require.NoError(t, err)
	assert.Equal(t, "my-pack", val.Export())
	assert.True(t, m.Exists("my-pack"))
}

func TestExecuteAddAndCount(t *testing.T) {
	m := newTestManager(t)

	src := `
		iconpacks.Create("arrows");
		iconpacks.AddIcon("arrows", "up.svg", "<svg>up</svg>");
		iconpacks.AddIcon("arrows", "down.svg", "<svg>down</svg>");
		iconpacks.Count("arrows");
	`
	val, err := Execute(m, src, "test.js")
	require.NoError(t, err)
	assert.EqualValues(t, 2, val.ToInteger())

	pack, ok := m.Get("arrows")
	require.True(t, ok)
	assert.Equal(t, []string{"up.svg", "down.svg"}, []string{pack.Icons()[0].Name, pack.Icons()[1].Name})
}

func TestExecuteRejectsNonSVG(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.CreatePackDir("p"))

	_, err := Execute(m, `iconpacks.AddIcon("p", "notes.txt", "hello")`, "test.js")
	assert.Error(t, err)

	pack, _ := m.Get("p")
	assert.Equal(t, 0, pack.IconCount())
}

func TestExecuteExportImport(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.CreatePackDir("travel"))
	m.AddIcon("travel", "plane.svg", []byte("<svg/>"))

	archive := filepath.Join(t.TempDir(), "travel.iconpack")
	_, err := Execute(m, `iconpacks.Export("travel", `+quote(archive)+`)`, "test.js")
	require.NoError(t, err)

	dst := newTestManager(t)
	val, err := Execute(dst, `iconpacks.Import(`+quote(archive)+`)`, "test.js")
	require.NoError(t, err)
	assert.Equal(t, "travel", val.Export())
	assert.True(t, dst.Exists("travel"))
}

func TestExecuteScriptError(t *testing.T) {
	m := newTestManager(t)
	_, err := Execute(m, `iconpacks.Delete("nope")`, "test.js")
	assert.Error(t, err)
}

func quote(s string) string {
	return `"` + s + `"`
}
