package iconpack

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportImportRoundTrip(t *testing.T) {
	src := newTestManager(t)
	require.NoError(t, src.CreatePackDir("travel"))
	src.AddIcon("travel", "plane.svg", []byte("<svg>plane</svg>"))
	src.AddIcon("travel", "train.svg", []byte("<svg>train</svg>"))

	var buf bytes.Buffer
	require.NoError(t, src.ExportPack("travel", &buf))

	dst := newTestManager(t)
	name, err := dst.ImportPack(&buf)
	require.NoError(t, err)
	assert.Equal(t, "travel", name)

	pack, ok := dst.Get("travel")
	require.True(t, ok)
	require.Equal(t, 2, pack.IconCount())

	icons := pack.Icons()
	assert.Equal(t, "plane.svg", icons[0].Name)
	assert.Equal(t, "<svg>plane</svg>", string(icons[0].Content))
	assert.Equal(t, "train.svg", icons[1].Name)

	// Imported icons are persisted, so a fresh scan sees them too.
	files, err := dst.ListPackFiles("travel")
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestExportUnknownPack(t *testing.T) {
	m := newTestManager(t)
	var buf bytes.Buffer
	assert.Error(t, m.ExportPack("missing", &buf))
}

func TestImportEmptyArchive(t *testing.T) {
	src := newTestManager(t)
	require.NoError(t, src.CreatePackDir("empty"))

	var buf bytes.Buffer
	require.NoError(t, src.ExportPack("empty", &buf))

	dst := newTestManager(t)
	_, err := dst.ImportPack(&buf)
	assert.Error(t, err)
}

func TestImportRejectsExistingPack(t *testing.T) {
	src := newTestManager(t)
	require.NoError(t, src.CreatePackDir("dup"))
	src.AddIcon("dup", "a.svg", []byte("<svg/>"))

	var buf bytes.Buffer
	require.NoError(t, src.ExportPack("dup", &buf))

	dst := newTestManager(t)
	require.NoError(t, dst.CreatePackDir("dup"))
	_, err := dst.ImportPack(&buf)
	assert.ErrorIs(t, err, ErrPackExists)
}
