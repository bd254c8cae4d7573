package iconpack

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"My Pack", "my-pack"},
		{"my-pack", "my-pack"},
		{"  Spaced   Out  ", "spaced-out"},
		{"UPPER", "upper"},
		{"tabs\tand\nnewlines", "tabs-and-newlines"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeName(tt.in), "input %q", tt.in)
	}
}

func TestNormalizeNameIdempotent(t *testing.T) {
	once := NormalizeName("My Icon Pack")
	assert.Equal(t, once, NormalizeName(once))
}

func TestDerivePrefix(t *testing.T) {
	taken := map[string]bool{}
	assert.Equal(t, "mp", DerivePrefix("my-pack", taken))

	taken["mp"] = true
	assert.Equal(t, "mp2", DerivePrefix("more-packs", taken))

	taken["mp2"] = true
	assert.Equal(t, "mp3", DerivePrefix("mini-pack", taken))

	assert.Equal(t, "p", DerivePrefix("", taken))
}

func TestIconNameFromPath(t *testing.T) {
	assert.Equal(t, "a.svg", IconNameFromPath("/packs/foo/a.svg"))
	assert.Equal(t, "b.svg", IconNameFromPath("packs/foo/b.svg"))
	assert.Equal(t, "c.svg", IconNameFromPath(`C:\packs\foo\c.svg`))
	assert.Equal(t, "plain.svg", IconNameFromPath("plain.svg"))
}
