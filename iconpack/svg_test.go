package iconpack

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSVGContent(t *testing.T) {
	assert.True(t, IsSVGContent([]byte(`<svg xmlns="http://www.w3.org/2000/svg"/>`)))
	assert.True(t, IsSVGContent([]byte("<svg>\n</svg>")))
	assert.True(t, IsSVGContent([]byte(`<?xml version="1.0"?><svg/>`)))
	assert.True(t, IsSVGContent([]byte("<!-- exported --><svg viewBox=\"0 0 16 16\"></svg>")))
	assert.True(t, IsSVGContent([]byte("<!DOCTYPE svg><svg/>")))
	assert.True(t, IsSVGContent([]byte("\xef\xbb\xbf<svg/>")))

	assert.False(t, IsSVGContent([]byte("plain text")))
	assert.False(t, IsSVGContent([]byte("<html><body/></html>")))
	assert.False(t, IsSVGContent([]byte("<svgx/>")))
	assert.False(t, IsSVGContent(nil))
}

func TestMimeTypeFor(t *testing.T) {
	assert.Equal(t, SVGMimeType, MimeTypeFor("a.svg", nil))
	assert.Equal(t, SVGMimeType, MimeTypeFor("a.SVG", nil))
	assert.Equal(t, SVGMimeType, MimeTypeFor("noext", []byte("<svg/>")))
	assert.Equal(t, "text/plain", MimeTypeFor("a.txt", []byte("hello")))
	assert.Equal(t, "text/plain", MimeTypeFor("a.png", []byte{0x89, 'P', 'N', 'G'}))
}
