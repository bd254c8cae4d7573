package app

import (
	"log"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Global font cache so widgets can request arbitrary sizes without
// re-parsing the font on every frame.
var (
	fontCache        = make(map[float64]font.Face)
	fontCacheMux     sync.RWMutex
	parsedFont       *opentype.Font
	fontLoadOnce     sync.Once
	fontLoadError    error
	maxFontCacheSize = 20
)

// initFont parses the embedded font once
func initFont() {
	parsedFont, fontLoadError = opentype.Parse(goregular.TTF)
	if fontLoadError != nil {
		log.Printf("[FONT] Failed to parse Go Regular: %v, using default font", fontLoadError)
	}
}

// loadFont returns a cached face for the given size, creating it on demand.
func loadFont(size float64) font.Face {
	fontLoadOnce.Do(initFont)

	// Round font size to reduce cache misses
	size = math.Round(size*2) / 2

	fontCacheMux.RLock()
	if cachedFont, exists := fontCache[size]; exists {
		fontCacheMux.RUnlock()
		return cachedFont
	}
	fontCacheMux.RUnlock()

	if fontLoadError != nil || parsedFont == nil {
		return basicfont.Face7x13
	}

	face, err := opentype.NewFace(parsedFont, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		log.Printf("[FONT] Failed to create font face: %v, using default font", err)
		return basicfont.Face7x13
	}

	fontCacheMux.Lock()
	if len(fontCache) >= maxFontCacheSize {
		// Evict one arbitrary entry to make space
		for key := range fontCache {
			delete(fontCache, key)
			break
		}
	}
	fontCache[size] = face
	fontCacheMux.Unlock()

	return face
}
