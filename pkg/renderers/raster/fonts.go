package raster

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// The Go fonts stand in for every configured font family; system fonts are
// not available to a headless rasterizer.
type fontStyle int

const (
	styleRegular fontStyle = iota
	styleBold
	styleItalic
	styleBoldItalic
)

var (
	fontsOnce sync.Once
	fonts     map[fontStyle]*truetype.Font
	fontsErr  error
)

func loadFonts() (map[fontStyle]*truetype.Font, error) {
	fontsOnce.Do(func() {
		sources := map[fontStyle][]byte{
			styleRegular:    goregular.TTF,
			styleBold:       gobold.TTF,
			styleItalic:     goitalic.TTF,
			styleBoldItalic: gobolditalic.TTF,
		}
		fonts = make(map[fontStyle]*truetype.Font, len(sources))
		for style, ttf := range sources {
			parsed, err := truetype.Parse(ttf)
			if err != nil {
				fontsErr = fmt.Errorf("raster: parse font: %w", err)
				return
			}
			fonts[style] = parsed
		}
	})
	return fonts, fontsErr
}

func styleFor(bold, italic bool) fontStyle {
	switch {
	case bold && italic:
		return styleBoldItalic
	case bold:
		return styleBold
	case italic:
		return styleItalic
	default:
		return styleRegular
	}
}

// faceCache creates each style/size face once per render.
type faceCache struct {
	fonts map[fontStyle]*truetype.Font
	faces map[faceKey]font.Face
}

type faceKey struct {
	style fontStyle
	size  float64
}

func newFaceCache() (*faceCache, error) {
	loaded, err := loadFonts()
	if err != nil {
		return nil, err
	}
	return &faceCache{fonts: loaded, faces: make(map[faceKey]font.Face)}, nil
}

func (c *faceCache) face(style fontStyle, size float64) font.Face {
	key := faceKey{style: style, size: size}
	if face, ok := c.faces[key]; ok {
		return face
	}
	face := truetype.NewFace(c.fonts[style], &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	c.faces[key] = face
	return face
}

func (c *faceCache) Close() {
	for _, face := range c.faces {
		_ = face.Close()
	}
}
