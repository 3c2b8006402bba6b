package raster

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"net/url"
	"strings"

	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

var errNotDataURI = errors.New("raster: not a data URI")

// decodeDataURI decodes an inline image. Remote URLs are never fetched and
// report errNotDataURI.
func decodeDataURI(src string) (image.Image, error) {
	src = strings.TrimSpace(src)
	if !strings.HasPrefix(src, "data:") {
		return nil, errNotDataURI
	}
	meta, payload, ok := strings.Cut(strings.TrimPrefix(src, "data:"), ",")
	if !ok {
		return nil, errNotDataURI
	}

	var raw []byte
	if strings.HasSuffix(meta, ";base64") {
		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, err
		}
		raw = decoded
	} else {
		unescaped, err := url.PathUnescape(payload)
		if err != nil {
			return nil, err
		}
		raw = []byte(unescaped)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	return img, err
}

// fitWidth scales img to its natural width capped at maxWidth, both in CSS
// pixels, then multiplied by scale. The aspect ratio is kept.
func fitWidth(img image.Image, maxWidth, scale float64) image.Image {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return img
	}
	w := math.Min(float64(b.Dx()), maxWidth) * scale
	h := float64(b.Dy()) * w / float64(b.Dx())
	if int(w) == b.Dx() && int(h) == b.Dy() {
		return img
	}
	return resize(img, max(1, int(w)), max(1, int(h)))
}

func resize(img image.Image, w, h int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Over, nil)
	return dst
}
