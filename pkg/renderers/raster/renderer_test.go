package raster_test

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/goliatone/go-emailsig/pkg/render"
	"github.com/goliatone/go-emailsig/pkg/renderers/raster"
	"github.com/goliatone/go-emailsig/pkg/signature"
	"github.com/goliatone/go-emailsig/pkg/testsupport"
)

func decode(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	return img
}

func renderPNG(t *testing.T, cfg signature.Config, opts render.RenderOptions) image.Image {
	t.Helper()
	out, err := raster.New().Render(testsupport.Context(), cfg, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return decode(t, out)
}

func dataURI(t *testing.T, w, h int, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestRenderDefaultConfigProducesWhitePNG(t *testing.T) {
	img := renderPNG(t, signature.Default(), render.RenderOptions{})

	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		t.Fatalf("empty image bounds %v", b)
	}
	r, g, bl, _ := img.At(0, 0).RGBA()
	if r != 0xffff || g != 0xffff || bl != 0xffff {
		t.Fatalf("expected white background, got %v", img.At(0, 0))
	}
}

func TestRenderPixelRatioScalesCanvas(t *testing.T) {
	cfg := signature.Default()
	one := renderPNG(t, cfg, render.RenderOptions{PixelRatio: 1}).Bounds()
	two := renderPNG(t, cfg, render.RenderOptions{}).Bounds()

	// glyph advances are hinted per size, so the ratio is approximate
	if two.Dx() < one.Dx()*3/2 || two.Dx() > one.Dx()*5/2 {
		t.Fatalf("width at ratio 2 = %d, ratio 1 = %d", two.Dx(), one.Dx())
	}
	if two.Dy() < one.Dy()*3/2 || two.Dy() > one.Dy()*5/2 {
		t.Fatalf("height at ratio 2 = %d, ratio 1 = %d", two.Dy(), one.Dy())
	}
}

func TestRenderDrawsInlineLogo(t *testing.T) {
	cfg := signature.Config{
		FirstName:    "Ada",
		FontSize:     13,
		ShowLogo:     true,
		LogoPosition: signature.LogoTop,
		LogoURL:      dataURI(t, 300, 40, color.RGBA{R: 255, A: 255}),
	}
	img := renderPNG(t, cfg, render.RenderOptions{PixelRatio: 1})

	// logo is capped at 200px and drawn after the padding and spacing
	if img.Bounds().Dx() < 200 {
		t.Fatalf("canvas narrower than logo: %v", img.Bounds())
	}
	r, g, b, _ := img.At(16+100, 16+20).RGBA()
	if r < 0xf000 || g > 0x1000 || b > 0x1000 {
		t.Fatalf("expected red logo pixel, got %v", img.At(116, 36))
	}
}

func TestRenderSkipsRemoteImages(t *testing.T) {
	cfg := signature.Config{
		FirstName:    "Ada",
		ShowLogo:     true,
		LogoPosition: signature.LogoTop,
		LogoURL:      "https://example.com/logo.png",
	}
	withRemote := renderPNG(t, cfg, render.RenderOptions{PixelRatio: 1}).Bounds()
	cfg.ShowLogo = false
	without := renderPNG(t, cfg, render.RenderOptions{PixelRatio: 1}).Bounds()
	if withRemote != without {
		t.Fatalf("remote logo changed layout: %v vs %v", withRemote, without)
	}
}

func TestRenderEmptyConfig(t *testing.T) {
	_, err := raster.New().Render(testsupport.Context(), signature.Config{}, render.RenderOptions{})
	if !errors.Is(err, raster.ErrEmptySignature) {
		t.Fatalf("expected ErrEmptySignature, got %v", err)
	}
}

func TestRenderFreeformText(t *testing.T) {
	img := renderPNG(t, signature.Config{}, render.RenderOptions{Freeform: "<p>Hello</p>", PixelRatio: 1})
	if img.Bounds().Dy() <= 32 {
		t.Fatalf("expected text row in freeform image, got %v", img.Bounds())
	}
}
