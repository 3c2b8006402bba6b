package contact_test

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/goliatone/go-emailsig/pkg/render"
	"github.com/goliatone/go-emailsig/pkg/renderers/contact"
	"github.com/goliatone/go-emailsig/pkg/signature"
	"github.com/goliatone/go-emailsig/pkg/testsupport"
)

func TestVCardRenderer(t *testing.T) {
	r := contact.VCardRenderer{}
	out, err := r.Render(testsupport.Context(), signature.Default(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(string(out), "BEGIN:VCARD\r\n") {
		t.Fatalf("unexpected vcard: %q", out)
	}
	if r.ContentType() != "text/vcard; charset=utf-8" {
		t.Fatalf("content type = %q", r.ContentType())
	}
}

func TestQRRendererScalesWithPixelRatio(t *testing.T) {
	r := contact.QRRenderer{Size: 100}
	out, err := r.Render(testsupport.Context(), signature.Default(), render.RenderOptions{PixelRatio: 2})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := img.Bounds().Dx(); got != 200 {
		t.Fatalf("qr width = %d, want 200", got)
	}
}
