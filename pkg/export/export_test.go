package export_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-emailsig/pkg/export"
	"github.com/goliatone/go-emailsig/pkg/render"
	"github.com/goliatone/go-emailsig/pkg/renderers/raster"
	"github.com/goliatone/go-emailsig/pkg/signature"
)

type recordingClipboard struct {
	html, plain string
	err         error
}

func (r *recordingClipboard) WriteHTML(_ context.Context, html, plain string) error {
	if r.err != nil {
		return r.err
	}
	r.html, r.plain = html, plain
	return nil
}

func TestCopyHTMLWritesPlainFallback(t *testing.T) {
	clip := &recordingClipboard{}
	html := `<table><tr><td><b>Ada</b> Lovelace</td></tr><tr><td>Engineer</td></tr></table>`

	notice := export.CopyHTML(context.Background(), clip, html)
	if !notice.OK() || notice.Message != export.MessageCopied {
		t.Fatalf("unexpected notice %+v", notice)
	}
	if clip.html != html {
		t.Fatalf("html not copied verbatim: %q", clip.html)
	}
	if strings.Contains(clip.plain, "<") || !strings.Contains(clip.plain, "Ada Lovelace") {
		t.Fatalf("plain fallback = %q", clip.plain)
	}
}

func TestCopyHTMLFailure(t *testing.T) {
	notice := export.CopyHTML(context.Background(), &recordingClipboard{err: errors.New("denied")}, "<p>x</p>")
	if notice.OK() || notice.Message != export.MessageCopyFailed || notice.Err == nil {
		t.Fatalf("unexpected notice %+v", notice)
	}
}

func TestCopyRenderedNormalizesMarkup(t *testing.T) {
	clip := &recordingClipboard{}
	notice := export.CopyRendered(context.Background(), clip, "<!-- start --><table><tr><td>A<!-- x --></td></tr></table>")
	if notice.Message != export.MessageRenderedCopied {
		t.Fatalf("unexpected notice %+v", notice)
	}
	want := "<table><tbody><tr><td>A</td></tr></tbody></table>"
	if clip.html != want {
		t.Fatalf("rendered markup = %q, want %q", clip.html, want)
	}

	notice = export.CopyRendered(context.Background(), clip, "  ")
	if notice.Message != export.MessagePreviewNotFound {
		t.Fatalf("expected preview not found, got %+v", notice)
	}

	notice = export.CopyRendered(context.Background(), &recordingClipboard{err: errors.New("nope")}, "<p>x</p>")
	if notice.Message != export.MessageRenderedFailed {
		t.Fatalf("expected rendered failure, got %+v", notice)
	}
}

func TestOSC52ClipboardWritesSequence(t *testing.T) {
	var buf bytes.Buffer
	clip := &export.OSC52Clipboard{Out: &buf}
	if err := clip.WriteHTML(context.Background(), "<b>hi</b>", "hi"); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "\x1b]52;c;") {
		t.Fatalf("unexpected sequence prefix %q", out)
	}
	if !strings.Contains(out, base64.StdEncoding.EncodeToString([]byte("<b>hi</b>"))) {
		t.Fatalf("sequence does not carry the html payload: %q", out)
	}

	buf.Reset()
	clip.Multiplexer = export.MultiplexerTmux
	if err := clip.WriteHTML(context.Background(), "x", "x"); err != nil {
		t.Fatalf("write tmux: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "\x1bPtmux;") {
		t.Fatalf("expected tmux passthrough, got %q", buf.String())
	}

	if err := (&export.OSC52Clipboard{}).WriteHTML(context.Background(), "x", "x"); !errors.Is(err, export.ErrNoTerminal) {
		t.Fatalf("expected ErrNoTerminal, got %v", err)
	}
}

func TestDetectMultiplexer(t *testing.T) {
	env := func(values map[string]string) func(string) string {
		return func(key string) string { return values[key] }
	}
	cases := []struct {
		values map[string]string
		want   export.Multiplexer
	}{
		{map[string]string{}, export.MultiplexerNone},
		{map[string]string{"TMUX": "/tmp/tmux-1/default,1,0"}, export.MultiplexerTmux},
		{map[string]string{"STY": "1234.pts-0"}, export.MultiplexerScreen},
		{map[string]string{"TERM": "screen-256color"}, export.MultiplexerScreen},
	}
	for _, tc := range cases {
		if got := export.DetectMultiplexer(env(tc.values)); got != tc.want {
			t.Fatalf("DetectMultiplexer(%v) = %v, want %v", tc.values, got, tc.want)
		}
	}
}

func TestDownloadKeepsFilesInsideDir(t *testing.T) {
	dir := t.TempDir()
	path, err := export.Download(dir, "../escape.html", []byte("<p>x</p>"))
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if path != filepath.Join(dir, "escape.html") {
		t.Fatalf("unexpected path %q", path)
	}

	notice := export.DownloadHTML(filepath.Join(dir, "nested"), "<p>sig</p>")
	if !notice.OK() {
		t.Fatalf("download html failed: %+v", notice)
	}
	data, err := os.ReadFile(notice.Path)
	if err != nil {
		t.Fatalf("read download: %v", err)
	}
	if string(data) != "<p>sig</p>" || filepath.Base(notice.Path) != export.DefaultHTMLName {
		t.Fatalf("unexpected download %q at %s", data, notice.Path)
	}
}

func TestExportPNG(t *testing.T) {
	dir := t.TempDir()
	notice := export.ExportPNG(context.Background(), raster.New(), signature.Default(), render.RenderOptions{}, dir)
	if !notice.OK() {
		t.Fatalf("export png failed: %+v", notice)
	}
	data, err := os.ReadFile(notice.Path)
	if err != nil {
		t.Fatalf("read png: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")) {
		t.Fatalf("exported file is not a png")
	}

	notice = export.ExportPNG(context.Background(), raster.New(), signature.Config{}, render.RenderOptions{}, dir)
	if notice.OK() || notice.Message != export.MessagePNGFailed {
		t.Fatalf("expected png failure notice, got %+v", notice)
	}
}
