package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-emailsig/pkg/render"
	"github.com/goliatone/go-emailsig/pkg/signature"
)

const (
	DefaultHTMLName = "signature.html"
	DefaultPNGName  = "signature.png"
)

// Download writes data to dir/name and returns the written path. Only the
// base of name is used; an empty name writes signature.html.
func Download(dir, name string, data []byte) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultHTMLName
	}
	name = filepath.Base(name)
	if name == "." || name == string(filepath.Separator) {
		return "", errors.New("export: invalid file name")
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("export: create dir: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("export: write %s: %w", name, err)
	}
	return path, nil
}

// DownloadHTML saves html as signature.html in dir.
func DownloadHTML(dir, html string) Notice {
	path, err := Download(dir, DefaultHTMLName, []byte(html))
	if err != nil {
		return failure(MessageDownloadFailed, err)
	}
	n := success(MessageDownloaded)
	n.Path = path
	return n
}

// ExportPNG rasterizes cfg with renderer at the options' pixel ratio and
// saves signature.png in dir.
func ExportPNG(ctx context.Context, renderer render.Renderer, cfg signature.Config, options render.RenderOptions, dir string) Notice {
	if renderer == nil {
		return failure(MessagePNGFailed, errors.New("export: png renderer is nil"))
	}
	data, err := renderer.Render(ctx, cfg, options)
	if err != nil {
		return failure(MessagePNGFailed, err)
	}
	path, err := Download(dir, DefaultPNGName, data)
	if err != nil {
		return failure(MessagePNGFailed, err)
	}
	n := success(MessagePNGExported)
	n.Path = path
	return n
}
