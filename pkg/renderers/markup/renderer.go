package markup

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-emailsig/pkg/render"
	rendertemplate "github.com/goliatone/go-emailsig/pkg/render/template"
	gotemplate "github.com/goliatone/go-emailsig/pkg/render/template/gotemplate"
	"github.com/goliatone/go-emailsig/pkg/signature"
)

// Name is the registry key of the HTML renderer.
const Name = "html"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must provide templates/signature.tmpl and templates/document.tmpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// Renderer produces the table-based, inline-styled signature block that
// legacy email clients accept.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("markup renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render returns the signature block for cfg, or options.Freeform verbatim
// when set. The same cfg always yields the same bytes.
func (r *Renderer) Render(ctx context.Context, cfg signature.Config, options render.RenderOptions) ([]byte, error) {
	if r == nil || r.templates == nil {
		return nil, errors.New("markup renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var body string
	if freeform := strings.TrimSpace(options.Freeform); freeform != "" {
		body = freeform
	} else {
		view, err := buildView(cfg)
		if err != nil {
			return nil, fmt.Errorf("markup renderer: build view: %w", err)
		}
		result, err := r.templates.RenderTemplate(signatureTemplate, view)
		if err != nil {
			return nil, fmt.Errorf("markup renderer: render signature: %w", err)
		}
		body = result
	}

	if !options.Document {
		return []byte(body), nil
	}

	title := "Email signature"
	if name := cfg.FullName(); name != "" {
		title = name + " - " + title
	}
	doc, err := r.templates.RenderTemplate(documentTemplate, map[string]any{
		"title": title,
		"rtl":   cfg.RTL(),
		"body":  body,
	})
	if err != nil {
		return nil, fmt.Errorf("markup renderer: render document: %w", err)
	}
	return []byte(doc), nil
}
