// Package emailsig renders email signatures: nested-table HTML with inline
// styles that legacy mail clients accept, plus plain text, PNG, vCard and QR
// variants of the same configuration.
//
// Most callers need a single call:
//
//	html, err := emailsig.GenerateHTML(emailsig.DefaultConfig())
//
// Callers that render repeatedly or need other formats build a Generator.
package emailsig

import (
	"context"

	theme "github.com/goliatone/go-theme"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-emailsig/pkg/orchestrator"
	"github.com/goliatone/go-emailsig/pkg/render"
	"github.com/goliatone/go-emailsig/pkg/signature"
)

// Config is the signature configuration record.
type Config = signature.Config

// SocialLink is a labelled profile URL.
type SocialLink = signature.SocialLink

// RenderOptions describes per-request overrides such as freeform HTML,
// document wrapping and pixel ratio.
type RenderOptions = render.RenderOptions

// Request describes a single render through the Generator.
type Request = orchestrator.Request

// Generator runs the normalize → validate → preset → transform → sanitize →
// render pipeline.
type Generator = orchestrator.Orchestrator

// Option customises a Generator.
type Option = orchestrator.Option

// DefaultConfig returns the starter configuration.
func DefaultConfig() Config {
	return signature.Default()
}

// New constructs a Generator with every built-in renderer registered.
func New(options ...Option) *Generator {
	return orchestrator.New(options...)
}

// GenerateHTML renders cfg with the default HTML renderer. It is the
// simplest entry point for callers that just want the signature markup.
func GenerateHTML(cfg Config, options ...Option) (string, error) {
	out, err := New(options...).Generate(context.Background(), Request{Config: cfg})
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Generate renders cfg with the named renderer ("html", "text", "png",
// "vcard" or "qr").
func Generate(ctx context.Context, cfg Config, rendererName string, options ...Option) ([]byte, error) {
	return New(options...).Generate(ctx, Request{
		Config:   cfg,
		Renderer: rendererName,
	})
}

// WithRegistry replaces the built-in renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return orchestrator.WithRegistry(registry)
}

// WithDefaultRenderer changes the renderer used when a request names none.
func WithDefaultRenderer(name string) Option {
	return orchestrator.WithDefaultRenderer(name)
}

// WithThemeSelector passes a go-theme selector through to the generator so
// preset/variant choices resolve against it instead of the built-in presets.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return orchestrator.WithThemeSelector(selector)
}

// WithDefaultPreset applies a "name[:variant]" preset to requests that name
// none.
func WithDefaultPreset(ref string) Option {
	return orchestrator.WithDefaultPreset(ref)
}

// WithTransformer appends a step that edits the configuration after the
// preset is applied.
func WithTransformer(t orchestrator.Transformer) Option {
	return orchestrator.WithTransformer(t)
}

// WithLogger sets the pipeline logger.
func WithLogger(logger zerolog.Logger) Option {
	return orchestrator.WithLogger(logger)
}
