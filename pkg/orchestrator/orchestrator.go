package orchestrator

import (
	"context"
	"errors"
	"fmt"

	theme "github.com/goliatone/go-theme"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-emailsig/pkg/presets"
	"github.com/goliatone/go-emailsig/pkg/render"
	"github.com/goliatone/go-emailsig/pkg/renderers/contact"
	"github.com/goliatone/go-emailsig/pkg/renderers/markup"
	"github.com/goliatone/go-emailsig/pkg/renderers/raster"
	"github.com/goliatone/go-emailsig/pkg/renderers/text"
	"github.com/goliatone/go-emailsig/pkg/sanitize"
	"github.com/goliatone/go-emailsig/pkg/signature"
)

const defaultRendererName = markup.Name

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithThemeSelector resolves request presets through selector instead of the
// built-in preset catalogue.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.selector = selector
	}
}

// WithDefaultPreset applies the given preset to requests that do not name
// one. The reference uses the "name[:variant]" form.
func WithDefaultPreset(ref string) Option {
	return func(o *Orchestrator) {
		o.defaultPreset, o.defaultVariant = presets.ParseRef(ref)
	}
}

// WithTransformer registers a Transformer that can mutate the configuration
// after presets are applied and before the disclaimer is sanitized.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		if t == nil {
			return
		}
		o.transformers = append(o.transformers, t)
	}
}

// WithLogger sets the logger used for pipeline diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
		o.loggerSet = true
	}
}

// Orchestrator coordinates the pipeline from a signature configuration to
// rendered output. It applies sensible defaults (every built-in renderer,
// the built-in presets) while remaining open to dependency injection.
type Orchestrator struct {
	registry        *render.Registry
	defaultRenderer string
	selector        theme.ThemeSelector
	defaultPreset   string
	defaultVariant  string
	transformers    []Transformer
	logger          zerolog.Logger
	loggerSet       bool
	initialiseErr   error
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers
// can start with a single constructor call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one render of a signature configuration.
type Request struct {
	// Config is the signature to render. It is normalized and validated
	// before any preset is applied.
	Config signature.Config

	// Renderer names the renderer to use. If empty, the orchestrator falls
	// back to the configured default renderer.
	Renderer string

	// Preset names a style preset whose tokens overlay the design fields.
	// Empty keeps the configuration's own design values unless a default
	// preset was configured.
	Preset string

	// Variant selects a variant of Preset.
	Variant string

	// Options carries per-request instructions such as freeform overrides,
	// document wrapping and pixel ratio.
	Options render.RenderOptions
}

// Registry exposes the renderer registry so callers can list formats and
// content types.
func (o *Orchestrator) Registry() *render.Registry {
	return o.registry
}

// Prepare runs every pipeline stage except rendering and returns the
// configuration a renderer would receive.
func (o *Orchestrator) Prepare(ctx context.Context, req Request) (signature.Config, error) {
	if ctx == nil {
		return signature.Config{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return signature.Config{}, err
	}
	if err := o.initialiseErr; err != nil {
		return signature.Config{}, err
	}
	if !o.defaultsApplied {
		o.applyDefaults()
		if err := o.initialiseErr; err != nil {
			return signature.Config{}, err
		}
	}

	cfg := signature.Normalize(req.Config)
	if err := signature.Validate(cfg); err != nil {
		return signature.Config{}, fmt.Errorf("orchestrator: validate config: %w", err)
	}

	cfg, err := o.applyPreset(cfg, req.Preset, req.Variant)
	if err != nil {
		return signature.Config{}, err
	}
	if err := o.applyTransformers(ctx, &cfg); err != nil {
		return signature.Config{}, err
	}
	if len(o.transformers) > 0 {
		// transformers may write unclamped sizes or unknown enums
		cfg = signature.Normalize(cfg)
		if err := signature.Validate(cfg); err != nil {
			return signature.Config{}, fmt.Errorf("orchestrator: validate transformed config: %w", err)
		}
	}

	cfg.DisclaimerHTML = sanitize.RichText(cfg.DisclaimerHTML)
	return cfg, nil
}

// Generate executes the normalize → validate → preset → transform →
// re-validate → sanitize → render sequence and returns the rendered bytes (HTML for the default renderer).
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	cfg, err := o.Prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	o.logger.Debug().
		Str("renderer", renderer.Name()).
		Str("preset", req.Preset).
		Bool("freeform", req.Options.Freeform != "").
		Msg("rendering signature")

	output, err := renderer.Render(ctx, cfg, req.Options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}

	return output, nil
}

func (o *Orchestrator) applyPreset(cfg signature.Config, name, variant string) (signature.Config, error) {
	if name == "" {
		name, variant = o.defaultPreset, o.defaultVariant
	}
	if name == "" {
		return cfg, nil
	}
	if o.selector == nil {
		return cfg, errors.New("orchestrator: theme selector is nil")
	}
	selection, err := o.selector.Select(name, variant)
	if err != nil {
		return cfg, fmt.Errorf("orchestrator: select preset: %w", err)
	}
	out, err := presets.Apply(cfg, selection)
	if err != nil {
		return cfg, fmt.Errorf("orchestrator: apply preset: %w", err)
	}
	// presets may carry sizes outside the form's bounds
	return signature.Normalize(out), nil
}

func (o *Orchestrator) applyTransformers(ctx context.Context, cfg *signature.Config) error {
	for _, transformer := range o.transformers {
		if err := transformer.Transform(ctx, cfg); err != nil {
			return fmt.Errorf("orchestrator: transform config: %w", err)
		}
	}
	return nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if !o.loggerSet {
		o.logger = zerolog.Nop()
	}
	if o.selector == nil {
		o.selector = presets.Default()
	}
	if o.registry == nil {
		registry, err := DefaultRegistry()
		if err != nil {
			o.initialiseErr = err
		}
		o.registry = registry
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}

	o.defaultsApplied = true
}

// DefaultRegistry returns a registry holding every built-in renderer: html,
// text, png, vcard and qr.
func DefaultRegistry() (*render.Registry, error) {
	registry := render.NewRegistry()
	html, err := markup.New()
	if err != nil {
		return registry, fmt.Errorf("orchestrator: default renderer: %w", err)
	}
	for _, renderer := range []render.Renderer{
		html,
		text.New(),
		raster.New(),
		contact.VCardRenderer{},
		contact.QRRenderer{},
	} {
		if err := registry.Register(renderer); err != nil {
			return registry, fmt.Errorf("orchestrator: default registry: %w", err)
		}
	}
	return registry, nil
}
