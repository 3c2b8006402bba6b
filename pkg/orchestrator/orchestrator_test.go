package orchestrator_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-emailsig/pkg/orchestrator"
	"github.com/goliatone/go-emailsig/pkg/presets"
	"github.com/goliatone/go-emailsig/pkg/render"
	"github.com/goliatone/go-emailsig/pkg/signature"
)

func TestOrchestrator_DefaultRegistryRendersEveryFormat(t *testing.T) {
	orch := orchestrator.New()

	want := []string{"html", "png", "qr", "text", "vcard"}
	if diff := cmp.Diff(want, orch.Registry().List()); diff != "" {
		t.Fatalf("registry mismatch (-want +got):\n%s", diff)
	}

	output, err := orch.Generate(context.Background(), orchestrator.Request{Config: signature.Default()})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.HasPrefix(string(output), "<!--[ Start: Generated by Signature Builder ]-->") {
		t.Fatalf("expected html signature, got %q", string(output)[:60])
	}

	vcf, err := orch.Generate(context.Background(), orchestrator.Request{Config: signature.Default(), Renderer: "vcard"})
	if err != nil {
		t.Fatalf("generate vcard: %v", err)
	}
	if !strings.HasPrefix(string(vcf), "BEGIN:VCARD") {
		t.Fatalf("expected vcard output, got %q", vcf)
	}
}

func TestOrchestrator_NormalizesAndSanitizesBeforeRendering(t *testing.T) {
	renderer := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	cfg := signature.Default()
	cfg.FirstName = "  Ada  "
	cfg.FontSize = 99
	cfg.DisclaimerHTML = `<b onclick="x()">Confidential</b><script>alert(1)</script>`

	orch := orchestrator.New(orchestrator.WithRegistry(registry))
	if _, err := orch.Generate(context.Background(), orchestrator.Request{Config: cfg}); err != nil {
		t.Fatalf("generate: %v", err)
	}

	got := renderer.config
	if got.FirstName != "Ada" {
		t.Fatalf("first name not trimmed: %q", got.FirstName)
	}
	if got.FontSize != signature.MaxFontSize {
		t.Fatalf("font size not clamped: %d", got.FontSize)
	}
	if !strings.Contains(got.DisclaimerHTML, "<b>Confidential</b>") ||
		strings.Contains(got.DisclaimerHTML, "onclick") ||
		strings.Contains(got.DisclaimerHTML, "<script") {
		t.Fatalf("disclaimer not sanitized: %q", got.DisclaimerHTML)
	}
}

func TestOrchestrator_RejectsInvalidConfig(t *testing.T) {
	cfg := signature.Default()
	cfg.SeparatorStyle = "stars"

	_, err := orchestrator.New().Generate(context.Background(), orchestrator.Request{Config: cfg})
	if !errors.Is(err, signature.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestOrchestrator_AppliesPresetThroughSelector(t *testing.T) {
	manifest := &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens: map[string]string{
			presets.TokenAccent:   "#123456",
			presets.TokenFontSize: "40",
		},
		Variants: map[string]theme.Variant{
			"dark": {Tokens: map[string]string{presets.TokenAccent: "#654321"}},
		},
	}
	selector := &stubThemeSelector{selection: &theme.Selection{Theme: "acme", Variant: "dark", Manifest: manifest}}

	renderer := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	orch := orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(renderer.Name()),
		orchestrator.WithThemeSelector(selector),
	)
	_, err := orch.Generate(context.Background(), orchestrator.Request{
		Config:  signature.Default(),
		Preset:  "acme",
		Variant: "dark",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if diff := cmp.Diff([]selectorCall{{name: "acme", variant: "dark"}}, selector.calls, cmp.AllowUnexported(selectorCall{})); diff != "" {
		t.Fatalf("selector calls mismatch (-want +got):\n%s", diff)
	}
	if renderer.config.Accent != "#654321" {
		t.Fatalf("variant accent not applied: %q", renderer.config.Accent)
	}
	if renderer.config.FontSize != signature.MaxFontSize {
		t.Fatalf("preset font size not clamped: %d", renderer.config.FontSize)
	}
}

func TestOrchestrator_DefaultPreset(t *testing.T) {
	renderer := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	orch := orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultPreset("corporate:muted"),
	)
	if _, err := orch.Generate(context.Background(), orchestrator.Request{Config: signature.Default()}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if renderer.config.Accent != "#52606d" {
		t.Fatalf("default preset not applied: %q", renderer.config.Accent)
	}

	if _, err := orch.Generate(context.Background(), orchestrator.Request{Config: signature.Default(), Preset: "nope"}); !errors.Is(err, presets.ErrPresetNotFound) {
		t.Fatalf("expected ErrPresetNotFound, got %v", err)
	}
}

func TestOrchestrator_RendererResolution(t *testing.T) {
	renderer := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	orch := orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer("missing"),
	)

	// an unknown default falls back to the first registered renderer
	out, err := orch.Generate(context.Background(), orchestrator.Request{Config: signature.Default()})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if string(out) != "Alex Doe" {
		t.Fatalf("unexpected output %q", out)
	}

	_, err = orch.Generate(context.Background(), orchestrator.Request{Config: signature.Default(), Renderer: "pdf"})
	if !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}
}

func TestOrchestrator_ContextErrors(t *testing.T) {
	orch := orchestrator.New()

	var nilCtx context.Context
	if _, err := orch.Generate(nilCtx, orchestrator.Request{}); err == nil {
		t.Fatalf("expected error for nil context")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := orch.Generate(ctx, orchestrator.Request{Config: signature.Default()}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestOrchestrator_RendererErrorIsWrapped(t *testing.T) {
	boom := errors.New("boom")
	registry := render.NewRegistry()
	registry.MustRegister(&captureRenderer{err: boom})

	_, err := orchestrator.New(orchestrator.WithRegistry(registry)).
		Generate(context.Background(), orchestrator.Request{Config: signature.Default()})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped renderer error, got %v", err)
	}
	if !strings.Contains(err.Error(), "orchestrator: render output") {
		t.Fatalf("unexpected error text: %v", err)
	}
}

type captureRenderer struct {
	config  signature.Config
	options render.RenderOptions
	err     error
}

func (r *captureRenderer) Name() string {
	return "capture"
}

func (r *captureRenderer) ContentType() string {
	return "text/plain"
}

func (r *captureRenderer) Render(_ context.Context, cfg signature.Config, opts render.RenderOptions) ([]byte, error) {
	r.config = cfg
	r.options = opts
	if r.err != nil {
		return nil, r.err
	}
	return []byte(cfg.FullName()), nil
}

type selectorCall struct {
	name    string
	variant string
}

type stubThemeSelector struct {
	selection *theme.Selection
	calls     []selectorCall
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, selectorCall{name: name, variant: variant})
	return s.selection, nil
}
