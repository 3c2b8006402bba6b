package render_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-emailsig/pkg/render"
	"github.com/goliatone/go-emailsig/pkg/signature"
)

type stubRenderer struct {
	name string
}

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return "text/plain" }
func (s stubRenderer) Render(context.Context, signature.Config, render.RenderOptions) ([]byte, error) {
	return []byte(s.name), nil
}

func TestRegistryRegisterAndList(t *testing.T) {
	registry := render.NewRegistry()
	registry.MustRegister(stubRenderer{name: "text"})
	registry.MustRegister(stubRenderer{name: "html"})

	if diff := cmp.Diff([]string{"html", "text"}, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if _, err := registry.Get("html"); err != nil {
		t.Fatalf("expected html to be registered: %v", err)
	}
	if err := registry.Register(stubRenderer{name: "html"}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := registry.Register(nil); err == nil {
		t.Fatalf("expected nil renderer error")
	}
	if err := registry.Register(stubRenderer{}); err == nil {
		t.Fatalf("expected empty name error")
	}
}

func TestRegistryGetMissing(t *testing.T) {
	registry := render.NewRegistry()
	_, err := registry.Get("png")
	if !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}
}

func TestRegistryContentTypes(t *testing.T) {
	registry := render.NewRegistry()
	registry.MustRegister(stubRenderer{name: "text"})
	want := map[string]string{"text": "text/plain"}
	if diff := cmp.Diff(want, registry.ContentTypes()); diff != "" {
		t.Fatalf("content types mismatch (-want +got):\n%s", diff)
	}
}
