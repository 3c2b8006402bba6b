// Package session holds the editing state of one signature: the current
// configuration plus the optional freeform HTML override.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-emailsig/pkg/orchestrator"
	"github.com/goliatone/go-emailsig/pkg/render"
	"github.com/goliatone/go-emailsig/pkg/sanitize"
	"github.com/goliatone/go-emailsig/pkg/signature"
)

// ErrSocialIndex is returned when a social link index is out of range.
var ErrSocialIndex = errors.New("session: social link index out of range")

// Generator renders a configuration. *orchestrator.Orchestrator satisfies it.
type Generator interface {
	Generate(ctx context.Context, req orchestrator.Request) ([]byte, error)
}

// Option customises a Session.
type Option func(*Session)

// WithConfig starts the session from cfg instead of signature.Default.
func WithConfig(cfg signature.Config) Option {
	return func(s *Session) {
		s.config = cfg.Clone()
	}
}

// WithPreset renders previews with the given preset and variant.
func WithPreset(name, variant string) Option {
	return func(s *Session) {
		s.preset, s.variant = name, variant
	}
}

// Session is not safe for concurrent use.
type Session struct {
	gen          Generator
	config       signature.Config
	preset       string
	variant      string
	freeformMode bool
	freeformHTML string
}

// New returns a session backed by gen. A nil gen uses orchestrator.New().
func New(gen Generator, options ...Option) *Session {
	if gen == nil {
		gen = orchestrator.New()
	}
	s := &Session{
		gen:    gen,
		config: signature.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Config returns a copy of the current configuration.
func (s *Session) Config() signature.Config {
	return s.config.Clone()
}

// FreeformMode reports whether the freeform override is switched on.
func (s *Session) FreeformMode() bool {
	return s.freeformMode
}

// FreeformHTML returns the stored freeform markup, which may be empty.
func (s *Session) FreeformHTML() string {
	return s.freeformHTML
}

// Generated renders the configuration, ignoring any freeform override.
func (s *Session) Generated(ctx context.Context) (string, error) {
	out, err := s.gen.Generate(ctx, orchestrator.Request{
		Config:  s.config,
		Preset:  s.preset,
		Variant: s.variant,
	})
	if err != nil {
		return "", fmt.Errorf("session: generate: %w", err)
	}
	return string(out), nil
}

// Preview returns the markup every export uses: the freeform HTML when
// freeform mode is on and it is non-empty, otherwise the generated HTML.
func (s *Session) Preview(ctx context.Context) (string, error) {
	if s.freeformMode && strings.TrimSpace(s.freeformHTML) != "" {
		return s.freeformHTML, nil
	}
	return s.Generated(ctx)
}

// RenderOptions returns options that carry the freeform override to
// renderers, so non-HTML formats follow the preview.
func (s *Session) RenderOptions() render.RenderOptions {
	if s.freeformMode {
		return render.RenderOptions{Freeform: s.freeformHTML}
	}
	return render.RenderOptions{}
}

// SetFreeform toggles freeform mode. Switching it on while the freeform
// markup is empty seeds it with the generated HTML.
func (s *Session) SetFreeform(ctx context.Context, on bool) error {
	if on && strings.TrimSpace(s.freeformHTML) == "" {
		html, err := s.Generated(ctx)
		if err != nil {
			return err
		}
		s.freeformHTML = html
	}
	s.freeformMode = on
	return nil
}

// ImportGenerated replaces the freeform markup with the generated HTML and
// switches freeform mode on.
func (s *Session) ImportGenerated(ctx context.Context) error {
	html, err := s.Generated(ctx)
	if err != nil {
		return err
	}
	s.freeformHTML = html
	s.freeformMode = true
	return nil
}

// ClearFreeform empties the freeform markup. The mode is left as is, so the
// preview falls back to the generated HTML.
func (s *Session) ClearFreeform() {
	s.freeformHTML = ""
}

// EditFreeform stores sanitized markup from the rich-text surface.
func (s *Session) EditFreeform(html string) {
	s.freeformHTML = sanitize.RichText(html)
}

// Update applies fn to the configuration.
func (s *Session) Update(fn func(*signature.Config)) {
	if fn == nil {
		return
	}
	cfg := s.config.Clone()
	fn(&cfg)
	s.config = cfg
}

// AddSocial appends a placeholder link labelled "New" with an empty href.
func (s *Session) AddSocial() {
	s.Update(func(cfg *signature.Config) {
		cfg.Social = append(cfg.Social, signature.SocialLink{Label: "New"})
	})
}

// RemoveSocial drops the link at index i.
func (s *Session) RemoveSocial(i int) error {
	if i < 0 || i >= len(s.config.Social) {
		return fmt.Errorf("%w: %d", ErrSocialIndex, i)
	}
	s.Update(func(cfg *signature.Config) {
		cfg.Social = append(cfg.Social[:i], cfg.Social[i+1:]...)
	})
	return nil
}

// UpdateSocial replaces the label and href of the link at index i.
func (s *Session) UpdateSocial(i int, label, href string) error {
	if i < 0 || i >= len(s.config.Social) {
		return fmt.Errorf("%w: %d", ErrSocialIndex, i)
	}
	s.Update(func(cfg *signature.Config) {
		cfg.Social[i] = signature.SocialLink{Label: label, Href: href}
	})
	return nil
}

// Reset restores the default configuration. Freeform state is kept.
func (s *Session) Reset() {
	s.config = signature.Default()
}
