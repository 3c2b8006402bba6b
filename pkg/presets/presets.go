// Package presets expresses signature style presets as go-theme manifests.
// A manifest's tokens overlay the design fields of a signature.Config; each
// built-in preset carries a "muted" variant.
package presets

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-emailsig/pkg/signature"
)

// Token keys understood by Apply.
const (
	TokenFontFamily   = "font_family"
	TokenFontSize     = "font_size"
	TokenAccent       = "accent"
	TokenTextColor    = "text_color"
	TokenLinkColor    = "link_color"
	TokenDividerColor = "divider_color"
	TokenSpacing      = "spacing"
)

var (
	ErrPresetNotFound  = errors.New("presets: preset not found")
	ErrVariantNotFound = errors.New("presets: variant not found")
	ErrInvalidToken    = errors.New("presets: invalid token value")
)

// Selector resolves preset names to theme selections. It satisfies
// theme.ThemeSelector so it can be passed wherever go-theme selectors are
// accepted.
type Selector struct {
	mu        sync.RWMutex
	manifests map[string]*theme.Manifest
}

var _ theme.ThemeSelector = (*Selector)(nil)

// NewSelector builds a selector over the given manifests.
func NewSelector(manifests ...*theme.Manifest) (*Selector, error) {
	s := &Selector{manifests: make(map[string]*theme.Manifest, len(manifests))}
	for _, manifest := range manifests {
		if err := s.Register(manifest); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Default returns a selector holding the built-in presets.
func Default() *Selector {
	s, err := NewSelector(Builtin()...)
	if err != nil {
		panic(err)
	}
	return s
}

// Register adds a manifest. Names are unique.
func (s *Selector) Register(manifest *theme.Manifest) error {
	if manifest == nil || strings.TrimSpace(manifest.Name) == "" {
		return errors.New("presets: manifest name is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.manifests[manifest.Name]; exists {
		return fmt.Errorf("presets: preset %q already registered", manifest.Name)
	}
	s.manifests[manifest.Name] = manifest
	return nil
}

// Names lists registered presets in sorted order.
func (s *Selector) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.manifests))
	for name := range s.manifests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Variants lists the variants of a preset in sorted order.
func (s *Selector) Variants(name string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	manifest, ok := s.manifests[name]
	if !ok {
		return nil
	}
	variants := make([]string, 0, len(manifest.Variants))
	for variant := range manifest.Variants {
		variants = append(variants, variant)
	}
	sort.Strings(variants)
	return variants
}

// Select returns the selection for name and variant. An empty variant selects
// the base tokens.
func (s *Selector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.mu.RLock()
	manifest, ok := s.manifests[name]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrPresetNotFound, name)
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("%w: %q has no variant %q", ErrVariantNotFound, name, variant)
		}
	}
	return &theme.Selection{
		Theme:    manifest.Name,
		Variant:  variant,
		Manifest: manifest,
	}, nil
}

// ParseRef splits a "name:variant" reference.
func ParseRef(ref string) (name, variant string) {
	name, variant, _ = strings.Cut(strings.TrimSpace(ref), ":")
	return strings.TrimSpace(name), strings.TrimSpace(variant)
}

// Tokens returns the base tokens of the selected manifest overlaid with the
// selected variant's tokens.
func Tokens(selection *theme.Selection) map[string]string {
	out := map[string]string{}
	if selection == nil || selection.Manifest == nil {
		return out
	}
	for key, value := range selection.Manifest.Tokens {
		out[key] = value
	}
	if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
		for key, value := range variant.Tokens {
			out[key] = value
		}
	}
	return out
}

// Apply overlays the selection's tokens onto the design fields of cfg.
// Unknown token keys are ignored; numeric tokens must parse as integers.
func Apply(cfg signature.Config, selection *theme.Selection) (signature.Config, error) {
	out := cfg.Clone()
	for key, value := range Tokens(selection) {
		value = strings.TrimSpace(value)
		switch key {
		case TokenFontFamily:
			out.FontFamily = value
		case TokenAccent:
			out.Accent = value
		case TokenTextColor:
			out.TextColor = value
		case TokenLinkColor:
			out.LinkColor = value
		case TokenDividerColor:
			out.DividerColor = value
		case TokenFontSize, TokenSpacing:
			n, err := strconv.Atoi(strings.TrimSuffix(value, "px"))
			if err != nil {
				return cfg, fmt.Errorf("%w: %s=%q", ErrInvalidToken, key, value)
			}
			if key == TokenFontSize {
				out.FontSize = n
			} else {
				out.Spacing = n
			}
		}
	}
	return out, nil
}
