package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

var (
	ErrNotFound          = errors.New("config: settings file not found")
	ErrUnsupportedFormat = errors.New("config: unsupported settings format")
	ErrInvalidOverride   = errors.New("config: override must be key=value")
)

// Candidates are the file names Discover looks for, in order.
var Candidates = []string{"emailsig.yaml", "emailsig.yml", "emailsig.toml", "emailsig.json"}

// Option customises Load.
type Option func(*loader)

type loader struct {
	path      string
	useEnv    bool
	overrides []string
}

// WithFile layers the settings file at path over the defaults. An empty
// path is ignored.
func WithFile(path string) Option {
	return func(l *loader) {
		l.path = strings.TrimSpace(path)
	}
}

// WithEnv toggles EMAILSIG_ environment overrides. They are on by default.
func WithEnv(enabled bool) Option {
	return func(l *loader) {
		l.useEnv = enabled
	}
}

// WithOverrides applies key=value pairs last. Keys outside the known
// sections are treated as signature fields, so "first_name=Ada" and
// "signature.first_name=Ada" are equivalent.
func WithOverrides(pairs ...string) Option {
	return func(l *loader) {
		l.overrides = append(l.overrides, pairs...)
	}
}

// Load builds Settings from defaults, the optional settings file,
// environment variables and overrides.
func Load(options ...Option) (Settings, error) {
	l := &loader{useEnv: true}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(l)
	}

	k, err := l.load()
	if err != nil {
		return Settings{}, err
	}

	var out Settings
	if err := k.UnmarshalWithConf("", &out, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Settings{}, fmt.Errorf("config: unmarshal settings: %w", err)
	}
	return out, nil
}

func (l *loader) load() (*koanf.Koanf, error) {
	k := koanf.New(".")

	defaults, err := defaultsMap()
	if err != nil {
		return nil, err
	}
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}

	if l.path != "" {
		parser, err := parserFor(l.path)
		if err != nil {
			return nil, err
		}
		if _, err := os.Stat(l.path); err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("%w: %s", ErrNotFound, l.path)
			}
			return nil, fmt.Errorf("config: stat %s: %w", l.path, err)
		}
		if err := k.Load(file.Provider(l.path), parser); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", l.path, err)
		}
	}

	if l.useEnv {
		err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
			return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
		}), nil)
		if err != nil {
			return nil, fmt.Errorf("config: load env: %w", err)
		}
	}

	if len(l.overrides) > 0 {
		values, err := parseOverrides(l.overrides)
		if err != nil {
			return nil, err
		}
		if err := k.Load(confmap.Provider(values, "."), nil); err != nil {
			return nil, fmt.Errorf("config: load overrides: %w", err)
		}
	}

	return k, nil
}

// Discover returns the first settings file from Candidates present in dir,
// or an empty string.
func Discover(dir string) string {
	for _, name := range Candidates {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		// JSON documents are valid YAML
		return yaml.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

func parseOverrides(pairs []string) (map[string]any, error) {
	out := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidOverride, pair)
		}
		section, _, _ := strings.Cut(key, ".")
		if !sections[section] {
			key = "signature." + key
		}
		out[key] = value
	}
	return out, nil
}

// defaultsMap renders Default through its YAML form so the keys match the
// file layout.
func defaultsMap() (map[string]any, error) {
	data, err := yamlv3.Marshal(Default())
	if err != nil {
		return nil, fmt.Errorf("config: encode defaults: %w", err)
	}
	out := map[string]any{}
	if err := yamlv3.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("config: decode defaults: %w", err)
	}
	return out, nil
}
