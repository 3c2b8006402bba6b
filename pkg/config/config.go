// Package config loads and writes the settings file the CLI and preview
// server share. Values are layered: built-in defaults, then the settings
// file (YAML, JSON or TOML), then EMAILSIG_ environment variables, then
// explicit key=value overrides.
package config

import (
	"github.com/goliatone/go-emailsig/pkg/assets"
	"github.com/goliatone/go-emailsig/pkg/signature"
)

// EnvPrefix prefixes every environment override. Nested keys use a double
// underscore: EMAILSIG_SIGNATURE__FIRST_NAME=Ada.
const EnvPrefix = "EMAILSIG_"

// Settings is the settings file document.
type Settings struct {
	Signature signature.Config `koanf:"signature" yaml:"signature"`
	// Preset is a "name[:variant]" reference applied when rendering.
	Preset  string          `koanf:"preset" yaml:"preset,omitempty"`
	Publish assets.S3Config `koanf:"publish" yaml:"publish,omitempty"`
	Mail    Mail            `koanf:"mail" yaml:"mail,omitempty"`
}

// Mail configures the send-test command.
type Mail struct {
	ServerToken string `koanf:"server_token" yaml:"server_token,omitempty"`
	From        string `koanf:"from" yaml:"from,omitempty"`
	To          string `koanf:"to" yaml:"to,omitempty"`
	Subject     string `koanf:"subject" yaml:"subject,omitempty"`
}

// Default returns settings holding the default signature.
func Default() Settings {
	return Settings{Signature: signature.Default()}
}

// sections lists the top-level keys; override keys outside them are
// signature fields.
var sections = map[string]bool{
	"signature": true,
	"preset":    true,
	"publish":   true,
	"mail":      true,
}
