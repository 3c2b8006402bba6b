// Package wizard walks a user through building a signature configuration in
// the terminal. Every prompt defaults to the current value, so pressing enter
// throughout returns the normalized input.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-emailsig/pkg/presets"
	"github.com/goliatone/go-emailsig/pkg/signature"
)

const noPreset = "(none)"

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Option configures a Wizard.
type Option func(*Wizard)

// WithPromptDriver overrides the terminal driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(w *Wizard) {
		if driver != nil {
			w.driver = driver
		}
	}
}

// WithPresets sets the catalogue offered in the final step.
func WithPresets(selector *presets.Selector) Option {
	return func(w *Wizard) {
		if selector != nil {
			w.presets = selector
		}
	}
}

// WithLogger sets the wizard logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(w *Wizard) {
		w.logger = logger
	}
}

// Result is the outcome of a wizard run.
type Result struct {
	Config signature.Config
	// Preset is a "name[:variant]" reference, empty when none was picked.
	Preset string
}

// Wizard asks for every configuration field in a fixed order.
type Wizard struct {
	driver  PromptDriver
	presets *presets.Selector
	logger  zerolog.Logger
}

// New constructs a Wizard. Without WithPromptDriver it prompts on the
// terminal through survey.
func New(options ...Option) *Wizard {
	w := &Wizard{logger: zerolog.Nop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(w)
	}
	if w.driver == nil {
		w.driver = NewSurveyDriver(nil)
	}
	if w.presets == nil {
		w.presets = presets.Default()
	}
	return w
}

// Run prompts for each section starting from cfg and returns the normalized,
// validated result along with the chosen preset.
func (w *Wizard) Run(ctx context.Context, cfg signature.Config, preset string) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("wizard: context is nil")
	}
	cfg = signature.Normalize(cfg)

	steps := []struct {
		name string
		run  func(context.Context, *signature.Config) error
	}{
		{"identity", w.identity},
		{"contact", w.contact},
		{"images", w.images},
		{"style", w.style},
		{"separator", w.separator},
		{"social", w.social},
		{"extras", w.extras},
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		w.logger.Debug().Str("step", step.name).Msg("wizard step")
		if err := step.run(ctx, &cfg); err != nil {
			return Result{}, fmt.Errorf("wizard: %s: %w", step.name, err)
		}
	}

	chosen, err := w.preset(ctx, preset)
	if err != nil {
		return Result{}, fmt.Errorf("wizard: preset: %w", err)
	}

	cfg = signature.Normalize(cfg)
	if err := signature.Validate(cfg); err != nil {
		return Result{}, fmt.Errorf("wizard: %w", err)
	}

	if err := w.driver.Info(ctx, fmt.Sprintf("Signature ready for %s", nonEmpty(cfg.FullName(), "an unnamed sender"))); err != nil {
		return Result{}, err
	}
	return Result{Config: cfg, Preset: chosen}, nil
}

func (w *Wizard) identity(ctx context.Context, cfg *signature.Config) error {
	return w.inputs(ctx, []field{
		{"First name", &cfg.FirstName, nil},
		{"Last name", &cfg.LastName, nil},
		{"Job title", &cfg.Title, nil},
		{"Department", &cfg.Department, nil},
		{"Company", &cfg.Company, nil},
	})
}

func (w *Wizard) contact(ctx context.Context, cfg *signature.Config) error {
	return w.inputs(ctx, []field{
		{"Email", &cfg.Email, validateEmail},
		{"Phone", &cfg.Phone, nil},
		{"Mobile", &cfg.Mobile, nil},
		{"Website", &cfg.Website, nil},
		{"Website label", &cfg.WebsiteLabel, nil},
		{"Address line 1", &cfg.Address1, nil},
		{"Address line 2", &cfg.Address2, nil},
	})
}

func (w *Wizard) images(ctx context.Context, cfg *signature.Config) error {
	show, err := w.driver.Confirm(ctx, ConfirmConfig{Message: "Show logo?", Default: cfg.ShowLogo})
	if err != nil {
		return err
	}
	cfg.ShowLogo = show
	if show {
		if err := w.inputs(ctx, []field{{"Logo URL", &cfg.LogoURL, nil}}); err != nil {
			return err
		}
		positions := []string{string(signature.LogoTop), string(signature.LogoLeft)}
		idx, err := w.driver.Select(ctx, SelectConfig{
			Message:      "Logo position",
			Options:      positions,
			DefaultIndex: indexOf(positions, string(cfg.LogoPosition)),
		})
		if err != nil {
			return err
		}
		if idx >= 0 {
			cfg.LogoPosition = signature.LogoPosition(positions[idx])
		}
	}
	return w.inputs(ctx, []field{{"Headshot URL", &cfg.HeadshotURL, nil}})
}

func (w *Wizard) style(ctx context.Context, cfg *signature.Config) error {
	fonts := append([]string(nil), signature.Fonts...)
	current := indexOf(fonts, cfg.FontFamily)
	if current < 0 && cfg.FontFamily != "" {
		fonts = append(fonts, cfg.FontFamily)
		current = len(fonts) - 1
	}
	idx, err := w.driver.Select(ctx, SelectConfig{Message: "Font", Options: fonts, DefaultIndex: current, PageSize: len(fonts)})
	if err != nil {
		return err
	}
	if idx >= 0 {
		cfg.FontFamily = fonts[idx]
	}

	size, err := w.number(ctx, "Font size (px)", cfg.FontSize, signature.MinFontSize, signature.MaxFontSize)
	if err != nil {
		return err
	}
	cfg.FontSize = size

	if err := w.inputs(ctx, []field{
		{"Accent color", &cfg.Accent, validateColor},
		{"Text color", &cfg.TextColor, validateColor},
		{"Link color", &cfg.LinkColor, validateColor},
	}); err != nil {
		return err
	}

	if cfg.NameBold, err = w.driver.Confirm(ctx, ConfirmConfig{Message: "Bold name?", Default: cfg.NameBold}); err != nil {
		return err
	}
	if cfg.TitleItalic, err = w.driver.Confirm(ctx, ConfirmConfig{Message: "Italic title?", Default: cfg.TitleItalic}); err != nil {
		return err
	}
	if cfg.ShowDivider, err = w.driver.Confirm(ctx, ConfirmConfig{Message: "Show divider?", Default: cfg.ShowDivider}); err != nil {
		return err
	}
	if cfg.ShowDivider {
		if err := w.inputs(ctx, []field{{"Divider color", &cfg.DividerColor, validateColor}}); err != nil {
			return err
		}
	}

	spacing, err := w.number(ctx, "Spacing (px)", cfg.Spacing, signature.MinSpacing, signature.MaxSpacing)
	if err != nil {
		return err
	}
	cfg.Spacing = spacing
	return nil
}

func (w *Wizard) separator(ctx context.Context, cfg *signature.Config) error {
	styles := signature.SeparatorStyles()
	options := make([]string, len(styles))
	for i, style := range styles {
		options[i] = string(style)
	}
	idx, err := w.driver.Select(ctx, SelectConfig{
		Message:      "Contact separator",
		Options:      options,
		DefaultIndex: indexOf(options, string(cfg.SeparatorStyle)),
	})
	if err != nil {
		return err
	}
	if idx >= 0 {
		cfg.SeparatorStyle = styles[idx]
	}
	if cfg.SeparatorStyle == signature.SeparatorCustom {
		return w.inputs(ctx, []field{{"Custom separator", &cfg.CustomSeparator, validateSeparator}})
	}
	return nil
}

func (w *Wizard) social(ctx context.Context, cfg *signature.Config) error {
	show, err := w.driver.Confirm(ctx, ConfirmConfig{Message: "Show social links?", Default: cfg.ShowSocial})
	if err != nil {
		return err
	}
	cfg.ShowSocial = show
	if !show {
		return nil
	}

	if len(cfg.Social) > 0 {
		keep, err := w.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("Keep the %d existing social links?", len(cfg.Social)),
			Default: true,
		})
		if err != nil {
			return err
		}
		if !keep {
			cfg.Social = nil
		}
	}

	for {
		more, err := w.driver.Confirm(ctx, ConfirmConfig{Message: "Add a social link?", Default: false})
		if err != nil {
			return err
		}
		if !more {
			break
		}
		var link signature.SocialLink
		if err := w.inputs(ctx, []field{
			{"Label", &link.Label, required},
			{"URL", &link.Href, required},
		}); err != nil {
			return err
		}
		cfg.Social = append(cfg.Social, link)
	}

	cfg.SocialUseIcons, err = w.driver.Confirm(ctx, ConfirmConfig{Message: "Use icons for social links?", Default: cfg.SocialUseIcons})
	return err
}

func (w *Wizard) extras(ctx context.Context, cfg *signature.Config) error {
	directions := []string{string(signature.DirectionAuto), string(signature.DirectionLTR), string(signature.DirectionRTL)}
	idx, err := w.driver.Select(ctx, SelectConfig{
		Message:      "Text direction",
		Options:      directions,
		DefaultIndex: indexOf(directions, string(cfg.Direction)),
	})
	if err != nil {
		return err
	}
	if idx >= 0 {
		cfg.Direction = signature.Direction(directions[idx])
	}

	if cfg.IncludeVCard, err = w.driver.Confirm(ctx, ConfirmConfig{Message: "Include a vCard link?", Default: cfg.IncludeVCard}); err != nil {
		return err
	}
	if err := w.inputs(ctx, []field{{"UTM parameters", &cfg.UTMParams, nil}}); err != nil {
		return err
	}

	disclaimer, err := w.driver.TextArea(ctx, TextAreaConfig{
		Message: "Disclaimer (HTML allowed)",
		Default: cfg.DisclaimerHTML,
	})
	if err != nil {
		return err
	}
	cfg.DisclaimerHTML = strings.TrimSpace(disclaimer)
	return nil
}

func (w *Wizard) preset(ctx context.Context, current string) (string, error) {
	options := []string{noPreset}
	for _, name := range w.presets.Names() {
		options = append(options, name)
		for _, variant := range w.presets.Variants(name) {
			options = append(options, name+":"+variant)
		}
	}
	def := indexOf(options, current)
	if def < 0 {
		def = 0
	}
	idx, err := w.driver.Select(ctx, SelectConfig{Message: "Preset", Options: options, DefaultIndex: def})
	if err != nil {
		return "", err
	}
	if idx <= 0 {
		return "", nil
	}
	return options[idx], nil
}

type field struct {
	message  string
	target   *string
	validate func(string) error
}

func (w *Wizard) inputs(ctx context.Context, fields []field) error {
	for _, f := range fields {
		value, err := w.driver.Input(ctx, InputConfig{
			Message:   f.message,
			Default:   *f.target,
			Validator: f.validate,
		})
		if err != nil {
			return err
		}
		*f.target = strings.TrimSpace(value)
	}
	return nil
}

func (w *Wizard) number(ctx context.Context, message string, current, lo, hi int) (int, error) {
	value, err := w.driver.Input(ctx, InputConfig{
		Message: message,
		Default: strconv.Itoa(current),
		Help:    fmt.Sprintf("between %d and %d", lo, hi),
		Validator: func(s string) error {
			n, err := strconv.Atoi(strings.TrimSpace(s))
			if err != nil {
				return errors.New("enter a whole number")
			}
			if n < lo || n > hi {
				return fmt.Errorf("must be between %d and %d", lo, hi)
			}
			return nil
		},
	})
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, err
	}
	return n, nil
}

func validateEmail(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := mail.ParseAddress(s); err != nil {
		return errors.New("enter a valid email address")
	}
	return nil
}

func validateColor(s string) error {
	s = strings.TrimSpace(s)
	if s == "" || hexColor.MatchString(s) {
		return nil
	}
	return errors.New("enter a hex color such as #2b6cb0")
}

func validateSeparator(s string) error {
	if utf8.RuneCountInString(strings.TrimSpace(s)) > signature.MaxCustomSeparator {
		return fmt.Errorf("use at most %d characters", signature.MaxCustomSeparator)
	}
	return nil
}

func required(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("required")
	}
	return nil
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
