package wizard

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-emailsig/pkg/signature"
)

// stubDriver answers prompts by message. Scripted answers are consumed in
// order; an unscripted prompt takes its default.
type stubDriver struct {
	inputs    map[string][]string
	confirms  map[string][]bool
	selects   map[string][]string
	textAreas map[string]string
	failOn    string

	asked        []string
	infoMessages []string
}

func (s *stubDriver) record(message string) error {
	s.asked = append(s.asked, message)
	if s.failOn != "" && s.failOn == message {
		return ErrAborted
	}
	return nil
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if err := s.record(cfg.Message); err != nil {
		return "", err
	}
	value := cfg.Default
	if queue := s.inputs[cfg.Message]; len(queue) > 0 {
		value = queue[0]
		s.inputs[cfg.Message] = queue[1:]
	}
	if cfg.Validator != nil {
		if err := cfg.Validator(value); err != nil {
			return "", fmt.Errorf("%s: %w", cfg.Message, err)
		}
	}
	return value, nil
}

func (s *stubDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	if err := s.record(cfg.Message); err != nil {
		return false, err
	}
	if queue := s.confirms[cfg.Message]; len(queue) > 0 {
		s.confirms[cfg.Message] = queue[1:]
		return queue[0], nil
	}
	return cfg.Default, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	if err := s.record(cfg.Message); err != nil {
		return -1, err
	}
	if queue := s.selects[cfg.Message]; len(queue) > 0 {
		s.selects[cfg.Message] = queue[1:]
		idx := indexOf(cfg.Options, queue[0])
		if idx < 0 {
			return -1, fmt.Errorf("%s: %q is not an option", cfg.Message, queue[0])
		}
		return idx, nil
	}
	return cfg.DefaultIndex, nil
}

func (s *stubDriver) TextArea(_ context.Context, cfg TextAreaConfig) (string, error) {
	if err := s.record(cfg.Message); err != nil {
		return "", err
	}
	if value, ok := s.textAreas[cfg.Message]; ok {
		return value, nil
	}
	return cfg.Default, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func TestWizard_DefaultsRoundTrip(t *testing.T) {
	driver := &stubDriver{}
	w := New(WithPromptDriver(driver))

	start := signature.Default()
	result, err := w.Run(context.Background(), start, "")
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if diff := cmp.Diff(signature.Normalize(start), result.Config); diff != "" {
		t.Fatalf("config changed without input (-want +got):\n%s", diff)
	}
	if result.Preset != "" {
		t.Fatalf("expected no preset, got %q", result.Preset)
	}
	if len(driver.infoMessages) != 1 || driver.infoMessages[0] != "Signature ready for Alex Doe" {
		t.Fatalf("unexpected info messages: %v", driver.infoMessages)
	}
}

func TestWizard_CollectsAnswers(t *testing.T) {
	driver := &stubDriver{
		inputs: map[string][]string{
			"First name":       {" Grace "},
			"Last name":        {"Hopper"},
			"Company":          {"Navy"},
			"Email":            {"grace@navy.mil"},
			"Font size (px)":   {"15"},
			"Accent color":     {"#0f766e"},
			"Custom separator": {"~"},
			"Label":            {"GitHub", "Mastodon"},
			"URL":              {"https://github.com/grace", "https://mastodon.social/@grace"},
		},
		confirms: map[string][]bool{
			"Show logo?":                        {false},
			"Keep the 3 existing social links?": {false},
			"Add a social link?":                {true, true, false},
			"Show divider?":                     {false},
			"Use icons for social links?":       {true},
		},
		selects: map[string][]string{
			"Contact separator": {"custom"},
			"Text direction":    {"rtl"},
			"Preset":            {"corporate:muted"},
			"Font":              {"Georgia, serif"},
		},
		textAreas: map[string]string{
			"Disclaimer (HTML allowed)": "  <i>Confidential</i>  ",
		},
	}

	start := signature.Default()
	start.Social = []signature.SocialLink{{Label: "A", Href: "a"}, {Label: "B", Href: "b"}, {Label: "C", Href: "c"}}

	result, err := New(WithPromptDriver(driver)).Run(context.Background(), start, "")
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	got := result.Config
	if got.FullName() != "Grace Hopper" || got.Company != "Navy" || got.Email != "grace@navy.mil" {
		t.Fatalf("identity not captured: %+v", got)
	}
	if got.FontSize != 15 || got.Accent != "#0f766e" || got.FontFamily != "Georgia, serif" {
		t.Fatalf("style not captured: size=%d accent=%q font=%q", got.FontSize, got.Accent, got.FontFamily)
	}
	if got.ShowLogo || got.ShowDivider {
		t.Fatalf("toggles not captured: logo=%v divider=%v", got.ShowLogo, got.ShowDivider)
	}
	if got.SeparatorStyle != signature.SeparatorCustom || got.CustomSeparator != "~" {
		t.Fatalf("separator not captured: %q %q", got.SeparatorStyle, got.CustomSeparator)
	}
	if got.Direction != signature.DirectionRTL {
		t.Fatalf("direction not captured: %q", got.Direction)
	}
	if got.DisclaimerHTML != "<i>Confidential</i>" {
		t.Fatalf("disclaimer not trimmed: %q", got.DisclaimerHTML)
	}
	wantSocial := []signature.SocialLink{
		{Label: "GitHub", Href: "https://github.com/grace"},
		{Label: "Mastodon", Href: "https://mastodon.social/@grace"},
	}
	if diff := cmp.Diff(wantSocial, got.Social); diff != "" {
		t.Fatalf("social mismatch (-want +got):\n%s", diff)
	}
	if !got.SocialUseIcons {
		t.Fatalf("expected social icons")
	}
	if result.Preset != "corporate:muted" {
		t.Fatalf("unexpected preset %q", result.Preset)
	}

	for _, msg := range driver.asked {
		if msg == "Logo URL" || msg == "Logo position" || msg == "Divider color" {
			t.Fatalf("prompt %q should be skipped", msg)
		}
	}
}

func TestWizard_RejectsInvalidAnswers(t *testing.T) {
	cases := map[string]map[string][]string{
		"email":     {"Email": {"not-an-email"}},
		"font size": {"Font size (px)": {"42"}},
		"color":     {"Accent color": {"blue"}},
	}
	for name, inputs := range cases {
		t.Run(name, func(t *testing.T) {
			driver := &stubDriver{inputs: inputs}
			if _, err := New(WithPromptDriver(driver)).Run(context.Background(), signature.Default(), ""); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestWizard_KeepsCurrentPreset(t *testing.T) {
	driver := &stubDriver{}
	result, err := New(WithPromptDriver(driver)).Run(context.Background(), signature.Default(), "bold")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Preset != "bold" {
		t.Fatalf("expected current preset kept, got %q", result.Preset)
	}
}

func TestWizard_Abort(t *testing.T) {
	driver := &stubDriver{failOn: "Company"}
	_, err := New(WithPromptDriver(driver)).Run(context.Background(), signature.Default(), "")
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(WithPromptDriver(&stubDriver{})).Run(ctx, signature.Default(), ""); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
