package signature_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-emailsig/pkg/signature"
)

func TestResolveSeparator(t *testing.T) {
	cases := []struct {
		style  signature.SeparatorStyle
		custom string
		want   string
	}{
		{signature.SeparatorDot, "", "•"},
		{signature.SeparatorPipe, "", "|"},
		{signature.SeparatorSlash, "", "/"},
		{signature.SeparatorDash, "", "–"},
		{signature.SeparatorNone, "x", ""},
		{signature.SeparatorCustom, "✦", "✦"},
		{signature.SeparatorCustom, "", "•"},
		{signature.SeparatorStyle("weird"), "", "•"},
	}
	for _, tc := range cases {
		cfg := signature.Config{SeparatorStyle: tc.style, CustomSeparator: tc.custom}
		if got := signature.ResolveSeparator(cfg); got != tc.want {
			t.Fatalf("ResolveSeparator(%q, %q) = %q, want %q", tc.style, tc.custom, got, tc.want)
		}
	}
}

func TestAppendUTM(t *testing.T) {
	cases := []struct {
		href, params, want string
	}{
		{"https://acme.com", "utm_source=email", "https://acme.com?utm_source=email"},
		{"https://acme.com?a=1", "utm_source=email", "https://acme.com?a=1&utm_source=email"},
		{"https://acme.com", "", "https://acme.com"},
		{"https://acme.com", "?utm_source=x", "https://acme.com?utm_source=x"},
		{"", "utm_source=x", ""},
	}
	for _, tc := range cases {
		if got := signature.AppendUTM(tc.href, tc.params); got != tc.want {
			t.Fatalf("AppendUTM(%q, %q) = %q, want %q", tc.href, tc.params, got, tc.want)
		}
	}
}

func TestConfigDerivedLines(t *testing.T) {
	cfg := signature.Config{
		FirstName:  " Ada ",
		Title:      "Engineer",
		Department: "",
		Address1:   "1 Loop",
		Address2:   "London",
		Website:    "https://ada.dev/",
	}
	if got := cfg.FullName(); got != "Ada" {
		t.Fatalf("FullName = %q", got)
	}
	if got := cfg.TitleLine(); got != "Engineer" {
		t.Fatalf("TitleLine = %q", got)
	}
	if got := cfg.AddressLine(); got != "1 Loop, London" {
		t.Fatalf("AddressLine = %q", got)
	}
	if got := cfg.WebsiteText(); got != "ada.dev" {
		t.Fatalf("WebsiteText = %q", got)
	}
	cfg.WebsiteLabel = "Website"
	if got := cfg.WebsiteText(); got != "Website" {
		t.Fatalf("WebsiteText with label = %q", got)
	}
}

func TestVisibleSocialSkipsEmptyHrefAndKeepsDuplicates(t *testing.T) {
	cfg := signature.Config{
		ShowSocial: true,
		Social: []signature.SocialLink{
			{Label: "LinkedIn", Href: "https://linkedin.com/in/ada"},
			{Label: "New", Href: ""},
			{Label: "LinkedIn", Href: "https://linkedin.com/in/ada"},
		},
	}
	want := []signature.SocialLink{
		{Label: "LinkedIn", Href: "https://linkedin.com/in/ada"},
		{Label: "LinkedIn", Href: "https://linkedin.com/in/ada"},
	}
	if diff := cmp.Diff(want, cfg.VisibleSocial()); diff != "" {
		t.Fatalf("visible social mismatch (-want +got):\n%s", diff)
	}

	cfg.ShowSocial = false
	if got := cfg.VisibleSocial(); len(got) != 0 {
		t.Fatalf("expected no links when social is hidden, got %v", got)
	}
}

func TestNormalizeClampsAndFills(t *testing.T) {
	cfg := signature.Config{
		FirstName:       "  Ada  ",
		FontSize:        42,
		Spacing:         -3,
		CustomSeparator: "abcdef",
	}
	got := signature.Normalize(cfg)

	if got.FirstName != "Ada" {
		t.Fatalf("expected trimmed first name, got %q", got.FirstName)
	}
	if got.FontSize != signature.MaxFontSize {
		t.Fatalf("font size = %d, want %d", got.FontSize, signature.MaxFontSize)
	}
	if got.Spacing != signature.MinSpacing {
		t.Fatalf("spacing = %d, want %d", got.Spacing, signature.MinSpacing)
	}
	if got.CustomSeparator != "abc" {
		t.Fatalf("custom separator = %q", got.CustomSeparator)
	}
	if got.LogoPosition != signature.LogoTop || got.SeparatorStyle != signature.SeparatorDot || got.Direction != signature.DirectionLTR {
		t.Fatalf("enum defaults not filled: %+v", got)
	}
	if got.FontFamily != signature.Fonts[0] {
		t.Fatalf("font family = %q", got.FontFamily)
	}
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	cfg := signature.Default()
	cfg.Social[0].Label = "  LinkedIn  "
	_ = signature.Normalize(cfg)
	if cfg.Social[0].Label != "  LinkedIn  " {
		t.Fatalf("normalize mutated caller slice")
	}
}

func TestDetectDirection(t *testing.T) {
	if got := signature.DetectDirection("שלום עולם"); got != signature.DirectionRTL {
		t.Fatalf("hebrew detected as %q", got)
	}
	if got := signature.DetectDirection("مرحبا"); got != signature.DirectionRTL {
		t.Fatalf("arabic detected as %q", got)
	}
	if got := signature.DetectDirection("123 ", "Ada"); got != signature.DirectionLTR {
		t.Fatalf("latin detected as %q", got)
	}

	cfg := signature.Normalize(signature.Config{FirstName: "דנה", Direction: signature.DirectionAuto})
	if !cfg.RTL() {
		t.Fatalf("expected auto direction to resolve to rtl")
	}
}

func TestValidate(t *testing.T) {
	if err := signature.Validate(signature.Default()); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	cfg := signature.Default()
	cfg.LogoPosition = "bottom"
	cfg.SeparatorStyle = "stars"
	err := signature.Validate(cfg)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !errors.Is(err, signature.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	var fieldErr *signature.FieldError
	if !errors.As(err, &fieldErr) || fieldErr.Field != "logo_position" {
		t.Fatalf("expected logo_position field error, got %v", err)
	}
}

func TestMergeJSONReplacesSocialList(t *testing.T) {
	cfg := signature.Default()
	if len(cfg.Social) < 2 {
		t.Fatalf("starter config should carry several social links, got %d", len(cfg.Social))
	}

	if err := signature.MergeJSON(&cfg, []byte(`{"social":[{"label":"GitHub"}],"company":"Acme"}`)); err != nil {
		t.Fatalf("merge: %v", err)
	}
	want := []signature.SocialLink{{Label: "GitHub"}}
	if diff := cmp.Diff(want, cfg.Social); diff != "" {
		t.Fatalf("social mismatch (-want +got):\n%s", diff)
	}
	if cfg.Company != "Acme" || cfg.FirstName != signature.Default().FirstName {
		t.Fatalf("unexpected merge result: company=%q first=%q", cfg.Company, cfg.FirstName)
	}
}

func TestMergeJSONKeepsSocialWhenAbsent(t *testing.T) {
	cfg := signature.Default()
	if err := signature.MergeJSON(&cfg, []byte(`{"title":"CTO"}`)); err != nil {
		t.Fatalf("merge: %v", err)
	}
	if diff := cmp.Diff(signature.Default().Social, cfg.Social); diff != "" {
		t.Fatalf("social changed (-want +got):\n%s", diff)
	}

	if err := signature.MergeJSON(&cfg, []byte(`{"social":[]}`)); err != nil {
		t.Fatalf("merge: %v", err)
	}
	if len(cfg.Social) != 0 {
		t.Fatalf("expected an empty social list, got %v", cfg.Social)
	}

	if err := signature.MergeJSON(&cfg, []byte(`[1,2]`)); err == nil {
		t.Fatalf("expected error for non-object document")
	}
}
