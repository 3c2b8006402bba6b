//go:build property
// +build property

package markup_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"golang.org/x/net/html"

	"github.com/goliatone/go-emailsig/pkg/render"
	"github.com/goliatone/go-emailsig/pkg/renderers/markup"
	"github.com/goliatone/go-emailsig/pkg/signature"
	"github.com/goliatone/go-emailsig/pkg/testsupport"
)

var signatureTags = map[string]bool{
	"table": true, "tr": true, "td": true, "span": true, "a": true, "br": true, "img": true,
}

func TestSignatureProperties(t *testing.T) {
	renderer, err := markup.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	renderString := func(cfg signature.Config) string {
		out, err := renderer.Render(testsupport.Context(), cfg, render.RenderOptions{})
		if err != nil {
			t.Fatalf("render: %v", err)
		}
		return string(out)
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	hostile := gen.RegexMatch(`^[a-zA-Z0-9 <>&"'/=]{1,24}$`)

	// Property: identical input renders identical bytes
	properties.Property("render is idempotent", prop.ForAll(
		func(first, title string) bool {
			cfg := signature.Default()
			cfg.FirstName = first
			cfg.Title = title
			return renderString(cfg) == renderString(cfg)
		},
		hostile, hostile,
	))

	// Property: user text never introduces elements
	properties.Property("user text is escaped", prop.ForAll(
		func(first, company, label string) bool {
			cfg := signature.Default()
			cfg.DisclaimerHTML = ""
			cfg.FirstName = first
			cfg.Company = company
			cfg.Social = []signature.SocialLink{{Label: label, Href: "https://x.com/" + label}}

			z := html.NewTokenizer(bytes.NewBufferString(renderString(cfg)))
			var text strings.Builder
			for {
				tt := z.Next()
				switch tt {
				case html.ErrorToken:
					wantCompany := strings.TrimSpace(company)
					return wantCompany == "" || strings.Contains(text.String(), wantCompany)
				case html.StartTagToken, html.SelfClosingTagToken:
					name, _ := z.TagName()
					if !signatureTags[string(name)] {
						return false
					}
				case html.TextToken:
					text.Write(z.Text())
				}
			}
		},
		hostile, hostile, hostile,
	))

	// Property: the divider flag only toggles the divider row
	properties.Property("divider toggle is local", prop.ForAll(
		func(spacing int, color string) bool {
			cfg := signature.Default()
			cfg.Spacing = spacing
			cfg.DividerColor = color
			with := renderString(cfg)
			cfg.ShowDivider = false
			without := renderString(cfg)
			return dividerRow.ReplaceAllString(with, "") == without
		},
		gen.IntRange(signature.MinSpacing, signature.MaxSpacing),
		gen.RegexMatch(`^#[0-9a-f]{6}$`),
	))

	properties.TestingRun(t)
}
