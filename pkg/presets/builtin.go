package presets

import (
	"strconv"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-emailsig/pkg/signature"
)

const builtinVersion = "1.0.0"

// Builtin returns fresh copies of the bundled presets.
func Builtin() []*theme.Manifest {
	return []*theme.Manifest{
		manifest("classic", signature.Fonts[1], 13, 8,
			palette{accent: "#2b6cb0", text: "#1f2937", link: "#2b6cb0", divider: "#e5e7eb"},
			palette{accent: "#64748b", text: "#334155", link: "#475569", divider: "#e2e8f0"},
		),
		manifest("corporate", signature.Fonts[3], 13, 10,
			palette{accent: "#0f4c81", text: "#111827", link: "#0f4c81", divider: "#cbd5e1"},
			palette{accent: "#52606d", text: "#1f2933", link: "#3e4c59", divider: "#d9e2ec"},
		),
		manifest("minimal", signature.Fonts[2], 12, 4,
			palette{accent: "#9ca3af", text: "#374151", link: "#111827", divider: "#f3f4f6"},
			palette{accent: "#d1d5db", text: "#6b7280", link: "#4b5563", divider: "#f9fafb"},
		),
		manifest("bold", signature.Fonts[6], 14, 12,
			palette{accent: "#dc2626", text: "#111827", link: "#dc2626", divider: "#111827"},
			palette{accent: "#b45309", text: "#292524", link: "#b45309", divider: "#57534e"},
		),
	}
}

type palette struct {
	accent, text, link, divider string
}

func (p palette) tokens() map[string]string {
	return map[string]string{
		TokenAccent:       p.accent,
		TokenTextColor:    p.text,
		TokenLinkColor:    p.link,
		TokenDividerColor: p.divider,
	}
}

func manifest(name, font string, size, spacing int, base, muted palette) *theme.Manifest {
	tokens := base.tokens()
	tokens[TokenFontFamily] = font
	tokens[TokenFontSize] = strconv.Itoa(size)
	tokens[TokenSpacing] = strconv.Itoa(spacing)

	return &theme.Manifest{
		Name:    name,
		Version: builtinVersion,
		Tokens:  tokens,
		Variants: map[string]theme.Variant{
			"muted": {Tokens: muted.tokens()},
		},
	}
}
