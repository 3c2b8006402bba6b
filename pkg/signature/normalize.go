package signature

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/bidi"
)

// Normalize trims text fields, clamps numeric design values to the ranges the
// configurator offers, fills empty enum fields and resolves DirectionAuto.
// Unknown enum values are left untouched so Validate can report them.
func Normalize(cfg Config) Config {
	out := cfg.Clone()

	for _, field := range []*string{
		&out.FirstName, &out.LastName, &out.Title, &out.Department, &out.Company,
		&out.Email, &out.Phone, &out.Mobile, &out.Website, &out.WebsiteLabel,
		&out.Address1, &out.Address2, &out.LogoURL, &out.HeadshotURL,
		&out.FontFamily, &out.Accent, &out.TextColor, &out.LinkColor,
		&out.DividerColor, &out.VCardURL, &out.UTMParams,
	} {
		*field = strings.TrimSpace(*field)
	}
	for i := range out.Social {
		out.Social[i].Label = strings.TrimSpace(out.Social[i].Label)
		out.Social[i].Href = strings.TrimSpace(out.Social[i].Href)
	}

	out.FontSize = clamp(out.FontSize, MinFontSize, MaxFontSize)
	out.Spacing = clamp(out.Spacing, MinSpacing, MaxSpacing)

	if utf8.RuneCountInString(out.CustomSeparator) > MaxCustomSeparator {
		out.CustomSeparator = string([]rune(out.CustomSeparator)[:MaxCustomSeparator])
	}

	if out.LogoPosition == "" {
		out.LogoPosition = LogoTop
	}
	if out.SeparatorStyle == "" {
		out.SeparatorStyle = SeparatorDot
	}
	switch out.Direction {
	case "":
		out.Direction = DirectionLTR
	case DirectionAuto:
		out.Direction = DetectDirection(out.FullName(), out.Title, out.Company)
	}

	if out.FontFamily == "" {
		out.FontFamily = Fonts[0]
	}
	return out
}

// DetectDirection returns DirectionRTL when the first strongly directional
// rune across texts is right-to-left (Hebrew, Arabic), DirectionLTR otherwise.
func DetectDirection(texts ...string) Direction {
	for _, text := range texts {
		for len(text) > 0 {
			props, size := bidi.LookupString(text)
			if size == 0 {
				break
			}
			switch props.Class() {
			case bidi.R, bidi.AL:
				return DirectionRTL
			case bidi.L:
				return DirectionLTR
			}
			text = text[size:]
		}
	}
	return DirectionLTR
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
