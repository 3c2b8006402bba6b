package signature

import "strings"

var separatorSymbols = map[SeparatorStyle]string{
	SeparatorDot:   "•",
	SeparatorPipe:  "|",
	SeparatorSlash: "/",
	SeparatorDash:  "–",
	SeparatorNone:  "",
}

// ResolveSeparator maps the configured style to its symbol. A custom style
// with an empty custom string and unknown styles both fall back to the dot.
func ResolveSeparator(cfg Config) string {
	if cfg.SeparatorStyle == SeparatorCustom {
		if cfg.CustomSeparator != "" {
			return cfg.CustomSeparator
		}
		return separatorSymbols[SeparatorDot]
	}
	if symbol, ok := separatorSymbols[cfg.SeparatorStyle]; ok {
		return symbol
	}
	return separatorSymbols[SeparatorDot]
}

// SeparatorStyles lists the supported styles in display order.
func SeparatorStyles() []SeparatorStyle {
	return []SeparatorStyle{
		SeparatorDot, SeparatorPipe, SeparatorSlash, SeparatorDash, SeparatorNone, SeparatorCustom,
	}
}

// AppendUTM appends tracking parameters to href using "?" or "&" depending on
// whether href already carries a query. The string is not re-encoded so
// output stays byte-stable for identical input.
func AppendUTM(href, params string) string {
	params = strings.TrimLeft(strings.TrimSpace(params), "?&")
	if params == "" || href == "" {
		return href
	}
	if strings.Contains(href, "?") {
		return href + "&" + params
	}
	return href + "?" + params
}

// WebsiteText returns the visible label for the website link: the configured
// label, or the URL without its scheme.
func (c Config) WebsiteText() string {
	if label := strings.TrimSpace(c.WebsiteLabel); label != "" {
		return label
	}
	text := strings.TrimPrefix(c.Website, "https://")
	text = strings.TrimPrefix(text, "http://")
	return strings.TrimSuffix(text, "/")
}
