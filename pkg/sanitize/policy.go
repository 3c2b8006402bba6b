package sanitize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	richTextPolicyOnce sync.Once
	richTextPolicy     *bluemonday.Policy
)

// RichText cleans HTML produced by the rich-text editor (disclaimers, notes,
// freeform signatures) down to markup email clients accept: inline
// formatting, links, line breaks, alignment and table structure. Scripts,
// event handlers and non-http(s)/mailto/tel links are removed.
func RichText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	cleaned := strings.TrimSpace(richTextSanitizer().Sanitize(trimmed))
	if cleaned == "" {
		return ""
	}
	return cleaned
}

// Policy exposes the shared policy for callers that sanitize streams.
func Policy() *bluemonday.Policy {
	return richTextSanitizer()
}

func richTextSanitizer() *bluemonday.Policy {
	richTextPolicyOnce.Do(func() {
		policy := bluemonday.NewPolicy()

		policy.AllowElements(
			"b", "strong", "i", "em", "u", "s", "small", "sup", "sub",
			"span", "div", "p", "br", "hr", "font", "center",
			"ul", "ol", "li",
		)
		policy.AllowElements("table", "tbody", "thead", "tr", "td", "th")
		policy.AllowAttrs("align", "dir").Globally()
		policy.AllowAttrs("color", "face", "size").OnElements("font")
		policy.AllowAttrs("cellpadding", "cellspacing", "border", "width").OnElements("table")
		policy.AllowAttrs("colspan", "rowspan", "valign", "width", "height").OnElements("td", "th")

		policy.AllowAttrs("href").OnElements("a")
		policy.AllowAttrs("target", "title").OnElements("a")
		policy.AllowURLSchemes("http", "https", "mailto", "tel")
		policy.RequireParseableURLs(true)
		policy.RequireNoReferrerOnLinks(true)

		policy.AllowImages()
		policy.AllowAttrs("alt", "width", "height").OnElements("img")

		policy.AllowStyles(
			"color", "background-color", "font-family", "font-size", "font-weight",
			"font-style", "text-decoration", "text-align", "line-height",
			"margin", "padding", "border-top", "vertical-align",
		).Globally()

		richTextPolicy = policy
	})
	return richTextPolicy
}
