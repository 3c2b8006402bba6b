package sanitize

import (
	"strings"

	"golang.org/x/net/html"
)

// blockElements end a line of plain text when they open or close.
var blockElements = map[string]bool{
	"br": true, "p": true, "div": true, "tr": true, "table": true,
	"li": true, "ul": true, "ol": true, "hr": true, "center": true,
}

// PlainText extracts the visible text of an HTML fragment: tags are dropped,
// entities decoded, block elements become line breaks and runs of
// whitespace collapse to a single space. Comments, scripts and styles
// contribute nothing.
func PlainText(raw string) string {
	z := html.NewTokenizer(strings.NewReader(raw))

	var (
		lines   []string
		current strings.Builder
		skip    int
	)
	flush := func() {
		if line := strings.Join(strings.Fields(current.String()), " "); line != "" {
			lines = append(lines, line)
		}
		current.Reset()
	}

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			flush()
			return strings.Join(lines, "\n")
		case html.TextToken:
			if skip == 0 {
				current.Write(z.Text())
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			tag := string(name)
			switch {
			case tag == "script" || tag == "style":
				if tt == html.StartTagToken {
					skip++
				}
			case blockElements[tag]:
				flush()
			case tag == "td" || tag == "th":
				current.WriteByte(' ')
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			switch {
			case tag == "script" || tag == "style":
				if skip > 0 {
					skip--
				}
			case blockElements[tag]:
				flush()
			}
		}
	}
}
