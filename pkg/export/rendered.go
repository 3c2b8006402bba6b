package export

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RenderedMarkup parses markup as the content of a <body> element and
// serializes the resulting tree. The parser normalizes the markup (implied
// tbody elements, closed tags, quoted attributes) and comments are dropped.
func RenderedMarkup(markup string) (string, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), body)
	if err != nil {
		return "", fmt.Errorf("export: parse markup: %w", err)
	}

	var buf bytes.Buffer
	for _, node := range nodes {
		if node.Type == html.CommentNode {
			continue
		}
		stripComments(node)
		if err := html.Render(&buf, node); err != nil {
			return "", fmt.Errorf("export: render markup: %w", err)
		}
	}
	return strings.TrimSpace(buf.String()), nil
}

func stripComments(n *html.Node) {
	for child := n.FirstChild; child != nil; {
		next := child.NextSibling
		if child.Type == html.CommentNode {
			n.RemoveChild(child)
		} else {
			stripComments(child)
		}
		child = next
	}
}
