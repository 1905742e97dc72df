// Package extract pulls validation-ready plain text out of source documents.
package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// VisibleText parses HTML and returns the rendered text content, with
// script, style, noscript and iframe subtrees removed. Whitespace between
// text nodes is collapsed to single spaces.
func VisibleText(htmlContent string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				if buf.Len() > 0 {
					buf.WriteString(" ")
				}
				buf.WriteString(text)
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return buf.String(), nil
}

// LooksLikeHTML reports whether content appears to be an HTML document
// rather than plain text. Used to decide whether source files need parsing.
func LooksLikeHTML(content string) bool {
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "<!DOCTYPE") || strings.HasPrefix(trimmed, "<!doctype") {
		return true
	}
	lower := strings.ToLower(trimmed)
	return strings.HasPrefix(lower, "<html") || strings.Contains(lower, "<body")
}

// SourceText normalizes a source document for validation. HTML documents
// are reduced to their visible text; plain text passes through trimmed.
func SourceText(content string) (string, error) {
	if !LooksLikeHTML(content) {
		return strings.TrimSpace(content), nil
	}
	return VisibleText(content)
}
