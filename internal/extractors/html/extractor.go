// Package html extracts readable text from HTML survey exports. Block
// elements become line breaks so each Q-coded row stays on its own line.
package html

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/dawsonl1/halda-serper/internal/core/domain"
	"github.com/dawsonl1/halda-serper/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// Extractor handles HTML documents.
type Extractor struct{}

// New creates a new HTML extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extensions returns the file extensions this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{".html", ".htm"}
}

// Extract returns the visible text of the document body, one block per line.
func (e *Extractor) Extract(_ context.Context, content []byte) (string, error) {
	doc, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("%w: parse html: %w", domain.ErrInvalidInput, err)
	}

	var b strings.Builder
	walk(&b, doc)
	return cleanLines(b.String()), nil
}

// skipped elements contribute no text.
var skipped = map[string]bool{
	"head": true, "script": true, "style": true, "noscript": true, "svg": true, "template": true,
}

// block elements start and end a line.
var block = map[string]bool{
	"p": true, "div": true, "br": true, "hr": true, "li": true, "tr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "pre": true, "table": true, "section": true, "article": true,
	"ul": true, "ol": true, "dt": true, "dd": true,
}

func walk(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.CommentNode:
		return
	case html.ElementNode:
		if skipped[n.Data] {
			return
		}
		if block[n.Data] {
			b.WriteString("\n")
			defer b.WriteString("\n")
		} else if n.Data == "td" || n.Data == "th" {
			b.WriteString(" ")
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(b, c)
	}
}

// cleanLines collapses runs of spaces and drops blank lines.
func cleanLines(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
