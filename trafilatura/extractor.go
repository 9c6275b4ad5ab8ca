// Package trafilatura extracts main content from HTML pages using
// go-trafilatura, removing navigation and other boilerplate.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/jmwsk/sitechat"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements sitechat.Extractor at compile time.
var _ sitechat.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
// The title comes from page metadata; the content is returned both as
// clean HTML (for markdown conversion) and as plain text (for LLM-guided
// extraction prompts).
func (e *Extractor) Extract(rawHTML string) (*sitechat.ExtractResult, error) {
	if rawHTML == "" {
		return nil, sitechat.Errorf(sitechat.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, sitechat.Errorf(sitechat.EINTERNAL, "content extraction: %v", err)
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &sitechat.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
		ContentText: result.ContentText,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
