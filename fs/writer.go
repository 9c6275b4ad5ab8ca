// Package fs provides file-based export of crawl sessions as markdown.
package fs

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmwsk/sitechat"
)

// URLToPath converts a page URL to a relative file path.
// Example: https://example.com/docs/api/users → docs/api/users.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	path := u.Path

	if path == "" || path == "/" {
		return "index.md", nil
	}

	path = strings.TrimPrefix(path, "/")

	// Trailing slash becomes index.md in that directory.
	if strings.HasSuffix(path, "/") {
		return path + "index.md", nil
	}

	return path + ".md", nil
}

// FormatPage formats a page with YAML frontmatter.
func FormatPage(session *sitechat.CrawlSession, page *sitechat.PageContent) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(page.URL)
	b.WriteString("\ntitle: ")
	b.WriteString(page.Title)
	b.WriteString("\ncrawled: ")
	b.WriteString(session.CreatedAt.Format("2006-01-02"))
	if page.ContentHash != "" {
		b.WriteString("\nhash: ")
		b.WriteString(page.ContentHash)
	}
	b.WriteString("\n---\n\n")
	b.WriteString(page.Markdown)
	return b.String()
}

// Exporter writes crawl sessions to disk as markdown trees. Each export is
// atomic: pages are written to a temporary directory which replaces the
// final directory only once every file has been written.
type Exporter struct {
	baseDir string
}

// NewExporter creates a new Exporter rooted at the given base directory.
func NewExporter(baseDir string) *Exporter {
	return &Exporter{baseDir: baseDir}
}

// ExportSession writes every successfully extracted page as a markdown
// file mirroring its URL path, plus a combined.md concatenating the whole
// session. It returns the directory the session was written to.
func (e *Exporter) ExportSession(ctx context.Context, session *sitechat.CrawlSession) (string, error) {
	if session.ID == "" {
		return "", sitechat.Errorf(sitechat.EINVALID, "session ID required")
	}

	finalDir := filepath.Join(e.baseDir, session.ID)
	tempDir := finalDir + ".tmp"

	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return "", err
	}

	cleanup := func(err error) (string, error) {
		_ = os.RemoveAll(tempDir)
		return "", err
	}

	for _, page := range session.Pages {
		if page.Failed() || page.Markdown == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return cleanup(err)
		}

		relPath, err := URLToPath(page.URL)
		if err != nil {
			return cleanup(err)
		}

		fullPath := filepath.Join(tempDir, relPath)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			return cleanup(err)
		}
		if err := os.WriteFile(fullPath, []byte(FormatPage(session, page)), 0644); err != nil {
			return cleanup(err)
		}
	}

	combined := filepath.Join(tempDir, "combined.md")
	if err := os.WriteFile(combined, []byte(session.CombinedMarkdown()), 0644); err != nil {
		return cleanup(err)
	}

	if err := os.RemoveAll(finalDir); err != nil {
		return cleanup(err)
	}
	if err := os.Rename(tempDir, finalDir); err != nil {
		return cleanup(err)
	}

	return finalDir, nil
}
