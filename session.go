package sitechat

import (
	"strings"
	"time"
)

// CrawlMode selects how many pages a crawl visits.
type CrawlMode string

// Crawl modes.
const (
	ModeBase CrawlMode = "base" // seed URL only
	ModeDeep CrawlMode = "deep" // sitemap + link discovery, bounded by a page limit
)

// ExtractionStrategy selects how page content is extracted.
type ExtractionStrategy string

// Extraction strategies.
const (
	StrategyMarkdown ExtractionStrategy = "markdown" // deterministic HTML to markdown conversion
	StrategyLLM      ExtractionStrategy = "llm"      // LLM-guided structured extraction
)

// SessionStatus represents the lifecycle state of a crawl session.
type SessionStatus string

// Session statuses.
const (
	StatusPending   SessionStatus = "pending"
	StatusRunning   SessionStatus = "running"
	StatusCompleted SessionStatus = "completed"
	StatusFailed    SessionStatus = "failed"
)

// CrawlStats aggregates counts for a crawl session. Counts reflect final
// totals and are deterministic regardless of fetch completion order.
type CrawlStats struct {
	Pages   int           `json:"pages"`
	Images  int           `json:"images"`
	Links   int           `json:"links"`
	Failed  int           `json:"failed"`
	Elapsed time.Duration `json:"elapsed"`
}

// CrawlSession identifies one crawl run. A session exclusively owns its
// pages and, transitively, the index and conversation derived from them;
// nothing is shared across sessions.
type CrawlSession struct {
	ID        string             `json:"id"`
	SeedURL   string             `json:"seedUrl"`
	Mode      CrawlMode          `json:"mode"`
	Strategy  ExtractionStrategy `json:"strategy"`
	Pages     []*PageContent     `json:"pages"`
	Stats     CrawlStats         `json:"stats"`
	Status    SessionStatus      `json:"status"`
	CreatedAt time.Time          `json:"createdAt"`
}

// Validate returns an error if the session contains invalid fields.
func (s *CrawlSession) Validate() error {
	if s.SeedURL == "" {
		return Errorf(EINVALID, "session seed URL required")
	}
	if s.Mode != ModeBase && s.Mode != ModeDeep {
		return Errorf(EINVALID, "unknown crawl mode %q", s.Mode)
	}
	if s.Strategy != StrategyMarkdown && s.Strategy != StrategyLLM {
		return Errorf(EINVALID, "unknown extraction strategy %q", s.Strategy)
	}
	return nil
}

// CombinedMarkdown concatenates the markdown of all successfully extracted
// pages, each prefixed with a heading naming its URL.
func (s *CrawlSession) CombinedMarkdown() string {
	var sb strings.Builder
	for _, page := range s.Pages {
		if page.Markdown == "" {
			continue
		}
		sb.WriteString("# " + page.URL + "\n\n")
		sb.WriteString(page.Markdown)
		sb.WriteString("\n\n")
	}
	return sb.String()
}
