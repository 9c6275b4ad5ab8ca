// Package crawl provides website crawling orchestration. It coordinates
// sitemap discovery, page extraction, and link-following, and assembles
// the results into a crawl session.
package crawl

import (
	"context"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/jmwsk/sitechat"
	"golang.org/x/sync/errgroup"
)

// Crawl defaults.
const (
	// DefaultMaxPages bounds deep crawls to prevent runaway sessions.
	DefaultMaxPages = 100

	// DefaultConcurrency is the number of pages processed in parallel.
	DefaultConcurrency = 10
)

// Frontier sizing for deep crawls.
const (
	frontierExpectedURLs      = 10000
	frontierFalsePositiveRate = 0.01
)

// Crawler orchestrates crawl sessions. Base mode visits the seed URL only;
// deep mode discovers further pages from sitemaps and page links, bounded
// by MaxPages and restricted to the seed's host.
type Crawler struct {
	Sitemaps    sitechat.SitemapService
	Extractor   sitechat.PageExtractor
	Strategy    sitechat.ExtractionStrategy
	Limiter     *DomainLimiter
	MaxPages    int
	Concurrency int
}

// ProgressEvent reports progress during a crawl.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// pageResult holds the outcome of processing a single URL.
type pageResult struct {
	position int
	url      string
	page     *sitechat.PageContent
	err      error
}

// Crawl runs a crawl session starting from the seed URL. The seed page is
// always fetched first; a seed that cannot be fetched fails the whole
// session. In deep mode, further pages that fail are recorded as error
// stubs and counted in the session stats without failing the session.
//
// The returned session is non-nil whenever the seed URL and mode are
// valid, so callers can archive failed sessions.
func (c *Crawler) Crawl(ctx context.Context, seedURL string, mode sitechat.CrawlMode, progress ProgressFunc) (*sitechat.CrawlSession, error) {
	seed, err := NormalizeURL(seedURL)
	if err != nil {
		return nil, err
	}
	if mode == sitechat.ModeDeep && c.Strategy == sitechat.StrategyLLM {
		return nil, sitechat.Errorf(sitechat.EINVALID, "llm extraction supports base mode only")
	}

	session := &sitechat.CrawlSession{
		ID:        uuid.New().String(),
		SeedURL:   seed,
		Mode:      mode,
		Strategy:  c.Strategy,
		Status:    sitechat.StatusRunning,
		CreatedAt: time.Now(),
	}
	if err := session.Validate(); err != nil {
		return nil, err
	}

	begin := time.Now()

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, URL: seed})
	}

	// The seed page is fetched before anything else. Failure here is fatal
	// regardless of mode.
	seedPage, err := c.processURL(ctx, seed)
	if err != nil {
		session.Status = sitechat.StatusFailed
		session.Stats.Failed = 1
		session.Stats.Elapsed = time.Since(begin)
		if progress != nil {
			progress(ProgressEvent{Type: ProgressFailed, URL: seed, Error: err})
			progress(ProgressEvent{Type: ProgressFinished})
		}
		return session, err
	}

	c.appendPage(session, seedPage)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressCompleted, Completed: 1, URL: seed})
	}

	if mode == sitechat.ModeDeep {
		c.crawlDeep(ctx, session, seed, seedPage, progress)
	}

	session.Stats.Elapsed = time.Since(begin)

	// An aborted crawl discards its partial pages rather than exposing an
	// inconsistent session.
	if err := ctx.Err(); err != nil {
		session.Status = sitechat.StatusFailed
		session.Pages = nil
		if progress != nil {
			progress(ProgressEvent{Type: ProgressFinished, Completed: session.Stats.Pages})
		}
		return session, err
	}

	session.Status = sitechat.StatusCompleted

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: session.Stats.Pages})
	}

	return session, nil
}

// crawlDeep expands the session beyond the seed page: sitemap URLs and
// same-host links feed a deduplicating frontier, and pages are processed
// in concurrent batches until the frontier drains or MaxPages is reached.
func (c *Crawler) crawlDeep(ctx context.Context, session *sitechat.CrawlSession, seed string, seedPage *sitechat.PageContent, progress ProgressFunc) {
	maxPages := c.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)

	// The seed is already processed; mark it seen so links back to it are
	// not queued again.
	frontier.Push(seed)
	frontier.Pop()

	// Sitemap discovery is best-effort: an unreachable or malformed
	// sitemap falls back to link-following.
	if c.Sitemaps != nil {
		if urls, err := c.Sitemaps.DiscoverURLs(ctx, seed); err == nil {
			c.pushLinks(frontier, seed, urls)
		}
	}
	c.pushLinks(frontier, seed, seedPage.Links)

	processed := 1 // seed
	for frontier.Len() > 0 && processed < maxPages {
		if ctx.Err() != nil {
			return
		}

		remaining := maxPages - processed
		batchSize := concurrency
		if batchSize > remaining {
			batchSize = remaining
		}
		batch := frontier.PopN(batchSize)
		processed += len(batch)

		results := make([]pageResult, len(batch))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(concurrency)
		for i, pageURL := range batch {
			g.Go(func() error {
				page, err := c.processURL(gctx, pageURL)
				results[i] = pageResult{position: i, url: pageURL, page: page, err: err}
				return nil
			})
		}
		_ = g.Wait()

		for _, result := range results {
			if result.err != nil {
				c.appendPage(session, &sitechat.PageContent{
					URL:    result.url,
					Errors: []string{result.err.Error()},
				})
				if progress != nil {
					progress(ProgressEvent{
						Type:      ProgressFailed,
						Completed: session.Stats.Pages,
						URL:       result.url,
						Error:     result.err,
					})
				}
				continue
			}

			c.appendPage(session, result.page)
			c.pushLinks(frontier, seed, result.page.Links)
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressCompleted,
					Completed: session.Stats.Pages,
					URL:       result.url,
				})
			}
		}
	}
}

// processURL rate-limits and extracts a single page.
func (c *Crawler) processURL(ctx context.Context, pageURL string) (*sitechat.PageContent, error) {
	if c.Limiter != nil {
		u, err := url.Parse(pageURL)
		if err != nil {
			return nil, sitechat.Errorf(sitechat.EINVALID, "invalid URL %q: %v", pageURL, err)
		}
		if err := c.Limiter.Wait(ctx, u.Host); err != nil {
			return nil, err
		}
	}
	return c.Extractor.ExtractPage(ctx, pageURL)
}

// appendPage adds a page to the session and updates the stats. Failed
// pages count toward Failed; successful pages contribute link and image
// counts.
func (c *Crawler) appendPage(session *sitechat.CrawlSession, page *sitechat.PageContent) {
	session.Pages = append(session.Pages, page)
	if page.Failed() {
		session.Stats.Failed++
		return
	}
	session.Stats.Pages++
	session.Stats.Links += len(page.Links)
	session.Stats.Images += len(page.Images)
}

// pushLinks queues links that share the seed's host, normalized for
// deduplication.
func (c *Crawler) pushLinks(frontier *Frontier, seed string, links []string) {
	for _, link := range links {
		normalized, err := NormalizeURL(link)
		if err != nil {
			continue
		}
		if !SameHost(seed, normalized) {
			continue
		}
		frontier.Push(normalized)
	}
}
