package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jmwsk/sitechat"
)

// extractionInstruction tells the model how to restructure page content.
const extractionInstruction = "Extract all the content in a clear and precise manner suitable for RAG chatbots."

// Ensure LLM implements sitechat.PageExtractor at compile time.
var _ sitechat.PageExtractor = (*LLM)(nil)

// LLM extracts a page by asking a language model to restructure its main
// content. The page text is pre-cleaned with a boilerplate extractor so the
// model sees content, not navigation.
type LLM struct {
	Fetcher   sitechat.Fetcher
	Extractor sitechat.Extractor
	Completer sitechat.Completer
}

// llmPage is the JSON shape the model is asked to produce.
type llmPage struct {
	Title    string   `json:"title"`
	Body     string   `json:"body"`
	KeyFacts []string `json:"key_facts"`
}

// ExtractPage fetches the URL, sends the cleaned page text to the model,
// and returns the restructured content as markdown.
func (l *LLM) ExtractPage(ctx context.Context, url string) (*sitechat.PageContent, error) {
	if l.Completer == nil {
		return nil, sitechat.Errorf(sitechat.EUNAUTHORIZED, "LLM extraction requires a configured model provider")
	}

	html, err := l.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	extracted, err := l.Extractor.Extract(html)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(extracted.ContentText) == "" {
		return nil, sitechat.Errorf(sitechat.ENOTFOUND, "no content extracted from %s", url)
	}

	answer, err := l.Completer.Complete(ctx, buildExtractionPrompt(extracted.ContentText))
	if err != nil {
		return nil, err
	}

	parsed, err := parseModelJSON(answer)
	if err != nil {
		return nil, err
	}

	title := parsed.Title
	if title == "" {
		title = extracted.Title
	}

	markdown := renderMarkdown(title, parsed)

	page := &sitechat.PageContent{
		URL:         url,
		Title:       title,
		Markdown:    markdown,
		RawHTML:     html,
		ContentHash: computeHash(markdown),
	}

	collectAssets(page, html, url)

	return page, nil
}

// buildExtractionPrompt builds the prompt sent to the model.
func buildExtractionPrompt(contentText string) string {
	var sb strings.Builder
	sb.WriteString(extractionInstruction)
	sb.WriteString("\n\n")
	sb.WriteString("Respond with a single JSON object with the fields ")
	sb.WriteString(`"title" (string), "body" (markdown string), and "key_facts" (array of strings). `)
	sb.WriteString("Do not include any text outside the JSON object.\n\n")
	sb.WriteString("<page>\n")
	sb.WriteString(contentText)
	sb.WriteString("\n</page>")
	return sb.String()
}

// parseModelJSON parses the model's answer, tolerating markdown code fences
// around the JSON object.
func parseModelJSON(answer string) (*llmPage, error) {
	cleaned := strings.TrimSpace(answer)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var parsed llmPage
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, sitechat.Errorf(sitechat.EINTERNAL, "model returned invalid JSON: %v", err)
	}
	if strings.TrimSpace(parsed.Body) == "" {
		return nil, sitechat.Errorf(sitechat.EINTERNAL, "model returned empty body")
	}
	return &parsed, nil
}

// renderMarkdown assembles the model's structured answer into a single
// markdown document.
func renderMarkdown(title string, parsed *llmPage) string {
	var sb strings.Builder
	if title != "" {
		fmt.Fprintf(&sb, "# %s\n\n", title)
	}
	sb.WriteString(strings.TrimSpace(parsed.Body))
	if len(parsed.KeyFacts) > 0 {
		sb.WriteString("\n\n## Key Facts\n")
		for _, fact := range parsed.KeyFacts {
			fmt.Fprintf(&sb, "\n- %s", fact)
		}
	}
	sb.WriteString("\n")
	return sb.String()
}
