// Package fetch retrieves job postings from the web and reduces them to text.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; ResumeReviewer/1.0)"

// maxBodyBytes caps how much of a response is read.
const maxBodyBytes = 10 << 20

// Result holds the raw and processed content from a URL fetch.
type Result struct {
	URL         string
	HTML        string
	ContentType string
	StatusCode  int
}

// Error represents an error during URL fetching.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// RenderFunc renders a page in a browser and returns its HTML.
type RenderFunc func(ctx context.Context, url string, timeout time.Duration, verbose bool) (string, error)

// Options configures the fetch behavior.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string

	// UseBrowser enables headless rendering when plain HTTP yields too
	// little text.
	UseBrowser bool
	Verbose    bool
	// Render overrides the headless renderer. Defaults to WithBrowser.
	Render RenderFunc
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

func (o *Options) normalize() *Options {
	if o == nil {
		return DefaultOptions()
	}
	out := *o
	if out.Timeout <= 0 {
		out.Timeout = DefaultTimeout
	}
	if out.UserAgent == "" {
		out.UserAgent = DefaultUserAgent
	}
	if out.Render == nil {
		out.Render = WithBrowser
	}
	return &out
}

// URL retrieves HTML content from a URL. On a non-200 status the Result is
// returned together with the error.
func URL(ctx context.Context, urlStr string, opts *Options) (*Result, error) {
	opts = opts.normalize()

	parsedURL, err := url.Parse(urlStr)
	if err != nil || (parsedURL.Scheme != "http" && parsedURL.Scheme != "https") || parsedURL.Host == "" {
		return nil, &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", opts.UserAgent)
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	client := &http.Client{Timeout: opts.Timeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to read response body", Cause: err}
	}

	result := &Result{
		URL:         urlStr,
		HTML:        string(body),
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}
	if resp.StatusCode != http.StatusOK {
		return result, &Error{URL: urlStr, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}
	return result, nil
}

// Posting is a job posting reduced to its main content.
type Posting struct {
	URL      string   `json:"url"`
	Platform Platform `json:"platform"`
	Text     string   `json:"text"`
	Markdown string   `json:"markdown"`
	Rendered bool     `json:"rendered"`
}

// JobPostingText fetches a job posting and returns its main text.
func JobPostingText(ctx context.Context, urlStr string, opts *Options) (string, error) {
	posting, err := JobPosting(ctx, urlStr, opts)
	if err != nil {
		return "", err
	}
	return posting.Text, nil
}

// JobPostingMarkdown fetches a job posting and returns its main content as
// markdown.
func JobPostingMarkdown(ctx context.Context, urlStr string, opts *Options) (string, error) {
	posting, err := JobPosting(ctx, urlStr, opts)
	if err != nil {
		return "", err
	}
	return posting.Markdown, nil
}

// JobPosting fetches urlStr and extracts the posting with the selectors for
// its job board. When plain HTTP yields less than MinContentLength characters
// of text and opts.UseBrowser is set, the page is rendered headlessly and the
// longer of the two extractions wins.
func JobPosting(ctx context.Context, urlStr string, opts *Options) (*Posting, error) {
	opts = opts.normalize()
	platform := DetectPlatform(urlStr)
	content := PlatformContentSelectors(platform)
	noise := PlatformNoiseSelectors(platform)

	result, err := URL(ctx, urlStr, opts)
	if err != nil && !opts.UseBrowser {
		return nil, err
	}

	var plain *Posting
	if err == nil {
		plain, err = extractPosting(result.HTML, content, noise)
		if err != nil {
			return nil, &Error{URL: urlStr, Message: "failed to extract posting", Cause: err}
		}
		plain.URL, plain.Platform = urlStr, platform
		if !ShouldUseBrowser(plain.Text) || !opts.UseBrowser {
			return plain, nil
		}
	}

	html, renderErr := opts.Render(ctx, urlStr, opts.Timeout, opts.Verbose)
	if renderErr != nil {
		if plain != nil && plain.Text != "" {
			return plain, nil
		}
		return nil, &Error{URL: urlStr, Message: "browser rendering failed", Cause: renderErr}
	}

	rendered, err := extractPosting(html, content, noise)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to extract rendered posting", Cause: err}
	}
	if plain != nil && len(rendered.Text) < len(plain.Text) {
		return plain, nil
	}
	rendered.URL, rendered.Platform, rendered.Rendered = urlStr, platform, true
	return rendered, nil
}

func extractPosting(html string, content, noise []string) (*Posting, error) {
	main, err := mainSelection(html, content, noise)
	if err != nil {
		return nil, err
	}
	inner, err := main.Html()
	if err != nil {
		return nil, fmt.Errorf("failed to render HTML: %w", err)
	}
	markdown, err := ToMarkdown(inner)
	if err != nil {
		return nil, err
	}
	return &Posting{Text: selectionText(main), Markdown: markdown}, nil
}

// ExtractMainText parses HTML and returns the text of the first element
// matching contentSelectors, or of body when none match. Chrome elements and
// noiseSelectors are removed first.
func ExtractMainText(html string, contentSelectors []string, noiseSelectors ...string) (string, error) {
	main, err := mainSelection(html, contentSelectors, noiseSelectors)
	if err != nil {
		return "", err
	}
	return selectionText(main), nil
}

func mainSelection(html string, contentSelectors, noiseSelectors []string) (*goquery.Selection, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("nav, footer, header, script, style, noscript, .ad, .advertisement, .ads, .sidebar, .cookie-banner, .popup").Remove()
	if len(noiseSelectors) > 0 {
		doc.Find(strings.Join(noiseSelectors, ", ")).Remove()
	}

	for _, selector := range contentSelectors {
		if selection := doc.Find(selector); selection.Length() > 0 {
			return selection.First(), nil
		}
	}
	return doc.Find("body"), nil
}

// selectionText returns the whitespace-normalized text of s with block
// elements on their own lines. s itself is not modified.
func selectionText(s *goquery.Selection) string {
	clone := s.Clone()
	clone.Find("p, li, h1, h2, h3, h4, h5, h6, br, div, tr").Each(func(_ int, b *goquery.Selection) {
		b.AppendHtml("\n")
	})
	return cleanWhitespace(clone.Text())
}

// JobPostingSelectors returns selectors for common job board markup.
func JobPostingSelectors() []string {
	return []string{
		".job-description",
		".job-content",
		"#job-description",
		"#job-content",
		".posting-content",
		".job-details",
		"[data-testid='job-description']",
		"main",
		"article",
		".content",
		"#content",
	}
}

func cleanWhitespace(text string) string {
	var cleaned []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
