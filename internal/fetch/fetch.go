// Package fetch downloads job postings and résumé pages and reduces their HTML to readable text.
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
	"go.uber.org/zap"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; InterviewCoach/1.0)"

// MaxBodyBytes caps how much of a response body is read.
const MaxBodyBytes = 5 << 20

// Result holds the raw and processed content from a URL fetch.
type Result struct {
	URL         string
	HTML        string
	Text        string
	ContentType string
	StatusCode  int
	Platform    Platform
	// Rendered is set when the text came from the headless browser
	Rendered bool
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

// Fetcher retrieves pages over HTTP and, when enabled, re-renders pages whose
// static HTML yields too little text in a headless browser.
type Fetcher struct {
	client          *http.Client
	userAgent       string
	headers         map[string]string
	browserFallback bool
	render          RenderFunc
	logger          *zap.Logger
}

// Option configures a Fetcher
type Option func(*Fetcher)

// WithTimeout sets the HTTP request timeout
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.client.Timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithHeader adds a request header
func WithHeader(key, value string) Option {
	return func(f *Fetcher) {
		f.headers[key] = value
	}
}

// WithBrowserFallback enables headless rendering for pages with too little static text
func WithBrowserFallback(enabled bool) Option {
	return func(f *Fetcher) {
		f.browserFallback = enabled
	}
}

// WithRenderer replaces the headless browser renderer
func WithRenderer(render RenderFunc) Option {
	return func(f *Fetcher) {
		if render != nil {
			f.render = render
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(f *Fetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// NewFetcher creates a Fetcher with the default timeout and user agent
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:    &http.Client{Timeout: DefaultTimeout},
		userAgent: DefaultUserAgent,
		headers:   make(map[string]string),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.render == nil {
		f.render = BrowserRenderer(DefaultTimeout, f.logger)
	}
	return f
}

// HTML retrieves the raw HTML of a URL. On a non-200 status the partial result is returned with the error.
func (f *Fetcher) HTML(ctx context.Context, urlStr string) (*Result, error) {
	if err := ValidateURL(urlStr); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", f.userAgent)
	for key, value := range f.headers {
		req.Header.Set(key, value)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to read response body", Cause: err}
	}

	result := &Result{
		URL:         urlStr,
		HTML:        string(body),
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
		Platform:    DetectPlatform(urlStr),
	}

	f.logger.Debug("fetched page",
		zap.String("url", urlStr),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
	)

	if resp.StatusCode != http.StatusOK {
		return result, &Error{URL: urlStr, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}
	return result, nil
}

// Text retrieves a URL and extracts its main text with the detected platform's selectors.
// Plain-text responses are returned unchanged.
func (f *Fetcher) Text(ctx context.Context, urlStr string) (*Result, error) {
	result, err := f.HTML(ctx, urlStr)
	if err != nil {
		return result, err
	}

	if strings.HasPrefix(result.ContentType, "text/plain") {
		result.Text = cleanWhitespace(result.HTML)
		return result, nil
	}

	content := PlatformContentSelectors(result.Platform)
	noise := PlatformNoiseSelectors(result.Platform)

	text, err := ExtractMainText(result.HTML, content, noise...)
	if err != nil {
		return result, &Error{URL: urlStr, Message: "content extraction failed", Cause: err}
	}

	if f.browserFallback && ShouldUseBrowser(text) {
		f.logger.Info("static content too short, rendering in browser",
			zap.String("url", urlStr),
			zap.Int("chars", len(text)),
			zap.Int("min_chars", MinContentLength),
		)
		if rendered, renderErr := f.render(ctx, urlStr); renderErr != nil {
			f.logger.Warn("browser rendering failed, using static content", zap.Error(renderErr))
		} else if renderedText, extractErr := ExtractMainText(rendered, content, noise...); extractErr != nil {
			f.logger.Warn("browser content extraction failed", zap.Error(extractErr))
		} else {
			text = renderedText
			result.HTML = rendered
			result.Rendered = true
		}
	}

	result.Text = text
	return result, nil
}

// ValidateURL checks that urlStr is an absolute http or https URL
func ValidateURL(urlStr string) error {
	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}
	return nil
}

// ExtractMainText parses HTML and returns the main body text.
// It removes noise elements using noiseSelectors, then finds content using contentSelectors.
// If no content selectors match, it falls back to the body element.
func ExtractMainText(html string, contentSelectors []string, noiseSelectors ...string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("nav, footer, header, script, style, noscript, .ad, .advertisement, .ads, .sidebar, .cookie-banner, .popup").Remove()
	if len(noiseSelectors) > 0 {
		doc.Find(strings.Join(noiseSelectors, ", ")).Remove()
	}

	// Block elements become line breaks so section headers and bullets survive as lines
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("p, li, h1, h2, h3, h4, h5, h6, div, tr").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})
	doc.Find("li").Each(func(_ int, s *goquery.Selection) {
		s.PrependHtml("- ")
	})

	var main *goquery.Selection
	for _, selector := range contentSelectors {
		if selection := doc.Find(selector); selection.Length() > 0 {
			main = selection.First()
			break
		}
	}
	if main == nil {
		main = doc.Find("body")
	}

	return cleanWhitespace(main.Text()), nil
}

// DefaultTextSelectors returns standard selectors for general web content such as an online résumé.
func DefaultTextSelectors() []string {
	return []string{"main", "article", ".content", "#content", ".main-content", "#main-content", ".resume"}
}

// cleanWhitespace trims every line and drops the empty ones
func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
