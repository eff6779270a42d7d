// Package ingestion loads résumé and job-description text from files and URLs,
// cleans it and records where it came from.
package ingestion

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jonathan/interview-coach/internal/fetch"
)

// Kind distinguishes the two document types an interview is prepared from
type Kind string

// Document kinds
const (
	KindResume Kind = "resume"
	KindJob    Kind = "job"
)

var (
	// ErrEmptyDocument is returned when a source yields no text after cleaning
	ErrEmptyDocument = errors.New("document is empty")
	// ErrInvalidURL is returned when URL is malformed
	ErrInvalidURL = errors.New("invalid URL")
	// ErrHTTPRequestFailed is returned when HTTP request fails
	ErrHTTPRequestFailed = errors.New("HTTP request failed")
	// ErrContentExtractionFailed is returned when content extraction fails
	ErrContentExtractionFailed = errors.New("content extraction failed")
)

// Document is cleaned source text with its provenance
type Document struct {
	Kind     Kind
	Text     string
	Metadata *Metadata
}

// FromText cleans raw text into a Document. source names where the text came from.
func FromText(raw string, kind Kind, source string) (*Document, error) {
	cleaned := CleanText(raw)
	if cleaned == "" {
		return nil, fmt.Errorf("%s %s: %w", kind, source, ErrEmptyDocument)
	}
	return &Document{
		Kind:     kind,
		Text:     cleaned,
		Metadata: NewMetadata(cleaned, source, kind, time.Now()),
	}, nil
}

// FromFile reads and cleans a local text file
func FromFile(path string, kind Kind) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s file %s: %w", kind, path, err)
	}
	return FromText(string(content), kind, path)
}

// TextFetcher retrieves the readable text of a web page
type TextFetcher interface {
	Text(ctx context.Context, url string) (*fetch.Result, error)
}

// FromURL fetches a page and cleans its main text into a Document
func FromURL(ctx context.Context, fetcher TextFetcher, urlStr string, kind Kind) (*Document, error) {
	if err := fetch.ValidateURL(urlStr); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	result, err := fetcher.Text(ctx, urlStr)
	if err != nil {
		var fetchErr *fetch.Error
		if errors.As(err, &fetchErr) && strings.HasPrefix(fetchErr.Message, "content extraction") {
			return nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}

	doc, err := FromText(result.Text, kind, urlStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}
	if result.Platform != fetch.PlatformUnknown {
		doc.Metadata.Platform = string(result.Platform)
	}
	doc.Metadata.Rendered = result.Rendered
	return doc, nil
}

// IsURL reports whether source looks like an http(s) URL rather than a file path
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Load reads source as a URL when it looks like one and as a file otherwise
func Load(ctx context.Context, fetcher TextFetcher, source string, kind Kind) (*Document, error) {
	if IsURL(source) {
		return FromURL(ctx, fetcher, source, kind)
	}
	return FromFile(source, kind)
}
