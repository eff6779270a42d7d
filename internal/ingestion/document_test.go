package ingestion

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/interview-coach/internal/fetch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	result *fetch.Result
	err    error
	calls  int
}

func (s *stubFetcher) Text(_ context.Context, _ string) (*fetch.Result, error) {
	s.calls++
	return s.result, s.err
}

func TestFromText(t *testing.T) {
	doc, err := FromText("  Senior   Go Engineer \r\n\r\n\r\n- Kubernetes", KindJob, "inline")
	require.NoError(t, err)

	assert.Equal(t, KindJob, doc.Kind)
	assert.Equal(t, "Senior Go Engineer\n\n- Kubernetes", doc.Text)
	assert.Equal(t, "inline", doc.Metadata.Source)
	assert.Equal(t, computeHash(doc.Text), doc.Metadata.Hash)
}

func TestFromText_Empty(t *testing.T) {
	_, err := FromText(" \n\n ", KindResume, "inline")
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("Ada Lovelace\n\n\n\n* Python"), 0o644))

	doc, err := FromFile(path, KindResume)
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace\n\n- Python", doc.Text)
	assert.Equal(t, path, doc.Metadata.Source)
	assert.Equal(t, KindResume, doc.Metadata.Kind)
}

func TestFromFile_Missing(t *testing.T) {
	_, err := FromFile(filepath.Join(t.TempDir(), "missing.txt"), KindResume)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestFromURL(t *testing.T) {
	stub := &stubFetcher{result: &fetch.Result{
		Text:     "Backend Engineer\nRequirements:\n- Python",
		Platform: fetch.PlatformLever,
		Rendered: true,
	}}

	doc, err := FromURL(context.Background(), stub, "https://jobs.lever.co/acme/1", KindJob)
	require.NoError(t, err)

	assert.Equal(t, "Backend Engineer\nRequirements:\n- Python", doc.Text)
	assert.Equal(t, "lever", doc.Metadata.Platform)
	assert.True(t, doc.Metadata.Rendered)
}

func TestFromURL_InvalidURL(t *testing.T) {
	stub := &stubFetcher{}

	_, err := FromURL(context.Background(), stub, "ftp://example.com/job", KindJob)
	assert.ErrorIs(t, err, ErrInvalidURL)
	assert.Zero(t, stub.calls)
}

func TestFromURL_RequestFailed(t *testing.T) {
	stub := &stubFetcher{err: &fetch.Error{URL: "https://example.com", Message: "HTTP status 404"}}

	_, err := FromURL(context.Background(), stub, "https://example.com", KindJob)
	assert.ErrorIs(t, err, ErrHTTPRequestFailed)
}

func TestFromURL_ExtractionFailed(t *testing.T) {
	stub := &stubFetcher{err: &fetch.Error{URL: "https://example.com", Message: "content extraction failed"}}

	_, err := FromURL(context.Background(), stub, "https://example.com", KindJob)
	assert.ErrorIs(t, err, ErrContentExtractionFailed)
}

func TestFromURL_EmptyPage(t *testing.T) {
	stub := &stubFetcher{result: &fetch.Result{Text: "   "}}

	_, err := FromURL(context.Background(), stub, "https://example.com", KindJob)
	assert.ErrorIs(t, err, ErrContentExtractionFailed)
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("https://example.com/job"))
	assert.True(t, IsURL("http://example.com"))
	assert.False(t, IsURL("testdata/job.txt"))
	assert.False(t, IsURL("ftp://example.com"))
}
