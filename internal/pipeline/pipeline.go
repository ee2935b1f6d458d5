// Package pipeline runs the validate/fetch/extract/summarize sequence behind
// the summarize endpoint. Each request is stateless; every check re-fetches.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/scoopsfinder/scoopsd/internal/ai"
	"github.com/scoopsfinder/scoopsd/internal/classify"
	"github.com/scoopsfinder/scoopsd/internal/extract"
	"github.com/scoopsfinder/scoopsd/internal/metrics"
)

// Check outcome reasons, also surfaced to clients.
const (
	ReasonVideo       = "URL points to a video platform"
	ReasonPDF         = "URL points to a PDF document"
	ReasonUnreachable = "Could not access URL"
	ReasonNoText      = "No extractable text"
)

var (
	ErrInvalidURL        = errors.New("invalid URL")
	ErrNotSummarizable   = errors.New("URL is not summarizable")
	ErrFetch             = errors.New("failed to fetch article content")
	ErrNoContent         = errors.New("no extractable text")
	ErrProvider          = errors.New("failed to summarize the article")
	ErrMissingCredential = errors.New("summarization provider credential not configured")
)

// Fetcher retrieves a page body for a URL.
type Fetcher interface {
	Get(ctx context.Context, rawURL string) (string, error)
}

// Outcome is the result of a validity check.
type Outcome struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

type Pipeline struct {
	fetcher    Fetcher
	summarizer ai.Summarizer
	maxWords   int
}

// New wires a pipeline from its collaborators. summarizer may be nil when no
// provider credential is configured; check requests still work, summarize
// requests fail with ErrMissingCredential.
func New(fetcher Fetcher, summarizer ai.Summarizer, maxWords int) *Pipeline {
	return &Pipeline{
		fetcher:    fetcher,
		summarizer: summarizer,
		maxWords:   maxWords,
	}
}

// Check reports whether the URL is worth summarizing: not a video link, not a
// PDF, reachable, and carrying extractable text. Video and PDF URLs are
// rejected before any fetch. ErrInvalidURL is the only error; every other
// negative result is a soft Outcome, not a failure.
func (p *Pipeline) Check(ctx context.Context, rawURL string) (Outcome, error) {
	outcome, _, err := p.classifyAndExtract(ctx, rawURL)
	return outcome, err
}

// Summarize runs the full sequence and returns the summary text.
func (p *Pipeline) Summarize(ctx context.Context, rawURL string) (string, error) {
	outcome, text, err := p.classifyAndExtract(ctx, rawURL)
	if err != nil {
		return "", err
	}
	if !outcome.Valid {
		switch outcome.Reason {
		case ReasonUnreachable:
			return "", ErrFetch
		case ReasonNoText:
			return "", ErrNoContent
		default:
			return "", fmt.Errorf("%w: %s", ErrNotSummarizable, outcome.Reason)
		}
	}

	if p.summarizer == nil {
		return "", ErrMissingCredential
	}

	summary, err := p.summarizer.Summarize(ctx, text)
	if err != nil {
		metrics.ProviderFailures.Inc()
		return "", fmt.Errorf("%w: %v", ErrProvider, err)
	}

	metrics.SummariesTotal.Inc()
	return summary, nil
}

// classifyAndExtract is the shared front of both actions: classify, fetch,
// extract, truncate. On a positive outcome the truncated text is returned.
func (p *Pipeline) classifyAndExtract(ctx context.Context, rawURL string) (Outcome, string, error) {
	if !classify.IsValidURL(rawURL) {
		metrics.ChecksTotal.WithLabelValues("invalid_url").Inc()
		return Outcome{}, "", ErrInvalidURL
	}
	if classify.IsVideoURL(rawURL) {
		metrics.ChecksTotal.WithLabelValues("video").Inc()
		return Outcome{Valid: false, Reason: ReasonVideo}, "", nil
	}
	if classify.IsPDFURL(rawURL) {
		metrics.ChecksTotal.WithLabelValues("pdf").Inc()
		return Outcome{Valid: false, Reason: ReasonPDF}, "", nil
	}

	body, err := p.fetcher.Get(ctx, rawURL)
	if err != nil {
		metrics.FetchFailures.Inc()
		metrics.ChecksTotal.WithLabelValues("unreachable").Inc()
		return Outcome{Valid: false, Reason: ReasonUnreachable}, "", nil
	}

	text, err := extract.Text(body)
	if err != nil || text == "" {
		metrics.ChecksTotal.WithLabelValues("no_text").Inc()
		return Outcome{Valid: false, Reason: ReasonNoText}, "", nil
	}

	metrics.ChecksTotal.WithLabelValues("valid").Inc()
	return Outcome{Valid: true}, extract.TruncateWords(text, p.maxWords), nil
}
