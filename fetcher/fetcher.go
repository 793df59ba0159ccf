package fetcher

import (
	"context"
	"fmt"
	"time"

	"huskykennel-scraper/sources"
)

// Kind classifies a fetch failure.
type Kind int

const (
	KindNetwork Kind = iota
	KindTimeout
	KindHTTPStatus
)

func (k Kind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindHTTPStatus:
		return "http-status"
	default:
		return "network"
	}
}

// FetchError is the typed failure a Fetcher returns. It is per-source and
// never fatal to a run: the orchestrator records it and moves on.
type FetchError struct {
	Kind       Kind
	StatusCode int // set when Kind == KindHTTPStatus
	Err        error
}

func (e *FetchError) Error() string {
	if e.Kind == KindHTTPStatus {
		return fmt.Sprintf("fetch failed (%s %d): %v", e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch failed (%s): %v", e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// RawContent is what a successful fetch hands to the extractor: the body
// bytes (a JSON feed, static HTML, or the rendered DOM) plus fetch metadata.
type RawContent struct {
	Body       []byte
	StatusCode int
	FetchedURL string
	Duration   time.Duration
}

// Fetcher retrieves raw content for one source. Implementations are stateless
// across sources; every invocation is independent.
type Fetcher interface {
	Fetch(ctx context.Context, src sources.SourceConfig) (*RawContent, error)
}
