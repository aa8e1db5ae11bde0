package ics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultUserAgent = "icsreport/1.0"

// StatusError reports a non-2xx response from the feed host.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: %s", redactURL(e.URL), e.Status)
}

// Fetcher retrieves raw ICS payloads over HTTP. One request, fixed timeout,
// no caching.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// NewFetcher creates a Fetcher with the given request timeout and User-Agent.
// Zero/empty arguments fall back to 30s and the default agent string.
func NewFetcher(timeout time.Duration, userAgent string) *Fetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Fetch downloads the feed at feedURL and returns its body. Non-2xx
// responses become a *StatusError.
func (f *Fetcher) Fetch(ctx context.Context, feedURL string) ([]byte, error) {
	if feedURL == "" {
		return nil, errors.New("feed URL is empty")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.userAgent)

	log.Debug().Str("url", redactURL(feedURL)).Msg("fetching feed")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", redactURL(feedURL), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			URL:        feedURL,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", redactURL(feedURL), err)
	}

	log.Debug().Str("url", redactURL(feedURL)).Int("bytes", len(body)).Msg("feed fetched")
	return body, nil
}

// redactURL strips the path and query from a feed URL before logging;
// private feed URLs commonly embed tokens.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "ics://...(redacted)"
	}
	return u.Scheme + "://" + u.Host + "/...(redacted)"
}
