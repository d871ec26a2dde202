package feed

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
)

// Content types accepted from the remote feeds.
const (
	contentTypeHeader = "Content-Type"
	textPrefix        = "text/"
	csvContentType    = "application/csv"
)

// Endpoints holds the URLs of the four remote feeds.
type Endpoints struct {
	Totals    string
	Versions  string
	OS        string
	Countries string
}

// RawFeeds holds the decoded rows of the four remote feeds, header and
// trailing rows still attached.
type RawFeeds struct {
	Totals    [][]string
	Versions  [][]string
	OS        [][]string
	Countries [][]string
}

// Client fetches the remote feeds. Feeds are fetched one after another so
// the table build-up stays deterministic; there is no retry and no
// per-feed concurrency, a failed fetch fails the run.
type Client struct {
	http *http.Client
	log  *slog.Logger
}

// NewClient creates a feed client. A nil httpClient falls back to
// http.DefaultClient; a nil logger discards.
func NewClient(httpClient *http.Client, log *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &Client{http: httpClient, log: log}
}

// FetchAll retrieves all four remote feeds sequentially. The first failure
// aborts; partial results are never returned.
func (c *Client) FetchAll(ctx context.Context, eps Endpoints) (*RawFeeds, error) {
	feeds := &RawFeeds{}

	fetches := []struct {
		name string
		url  string
		dst  *[][]string
	}{
		{name: "totals", url: eps.Totals, dst: &feeds.Totals},
		{name: "versions", url: eps.Versions, dst: &feeds.Versions},
		{name: "os", url: eps.OS, dst: &feeds.OS},
		{name: "countries", url: eps.Countries, dst: &feeds.Countries},
	}

	for _, f := range fetches {
		rows, err := c.fetch(ctx, f.url)
		if err != nil {
			return nil, fmt.Errorf("fetch %s feed: %w", f.name, err)
		}

		c.log.Debug("fetched feed", "feed", f.name, "rows", len(rows))

		*f.dst = rows
	}

	return feeds, nil
}

func (c *Client) fetch(ctx context.Context, url string) ([][]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: %s returned %s", ErrFeedUnavailable, url, resp.Status)
	}

	contentType := resp.Header.Get(contentTypeHeader)
	if contentType != "" && !strings.HasPrefix(contentType, textPrefix) && !strings.HasPrefix(contentType, csvContentType) {
		return nil, fmt.Errorf("%w: %s served %s", ErrNotText, url, contentType)
	}

	rows, err := Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}

	return rows, nil
}
