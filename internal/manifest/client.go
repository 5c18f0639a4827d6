// Package manifest fetches a site manifest and maps it onto the overview and item model.
package manifest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/syd18b/mvp-search/internal/logger"
)

// DefaultMaxBodyBytes bounds how much of a response body is read.
const DefaultMaxBodyBytes int64 = 10 << 20

var errBodyTooLarge = errors.New("body exceeds size limit")

// Fetcher retrieves and decodes one manifest.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (Result, error)
}

// Client issues a single GET per Fetch. It never retries.
type Client struct {
	http    *http.Client
	maxBody int64
	log     logger.Logger
}

// NewClient creates a Client. A maxBody of zero uses DefaultMaxBodyBytes.
func NewClient(httpClient *http.Client, maxBody int64, log logger.Logger) *Client {
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Client{http: httpClient, maxBody: maxBody, log: log}
}

// Fetch requests url verbatim and decodes the body. Every failure is a *FetchError.
func (c *Client) Fetch(ctx context.Context, url string) (Result, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Result{}, &FetchError{Kind: KindTransport, URL: url, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, &FetchError{Kind: KindTransport, URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, c.maxBody))
		return Result{}, &FetchError{Kind: KindStatus, URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return Result{}, &FetchError{Kind: KindTransport, URL: url, StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	if int64(len(body)) > c.maxBody {
		return Result{}, &FetchError{Kind: KindDecode, URL: url, StatusCode: resp.StatusCode, Err: errBodyTooLarge}
	}

	res, err := Parse(body)
	if err != nil {
		kind := KindShape
		if errors.Is(err, errInvalidJSON) {
			kind = KindDecode
		}
		return Result{}, &FetchError{Kind: kind, URL: url, StatusCode: resp.StatusCode, Err: err}
	}

	c.log.Debug("Fetched manifest",
		logger.String("url", url),
		logger.Int("items", len(res.Manifest.Items)),
		logger.Bool("falsy", res.Falsy),
		logger.Duration("duration", time.Since(start)),
	)
	return res, nil
}
