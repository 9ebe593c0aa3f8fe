// Package transport implements ports.Transport over HTTP.
package transport

import (
	"context"
	"io"
	"net/http"
	"time"

	"go.trai.ch/ikon/internal/core/domain"
	"go.trai.ch/ikon/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	httpClientTimeout = 30 * time.Second

	// maxBodySize caps the size of an API response.
	maxBodySize = 32 << 20

	userAgent = "ikon"
)

// Client implements ports.Transport with an http.Client.
type Client struct {
	httpClient *http.Client
}

var _ ports.Transport = (*Client)(nil)

// New creates a transport with a default http client.
func New() *Client {
	return NewWithClient(&http.Client{Timeout: httpClientTimeout})
}

// NewWithClient creates a transport that sends requests through client.
func NewWithClient(client *http.Client) *Client {
	return &Client{httpClient: client}
}

// Get fetches url. Any status is returned as a response; only a request
// that produced no response at all is an error.
func (c *Client) Get(ctx context.Context, url string) (*ports.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrRequestFailed.Error()), "url", url)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrRequestFailed.Error()), "url", url)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		readErr := zerr.With(zerr.Wrap(err, domain.ErrRequestFailed.Error()), "url", url)
		return nil, zerr.With(readErr, "status_code", resp.StatusCode)
	}

	return &ports.Response{Status: resp.StatusCode, Body: body}, nil
}
