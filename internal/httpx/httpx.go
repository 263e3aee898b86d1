// Package httpx is a small wrapper around http.Client shared by the upstream
// source clients.
package httpx

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client issues GET requests with a fixed timeout, optional proxy, and a set
// of default headers applied to every request.
type Client struct {
	HTTP    *http.Client
	Headers map[string]string
}

// New builds a Client. An unparseable proxy URL is ignored rather than fatal;
// upstream calls then go direct.
func New(timeout time.Duration, proxyURL string) *Client {
	transport := &http.Transport{Proxy: http.ProxyFromEnvironment}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &Client{
		HTTP: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// Get fetches the URL and returns the response body. Any non-2xx status is an
// error carrying the status code and a prefix of the body.
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range c.Headers {
		if req.Header.Get(k) == "" {
			req.Header.Set(k, v)
		}
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		limit := len(body)
		if limit > 256 {
			limit = 256
		}
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(body[:limit]))
	}
	return body, nil
}
