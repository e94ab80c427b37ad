// Package httpbase holds the plain-HTTP request/decode plumbing shared by
// every provider adapter: a pre-built client, a capped error-body reader,
// and a JSON decode helper. Per-backend adapters build on top of this with
// their own endpoint methods and response shapes.
package httpbase

import (
	"context"
	"fmt"
	"io"
	"net/http"

	json "github.com/goccy/go-json"
)

// maxErrorBodyBytes caps how much of a non-2xx response body is read back
// for logging, so a misbehaving upstream cannot exhaust memory.
const maxErrorBodyBytes = 64 * 1024

// Client is the shared transport for one adapter instance: one base URL,
// one secret header, one *http.Client reused across all requests issued by
// that instance.
type Client struct {
	BaseURL string

	client      *http.Client
	headerName  string
	headerValue string
}

// New builds a Client. headerName/headerValue set the per-family secret
// header (X-Api-Key, X-Plex-Token, Authorization, ...); the value is never
// logged.
func New(baseURL string, httpClient *http.Client, headerName, headerValue string) *Client {
	return &Client{
		BaseURL:     baseURL,
		client:      httpClient,
		headerName:  headerName,
		headerValue: headerValue,
	}
}

// Do issues req with the adapter's secret header attached and the ambient
// context's cancellation honored, returning the raw response for the
// caller to decode or to read an error body from.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	req = req.WithContext(ctx)
	if c.headerName != "" {
		req.Header.Set(c.headerName, c.headerValue)
	}
	return c.client.Do(req)
}

// GetJSON issues a GET to url and decodes a 2xx JSON body into out. Any
// non-2xx status or decode failure returns an error describing what went
// wrong; callers (adapter methods) are responsible for logging and
// swallowing it into an empty result per the adapter contract.
func (c *Client) GetJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	resp, err := c.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body := readBodyForError(resp.Body)
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// readBodyForError reads up to maxErrorBodyBytes of r for inclusion in an
// error message, without risking unbounded memory use on a misbehaving or
// malicious upstream.
func readBodyForError(r io.Reader) []byte {
	limited := io.LimitReader(r, maxErrorBodyBytes)
	body, _ := io.ReadAll(limited)
	return body
}
