// Package ollama is a small JSON-over-HTTP client for Ollama-style model endpoints.
package ollama

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hyperjump/kotae/pkg/utils"
)

// maxErrorBody bounds how much of an error response is quoted in the returned error.
const maxErrorBody = 512

// Client posts JSON requests to a fixed endpoint.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient creates a client for url. A non-positive timeout means no client timeout.
func NewClient(url string, timeout time.Duration) *Client {
	return &Client{url: url, httpClient: &http.Client{Timeout: timeout}}
}

// URL returns the endpoint the client posts to.
func (c *Client) URL() string {
	return c.url
}

// PostJSON sends in as a JSON body and decodes the JSON response into out.
func (c *Client) PostJSON(ctx context.Context, in, out any) error {
	resp, err := c.post(ctx, in)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", c.url, err)
	}
	return nil
}

// PostStream sends in as a JSON body and calls fn for every non-empty line of the
// newline-delimited response until fn returns done or the body ends.
func (c *Client) PostStream(ctx context.Context, in any, fn func(line []byte) (done bool, err error)) error {
	resp, err := c.post(ctx, in)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		done, err := fn(line)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read stream from %s: %w", c.url, err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, in any) (*http.Response, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", c.url, err)
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{URL: c.url, Code: resp.StatusCode, Body: utils.Truncate(string(bytes.TrimSpace(msg)), 200)}
	}
	return resp, nil
}

// StatusError reports a non-200 answer from the endpoint.
type StatusError struct {
	URL  string
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s returned status %d", e.URL, e.Code)
	}
	return fmt.Sprintf("%s returned status %d: %s", e.URL, e.Code, e.Body)
}
