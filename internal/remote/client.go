package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client talks to a line sampling service over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Sample fetches line contents for the given keys. Each key is either a
// "start-end" range, a single line number, or the "-1" last-line
// sentinel. context requests that many surrounding lines per pivot key.
func (c *Client) Sample(ctx context.Context, path string, keys []string, contextLines int) (*SampleResult, error) {
	q := url.Values{}
	q.Set("path", path)
	for _, k := range keys {
		q.Add("k", k)
	}
	if contextLines > 0 {
		q.Set("context", strconv.Itoa(contextLines))
	}

	var result SampleResult
	if err := c.get(ctx, "/api/v1/sample", q, &result); err != nil {
		return nil, err
	}
	if result.Samples == nil {
		result.Samples = map[string][]string{}
	}
	return &result, nil
}

// GetIndex returns index metadata for a file. A service without an
// index for the path responds 404, surfaced as an error; callers treat
// the lookup as best-effort.
func (c *Client) GetIndex(ctx context.Context, path string) (*IndexResult, error) {
	q := url.Values{}
	q.Set("path", path)

	var result IndexResult
	if err := c.get(ctx, "/api/v1/index", q, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) get(ctx context.Context, endpoint string, q url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			return apiErr.toDomain()
		}
		return fmt.Errorf("server returned %s", resp.Status)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
