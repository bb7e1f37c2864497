// Package layoutapi calls an external document layout-analysis service
// over HTTP.
package layoutapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/custodia-labs/docdex-cli/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.DocumentLayoutService = (*Client)(nil)

// DefaultTimeout bounds one analysis round trip. Layout analysis of
// large documents is slow; this is deliberately generous.
const DefaultTimeout = 5 * time.Minute

// Config holds connection settings for the layout service.
type Config struct {
	// BaseURL is the service root.
	BaseURL string

	// APIKey is sent as the api-key header when non-empty.
	APIKey string

	// Timeout is the per-analysis timeout (default: 5m).
	Timeout time.Duration
}

// Client submits documents for layout analysis and decodes the result.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewClient creates a layout service client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("layoutapi: base URL is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Analyze submits the document and waits for the analysis result.
func (c *Client) Analyze(ctx context.Context, r io.Reader) (*driven.LayoutResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", r)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	if c.apiKey != "" {
		req.Header.Set("api-key", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("analyze request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("layout service status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result driven.LayoutResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode analysis: %w", err)
	}
	return &result, nil
}
