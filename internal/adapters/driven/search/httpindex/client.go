// Package httpindex implements the search index port over a REST JSON
// search service.
package httpindex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
	"github.com/custodia-labs/docdex-cli/internal/core/ports/driven"
)

// Ensure Client implements the interfaces.
var (
	_ driven.SearchIndex  = (*Client)(nil)
	_ driven.IndexerAdmin = (*Client)(nil)
)

// DefaultTimeout bounds individual requests to the search service.
const DefaultTimeout = 30 * time.Second

// Config holds connection settings for the search service.
type Config struct {
	// BaseURL is the service root, e.g. "http://localhost:9200".
	BaseURL string

	// APIKey is sent as the api-key header when non-empty.
	APIKey string

	// Index is the index name content operations act on.
	Index string

	// Timeout is the per-request timeout (default: 30s).
	Timeout time.Duration
}

// Client talks to the search service's REST API.
type Client struct {
	baseURL string
	apiKey  string
	index   string
	client  *http.Client
}

// NewClient creates a search index client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("httpindex: base URL is required")
	}
	if cfg.Index == "" {
		return nil, fmt.Errorf("httpindex: index name is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		index:   cfg.Index,
		client:  &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Exists reports whether the named index exists.
func (c *Client) Exists(ctx context.Context, name string) (bool, error) {
	_, status, err := c.doRequest(ctx, http.MethodGet, "/indexes/"+name, nil)
	if status == http.StatusNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Create creates the index with the given schema.
func (c *Client) Create(ctx context.Context, schema domain.IndexSchema) error {
	_, _, err := c.doRequest(ctx, http.MethodPost, "/indexes", schema)
	return err
}

// Schema fetches the current definition of the named index.
func (c *Client) Schema(ctx context.Context, name string) (*domain.IndexSchema, error) {
	data, status, err := c.doRequest(ctx, http.MethodGet, "/indexes/"+name, nil)
	if status == http.StatusNotFound {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var schema domain.IndexSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("decode schema: %w", err)
	}
	return &schema, nil
}

// Update applies a schema update.
func (c *Client) Update(ctx context.Context, schema domain.IndexSchema) error {
	_, _, err := c.doRequest(ctx, http.MethodPut, "/indexes/"+schema.Name, schema)
	return err
}

// Upsert inserts or overwrites documents by id.
func (c *Client) Upsert(ctx context.Context, docs []domain.IndexDocument) error {
	if len(docs) == 0 {
		return nil
	}
	req := map[string]any{"documents": docs}
	_, _, err := c.doRequest(ctx, http.MethodPost, "/indexes/"+c.index+"/docs/upsert", req)
	return err
}

// Delete removes documents by id.
func (c *Client) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	req := map[string]any{"ids": ids}
	_, _, err := c.doRequest(ctx, http.MethodPost, "/indexes/"+c.index+"/docs/delete", req)
	return err
}

// Search returns up to top matching documents plus the total match
// count for the filter.
func (c *Client) Search(ctx context.Context, filter driven.SearchFilter, top int) ([]domain.IndexDocument, int, error) {
	req := map[string]any{"top": top}
	if filter.SourcePage != "" {
		req["filter"] = map[string]any{domain.FieldSourcePage: filter.SourcePage}
	}

	data, _, err := c.doRequest(ctx, http.MethodPost, "/indexes/"+c.index+"/docs/search", req)
	if err != nil {
		return nil, 0, err
	}

	var parsed struct {
		Documents []domain.IndexDocument `json:"documents"`
		Total     int                    `json:"total"`
	}
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, 0, fmt.Errorf("decode search response: %w", err)
	}
	return parsed.Documents, parsed.Total, nil
}

// CreateOrUpdate applies the indexer configuration.
func (c *Client) CreateOrUpdate(ctx context.Context, spec driven.IndexerSpec) error {
	req := map[string]any{
		"name":        spec.Name,
		"targetIndex": spec.TargetIndex,
		"interval":    spec.Interval.String(),
	}
	_, _, err := c.doRequest(ctx, http.MethodPut, "/indexers/"+spec.Name, req)
	return err
}

// Reset clears the indexer's change tracking state.
func (c *Client) Reset(ctx context.Context, name string) error {
	_, _, err := c.doRequest(ctx, http.MethodPost, "/indexers/"+name+"/reset", nil)
	return err
}

// Run triggers an immediate indexer run.
func (c *Client) Run(ctx context.Context, name string) error {
	_, _, err := c.doRequest(ctx, http.MethodPost, "/indexers/"+name+"/run", nil)
	return err
}

// Close releases resources.
func (c *Client) Close() error {
	c.client.CloseIdleConnections()
	return nil
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any) ([]byte, int, error) {
	var buf io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, 0, err
		}
		buf = bytes.NewBuffer(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, buf)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("api-key", c.apiKey)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", domain.ErrIndexUnavailable, err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, resp.StatusCode, fmt.Errorf("search service status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}
	return data, resp.StatusCode, nil
}
