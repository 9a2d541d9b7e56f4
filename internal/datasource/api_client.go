// internal/datasource/api_client.go
// Client HTTP untuk vendor data-source API (token Bearer + root URL)
package datasource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const maxErrorBody = 512

// APIClient implementasi Client di atas REST API vendor.
type APIClient struct {
	baseURL string
	token   string
	http    *http.Client
}

type wellsResponse struct {
	Data []Well `json:"data"`
}

type productionResponse struct {
	Data ProductionTable `json:"data"`
}

// NewAPIClient membuat client; token dan root URL wajib.
func NewAPIClient(rootURL, token string, timeout time.Duration) (*APIClient, error) {
	rootURL = strings.TrimRight(strings.TrimSpace(rootURL), "/")
	if rootURL == "" {
		return nil, errors.New("datasource: root url is required")
	}
	if _, err := url.Parse(rootURL); err != nil {
		return nil, fmt.Errorf("datasource: invalid root url: %w", err)
	}
	if strings.TrimSpace(token) == "" {
		return nil, errors.New("datasource: token is required")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &APIClient{
		baseURL: rootURL,
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

// BaseURL root URL yang dipakai (tanpa token).
func (c *APIClient) BaseURL() string { return c.baseURL }

// ListWells GET {base}/wells
func (c *APIClient) ListWells(ctx context.Context) ([]Well, error) {
	var out wellsResponse
	if err := c.get(ctx, "/wells", nil, &out); err != nil {
		return nil, fmt.Errorf("list wells: %w", err)
	}
	return out.Data, nil
}

// GetMonthlyProduction GET {base}/production/monthly?well_names=...
func (c *APIClient) GetMonthlyProduction(ctx context.Context, wellNames []string) (ProductionTable, error) {
	q := url.Values{}
	for _, n := range wellNames {
		q.Add("well_names", n)
	}
	var out productionResponse
	if err := c.get(ctx, "/production/monthly", q, &out); err != nil {
		return nil, fmt.Errorf("get monthly production: %w", err)
	}
	if out.Data == nil {
		out.Data = ProductionTable{}
	}
	return out.Data, nil
}

func (c *APIClient) get(ctx context.Context, path string, q url.Values, dst any) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	return nil
}
