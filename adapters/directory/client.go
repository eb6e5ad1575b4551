// Package directory looks up selectable account-manager names.
package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// DefaultBaseURL serves a public users listing
const DefaultBaseURL = "https://jsonplaceholder.typicode.com"

// Lookup returns the list of selectable names
type Lookup interface {
	ListNames(ctx context.Context) ([]string, error)
}

// Client fetches names from GET {base}/users
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a directory client
func NewClient(baseURL string, timeout time.Duration) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type user struct {
	Name string `json:"name"`
}

// ListNames returns the non-empty user names in listing order
func (c *Client) ListNames(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/users", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("directory request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("directory returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var users []user
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, fmt.Errorf("decode directory listing: %w", err)
	}

	names := make([]string, 0, len(users))
	for _, u := range users {
		if name := strings.TrimSpace(u.Name); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}
