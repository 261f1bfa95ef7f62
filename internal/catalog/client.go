package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"
)

const (
	furnitureTable = "furniture"
	imageBucket    = "furniture-images"

	defaultTimeout = 30 * time.Second
)

// Client fetches the furniture catalog and its images from a Supabase
// project over its REST and storage endpoints.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewClient builds a catalog client for the given Supabase project URL and
// anon key.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: defaultTimeout},
	}
}

// NewClientFromEnv reads SUPABASE_URL and SUPABASE_KEY from the environment.
func NewClientFromEnv() (*Client, error) {
	baseURL := os.Getenv("SUPABASE_URL")
	apiKey := os.Getenv("SUPABASE_KEY")
	if baseURL == "" || apiKey == "" {
		return nil, fmt.Errorf("SUPABASE_URL and SUPABASE_KEY must be set")
	}
	return NewClient(baseURL, apiKey), nil
}

// Fetch retrieves the full furniture table.
func (c *Client) Fetch(ctx context.Context) ([]*FurnitureRecord, error) {
	endpoint := fmt.Sprintf("%s/rest/v1/%s?select=*", c.baseURL, furnitureTable)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.authorize(req)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog fetch returned status %d", resp.StatusCode)
	}

	var records []*FurnitureRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return records, nil
}

// DownloadImage retrieves one furniture image from the public storage bucket.
func (c *Client) DownloadImage(ctx context.Context, filename string) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/storage/v1/object/public/%s/%s",
		c.baseURL, imageBucket, url.PathEscape(filename))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.authorize(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", filename, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image download for %s returned status %d", filename, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image %s: %w", filename, err)
	}
	return data, nil
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
}
