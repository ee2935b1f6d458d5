// Package feed retrieves the pre-built article feed from object storage.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/scoopsfinder/scoopsd/internal/models"
)

type Client struct {
	feedURL string
	client  *http.Client
}

func NewClient(feedURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		feedURL: feedURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchGroups downloads and decodes the feed. A cache-busting query parameter
// is appended so intermediaries never serve a stale document.
func (c *Client) FetchGroups(ctx context.Context) ([]models.Group, error) {
	u, err := url.Parse(c.feedURL)
	if err != nil {
		return nil, fmt.Errorf("invalid feed URL: %w", err)
	}
	q := u.Query()
	q.Set("cb", strconv.FormatInt(time.Now().UnixMilli(), 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed fetch returned status %d", resp.StatusCode)
	}

	var groups []models.Group
	if err := json.NewDecoder(resp.Body).Decode(&groups); err != nil {
		return nil, fmt.Errorf("failed to decode feed: %w", err)
	}

	return groups, nil
}
