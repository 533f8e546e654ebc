// Package overlay downloads the GeoJSON boundary layer drawn under the
// storm tracks.
package overlay

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/paulmach/orb/geojson"
)

// maxBodyBytes caps the download; the US states layer is about 90 KB.
const maxBodyBytes = 16 << 20

// Client fetches a GeoJSON FeatureCollection from a fixed URL.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates an overlay client for url.
func NewClient(url string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Fetch downloads and decodes the overlay. A single attempt is made.
func (c *Client) Fetch(ctx context.Context) (*geojson.FeatureCollection, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/geo+json, application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("overlay request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("overlay fetch: status %d: %s", resp.StatusCode, body)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read overlay: %w", err)
	}
	if len(data) > maxBodyBytes {
		return nil, fmt.Errorf("overlay larger than %d bytes", maxBodyBytes)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("decode overlay: %w", err)
	}

	c.logger.Debug("boundary overlay loaded",
		"url", c.url,
		"features", len(fc.Features),
		"bytes", len(data),
		"duration", time.Since(start),
	)
	return fc, nil
}
