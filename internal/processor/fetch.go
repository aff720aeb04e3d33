package processor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/woozymasta/geomap/internal/geo"
)

// fetchGeoJSON downloads a remote document and parses it.
// The response body is returned as received.
func fetchGeoJSON(ctx context.Context, client *http.Client, url string) (*geo.FeatureCollection, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Accept", "application/geo+json, application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	// Explicitly ignore close error as it's a read-only operation
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read body: %w", err)
	}

	fc, err := geo.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, nil, err
	}

	return fc, data, nil
}
