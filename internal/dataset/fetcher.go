package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// Fetcher retrieves the raw bytes of one shard file. Implementations must be
// safe for concurrent use.
type Fetcher interface {
	FetchShard(ctx context.Context, digit int) (io.ReadCloser, error)
}

// ShardFileName returns the partition file name for a shard digit.
func ShardFileName(digit int) string {
	return fmt.Sprintf("data_%d.csv", digit)
}

// DirFetcher reads shard files from a local directory.
type DirFetcher struct {
	Dir string
}

// FetchShard opens the shard file for the given digit.
func (f *DirFetcher) FetchShard(_ context.Context, digit int) (io.ReadCloser, error) {
	file, err := os.Open(filepath.Join(f.Dir, ShardFileName(digit)))
	if err != nil {
		return nil, fmt.Errorf("open shard %d: %w", digit, err)
	}
	return file, nil
}

// HTTPFetcher downloads shard files from an upstream static file host, e.g.
// the GitHub Pages deployment the dataset was originally published on.
type HTTPFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPFetcher creates an HTTP fetcher with a bounded request timeout.
func NewHTTPFetcher(baseURL string) *HTTPFetcher {
	return &HTTPFetcher{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FetchShard issues a GET for the shard file and returns its body.
func (f *HTTPFetcher) FetchShard(ctx context.Context, digit int) (io.ReadCloser, error) {
	url := f.BaseURL + "/" + ShardFileName(digit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build shard request: %w", err)
	}
	req.Header.Set("User-Agent", "Recallboard/1.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch shard %d: %w", digit, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch shard %d: HTTP %s", digit, resp.Status)
	}
	return resp.Body, nil
}
