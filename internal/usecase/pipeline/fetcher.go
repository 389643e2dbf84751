package pipeline

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
)

// Fetcher downloads recording media to local scratch files
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a media fetcher with a bounded request timeout
func NewFetcher() *Fetcher {
	return &Fetcher{
		// Follows redirects by default; recordings route through CDN hops
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

// Fetch downloads the recording behind downloadURL, authorizing with the
// per-notification access token, into a temp file. The returned cleanup
// removes the file and must be called on every exit path. Transient failures
// retry with exponential backoff; a non-2xx status after retries is fatal.
func (f *Fetcher) Fetch(ctx context.Context, downloadURL, accessToken string) (path string, cleanup func(), err error) {
	u, err := url.Parse(downloadURL)
	if err != nil {
		return "", nil, fmt.Errorf("invalid download url: %w", err)
	}
	if accessToken != "" {
		q := u.Query()
		q.Set("access_token", accessToken)
		u.RawQuery = q.Encode()
	}

	tmp, err := os.CreateTemp("", "recording-*.m4a")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create scratch file: %w", err)
	}
	cleanup = func() {
		os.Remove(tmp.Name())
	}

	downloadFn := func() error {
		// Restart from the beginning on each attempt
		if _, err := tmp.Seek(0, io.SeekStart); err != nil {
			return backoff.Permanent(err)
		}
		if err := tmp.Truncate(0); err != nil {
			return backoff.Permanent(err)
		}

		req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := f.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return fmt.Errorf("download returned status %d", resp.StatusCode)
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return backoff.Permanent(fmt.Errorf("download returned status %d", resp.StatusCode))
		}

		if _, err := io.Copy(tmp, resp.Body); err != nil {
			return fmt.Errorf("failed to stream recording: %w", err)
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 2 * time.Second
	bo.MaxElapsedTime = 2 * time.Minute
	bo.MaxInterval = 15 * time.Second

	if err := backoff.Retry(downloadFn, backoff.WithContext(bo, ctx)); err != nil {
		tmp.Close()
		cleanup()
		return "", nil, fmt.Errorf("failed to download recording: %w", err)
	}

	if err := tmp.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to finalize scratch file: %w", err)
	}
	return tmp.Name(), cleanup, nil
}
