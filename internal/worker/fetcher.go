package worker

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Fetcher resolves a remote video reference into readable bytes.
type Fetcher interface {
	FetchURL(ctx context.Context, url string) (io.ReadCloser, int64, error)
}

type httpFetcher struct {
	client *http.Client
}

func NewHTTPFetcher(timeout time.Duration) Fetcher {
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}
	return &httpFetcher{client: &http.Client{Timeout: timeout}}
}

// FetchURL downloads the source into a temp file so the upload step has
// a known size and a rewindable reader. The file is removed on Close.
func (f *httpFetcher) FetchURL(ctx context.Context, url string) (io.ReadCloser, int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("build request for %s: %w", url, err)
	}
	res, err := f.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("download %s: %w", url, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("download %s: unexpected status %d", url, res.StatusCode)
	}

	tmp, err := os.CreateTemp("", "video_input_*")
	if err != nil {
		return nil, 0, fmt.Errorf("create temp file: %w", err)
	}
	size, err := io.Copy(tmp, res.Body)
	if err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, 0, fmt.Errorf("read body of %s: %w", url, err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, 0, fmt.Errorf("rewind temp file: %w", err)
	}
	return &tempFile{File: tmp}, size, nil
}

type tempFile struct {
	*os.File
}

func (t *tempFile) Close() error {
	err := t.File.Close()
	if rmErr := os.Remove(t.File.Name()); err == nil {
		err = rmErr
	}
	return err
}
