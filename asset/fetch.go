package asset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"
)

// ErrHTTPStatus is returned for a non-2xx response.
var ErrHTTPStatus = errors.New("asset: unexpected http status")

// FileFetcher serves URLs from a file system. A leading slash is dropped so
// site-absolute paths such as "/earth_dark.jpg" resolve against the root
// of FS.
type FileFetcher struct {
	FS fs.FS
}

// DirFetcher returns a FileFetcher rooted at dir.
func DirFetcher(dir string) FileFetcher {
	return FileFetcher{FS: os.DirFS(dir)}
}

// Fetch implements Fetcher.
func (f FileFetcher) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	if f.FS == nil {
		return nil, fs.ErrNotExist
	}
	name := strings.TrimPrefix(url, "/")
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: url, Err: fs.ErrInvalid}
	}
	return f.FS.Open(name)
}

// HTTPFetcher performs a single GET per URL. Relative URLs are resolved
// against Base by concatenation.
type HTTPFetcher struct {
	// Client defaults to http.DefaultClient.
	Client *http.Client
	// Base is prefixed to URLs without a scheme, e.g. "https://example.org".
	Base string
}

// Fetch implements Fetcher.
func (f HTTPFetcher) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	if !strings.Contains(url, "://") {
		url = strings.TrimSuffix(f.Base, "/") + "/" + strings.TrimPrefix(url, "/")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, err
	}
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: %s", ErrHTTPStatus, resp.Status)
	}
	return resp.Body, nil
}

// FailingFetcher fails every fetch with Err, or fs.ErrNotExist when Err is
// nil. It exercises the fallback path.
type FailingFetcher struct {
	Err error
}

// Fetch implements Fetcher.
func (f FailingFetcher) Fetch(context.Context, string) (io.ReadCloser, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return nil, fs.ErrNotExist
}
