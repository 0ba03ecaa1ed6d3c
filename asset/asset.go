// Package asset fetches and decodes the single external texture a scene
// depends on.
//
// Loads run on their own goroutine and hand the result back through a post
// function, normally anim.Driver.Post, so the caller mutates its scene on
// the frame loop goroutine. A load resolves exactly once, either Loaded or
// Failed, and is never retried.
package asset

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoder
	_ "image/jpeg"
	_ "image/png"
	"io"
	"time"

	_ "golang.org/x/image/bmp" // register BMP decoder
	_ "golang.org/x/image/webp"

	"github.com/gogpu/vista"
	"github.com/gogpu/vista/scene"
)

var (
	// ErrEmptyURL is returned for a load without a location.
	ErrEmptyURL = errors.New("asset: empty url")

	// ErrTooLarge is returned when a body exceeds MaxBytes.
	ErrTooLarge = errors.New("asset: texture too large")

	// ErrDecode wraps image decoding failures.
	ErrDecode = errors.New("asset: decode failed")
)

// MaxBytes bounds the size of a fetched texture.
const MaxBytes = 32 << 20

// State is the resolution of one load attempt.
type State uint8

const (
	// Pending means the fetch has not resolved yet.
	Pending State = iota
	// Loaded means the texture was fetched and decoded.
	Loaded
	// Failed means the fetch or decode failed; the fallback is used.
	Failed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Pending:
		return "Pending"
	case Loaded:
		return "Loaded"
	case Failed:
		return "Failed"
	default:
		return fmt.Sprintf("State(%d)", s)
	}
}

// Result is delivered once per Load.
type Result struct {
	URL   string
	State State
	// Texture is set when State is Loaded. The receiver owns it.
	Texture *scene.Texture
	// Format is the decoder name, such as "png" or "webp".
	Format string
	// Err is set when State is Failed.
	Err error
}

// Fetcher opens the bytes behind a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (io.ReadCloser, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, url string) (io.ReadCloser, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	return f(ctx, url)
}

// Loader resolves textures in the background.
type Loader struct {
	fetcher Fetcher
	post    PostFunc
}

// PostFunc hands fn to the goroutine that owns the scene. It reports false
// when the receiver is gone; when it accepts fn but later discards it, it
// must call drop instead.
type PostFunc func(fn, drop func()) bool

// NewLoader returns a loader that fetches with f and delivers results
// through post. When the receiver rejects or drops the result, the decoded
// texture is disposed and done is never called. A nil post runs done on the
// loading goroutine.
func NewLoader(f Fetcher, post PostFunc) *Loader {
	if post == nil {
		post = func(fn, _ func()) bool { fn(); return true }
	}
	return &Loader{fetcher: f, post: post}
}

// Load starts fetching url and returns immediately. done receives exactly
// one Result with State Loaded or Failed. Cancelling ctx fails the load.
func (l *Loader) Load(ctx context.Context, url string, done func(Result)) {
	go func() {
		res := l.resolve(ctx, url)
		discard := func() {
			if res.Texture != nil {
				res.Texture.Dispose()
			}
		}
		if !l.post(func() { done(res) }, discard) {
			discard()
		}
	}()
}

func (l *Loader) resolve(ctx context.Context, url string) Result {
	start := time.Now()
	img, format, err := l.fetch(ctx, url)
	if err != nil {
		vista.Logger().Warn("asset: load failed", "url", url, "err", err)
		return Result{URL: url, State: Failed, Err: err}
	}
	b := img.Bounds()
	vista.Logger().Info("asset: texture loaded",
		"url", url, "format", format, "width", b.Dx(), "height", b.Dy(),
		"elapsed", time.Since(start))
	return Result{
		URL:     url,
		State:   Loaded,
		Texture: scene.NewTexture(url, img),
		Format:  format,
	}
}

func (l *Loader) fetch(ctx context.Context, url string) (image.Image, string, error) {
	if url == "" {
		return nil, "", ErrEmptyURL
	}
	if l.fetcher == nil {
		return nil, "", fmt.Errorf("asset: no fetcher for %q", url)
	}
	if err := ctx.Err(); err != nil {
		return nil, "", fmt.Errorf("asset: load %q: %w", url, err)
	}
	rc, err := l.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, "", fmt.Errorf("asset: fetch %q: %w", url, err)
	}
	defer rc.Close()

	img, format, err := Decode(rc)
	if err != nil {
		return nil, "", fmt.Errorf("asset: %q: %w", url, err)
	}
	// A cancel that raced the fetch still wins: the receiver has moved on.
	if err := ctx.Err(); err != nil {
		return nil, "", fmt.Errorf("asset: load %q: %w", url, err)
	}
	return img, format, nil
}

// Decode reads one image in any registered format: PNG, JPEG, GIF, BMP
// or WebP. Input beyond MaxBytes fails with ErrTooLarge.
func Decode(r io.Reader) (image.Image, string, error) {
	lr := &io.LimitedReader{R: r, N: MaxBytes + 1}
	img, format, err := image.Decode(lr)
	if lr.N <= 0 {
		return nil, "", ErrTooLarge
	}
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return img, format, nil
}
