package mount

import (
	"github.com/gogpu/vista"
	"github.com/gogpu/vista/asset"
	"github.com/gogpu/vista/host"
)

// TextureLoadFailed is the message OnError receives when the earth texture
// could not be loaded and the fallback is shown instead.
const TextureLoadFailed = "Failed to load earth texture. Using fallback."

// Option configures a mount.
type Option func(*options)

type options struct {
	config     vista.Config
	textureURL string
	fetcher    asset.Fetcher
	hostOpts   []host.Option
	onLoaded   func()
	onError    func(message string)
}

func defaultOptions() options {
	return options{
		config:  vista.DefaultConfig(),
		fetcher: asset.DirFetcher("."),
	}
}

// WithConfig replaces the scene configuration, typically loaded with
// vista.LoadConfig.
func WithConfig(cfg vista.Config) Option {
	return func(o *options) { o.config = cfg }
}

// WithTextureURL overrides the configured earth texture location.
func WithTextureURL(url string) Option {
	return func(o *options) { o.textureURL = url }
}

// WithFetcher sets where textures come from. The default serves files
// relative to the working directory.
func WithFetcher(f asset.Fetcher) Option {
	return func(o *options) {
		if f != nil {
			o.fetcher = f
		}
	}
}

// WithHostOptions passes options through to host.Create. They are applied
// after the scene's own camera defaults.
func WithHostOptions(opts ...host.Option) Option {
	return func(o *options) { o.hostOpts = append(o.hostOpts, opts...) }
}

// OnAssetLoaded is called on the frame loop goroutine once the external
// texture has loaded.
func OnAssetLoaded(fn func()) Option {
	return func(o *options) { o.onLoaded = fn }
}

// OnError is called at most once per mount, on the frame loop goroutine,
// when the scene had to fall back from a failed asset load.
func OnError(fn func(message string)) Option {
	return func(o *options) { o.onError = fn }
}
