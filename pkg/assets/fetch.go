// Package assets acquires image data for Image elements: HTTP fetching with
// an optional on-disk cache, local file reads, decoding and resizing.
package assets

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/electripy/electripy/pkg/errors"
)

// DefaultTimeout bounds a single HTTP fetch.
const DefaultTimeout = 60 * time.Second

// maxBodySize caps fetched payloads.
const maxBodySize = 32 << 20

// Loader resolves an image source (URL or local path) into pixels.
type Loader interface {
	Load(ctx context.Context, src string) (image.Image, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, src string) (image.Image, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, src string) (image.Image, error) {
	return f(ctx, src)
}

// IsURL reports whether src is fetched over HTTP rather than read from disk.
// The scheme is matched case-insensitively.
func IsURL(src string) bool {
	for _, scheme := range []string{"http://", "https://"} {
		if len(src) >= len(scheme) && strings.EqualFold(src[:len(scheme)], scheme) {
			return true
		}
	}
	return false
}

// Fetcher is the default Loader. URLs are fetched over HTTP, everything else
// is read from the filesystem.
type Fetcher struct {
	client *http.Client
	cache  Cache
	logger *zap.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.client.Timeout = d
	}
}

// WithHTTPClient replaces the HTTP client. Its timeout is used as is.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		if c != nil {
			f.client = c
		}
	}
}

// WithCache stores fetched bytes in c, keyed by URL.
func WithCache(c Cache) Option {
	return func(f *Fetcher) {
		f.cache = c
	}
}

// WithLogger sets the logger. It is named "assets".
func WithLogger(l *zap.Logger) Option {
	return func(f *Fetcher) {
		if l != nil {
			f.logger = l.Named("assets")
		}
	}
}

// NewFetcher returns a Fetcher with DefaultTimeout and no cache.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		client: &http.Client{Timeout: DefaultTimeout},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Load reads src and decodes it. Every failure is an ErrImageLoad.
func (f *Fetcher) Load(ctx context.Context, src string) (image.Image, error) {
	data, err := f.Bytes(ctx, src)
	if err != nil {
		return nil, err
	}
	img, format, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Errorf("assets.Load", errors.KindImageLoad, src,
			"%w: decode: %v", errors.ErrImageLoad, err)
	}
	f.logger.Debug("image loaded",
		zap.String("src", src),
		zap.String("format", format),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()))
	return img, nil
}

// Bytes returns the raw payload of src, consulting the cache for URLs.
func (f *Fetcher) Bytes(ctx context.Context, src string) ([]byte, error) {
	const op = "assets.Bytes"
	if !IsURL(src) {
		data, err := os.ReadFile(src)
		if err != nil {
			return nil, errors.Errorf(op, errors.KindImageLoad, src, "%w: %v", errors.ErrImageLoad, err)
		}
		return data, nil
	}

	if f.cache != nil {
		data, ok, err := f.cache.Get(src)
		switch {
		case err != nil:
			f.logger.Warn("asset cache read failed", zap.String("src", src), zap.Error(err))
		case ok:
			f.logger.Debug("asset cache hit", zap.String("src", src))
			return data, nil
		}
	}

	data, err := f.fetch(ctx, src)
	if err != nil {
		return nil, errors.Errorf(op, errors.KindImageLoad, src, "%w: %v", errors.ErrImageLoad, err)
	}
	if f.cache != nil {
		if err := f.cache.Put(src, data); err != nil {
			f.logger.Warn("asset cache write failed", zap.String("src", src), zap.Error(err))
		}
	}
	return data, nil
}

func (f *Fetcher) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch failed: %s returned %s", url, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if len(body) > maxBodySize {
		return nil, fmt.Errorf("response from %s exceeds %d bytes", url, maxBodySize)
	}
	f.logger.Debug("fetched asset",
		zap.String("url", url),
		zap.Int("bytes", len(body)),
		zap.Duration("elapsed", time.Since(start)))
	return body, nil
}
