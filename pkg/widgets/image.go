package widgets

import (
	"context"
	stderrors "errors"
	"fmt"
	"image"

	"github.com/electripy/electripy/pkg/assets"
	"github.com/electripy/electripy/pkg/core"
	"github.com/electripy/electripy/pkg/errors"
)

// DefaultImageSize is the bounding box used when none is given.
var DefaultImageSize = Size{Width: 100, Height: 50}

// ImageFit controls how the source is sized into the requested box.
type ImageFit int

const (
	// FitContain keeps the source aspect ratio inside the box.
	// This is the zero value, making it the default for [Image].
	FitContain ImageFit = iota
	// FitFill stretches the source to exactly the box.
	FitFill
)

// String returns a human-readable representation of the fit mode.
func (f ImageFit) String() string {
	switch f {
	case FitContain:
		return "contain"
	case FitFill:
		return "fill"
	default:
		return fmt.Sprintf("ImageFit(%d)", int(f))
	}
}

// ImageOptions configures NewImage.
type ImageOptions struct {
	Common
	// Src is an http(s) URL or a local path.
	Src string
	// Alt is the alternative text attribute.
	Alt string
	Fit ImageFit
	// Size is the requested box. Defaults to DefaultImageSize if zero.
	Size Size
	// Loader resolves Src. Nil means an assets.Fetcher with default options.
	Loader assets.Loader
}

// Image is a bitmap leaf.
type Image struct {
	core.Node
	src       string
	alt       string
	fit       ImageFit
	requested Size
	size      Size
	loader    assets.Loader
	pixels    image.Image
}

// NewImage builds an Image, loading and resizing its source. Load failures
// are reported as errors.ErrImageLoad.
func NewImage(opts ImageOptions) (*Image, error) {
	img := &Image{
		src:       opts.Src,
		alt:       opts.Alt,
		fit:       opts.Fit,
		requested: opts.Size.orDefault(DefaultImageSize),
		loader:    opts.Loader,
	}
	if img.loader == nil {
		img.loader = assets.NewFetcher()
	}
	if err := img.Init(img, opts.options(core.KindImage)); err != nil {
		return nil, err
	}
	return img, nil
}

// Setup blocks until the source is loaded.
func (i *Image) Setup() error {
	const op = "widgets.Image"
	src, err := i.loader.Load(context.Background(), i.src)
	if err != nil {
		if stderrors.Is(err, errors.ErrImageLoad) {
			return err
		}
		return errors.Errorf(op, errors.KindImageLoad, i.src, "%w: %v", errors.ErrImageLoad, err)
	}
	if src == nil || src.Bounds().Empty() {
		return errors.Errorf(op, errors.KindImageLoad, i.src, "%w: empty image", errors.ErrImageLoad)
	}

	i.size = i.requested
	if i.fit == FitContain {
		b := src.Bounds()
		i.size.Width, i.size.Height = assets.ContainSize(b.Dx(), b.Dy(), i.requested.Width, i.requested.Height)
	}
	i.pixels = assets.Resize(src, i.size.Width, i.size.Height)

	i.AddStyle(i.size.decls()...)
	i.SetAttr("src", i.src)
	i.SetAttr("alt", i.alt)
	return nil
}

// Src returns the source URL or path.
func (i *Image) Src() string {
	return i.src
}

// Alt returns the alternative text.
func (i *Image) Alt() string {
	return i.alt
}

// Fit returns the fit mode.
func (i *Image) Fit() ImageFit {
	return i.fit
}

// Size returns the resolved size in pixels.
func (i *Image) Size() Size {
	return i.size
}

// Pixels returns the resized image.
func (i *Image) Pixels() image.Image {
	return i.pixels
}

func (i *Image) AddToApp(h core.Host) error {
	return attachToRoot(i, h)
}
