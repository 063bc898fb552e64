package assets

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decode decodes an image in any registered format: png, jpeg, gif, bmp,
// tiff or webp. It returns the format name alongside the pixels.
func Decode(r io.Reader) (image.Image, string, error) {
	return image.Decode(r)
}
