package assets

import (
	"image"

	"github.com/anthonynsimon/bild/transform"
)

// Resize scales img to exactly width x height with linear resampling.
// Non-positive dimensions yield an empty image.
func Resize(img image.Image, width, height int) *image.RGBA {
	if width <= 0 || height <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	return transform.Resize(img, width, height, transform.Linear)
}

// ContainSize fits a srcW x srcH source into a reqW x reqH box keeping its
// aspect ratio. A landscape source keeps the requested width, anything else
// keeps the requested height; the other side is derived and truncated.
func ContainSize(srcW, srcH, reqW, reqH int) (int, int) {
	if srcW <= 0 || srcH <= 0 {
		return reqW, reqH
	}
	ratio := float64(srcW) / float64(srcH)
	if ratio > 1 {
		return reqW, int(float64(reqW) / ratio)
	}
	return int(float64(reqH) * ratio), reqH
}
