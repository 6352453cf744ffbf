package raster

import (
	"image"

	"github.com/gogpu/vg"
)

// Image is an immutable premultiplied pixel image.
type Image struct {
	rgba *image.RGBA
}

// NewImage wraps a copy of img.
func NewImage(img image.Image) *Image {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := range b.Dy() {
		for x := range b.Dx() {
			rgba.Set(x, y, img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return &Image{rgba: rgba}
}

// Size returns the size in pixels.
func (i *Image) Size() vg.Size {
	return vg.Sz(float64(i.rgba.Rect.Dx()), float64(i.rgba.Rect.Dy()))
}

// RGBA returns the pixels. The result must not be modified.
func (i *Image) RGBA() *image.RGBA { return i.rgba }
