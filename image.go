package vg

import (
	"fmt"
	"image"
)

// ImageFormat is the layout of a raw pixel buffer passed to MakeImage.
// Rows are tightly packed, top to bottom.
type ImageFormat uint8

const (
	// FormatGrayscale is 8-bit grey, 1 byte per pixel.
	FormatGrayscale ImageFormat = iota
	// FormatRGB is 8-bit RGB without alpha, 3 bytes per pixel.
	FormatRGB
	// FormatRGBASeparate is 8-bit RGBA with straight alpha, 4 bytes per pixel.
	FormatRGBASeparate
	// FormatRGBAPremul is 8-bit RGBA with premultiplied alpha, 4 bytes per pixel.
	FormatRGBAPremul
)

// BytesPerPixel returns the pixel stride of the format.
func (f ImageFormat) BytesPerPixel() int {
	switch f {
	case FormatGrayscale:
		return 1
	case FormatRGB:
		return 3
	case FormatRGBASeparate, FormatRGBAPremul:
		return 4
	}
	return 0
}

func (f ImageFormat) String() string {
	switch f {
	case FormatGrayscale:
		return "grayscale"
	case FormatRGB:
		return "rgb"
	case FormatRGBASeparate:
		return "rgba"
	case FormatRGBAPremul:
		return "rgba-premul"
	}
	return fmt.Sprintf("ImageFormat(%d)", uint8(f))
}

// InterpolationMode selects image sampling when scaling.
type InterpolationMode uint8

const (
	// NearestNeighbor picks the closest source pixel.
	NearestNeighbor InterpolationMode = iota
	// Bilinear blends the four closest source pixels.
	Bilinear
)

func (m InterpolationMode) String() string {
	if m == Bilinear {
		return "bilinear"
	}
	return "nearest"
}

// Image is a backend image. Backend image types own their pixels and
// are immutable after creation.
type Image interface {
	Size() Size
}

// ValidateImageBuffer checks that buf holds exactly width*height pixels
// of the given format. It returns an error wrapping ErrInvalidImage.
func ValidateImageBuffer(width, height int, buf []byte, format ImageFormat) error {
	bpp := format.BytesPerPixel()
	if bpp == 0 {
		return fmt.Errorf("%w: unknown format %v", ErrInvalidImage, format)
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidImage, width, height)
	}
	if want := width * height * bpp; len(buf) != want {
		return fmt.Errorf("%w: %d bytes for %dx%d %v, want %d", ErrInvalidImage, len(buf), width, height, format, want)
	}
	return nil
}

// ToNRGBA converts a validated buffer into a new straight-alpha image.
// Grayscale becomes opaque grey, RGB becomes opaque, premultiplied
// pixels are unpremultiplied.
func ToNRGBA(width, height int, buf []byte, format ImageFormat) (*image.NRGBA, error) {
	if err := ValidateImageBuffer(width, height, buf, format); err != nil {
		return nil, err
	}
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	bpp := format.BytesPerPixel()
	for i, j := 0, 0; i < len(buf); i, j = i+bpp, j+4 {
		px := img.Pix[j : j+4 : j+4]
		switch format {
		case FormatGrayscale:
			px[0], px[1], px[2], px[3] = buf[i], buf[i], buf[i], 0xff
		case FormatRGB:
			px[0], px[1], px[2], px[3] = buf[i], buf[i+1], buf[i+2], 0xff
		case FormatRGBASeparate:
			copy(px, buf[i:i+4])
		case FormatRGBAPremul:
			a := buf[i+3]
			px[3] = a
			if a != 0 {
				px[0] = unpremul(buf[i], a)
				px[1] = unpremul(buf[i+1], a)
				px[2] = unpremul(buf[i+2], a)
			}
		}
	}
	return img, nil
}

// ToRGBA converts a validated buffer into a new premultiplied image.
func ToRGBA(width, height int, buf []byte, format ImageFormat) (*image.RGBA, error) {
	if format == FormatRGBAPremul {
		if err := ValidateImageBuffer(width, height, buf, format); err != nil {
			return nil, err
		}
		img := image.NewRGBA(image.Rect(0, 0, width, height))
		copy(img.Pix, buf)
		return img, nil
	}
	n, err := ToNRGBA(width, height, buf, format)
	if err != nil {
		return nil, err
	}
	img := image.NewRGBA(n.Rect)
	for i := 0; i < len(n.Pix); i += 4 {
		a := uint32(n.Pix[i+3])
		img.Pix[i] = uint8((uint32(n.Pix[i])*a + 127) / 255)
		img.Pix[i+1] = uint8((uint32(n.Pix[i+1])*a + 127) / 255)
		img.Pix[i+2] = uint8((uint32(n.Pix[i+2])*a + 127) / 255)
		img.Pix[i+3] = uint8(a)
	}
	return img, nil
}

func unpremul(c, a uint8) uint8 {
	v := (uint32(c)*255 + uint32(a)/2) / uint32(a)
	if v > 255 {
		v = 255
	}
	return uint8(v)
}

// ImageSourceRect clamps src to the image bounds. It reports false when
// nothing remains.
func ImageSourceRect(src Rect, size Size) (Rect, bool) {
	r := src.Abs().Intersect(size.ToRect())
	return r, !r.IsEmpty()
}
