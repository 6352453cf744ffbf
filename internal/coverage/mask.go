package coverage

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/convolution"
	"github.com/gogpu/vg"
	xdraw "golang.org/x/image/draw"
)

// Full returns a fully opaque mask.
func Full(r image.Rectangle) *image.Alpha {
	m := image.NewAlpha(r)
	for i := range m.Pix {
		m.Pix[i] = 0xff
	}
	return m
}

// Clone returns a copy of m. A nil mask clones to nil.
func Clone(m *image.Alpha) *image.Alpha {
	if m == nil {
		return nil
	}
	c := image.NewAlpha(m.Rect)
	copy(c.Pix, m.Pix)
	return c
}

// Intersect multiplies dst by clip pixel by pixel. A nil clip leaves
// dst unchanged. Both masks must have the same bounds.
func Intersect(dst, clip *image.Alpha) {
	if clip == nil {
		return
	}
	for i, c := range clip.Pix {
		dst.Pix[i] = mul8(dst.Pix[i], c)
	}
}

// Invert replaces every value v with 255-v.
func Invert(m *image.Alpha) {
	for i, v := range m.Pix {
		m.Pix[i] = 0xff - v
	}
}

// IsEmpty reports whether m has no coverage at all.
func IsEmpty(m *image.Alpha) bool {
	for _, v := range m.Pix {
		if v != 0 {
			return false
		}
	}
	return true
}

// Sum returns the total coverage of m in pixels.
func Sum(m *image.Alpha) float64 {
	var s int
	for _, v := range m.Pix {
		s += int(v)
	}
	return float64(s) / 255
}

// maxKernelSigma is the largest standard deviation, in pixels, a kernel
// is built for. Wider blurs run on a downsampled copy of the mask.
const maxKernelSigma = 8

// Blur returns m blurred by a Gaussian with standard deviation sigma.
// Only pixels inside area are computed and the result is zero outside
// it, so area must cover every pixel within three standard deviations
// of the coverage. Coverage outside area counts as zero.
func Blur(m *image.Alpha, sigma float64, area image.Rectangle) *image.Alpha {
	if !(sigma > 0) {
		return Clone(m)
	}
	dst := image.NewAlpha(m.Rect)
	area = area.Intersect(m.Rect)
	if area.Empty() {
		return dst
	}
	// the mask travels through bild in the alpha channel
	src := image.NewRGBA(image.Rect(0, 0, area.Dx(), area.Dy()))
	for y := range area.Dy() {
		row := m.Pix[m.PixOffset(area.Min.X, area.Min.Y+y):][:area.Dx()]
		for x, v := range row {
			src.Pix[y*src.Stride+x*4+3] = v
		}
	}
	work, s := src, sigma
	if sigma > maxKernelSigma {
		f := maxKernelSigma / sigma
		w := max(int(math.Ceil(float64(area.Dx())*f)), 1)
		h := max(int(math.Ceil(float64(area.Dy())*f)), 1)
		work = image.NewRGBA(image.Rect(0, 0, w, h))
		xdraw.BiLinear.Scale(work, work.Rect, src, src.Rect, xdraw.Src, nil)
		s = sigma * float64(w) / float64(area.Dx())
	}
	size := work.Rect.Size()
	k, r := gaussianKernel(s, max(size.X, size.Y))

	// zero border so coverage leaving the area is lost, not reflected
	padded := image.NewRGBA(image.Rect(0, 0, size.X+2*r, size.Y+2*r))
	xdraw.Copy(padded, image.Pt(r, r), work, work.Rect, xdraw.Src, nil)
	opts := &convolution.Options{}
	out := convolution.Convolve(padded, k, opts)
	out = convolution.Convolve(out, k.Transposed(), opts)
	out = out.SubImage(image.Rect(r, r, r+size.X, r+size.Y)).(*image.RGBA)

	if size != src.Rect.Size() {
		up := image.NewRGBA(src.Rect)
		xdraw.BiLinear.Scale(up, up.Rect, out, out.Rect, xdraw.Src, nil)
		out = up
	}
	b := out.Rect.Min
	for y := range area.Dy() {
		row := dst.Pix[dst.PixOffset(area.Min.X, area.Min.Y+y):][:area.Dx()]
		for x := range row {
			row[x] = out.Pix[out.PixOffset(b.X+x, b.Y+y)+3]
		}
	}
	return dst
}

// gaussianKernel returns a 1-D Gaussian kernel and its radius. The
// kernel reaches three standard deviations each way and sums to one.
// When that is wider than limit pixels it is cut at limit and keeps the
// density weights, so the cut tails lose their share of coverage.
func gaussianKernel(sigma float64, limit int) (convolution.Matrix, int) {
	r := int(math.Ceil(3 * sigma))
	cut := r > limit
	if cut {
		r = max(limit, 1)
	}
	k := convolution.NewKernel(2*r+1, 1)
	for i := range k.Matrix {
		x := float64(i - r)
		k.Matrix[i] = math.Exp(-x*x/(2*sigma*sigma)) / (sigma * math.Sqrt(2*math.Pi))
	}
	if cut {
		return k, r
	}
	return k.Normalized(), r
}

// Rect returns the coverage of a device-space rectangle with
// antialiased edges.
func (r *Rasterizer) Rect(rect vg.Rect) *image.Alpha {
	return r.Fill(rect.PathElements(0), vg.NonZero)
}

func mul8(a, b uint8) uint8 {
	return uint8((uint32(a)*uint32(b) + 127) / 255)
}
