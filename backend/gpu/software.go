package gpu

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"sync/atomic"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/vg"
	"github.com/gogpu/wgpu/hal"
)

// ErrExecutorClosed is returned by Execute after Close.
var ErrExecutorClosed = errors.New("gpu: executor closed")

// Sample positions within a pixel, matching the standard 1x and 4x
// multisample patterns.
var (
	samplePattern1 = []vg.Point{{X: 0.5, Y: 0.5}}
	samplePattern4 = []vg.Point{
		{X: 0.375, Y: 0.125},
		{X: 0.875, Y: 0.375},
		{X: 0.125, Y: 0.625},
		{X: 0.625, Y: 0.875},
	}
)

// fullScreenQuad covers the whole viewport in NDC.
var fullScreenQuad = []float32{-1, 1, 1, 1, 1, -1, -1, 1, 1, -1, -1, -1}

// SoftwareExecutor executes frames on the CPU.
//
// It interprets the Pipeline descriptors of each draw the way a GPU
// would: triangles are rasterized at the sample positions of the
// multisample pattern, the stencil test and operations of
// hal.DepthStencilState update a per-sample stencil attachment and
// colors are blended with the factors of gputypes.BlendState. Fragments
// are shaded once per pixel at the pixel center. The resolve averages
// the samples of each pixel.
//
// A SoftwareExecutor is safe for concurrent use; every Execute call
// allocates its own attachments.
type SoftwareExecutor struct {
	pattern []vg.Point
	closed  atomic.Bool
}

// NewSoftwareExecutor creates an executor with 1 or 4 samples per pixel.
func NewSoftwareExecutor(sampleCount int) (*SoftwareExecutor, error) {
	var pattern []vg.Point
	switch sampleCount {
	case 1:
		pattern = samplePattern1
	case 4:
		pattern = samplePattern4
	default:
		return nil, vg.InvalidInputf("sample count %d, want 1 or 4", sampleCount)
	}
	return &SoftwareExecutor{pattern: pattern}, nil
}

// SampleCount returns the number of samples per pixel.
func (e *SoftwareExecutor) SampleCount() int { return len(e.pattern) }

// Execute runs f against target.
func (e *SoftwareExecutor) Execute(ctx context.Context, f *Frame, target *image.RGBA) error {
	if e.closed.Load() {
		return ErrExecutorClosed
	}
	if target.Rect.Dx() != f.Width || target.Rect.Dy() != f.Height {
		return fmt.Errorf("gpu: target %dx%d does not match frame %dx%d",
			target.Rect.Dx(), target.Rect.Dy(), f.Width, f.Height)
	}
	p := newPass(f.Width, f.Height, e.pattern)
	p.load(target)

	p.clips = make([][]uint8, len(f.Clips))
	for i, c := range f.Clips {
		if err := ctx.Err(); err != nil {
			return err
		}
		if c.Parent >= i {
			return fmt.Errorf("gpu: clip %d has parent %d", i, c.Parent)
		}
		p.clips[i] = make([]uint8, len(p.stencil))
		p.run(StencilNonZero, c.Fan, nil, nil, nil)
		p.run(ClipCover, fullScreenQuad, p.clipAt(c.Parent), opaque, p.clips[i])
	}

	for i := range f.Draws {
		if err := ctx.Err(); err != nil {
			return err
		}
		d := &f.Draws[i]
		if d.Clip >= len(f.Clips) {
			return fmt.Errorf("gpu: draw %d uses clip %d of %d", i, d.Clip, len(f.Clips))
		}
		clip := p.clipAt(d.Clip)
		switch d.Kind {
		case DrawFill:
			p.run(d.Stencil, d.Fan, nil, nil, nil)
			p.run(d.Pass, d.Quad, clip, paintShader(&d.Paint), nil)
		case DrawClear:
			p.run(d.Pass, d.Quad, nil, paintShader(&d.Paint), nil)
		case DrawTexture:
			if d.Texture == nil || d.Texture.Pixels == nil {
				return fmt.Errorf("gpu: draw %d has no texture", i)
			}
			p.run(d.Pass, d.Quad, clip, textureShader(d.Texture.Pixels, d.Sample), nil)
		case DrawBlurRect:
			p.run(d.Pass, d.Quad, clip, blurShader(d.Blur, paintShader(&d.Paint)), nil)
		default:
			return fmt.Errorf("gpu: draw %d has kind %v", i, d.Kind)
		}
	}
	p.resolve(target)
	return nil
}

// Close releases the executor. Later Execute calls fail.
func (e *SoftwareExecutor) Close() error {
	e.closed.Store(true)
	return nil
}

// shader returns the premultiplied color of the fragment at a pixel.
// ok false discards the fragment.
type shader func(px, py int) (c [4]float32, ok bool)

// pass holds the attachments of one frame.
type pass struct {
	w, h    int
	pattern []vg.Point
	color   []float32 // 4 premultiplied channels per sample
	stencil []uint8
	clips   [][]uint8
}

func newPass(w, h int, pattern []vg.Point) *pass {
	n := w * h * len(pattern)
	return &pass{
		w:       w,
		h:       h,
		pattern: pattern,
		color:   make([]float32, 4*n),
		stencil: make([]uint8, n),
	}
}

func (p *pass) clipAt(i int) []uint8 {
	if i < 0 {
		return nil
	}
	return p.clips[i]
}

// load copies the target into every sample.
func (p *pass) load(target *image.RGBA) {
	n := len(p.pattern)
	for y := range p.h {
		for x := range p.w {
			c := target.RGBAAt(target.Rect.Min.X+x, target.Rect.Min.Y+y)
			v := [4]float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255}
			base := (y*p.w + x) * n
			for s := range n {
				copy(p.color[4*(base+s):], v[:])
			}
		}
	}
}

// resolve averages the samples of each pixel into the target.
func (p *pass) resolve(target *image.RGBA) {
	n := len(p.pattern)
	for y := range p.h {
		for x := range p.w {
			var sum [4]float32
			base := (y*p.w + x) * n
			for s := range n {
				for ch := range 4 {
					sum[ch] += p.color[4*(base+s)+ch]
				}
			}
			target.SetRGBA(target.Rect.Min.X+x, target.Rect.Min.Y+y, color.RGBA{
				R: unorm8(sum[0] / float32(n)),
				G: unorm8(sum[1] / float32(n)),
				B: unorm8(sum[2] / float32(n)),
				A: unorm8(sum[3] / float32(n)),
			})
		}
	}
}

// run executes one pipeline over the triangles of verts. clip masks the
// color writes per sample. dst selects an R8 clip attachment instead of
// the color attachment.
func (p *pass) run(pl *Pipeline, verts []float32, clip []uint8, shade shader, dst []uint8) {
	ds := pl.DepthStencil
	writes := pl.WritesColor() && shade != nil
	p.rasterize(verts, func(px, py, s int, front bool) {
		i := (py*p.w+px)*len(p.pattern) + s
		if ds != nil {
			face := ds.StencilBack
			if front {
				face = ds.StencilFront
			}
			read, write := uint8(ds.StencilReadMask), uint8(ds.StencilWriteMask)
			v := p.stencil[i]
			passed := compare(face.Compare, 0, v&read)
			op := face.FailOp
			if passed {
				op = face.PassOp
			}
			p.stencil[i] = v&^write | stencilOp(op, v, 0)&write
			if !passed {
				return
			}
		}
		if !writes || (clip != nil && clip[i] == 0) {
			return
		}
		c, ok := shade(px, py)
		if !ok {
			return
		}
		if dst != nil {
			dst[i] = unorm8(c[3])
			return
		}
		blend(pl.Target.Blend, c, p.color[4*i:4*i+4])
	})
}

// rasterize calls fn for every sample inside the triangles of verts.
// front reports a counter-clockwise triangle in NDC.
func (p *pass) rasterize(verts []float32, fn func(px, py, s int, front bool)) {
	for t := 0; t+6 <= len(verts); t += 6 {
		area := (float64(verts[t+2])-float64(verts[t]))*(float64(verts[t+5])-float64(verts[t+1])) -
			(float64(verts[t+3])-float64(verts[t+1]))*(float64(verts[t+4])-float64(verts[t]))
		if area == 0 || math.IsNaN(area) {
			continue
		}
		front := area > 0
		a := p.toPixel(verts[t], verts[t+1])
		b := p.toPixel(verts[t+2], verts[t+3])
		c := p.toPixel(verts[t+4], verts[t+5])
		// y flips between NDC and pixels: front triangles are clockwise
		// in pixel space. Orient every triangle the same way.
		if front {
			b, c = c, b
		}
		x0 := max(0, int(math.Floor(min(a.X, b.X, c.X))))
		y0 := max(0, int(math.Floor(min(a.Y, b.Y, c.Y))))
		x1 := min(p.w, int(math.Ceil(max(a.X, b.X, c.X))))
		y1 := min(p.h, int(math.Ceil(max(a.Y, b.Y, c.Y))))
		for py := y0; py < y1; py++ {
			for px := x0; px < x1; px++ {
				for s, off := range p.pattern {
					q := vg.Pt(float64(px)+off.X, float64(py)+off.Y)
					if covers(a, b, q) && covers(b, c, q) && covers(c, a, q) {
						fn(px, py, s, front)
					}
				}
			}
		}
	}
}

func (p *pass) toPixel(x, y float32) vg.Point {
	return vg.Pt((float64(x)+1)/2*float64(p.w), (1-float64(y))/2*float64(p.h))
}

// covers reports whether q is on the inner side of the edge a->b. Samples
// exactly on an edge belong to one of the two triangles sharing it.
func covers(a, b, q vg.Point) bool {
	e := (b.X-a.X)*(q.Y-a.Y) - (b.Y-a.Y)*(q.X-a.X)
	if e != 0 {
		return e > 0
	}
	dx, dy := b.X-a.X, b.Y-a.Y
	return dy > 0 || (dy == 0 && dx < 0)
}

// compare evaluates a stencil compare function with the reference on the
// left.
func compare(f gputypes.CompareFunction, ref, v uint8) bool {
	switch f {
	case gputypes.CompareFunctionNever:
		return false
	case gputypes.CompareFunctionLess:
		return ref < v
	case gputypes.CompareFunctionEqual:
		return ref == v
	case gputypes.CompareFunctionLessEqual:
		return ref <= v
	case gputypes.CompareFunctionGreater:
		return ref > v
	case gputypes.CompareFunctionNotEqual:
		return ref != v
	case gputypes.CompareFunctionGreaterEqual:
		return ref >= v
	}
	return true
}

func stencilOp(op hal.StencilOperation, v, ref uint8) uint8 {
	switch op {
	case hal.StencilOperationZero:
		return 0
	case hal.StencilOperationReplace:
		return ref
	case hal.StencilOperationInvert:
		return ^v
	case hal.StencilOperationIncrementClamp:
		if v == math.MaxUint8 {
			return v
		}
		return v + 1
	case hal.StencilOperationDecrementClamp:
		if v == 0 {
			return v
		}
		return v - 1
	case hal.StencilOperationIncrementWrap:
		return v + 1
	case hal.StencilOperationDecrementWrap:
		return v - 1
	}
	return v
}

// blend combines src into dst. A nil state replaces dst.
func blend(state *gputypes.BlendState, src [4]float32, dst []float32) {
	if state == nil {
		copy(dst, src[:])
		return
	}
	var d [4]float32
	copy(d[:], dst)
	for ch := range 4 {
		comp := state.Color
		if ch == 3 {
			comp = state.Alpha
		}
		sf := blendFactor(comp.SrcFactor, src, d, ch)
		df := blendFactor(comp.DstFactor, src, d, ch)
		dst[ch] = min(1, max(0, src[ch]*sf+d[ch]*df))
	}
}

func blendFactor(f gputypes.BlendFactor, src, dst [4]float32, ch int) float32 {
	switch f {
	case gputypes.BlendFactorZero:
		return 0
	case gputypes.BlendFactorOne:
		return 1
	case gputypes.BlendFactorSrc:
		return src[ch]
	case gputypes.BlendFactorOneMinusSrc:
		return 1 - src[ch]
	case gputypes.BlendFactorSrcAlpha:
		return src[3]
	case gputypes.BlendFactorOneMinusSrcAlpha:
		return 1 - src[3]
	case gputypes.BlendFactorDst:
		return dst[ch]
	case gputypes.BlendFactorOneMinusDst:
		return 1 - dst[ch]
	case gputypes.BlendFactorDstAlpha:
		return dst[3]
	case gputypes.BlendFactorOneMinusDstAlpha:
		return 1 - dst[3]
	}
	return 1
}

func opaque(int, int) ([4]float32, bool) {
	return [4]float32{1, 1, 1, 1}, true
}

func premul(c vg.Color) [4]float32 {
	p := c.PremulRGBA()
	return [4]float32{float32(p.R) / 255, float32(p.G) / 255, float32(p.B) / 255, float32(p.A) / 255}
}

func center(px, py int) vg.Point {
	return vg.Pt(float64(px)+0.5, float64(py)+0.5)
}

func paintShader(p *Paint) shader {
	if p.Gradient == nil {
		c := p.Color
		return func(int, int) ([4]float32, bool) { return c, true }
	}
	g, toUser := p.Gradient, p.ToUser
	return func(px, py int) ([4]float32, bool) {
		return premul(g.ColorAt(toUser.TransformPoint(center(px, py)))), true
	}
}

// textureShader samples with clamp-to-edge addressing inside s.Src.
func textureShader(tex *image.RGBA, s Sampling) shader {
	src := s.Src.Intersect(tex.Rect)
	if src.Empty() {
		return func(int, int) ([4]float32, bool) { return [4]float32{}, false }
	}
	texel := func(x, y int) [4]float32 {
		x = min(max(x, src.Min.X), src.Max.X-1)
		y = min(max(y, src.Min.Y), src.Max.Y-1)
		c := tex.RGBAAt(x, y)
		return [4]float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255}
	}
	if s.Filter != gputypes.FilterModeLinear {
		return func(px, py int) ([4]float32, bool) {
			q := s.ToTexel.TransformPoint(center(px, py))
			return texel(int(math.Floor(q.X)), int(math.Floor(q.Y))), true
		}
	}
	return func(px, py int) ([4]float32, bool) {
		q := s.ToTexel.TransformPoint(center(px, py))
		x, y := q.X-0.5, q.Y-0.5
		x0, y0 := math.Floor(x), math.Floor(y)
		fx, fy := float32(x-x0), float32(y-y0)
		ix, iy := int(x0), int(y0)
		c00, c10 := texel(ix, iy), texel(ix+1, iy)
		c01, c11 := texel(ix, iy+1), texel(ix+1, iy+1)
		var out [4]float32
		for ch := range 4 {
			top := c00[ch]*(1-fx) + c10[ch]*fx
			bottom := c01[ch]*(1-fx) + c11[ch]*fx
			out[ch] = top*(1-fy) + bottom*fy
		}
		return out, true
	}
}

// blurShader modulates paint by the coverage of a rectangle convolved
// with a Gaussian, evaluated in user space.
func blurShader(b BlurRect, paint shader) shader {
	r := b.Rect.Abs()
	return func(px, py int) ([4]float32, bool) {
		u := b.ToUser.TransformPoint(center(px, py))
		a := float32(blurCoverage(r.X0, r.X1, u.X, b.Sigma) * blurCoverage(r.Y0, r.Y1, u.Y, b.Sigma))
		if a <= 0 {
			return [4]float32{}, false
		}
		c, ok := paint(px, py)
		for ch := range 4 {
			c[ch] *= a
		}
		return c, ok
	}
}

func blurCoverage(lo, hi, x, sigma float64) float64 {
	if sigma == 0 {
		if x >= lo && x < hi {
			return 1
		}
		return 0
	}
	s := sigma * math.Sqrt2
	return 0.5 * (math.Erf((hi-x)/s) - math.Erf((lo-x)/s))
}

func unorm8(v float32) uint8 {
	return uint8(min(255, max(0, math.Round(float64(v)*255))))
}
