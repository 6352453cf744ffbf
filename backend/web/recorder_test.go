package web

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// recorder is a Canvas2D that logs every call. Text advances are a
// fixed width per rune.
type recorder struct {
	calls   []string
	advance float64
	ascent  float64
	descent float64
	pixels  []byte
}

func newRecorder() *recorder {
	return &recorder{advance: 6, ascent: 8, descent: 2}
}

func (r *recorder) call(name string, args ...any) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = fmt.Sprint(a)
	}
	r.calls = append(r.calls, name+"("+strings.Join(parts, ",")+")")
}

// take returns the calls logged since the last take.
func (r *recorder) take() []string {
	c := r.calls
	r.calls = nil
	return c
}

func (r *recorder) count(prefix string) int {
	n := 0
	for _, c := range r.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

type recGradient struct {
	r    *recorder
	name string
}

func (g recGradient) AddColorStop(offset float64, color string) {
	g.r.call(g.name+".addColorStop", offset, color)
}

type recImage struct{ w, h int }

func (r *recorder) Save()    { r.call("save") }
func (r *recorder) Restore() { r.call("restore") }
func (r *recorder) SetTransform(a, b, c, d, e, f float64) {
	r.call("setTransform", a, b, c, d, e, f)
}
func (r *recorder) Transform(a, b, c, d, e, f float64) { r.call("transform", a, b, c, d, e, f) }
func (r *recorder) BeginPath()                         { r.call("beginPath") }
func (r *recorder) MoveTo(x, y float64)                { r.call("moveTo", x, y) }
func (r *recorder) LineTo(x, y float64)                { r.call("lineTo", x, y) }
func (r *recorder) QuadraticCurveTo(cpx, cpy, x, y float64) {
	r.call("quadraticCurveTo", cpx, cpy, x, y)
}
func (r *recorder) BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y float64) {
	r.call("bezierCurveTo", cp1x, cp1y, cp2x, cp2y, x, y)
}
func (r *recorder) ClosePath()                       { r.call("closePath") }
func (r *recorder) Fill(rule string)                 { r.call("fill", rule) }
func (r *recorder) Stroke()                          { r.call("stroke") }
func (r *recorder) Clip(rule string)                 { r.call("clip", rule) }
func (r *recorder) FillRect(x, y, w, h float64)      { r.call("fillRect", x, y, w, h) }
func (r *recorder) ClearRect(x, y, w, h float64)     { r.call("clearRect", x, y, w, h) }
func (r *recorder) SetFillStyle(color string)        { r.call("fillStyle", color) }
func (r *recorder) SetStrokeStyle(color string)      { r.call("strokeStyle", color) }
func (r *recorder) SetFillGradient(g CanvasGradient) { r.call("fillStyle", g.(recGradient).name) }
func (r *recorder) SetStrokeGradient(g CanvasGradient) {
	r.call("strokeStyle", g.(recGradient).name)
}
func (r *recorder) CreateLinearGradient(x0, y0, x1, y1 float64) CanvasGradient {
	r.call("createLinearGradient", x0, y0, x1, y1)
	return recGradient{r, "linear"}
}
func (r *recorder) CreateRadialGradient(x0, y0, r0, x1, y1, r1 float64) CanvasGradient {
	r.call("createRadialGradient", x0, y0, r0, x1, y1, r1)
	return recGradient{r, "radial"}
}
func (r *recorder) SetLineWidth(w float64)             { r.call("lineWidth", w) }
func (r *recorder) SetLineCap(lineCap string)          { r.call("lineCap", lineCap) }
func (r *recorder) SetLineJoin(join string)            { r.call("lineJoin", join) }
func (r *recorder) SetMiterLimit(limit float64)        { r.call("miterLimit", limit) }
func (r *recorder) SetLineDash(segments []float64)     { r.call("setLineDash", segments) }
func (r *recorder) SetLineDashOffset(off float64)      { r.call("lineDashOffset", off) }
func (r *recorder) SetShadowBlur(blur float64)         { r.call("shadowBlur", blur) }
func (r *recorder) SetShadowColor(color string)        { r.call("shadowColor", color) }
func (r *recorder) SetShadowOffset(x, y float64)       { r.call("shadowOffset", x, y) }
func (r *recorder) SetFont(font string)                { r.call("font", font) }
func (r *recorder) FillText(text string, x, y float64) { r.call("fillText", text, x, y) }
func (r *recorder) SetImageSmoothingEnabled(on bool)   { r.call("imageSmoothingEnabled", on) }

func (r *recorder) MeasureText(text string) TextMetrics {
	w := r.advance * float64(utf8.RuneCountInString(text))
	return TextMetrics{
		Width:                    w,
		ActualBoundingBoxRight:   w,
		ActualBoundingBoxAscent:  r.ascent - 1,
		ActualBoundingBoxDescent: r.descent - 1,
		FontBoundingBoxAscent:    r.ascent,
		FontBoundingBoxDescent:   r.descent,
	}
}

func (r *recorder) CreateImage(width, height int, rgba []byte) (ImageSource, error) {
	r.call("createImage", width, height, len(rgba))
	return recImage{width, height}, nil
}

func (r *recorder) DrawImage(img ImageSource, sx, sy, sw, sh, dx, dy, dw, dh float64) error {
	im, ok := img.(recImage)
	if !ok {
		return fmt.Errorf("foreign image %T", img)
	}
	r.call("drawImage", fmt.Sprintf("%dx%d", im.w, im.h), sx, sy, sw, sh, dx, dy, dw, dh)
	return nil
}

func (r *recorder) GetImageData(x, y, width, height int) ([]byte, error) {
	r.call("getImageData", x, y, width, height)
	if r.pixels == nil {
		return make([]byte, width*height*4), nil
	}
	return r.pixels, nil
}
