//go:build js && wasm

package web

import (
	"fmt"
	"syscall/js"
)

// defaultCanvasFactory creates detached <canvas> elements.
var defaultCanvasFactory CanvasFactory = func(width, height int) (c Canvas2D, err error) {
	defer catch(&err)
	el := js.Global().Get("document").Call("createElement", "canvas")
	el.Set("width", width)
	el.Set("height", height)
	return NewJSCanvas(el), nil
}

// jsCanvas calls a CanvasRenderingContext2D through syscall/js.
type jsCanvas struct {
	el  js.Value
	ctx js.Value
}

// NewJSCanvas binds the 2d context of a <canvas> element.
func NewJSCanvas(el js.Value) Canvas2D {
	return &jsCanvas{el: el, ctx: el.Call("getContext", "2d")}
}

// Element returns the <canvas> element.
func (c *jsCanvas) Element() js.Value { return c.el }

// catch turns a JavaScript exception into an error.
func catch(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if e, ok := r.(error); ok {
		*err = e
		return
	}
	*err = fmt.Errorf("web: %v", r)
}

func (c *jsCanvas) Save()    { c.ctx.Call("save") }
func (c *jsCanvas) Restore() { c.ctx.Call("restore") }

func (c *jsCanvas) SetTransform(a, b, cc, d, e, f float64) {
	c.ctx.Call("setTransform", a, b, cc, d, e, f)
}

func (c *jsCanvas) Transform(a, b, cc, d, e, f float64) {
	c.ctx.Call("transform", a, b, cc, d, e, f)
}

func (c *jsCanvas) BeginPath()          { c.ctx.Call("beginPath") }
func (c *jsCanvas) MoveTo(x, y float64) { c.ctx.Call("moveTo", x, y) }
func (c *jsCanvas) LineTo(x, y float64) { c.ctx.Call("lineTo", x, y) }

func (c *jsCanvas) QuadraticCurveTo(cpx, cpy, x, y float64) {
	c.ctx.Call("quadraticCurveTo", cpx, cpy, x, y)
}

func (c *jsCanvas) BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y float64) {
	c.ctx.Call("bezierCurveTo", cp1x, cp1y, cp2x, cp2y, x, y)
}

func (c *jsCanvas) ClosePath()                  { c.ctx.Call("closePath") }
func (c *jsCanvas) Fill(rule string)            { c.ctx.Call("fill", rule) }
func (c *jsCanvas) Stroke()                     { c.ctx.Call("stroke") }
func (c *jsCanvas) Clip(rule string)            { c.ctx.Call("clip", rule) }
func (c *jsCanvas) FillRect(x, y, w, h float64) { c.ctx.Call("fillRect", x, y, w, h) }

func (c *jsCanvas) ClearRect(x, y, w, h float64) { c.ctx.Call("clearRect", x, y, w, h) }

func (c *jsCanvas) SetFillStyle(color string)   { c.ctx.Set("fillStyle", color) }
func (c *jsCanvas) SetStrokeStyle(color string) { c.ctx.Set("strokeStyle", color) }

func (c *jsCanvas) SetFillGradient(g CanvasGradient) {
	c.ctx.Set("fillStyle", g.(jsGradient).v)
}

func (c *jsCanvas) SetStrokeGradient(g CanvasGradient) {
	c.ctx.Set("strokeStyle", g.(jsGradient).v)
}

func (c *jsCanvas) CreateLinearGradient(x0, y0, x1, y1 float64) CanvasGradient {
	return jsGradient{c.ctx.Call("createLinearGradient", x0, y0, x1, y1)}
}

func (c *jsCanvas) CreateRadialGradient(x0, y0, r0, x1, y1, r1 float64) CanvasGradient {
	return jsGradient{c.ctx.Call("createRadialGradient", x0, y0, r0, x1, y1, r1)}
}

type jsGradient struct{ v js.Value }

func (g jsGradient) AddColorStop(offset float64, color string) {
	g.v.Call("addColorStop", offset, color)
}

func (c *jsCanvas) SetLineWidth(w float64)        { c.ctx.Set("lineWidth", w) }
func (c *jsCanvas) SetLineCap(lineCap string)     { c.ctx.Set("lineCap", lineCap) }
func (c *jsCanvas) SetLineJoin(join string)       { c.ctx.Set("lineJoin", join) }
func (c *jsCanvas) SetMiterLimit(limit float64)   { c.ctx.Set("miterLimit", limit) }
func (c *jsCanvas) SetLineDashOffset(off float64) { c.ctx.Set("lineDashOffset", off) }

func (c *jsCanvas) SetLineDash(segments []float64) {
	arr := make([]any, len(segments))
	for i, s := range segments {
		arr[i] = s
	}
	c.ctx.Call("setLineDash", js.ValueOf(arr))
}

func (c *jsCanvas) SetShadowBlur(blur float64)      { c.ctx.Set("shadowBlur", blur) }
func (c *jsCanvas) SetShadowColor(color string)     { c.ctx.Set("shadowColor", color) }
func (c *jsCanvas) SetFont(font string)             { c.ctx.Set("font", font) }
func (c *jsCanvas) SetImageSmoothingEnabled(b bool) { c.ctx.Set("imageSmoothingEnabled", b) }

func (c *jsCanvas) SetShadowOffset(x, y float64) {
	c.ctx.Set("shadowOffsetX", x)
	c.ctx.Set("shadowOffsetY", y)
}

func (c *jsCanvas) FillText(text string, x, y float64) { c.ctx.Call("fillText", text, x, y) }

func (c *jsCanvas) MeasureText(text string) TextMetrics {
	m := c.ctx.Call("measureText", text)
	num := func(name string) float64 {
		v := m.Get(name)
		if v.Type() != js.TypeNumber {
			return 0
		}
		return v.Float()
	}
	return TextMetrics{
		Width:                    num("width"),
		ActualBoundingBoxLeft:    num("actualBoundingBoxLeft"),
		ActualBoundingBoxRight:   num("actualBoundingBoxRight"),
		ActualBoundingBoxAscent:  num("actualBoundingBoxAscent"),
		ActualBoundingBoxDescent: num("actualBoundingBoxDescent"),
		FontBoundingBoxAscent:    num("fontBoundingBoxAscent"),
		FontBoundingBoxDescent:   num("fontBoundingBoxDescent"),
	}
}

func (c *jsCanvas) CreateImage(width, height int, rgba []byte) (img ImageSource, err error) {
	defer catch(&err)
	el := js.Global().Get("document").Call("createElement", "canvas")
	el.Set("width", width)
	el.Set("height", height)
	data := js.Global().Get("Uint8ClampedArray").New(len(rgba))
	js.CopyBytesToJS(data, rgba)
	id := js.Global().Get("ImageData").New(data, width, height)
	el.Call("getContext", "2d").Call("putImageData", id, 0, 0)
	return el, nil
}

func (c *jsCanvas) DrawImage(img ImageSource, sx, sy, sw, sh, dx, dy, dw, dh float64) (err error) {
	el, ok := img.(js.Value)
	if !ok {
		return fmt.Errorf("web: image source %T is not a js.Value", img)
	}
	defer catch(&err)
	c.ctx.Call("drawImage", el, sx, sy, sw, sh, dx, dy, dw, dh)
	return nil
}

func (c *jsCanvas) GetImageData(x, y, width, height int) (buf []byte, err error) {
	defer catch(&err)
	data := c.ctx.Call("getImageData", x, y, width, height).Get("data")
	buf = make([]byte, data.Get("length").Int())
	js.CopyBytesToGo(buf, data)
	return buf, nil
}
