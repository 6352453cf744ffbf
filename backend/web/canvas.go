package web

// Canvas2D is the subset of CanvasRenderingContext2D the backend uses.
// Colors are CSS color strings and fill rules are "nonzero" or
// "evenodd". Builds for js/wasm bind it to a <canvas> element with
// NewJSCanvas; other builds supply their own implementation.
type Canvas2D interface {
	Save()
	Restore()
	SetTransform(a, b, c, d, e, f float64)
	Transform(a, b, c, d, e, f float64)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticCurveTo(cpx, cpy, x, y float64)
	BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y float64)
	ClosePath()
	Fill(rule string)
	Stroke()
	Clip(rule string)
	FillRect(x, y, w, h float64)
	ClearRect(x, y, w, h float64)

	SetFillStyle(color string)
	SetFillGradient(g CanvasGradient)
	SetStrokeStyle(color string)
	SetStrokeGradient(g CanvasGradient)
	CreateLinearGradient(x0, y0, x1, y1 float64) CanvasGradient
	CreateRadialGradient(x0, y0, r0, x1, y1, r1 float64) CanvasGradient

	SetLineWidth(w float64)
	SetLineCap(lineCap string)
	SetLineJoin(join string)
	SetMiterLimit(limit float64)
	SetLineDash(segments []float64)
	SetLineDashOffset(offset float64)

	SetShadowBlur(blur float64)
	SetShadowColor(color string)
	SetShadowOffset(x, y float64)

	SetFont(font string)
	MeasureText(text string) TextMetrics
	FillText(text string, x, y float64)

	SetImageSmoothingEnabled(on bool)
	// CreateImage makes a drawable from straight (not premultiplied)
	// RGBA pixels.
	CreateImage(width, height int, rgba []byte) (ImageSource, error)
	DrawImage(img ImageSource, sx, sy, sw, sh, dx, dy, dw, dh float64) error
	// GetImageData returns straight RGBA pixels of a device rectangle.
	GetImageData(x, y, width, height int) ([]byte, error)
}

// CanvasGradient is a gradient created by a Canvas2D.
type CanvasGradient interface {
	AddColorStop(offset float64, color string)
}

// ImageSource is a drawable created by Canvas2D.CreateImage, such as
// an offscreen canvas element.
type ImageSource any

// TextMetrics mirrors the fields of the DOM TextMetrics the layout
// uses. Zero font bounding box fields mean the canvas does not report
// them.
type TextMetrics struct {
	Width                    float64
	ActualBoundingBoxLeft    float64
	ActualBoundingBoxRight   float64
	ActualBoundingBoxAscent  float64
	ActualBoundingBoxDescent float64
	FontBoundingBoxAscent    float64
	FontBoundingBoxDescent   float64
}

// CanvasFactory creates a canvas of width by height device pixels.
type CanvasFactory func(width, height int) (Canvas2D, error)
