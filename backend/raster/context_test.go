package raster

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"math"
	"testing"
	"time"

	"github.com/gogpu/vg"
)

func newTarget(t *testing.T, w, h int, scale float64) (*Bitmap, *RenderContext) {
	t.Helper()
	dev, err := NewDevice()
	if err != nil {
		t.Fatalf("NewDevice() error = %v", err)
	}
	bm, err := dev.BitmapTarget(w, h, scale)
	if err != nil {
		t.Fatalf("BitmapTarget() error = %v", err)
	}
	return bm, bm.RenderContext()
}

func finish(t *testing.T, rc *RenderContext) {
	t.Helper()
	if err := rc.Finish(); err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
}

func TestBitmapTargetValidation(t *testing.T) {
	dev, _ := NewDevice()
	tests := []struct {
		name  string
		w, h  int
		scale float64
	}{
		{"zero width", 0, 10, 1},
		{"negative height", 10, -1, 1},
		{"zero scale", 10, 10, 0},
		{"negative scale", 10, 10, -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := dev.BitmapTarget(tt.w, tt.h, tt.scale)
			if !errors.Is(err, vg.ErrInvalidInput) {
				t.Errorf("BitmapTarget(%d, %d, %v) error = %v, want ErrInvalidInput", tt.w, tt.h, tt.scale, err)
			}
		})
	}
}

func TestBackground(t *testing.T) {
	dev, _ := NewDevice(WithBackground(vg.White))
	bm, _ := dev.BitmapTarget(4, 4, 1)
	if got := bm.RGBA().RGBAAt(2, 2); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("background pixel = %v, want white", got)
	}
}

func TestFillSolid(t *testing.T) {
	bm, rc := newTarget(t, 10, 10, 1)
	rc.Fill(vg.NewRect(2, 2, 8, 8), rc.SolidBrush(vg.Red))
	finish(t, rc)

	img := bm.RGBA()
	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{5, 5, color.RGBA{255, 0, 0, 255}},
		{2, 2, color.RGBA{255, 0, 0, 255}},
		{1, 1, color.RGBA{}},
		{8, 5, color.RGBA{}},
	}
	for _, tt := range tests {
		if got := img.RGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("pixel (%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestScaleIsBaseTransform(t *testing.T) {
	bm, rc := newTarget(t, 20, 20, 2)
	rc.Fill(vg.NewRect(0, 0, 5, 5), rc.SolidBrush(vg.Blue))
	if got := rc.CurrentTransform(); !got.IsIdentity() {
		t.Errorf("CurrentTransform() = %v, want identity", got)
	}
	finish(t, rc)

	img := bm.RGBA()
	if got := img.RGBAAt(9, 9).B; got != 255 {
		t.Errorf("pixel (9, 9) blue = %d, want 255", got)
	}
	if got := img.RGBAAt(10, 10).A; got != 0 {
		t.Errorf("pixel (10, 10) alpha = %d, want 0", got)
	}
}

func TestFillRules(t *testing.T) {
	// two nested squares wound the same way
	p := vg.NewPath()
	p.Append(vg.NewRect(0, 0, 10, 10), 0)
	p.Append(vg.NewRect(3, 3, 7, 7), 0)

	tests := []struct {
		name      string
		fill      func(rc *RenderContext)
		wantAlpha uint8
	}{
		{"nonzero", func(rc *RenderContext) { rc.Fill(p, rc.SolidBrush(vg.Black)) }, 255},
		{"even-odd", func(rc *RenderContext) { rc.FillEvenOdd(p, rc.SolidBrush(vg.Black)) }, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bm, rc := newTarget(t, 10, 10, 1)
			tt.fill(rc)
			finish(t, rc)
			if got := bm.RGBA().RGBAAt(5, 5).A; got != tt.wantAlpha {
				t.Errorf("center alpha = %d, want %d", got, tt.wantAlpha)
			}
			if got := bm.RGBA().RGBAAt(1, 1).A; got != 255 {
				t.Errorf("ring alpha = %d, want 255", got)
			}
		})
	}
}

func TestClipSaveRestore(t *testing.T) {
	bm, rc := newTarget(t, 10, 10, 1)
	if err := rc.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	rc.Clip(vg.NewRect(0, 0, 5, 10))
	rc.Fill(vg.NewRect(0, 0, 10, 5), rc.SolidBrush(vg.Green))
	if err := rc.Restore(); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	rc.Fill(vg.NewRect(0, 5, 10, 10), rc.SolidBrush(vg.Blue))
	finish(t, rc)

	img := bm.RGBA()
	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{2, 2, color.RGBA{0, 255, 0, 255}},
		{7, 2, color.RGBA{}},
		{2, 7, color.RGBA{0, 0, 255, 255}},
		{7, 7, color.RGBA{0, 0, 255, 255}},
	}
	for _, tt := range tests {
		if got := img.RGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("pixel (%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestNestedClipIntersects(t *testing.T) {
	bm, rc := newTarget(t, 10, 10, 1)
	rc.Clip(vg.NewRect(0, 0, 6, 10))
	rc.Clip(vg.NewRect(4, 0, 10, 10))
	rc.Clear(vg.Transparent)
	rc.Fill(vg.NewRect(0, 0, 10, 10), rc.SolidBrush(vg.Black))
	finish(t, rc)

	img := bm.RGBA()
	for x, want := range []uint8{0, 0, 0, 0, 255, 255, 0, 0, 0, 0} {
		if got := img.RGBAAt(x, 5).A; got != want {
			t.Errorf("alpha at x=%d = %d, want %d", x, got, want)
		}
	}
}

func TestClearIgnoresTransformAndClip(t *testing.T) {
	bm, rc := newTarget(t, 10, 10, 1)
	rc.Transform(vg.Translate(5, 5))
	rc.Clip(vg.NewRect(0, 0, 1, 1))
	rc.Clear(vg.White)
	rc.ClearRegion(vg.NewRect(0, 0, 2, 2), vg.Red)
	finish(t, rc)

	img := bm.RGBA()
	if got := img.RGBAAt(9, 9); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("pixel (9, 9) = %v, want white", got)
	}
	if got := img.RGBAAt(1, 1); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("pixel (1, 1) = %v, want red", got)
	}
}

func TestLinearGradient(t *testing.T) {
	bm, rc := newTarget(t, 20, 4, 1)
	brush, err := rc.GradientBrush(vg.NewLinearGradient(vg.Pt(0, 0), vg.Pt(20, 0),
		vg.GradientStops(vg.Black, vg.White)))
	if err != nil {
		t.Fatalf("GradientBrush() error = %v", err)
	}
	rc.Fill(vg.NewRect(0, 0, 20, 4), brush)
	finish(t, rc)

	img := bm.RGBA()
	left, mid, right := img.RGBAAt(0, 2).R, img.RGBAAt(10, 2).R, img.RGBAAt(19, 2).R
	if !(left < mid && mid < right) {
		t.Errorf("gradient red = %d, %d, %d, want increasing", left, mid, right)
	}
	if got := img.RGBAAt(10, 2).A; got != 255 {
		t.Errorf("gradient alpha = %d, want 255", got)
	}
}

func TestGradientBrushRejectsOneStop(t *testing.T) {
	_, rc := newTarget(t, 4, 4, 1)
	_, err := rc.GradientBrush(vg.NewLinearGradient(vg.Pt(0, 0), vg.Pt(1, 0),
		[]vg.GradientStop{{Offset: 0, Color: vg.Red}}))
	if !errors.Is(err, vg.ErrTooFewStops) {
		t.Errorf("GradientBrush() error = %v, want ErrTooFewStops", err)
	}
}

func TestStroke(t *testing.T) {
	tests := []struct {
		name  string
		width float64
		scale float64
		// pixels expected to be painted and left alone
		on, off [2]int
	}{
		{"wide", 4, 1, [2]int{5, 11}, [2]int{5, 6}},
		{"hairline ignores scale", 0, 4, [2]int{5, 40}, [2]int{5, 42}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bm, rc := newTarget(t, 64, 64, tt.scale)
			rc.Stroke(vg.NewLine(vg.Pt(0, 10.125), vg.Pt(16, 10.125)), rc.SolidBrush(vg.Black), tt.width)
			finish(t, rc)
			img := bm.RGBA()
			if got := img.RGBAAt(tt.on[0], tt.on[1]).A; got == 0 {
				t.Errorf("pixel %v alpha = 0, want painted", tt.on)
			}
			if got := img.RGBAAt(tt.off[0], tt.off[1]).A; got != 0 {
				t.Errorf("pixel %v alpha = %d, want 0", tt.off, got)
			}
		})
	}
}

func TestInvalidStrokeWidth(t *testing.T) {
	_, rc := newTarget(t, 4, 4, 1)
	rc.Stroke(vg.NewLine(vg.Pt(0, 0), vg.Pt(4, 4)), rc.SolidBrush(vg.Black), -1)
	if err := rc.Status(); !errors.Is(err, vg.ErrInvalidInput) {
		t.Errorf("Status() = %v, want ErrInvalidInput", err)
	}
	if err := rc.Status(); err != nil {
		t.Errorf("second Status() = %v, want nil", err)
	}
}

func TestFinishMisuse(t *testing.T) {
	_, rc := newTarget(t, 4, 4, 1)
	finish(t, rc)
	rc.Fill(vg.NewRect(0, 0, 4, 4), rc.SolidBrush(vg.Black))
	if err := rc.Status(); !vg.IsMisuse(err) || !errors.Is(err, vg.ErrFinished) {
		t.Errorf("Status() after Finish = %v, want misuse wrapping ErrFinished", err)
	}
	if err := rc.Save(); !errors.Is(err, vg.ErrFinished) {
		t.Errorf("Save() after Finish = %v, want ErrFinished", err)
	}
	if _, err := rc.CaptureImageArea(vg.NewRect(0, 0, 1, 1)); !errors.Is(err, vg.ErrFinished) {
		t.Errorf("CaptureImageArea() after Finish = %v, want ErrFinished", err)
	}
}

func TestUnbalancedRestore(t *testing.T) {
	_, rc := newTarget(t, 4, 4, 1)
	err := rc.Restore()
	if !errors.Is(err, vg.ErrUnbalancedRestore) {
		t.Errorf("Restore() = %v, want ErrUnbalancedRestore", err)
	}
}

func TestSingularTransform(t *testing.T) {
	_, rc := newTarget(t, 4, 4, 1)
	rc.Transform(vg.Scale(0, 1))
	if err := rc.Status(); !errors.Is(err, vg.ErrInvalidInput) {
		t.Errorf("Status() = %v, want ErrInvalidInput", err)
	}
	if got := rc.CurrentTransform(); !got.IsIdentity() {
		t.Errorf("CurrentTransform() = %v, want identity", got)
	}
}

func TestDrawImage(t *testing.T) {
	bm, rc := newTarget(t, 10, 10, 1)
	buf := []byte{
		255, 0, 0, 255, 0, 0, 255, 255,
		0, 255, 0, 255, 0, 0, 0, 255,
	}
	img, err := rc.MakeImage(2, 2, buf, vg.FormatRGBAPremul)
	if err != nil {
		t.Fatalf("MakeImage() error = %v", err)
	}
	if got := img.Size(); got != vg.Sz(2, 2) {
		t.Errorf("Size() = %v, want 2x2", got)
	}
	rc.DrawImage(img, vg.NewRect(0, 0, 10, 10), vg.NearestNeighbor)
	finish(t, rc)

	out := bm.RGBA()
	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{2, 2, color.RGBA{255, 0, 0, 255}},
		{7, 2, color.RGBA{0, 0, 255, 255}},
		{2, 7, color.RGBA{0, 255, 0, 255}},
		{7, 7, color.RGBA{0, 0, 0, 255}},
	}
	for _, tt := range tests {
		if got := out.RGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("pixel (%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestMakeImageBadBuffer(t *testing.T) {
	_, rc := newTarget(t, 4, 4, 1)
	if _, err := rc.MakeImage(2, 2, make([]byte, 3), vg.FormatRGB); !errors.Is(err, vg.ErrInvalidImage) {
		t.Errorf("MakeImage() error = %v, want ErrInvalidImage", err)
	}
}

func TestCaptureImageArea(t *testing.T) {
	_, rc := newTarget(t, 10, 10, 1)
	rc.Fill(vg.NewRect(0, 0, 5, 10), rc.SolidBrush(vg.Red))
	img, err := rc.CaptureImageArea(vg.NewRect(3, 0, 7, 4))
	if err != nil {
		t.Fatalf("CaptureImageArea() error = %v", err)
	}
	if got := img.Size(); got != vg.Sz(4, 4) {
		t.Fatalf("Size() = %v, want 4x4", got)
	}
	if got := img.RGBA().RGBAAt(0, 0); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("captured (0, 0) = %v, want red", got)
	}
	if got := img.RGBA().RGBAAt(3, 0).A; got != 0 {
		t.Errorf("captured (3, 0) alpha = %d, want 0", got)
	}

	if _, err := rc.CaptureImageArea(vg.NewRect(20, 20, 30, 30)); !errors.Is(err, vg.ErrInvalidInput) {
		t.Errorf("CaptureImageArea(outside) error = %v, want ErrInvalidInput", err)
	}
	finish(t, rc)
}

func TestBlurredRect(t *testing.T) {
	bm, rc := newTarget(t, 40, 40, 1)
	rc.BlurredRect(vg.NewRect(10, 10, 30, 30), 3, rc.SolidBrush(vg.Black))
	finish(t, rc)

	img := bm.RGBA()
	center, edge, outside := img.RGBAAt(20, 20).A, img.RGBAAt(10, 20).A, img.RGBAAt(5, 20).A
	if center < 250 {
		t.Errorf("center alpha = %d, want nearly opaque", center)
	}
	if !(outside > 0 && outside < edge && edge < center) {
		t.Errorf("alpha falloff = %d, %d, %d, want decreasing and nonzero", center, edge, outside)
	}
}

func TestBlurredRectWideRadius(t *testing.T) {
	for _, radius := range []float64{50, 200, 1e6} {
		bm, rc := newTarget(t, 800, 600, 1)
		start := time.Now()
		rc.BlurredRect(vg.NewRect(390, 290, 410, 310), radius, rc.SolidBrush(vg.Black))
		finish(t, rc)
		if d := time.Since(start); d > 5*time.Second {
			t.Errorf("BlurredRect(radius %v) took %v", radius, d)
		}
		if got := bm.RGBA().RGBAAt(0, 0).A; radius > 1000 && got > 1 {
			t.Errorf("radius %v corner alpha = %d, want about 0", radius, got)
		}
	}
}

func TestBlurredRectOffSurface(t *testing.T) {
	bm, rc := newTarget(t, 20, 20, 1)
	rc.BlurredRect(vg.NewRect(500, 500, 520, 520), 2, rc.SolidBrush(vg.Black))
	finish(t, rc)
	for _, v := range bm.RGBA().Pix {
		if v != 0 {
			t.Fatal("blur far outside the surface painted pixels")
		}
	}
}

func TestNonFiniteShape(t *testing.T) {
	nan := math.NaN()
	p := vg.NewPath()
	p.MoveTo(vg.Pt(nan, 1))
	p.LineTo(vg.Pt(10, math.Inf(1)))
	draws := []struct {
		name string
		draw func(rc *RenderContext)
	}{
		{"Fill", func(rc *RenderContext) { rc.Fill(p, rc.SolidBrush(vg.Black)) }},
		{"FillEvenOdd", func(rc *RenderContext) { rc.FillEvenOdd(p, rc.SolidBrush(vg.Black)) }},
		{"Stroke", func(rc *RenderContext) { rc.Stroke(p, rc.SolidBrush(vg.Black), 1) }},
		{"Clip", func(rc *RenderContext) { rc.Clip(p) }},
		{"BlurredRect", func(rc *RenderContext) {
			rc.BlurredRect(vg.NewRect(0, 0, nan, 4), 1, rc.SolidBrush(vg.Black))
		}},
	}
	for _, tt := range draws {
		t.Run(tt.name, func(t *testing.T) {
			bm, rc := newTarget(t, 8, 8, 1)
			tt.draw(rc)
			if err := rc.Status(); !errors.Is(err, vg.ErrInvalidInput) {
				t.Errorf("Status() = %v, want ErrInvalidInput", err)
			}
			finish(t, rc)
			for _, v := range bm.RGBA().Pix {
				if v != 0 {
					t.Fatal("rejected shape painted pixels")
				}
			}
		})
	}
}

func TestTransformCompositionPixels(t *testing.T) {
	t1 := vg.Translate(20, 10).Multiply(vg.Rotate(math.Pi / 7))
	t2 := vg.Scale(1.5, 0.75).Multiply(vg.Shear(0.2, 0))
	shape := vg.MustParsePath("M0 0 L30 4 Q40 20 24 34 C12 40 2 30 0 18 Z")

	composed, rc := newTarget(t, 64, 64, 1)
	rc.Transform(t1)
	rc.Transform(t2)
	rc.Fill(shape, rc.SolidBrush(vg.Red))
	rc.Stroke(shape, rc.SolidBrush(vg.Blue), 0)
	finish(t, rc)

	pre, rc := newTarget(t, 64, 64, 1)
	moved := shape.Transform(t1.Multiply(t2))
	rc.Fill(moved, rc.SolidBrush(vg.Red))
	rc.Stroke(moved, rc.SolidBrush(vg.Blue), 0)
	finish(t, rc)

	a, b := composed.RGBA(), pre.RGBA()
	diff := 0
	for i := range a.Pix {
		d := int(a.Pix[i]) - int(b.Pix[i])
		if d > 2 || d < -2 {
			diff++
		}
	}
	if diff > 0 {
		t.Errorf("%d channel values differ between T1 then T2 and pre-transformed geometry", diff)
	}
	painted := 0
	for i := 3; i < len(a.Pix); i += 4 {
		if a.Pix[i] != 0 {
			painted++
		}
	}
	if painted < 100 {
		t.Errorf("%d pixels painted, want the shape", painted)
	}
}

func TestDrawText(t *testing.T) {
	bm, rc := newTarget(t, 120, 40, 1)
	layout, err := rc.Text().NewTextLayout("Hello", vg.SansSerif, 24, 0, vg.WithTextColor(vg.Black))
	if err != nil {
		t.Fatalf("NewTextLayout() error = %v", err)
	}
	rc.DrawText(layout, vg.Pt(4, 4))
	finish(t, rc)

	var ink int
	img := bm.RGBA()
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			ink++
		}
	}
	if ink == 0 {
		t.Error("DrawText painted no pixels")
	}
}

func TestWriteToPNG(t *testing.T) {
	bm, rc := newTarget(t, 8, 6, 1)
	rc.Clear(vg.Red)
	finish(t, rc)

	var buf bytes.Buffer
	n, err := bm.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	if n != int64(buf.Len()) {
		t.Errorf("WriteTo() = %d, wrote %d bytes", n, buf.Len())
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 6 {
		t.Errorf("decoded size = %dx%d, want 8x6", b.Dx(), b.Dy())
	}
	if r, _, _, a := img.At(3, 3).RGBA(); r != 0xffff || a != 0xffff {
		t.Errorf("decoded pixel = %v, want red", img.At(3, 3))
	}
}
