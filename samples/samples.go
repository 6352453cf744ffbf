// Package samples holds numbered test pictures. Each picture is drawn
// through the generic vg.RenderContext, so every backend renders the same
// scenes.
package samples

import (
	"math"

	"github.com/gogpu/vg"
)

// Picture describes one test picture.
type Picture struct {
	Number int
	Name   string
	Size   vg.Size
}

var pictures = []Picture{
	{0, "shapes", vg.Sz(400, 300)},
	{1, "gradients", vg.Sz(400, 300)},
	{2, "clip-transform", vg.Sz(400, 300)},
	{3, "text", vg.Sz(400, 300)},
	{4, "images", vg.Sz(400, 300)},
	{5, "blur", vg.Sz(400, 300)},
	{6, "paths", vg.Sz(400, 300)},
	{7, "clear-region", vg.Sz(400, 300)},
}

// Pictures returns every picture in number order.
func Pictures() []Picture {
	out := make([]Picture, len(pictures))
	copy(out, pictures)
	return out
}

// Lookup returns the picture with the given number.
func Lookup(number int) (Picture, bool) {
	if number < 0 || number >= len(pictures) {
		return Picture{}, false
	}
	return pictures[number], true
}

// Draw draws picture number into rc and returns the context status. It
// does not call Finish.
func Draw[B any, I vg.Image, T vg.Text[L], L vg.TextLayout](rc vg.RenderContext[B, I, T, L], number int) error {
	switch number {
	case 0:
		return drawShapes(rc)
	case 1:
		return drawGradients(rc)
	case 2:
		return drawClipTransform(rc)
	case 3:
		return drawText(rc)
	case 4:
		return drawImages(rc)
	case 5:
		return drawBlur(rc)
	case 6:
		return drawPaths(rc)
	case 7:
		return drawClearRegion(rc)
	}
	return vg.InvalidInputf("no picture %d", number)
}

var (
	navy   = vg.MustHex("#1f3a5f")
	teal   = vg.MustHex("#2a9d8f")
	sand   = vg.MustHex("#e9c46a")
	orange = vg.MustHex("#f4a261")
	coral  = vg.MustHex("#e76f51")
)

func drawShapes[B any, I vg.Image, T vg.Text[L], L vg.TextLayout](rc vg.RenderContext[B, I, T, L]) error {
	rc.Clear(vg.White)

	rc.Fill(vg.NewRect(20, 20, 120, 100), rc.SolidBrush(navy))
	rc.Fill(vg.NewCircle(vg.Pt(200, 60), 40), rc.SolidBrush(teal))
	rc.Fill(vg.NewRoundedRect(vg.NewRect(270, 20, 380, 100), 16), rc.SolidBrush(sand))
	rc.Fill(vg.NewEllipse(vg.Pt(200, 60), 60, 20), rc.SolidBrush(coral.WithAlpha(0.5)))

	thin := rc.SolidBrush(vg.Black)
	rc.Stroke(vg.NewLine(vg.Pt(20, 130), vg.Pt(380, 130)), thin, 0)
	rc.Stroke(vg.NewRect(20, 150, 120, 250), rc.SolidBrush(navy), 6)

	caps := []vg.LineCap{vg.CapButt, vg.CapRound, vg.CapSquare}
	for i, c := range caps {
		y := 160 + float64(i)*20
		style := vg.DefaultStrokeStyle().WithCap(c)
		rc.StrokeStyled(vg.NewLine(vg.Pt(150, y), vg.Pt(250, y)), rc.SolidBrush(teal), 10, &style)
	}

	joins := []vg.LineJoin{vg.JoinMiter, vg.JoinRound, vg.JoinBevel}
	for i, j := range joins {
		x := 270 + float64(i)*40
		p := vg.NewPath()
		p.MoveTo(vg.Pt(x, 200))
		p.LineTo(vg.Pt(x+15, 160))
		p.LineTo(vg.Pt(x+30, 200))
		style := vg.DefaultStrokeStyle().WithJoin(j)
		rc.StrokeStyled(p, rc.SolidBrush(orange), 8, &style)
	}

	dashed := vg.DefaultStrokeStyle().WithDash([]float64{12, 6}, 3)
	rc.StrokeStyled(vg.NewCircle(vg.Pt(320, 250), 35), rc.SolidBrush(coral), 3, &dashed)
	return rc.Status()
}

func drawGradients[B any, I vg.Image, T vg.Text[L], L vg.TextLayout](rc vg.RenderContext[B, I, T, L]) error {
	rc.Clear(vg.White)

	linear, err := rc.GradientBrush(vg.NewLinearGradient(vg.Pt(20, 0), vg.Pt(180, 0),
		vg.GradientStops(navy, teal, sand)))
	if err != nil {
		return err
	}
	rc.Fill(vg.NewRect(20, 20, 180, 130), linear)

	radial, err := rc.GradientBrush(vg.NewRadialGradient(vg.Pt(290, 75), 60,
		vg.GradientStops(sand, orange, coral)))
	if err != nil {
		return err
	}
	rc.Fill(vg.NewCircle(vg.Pt(290, 75), 60), radial)

	// Unit-point gradients follow the bounds of whatever they paint.
	unit, err := rc.GradientBrush(vg.LinearGradient{
		Start: vg.TopLeft,
		End:   vg.BottomRight,
		Stops: vg.GradientStops(coral, navy),
	})
	if err != nil {
		return err
	}
	rc.Fill(vg.NewRoundedRect(vg.NewRect(20, 160, 180, 280), 12), unit)
	rc.Stroke(vg.NewLine(vg.Pt(220, 170), vg.Pt(380, 270)), unit, 12)

	hard, err := rc.GradientBrush(vg.NewLinearGradient(vg.Pt(220, 0), vg.Pt(380, 0), []vg.GradientStop{
		{Offset: 0, Color: teal},
		{Offset: 0.5, Color: teal},
		{Offset: 0.5, Color: sand},
		{Offset: 1, Color: sand},
	}))
	if err != nil {
		return err
	}
	rc.Fill(vg.NewRect(220, 160, 380, 200), hard)
	return rc.Status()
}

func drawClipTransform[B any, I vg.Image, T vg.Text[L], L vg.TextLayout](rc vg.RenderContext[B, I, T, L]) error {
	rc.Clear(vg.White)

	if err := rc.Save(); err != nil {
		return err
	}
	rc.Clip(vg.NewCircle(vg.Pt(100, 150), 80))
	for i := range 8 {
		c := navy
		if i%2 == 1 {
			c = sand
		}
		y := 70 + float64(i)*20
		rc.Fill(vg.NewRect(20, y, 180, y+20), rc.SolidBrush(c))
	}
	if err := rc.Restore(); err != nil {
		return err
	}

	if err := rc.Save(); err != nil {
		return err
	}
	rc.Transform(vg.Translate(290, 150))
	for i := range 12 {
		if err := rc.Save(); err != nil {
			return err
		}
		rc.Transform(vg.Rotate(float64(i) * math.Pi / 6))
		rc.Fill(vg.NewRect(20, -5, 90, 5), rc.SolidBrush(teal.WithAlpha(0.3+float64(i)/20)))
		if err := rc.Restore(); err != nil {
			return err
		}
	}
	rc.Transform(vg.Scale(1, 0.5))
	rc.Stroke(vg.NewCircle(vg.Point{}, 40), rc.SolidBrush(coral), 4)
	if err := rc.Restore(); err != nil {
		return err
	}

	rc.Stroke(vg.NewRect(2, 2, 398, 298), rc.SolidBrush(vg.Black), 0)
	return rc.Status()
}

const lorem = "The quick brown fox jumps over the lazy dog. Sphinx of black quartz, judge my vow."

func drawText[B any, I vg.Image, T vg.Text[L], L vg.TextLayout](rc vg.RenderContext[B, I, T, L]) error {
	rc.Clear(vg.White)
	txt := rc.Text()

	title, err := txt.NewTextLayout("vg text", vg.SansSerif, 28, math.Inf(1),
		vg.WithWeight(vg.Bold), vg.WithTextColor(navy))
	if err != nil {
		return err
	}
	rc.DrawText(title, vg.Pt(20, 16))

	aligns := []vg.TextAlignment{vg.AlignStart, vg.AlignCenter, vg.AlignEnd}
	y := 60.0
	for _, a := range aligns {
		l, err := txt.NewTextLayout(lorem, vg.SansSerif, 12, 360, vg.WithAlignment(a))
		if err != nil {
			return err
		}
		rc.Stroke(vg.RectFromOriginSize(vg.Pt(20, y), vg.Sz(360, l.Size().Height)), rc.SolidBrush(vg.Grey(0.8)), 0)
		rc.DrawText(l, vg.Pt(20, y))
		y += l.Size().Height + 12
	}

	colored, err := txt.NewTextLayout("red green blue", vg.Serif, 18, math.Inf(1),
		vg.WithStyle(vg.Italic),
		vg.WithRangeColor(0, 3, vg.Red),
		vg.WithRangeColor(4, 9, vg.Green),
		vg.WithRangeColor(10, 14, vg.Blue))
	if err != nil {
		return err
	}
	rc.DrawText(colored, vg.Pt(20, y))
	return rc.Status()
}

// checker returns a size by size straight-alpha RGBA checkerboard.
func checker(size int, a, b vg.Color) []byte {
	buf := make([]byte, 0, size*size*4)
	for y := range size {
		for x := range size {
			c := a
			if (x+y)%2 == 1 {
				c = b
			}
			r, g, bl, al := c.AsRGBA8()
			buf = append(buf, r, g, bl, al)
		}
	}
	return buf
}

func drawImages[B any, I vg.Image, T vg.Text[L], L vg.TextLayout](rc vg.RenderContext[B, I, T, L]) error {
	rc.Clear(vg.White)

	img, err := rc.MakeImage(8, 8, checker(8, navy, sand.WithAlpha(0.5)), vg.FormatRGBASeparate)
	if err != nil {
		return err
	}
	rc.DrawImage(img, vg.NewRect(20, 20, 140, 140), vg.NearestNeighbor)
	rc.DrawImage(img, vg.NewRect(160, 20, 280, 140), vg.Bilinear)
	rc.DrawImageArea(img, vg.NewRect(2, 2, 6, 6), vg.NewRect(300, 20, 380, 100), vg.NearestNeighbor)

	grey := make([]byte, 16*4)
	for i := range grey {
		grey[i] = byte(i * 4)
	}
	ramp, err := rc.MakeImage(16, 4, grey, vg.FormatGrayscale)
	if err != nil {
		return err
	}
	rc.DrawImage(ramp, vg.NewRect(20, 170, 380, 200), vg.NearestNeighbor)

	if err := rc.Save(); err != nil {
		return err
	}
	rc.Transform(vg.Translate(200, 250).Multiply(vg.Rotate(math.Pi / 8)))
	rc.DrawImage(img, vg.NewRect(-30, -30, 30, 30), vg.Bilinear)
	if err := rc.Restore(); err != nil {
		return err
	}
	return rc.Status()
}

func drawBlur[B any, I vg.Image, T vg.Text[L], L vg.TextLayout](rc vg.RenderContext[B, I, T, L]) error {
	rc.Clear(vg.White)
	for i, r := range []float64{0, 2, 5, 10} {
		x := 20 + float64(i)*95
		rc.BlurredRect(vg.NewRect(x+10, 40, x+70, 120), r, rc.SolidBrush(navy))
	}

	// Drop shadow under a card.
	card := vg.NewRect(60, 170, 340, 260)
	rc.BlurredRect(vg.NewRect(card.X0+4, card.Y0+6, card.X1+4, card.Y1+6), 8, rc.SolidBrush(vg.Black.WithAlpha(0.4)))
	rc.Fill(card, rc.SolidBrush(sand))
	return rc.Status()
}

const star = "M200 20 L229 110 L324 110 L247 166 L276 256 L200 200 L124 256 L153 166 L76 110 L171 110 Z"

func drawPaths[B any, I vg.Image, T vg.Text[L], L vg.TextLayout](rc vg.RenderContext[B, I, T, L]) error {
	rc.Clear(vg.White)

	p, err := vg.ParsePath(star)
	if err != nil {
		return err
	}
	rc.Fill(p, rc.SolidBrush(sand))

	pentagram, err := vg.ParsePath("M60 280 L100 160 L140 280 L40 205 L160 205 Z")
	if err != nil {
		return err
	}
	rc.FillEvenOdd(pentagram, rc.SolidBrush(teal))
	rc.Fill(pentagram.Transform(vg.Translate(200, 0)), rc.SolidBrush(teal))

	curves, err := vg.ParsePath("M20 40 Q60 0 100 40 T180 40 M220 40 C240 0 300 80 320 40 S370 0 380 40")
	if err != nil {
		return err
	}
	rc.Stroke(curves, rc.SolidBrush(coral), 3)

	arc := vg.Arc{Center: vg.Pt(200, 150), Radii: vg.Vec2{X: 40, Y: 40}, Start: 0, Sweep: 1.5 * math.Pi}
	rc.Stroke(arc, rc.SolidBrush(navy), 4)
	return rc.Status()
}

func drawClearRegion[B any, I vg.Image, T vg.Text[L], L vg.TextLayout](rc vg.RenderContext[B, I, T, L]) error {
	rc.Clear(navy)
	rc.Fill(vg.NewCircle(vg.Pt(200, 150), 120), rc.SolidBrush(sand))

	if err := rc.Save(); err != nil {
		return err
	}
	// Cleared regions ignore the transform and clip in effect.
	rc.Transform(vg.Translate(50, 50))
	rc.Clip(vg.NewRect(0, 0, 10, 10))
	rc.ClearRegion(vg.NewRect(40, 40, 160, 120), vg.White)
	rc.ClearRegion(vg.NewRect(240, 180, 360, 260), coral)
	rc.Fill(vg.NewRect(0, 0, 100, 100), rc.SolidBrush(teal))
	if err := rc.Restore(); err != nil {
		return err
	}
	return rc.Status()
}
