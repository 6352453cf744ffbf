package vg

import (
	"math"
	"slices"
	"sort"
)

// GradientStop is a color at a position along a gradient.
type GradientStop struct {
	Offset float64 // position in [0, 1]
	Color  Color
}

// GradientStops spreads colors evenly over [0, 1].
func GradientStops(colors ...Color) []GradientStop {
	stops := make([]GradientStop, len(colors))
	for i, c := range colors {
		off := 0.0
		if len(colors) > 1 {
			off = float64(i) / float64(len(colors)-1)
		}
		stops[i] = GradientStop{Offset: off, Color: c}
	}
	return stops
}

// NormalizeStops returns a copy of stops with offsets clamped to [0, 1]
// and stably sorted by offset. Stops that share an offset keep their
// order, which produces a hard color edge. It fails with ErrTooFewStops
// for fewer than two stops and ErrInvalidInput for a NaN offset.
func NormalizeStops(stops []GradientStop) ([]GradientStop, error) {
	if len(stops) < 2 {
		return nil, ErrTooFewStops
	}
	out := make([]GradientStop, len(stops))
	for i, s := range stops {
		if math.IsNaN(s.Offset) {
			return nil, InvalidInputf("gradient stop %d has NaN offset", i)
		}
		s.Offset = clamp01(s.Offset)
		out[i] = s
	}
	slices.SortStableFunc(out, func(a, b GradientStop) int {
		switch {
		case a.Offset < b.Offset:
			return -1
		case a.Offset > b.Offset:
			return 1
		}
		return 0
	})
	return out, nil
}

// SampleStops returns the color at t along normalized stops, padding with
// the end colors outside [0, 1]. Interpolation is in sRGB with straight
// alpha.
func SampleStops(stops []GradientStop, t float64) Color {
	switch len(stops) {
	case 0:
		return Transparent
	case 1:
		return stops[0].Color
	}
	if math.IsNaN(t) || t <= stops[0].Offset {
		return stops[0].Color
	}
	last := stops[len(stops)-1]
	if t >= last.Offset {
		return last.Color
	}
	// first stop strictly beyond t
	i := sort.Search(len(stops), func(i int) bool { return stops[i].Offset > t })
	a, b := stops[i-1], stops[i]
	if b.Offset == a.Offset {
		return b.Color
	}
	return a.Color.Lerp(b.Color, (t-a.Offset)/(b.Offset-a.Offset))
}

// Gradient is a gradient description accepted by GradientBrush.
// It is implemented by the fixed and unit-point gradient types of this
// package only.
type Gradient interface {
	// ColorStops returns the stops as given by the caller.
	ColorStops() []GradientStop
	// Resolve returns the gradient in user space for a shape with the
	// given bounding box.
	Resolve(bbox Rect) FixedGradient
	// Validate reports malformed stops or geometry.
	Validate() error

	isGradient()
}

// FixedGradient is a gradient whose geometry is in user space.
type FixedGradient interface {
	Gradient
	// ColorAt returns the pad-extended color at p. Stops must have been
	// normalized, as GradientBrush does.
	ColorAt(p Point) Color
	// WithStops returns a copy using the given stops.
	WithStops(stops []GradientStop) FixedGradient
}

// FixedLinearGradient runs from Start (offset 0) to End (offset 1).
type FixedLinearGradient struct {
	Start, End Point
	Stops      []GradientStop
}

// NewLinearGradient creates a linear gradient in user space.
func NewLinearGradient(start, end Point, stops []GradientStop) FixedLinearGradient {
	return FixedLinearGradient{Start: start, End: end, Stops: stops}
}

func (g FixedLinearGradient) isGradient() {}

// ColorStops implements Gradient.
func (g FixedLinearGradient) ColorStops() []GradientStop { return g.Stops }

// Resolve implements Gradient.
func (g FixedLinearGradient) Resolve(Rect) FixedGradient { return g }

// WithStops implements FixedGradient.
func (g FixedLinearGradient) WithStops(stops []GradientStop) FixedGradient {
	g.Stops = stops
	return g
}

// Validate implements Gradient.
func (g FixedLinearGradient) Validate() error {
	if _, err := NormalizeStops(g.Stops); err != nil {
		return err
	}
	if !g.Start.IsFinite() || !g.End.IsFinite() {
		return InvalidInputf("linear gradient endpoints not finite")
	}
	return nil
}

// ColorAt implements FixedGradient by projecting p onto the gradient line.
func (g FixedLinearGradient) ColorAt(p Point) Color {
	d := g.End.Sub(g.Start)
	l2 := d.Hypot2()
	if l2 == 0 {
		return SampleStops(g.Stops, 0)
	}
	return SampleStops(g.Stops, p.Sub(g.Start).Dot(d)/l2)
}

// FixedRadialGradient is a radial gradient in user space. Offset 1 lies on
// the circle of Radius around Center; offset 0 is the focal point
// Center+OriginOffset.
type FixedRadialGradient struct {
	Center       Point
	OriginOffset Vec2
	Radius       float64
	Stops        []GradientStop
}

// NewRadialGradient creates a radial gradient in user space with its
// focal point at the center.
func NewRadialGradient(center Point, radius float64, stops []GradientStop) FixedRadialGradient {
	return FixedRadialGradient{Center: center, Radius: radius, Stops: stops}
}

func (g FixedRadialGradient) isGradient() {}

// ColorStops implements Gradient.
func (g FixedRadialGradient) ColorStops() []GradientStop { return g.Stops }

// Resolve implements Gradient.
func (g FixedRadialGradient) Resolve(Rect) FixedGradient { return g }

// WithStops implements FixedGradient.
func (g FixedRadialGradient) WithStops(stops []GradientStop) FixedGradient {
	g.Stops = stops
	return g
}

// Focus returns the point at offset 0.
func (g FixedRadialGradient) Focus() Point {
	return g.Center.Add(g.OriginOffset)
}

// Validate implements Gradient.
func (g FixedRadialGradient) Validate() error {
	if _, err := NormalizeStops(g.Stops); err != nil {
		return err
	}
	if !g.Center.IsFinite() || !isFinite(g.OriginOffset.X) || !isFinite(g.OriginOffset.Y) {
		return InvalidInputf("radial gradient center not finite")
	}
	if !isFinite(g.Radius) || g.Radius < 0 {
		return InvalidInputf("radial gradient radius %v", g.Radius)
	}
	return nil
}

// ColorAt implements FixedGradient. It solves the two-point conical
// gradient from a zero-radius circle at the focus to the outer circle.
func (g FixedRadialGradient) ColorAt(p Point) Color {
	if g.Radius <= 0 {
		return SampleStops(g.Stops, 1)
	}
	f := g.Focus()
	d := p.Sub(f)
	if g.OriginOffset == (Vec2{}) {
		return SampleStops(g.Stops, d.Hypot()/g.Radius)
	}
	// |d - t*cd| = t*r
	cd := g.Center.Sub(f)
	a := cd.Hypot2() - g.Radius*g.Radius
	b := d.Dot(cd)
	c := d.Hypot2()
	var t float64
	if math.Abs(a) < 1e-12 {
		if b == 0 {
			return SampleStops(g.Stops, 1)
		}
		t = c / (2 * b)
	} else {
		disc := b*b - a*c
		if disc < 0 {
			return Transparent
		}
		sq := math.Sqrt(disc)
		t = math.Max((b+sq)/a, (b-sq)/a)
	}
	if t < 0 {
		return Transparent
	}
	return SampleStops(g.Stops, t)
}

// UnitPoint is a point relative to a rectangle: (0, 0) is the top-left
// corner and (1, 1) the bottom-right.
type UnitPoint struct {
	U, V float64
}

// Common unit points.
var (
	TopLeft     = UnitPoint{0, 0}
	Top         = UnitPoint{0.5, 0}
	TopRight    = UnitPoint{1, 0}
	Left        = UnitPoint{0, 0.5}
	CenterPoint = UnitPoint{0.5, 0.5}
	Right       = UnitPoint{1, 0.5}
	BottomLeft  = UnitPoint{0, 1}
	Bottom      = UnitPoint{0.5, 1}
	BottomRight = UnitPoint{1, 1}
)

// Resolve maps the unit point into r.
func (u UnitPoint) Resolve(r Rect) Point {
	return Point{X: r.X0 + u.U*r.Width(), Y: r.Y0 + u.V*r.Height()}
}

// LinearGradient is a linear gradient positioned relative to the
// bounding box of the shape it paints.
type LinearGradient struct {
	Start, End UnitPoint
	Stops      []GradientStop
}

func (g LinearGradient) isGradient() {}

// ColorStops implements Gradient.
func (g LinearGradient) ColorStops() []GradientStop { return g.Stops }

// Validate implements Gradient.
func (g LinearGradient) Validate() error {
	_, err := NormalizeStops(g.Stops)
	return err
}

// Resolve implements Gradient.
func (g LinearGradient) Resolve(bbox Rect) FixedGradient {
	return FixedLinearGradient{Start: g.Start.Resolve(bbox), End: g.End.Resolve(bbox), Stops: g.Stops}
}

// RadialGradient is a radial gradient positioned relative to the
// bounding box of the shape it paints. Radius is a fraction of the
// shorter side of the box.
type RadialGradient struct {
	Center, Origin UnitPoint
	Radius         float64
	Stops          []GradientStop
}

func (g RadialGradient) isGradient() {}

// ColorStops implements Gradient.
func (g RadialGradient) ColorStops() []GradientStop { return g.Stops }

// Validate implements Gradient.
func (g RadialGradient) Validate() error {
	if _, err := NormalizeStops(g.Stops); err != nil {
		return err
	}
	if !isFinite(g.Radius) || g.Radius < 0 {
		return InvalidInputf("radial gradient radius %v", g.Radius)
	}
	return nil
}

// Resolve implements Gradient.
func (g RadialGradient) Resolve(bbox Rect) FixedGradient {
	c := g.Center.Resolve(bbox)
	o := g.Origin.Resolve(bbox)
	short := math.Min(math.Abs(bbox.Width()), math.Abs(bbox.Height()))
	return FixedRadialGradient{Center: c, OriginOffset: o.Sub(c), Radius: g.Radius * short, Stops: g.Stops}
}

// NormalizeGradient validates g and returns it with normalized stops.
// Backends call it from GradientBrush.
func NormalizeGradient(g Gradient) (Gradient, error) {
	if g == nil {
		return nil, InvalidInputf("nil gradient")
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	stops, err := NormalizeStops(g.ColorStops())
	if err != nil {
		return nil, err
	}
	switch g := g.(type) {
	case FixedLinearGradient:
		g.Stops = stops
		return g, nil
	case FixedRadialGradient:
		g.Stops = stops
		return g, nil
	case LinearGradient:
		g.Stops = stops
		return g, nil
	case RadialGradient:
		g.Stops = stops
		return g, nil
	}
	return nil, InvalidInputf("unknown gradient type %T", g)
}

// MidpointColor returns the color halfway along a gradient, used by
// backends that must flatten a gradient to a single paint.
func MidpointColor(g Gradient) Color {
	return SampleStops(g.ColorStops(), 0.5)
}
