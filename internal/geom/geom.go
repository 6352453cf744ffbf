// Package geom prepares vg geometry for rasterizing backends.
//
// Backends work in device space. Fills are transformed path elements;
// strokes are expanded to fillable outlines with honnef.co/go/curve and
// then transformed. Tolerances passed in are device-space distances and
// are converted into user space with the transform's scale.
//
// # Hairlines
//
// A zero stroke width means a line one device pixel wide regardless of
// the transform. Hairlines are expanded after transforming the path so
// the pen is not scaled.
package geom

import (
	"iter"

	"github.com/gogpu/vg"
	"honnef.co/go/curve"
)

// Tolerance is the default device-space flattening tolerance.
const Tolerance = 0.1

// Transformed maps every element of seq through m.
func Transformed(seq iter.Seq[vg.PathElement], m vg.Affine) iter.Seq[vg.PathElement] {
	if m.IsIdentity() {
		return seq
	}
	return func(yield func(vg.PathElement) bool) {
		for e := range seq {
			if !yield(vg.TransformElement(e, m)) {
				return
			}
		}
	}
}

// UserTolerance converts a device-space tolerance into user space for m.
func UserTolerance(m vg.Affine, tolerance float64) float64 {
	if s := m.MaxScaleFactor(); s > 0 {
		return tolerance / s
	}
	return tolerance
}

// Fill returns the device-space outline of shape.
func Fill(shape vg.Shape, m vg.Affine, tolerance float64) iter.Seq[vg.PathElement] {
	return Transformed(shape.PathElements(UserTolerance(m, tolerance)), m)
}

// Stroke returns the device-space outline of shape stroked with width
// and style. A hairline ignores width and strokes one device pixel.
func Stroke(shape vg.Shape, m vg.Affine, width float64, hairline bool, style vg.StrokeStyle, tolerance float64) iter.Seq[vg.PathElement] {
	if hairline {
		dev := Fill(shape, m, tolerance)
		return StrokeOutline(dev, 1, style, tolerance)
	}
	userTol := UserTolerance(m, tolerance)
	return Transformed(StrokeOutline(shape.PathElements(userTol), width, style, userTol), m)
}

// StrokeOutline expands seq into the outline of its stroke. The result
// is filled with the nonzero rule.
func StrokeOutline(seq iter.Seq[vg.PathElement], width float64, style vg.StrokeStyle, tolerance float64) iter.Seq[vg.PathElement] {
	src := ToCurve(seq)
	if pattern := style.DashPattern(); pattern != nil {
		src = curve.Dash(src, style.DashOffset, pattern)
	}
	cs := curve.Stroke{
		Width:      width,
		Join:       curveJoin(style.LineJoin),
		MiterLimit: style.MiterLimit,
		StartCap:   curveCap(style.LineCap),
		EndCap:     curveCap(style.LineCap),
	}
	stroked := curve.StrokePath(src, cs, curve.StrokeOpts{}, tolerance)
	return FromCurve(stroked)
}

// Polylines flattens seq within tolerance.
func Polylines(seq iter.Seq[vg.PathElement], tolerance float64) []vg.Polyline {
	return vg.Flatten(seq, tolerance)
}

// Bounds returns the bounding box of seq.
func Bounds(seq iter.Seq[vg.PathElement]) vg.Rect {
	return vg.ElementsBoundingBox(seq)
}

func curveCap(c vg.LineCap) curve.Cap {
	switch c {
	case vg.CapRound:
		return curve.RoundCap
	case vg.CapSquare:
		return curve.SquareCap
	}
	return curve.ButtCap
}

func curveJoin(j vg.LineJoin) curve.Join {
	switch j {
	case vg.JoinRound:
		return curve.RoundJoin
	case vg.JoinBevel:
		return curve.BevelJoin
	}
	return curve.MiterJoin
}
