package geom

import (
	"iter"

	"github.com/gogpu/vg"
	"honnef.co/go/curve"
)

func toPt(p vg.Point) curve.Point { return curve.Point{X: p.X, Y: p.Y} }

func fromPt(p curve.Point) vg.Point { return vg.Point{X: p.X, Y: p.Y} }

// ToCurve converts vg path elements to curve path elements.
func ToCurve(seq iter.Seq[vg.PathElement]) iter.Seq[curve.PathElement] {
	return func(yield func(curve.PathElement) bool) {
		for e := range seq {
			var ce curve.PathElement
			switch e := e.(type) {
			case vg.MoveTo:
				ce = curve.PathElement{Kind: curve.MoveToKind, P0: toPt(e.Point)}
			case vg.LineTo:
				ce = curve.PathElement{Kind: curve.LineToKind, P0: toPt(e.Point)}
			case vg.QuadTo:
				ce = curve.PathElement{Kind: curve.QuadToKind, P0: toPt(e.Control), P1: toPt(e.Point)}
			case vg.CubicTo:
				ce = curve.PathElement{Kind: curve.CubicToKind, P0: toPt(e.Control1), P1: toPt(e.Control2), P2: toPt(e.Point)}
			case vg.Close:
				ce = curve.PathElement{Kind: curve.ClosePathKind}
			default:
				continue
			}
			if !yield(ce) {
				return
			}
		}
	}
}

// FromCurve converts curve path elements to vg path elements.
func FromCurve(seq iter.Seq[curve.PathElement]) iter.Seq[vg.PathElement] {
	return func(yield func(vg.PathElement) bool) {
		for ce := range seq {
			var e vg.PathElement
			switch ce.Kind {
			case curve.MoveToKind:
				e = vg.MoveTo{Point: fromPt(ce.P0)}
			case curve.LineToKind:
				e = vg.LineTo{Point: fromPt(ce.P0)}
			case curve.QuadToKind:
				e = vg.QuadTo{Control: fromPt(ce.P0), Point: fromPt(ce.P1)}
			case curve.CubicToKind:
				e = vg.CubicTo{Control1: fromPt(ce.P0), Control2: fromPt(ce.P1), Point: fromPt(ce.P2)}
			case curve.ClosePathKind:
				e = vg.Close{}
			default:
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}
