package vg

import "slices"

// LineCap is the shape of open subpath endpoints.
type LineCap uint8

const (
	// CapButt ends the stroke flat at the endpoint.
	CapButt LineCap = iota
	// CapRound ends the stroke with a semicircle.
	CapRound
	// CapSquare extends the stroke by half its width.
	CapSquare
)

func (c LineCap) String() string {
	switch c {
	case CapRound:
		return "round"
	case CapSquare:
		return "square"
	}
	return "butt"
}

// LineJoin is the shape of corners between segments.
type LineJoin uint8

const (
	// JoinMiter extends the outer edges until they meet, falling back
	// to a bevel beyond the miter limit.
	JoinMiter LineJoin = iota
	// JoinRound rounds the corner.
	JoinRound
	// JoinBevel cuts the corner.
	JoinBevel
)

func (j LineJoin) String() string {
	switch j {
	case JoinRound:
		return "round"
	case JoinBevel:
		return "bevel"
	}
	return "miter"
}

// DefaultMiterLimit matches the HTML canvas default.
const DefaultMiterLimit = 10.0

// StrokeStyle describes how a path outline is stroked. The width is
// passed separately to Stroke and StrokeStyled.
type StrokeStyle struct {
	LineJoin   LineJoin
	MiterLimit float64
	LineCap    LineCap
	// Dash holds alternating dash and gap lengths in user units. An odd
	// count is repeated to make it even. Empty means solid.
	Dash       []float64
	DashOffset float64
}

// DefaultStrokeStyle returns a solid style with miter joins (limit 10)
// and butt caps.
func DefaultStrokeStyle() StrokeStyle {
	return StrokeStyle{LineJoin: JoinMiter, MiterLimit: DefaultMiterLimit, LineCap: CapButt}
}

// WithJoin returns a copy with the given join.
func (s StrokeStyle) WithJoin(j LineJoin) StrokeStyle {
	s.LineJoin = j
	return s
}

// WithMiterLimit returns a copy with the given miter limit.
func (s StrokeStyle) WithMiterLimit(limit float64) StrokeStyle {
	s.MiterLimit = limit
	return s
}

// WithCap returns a copy with the given cap.
func (s StrokeStyle) WithCap(c LineCap) StrokeStyle {
	s.LineCap = c
	return s
}

// WithDash returns a copy with the given dash pattern and offset.
func (s StrokeStyle) WithDash(pattern []float64, offset float64) StrokeStyle {
	s.Dash = slices.Clone(pattern)
	s.DashOffset = offset
	return s
}

// IsDashed reports whether the style has a dash pattern.
func (s StrokeStyle) IsDashed() bool {
	return len(s.Dash) > 0
}

// DashPattern returns the even-length dash pattern, or nil when solid.
func (s StrokeStyle) DashPattern() []float64 {
	if len(s.Dash) == 0 {
		return nil
	}
	if len(s.Dash)%2 == 1 {
		return append(slices.Clone(s.Dash), s.Dash...)
	}
	return slices.Clone(s.Dash)
}

// Validate rejects a non-positive miter limit and dash patterns with
// negative, non-finite or only zero lengths.
func (s StrokeStyle) Validate() error {
	if !isFinite(s.MiterLimit) || s.MiterLimit <= 0 {
		return InvalidInputf("miter limit %v", s.MiterLimit)
	}
	if !isFinite(s.DashOffset) {
		return InvalidInputf("dash offset %v", s.DashOffset)
	}
	if len(s.Dash) == 0 {
		return nil
	}
	total := 0.0
	for _, d := range s.Dash {
		if !isFinite(d) || d < 0 {
			return InvalidInputf("dash length %v", d)
		}
		total += d
	}
	if total == 0 {
		return InvalidInputf("dash pattern has zero length")
	}
	return nil
}

// ResolveStrokeStyle returns *s, or the default style for nil.
func ResolveStrokeStyle(s *StrokeStyle) StrokeStyle {
	if s == nil {
		return DefaultStrokeStyle()
	}
	return *s
}
