package vg

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	pathDataLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[\s,]+`},
		{Name: "Command", Pattern: `[MmLlHhVvQqTtCcSsAaZz]`},
		{Name: "Number", Pattern: `[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?`},
	})

	pathDataParser = participle.MustBuild[pathData](
		participle.Lexer(pathDataLexer),
		participle.Elide("Whitespace"),
	)
)

type pathData struct {
	Commands []*pathCommand `parser:"@@*"`
}

type pathCommand struct {
	Pos    lexer.Position `parser:""`
	Letter string         `parser:"@Command"`
	Args   []string       `parser:"@Number*"`
}

// arcFlagTolerance is the tolerance used when converting elliptical arc
// commands to cubic Béziers.
const arcFlagTolerance = 1e-3

// ParsePath parses SVG path data ("M10 10 h 20 a5 5 0 0 1 5 5 z").
// All commands of SVG 1.1 are accepted in absolute and relative form.
// Malformed data returns an error wrapping ErrInvalidInput that names
// the offending position.
func ParsePath(d string) (*Path, error) {
	doc, err := pathDataParser.ParseString("", d)
	if err != nil {
		return nil, InvalidInputf("path data: %v", err)
	}
	if len(doc.Commands) > 0 && doc.Commands[0].Letter[0]&^0x20 != 'M' {
		return nil, InvalidInputf("path data %s: must start with a moveto", doc.Commands[0].Pos)
	}
	b := pathDataBuilder{path: NewPath()}
	for _, cmd := range doc.Commands {
		if err := b.apply(cmd); err != nil {
			return nil, err
		}
	}
	return b.path, nil
}

// MustParsePath is like ParsePath but panics on malformed input.
func MustParsePath(d string) *Path {
	p, err := ParsePath(d)
	if err != nil {
		panic(err)
	}
	return p
}

type pathDataBuilder struct {
	path       *Path
	cur, start Point
	// reflection point for S/T
	lastCtrl Point
	lastKind byte
}

// argReader hands out numeric arguments, splitting glued arc flags
// such as "01" into separate values.
type argReader struct {
	cmd  *pathCommand
	args []string
}

func (r *argReader) done() bool { return len(r.args) == 0 }

func (r *argReader) number() (float64, error) {
	if len(r.args) == 0 {
		return 0, r.errorf("missing argument")
	}
	v, err := strconv.ParseFloat(r.args[0], 64)
	if err != nil || !isFinite(v) {
		return 0, r.errorf("bad number %q", r.args[0])
	}
	r.args = r.args[1:]
	return v, nil
}

func (r *argReader) point() (Point, error) {
	x, err := r.number()
	if err != nil {
		return Point{}, err
	}
	y, err := r.number()
	return Point{x, y}, err
}

func (r *argReader) flag() (bool, error) {
	if len(r.args) == 0 {
		return false, r.errorf("missing arc flag")
	}
	tok := r.args[0]
	if tok[0] != '0' && tok[0] != '1' {
		return false, r.errorf("bad arc flag %q", tok)
	}
	if len(tok) == 1 {
		r.args = r.args[1:]
	} else {
		r.args[0] = tok[1:]
	}
	return tok[0] == '1', nil
}

func (r *argReader) errorf(format string, args ...any) error {
	return InvalidInputf("path data %s: command %s: %s", r.cmd.Pos, r.cmd.Letter, fmt.Sprintf(format, args...))
}

func (b *pathDataBuilder) apply(cmd *pathCommand) error {
	letter := cmd.Letter[0]
	rel := letter >= 'a'
	upper := letter &^ 0x20
	r := &argReader{cmd: cmd, args: append([]string(nil), cmd.Args...)}
	offset := func(p Point) Point {
		if rel {
			return b.cur.Add(p.ToVec2())
		}
		return p
	}

	if upper == 'Z' {
		if !r.done() {
			return r.errorf("unexpected arguments")
		}
		b.path.Close()
		b.cur = b.start
		b.lastKind = 'Z'
		return nil
	}
	if r.done() {
		return r.errorf("missing arguments")
	}
	for first := true; !r.done(); first = false {
		switch upper {
		case 'M':
			p, err := r.point()
			if err != nil {
				return err
			}
			p = offset(p)
			if first {
				b.path.MoveTo(p)
				b.start = p
			} else {
				// extra pairs after a moveto are implicit linetos
				b.path.LineTo(p)
			}
			b.cur = p
		case 'L':
			p, err := r.point()
			if err != nil {
				return err
			}
			p = offset(p)
			b.path.LineTo(p)
			b.cur = p
		case 'H':
			x, err := r.number()
			if err != nil {
				return err
			}
			if rel {
				x += b.cur.X
			}
			b.cur = Point{x, b.cur.Y}
			b.path.LineTo(b.cur)
		case 'V':
			y, err := r.number()
			if err != nil {
				return err
			}
			if rel {
				y += b.cur.Y
			}
			b.cur = Point{b.cur.X, y}
			b.path.LineTo(b.cur)
		case 'Q', 'T':
			var c Point
			if upper == 'Q' {
				p, err := r.point()
				if err != nil {
					return err
				}
				c = offset(p)
			} else {
				c = b.reflect('Q')
			}
			p, err := r.point()
			if err != nil {
				return err
			}
			p = offset(p)
			b.path.QuadTo(c, p)
			b.cur, b.lastCtrl = p, c
			b.lastKind = 'Q'
			continue
		case 'C', 'S':
			var c1 Point
			if upper == 'C' {
				p, err := r.point()
				if err != nil {
					return err
				}
				c1 = offset(p)
			} else {
				c1 = b.reflect('C')
			}
			c2, err := r.point()
			if err != nil {
				return err
			}
			p, err := r.point()
			if err != nil {
				return err
			}
			c2, p = offset(c2), offset(p)
			b.path.CubicTo(c1, c2, p)
			b.cur, b.lastCtrl = p, c2
			b.lastKind = 'C'
			continue
		case 'A':
			if err := b.arc(r, offset); err != nil {
				return err
			}
		}
		b.lastKind = upper
	}
	return nil
}

// reflect returns the implied first control point of a smooth curve.
func (b *pathDataBuilder) reflect(kind byte) Point {
	if b.lastKind != kind {
		return b.cur
	}
	return b.cur.Add(b.cur.Sub(b.lastCtrl))
}

func (b *pathDataBuilder) arc(r *argReader, offset func(Point) Point) error {
	rx, err := r.number()
	if err != nil {
		return err
	}
	ry, err := r.number()
	if err != nil {
		return err
	}
	rot, err := r.number()
	if err != nil {
		return err
	}
	large, err := r.flag()
	if err != nil {
		return err
	}
	sweep, err := r.flag()
	if err != nil {
		return err
	}
	p, err := r.point()
	if err != nil {
		return err
	}
	p = offset(p)
	if p == b.cur {
		return nil
	}
	if a, ok := arcFromEndpoints(b.cur, p, Vec2{rx, ry}, rot*math.Pi/180, large, sweep); ok {
		b.path.ensureStart(b.cur)
		var last CubicTo
		for el := range a.AppendElements(arcFlagTolerance) {
			if last != (CubicTo{}) {
				b.path.push(last)
			}
			last = el.(CubicTo)
		}
		// land exactly on the requested endpoint
		last.Point = p
		b.path.push(last)
	} else {
		b.path.LineTo(p)
	}
	b.cur = p
	return nil
}

// arcFromEndpoints converts SVG endpoint arc parameters to center form
// (SVG 1.1 implementation notes F.6.5). It reports false when the arc
// degenerates to a straight line.
func arcFromEndpoints(p0, p1 Point, radii Vec2, xrot float64, large, sweep bool) (Arc, bool) {
	if p0 == p1 {
		return Arc{}, false
	}
	rx, ry := math.Abs(radii.X), math.Abs(radii.Y)
	if rx == 0 || ry == 0 {
		return Arc{}, false
	}
	sin, cos := math.Sincos(xrot)
	hd := p0.Sub(p1).Mul(0.5)
	x1 := cos*hd.X + sin*hd.Y
	y1 := -sin*hd.X + cos*hd.Y

	if l := x1*x1/(rx*rx) + y1*y1/(ry*ry); l > 1 {
		s := math.Sqrt(l)
		rx, ry = rx*s, ry*s
	}
	num := rx*rx*ry*ry - rx*rx*y1*y1 - ry*ry*x1*x1
	den := rx*rx*y1*y1 + ry*ry*x1*x1
	coef := 0.0
	if num > 0 && den > 0 {
		coef = math.Sqrt(num / den)
	}
	if large == sweep {
		coef = -coef
	}
	cx1 := coef * rx * y1 / ry
	cy1 := -coef * ry * x1 / rx
	mid := p0.Midpoint(p1)
	center := Point{
		X: cos*cx1 - sin*cy1 + mid.X,
		Y: sin*cx1 + cos*cy1 + mid.Y,
	}

	angle := func(u, v Vec2) float64 {
		return math.Atan2(u.Cross(v), u.Dot(v))
	}
	u := Vec2{(x1 - cx1) / rx, (y1 - cy1) / ry}
	v := Vec2{(-x1 - cx1) / rx, (-y1 - cy1) / ry}
	start := angle(Vec2{1, 0}, u)
	delta := angle(u, v)
	if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	} else if sweep && delta < 0 {
		delta += 2 * math.Pi
	}
	return Arc{Center: center, Radii: Vec2{rx, ry}, Start: start, Sweep: delta, XRotation: xrot}, true
}

// String returns the path as SVG path data with absolute commands. The
// output parses back to an identical element sequence.
func (p *Path) String() string {
	var sb strings.Builder
	num := func(v float64) {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	cmd := func(c byte, pts ...Point) {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(c)
		for i, pt := range pts {
			if i == 0 {
				sb.WriteString(strconv.FormatFloat(pt.X, 'g', -1, 64))
			} else {
				num(pt.X)
			}
			num(pt.Y)
		}
	}
	for _, e := range p.elements {
		switch e := e.(type) {
		case MoveTo:
			cmd('M', e.Point)
		case LineTo:
			cmd('L', e.Point)
		case QuadTo:
			cmd('Q', e.Control, e.Point)
		case CubicTo:
			cmd('C', e.Control1, e.Control2, e.Point)
		case Close:
			cmd('Z')
		}
	}
	return sb.String()
}
