package vg

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"
)

func TestNormalizeStops(t *testing.T) {
	in := []GradientStop{
		{Offset: 1.5, Color: Blue},
		{Offset: 0.5, Color: Green},
		{Offset: -1, Color: Red},
		{Offset: 0.5, Color: Yellow},
	}
	got, err := NormalizeStops(in)
	if err != nil {
		t.Fatalf("NormalizeStops error: %v", err)
	}
	want := []GradientStop{
		{Offset: 0, Color: Red},
		{Offset: 0.5, Color: Green},
		{Offset: 0.5, Color: Yellow},
		{Offset: 1, Color: Blue},
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("stop %d = %v, want %v", i, got[i], want[i])
		}
	}
	if in[0].Offset != 1.5 {
		t.Error("NormalizeStops modified its input")
	}
}

func TestNormalizeStopsErrors(t *testing.T) {
	tests := []struct {
		name  string
		stops []GradientStop
		want  error
	}{
		{"none", nil, ErrTooFewStops},
		{"one", []GradientStop{{0, Red}}, ErrTooFewStops},
		{"nan", []GradientStop{{0, Red}, {math.NaN(), Blue}}, ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NormalizeStops(tt.stops); !errors.Is(err, tt.want) {
				t.Errorf("NormalizeStops error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSampleStops(t *testing.T) {
	stops := GradientStops(White, Black)
	tests := []struct {
		t    float64
		want Color
	}{
		{-1, White},
		{0, White},
		{0.5, RGB(0.5, 0.5, 0.5)},
		{1, Black},
		{2, Black},
	}
	for _, tt := range tests {
		if got := SampleStops(stops, tt.t); !colorNear(got, tt.want, 1e-9) {
			t.Errorf("SampleStops(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestSampleStopsHardEdge(t *testing.T) {
	stops, _ := NormalizeStops([]GradientStop{{0, Red}, {0.5, Red}, {0.5, Blue}, {1, Blue}})
	if got := SampleStops(stops, 0.49); got != Red {
		t.Errorf("before edge = %v, want red", got)
	}
	if got := SampleStops(stops, 0.5); got != Blue {
		t.Errorf("at edge = %v, want blue", got)
	}
}

// Rendering a gradient is independent of the order its stops were given in.
func TestGradientStopOrderIndependent(t *testing.T) {
	sorted := []GradientStop{{0, Red}, {0.3, Green}, {0.6, Blue}, {1, White}}
	shuffled := append([]GradientStop(nil), sorted...)
	r := rand.New(rand.NewPCG(1, 2))
	r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	a, err := NormalizeGradient(NewLinearGradient(Pt(0, 0), Pt(100, 0), sorted))
	if err != nil {
		t.Fatal(err)
	}
	b, err := NormalizeGradient(NewLinearGradient(Pt(0, 0), Pt(100, 0), shuffled))
	if err != nil {
		t.Fatal(err)
	}
	fa, fb := a.(FixedGradient), b.(FixedGradient)
	for x := 0.0; x <= 100; x += 2.5 {
		p := Pt(x, 7)
		if ca, cb := fa.ColorAt(p), fb.ColorAt(p); ca != cb {
			t.Errorf("ColorAt(%v): sorted %v, shuffled %v", p, ca, cb)
		}
	}
}

func TestLinearGradientColorAt(t *testing.T) {
	g := NewLinearGradient(Pt(0, 0), Pt(10, 0), GradientStops(White, Black))
	if got := g.ColorAt(Pt(0, 5)); got != White {
		t.Errorf("ColorAt start = %v, want white", got)
	}
	if got := g.ColorAt(Pt(10, -3)); got != Black {
		t.Errorf("ColorAt end = %v, want black", got)
	}
	if got := g.ColorAt(Pt(5, 0)); !colorNear(got, Grey(0.5), 1e-9) {
		t.Errorf("ColorAt middle = %v, want grey", got)
	}
}

func TestRadialGradientColorAt(t *testing.T) {
	g := NewRadialGradient(Pt(50, 50), 10, GradientStops(Red, Blue))
	if got := g.ColorAt(Pt(50, 50)); got != Red {
		t.Errorf("center = %v, want red", got)
	}
	if got := g.ColorAt(Pt(60, 50)); got != Blue {
		t.Errorf("edge = %v, want blue", got)
	}
	if got := g.ColorAt(Pt(55, 50)); !colorNear(got, RGB(0.5, 0, 0.5), 1e-9) {
		t.Errorf("halfway = %v, want purple", got)
	}

	// With a focal offset the focus maps to offset 0 and the circle to 1.
	f := g
	f.OriginOffset = Vec2{-5, 0}
	if got := f.ColorAt(Pt(45, 50)); got != Red {
		t.Errorf("focus = %v, want red", got)
	}
	if got := f.ColorAt(Pt(50, 40)); !colorNear(got, Blue, 1e-9) {
		t.Errorf("circle = %v, want blue", got)
	}
}

func TestUnitPointGradientResolve(t *testing.T) {
	bbox := NewRect(10, 20, 110, 70)
	lg := LinearGradient{Start: TopLeft, End: BottomRight, Stops: GradientStops(Red, Blue)}
	fixed := lg.Resolve(bbox).(FixedLinearGradient)
	if fixed.Start != Pt(10, 20) || fixed.End != Pt(110, 70) {
		t.Errorf("resolved linear = %v -> %v", fixed.Start, fixed.End)
	}

	rg := RadialGradient{Center: CenterPoint, Origin: Left, Radius: 0.5, Stops: GradientStops(Red, Blue)}
	fr := rg.Resolve(bbox).(FixedRadialGradient)
	if fr.Center != Pt(60, 45) {
		t.Errorf("resolved center = %v, want (60,45)", fr.Center)
	}
	if fr.Radius != 25 {
		t.Errorf("resolved radius = %v, want 25 (half the shorter side)", fr.Radius)
	}
	if fr.Focus() != Pt(10, 45) {
		t.Errorf("resolved focus = %v, want (10,45)", fr.Focus())
	}
}

func TestGradientValidate(t *testing.T) {
	tests := []struct {
		name string
		g    Gradient
		want error
	}{
		{"ok", NewLinearGradient(Pt(0, 0), Pt(1, 1), GradientStops(Red, Blue)), nil},
		{"one stop", NewLinearGradient(Pt(0, 0), Pt(1, 1), GradientStops(Red)), ErrTooFewStops},
		{"nan point", NewLinearGradient(Pt(math.NaN(), 0), Pt(1, 1), GradientStops(Red, Blue)), ErrInvalidInput},
		{"negative radius", NewRadialGradient(Pt(0, 0), -1, GradientStops(Red, Blue)), ErrInvalidInput},
		{"unit radial", RadialGradient{Radius: 1, Stops: GradientStops(Red, Blue)}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.g.Validate()
			if tt.want == nil && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}
