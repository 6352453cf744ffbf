package session

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/gogpu/vg"
)

type state struct {
	clips []int
}

func cloneState(s state) state {
	return state{clips: append([]int(nil), s.clips...)}
}

func newSession() *Session[state] {
	return New("test", state{}, cloneState)
}

func TestPhases(t *testing.T) {
	s := newSession()
	if s.Phase() != Idle {
		t.Fatalf("Phase() = %v, want idle", s.Phase())
	}
	if !s.Begin("Fill") {
		t.Fatal("Begin on idle session = false")
	}
	if s.Phase() != Drawing {
		t.Errorf("Phase() = %v, want drawing", s.Phase())
	}
	if err := s.Finish(nil); err != nil {
		t.Errorf("Finish() = %v, want nil", err)
	}
	if s.Phase() != Finished || !s.Finished() {
		t.Errorf("Phase() = %v, want finished", s.Phase())
	}
}

func TestDrawAfterFinish(t *testing.T) {
	s := newSession()
	_ = s.Finish(nil)
	if s.Begin("Fill") {
		t.Fatal("Begin after Finish = true")
	}
	err := s.Status()
	var me *vg.MisuseError
	if !errors.As(err, &me) || me.Op != "Fill" || !errors.Is(err, vg.ErrFinished) {
		t.Errorf("Status() = %v, want misuse Fill/ErrFinished", err)
	}
	if err := s.Save(); !vg.IsMisuse(err) || !errors.Is(err, vg.ErrFinished) {
		t.Errorf("Save() after finish = %v", err)
	}
	if _, err := s.Restore(); !errors.Is(err, vg.ErrFinished) {
		t.Errorf("Restore() after finish = %v", err)
	}
}

func TestFinishIdempotent(t *testing.T) {
	s := newSession()
	flushes := 0
	flush := func() error { flushes++; return nil }
	s.Record(vg.ErrInvalidInput)
	if err := s.Finish(flush); !errors.Is(err, vg.ErrInvalidInput) {
		t.Errorf("first Finish() = %v, want ErrInvalidInput", err)
	}
	if err := s.Finish(flush); err != nil {
		t.Errorf("second Finish() = %v, want nil", err)
	}
	if flushes != 1 {
		t.Errorf("flush ran %d times, want 1", flushes)
	}
}

func TestFinishWrapsFlushError(t *testing.T) {
	s := newSession()
	cause := errors.New("submit failed")
	err := s.Finish(func() error { return cause })
	var be *vg.BackendError
	if !errors.As(err, &be) || be.Backend != "test" || !errors.Is(err, cause) {
		t.Errorf("Finish() = %v, want BackendError wrapping cause", err)
	}
}

func TestStatusFirstErrorWins(t *testing.T) {
	var buf bytes.Buffer
	vg.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer vg.SetLogger(nil)

	s := newSession()
	first := errors.New("first")
	s.Record(first)
	s.Record(errors.New("second"))
	s.Record(nil)
	if err := s.Status(); err != first {
		t.Errorf("Status() = %v, want %v", err, first)
	}
	if err := s.Status(); err != nil {
		t.Errorf("Status() after read = %v, want nil", err)
	}
	if !strings.Contains(buf.String(), "second") {
		t.Errorf("dropped error not logged: %q", buf.String())
	}
}

func TestSaveRestore(t *testing.T) {
	s := newSession()
	if err := s.Save(); err != nil {
		t.Fatal(err)
	}
	s.ApplyTransform(vg.Translate(10, 0))
	s.State().clips = append(s.State().clips, 1)
	if s.Depth() != 2 {
		t.Errorf("Depth() = %d, want 2", s.Depth())
	}

	popped, err := s.Restore()
	if err != nil {
		t.Fatalf("Restore() = %v", err)
	}
	if len(popped.State.clips) != 1 || popped.Transform != vg.Translate(10, 0) {
		t.Errorf("popped frame = %+v", popped)
	}
	if !s.Transform().IsIdentity() || len(s.State().clips) != 0 {
		t.Errorf("state after Restore = %v %v, want identity and no clips", s.Transform(), s.State().clips)
	}
	if s.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1", s.Depth())
	}
}

func TestSaveClonesState(t *testing.T) {
	s := New("test", state{clips: []int{7}}, cloneState)
	_ = s.Save()
	s.State().clips[0] = 99
	_, _ = s.Restore()
	if s.State().clips[0] != 7 {
		t.Errorf("saved state aliased: %v", s.State().clips)
	}
}

func TestUnbalancedRestore(t *testing.T) {
	s := newSession()
	_ = s.Save()
	if _, err := s.Restore(); err != nil {
		t.Fatal(err)
	}
	_, err := s.Restore()
	var me *vg.MisuseError
	if !errors.As(err, &me) || !errors.Is(err, vg.ErrUnbalancedRestore) || me.Op != "Restore" {
		t.Errorf("Restore() = %v, want misuse ErrUnbalancedRestore", err)
	}
	if s.Depth() != 1 {
		t.Errorf("Depth() = %d after failed Restore, want 1", s.Depth())
	}
	if s.Finished() {
		t.Error("unbalanced restore finished the session")
	}
}

func TestApplyTransform(t *testing.T) {
	tests := []struct {
		name string
		a    vg.Affine
		ok   bool
	}{
		{"translate", vg.Translate(1, 2), true},
		{"singular", vg.Scale(0, 1), false},
		{"nan", vg.Translate(math.NaN(), 0), false},
		{"inf", vg.Scale(math.Inf(1), 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession()
			if got := s.ApplyTransform(tt.a); got != tt.ok {
				t.Errorf("ApplyTransform = %v, want %v", got, tt.ok)
			}
			err := s.Status()
			if tt.ok {
				if err != nil || s.Transform() != tt.a {
					t.Errorf("transform = %v, status %v", s.Transform(), err)
				}
				return
			}
			if !errors.Is(err, vg.ErrInvalidInput) || !s.Transform().IsIdentity() {
				t.Errorf("rejected transform: status %v, current %v", err, s.Transform())
			}
		})
	}
}

func TestTransformComposition(t *testing.T) {
	a := vg.Translate(5, 3)
	b := vg.Rotate(0.5)
	c := vg.Scale(2, 3)

	s1 := newSession()
	s1.ApplyTransform(a)
	s1.ApplyTransform(b)
	s1.ApplyTransform(c)

	s2 := newSession()
	s2.ApplyTransform(a.Multiply(b).Multiply(c))

	p := vg.Pt(1, 1)
	got, want := s1.Transform().TransformPoint(p), s2.Transform().TransformPoint(p)
	if math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 {
		t.Errorf("sequential = %v, combined = %v", got, want)
	}
}

func TestStrokeWidth(t *testing.T) {
	tests := []struct {
		width    float64
		hairline bool
		ok       bool
	}{
		{2, false, true},
		{0, true, true},
		{-1, false, false},
		{math.NaN(), false, false},
		{math.Inf(1), false, false},
	}
	for _, tt := range tests {
		s := newSession()
		hairline, ok := s.StrokeWidth("Stroke", tt.width)
		if hairline != tt.hairline || ok != tt.ok {
			t.Errorf("StrokeWidth(%v) = %v, %v, want %v, %v", tt.width, hairline, ok, tt.hairline, tt.ok)
		}
		if err := s.Status(); tt.ok != (err == nil) {
			t.Errorf("StrokeWidth(%v) status = %v", tt.width, err)
		}
	}
}

func TestCheckShape(t *testing.T) {
	nan, inf := math.NaN(), math.Inf(1)
	tests := []struct {
		name  string
		shape vg.Shape
		ok    bool
	}{
		{"rect", vg.NewRect(0, 0, 4, 4), true},
		{"circle", vg.NewCircle(vg.Pt(2, 2), 1), true},
		{"nil", nil, false},
		{"nan move", vg.PathFromElements(vg.MoveTo{Point: vg.Pt(nan, 1)}, vg.LineTo{Point: vg.Pt(10, 1)}), false},
		{"inf line", vg.PathFromElements(vg.MoveTo{Point: vg.Pt(0, 1)}, vg.LineTo{Point: vg.Pt(10, inf)}), false},
		{"nan control", vg.PathFromElements(vg.MoveTo{}, vg.CubicTo{Control1: vg.Pt(nan, 0), Control2: vg.Pt(1, 1), Point: vg.Pt(2, 0)}), false},
		{"nan radius", vg.NewCircle(vg.Pt(2, 2), nan), false},
		{"inf rect", vg.NewRect(0, 0, inf, 4), false},
	}
	for _, tt := range tests {
		s := newSession()
		if got := s.CheckShape("Fill", tt.shape); got != tt.ok {
			t.Errorf("CheckShape(%s) = %v, want %v", tt.name, got, tt.ok)
		}
		err := s.Status()
		if tt.ok && err != nil {
			t.Errorf("CheckShape(%s) status = %v, want nil", tt.name, err)
		}
		if !tt.ok && !errors.Is(err, vg.ErrInvalidInput) {
			t.Errorf("CheckShape(%s) status = %v, want ErrInvalidInput", tt.name, err)
		}
	}
}

func TestCheckStroke(t *testing.T) {
	s := newSession()
	st, _, ok := s.CheckStroke("StrokeStyled", 1, nil)
	if !ok || st.MiterLimit != vg.DefaultMiterLimit {
		t.Errorf("CheckStroke(nil) = %+v, %v", st, ok)
	}
	bad := vg.DefaultStrokeStyle().WithDash([]float64{-1}, 0)
	if _, _, ok := s.CheckStroke("StrokeStyled", 1, &bad); ok {
		t.Error("CheckStroke accepted a negative dash")
	}
	if err := s.Status(); !errors.Is(err, vg.ErrInvalidInput) {
		t.Errorf("Status() = %v, want ErrInvalidInput", err)
	}
}

func TestUnsupported(t *testing.T) {
	s := newSession()
	s.Unsupported("BlurredRect", "gradient brush")
	if err := s.Status(); !errors.Is(err, vg.ErrNotSupported) {
		t.Errorf("Status() = %v, want ErrNotSupported", err)
	}
}
