// Package session implements the lifecycle shared by every render
// context: the Idle, Drawing and Finished phases, the sticky status slot
// and the save stack.
//
// Backends embed a *Session[S] where S is their per-frame state (clip,
// cached stroke state, open groups). The session owns the transform of
// each frame; S is copied on Save and restored on Restore.
package session

import (
	"fmt"
	"math"

	"github.com/gogpu/vg"
)

// Phase is the lifecycle phase of a context.
type Phase uint8

const (
	// Idle is the phase before the first drawing call.
	Idle Phase = iota
	// Drawing is entered by the first draw, clip, transform or save.
	Drawing
	// Finished is entered by Finish. Nothing can be drawn afterwards.
	Finished
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Drawing:
		return "drawing"
	case Finished:
		return "finished"
	}
	return fmt.Sprintf("Phase(%d)", uint8(p))
}

// Frame is one entry of the save stack.
type Frame[S any] struct {
	Transform vg.Affine
	State     S
}

// Session tracks lifecycle, status and saved state of one context.
// It is not safe for concurrent use.
type Session[S any] struct {
	backend string
	phase   Phase
	status  error
	cur     Frame[S]
	stack   []Frame[S]
	clone   func(S) S
}

// New creates a session for the named backend. clone copies the backend
// state on Save; nil means plain assignment.
func New[S any](backend string, initial S, clone func(S) S) *Session[S] {
	if clone == nil {
		clone = func(s S) S { return s }
	}
	return &Session[S]{
		backend: backend,
		cur:     Frame[S]{Transform: vg.Identity(), State: initial},
		clone:   clone,
	}
}

// Backend returns the backend name used in errors and logs.
func (s *Session[S]) Backend() string { return s.backend }

// Phase returns the current phase.
func (s *Session[S]) Phase() Phase { return s.phase }

// Finished reports whether Finish has been called.
func (s *Session[S]) Finished() bool { return s.phase == Finished }

// Begin is called at the start of every drawing operation. It moves an
// idle session to Drawing and returns true. After Finish it records a
// misuse error for op and returns false; the caller must do nothing.
func (s *Session[S]) Begin(op string) bool {
	switch s.phase {
	case Finished:
		s.Record(s.misuse(op, vg.ErrFinished))
		return false
	case Idle:
		s.phase = Drawing
		vg.Logger().Debug("vg: drawing started", "backend", s.backend)
	}
	return true
}

// Record stores err in the status slot unless an error is already
// pending. Dropped errors are logged at debug level. nil is ignored.
func (s *Session[S]) Record(err error) {
	if err == nil {
		return
	}
	if s.status != nil {
		vg.Logger().Debug("vg: error dropped, status already set",
			"backend", s.backend, "err", err, "pending", s.status)
		return
	}
	s.status = err
}

// Unsupported records an *UnsupportedError for op.
func (s *Session[S]) Unsupported(op, detail string) {
	s.Record(&vg.UnsupportedError{Backend: s.backend, Op: op, Detail: detail})
}

// Status returns the pending error and clears it.
func (s *Session[S]) Status() error {
	err := s.status
	s.status = nil
	return err
}

// Finish moves the session to Finished, runs flush and returns the
// remaining status. A second call returns nil without flushing.
func (s *Session[S]) Finish(flush func() error) error {
	if s.phase == Finished {
		return nil
	}
	s.phase = Finished
	if flush != nil {
		if err := flush(); err != nil {
			s.Record(&vg.BackendError{Backend: s.backend, Op: "Finish", Err: err})
		}
	}
	vg.Logger().Debug("vg: context finished", "backend", s.backend)
	return s.Status()
}

// Save pushes a copy of the current frame.
func (s *Session[S]) Save() error {
	if !s.beginDirect("Save") {
		return s.misuse("Save", vg.ErrFinished)
	}
	s.stack = append(s.stack, Frame[S]{Transform: s.cur.Transform, State: s.clone(s.cur.State)})
	return nil
}

// Restore pops the frame pushed by the matching Save and returns the
// frame that was current before the call, so backends can unwind
// whatever it opened. Restore without a matching Save returns a
// *vg.MisuseError and leaves the stack alone.
func (s *Session[S]) Restore() (Frame[S], error) {
	if !s.beginDirect("Restore") {
		return Frame[S]{}, s.misuse("Restore", vg.ErrFinished)
	}
	if len(s.stack) == 0 {
		return Frame[S]{}, s.misuse("Restore", vg.ErrUnbalancedRestore)
	}
	popped := s.cur
	n := len(s.stack) - 1
	s.cur = s.stack[n]
	s.stack[n] = Frame[S]{}
	s.stack = s.stack[:n]
	return popped, nil
}

// Depth returns the number of frames including the base frame.
func (s *Session[S]) Depth() int { return len(s.stack) + 1 }

// Transform returns the current transform relative to the base.
func (s *Session[S]) Transform() vg.Affine { return s.cur.Transform }

// ApplyTransform post-multiplies the current transform by a. A
// non-finite or singular a is recorded as invalid input and ignored.
func (s *Session[S]) ApplyTransform(a vg.Affine) bool {
	if !s.Begin("Transform") {
		return false
	}
	if !a.IsFinite() || !a.IsInvertible() {
		s.Record(vg.InvalidInputf("transform %v is not invertible", a.Coefficients()))
		return false
	}
	s.cur.Transform = s.cur.Transform.Multiply(a)
	return true
}

// State returns the mutable backend state of the current frame.
func (s *Session[S]) State() *S { return &s.cur.State }

// Frames calls fn for each saved frame from the base upwards, followed
// by the current frame.
func (s *Session[S]) Frames(fn func(f *Frame[S])) {
	for i := range s.stack {
		fn(&s.stack[i])
	}
	fn(&s.cur)
}

// StrokeWidth validates a stroke width. Zero selects a hairline. A
// negative or non-finite width is recorded and ok is false.
func (s *Session[S]) StrokeWidth(op string, width float64) (hairline, ok bool) {
	if math.IsNaN(width) || math.IsInf(width, 0) || width < 0 {
		s.Record(vg.InvalidInputf("%s: stroke width %v", op, width))
		return false, false
	}
	return width == 0, true
}

// CheckShape records an error and returns false when shape is nil or
// has a NaN or infinite coordinate.
func (s *Session[S]) CheckShape(op string, shape vg.Shape) bool {
	if shape == nil {
		s.Record(vg.InvalidInputf("%s: nil shape", op))
		return false
	}
	for e := range shape.PathElements(1) {
		if !elementFinite(e) {
			s.Record(vg.InvalidInputf("%s: non-finite coordinate in %v", op, e))
			return false
		}
	}
	return true
}

func elementFinite(e vg.PathElement) bool {
	switch e := e.(type) {
	case vg.MoveTo:
		return e.Point.IsFinite()
	case vg.LineTo:
		return e.Point.IsFinite()
	case vg.QuadTo:
		return e.Control.IsFinite() && e.Point.IsFinite()
	case vg.CubicTo:
		return e.Control1.IsFinite() && e.Control2.IsFinite() && e.Point.IsFinite()
	}
	return true
}

// CheckStroke validates the width and an optional style in one step and
// returns the resolved style.
func (s *Session[S]) CheckStroke(op string, width float64, style *vg.StrokeStyle) (st vg.StrokeStyle, hairline, ok bool) {
	hairline, ok = s.StrokeWidth(op, width)
	if !ok {
		return st, false, false
	}
	st = vg.ResolveStrokeStyle(style)
	if err := st.Validate(); err != nil {
		s.Record(fmt.Errorf("%s: %w", op, err))
		return st, false, false
	}
	return st, hairline, true
}

func (s *Session[S]) beginDirect(op string) bool {
	if s.phase == Finished {
		return false
	}
	return s.Begin(op)
}

func (s *Session[S]) misuse(op string, err error) error {
	me := &vg.MisuseError{Op: op, Err: err}
	vg.Logger().Warn("vg: contract misuse", "backend", s.backend, "op", op, "err", err)
	return me
}
