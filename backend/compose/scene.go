package compose

import (
	"fmt"

	"github.com/gogpu/vg"
)

// Scene is a retained display list: the commands recorded by the
// contexts of one bitmap and the resources they reference. A scene is
// immutable once its bitmap hands it out.
type Scene struct {
	width, height int
	scale         float64
	commands      []Command
	pool          *ResourcePool
}

func newScene(width, height int, scale float64) *Scene {
	return &Scene{width: width, height: height, scale: scale, pool: NewResourcePool()}
}

// Width returns the target width in pixels.
func (s *Scene) Width() int { return s.width }

// Height returns the target height in pixels.
func (s *Scene) Height() int { return s.height }

// Scale returns the user-to-pixel scale of the target.
func (s *Scene) Scale() float64 { return s.scale }

// Commands returns the recorded commands. The slice must not be
// modified.
func (s *Scene) Commands() []Command { return s.commands }

// Len returns the number of commands.
func (s *Scene) Len() int { return len(s.commands) }

// Resources returns the resource pool.
func (s *Scene) Resources() *ResourcePool { return s.pool }

// replayState caches the target resources built from pool entries.
type replayState[B any, I vg.Image, L vg.TextLayout] struct {
	brushes map[BrushRef]B
	images  map[ImageRef]I
	layouts map[LayoutRef]L
}

// Replay plays the scene onto rc. Brushes, images and layouts are
// rebuilt through rc so the scene can be drawn by any backend; each
// resource is built once. Saves left open by the scene are restored
// before Replay returns.
//
// Replay returns the first error building a resource. Errors of the
// drawing calls themselves stay in rc's status.
func Replay[B any, I vg.Image, T vg.Text[L], L vg.TextLayout](s *Scene, rc vg.RenderContext[B, I, T, L]) error {
	st := replayState[B, I, L]{
		brushes: make(map[BrushRef]B),
		images:  make(map[ImageRef]I),
		layouts: make(map[LayoutRef]L),
	}
	depth := 0
	defer func() {
		for ; depth > 0; depth-- {
			_ = rc.Restore()
		}
	}()

	for i, cmd := range s.commands {
		switch c := cmd.(type) {
		case SaveCommand:
			if err := rc.Save(); err != nil {
				return err
			}
			depth++
		case RestoreCommand:
			if err := rc.Restore(); err != nil {
				return err
			}
			depth--
		case TransformCommand:
			rc.Transform(c.Affine)
		case ClipCommand:
			rc.Clip(s.pool.Shape(c.Shape))
		case ClearCommand:
			rc.Clear(c.Color)
		case ClearRegionCommand:
			rc.ClearRegion(c.Region, c.Color)
		case FillCommand:
			b, err := replayBrush(s.pool, &st, rc, c.Brush)
			if err != nil {
				return fmt.Errorf("compose: replay command %d: %w", i, err)
			}
			if c.Rule == vg.EvenOdd {
				rc.FillEvenOdd(s.pool.Shape(c.Shape), b)
			} else {
				rc.Fill(s.pool.Shape(c.Shape), b)
			}
		case StrokeCommand:
			b, err := replayBrush(s.pool, &st, rc, c.Brush)
			if err != nil {
				return fmt.Errorf("compose: replay command %d: %w", i, err)
			}
			style := c.Style
			rc.StrokeStyled(s.pool.Shape(c.Shape), b, c.Width, &style)
		case DrawTextCommand:
			l, err := replayLayout(s.pool, &st, rc, c.Layout)
			if err != nil {
				return fmt.Errorf("compose: replay command %d: %w", i, err)
			}
			rc.DrawText(l, c.Pos)
		case DrawImageCommand:
			img, err := replayImage(s.pool, &st, rc, c.Image)
			if err != nil {
				return fmt.Errorf("compose: replay command %d: %w", i, err)
			}
			rc.DrawImageArea(img, c.Src, c.Dst, c.Interp)
		case BlurredRectCommand:
			b, err := replayBrush(s.pool, &st, rc, c.Brush)
			if err != nil {
				return fmt.Errorf("compose: replay command %d: %w", i, err)
			}
			rc.BlurredRect(c.Rect, c.Radius, b)
		}
	}
	return nil
}

func replayBrush[B any, I vg.Image, T vg.Text[L], L vg.TextLayout](p *ResourcePool, st *replayState[B, I, L], rc vg.RenderContext[B, I, T, L], ref BrushRef) (B, error) {
	if b, ok := st.brushes[ref]; ok {
		return b, nil
	}
	src, ok := p.Brush(ref)
	if !ok {
		var zero B
		return zero, fmt.Errorf("brush %d: %w", ref, vg.ErrInvalidInput)
	}
	var b B
	if g, ok := src.Gradient(); ok {
		var err error
		if b, err = rc.GradientBrush(g); err != nil {
			return b, err
		}
	} else {
		b = rc.SolidBrush(src.color)
	}
	st.brushes[ref] = b
	return b, nil
}

func replayImage[B any, I vg.Image, T vg.Text[L], L vg.TextLayout](p *ResourcePool, st *replayState[B, I, L], rc vg.RenderContext[B, I, T, L], ref ImageRef) (I, error) {
	if img, ok := st.images[ref]; ok {
		return img, nil
	}
	src := p.Image(ref)
	if src == nil {
		var zero I
		return zero, fmt.Errorf("image %d: %w", ref, vg.ErrInvalidInput)
	}
	r := src.rgba.Rect
	img, err := rc.MakeImage(r.Dx(), r.Dy(), src.rgba.Pix, vg.FormatRGBAPremul)
	if err != nil {
		return img, err
	}
	st.images[ref] = img
	return img, nil
}

func replayLayout[B any, I vg.Image, T vg.Text[L], L vg.TextLayout](p *ResourcePool, st *replayState[B, I, L], rc vg.RenderContext[B, I, T, L], ref LayoutRef) (L, error) {
	if l, ok := st.layouts[ref]; ok {
		return l, nil
	}
	src := p.Layout(ref)
	if src == nil {
		var zero L
		return zero, fmt.Errorf("layout %d: %w", ref, vg.ErrInvalidInput)
	}
	l, err := rc.Text().NewTextLayout(src.Text(), src.Family(), src.FontSize(), src.MaxWidth(), src.Config().Options()...)
	if err != nil {
		return l, err
	}
	st.layouts[ref] = l
	return l, nil
}
