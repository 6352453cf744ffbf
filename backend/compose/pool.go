package compose

import (
	"github.com/gogpu/vg"
	"github.com/gogpu/vg/text"
)

// ResourcePool stores the resources referenced by scene commands.
// Mutable resources are cloned on Add so the scene stays immutable.
// Solid brushes, images and layouts are deduplicated.
//
// ResourcePool is not safe for concurrent use.
type ResourcePool struct {
	shapes  []vg.Shape
	brushes []Brush
	images  []*Image
	layouts []*text.Layout

	solids    map[vg.Color]BrushRef
	imageRefs map[*Image]ImageRef
	layoutRef map[*text.Layout]LayoutRef
}

// NewResourcePool creates an empty pool.
func NewResourcePool() *ResourcePool {
	return &ResourcePool{
		shapes:    make([]vg.Shape, 0, 64),
		brushes:   make([]Brush, 0, 16),
		solids:    make(map[vg.Color]BrushRef),
		imageRefs: make(map[*Image]ImageRef),
		layoutRef: make(map[*text.Layout]LayoutRef),
	}
}

// AddShape adds a shape. Paths are cloned.
func (p *ResourcePool) AddShape(s vg.Shape) ShapeRef {
	if path, ok := s.(*vg.Path); ok {
		s = path.Clone()
	}
	p.shapes = append(p.shapes, s)
	// #nosec G115 -- pool size is bounded by available memory
	return ShapeRef(uint32(len(p.shapes) - 1))
}

// Shape returns the shape for ref, or nil.
func (p *ResourcePool) Shape(ref ShapeRef) vg.Shape {
	if int(ref) >= len(p.shapes) {
		return nil
	}
	return p.shapes[ref]
}

// AddBrush adds a brush.
func (p *ResourcePool) AddBrush(b Brush) BrushRef {
	if b.gradient == nil {
		if ref, ok := p.solids[b.color]; ok {
			return ref
		}
	}
	p.brushes = append(p.brushes, b)
	// #nosec G115 -- pool size is bounded by available memory
	ref := BrushRef(uint32(len(p.brushes) - 1))
	if b.gradient == nil {
		p.solids[b.color] = ref
	}
	return ref
}

// Brush returns the brush for ref.
func (p *ResourcePool) Brush(ref BrushRef) (Brush, bool) {
	if int(ref) >= len(p.brushes) {
		return Brush{}, false
	}
	return p.brushes[ref], true
}

// AddImage adds an image. Images are immutable and shared.
func (p *ResourcePool) AddImage(img *Image) ImageRef {
	if ref, ok := p.imageRefs[img]; ok {
		return ref
	}
	p.images = append(p.images, img)
	// #nosec G115 -- pool size is bounded by available memory
	ref := ImageRef(uint32(len(p.images) - 1))
	p.imageRefs[img] = ref
	return ref
}

// Image returns the image for ref, or nil.
func (p *ResourcePool) Image(ref ImageRef) *Image {
	if int(ref) >= len(p.images) {
		return nil
	}
	return p.images[ref]
}

// AddLayout adds a text layout. Layouts are immutable and shared.
func (p *ResourcePool) AddLayout(l *text.Layout) LayoutRef {
	if ref, ok := p.layoutRef[l]; ok {
		return ref
	}
	p.layouts = append(p.layouts, l)
	// #nosec G115 -- pool size is bounded by available memory
	ref := LayoutRef(uint32(len(p.layouts) - 1))
	p.layoutRef[l] = ref
	return ref
}

// Layout returns the layout for ref, or nil.
func (p *ResourcePool) Layout(ref LayoutRef) *text.Layout {
	if int(ref) >= len(p.layouts) {
		return nil
	}
	return p.layouts[ref]
}

// Counts returns the number of shapes, brushes, images and layouts.
func (p *ResourcePool) Counts() (shapes, brushes, images, layouts int) {
	return len(p.shapes), len(p.brushes), len(p.images), len(p.layouts)
}
