package gpu

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Attachment formats of every frame.
const (
	colorFormat   = gputypes.TextureFormatRGBA8Unorm
	stencilFormat = gputypes.TextureFormatDepth24PlusStencil8
	clipFormat    = gputypes.TextureFormatR8Unorm
)

// Pipeline is the fixed-function state of one pass. Executors map it
// onto their own pipeline objects; SoftwareExecutor interprets it
// directly.
type Pipeline struct {
	Label        string
	DepthStencil *hal.DepthStencilState
	Target       gputypes.ColorTargetState
	Primitive    gputypes.PrimitiveState
}

// WritesColor reports whether the pass writes the color attachment.
func (p *Pipeline) WritesColor() bool {
	return p.Target.WriteMask != gputypes.ColorWriteMaskNone
}

func stencilFace(cmp gputypes.CompareFunction, pass hal.StencilOperation) hal.StencilFaceState {
	return hal.StencilFaceState{
		Compare:     cmp,
		FailOp:      hal.StencilOperationKeep,
		DepthFailOp: hal.StencilOperationKeep,
		PassOp:      pass,
	}
}

// newStencilPipeline builds a fill pass that only updates the stencil.
func newStencilPipeline(label string, front, back hal.StencilOperation) *Pipeline {
	return &Pipeline{
		Label: label,
		DepthStencil: &hal.DepthStencilState{
			Format:           stencilFormat,
			DepthCompare:     gputypes.CompareFunctionAlways,
			StencilFront:     stencilFace(gputypes.CompareFunctionAlways, front),
			StencilBack:      stencilFace(gputypes.CompareFunctionAlways, back),
			StencilReadMask:  0xFF,
			StencilWriteMask: 0xFF,
		},
		Target: gputypes.ColorTargetState{Format: colorFormat, WriteMask: gputypes.ColorWriteMaskNone},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
	}
}

// newCoverPipeline builds a pass that writes where the stencil is set
// and zeroes the stencil behind it.
func newCoverPipeline(label string, format gputypes.TextureFormat, blend *gputypes.BlendState) *Pipeline {
	face := stencilFace(gputypes.CompareFunctionNotEqual, hal.StencilOperationZero)
	return &Pipeline{
		Label: label,
		DepthStencil: &hal.DepthStencilState{
			Format:           stencilFormat,
			DepthCompare:     gputypes.CompareFunctionAlways,
			StencilFront:     face,
			StencilBack:      face,
			StencilReadMask:  0xFF,
			StencilWriteMask: 0xFF,
		},
		Target: gputypes.ColorTargetState{Format: format, Blend: blend, WriteMask: gputypes.ColorWriteMaskAll},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
	}
}

// newQuadPipeline builds a pass without stencil test.
func newQuadPipeline(label string, blend *gputypes.BlendState) *Pipeline {
	return &Pipeline{
		Label:  label,
		Target: gputypes.ColorTargetState{Format: colorFormat, Blend: blend, WriteMask: gputypes.ColorWriteMaskAll},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
	}
}

var (
	premulBlend  = gputypes.BlendStatePremultiplied()
	replaceBlend = gputypes.BlendStateReplace()

	// StencilNonZero counts winding: front faces increment, back faces
	// decrement.
	StencilNonZero = newStencilPipeline("stencil_fill_nonzero", hal.StencilOperationIncrementWrap, hal.StencilOperationDecrementWrap)
	// StencilEvenOdd counts parity.
	StencilEvenOdd = newStencilPipeline("stencil_fill_even_odd", hal.StencilOperationInvert, hal.StencilOperationInvert)
	// Cover paints where the stencil is nonzero and resets it.
	Cover = newCoverPipeline("cover", colorFormat, &premulBlend)
	// ClipCover writes the clip attachment where the stencil is nonzero.
	ClipCover = newCoverPipeline("clip_cover", clipFormat, nil)
	// Textured draws image quads.
	Textured = newQuadPipeline("textured_quad", &premulBlend)
	// Analytic draws quads whose coverage is computed per fragment.
	Analytic = newQuadPipeline("analytic_quad", &premulBlend)
	// Clear replaces the color attachment.
	Clear = newQuadPipeline("clear", &replaceBlend)
)

// stencilPipeline returns the stencil pass for a fill rule.
func stencilPipeline(evenOdd bool) *Pipeline {
	if evenOdd {
		return StencilEvenOdd
	}
	return StencilNonZero
}
