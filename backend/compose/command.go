package compose

import "github.com/gogpu/vg"

// CommandType identifies the type of a command.
type CommandType uint8

const (
	// State commands
	CmdSave      CommandType = iota // Push transform and clip
	CmdRestore                      // Pop transform and clip
	CmdTransform                    // Post-multiply the transform
	CmdClip                         // Intersect the clip with a shape

	// Drawing commands
	CmdClear       // Fill the surface
	CmdClearRegion // Fill a region in base coordinates
	CmdFill        // Fill a shape
	CmdStroke      // Stroke a shape
	CmdDrawText    // Draw a text layout
	CmdDrawImage   // Draw part of an image
	CmdBlurredRect // Draw a blurred rectangle
)

var commandTypeNames = [...]string{
	CmdSave:        "Save",
	CmdRestore:     "Restore",
	CmdTransform:   "Transform",
	CmdClip:        "Clip",
	CmdClear:       "Clear",
	CmdClearRegion: "ClearRegion",
	CmdFill:        "Fill",
	CmdStroke:      "Stroke",
	CmdDrawText:    "DrawText",
	CmdDrawImage:   "DrawImage",
	CmdBlurredRect: "BlurredRect",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is one recorded operation of a Scene.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
}

// ShapeRef references a shape in the scene's resource pool.
type ShapeRef uint32

// BrushRef references a brush in the scene's resource pool.
type BrushRef uint32

// ImageRef references an image in the scene's resource pool.
type ImageRef uint32

// LayoutRef references a text layout in the scene's resource pool.
type LayoutRef uint32

// SaveCommand pushes the transform and clip.
type SaveCommand struct{}

// Type implements Command.
func (SaveCommand) Type() CommandType { return CmdSave }

// RestoreCommand pops the state pushed by the matching SaveCommand.
type RestoreCommand struct{}

// Type implements Command.
func (RestoreCommand) Type() CommandType { return CmdRestore }

// TransformCommand post-multiplies the current transform by Affine.
type TransformCommand struct {
	Affine vg.Affine
}

// Type implements Command.
func (TransformCommand) Type() CommandType { return CmdTransform }

// ClipCommand intersects the clip with a shape.
type ClipCommand struct {
	Shape ShapeRef
}

// Type implements Command.
func (ClipCommand) Type() CommandType { return CmdClip }

// ClearCommand fills the whole surface, ignoring transform and clip.
type ClearCommand struct {
	Color vg.Color
}

// Type implements Command.
func (ClearCommand) Type() CommandType { return CmdClear }

// ClearRegionCommand fills Region, in base coordinates, ignoring
// transform and clip.
type ClearRegionCommand struct {
	Region vg.Rect
	Color  vg.Color
}

// Type implements Command.
func (ClearRegionCommand) Type() CommandType { return CmdClearRegion }

// FillCommand fills a shape with a brush.
type FillCommand struct {
	Shape ShapeRef
	Brush BrushRef
	Rule  vg.FillRule
}

// Type implements Command.
func (FillCommand) Type() CommandType { return CmdFill }

// StrokeCommand strokes a shape. A zero Width is a hairline and is
// resolved by the replay target.
type StrokeCommand struct {
	Shape ShapeRef
	Brush BrushRef
	Width float64
	Style vg.StrokeStyle
}

// Type implements Command.
func (StrokeCommand) Type() CommandType { return CmdStroke }

// DrawTextCommand draws a layout with its top-left corner at Pos.
type DrawTextCommand struct {
	Layout LayoutRef
	Pos    vg.Point
}

// Type implements Command.
func (DrawTextCommand) Type() CommandType { return CmdDrawText }

// DrawImageCommand draws the Src part of an image into Dst.
type DrawImageCommand struct {
	Image  ImageRef
	Src    vg.Rect
	Dst    vg.Rect
	Interp vg.InterpolationMode
}

// Type implements Command.
func (DrawImageCommand) Type() CommandType { return CmdDrawImage }

// BlurredRectCommand draws a rectangle blurred by a Gaussian.
type BlurredRectCommand struct {
	Rect   vg.Rect
	Radius float64
	Brush  BrushRef
}

// Type implements Command.
func (BlurredRectCommand) Type() CommandType { return CmdBlurredRect }
