package gpu

import (
	"context"
	"image"
)

// Executor runs encoded frames against a color target. A GPU binding
// uploads the vertex data, builds pipelines from the Pipeline
// descriptors and reads the target back; SoftwareExecutor does the
// same work on the CPU.
//
// Execute loads the current content of target, runs the draws in order
// and stores the resolved result back into target. It must not retain
// f or target after returning.
type Executor interface {
	Execute(ctx context.Context, f *Frame, target *image.RGBA) error
	Close() error
}
