//go:build !(js && wasm)

package web

// defaultCanvasFactory is nil outside the browser; devices need
// WithCanvasFactory.
var defaultCanvasFactory CanvasFactory
