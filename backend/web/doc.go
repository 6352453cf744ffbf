// Package web is the browser canvas backend.
//
// A RenderContext translates drawing calls onto a Canvas2D, the subset
// of CanvasRenderingContext2D the backend needs. In js/wasm builds
// NewJSCanvas binds it to a <canvas> element and NewDevice creates
// detached canvases; other builds pass their own implementation with
// WithCanvasFactory or NewRenderContext.
//
// The context keeps the stroke attributes the canvas holds at each save
// level and only sends the ones that change. Clear and ClearRegion
// unwind the canvas state, clear in device pixels and replay the saved
// transforms and clips.
//
// Text is measured and drawn by the canvas. Text and TextLayout wrap
// lines at Unicode line break opportunities and split runs where the
// text color changes; LoadFont is not supported, fonts come from CSS.
//
// CaptureImageArea and gradient brushes in BlurredRect report
// vg.ErrNotSupported.
package web
