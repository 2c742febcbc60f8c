package bubbleview

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for the view center.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Frustum is the world-space rectangle an orthographic camera must cover to
// show the current view. Top is greater than Bottom (world Y points up).
type Frustum struct {
	Left, Right, Top, Bottom float64
}

// ViewportState is the payload of viewport change notifications.
type ViewportState struct {
	Zoom             float64
	CenterX, CenterY float64
	Frustum          Frustum
}

// Viewport owns the zoom and pan state of the chart and the host surface it
// is shown on. All mutations notify OnChange listeners synchronously, so a
// hit test issued after a mutation in the same event sees the new view.
type Viewport struct {
	zoom    float64
	centerX float64
	centerY float64

	// surface is the screen-space rectangle the chart renders into.
	surface Rect

	baseHeight float64
	minZoom    float64
	maxZoom    float64

	listeners   handlerList[ViewportState]
	scrollTween *scrollAnim
}

// NewViewport creates a Viewport at zoom 1 centered on the origin.
func NewViewport(cfg Config, surface Rect) *Viewport {
	return &Viewport{
		zoom:       1,
		surface:    surface,
		baseHeight: cfg.BaseWorldHeight,
		minZoom:    cfg.MinZoom,
		maxZoom:    cfg.MaxZoom,
	}
}

// configure applies new view limits, clamping the current zoom into range.
func (v *Viewport) configure(cfg Config) {
	v.baseHeight = cfg.BaseWorldHeight
	v.minZoom = cfg.MinZoom
	v.maxZoom = cfg.MaxZoom
	v.zoom = clamp(v.zoom, v.minZoom, v.maxZoom)
	v.notify()
}

// Zoom returns the current zoom factor (1 = default, >1 = zoomed in).
func (v *Viewport) Zoom() float64 { return v.zoom }

// Center returns the world-space point at the middle of the surface.
func (v *Viewport) Center() (x, y float64) { return v.centerX, v.centerY }

// Surface returns the screen-space rectangle of the host surface.
func (v *Viewport) Surface() Rect { return v.surface }

// BaseHeight returns the visible world height at zoom 1.
func (v *Viewport) BaseHeight() float64 { return v.baseHeight }

// ZoomRange returns the zoom clamp bounds.
func (v *Viewport) ZoomRange() (lo, hi float64) { return v.minZoom, v.maxZoom }

// aspect is width over height of the surface. Degenerate surfaces count as 1px.
func (v *Viewport) aspect() float64 {
	w, h := v.surface.Width, v.surface.Height
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return w / h
}

// VisibleHeight returns the world height currently in view.
func (v *Viewport) VisibleHeight() float64 {
	return v.baseHeight / v.zoom
}

// VisibleWidth returns the world width currently in view.
func (v *Viewport) VisibleWidth() float64 {
	return v.VisibleHeight() * v.aspect()
}

// Frustum returns the world-space bounds of the current view.
func (v *Viewport) Frustum() Frustum {
	halfH := v.VisibleHeight() / 2
	halfW := v.VisibleWidth() / 2
	return Frustum{
		Left:   v.centerX - halfW,
		Right:  v.centerX + halfW,
		Top:    v.centerY + halfH,
		Bottom: v.centerY - halfH,
	}
}

// State returns a snapshot of the current view.
func (v *Viewport) State() ViewportState {
	return ViewportState{
		Zoom:    v.zoom,
		CenterX: v.centerX,
		CenterY: v.centerY,
		Frustum: v.Frustum(),
	}
}

// OnChange registers a callback invoked after every mutation. The projection
// updater and any axis-scale recomputation hang off this.
func (v *Viewport) OnChange(fn func(ViewportState)) CallbackHandle {
	return v.listeners.add(fn)
}

func (v *Viewport) notify() {
	if v.listeners.len() == 0 {
		return
	}
	v.listeners.fire(v.State())
}

// Pan moves the center by a screen-space pixel delta measured on a surface
// of width x height pixels. Content follows the pointer: dragging right moves
// the center left, dragging down moves it up (world Y is up). A running
// ScrollTo animation is cancelled.
func (v *Viewport) Pan(dxPx, dyPx, widthPx, heightPx float64) {
	v.scrollTween = nil
	if widthPx <= 0 {
		widthPx = 1
	}
	if heightPx <= 0 {
		heightPx = 1
	}
	viewH := v.baseHeight / v.zoom
	viewW := viewH * (widthPx / heightPx)

	v.centerX += -dxPx / widthPx * viewW
	v.centerY += dyPx / heightPx * viewH
	v.notify()
}

// ZoomBy multiplies the zoom by factor and clamps it to the zoom range.
func (v *Viewport) ZoomBy(factor float64) {
	v.SetZoom(v.zoom * factor)
}

// SetZoom sets an absolute zoom, clamped to the zoom range. A running
// ScrollTo animation is cancelled.
func (v *Viewport) SetZoom(z float64) {
	v.scrollTween = nil
	v.zoom = clamp(z, v.minZoom, v.maxZoom)
	v.notify()
}

// Reset restores zoom 1 and centers the view on the origin. A running
// ScrollTo animation is cancelled.
func (v *Viewport) Reset() {
	v.scrollTween = nil
	v.zoom = 1
	v.centerX = 0
	v.centerY = 0
	v.notify()
}

// SetSurface updates the host surface rectangle (e.g. on window resize).
func (v *Viewport) SetSurface(r Rect) {
	if r == v.surface {
		return
	}
	v.surface = r
	v.notify()
}

// ScrollTo animates the view center to the given world position over
// duration seconds. Advance it with Update.
func (v *Viewport) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	if easeFn == nil {
		easeFn = ease.OutQuad
	}
	v.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(v.centerX), float32(x), duration, easeFn),
		tweenY: gween.New(float32(v.centerY), float32(y), duration, easeFn),
	}
}

// Scrolling reports whether a ScrollTo animation is in progress.
func (v *Viewport) Scrolling() bool {
	return v.scrollTween != nil
}

// Update advances a running ScrollTo animation by dt seconds.
func (v *Viewport) Update(dt float32) {
	st := v.scrollTween
	if st == nil {
		return
	}
	if !st.doneX {
		val, done := st.tweenX.Update(dt)
		v.centerX = float64(val)
		st.doneX = done
	}
	if !st.doneY {
		val, done := st.tweenY.Update(dt)
		v.centerY = float64(val)
		st.doneY = done
	}
	if st.doneX && st.doneY {
		v.scrollTween = nil
	}
	v.notify()
}
