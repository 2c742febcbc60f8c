package bubbleview

import "cogentcore.org/core/math32"

// ScreenProjector maps between world space and surface pixels for the
// orthographic camera described by a Viewport. It holds no state of its own:
// every call reads the viewport as it is now, so results are never stale
// across zoom changes.
type ScreenProjector struct {
	view    *Viewport
	cameraZ float64
}

// NewScreenProjector creates a projector over view. cameraZ is the Z
// position rays are cast from.
func NewScreenProjector(view *Viewport, cameraZ float64) *ScreenProjector {
	return &ScreenProjector{view: view, cameraZ: cameraZ}
}

// surfaceSize returns the surface dimensions with degenerate sides as 1px.
func (p *ScreenProjector) surfaceSize() (w, h float64) {
	s := p.view.surface
	w, h = s.Width, s.Height
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return w, h
}

// WorldToScreen converts a world position to surface pixels. Z does not
// affect the result under an orthographic camera.
func (p *ScreenProjector) WorldToScreen(x, y, _ float64) (sx, sy float64) {
	f := p.view.Frustum()
	w, h := p.surfaceSize()
	s := p.view.surface
	sx = s.X + (x-f.Left)/(f.Right-f.Left)*w
	sy = s.Y + (f.Top-y)/(f.Top-f.Bottom)*h
	return sx, sy
}

// ScreenToWorld converts surface pixels to a world position on the z = 0 plane.
func (p *ScreenProjector) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	f := p.view.Frustum()
	w, h := p.surfaceSize()
	s := p.view.surface
	wx = f.Left + (sx-s.X)/w*(f.Right-f.Left)
	wy = f.Top - (sy-s.Y)/h*(f.Top-f.Bottom)
	return wx, wy
}

// ScreenToWorldRay returns the picking ray through a surface point: it starts
// on the camera plane and points straight into the scene.
func (p *ScreenProjector) ScreenToWorldRay(sx, sy float64) math32.Ray {
	wx, wy := p.ScreenToWorld(sx, sy)
	return math32.Ray{
		Origin: math32.Vec3(float32(wx), float32(wy), float32(p.cameraZ)),
		Dir:    math32.Vec3(0, 0, -1),
	}
}

// PixelsPerWorldUnit returns how many surface pixels one world unit spans
// vertically at the current zoom.
func (p *ScreenProjector) PixelsPerWorldUnit() float64 {
	_, h := p.surfaceSize()
	return h * p.view.zoom / p.view.baseHeight
}
