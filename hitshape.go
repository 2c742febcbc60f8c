package bubbleview

import "math"

// HitShape is a screen-space area claimed by an overlay region.
type HitShape interface {
	Contains(x, y float64) bool
}

// HitRect is a screen rectangle anchored at (X, Y). A negative Width or
// Height extends left or up from the anchor. A zero-area rect, such as the
// placeholder of a card not yet placed, claims no point.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) falls within the rectangle, edges included.
func (r HitRect) Contains(x, y float64) bool {
	if r.Width == 0 || r.Height == 0 {
		return false
	}
	x0, x1 := min(r.X, r.X+r.Width), max(r.X, r.X+r.Width)
	y0, y1 := min(r.Y, r.Y+r.Height), max(r.Y, r.Y+r.Height)
	return x0 <= x && x <= x1 && y0 <= y && y <= y1
}

// HitCircle is a round screen affordance such as a card's link button.
// A circle with no positive radius claims no point.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) is within Radius pixels of the center.
func (c HitCircle) Contains(x, y float64) bool {
	if c.Radius <= 0 {
		return false
	}
	return math.Hypot(x-c.CenterX, y-c.CenterY) <= c.Radius
}

// HitPolygon is a simple polygon in surface pixels, convex or not, in
// either winding order. Card callouts with a pointer tab are the usual case.
type HitPolygon struct {
	Points []Vec2
}

// Contains reports whether (x, y) lies inside the polygon by the even-odd
// rule. Points exactly on an edge count as inside.
func (p HitPolygon) Contains(x, y float64) bool {
	n := len(p.Points)
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := p.Points[i], p.Points[j]
		if onSegment(a, b, x, y) {
			return true
		}
		if (a.Y > y) != (b.Y > y) {
			xCross := a.X + (y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if x < xCross {
				inside = !inside
			}
		}
	}
	return inside
}

func onSegment(a, b Vec2, x, y float64) bool {
	cross := (b.X-a.X)*(y-a.Y) - (b.Y-a.Y)*(x-a.X)
	if cross != 0 {
		return false
	}
	return x >= min(a.X, b.X) && x <= max(a.X, b.X) &&
		y >= min(a.Y, b.Y) && y <= max(a.Y, b.Y)
}

// HitUnion claims a point when any of its parts does, e.g. a side panel
// together with its collapse handle.
type HitUnion []HitShape

// Contains reports whether any non-nil part contains (x, y).
func (u HitUnion) Contains(x, y float64) bool {
	for _, s := range u {
		if s != nil && s.Contains(x, y) {
			return true
		}
	}
	return false
}
