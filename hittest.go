package bubbleview

import (
	"math"

	"cogentcore.org/core/math32"
)

// Target is a pickable circular entity positioned in world space. Targets
// are owned by the host's bubble collection; the core only reads them during
// a pick.
type Target struct {
	ID      int
	X, Y, Z float64
	// Radius is the world-space radius of the rendered sphere.
	Radius float64
	// Value is the per-target scalar shown by the hover readout.
	Value float64
	// Pickable must be true for the target to be considered at all.
	Pickable bool
}

// TargetSource supplies the current target roster. It is read once per pick
// and never retained.
type TargetSource interface {
	Targets() []Target
}

// TargetList is a TargetSource over a fixed slice.
type TargetList []Target

// Targets returns the list itself.
func (l TargetList) Targets() []Target { return l }

// TargetFunc adapts a function to TargetSource.
type TargetFunc func() []Target

// Targets calls f.
func (f TargetFunc) Targets() []Target { return f() }

// pickPhase records which phase of Pick produced a result.
type pickPhase uint8

const (
	pickNone     pickPhase = iota
	pickRay                // exact ray/sphere intersection
	pickFallback           // screen-radius proximity
)

// HitTester resolves a surface point to the target under it.
type HitTester struct {
	proj   *ScreenProjector
	margin float64
}

// NewHitTester creates a HitTester. margin scales target screen radii in the
// fallback phase (1.12 gives a 12% allowance for finger and cursor slop).
func NewHitTester(proj *ScreenProjector, margin float64) *HitTester {
	return &HitTester{proj: proj, margin: margin}
}

// Pick returns the target at surface point (sx, sy).
//
// An exact ray cast runs first and the intersected sphere nearest the camera
// wins. Only if the ray misses everything does the fallback run: each
// target's projected center is tested against its screen radius times the
// margin, and the closest qualifying center wins. The fallback exists
// because the visible edge of a scaled, anti-aliased circle can lie just
// outside its geometry.
func (h *HitTester) Pick(sx, sy float64, targets []Target) (Target, bool) {
	t, phase := h.pick(sx, sy, targets)
	return t, phase != pickNone
}

func (h *HitTester) pick(sx, sy float64, targets []Target) (Target, pickPhase) {
	if len(targets) == 0 {
		return Target{}, pickNone
	}
	if i := h.pickRay(sx, sy, targets); i >= 0 {
		return targets[i], pickRay
	}
	if i := h.pickScreenDistance(sx, sy, targets); i >= 0 {
		return targets[i], pickFallback
	}
	return Target{}, pickNone
}

// pickRay returns the index of the nearest target the camera ray through
// (sx, sy) intersects, or -1.
func (h *HitTester) pickRay(sx, sy float64, targets []Target) int {
	ray := h.proj.ScreenToWorldRay(sx, sy)
	best := -1
	bestDist := float32(math.MaxFloat32)
	for i := range targets {
		t := &targets[i]
		if !t.Pickable || t.Radius <= 0 {
			continue
		}
		sphere := math32.Sphere{
			Center: math32.Vec3(float32(t.X), float32(t.Y), float32(t.Z)),
			Radius: float32(t.Radius),
		}
		pt, ok := ray.IntersectSphere(sphere)
		if !ok {
			continue
		}
		if d := pt.DistanceTo(ray.Origin); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// pickScreenDistance returns the index of the target whose projected center
// is closest to (sx, sy) among those within their padded screen radius, or -1.
func (h *HitTester) pickScreenDistance(sx, sy float64, targets []Target) int {
	ppu := h.proj.PixelsPerWorldUnit()
	best := -1
	bestD2 := math.Inf(1)
	for i := range targets {
		t := &targets[i]
		if !t.Pickable {
			continue
		}
		cx, cy := h.proj.WorldToScreen(t.X, t.Y, t.Z)
		dx := sx - cx
		dy := sy - cy
		d2 := dx*dx + dy*dy

		r := t.Radius * ppu * h.margin
		if d2 <= r*r && d2 < bestD2 {
			best = i
			bestD2 = d2
		}
	}
	return best
}
