package bubbleview

import "time"

// RegionKind classifies an overlay region.
type RegionKind uint8

const (
	RegionHUD          RegionKind = iota // fixed heads-up controls
	RegionSidePanel                      // side panel (e.g. the trials list)
	RegionCardDetail                     // expandable detail window inside a card
	RegionExternalLink                   // card affordance that opens external content
	RegionHyperlink                      // plain link
	RegionPassive                        // decorative card text; never claims pointers
)

func (k RegionKind) String() string {
	switch k {
	case RegionHUD:
		return "hud"
	case RegionSidePanel:
		return "side-panel"
	case RegionCardDetail:
		return "card-detail"
	case RegionExternalLink:
		return "external-link"
	case RegionHyperlink:
		return "hyperlink"
	case RegionPassive:
		return "passive"
	default:
		return "unknown"
	}
}

// interactive reports whether points over a region of this kind belong to
// the overlay rather than the scene.
func (k RegionKind) interactive() bool {
	return k != RegionPassive
}

// OverlayRegion is one element of the 2D overlay drawn above the chart.
type OverlayRegion struct {
	Name  string
	Kind  RegionKind
	Shape HitShape
	// Z orders overlapping regions; higher is on top. Ties go to the region
	// added last.
	Z      int
	Hidden bool

	disarmedUntil time.Duration
}

// OverlayClaim describes the region that owns a point.
type OverlayClaim struct {
	Region string
	Kind   RegionKind
	// Disarmed is true while the region ignores pointer input after being
	// shown. The event must be swallowed, not forwarded anywhere.
	Disarmed bool
}

// OverlayArbiter decides whether a surface point belongs to the 2D overlay
// instead of the 3D scene.
type OverlayArbiter struct {
	regions []*OverlayRegion
	disarm  time.Duration
}

// NewOverlayArbiter creates an arbiter. disarm is the window applied by Show.
func NewOverlayArbiter(disarm time.Duration) *OverlayArbiter {
	return &OverlayArbiter{disarm: disarm}
}

// AddRegion adds a region, replacing any existing region with the same name.
func (a *OverlayArbiter) AddRegion(r OverlayRegion) {
	a.RemoveRegion(r.Name)
	a.regions = append(a.regions, &r)
}

// RemoveRegion removes the named region. Unknown names are ignored.
func (a *OverlayArbiter) RemoveRegion(name string) {
	for i, r := range a.regions {
		if r.Name == name {
			a.regions = append(a.regions[:i], a.regions[i+1:]...)
			return
		}
	}
}

// Region returns a copy of the named region.
func (a *OverlayArbiter) Region(name string) (OverlayRegion, bool) {
	if r := a.find(name); r != nil {
		return *r, true
	}
	return OverlayRegion{}, false
}

// SetRegionShape moves or resizes a region, e.g. when its card follows a
// bubble. Reports whether the region exists.
func (a *OverlayArbiter) SetRegionShape(name string, shape HitShape) bool {
	r := a.find(name)
	if r == nil {
		return false
	}
	r.Shape = shape
	return true
}

// Show un-hides a region and disarms it for the configured window starting
// at now, so the pointer release that opened it cannot also activate it.
func (a *OverlayArbiter) Show(name string, now time.Duration) bool {
	r := a.find(name)
	if r == nil {
		return false
	}
	r.Hidden = false
	r.disarmedUntil = now + a.disarm
	return true
}

// Hide hides a region so it no longer claims points.
func (a *OverlayArbiter) Hide(name string) bool {
	r := a.find(name)
	if r == nil {
		return false
	}
	r.Hidden = true
	return true
}

// Disarm makes a region swallow pointer events until now+d.
func (a *OverlayArbiter) Disarm(name string, now, d time.Duration) bool {
	r := a.find(name)
	if r == nil {
		return false
	}
	r.disarmedUntil = now + d
	return true
}

func (a *OverlayArbiter) find(name string) *OverlayRegion {
	for _, r := range a.regions {
		if r.Name == name {
			return r
		}
	}
	return nil
}

// topmost returns the visible interactive region on top at (x, y), or nil.
// Passive regions are transparent to pointers, so whatever lies beneath them
// is found instead.
func (a *OverlayArbiter) topmost(x, y float64) *OverlayRegion {
	var top *OverlayRegion
	for _, r := range a.regions {
		if r.Hidden || !r.Kind.interactive() || r.Shape == nil || !r.Shape.Contains(x, y) {
			continue
		}
		if top == nil || r.Z >= top.Z {
			top = r
		}
	}
	return top
}

// IsOverlayAt reports whether the topmost region at (x, y) is interactive
// overlay, in which case the scene must not see the event.
func (a *OverlayArbiter) IsOverlayAt(x, y float64) bool {
	return a.topmost(x, y) != nil
}

// Claim is IsOverlayAt with the owning region and its disarm state at now.
func (a *OverlayArbiter) Claim(x, y float64, now time.Duration) (OverlayClaim, bool) {
	r := a.topmost(x, y)
	if r == nil {
		return OverlayClaim{}, false
	}
	return OverlayClaim{
		Region:   r.Name,
		Kind:     r.Kind,
		Disarmed: now < r.disarmedUntil,
	}, true
}
