package bubbleview

import (
	"math"
	"time"
)

// pointerTrack is the state of one pointer between down and up.
type pointerTrack struct {
	kind    PointerKind
	originX float64
	originY float64
	lastX   float64
	lastY   float64
	downAt  time.Duration
	// moved is set once the pointer strays more than TapMovePx from origin.
	moved bool
	// pinched marks fingers that took part in a pinch; they never tap.
	pinched bool
}

func newPointerTrack(ev PointerEvent) *pointerTrack {
	return &pointerTrack{
		kind:    ev.Kind,
		originX: ev.X,
		originY: ev.Y,
		lastX:   ev.X,
		lastY:   ev.Y,
		downAt:  ev.Time,
	}
}

// distFromOrigin2 is the squared distance from the down position to (x, y).
func (t *pointerTrack) distFromOrigin2(x, y float64) float64 {
	dx := x - t.originX
	dy := y - t.originY
	return dx*dx + dy*dy
}

// sessionKind tags the single active gesture session.
type sessionKind uint8

const (
	sessionNone sessionKind = iota
	sessionPanning
	sessionPinching
	sessionClickCandidate
)

func (k sessionKind) String() string {
	switch k {
	case sessionNone:
		return "none"
	case sessionPanning:
		return "panning"
	case sessionPinching:
		return "pinching"
	case sessionClickCandidate:
		return "click-candidate"
	default:
		return "unknown"
	}
}

// gestureSession is the one high-level interaction in progress. Only the
// fields of the current kind are meaningful; the zero value is sessionNone.
type gestureSession struct {
	kind sessionKind

	// pointerID owns panning and click-candidate sessions; for the mouse,
	// button is the one whose release ends them.
	pointerID int
	button    MouseButton

	// Panning: started is false until a deferred pan (single touch or
	// middle button) moves past its threshold.
	started bool

	// Pinching. Zoom is always recomputed from these, never accumulated.
	pointer0      int
	pointer1      int
	startDistance float64
	startZoom     float64

	// ClickCandidate: the target under the pointer at down, if any.
	target    Target
	hasTarget bool
}

// involves reports whether pointer id takes part in the session.
func (s *gestureSession) involves(id int) bool {
	switch s.kind {
	case sessionPanning, sessionClickCandidate:
		return s.pointerID == id
	case sessionPinching:
		return s.pointer0 == id || s.pointer1 == id
	default:
		return false
	}
}

// tapMemory remembers the last qualifying tap for double-tap detection.
type tapMemory struct {
	valid bool
	at    time.Duration
	x, y  float64
}

// isDouble reports whether a tap at (x, y, at) follows the remembered one
// closely enough in time and space.
func (m *tapMemory) isDouble(x, y float64, at time.Duration, window time.Duration, maxDist float64) bool {
	if !m.valid {
		return false
	}
	dx := x - m.x
	dy := y - m.y
	return at-m.at < window && dx*dx+dy*dy < maxDist*maxDist
}

func (m *tapMemory) remember(x, y float64, at time.Duration) {
	m.valid = true
	m.at = at
	m.x = x
	m.y = y
}

func distance(x0, y0, x1, y1 float64) float64 {
	return math.Hypot(x1-x0, y1-y0)
}
