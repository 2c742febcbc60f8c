package bubbleview

import "time"

// Vec2 is a 2D vector used for screen positions and polygon points.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// PointerKind identifies the device that produced a pointer event. It is
// carried per event rather than detected once, since a touch screen with a
// mouse plugged in produces both.
type PointerKind uint8

const (
	PointerMouse PointerKind = iota // fine pointer: mouse or trackpad
	PointerTouch                    // coarse pointer: finger
)

func (k PointerKind) String() string {
	switch k {
	case PointerMouse:
		return "mouse"
	case PointerTouch:
		return "touch"
	default:
		return "unknown"
	}
}

// PointerEventType identifies a raw pointer event.
type PointerEventType uint8

const (
	PointerDown   PointerEventType = iota // button pressed or finger landed
	PointerMove                           // position changed
	PointerUp                             // button released or finger lifted
	PointerCancel                         // device reported the pointer lost
	PointerLeave                          // pointer left the surface or window lost focus
)

func (t PointerEventType) String() string {
	switch t {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	case PointerCancel:
		return "cancel"
	case PointerLeave:
		return "leave"
	default:
		return "unknown"
	}
}

// MouseButton identifies a mouse button. Values match the DOM/Ebitengine
// numbering: 0 primary, 1 middle, 2 secondary.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = 0 // primary (left) mouse button
	MouseButtonMiddle MouseButton = 1 // middle mouse button (scroll wheel click)
	MouseButtonRight  MouseButton = 2 // secondary (right) mouse button
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// PointerEvent is one raw event from the host. Time is monotonic time since
// an arbitrary epoch; only differences between events are meaningful.
type PointerEvent struct {
	Type      PointerEventType
	Kind      PointerKind
	PointerID int
	X, Y      float64
	Button    MouseButton
	Modifiers KeyModifiers
	Time      time.Duration
}

// GestureType identifies a semantic gesture produced by the recognizer.
type GestureType uint8

const (
	GestureHover       GestureType = iota // hovered target changed (mouse only)
	GestureClick                          // mouse click resolved against a target
	GestureTap                            // single touch tap
	GestureDoubleTap                      // touch double-tap on the background
	GestureMiddleClick                    // quick middle-button click
	GesturePanStart                       // viewport started following a pointer
	GesturePanMove                        // viewport moved by a pan delta
	GesturePanEnd                         // pan finished
	GesturePinchStart                     // two fingers down
	GesturePinchMove                      // zoom recomputed from finger distance
	GesturePinchEnd                       // one of the pinch fingers lifted
)

func (g GestureType) String() string {
	switch g {
	case GestureHover:
		return "hover"
	case GestureClick:
		return "click"
	case GestureTap:
		return "tap"
	case GestureDoubleTap:
		return "double-tap"
	case GestureMiddleClick:
		return "middle-click"
	case GesturePanStart:
		return "pan-start"
	case GesturePanMove:
		return "pan-move"
	case GesturePanEnd:
		return "pan-end"
	case GesturePinchStart:
		return "pinch-start"
	case GesturePinchMove:
		return "pinch-move"
	case GesturePinchEnd:
		return "pinch-end"
	default:
		return "unknown"
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
