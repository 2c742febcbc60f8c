package bubbleview

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Pointer ids: the mouse is pointer 0, touch i is pointer touchPointerBase+i.
const (
	mousePointerID   = 0
	touchPointerBase = 1
)

// deviceSource produces the raw pointer events of one frame.
type deviceSource interface {
	poll(now time.Duration, buf []PointerEvent) []PointerEvent
}

// Input turns device state into a stream of PointerEvents, one frame at a
// time. Injected frames take priority over the device: while any are queued,
// real input is not read.
type Input struct {
	src         deviceSource
	injectQueue [][]PointerEvent
	now         time.Duration
	buf         []PointerEvent
}

func newInput(src deviceSource) *Input {
	return &Input{src: src}
}

// Now returns the input clock: the sum of all frame durations so far.
func (in *Input) Now() time.Duration {
	return in.now
}

// frame advances the clock by dt and returns this frame's events, stamped
// with the new time. The returned slice is reused by the next call.
func (in *Input) frame(dt time.Duration) []PointerEvent {
	in.now += dt
	in.buf = in.buf[:0]

	if len(in.injectQueue) > 0 {
		evts := in.injectQueue[0]
		copy(in.injectQueue, in.injectQueue[1:])
		in.injectQueue[len(in.injectQueue)-1] = nil
		in.injectQueue = in.injectQueue[:len(in.injectQueue)-1]
		for _, ev := range evts {
			ev.Time = in.now
			in.buf = append(in.buf, ev)
		}
		return in.buf
	}

	if in.src != nil {
		in.buf = in.src.poll(in.now, in.buf)
	}
	return in.buf
}

// --- Ebitengine device source ---

var ebitenButtons = [...]struct {
	eb  ebiten.MouseButton
	btn MouseButton
}{
	{ebiten.MouseButtonLeft, MouseButtonLeft},
	{ebiten.MouseButtonMiddle, MouseButtonMiddle},
	{ebiten.MouseButtonRight, MouseButtonRight},
}

// ebitenSource reads mouse and touch state from Ebitengine and reports the
// differences since the previous frame as events.
type ebitenSource struct {
	mouseX, mouseY float64
	mouseSeen      bool
	unfocused      bool

	touchIDs []ebiten.TouchID
	touchPos map[ebiten.TouchID]Vec2
}

func newEbitenSource() *ebitenSource {
	return &ebitenSource{touchPos: make(map[ebiten.TouchID]Vec2)}
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

func (e *ebitenSource) poll(now time.Duration, buf []PointerEvent) []PointerEvent {
	// Losing focus is the closest Ebitengine gets to pointer-leave.
	if !ebiten.IsFocused() {
		if !e.unfocused {
			e.unfocused = true
			buf = append(buf, PointerEvent{Type: PointerLeave, Kind: PointerMouse, PointerID: mousePointerID, Time: now})
		}
		return buf
	}
	e.unfocused = false

	mods := readModifiers()
	buf = e.pollMouse(now, mods, buf)
	buf = e.pollTouches(now, mods, buf)
	return buf
}

func (e *ebitenSource) pollMouse(now time.Duration, mods KeyModifiers, buf []PointerEvent) []PointerEvent {
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	base := PointerEvent{Kind: PointerMouse, PointerID: mousePointerID, X: x, Y: y, Modifiers: mods, Time: now}

	if !e.mouseSeen || x != e.mouseX || y != e.mouseY {
		e.mouseSeen = true
		e.mouseX, e.mouseY = x, y
		ev := base
		ev.Type = PointerMove
		buf = append(buf, ev)
	}
	for _, b := range ebitenButtons {
		if inpututil.IsMouseButtonJustPressed(b.eb) {
			ev := base
			ev.Type = PointerDown
			ev.Button = b.btn
			buf = append(buf, ev)
		}
	}
	for _, b := range ebitenButtons {
		if inpututil.IsMouseButtonJustReleased(b.eb) {
			ev := base
			ev.Type = PointerUp
			ev.Button = b.btn
			buf = append(buf, ev)
		}
	}
	return buf
}

func (e *ebitenSource) pollTouches(now time.Duration, mods KeyModifiers, buf []PointerEvent) []PointerEvent {
	touch := func(t PointerEventType, tid ebiten.TouchID, x, y float64) PointerEvent {
		return PointerEvent{
			Type: t, Kind: PointerTouch, PointerID: touchPointerBase + int(tid),
			X: x, Y: y, Modifiers: mods, Time: now,
		}
	}

	e.touchIDs = inpututil.AppendJustPressedTouchIDs(e.touchIDs[:0])
	for _, tid := range e.touchIDs {
		tx, ty := ebiten.TouchPosition(tid)
		p := Vec2{X: float64(tx), Y: float64(ty)}
		e.touchPos[tid] = p
		buf = append(buf, touch(PointerDown, tid, p.X, p.Y))
	}

	e.touchIDs = ebiten.AppendTouchIDs(e.touchIDs[:0])
	for _, tid := range e.touchIDs {
		prev, known := e.touchPos[tid]
		if !known {
			continue
		}
		tx, ty := ebiten.TouchPosition(tid)
		p := Vec2{X: float64(tx), Y: float64(ty)}
		if p != prev {
			e.touchPos[tid] = p
			buf = append(buf, touch(PointerMove, tid, p.X, p.Y))
		}
	}

	e.touchIDs = inpututil.AppendJustReleasedTouchIDs(e.touchIDs[:0])
	for _, tid := range e.touchIDs {
		tx, ty := inpututil.TouchPositionInPreviousTick(tid)
		delete(e.touchPos, tid)
		buf = append(buf, touch(PointerUp, tid, float64(tx), float64(ty)))
	}
	return buf
}
