package bubbleview

import (
	"sort"
	"time"

	"go.uber.org/zap"
)

// TargetAction is what a click or tap on a target asks the host to do.
type TargetAction uint8

const (
	ActionPop          TargetAction = iota // pop and remove the bubble
	ActionToggleDetail                     // expand or collapse the bubble's detail card
)

func (a TargetAction) String() string {
	switch a {
	case ActionPop:
		return "pop"
	case ActionToggleDetail:
		return "toggle-detail"
	default:
		return "unknown"
	}
}

// TargetActionContext carries a primary action on a target.
type TargetActionContext struct {
	Target    Target
	Action    TargetAction
	Gesture   GestureType // GestureClick or GestureTap
	Kind      PointerKind
	PointerID int
	X, Y      float64
}

// BackgroundContext carries a view-reset request: a double-tap on empty
// space or a quick middle click.
type BackgroundContext struct {
	Gesture   GestureType // GestureDoubleTap or GestureMiddleClick
	Kind      PointerKind
	PointerID int
	X, Y      float64
}

// HoverContext carries a change of the hovered target.
type HoverContext struct {
	TargetID  int
	HasTarget bool
	Readout   HoverReadout
}

// OverlayContext carries a pointer event that landed on an armed overlay region.
type OverlayContext struct {
	Region string
	Kind   RegionKind
	Event  PointerEvent
}

// GestureEvent is the uniform record of every semantic gesture, delivered to
// OnGesture handlers and to the EventSink.
type GestureEvent struct {
	Type      GestureType
	Kind      PointerKind
	PointerID int
	X, Y      float64
	TargetID  int
	HasTarget bool
	// DeltaX and DeltaY are the screen delta of a GesturePanMove.
	DeltaX, DeltaY float64
	// Scale is the finger distance over the start distance of a pinch.
	Scale float64
	// View state after the gesture was applied.
	Zoom             float64
	CenterX, CenterY float64
	Time             time.Duration
}

// EventSink receives every GestureEvent. See the ecs sub-package for a
// Donburi-backed implementation.
type EventSink interface {
	EmitGesture(event GestureEvent)
}

type recognizerHandlers struct {
	gesture      handlerList[GestureEvent]
	targetAction handlerList[TargetActionContext]
	background   handlerList[BackgroundContext]
	hover        handlerList[HoverContext]
	overlay      handlerList[OverlayContext]
}

// GestureRecognizer turns raw mouse and touch events into hover, click, tap,
// double-tap, pan and pinch gestures. Both device kinds run through the same
// transition code so thresholds and tie-breaks cannot diverge.
//
// It is not safe for concurrent use: feed it from the one goroutine that
// owns the Viewport.
type GestureRecognizer struct {
	cfg     Config
	panMods KeyModifiers

	view    *Viewport
	proj    *ScreenProjector
	hits    *HitTester
	overlay *OverlayArbiter
	targets TargetSource

	log  *zap.Logger
	sink EventSink

	tracks  map[int]*pointerTrack
	session gestureSession
	taps    tapMemory

	hovering bool
	hoverID  int
	readout  HoverReadout

	detailMode bool
	handlers   recognizerHandlers
}

// NewGestureRecognizer wires a recognizer to its collaborators. targets may
// be nil, in which case nothing is ever picked.
func NewGestureRecognizer(cfg Config, view *Viewport, proj *ScreenProjector, hits *HitTester,
	overlay *OverlayArbiter, targets TargetSource) *GestureRecognizer {
	mods, err := ParseModifiers(cfg.PanModifiers)
	if err != nil {
		mods = ModAlt
	}
	return &GestureRecognizer{
		cfg:        cfg,
		panMods:    mods,
		view:       view,
		proj:       proj,
		hits:       hits,
		overlay:    overlay,
		targets:    targets,
		log:        zap.NewNop(),
		tracks:     make(map[int]*pointerTrack),
		detailMode: cfg.DetailMode,
	}
}

// configure swaps thresholds. Sessions in flight keep running under the new
// values.
func (r *GestureRecognizer) configure(cfg Config) {
	mods, err := ParseModifiers(cfg.PanModifiers)
	if err != nil {
		mods = ModAlt
	}
	r.cfg = cfg
	r.panMods = mods
	r.detailMode = cfg.DetailMode
}

// SetLogger sets the logger used for session diagnostics. nil disables logging.
func (r *GestureRecognizer) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	r.log = l
}

// SetEventSink sets the optional gesture sink.
func (r *GestureRecognizer) SetEventSink(sink EventSink) {
	r.sink = sink
}

// SetTargets replaces the target roster source.
func (r *GestureRecognizer) SetTargets(targets TargetSource) {
	r.targets = targets
}

// SetDetailMode chooses what a primary action does: toggle the detail card
// (true) or pop the bubble (false).
func (r *GestureRecognizer) SetDetailMode(on bool) {
	r.detailMode = on
}

// DetailMode reports the current primary-action mode.
func (r *GestureRecognizer) DetailMode() bool {
	return r.detailMode
}

// Readout returns the hover readout as of the last event.
func (r *GestureRecognizer) Readout() HoverReadout {
	return r.readout
}

// ActivePointers returns the number of tracked pointers.
func (r *GestureRecognizer) ActivePointers() int {
	return len(r.tracks)
}

// Panning reports whether a pan session is active.
func (r *GestureRecognizer) Panning() bool {
	return r.session.kind == sessionPanning
}

// Pinching reports whether a pinch session is active.
func (r *GestureRecognizer) Pinching() bool {
	return r.session.kind == sessionPinching
}

// --- Registration ---

// OnGesture registers a callback for every semantic gesture.
func (r *GestureRecognizer) OnGesture(fn func(GestureEvent)) CallbackHandle {
	return r.handlers.gesture.add(fn)
}

// OnTargetAction registers a callback for clicks and taps that resolve to a target.
func (r *GestureRecognizer) OnTargetAction(fn func(TargetActionContext)) CallbackHandle {
	return r.handlers.targetAction.add(fn)
}

// OnBackgroundDoubleAction registers a callback fired after the view is reset
// by a background double-tap or a quick middle click.
func (r *GestureRecognizer) OnBackgroundDoubleAction(fn func(BackgroundContext)) CallbackHandle {
	return r.handlers.background.add(fn)
}

// OnHoverChanged registers a callback fired when the hovered target changes.
func (r *GestureRecognizer) OnHoverChanged(fn func(HoverContext)) CallbackHandle {
	return r.handlers.hover.add(fn)
}

// OnOverlayPointer registers a callback for down and up events that land on
// an armed overlay region.
func (r *GestureRecognizer) OnOverlayPointer(fn func(OverlayContext)) CallbackHandle {
	return r.handlers.overlay.add(fn)
}

// --- Event processing ---

// HandleEvent processes one raw pointer event. Every effect (viewport
// mutation, callbacks) completes before it returns. Malformed events are
// ignored.
func (r *GestureRecognizer) HandleEvent(ev PointerEvent) {
	switch ev.Type {
	case PointerDown:
		r.down(ev)
	case PointerMove:
		r.move(ev)
	case PointerUp:
		r.up(ev)
	case PointerCancel:
		r.cancel(ev)
	case PointerLeave:
		r.leave(ev)
	}
}

func (r *GestureRecognizer) down(ev PointerEvent) {
	if claim, ok := r.overlay.Claim(ev.X, ev.Y, ev.Time); ok {
		r.overlayPointer(claim, ev)
		return
	}

	// A second down for a tracked pointer means its up was lost.
	if _, stale := r.tracks[ev.PointerID]; stale {
		r.log.Debug("dropping stale pointer", zap.Int("pointer", ev.PointerID))
		r.dropTrack(ev.PointerID)
	}
	r.reconcileSession(ev)

	tr := newPointerTrack(ev)
	if ev.Kind == PointerTouch {
		r.touchDown(ev, tr)
		return
	}
	r.mouseDown(ev, tr)
}

func (r *GestureRecognizer) mouseDown(ev PointerEvent, tr *pointerTrack) {
	r.tracks[ev.PointerID] = tr
	r.finishSession(ev)

	pan := ev.Button == MouseButtonMiddle || ev.Button == MouseButtonRight ||
		(ev.Button == MouseButtonLeft && ev.Modifiers&r.panMods != 0)
	if pan {
		middle := ev.Button == MouseButtonMiddle
		r.session = gestureSession{
			kind:      sessionPanning,
			pointerID: ev.PointerID,
			button:    ev.Button,
			started:   !middle,
		}
		r.log.Debug("pan session", zap.Uint8("button", uint8(ev.Button)), zap.Bool("deferred", middle))
		if !middle {
			r.emit(GestureEvent{Type: GesturePanStart, Kind: ev.Kind, PointerID: ev.PointerID, X: ev.X, Y: ev.Y, Time: ev.Time})
		}
		return
	}
	if ev.Button != MouseButtonLeft {
		return
	}

	t, ok := r.pick(ev.X, ev.Y)
	r.session = gestureSession{
		kind:      sessionClickCandidate,
		pointerID: ev.PointerID,
		button:    MouseButtonLeft,
		target:    t,
		hasTarget: ok,
	}
}

func (r *GestureRecognizer) touchDown(ev PointerEvent, tr *pointerTrack) {
	touches := r.touchIDs()
	switch len(touches) {
	case 0:
		r.tracks[ev.PointerID] = tr
		r.finishSession(ev)
		// The viewport does not move until the finger travels past the tap
		// threshold, so a stationary tap never becomes a micro-pan.
		r.session = gestureSession{
			kind:      sessionPanning,
			pointerID: ev.PointerID,
			button:    MouseButtonLeft,
		}
	case 1:
		r.tracks[ev.PointerID] = tr
		// Ending the pan and starting the pinch happen in this one call, so
		// no event ever sees both active.
		r.finishSession(ev)
		r.startPinch(touches[0], ev.PointerID, ev)
	default:
		r.log.Debug("ignoring extra touch", zap.Int("pointer", ev.PointerID), zap.Int("active", len(touches)))
	}
}

func (r *GestureRecognizer) startPinch(id0, id1 int, ev PointerEvent) {
	a, b := r.tracks[id0], r.tracks[id1]
	a.pinched = true
	b.pinched = true
	d := distance(a.lastX, a.lastY, b.lastX, b.lastY)
	r.session = gestureSession{
		kind:          sessionPinching,
		pointer0:      id0,
		pointer1:      id1,
		startDistance: d,
		startZoom:     r.view.Zoom(),
	}
	r.log.Debug("pinch session", zap.Float64("startDistance", d), zap.Float64("startZoom", r.view.Zoom()))
	r.emit(GestureEvent{
		Type: GesturePinchStart, Kind: PointerTouch, PointerID: ev.PointerID,
		X: (a.lastX + b.lastX) / 2, Y: (a.lastY + b.lastY) / 2, Scale: 1, Time: ev.Time,
	})
}

func (r *GestureRecognizer) move(ev PointerEvent) {
	tr, ok := r.tracks[ev.PointerID]
	if !ok {
		// Buttonless mouse motion; touch moves for unknown fingers are dropped.
		if ev.Kind == PointerMouse {
			r.hover(ev)
		}
		return
	}

	prevX, prevY := tr.lastX, tr.lastY
	tr.lastX, tr.lastY = ev.X, ev.Y
	if !tr.moved && tr.distFromOrigin2(ev.X, ev.Y) > r.cfg.TapMovePx*r.cfg.TapMovePx {
		tr.moved = true
	}

	s := &r.session
	switch {
	case s.kind == sessionPinching && s.involves(ev.PointerID):
		r.pinchMove(ev)
		return
	case s.kind == sessionPanning && s.pointerID == ev.PointerID:
		r.panMove(ev, tr, prevX, prevY)
		return
	}
	if ev.Kind == PointerMouse {
		r.hover(ev)
	}
}

func (r *GestureRecognizer) panMove(ev PointerEvent, tr *pointerTrack, prevX, prevY float64) {
	s := &r.session
	if !s.started {
		threshold := r.cfg.TapMovePx
		if tr.kind == PointerMouse && s.button == MouseButtonMiddle {
			threshold = r.cfg.MiddleMovePx
		}
		if tr.distFromOrigin2(ev.X, ev.Y) <= threshold*threshold {
			return
		}
		s.started = true
		r.emit(GestureEvent{Type: GesturePanStart, Kind: ev.Kind, PointerID: ev.PointerID, X: ev.X, Y: ev.Y, Time: ev.Time})
	}

	dx := ev.X - prevX
	dy := ev.Y - prevY
	if dx == 0 && dy == 0 {
		return
	}
	surface := r.view.Surface()
	r.view.Pan(dx, dy, surface.Width, surface.Height)
	r.emit(GestureEvent{
		Type: GesturePanMove, Kind: ev.Kind, PointerID: ev.PointerID,
		X: ev.X, Y: ev.Y, DeltaX: dx, DeltaY: dy, Time: ev.Time,
	})
}

func (r *GestureRecognizer) pinchMove(ev PointerEvent) {
	s := &r.session
	a, b := r.tracks[s.pointer0], r.tracks[s.pointer1]
	if a == nil || b == nil {
		r.session = gestureSession{}
		return
	}
	d := distance(a.lastX, a.lastY, b.lastX, b.lastY)
	if d == 0 {
		return
	}
	if s.startDistance == 0 {
		// Fingers landed on the same spot; measure from where they separate.
		s.startDistance = d
		s.startZoom = r.view.Zoom()
		return
	}
	scale := d / s.startDistance
	r.view.SetZoom(s.startZoom * scale)
	r.emit(GestureEvent{
		Type: GesturePinchMove, Kind: PointerTouch, PointerID: ev.PointerID,
		X: (a.lastX + b.lastX) / 2, Y: (a.lastY + b.lastY) / 2, Scale: scale, Time: ev.Time,
	})
}

func (r *GestureRecognizer) up(ev PointerEvent) {
	tr, ok := r.tracks[ev.PointerID]
	if !ok {
		// The down went to the overlay (or was never seen).
		if claim, claimed := r.overlay.Claim(ev.X, ev.Y, ev.Time); claimed {
			r.overlayPointer(claim, ev)
		}
		return
	}
	// The mouse shares one pointer id across buttons; only the button that
	// owns the session may end it.
	if tr.kind == PointerMouse && r.session.involves(ev.PointerID) && ev.Button != r.session.button {
		r.log.Debug("ignoring release of another button",
			zap.Uint8("button", uint8(ev.Button)), zap.Uint8("session", uint8(r.session.button)))
		return
	}
	tr.lastX, tr.lastY = ev.X, ev.Y
	if tr.distFromOrigin2(ev.X, ev.Y) > r.cfg.TapMovePx*r.cfg.TapMovePx {
		tr.moved = true
	}
	delete(r.tracks, ev.PointerID)

	s := r.session
	if !s.involves(ev.PointerID) {
		return
	}
	r.session = gestureSession{}

	switch s.kind {
	case sessionPinching:
		r.emit(GestureEvent{Type: GesturePinchEnd, Kind: PointerTouch, PointerID: ev.PointerID, X: ev.X, Y: ev.Y, Time: ev.Time})
	case sessionPanning:
		if s.started {
			r.emit(GestureEvent{Type: GesturePanEnd, Kind: ev.Kind, PointerID: ev.PointerID, X: ev.X, Y: ev.Y, Time: ev.Time})
		}
		if tr.kind == PointerTouch {
			r.resolveTap(ev, tr)
		} else if s.button == MouseButtonMiddle {
			r.resolveMiddleClick(ev, tr, s)
		}
	case sessionClickCandidate:
		r.resolveClick(ev, s)
	}
}

// resolveTap handles a finger lifting from a single-touch session.
func (r *GestureRecognizer) resolveTap(ev PointerEvent, tr *pointerTrack) {
	if tr.moved || tr.pinched || ev.Time-tr.downAt >= r.cfg.TapTime {
		return
	}
	if r.overlay.IsOverlayAt(ev.X, ev.Y) {
		return
	}

	double := r.taps.isDouble(ev.X, ev.Y, ev.Time, r.cfg.DoubleTapTime, r.cfg.DoubleTapPx)
	r.taps.remember(ev.X, ev.Y, ev.Time)

	if t, ok := r.pick(ev.X, ev.Y); ok {
		r.primaryAction(t, ev, GestureTap)
		return
	}
	if double {
		r.backgroundDouble(ev, GestureDoubleTap)
		return
	}
	r.emit(GestureEvent{Type: GestureTap, Kind: ev.Kind, PointerID: ev.PointerID, X: ev.X, Y: ev.Y, Time: ev.Time})
}

// resolveMiddleClick resets the view on a quick middle click that never
// turned into a pan. Targets under the pointer are deliberately ignored.
func (r *GestureRecognizer) resolveMiddleClick(ev PointerEvent, tr *pointerTrack, s gestureSession) {
	if s.started {
		return
	}
	if tr.distFromOrigin2(ev.X, ev.Y) > r.cfg.MiddleMovePx*r.cfg.MiddleMovePx {
		return
	}
	if ev.Time-tr.downAt >= r.cfg.MiddleClickTime {
		return
	}
	r.backgroundDouble(ev, GestureMiddleClick)
}

// resolveClick fires the primary action when the button is released over
// the same target it was pressed on. Travel in between does not matter.
func (r *GestureRecognizer) resolveClick(ev PointerEvent, s gestureSession) {
	if !s.hasTarget {
		return
	}
	if r.overlay.IsOverlayAt(ev.X, ev.Y) {
		return
	}
	t, ok := r.pick(ev.X, ev.Y)
	if !ok || t.ID != s.target.ID {
		r.log.Debug("click released off its target", zap.Int("target", s.target.ID))
		return
	}
	r.primaryAction(t, ev, GestureClick)
}

func (r *GestureRecognizer) primaryAction(t Target, ev PointerEvent, g GestureType) {
	action := ActionPop
	if r.detailMode {
		action = ActionToggleDetail
	}
	r.log.Debug("target action",
		zap.Int("target", t.ID), zap.Stringer("action", action), zap.Stringer("gesture", g))
	r.handlers.targetAction.fire(TargetActionContext{
		Target: t, Action: action, Gesture: g,
		Kind: ev.Kind, PointerID: ev.PointerID, X: ev.X, Y: ev.Y,
	})
	r.emit(GestureEvent{
		Type: g, Kind: ev.Kind, PointerID: ev.PointerID, X: ev.X, Y: ev.Y,
		TargetID: t.ID, HasTarget: true, Time: ev.Time,
	})
}

func (r *GestureRecognizer) backgroundDouble(ev PointerEvent, g GestureType) {
	r.log.Debug("view reset", zap.Stringer("gesture", g))
	r.view.Reset()
	r.handlers.background.fire(BackgroundContext{
		Gesture: g, Kind: ev.Kind, PointerID: ev.PointerID, X: ev.X, Y: ev.Y,
	})
	r.emit(GestureEvent{Type: g, Kind: ev.Kind, PointerID: ev.PointerID, X: ev.X, Y: ev.Y, Time: ev.Time})
}

// cancel is a safety transition: the session and the pointer's track are
// cleared without any gesture outcome. Unknown pointers are ignored.
func (r *GestureRecognizer) cancel(ev PointerEvent) {
	if _, ok := r.tracks[ev.PointerID]; !ok {
		return
	}
	delete(r.tracks, ev.PointerID)
	if r.session.kind != sessionNone {
		r.log.Debug("session cancelled", zap.Stringer("session", r.session.kind), zap.Int("pointer", ev.PointerID))
	}
	r.session = gestureSession{}
}

// leave clears every track and the session and hides the hover readout.
func (r *GestureRecognizer) leave(ev PointerEvent) {
	clear(r.tracks)
	r.session = gestureSession{}
	r.setHover(Target{}, false, ev)
}

// --- Hover ---

func (r *GestureRecognizer) hover(ev PointerEvent) {
	if ev.Kind != PointerMouse {
		return
	}
	if r.overlay.IsOverlayAt(ev.X, ev.Y) {
		r.setHover(Target{}, false, ev)
		return
	}
	t, ok := r.pick(ev.X, ev.Y)
	r.setHover(t, ok, ev)
}

// setHover refreshes the readout on every call, since targets move between
// events, but only reports a change when the hovered target differs.
func (r *GestureRecognizer) setHover(t Target, ok bool, ev PointerEvent) {
	if ok {
		sx, sy := r.proj.WorldToScreen(t.X, t.Y, t.Z)
		r.readout = HoverReadout{
			Visible:  true,
			TargetID: t.ID,
			X:        sx,
			Y:        sy,
			Text:     FormatReadout(r.cfg.ReadoutLabel, t.Value),
		}
	} else {
		r.readout = HoverReadout{}
	}

	changed := ok != r.hovering || (ok && t.ID != r.hoverID)
	r.hovering = ok
	r.hoverID = t.ID
	if !changed {
		return
	}
	r.handlers.hover.fire(HoverContext{TargetID: t.ID, HasTarget: ok, Readout: r.readout})
	r.emit(GestureEvent{
		Type: GestureHover, Kind: ev.Kind, PointerID: ev.PointerID, X: ev.X, Y: ev.Y,
		TargetID: t.ID, HasTarget: ok, Time: ev.Time,
	})
}

// --- Helpers ---

func (r *GestureRecognizer) pick(x, y float64) (Target, bool) {
	if r.targets == nil {
		return Target{}, false
	}
	return r.hits.Pick(x, y, r.targets.Targets())
}

func (r *GestureRecognizer) overlayPointer(claim OverlayClaim, ev PointerEvent) {
	if claim.Disarmed {
		r.log.Debug("overlay disarmed, event swallowed", zap.String("region", claim.Region))
		return
	}
	r.handlers.overlay.fire(OverlayContext{Region: claim.Region, Kind: claim.Kind, Event: ev})
}

// touchIDs returns the tracked touch pointers in ascending id order.
func (r *GestureRecognizer) touchIDs() []int {
	var ids []int
	for id, tr := range r.tracks {
		if tr.kind == PointerTouch {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

// dropTrack forgets a pointer and silently ends any session it belonged to.
func (r *GestureRecognizer) dropTrack(id int) {
	delete(r.tracks, id)
	if r.session.involves(id) {
		r.session = gestureSession{}
	}
}

// reconcileSession re-derives the session from the live pointer set: a
// session whose pointers are no longer all tracked is stale and is ended.
func (r *GestureRecognizer) reconcileSession(ev PointerEvent) {
	s := &r.session
	var live bool
	switch s.kind {
	case sessionNone:
		return
	case sessionPinching:
		_, ok0 := r.tracks[s.pointer0]
		_, ok1 := r.tracks[s.pointer1]
		live = ok0 && ok1
	default:
		_, live = r.tracks[s.pointerID]
	}
	if !live {
		r.log.Debug("stale session ended", zap.Stringer("session", s.kind))
		r.finishSession(ev)
	}
}

// finishSession ends the current session without click or tap outcomes,
// closing an open pan or pinch for listeners.
func (r *GestureRecognizer) finishSession(ev PointerEvent) {
	s := r.session
	r.session = gestureSession{}
	switch s.kind {
	case sessionPanning:
		if s.started {
			r.emit(GestureEvent{Type: GesturePanEnd, Kind: ev.Kind, PointerID: s.pointerID, X: ev.X, Y: ev.Y, Time: ev.Time})
		}
	case sessionPinching:
		r.emit(GestureEvent{Type: GesturePinchEnd, Kind: PointerTouch, PointerID: s.pointer0, X: ev.X, Y: ev.Y, Time: ev.Time})
	}
}

func (r *GestureRecognizer) emit(e GestureEvent) {
	e.Zoom = r.view.Zoom()
	e.CenterX, e.CenterY = r.view.Center()
	r.handlers.gesture.fire(e)
	if r.sink != nil {
		r.sink.EmitGesture(e)
	}
}
