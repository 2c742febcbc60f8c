package bubbleview

// Injected events use screen coordinates, exactly like device input, and are
// consumed one frame per Update. Touch injections use fingers 0 and 1
// (pointer ids touchPointerBase and touchPointerBase+1).

// InjectFrame queues raw events to be delivered together in one frame.
// Their Time fields are overwritten with the frame time.
func (c *Chart) InjectFrame(events ...PointerEvent) {
	frame := make([]PointerEvent, len(events))
	copy(frame, events)
	c.input.injectQueue = append(c.input.injectQueue, frame)
}

func mouseEvent(t PointerEventType, x, y float64, button MouseButton) PointerEvent {
	return PointerEvent{Type: t, Kind: PointerMouse, PointerID: mousePointerID, X: x, Y: y, Button: button}
}

func touchEvent(t PointerEventType, finger int, x, y float64) PointerEvent {
	return PointerEvent{Type: t, Kind: PointerTouch, PointerID: touchPointerBase + finger, X: x, Y: y}
}

// InjectMouseDown queues a mouse button press at the given screen coordinates.
func (c *Chart) InjectMouseDown(x, y float64, button MouseButton) {
	c.InjectFrame(mouseEvent(PointerDown, x, y, button))
}

// InjectMouseMove queues a mouse move. Use it between InjectMouseDown and
// InjectMouseUp to simulate a drag, or alone to hover.
func (c *Chart) InjectMouseMove(x, y float64) {
	c.InjectFrame(mouseEvent(PointerMove, x, y, MouseButtonLeft))
}

// InjectMouseUp queues a mouse button release.
func (c *Chart) InjectMouseUp(x, y float64, button MouseButton) {
	c.InjectFrame(mouseEvent(PointerUp, x, y, button))
}

// InjectClick queues a press followed by a release at the same screen
// coordinates. Consumes two frames.
func (c *Chart) InjectClick(x, y float64, button MouseButton) {
	c.InjectMouseDown(x, y, button)
	c.InjectMouseUp(x, y, button)
}

// InjectDrag queues a full mouse drag: press at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate frames, and release at
// (toX, toY). Minimum frames is 2 (press + release).
func (c *Chart) InjectDrag(fromX, fromY, toX, toY float64, frames int, button MouseButton) {
	if frames < 2 {
		frames = 2
	}
	c.InjectMouseDown(fromX, fromY, button)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		c.InjectMouseMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	c.InjectMouseUp(toX, toY, button)
}

// InjectTap queues a finger down and up at the same point. Consumes two frames.
func (c *Chart) InjectTap(x, y float64) {
	c.InjectFrame(touchEvent(PointerDown, 0, x, y))
	c.InjectFrame(touchEvent(PointerUp, 0, x, y))
}

// InjectTouchDrag queues a one-finger drag over frames frames (minimum 2).
func (c *Chart) InjectTouchDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	c.InjectFrame(touchEvent(PointerDown, 0, fromX, fromY))
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		c.InjectFrame(touchEvent(PointerMove, 0, fromX+(toX-fromX)*t, fromY+(toY-fromY)*t))
	}
	c.InjectFrame(touchEvent(PointerUp, 0, toX, toY))
}

// InjectPinch queues a horizontal two-finger pinch centered on (cx, cy):
// the fingers land fromDist apart on consecutive frames, spread or close to
// toDist over the moving frames, and lift together. Consumes frames+1 frames
// (minimum frames is 3).
func (c *Chart) InjectPinch(cx, cy, fromDist, toDist float64, frames int) {
	if frames < 3 {
		frames = 3
	}
	c.InjectFrame(touchEvent(PointerDown, 0, cx-fromDist/2, cy))
	c.InjectFrame(touchEvent(PointerDown, 1, cx+fromDist/2, cy))
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		d := fromDist + (toDist-fromDist)*float64(i)/float64(steps)
		c.InjectFrame(
			touchEvent(PointerMove, 0, cx-d/2, cy),
			touchEvent(PointerMove, 1, cx+d/2, cy),
		)
	}
	c.InjectFrame(
		touchEvent(PointerUp, 0, cx-toDist/2, cy),
		touchEvent(PointerUp, 1, cx+toDist/2, cy),
	)
}

// InjectLeave queues a pointer-leave, as when the window loses focus.
func (c *Chart) InjectLeave() {
	c.InjectFrame(PointerEvent{Type: PointerLeave, Kind: PointerMouse, PointerID: mousePointerID})
}

// PendingInjections returns the number of queued injected frames.
func (c *Chart) PendingInjections() int {
	return len(c.input.injectQueue)
}
