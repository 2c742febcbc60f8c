package bubbleview

import (
	"testing"
	"time"
)

func TestInjectQueueSizes(t *testing.T) {
	tests := []struct {
		name   string
		inject func(c *Chart)
		frames int
	}{
		{"click", func(c *Chart) { c.InjectClick(1, 1, MouseButtonLeft) }, 2},
		{"drag", func(c *Chart) { c.InjectDrag(0, 0, 100, 0, 5, MouseButtonLeft) }, 5},
		{"drag min frames", func(c *Chart) { c.InjectDrag(0, 0, 100, 0, 0, MouseButtonLeft) }, 2},
		{"tap", func(c *Chart) { c.InjectTap(1, 1) }, 2},
		{"touch drag", func(c *Chart) { c.InjectTouchDrag(0, 0, 0, 100, 4) }, 4},
		{"pinch", func(c *Chart) { c.InjectPinch(400, 300, 100, 200, 4) }, 5},
		{"pinch min frames", func(c *Chart) { c.InjectPinch(400, 300, 100, 200, 1) }, 4},
		{"leave", func(c *Chart) { c.InjectLeave() }, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestChart()
			tt.inject(c)
			if got := c.PendingInjections(); got != tt.frames {
				t.Errorf("queued %d frames, want %d", got, tt.frames)
			}
		})
	}
}

func TestInjectOneFramePerUpdate(t *testing.T) {
	c := newTestChart(centerBubble)
	var clicks int
	c.Gestures().OnTargetAction(func(TargetActionContext) { clicks++ })

	c.InjectClick(400, 300, MouseButtonLeft)
	if c.PendingInjections() != 2 {
		t.Fatalf("expected 2 queued frames, got %d", c.PendingInjections())
	}
	runFrames(c, 1)
	if c.PendingInjections() != 1 || clicks != 0 {
		t.Fatalf("after frame 1: %d queued, %d clicks", c.PendingInjections(), clicks)
	}
	runFrames(c, 1)
	if c.PendingInjections() != 0 || clicks != 1 {
		t.Errorf("after frame 2: %d queued, %d clicks", c.PendingInjections(), clicks)
	}
}

func TestInjectDragInterpolates(t *testing.T) {
	c := newTestChart()
	c.InjectDrag(10, 10, 210, 10, 6, MouseButtonMiddle)
	var xs []float64
	for _, frame := range c.input.injectQueue {
		xs = append(xs, frame[0].X)
	}
	want := []float64{10, 50, 90, 130, 170, 210}
	if len(xs) != len(want) {
		t.Fatalf("xs = %v, want %v", xs, want)
	}
	for i := range want {
		if !approxEqual(xs[i], want[i], 1e-9) {
			t.Errorf("frame %d x = %v, want %v", i, xs[i], want[i])
		}
	}
	if c.input.injectQueue[0][0].Button != MouseButtonMiddle || c.input.injectQueue[5][0].Type != PointerUp {
		t.Error("drag should press and release the given button")
	}
}

func TestInjectPinchFingers(t *testing.T) {
	c := newTestChart()
	c.InjectPinch(400, 300, 100, 300, 4)
	q := c.input.injectQueue
	if q[0][0].PointerID == q[1][0].PointerID {
		t.Error("pinch fingers share a pointer id")
	}
	last := q[len(q)-2]
	if len(last) != 2 {
		t.Fatalf("move frame has %d events, want 2", len(last))
	}
	if d := last[1].X - last[0].X; !approxEqual(d, 300, 1e-9) {
		t.Errorf("final finger distance = %v, want 300", d)
	}
}

// fakeSource replays one canned event per poll.
type fakeSource struct {
	polls int
}

func (s *fakeSource) poll(now time.Duration, buf []PointerEvent) []PointerEvent {
	s.polls++
	return append(buf, PointerEvent{Type: PointerMove, Kind: PointerMouse, X: float64(s.polls), Time: now})
}

func TestInputInjectionPreemptsDevice(t *testing.T) {
	src := &fakeSource{}
	in := newInput(src)
	in.injectQueue = append(in.injectQueue, []PointerEvent{{Type: PointerDown, Kind: PointerTouch, PointerID: 1, Time: time.Hour}})

	evs := in.frame(testFrame)
	if len(evs) != 1 || evs[0].Type != PointerDown {
		t.Fatalf("frame 1 = %+v, want the injected down", evs)
	}
	if evs[0].Time != testFrame {
		t.Errorf("injected Time = %v, want it restamped to %v", evs[0].Time, testFrame)
	}
	if src.polls != 0 {
		t.Error("device polled on an injected frame")
	}

	evs = in.frame(testFrame)
	if len(evs) != 1 || evs[0].Type != PointerMove || src.polls != 1 {
		t.Errorf("frame 2 = %+v, want one device event", evs)
	}
	if in.Now() != 2*testFrame {
		t.Errorf("Now = %v, want %v", in.Now(), 2*testFrame)
	}
}
