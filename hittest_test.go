package bubbleview

import "testing"

func newTestHitTester() (*Viewport, *HitTester) {
	v, p := newTestProjector()
	return v, NewHitTester(p, DefaultConfig().PickMargin)
}

func TestPickEmpty(t *testing.T) {
	_, h := newTestHitTester()
	if _, ok := h.Pick(400, 300, nil); ok {
		t.Error("Pick on no targets should miss")
	}
}

func TestPickPhases(t *testing.T) {
	// Surface 800x600 at zoom 1: 50 px per world unit, origin at (400,300).
	unit := []Target{{ID: 1, Radius: 1, Pickable: true}}
	tests := []struct {
		name   string
		sx, sy float64
		phase  pickPhase
	}{
		{"center", 400, 300, pickRay},
		{"inside edge", 445, 300, pickRay},
		{"just outside sphere", 453, 300, pickFallback},
		{"within margin vertically", 400, 354, pickFallback},
		{"beyond margin", 460, 300, pickNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, h := newTestHitTester()
			got, phase := h.pick(tt.sx, tt.sy, unit)
			if phase != tt.phase {
				t.Fatalf("phase = %v, want %v", phase, tt.phase)
			}
			if phase != pickNone && got.ID != 1 {
				t.Errorf("picked %d, want 1", got.ID)
			}
		})
	}
}

func TestPickRayNearestCameraWins(t *testing.T) {
	_, h := newTestHitTester()
	targets := []Target{
		{ID: 1, Z: 0, Radius: 1, Pickable: true},
		{ID: 2, Z: 5, Radius: 1, Pickable: true},
	}
	got, ok := h.Pick(400, 300, targets)
	if !ok || got.ID != 2 {
		t.Errorf("Pick = %d/%v, want 2 (closer to camera)", got.ID, ok)
	}
}

func TestPickRayBeatsCloserFallback(t *testing.T) {
	_, h := newTestHitTester()
	// The pick point is 45px from A's center and 5px from B's, but both
	// spheres are crossed by the ray and A is in front.
	targets := []Target{
		{ID: 1, X: 0, Radius: 1, Pickable: true},
		{ID: 2, X: 1, Z: -10, Radius: 0.3, Pickable: true},
	}
	got, phase := h.pick(445, 300, targets)
	if phase != pickRay || got.ID != 1 {
		t.Errorf("pick = %d (phase %v), want 1 by ray", got.ID, phase)
	}
}

func TestPickFallbackNearestCenter(t *testing.T) {
	_, h := newTestHitTester()
	targets := []Target{
		{ID: 1, X: 2.1, Radius: 1, Pickable: true},
		{ID: 2, X: 0, Radius: 1, Pickable: true},
	}
	// World x = 1.04: outside both spheres, within both padded radii.
	got, phase := h.pick(452, 300, targets)
	if phase != pickFallback || got.ID != 2 {
		t.Errorf("pick = %d (phase %v), want 2 by fallback", got.ID, phase)
	}
}

func TestPickSkipsNonPickable(t *testing.T) {
	_, h := newTestHitTester()
	targets := []Target{
		{ID: 1, Radius: 1, Pickable: false},
	}
	if _, ok := h.Pick(400, 300, targets); ok {
		t.Error("non-pickable target hit by ray")
	}
	if _, ok := h.Pick(453, 300, targets); ok {
		t.Error("non-pickable target hit by fallback")
	}

	targets = append(targets, Target{ID: 2, Z: -5, Radius: 1, Pickable: true})
	got, ok := h.Pick(400, 300, targets)
	if !ok || got.ID != 2 {
		t.Errorf("Pick = %d/%v, want 2 behind the non-pickable one", got.ID, ok)
	}
}

func TestPickFollowsZoom(t *testing.T) {
	v, h := newTestHitTester()
	targets := []Target{{ID: 1, X: 2, Radius: 0.5, Pickable: true}}
	// At zoom 1 the target center is at x=500.
	if _, ok := h.Pick(500, 300, targets); !ok {
		t.Fatal("miss at zoom 1")
	}
	v.SetZoom(2)
	// At zoom 2 it moves to x=600 and the old point misses.
	if _, ok := h.Pick(500, 300, targets); ok {
		t.Error("stale hit at zoom 2")
	}
	if _, ok := h.Pick(600, 300, targets); !ok {
		t.Error("miss at the new projected center")
	}
}

func TestTargetSources(t *testing.T) {
	list := TargetList{{ID: 3}}
	if got := list.Targets(); len(got) != 1 || got[0].ID != 3 {
		t.Errorf("TargetList.Targets = %v", got)
	}
	var calls int
	fn := TargetFunc(func() []Target { calls++; return nil })
	fn.Targets()
	if calls != 1 {
		t.Errorf("TargetFunc called %d times, want 1", calls)
	}
}
