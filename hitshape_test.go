package bubbleview

import "testing"

func TestHitRectContains(t *testing.T) {
	r := HitRect{X: 600, Y: 0, Width: 200, Height: 600}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside", 700, 300, true},
		{"left edge", 600, 300, true},
		{"bottom-right corner", 800, 600, true},
		{"just left", 599.5, 300, false},
		{"below", 700, 601, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("HitRect.Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestHitCircleContains(t *testing.T) {
	c := HitCircle{CenterX: 20, CenterY: 20, Radius: 12}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"center", 20, 20, true},
		{"on circumference", 32, 20, true},
		{"outside", 33, 20, false},
		{"outside diagonal", 29, 29, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("HitCircle.Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestHitShapesDegenerate(t *testing.T) {
	tests := []struct {
		name  string
		shape HitShape
		x, y  float64
		want  bool
	}{
		{"zero rect at its anchor", HitRect{}, 0, 0, false},
		{"zero-height rect", HitRect{X: 10, Y: 10, Width: 50}, 20, 10, false},
		{"negative size extends up-left", HitRect{X: 100, Y: 100, Width: -40, Height: -20}, 70, 90, true},
		{"negative size not right of anchor", HitRect{X: 100, Y: 100, Width: -40, Height: -20}, 110, 90, false},
		{"zero circle at center", HitCircle{CenterX: 5, CenterY: 5}, 5, 5, false},
		{"negative radius", HitCircle{CenterX: 5, CenterY: 5, Radius: -3}, 5, 5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.shape.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestHitPolygonContains(t *testing.T) {
	// A card with a pointer tab hanging off its bottom edge; concave where
	// the tab meets the card.
	card := HitPolygon{Points: []Vec2{
		{0, 0}, {100, 0}, {100, 60}, {60, 60}, {50, 80}, {40, 60}, {0, 60},
	}}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"body", 50, 30, true},
		{"tab", 50, 70, true},
		{"beside tab", 20, 70, false},
		{"on edge", 0, 30, true},
		{"vertex", 100, 0, true},
		{"outside", -1, 30, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := card.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("HitPolygon.Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestHitPolygonWindingAndDegenerate(t *testing.T) {
	cw := HitPolygon{Points: []Vec2{{0, 100}, {100, 100}, {100, 0}, {0, 0}}}
	if !cw.Contains(50, 50) || cw.Contains(-1, 50) {
		t.Error("clockwise square misclassified")
	}
	degen := HitPolygon{Points: []Vec2{{0, 0}, {1, 1}}}
	if degen.Contains(0, 0) {
		t.Error("polygon with fewer than 3 points should contain nothing")
	}
}

func TestHitUnionContains(t *testing.T) {
	u := HitUnion{
		HitRect{X: 600, Y: 0, Width: 200, Height: 600},
		HitCircle{CenterX: 590, CenterY: 300, Radius: 15},
		nil,
	}
	if !u.Contains(700, 10) {
		t.Error("panel body should be claimed")
	}
	if !u.Contains(580, 300) {
		t.Error("handle should be claimed")
	}
	if u.Contains(100, 100) {
		t.Error("empty space claimed")
	}
	if (HitUnion{}).Contains(0, 0) {
		t.Error("empty union claimed a point")
	}
}
