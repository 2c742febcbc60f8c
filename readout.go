package bubbleview

import (
	"fmt"
	"math"
)

// HoverReadout is the small info label shown next to the hovered target.
// X and Y are the projected screen position of the target center.
type HoverReadout struct {
	Visible  bool
	TargetID int
	X, Y     float64
	Text     string
}

// FormatReadout renders "<label> = v" with v clamped to [-1, 1] and two
// decimals. A missing (NaN) value reads as zero.
func FormatReadout(label string, v float64) string {
	if math.IsNaN(v) {
		v = 0
	}
	return fmt.Sprintf("%s = %.2f", label, clamp(v, -1, 1))
}
