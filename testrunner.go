package bubbleview

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidScript is wrapped by every LoadTestScript error.
var ErrInvalidScript = errors.New("invalid test script")

// testStep represents a single action in a test script.
type testStep struct {
	Action   string  `json:"action"`
	Button   string  `json:"button,omitempty"`
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
	FromX    float64 `json:"fromX,omitempty"`
	FromY    float64 `json:"fromY,omitempty"`
	ToX      float64 `json:"toX,omitempty"`
	ToY      float64 `json:"toY,omitempty"`
	FromDist float64 `json:"fromDist,omitempty"`
	ToDist   float64 `json:"toDist,omitempty"`
	Frames   int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

var scriptActions = map[string]bool{
	"click": true, "middleclick": true, "move": true, "drag": true,
	"tap": true, "doubletap": true, "touchdrag": true, "pinch": true,
	"leave": true, "wait": true,
}

func parseButton(name string) (MouseButton, error) {
	switch name {
	case "", "left":
		return MouseButtonLeft, nil
	case "middle":
		return MouseButtonMiddle, nil
	case "right":
		return MouseButtonRight, nil
	default:
		return 0, fmt.Errorf("unknown button %q", name)
	}
}

// TestRunner sequences injected input across frames for automated
// interaction tests. Attach to a Chart via SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Chart via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w: %w", ErrInvalidScript, err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: %w: no steps", ErrInvalidScript)
	}
	for i, st := range script.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse test script: %w: step %d: unknown action %q", ErrInvalidScript, i, st.Action)
		}
		if _, err := parseButton(st.Button); err != nil {
			return nil, fmt.Errorf("parse test script: %w: step %d: %w", ErrInvalidScript, i, err)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the chart. The runner's step method
// is called from Chart.Update before input is processed each frame.
func (c *Chart) SetTestRunner(runner *TestRunner) {
	c.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Called from Chart.Update.
func (r *TestRunner) step(c *Chart) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if c.PendingInjections() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	// Buttons were validated by LoadTestScript.
	button, _ := parseButton(st.Button)
	switch st.Action {
	case "click":
		c.InjectClick(st.X, st.Y, button)
	case "middleclick":
		c.InjectClick(st.X, st.Y, MouseButtonMiddle)
	case "move":
		c.InjectMouseMove(st.X, st.Y)
	case "drag":
		c.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames, button)
	case "tap":
		c.InjectTap(st.X, st.Y)
	case "doubletap":
		c.InjectTap(st.X, st.Y)
		c.InjectTap(st.X, st.Y)
	case "touchdrag":
		c.InjectTouchDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "pinch":
		c.InjectPinch(st.X, st.Y, st.FromDist, st.ToDist, st.Frames)
	case "leave":
		c.InjectLeave()
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && c.PendingInjections() == 0 {
		r.done = true
	}
}
