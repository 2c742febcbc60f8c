package bubbleview

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// Chart is the top-level object that owns the viewport, its projector and
// hit tester, the overlay regions, input state and the gesture recognizer.
// Call Update from the game's Update and Layout from the game's Layout.
type Chart struct {
	cfg Config

	viewport  *Viewport
	projector *ScreenProjector
	hits      *HitTester
	overlay   *OverlayArbiter
	gestures  *GestureRecognizer
	input     *Input

	testRunner *TestRunner

	log       *zap.Logger
	loggerSet bool
	debug     bool
}

// NewChart creates a chart over the given target roster. cfg should already
// be validated; see LoadConfig and Config.Validate.
func NewChart(cfg Config, targets TargetSource) *Chart {
	vp := NewViewport(cfg, Rect{})
	proj := NewScreenProjector(vp, cfg.CameraZ)
	hits := NewHitTester(proj, cfg.PickMargin)
	overlay := NewOverlayArbiter(cfg.PanelDisarm)
	return &Chart{
		cfg:       cfg,
		viewport:  vp,
		projector: proj,
		hits:      hits,
		overlay:   overlay,
		gestures:  NewGestureRecognizer(cfg, vp, proj, hits, overlay, targets),
		input:     newInput(newEbitenSource()),
		log:       zap.NewNop(),
	}
}

// Config returns the configuration the chart was built with.
func (c *Chart) Config() Config { return c.cfg }

// Viewport returns the chart's viewport.
func (c *Chart) Viewport() *Viewport { return c.viewport }

// Projector returns the chart's screen projector.
func (c *Chart) Projector() *ScreenProjector { return c.projector }

// HitTester returns the chart's hit tester.
func (c *Chart) HitTester() *HitTester { return c.hits }

// Overlay returns the chart's overlay arbiter.
func (c *Chart) Overlay() *OverlayArbiter { return c.overlay }

// Gestures returns the chart's gesture recognizer.
func (c *Chart) Gestures() *GestureRecognizer { return c.gestures }

// Now returns the chart clock, advanced by one tick per Update.
func (c *Chart) Now() time.Duration { return c.input.Now() }

// SetTargets replaces the target roster.
func (c *Chart) SetTargets(targets TargetSource) {
	c.gestures.SetTargets(targets)
}

// SetEventSink sets the optional gesture sink, e.g. the Donburi bridge in
// the ecs sub-package.
func (c *Chart) SetEventSink(sink EventSink) {
	c.gestures.SetEventSink(sink)
}

// SetLogger sets the logger for the chart and its recognizer.
func (c *Chart) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	c.log = l
	c.loggerSet = true
	c.gestures.SetLogger(l.Named("gesture"))
}

// SetDebugMode enables or disables debug diagnostics. Enabling it without a
// logger installed switches to a zap development logger on stderr.
func (c *Chart) SetDebugMode(enabled bool) {
	c.debug = enabled
	if !enabled || c.loggerSet {
		return
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		return
	}
	c.SetLogger(l)
	c.log.Debug("debug mode on")
}

// ShowPanel un-hides an overlay region and disarms it for Config.PanelDisarm
// so the tap that opened it cannot also act on it.
func (c *Chart) ShowPanel(name string) bool {
	return c.overlay.Show(name, c.Now())
}

// HidePanel hides an overlay region.
func (c *Chart) HidePanel(name string) bool {
	return c.overlay.Hide(name)
}

// Layout updates the surface to the game's logical screen size.
func (c *Chart) Layout(width, height int) {
	s := c.viewport.Surface()
	if s.Width == float64(width) && s.Height == float64(height) {
		return
	}
	c.viewport.SetSurface(Rect{Width: float64(width), Height: float64(height)})
	c.log.Debug("surface resized", zap.Int("width", width), zap.Int("height", height))
}

// Update runs one tick: test script, input, then viewport animation.
func (c *Chart) Update() {
	c.update(time.Second / time.Duration(ebiten.TPS()))
}

func (c *Chart) update(dt time.Duration) {
	if c.testRunner != nil {
		c.testRunner.step(c)
	}
	for _, ev := range c.input.frame(dt) {
		c.gestures.HandleEvent(ev)
	}
	c.viewport.Update(float32(dt.Seconds()))
}

// ApplyConfig swaps in a reloaded configuration. The view keeps its center
// and zoom (clamped to the new range); thresholds apply from the next event.
// An invalid cfg is rejected and the current one kept.
func (c *Chart) ApplyConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg
	c.viewport.configure(cfg)
	c.projector.cameraZ = cfg.CameraZ
	c.hits.margin = cfg.PickMargin
	c.overlay.disarm = cfg.PanelDisarm
	c.gestures.configure(cfg)
	c.log.Debug("config applied")
	return nil
}
