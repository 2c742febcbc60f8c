package bubbleview

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// RunConfig configures the window and per-frame hooks used by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
	// Update runs after the chart has processed the frame's input.
	// Returning an error stops the game loop.
	Update func() error
	// Draw renders the chart. The host owns rendering; bubbleview only
	// draws the optional FPS readout on top.
	Draw func(screen *ebiten.Image)
}

// gameShell adapts a Chart to ebiten.Game.
type gameShell struct {
	chart *Chart
	cfg   RunConfig

	fpsImg     *ebiten.Image
	fpsElapsed float64
}

// Run opens a window and drives chart with Ebitengine until the window is
// closed or a hook returns an error.
func Run(chart *Chart, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("run: invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(&gameShell{chart: chart, cfg: cfg})
}

func (g *gameShell) Update() error {
	g.chart.Update()
	if g.cfg.Update != nil {
		return g.cfg.Update()
	}
	return nil
}

func (g *gameShell) Draw(screen *ebiten.Image) {
	if g.cfg.Draw != nil {
		g.cfg.Draw(screen)
	}
	if g.cfg.ShowFPS {
		g.drawFPS(screen)
	}
}

func (g *gameShell) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.chart.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// drawFPS draws FPS and TPS in the top-right corner, refreshed about twice
// a second.
func (g *gameShell) drawFPS(screen *ebiten.Image) {
	if g.fpsImg == nil {
		// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
		g.fpsImg = ebiten.NewImage(100, 32)
		g.fpsElapsed = 0.5
	}
	g.fpsElapsed += 1 / float64(ebiten.TPS())
	if g.fpsElapsed >= 0.5 {
		g.fpsElapsed = 0
		g.fpsImg.Clear()
		g.fpsImg.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(g.fpsImg, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(screen.Bounds().Dx()-100), 0)
	screen.DrawImage(g.fpsImg, op)
}
