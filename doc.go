// Package bubbleview is the interaction core of a zoomable bubble chart for
// [Ebitengine].
//
// Bubbleview owns the view state (zoom and pan over an orthographic camera),
// the mapping between world space and screen pixels, picking of circular
// targets, and a single gesture recognizer that turns mouse and touch input
// into hover, click, tap, double-tap, pan and pinch gestures. Rendering is
// left to the host.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	chart := bubbleview.NewChart(bubbleview.DefaultConfig(), bubbleview.TargetFunc(roster))
//	chart.Gestures().OnTargetAction(func(ctx bubbleview.TargetActionContext) { ... })
//	bubbleview.Run(chart, bubbleview.RunConfig{
//		Title: "Bubbles", Width: 960, Height: 640, Draw: draw,
//	})
//
// For full control, implement [ebiten.Game] yourself and call
// [Chart.Update] and [Chart.Layout] directly.
//
// # Coordinates
//
// World space is Y-up; at zoom 1 the view spans [Config].BaseWorldHeight
// world units vertically and the surface aspect ratio horizontally. Screen
// space is Y-down pixels on the surface set by [Chart.Layout]. Use
// [ScreenProjector] to convert between the two; it always reads the current
// [Viewport], so results stay correct across zoom changes.
//
// # Picking
//
// [HitTester.Pick] first casts an exact ray against target spheres and
// takes the one nearest the camera. Only when the ray misses everything does
// it fall back to the projected screen radius padded by [Config].PickMargin,
// choosing the closest center.
//
// # Gestures
//
// A mouse click fires when the button is released over the same target it
// was pressed on. A tap must stay within [Config].TapMovePx and last less
// than [Config].TapTime. Two taps close in time and space on empty space
// reset the view, as does a quick middle click. Right drag, middle drag,
// modifier-held left drag and single-finger drag pan; two fingers pinch.
// Pinch zoom is always start zoom times the ratio of finger distances.
//
// Points covered by an interactive [OverlayRegion] never reach the scene.
// [Chart.ShowPanel] briefly disarms a freshly shown region so the release
// that opened it cannot also press it.
//
// # Configuration
//
// [LoadConfig] reads YAML, TOML or JSON through Viper with BUBBLEVIEW_*
// environment overrides; [WatchConfig] reloads on change. Apply a reloaded
// Config with [Chart.ApplyConfig] from the game loop.
//
// # Testing
//
// The Inject* methods on [Chart] queue synthetic input that is consumed one
// frame per update, and [LoadTestScript] drives the same queue from a JSON
// script. Gestures can also be forwarded to a [Donburi] world with the
// adapter in bubbleview/ecs.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package bubbleview
