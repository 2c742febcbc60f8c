// Package ecs provides ECS adapters for bubbleview's gesture stream.
//
// The primary adapter is [NewDonburiSink], which bridges bubbleview gestures
// (hover, click, tap, double-tap, pan, pinch) into a [Donburi] world as
// typed events. Subscribe to [GestureEventType] in your ECS systems to
// receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	chart.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
