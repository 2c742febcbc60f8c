package ecs

import (
	"github.com/phanxgames/bubbleview"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// GestureEventType is the Donburi event type for bubbleview gestures.
// Subscribe to this in your ECS systems to receive hover, click, tap, pan
// and pinch events.
var GestureEventType = events.NewEventType[bubbleview.GestureEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Gestures are published to GestureEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) bubbleview.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitGesture(event bubbleview.GestureEvent) {
	GestureEventType.Publish(s.world, event)
}
