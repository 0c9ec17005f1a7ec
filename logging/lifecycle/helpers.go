package lifecycle

import (
	"context"

	"saferoom/server/logging"
)

const (
	// EventSpawn is emitted when a monster enters the world.
	EventSpawn logging.EventType = "lifecycle.spawn"
	// EventRemove is emitted when an actor is removed from the world.
	EventRemove logging.EventType = "lifecycle.remove"
	// EventSleep is emitted when the scheduler puts a monster to sleep.
	EventSleep logging.EventType = "lifecycle.sleep"
	// EventWake is emitted when the scheduler wakes a sleeping monster.
	EventWake logging.EventType = "lifecycle.wake"
)

// SpawnPayload describes the spawned monster.
type SpawnPayload struct {
	Type      string  `json:"type"`
	Level     int     `json:"level"`
	Boss      bool    `json:"boss,omitempty"`
	PositionX float64 `json:"positionX"`
	PositionZ float64 `json:"positionZ"`
}

// RemovePayload explains why the actor left the world.
type RemovePayload struct {
	Reason string `json:"reason"`
}

// SchedulePayload carries the distance that triggered a sleep or wake.
type SchedulePayload struct {
	NearestPlayerDistance float64 `json:"nearestPlayerDistance"`
}

// Spawn publishes a monster spawn event.
func Spawn(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload SpawnPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	event := logging.Event{
		Type:     EventSpawn,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryLifecycle,
		Payload:  payload,
		Extra:    extra,
	}
	pub.Publish(ctx, event)
}

// Remove publishes an actor removal event.
func Remove(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload RemovePayload, extra map[string]any) {
	if pub == nil {
		return
	}
	event := logging.Event{
		Type:     EventRemove,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryLifecycle,
		Payload:  payload,
		Extra:    extra,
	}
	pub.Publish(ctx, event)
}

// Sleep publishes a scheduler sleep event.
func Sleep(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload SchedulePayload, extra map[string]any) {
	if pub == nil {
		return
	}
	event := logging.Event{
		Type:     EventSleep,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityDebug,
		Category: logging.CategoryLifecycle,
		Payload:  payload,
		Extra:    extra,
	}
	pub.Publish(ctx, event)
}

// Wake publishes a scheduler wake event.
func Wake(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload SchedulePayload, extra map[string]any) {
	if pub == nil {
		return
	}
	event := logging.Event{
		Type:     EventWake,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityDebug,
		Category: logging.CategoryLifecycle,
		Payload:  payload,
		Extra:    extra,
	}
	pub.Publish(ctx, event)
}
