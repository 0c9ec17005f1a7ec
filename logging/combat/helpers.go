package combat

import (
	"context"

	"saferoom/server/logging"
)

const (
	// EventAttack is emitted when a monster lands a melee or special attack.
	EventAttack logging.EventType = "combat.attack"
	// EventDamage is emitted when an actor takes damage from any source.
	EventDamage logging.EventType = "combat.damage"
	// EventDeath is emitted exactly once when an actor dies.
	EventDeath logging.EventType = "combat.death"
	// EventKnockback is emitted when damage displaces the victim.
	EventKnockback logging.EventType = "combat.knockback"
)

// AttackPayload describes a completed attack swing.
type AttackPayload struct {
	Amount  float64 `json:"amount"`
	Special bool    `json:"special,omitempty"`
	Missed  bool    `json:"missed,omitempty"`
}

// DamagePayload captures the amount dealt to a single target.
type DamagePayload struct {
	Amount       float64 `json:"amount"`
	TargetHealth float64 `json:"targetHealth"`
	Enraged      bool    `json:"enraged,omitempty"`
}

// DeathPayload describes the fatal blow and the reward it earned.
type DeathPayload struct {
	Level  int  `json:"level"`
	Reward int  `json:"reward"`
	Boss   bool `json:"boss,omitempty"`
}

// KnockbackPayload records the planar displacement applied to the victim.
type KnockbackPayload struct {
	DirectionX float64 `json:"directionX"`
	DirectionZ float64 `json:"directionZ"`
	Strength   float64 `json:"strength"`
}

// Attack publishes a combat attack event.
func Attack(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, target logging.EntityRef, payload AttackPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	event := logging.Event{
		Type:     EventAttack,
		Tick:     tick,
		Actor:    actor,
		Targets:  []logging.EntityRef{target},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryCombat,
		Payload:  payload,
		Extra:    extra,
	}
	pub.Publish(ctx, event)
}

// Damage publishes a combat damage event for a single target.
func Damage(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, target logging.EntityRef, payload DamagePayload, extra map[string]any) {
	if pub == nil {
		return
	}
	event := logging.Event{
		Type:     EventDamage,
		Tick:     tick,
		Actor:    actor,
		Targets:  []logging.EntityRef{target},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryCombat,
		Payload:  payload,
		Extra:    extra,
	}
	pub.Publish(ctx, event)
}

// Death publishes a combat death event for the eliminated actor.
func Death(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, target logging.EntityRef, payload DeathPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	event := logging.Event{
		Type:     EventDeath,
		Tick:     tick,
		Actor:    actor,
		Targets:  []logging.EntityRef{target},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryCombat,
		Payload:  payload,
		Extra:    extra,
	}
	pub.Publish(ctx, event)
}

// Knockback publishes a knockback event for a displaced victim.
func Knockback(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, target logging.EntityRef, payload KnockbackPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	event := logging.Event{
		Type:     EventKnockback,
		Tick:     tick,
		Actor:    actor,
		Targets:  []logging.EntityRef{target},
		Severity: logging.SeverityDebug,
		Category: logging.CategoryCombat,
		Payload:  payload,
		Extra:    extra,
	}
	pub.Publish(ctx, event)
}
