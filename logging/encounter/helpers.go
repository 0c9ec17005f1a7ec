package encounter

import (
	"context"

	"saferoom/server/logging"
)

const (
	// EventBossEngaged is emitted the first time a boss acquires a target.
	EventBossEngaged logging.EventType = "encounter.boss_engaged"
	// EventBossEnraged is emitted when a boss crosses its enrage threshold.
	EventBossEnraged logging.EventType = "encounter.boss_enraged"
	// EventBossDefeated is emitted when a boss dies.
	EventBossDefeated logging.EventType = "encounter.boss_defeated"
	// EventSpecialAttack is emitted when a boss fires its special ability.
	EventSpecialAttack logging.EventType = "encounter.special_attack"
)

// BossPayload identifies the boss and its health at the moment of the event.
type BossPayload struct {
	Type           string  `json:"type"`
	Level          int     `json:"level"`
	HealthFraction float64 `json:"healthFraction"`
}

// SpecialAttackPayload describes a special ability activation.
type SpecialAttackPayload struct {
	Amount float64 `json:"amount"`
	Range  float64 `json:"range"`
	Hit    bool    `json:"hit"`
}

// BossEngaged publishes a boss engagement event.
func BossEngaged(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, target logging.EntityRef, payload BossPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	event := logging.Event{
		Type:     EventBossEngaged,
		Tick:     tick,
		Actor:    actor,
		Targets:  []logging.EntityRef{target},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryEncounter,
		Payload:  payload,
		Extra:    extra,
	}
	pub.Publish(ctx, event)
}

// BossEnraged publishes a boss enrage event.
func BossEnraged(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload BossPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	event := logging.Event{
		Type:     EventBossEnraged,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryEncounter,
		Payload:  payload,
		Extra:    extra,
	}
	pub.Publish(ctx, event)
}

// BossDefeated publishes a boss defeat event.
func BossDefeated(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, target logging.EntityRef, payload BossPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	event := logging.Event{
		Type:     EventBossDefeated,
		Tick:     tick,
		Actor:    actor,
		Targets:  []logging.EntityRef{target},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryEncounter,
		Payload:  payload,
		Extra:    extra,
	}
	pub.Publish(ctx, event)
}

// SpecialAttack publishes a special ability event.
func SpecialAttack(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, target logging.EntityRef, payload SpecialAttackPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	event := logging.Event{
		Type:     EventSpecialAttack,
		Tick:     tick,
		Actor:    actor,
		Targets:  []logging.EntityRef{target},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryEncounter,
		Payload:  payload,
		Extra:    extra,
	}
	pub.Publish(ctx, event)
}
