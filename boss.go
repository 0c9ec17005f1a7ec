package server

import (
	"context"

	"saferoom/server/logging/encounter"
)

const specialDamageMultiplier = 2.0

// checkBossEnrage flips the one-way boss enrage when health falls to or
// below the threshold fraction. It never reverts: healing a boss back above
// the threshold leaves it enraged.
func (w *World) checkBossEnrage(m *monsterState) {
	if m.bossEnraged || m.state == StateDead {
		return
	}
	if m.healthFraction() > bossEnrageHealthFraction {
		return
	}
	m.bossEnraged = true
	m.enraged = true
	m.enrageTimer = 0
	w.presenter.PlayAnimation(m.ID, "enrage", m.stats.Type)
	w.presenter.PlaySound(m.ID, "enrage")
	encounter.BossEnraged(context.Background(), w.publisher, w.currentTick,
		m.logRef(), encounter.BossPayload{
			Type:           m.stats.Type,
			Level:          m.level,
			HealthFraction: m.healthFraction(),
		}, nil)
}

// applySpecialAttackEdge lands the boss special on the SpecialAttack→Aggro
// edge, with the same drift tolerance band as the melee edge.
func applySpecialAttackEdge(w *World, m *monsterState) {
	target, ok := w.referenceTarget(m)
	hit := ok && planarDistance(m.Position, target.Position) <= m.stats.SpecialRange*attackReachSlack
	amount := m.damage() * specialDamageMultiplier
	if hit {
		w.damagePlayer(target, amount, m)
	}
	m.specialTimer = m.specialCooldown()
	m.attackTimer = m.attackCooldown()

	encounter.SpecialAttack(context.Background(), w.publisher, w.currentTick,
		m.logRef(), w.targetRef(target), encounter.SpecialAttackPayload{
			Amount: amount,
			Range:  m.stats.SpecialRange,
			Hit:    hit,
		}, nil)
}

func (w *World) notifyBossEncounterStart(m *monsterState) {
	w.notifier.NotifyBossEncounter(m.ID, m.stats.Type, true)
	target, _ := w.referenceTarget(m)
	encounter.BossEngaged(context.Background(), w.publisher, w.currentTick,
		m.logRef(), w.targetRef(target), encounter.BossPayload{
			Type:           m.stats.Type,
			Level:          m.level,
			HealthFraction: m.healthFraction(),
		}, nil)
}

func (w *World) notifyBossDefeated(m *monsterState) {
	w.notifier.NotifyBossEncounter(m.ID, m.stats.Type, false)
	encounter.BossDefeated(context.Background(), w.publisher, w.currentTick,
		w.worldRef(), m.logRef(), encounter.BossPayload{
			Type:           m.stats.Type,
			Level:          m.level,
			HealthFraction: 0,
		}, nil)
}
