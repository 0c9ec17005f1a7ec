package server

import (
	"context"
	"fmt"
	"math"

	logcombat "saferoom/server/logging/combat"
	"saferoom/server/logging/lifecycle"
	"saferoom/server/stats"
)

// applyAttackEdge lands the pending melee hit on the Attacking→Aggro edge.
// The target may have drifted during wind-up, so the hit only connects
// inside a tolerance band above attack range.
func applyAttackEdge(w *World, m *monsterState) {
	target, ok := w.referenceTarget(m)
	hit := ok && planarDistance(m.Position, target.Position) <= m.stats.AttackRange*attackReachSlack
	if hit {
		w.damagePlayer(target, m.damage(), m)
	}
	m.attackTimer = m.attackCooldown()

	logcombat.Attack(context.Background(), w.publisher, w.currentTick,
		m.logRef(), w.targetRef(target), logcombat.AttackPayload{
			Amount: m.damage(),
			Missed: !hit,
		}, nil)
}

// damagePlayer applies monster damage to a player and dispatches the
// fire-and-forget notification. Player death handling belongs to the hub.
func (w *World) damagePlayer(p *playerState, amount float64, source *monsterState) {
	if p == nil || !p.alive() {
		return
	}
	dealt := math.Trunc(amount)
	p.applyHealthDelta(-dealt)
	w.presenter.PlaySound(p.ID, "hurt")
	w.presenter.SpawnFloatingText(p.ID, fmt.Sprintf("%d", int(dealt)))
	w.notifier.NotifyDamage(p.ID, source.ID, dealt)
}

// TakeDamage is the single entry point for hurting a monster. It truncates
// the amount, wakes sleepers, forces aggro outside combat states, applies a
// horizontal knockback impulse away from the source, and triggers death.
// A dead monster ignores it entirely.
func (w *World) TakeDamage(m *monsterState, amount float64, sourcePosition Vec3, pushbackMultiplier float64) {
	if m == nil || m.state == StateDead {
		return
	}

	dealt := math.Trunc(amount)
	m.applyHealthDelta(-dealt)

	if m.asleep {
		w.wakeMonster(m, planarDistance(m.Position, sourcePosition))
	}

	if !inCombatState(m.state) {
		m.state = StateAggro
		enterAggro(w, m)
	}

	knock := m.Position.Sub(sourcePosition).Flat().Normalized()
	if !knock.IsZero() && pushbackMultiplier != 0 {
		next := m.Position.Add(knock.Scale(pushbackMultiplier))
		next.X = clamp(next.X, actorRadius, worldWidth-actorRadius)
		next.Z = clamp(next.Z, actorRadius, worldDepth-actorRadius)
		m.Position = next
		logcombat.Knockback(context.Background(), w.publisher, w.currentTick,
			w.worldRef(), m.logRef(), logcombat.KnockbackPayload{
				DirectionX: knock.X,
				DirectionZ: knock.Z,
				Strength:   pushbackMultiplier,
			}, nil)
	}

	w.presenter.PlayAnimation(m.ID, "hit", m.stats.Type)
	w.presenter.PlaySound(m.ID, "hurt")
	w.presenter.SpawnFloatingText(m.ID, fmt.Sprintf("%d", int(dealt)))

	logcombat.Damage(context.Background(), w.publisher, w.currentTick,
		w.worldRef(), m.logRef(), logcombat.DamagePayload{
			Amount:       dealt,
			TargetHealth: m.Health,
			Enraged:      m.enraged,
		}, nil)

	if m.boss {
		w.checkBossEnrage(m)
	}

	if m.Health <= 0 {
		w.kill(m)
	}
}

func inCombatState(s State) bool {
	switch s {
	case StateAggro, StateAttacking, StateSpecialAttack, StateStunned:
		return true
	}
	return false
}

// kill moves a monster into the terminal Dead state. The external
// notification fires exactly once no matter how many times damage lands on
// the same tick; corpse spawn and removal are deferred so the death
// presentation has time to play.
func (w *World) kill(m *monsterState) {
	if m.state == StateDead {
		return
	}
	m.state = StateDead
	m.Velocity = Vec3{}
	m.Health = 0
	w.chat.teardownFor(w, m, "death")

	w.presenter.PlayAnimation(m.ID, "death", m.stats.Type)
	w.presenter.PlaySound(m.ID, "death")

	if !m.deathNotified {
		m.deathNotified = true
		reward := stats.KillReward(m.stats.MaxHealth, m.level)
		w.notifier.NotifyDeath(m.ID, reward, m.boss)
		logcombat.Death(context.Background(), w.publisher, w.currentTick,
			w.worldRef(), m.logRef(), logcombat.DeathPayload{
				Level:  m.level,
				Reward: reward,
				Boss:   m.boss,
			}, nil)
		if m.boss {
			w.notifyBossDefeated(m)
		}
	}

	id := m.ID
	w.deferred.Schedule(w.currentTick+ticks(corpseDelay), func(w *World) {
		w.spawnCorpse(id)
		w.removeMonster(id, "corpse")
	})
}

// spawnCorpse leaves a corpse prop where the monster fell and invalidates
// the shared prop cache so idle monsters can notice it.
func (w *World) spawnCorpse(id string) {
	m, ok := w.monsters[id]
	if !ok {
		return
	}
	w.props = append(w.props, Prop{
		ID:       fmt.Sprintf("corpse-%s", id),
		Type:     "corpse",
		Position: m.Position,
	})
	w.propCache.Invalidate()
}

func (w *World) removeMonster(id, reason string) {
	m, ok := w.monsters[id]
	if !ok {
		return
	}
	w.chat.teardownFor(w, m, "removed")
	w.registry.unregisterAll(id)
	delete(w.monsters, id)
	lifecycle.Remove(context.Background(), w.publisher, w.currentTick,
		m.logRef(), lifecycle.RemovePayload{Reason: reason}, nil)
}

// ticks converts a duration in seconds to whole simulation ticks, rounding
// up so a deferred task never runs early.
func ticks(seconds float64) uint64 {
	if seconds <= 0 {
		return 0
	}
	return uint64(math.Ceil(seconds * tickRate))
}
