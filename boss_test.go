package server

import (
	"testing"
)

func TestBossEnrageTriggersAtThreshold(t *testing.T) {
	w, _, _ := newTestWorld(1)
	m := spawnAt(w, "skeleton_lord", 50, 50, 1)

	// Just above the threshold: no enrage yet.
	above := m.MaxHealth * (1 - bossEnrageHealthFraction)
	w.TakeDamage(m, above-1, Vec3{X: 52, Z: 50}, 0)
	if m.bossEnraged {
		t.Fatalf("boss enraged above the health threshold")
	}

	w.TakeDamage(m, 2, Vec3{X: 52, Z: 50}, 0)
	if !m.bossEnraged || !m.enraged {
		t.Fatalf("boss did not enrage at %v health fraction", m.healthFraction())
	}
}

func TestBossEnrageIsOneWay(t *testing.T) {
	w, _, _ := newTestWorld(1)
	m := spawnAt(w, "skeleton_lord", 50, 50, 1)
	w.AddPlayer("player-1", Vec3{X: 52, Z: 50})

	w.TakeDamage(m, m.MaxHealth*0.8, Vec3{X: 52, Z: 50}, 0)
	if !m.bossEnraged {
		t.Fatalf("setup: boss should be enraged")
	}

	// Healing back above the threshold must not clear it, and no amount of
	// time expires it.
	m.applyHealthDelta(m.MaxHealth * 0.7)
	stepWorld(w, int(enrageDuration*tickRate)*2)
	if !m.bossEnraged || !m.enraged {
		t.Fatalf("boss enrage deactivated")
	}
}

func TestBossEnrageShortensCooldowns(t *testing.T) {
	w, _, _ := newTestWorld(1)
	m := spawnAt(w, "skeleton_lord", 50, 50, 1)

	baseAttack := m.attackCooldown()
	baseSpecial := m.specialCooldown()
	baseWindup := m.attackWindup()

	w.TakeDamage(m, m.MaxHealth*0.8, Vec3{X: 52, Z: 50}, 0)

	if m.attackCooldown() != baseAttack*bossEnrageCooldownFactor {
		t.Fatalf("attack cooldown = %v, want %v", m.attackCooldown(), baseAttack*bossEnrageCooldownFactor)
	}
	if m.specialCooldown() != baseSpecial*bossEnrageCooldownFactor {
		t.Fatalf("special cooldown = %v, want %v", m.specialCooldown(), baseSpecial*bossEnrageCooldownFactor)
	}
	if m.attackWindup() != baseWindup*bossEnrageCooldownFactor {
		t.Fatalf("windup = %v, want %v", m.attackWindup(), baseWindup*bossEnrageCooldownFactor)
	}
}

func TestBossSpecialAttack(t *testing.T) {
	w, _, _ := newTestWorld(1)
	m := spawnAt(w, "skeleton_lord", 50, 50, 1)
	p := w.AddPlayer("player-1", Vec3{X: 54, Z: 50}) // inside special range 5

	m.state = StateAggro
	m.engaged = true
	stepWorld(w, 1)
	if m.state != StateSpecialAttack {
		t.Fatalf("boss state = %v, want special_attack with the special ready", m.state)
	}

	stepWorld(w, int(ticks(attackWindupTime))+1)
	if m.state != StateAggro {
		t.Fatalf("boss state = %v, want aggro after the special lands", m.state)
	}
	expected := p.MaxHealth - float64(int(m.damage()*specialDamageMultiplier))
	if p.Health != expected {
		t.Fatalf("player health = %v, want %v after the special", p.Health, expected)
	}
	if m.specialTimer <= 0 {
		t.Fatalf("special cooldown not started")
	}
}

func TestBossStunRecovery(t *testing.T) {
	w, _, _ := newTestWorld(1)
	m := spawnAt(w, "skeleton_lord", 50, 50, 1)
	w.AddPlayer("player-1", Vec3{X: 70, Z: 50})
	m.engaged = true

	m.Stun(1.0)
	if m.state != StateStunned {
		t.Fatalf("boss state = %v, want stunned", m.state)
	}

	stepWorld(w, int(1.0*tickRate)+2)
	if m.state == StateStunned {
		t.Fatalf("boss never recovered from the stun")
	}
}

func TestBasicMonsterIgnoresStun(t *testing.T) {
	w, _, _ := newTestWorld(1)
	m := spawnAt(w, "skeleton", 50, 50, 1)
	m.Stun(1.0)
	if m.state == StateStunned {
		t.Fatalf("basic monster entered the stunned state")
	}
}

func TestBossEncounterNotifications(t *testing.T) {
	w, _, notifier := newTestWorld(1)
	m := spawnAt(w, "skeleton_lord", 50, 50, 2)
	w.AddPlayer("player-1", Vec3{X: 55, Z: 50})

	stepWorld(w, 1)
	if len(notifier.encounters) != 1 || !notifier.encounters[0].started {
		t.Fatalf("encounter start notification missing: %+v", notifier.encounters)
	}

	w.TakeDamage(m, m.MaxHealth, Vec3{X: 55, Z: 50}, 0)
	if len(notifier.encounters) != 2 || notifier.encounters[1].started {
		t.Fatalf("encounter defeat notification missing: %+v", notifier.encounters)
	}
	if len(notifier.deaths) != 1 || !notifier.deaths[0].boss {
		t.Fatalf("boss death note missing boss flag: %+v", notifier.deaths)
	}
}
