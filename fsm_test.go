package server

import (
	"testing"
)

func TestAggroEntryRequiresLineOfSight(t *testing.T) {
	w, _, _ := newTestWorld(1)
	m := spawnAt(w, "skeleton", 50, 50, 1)
	w.AddPlayer("player-1", Vec3{X: 55, Z: 50}) // inside aggro range 12

	// Walls everywhere: in range but no sighting, so no aggro.
	w.rayCaster = blockedCaster
	stepWorld(w, 20)
	if m.state == StateAggro {
		t.Fatalf("monster aggroed without line of sight")
	}

	w.rayCaster = clearCaster
	stepWorld(w, 1)
	if m.state != StateAggro {
		t.Fatalf("monster state = %v, want aggro once sighted", m.state)
	}
}

func TestDeaggroIgnoresLineOfSight(t *testing.T) {
	w, _, _ := newTestWorld(1)
	m := spawnAt(w, "skeleton", 50, 50, 1)
	w.AddPlayer("player-1", Vec3{X: 52, Z: 50})
	stepWorld(w, 1)
	if m.state != StateAggro {
		t.Fatalf("setup: monster state = %v, want aggro", m.state)
	}

	// Losing sight while still in range must not break engagement.
	w.rayCaster = blockedCaster
	stepWorld(w, 5)
	if m.state != StateAggro && m.state != StateAttacking {
		t.Fatalf("monster state = %v, want to stay engaged behind cover", m.state)
	}

	// Only distance beyond the deaggro range drops the engagement.
	w.MovePlayer("player-1", Vec3{X: 50 + m.stats.DeaggroRange + 1, Z: 50})
	stepWorld(w, 1)
	if m.state != StateTracking {
		t.Fatalf("monster state = %v, want tracking after target left deaggro range", m.state)
	}
}

func TestTrackingReturnsToIdleBeyondDeaggro(t *testing.T) {
	w, _, _ := newTestWorld(1)
	m := spawnAt(w, "skeleton", 50, 50, 1)
	w.AddPlayer("player-1", Vec3{X: 52, Z: 50})
	stepWorld(w, 1)

	m.state = StateTracking
	w.MovePlayer("player-1", Vec3{X: 50 + m.stats.DeaggroRange + 5, Z: 50})
	stepWorld(w, 1)
	if m.state != StateIdle {
		t.Fatalf("monster state = %v, want idle", m.state)
	}
}

func TestIdleTimerExpiryLeadsToPatrolling(t *testing.T) {
	w, _, _ := newTestWorld(3)
	m := spawnAt(w, "slime", 50, 50, 1) // slime cannot chat
	// Keep the monster awake but unprovoked: outside aggro, inside sleep.
	w.AddPlayer("player-1", Vec3{X: 50 + m.stats.AggroRange + 5, Z: 50})

	// Idle waits at most idleDurationMax seconds.
	stepWorld(w, int(idleDurationMax*tickRate)+int(chatAttemptInterval*tickRate)+5)
	if m.state != StatePatrolling && m.state != StateIdleInteracting {
		t.Fatalf("monster state = %v, want patrolling after idle timer", m.state)
	}
}

func TestDeadIsAbsorbing(t *testing.T) {
	w, _, _ := newTestWorld(1)
	m := spawnAt(w, "skeleton", 50, 50, 1)
	w.AddPlayer("player-1", Vec3{X: 52, Z: 50})

	w.TakeDamage(m, m.MaxHealth+10, Vec3{X: 52, Z: 50}, 0)
	if m.state != StateDead {
		t.Fatalf("monster state = %v, want dead", m.state)
	}

	// Nothing moves a dead monster: not damage, not proximity, not time.
	w.TakeDamage(m, 50, Vec3{X: 52, Z: 50}, 1)
	stepWorld(w, 10)
	if m.state != StateDead {
		t.Fatalf("monster left dead state: %v", m.state)
	}
	if m.Health != 0 {
		t.Fatalf("dead monster health = %v, want 0", m.Health)
	}
}

func TestStasisSuppressesEvaluation(t *testing.T) {
	w, _, _ := newTestWorld(1)
	m := spawnAt(w, "skeleton", 50, 50, 1)
	w.AddPlayer("player-1", Vec3{X: 52, Z: 50})

	m.SetStasis(true)
	stepWorld(w, 20)
	if m.state != StateIdle {
		t.Fatalf("monster in stasis changed state to %v", m.state)
	}
	if m.effectiveState() != StateStasis {
		t.Fatalf("effective state = %v, want stasis", m.effectiveState())
	}

	m.SetStasis(false)
	stepWorld(w, 1)
	if m.state != StateAggro {
		t.Fatalf("monster state = %v, want aggro after stasis lifted", m.state)
	}
}

func TestAggroOverridesInteraction(t *testing.T) {
	w, _, _ := newTestWorld(1)
	a := spawnAt(w, "goblin", 50, 50, 1)
	b := spawnAt(w, "goblin", 52, 50, 1)
	// Awake but unprovoked.
	w.AddPlayer("player-1", Vec3{X: 80, Z: 50})

	a.chatAttemptTimer = 0
	if !w.chat.beginInteraction(w, a) {
		t.Fatalf("expected chat session to start")
	}
	a.state = StateIdleInteracting
	if b.state != StateIdleInteracting {
		t.Fatalf("partner state = %v, want idle_interacting", b.state)
	}

	// A player stepping into sight pulls the initiator straight to aggro.
	w.MovePlayer("player-1", Vec3{X: 53, Z: 50})
	stepWorld(w, 1)
	if a.state != StateAggro && a.state != StateAttacking {
		t.Fatalf("initiator state = %v, want aggro override", a.state)
	}
	if a.chatSessionID != 0 {
		t.Fatalf("initiator still holds a chat session after aggro")
	}
}
