package server

import (
	"saferoom/server/stats"
)

// Monster is the wire-facing snapshot of a hostile actor.
type Monster struct {
	Actor
	Type    string `json:"type"`
	Level   int    `json:"level"`
	State   string `json:"state"`
	Boss    bool   `json:"boss,omitempty"`
	Enraged bool   `json:"enraged,omitempty"`
}

// monsterState carries everything a hostile actor owns: resolved stats, FSM
// state, timers, patrol bookkeeping, scheduler overlays and the boss extras.
// Timers count down in seconds of tick delta time and die with the actor.
type monsterState struct {
	actorState
	stats stats.Record
	level int

	state      State
	stateTimer float64

	attackTimer float64
	windupTimer float64

	patrolCenter    Vec3
	patrolTarget    Vec3
	hasPatrolTarget bool
	patrolWait      float64
	spawnPoint      Vec3

	// Overlays and status flags.
	asleep  bool
	stasis  bool
	feared  bool
	frozen  bool
	enraged bool
	roamer  bool

	fearSource  Vec3
	fearTimer   float64
	frozenTimer float64
	enrageTimer float64

	wakeCheckTimer    float64
	chatAttemptTimer  float64
	chatSessionID     uint64
	interactionPropID string

	lastKnownTarget    Vec3
	hasLastKnownTarget bool

	// Boss extras.
	boss         bool
	bossEnraged  bool
	specialTimer float64
	stunTimer    float64
	engaged      bool

	deathNotified bool
}

// effectiveState folds the scheduler overlays into the reported state.
func (m *monsterState) effectiveState() State {
	if m.state == StateDead {
		return StateDead
	}
	if m.stasis {
		return StateStasis
	}
	if m.asleep {
		return StateSleeping
	}
	return m.state
}

func (m *monsterState) snapshot() Monster {
	return Monster{
		Actor:   m.snapshotActor(),
		Type:    m.stats.Type,
		Level:   m.level,
		State:   m.effectiveState().String(),
		Boss:    m.boss,
		Enraged: m.enraged,
	}
}

func (m *monsterState) alive() bool {
	return m.state != StateDead
}

// damage returns attack damage with the enrage multiplier applied.
func (m *monsterState) damage() float64 {
	if m.enraged {
		return m.stats.Damage * enrageDamageMultiplier
	}
	return m.stats.Damage
}

// moveSpeed returns movement speed with the enrage multiplier applied.
func (m *monsterState) moveSpeed() float64 {
	if m.enraged {
		return m.stats.MoveSpeed * enrageSpeedMultiplier
	}
	return m.stats.MoveSpeed
}

// attackCooldown is the post-attack delay. Boss enrage shortens it for good.
func (m *monsterState) attackCooldown() float64 {
	cooldown := m.stats.AttackCooldown
	if m.bossEnraged {
		cooldown *= bossEnrageCooldownFactor
	}
	return cooldown
}

// attackWindup is the delay between entering an attack state and the hit
// landing, shortened by the same factor once a boss enrages.
func (m *monsterState) attackWindup() float64 {
	windup := attackWindupTime
	if m.bossEnraged {
		windup *= bossEnrageCooldownFactor
	}
	return windup
}

func (m *monsterState) specialCooldown() float64 {
	cooldown := m.stats.SpecialCooldown
	if m.bossEnraged {
		cooldown *= bossEnrageCooldownFactor
	}
	return cooldown
}

// healthFraction is clamped before any dependent computation.
func (m *monsterState) healthFraction() float64 {
	if m.MaxHealth <= 0 {
		return 0
	}
	return clamp(m.Health/m.MaxHealth, 0, 1)
}

// tickTimers advances every countdown owned by the monster. The enrage
// timer is excluded; modifier expiry runs in tickModifiers so it applies to
// sleeping monsters too.
func (m *monsterState) tickTimers(dt float64) {
	if m.stateTimer > 0 {
		m.stateTimer -= dt
	}
	if m.attackTimer > 0 {
		m.attackTimer -= dt
	}
	if m.windupTimer > 0 {
		m.windupTimer -= dt
	}
	if m.patrolWait > 0 {
		m.patrolWait -= dt
	}
	if m.specialTimer > 0 {
		m.specialTimer -= dt
	}
	if m.stunTimer > 0 {
		m.stunTimer -= dt
	}
	if m.chatAttemptTimer > 0 {
		m.chatAttemptTimer -= dt
	}
	if m.fearTimer > 0 {
		m.fearTimer -= dt
		if m.fearTimer <= 0 {
			m.feared = false
		}
	}
	if m.frozenTimer > 0 {
		m.frozenTimer -= dt
		if m.frozenTimer <= 0 {
			m.frozen = false
		}
	}
}

// ApplyFear makes the monster flee from the source for the duration.
func (m *monsterState) ApplyFear(source Vec3, duration float64) {
	if m.state == StateDead || duration <= 0 {
		return
	}
	m.feared = true
	m.fearSource = source
	m.fearTimer = duration
}

// ApplyFreeze roots the monster in place for the duration.
func (m *monsterState) ApplyFreeze(duration float64) {
	if m.state == StateDead || duration <= 0 {
		return
	}
	m.frozen = true
	m.frozenTimer = duration
	m.Velocity = Vec3{}
}

// Stun forces a boss into the Stunned state for the given duration. Basic
// monsters ignore it; their table has no stun rows.
func (m *monsterState) Stun(duration float64) {
	if !m.boss || m.state == StateDead {
		return
	}
	m.state = StateStunned
	m.stunTimer = duration
	m.Velocity = Vec3{}
}

// SetStasis toggles the external all-AI-off override.
func (m *monsterState) SetStasis(enabled bool) {
	m.stasis = enabled
	if enabled {
		m.Velocity = Vec3{}
	}
}
