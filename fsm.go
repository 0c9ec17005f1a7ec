package server

// State identifies a monster's FSM state. Sleeping and Stasis are overlays
// carried as flags on the monster; they appear here so snapshots and logs can
// report them as the effective state.
type State uint8

const (
	StateIdle State = iota
	StateIdleInteracting
	StatePatrolling
	StateTracking
	StateAggro
	StateAttacking
	StateSleeping
	StateStasis
	StateDead
	StateSpecialAttack
	StateStunned
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateIdleInteracting:
		return "idle_interacting"
	case StatePatrolling:
		return "patrolling"
	case StateTracking:
		return "tracking"
	case StateAggro:
		return "aggro"
	case StateAttacking:
		return "attacking"
	case StateSleeping:
		return "sleeping"
	case StateStasis:
		return "stasis"
	case StateDead:
		return "dead"
	case StateSpecialAttack:
		return "special_attack"
	case StateStunned:
		return "stunned"
	default:
		return "unknown"
	}
}

type conditionID uint8

const (
	condTargetVisible conditionID = iota
	condIdleTimerInteract
	condIdleTimerPatrol
	condInteractionInvalid
	condInteractionComplete
	condBeyondDeaggro
	condTargetAttackable
	condWindupElapsed
	condSpecialReady
	condSpecialWindupElapsed
	condStunElapsed
)

type transition struct {
	from    State
	cond    conditionID
	to      State
	onEnter func(w *World, m *monsterState)
}

// basicTransitions is evaluated in order; the first row whose from-state and
// condition both match fires. Row order encodes priority: aggro rows sit
// above interaction and patrol rows so combat always preempts idling.
// Health depletion is handled before the table and Dead never appears as a
// from-state, which makes it absorbing by construction.
var basicTransitions = []transition{
	{from: StateIdle, cond: condTargetVisible, to: StateAggro, onEnter: enterAggro},
	{from: StateIdle, cond: condIdleTimerInteract, to: StateIdleInteracting, onEnter: enterIdleInteracting},
	{from: StateIdle, cond: condIdleTimerPatrol, to: StatePatrolling, onEnter: enterPatrolling},
	{from: StateIdleInteracting, cond: condTargetVisible, to: StateAggro, onEnter: enterAggro},
	{from: StateIdleInteracting, cond: condInteractionInvalid, to: StateIdle, onEnter: leaveInteractionIdle},
	{from: StateIdleInteracting, cond: condInteractionComplete, to: StatePatrolling, onEnter: leaveInteractionPatrolling},
	{from: StatePatrolling, cond: condTargetVisible, to: StateAggro, onEnter: enterAggro},
	{from: StateTracking, cond: condTargetVisible, to: StateAggro, onEnter: enterAggro},
	{from: StateTracking, cond: condBeyondDeaggro, to: StateIdle, onEnter: enterIdle},
	{from: StateAggro, cond: condBeyondDeaggro, to: StateTracking, onEnter: enterTracking},
	{from: StateAggro, cond: condTargetAttackable, to: StateAttacking, onEnter: enterAttacking},
	{from: StateAttacking, cond: condWindupElapsed, to: StateAggro, onEnter: applyAttackEdge},
}

// bossTransitions prepends the special-attack and stun rows to the basic
// table. The special row outranks the melee row so a ready special fires
// first; stun recovery drops back to Aggro since a stunned boss was engaged.
var bossTransitions = append([]transition{
	{from: StateStunned, cond: condStunElapsed, to: StateAggro, onEnter: enterAggro},
	{from: StateAggro, cond: condSpecialReady, to: StateSpecialAttack, onEnter: enterSpecialAttack},
	{from: StateSpecialAttack, cond: condSpecialWindupElapsed, to: StateAggro, onEnter: applySpecialAttackEdge},
}, basicTransitions...)

// perceptionFrame caches the per-tick perception queries so the table never
// casts more than one line-of-sight ray per monster per tick.
type perceptionFrame struct {
	distance    float64
	losComputed bool
	los         bool
}

func (f *perceptionFrame) lineOfSight(w *World, m *monsterState) bool {
	if !f.losComputed {
		f.losComputed = true
		f.los = w.hasLineOfSightToTarget(m)
	}
	return f.los
}

// stepFSM advances one monster through the transition table. The scheduler
// has already filtered out sleeping and stasis actors.
func (w *World) stepFSM(m *monsterState, dt float64) {
	if m.state == StateDead {
		return
	}
	if m.Health <= 0 {
		w.kill(m)
		return
	}

	m.tickTimers(dt)

	frame := perceptionFrame{distance: w.distanceToTarget(m)}

	table := basicTransitions
	if m.boss {
		table = bossTransitions
	}
	for i := range table {
		t := &table[i]
		if t.from != m.state {
			continue
		}
		if !w.evaluateCondition(m, &frame, t.cond) {
			continue
		}
		m.state = t.to
		if t.onEnter != nil {
			t.onEnter(w, m)
		}
		break
	}

	w.act(m, &frame, dt)
}

func (w *World) evaluateCondition(m *monsterState, frame *perceptionFrame, cond conditionID) bool {
	switch cond {
	case condTargetVisible:
		// Entering combat needs a confirmed sighting; leaving it does not.
		// The distance check runs first so the ray is only cast in range.
		return frame.distance <= m.stats.AggroRange && frame.lineOfSight(w, m)
	case condIdleTimerInteract:
		if m.stateTimer > 0 {
			return false
		}
		if w.randomFloat() >= idleInteractionChance {
			return false
		}
		return w.chat.beginInteraction(w, m)
	case condIdleTimerPatrol:
		return m.stateTimer <= 0
	case condInteractionInvalid:
		return !w.chat.interactionValid(w, m)
	case condInteractionComplete:
		return m.stateTimer <= 0
	case condBeyondDeaggro:
		return frame.distance > m.stats.DeaggroRange
	case condTargetAttackable:
		return frame.distance <= m.stats.AttackRange && m.attackTimer <= 0
	case condWindupElapsed:
		return m.windupTimer <= 0
	case condSpecialReady:
		return frame.distance <= m.stats.SpecialRange && m.specialTimer <= 0
	case condSpecialWindupElapsed:
		return m.windupTimer <= 0
	case condStunElapsed:
		return m.stunTimer <= 0
	default:
		return false
	}
}

func enterIdle(w *World, m *monsterState) {
	m.stateTimer = w.randomRange(idleDurationMin, idleDurationMax)
	m.Velocity = Vec3{}
}

func enterIdleInteracting(w *World, m *monsterState) {
	m.stateTimer = chatDuration
	m.Velocity = Vec3{}
}

func enterPatrolling(w *World, m *monsterState) {
	w.pickPatrolTarget(m)
	m.patrolWait = 0
}

func leaveInteractionIdle(w *World, m *monsterState) {
	w.chat.teardownFor(w, m, "invalid")
	enterIdle(w, m)
}

func leaveInteractionPatrolling(w *World, m *monsterState) {
	w.chat.teardownFor(w, m, "complete")
	enterPatrolling(w, m)
}

func enterTracking(w *World, m *monsterState) {
	m.lastKnownTarget, m.hasLastKnownTarget = w.targetPosition(m)
}

func enterAggro(w *World, m *monsterState) {
	w.chat.teardownFor(w, m, "aggro")
	if m.boss && !m.engaged {
		m.engaged = true
		w.notifyBossEncounterStart(m)
	}
}

func enterAttacking(w *World, m *monsterState) {
	m.windupTimer = m.attackWindup()
	m.Velocity = Vec3{}
	w.presenter.PlayAnimation(m.ID, "attack", m.stats.Type)
}

func enterSpecialAttack(w *World, m *monsterState) {
	m.windupTimer = m.attackWindup()
	m.Velocity = Vec3{}
	w.presenter.PlayAnimation(m.ID, "special", m.stats.Type)
	w.presenter.PlaySound(m.ID, "special")
}

// act runs the current state's per-tick behavior after transitions settle.
func (w *World) act(m *monsterState, frame *perceptionFrame, dt float64) {
	if m.feared {
		// Fear overrides the state behavior entirely; the flee direction
		// comes out of desiredDirection.
		w.moveMonster(m, frame, dt)
		return
	}
	switch m.state {
	case StateIdle:
		// Waiting on the idle timer; nothing to steer.
	case StateIdleInteracting:
		w.chat.faceInteraction(w, m)
	case StatePatrolling, StateTracking, StateAggro:
		w.moveMonster(m, frame, dt)
	case StateAttacking, StateSpecialAttack, StateStunned:
		// Rooted until the pending timer elapses.
	}
}
