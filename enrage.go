package server

// modifierDefinition describes a time-limited stat modifier with apply and
// expire hooks. Only enrage exists today but the shape keeps the hooks and
// timer plumbing in one place.
type modifierDefinition struct {
	id       string
	duration float64
	onApply  func(w *World, m *monsterState)
	onExpire func(w *World, m *monsterState)
}

var enrageModifier = modifierDefinition{
	id:       "enrage",
	duration: enrageDuration,
	onApply: func(w *World, m *monsterState) {
		m.enraged = true
		w.presenter.PlayAnimation(m.ID, "enrage", m.stats.Type)
		w.presenter.PlaySound(m.ID, "enrage")
	},
	onExpire: func(w *World, m *monsterState) {
		m.enraged = false
	},
}

// ApplyEnrage grants a basic monster the temporary damage and speed
// multiplier. Re-application restarts the timer. Permanently enraged bosses
// ignore it; their enrage never expires.
func (w *World) ApplyEnrage(m *monsterState) {
	if m == nil || m.state == StateDead || m.bossEnraged {
		return
	}
	enrageModifier.onApply(w, m)
	m.enrageTimer = enrageModifier.duration
}

// tickModifiers drives modifier expiry. It runs for every living monster
// each tick, including sleepers, so the multiplier never outlives its clock.
func (w *World) tickModifiers(m *monsterState, dt float64) {
	if m.enrageTimer <= 0 {
		return
	}
	m.enrageTimer -= dt
	if m.enrageTimer <= 0 && !m.bossEnraged {
		enrageModifier.onExpire(w, m)
	}
}
