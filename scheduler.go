package server

import (
	"context"

	"saferoom/server/logging/lifecycle"
)

// schedule decides whether a monster's FSM runs this tick. Stasis suppresses
// everything; sleepers only run a low-frequency wake check. The sleep
// threshold sits strictly above the wake threshold so actors hovering at the
// boundary do not oscillate.
func (w *World) schedule(m *monsterState, dt float64) bool {
	if m.state == StateDead {
		return true
	}
	if m.stasis {
		m.Velocity = Vec3{}
		return false
	}

	if m.asleep {
		m.wakeCheckTimer -= dt
		if m.wakeCheckTimer > 0 {
			return false
		}
		m.wakeCheckTimer = wakeCheckInterval
		distance := w.distanceToTarget(m)
		if distance < wakeDistance {
			w.wakeMonster(m, distance)
			return true
		}
		return false
	}

	distance := w.distanceToTarget(m)
	if distance > sleepDistance {
		w.sleepMonster(m, distance)
		return false
	}
	return true
}

func (w *World) sleepMonster(m *monsterState, distance float64) {
	m.asleep = true
	m.wakeCheckTimer = wakeCheckInterval
	m.Velocity = Vec3{}
	w.chat.teardownFor(w, m, "sleep")
	lifecycle.Sleep(context.Background(), w.publisher, w.currentTick,
		m.logRef(), lifecycle.SchedulePayload{NearestPlayerDistance: distance}, nil)
}

func (w *World) wakeMonster(m *monsterState, distance float64) {
	if !m.asleep {
		return
	}
	m.asleep = false
	m.wakeCheckTimer = 0
	lifecycle.Wake(context.Background(), w.publisher, w.currentTick,
		m.logRef(), lifecycle.SchedulePayload{NearestPlayerDistance: distance}, nil)
}

// updatePresentation drives the rendering-adjacent callbacks behind distance
// gates. Skipping them is purely a cost optimization and must never feed
// back into FSM or combat state.
func (w *World) updatePresentation(m *monsterState) {
	if m.state == StateDead {
		return
	}
	distance := w.distanceToTarget(m)
	if distance <= animationGateDistance {
		category := "idle"
		if !m.Velocity.IsZero() {
			category = "walk"
		}
		w.presenter.PlayAnimation(m.ID, category, m.stats.Type)
	}
	if distance <= billboardGateDistance {
		w.presenter.UpdateBillboard(m.ID)
	}
}

// PropCache is the process-wide list of interactable world objects. It is
// rebuilt from the world at most once per refresh interval, or immediately
// after an explicit invalidation. Rebuilding is idempotent: any actor may
// trigger it without coordination.
type PropCache struct {
	props        []Prop
	refreshTimer float64
	dirty        bool
	rebuilds     uint64
}

func newPropCache() *PropCache {
	return &PropCache{dirty: true}
}

// tick ages the cache exactly once per world tick.
func (c *PropCache) tick(dt float64) {
	if c.refreshTimer > 0 {
		c.refreshTimer -= dt
	}
}

// Invalidate forces a rebuild on the next read.
func (c *PropCache) Invalidate() {
	c.dirty = true
}

// Reset clears the cache entirely; tests use it between cases.
func (c *PropCache) Reset() {
	c.props = nil
	c.refreshTimer = 0
	c.dirty = true
	c.rebuilds = 0
}

// Props returns the cached prop list, rebuilding it first when the cache is
// stale or was invalidated.
func (c *PropCache) Props(w *World) []Prop {
	if c.dirty || c.refreshTimer <= 0 {
		c.props = append(c.props[:0], w.props...)
		c.refreshTimer = propCacheRefreshInterval
		c.dirty = false
		c.rebuilds++
	}
	return c.props
}

// Rebuilds reports how many times the cache has been rebuilt.
func (c *PropCache) Rebuilds() uint64 {
	return c.rebuilds
}
