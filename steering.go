package server

import "math"

// desiredDirection computes the state-specific planar direction before
// avoidance. Fear overrides everything: a feared monster runs straight away
// from the fear source regardless of state.
func (w *World) desiredDirection(m *monsterState, frame *perceptionFrame) Vec3 {
	if m.frozen {
		return Vec3{}
	}
	if m.feared {
		away := m.Position.Sub(m.fearSource).Flat().Normalized()
		if away.IsZero() {
			away = yawToDirection(m.Facing)
		}
		return away
	}

	switch m.state {
	case StatePatrolling:
		if m.patrolWait > 0 {
			return Vec3{}
		}
		if !m.hasPatrolTarget {
			w.pickPatrolTarget(m)
		}
		if planarDistance(m.Position, m.patrolTarget) <= patrolArriveEps {
			m.hasPatrolTarget = false
			m.patrolWait = w.randomRange(patrolWaitMin, patrolWaitMax)
			return Vec3{}
		}
		return m.patrolTarget.Sub(m.Position).Flat().Normalized()
	case StateTracking:
		if !m.hasLastKnownTarget {
			return Vec3{}
		}
		return m.lastKnownTarget.Sub(m.Position).Flat().Normalized()
	case StateAggro:
		target, ok := w.targetPosition(m)
		if !ok {
			return Vec3{}
		}
		// Stop closing inside the stop band so combat feedback has room.
		// This is a presentation decision, not a collision constraint.
		if frame.distance <= m.stats.MinStopDistance {
			return Vec3{}
		}
		return target.Sub(m.Position).Flat().Normalized()
	default:
		return Vec3{}
	}
}

// steer resolves the desired direction against the wall layer: forward
// probe, then the two 45-degree probes, then a perpendicular fallback, then
// standing still. At most four rays per call.
func (w *World) steer(m *monsterState, desired Vec3) Vec3 {
	if desired.IsZero() {
		return desired
	}
	origin := Vec3{X: m.Position.X, Y: m.Position.Y + torsoHeight, Z: m.Position.Z}
	if !w.probeBlocked(origin, desired) {
		return desired
	}

	left := rotateYaw(desired, -avoidSideAngle)
	right := rotateYaw(desired, avoidSideAngle)
	leftBlocked := w.probeBlocked(origin, left)
	rightBlocked := w.probeBlocked(origin, right)

	switch {
	case !leftBlocked && rightBlocked:
		return left
	case leftBlocked && !rightBlocked:
		return right
	case !leftBlocked && !rightBlocked:
		// Both clear: break the tie from the actor's own position so the
		// choice is stable across frames and differs between neighbors.
		if preferLeft(m.Position) {
			return left
		}
		return right
	}

	perpendicular := rotateYaw(desired, math.Pi/2)
	if !w.probeBlocked(origin, perpendicular) {
		return perpendicular
	}
	// Fully boxed in: stand still rather than grind into a wall.
	return Vec3{}
}

func (w *World) probeBlocked(origin, dir Vec3) bool {
	if w.rayCaster == nil {
		// No physics world: report blocked, matching perception's
		// fail-closed contract.
		return true
	}
	return w.rayCaster.Raycast(origin, dir, avoidProbeLength, LayerWalls)
}

// preferLeft derives the tie-break side from the quantized position.
func preferLeft(pos Vec3) bool {
	qx := int64(math.Floor(pos.X * 4))
	qz := int64(math.Floor(pos.Z * 4))
	return (qx+qz)&1 == 0
}

// moveMonster applies steering and integrates position for one tick.
func (w *World) moveMonster(m *monsterState, frame *perceptionFrame, dt float64) {
	desired := w.desiredDirection(m, frame)
	chosen := w.steer(m, desired)
	m.Velocity = chosen.Scale(m.moveSpeed())
	if chosen.IsZero() {
		return
	}
	next := m.Position.Add(m.Velocity.Scale(dt))
	next.X = clamp(next.X, actorRadius, worldWidth-actorRadius)
	next.Z = clamp(next.Z, actorRadius, worldDepth-actorRadius)
	m.Position = next
	m.Facing = directionToYaw(chosen, m.Facing)
}

// pickPatrolTarget rolls a fresh destination around the patrol center.
// Roamers orbit their spawn point with a larger radius; everyone else
// wanders around wherever they currently stand.
func (w *World) pickPatrolTarget(m *monsterState) {
	center := m.Position
	radius := m.stats.PatrolRadius
	if m.roamer {
		center = m.spawnPoint
		radius *= roamerPatrolScale
	}
	angle := w.randomAngle()
	distance := w.randomRange(radius*0.3, radius)
	m.patrolTarget = Vec3{
		X: clamp(center.X+math.Sin(angle)*distance, actorRadius, worldWidth-actorRadius),
		Z: clamp(center.Z+math.Cos(angle)*distance, actorRadius, worldDepth-actorRadius),
	}
	m.hasPatrolTarget = true
}
