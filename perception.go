package server

import "math"

// RayCaster is the world query interface shared by perception and steering.
// A true result means the ray hit something on the requested layers.
type RayCaster interface {
	Raycast(origin, dir Vec3, length float64, mask LayerMask) bool
}

// distanceToTarget measures the planar distance to the monster's reference
// target. No target is reported as infinite distance, never as an error.
func (w *World) distanceToTarget(m *monsterState) float64 {
	target, ok := w.referenceTarget(m)
	if !ok {
		return math.Inf(1)
	}
	return planarDistance(m.Position, target.Position)
}

// targetPosition returns the reference target's current position, if any.
func (w *World) targetPosition(m *monsterState) (Vec3, bool) {
	target, ok := w.referenceTarget(m)
	if !ok {
		return Vec3{}, false
	}
	return target.Position, true
}

// hasLineOfSightToTarget casts a single ray from the monster's eye height to
// the target's torso height against the wall layer only. Fails closed when
// the ray caster or target is unavailable.
func (w *World) hasLineOfSightToTarget(m *monsterState) bool {
	target, ok := w.referenceTarget(m)
	if !ok {
		return false
	}
	return hasLineOfSight(w.rayCaster, m.Position, target.Position)
}

func hasLineOfSight(rc RayCaster, from, to Vec3) bool {
	if rc == nil {
		return false
	}
	eye := Vec3{X: from.X, Y: from.Y + eyeHeight, Z: from.Z}
	torso := Vec3{X: to.X, Y: to.Y + torsoHeight, Z: to.Z}
	delta := torso.Sub(eye)
	length := planarDistance(eye, torso)
	if length == 0 {
		return true
	}
	return !rc.Raycast(eye, delta, length, LayerWalls)
}
