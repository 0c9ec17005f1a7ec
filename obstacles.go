package server

import (
	"fmt"
	"math"
)

// LayerMask selects which geometry layers a ray tests against.
type LayerMask uint8

const (
	LayerWalls LayerMask = 1 << iota
	LayerProps
)

// Wall is an axis-aligned blocking rectangle on the XZ plane. Walls are
// full-height: rays at any height test against the same footprint.
type Wall struct {
	ID    string  `json:"id"`
	X     float64 `json:"x"`
	Z     float64 `json:"z"`
	Width float64 `json:"width"`
	Depth float64 `json:"depth"`
}

// Prop is an interactable world object (furniture, containers, light
// sources). Props never block rays on the wall layer.
type Prop struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Position Vec3   `json:"position"`
}

var propTypes = []string{"barrel", "crate", "pot", "torch", "chest"}

// generateProps scatters interactable props across the floor using the
// world's subsystem RNG so identically seeded worlds match exactly.
func (w *World) generateProps(count int) []Prop {
	if count <= 0 {
		return nil
	}
	rng := w.subsystemRNG("world.props")
	props := make([]Prop, 0, count)
	for i := 0; i < count; i++ {
		props = append(props, Prop{
			ID:   fmt.Sprintf("prop-%d", i+1),
			Type: propTypes[rng.Intn(len(propTypes))],
			Position: Vec3{
				X: rng.Float64() * worldWidth,
				Z: rng.Float64() * worldDepth,
			},
		})
	}
	return props
}

// worldRayCaster tests rays against the world's wall set. It satisfies
// RayCaster for both perception and steering probes.
type worldRayCaster struct {
	walls []Wall
}

func (rc *worldRayCaster) Raycast(origin, dir Vec3, length float64, mask LayerMask) bool {
	if mask&LayerWalls == 0 {
		return false
	}
	flat := dir.Flat().Normalized()
	if flat.IsZero() || length <= 0 {
		return false
	}
	end := origin.Add(flat.Scale(length))
	for i := range rc.walls {
		if segmentIntersectsWall(origin.X, origin.Z, end.X, end.Z, rc.walls[i]) {
			return true
		}
	}
	return false
}

// segmentIntersectsWall is a 2D slab test of the segment against the wall's
// footprint rectangle.
func segmentIntersectsWall(x0, z0, x1, z1 float64, wall Wall) bool {
	dx := x1 - x0
	dz := z1 - z0

	tMin := 0.0
	tMax := 1.0

	for _, axis := range [2][3]float64{
		{dx, wall.X - x0, wall.X + wall.Width - x0},
		{dz, wall.Z - z0, wall.Z + wall.Depth - z0},
	} {
		d, lo, hi := axis[0], axis[1], axis[2]
		if math.Abs(d) < 1e-12 {
			if lo > 0 || hi < 0 {
				return false
			}
			continue
		}
		t0 := lo / d
		t1 := hi / d
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		if tMin > tMax {
			return false
		}
	}
	return true
}
