package server

// Actor is the wire-facing snapshot shared by monsters and players.
type Actor struct {
	ID        string  `json:"id"`
	Position  Vec3    `json:"position"`
	Facing    float64 `json:"facing"`
	Health    float64 `json:"health"`
	MaxHealth float64 `json:"maxHealth"`
}

// actorState is the mutable core embedded in every simulated entity. It is
// owned exclusively by the entity's own update slice within a tick.
type actorState struct {
	Actor
	Velocity Vec3
}

// applyHealthDelta adjusts health, clamping to [0, MaxHealth], and returns
// the actual applied delta.
func (a *actorState) applyHealthDelta(delta float64) float64 {
	next := a.Health + delta
	if next < 0 {
		next = 0
	}
	if next > a.MaxHealth {
		next = a.MaxHealth
	}
	applied := next - a.Health
	a.Health = next
	return applied
}

func (a *actorState) snapshotActor() Actor {
	return a.Actor
}

// playerState is the server-side record for a connected player. Players are
// the monsters' reference targets; their own movement comes from the hub.
type playerState struct {
	actorState
	sessionID string
}

func (p *playerState) alive() bool {
	return p.Health > 0
}
