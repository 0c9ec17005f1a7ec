package server

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"saferoom/server/dialogue"
	"saferoom/server/logging"
	"saferoom/server/logging/lifecycle"
	"saferoom/server/stats"
)

// WorldConfig seeds and shapes a world instance.
type WorldConfig struct {
	Seed      int64
	PropCount int
	Walls     []Wall
}

// Deps carries the world's injectable collaborators. Zero values degrade to
// safe defaults: nop presenter, nop notifier, discarded events, the embedded
// dialogue table, and a ray caster over the configured walls.
type Deps struct {
	RayCaster RayCaster
	Presenter Presenter
	Notifier  Notifier
	Publisher logging.Publisher
	Dialogue  *dialogue.Table
}

// SpawnRecord is the map-format shape for one hostile spawn.
type SpawnRecord struct {
	Type     string `json:"type"`
	Position struct {
		X float64 `json:"x"`
		Z float64 `json:"z"`
	} `json:"position"`
	Level     int     `json:"level"`
	IsBoss    bool    `json:"isBoss"`
	RotationY float64 `json:"rotationY"`
}

// World is the authoritative simulation. It is single-threaded: Step and
// every mutating method must be called from one goroutine; the hub
// serializes access around it.
type World struct {
	seed     int64
	rng      *rand.Rand
	monsters map[string]*monsterState
	players  map[string]*playerState
	props    []Prop
	walls    []Wall

	rayCaster RayCaster
	registry  *tagRegistry
	chat      *ChatCoordinator
	propCache *PropCache
	deferred  *deferredQueue
	presenter Presenter
	notifier  Notifier
	publisher logging.Publisher
	catalog   *stats.Catalog

	currentTick   uint64
	nextMonsterID uint64
}

// NewWorld builds a world from config and collaborators.
func NewWorld(cfg WorldConfig, deps Deps) *World {
	w := &World{
		seed:     cfg.Seed,
		monsters: make(map[string]*monsterState),
		players:  make(map[string]*playerState),
		walls:    append([]Wall(nil), cfg.Walls...),
		registry: newTagRegistry(),
		deferred: newDeferredQueue(),
		catalog:  stats.Default(),
	}
	w.rng = w.subsystemRNG("world.behavior")
	w.propCache = newPropCache()

	w.rayCaster = deps.RayCaster
	if w.rayCaster == nil {
		w.rayCaster = &worldRayCaster{walls: w.walls}
	}
	w.presenter = deps.Presenter
	if w.presenter == nil {
		w.presenter = NopPresenter{}
	}
	w.notifier = deps.Notifier
	if w.notifier == nil {
		w.notifier = NopNotifier{}
	}
	w.publisher = deps.Publisher
	if w.publisher == nil {
		w.publisher = logging.NopPublisher{}
	}
	table := deps.Dialogue
	if table == nil {
		table = dialogue.MustLoad()
	}
	w.chat = newChatCoordinator(table, w.subsystemRNG("world.chat"))

	w.props = w.generateProps(cfg.PropCount)
	return w
}

// Step advances the simulation one fixed tick. Shared state — deferred
// tasks, the prop cache age, the global chat cooldown — moves exactly once
// here, before the sequential sorted-ID monster pass.
func (w *World) Step(now time.Time, dt float64) {
	_ = now
	w.currentTick++
	w.deferred.RunDue(w, w.currentTick)
	w.propCache.tick(dt)
	w.chat.Tick(w, dt)

	for _, id := range w.sortedMonsterIDs() {
		m, ok := w.monsters[id]
		if !ok {
			continue
		}
		w.tickModifiers(m, dt)
		if !w.schedule(m, dt) {
			continue
		}
		w.stepFSM(m, dt)
		w.updatePresentation(m)
	}
}

// SetNotifier swaps the notification collaborator. Used at wiring time:
// the hub is built around the world and then installs itself here.
func (w *World) SetNotifier(n Notifier) {
	if n == nil {
		n = NopNotifier{}
	}
	w.notifier = n
}

// CurrentTick reports the last completed tick.
func (w *World) CurrentTick() uint64 {
	return w.currentTick
}

func (w *World) sortedMonsterIDs() []string {
	ids := make([]string, 0, len(w.monsters))
	for id := range w.monsters {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SpawnMonster materializes a hostile actor from a map spawn record.
// Unrecognized types resolve to the catalog's documented default record and
// the spawn still succeeds.
func (w *World) SpawnMonster(rec SpawnRecord) *monsterState {
	record, _ := w.catalog.Lookup(rec.Type)
	level := rec.Level
	if level < 1 {
		level = 1
	}
	maxHealth := stats.ScaledMaxHealth(record.MaxHealth, level)

	w.nextMonsterID++
	m := &monsterState{
		stats: record,
		level: level,
		boss:  rec.IsBoss || record.Boss,
		state: StateIdle,
	}
	m.ID = fmt.Sprintf("monster-%d", w.nextMonsterID)
	m.Position = Vec3{X: rec.Position.X, Z: rec.Position.Z}
	m.Facing = rec.RotationY
	m.Health = maxHealth
	m.MaxHealth = maxHealth
	m.spawnPoint = m.Position
	m.patrolCenter = m.Position
	m.roamer = record.Roamer
	enterIdle(w, m)

	w.monsters[m.ID] = m
	w.registry.register(TagHostiles, m.ID)
	if m.boss {
		w.registry.register(TagBosses, m.ID)
	}

	lifecycle.Spawn(context.Background(), w.publisher, w.currentTick,
		m.logRef(), lifecycle.SpawnPayload{
			Type:      record.Type,
			Level:     level,
			Boss:      m.boss,
			PositionX: m.Position.X,
			PositionZ: m.Position.Z,
		}, nil)
	return m
}

// PopulateFromRecords ingests a batch of spawn records (the map format's
// enemy list).
func (w *World) PopulateFromRecords(records []SpawnRecord) {
	for _, rec := range records {
		w.SpawnMonster(rec)
	}
}

// Monster returns the live monster with the given ID.
func (w *World) Monster(id string) (*monsterState, bool) {
	m, ok := w.monsters[id]
	return m, ok
}

// MonsterIDs lists live monsters in deterministic order.
func (w *World) MonsterIDs() []string {
	return w.sortedMonsterIDs()
}

// AddPlayer inserts a connected player at the given position.
func (w *World) AddPlayer(id string, position Vec3) *playerState {
	p := &playerState{}
	p.ID = id
	p.Position = position
	p.Health = 100
	p.MaxHealth = 100
	w.players[id] = p
	return p
}

// RemovePlayer drops a disconnected player. Monsters targeting it see
// infinite distance on their next query.
func (w *World) RemovePlayer(id string) {
	delete(w.players, id)
}

// MovePlayer updates a player's authoritative position, clamped to bounds.
func (w *World) MovePlayer(id string, position Vec3) {
	p, ok := w.players[id]
	if !ok {
		return
	}
	position.X = clamp(position.X, 0, worldWidth)
	position.Z = clamp(position.Z, 0, worldDepth)
	p.Position = position
}

// referenceTarget resolves a monster's primary target: the nearest living
// player. Absence is normal, not an error.
func (w *World) referenceTarget(m *monsterState) (*playerState, bool) {
	var best *playerState
	bestDistance := math.Inf(1)
	for _, id := range w.sortedPlayerIDs() {
		p := w.players[id]
		if !p.alive() {
			continue
		}
		distance := planarDistance(m.Position, p.Position)
		if distance < bestDistance {
			best = p
			bestDistance = distance
		}
	}
	return best, best != nil
}

func (w *World) sortedPlayerIDs() []string {
	ids := make([]string, 0, len(w.players))
	for id := range w.players {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// InvalidatePropCache forces a rebuild on the next read, e.g. after world
// regeneration.
func (w *World) InvalidatePropCache() {
	w.propCache.Invalidate()
}

// Snapshot captures the wire-facing world state for broadcast.
func (w *World) Snapshot() ([]Monster, []Actor, []Prop) {
	monsters := make([]Monster, 0, len(w.monsters))
	for _, id := range w.sortedMonsterIDs() {
		monsters = append(monsters, w.monsters[id].snapshot())
	}
	players := make([]Actor, 0, len(w.players))
	for _, id := range w.sortedPlayerIDs() {
		players = append(players, w.players[id].snapshotActor())
	}
	props := append([]Prop(nil), w.props...)
	return monsters, players, props
}
