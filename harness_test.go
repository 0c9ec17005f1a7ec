package server

import (
	"fmt"
	"time"
)

const testDT = 1.0 / tickRate

type recordingPresenter struct {
	animations []string
	sounds     []string
	texts      []string
	billboards []string
}

func (p *recordingPresenter) PlayAnimation(actorID, category, variant string) {
	p.animations = append(p.animations, fmt.Sprintf("%s:%s", actorID, category))
}

func (p *recordingPresenter) PlaySound(actorID, category string) {
	p.sounds = append(p.sounds, fmt.Sprintf("%s:%s", actorID, category))
}

func (p *recordingPresenter) SpawnFloatingText(actorID, text string) {
	p.texts = append(p.texts, fmt.Sprintf("%s:%s", actorID, text))
}

func (p *recordingPresenter) UpdateBillboard(actorID string) {
	p.billboards = append(p.billboards, actorID)
}

type deathNote struct {
	actorID string
	reward  int
	boss    bool
}

type encounterNote struct {
	actorID  string
	bossType string
	started  bool
}

type recordingNotifier struct {
	damages    []string
	deaths     []deathNote
	encounters []encounterNote
}

func (n *recordingNotifier) NotifyDamage(targetID, sourceID string, amount float64) {
	n.damages = append(n.damages, fmt.Sprintf("%s<-%s:%g", targetID, sourceID, amount))
}

func (n *recordingNotifier) NotifyDeath(actorID string, reward int, boss bool) {
	n.deaths = append(n.deaths, deathNote{actorID: actorID, reward: reward, boss: boss})
}

func (n *recordingNotifier) NotifyBossEncounter(actorID, bossType string, started bool) {
	n.encounters = append(n.encounters, encounterNote{actorID: actorID, bossType: bossType, started: started})
}

// rayCasterFunc adapts a function to the RayCaster interface.
type rayCasterFunc func(origin, dir Vec3, length float64, mask LayerMask) bool

func (f rayCasterFunc) Raycast(origin, dir Vec3, length float64, mask LayerMask) bool {
	return f(origin, dir, length, mask)
}

var clearCaster = rayCasterFunc(func(Vec3, Vec3, float64, LayerMask) bool { return false })

var blockedCaster = rayCasterFunc(func(Vec3, Vec3, float64, LayerMask) bool { return true })

func newTestWorld(seed int64) (*World, *recordingPresenter, *recordingNotifier) {
	presenter := &recordingPresenter{}
	notifier := &recordingNotifier{}
	w := NewWorld(WorldConfig{Seed: seed}, Deps{
		RayCaster: clearCaster,
		Presenter: presenter,
		Notifier:  notifier,
	})
	return w, presenter, notifier
}

func spawnAt(w *World, typeName string, x, z float64, level int) *monsterState {
	rec := SpawnRecord{Type: typeName, Level: level}
	rec.Position.X = x
	rec.Position.Z = z
	return w.SpawnMonster(rec)
}

func stepWorld(w *World, n int) {
	for i := 0; i < n; i++ {
		w.Step(time.Time{}, testDT)
	}
}
