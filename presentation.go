package server

// Presenter is the narrow surface through which the simulation reaches the
// rendering side: animation by category with an optional variant, sound by
// category, floating text, and billboard refreshes. Implementations own all
// visual behavior; the core never depends on their results.
type Presenter interface {
	PlayAnimation(actorID, category, variant string)
	PlaySound(actorID, category string)
	SpawnFloatingText(actorID, text string)
	UpdateBillboard(actorID string)
}

// NopPresenter discards every callback. The zero value is ready to use.
type NopPresenter struct{}

func (NopPresenter) PlayAnimation(string, string, string) {}

func (NopPresenter) PlaySound(string, string) {}

func (NopPresenter) SpawnFloatingText(string, string) {}

func (NopPresenter) UpdateBillboard(string) {}

// Notifier receives fire-and-forget gameplay notifications for progression,
// telemetry and broadcast collaborators. No call returns anything and no
// call may block the tick.
type Notifier interface {
	NotifyDamage(targetID, sourceID string, amount float64)
	NotifyDeath(actorID string, reward int, boss bool)
	NotifyBossEncounter(actorID, bossType string, started bool)
}

// NopNotifier discards every notification. The zero value is ready to use.
type NopNotifier struct{}

func (NopNotifier) NotifyDamage(string, string, float64) {}

func (NopNotifier) NotifyDeath(string, int, bool) {}

func (NopNotifier) NotifyBossEncounter(string, string, bool) {}
