package server

import (
	"testing"
)

// chatPair places two chat-capable goblins close together with a player far
// enough away to keep them awake but unprovoked.
func chatPair(w *World) (*monsterState, *monsterState) {
	a := spawnAt(w, "goblin", 50, 50, 1)
	b := spawnAt(w, "goblin", 53, 50, 1)
	w.AddPlayer("player-1", Vec3{X: 80, Z: 50})
	return a, b
}

func TestChatSessionPairsBothParticipants(t *testing.T) {
	w, presenter, _ := newTestWorld(1)
	a, b := chatPair(w)

	if !w.chat.beginInteraction(w, a) {
		t.Fatalf("chat session failed to start")
	}
	a.state = StateIdleInteracting

	if a.chatSessionID == 0 || b.chatSessionID != a.chatSessionID {
		t.Fatalf("participants not paired: %d vs %d", a.chatSessionID, b.chatSessionID)
	}
	if b.state != StateIdleInteracting {
		t.Fatalf("partner state = %v, want idle_interacting", b.state)
	}
	if w.chat.ActiveSessions() != 1 {
		t.Fatalf("active sessions = %d, want 1", w.chat.ActiveSessions())
	}
	if len(presenter.texts) == 0 {
		t.Fatalf("initiator line not displayed")
	}
}

func TestGlobalCooldownBlocksSecondSession(t *testing.T) {
	w, _, _ := newTestWorld(1)
	a, b := chatPair(w)
	c := spawnAt(w, "goblin", 50, 60, 1)
	d := spawnAt(w, "goblin", 53, 60, 1)
	_ = d

	if !w.chat.beginInteraction(w, a) {
		t.Fatalf("first session failed to start")
	}
	a.state = StateIdleInteracting
	_ = b

	// Any other initiation attempt must fail until the cooldown elapses.
	c.chatAttemptTimer = 0
	if w.chat.beginInteraction(w, c) {
		t.Fatalf("second interaction started during the global cooldown")
	}
	if c.chatSessionID != 0 {
		t.Fatalf("second session created during the global cooldown")
	}
	if w.chat.ActiveSessions() != 1 {
		t.Fatalf("active sessions = %d, want 1", w.chat.ActiveSessions())
	}

	// Cooldown ticks down once per world tick; afterwards a new pair works.
	w.chat.teardownFor(w, a, "test")
	a.state = StateIdle
	b.state = StateIdle
	stepWorld(w, int(chatGlobalCooldown*tickRate)+2)
	if w.chat.CooldownRemaining() > 0 {
		t.Fatalf("cooldown still %v after waiting it out", w.chat.CooldownRemaining())
	}
}

func TestOneSessionPerActor(t *testing.T) {
	w, _, _ := newTestWorld(1)
	a, _ := chatPair(w)

	if !w.chat.beginInteraction(w, a) {
		t.Fatalf("session failed to start")
	}
	a.state = StateIdleInteracting

	w.chat.cooldown = 0
	a.chatAttemptTimer = 0
	if w.chat.beginInteraction(w, a) {
		t.Fatalf("actor started a second session while one is active")
	}
}

func TestSecondLineRevealsAfterDelay(t *testing.T) {
	w, presenter, _ := newTestWorld(1)
	a, b := chatPair(w)

	if !w.chat.beginInteraction(w, a) {
		t.Fatalf("session failed to start")
	}
	a.state = StateIdleInteracting

	shown := len(presenter.texts)
	stepWorld(w, int(ticks(chatSecondLineDelay))+1)
	if len(presenter.texts) <= shown {
		t.Fatalf("partner line never revealed")
	}
	last := presenter.texts[len(presenter.texts)-1]
	if last[:len(b.ID)] != b.ID {
		t.Fatalf("second line %q not attributed to the partner", last)
	}
}

func TestTeardownCancelsPendingReveal(t *testing.T) {
	w, presenter, _ := newTestWorld(1)
	a, _ := chatPair(w)

	if !w.chat.beginInteraction(w, a) {
		t.Fatalf("session failed to start")
	}
	a.state = StateIdleInteracting

	w.chat.teardownFor(w, a, "test")
	shown := len(presenter.texts)
	stepWorld(w, int(ticks(chatSecondLineDelay))+1)
	if len(presenter.texts) != shown {
		t.Fatalf("delayed line revealed after teardown")
	}
}

func TestPartnerDeathTearsDownSession(t *testing.T) {
	w, _, _ := newTestWorld(1)
	a, b := chatPair(w)

	if !w.chat.beginInteraction(w, a) {
		t.Fatalf("session failed to start")
	}
	a.state = StateIdleInteracting

	w.TakeDamage(b, b.MaxHealth, Vec3{X: 55, Z: 50}, 0)
	stepWorld(w, 1)
	if a.chatSessionID != 0 {
		t.Fatalf("survivor still references the dead partner's session")
	}
	if w.chat.ActiveSessions() != 0 {
		t.Fatalf("session outlived a participant")
	}
	if a.state == StateIdleInteracting {
		t.Fatalf("survivor stuck in idle_interacting")
	}
}

func TestPropInteractionQuirkKeepsFartherPick(t *testing.T) {
	w, _, _ := newTestWorld(1)
	m := spawnAt(w, "slime", 50, 50, 1) // cannot chat, always uses props
	w.AddPlayer("player-1", Vec3{X: 80, Z: 50})
	w.props = []Prop{
		{ID: "prop-near", Type: "barrel", Position: Vec3{X: 51, Z: 50}},
		{ID: "prop-far", Type: "crate", Position: Vec3{X: 55, Z: 50}},
	}
	w.InvalidatePropCache()

	// The picker intentionally passes over the nearest prop about half the
	// time; across repeats both must show up.
	picked := make(map[string]bool)
	for i := 0; i < 64; i++ {
		m.interactionPropID = ""
		m.chatAttemptTimer = 0
		if !w.chat.beginInteraction(w, m) {
			t.Fatalf("prop interaction failed to start")
		}
		picked[m.interactionPropID] = true
	}
	if !picked["prop-near"] || !picked["prop-far"] {
		t.Fatalf("picker never varied: %v", picked)
	}
}

func TestInteractionInvalidWhenPropVanishes(t *testing.T) {
	w, _, _ := newTestWorld(1)
	m := spawnAt(w, "slime", 50, 50, 1)
	w.AddPlayer("player-1", Vec3{X: 80, Z: 50})
	w.props = []Prop{{ID: "prop-1", Type: "barrel", Position: Vec3{X: 51, Z: 50}}}
	w.InvalidatePropCache()

	m.chatAttemptTimer = 0
	if !w.chat.beginInteraction(w, m) {
		t.Fatalf("prop interaction failed to start")
	}
	m.state = StateIdleInteracting

	w.props = nil
	w.InvalidatePropCache()
	stepWorld(w, 1)
	if m.state != StateIdle {
		t.Fatalf("monster state = %v, want idle after its prop vanished", m.state)
	}
}
