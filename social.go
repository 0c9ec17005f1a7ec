package server

import (
	"context"
	"math/rand"
	"sort"

	"saferoom/server/dialogue"
	"saferoom/server/logging"
	"saferoom/server/logging/social"
)

// chatSession pairs exactly two monsters. Participant references are weak
// id-based lookups revalidated every tick; the session never owns pointers.
type chatSession struct {
	id          uint64
	initiatorID string
	partnerID   string
	exchange    dialogue.Exchange
}

// ChatCoordinator owns cross-monster idle interactions: paired chat
// sessions gated by the global cooldown, and solo prop interactions. It is
// injectable, resettable state — never a package-level singleton — so tests
// can wipe it between cases.
type ChatCoordinator struct {
	table         *dialogue.Table
	rng           *rand.Rand
	cooldown      float64
	nextSessionID uint64
	sessions      map[uint64]*chatSession
}

func newChatCoordinator(table *dialogue.Table, rng *rand.Rand) *ChatCoordinator {
	return &ChatCoordinator{
		table:    table,
		rng:      rng,
		sessions: make(map[uint64]*chatSession),
	}
}

// Reset clears every session and the global cooldown.
func (c *ChatCoordinator) Reset() {
	c.cooldown = 0
	c.sessions = make(map[uint64]*chatSession)
}

// ActiveSessions reports how many paired sessions are live.
func (c *ChatCoordinator) ActiveSessions() int {
	return len(c.sessions)
}

// CooldownRemaining exposes the global cooldown for tests and diagnostics.
func (c *ChatCoordinator) CooldownRemaining() float64 {
	return c.cooldown
}

// Tick advances the global cooldown exactly once per world tick — never per
// actor, or cooldown duration would depend on population — and tears down
// any session whose participants went invalid since last tick.
func (c *ChatCoordinator) Tick(w *World, dt float64) {
	if c.cooldown > 0 {
		c.cooldown -= dt
	}
	for _, session := range c.sortedSessions() {
		if !c.sessionValid(w, session) {
			c.teardown(w, session, "participant_invalid")
		}
	}
}

func (c *ChatCoordinator) sortedSessions() []*chatSession {
	sessions := make([]*chatSession, 0, len(c.sessions))
	for _, session := range c.sessions {
		sessions = append(sessions, session)
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].id < sessions[j].id })
	return sessions
}

func (c *ChatCoordinator) sessionValid(w *World, session *chatSession) bool {
	return c.participantValid(w, session, session.initiatorID) &&
		c.participantValid(w, session, session.partnerID)
}

func (c *ChatCoordinator) participantValid(w *World, session *chatSession, id string) bool {
	m, ok := w.monsters[id]
	if !ok {
		return false
	}
	return m.alive() && !m.asleep && !m.stasis &&
		m.state == StateIdleInteracting && m.chatSessionID == session.id
}

// beginInteraction attempts to move the monster into an interaction: a
// paired chat session with the nearest eligible partner, or failing that a
// solo prop interaction. Returns true when the monster entered one. The
// FSM's transition row performs the actual state change; this only wires
// the references and dialogue.
func (c *ChatCoordinator) beginInteraction(w *World, m *monsterState) bool {
	if m.chatSessionID != 0 || m.interactionPropID != "" {
		return false
	}
	if m.chatAttemptTimer > 0 {
		return false
	}
	m.chatAttemptTimer = chatAttemptInterval

	if m.stats.CanChat && c.cooldown <= 0 {
		if partner := c.nearestEligiblePartner(w, m); partner != nil {
			c.startSession(w, m, partner)
			return true
		}
	}
	return c.startPropInteraction(w, m)
}

// nearestEligiblePartner scans the hostile tag for the closest monster that
// can join a session right now. Registry order is sorted, so equal distances
// resolve to the lower ID deterministically.
func (c *ChatCoordinator) nearestEligiblePartner(w *World, m *monsterState) *monsterState {
	var best *monsterState
	bestDistance := chatRange
	for _, id := range w.registry.members(TagHostiles) {
		if id == m.ID {
			continue
		}
		candidate, ok := w.monsters[id]
		if !ok || !c.eligiblePartner(candidate) {
			continue
		}
		distance := planarDistance(m.Position, candidate.Position)
		if distance <= bestDistance && (best == nil || distance < bestDistance) {
			best = candidate
			bestDistance = distance
		}
	}
	return best
}

func (c *ChatCoordinator) eligiblePartner(m *monsterState) bool {
	if !m.alive() || m.asleep || m.stasis || !m.stats.CanChat {
		return false
	}
	if m.chatSessionID != 0 || m.interactionPropID != "" {
		return false
	}
	return m.state == StateIdle || m.state == StatePatrolling
}

func (c *ChatCoordinator) startSession(w *World, initiator, partner *monsterState) {
	c.nextSessionID++
	session := &chatSession{
		id:          c.nextSessionID,
		initiatorID: initiator.ID,
		partnerID:   partner.ID,
		exchange:    c.table.Exchange(initiator.stats.Type, partner.stats.Type, c.rng),
	}
	c.sessions[session.id] = session
	c.cooldown = chatGlobalCooldown

	initiator.chatSessionID = session.id
	partner.chatSessionID = session.id
	// The initiator's transition row moves it into IdleInteracting; the
	// partner is redirected here, mid-whatever-it-was-doing.
	partner.state = StateIdleInteracting
	enterIdleInteracting(w, partner)

	initiator.Facing = directionToYaw(partner.Position.Sub(initiator.Position), initiator.Facing)
	partner.Facing = directionToYaw(initiator.Position.Sub(partner.Position), partner.Facing)

	w.presenter.SpawnFloatingText(initiator.ID, session.exchange.Opener)
	social.ChatStart(context.Background(), w.publisher, w.currentTick,
		initiator.logRef(), partner.logRef(), social.ChatStartPayload{
			InitiatorType: initiator.stats.Type,
			PartnerType:   partner.stats.Type,
		}, nil)
	social.ChatLine(context.Background(), w.publisher, w.currentTick,
		initiator.logRef(), social.ChatLinePayload{Text: session.exchange.Opener}, nil)

	if session.exchange.Reply != "" {
		sessionID := session.id
		w.deferred.Schedule(w.currentTick+ticks(chatSecondLineDelay), func(w *World) {
			session, ok := w.chat.sessions[sessionID]
			if !ok {
				return
			}
			partner, ok := w.monsters[session.partnerID]
			if !ok {
				return
			}
			w.presenter.SpawnFloatingText(partner.ID, session.exchange.Reply)
			social.ChatLine(context.Background(), w.publisher, w.currentTick,
				partner.logRef(), social.ChatLinePayload{Text: session.exchange.Reply, Second: true}, nil)
		})
	}
}

// startPropInteraction picks a prop from the shared cache for the monster to
// mutter at. The picker keeps a long-standing quirk: about half the time it
// passes over the nearest prop in favor of the second nearest.
func (c *ChatCoordinator) startPropInteraction(w *World, m *monsterState) bool {
	props := w.propCache.Props(w)
	type candidate struct {
		id       string
		distance float64
	}
	candidates := make([]candidate, 0, 2)
	for i := range props {
		distance := planarDistance(m.Position, props[i].Position)
		if distance > chatRange {
			continue
		}
		candidates = append(candidates, candidate{id: props[i].ID, distance: distance})
	}
	if len(candidates) == 0 {
		return false
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].distance != candidates[j].distance {
			return candidates[i].distance < candidates[j].distance
		}
		return candidates[i].id < candidates[j].id
	})

	chosen := candidates[0]
	if len(candidates) > 1 && c.rng.Float64() < 0.5 {
		chosen = candidates[1]
	}

	m.interactionPropID = chosen.id
	if line, ok := c.table.PropLine(m.stats.Type, c.rng); ok {
		w.presenter.SpawnFloatingText(m.ID, line)
		social.ChatLine(context.Background(), w.publisher, w.currentTick,
			m.logRef(), social.ChatLinePayload{Text: line}, nil)
	}
	social.ChatStart(context.Background(), w.publisher, w.currentTick,
		m.logRef(), propRef(chosen.id), social.ChatStartPayload{
			InitiatorType: m.stats.Type,
			PropTarget:    true,
		}, nil)
	return true
}

// interactionValid is the FSM's per-tick staleness check for the
// IdleInteracting state.
func (c *ChatCoordinator) interactionValid(w *World, m *monsterState) bool {
	if m.chatSessionID != 0 {
		session, ok := c.sessions[m.chatSessionID]
		if !ok {
			return false
		}
		otherID := session.partnerID
		if m.ID == session.partnerID {
			otherID = session.initiatorID
		}
		other, ok := w.monsters[otherID]
		if !ok {
			return false
		}
		return other.alive() && !other.asleep && !other.stasis &&
			other.state == StateIdleInteracting
	}
	if m.interactionPropID != "" {
		return c.propExists(w, m.interactionPropID)
	}
	return false
}

func (c *ChatCoordinator) propExists(w *World, id string) bool {
	props := w.propCache.Props(w)
	for i := range props {
		if props[i].ID == id {
			return true
		}
	}
	return false
}

// faceInteraction keeps a participant locked onto its partner or prop while
// the session runs.
func (c *ChatCoordinator) faceInteraction(w *World, m *monsterState) {
	m.Velocity = Vec3{}
	if m.chatSessionID != 0 {
		session, ok := c.sessions[m.chatSessionID]
		if !ok {
			return
		}
		otherID := session.partnerID
		if m.ID == session.partnerID {
			otherID = session.initiatorID
		}
		if other, ok := w.monsters[otherID]; ok {
			m.Facing = directionToYaw(other.Position.Sub(m.Position), m.Facing)
		}
		return
	}
	if m.interactionPropID != "" {
		props := w.propCache.Props(w)
		for i := range props {
			if props[i].ID == m.interactionPropID {
				m.Facing = directionToYaw(props[i].Position.Sub(m.Position), m.Facing)
				return
			}
		}
	}
}

// teardownFor releases whatever interaction the monster holds. Called on
// aggro override, death, removal and sleep; the partner's own FSM drops out
// of IdleInteracting on its next tick via the invalid-interaction row.
func (c *ChatCoordinator) teardownFor(w *World, m *monsterState, reason string) {
	if m.interactionPropID != "" {
		m.interactionPropID = ""
	}
	if m.chatSessionID == 0 {
		return
	}
	session, ok := c.sessions[m.chatSessionID]
	m.chatSessionID = 0
	if !ok {
		return
	}
	c.teardown(w, session, reason)
}

// teardown destroys a session and releases both participants' references.
// Deleting the session also cancels any pending delayed reveal, which
// checks session liveness before showing the second line.
func (c *ChatCoordinator) teardown(w *World, session *chatSession, reason string) {
	delete(c.sessions, session.id)
	for _, id := range []string{session.initiatorID, session.partnerID} {
		if participant, ok := w.monsters[id]; ok && participant.chatSessionID == session.id {
			participant.chatSessionID = 0
		}
	}
	social.ChatEnd(context.Background(), w.publisher, w.currentTick,
		logging.EntityRef{ID: session.initiatorID, Kind: logging.EntityKindMonster},
		social.ChatEndPayload{Reason: reason}, nil)
}
