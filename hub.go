package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"saferoom/server/logging"
)

// Hub owns the simulation loop and the WebSocket viewers. All world access
// goes through its mutex: the tick loop and connection handlers never touch
// the world concurrently. The hub is also the world's Notifier, turning
// gameplay notifications into broadcast frames.
type Hub struct {
	mu      sync.Mutex
	world   *World
	clients map[*hubClient]struct{}

	publisher logging.Publisher
	upgrader  websocket.Upgrader

	pending []notificationMessage
}

type hubClient struct {
	sessionID string
	playerID  string
	conn      *websocket.Conn
	send      chan []byte
	lastSeen  time.Time
}

func NewHub(world *World, publisher logging.Publisher) *Hub {
	if publisher == nil {
		publisher = logging.NopPublisher{}
	}
	return &Hub{
		world:     world,
		clients:   make(map[*hubClient]struct{}),
		publisher: publisher,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// World exposes the hub's world for wiring and tests. Callers outside the
// tick loop must not mutate it.
func (h *Hub) World() *World {
	return h.world
}

// Run drives the fixed-rate simulation loop until the context ends.
func (h *Hub) Run(ctx context.Context) {
	interval := time.Second / tickRate
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			h.step(now, interval.Seconds())
		}
	}
}

func (h *Hub) step(now time.Time, dt float64) {
	h.mu.Lock()
	h.world.Step(now, dt)
	h.dropStaleClients(now)
	frame, err := json.Marshal(h.stateMessageLocked())
	notifications := h.drainNotificationsLocked()
	h.mu.Unlock()

	if err != nil {
		return
	}
	h.broadcast(frame)
	for _, notification := range notifications {
		if data, err := json.Marshal(notification); err == nil {
			h.broadcast(data)
		}
	}
}

func (h *Hub) stateMessageLocked() stateMessage {
	monsters, players, props := h.world.Snapshot()
	return stateMessage{
		Type:            "state",
		ProtocolVersion: ProtocolVersion,
		Tick:            h.world.CurrentTick(),
		Monsters:        monsters,
		Players:         players,
		Props:           props,
	}
}

func (h *Hub) drainNotificationsLocked() []notificationMessage {
	if len(h.pending) == 0 {
		return nil
	}
	drained := h.pending
	h.pending = nil
	return drained
}

func (h *Hub) dropStaleClients(now time.Time) {
	for client := range h.clients {
		if now.Sub(client.lastSeen) > disconnectAfter {
			h.removeClientLocked(client)
		}
	}
}

func (h *Hub) broadcast(frame []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		select {
		case client.send <- frame:
		default:
			// Slow consumer: drop it rather than stall the tick.
			h.removeClientLocked(client)
		}
	}
}

func (h *Hub) removeClientLocked(client *hubClient) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)
	h.world.RemovePlayer(client.playerID)
}

// ServeWS upgrades an HTTP request into a viewer connection and spawns its
// player actor.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	client := &hubClient{
		sessionID: uuid.NewString(),
		conn:      conn,
		send:      make(chan []byte, 32),
		lastSeen:  time.Now(),
	}
	client.playerID = fmt.Sprintf("player-%s", client.sessionID)

	h.mu.Lock()
	h.clients[client] = struct{}{}
	h.world.AddPlayer(client.playerID, Vec3{X: worldWidth / 2, Z: worldDepth / 2})
	h.mu.Unlock()

	if joined, err := json.Marshal(joinMessage{
		Type:            "joined",
		ProtocolVersion: ProtocolVersion,
		SessionID:       client.sessionID,
		PlayerID:        client.playerID,
	}); err == nil {
		client.send <- joined
	}

	go h.writeLoop(client)
	go h.readLoop(client)
}

func (h *Hub) readLoop(client *hubClient) {
	defer func() {
		h.mu.Lock()
		h.removeClientLocked(client)
		h.mu.Unlock()
		client.conn.Close()
	}()

	for {
		_, data, err := client.conn.ReadMessage()
		if err != nil {
			return
		}
		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		h.mu.Lock()
		client.lastSeen = time.Now()
		switch msg.Type {
		case "move":
			if msg.Position != nil {
				h.world.MovePlayer(client.playerID, Vec3{X: msg.Position.X, Z: msg.Position.Z})
			}
		case "heartbeat":
			// lastSeen already refreshed.
		}
		h.mu.Unlock()
	}
}

func (h *Hub) writeLoop(client *hubClient) {
	ticker := time.NewTicker(heartbeatInterval)
	defer func() {
		ticker.Stop()
		client.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-client.send:
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				client.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := client.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// NotifyDamage queues a damage frame for broadcast after the current tick.
func (h *Hub) NotifyDamage(targetID, sourceID string, amount float64) {
	h.pending = append(h.pending, notificationMessage{
		Type:     "notification",
		Kind:     notifyKindDamage,
		Tick:     h.world.currentTick,
		ActorID:  targetID,
		SourceID: sourceID,
		Amount:   amount,
	})
}

// NotifyDeath queues a death frame carrying the kill reward.
func (h *Hub) NotifyDeath(actorID string, reward int, boss bool) {
	h.pending = append(h.pending, notificationMessage{
		Type:    "notification",
		Kind:    notifyKindDeath,
		Tick:    h.world.currentTick,
		ActorID: actorID,
		Reward:  reward,
		Boss:    boss,
	})
}

// NotifyBossEncounter queues an encounter start or defeat frame.
func (h *Hub) NotifyBossEncounter(actorID, bossType string, started bool) {
	h.pending = append(h.pending, notificationMessage{
		Type:     "notification",
		Kind:     notifyKindBossEncounter,
		Tick:     h.world.currentTick,
		ActorID:  actorID,
		BossType: bossType,
		Started:  started,
	})
}
