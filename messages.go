package server

// stateMessage is the per-tick snapshot broadcast to every viewer.
type stateMessage struct {
	Type            string    `json:"type"`
	ProtocolVersion int       `json:"protocolVersion"`
	Tick            uint64    `json:"tick"`
	Monsters        []Monster `json:"monsters"`
	Players         []Actor   `json:"players"`
	Props           []Prop    `json:"props,omitempty"`
}

// joinMessage is sent once to a client right after its socket upgrades.
type joinMessage struct {
	Type            string `json:"type"`
	ProtocolVersion int    `json:"protocolVersion"`
	SessionID       string `json:"sessionId"`
	PlayerID        string `json:"playerId"`
}

// Notification kinds carried by notificationMessage.
const (
	notifyKindDamage        = "damage"
	notifyKindDeath         = "death"
	notifyKindBossEncounter = "boss_encounter"
)

// notificationMessage is a fire-and-forget gameplay event frame. Clients
// that miss one lose nothing authoritative; the next state frame is truth.
type notificationMessage struct {
	Type     string  `json:"type"`
	Kind     string  `json:"kind"`
	Tick     uint64  `json:"tick"`
	ActorID  string  `json:"actorId"`
	SourceID string  `json:"sourceId,omitempty"`
	Amount   float64 `json:"amount,omitempty"`
	Reward   int     `json:"reward,omitempty"`
	Boss     bool    `json:"boss,omitempty"`
	BossType string  `json:"bossType,omitempty"`
	Started  bool    `json:"started,omitempty"`
}

// clientMessage is the inbound command envelope from a viewer.
type clientMessage struct {
	Type     string `json:"type"`
	Position *struct {
		X float64 `json:"x"`
		Z float64 `json:"z"`
	} `json:"position,omitempty"`
}
