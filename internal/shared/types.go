package shared

import "encoding/json"

// Envelope is the frame exchanged over the websocket in both directions.
type Envelope struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data,omitempty"`
}

// Outbound frames marshal Data from any value.
type Outbound struct {
	Action string      `json:"action"`
	Data   interface{} `json:"data"`
}

// Inbound actions.
const (
	ActionCreateRoom   = "createRoom"
	ActionJoinRoom     = "joinRoom"
	ActionLeaveRoom    = "leaveRoom"
	ActionMove         = "move"
	ActionLobby        = "lobby"
	ActionRefreshToken = "refreshToken"
)

// Outbound events.
const (
	EventLobbySummary = "lobby-summary"
	EventWaiting      = "waiting"
	EventGameStarted  = "gameStarted"
	EventGameUpdate   = "gameUpdate"
	EventGameOver     = "gameOver"
	EventPlayerLeft   = "playerLeft"
	EventError        = "error"
	EventRefreshed    = "refreshed"
)
