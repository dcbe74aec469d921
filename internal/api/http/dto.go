package http

import "tabletop-arena/internal/room"

// ErrorResponse is returned by every failing endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

// LobbyResponse lists every open or running room.
type LobbyResponse struct {
	Rooms []room.Summary `json:"rooms"`
}

// RoomResponse wraps the public projection of a single room.
type RoomResponse struct {
	Room room.View `json:"room"`
}

type LudoLimits struct {
	PlayerCounts []int `json:"playerCounts"`
	WinPinCounts []int `json:"winPinCounts"`
}

// ConfigResponse is the public subset of the server configuration.
type ConfigResponse struct {
	MinStake           int64      `json:"minStake"`
	TurnTimeoutMs      int64      `json:"turnTimeoutMs"`
	FirstTurnTimeoutMs int64      `json:"firstTurnTimeoutMs"`
	GameTypes          []string   `json:"gameTypes"`
	Ludo               LudoLimits `json:"ludo"`
}
