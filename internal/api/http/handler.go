package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"tabletop-arena/internal/api/ws"
	"tabletop-arena/internal/room"
)

const loopTimeout = 2 * time.Second

// RoomHandler answers read-only room queries. Reads are run on the hub
// goroutine so the registry is never touched from a request goroutine.
type RoomHandler struct {
	hub   *ws.Hub
	rooms ws.RoomManager
}

func NewRoomHandler(hub *ws.Hub, rooms ws.RoomManager) *RoomHandler {
	return &RoomHandler{hub: hub, rooms: rooms}
}

// ListRooms returns the lobby summary
// @Summary List rooms
// @Description Returns the reduced summary of every waiting or running room, oldest first
// @Tags Room
// @Produce json
// @Success 200 {object} LobbyResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/rooms [get]
func (h *RoomHandler) ListRooms(c *gin.Context) {
	var rooms []room.Summary
	if !h.onLoop(c, func() { rooms = h.rooms.Lobby() }) {
		return
	}
	c.JSON(http.StatusOK, LobbyResponse{Rooms: rooms})
}

// GetRoom returns one room
// @Summary Get room
// @Description Returns the public projection of a room, the same shape sent over the websocket
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} RoomResponse
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/rooms/{id} [get]
func (h *RoomHandler) GetRoom(c *gin.Context) {
	id := c.Param("id")
	var (
		view  room.View
		found bool
	)
	if !h.onLoop(c, func() { view, found = h.rooms.RoomView(id) }) {
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: room.ErrRoomNotFound.Error()})
		return
	}
	c.JSON(http.StatusOK, RoomResponse{Room: view})
}

// onLoop runs fn on the hub goroutine and writes a 503 when that fails.
func (h *RoomHandler) onLoop(c *gin.Context, fn func()) bool {
	ctx, cancel := context.WithTimeout(c.Request.Context(), loopTimeout)
	defer cancel()
	if err := h.hub.Do(ctx, fn); err != nil {
		log.Warn().Err(err).Str("path", c.FullPath()).Msg("hub unavailable")
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "server busy"})
		return false
	}
	return true
}

// Health reports liveness
// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}
