package ws

import (
	"tabletop-arena/internal/game"
	"tabletop-arena/internal/room"
)

// RoomManager is the slice of the room lifecycle the gateway drives. Every
// method is called on the hub goroutine.
type RoomManager interface {
	CreateRoom(a room.Actor, req room.CreateRequest) error
	JoinRoom(a room.Actor, roomID string) error
	LeaveRoom(a room.Actor, roomID string) error
	Move(a room.Actor, roomID string, mv game.Move) error
	OnDisconnect(conn string)
	SendLobby(conn string)
	Reject(conn string, err error)
	Lobby() []room.Summary
	RoomView(id string) (room.View, bool)
}

var _ RoomManager = (*room.Manager)(nil)
