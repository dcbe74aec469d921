package ws

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabletop-arena/internal/game"
)

func TestDecodeMoves(t *testing.T) {
	d := newDecoder()
	cases := []struct {
		raw  string
		want game.Move
	}{
		{`{"action":"move","data":{"roomId":"r","kind":"cell","cell":4}}`, game.CellMove{Cell: 4}},
		{`{"action":"move","data":{"roomId":"r","kind":"checkers","from":{"x":2,"y":5},"to":{"x":3,"y":4}}}`, game.BoardMove{From: game.Point{X: 2, Y: 5}, To: game.Point{X: 3, Y: 4}}},
		{`{"action":"move","data":{"roomId":"r","kind":"chess","from":"e2","to":"e4"}}`, game.SquareMove{From: "e2", To: "e4"}},
		{`{"action":"move","data":{"roomId":"r","kind":"roll"}}`, game.RollMove{}},
		{`{"action":"move","data":{"roomId":"r","kind":"pin","pin":0}}`, game.PinMove{Pin: 0}},
	}
	for _, tc := range cases {
		ev, err := d.decode([]byte(tc.raw))
		require.NoError(t, err, tc.raw)
		assert.Equal(t, moveCommand{RoomID: "r", Move: tc.want}, ev, tc.raw)
	}
}

func TestDecodeRejects(t *testing.T) {
	d := newDecoder()
	cases := []struct {
		raw string
		msg string
	}{
		{`not json`, "Malformed message"},
		{`{"data":{}}`, "Malformed message"},
		{`{"action":"fly"}`, "Unknown action"},
		{`{"action":"joinRoom","data":5}`, "Malformed message"},
		{`{"action":"leaveRoom"}`, "Invalid payload: roomId (required)"},
		{`{"action":"createRoom","data":{"stake":-1}}`, "Invalid payload: type (required), stake (gte)"},
		{`{"action":"move","data":{"roomId":"r","kind":"teleport"}}`, "Invalid payload: kind (oneof)"},
		{`{"action":"move","data":{"roomId":"r","kind":"cell"}}`, "please select valid Move"},
		{`{"action":"move","data":{"roomId":"r","kind":"cell","cell":-1}}`, "Invalid payload: cell (min)"},
		{`{"action":"move","data":{"roomId":"r","kind":"chess","from":1}}`, "please select valid Move"},
		{`{"action":"refreshToken","data":{}}`, "Invalid payload: token (required)"},
	}
	for _, tc := range cases {
		_, err := d.decode([]byte(tc.raw))
		assert.EqualError(t, err, tc.msg, tc.raw)
	}
}

func TestDecodeRoomEvents(t *testing.T) {
	d := newDecoder()
	ev, err := d.decode([]byte(`{"action":"joinRoom","data":{"roomId":"room_1"}}`))
	require.NoError(t, err)
	assert.Equal(t, joinEvent{RoomID: "room_1"}, ev)

	ev, err = d.decode([]byte(`{"action":"createRoom","data":{"type":"Ludo","stake":10,"maxPlayers":4,"winPinCount":2}}`))
	require.NoError(t, err)
	assert.Equal(t, createRoomEvent{Type: "Ludo", Stake: 10, MaxPlayers: 4, WinPinCount: 2}, ev)

	ev, err = d.decode([]byte(`{"action":"lobby"}`))
	require.NoError(t, err)
	assert.Equal(t, lobbyEvent{}, ev)
}
