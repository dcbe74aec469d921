package ws

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"tabletop-arena/internal/game"
	"tabletop-arena/internal/shared"
)

var (
	errBadFrame      = errors.New("Malformed message")
	errUnknownAction = errors.New("Unknown action")
	errInvalidMove   = errors.New("please select valid Move")
)

type createRoomEvent struct {
	Type        string `json:"type" validate:"required"`
	Stake       int64  `json:"stake" validate:"gte=0"`
	MaxPlayers  int    `json:"maxPlayers" validate:"gte=0"`
	WinPinCount int    `json:"winPinCount" validate:"gte=0"`
}

type roomEvent struct {
	RoomID string `json:"roomId" validate:"required"`
}

// moveEvent carries every move shape; Kind selects which fields apply.
//
//	cell     {"cell": 4}
//	checkers {"from": {"x":2,"y":5}, "to": {"x":3,"y":4}}
//	chess    {"from": "e2", "to": "e4"}
//	roll     {}
//	pin      {"pin": 3}
type moveEvent struct {
	RoomID string          `json:"roomId" validate:"required"`
	Kind   string          `json:"kind" validate:"required,oneof=cell checkers chess roll pin"`
	Cell   *int            `json:"cell" validate:"omitempty,min=0"`
	Pin    *int            `json:"pin" validate:"omitempty,min=0"`
	From   json.RawMessage `json:"from"`
	To     json.RawMessage `json:"to"`
}

type lobbyEvent struct{}

type refreshEvent struct {
	Token string `json:"token" validate:"required"`
}

// decoded move plus the room it targets
type moveCommand struct {
	RoomID string
	Move   game.Move
}

type decoder struct {
	validate *validator.Validate
}

func newDecoder() *decoder {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	})
	return &decoder{validate: v}
}

// decode turns a raw frame into one of the event types above. It runs on the
// reader goroutine and never touches room state.
func (d *decoder) decode(raw []byte) (interface{}, error) {
	var env shared.Envelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Action == "" {
		return nil, errBadFrame
	}
	switch env.Action {
	case shared.ActionCreateRoom:
		var ev createRoomEvent
		if err := d.bind(env.Data, &ev); err != nil {
			return nil, err
		}
		return ev, nil
	case shared.ActionJoinRoom, shared.ActionLeaveRoom:
		var ev roomEvent
		if err := d.bind(env.Data, &ev); err != nil {
			return nil, err
		}
		if env.Action == shared.ActionJoinRoom {
			return joinEvent(ev), nil
		}
		return leaveEvent(ev), nil
	case shared.ActionMove:
		var ev moveEvent
		if err := d.bind(env.Data, &ev); err != nil {
			return nil, err
		}
		mv, err := ev.toMove()
		if err != nil {
			return nil, err
		}
		return moveCommand{RoomID: ev.RoomID, Move: mv}, nil
	case shared.ActionLobby:
		return lobbyEvent{}, nil
	case shared.ActionRefreshToken:
		var ev refreshEvent
		if err := d.bind(env.Data, &ev); err != nil {
			return nil, err
		}
		return ev, nil
	default:
		return nil, errUnknownAction
	}
}

type joinEvent roomEvent
type leaveEvent roomEvent

func (d *decoder) bind(data json.RawMessage, dst interface{}) error {
	if len(data) == 0 {
		data = []byte("{}")
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return errBadFrame
	}
	if err := d.validate.Struct(dst); err != nil {
		return validationError(err)
	}
	return nil
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("Invalid payload: %s", strings.Join(fields, ", "))
}

func (ev moveEvent) toMove() (game.Move, error) {
	switch ev.Kind {
	case "cell":
		if ev.Cell == nil {
			return nil, errInvalidMove
		}
		return game.CellMove{Cell: *ev.Cell}, nil
	case "checkers":
		var from, to game.Point
		if json.Unmarshal(ev.From, &from) != nil || json.Unmarshal(ev.To, &to) != nil {
			return nil, errInvalidMove
		}
		return game.BoardMove{From: from, To: to}, nil
	case "chess":
		var from, to string
		if json.Unmarshal(ev.From, &from) != nil || json.Unmarshal(ev.To, &to) != nil {
			return nil, errInvalidMove
		}
		return game.SquareMove{From: from, To: to}, nil
	case "roll":
		return game.RollMove{}, nil
	case "pin":
		if ev.Pin == nil {
			return nil, errInvalidMove
		}
		return game.PinMove{Pin: *ev.Pin}, nil
	}
	return nil, errInvalidMove
}
