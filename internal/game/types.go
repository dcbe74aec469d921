package game

import "errors"

// Type names a game variant as it appears on the wire.
type Type string

const (
	TicTacToe Type = "Tic Tac Toe"
	Checkers  Type = "Checkers"
	Chess     Type = "Chess"
	Ludo      Type = "Ludo"
)

// Options is the per-room configuration supplied at creation.
type Options struct {
	MaxPlayers  int `json:"maxPlayers,omitempty"`
	WinPinCount int `json:"winPinCount,omitempty"`
}

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Move is a closed set of move payloads; each engine accepts a subset.
type Move interface {
	isMove()
}

// CellMove selects a board cell by index (Tic-Tac-Toe).
type CellMove struct {
	Cell int
}

// BoardMove moves a piece between two grid points (Checkers).
type BoardMove struct {
	From Point
	To   Point
}

// SquareMove moves a piece between two algebraic squares such as "e2" (Chess).
type SquareMove struct {
	From string
	To   string
}

// RollMove throws the die (Ludo).
type RollMove struct{}

// PinMove advances one pin by the current roll (Ludo).
type PinMove struct {
	Pin int
}

func (CellMove) isMove()   {}
func (BoardMove) isMove()  {}
func (SquareMove) isMove() {}
func (RollMove) isMove()   {}
func (PinMove) isMove()    {}

// Outcome reports whether a game reached a terminal state.
type Outcome struct {
	Ended  bool
	Winner string
	Draw   bool
}

// State is an engine-owned board state. Public returns the projection that
// may be sent to clients.
type State interface {
	Public() any
}

var (
	ErrNotYourTurn     = errors.New("Not your turn")
	ErrUnsupportedMove = errors.New("unsupported move for this game")
	ErrStateMismatch   = errors.New("board state does not belong to this game")
	ErrSeatTaken       = errors.New("Already in this game")
	ErrNoFreeSeat      = errors.New("Game is full")
	ErrNotSeated       = errors.New("You're not in this game")
)
