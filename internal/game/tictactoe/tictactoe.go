package tictactoe

import (
	"errors"

	"tabletop-arena/internal/game"
)

// Board holds the identity that claimed each cell, "" when empty.
type Board [9]string

var lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

var marks = []string{"X", "O"}

var (
	ErrCellTaken  = errors.New("Cell taken")
	ErrOutOfRange = errors.New("Cell out of range")
)

func Place(b Board, actor string, cell int) (Board, error) {
	if cell < 0 || cell >= len(b) {
		return b, ErrOutOfRange
	}
	if b[cell] != "" {
		return b, ErrCellTaken
	}
	b[cell] = actor
	return b, nil
}

// Winner returns the owner of the first complete line, or "".
func Winner(b Board) string {
	for _, l := range lines {
		if b[l[0]] != "" && b[l[0]] == b[l[1]] && b[l[0]] == b[l[2]] {
			return b[l[0]]
		}
	}
	return ""
}

func Full(b Board) bool {
	for _, c := range b {
		if c == "" {
			return false
		}
	}
	return true
}

type State struct {
	Board   Board      `json:"board"`
	Turn    string     `json:"turn"`
	Players game.Seats `json:"players"`
}

func (s *State) Public() any { return s }

type Engine struct{}

func (Engine) Type() game.Type { return game.TicTacToe }

func (Engine) Configure(game.Options) (int, error) { return 2, nil }

func (Engine) Initialize(_ game.Options, creator string) (game.State, error) {
	s := &State{Turn: creator}
	if _, err := s.Players.Add(creator, marks); err != nil {
		return nil, err
	}
	return s, nil
}

func (Engine) Seat(gs game.State, identity string) error {
	s, ok := gs.(*State)
	if !ok {
		return game.ErrStateMismatch
	}
	_, err := s.Players.Add(identity, marks)
	return err
}

func (Engine) Unseat(gs game.State, identity string) error {
	s, ok := gs.(*State)
	if !ok {
		return game.ErrStateMismatch
	}
	if err := s.Players.Remove(identity); err != nil {
		return err
	}
	if s.Turn == identity {
		s.Turn = ""
		if len(s.Players) > 0 {
			s.Turn = s.Players[0].Identity
		}
	}
	return nil
}

func (Engine) ApplyMove(gs game.State, actor string, mv game.Move) error {
	s, ok := gs.(*State)
	if !ok {
		return game.ErrStateMismatch
	}
	m, ok := mv.(game.CellMove)
	if !ok {
		return game.ErrUnsupportedMove
	}
	if actor != s.Turn {
		return game.ErrNotYourTurn
	}
	b, err := Place(s.Board, actor, m.Cell)
	if err != nil {
		return err
	}
	s.Board = b
	if Winner(b) == "" && !Full(b) {
		s.Turn = s.Players.After(actor)
	}
	return nil
}

func (Engine) IsTerminal(gs game.State) game.Outcome {
	s, ok := gs.(*State)
	if !ok {
		return game.Outcome{}
	}
	if w := Winner(s.Board); w != "" {
		return game.Outcome{Ended: true, Winner: w}
	}
	if Full(s.Board) {
		return game.Outcome{Ended: true, Draw: true}
	}
	return game.Outcome{}
}

func (Engine) NextActor(gs game.State) string {
	if s, ok := gs.(*State); ok {
		return s.Turn
	}
	return ""
}

func (Engine) Deactivate(gs game.State, identity string) {
	s, ok := gs.(*State)
	if !ok {
		return
	}
	s.Players.Deactivate(identity)
	if s.Turn == identity {
		s.Turn = s.Players.After(identity)
	}
}
