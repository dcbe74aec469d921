package chess

import (
	"errors"
	"strings"

	nchess "github.com/notnil/chess"

	"tabletop-arena/internal/game"
)

const (
	White = "white"
	Black = "black"
)

var palette = []string{White, Black}

var ErrInvalidMove = errors.New("please select valid Move")

// Snapshot is the part of a chess room that clients see. Board rows run from
// rank 8 down to rank 1; cells hold colour and piece letters such as "wK".
type Snapshot struct {
	Board   [8][8]string `json:"board"`
	FEN     string       `json:"fen"`
	Turn    string       `json:"turn"`
	Players game.Seats   `json:"players"`
	Outcome string       `json:"outcome,omitempty"`
	Method  string       `json:"method,omitempty"`
}

// State pairs the public snapshot with the authoritative rules engine, which
// never leaves the process.
type State struct {
	Snapshot
	game *nchess.Game
}

func (s *State) Public() any { return s.Snapshot }

func (s *State) refresh() {
	pos := s.game.Position()
	board := pos.Board()
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			cell := ""
			if p := board.Piece(nchess.Square(rank*8 + file)); p != nchess.NoPiece {
				cell = p.Color().String() + strings.ToUpper(p.Type().String())
			}
			s.Board[7-rank][file] = cell
		}
	}
	s.FEN = pos.String()
	s.Turn = ""
	if seat, ok := s.Players.ByColor(sideToMove(pos.Turn())); ok && !seat.Out {
		s.Turn = seat.Identity
	}
	if o := s.game.Outcome(); o != nchess.NoOutcome {
		s.Outcome = o.String()
		s.Method = s.game.Method().String()
		s.Turn = ""
	}
}

func sideToMove(c nchess.Color) string {
	if c == nchess.White {
		return White
	}
	return Black
}

// Engine adapts github.com/notnil/chess. The creator plays white.
type Engine struct{}

func (Engine) Type() game.Type { return game.Chess }

func (Engine) Configure(game.Options) (int, error) { return 2, nil }

func (Engine) Initialize(_ game.Options, creator string) (game.State, error) {
	s := &State{game: nchess.NewGame()}
	if _, err := s.Players.Add(creator, palette); err != nil {
		return nil, err
	}
	s.refresh()
	return s, nil
}

func (Engine) Seat(gs game.State, identity string) error {
	s, ok := gs.(*State)
	if !ok {
		return game.ErrStateMismatch
	}
	if _, err := s.Players.Add(identity, palette); err != nil {
		return err
	}
	s.refresh()
	return nil
}

func (Engine) Unseat(gs game.State, identity string) error {
	s, ok := gs.(*State)
	if !ok {
		return game.ErrStateMismatch
	}
	if err := s.Players.Remove(identity); err != nil {
		return err
	}
	s.refresh()
	return nil
}

// findMove matches from/to against the legal moves, promoting to a queen
// when the move is a promotion.
func findMove(g *nchess.Game, from, to string) *nchess.Move {
	var match *nchess.Move
	for _, m := range g.ValidMoves() {
		if m.S1().String() != from || m.S2().String() != to {
			continue
		}
		if m.Promo() == nchess.NoPieceType || m.Promo() == nchess.Queen {
			return m
		}
		if match == nil {
			match = m
		}
	}
	return match
}

func (Engine) ApplyMove(gs game.State, actor string, mv game.Move) error {
	s, ok := gs.(*State)
	if !ok {
		return game.ErrStateMismatch
	}
	m, ok := mv.(game.SquareMove)
	if !ok {
		return game.ErrUnsupportedMove
	}
	if actor == "" || actor != s.Turn {
		return game.ErrNotYourTurn
	}
	move := findMove(s.game, strings.ToLower(m.From), strings.ToLower(m.To))
	if move == nil {
		return ErrInvalidMove
	}
	if err := s.game.Move(move); err != nil {
		return ErrInvalidMove
	}
	claimDraw(s.game)
	s.refresh()
	return nil
}

// claimDraw ends the game on threefold repetition or the fifty-move rule.
// The rules engine only ends it on its own at fivefold and seventy-five.
func claimDraw(g *nchess.Game) {
	if g.Outcome() != nchess.NoOutcome {
		return
	}
	for _, method := range g.EligibleDraws() {
		if method == nchess.ThreefoldRepetition || method == nchess.FiftyMoveRule {
			_ = g.Draw(method)
			return
		}
	}
}

func (Engine) IsTerminal(gs game.State) game.Outcome {
	s, ok := gs.(*State)
	if !ok {
		return game.Outcome{}
	}
	switch s.game.Outcome() {
	case nchess.WhiteWon:
		seat, _ := s.Players.ByColor(White)
		return game.Outcome{Ended: true, Winner: seat.Identity}
	case nchess.BlackWon:
		seat, _ := s.Players.ByColor(Black)
		return game.Outcome{Ended: true, Winner: seat.Identity}
	case nchess.Draw:
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
	s.refresh()
}
