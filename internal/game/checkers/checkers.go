package checkers

import (
	"tabletop-arena/internal/game"
)

var palette = []string{string(Red), string(Black)}

type State struct {
	Board   Board      `json:"board"`
	Turn    string     `json:"turn"`
	Players game.Seats `json:"players"`
	// MandatoryCaptures is non-empty while a multi-jump is in progress and
	// holds the square the next move must start from.
	MandatoryCaptures []game.Point `json:"mandatoryCaptures"`
	LastCapture       *game.Point  `json:"lastCapture,omitempty"`
	Winner            string       `json:"-"`
}

func (s *State) Public() any { return s }

func (s *State) forced() *game.Point {
	if len(s.MandatoryCaptures) == 0 {
		return nil
	}
	p := s.MandatoryCaptures[0]
	return &p
}

// Engine plays 8x8 checkers. The creator plays red and moves first.
type Engine struct{}

func (Engine) Type() game.Type { return game.Checkers }

func (Engine) Configure(game.Options) (int, error) { return 2, nil }

func (Engine) Initialize(_ game.Options, creator string) (game.State, error) {
	s := &State{Board: NewBoard(), Turn: creator, MandatoryCaptures: []game.Point{}}
	if _, err := s.Players.Add(creator, palette); err != nil {
		return nil, err
	}
	return s, nil
}

func (Engine) Seat(gs game.State, identity string) error {
	s, ok := gs.(*State)
	if !ok {
		return game.ErrStateMismatch
	}
	_, err := s.Players.Add(identity, palette)
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
	m, ok := mv.(game.BoardMove)
	if !ok {
		return game.ErrUnsupportedMove
	}
	if s.Winner != "" || actor != s.Turn {
		return game.ErrNotYourTurn
	}
	color := Color(s.Players.ColorOf(actor))

	step, err := Apply(s.Board, color, m.From, m.To, s.forced())
	if err != nil {
		return err
	}

	s.Board = step.Board
	s.LastCapture = step.Captured
	s.MandatoryCaptures = []game.Point{}
	opp := color.Opponent()

	if step.Continue {
		s.MandatoryCaptures = append(s.MandatoryCaptures, m.To)
		if s.Board.Count(opp) == 0 {
			s.Winner = actor
		}
		return nil
	}
	if !CanMove(s.Board, opp) {
		s.Winner = actor
		return nil
	}
	s.Turn = s.Players.After(actor)
	return nil
}

func (Engine) IsTerminal(gs game.State) game.Outcome {
	s, ok := gs.(*State)
	if !ok || s.Winner == "" {
		return game.Outcome{}
	}
	return game.Outcome{Ended: true, Winner: s.Winner}
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
		s.MandatoryCaptures = []game.Point{}
	}
}
