package ludo

import (
	"errors"
	"math/rand"

	"tabletop-arena/internal/game"
)

var (
	ErrPlayerCount   = errors.New("Ludo supports only 2 or 4 players")
	ErrWinPinCount   = errors.New("Ludo supports only 1, 2 or 4 win pin count")
	ErrAlreadyRolled = errors.New("You already rolled")
	ErrRollFirst     = errors.New("Roll the dice first")
	ErrNotYourPin    = errors.New("That's not your pin")
	ErrPinCannotMove = errors.New("That pin can't move with this roll")
)

// LastMove lets clients replay the most recent pin move cell by cell.
type LastMove struct {
	Pin   int    `json:"pin"`
	Color Color  `json:"color"`
	Path  []Cell `json:"path"`
}

type State struct {
	Pins        []Pin      `json:"pins"`
	Turn        string     `json:"turn"`
	Players     game.Seats `json:"players"`
	Colors      []string   `json:"colors"`
	WinPinCount int        `json:"winPinCount"`
	// Roll is the pending die value the turn holder must spend, 0 when the
	// turn holder still has to roll.
	Roll     int       `json:"roll"`
	LastRoll int       `json:"lastRoll"`
	LastMove *LastMove `json:"lastMove,omitempty"`
	Killed   []int     `json:"killed"`
	Winner   string    `json:"-"`
}

func (s *State) Public() any { return s }

// Engine plays Ludo. Roll draws a die value and defaults to a uniform 1-6.
type Engine struct {
	Roll func() int
}

func (e Engine) roll() int {
	if e.Roll != nil {
		return e.Roll()
	}
	return rand.Intn(MaxRoll) + 1
}

func (Engine) Type() game.Type { return game.Ludo }

func normalize(opts game.Options) (game.Options, error) {
	if opts.MaxPlayers != 2 && opts.MaxPlayers != 4 {
		return opts, ErrPlayerCount
	}
	switch opts.WinPinCount {
	case 1, 2, 4:
	default:
		return opts, ErrWinPinCount
	}
	return opts, nil
}

func (Engine) Configure(opts game.Options) (int, error) {
	opts, err := normalize(opts)
	if err != nil {
		return 0, err
	}
	return opts.MaxPlayers, nil
}

func (Engine) Initialize(opts game.Options, creator string) (game.State, error) {
	opts, err := normalize(opts)
	if err != nil {
		return nil, err
	}
	colors := palette(opts.MaxPlayers)
	s := &State{
		Pins:        NewPins(colors),
		Turn:        creator,
		Colors:      colors,
		WinPinCount: opts.WinPinCount,
		Killed:      []int{},
	}
	if _, err := s.Players.Add(creator, colors); err != nil {
		return nil, err
	}
	return s, nil
}

func (Engine) Seat(gs game.State, identity string) error {
	s, ok := gs.(*State)
	if !ok {
		return game.ErrStateMismatch
	}
	if _, err := s.Players.Add(identity, s.Colors); err != nil {
		return err
	}
	// seating happens before the first roll, so red always opens
	s.Turn = s.Players[0].Identity
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
	if s.Turn == identity {
		s.Turn = ""
		if len(s.Players) > 0 {
			s.Turn = s.Players[0].Identity
		}
	}
	return nil
}

func (e Engine) ApplyMove(gs game.State, actor string, mv game.Move) error {
	s, ok := gs.(*State)
	if !ok {
		return game.ErrStateMismatch
	}
	if s.Winner != "" || actor != s.Turn {
		return game.ErrNotYourTurn
	}
	switch m := mv.(type) {
	case game.RollMove:
		return e.applyRoll(s, actor)
	case game.PinMove:
		return e.applyPin(s, actor, m.Pin)
	default:
		return game.ErrUnsupportedMove
	}
}

func (e Engine) applyRoll(s *State, actor string) error {
	if s.Roll != 0 {
		return ErrAlreadyRolled
	}
	roll := e.roll()
	s.LastRoll = roll
	s.LastMove = nil
	s.Killed = []int{}
	color := Color(s.Players.ColorOf(actor))
	if len(GetMovablePins(s.Pins, color, roll)) == 0 {
		s.Turn = s.Players.After(actor)
		return nil
	}
	s.Roll = roll
	return nil
}

func (Engine) applyPin(s *State, actor string, idx int) error {
	if s.Roll == 0 {
		return ErrRollFirst
	}
	if idx < 0 || idx >= len(s.Pins) {
		return ErrUnknownPin
	}
	color := Color(s.Players.ColorOf(actor))
	if s.Pins[idx].Color != color {
		return ErrNotYourPin
	}
	if !CanPinMove(s.Pins[idx], s.Roll) {
		return ErrPinCannotMove
	}
	res, err := MovePin(s.Pins, idx, s.Roll)
	if err != nil {
		return err
	}

	roll := s.Roll
	s.Pins = res.Pins
	s.LastMove = &LastMove{Pin: idx, Color: color, Path: res.Path}
	s.Killed = append([]int{}, res.Killed...)
	s.Roll = 0

	if FinishedCount(s.Pins, color) >= s.WinPinCount {
		s.Winner = actor
		s.Pins = NewPins(s.Colors)
		s.Turn = ""
		s.LastRoll = 0
		return nil
	}
	if roll == MaxRoll || len(res.Killed) > 0 || res.Finished {
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
		s.Roll = 0
	}
}
