package ludo

import "errors"

type PinState string

const (
	Base    PinState = "base"
	OnBoard PinState = "onBoard"
	Home    PinState = "home"
)

// Pin is addressed by its index in the room's pin slice. Position is a loop
// index while OnBoard and a lane index while Home; it is unused in Base.
type Pin struct {
	ID         int      `json:"id"`
	Color      Color    `json:"color"`
	State      PinState `json:"state"`
	Position   int      `json:"position"`
	BaseOrigin int      `json:"baseOrigin"`
}

// Cell is one square a pin stood on during a move.
type Cell struct {
	State    PinState `json:"state"`
	Position int      `json:"position"`
}

var (
	ErrOvershoot   = errors.New("Move overshoots the final cell")
	ErrNeedsSix    = errors.New("A pin can only leave base on a 6")
	ErrUnknownPin  = errors.New("Invalid pin")
	ErrPinFinished = errors.New("Pin already finished")
)

func NewPins(colors []string) []Pin {
	pins := make([]Pin, 0, len(colors)*PinsPerColor)
	for _, c := range colors {
		for i := 0; i < PinsPerColor; i++ {
			pins = append(pins, Pin{ID: len(pins), Color: Color(c), State: Base, BaseOrigin: i})
		}
	}
	return pins
}

func (p Pin) Finished() bool {
	return p.State == Home && p.Position == LaneLength-1
}

// StepsToFinish is how many single steps remain before p reaches its final
// cell. Pins in base report -1.
func StepsToFinish(p Pin) int {
	switch p.State {
	case OnBoard:
		toTurnOff := (TurnOff(p.Color) - p.Position + LoopLength) % LoopLength
		return toTurnOff + LaneLength
	case Home:
		return LaneLength - 1 - p.Position
	default:
		return -1
	}
}

func CanPinMove(p Pin, roll int) bool {
	if p.State == Base {
		return roll == MaxRoll
	}
	return roll > 0 && roll <= StepsToFinish(p)
}

// GetMovablePins returns the indexes of colour's pins that can move by roll.
func GetMovablePins(pins []Pin, color Color, roll int) []int {
	var out []int
	for i, p := range pins {
		if p.Color == color && CanPinMove(p, roll) {
			out = append(out, i)
		}
	}
	return out
}

// step advances an on-board or home pin by exactly one cell.
func step(p Pin) (Pin, error) {
	switch p.State {
	case OnBoard:
		if p.Position == TurnOff(p.Color) {
			p.State, p.Position = Home, 0
		} else {
			p.Position = (p.Position + 1) % LoopLength
		}
	case Home:
		if p.Position >= LaneLength-1 {
			return p, ErrOvershoot
		}
		p.Position++
	}
	return p, nil
}

// Result describes one applied pin move.
type Result struct {
	Pins     []Pin
	Path     []Cell
	Killed   []int
	Finished bool
}

// MovePin moves pins[idx] by roll and resolves collisions. pins is never
// modified; a rejected move returns an error and no result.
func MovePin(pins []Pin, idx, roll int) (Result, error) {
	if idx < 0 || idx >= len(pins) {
		return Result{}, ErrUnknownPin
	}
	next := append([]Pin(nil), pins...)
	p := next[idx]
	var path []Cell

	switch {
	case p.State == Base:
		if roll != MaxRoll {
			return Result{}, ErrNeedsSix
		}
		p.State, p.Position = OnBoard, StartSquare(p.Color)
		path = append(path, Cell{State: p.State, Position: p.Position})
	case p.Finished():
		return Result{}, ErrPinFinished
	default:
		for i := 0; i < roll; i++ {
			var err error
			if p, err = step(p); err != nil {
				return Result{}, err
			}
			path = append(path, Cell{State: p.State, Position: p.Position})
		}
	}
	next[idx] = p

	res := Result{Pins: next, Path: path, Finished: p.Finished()}
	if p.State == OnBoard && !SafeSquares[p.Position] {
		for i := range next {
			o := next[i]
			if o.Color != p.Color && o.State == OnBoard && o.Position == p.Position {
				next[i].State, next[i].Position = Base, 0
				res.Killed = append(res.Killed, i)
			}
		}
	}
	return res, nil
}

// FinishedCount reports how many of colour's pins have reached the final cell.
func FinishedCount(pins []Pin, color Color) int {
	n := 0
	for _, p := range pins {
		if p.Color == color && p.Finished() {
			n++
		}
	}
	return n
}
