package checkers

import (
	"errors"

	"tabletop-arena/internal/game"
)

type Color string

const (
	Red   Color = "red"
	Black Color = "black"
)

func (c Color) Opponent() Color {
	if c == Red {
		return Black
	}
	return Red
}

type Piece struct {
	Color Color `json:"color"`
	King  bool  `json:"king"`
}

// Board is indexed [y][x]; nil is an empty square. Red starts on rows 5-7 and
// advances towards row 0, black starts on rows 0-2 and advances towards row 7.
type Board [8][8]*Piece

// Capture is one available jump.
type Capture struct {
	From game.Point `json:"from"`
	Over game.Point `json:"over"`
	To   game.Point `json:"to"`
}

var (
	ErrInvalidPiece     = errors.New("please select valid Move")
	ErrMandatoryCapture = errors.New("A capture is available. You must capture.")
	ErrIllegalJump      = errors.New("Illegal jump: No opponent piece to jump over.")
	ErrInvalidDistance  = errors.New("Invalid move distance.")
	ErrRedDirection     = errors.New("Red can only move up.")
	ErrBlackDirection   = errors.New("Black can only move down.")
	ErrOccupied         = errors.New("Destination square is occupied.")
	ErrMustContinue     = errors.New("You must continue capturing with the same piece.")
)

func NewBoard() Board {
	var b Board
	for y := 0; y < 3; y++ {
		for x := 0; x < 8; x++ {
			if (x+y)%2 == 1 {
				b[y][x] = &Piece{Color: Black}
			}
		}
	}
	for y := 5; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if (x+y)%2 == 1 {
				b[y][x] = &Piece{Color: Red}
			}
		}
	}
	return b
}

func (b Board) Clone() Board {
	var out Board
	for y := range b {
		for x, p := range b[y] {
			if p != nil {
				cp := *p
				out[y][x] = &cp
			}
		}
	}
	return out
}

func (b Board) At(p game.Point) *Piece {
	if !inBounds(p) {
		return nil
	}
	return b[p.Y][p.X]
}

// Count returns the number of pieces of colour c.
func (b Board) Count(c Color) int {
	n := 0
	for y := range b {
		for _, p := range b[y] {
			if p != nil && p.Color == c {
				n++
			}
		}
	}
	return n
}

func inBounds(p game.Point) bool {
	return p.X >= 0 && p.X < 8 && p.Y >= 0 && p.Y < 8
}

func directions(p *Piece) [][2]int {
	switch {
	case p.King:
		return [][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	case p.Color == Red:
		return [][2]int{{-1, -1}, {1, -1}}
	default:
		return [][2]int{{-1, 1}, {1, 1}}
	}
}

func backRank(c Color) int {
	if c == Red {
		return 0
	}
	return 7
}

// CapturesFrom lists the jumps available to the piece standing on from.
func CapturesFrom(b Board, from game.Point) []Capture {
	piece := b.At(from)
	if piece == nil {
		return nil
	}
	var out []Capture
	for _, d := range directions(piece) {
		over := game.Point{X: from.X + d[0], Y: from.Y + d[1]}
		to := game.Point{X: from.X + 2*d[0], Y: from.Y + 2*d[1]}
		if !inBounds(over) || !inBounds(to) {
			continue
		}
		mid := b.At(over)
		if mid != nil && mid.Color != piece.Color && b.At(to) == nil {
			out = append(out, Capture{From: from, Over: over, To: to})
		}
	}
	return out
}

// ComputeCaptures lists every jump available to colour c.
func ComputeCaptures(b Board, c Color) []Capture {
	var out []Capture
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if p := b[y][x]; p != nil && p.Color == c {
				out = append(out, CapturesFrom(b, game.Point{X: x, Y: y})...)
			}
		}
	}
	return out
}

// MovesFrom lists the non-capturing destinations of the piece on from.
func MovesFrom(b Board, from game.Point) []game.Point {
	piece := b.At(from)
	if piece == nil {
		return nil
	}
	var out []game.Point
	for _, d := range directions(piece) {
		to := game.Point{X: from.X + d[0], Y: from.Y + d[1]}
		if inBounds(to) && b.At(to) == nil {
			out = append(out, to)
		}
	}
	return out
}

// CanMove reports whether colour c has any capture or ordinary move.
func CanMove(b Board, c Color) bool {
	if len(ComputeCaptures(b, c)) > 0 {
		return true
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if p := b[y][x]; p != nil && p.Color == c && len(MovesFrom(b, game.Point{X: x, Y: y})) > 0 {
				return true
			}
		}
	}
	return false
}

// Step is the result of one applied move.
type Step struct {
	Board    Board
	Captured *game.Point
	Kinged   bool
	// Continue is set when the moved piece must keep capturing.
	Continue bool
}

// Apply validates and applies a move for colour c. forced, when non-nil, is
// the square a multi-jump must continue from. b is never modified.
func Apply(b Board, c Color, from, to game.Point, forced *game.Point) (Step, error) {
	piece := b.At(from)
	if piece == nil || piece.Color != c || !inBounds(to) {
		return Step{}, ErrInvalidPiece
	}

	dx, dy := to.X-from.X, to.Y-from.Y
	isJump := abs(dx) == 2 && abs(dy) == 2
	isSimple := abs(dx) == 1 && abs(dy) == 1

	if forced != nil && (*forced != from || !isJump) {
		return Step{}, ErrMustContinue
	}
	if !isJump && len(ComputeCaptures(b, c)) > 0 {
		return Step{}, ErrMandatoryCapture
	}

	next := b.Clone()
	moved := next[from.Y][from.X]
	step := Step{}

	switch {
	case isJump:
		over := game.Point{X: from.X + dx/2, Y: from.Y + dy/2}
		if mid := b.At(over); mid == nil || mid.Color == c {
			return Step{}, ErrIllegalJump
		}
		if !hasCapture(CapturesFrom(b, from), to) {
			if b.At(to) != nil {
				return Step{}, ErrOccupied
			}
			return Step{}, directionErr(c)
		}
		next[over.Y][over.X] = nil
		step.Captured = &over
	case isSimple:
		if !piece.King && dy != forward(c) {
			return Step{}, directionErr(c)
		}
		if b.At(to) != nil {
			return Step{}, ErrOccupied
		}
	default:
		return Step{}, ErrInvalidDistance
	}

	next[from.Y][from.X] = nil
	next[to.Y][to.X] = moved
	if !moved.King && to.Y == backRank(c) {
		moved.King = true
		step.Kinged = true
	}
	step.Board = next
	if isJump && len(CapturesFrom(next, to)) > 0 {
		step.Continue = true
	}
	return step, nil
}

func hasCapture(cs []Capture, to game.Point) bool {
	for _, c := range cs {
		if c.To == to {
			return true
		}
	}
	return false
}

func forward(c Color) int {
	if c == Red {
		return -1
	}
	return 1
}

func directionErr(c Color) error {
	if c == Red {
		return ErrRedDirection
	}
	return ErrBlackDirection
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
