package ludo

type Color string

const (
	Red    Color = "red"
	Green  Color = "green"
	Yellow Color = "yellow"
	Blue   Color = "blue"
)

const (
	// LoopLength is the number of cells on the shared main loop.
	LoopLength = 52
	// LaneLength is the number of cells in each colour's private home lane;
	// the last one is the final cell.
	LaneLength   = 6
	MaxRoll      = 6
	PinsPerColor = 4
)

// Palettes by player count, in turn order around the board.
var (
	twoPlayerColors  = []string{string(Red), string(Yellow)}
	fourPlayerColors = []string{string(Red), string(Green), string(Yellow), string(Blue)}
)

var startSquare = map[Color]int{
	Red:    0,
	Green:  13,
	Yellow: 26,
	Blue:   39,
}

// SafeSquares are loop cells on which no pin can be captured.
var SafeSquares = map[int]bool{
	0: true, 8: true, 13: true, 21: true,
	26: true, 34: true, 39: true, 47: true,
}

func StartSquare(c Color) int { return startSquare[c] }

// TurnOff is the last loop cell a pin of colour c visits before entering its
// home lane.
func TurnOff(c Color) int { return (startSquare[c] + LoopLength - 2) % LoopLength }

// PathLength is the number of steps from the start square to the final cell.
func PathLength() int { return LoopLength - 2 + LaneLength }

func palette(maxPlayers int) []string {
	if maxPlayers == 2 {
		return twoPlayerColors
	}
	return fourPlayerColors
}
