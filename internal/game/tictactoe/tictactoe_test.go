package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabletop-arena/internal/game"
)

func newGame(t *testing.T) (Engine, game.State) {
	t.Helper()
	e := Engine{}
	s, err := e.Initialize(game.Options{}, "alice")
	require.NoError(t, err)
	require.NoError(t, e.Seat(s, "bob"))
	return e, s
}

func play(t *testing.T, e Engine, s game.State, cells ...int) []game.Outcome {
	t.Helper()
	var out []game.Outcome
	for _, c := range cells {
		require.NoError(t, e.ApplyMove(s, e.NextActor(s), game.CellMove{Cell: c}))
		out = append(out, e.IsTerminal(s))
	}
	return out
}

func TestWinDetectedOnFifthMove(t *testing.T) {
	e, s := newGame(t)
	outcomes := play(t, e, s, 0, 3, 1, 4, 2)

	for i, o := range outcomes[:4] {
		assert.False(t, o.Ended, "move %d must not end the game", i+1)
	}
	assert.Equal(t, game.Outcome{Ended: true, Winner: "alice"}, outcomes[4])
}

func TestFullBoardWithoutLineIsDraw(t *testing.T) {
	e, s := newGame(t)
	// X O X / X O O / O X X
	outcomes := play(t, e, s, 0, 1, 2, 4, 3, 5, 7, 6, 8)

	assert.Equal(t, game.Outcome{Ended: true, Draw: true}, outcomes[len(outcomes)-1])
	for _, o := range outcomes[:8] {
		assert.False(t, o.Ended)
	}
}

func TestRejections(t *testing.T) {
	assert := assert.New(t)
	e, s := newGame(t)

	assert.ErrorIs(e.ApplyMove(s, "bob", game.CellMove{Cell: 0}), game.ErrNotYourTurn)
	assert.ErrorIs(e.ApplyMove(s, "alice", game.CellMove{Cell: 9}), ErrOutOfRange)
	assert.ErrorIs(e.ApplyMove(s, "alice", game.CellMove{Cell: -1}), ErrOutOfRange)
	assert.ErrorIs(e.ApplyMove(s, "alice", game.PinMove{Pin: 1}), game.ErrUnsupportedMove)

	assert.NoError(e.ApplyMove(s, "alice", game.CellMove{Cell: 4}))
	before := s.(*State).Board
	assert.ErrorIs(e.ApplyMove(s, "bob", game.CellMove{Cell: 4}), ErrCellTaken)
	assert.Equal(before, s.(*State).Board, "rejected move leaves the board unchanged")
	assert.Equal("bob", e.NextActor(s))
}

func TestUnseatHandsTurnToRemainingPlayer(t *testing.T) {
	e, s := newGame(t)
	require.NoError(t, e.Unseat(s, "alice"))
	assert.Equal(t, "bob", e.NextActor(s))
	assert.ErrorIs(t, e.Unseat(s, "alice"), game.ErrNotSeated)
}
