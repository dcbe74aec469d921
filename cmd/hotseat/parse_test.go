package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tabletop-arena/internal/game"
)

func TestParseMove(t *testing.T) {
	assert := assert.New(t)

	mv, err := parseMove(game.TicTacToe, "4\n")
	assert.NoError(err)
	assert.Equal(game.CellMove{Cell: 4}, mv)

	mv, err = parseMove(game.Checkers, "2,5 3,4")
	assert.NoError(err)
	assert.Equal(game.BoardMove{From: game.Point{X: 2, Y: 5}, To: game.Point{X: 3, Y: 4}}, mv)

	mv, err = parseMove(game.Chess, "e2 e4")
	assert.NoError(err)
	assert.Equal(game.SquareMove{From: "e2", To: "e4"}, mv)

	mv, err = parseMove(game.Ludo, "R")
	assert.NoError(err)
	assert.Equal(game.RollMove{}, mv)

	mv, err = parseMove(game.Ludo, "3")
	assert.NoError(err)
	assert.Equal(game.PinMove{Pin: 3}, mv)

	for _, bad := range []struct {
		t    game.Type
		line string
	}{
		{game.TicTacToe, "a"},
		{game.TicTacToe, ""},
		{game.Checkers, "2,5"},
		{game.Checkers, "2;5 3,4"},
		{game.Chess, "e2"},
		{game.Ludo, "roll now"},
	} {
		_, err := parseMove(bad.t, bad.line)
		assert.ErrorIs(err, errFormat, "%s %q", bad.t, bad.line)
	}
}

func TestEngineFor(t *testing.T) {
	for kind, want := range map[string]game.Type{
		"ttt":      game.TicTacToe,
		"Checkers": game.Checkers,
		"chess":    game.Chess,
		"ludo":     game.Ludo,
	} {
		eng, err := engineFor(kind)
		if assert.NoError(t, err) {
			assert.Equal(t, want, eng.Type())
		}
	}
	_, err := engineFor("go")
	assert.Error(t, err)
}
