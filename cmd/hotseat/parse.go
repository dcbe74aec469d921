package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"tabletop-arena/internal/game"
)

var errFormat = errors.New("wrong format, try again")

// parseMove reads one line of keyboard input as a move for the given game.
func parseMove(t game.Type, line string) (game.Move, error) {
	parts := strings.Fields(line)
	switch t {
	case game.TicTacToe:
		if len(parts) != 1 {
			return nil, errFormat
		}
		cell, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, errFormat
		}
		return game.CellMove{Cell: cell}, nil
	case game.Checkers:
		if len(parts) != 2 {
			return nil, errFormat
		}
		from, err := parsePoint(parts[0])
		if err != nil {
			return nil, err
		}
		to, err := parsePoint(parts[1])
		if err != nil {
			return nil, err
		}
		return game.BoardMove{From: from, To: to}, nil
	case game.Chess:
		if len(parts) != 2 {
			return nil, errFormat
		}
		return game.SquareMove{From: parts[0], To: parts[1]}, nil
	case game.Ludo:
		if len(parts) != 1 {
			return nil, errFormat
		}
		if strings.EqualFold(parts[0], "r") {
			return game.RollMove{}, nil
		}
		pin, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, errFormat
		}
		return game.PinMove{Pin: pin}, nil
	}
	return nil, fmt.Errorf("no input format for %s", t)
}

func parsePoint(s string) (game.Point, error) {
	xy := strings.Split(s, ",")
	if len(xy) != 2 {
		return game.Point{}, errFormat
	}
	x, errX := strconv.Atoi(xy[0])
	y, errY := strconv.Atoi(xy[1])
	if errX != nil || errY != nil {
		return game.Point{}, errFormat
	}
	return game.Point{X: x, Y: y}, nil
}
