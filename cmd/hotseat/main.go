// Command hotseat plays one of the board engines locally, every seat taking
// turns at the same keyboard. It is meant for checking rules by hand.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"tabletop-arena/internal/game"
	"tabletop-arena/internal/game/checkers"
	"tabletop-arena/internal/game/chess"
	"tabletop-arena/internal/game/ludo"
	"tabletop-arena/internal/game/tictactoe"
)

func main() {
	kind := flag.String("game", "tictactoe", "tictactoe | checkers | chess | ludo")
	players := flag.Int("players", 2, "ludo seats (2 or 4)")
	pins := flag.Int("pins", 4, "ludo pins needed to win (1, 2 or 4)")
	flag.Parse()

	eng, err := engineFor(*kind)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	opts := game.Options{MaxPlayers: *players, WinPinCount: *pins}
	seats, err := eng.Configure(opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	state, err := eng.Initialize(opts, "p1")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	for i := 2; i <= seats; i++ {
		if err := eng.Seat(state, fmt.Sprintf("p%d", i)); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}

	reader := bufio.NewReader(os.Stdin)
	for {
		outcome := eng.IsTerminal(state)
		if outcome.Ended {
			fmt.Println("\nGame over!")
			printState(state)
			if outcome.Draw {
				fmt.Println("Draw.")
			} else {
				fmt.Printf("Winner: %s\n", outcome.Winner)
			}
			return
		}

		actor := eng.NextActor(state)
		fmt.Printf("\nTurn: %s\n", actor)
		printState(state)
		fmt.Println(prompt(eng.Type()))

		for {
			fmt.Print("> ")
			line, err := reader.ReadString('\n')
			if err != nil {
				return
			}
			mv, err := parseMove(eng.Type(), line)
			if err != nil {
				fmt.Println("Bad input:", err)
				continue
			}
			if err := eng.ApplyMove(state, actor, mv); err != nil {
				fmt.Println("Rejected:", err)
				continue
			}
			break
		}
	}
}

func engineFor(kind string) (game.Engine, error) {
	switch strings.ToLower(kind) {
	case "tictactoe", "ttt":
		return tictactoe.Engine{}, nil
	case "checkers":
		return checkers.Engine{}, nil
	case "chess":
		return chess.Engine{}, nil
	case "ludo":
		return ludo.Engine{}, nil
	}
	return nil, fmt.Errorf("unknown game %q", kind)
}

func prompt(t game.Type) string {
	switch t {
	case game.TicTacToe:
		return "Enter a cell 0-8"
	case game.Checkers:
		return "Enter from and to as x,y (example: 2,5 3,4)"
	case game.Chess:
		return "Enter from and to squares (example: e2 e4)"
	case game.Ludo:
		return "Enter r to roll, or a pin number to move it"
	}
	return ""
}

func printState(s game.State) {
	switch st := s.(type) {
	case *tictactoe.State:
		printTicTacToe(st)
	case *checkers.State:
		printCheckers(st)
	case *chess.State:
		printChess(st.Snapshot)
	case *ludo.State:
		printLudo(st)
	default:
		js, _ := json.MarshalIndent(s.Public(), "", "  ")
		fmt.Println(string(js))
	}
}

func printTicTacToe(s *tictactoe.State) {
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			cell := r*3 + c
			if owner := s.Board[cell]; owner != "" {
				fmt.Printf("%s ", s.Players.ColorOf(owner))
			} else {
				fmt.Printf("%d ", cell)
			}
		}
		fmt.Println()
	}
}

func printCheckers(s *checkers.State) {
	fmt.Println("  0 1 2 3 4 5 6 7")
	for y := 0; y < 8; y++ {
		fmt.Printf("%d ", y)
		for x := 0; x < 8; x++ {
			p := s.Board[y][x]
			switch {
			case p == nil:
				fmt.Print(". ")
			case p.Color == checkers.Red && p.King:
				fmt.Print("R ")
			case p.Color == checkers.Red:
				fmt.Print("r ")
			case p.King:
				fmt.Print("B ")
			default:
				fmt.Print("b ")
			}
		}
		fmt.Println()
	}
	if len(s.MandatoryCaptures) > 0 {
		fmt.Printf("Must continue from %v\n", s.MandatoryCaptures[0])
	}
}

func printChess(s chess.Snapshot) {
	for row := 0; row < 8; row++ {
		fmt.Printf("%d ", 8-row)
		for _, cell := range s.Board[row] {
			switch {
			case cell == "":
				fmt.Print(". ")
			case cell[0] == 'w':
				fmt.Printf("%s ", strings.ToUpper(cell[1:]))
			default:
				fmt.Printf("%s ", strings.ToLower(cell[1:]))
			}
		}
		fmt.Println()
	}
	fmt.Println("  a b c d e f g h")
}

func printLudo(s *ludo.State) {
	for _, p := range s.Pins {
		fmt.Printf("#%-2d %-6s %-7s %d\n", p.ID, p.Color, p.State, p.Position)
	}
	if s.Roll != 0 {
		fmt.Printf("Rolled %d, pick a pin\n", s.Roll)
	} else if s.LastRoll != 0 {
		fmt.Printf("Last roll %d\n", s.LastRoll)
	}
}
