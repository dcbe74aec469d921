package ledger

import (
	"context"
	"errors"
)

// Status is the outcome of a balance check as reported to players.
type Status string

const (
	HasEnough    Status = "has enough"
	NotEnough    Status = "doesn't have enough coins"
	UserNotFound Status = "user not found"
	CheckFailed  Status = "failed to check coins"
)

func (s Status) OK() bool { return s == HasEnough }

// Settlement moves the stake from every loser to the winner.
type Settlement struct {
	RoomID   string
	GameType string
	Stake    int64
	Winner   string
	Losers   []string
}

// Ledger is the external coin account the game server bets against.
type Ledger interface {
	CheckBalance(ctx context.Context, identity string, amount int64) Status
	Settle(ctx context.Context, s Settlement) error
}

var (
	ErrUnknownAccount  = errors.New("user not found")
	ErrEmptySettlement = errors.New("settlement needs a winner and at least one loser")
)

func validate(s Settlement) error {
	if s.Winner == "" || len(s.Losers) == 0 || s.Stake <= 0 {
		return ErrEmptySettlement
	}
	return nil
}
