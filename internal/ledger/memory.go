package ledger

import (
	"context"
	"sync"
)

// Memory keeps balances in process. Unknown identities are opened with
// starting coins, or reported as not found when starting is zero.
type Memory struct {
	mu       sync.Mutex
	balances map[string]int64
	starting int64
	settled  []Settlement
}

func NewMemory(starting int64) *Memory {
	return &Memory{balances: map[string]int64{}, starting: starting}
}

func (m *Memory) Credit(identity string, amount int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[identity] += amount
}

func (m *Memory) Balance(identity string) (int64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.balances[identity]
	return b, ok
}

// Settlements returns a copy of every settlement applied so far.
func (m *Memory) Settlements() []Settlement {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Settlement(nil), m.settled...)
}

func (m *Memory) account(identity string) (int64, bool) {
	b, ok := m.balances[identity]
	if !ok && m.starting > 0 {
		m.balances[identity] = m.starting
		return m.starting, true
	}
	return b, ok
}

func (m *Memory) CheckBalance(ctx context.Context, identity string, amount int64) Status {
	if ctx.Err() != nil {
		return CheckFailed
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.account(identity)
	switch {
	case !ok:
		return UserNotFound
	case b < amount:
		return NotEnough
	default:
		return HasEnough
	}
}

func (m *Memory) Settle(ctx context.Context, s Settlement) error {
	if err := validate(s); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range append([]string{s.Winner}, s.Losers...) {
		if _, ok := m.account(id); !ok {
			return ErrUnknownAccount
		}
	}
	for _, id := range s.Losers {
		m.balances[id] -= s.Stake
	}
	m.balances[s.Winner] += s.Stake * int64(len(s.Losers))
	m.settled = append(m.settled, s)
	return nil
}
