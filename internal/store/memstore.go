package store

import (
	"sort"

	"tabletop-arena/internal/room"
)

// MemoryStore is the process-wide room registry. It carries no lock: only
// the event loop goroutine touches it.
type MemoryStore struct {
	rooms map[string]*room.Room
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rooms: map[string]*room.Room{},
	}
}

func (m *MemoryStore) Get(id string) (*room.Room, bool) {
	r, ok := m.rooms[id]
	return r, ok
}

func (m *MemoryStore) Save(r *room.Room) {
	m.rooms[r.ID] = r
}

func (m *MemoryStore) Delete(id string) {
	delete(m.rooms, id)
}

func (m *MemoryStore) List() []*room.Room {
	out := make([]*room.Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (m *MemoryStore) Len() int { return len(m.rooms) }
