package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tabletop-arena/internal/room"
)

func TestMemoryStore(t *testing.T) {
	assert := assert.New(t)
	s := NewMemoryStore()
	now := time.Now()

	s.Save(&room.Room{ID: "room_b", CreatedAt: now})
	s.Save(&room.Room{ID: "room_a", CreatedAt: now.Add(-time.Minute)})
	s.Save(&room.Room{ID: "room_c", CreatedAt: now})

	r, ok := s.Get("room_a")
	assert.True(ok)
	assert.Equal("room_a", r.ID)

	var ids []string
	for _, r := range s.List() {
		ids = append(ids, r.ID)
	}
	assert.Equal([]string{"room_a", "room_b", "room_c"}, ids)

	s.Delete("room_a")
	_, ok = s.Get("room_a")
	assert.False(ok)
	assert.Equal(2, s.Len())
}
