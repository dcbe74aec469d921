package room

import "time"

type Timer interface {
	Stop() bool
}

// Scheduler arms f to run once after d.
type Scheduler func(d time.Duration, f func()) Timer

func realScheduler(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

type turnHandle struct {
	timer    Timer
	seq      uint64
	holder   string
	deadline time.Time
}

// TurnCoordinator owns one cancelable deadline per room. A fired timer only
// reaches onExpire if it is still the room's current handle, so a timer that
// loses the race against Cancel or a reschedule is dropped.
type TurnCoordinator struct {
	schedule Scheduler
	post     func(func())
	onExpire func(roomID, holder string)
	handles  map[string]*turnHandle
	seq      uint64
}

func NewTurnCoordinator(loop Loop, onExpire func(roomID, holder string)) *TurnCoordinator {
	return &TurnCoordinator{
		schedule: realScheduler,
		post:     loop.Post,
		onExpire: onExpire,
		handles:  map[string]*turnHandle{},
	}
}

// Restart cancels any running deadline for roomID and arms a new one for
// holder.
func (c *TurnCoordinator) Restart(roomID, holder string, d time.Duration) {
	c.Cancel(roomID)
	if holder == "" || d <= 0 {
		return
	}
	c.seq++
	h := &turnHandle{seq: c.seq, holder: holder, deadline: time.Now().Add(d)}
	seq := h.seq
	h.timer = c.schedule(d, func() {
		c.post(func() { c.fire(roomID, seq) })
	})
	c.handles[roomID] = h
}

func (c *TurnCoordinator) fire(roomID string, seq uint64) {
	h, ok := c.handles[roomID]
	if !ok || h.seq != seq {
		return
	}
	delete(c.handles, roomID)
	c.onExpire(roomID, h.holder)
}

func (c *TurnCoordinator) Cancel(roomID string) {
	if h, ok := c.handles[roomID]; ok {
		h.timer.Stop()
		delete(c.handles, roomID)
	}
}

func (c *TurnCoordinator) Deadline(roomID string) time.Time {
	if h, ok := c.handles[roomID]; ok {
		return h.deadline
	}
	return time.Time{}
}
