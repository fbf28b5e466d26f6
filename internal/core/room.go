package core

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrRoomFull   = errors.New("room is full")
	ErrRoomClosed = errors.New("room is closed")
)

// PlayerView is the externally visible projection of one occupied seat.
type PlayerView struct {
	Seat  int    `json:"seat"`
	Nick  string `json:"nick"`
	Ready bool   `json:"ready"`
}

// Occupant binds a seat to a live connection. Ready only ever moves
// false -> true; freeing the seat is the only way back.
type Occupant struct {
	ConnID string
	Nick   string
	Ready  bool
	client *Client
}

// Room is one match lobby: a fixed-length seat vector behind a mutex.
// All seat mutations are check-and-set under r.mu; nothing here performs
// I/O while the lock is held.
type Room struct {
	Code      string
	CreatedAt time.Time

	mu     sync.Mutex
	seats  []*Occupant
	closed bool
}

func NewRoom(code string, capacity int) *Room {
	return &Room{
		Code:      code,
		CreatedAt: time.Now(),
		seats:     make([]*Occupant, capacity),
	}
}

func (r *Room) Capacity() int {
	return len(r.seats)
}

// Assign seats the occupant at the lowest free index. A room that has been
// removed from the registry refuses new occupants.
func (r *Room) Assign(connID, nick string, c *Client) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return -1, ErrRoomClosed
	}
	for i, s := range r.seats {
		if s == nil {
			r.seats[i] = &Occupant{ConnID: connID, Nick: nick, client: c}
			return i, nil
		}
	}
	return -1, ErrRoomFull
}

// MarkReady flags the seat and reports whether the room is now full with
// every occupant ready. Empty seats are ignored; readiness is monotonic.
func (r *Room) MarkReady(seat int) (started bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if seat < 0 || seat >= len(r.seats) || r.seats[seat] == nil {
		return false
	}
	r.seats[seat].Ready = true

	for _, s := range r.seats {
		if s == nil || !s.Ready {
			return false
		}
	}
	return true
}

// Vacate frees the seat and returns the leaving occupant's nick. ok is false
// when the seat was already empty; empty reports whether the whole room is
// now unoccupied.
func (r *Room) Vacate(seat int) (nick string, empty bool, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if seat < 0 || seat >= len(r.seats) || r.seats[seat] == nil {
		return "", r.emptyLocked(), false
	}
	nick = r.seats[seat].Nick
	r.seats[seat] = nil
	return nick, r.emptyLocked(), true
}

func (r *Room) Empty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.emptyLocked()
}

func (r *Room) emptyLocked() bool {
	for _, s := range r.seats {
		if s != nil {
			return false
		}
	}
	return true
}

// Snapshot rebuilds the seat projection on every call. Never cached: a
// cached view could outlive a concurrent vacate.
func (r *Room) Snapshot() []*PlayerView {
	r.mu.Lock()
	defer r.mu.Unlock()

	players := make([]*PlayerView, len(r.seats))
	for i, s := range r.seats {
		if s != nil {
			players[i] = &PlayerView{Seat: i, Nick: s.Nick, Ready: s.Ready}
		}
	}
	return players
}

// Recipients lists the connections currently seated, for fan-out after the
// room lock has been released.
func (r *Room) Recipients() []*Client {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*Client
	for _, s := range r.seats {
		if s != nil && s.client != nil {
			out = append(out, s.client)
		}
	}
	return out
}

func (r *Room) close() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
}
