package core

import (
	"sync"

	"github.com/hashicorp/go-memdb"
	"github.com/rs/zerolog/log"
)

const roomTable = "rooms"

var roomSchema = &memdb.DBSchema{
	Tables: map[string]*memdb.TableSchema{
		roomTable: {
			Name: roomTable,
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:    "id",
					Unique:  true,
					Indexer: &memdb.StringFieldIndex{Field: "Code"},
				},
			},
		},
	},
}

// Registry is the single source of truth for room existence: code -> *Room,
// backed by go-memdb with a unique index on the code. Mutations are
// serialized by reg.mu; rooms themselves carry their own lock.
type Registry struct {
	mu       sync.Mutex
	db       *memdb.MemDB
	codes    *CodeGenerator
	capacity int
}

func NewRegistry(capacity int) (*Registry, error) {
	db, err := memdb.NewMemDB(roomSchema)
	if err != nil {
		return nil, err
	}
	return &Registry{
		db:       db,
		codes:    NewCodeGenerator(),
		capacity: capacity,
	}, nil
}

// CreateRoom allocates a room under a fresh unique code and publishes it.
func (reg *Registry) CreateRoom() (*Room, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	code, err := reg.codes.Generate(func(code string) bool {
		_, found := reg.lookup(code)
		return found
	})
	if err != nil {
		return nil, err
	}

	room := NewRoom(code, reg.capacity)
	txn := reg.db.Txn(true)
	if err := txn.Insert(roomTable, room); err != nil {
		txn.Abort()
		return nil, err
	}
	txn.Commit()

	log.Info().Str("code", code).Int("capacity", reg.capacity).Msg("room created")
	return room, nil
}

// Get looks a room up by code.
func (reg *Registry) Get(code string) (*Room, bool) {
	return reg.lookup(code)
}

// RemoveIfEmpty deletes the room when every seat is empty and releases its
// code. Idempotent: an unknown code or a still-occupied room is a no-op.
func (reg *Registry) RemoveIfEmpty(code string) bool {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	room, found := reg.lookup(code)
	if !found || !room.Empty() {
		return false
	}

	txn := reg.db.Txn(true)
	if err := txn.Delete(roomTable, room); err != nil {
		txn.Abort()
		return false
	}
	txn.Commit()

	room.close()
	reg.codes.Release(code)
	log.Info().Str("code", code).Msg("room removed")
	return true
}

// Count reports the number of live rooms.
func (reg *Registry) Count() int {
	txn := reg.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(roomTable, "id")
	if err != nil {
		return 0
	}
	n := 0
	for obj := it.Next(); obj != nil; obj = it.Next() {
		n++
	}
	return n
}

func (reg *Registry) lookup(code string) (*Room, bool) {
	txn := reg.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(roomTable, "id", code)
	if err != nil || raw == nil {
		return nil, false
	}
	return raw.(*Room), true
}
