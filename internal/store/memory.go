// internal/store/memory.go
package store

import (
	"context"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"smartwarehouse/internal/inventory"
)

const shardCount = 32

// Memory is a concurrent in-memory item store. Entries are spread over
// hash-selected shards so that upserts to the same id serialize against each
// other while unrelated ids never contend on a shared lock. Items are stored
// and returned by value, so callers can never alias internal state.
type Memory struct {
	shards [shardCount]shard
}

type shard struct {
	mu    sync.RWMutex
	items map[uuid.UUID]inventory.Item
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	m := &Memory{}
	for i := range m.shards {
		m.shards[i].items = make(map[uuid.UUID]inventory.Item)
	}
	return m
}

func (m *Memory) shardFor(id uuid.UUID) *shard {
	return &m.shards[xxhash.Sum64(id[:])%shardCount]
}

// GetAll returns a copy of every stored item. Order is not meaningful.
func (m *Memory) GetAll(ctx context.Context) ([]inventory.Item, error) {
	var items []inventory.Item
	for i := range m.shards {
		s := &m.shards[i]
		s.mu.RLock()
		for _, item := range s.items {
			items = append(items, item)
		}
		s.mu.RUnlock()
	}
	return items, nil
}

// Get returns the item with the given id, or (nil, nil) when absent.
func (m *Memory) Get(ctx context.Context, id uuid.UUID) (*inventory.Item, error) {
	s := m.shardFor(id)
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

// Upsert stores a copy of the item, assigning an identity when item.ID is
// the zero UUID, and returns the stored copy. Concurrent upserts to the same
// id resolve to one of the writes in full; fields never interleave because
// the whole value is replaced under the shard lock.
func (m *Memory) Upsert(ctx context.Context, item inventory.Item) (inventory.Item, error) {
	item.ID = inventory.AssignID(item.ID)

	s := m.shardFor(item.ID)
	s.mu.Lock()
	s.items[item.ID] = item
	s.mu.Unlock()

	return item, nil
}

// Remove deletes the item with the given id and reports whether it existed.
func (m *Memory) Remove(ctx context.Context, id uuid.UUID) (bool, error) {
	s := m.shardFor(id)
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.items[id]
	delete(s.items, id)
	return ok, nil
}

// Clear removes every entry. Used by tests.
func (m *Memory) Clear() {
	for i := range m.shards {
		s := &m.shards[i]
		s.mu.Lock()
		s.items = make(map[uuid.UUID]inventory.Item)
		s.mu.Unlock()
	}
}
