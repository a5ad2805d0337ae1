package cart

import (
	"context"
	"sync"
)

// MemoryStore keeps carts in process, encoded the same way as in Redis.
type MemoryStore struct {
	lock  sync.Mutex
	carts map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string]string)}
}

func (m *MemoryStore) Get(ctx context.Context, userID string) ([]string, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	return Decode(m.carts[Key(userID)]), nil
}

func (m *MemoryStore) Add(ctx context.Context, userID string, courseID string) ([]string, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	ids := add(Decode(m.carts[Key(userID)]), courseID)
	m.carts[Key(userID)] = Encode(ids)
	return ids, nil
}

func (m *MemoryStore) Remove(ctx context.Context, userID string, courseID string) ([]string, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	ids := remove(Decode(m.carts[Key(userID)]), courseID)
	m.carts[Key(userID)] = Encode(ids)
	return ids, nil
}

func (m *MemoryStore) Clear(ctx context.Context, userID string) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	delete(m.carts, Key(userID))
	return nil
}

// SetRaw stores a raw value as the user's cart, bypassing encoding.
func (m *MemoryStore) SetRaw(userID string, raw string) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.carts[Key(userID)] = raw
}
