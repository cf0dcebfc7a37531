package storage

import (
	"context"
	"fmt"
	"sync"
)

// Memory is a process-local key-value store and order log. It backs
// scenario runs and tests, and can be told to fail writes.
type Memory struct {
	mu        sync.Mutex
	data      map[string]string
	orders    []OrderRecord
	failWrite error
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

// Get returns the value stored under key.
func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

// Set overwrites the value stored under key.
func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrite != nil {
		return m.failWrite
	}
	m.data[key] = value
	return nil
}

// Raw returns the stored value without a context, for assertions.
func (m *Memory) Raw(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key]
}

// Seed writes value under key even while writes are failing.
func (m *Memory) Seed(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

// FailWrites makes every Set return err. A nil err restores writes.
func (m *Memory) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWrite = err
}

// RecordOrder appends rec with the next sequence number.
func (m *Memory) RecordOrder(_ context.Context, rec OrderRecord) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders {
		if o.ID == rec.ID {
			return 0, fmt.Errorf("%w: %s", ErrDuplicateOrder, rec.ID)
		}
	}
	rec.Seq = int64(len(m.orders) + 1)
	m.orders = append(m.orders, rec)
	return rec.Seq, nil
}

// ListOrders returns recorded orders oldest first. A positive limit keeps
// only the most recent limit orders; limit <= 0 returns all.
func (m *Memory) ListOrders(_ context.Context, limit int) ([]OrderRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	from := 0
	if limit > 0 && limit < len(m.orders) {
		from = len(m.orders) - limit
	}
	out := make([]OrderRecord, len(m.orders)-from)
	copy(out, m.orders[from:])
	return out, nil
}
