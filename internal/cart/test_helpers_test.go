package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

// memStorage is an in-memory Storage double that can be told to fail writes.
type memStorage struct {
	data      map[string]string
	writes    int
	failWrite bool
}

func newMemStorage() *memStorage {
	return &memStorage{data: map[string]string{}}
}

func (m *memStorage) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memStorage) Set(_ context.Context, key, value string) error {
	if m.failWrite {
		return errors.New("disk full")
	}
	m.writes++
	m.data[key] = value
	return nil
}

// openTestStore opens a store over fresh in-memory storage.
func openTestStore(t *testing.T) (*Store, *memStorage) {
	t.Helper()
	mem := newMemStorage()
	s, err := Open(context.Background(), mem)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	return s, mem
}

func product(name, id string, price int64) Descriptor {
	return Descriptor{Name: name, ID: id, Price: decimal.NewFromInt(price)}
}
