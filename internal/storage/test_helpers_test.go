package storage

import (
	"path/filepath"
	"testing"
)

// createTestStore creates a new SQLite store in a temp directory.
func createTestStore(t *testing.T) *SQLite {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func createTestOrder(id, channel string) OrderRecord {
	return OrderRecord{
		ID:            id,
		Channel:       channel,
		Link:          "https://wa.me/?text=hi",
		Transcript:    "hi",
		ItemCount:     2,
		Total:         "3000",
		CustomerName:  "Ivan",
		CustomerPhone: "+7 900 000-00-00",
	}
}
