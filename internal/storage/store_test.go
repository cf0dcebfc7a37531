package storage

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ambercart/internal/cart"
)

var (
	_ cart.Storage = (*SQLite)(nil)
	_ cart.Storage = (*Memory)(nil)
)

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(path)
	assert.NoError(t, err, "database file was not created")
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	for i := 0; i < 3; i++ {
		s, err := Open(path)
		require.NoError(t, err, "Open() iteration %d", i)
		require.NoError(t, s.Close())
	}

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	for _, table := range []string{"kv", "orders"} {
		var name string
		err := s.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		assert.NoError(t, err, "table %q not found after idempotent opens", table)
	}
}

func TestOpen_Pragmas(t *testing.T) {
	s := createTestStore(t)

	assert.NoError(t, s.verifyPragma("journal_mode", "wal"))
	assert.NoError(t, s.verifyPragma("busy_timeout", "5000"))
	assert.NoError(t, s.verifyPragma("user_version", "1"))
}

func TestOpen_MigratesV0Database(t *testing.T) {
	path := filepath.Join(t.TempDir(), "v0.db")

	// A v0 database has the kv table and nothing else.
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = db.Exec(schemaSQL)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO kv (key, value) VALUES ('ambertruck_cart_v1', '[]')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	v, ok, err := s.Get(context.Background(), "ambertruck_cart_v1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)

	_, err = s.RecordOrder(context.Background(), createTestOrder("o-1", "whatsapp"))
	assert.NoError(t, err)
}

func TestGetSet(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	_, ok, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "k", "one"))
	require.NoError(t, s.Set(ctx, "k", "two"))

	v, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "two", v)

	rev, err := s.Revision(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, int64(2), rev)

	rev, err = s.Revision(ctx, "missing")
	require.NoError(t, err)
	assert.Zero(t, rev)
}

func TestSQLite_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cart.db")

	s1, err := Open(path)
	require.NoError(t, err)
	st, err := cart.Open(ctx, s1)
	require.NoError(t, err)
	_, err = st.Add(ctx, cart.Descriptor{Name: "Bearing X", Price: mustDecimal(t, "1500")}, 2)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()
	reopened, err := cart.Open(ctx, s2)
	require.NoError(t, err)

	assert.Equal(t, 2, reopened.ItemCount())
	assert.Equal(t, "3000", reopened.Total().String())
}

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set(ctx, "k", "v"))
	v, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
	assert.Equal(t, "v", m.Raw("k"))
}

func TestMemory_FailWrites(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	m.FailWrites(errors.New("quota exceeded"))

	assert.EqualError(t, m.Set(ctx, "k", "v"), "quota exceeded")
	m.Seed("k", "seeded")
	assert.Equal(t, "seeded", m.Raw("k"))

	m.FailWrites(nil)
	require.NoError(t, m.Set(ctx, "k", "v"))
	assert.Equal(t, "v", m.Raw("k"))
}

func TestMemory_Orders(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	seq, err := m.RecordOrder(ctx, createTestOrder("a", "whatsapp"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), seq)
	_, err = m.RecordOrder(ctx, createTestOrder("b", "telegram"))
	require.NoError(t, err)

	_, err = m.RecordOrder(ctx, createTestOrder("a", "telegram"))
	assert.ErrorIs(t, err, ErrDuplicateOrder)

	all, err := m.ListOrders(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].ID)
	assert.Equal(t, int64(2), all[1].Seq)

	latest, err := m.ListOrders(ctx, 1)
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, "b", latest[0].ID)
}
