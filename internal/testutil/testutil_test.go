package testutil

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManualClock(t *testing.T) {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	c := NewManualClock(start)

	assert.Equal(t, start, c.Now())
	assert.Equal(t, start, c.Now(), "clock must not move on its own")

	c.Advance(1200 * time.Millisecond)
	assert.Equal(t, start.Add(1200*time.Millisecond), c.Now())
}

func TestSequenceIDGenerator(t *testing.T) {
	g := NewSequenceIDGenerator("test")

	assert.Equal(t, "test-0001", g.Generate())
	assert.Equal(t, "test-0002", g.Generate())

	assert.Equal(t, "order-0001", NewSequenceIDGenerator("").Generate())
}

func TestSequenceIDGenerator_Concurrent(t *testing.T) {
	g := NewSequenceIDGenerator("c")
	seen := sync.Map{}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, dup := seen.LoadOrStore(g.Generate(), true)
			assert.False(t, dup)
		}()
	}
	wg.Wait()
}
