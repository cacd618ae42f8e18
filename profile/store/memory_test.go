package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/region-engine/calendar"
	"github.com/warp/region-engine/profile"
)

func TestMemory_SaveGetDelete(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	p, err := profile.New("utc", calendar.UTC())
	require.NoError(t, err)

	require.NoError(t, m.Save(ctx, p))
	assert.ErrorIs(t, m.Save(ctx, p), profile.ErrDuplicateProfile)

	got, err := m.Get(ctx, "utc")
	require.NoError(t, err)
	assert.Equal(t, p, got)

	require.NoError(t, m.Delete(ctx, "utc"))
	assert.ErrorIs(t, m.Delete(ctx, "utc"), profile.ErrProfileNotFound)
	_, err = m.Get(ctx, "utc")
	assert.ErrorIs(t, err, profile.ErrProfileNotFound)
}

func TestMemory_ConcurrentSaves(t *testing.T) {
	// GIVEN: Many goroutines racing to save the same name
	m := NewMemory()
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	saved := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, _ := profile.New("shared", calendar.UTC())
			if m.Save(ctx, p) == nil {
				mu.Lock()
				saved++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	// THEN: Exactly one wins
	assert.Equal(t, 1, saved)
	list, err := m.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
