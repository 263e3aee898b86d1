package cache

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlot_HitWithinTTL(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	s := NewSlot[int](time.Minute).WithNow(func() time.Time { return now })

	calls := 0
	fill := func() (int, error) { calls++; return 42, nil }

	v, err := s.Get(fill)
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	now = now.Add(59 * time.Second)
	v, err = s.Get(fill)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 1, calls, "second call within TTL must not recompute")
}

func TestSlot_RecomputeAfterTTL(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	s := NewSlot[int](time.Minute).WithNow(func() time.Time { return now })

	calls := 0
	_, err := s.Get(func() (int, error) { calls++; return calls, nil })
	require.NoError(t, err)

	now = now.Add(61 * time.Second)
	v, err := s.Get(func() (int, error) { calls++; return calls, nil })
	require.NoError(t, err)
	assert.Equal(t, 2, v)
	assert.Equal(t, 2, calls)
}

func TestSlot_ExpireForcesExactlyOneRecompute(t *testing.T) {
	s := NewSlot[string](time.Hour)

	calls := 0
	fill := func() (string, error) { calls++; return "v", nil }

	_, err := s.Get(fill)
	require.NoError(t, err)
	s.Expire()

	_, err = s.Get(fill)
	require.NoError(t, err)
	_, err = s.Get(fill)
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "forced expiry triggers exactly one new fill")
}

func TestSlot_FillErrorLeavesSlotEmpty(t *testing.T) {
	s := NewSlot[int](time.Hour)

	_, err := s.Get(func() (int, error) { return 0, errors.New("upstream down") })
	require.Error(t, err)

	v, err := s.Get(func() (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestSlot_SingleFillUnderConcurrency(t *testing.T) {
	s := NewSlot[int](time.Hour)

	var calls int
	fill := func() (int, error) {
		calls++
		time.Sleep(10 * time.Millisecond)
		return 1, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := s.Get(fill)
			assert.NoError(t, err)
			assert.Equal(t, 1, v)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, calls, "concurrent callers must share one recompute")
}

func TestSlot_Age(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	s := NewSlot[int](time.Minute).WithNow(func() time.Time { return now })

	assert.Equal(t, time.Duration(0), s.Age())

	_, err := s.Get(func() (int, error) { return 1, nil })
	require.NoError(t, err)
	now = now.Add(15 * time.Second)
	assert.Equal(t, 15*time.Second, s.Age())
}
