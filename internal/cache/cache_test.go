package cache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silversons/circus-site/internal/cache"
	"github.com/silversons/circus-site/internal/clock"
)

// stepClock is a hand-written clock.Clock whose current instant a test can
// advance explicitly.
type stepClock struct {
	now time.Time
}

func (c *stepClock) Now() time.Time { return c.now }

var _ clock.Clock = (*stepClock)(nil)

func TestSnapshot_emptyIsNotFresh(t *testing.T) {
	clk := &stepClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	s := cache.New[string](5*time.Minute, clk)

	_, ok := s.Get()
	assert.False(t, ok)

	_, ok = s.Stale()
	assert.False(t, ok)
}

func TestSnapshot_freshWithinTTL(t *testing.T) {
	clk := &stepClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	s := cache.New[string](5*time.Minute, clk)

	s.Set("snapshot-1")
	clk.now = clk.now.Add(4 * time.Minute)

	got, ok := s.Get()
	require.True(t, ok)
	assert.Equal(t, "snapshot-1", got)
}

func TestSnapshot_expiresAtTTL(t *testing.T) {
	clk := &stepClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	s := cache.New[string](5*time.Minute, clk)

	s.Set("snapshot-1")
	clk.now = clk.now.Add(5 * time.Minute) // exactly at expiry: no longer fresh

	_, ok := s.Get()
	assert.False(t, ok)

	// The stale value remains available as a fallback.
	got, ok := s.Stale()
	require.True(t, ok)
	assert.Equal(t, "snapshot-1", got)
}

func TestSnapshot_setRestartsTTL(t *testing.T) {
	clk := &stepClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	s := cache.New[string](5*time.Minute, clk)

	s.Set("snapshot-1")
	clk.now = clk.now.Add(4 * time.Minute)
	s.Set("snapshot-2")
	clk.now = clk.now.Add(4 * time.Minute)

	got, ok := s.Get()
	require.True(t, ok)
	assert.Equal(t, "snapshot-2", got)
}

func TestSnapshot_zeroTTLDisablesCaching(t *testing.T) {
	clk := &stepClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	s := cache.New[string](0, clk)

	s.Set("snapshot-1")

	_, ok := s.Get()
	assert.False(t, ok)
}
