package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryWindow(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory(2, time.Minute)
	m.now = func() time.Time { return base }

	for i := 0; i < 2; i++ {
		ok, err := m.Allow(ctx, "10.0.0.1")
		assert.NoError(t, err)
		assert.True(t, ok)
	}
	ok, _ := m.Allow(ctx, "10.0.0.1")
	assert.False(t, ok)

	// other keys have their own window
	ok, _ = m.Allow(ctx, "10.0.0.2")
	assert.True(t, ok)

	m.now = func() time.Time { return base.Add(time.Minute) }
	ok, _ = m.Allow(ctx, "10.0.0.1")
	assert.True(t, ok)
}

func TestMemorySweepsExpiredBuckets(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory(5, time.Minute)
	m.now = func() time.Time { return base }

	for _, ip := range []string{"a", "b", "c"} {
		_, _ = m.Allow(ctx, "login|"+ip)
	}
	assert.Len(t, m.hits, 3)

	m.now = func() time.Time { return base.Add(30 * time.Second) }
	_, _ = m.Allow(ctx, "login|d")
	assert.Len(t, m.hits, 4)

	m.now = func() time.Time { return base.Add(time.Minute) }
	_, _ = m.Allow(ctx, "login|e")
	assert.Len(t, m.hits, 2)
	assert.Contains(t, m.hits, "login|d")
	assert.Contains(t, m.hits, "login|e")
}
