package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Investment-Simulator-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Simulator-Backend/internal/simulation"
)

// exercise runs the behaviour every Cache implementation must share.
// expire moves the backend's clock forward.
func exercise(t *testing.T, c Cache, expire func(time.Duration)) {
	ctx := context.Background()

	t.Run("miss on unknown key", func(t *testing.T) {
		_, err := c.Get(ctx, "absent")
		assert.ErrorIs(t, err, apperrors.ErrCacheMiss)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "k1", []byte("v1"), time.Minute))

		got, err := c.Get(ctx, "k1")
		require.NoError(t, err)
		assert.Equal(t, []byte("v1"), got)
	})

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "k2", []byte("old"), time.Minute))
		require.NoError(t, c.Set(ctx, "k2", []byte("new"), time.Minute))

		got, err := c.Get(ctx, "k2")
		require.NoError(t, err)
		assert.Equal(t, []byte("new"), got)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "k3", []byte("v"), time.Minute))
		require.NoError(t, c.Set(ctx, "k4", []byte("v"), time.Minute))
		require.NoError(t, c.Delete(ctx, "k3", "k4", "never-set"))

		_, err := c.Get(ctx, "k3")
		assert.ErrorIs(t, err, apperrors.ErrCacheMiss)
		_, err = c.Get(ctx, "k4")
		assert.ErrorIs(t, err, apperrors.ErrCacheMiss)
	})

	t.Run("expiry", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "short", []byte("v"), time.Second))
		require.NoError(t, c.Set(ctx, "long", []byte("v"), time.Hour))

		expire(2 * time.Second)

		_, err := c.Get(ctx, "short")
		assert.ErrorIs(t, err, apperrors.ErrCacheMiss)
		_, err = c.Get(ctx, "long")
		assert.NoError(t, err)
	})
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	exercise(t, c, func(d time.Duration) { now = now.Add(d) })

	t.Run("returned slice is a copy", func(t *testing.T) {
		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "copy", []byte("abc"), 0))

		got, err := c.Get(ctx, "copy")
		require.NoError(t, err)
		got[0] = 'x'

		again, err := c.Get(ctx, "copy")
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), again)
	})
}

func TestRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	c := NewRedisCache(mr.Addr())
	t.Cleanup(func() { _ = c.Close() })

	require.NoError(t, c.Ping(context.Background()))

	exercise(t, c, mr.FastForward)

	t.Run("surfaces connection errors", func(t *testing.T) {
		mr.Close()

		_, err := c.Get(context.Background(), "k1")
		require.Error(t, err)
		assert.NotErrorIs(t, err, apperrors.ErrCacheMiss)
	})
}

func TestProjectionKey(t *testing.T) {
	a := ProjectionKey(simulation.TypeFixedIncome, []byte(`{"years":10}`))
	b := ProjectionKey(simulation.TypeFixedIncome, []byte(`{"years":10}`))
	c := ProjectionKey(simulation.TypeFixedIncome, []byte(`{"years":11}`))
	d := ProjectionKey(simulation.TypeMixed, []byte(`{"years":10}`))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, a, d)
	assert.Contains(t, a, "simulation:projection:fixed-income:")
	assert.Equal(t, "simulation:id:abc", SimulationKey("abc"))
}
