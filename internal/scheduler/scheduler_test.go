package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ndewijer/Investment-Simulator-Backend/internal/config"
	"github.com/ndewijer/Investment-Simulator-Backend/internal/testutil"
)

type fakePurger struct {
	calls     int
	retention time.Duration
	deleted   int
	err       error
}

func (f *fakePurger) PurgeExpired(_ context.Context, retention time.Duration) (int, error) {
	f.calls++
	f.retention = retention
	return f.deleted, f.err
}

func TestNew(t *testing.T) {
	t.Run("zero days registers nothing", func(t *testing.T) {
		s, err := New(&fakePurger{}, config.RetentionConfig{Days: 0, Schedule: "@daily"}, zap.NewNop())

		require.NoError(t, err)
		assert.Equal(t, 0, s.Jobs())
	})

	t.Run("registers the purge", func(t *testing.T) {
		s, err := New(&fakePurger{}, config.RetentionConfig{Days: 30, Schedule: "@daily"}, zap.NewNop())

		require.NoError(t, err)
		assert.Equal(t, 1, s.Jobs())
	})

	t.Run("rejects malformed schedule", func(t *testing.T) {
		_, err := New(&fakePurger{}, config.RetentionConfig{Days: 30, Schedule: "every tuesday"}, zap.NewNop())

		assert.Error(t, err)
	})
}

func TestRunPurge(t *testing.T) {
	t.Run("passes the retention window and logs the count", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		p := &fakePurger{deleted: 3}
		s, err := New(p, config.RetentionConfig{Days: 7, Schedule: "@daily"}, zap.New(core))
		require.NoError(t, err)

		s.RunPurge(context.Background())

		assert.Equal(t, 1, p.calls)
		assert.Equal(t, 7*24*time.Hour, p.retention)
		entries := logs.FilterMessage("retention purge finished").All()
		require.Len(t, entries, 1)
		assert.Equal(t, int64(3), entries[0].ContextMap()["deleted"])
	})

	t.Run("logs failures", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		p := &fakePurger{err: errors.New("disk full")}
		s, err := New(p, config.RetentionConfig{Days: 7, Schedule: "@daily"}, zap.New(core))
		require.NoError(t, err)

		s.RunPurge(context.Background())

		assert.Equal(t, 1, logs.FilterMessage("retention purge failed").Len())
	})

	t.Run("purges stored simulations", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSimulationService(t, db)
		testutil.NewSimulation().WithCreatedAt(time.Now().AddDate(0, 0, -40)).Build(t, db)
		testutil.CreateSimulation(t, db)

		s, err := New(svc, config.RetentionConfig{Days: 30, Schedule: "@daily"}, zap.NewNop())
		require.NoError(t, err)

		s.RunPurge(context.Background())

		testutil.AssertRowCount(t, db, "simulation", 1)
	})
}

func TestStartStop(t *testing.T) {
	s, err := New(&fakePurger{}, config.RetentionConfig{Days: 1, Schedule: "@hourly"}, zap.NewNop())
	require.NoError(t, err)

	s.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
	assert.NoError(t, ctx.Err())
}
