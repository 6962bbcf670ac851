package repository

import (
	"context"
	"testing"

	"streamgate/models"
	"streamgate/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsRepository_Get(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewStatsRepository(testDB.DB)
	ctx := context.Background()

	t.Run("first read creates the row", func(t *testing.T) {
		stats, err := repo.Get(ctx)
		require.NoError(t, err)

		assert.NotEmpty(t, stats.ID)
		assert.Equal(t, 0, stats.TotalMembers)
		assert.Equal(t, 0, stats.ActiveStreamers)
		assert.Equal(t, "0.000000", stats.TotalStreamed)
		assert.Equal(t, "0.000000", stats.MonthlyVolume)
	})

	t.Run("subsequent reads reuse the row", func(t *testing.T) {
		first, err := repo.Get(ctx)
		require.NoError(t, err)

		second, err := repo.Get(ctx)
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
	})
}

func TestStatsRepository_Recompute(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	users := NewUserRepository(testDB.DB)
	streams := NewStreamRepository(testDB.DB)
	repo := NewStatsRepository(testDB.DB)
	ctx := context.Background()

	t.Run("empty database", func(t *testing.T) {
		stats, err := repo.Recompute(ctx)
		require.NoError(t, err)

		assert.Equal(t, 0, stats.TotalMembers)
		assert.Equal(t, 0, stats.ActiveStreamers)
		assert.Equal(t, "0.000000", stats.TotalStreamed)
	})

	alice, err := users.Create(ctx, testutil.TestAddress(1), nil)
	require.NoError(t, err)
	bob, err := users.Create(ctx, testutil.TestAddress(2), nil)
	require.NoError(t, err)
	_, err = users.Create(ctx, testutil.TestAddress(3), nil)
	require.NoError(t, err)

	// Alice has two active streams, bob has one paused stream.
	streamA, err := streams.Create(ctx, alice.ID, "0xcommunity", "1.000000", "10.000000", nil, nil, nil)
	require.NoError(t, err)
	_, err = streams.Create(ctx, alice.ID, "0xcommunity", "1.000000", "10.000000", nil, nil, nil)
	require.NoError(t, err)
	streamB, err := streams.Create(ctx, bob.ID, "0xcommunity", "1.000000", "10.000000", nil, nil, nil)
	require.NoError(t, err)
	_, err = streams.Update(ctx, streamB.ID, &models.StreamUpdate{IsPaused: testutil.Ptr(true)})
	require.NoError(t, err)

	_, err = streams.Update(ctx, streamA.ID, &models.StreamUpdate{StreamedAmount: testutil.Ptr("2.500000")})
	require.NoError(t, err)
	_, err = streams.Update(ctx, streamB.ID, &models.StreamUpdate{StreamedAmount: testutil.Ptr("1.250000")})
	require.NoError(t, err)

	t.Run("aggregates rederived", func(t *testing.T) {
		stats, err := repo.Recompute(ctx)
		require.NoError(t, err)

		assert.Equal(t, 3, stats.TotalMembers)
		// Alice counts once despite two active streams; bob's is paused.
		assert.Equal(t, 1, stats.ActiveStreamers)
		// Streamed totals include paused streams.
		assert.Equal(t, "3.750000", stats.TotalStreamed)
	})

	t.Run("monthly volume preserved", func(t *testing.T) {
		before, err := repo.Get(ctx)
		require.NoError(t, err)

		after, err := repo.Recompute(ctx)
		require.NoError(t, err)

		assert.Equal(t, before.MonthlyVolume, after.MonthlyVolume)
	})
}
