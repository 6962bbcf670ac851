package repository

import (
	"context"
	"testing"
	"time"

	"streamgate/models"
	"streamgate/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamRepository_Create(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	users := NewUserRepository(testDB.DB)
	repo := NewStreamRepository(testDB.DB)
	ctx := context.Background()

	owner, err := users.Create(ctx, testutil.TestAddress(1), nil)
	require.NoError(t, err)

	t.Run("defaults applied", func(t *testing.T) {
		stream, err := repo.Create(ctx, owner.ID, "0xcommunity", "0.000116", "10.000000", nil, nil, nil)
		require.NoError(t, err)

		assert.NotEmpty(t, stream.ID)
		assert.Equal(t, owner.ID, stream.UserID)
		assert.Equal(t, "0.000116", stream.RatePerSecond)
		assert.Equal(t, "10.000000", stream.TotalAmount)
		assert.Equal(t, "0.000000", stream.StreamedAmount)
		assert.True(t, stream.IsActive)
		assert.False(t, stream.IsPaused)
		assert.False(t, stream.StartTime.IsZero())
		assert.Nil(t, stream.EndTime)
		assert.Nil(t, stream.TransactionHash)
		assert.Nil(t, stream.PaymentID)
	})

	t.Run("amounts survive the round trip exactly", func(t *testing.T) {
		stream, err := repo.Create(ctx, owner.ID, "0xcommunity", "123456789012.654321", "999999.000001", nil, nil, nil)
		require.NoError(t, err)

		assert.Equal(t, "123456789012.654321", stream.RatePerSecond)
		assert.Equal(t, "999999.000001", stream.TotalAmount)
	})

	t.Run("optional fields stored", func(t *testing.T) {
		endTime := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
		stream, err := repo.Create(ctx, owner.ID, "0xcommunity", "0.000116", "10.000000",
			&endTime, testutil.Ptr("0xdeadbeef"), testutil.Ptr("pay-123"))
		require.NoError(t, err)

		require.NotNil(t, stream.EndTime)
		assert.True(t, stream.EndTime.Equal(endTime))
		require.NotNil(t, stream.TransactionHash)
		assert.Equal(t, "0xdeadbeef", *stream.TransactionHash)
		require.NotNil(t, stream.PaymentID)
		assert.Equal(t, "pay-123", *stream.PaymentID)
	})

	t.Run("unknown owner rejected", func(t *testing.T) {
		_, err := repo.Create(ctx, "b2a5c7e1-4f3d-4a2b-9c8e-1d2f3a4b5c6d", "0xcommunity", "1.000000", "2.000000", nil, nil, nil)
		assert.Error(t, err)
	})
}

func TestStreamRepository_GetByUser(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	users := NewUserRepository(testDB.DB)
	repo := NewStreamRepository(testDB.DB)
	ctx := context.Background()

	owner, err := users.Create(ctx, testutil.TestAddress(1), nil)
	require.NoError(t, err)
	other, err := users.Create(ctx, testutil.TestAddress(2), nil)
	require.NoError(t, err)

	first, err := repo.Create(ctx, owner.ID, "0xcommunity", "1.000000", "10.000000", nil, nil, nil)
	require.NoError(t, err)
	second, err := repo.Create(ctx, owner.ID, "0xcommunity", "2.000000", "20.000000", nil, nil, nil)
	require.NoError(t, err)
	_, err = repo.Create(ctx, other.ID, "0xcommunity", "3.000000", "30.000000", nil, nil, nil)
	require.NoError(t, err)

	streams, err := repo.GetByUser(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, streams, 2)

	// Newest first.
	assert.Equal(t, second.ID, streams[0].ID)
	assert.Equal(t, first.ID, streams[1].ID)

	t.Run("no streams", func(t *testing.T) {
		empty, err := users.Create(ctx, testutil.TestAddress(3), nil)
		require.NoError(t, err)

		streams, err := repo.GetByUser(ctx, empty.ID)
		require.NoError(t, err)
		assert.Empty(t, streams)
	})
}

func TestStreamRepository_GetActive(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	users := NewUserRepository(testDB.DB)
	repo := NewStreamRepository(testDB.DB)
	ctx := context.Background()

	owner, err := users.Create(ctx, testutil.TestAddress(1), nil)
	require.NoError(t, err)

	active, err := repo.Create(ctx, owner.ID, "0xcommunity", "1.000000", "10.000000", nil, nil, nil)
	require.NoError(t, err)

	paused, err := repo.Create(ctx, owner.ID, "0xcommunity", "1.000000", "10.000000", nil, nil, nil)
	require.NoError(t, err)
	_, err = repo.Update(ctx, paused.ID, &models.StreamUpdate{IsPaused: testutil.Ptr(true)})
	require.NoError(t, err)

	ended, err := repo.Create(ctx, owner.ID, "0xcommunity", "1.000000", "10.000000", nil, nil, nil)
	require.NoError(t, err)
	_, err = repo.Update(ctx, ended.ID, &models.StreamUpdate{IsActive: testutil.Ptr(false)})
	require.NoError(t, err)

	streams, err := repo.GetActive(ctx)
	require.NoError(t, err)
	require.Len(t, streams, 1)
	assert.Equal(t, active.ID, streams[0].ID)
}

func TestStreamRepository_Update(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	users := NewUserRepository(testDB.DB)
	repo := NewStreamRepository(testDB.DB)
	ctx := context.Background()

	owner, err := users.Create(ctx, testutil.TestAddress(1), nil)
	require.NoError(t, err)

	stream, err := repo.Create(ctx, owner.ID, "0xcommunity", "1.000000", "10.000000", nil, nil, nil)
	require.NoError(t, err)

	t.Run("partial update leaves other fields alone", func(t *testing.T) {
		updated, err := repo.Update(ctx, stream.ID, &models.StreamUpdate{
			StreamedAmount: testutil.Ptr("2.500000"),
		})
		require.NoError(t, err)
		require.NotNil(t, updated)

		assert.Equal(t, "2.500000", updated.StreamedAmount)
		assert.Equal(t, "1.000000", updated.RatePerSecond)
		assert.True(t, updated.IsActive)
		assert.False(t, updated.IsPaused)
	})

	t.Run("pause and resume", func(t *testing.T) {
		paused, err := repo.Update(ctx, stream.ID, &models.StreamUpdate{IsPaused: testutil.Ptr(true)})
		require.NoError(t, err)
		assert.True(t, paused.IsPaused)
		assert.False(t, paused.IsStreaming())

		resumed, err := repo.Update(ctx, stream.ID, &models.StreamUpdate{IsPaused: testutil.Ptr(false)})
		require.NoError(t, err)
		assert.False(t, resumed.IsPaused)
		assert.True(t, resumed.IsStreaming())
	})

	t.Run("end a stream", func(t *testing.T) {
		endTime := time.Now().UTC().Truncate(time.Second)
		ended, err := repo.Update(ctx, stream.ID, &models.StreamUpdate{
			IsActive: testutil.Ptr(false),
			EndTime:  &endTime,
		})
		require.NoError(t, err)
		assert.False(t, ended.IsActive)
		require.NotNil(t, ended.EndTime)
		assert.True(t, ended.EndTime.Equal(endTime))
	})

	t.Run("unknown id", func(t *testing.T) {
		updated, err := repo.Update(ctx, "b2a5c7e1-4f3d-4a2b-9c8e-1d2f3a4b5c6d", &models.StreamUpdate{
			IsPaused: testutil.Ptr(true),
		})
		require.NoError(t, err)
		assert.Nil(t, updated)
	})
}
