package repository

import (
	"context"
	"fmt"
	"testing"

	"streamgate/models"
	"streamgate/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageRepository_Create(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	users := NewUserRepository(testDB.DB)
	repo := NewMessageRepository(testDB.DB)
	ctx := context.Background()

	author, err := users.Create(ctx, testutil.TestAddress(1), nil)
	require.NoError(t, err)

	t.Run("user message", func(t *testing.T) {
		message, err := repo.Create(ctx, author.ID, "hello community", models.MessageTypeUser, nil)
		require.NoError(t, err)

		assert.NotEmpty(t, message.ID)
		assert.Equal(t, author.ID, message.UserID)
		assert.Equal(t, "hello community", message.Content)
		assert.Equal(t, models.MessageTypeUser, message.MessageType)
		assert.Nil(t, message.Metadata)
		assert.False(t, message.CreatedAt.IsZero())
	})

	t.Run("system message with metadata", func(t *testing.T) {
		message, err := repo.Create(ctx, author.ID, "stream started", models.MessageTypeSystem, map[string]any{
			"streamId": "stream-1",
		})
		require.NoError(t, err)

		assert.Equal(t, models.MessageTypeSystem, message.MessageType)
		require.NotNil(t, message.Metadata)
		assert.Equal(t, "stream-1", message.Metadata["streamId"])
	})

	t.Run("unknown author rejected", func(t *testing.T) {
		_, err := repo.Create(ctx, "b2a5c7e1-4f3d-4a2b-9c8e-1d2f3a4b5c6d", "hi", models.MessageTypeUser, nil)
		assert.Error(t, err)
	})
}

func TestMessageRepository_GetRecentWithAuthors(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	users := NewUserRepository(testDB.DB)
	repo := NewMessageRepository(testDB.DB)
	ctx := context.Background()

	author, err := users.Create(ctx, testutil.TestAddress(1), testutil.Ptr("alice"))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err := repo.Create(ctx, author.ID, fmt.Sprintf("message %d", i), models.MessageTypeUser, nil)
		require.NoError(t, err)
	}

	t.Run("limit honored, newest first", func(t *testing.T) {
		messages, err := repo.GetRecentWithAuthors(ctx, 3)
		require.NoError(t, err)
		require.Len(t, messages, 3)

		assert.Equal(t, "message 4", messages[0].Content)
		assert.Equal(t, "message 3", messages[1].Content)
		assert.Equal(t, "message 2", messages[2].Content)
	})

	t.Run("author joined", func(t *testing.T) {
		messages, err := repo.GetRecentWithAuthors(ctx, 1)
		require.NoError(t, err)
		require.Len(t, messages, 1)

		require.NotNil(t, messages[0].User)
		assert.Equal(t, author.ID, messages[0].User.ID)
		require.NotNil(t, messages[0].User.Username)
		assert.Equal(t, "alice", *messages[0].User.Username)
	})

	t.Run("empty feed", func(t *testing.T) {
		emptyDB := testutil.SetupTestDatabase(t)
		emptyRepo := NewMessageRepository(emptyDB.DB)

		messages, err := emptyRepo.GetRecentWithAuthors(ctx, 50)
		require.NoError(t, err)
		assert.Empty(t, messages)
	})
}
