package repository

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-credit-api/internal/models"
	appErrors "github.com/noah-isme/campus-credit-api/pkg/errors"
)

func TestMemorySessionRoundTrip(t *testing.T) {
	repo := NewMemorySessionRepository(time.Minute)
	ctx := context.Background()

	session := &models.ViewSession{ID: "s1", View: models.ViewDashboard, Selection: models.NewSelectionState()}
	require.NoError(t, repo.Save(ctx, session))

	loaded, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, models.ViewDashboard, loaded.View)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, repo.Delete(ctx, "s1"))
	_, err = repo.Get(ctx, "s1")
	assert.ErrorIs(t, err, appErrors.ErrSessionNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "s1"), appErrors.ErrSessionNotFound)
}

func TestMemorySessionIsolation(t *testing.T) {
	repo := NewMemorySessionRepository(time.Minute)
	ctx := context.Background()

	session := &models.ViewSession{
		ID:            "s1",
		View:          models.ViewNotifications,
		Selection:     models.NewSelectionState(),
		Notifications: []models.Notification{{ID: 1, Read: false}},
	}
	require.NoError(t, repo.Save(ctx, session))
	session.Notifications[0].Read = true

	loaded, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, loaded.Notifications[0].Read)

	loaded.Notifications[0].Read = true
	again, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, again.Notifications[0].Read)
}

func TestMemorySessionExpires(t *testing.T) {
	repo := NewMemorySessionRepository(time.Minute)
	now := time.Date(2023, 10, 15, 9, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &models.ViewSession{ID: "old"}))
	now = now.Add(30 * time.Second)
	require.NoError(t, repo.Save(ctx, &models.ViewSession{ID: "new"}))

	now = now.Add(45 * time.Second)
	_, err := repo.Get(ctx, "old")
	assert.ErrorIs(t, err, appErrors.ErrSessionNotFound)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSessionKey(t *testing.T) {
	assert.Equal(t, "view_session:abc", sessionKey("abc"))
}

func TestRedisSessionPayloadKeepsSelection(t *testing.T) {
	category := "社会实践"
	index := 0
	sel := models.NewSelectionState()
	sel.SearchTerm = "张"
	sel.CategoryFilter = &category
	sel.ActivePieIndex = &index
	session := &models.ViewSession{
		ID:            "s1",
		View:          models.ViewNotifications,
		Selection:     sel,
		Notifications: []models.Notification{{ID: 1, Title: "新活动审核请求", Type: models.NotificationAlert}},
		CreatedAt:     time.Date(2023, 10, 15, 8, 0, 0, 0, time.UTC),
		UpdatedAt:     time.Date(2023, 10, 15, 9, 0, 0, 0, time.UTC),
	}

	payload, err := encodeSession(session)
	require.NoError(t, err)
	decoded, err := decodeSession("s1", payload)
	require.NoError(t, err)

	assert.True(t, decoded.Selection.Equal(sel))
	require.NotNil(t, decoded.Selection.ActivePieIndex)
	assert.NotSame(t, sel.ActivePieIndex, decoded.Selection.ActivePieIndex)
	assert.Equal(t, session.Notifications, decoded.Notifications)
	assert.True(t, session.UpdatedAt.Equal(decoded.UpdatedAt))
	assert.Equal(t, models.ViewNotifications, decoded.View)

	_, err = decodeSession("s1", []byte("{"))
	assert.Error(t, err)
}

func TestRedisSessionUnreachableServer(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	repo := NewRedisSessionRepository(client, time.Minute)
	ctx := context.Background()

	assert.Error(t, repo.Save(ctx, &models.ViewSession{ID: "s1"}))

	_, err := repo.Get(ctx, "s1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, appErrors.ErrSessionNotFound)

	err = repo.Delete(ctx, "s1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, appErrors.ErrSessionNotFound)

	_, err = repo.Count(ctx)
	assert.Error(t, err)
}
