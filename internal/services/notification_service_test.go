package services

import (
	"context"
	"testing"

	"gcore-rewards-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationFeed(t *testing.T) {
	env := newTestEnv(t)
	svc := NewNotificationService(env.db)
	ctx := context.Background()
	owner := env.createUser(t, walletA)
	other := env.createUser(t, walletB)

	require.NoError(t, svc.Create(ctx, owner.ID, models.NotificationInfo, "Welcome", "Hello", ""))
	require.NoError(t, svc.Create(ctx, owner.ID, models.NotificationSuccess, "Tokens", "You earned 10", "/profile"))

	feed, err := svc.List(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, feed.Notifications, 2)
	assert.Equal(t, int64(2), feed.UnreadCount)

	id := feed.Notifications[0].ID

	_, err = svc.MarkRead(ctx, other.ID, id)
	assert.ErrorIs(t, err, ErrNotificationForbidden)

	_, err = svc.MarkRead(ctx, owner.ID, "missing")
	assert.ErrorIs(t, err, ErrNotificationNotFound)

	_, err = svc.MarkRead(ctx, owner.ID, id)
	require.NoError(t, err)

	feed, err = svc.List(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), feed.UnreadCount)

	n, err := svc.MarkAllRead(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	feed, err = svc.List(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, feed.Notifications)
	assert.Equal(t, int64(0), feed.UnreadCount)
}
