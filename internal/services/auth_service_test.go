package services

import (
	"context"
	"testing"
	"time"

	"gcore-rewards-backend/internal/testutil"
	"gcore-rewards-backend/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectAndLogout(t *testing.T) {
	env := newTestEnv(t)
	client, _ := testutil.NewTestRedis(t)
	tokens := utils.NewTokenManager("test-secret", time.Hour)
	denylist := NewTokenDenylist(client)
	auth := NewAuthService(env.users, tokens, denylist)
	ctx := context.Background()

	token, user, err := auth.Connect(ctx, walletA)
	require.NoError(t, err)
	assert.Equal(t, walletA, user.WalletAddress)

	claims, err := tokens.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "USER", claims.Role)

	_, again, err := auth.Connect(ctx, walletA)
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)

	listed, err := denylist.IsDenylisted(ctx, token)
	require.NoError(t, err)
	assert.False(t, listed)

	require.NoError(t, auth.Logout(ctx, token, claims.ExpiresAt.Time))
	listed, err = denylist.IsDenylisted(ctx, token)
	require.NoError(t, err)
	assert.True(t, listed)

	_, _, err = auth.Connect(ctx, "not-a-wallet")
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestDenylistSkipsExpiredTokens(t *testing.T) {
	client, mr := testutil.NewTestRedis(t)
	denylist := NewTokenDenylist(client)

	require.NoError(t, denylist.Add(context.Background(), "expired", -time.Second))
	assert.Empty(t, mr.Keys())

	require.NoError(t, denylist.Add(context.Background(), "live", time.Minute))
	mr.FastForward(2 * time.Minute)
	listed, err := denylist.IsDenylisted(context.Background(), "live")
	require.NoError(t, err)
	assert.False(t, listed)
}

func TestIdempotencyStore(t *testing.T) {
	client, mr := testutil.NewTestRedis(t)
	store := NewIdempotencyStore(client, time.Minute)
	ctx := context.Background()

	ok, err := store.Reserve(ctx, "redeem", "k1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Reserve(ctx, "redeem", "k1")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = store.Reserve(ctx, "distribute", "k1")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, store.Release(ctx, "redeem", "k1"))
	ok, err = store.Reserve(ctx, "redeem", "k1")
	require.NoError(t, err)
	assert.True(t, ok)

	mr.FastForward(2 * time.Minute)
	ok, err = store.Reserve(ctx, "redeem", "k1")
	require.NoError(t, err)
	assert.True(t, ok)
}
