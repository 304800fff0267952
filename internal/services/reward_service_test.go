package services

import (
	"context"
	"testing"

	"gcore-rewards-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewardCatalogue(t *testing.T) {
	env := newTestEnv(t)
	rewards := NewRewardService(env.db)
	ctx := context.Background()

	_, err := rewards.Create(ctx, RewardInput{Name: "Sticker Pack", Cost: 10, Stock: 100, Category: "merch"})
	require.NoError(t, err)
	_, err = rewards.Create(ctx, RewardInput{Name: "Cafeteria Voucher", Cost: 40, Stock: 20, Category: "food"})
	require.NoError(t, err)
	off := false
	_, err = rewards.Create(ctx, RewardInput{Name: "Old Mug", Cost: 5, Stock: 1, Category: "merch", IsActive: &off})
	require.NoError(t, err)

	list, total, err := rewards.FindRewards(ctx, RewardFilter{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, "Sticker Pack", list[0].Name)

	list, total, err = rewards.FindRewards(ctx, RewardFilter{Category: "merch", IncludeInactive: true, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, "Old Mug", list[0].Name)

	_, total, err = rewards.FindRewards(ctx, RewardFilter{Search: "Voucher", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestRewardCreateValidation(t *testing.T) {
	env := newTestEnv(t)
	rewards := NewRewardService(env.db)

	_, err := rewards.Create(context.Background(), RewardInput{Name: "Free", Cost: 0, Stock: 1})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = rewards.Create(context.Background(), RewardInput{Name: "Negative", Cost: 1, Stock: -1})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestRewardUpdate(t *testing.T) {
	env := newTestEnv(t)
	rewards := NewRewardService(env.db)
	ctx := context.Background()
	reward := env.createReward(t, 50, 3)

	stock := int64(10)
	inactive := false
	updated, err := rewards.Update(ctx, reward.ID, RewardUpdate{Stock: &stock, IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, int64(10), updated.Stock)
	assert.False(t, updated.IsActive)

	bad := int64(-1)
	_, err = rewards.Update(ctx, reward.ID, RewardUpdate{Stock: &bad})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = rewards.Update(ctx, "missing", RewardUpdate{Stock: &stock})
	assert.ErrorIs(t, err, ErrRewardNotFound)
}

func TestRewardDeleteKeepsRedeemedRewards(t *testing.T) {
	env := newTestEnv(t)
	rewards := NewRewardService(env.db)
	ctx := context.Background()
	user := env.createUser(t, walletA)

	unused := env.createReward(t, 10, 1)
	redeemed := env.createReward(t, 10, 5)
	_, err := env.redemptions.Redeem(ctx, user.ID, redeemed.ID, 1)
	require.NoError(t, err)

	hard, err := rewards.Delete(ctx, unused.ID)
	require.NoError(t, err)
	assert.True(t, hard)
	assert.Equal(t, int64(0), env.count(t, &models.Reward{}, "id = ?", unused.ID))

	hard, err = rewards.Delete(ctx, redeemed.ID)
	require.NoError(t, err)
	assert.False(t, hard)

	kept, err := rewards.Get(ctx, redeemed.ID)
	require.NoError(t, err)
	assert.False(t, kept.IsActive)

	_, err = rewards.Delete(ctx, "missing")
	assert.ErrorIs(t, err, ErrRewardNotFound)
}
