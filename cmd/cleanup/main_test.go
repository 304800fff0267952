package main

import (
	"context"
	"testing"

	"gcore-rewards-backend/internal/models"
	"gcore-rewards-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanupKeepsUsersAndRewards(t *testing.T) {
	db := testutil.NewTestDB(t)

	user := &models.User{WalletAddress: "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", Role: models.RoleUser, Status: models.UserStatusApproved}
	require.NoError(t, db.Create(user).Error)
	reward := &models.Reward{Name: "Mug", Cost: 10, Stock: 1, Category: "merch", IsActive: true}
	require.NoError(t, db.Create(reward).Error)
	require.NoError(t, db.Create(&models.Transaction{UserID: user.ID, Amount: 10, Type: models.TransactionEarn, Status: models.TransactionCompleted}).Error)
	require.NoError(t, db.Create(&models.Activity{UserID: user.ID, Type: models.ActivityVolunteering, Points: 10}).Error)
	require.NoError(t, db.Create(&models.Notification{UserID: user.ID, Title: "hi", Type: models.NotificationInfo}).Error)

	removed, err := cleanup(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed["transactions"])
	assert.Equal(t, int64(1), removed["activities"])
	assert.Equal(t, int64(1), removed["notifications"])

	var users, rewards int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.Reward{}).Count(&rewards).Error)
	assert.Equal(t, int64(1), users)
	assert.Equal(t, int64(1), rewards)
}
