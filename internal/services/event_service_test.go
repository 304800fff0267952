package services

import (
	"context"
	"testing"
	"time"

	"gcore-rewards-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newEventService(env *testEnv) *EventService {
	return NewEventService(env.db, env.distribution, zap.NewNop())
}

func TestEventJoinRules(t *testing.T) {
	env := newTestEnv(t)
	events := newEventService(env)
	ctx := context.Background()

	admin := env.createUser(t, walletC, func(u *models.User) { u.Role = models.RoleAdmin })
	approved := env.createUser(t, walletA)
	pending := env.createUser(t, walletB, func(u *models.User) { u.Status = models.UserStatusPending })

	event, err := events.Create(ctx, EventInput{Title: "Hack Night", Date: time.Now(), Points: 20, TotalSlots: 1})
	require.NoError(t, err)
	assert.Equal(t, models.ActivityEventAttendance, event.ActivityType)
	assert.True(t, event.IsActive)

	_, err = events.Join(ctx, pending.ID, event.ID)
	assert.ErrorIs(t, err, ErrUserNotApproved)

	_, err = events.Join(ctx, approved.ID, "missing")
	assert.ErrorIs(t, err, ErrEventNotFound)

	p, err := events.Join(ctx, approved.ID, event.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ParticipationPending, p.Status)

	_, err = events.Join(ctx, approved.ID, event.ID)
	assert.ErrorIs(t, err, ErrEventFull)

	assert.Equal(t, int64(1), env.count(t, &models.Notification{}, "user_id = ?", approved.ID))
	assert.Equal(t, int64(1), env.count(t, &models.Notification{}, "user_id = ?", admin.ID))
}

func TestEventJoinTwiceConflicts(t *testing.T) {
	env := newTestEnv(t)
	events := newEventService(env)
	ctx := context.Background()
	user := env.createUser(t, walletA)

	event, err := events.Create(ctx, EventInput{Title: "Workshop", Points: 5})
	require.NoError(t, err)

	_, err = events.Join(ctx, user.ID, event.ID)
	require.NoError(t, err)
	_, err = events.Join(ctx, user.ID, event.ID)
	assert.ErrorIs(t, err, ErrAlreadyJoined)
	assert.Equal(t, int64(1), env.count(t, &models.EventParticipation{}, "event_id = ?", event.ID))
}

func TestEventJoinInactive(t *testing.T) {
	env := newTestEnv(t)
	events := newEventService(env)
	ctx := context.Background()
	user := env.createUser(t, walletA)

	event, err := events.Create(ctx, EventInput{Title: "Closed"})
	require.NoError(t, err)
	require.NoError(t, env.db.Model(event).Update("is_active", false).Error)

	_, err = events.Join(ctx, user.ID, event.ID)
	assert.ErrorIs(t, err, ErrEventInactive)
}

func TestEventCreateValidation(t *testing.T) {
	env := newTestEnv(t)
	events := newEventService(env)

	_, err := events.Create(context.Background(), EventInput{Title: "  "})
	assert.ErrorIs(t, err, ErrTitleRequired)

	_, err = events.Create(context.Background(), EventInput{Title: "x", ActivityType: "PARTY"})
	assert.ErrorIs(t, err, ErrInvalidActivityType)
}

func TestEventListShowsUserStatus(t *testing.T) {
	env := newTestEnv(t)
	events := newEventService(env)
	ctx := context.Background()
	user := env.createUser(t, walletA)

	joined, err := events.Create(ctx, EventInput{Title: "Joined", Date: time.Now()})
	require.NoError(t, err)
	_, err = events.Create(ctx, EventInput{Title: "Other", Date: time.Now().Add(-time.Hour)})
	require.NoError(t, err)
	_, err = events.Join(ctx, user.ID, joined.ID)
	require.NoError(t, err)

	views, err := events.List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "Joined", views[0].Title)
	assert.Equal(t, models.ParticipationPending, views[0].UserStatus)
	assert.Equal(t, int64(1), views[0].ParticipantCount)
	assert.Equal(t, models.ParticipationNone, views[1].UserStatus)
}

func TestApproveParticipantsCreditsOnce(t *testing.T) {
	env := newTestEnv(t)
	events := newEventService(env)
	ctx := context.Background()
	u1 := env.createUser(t, walletA)
	u2 := env.createUser(t, walletB)

	event, err := events.Create(ctx, EventInput{Title: "Seminar", Points: 15, ActivityType: models.ActivityWorkshopCompletion})
	require.NoError(t, err)
	_, err = events.Join(ctx, u1.ID, event.ID)
	require.NoError(t, err)
	_, err = events.Join(ctx, u2.ID, event.ID)
	require.NoError(t, err)

	env.gateway.FailMintFor[walletB] = true

	res, err := events.ApproveParticipants(ctx, event.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, res.SuccessCount)
	assert.Equal(t, 1, res.FailureCount)
	assert.Equal(t, 1, env.gateway.MintCount())

	var failed models.EventParticipation
	require.NoError(t, env.db.First(&failed, "user_id = ?", u2.ID).Error)
	assert.Equal(t, models.ParticipationPending, failed.Status)
	assert.Nil(t, failed.DistributedAt)

	var credited models.EventParticipation
	require.NoError(t, env.db.First(&credited, "user_id = ?", u1.ID).Error)
	assert.Equal(t, models.ParticipationApproved, credited.Status)
	require.NotNil(t, credited.DistributedAt)
	assert.NotEmpty(t, credited.TxHash)

	// Retrying skips the credited row and picks up the failed one.
	env.gateway.FailMintFor[walletB] = false
	res, err = events.ApproveParticipants(ctx, event.ID, []string{credited.ID, failed.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, res.SuccessCount)
	assert.Equal(t, 1, res.SkippedCount)
	assert.Equal(t, 2, env.gateway.MintCount())
	assert.Equal(t, int64(2), env.count(t, &models.Transaction{}, "type = ?", models.TransactionEarn))

	var activity models.Activity
	require.NoError(t, env.db.First(&activity, "user_id = ?", u1.ID).Error)
	assert.Equal(t, models.ActivityWorkshopCompletion, activity.Type)
	assert.Equal(t, int64(15), activity.Points)
}

func TestApproveParticipantsNeverPaysTwiceAfterLedgerFailure(t *testing.T) {
	env := newTestEnv(t)
	events := newEventService(env)
	ctx := context.Background()
	user := env.createUser(t, walletA)

	event, err := events.Create(ctx, EventInput{Title: "Hackathon", Points: 15})
	require.NoError(t, err)
	_, err = events.Join(ctx, user.ID, event.ID)
	require.NoError(t, err)

	restore := failCreates(t, env.db, "transactions")
	res, err := events.ApproveParticipants(ctx, event.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, res.FailureCount)
	assert.Equal(t, 1, env.gateway.MintCount())
	require.Len(t, res.Results, 1)
	assert.NotEmpty(t, res.Results[0].TxHash)

	var p models.EventParticipation
	require.NoError(t, env.db.First(&p, "user_id = ?", user.ID).Error)
	assert.Equal(t, models.ParticipationApproved, p.Status)
	require.NotNil(t, p.DistributedAt)
	assert.Equal(t, res.Results[0].TxHash, p.TxHash)

	restore()
	res, err = events.ApproveParticipants(ctx, event.ID, []string{p.ID})
	require.NoError(t, err)
	assert.Equal(t, 0, res.SuccessCount)
	assert.Equal(t, 1, res.SkippedCount)
	assert.Equal(t, 1, env.gateway.MintCount())
}

func TestApproveParticipantsZeroPoints(t *testing.T) {
	env := newTestEnv(t)
	events := newEventService(env)
	ctx := context.Background()
	user := env.createUser(t, walletA)

	event, err := events.Create(ctx, EventInput{Title: "Meetup"})
	require.NoError(t, err)
	_, err = events.Join(ctx, user.ID, event.ID)
	require.NoError(t, err)

	res, err := events.ApproveParticipants(ctx, event.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, res.SuccessCount)
	assert.Equal(t, 0, env.gateway.MintCount())

	_, err = events.ApproveParticipants(ctx, "missing", nil)
	assert.ErrorIs(t, err, ErrEventNotFound)
}
