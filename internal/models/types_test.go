package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedemptionStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to RedemptionStatus
		allowed  bool
	}{
		{RedemptionPending, RedemptionApproved, true},
		{RedemptionPending, RedemptionDelivered, true},
		{RedemptionApproved, RedemptionFulfilled, true},
		{RedemptionFulfilled, RedemptionCancelled, true},
		{RedemptionPending, RedemptionCancelled, true},
		{RedemptionApproved, RedemptionPending, false},
		{RedemptionPending, RedemptionPending, false},
		{RedemptionDelivered, RedemptionCancelled, false},
		{RedemptionCancelled, RedemptionPending, false},
		{RedemptionPending, RedemptionStatus("SHIPPED"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestActivityTypeValid(t *testing.T) {
	assert.True(t, ActivityVolunteering.Valid())
	assert.False(t, ActivityType("SLEEPING").Valid())
	assert.False(t, ActivityType("").Valid())
}

func TestRoleIsAdmin(t *testing.T) {
	assert.True(t, RoleAdmin.IsAdmin())
	assert.True(t, RoleSuperAdmin.IsAdmin())
	assert.False(t, RoleUser.IsAdmin())
}
