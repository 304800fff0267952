package models

type Role string

const (
	RoleUser       Role = "USER"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

type UserStatus string

const (
	UserStatusPending  UserStatus = "PENDING"
	UserStatusApproved UserStatus = "APPROVED"
	UserStatusRejected UserStatus = "REJECTED"
)

type ActivityType string

const (
	ActivityContestParticipation ActivityType = "CONTEST_PARTICIPATION"
	ActivityEventAttendance      ActivityType = "EVENT_ATTENDANCE"
	ActivityWorkshopCompletion   ActivityType = "WORKSHOP_COMPLETION"
	ActivityContentCreation      ActivityType = "CONTENT_CREATION"
	ActivityVolunteering         ActivityType = "VOLUNTEERING"
)

var ActivityTypes = []ActivityType{
	ActivityContestParticipation,
	ActivityEventAttendance,
	ActivityWorkshopCompletion,
	ActivityContentCreation,
	ActivityVolunteering,
}

func (t ActivityType) Valid() bool {
	for _, known := range ActivityTypes {
		if t == known {
			return true
		}
	}
	return false
}

type TransactionType string

const (
	TransactionEarn     TransactionType = "EARN"
	TransactionRedeem   TransactionType = "REDEEM"
	TransactionTransfer TransactionType = "TRANSFER"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TransactionEarn, TransactionRedeem, TransactionTransfer:
		return true
	}
	return false
}

type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "PENDING"
	TransactionCompleted TransactionStatus = "COMPLETED"
	TransactionFailed    TransactionStatus = "FAILED"
)

func (s TransactionStatus) Valid() bool {
	switch s {
	case TransactionPending, TransactionCompleted, TransactionFailed:
		return true
	}
	return false
}

type RedemptionStatus string

const (
	RedemptionPending   RedemptionStatus = "PENDING"
	RedemptionApproved  RedemptionStatus = "APPROVED"
	RedemptionFulfilled RedemptionStatus = "FULFILLED"
	RedemptionDelivered RedemptionStatus = "DELIVERED"
	RedemptionCancelled RedemptionStatus = "CANCELLED"
)

// redemptionOrder ranks the forward path; CANCELLED sits outside it.
var redemptionOrder = map[RedemptionStatus]int{
	RedemptionPending:   0,
	RedemptionApproved:  1,
	RedemptionFulfilled: 2,
	RedemptionDelivered: 3,
}

func (s RedemptionStatus) Valid() bool {
	_, ok := redemptionOrder[s]
	return ok || s == RedemptionCancelled
}

func (s RedemptionStatus) Terminal() bool {
	return s == RedemptionDelivered || s == RedemptionCancelled
}

// CanTransitionTo reports whether an admin may move a redemption from s to next.
// Steps along the forward path may be skipped; CANCELLED is reachable from any
// non-terminal state.
func (s RedemptionStatus) CanTransitionTo(next RedemptionStatus) bool {
	if s.Terminal() || !next.Valid() || s == next {
		return false
	}
	if next == RedemptionCancelled {
		return true
	}
	return redemptionOrder[next] > redemptionOrder[s]
}

type ParticipationStatus string

const (
	ParticipationNone     ParticipationStatus = "NONE"
	ParticipationPending  ParticipationStatus = "PENDING"
	ParticipationApproved ParticipationStatus = "APPROVED"
)

type NotificationType string

const (
	NotificationInfo    NotificationType = "INFO"
	NotificationSuccess NotificationType = "SUCCESS"
	NotificationWarning NotificationType = "WARNING"
	NotificationError   NotificationType = "ERROR"
)
