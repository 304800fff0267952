package services

import "gcore-rewards-backend/internal/utils"

var (
	ErrInvalidAddress      = utils.BadRequest("Invalid wallet address")
	ErrInvalidAmount       = utils.BadRequest("Amount must be a positive integer")
	ErrInvalidActivityType = utils.BadRequest("Invalid activity type")
	ErrDescriptionRequired = utils.BadRequest("Description is required")
	ErrTitleRequired       = utils.BadRequest("Title is required")
	ErrInvalidQuantity     = utils.BadRequest("Quantity must be a positive integer")
	ErrInvalidStatus       = utils.BadRequest("Invalid status")
	ErrInvalidRole         = utils.BadRequest("Invalid role")
	ErrInvalidTransition   = utils.BadRequest("Invalid status transition")

	ErrUserNotFound         = utils.NotFound("User not found")
	ErrRewardNotFound       = utils.NotFound("Reward not found")
	ErrRedemptionNotFound   = utils.NotFound("Redemption not found")
	ErrActivityNotFound     = utils.NotFound("Activity not found")
	ErrEventNotFound        = utils.NotFound("Event not found")
	ErrNotificationNotFound = utils.NotFound("Notification not found")

	ErrRewardInactive          = utils.BadRequest("Reward is not available")
	ErrInsufficientStock       = utils.BadRequest("Insufficient stock")
	ErrActivityAlreadyVerified = utils.BadRequest("Activity already verified")
	ErrEventInactive           = utils.BadRequest("Event is not active")
	ErrEventFull               = utils.BadRequest("Event is full")
	ErrAlreadyJoined           = utils.Conflict("Already joined this event")

	ErrUserNotApproved       = utils.Forbidden("User registration must be approved to join events")
	ErrNotificationForbidden = utils.Forbidden("Not authorized to modify this notification")
	ErrSuperAdminOnly        = utils.Forbidden("Only super admins can change roles")

	ErrOptimisticLock = utils.Conflict("Data has been modified by another request, please refresh and try again")
	ErrChainFailure   = utils.Internal("Blockchain transaction failed")
	ErrLedgerLag      = utils.Internal("Blockchain transaction confirmed but ledger write failed")
)

// LedgerLagError is returned when a chain write succeeded and the ledger
// write that should mirror it did not. The chain side is final, so callers
// must not repeat the operation.
type LedgerLagError struct {
	TxHash string
	Err    error
}

func newLedgerLag(txHash string, cause error) *LedgerLagError {
	return &LedgerLagError{TxHash: txHash, Err: ErrLedgerLag.Wrap(cause)}
}

func (e *LedgerLagError) Error() string {
	return e.Err.Error() + " (tx " + e.TxHash + ")"
}

func (e *LedgerLagError) Unwrap() error { return e.Err }

func (e *LedgerLagError) Committed() bool { return true }
