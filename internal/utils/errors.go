package utils

import (
	"errors"
	"net/http"

	"gcore-rewards-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AppError is an error that knows which HTTP status it maps to.
type AppError struct {
	Status  int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(status int, message string) *AppError {
	return &AppError{Status: status, Message: message}
}

func BadRequest(message string) *AppError   { return NewAppError(http.StatusBadRequest, message) }
func Unauthorized(message string) *AppError { return NewAppError(http.StatusUnauthorized, message) }
func Forbidden(message string) *AppError    { return NewAppError(http.StatusForbidden, message) }
func NotFound(message string) *AppError     { return NewAppError(http.StatusNotFound, message) }
func Conflict(message string) *AppError     { return NewAppError(http.StatusConflict, message) }
func Internal(message string) *AppError     { return NewAppError(http.StatusInternalServerError, message) }

// Wrap returns a copy of e carrying cause. errors.Is(result, e) still holds.
func (e *AppError) Wrap(cause error) error {
	return &wrappedAppError{AppError: AppError{Status: e.Status, Message: e.Message, Err: cause}, sentinel: e}
}

type wrappedAppError struct {
	AppError
	sentinel *AppError
}

func (w *wrappedAppError) Is(target error) bool {
	return target == error(w.sentinel)
}

// ContextCommitted is set on the gin context when a request failed after an
// irreversible chain write.
const ContextCommitted = "chainCommitted"

// IsCommitted reports whether err was raised after a side effect that a retry
// would repeat.
func IsCommitted(err error) bool {
	var c interface{ Committed() bool }
	return errors.As(err, &c) && c.Committed()
}

// StatusFor resolves the HTTP status and client-facing message for err.
func StatusFor(err error) (int, string) {
	var wrapped *wrappedAppError
	if errors.As(err, &wrapped) {
		return wrapped.Status, wrapped.Message
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status, appErr.Message
	}
	return http.StatusInternalServerError, "Internal server error"
}

// Fail writes err as an error envelope. 5xx causes are logged, never echoed.
func Fail(c *gin.Context, err error) {
	status, message := StatusFor(err)
	if IsCommitted(err) {
		c.Set(ContextCommitted, true)
	}
	if status >= http.StatusInternalServerError {
		logger.Log.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err))
	}
	c.JSON(status, NewErrorResponse(message))
}
