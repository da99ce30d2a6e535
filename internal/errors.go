package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidDate      ErrorCode = "INVALID_DATE"
	ErrCodeEmptyComment     ErrorCode = "EMPTY_COMMENT"

	ErrCodeUserNotFound   ErrorCode = "USER_NOT_FOUND"
	ErrCodeDuplicateEmail ErrorCode = "DUPLICATE_EMAIL"
	ErrCodeUserReferenced ErrorCode = "USER_REFERENCED"
	ErrCodeInvalidRole    ErrorCode = "INVALID_ROLE"

	ErrCodeIssueNotFound    ErrorCode = "ISSUE_NOT_FOUND"
	ErrCodeInvalidStatus    ErrorCode = "INVALID_STATUS"
	ErrCodeStatusConflict   ErrorCode = "STATUS_CHANGE_CONFLICT"
	ErrCodeStatusNotFound   ErrorCode = "STATUS_NOT_FOUND"
	ErrCodeStatusInUse      ErrorCode = "STATUS_IN_USE"
	ErrCodeDuplicateStatus  ErrorCode = "DUPLICATE_STATUS_NAME"
	ErrCodeCommentNotFound  ErrorCode = "COMMENT_NOT_FOUND"
	ErrCodeReactionNotFound ErrorCode = "REACTION_NOT_FOUND"
	ErrCodeInvalidReaction  ErrorCode = "INVALID_REACTION_TYPE"

	ErrCodeRosterNotFound ErrorCode = "ROSTER_ENTRY_NOT_FOUND"
	ErrCodeRosterConflict ErrorCode = "DUPLICATE_ROSTER_ENTRY"

	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

var (
	ErrUserNotFound    = NewNotFoundError("User not found", ErrCodeUserNotFound)
	ErrDuplicateEmail  = NewConflictError("Email already exists", ErrCodeDuplicateEmail)
	ErrUserReferenced  = NewConflictError("User is referenced by existing content", ErrCodeUserReferenced)
	ErrIssueNotFound   = NewNotFoundError("Issue not found", ErrCodeIssueNotFound)
	ErrStatusNotFound  = NewNotFoundError("Status not found", ErrCodeStatusNotFound)
	ErrInvalidStatus   = NewValidationError("Status does not exist", ErrCodeInvalidStatus)
	// ErrStatusChangeConflict means a guarded transition matched zero rows
	// because another writer moved the issue first.
	ErrStatusChangeConflict = NewConflictError("Issue status changed concurrently", ErrCodeStatusConflict)
	ErrStatusInUse     = NewConflictError("Status is referenced by existing issues", ErrCodeStatusInUse)
	ErrDuplicateStatus = NewConflictError("Status name already exists", ErrCodeDuplicateStatus)

	ErrCommentNotFound  = NewNotFoundError("Comment not found", ErrCodeCommentNotFound)
	ErrReactionNotFound = NewNotFoundError("Reaction not found", ErrCodeReactionNotFound)
	ErrEmptyComment     = NewValidationError("Comment requires text or at least one attachment", ErrCodeEmptyComment)

	ErrRosterNotFound = NewNotFoundError("Roster entry not found", ErrCodeRosterNotFound)
	ErrRosterConflict = NewConflictError("Roster entry already exists for this user and date", ErrCodeRosterConflict)

	ErrInvalidCredentials = NewUnauthorizedError("Invalid email or password", ErrCodeInvalidCredentials)
	ErrInvalidToken       = NewUnauthorizedError("Invalid token", ErrCodeInvalidToken)
	ErrTokenExpired       = NewUnauthorizedError("Token has expired", ErrCodeTokenExpired)
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
