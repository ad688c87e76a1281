package ports

import "errors"

// Standard application-level errors.
// Adapters should wrap underlying infrastructure errors with these standard errors.
var (
	// General Errors
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidRequest     = errors.New("invalid request parameters or format")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrConfigurationError = errors.New("invalid or missing configuration")

	// Store Specific Errors
	ErrQueryFailed  = errors.New("store query failed")
	ErrDeleteFailed = errors.New("store delete failed")
	ErrInsertFailed = errors.New("store insert failed")

	// Notification Specific Errors
	ErrNotificationFailed = errors.New("notification delivery failed")
)
