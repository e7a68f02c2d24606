package errs

import "errors"

// Domain-specific sentinel errors shared by the usecase layers
var (
	// Reminder errors
	ErrReminderNotFound = errors.New("reminder not found")
	ErrReminderConflict = errors.New("reminder state conflict")

	// Client errors
	ErrClientNotFound     = errors.New("client not found")
	ErrClientUnsubscribed = errors.New("client unsubscribed")

	// Planning errors
	ErrNoEnabledRules = errors.New("no enabled rules")

	// Dispatch errors
	ErrClaimFailed = errors.New("dispatch claim failed")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
