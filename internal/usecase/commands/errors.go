package commands

import (
	"reminder-engine/internal/pkg/errs"
)

var (
	ErrReminderNotFound   = errs.ErrReminderNotFound
	ErrReminderConflict   = errs.ErrReminderConflict
	ErrClientNotFound     = errs.ErrClientNotFound
	ErrClientUnsubscribed = errs.ErrClientUnsubscribed
	ErrNoEnabledRules     = errs.ErrNoEnabledRules
	ErrClaimFailed        = errs.ErrClaimFailed
	ErrInvalidInput       = errs.ErrDomainValidation
)
