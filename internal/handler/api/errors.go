package api

import (
	"net/http"

	"reminder-engine/internal/domain/reminder"
	"reminder-engine/internal/handler/httperr"
	"reminder-engine/internal/pkg/errs"
	"reminder-engine/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

var (
	errMissingTenant = errs.New("tenant missing from context")
	errInvalidBatch  = errs.New("batch must be a non-negative integer")
)

// abortWithUsecaseError maps usecase sentinels to HTTP statuses.
func abortWithUsecaseError(c *gin.Context, err error, fallback string) {
	switch {
	case errs.Is(err, commands.ErrReminderNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Reminder not found", nil)
	case errs.Is(err, commands.ErrClientNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Client not found", nil)
	case errs.Is(err, commands.ErrReminderConflict), errs.Is(err, reminder.ErrInvalidTransition):
		httperr.AbortWithError(c, http.StatusConflict, err, "Reminder state does not allow this action", nil)
	case errs.Is(err, commands.ErrClientUnsubscribed):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Client is unsubscribed", nil)
	case errs.Is(err, commands.ErrNoEnabledRules):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "No enabled rules", nil)
	case errs.Is(err, commands.ErrInvalidInput):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", err.Error())
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, fallback, nil)
	}
}
