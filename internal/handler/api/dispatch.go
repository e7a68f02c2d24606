package api

import (
	"net/http"
	"strconv"

	"reminder-engine/internal/handler/httperr"
	"reminder-engine/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type DispatchHandler struct {
	cmds commands.DispatchCommands
}

func NewDispatchHandler(cmds commands.DispatchCommands) *DispatchHandler {
	return &DispatchHandler{cmds: cmds}
}

// @Summary Run dispatch cycle
// @Description Claim due reminders and send them. Called by the external scheduler.
// @Tags cron
// @Produce json
// @Param Authorization header string false "Bearer <CRON_SECRET>"
// @Param X-Cron-Secret header string false "Cron secret"
// @Param secret query string false "Cron secret"
// @Param batch query int false "Batch size (capped)"
// @Success 200 {object} resdto.CycleResponse
// @Failure 401 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /api/cron/dispatch [post]
func (h *DispatchHandler) Run(c *gin.Context) {
	batch := 0
	if v := c.Query("batch"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			httperr.AbortWithError(c, http.StatusBadRequest, errInvalidBatch, "Invalid batch", nil)
			return
		}
		batch = n
	}

	res, err := h.cmds.RunCycle(c.Request.Context(), batch)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "dispatch failed", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}
