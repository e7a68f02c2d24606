package api

import (
	"net/http"
	"strconv"

	"reminder-engine/internal/domain/reminder"
	reqdto "reminder-engine/internal/handler/dto/request"
	resdto "reminder-engine/internal/handler/dto/response"
	"reminder-engine/internal/handler/httperr"
	"reminder-engine/internal/handler/middleware"
	"reminder-engine/internal/usecase/commands"
	"reminder-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReminderHandler struct {
	cmds     commands.ReminderCommands
	planning commands.PlanningCommands
	q        queries.ReminderQueries
}

func NewReminderHandler(cmds commands.ReminderCommands, planning commands.PlanningCommands, q queries.ReminderQueries) *ReminderHandler {
	return &ReminderHandler{cmds: cmds, planning: planning, q: q}
}

// @Summary Create reminder
// @Description Create a manual reminder, scheduled (default now) or as a draft
// @Tags reminders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateReminderRequest true "Create reminder request"
// @Success 201 {object} resdto.ReminderResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reminders [post]
func (h *ReminderHandler) Create(c *gin.Context) {
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingTenant, "Unauthorized", nil)
		return
	}
	var req reqdto.CreateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	r, err := h.cmds.Create(c.Request.Context(), tenantID, req.ToCommand())
	if err != nil {
		abortWithUsecaseError(c, err, "Create reminder failed")
		return
	}
	h.respondReminder(c, http.StatusCreated, r)
}

// @Summary List reminders
// @Description List tenant reminders with their client, newest scheduled first
// @Tags reminders
// @Produce json
// @Security BearerAuth
// @Param status query []string false "Status filter (repeat or comma separated)"
// @Param channel query []string false "Channel filter (repeat or comma separated)"
// @Param from query string false "scheduled_at lower bound, RFC3339"
// @Param to query string false "scheduled_at upper bound (exclusive), RFC3339"
// @Param limit query int false "Max items (default 50, max 200)"
// @Success 200 {object} resdto.ReminderListResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /reminders [get]
func (h *ReminderHandler) List(c *gin.Context) {
	tenantID, filter, ok := h.tenantAndFilter(c)
	if !ok {
		return
	}
	items, err := h.q.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list reminders", nil)
		return
	}
	resp, err := resdto.FromReminderList(items)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render reminders", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Reminder overview
// @Description Count tenant reminders per status
// @Tags reminders
// @Produce json
// @Security BearerAuth
// @Param channel query []string false "Channel filter"
// @Param from query string false "scheduled_at lower bound, RFC3339"
// @Param to query string false "scheduled_at upper bound (exclusive), RFC3339"
// @Success 200 {object} resdto.OverviewResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /reminders/overview [get]
func (h *ReminderHandler) Overview(c *gin.Context) {
	tenantID, filter, ok := h.tenantAndFilter(c)
	if !ok {
		return
	}
	overview, err := h.q.Overview(c.Request.Context(), tenantID, filter)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load overview", nil)
		return
	}
	c.JSON(http.StatusOK, overview)
}

// @Summary Recent dispatch logs
// @Description Latest dispatch audit entries of the tenant
// @Tags reminders
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max items (default 20, max 50)"
// @Success 200 {array} resdto.DispatchLogResponse
// @Failure 401 {object} httperr.Response
// @Router /reminders/logs [get]
func (h *ReminderHandler) RecentLogs(c *gin.Context) {
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingTenant, "Unauthorized", nil)
		return
	}
	limit := 0
	if v := c.Query("limit"); v != "" {
		if iv, e := strconv.Atoi(v); e == nil {
			limit = iv
		}
	}
	logs, err := h.q.RecentLogs(c.Request.Context(), tenantID, limit)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load logs", nil)
		return
	}
	resp, err := resdto.FromDispatchLogs(logs)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render logs", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Generate reminders
// @Description Plan enabled rules for every subscribed client of the tenant
// @Tags planning
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.GenerateRequest false "Generate options"
// @Success 200 {object} resdto.PlanResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /reminders/generate [post]
func (h *ReminderHandler) Generate(c *gin.Context) {
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingTenant, "Unauthorized", nil)
		return
	}
	var req reqdto.GenerateRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
			return
		}
	}
	if c.Query("dry_run") == "true" || c.Query("dry_run") == "1" {
		req.DryRun = true
	}
	res, err := h.planning.GenerateForTenant(c.Request.Context(), tenantID, req.ToOptions())
	if err != nil {
		abortWithUsecaseError(c, err, "Planning failed")
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Plan purchase follow-ups
// @Description Plan enabled rules for one client based on a purchase date
// @Tags planning
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.PlanPurchaseRequest true "Purchase event"
// @Success 200 {object} resdto.PlanResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reminders/plan-purchase [post]
func (h *ReminderHandler) PlanPurchase(c *gin.Context) {
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingTenant, "Unauthorized", nil)
		return
	}
	var req reqdto.PlanPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	res, err := h.planning.PlanPurchase(c.Request.Context(), tenantID, req.ToEvent())
	if err != nil {
		abortWithUsecaseError(c, err, "Planning failed")
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Schedule draft
// @Description Move a draft reminder to scheduled
// @Tags reminders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reminder ID"
// @Param request body reqdto.ScheduleReminderRequest true "Schedule request"
// @Success 200 {object} resdto.ReminderResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reminders/{id}/schedule [post]
func (h *ReminderHandler) Schedule(c *gin.Context) {
	tenantID, id, ok := tenantAndID(c)
	if !ok {
		return
	}
	var req reqdto.ScheduleReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	r, err := h.cmds.Schedule(c.Request.Context(), tenantID, id, req.ScheduledAt)
	if err != nil {
		abortWithUsecaseError(c, err, "Schedule failed")
		return
	}
	h.respondReminder(c, http.StatusOK, r)
}

// @Summary Cancel reminder
// @Description Cancel a draft, scheduled or sending reminder
// @Tags reminders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reminder ID"
// @Success 200 {object} resdto.ReminderResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reminders/{id}/cancel [post]
func (h *ReminderHandler) Cancel(c *gin.Context) {
	tenantID, id, ok := tenantAndID(c)
	if !ok {
		return
	}
	r, err := h.cmds.Cancel(c.Request.Context(), tenantID, id)
	if err != nil {
		abortWithUsecaseError(c, err, "Cancel failed")
		return
	}
	h.respondReminder(c, http.StatusOK, r)
}

// @Summary Send now
// @Description Dispatch a scheduled reminder immediately, still honoring the send window
// @Tags reminders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reminder ID"
// @Success 200 {object} resdto.SendNowResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reminders/{id}/send-now [post]
func (h *ReminderHandler) SendNow(c *gin.Context) {
	tenantID, id, ok := tenantAndID(c)
	if !ok {
		return
	}
	out, err := h.cmds.SendNow(c.Request.Context(), tenantID, id)
	if err != nil {
		abortWithUsecaseError(c, err, "Send failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromItemOutcome(out))
}

func (h *ReminderHandler) tenantAndFilter(c *gin.Context) (uuid.UUID, queries.ReminderFilter, bool) {
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingTenant, "Unauthorized", nil)
		return uuid.Nil, queries.ReminderFilter{}, false
	}
	var q reqdto.ListRemindersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return uuid.Nil, queries.ReminderFilter{}, false
	}
	filter, err := q.ToFilter()
	if err != nil {
		abortWithUsecaseError(c, err, "Invalid query")
		return uuid.Nil, queries.ReminderFilter{}, false
	}
	return tenantID, filter, true
}

func (h *ReminderHandler) respondReminder(c *gin.Context, status int, r *reminder.Reminder) {
	resp, err := resdto.FromReminder(r)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render reminder", nil)
		return
	}
	c.JSON(status, resp)
}

func tenantAndID(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingTenant, "Unauthorized", nil)
		return uuid.Nil, uuid.Nil, false
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return uuid.Nil, uuid.Nil, false
	}
	return tenantID, id, true
}
