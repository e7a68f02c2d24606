package api

import (
	"html/template"
	"net/http"

	"reminder-engine/internal/pkg/errs"
	"reminder-engine/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var unsubscribePage = template.Must(template.New("unsub").Parse(`<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body style="font-family:sans-serif;max-width:32rem;margin:4rem auto;text-align:center">
<h1>{{.Title}}</h1>
<p>{{.Body}}</p>
{{if .Action}}<form method="post" action="{{.Action}}">
<button type="submit" style="padding:.6rem 1.4rem;font-size:1rem">Unsubscribe</button>
</form>
{{end}}</body>
</html>`))

type unsubscribeView struct {
	Title  string
	Body   string
	Action string
}

type UnsubscribeHandler struct {
	cmds commands.ClientCommands
}

func NewUnsubscribeHandler(cmds commands.ClientCommands) *UnsubscribeHandler {
	return &UnsubscribeHandler{cmds: cmds}
}

// @Summary Unsubscribe confirmation
// @Description Renders the opt-out page for an email link. Changes nothing; the form posts back to confirm.
// @Tags clients
// @Produce html
// @Param clientId path string true "Client ID"
// @Success 200 {string} string "confirmation form"
// @Failure 400 {string} string "invalid link"
// @Router /unsub/{clientId} [get]
func (h *UnsubscribeHandler) Confirm(c *gin.Context) {
	id, err := uuid.Parse(c.Param("clientId"))
	if err != nil {
		h.render(c, http.StatusBadRequest, unsubscribeView{Title: "Invalid link", Body: "This unsubscribe link is not valid."})
		return
	}
	h.render(c, http.StatusOK, unsubscribeView{
		Title:  "Unsubscribe from reminders?",
		Body:   "Confirm below and we will stop sending you reminders.",
		Action: "/unsub/" + id.String(),
	})
}

// @Summary Unsubscribe
// @Description Opt a client out of all reminders. Renders an HTML confirmation.
// @Tags clients
// @Produce html
// @Param clientId path string true "Client ID"
// @Success 200 {string} string "confirmation page"
// @Failure 400 {string} string "invalid link"
// @Failure 404 {string} string "unknown client"
// @Router /unsub/{clientId} [post]
func (h *UnsubscribeHandler) Unsubscribe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("clientId"))
	if err != nil {
		h.render(c, http.StatusBadRequest, unsubscribeView{Title: "Invalid link", Body: "This unsubscribe link is not valid."})
		return
	}

	cl, err := h.cmds.Unsubscribe(c.Request.Context(), id)
	switch {
	case errs.Is(err, commands.ErrClientNotFound):
		h.render(c, http.StatusNotFound, unsubscribeView{Title: "Link expired", Body: "We could not find this subscription."})
		return
	case err != nil:
		_ = c.Error(err)
		h.render(c, http.StatusInternalServerError, unsubscribeView{Title: "Something went wrong", Body: "Please try again later."})
		return
	}

	body := "You will no longer receive reminders from us."
	if name := cl.DisplayName(); name != "" {
		body = name + ", you will no longer receive reminders from us."
	}
	h.render(c, http.StatusOK, unsubscribeView{Title: "You are unsubscribed", Body: body})
}

func (h *UnsubscribeHandler) render(c *gin.Context, status int, v unsubscribeView) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := unsubscribePage.Execute(c.Writer, v); err != nil {
		_ = c.Error(err)
	}
}
