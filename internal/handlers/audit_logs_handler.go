package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/daycare-scheduler/internal/httperr"
	"github.com/BruksfildServices01/daycare-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/daycare-scheduler/internal/usecase/auditlog"
)

type AuditLogsHandler struct {
	list *auditlog.ListAuditLogs
}

func NewAuditLogsHandler(list *auditlog.ListAuditLogs) *AuditLogsHandler {
	return &AuditLogsHandler{list: list}
}

// List filters by action, entity and a [from, to] day range given as
// YYYY-MM-DD; to is inclusive.
func (h *AuditLogsHandler) List(c *gin.Context) {
	in := auditlog.ListInput{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
	}
	in.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	in.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(auditlog.DefaultLimit)))

	if s := c.Query("from"); s != "" {
		from, err := time.Parse(time.DateOnly, s)
		if err != nil {
			httperr.Respond(c, httperr.Validation("from must be YYYY-MM-DD").WithCode("invalid_date"))
			return
		}
		in.From = &from
	}
	if s := c.Query("to"); s != "" {
		to, err := time.Parse(time.DateOnly, s)
		if err != nil {
			httperr.Respond(c, httperr.Validation("to must be YYYY-MM-DD").WithCode("invalid_date"))
			return
		}
		to = to.Add(24 * time.Hour)
		in.To = &to
	}

	out, err := h.list.Execute(c.Request.Context(), actorFrom(c), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Page(c, out.Logs, out.Page, out.Limit, out.Total)
}
