package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/daycare-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/daycare-scheduler/internal/httperr"
	"github.com/BruksfildServices01/daycare-scheduler/internal/middleware"
)

// actorFrom never fails: an anonymous actor is rejected by the use case.
func actorFrom(c *gin.Context) access.Actor {
	actor, _ := middleware.CurrentActor(c)
	return actor
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.Respond(c, httperr.Validation(name+" must be a positive integer").WithCode("invalid_id"))
		return 0, false
	}
	return uint(id), true
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httperr.Respond(c, httperr.FromBinding(err))
		return false
	}
	return true
}
