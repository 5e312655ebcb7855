package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/daycare-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/daycare-scheduler/internal/httperr"
)

const ContextActor = "actor"

// TokenParser turns a bearer token into the actor it names.
type TokenParser interface {
	Parse(token string) (access.Actor, error)
}

func AuthMiddleware(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Abort(c, httperr.Unauthenticated("missing authorization header").
				WithCode("missing_authorization_header"))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			httperr.Abort(c, httperr.Unauthenticated("authorization header must be: Bearer <token>").
				WithCode("invalid_authorization_header"))
			return
		}

		actor, err := tokens.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			httperr.Abort(c, err)
			return
		}

		c.Set(ContextActor, actor)
		c.Next()
	}
}

// CurrentActor returns the actor set by AuthMiddleware.
func CurrentActor(c *gin.Context) (access.Actor, bool) {
	v, ok := c.Get(ContextActor)
	if !ok {
		return access.Actor{}, false
	}
	actor, ok := v.(access.Actor)
	return actor, ok
}
