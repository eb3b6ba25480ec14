package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/you/agrigo/pkg/apperr"
	"github.com/you/agrigo/services/marketplace-api/internal/domain"
	"github.com/you/agrigo/services/marketplace-api/internal/policy"
)

const actorKey = "actor"

// Authenticator resolves a bearer token; *service.AuthSvc satisfies it.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (policy.Actor, error)
}

func deny(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": msg})
}

func JWTAuth(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			deny(c, http.StatusUnauthorized, "Missing or invalid authorization header")
			return
		}
		actor, err := a.Authenticate(c.Request.Context(), strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			status, msg := http.StatusUnauthorized, "Invalid token"
			if e := apperr.As(err); e != nil && e.Kind != apperr.Unauthorized {
				status, msg = apperr.HTTPStatus(err), e.Message
			}
			deny(c, status, msg)
			return
		}
		c.Set(actorKey, actor)
		c.Next()
	}
}

// ActorFrom returns the authenticated caller, or the anonymous actor.
func ActorFrom(c *gin.Context) policy.Actor {
	v, _ := c.Get(actorKey)
	a, _ := v.(policy.Actor)
	return a
}

func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := policy.RequireRole(ActorFrom(c), roles...); err != nil {
			deny(c, apperr.HTTPStatus(err), apperr.As(err).Message)
			return
		}
		c.Next()
	}
}
