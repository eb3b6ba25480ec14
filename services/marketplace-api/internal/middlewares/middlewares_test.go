package middlewares

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/you/agrigo/pkg/apperr"
	"github.com/you/agrigo/services/marketplace-api/internal/domain"
	"github.com/you/agrigo/services/marketplace-api/internal/policy"
)

func init() { gin.SetMode(gin.TestMode) }

type stubAuth struct {
	actor policy.Actor
	err   error
}

func (s stubAuth) Authenticate(context.Context, string) (policy.Actor, error) { return s.actor, s.err }

type brokenLimiter struct{}

func (brokenLimiter) Allow(context.Context, string) (bool, error) { return false, errors.New("redis down") }

func serve(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuthSetsActor(t *testing.T) {
	r := gin.New()
	a := stubAuth{actor: policy.Actor{ID: "u1", Role: domain.RoleProvider}}
	r.GET("/x", JWTAuth(a), RequireRole(domain.RoleProvider), func(c *gin.Context) {
		c.String(http.StatusOK, ActorFrom(c).ID)
	})

	rec := serve(r, "Bearer tok")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", rec.Body.String())

	assert.Equal(t, http.StatusUnauthorized, serve(r, "Basic abc").Code)
}

func TestJWTAuthStoreFailure(t *testing.T) {
	r := gin.New()
	r.GET("/x", JWTAuth(stubAuth{err: apperr.Store("get user", errors.New("conn refused"))}), func(c *gin.Context) {})
	assert.Equal(t, http.StatusInternalServerError, serve(r, "Bearer tok").Code)
}

func TestRequireRoleForbidden(t *testing.T) {
	r := gin.New()
	a := stubAuth{actor: policy.Actor{ID: "u1", Role: domain.RoleFarmer}}
	r.GET("/x", JWTAuth(a), RequireRole(domain.RoleProvider), func(c *gin.Context) {})
	rec := serve(r, "Bearer tok")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "This action requires a resource provider account")
}

func TestRequireRoleAnonymous(t *testing.T) {
	r := gin.New()
	r.GET("/x", RequireRole(domain.RoleFarmer), func(c *gin.Context) {})
	assert.Equal(t, http.StatusUnauthorized, serve(r, "").Code)
}

func TestRateLimitFailsOpen(t *testing.T) {
	r := gin.New()
	r.GET("/x", RateLimit(brokenLimiter{}), func(c *gin.Context) { c.Status(http.StatusOK) })
	assert.Equal(t, http.StatusOK, serve(r, "").Code)
}
