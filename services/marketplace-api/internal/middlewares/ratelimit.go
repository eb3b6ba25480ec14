package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/agrigo/pkg/obs"
	"github.com/you/agrigo/pkg/ratelimit"
)

// RateLimit counts requests per client ip. Limiter failures let the request through.
func RateLimit(l ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := l.Allow(c.Request.Context(), c.FullPath()+"|"+c.ClientIP())
		if err != nil {
			obs.LoggerFromContext(c.Request.Context()).Warn().Err(err).Msg("rate limiter unavailable")
			c.Next()
			return
		}
		if !ok {
			deny(c, http.StatusTooManyRequests, "Too many attempts, please try again later")
			return
		}
		c.Next()
	}
}
