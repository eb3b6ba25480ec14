package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/agrigo/pkg/apperr"
	"github.com/you/agrigo/pkg/obs"
)

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
}

func ok(c *gin.Context, status int, msg string, data any) {
	c.JSON(status, envelope{Success: true, Message: msg, Data: data})
}

func okList[T any](c *gin.Context, msg string, items []T) {
	n := len(items)
	c.JSON(http.StatusOK, envelope{Success: true, Message: msg, Data: items, Count: &n})
}

// fail renders err as the error envelope. Unclassified failures are logged
// and answered with a generic message.
func fail(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	e := apperr.As(err)
	if status >= http.StatusInternalServerError || e == nil {
		_ = c.Error(err)
		obs.LoggerFromContext(c.Request.Context()).Error().Err(err).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}
	body := gin.H{"success": false, "message": e.Message}
	if e.Code != "" {
		body["code"] = e.Code
	}
	c.JSON(status, body)
}

// bind decodes the JSON body into v. An empty body leaves v zero.
func bind(c *gin.Context, v any) error {
	if err := c.ShouldBindJSON(v); err != nil && !errors.Is(err, io.EOF) {
		return apperr.Validationf("Invalid request body")
	}
	return nil
}
