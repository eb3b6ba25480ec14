package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/you/agrigo/services/marketplace-api/internal/service"
)

type RecommendHandler struct {
	svc *service.RecommendSvc
}

func NewRecommendHandler(svc *service.RecommendSvc) *RecommendHandler {
	return &RecommendHandler{svc: svc}
}

// GET /ml/recommendations?user=
func (h *RecommendHandler) List(c *gin.Context) {
	okList(c, "Recommendations retrieved successfully", h.svc.For(c.Request.Context(), c.Query("user")))
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "AgriGo 2.0 Backend is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

var endpoints = gin.H{
	"auth": gin.H{
		"register":      "POST /auth/register",
		"login":         "POST /auth/login",
		"refresh":       "POST /auth/refresh",
		"profile":       "GET /auth/profile",
		"updateProfile": "PUT /auth/profile",
	},
	"resources": gin.H{
		"create":  "POST /resources (Resource Provider only)",
		"getAll":  "GET /resources",
		"getById": "GET /resources/:id",
		"update":  "PUT /resources/:id (Resource Provider only)",
		"delete":  "DELETE /resources/:id (Resource Provider only)",
	},
	"bookings": gin.H{
		"create":        "POST /bookings (Farmer only)",
		"getMyBookings": "GET /bookings",
		"getById":       "GET /bookings/:id",
		"updateStatus":  "PUT /bookings/:id/status",
		"cancel":        "PUT /bookings/:id/cancel (Farmer only)",
	},
	"chats": gin.H{
		"sendMessage": "POST /chats",
		"getMessages": "GET /chats/:booking_id",
		"markAsRead":  "PUT /chats/:booking_id/read",
	},
	"ml": gin.H{
		"recommendations": "GET /ml/recommendations?user=:id",
	},
}

// Docs lists the routes; baseURL is echoed as given.
func Docs(baseURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"message":   "AgriGo 2.0 Backend API",
			"version":   "1.0.0",
			"baseUrl":   baseURL,
			"endpoints": endpoints,
		})
	}
}

func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"success": false,
		"message": "Route not found",
		"path":    c.Request.URL.Path,
		"method":  c.Request.Method,
	})
}
