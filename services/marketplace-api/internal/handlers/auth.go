package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/agrigo/services/marketplace-api/internal/middlewares"
	"github.com/you/agrigo/services/marketplace-api/internal/service"
)

type AuthHandler struct {
	svc *service.AuthSvc
}

func NewAuthHandler(svc *service.AuthSvc) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var in service.RegisterInput
	if err := bind(c, &in); err != nil {
		fail(c, err)
		return
	}
	u, err := h.svc.Register(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, "User registered successfully", u)
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var in service.LoginInput
	if err := bind(c, &in); err != nil {
		fail(c, err)
		return
	}
	sess, err := h.svc.Login(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Login successful", sess)
}

// POST /auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var in struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := bind(c, &in); err != nil {
		fail(c, err)
		return
	}
	sess, err := h.svc.Refresh(c.Request.Context(), in.RefreshToken)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Token refreshed successfully", sess)
}

// GET /auth/profile
func (h *AuthHandler) Profile(c *gin.Context) {
	u, err := h.svc.Profile(c.Request.Context(), middlewares.ActorFrom(c).ID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Profile retrieved successfully", u)
}

// PUT /auth/profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var in service.ProfilePatch
	if err := bind(c, &in); err != nil {
		fail(c, err)
		return
	}
	u, err := h.svc.UpdateProfile(c.Request.Context(), middlewares.ActorFrom(c).ID, in)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Profile updated successfully", u)
}
