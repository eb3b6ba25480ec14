package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/agrigo/services/marketplace-api/internal/domain"
	"github.com/you/agrigo/services/marketplace-api/internal/middlewares"
	"github.com/you/agrigo/services/marketplace-api/internal/repository"
	"github.com/you/agrigo/services/marketplace-api/internal/service"
)

type ResourceHandler struct {
	svc *service.ResourceSvc
}

func NewResourceHandler(svc *service.ResourceSvc) *ResourceHandler {
	return &ResourceHandler{svc: svc}
}

// POST /resources (resource_provider)
func (h *ResourceHandler) Create(c *gin.Context) {
	var in service.CreateResourceInput
	if err := bind(c, &in); err != nil {
		fail(c, err)
		return
	}
	res, err := h.svc.Create(c.Request.Context(), middlewares.ActorFrom(c), in)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, "Resource created successfully", res)
}

// GET /resources?location=&type=&provider_id=&availability=
func (h *ResourceHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), repository.ResourceFilter{
		Location:     c.Query("location"),
		Type:         c.Query("type"),
		ProviderID:   c.Query("provider_id"),
		Availability: domain.Availability(c.Query("availability")),
	})
	if err != nil {
		fail(c, err)
		return
	}
	okList(c, "Resources retrieved successfully", items)
}

// GET /resources/:id
func (h *ResourceHandler) Get(c *gin.Context) {
	res, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Resource retrieved successfully", res)
}

// PUT /resources/:id (owning provider)
func (h *ResourceHandler) Update(c *gin.Context) {
	var in service.ResourcePatch
	if err := bind(c, &in); err != nil {
		fail(c, err)
		return
	}
	res, err := h.svc.Update(c.Request.Context(), c.Param("id"), middlewares.ActorFrom(c), in)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Resource updated successfully", res)
}

// DELETE /resources/:id (owning provider)
func (h *ResourceHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.Delete(c.Request.Context(), id, middlewares.ActorFrom(c)); err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Resource deleted successfully", gin.H{"id": id})
}
