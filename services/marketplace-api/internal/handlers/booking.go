package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/agrigo/services/marketplace-api/internal/middlewares"
	"github.com/you/agrigo/services/marketplace-api/internal/service"
)

type BookingHandler struct {
	svc *service.BookingSvc
}

func NewBookingHandler(svc *service.BookingSvc) *BookingHandler {
	return &BookingHandler{svc: svc}
}

// POST /bookings (farmer)
func (h *BookingHandler) Create(c *gin.Context) {
	var in service.CreateBookingInput
	if err := bind(c, &in); err != nil {
		fail(c, err)
		return
	}
	b, err := h.svc.Create(c.Request.Context(), middlewares.ActorFrom(c), in)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, "Booking created successfully", b)
}

// GET /bookings: the farmer's own bookings, or those on a provider's listings.
func (h *BookingHandler) List(c *gin.Context) {
	items, err := h.svc.ListMine(c.Request.Context(), middlewares.ActorFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	okList(c, "Bookings retrieved successfully", items)
}

// GET /bookings/:id
func (h *BookingHandler) Get(c *gin.Context) {
	b, err := h.svc.Get(c.Request.Context(), c.Param("id"), middlewares.ActorFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Booking retrieved successfully", b)
}

// PUT /bookings/:id/status
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	var in struct {
		Status string `json:"status"`
	}
	if err := bind(c, &in); err != nil {
		fail(c, err)
		return
	}
	b, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), middlewares.ActorFrom(c), in.Status)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Booking status updated successfully", b)
}

// PUT /bookings/:id/cancel (owning farmer)
func (h *BookingHandler) Cancel(c *gin.Context) {
	b, err := h.svc.Cancel(c.Request.Context(), c.Param("id"), middlewares.ActorFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Booking cancelled successfully", b)
}
