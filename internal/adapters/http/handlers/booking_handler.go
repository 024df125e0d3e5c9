package handlers

import (
	"context"

	"turfbook/internal/adapters/http/middleware"
	"turfbook/internal/adapters/persistence/models"
	"turfbook/internal/core/services"
	"turfbook/internal/pkg/pagination"
	"turfbook/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BookingManager lists and cancels bookings
type BookingManager interface {
	ListForUser(ctx context.Context, userID string, offset, limit int) ([]*models.Booking, int64, error)
	List(ctx context.Context, status string, offset, limit int) ([]*models.Booking, int64, error)
	Cancel(ctx context.Context, principal *services.Principal, bookingID string) (*models.Booking, error)
}

// BookingHandler handles booking endpoints
type BookingHandler struct {
	bookingService BookingManager
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService BookingManager) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// Mine lists the authenticated user's bookings
// @Summary My bookings
// @Tags Bookings
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /bookings/mine [get]
func (h *BookingHandler) Mine(c *fiber.Ctx) error {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)
	bookings, total, err := h.bookingService.ListForUser(c.UserContext(), principal.ID(), params.Offset, params.Limit)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "Bookings retrieved successfully", pagination.NewResponse(bookings, params, total))
}

// List lists all bookings for admins
// @Summary All bookings
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending, confirmed, completed or cancelled"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /admin/bookings [get]
func (h *BookingHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	bookings, total, err := h.bookingService.List(c.UserContext(), c.Query("status"), params.Offset, params.Limit)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "Bookings retrieved successfully", pagination.NewResponse(bookings, params, total))
}

// Cancel cancels a pending or confirmed booking
// @Summary Cancel booking
// @Tags Bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /bookings/{id}/cancel [patch]
func (h *BookingHandler) Cancel(c *fiber.Ctx) error {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id := c.Params("id")
	if id == "" {
		return response.BadRequest(c, "Booking id is required")
	}

	booking, err := h.bookingService.Cancel(c.UserContext(), principal, id)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "Booking cancelled successfully", fiber.Map{
		"booking": booking,
	})
}
