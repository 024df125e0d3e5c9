package handlers

import (
	"turfbook/internal/adapters/http/middleware"
	"turfbook/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ProfileHandler returns the authenticated principal
type ProfileHandler struct{}

// NewProfileHandler creates a new profile handler
func NewProfileHandler() *ProfileHandler {
	return &ProfileHandler{}
}

// Me returns whoever the token resolved to
// @Summary Current principal
// @Description Returns the authenticated user or admin
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /me [get]
func (h *ProfileHandler) Me(c *fiber.Ctx) error {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	return response.Success(c, "Principal retrieved successfully", principal)
}

// UserMe returns the authenticated user
// @Summary Current user
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /users/me [get]
func (h *ProfileHandler) UserMe(c *fiber.Ctx) error {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok || principal.User == nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	return response.Success(c, "User retrieved successfully", fiber.Map{
		"user": principal.User,
	})
}

// AdminMe returns the authenticated admin
// @Summary Current admin
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/me [get]
func (h *ProfileHandler) AdminMe(c *fiber.Ctx) error {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok || principal.Admin == nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	return response.Success(c, "Admin retrieved successfully", fiber.Map{
		"admin": principal.Admin,
	})
}
