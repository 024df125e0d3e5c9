package handlers

import (
	"context"

	"turfbook/internal/core/services"
	"turfbook/internal/pkg/apperror"
	"turfbook/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Reconciler runs one booking reconciliation pass
type Reconciler interface {
	Run(ctx context.Context) (*services.ReconcileResult, error)
}

// JobHandler exposes manual triggers for background jobs
type JobHandler struct {
	reconciler Reconciler
}

// NewJobHandler creates a new job handler
func NewJobHandler(reconciler Reconciler) *JobHandler {
	return &JobHandler{reconciler: reconciler}
}

// Reconcile runs booking reconciliation immediately
// @Summary Run booking reconciliation
// @Description Completes confirmed bookings whose slot has passed
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /admin/jobs/reconcile [post]
func (h *JobHandler) Reconcile(c *fiber.Ctx) error {
	result, err := h.reconciler.Run(c.UserContext())
	if err != nil {
		return response.FromError(c, apperror.Internal("Reconciliation failed", err))
	}

	return response.Success(c, "Reconciliation completed", fiber.Map{
		"scanned":     result.Scanned,
		"completed":   result.Completed,
		"skipped":     result.Skipped,
		"failed":      result.Failed,
		"duration_ms": result.Duration.Milliseconds(),
	})
}
