package handlers

import (
	"dgl-microfin/internal/core/services"
	"dgl-microfin/internal/pkg/pagination"
	"dgl-microfin/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuditHandler handles audit trail endpoints
type AuditHandler struct {
	auditService *services.AuditService
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(auditService *services.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// List returns audit entries, most recent first
func (h *AuditHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	entries, total, err := h.auditService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list audit entries")
	}

	return response.Success(c, "Audit entries retrieved successfully",
		pagination.NewResponse(entries, params, total))
}
