package handlers

import (
	"errors"

	"dgl-microfin/internal/core/domain"
	"dgl-microfin/internal/core/services"
	"dgl-microfin/internal/pkg/pagination"
	"dgl-microfin/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PartnerHandler handles funding partner endpoints
type PartnerHandler struct {
	partnerService *services.PartnerService
}

// NewPartnerHandler creates a new partner handler
func NewPartnerHandler(partnerService *services.PartnerService) *PartnerHandler {
	return &PartnerHandler{partnerService: partnerService}
}

// Create handles partner creation
func (h *PartnerHandler) Create(c *fiber.Ctx) error {
	var input services.PartnerInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	partner, err := h.partnerService.Create(c.Context(), &input)
	if err != nil {
		return h.mapError(c, err, "Failed to create partner")
	}

	return response.Created(c, "Partner created successfully", partner)
}

// Get returns a partner by ID
func (h *PartnerHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid partner ID")
	}

	partner, err := h.partnerService.GetByID(c.Context(), id)
	if err != nil {
		return h.mapError(c, err, "Failed to get partner")
	}

	return response.Success(c, "Partner retrieved successfully", partner)
}

// Update handles partner updates
func (h *PartnerHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid partner ID")
	}

	var input services.PartnerInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	partner, err := h.partnerService.Update(c.Context(), id, &input)
	if err != nil {
		return h.mapError(c, err, "Failed to update partner")
	}

	return response.Success(c, "Partner updated successfully", partner)
}

// Delete removes a partner
func (h *PartnerHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid partner ID")
	}

	if err := h.partnerService.Delete(c.Context(), id); err != nil {
		return h.mapError(c, err, "Failed to delete partner")
	}

	return response.Success(c, "Partner deleted successfully", nil)
}

// List returns a paginated partner listing
func (h *PartnerHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	partners, total, err := h.partnerService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list partners")
	}

	return response.Success(c, "Partners retrieved successfully",
		pagination.NewResponse(partners, params, total))
}

func (h *PartnerHandler) mapError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrPartnerNotFound):
		return response.NotFound(c, "Partner not found")
	case errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, "Partner name is required")
	case errors.Is(err, services.ErrInvalidPartnerType):
		return response.BadRequest(c, "Partner type must be INTERNAL or EXTERNAL")
	case errors.Is(err, services.ErrInvalidPartnerStatus):
		return response.BadRequest(c, "Partner status must be ACTIVE or SUSPENDED")
	default:
		return response.InternalServerError(c, fallback)
	}
}
