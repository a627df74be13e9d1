package handlers

import (
	"errors"

	"dgl-microfin/internal/core/domain"
	"dgl-microfin/internal/core/services"
	"dgl-microfin/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SettingsHandler handles institution settings endpoints
type SettingsHandler struct {
	settingsService *services.SettingsService
	capitalService  *services.CapitalService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *services.SettingsService, capitalService *services.CapitalService) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		capitalService:  capitalService,
	}
}

// Get returns the institution settings
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	settings, err := h.settingsService.Get(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to get settings")
	}

	return response.Success(c, "Settings retrieved successfully", settings)
}

// Update overwrites the institution settings. Loans already created keep
// their snapshotted rates.
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var input services.UpdateSettingsInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	actor := actorName(c)
	settings, err := h.settingsService.Update(c.Context(), &input, actor)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Institution name is required and rates must not be negative")
		}
		return response.InternalServerError(c, "Failed to update settings")
	}

	return response.Success(c, "Settings updated successfully", settings)
}

// Capital returns the capital pool status for both currencies
func (h *SettingsHandler) Capital(c *fiber.Ctx) error {
	pools, err := h.capitalService.Pools(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to compute capital pools")
	}

	return response.Success(c, "Capital pools retrieved successfully", pools)
}
