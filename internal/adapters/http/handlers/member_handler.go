package handlers

import (
	"errors"
	"strconv"

	"dgl-microfin/internal/core/domain"
	"dgl-microfin/internal/core/services"
	"dgl-microfin/internal/pkg/pagination"
	"dgl-microfin/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MemberHandler handles member registry endpoints
type MemberHandler struct {
	memberService *services.MemberService
	loanService   *services.LoanService
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(memberService *services.MemberService, loanService *services.LoanService) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
		loanService:   loanService,
	}
}

// Create handles member registration
func (h *MemberHandler) Create(c *fiber.Ctx) error {
	var input services.MemberInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	actor := actorName(c)
	member, err := h.memberService.Create(c.Context(), &input, actor)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "First name and last name are required")
		case errors.Is(err, services.ErrInvalidGender):
			return response.BadRequest(c, "Gender must be M or F")
		default:
			return response.InternalServerError(c, "Failed to create member")
		}
	}

	return response.Created(c, "Member created successfully", member)
}

// Get returns a member by ID
func (h *MemberHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	member, err := h.memberService.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to get member")
	}

	return response.Success(c, "Member retrieved successfully", member)
}

// Update handles member updates
func (h *MemberHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	var input services.MemberInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	member, err := h.memberService.Update(c.Context(), id, &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMemberNotFound):
			return response.NotFound(c, "Member not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "First name and last name are required")
		case errors.Is(err, services.ErrInvalidGender):
			return response.BadRequest(c, "Gender must be M or F")
		default:
			return response.InternalServerError(c, "Failed to update member")
		}
	}

	return response.Success(c, "Member updated successfully", member)
}

// Delete removes a member. Members with loans still in progress cannot
// be removed.
func (h *MemberHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	actor := actorName(c)
	if err := h.memberService.Delete(c.Context(), id, actor); err != nil {
		switch {
		case errors.Is(err, domain.ErrMemberNotFound):
			return response.NotFound(c, "Member not found")
		case errors.Is(err, domain.ErrMemberHasOpenLoans):
			return response.Conflict(c, "Member has loans in progress and cannot be deleted")
		default:
			return response.InternalServerError(c, "Failed to delete member")
		}
	}

	return response.Success(c, "Member deleted successfully", nil)
}

// List returns a paginated member listing
func (h *MemberHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	members, total, err := h.memberService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list members")
	}

	return response.Success(c, "Members retrieved successfully",
		pagination.NewResponse(members, params, total))
}

// Search searches members by name or group
func (h *MemberHandler) Search(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return response.BadRequest(c, "Search query is required")
	}

	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	members, err := h.memberService.Search(c.Context(), query, limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to search members")
	}

	return response.Success(c, "Members retrieved successfully", members)
}

// Loans returns a member's loan history
func (h *MemberHandler) Loans(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	if _, err := h.memberService.GetByID(c.Context(), id); err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to get member")
	}

	loans, err := h.loanService.ListByMember(c.Context(), id)
	if err != nil {
		return response.InternalServerError(c, "Failed to list member loans")
	}

	return response.Success(c, "Loans retrieved successfully", loans)
}

// parseID reads the :id path parameter
func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

// actorName resolves the authenticated user's display name for audit entries
func actorName(c *fiber.Ctx) string {
	if name, ok := c.Locals("username").(string); ok && name != "" {
		return name
	}
	return "system"
}
