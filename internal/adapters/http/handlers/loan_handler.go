package handlers

import (
	"errors"
	"strconv"
	"strings"

	"dgl-microfin/internal/adapters/persistence/models"
	"dgl-microfin/internal/core/domain"
	"dgl-microfin/internal/core/services"
	"dgl-microfin/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// LoanHandler handles loan origination and lifecycle endpoints
type LoanHandler struct {
	loanService *services.LoanService
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(loanService *services.LoanService) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

// Create handles loan creation
func (h *LoanHandler) Create(c *fiber.Ctx) error {
	var input services.CreateLoanInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	actor := actorName(c)
	loan, err := h.loanService.Create(c.Context(), &input, actor)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidAmount):
			return response.BadRequest(c, "Amount must be positive")
		case errors.Is(err, services.ErrInvalidDuration):
			return response.BadRequest(c, "Duration must be at least one month")
		case errors.Is(err, services.ErrInvalidCurrency):
			return response.BadRequest(c, "Currency must be CDF or USD")
		case errors.Is(err, domain.ErrMemberNotFound):
			return response.NotFound(c, "Member not found")
		case errors.Is(err, domain.ErrPartnerNotFound):
			return response.NotFound(c, "Partner not found")
		case errors.Is(err, domain.ErrInsufficientCapital):
			return response.UnprocessableEntity(c, "Insufficient capital in the currency pool")
		default:
			return response.InternalServerError(c, "Failed to create loan")
		}
	}

	return response.Created(c, "Loan created successfully", loan.ToResponse())
}

// Preview prices a loan candidate without persisting it
func (h *LoanHandler) Preview(c *fiber.Ctx) error {
	var req struct {
		Amount         decimal.Decimal `json:"amount"`
		DurationMonths int             `json:"duration_months"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	fin, err := h.loanService.Preview(c.Context(), req.Amount, req.DurationMonths)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidAmount):
			return response.BadRequest(c, "Amount must be positive")
		case errors.Is(err, services.ErrInvalidDuration):
			return response.BadRequest(c, "Duration must be at least one month")
		default:
			return response.InternalServerError(c, "Failed to preview loan")
		}
	}

	return response.Success(c, "Loan preview computed", fin)
}

// Get returns a loan by ID
func (h *LoanHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	loan, err := h.loanService.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrLoanNotFound) {
			return response.NotFound(c, "Loan not found")
		}
		return response.InternalServerError(c, "Failed to get loan")
	}

	return response.Success(c, "Loan retrieved successfully", loan.ToResponse())
}

// UpdateStatus moves a loan through its lifecycle
func (h *LoanHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	newStatus := domain.LoanStatus(req.Status)
	if !newStatus.Valid() {
		return response.BadRequest(c, "Unknown loan status")
	}

	actor := actorName(c)
	loan, err := h.loanService.UpdateStatus(c.Context(), id, newStatus, actor)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrLoanNotFound):
			return response.NotFound(c, "Loan not found")
		case errors.Is(err, domain.ErrInvalidTransition):
			return response.UnprocessableEntity(c, err.Error())
		case errors.Is(err, domain.ErrInsufficientCapital):
			return response.UnprocessableEntity(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to update loan status")
		}
	}

	return response.Success(c, "Loan status updated successfully", loan.ToResponse())
}

// List returns a paginated loan listing
func (h *LoanHandler) List(c *fiber.Ctx) error {
	if raw := c.Query("status"); raw != "" {
		status := domain.LoanStatus(strings.ToUpper(raw))
		if !status.Valid() {
			return response.BadRequest(c, "Unknown loan status")
		}
		loans, err := h.loanService.ListByStatus(c.Context(), status)
		if err != nil {
			return response.InternalServerError(c, "Failed to list loans")
		}
		responses := make([]*models.LoanResponse, len(loans))
		for i, loan := range loans {
			responses[i] = loan.ToResponse()
		}
		return response.Success(c, "Loans retrieved successfully", responses)
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))

	result, err := h.loanService.List(c.Context(), page, limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list loans")
	}

	return response.Success(c, "Loans retrieved successfully", result)
}
