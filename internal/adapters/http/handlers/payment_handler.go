package handlers

import (
	"errors"

	"dgl-microfin/internal/core/domain"
	"dgl-microfin/internal/core/services"
	"dgl-microfin/internal/pkg/pagination"
	"dgl-microfin/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PaymentHandler handles repayment endpoints
type PaymentHandler struct {
	paymentService *services.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Create records a payment against a loan
func (h *PaymentHandler) Create(c *fiber.Ctx) error {
	var input services.ApplyPaymentInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	agent := actorName(c)
	payment, loan, err := h.paymentService.Apply(c.Context(), &input, agent)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidAmount):
			return response.BadRequest(c, "Amount must be positive")
		case errors.Is(err, services.ErrInvalidMethod):
			return response.BadRequest(c, "Payment method must be CASH, MOBILE_MONEY or BANK")
		case errors.Is(err, domain.ErrLoanNotFound):
			return response.NotFound(c, "Loan not found")
		case errors.Is(err, domain.ErrCurrencyMismatch):
			return response.BadRequest(c, "Payment currency must match the loan currency")
		case errors.Is(err, domain.ErrLoanNotPayable):
			return response.UnprocessableEntity(c, "Loan does not accept payments in its current status")
		default:
			return response.InternalServerError(c, "Failed to record payment")
		}
	}

	return response.Created(c, "Payment recorded successfully", fiber.Map{
		"payment": payment,
		"loan":    loan.ToResponse(),
	})
}

// List returns a paginated payment listing
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	payments, total, err := h.paymentService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list payments")
	}

	return response.Success(c, "Payments retrieved successfully",
		pagination.NewResponse(payments, params, total))
}

// ListByLoan returns a loan's payment history
func (h *PaymentHandler) ListByLoan(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	payments, err := h.paymentService.ListByLoan(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrLoanNotFound) {
			return response.NotFound(c, "Loan not found")
		}
		return response.InternalServerError(c, "Failed to list loan payments")
	}

	return response.Success(c, "Payments retrieved successfully", payments)
}
