package domain

import "errors"

// ErrInvalidInput rejects malformed registry and settings input
var ErrInvalidInput = errors.New("invalid input")

// Loan errors
var (
	ErrLoanNotFound        = errors.New("loan not found")
	ErrInvalidTransition   = errors.New("illegal loan status transition")
	ErrLoanNotPayable      = errors.New("loan does not accept payments in its current status")
	ErrInsufficientCapital = errors.New("insufficient capital to cover this loan")
)

// Payment errors
var (
	ErrCurrencyMismatch = errors.New("payment currency does not match loan currency")
	ErrInvalidAmount    = errors.New("amount must be greater than zero")
)

// Registry errors
var (
	ErrMemberNotFound     = errors.New("member not found")
	ErrMemberHasOpenLoans = errors.New("member has open loans and cannot be deleted")
	ErrPartnerNotFound    = errors.New("partner not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrLastAdmin          = errors.New("operation would leave no active administrator")
)
