package domain

// Currency is one of the two currency pools the institution lends in
type Currency string

const (
	CurrencyCDF Currency = "CDF"
	CurrencyUSD Currency = "USD"
)

// Valid reports whether the currency is one of the supported pools
func (c Currency) Valid() bool {
	return c == CurrencyCDF || c == CurrencyUSD
}

// Role represents user role in the system
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleAgent Role = "AGENT"
)

// Valid reports whether the role is known
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleAgent
}

// LoanStatus represents the lifecycle state of a loan
type LoanStatus string

const (
	LoanPending   LoanStatus = "PENDING"
	LoanApproved  LoanStatus = "APPROVED"
	LoanRejected  LoanStatus = "REJECTED"
	LoanActive    LoanStatus = "ACTIVE"
	LoanOverdue   LoanStatus = "OVERDUE"
	LoanCompleted LoanStatus = "COMPLETED"
)

// Valid reports whether the status is part of the lifecycle
func (s LoanStatus) Valid() bool {
	switch s {
	case LoanPending, LoanApproved, LoanRejected, LoanActive, LoanOverdue, LoanCompleted:
		return true
	}
	return false
}

// Terminal reports whether no further transition can leave this status
func (s LoanStatus) Terminal() bool {
	return s == LoanRejected || s == LoanCompleted
}

// Payable reports whether the loan accepts payments in this status
func (s LoanStatus) Payable() bool {
	return s == LoanActive || s == LoanOverdue
}

// loanTransitions enumerates the legal status moves. Anything not listed
// is rejected by CanTransition.
var loanTransitions = map[LoanStatus][]LoanStatus{
	LoanPending:  {LoanApproved, LoanRejected},
	LoanApproved: {LoanActive},
	LoanActive:   {LoanOverdue, LoanCompleted},
	LoanOverdue:  {LoanActive, LoanCompleted},
}

// CanTransition reports whether a loan may move from one status to another
func CanTransition(from, to LoanStatus) bool {
	for _, next := range loanTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// PartnerType distinguishes internal funding sources from external funders
type PartnerType string

const (
	PartnerInternal PartnerType = "INTERNAL"
	PartnerExternal PartnerType = "EXTERNAL"
)

// PartnerStatus represents partner standing
type PartnerStatus string

const (
	PartnerActive    PartnerStatus = "ACTIVE"
	PartnerSuspended PartnerStatus = "SUSPENDED"
)

// PaymentMethod is how a repayment was collected
type PaymentMethod string

const (
	MethodCash        PaymentMethod = "CASH"
	MethodMobileMoney PaymentMethod = "MOBILE_MONEY"
	MethodBank        PaymentMethod = "BANK"
)

// Valid reports whether the payment method is known
func (m PaymentMethod) Valid() bool {
	return m == MethodCash || m == MethodMobileMoney || m == MethodBank
}

// Audit action tags
const (
	AuditLogin        = "LOGIN"
	AuditCreateLoan   = "CREATE_LOAN"
	AuditUpdateLoan   = "UPDATE_LOAN"
	AuditPayment      = "PAYMENT"
	AuditCreateMember = "CREATE_MEMBER"
	AuditDeleteMember = "DELETE_MEMBER"
	AuditSettings     = "UPDATE_SETTINGS"
	AuditOverdueSweep = "OVERDUE_SWEEP"
)
