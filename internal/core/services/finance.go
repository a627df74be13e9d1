package services

import (
	"github.com/shopspring/decimal"

	"dgl-microfin/internal/adapters/persistence/models"
)

var hundred = decimal.NewFromInt(100)

// FeeSchedule holds the rate and fee percentages a loan is priced with.
// Values come from settings and are snapshotted onto the loan at creation.
type FeeSchedule struct {
	InterestRate          decimal.Decimal
	ApplicationFeePercent decimal.Decimal
	InsuranceFeePercent   decimal.Decimal
	SavingsPercent        decimal.Decimal
}

// ScheduleFromSettings extracts the pricing knobs from the settings row
func ScheduleFromSettings(s *models.Settings) FeeSchedule {
	return FeeSchedule{
		InterestRate:          s.InterestRate,
		ApplicationFeePercent: s.ApplicationFeePercent,
		InsuranceFeePercent:   s.InsuranceFeePercent,
		SavingsPercent:        s.SavingsPercent,
	}
}

// LoanFinancials are the derived monetary fields of a loan
type LoanFinancials struct {
	Interest         decimal.Decimal `json:"interest"`
	Fees             decimal.Decimal `json:"fees"`
	Insurance        decimal.Decimal `json:"insurance"`
	Savings          decimal.Decimal `json:"savings"`
	TotalDue         decimal.Decimal `json:"total_due"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
}

// percentOf returns amount * pct / 100
func percentOf(amount, pct decimal.Decimal) decimal.Decimal {
	return amount.Mul(pct).Div(hundred)
}

// ComputeLoanFinancials prices a loan. Interest is flat simple interest:
// principal * rate% * months, not compounded. The remaining balance starts
// at principal + interest; fees, insurance and savings are collected
// separately and do not enter the balance.
func ComputeLoanFinancials(principal decimal.Decimal, durationMonths int, schedule FeeSchedule) LoanFinancials {
	months := decimal.NewFromInt(int64(durationMonths))
	interest := percentOf(principal, schedule.InterestRate).Mul(months)
	totalDue := principal.Add(interest)

	return LoanFinancials{
		Interest:         interest,
		Fees:             percentOf(principal, schedule.ApplicationFeePercent),
		Insurance:        percentOf(principal, schedule.InsuranceFeePercent),
		Savings:          percentOf(principal, schedule.SavingsPercent),
		TotalDue:         totalDue,
		RemainingBalance: totalDue,
	}
}
