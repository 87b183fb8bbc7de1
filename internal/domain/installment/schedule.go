package installment

import (
	"time"

	"github.com/shopspring/decimal"
)

// ScheduledInstallment is one row of a plan's amortization schedule.
type ScheduledInstallment struct {
	Number  int             `json:"number"`
	DueDate time.Time       `json:"due_date"`
	Amount  decimal.Decimal `json:"amount"`
}

// ComputeSchedule derives the remaining balance and the per-installment
// amount from the plan terms. The per-installment amount is the balance
// divided by the count, rounded to 2 decimal places; the rounding remainder
// is absorbed by the last installment (see Schedule).
//
// The function is pure and safe to call repeatedly while the terms are
// being edited.
func ComputeSchedule(totalAmount, downPayment decimal.Decimal, numberOfInstallments int) (remaining, installmentAmount decimal.Decimal, err error) {
	if numberOfInstallments < 1 {
		return decimal.Zero, decimal.Zero, ErrInvalidInstallmentCount
	}
	if totalAmount.IsNegative() || downPayment.IsNegative() {
		return decimal.Zero, decimal.Zero, ErrNegativeAmount
	}
	if downPayment.GreaterThan(totalAmount) {
		return decimal.Zero, decimal.Zero, ErrDownPaymentExceedsTotal
	}

	remaining = totalAmount.Sub(downPayment)
	installmentAmount = remaining.DivRound(decimal.NewFromInt(int64(numberOfInstallments)), 2)
	return remaining, installmentAmount, nil
}

// Schedule expands a plan into its full list of scheduled installments.
// The amounts sum exactly to the balance at creation time: every
// installment carries the rounded amount except the last, which absorbs
// the remainder.
func (p *Plan) Schedule() []ScheduledInstallment {
	n := p.NumberOfInstallments
	balance := p.TotalAmount.Sub(p.DownPayment)

	rows := make([]ScheduledInstallment, n)
	for i := 1; i < n; i++ {
		rows[i-1] = ScheduledInstallment{
			Number:  i,
			DueDate: p.DueDate(i),
			Amount:  p.InstallmentAmount,
		}
	}

	last := balance.Sub(p.InstallmentAmount.Mul(decimal.NewFromInt(int64(n - 1))))
	rows[n-1] = ScheduledInstallment{
		Number:  n,
		DueDate: p.DueDate(n),
		Amount:  last,
	}
	return rows
}
