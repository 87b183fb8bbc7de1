package installment

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyCustomerName       = errors.New("customer name cannot be empty")
	ErrEmptyCustomerPhone      = errors.New("customer phone cannot be empty")
	ErrEmptyIdentityNumber     = errors.New("identity number cannot be empty")
	ErrInvalidInstallmentCount = errors.New("number of installments must be at least 1")
	ErrNegativeAmount          = errors.New("amount cannot be negative")
	ErrDownPaymentExceedsTotal = errors.New("down payment cannot exceed total amount")
	ErrPlanNotPayable          = errors.New("plan does not accept payments in its current status")
	ErrOverpayment             = errors.New("payment exceeds the remaining balance")
	ErrPlanNotCancellable      = errors.New("plan cannot be cancelled in its current status")
)

// Status represents the lifecycle state of an installment plan
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusOverdue   Status = "overdue"
	StatusCancelled Status = "cancelled"
)

// PaymentStatus represents the state of a single recorded payment
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusOverdue PaymentStatus = "overdue"
)

// Plan represents an installment (layaway) agreement tied to an invoice.
// The remaining balance after the down payment is retired in equal
// monthly amounts, the last one absorbing the rounding remainder.
type Plan struct {
	ID                   int64           `json:"id"`
	InvoiceID            int64           `json:"invoice_id"`
	CustomerName         string          `json:"customer_name"`
	CustomerPhone        string          `json:"customer_phone"`
	IdentityNumber       string          `json:"identity_number"`
	GuarantorName        string          `json:"guarantor_name"`
	GuarantorPhone       string          `json:"guarantor_phone"`
	TotalAmount          decimal.Decimal `json:"total_amount"`
	DownPayment          decimal.Decimal `json:"down_payment"`
	RemainingAmount      decimal.Decimal `json:"remaining_amount"`
	InstallmentAmount    decimal.Decimal `json:"installment_amount"`
	NumberOfInstallments int             `json:"number_of_installments"`
	StartDate            time.Time       `json:"start_date"`
	Status               Status          `json:"status"`
	Notes                string          `json:"notes"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// Payment represents a single recorded payment against a plan.
// Payments are immutable once created.
type Payment struct {
	ID            int64           `json:"id"`
	PlanID        int64           `json:"plan_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentNumber int             `json:"payment_number"`
	PaymentDate   time.Time       `json:"payment_date"`
	Status        PaymentStatus   `json:"status"`
	Notes         string          `json:"notes"`
	CreatedAt     time.Time       `json:"created_at"`
}

// NewPlan creates a new installment plan. The remaining and per-installment
// amounts are derived from the schedule computation; the count must be
// validated before any division happens.
func NewPlan(
	invoiceID int64,
	customerName string,
	customerPhone string,
	identityNumber string,
	totalAmount decimal.Decimal,
	downPayment decimal.Decimal,
	numberOfInstallments int,
	startDate time.Time,
) (*Plan, error) {
	if customerName == "" {
		return nil, ErrEmptyCustomerName
	}
	if customerPhone == "" {
		return nil, ErrEmptyCustomerPhone
	}
	if identityNumber == "" {
		return nil, ErrEmptyIdentityNumber
	}

	remaining, installmentAmount, err := ComputeSchedule(totalAmount, downPayment, numberOfInstallments)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &Plan{
		InvoiceID:            invoiceID,
		CustomerName:         customerName,
		CustomerPhone:        customerPhone,
		IdentityNumber:       identityNumber,
		TotalAmount:          totalAmount,
		DownPayment:          downPayment,
		RemainingAmount:      remaining,
		InstallmentAmount:    installmentAmount,
		NumberOfInstallments: numberOfInstallments,
		StartDate:            startDate,
		Status:               StatusActive,
		CreatedAt:            now,
		UpdatedAt:            now,
	}, nil
}

// CanReceivePayment reports whether a payment may be recorded.
// Overdue plans stay payable so a late payment can bring them current;
// completed and cancelled plans are terminal.
func (p *Plan) CanReceivePayment() bool {
	return p.Status == StatusActive || p.Status == StatusOverdue
}

// ApplyPayment decrements the remaining balance and transitions the status.
// It must be called inside the same transactional boundary that persists
// the payment record.
func (p *Plan) ApplyPayment(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrNegativeAmount
	}
	if !p.CanReceivePayment() {
		return ErrPlanNotPayable
	}
	if amount.GreaterThan(p.RemainingAmount) {
		return ErrOverpayment
	}

	p.RemainingAmount = p.RemainingAmount.Sub(amount)
	if p.RemainingAmount.IsZero() {
		p.Status = StatusCompleted
	} else {
		// a late payment brings an overdue plan back to active
		p.Status = StatusActive
	}
	p.UpdatedAt = time.Now()
	return nil
}

// Cancel transitions the plan to cancelled. Terminal states stay terminal.
func (p *Plan) Cancel() error {
	if p.Status == StatusCompleted || p.Status == StatusCancelled {
		return ErrPlanNotCancellable
	}
	p.Status = StatusCancelled
	p.UpdatedAt = time.Now()
	return nil
}

// TotalPaid returns the amount retired so far including the down payment.
func (p *Plan) TotalPaid() decimal.Decimal {
	return p.TotalAmount.Sub(p.RemainingAmount)
}

// Progress returns the fraction of the total amount already paid, 0..1.
func (p *Plan) Progress() decimal.Decimal {
	if p.TotalAmount.IsZero() {
		return decimal.NewFromInt(1)
	}
	return p.TotalPaid().DivRound(p.TotalAmount, 4)
}

// DueDate returns the scheduled due date of the n-th installment (1-based).
// The first installment is due on the start date, each following one a
// month later.
func (p *Plan) DueDate(n int) time.Time {
	return p.StartDate.AddDate(0, n-1, 0)
}

// NextDueDate returns the due date of the next unpaid installment given the
// number of payments recorded so far, or the zero time when the plan is
// fully scheduled out.
func (p *Plan) NextDueDate(paidCount int) time.Time {
	if paidCount >= p.NumberOfInstallments {
		return time.Time{}
	}
	return p.DueDate(paidCount + 1)
}

// DeriveStatus computes the effective status at a point in time. A stored
// active plan whose next unpaid installment is past due reads as overdue.
// Terminal states are never re-derived.
func (p *Plan) DeriveStatus(paidCount int, now time.Time) Status {
	if p.Status == StatusCompleted || p.Status == StatusCancelled {
		return p.Status
	}
	next := p.NextDueDate(paidCount)
	if !next.IsZero() && now.After(next) {
		return StatusOverdue
	}
	return StatusActive
}

// NewPayment creates a payment record against a plan. The payment number is
// assigned by the caller as count of existing payments + 1.
func NewPayment(planID int64, amount decimal.Decimal, paymentNumber int, paymentDate time.Time, notes string) (*Payment, error) {
	if amount.IsNegative() {
		return nil, ErrNegativeAmount
	}
	return &Payment{
		PlanID:        planID,
		Amount:        amount,
		PaymentNumber: paymentNumber,
		PaymentDate:   paymentDate,
		Status:        PaymentStatusPaid,
		Notes:         notes,
		CreatedAt:     time.Now(),
	}, nil
}
