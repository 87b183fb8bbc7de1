package dto

import (
	"time"

	"github.com/dukkanlabs/dukkan-erp/internal/domain/installment"
	"github.com/shopspring/decimal"
)

// InstallmentPlanRequest creates an installment sale: the invoice and the
// plan referencing it are created together, atomically.
type InstallmentPlanRequest struct {
	CustomerID           int64                `json:"customer_id"`
	CustomerName         string               `json:"customer_name" binding:"required"`
	CustomerPhone        string               `json:"customer_phone" binding:"required"`
	IdentityNumber       string               `json:"identity_number" binding:"required"`
	GuarantorName        string               `json:"guarantor_name"`
	GuarantorPhone       string               `json:"guarantor_phone"`
	Items                []InvoiceItemRequest `json:"items" binding:"required,min=1,dive"`
	Discount             decimal.Decimal      `json:"discount"`
	Tax                  decimal.Decimal      `json:"tax"`
	DownPayment          decimal.Decimal      `json:"down_payment"`
	NumberOfInstallments int                  `json:"number_of_installments" binding:"required,min=1"`
	StartDate            time.Time            `json:"start_date" binding:"required"`
	Notes                string               `json:"notes"`
}

// InstallmentPaymentRequest records a payment against a plan. The payment
// number is assigned by the server as count of existing payments + 1.
type InstallmentPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	PaymentDate *time.Time      `json:"payment_date"`
	Notes       string          `json:"notes"`
}

// ScheduledInstallmentResponse is one row of a plan's schedule
type ScheduledInstallmentResponse struct {
	Number  int             `json:"number"`
	DueDate time.Time       `json:"due_date"`
	Amount  decimal.Decimal `json:"amount"`
}

// InstallmentPlanResponse is the API representation of a plan, including
// the derived balance figures
type InstallmentPlanResponse struct {
	ID                   int64              `json:"id"`
	InvoiceID            int64              `json:"invoice_id"`
	CustomerName         string             `json:"customer_name"`
	CustomerPhone        string             `json:"customer_phone"`
	IdentityNumber       string             `json:"identity_number"`
	GuarantorName        string             `json:"guarantor_name"`
	GuarantorPhone       string             `json:"guarantor_phone"`
	TotalAmount          decimal.Decimal    `json:"total_amount"`
	DownPayment          decimal.Decimal    `json:"down_payment"`
	RemainingAmount      decimal.Decimal    `json:"remaining_amount"`
	InstallmentAmount    decimal.Decimal    `json:"installment_amount"`
	NumberOfInstallments int                `json:"number_of_installments"`
	StartDate            time.Time          `json:"start_date"`
	Status               installment.Status `json:"status"`
	Notes                string             `json:"notes"`
	TotalPaid            decimal.Decimal    `json:"total_paid"`
	Progress             decimal.Decimal    `json:"progress"`
	NextDueDate          *time.Time         `json:"next_due_date"`
	CreatedAt            time.Time          `json:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at"`
}

// InstallmentPlanDetailResponse adds the payment history and the full
// schedule to the plan representation
type InstallmentPlanDetailResponse struct {
	InstallmentPlanResponse
	Schedule []ScheduledInstallmentResponse `json:"schedule"`
	Payments []InstallmentPaymentResponse   `json:"payments"`
}

// InstallmentPaymentResponse is the API representation of a payment
type InstallmentPaymentResponse struct {
	ID            int64                     `json:"id"`
	PlanID        int64                     `json:"plan_id"`
	Amount        decimal.Decimal           `json:"amount"`
	PaymentNumber int                       `json:"payment_number"`
	PaymentDate   time.Time                 `json:"payment_date"`
	Status        installment.PaymentStatus `json:"status"`
	Notes         string                    `json:"notes"`
	CreatedAt     time.Time                 `json:"created_at"`
}

// InstallmentPlanListResponse is a paginated list of plans
type InstallmentPlanListResponse struct {
	Items      []InstallmentPlanResponse `json:"items"`
	Total      int                       `json:"total"`
	Page       int                       `json:"page"`
	Size       int                       `json:"size"`
	TotalPages int                       `json:"total_pages"`
}

// InstallmentPaymentListResponse is a paginated list of payments
type InstallmentPaymentListResponse struct {
	Items      []InstallmentPaymentResponse `json:"items"`
	Total      int                          `json:"total"`
	Page       int                          `json:"page"`
	Size       int                          `json:"size"`
	TotalPages int                          `json:"total_pages"`
}

// RecordPaymentResponse carries the recorded payment and the updated plan
type RecordPaymentResponse struct {
	Payment InstallmentPaymentResponse `json:"payment"`
	Plan    InstallmentPlanResponse    `json:"plan"`
}

// ReconcileResponse reports the outcome of an overdue reconciliation pass
type ReconcileResponse struct {
	Transitioned int       `json:"transitioned"`
	RanAt        time.Time `json:"ran_at"`
}

// ToInstallmentPlanResponse converts a plan and its payment count to the
// API representation
func ToInstallmentPlanResponse(p *installment.Plan, paidCount int, now time.Time) *InstallmentPlanResponse {
	var nextDue *time.Time
	status := p.DeriveStatus(paidCount, now)
	if status == installment.StatusActive || status == installment.StatusOverdue {
		if due := p.NextDueDate(paidCount); !due.IsZero() {
			nextDue = &due
		}
	}

	return &InstallmentPlanResponse{
		ID:                   p.ID,
		InvoiceID:            p.InvoiceID,
		CustomerName:         p.CustomerName,
		CustomerPhone:        p.CustomerPhone,
		IdentityNumber:       p.IdentityNumber,
		GuarantorName:        p.GuarantorName,
		GuarantorPhone:       p.GuarantorPhone,
		TotalAmount:          p.TotalAmount,
		DownPayment:          p.DownPayment,
		RemainingAmount:      p.RemainingAmount,
		InstallmentAmount:    p.InstallmentAmount,
		NumberOfInstallments: p.NumberOfInstallments,
		StartDate:            p.StartDate,
		Status:               status,
		Notes:                p.Notes,
		TotalPaid:            p.TotalPaid(),
		Progress:             p.Progress(),
		NextDueDate:          nextDue,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}

// ToInstallmentPlanDetailResponse converts a plan with its payments and
// schedule to the API representation
func ToInstallmentPlanDetailResponse(p *installment.Plan, payments []*installment.Payment, now time.Time) *InstallmentPlanDetailResponse {
	schedule := p.Schedule()
	scheduleResp := make([]ScheduledInstallmentResponse, len(schedule))
	for i, s := range schedule {
		scheduleResp[i] = ScheduledInstallmentResponse{
			Number:  s.Number,
			DueDate: s.DueDate,
			Amount:  s.Amount,
		}
	}

	paymentResp := make([]InstallmentPaymentResponse, len(payments))
	for i, pay := range payments {
		paymentResp[i] = *ToInstallmentPaymentResponse(pay)
	}

	return &InstallmentPlanDetailResponse{
		InstallmentPlanResponse: *ToInstallmentPlanResponse(p, len(payments), now),
		Schedule:                scheduleResp,
		Payments:                paymentResp,
	}
}

// ToInstallmentPaymentResponse converts a payment to the API representation
func ToInstallmentPaymentResponse(p *installment.Payment) *InstallmentPaymentResponse {
	return &InstallmentPaymentResponse{
		ID:            p.ID,
		PlanID:        p.PlanID,
		Amount:        p.Amount,
		PaymentNumber: p.PaymentNumber,
		PaymentDate:   p.PaymentDate,
		Status:        p.Status,
		Notes:         p.Notes,
		CreatedAt:     p.CreatedAt,
	}
}
