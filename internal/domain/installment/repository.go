package installment

import (
	"context"
	"errors"
	"time"

	"github.com/dukkanlabs/dukkan-erp/internal/domain/invoice"
	"github.com/shopspring/decimal"
)

var (
	ErrPlanNotFound    = errors.New("installment plan not found")
	ErrPaymentNotFound = errors.New("installment payment not found")
)

// Repository defines the storage operations for installment plans and
// payments. The multi-step operations (CreatePlanWithInvoice,
// RecordPayment, CancelPlan, ReconcileOverdue) are composite on purpose:
// implementations must run them inside a single transactional boundary so
// the balance invariants can never be observed half-applied.
type Repository interface {
	// CreatePlanWithInvoice persists the invoice and the plan referencing
	// it as one atomic operation. On failure neither record exists.
	CreatePlanWithInvoice(ctx context.Context, inv *invoice.Invoice, p *Plan) error

	// FindPlanByID returns a plan by its id
	FindPlanByID(ctx context.Context, id int64) (*Plan, error)

	// ListPlans lists plans ordered by creation, newest first
	ListPlans(ctx context.Context, limit, offset int) ([]*Plan, error)

	// ListPlansByStatus lists plans filtered by status
	ListPlansByStatus(ctx context.Context, status Status, limit, offset int) ([]*Plan, error)

	// CountPlans counts all plans
	CountPlans(ctx context.Context) (int, error)

	// RecordPayment appends a payment to the plan, decrements the
	// remaining balance and transitions the status, atomically. The
	// payment number is assigned as count of existing payments + 1.
	RecordPayment(ctx context.Context, planID int64, amount decimal.Decimal, paymentDate time.Time, notes string) (*Payment, *Plan, error)

	// CancelPlan transitions a plan to cancelled
	CancelPlan(ctx context.Context, id int64) (*Plan, error)

	// ListPayments lists all payments, newest first
	ListPayments(ctx context.Context, limit, offset int) ([]*Payment, error)

	// ListPaymentsByPlan lists a plan's payments ordered by payment number
	ListPaymentsByPlan(ctx context.Context, planID int64) ([]*Payment, error)

	// CountPaymentsByPlan counts the payments recorded against a plan
	CountPaymentsByPlan(ctx context.Context, planID int64) (int, error)

	// ReconcileOverdue persists the overdue status for every active plan
	// whose next unpaid installment is past due at the given time, and
	// returns how many plans were transitioned.
	ReconcileOverdue(ctx context.Context, now time.Time) (int, error)
}
