package memory

import (
	"context"
	"sort"
	"time"

	"github.com/dukkanlabs/dukkan-erp/internal/domain/installment"
	"github.com/dukkanlabs/dukkan-erp/internal/domain/invoice"
	"github.com/shopspring/decimal"
)

// InstallmentRepository implements installment.Repository over the shared
// store. The composite operations take the store's write lock once, which
// is the in-memory equivalent of a database transaction: the payment
// insert, the balance decrement and the status transition are never
// observable separately.
type InstallmentRepository struct {
	store *Store
}

// NewInstallmentRepository creates a new InstallmentRepository
func NewInstallmentRepository(store *Store) installment.Repository {
	return &InstallmentRepository{store: store}
}

// CreatePlanWithInvoice implements installment.Repository.CreatePlanWithInvoice
func (r *InstallmentRepository) CreatePlanWithInvoice(_ context.Context, inv *invoice.Invoice, p *installment.Plan) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if err := createInvoiceLocked(r.store, inv); err != nil {
		return err
	}

	p.InvoiceID = inv.ID
	p.ID = r.store.nextSequence()
	r.store.plans[p.ID] = clonePlan(p)
	return nil
}

// FindPlanByID implements installment.Repository.FindPlanByID
func (r *InstallmentRepository) FindPlanByID(_ context.Context, id int64) (*installment.Plan, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p, ok := r.store.plans[id]
	if !ok {
		return nil, installment.ErrPlanNotFound
	}
	return clonePlan(p), nil
}

// ListPlans implements installment.Repository.ListPlans
func (r *InstallmentRepository) ListPlans(_ context.Context, limit, offset int) ([]*installment.Plan, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	all := make([]*installment.Plan, 0, len(r.store.plans))
	for _, p := range r.store.plans {
		all = append(all, clonePlan(p))
	}
	sortPlansNewestFirst(all)
	return paginate(all, limit, offset), nil
}

// ListPlansByStatus implements installment.Repository.ListPlansByStatus
func (r *InstallmentRepository) ListPlansByStatus(_ context.Context, status installment.Status, limit, offset int) ([]*installment.Plan, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	matches := make([]*installment.Plan, 0)
	for _, p := range r.store.plans {
		if p.Status == status {
			matches = append(matches, clonePlan(p))
		}
	}
	sortPlansNewestFirst(matches)
	return paginate(matches, limit, offset), nil
}

// CountPlans implements installment.Repository.CountPlans
func (r *InstallmentRepository) CountPlans(_ context.Context) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return len(r.store.plans), nil
}

// RecordPayment implements installment.Repository.RecordPayment
func (r *InstallmentRepository) RecordPayment(_ context.Context, planID int64, amount decimal.Decimal, paymentDate time.Time, notes string) (*installment.Payment, *installment.Plan, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	plan, ok := r.store.plans[planID]
	if !ok {
		return nil, nil, installment.ErrPlanNotFound
	}

	if err := plan.ApplyPayment(amount); err != nil {
		return nil, nil, err
	}

	number := r.countPaymentsLocked(planID) + 1
	payment, err := installment.NewPayment(planID, amount, number, paymentDate, notes)
	if err != nil {
		return nil, nil, err
	}
	payment.ID = r.store.nextSequence()
	r.store.payments[payment.ID] = clonePayment(payment)

	// settle the linked invoice once the plan completes
	if plan.Status == installment.StatusCompleted {
		if inv, ok := r.store.invoices[plan.InvoiceID]; ok {
			inv.MarkPaid()
		}
	}

	return payment, clonePlan(plan), nil
}

// CancelPlan implements installment.Repository.CancelPlan
func (r *InstallmentRepository) CancelPlan(_ context.Context, id int64) (*installment.Plan, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	plan, ok := r.store.plans[id]
	if !ok {
		return nil, installment.ErrPlanNotFound
	}
	if err := plan.Cancel(); err != nil {
		return nil, err
	}
	return clonePlan(plan), nil
}

// ListPayments implements installment.Repository.ListPayments
func (r *InstallmentRepository) ListPayments(_ context.Context, limit, offset int) ([]*installment.Payment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	all := make([]*installment.Payment, 0, len(r.store.payments))
	for _, p := range r.store.payments {
		all = append(all, clonePayment(p))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	return paginate(all, limit, offset), nil
}

// ListPaymentsByPlan implements installment.Repository.ListPaymentsByPlan
func (r *InstallmentRepository) ListPaymentsByPlan(_ context.Context, planID int64) ([]*installment.Payment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	matches := make([]*installment.Payment, 0)
	for _, p := range r.store.payments {
		if p.PlanID == planID {
			matches = append(matches, clonePayment(p))
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].PaymentNumber < matches[j].PaymentNumber
	})
	return matches, nil
}

// CountPaymentsByPlan implements installment.Repository.CountPaymentsByPlan
func (r *InstallmentRepository) CountPaymentsByPlan(_ context.Context, planID int64) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.countPaymentsLocked(planID), nil
}

// ReconcileOverdue implements installment.Repository.ReconcileOverdue
func (r *InstallmentRepository) ReconcileOverdue(_ context.Context, now time.Time) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	transitioned := 0
	for _, plan := range r.store.plans {
		if plan.Status != installment.StatusActive {
			continue
		}
		paid := r.countPaymentsLocked(plan.ID)
		if plan.DeriveStatus(paid, now) == installment.StatusOverdue {
			plan.Status = installment.StatusOverdue
			plan.UpdatedAt = now
			transitioned++
		}
	}
	return transitioned, nil
}

// countPaymentsLocked counts a plan's payments. Caller must hold the lock.
func (r *InstallmentRepository) countPaymentsLocked(planID int64) int {
	count := 0
	for _, p := range r.store.payments {
		if p.PlanID == planID {
			count++
		}
	}
	return count
}

func sortPlansNewestFirst(plans []*installment.Plan) {
	sort.Slice(plans, func(i, j int) bool {
		return plans[i].ID > plans[j].ID
	})
}
