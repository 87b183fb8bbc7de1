package memory

import (
	"context"
	"testing"
	"time"

	"github.com/dukkanlabs/dukkan-erp/internal/domain/installment"
	"github.com/dukkanlabs/dukkan-erp/internal/domain/invoice"
	"github.com/dukkanlabs/dukkan-erp/internal/domain/product"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type installmentFixture struct {
	store        *Store
	products     product.Repository
	invoices     invoice.Repository
	installments installment.Repository
}

func newInstallmentFixture(t *testing.T) *installmentFixture {
	t.Helper()
	store := NewStore()
	return &installmentFixture{
		store:        store,
		products:     NewProductRepository(store),
		invoices:     NewInvoiceRepository(store),
		installments: NewInstallmentRepository(store),
	}
}

// seedPlan creates a product with the given stock and an installment sale
// of three units at 400 each (1200 total).
func (f *installmentFixture) seedPlan(t *testing.T, stock int, downPayment int64, count int) (*product.Product, *invoice.Invoice, *installment.Plan) {
	t.Helper()
	ctx := context.Background()

	prod, err := product.NewProduct("ثلاجة", "", decimal.NewFromInt(400), decimal.NewFromInt(300), stock, 1)
	require.NoError(t, err)
	require.NoError(t, f.products.Create(ctx, prod))

	items := []invoice.Item{{ProductID: prod.ID, Name: prod.Name, Quantity: 3, UnitPrice: prod.Price}}
	inv, err := invoice.NewInvoice(0, items, decimal.Zero, decimal.Zero, invoice.PaymentMethodInstallment)
	require.NoError(t, err)

	plan, err := installment.NewPlan(
		0, "أحمد الخالد", "0501234567", "1089342211",
		inv.Total, decimal.NewFromInt(downPayment), count,
		time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	require.NoError(t, f.installments.CreatePlanWithInvoice(ctx, inv, plan))
	return prod, inv, plan
}

func TestCreatePlanWithInvoice(t *testing.T) {
	f := newInstallmentFixture(t)
	ctx := context.Background()

	prod, inv, plan := f.seedPlan(t, 5, 200, 10)

	assert.NotZero(t, inv.ID)
	assert.NotZero(t, plan.ID)
	assert.Equal(t, inv.ID, plan.InvoiceID)

	// stock decremented by the sold quantity
	stored, err := f.products.FindByID(ctx, prod.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Quantity)

	// installment sales start as partially paid
	storedInv, err := f.invoices.FindByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, invoice.StatusPartial, storedInv.Status)

	storedPlan, err := f.installments.FindPlanByID(ctx, plan.ID)
	require.NoError(t, err)
	assert.True(t, storedPlan.RemainingAmount.Equal(decimal.NewFromInt(1000)))
}

func TestCreatePlanWithInvoiceInsufficientStock(t *testing.T) {
	f := newInstallmentFixture(t)
	ctx := context.Background()

	prod, err := product.NewProduct("ثلاجة", "", decimal.NewFromInt(400), decimal.NewFromInt(300), 2, 1)
	require.NoError(t, err)
	require.NoError(t, f.products.Create(ctx, prod))

	items := []invoice.Item{{ProductID: prod.ID, Name: prod.Name, Quantity: 3, UnitPrice: prod.Price}}
	inv, err := invoice.NewInvoice(0, items, decimal.Zero, decimal.Zero, invoice.PaymentMethodInstallment)
	require.NoError(t, err)

	plan, err := installment.NewPlan(
		0, "أحمد", "0501234567", "1089342211",
		inv.Total, decimal.Zero, 6,
		time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	err = f.installments.CreatePlanWithInvoice(ctx, inv, plan)
	require.ErrorIs(t, err, product.ErrInsufficientStock)

	// nothing was written
	count, err := f.installments.CountPlans(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	invCount, err := f.invoices.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, invCount)

	stored, err := f.products.FindByID(ctx, prod.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Quantity, "stock must be untouched")
}

func TestRecordPayment(t *testing.T) {
	f := newInstallmentFixture(t)
	ctx := context.Background()
	_, inv, plan := f.seedPlan(t, 5, 200, 10)

	paymentDate := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	for i := 1; i <= 10; i++ {
		payment, updated, err := f.installments.RecordPayment(ctx, plan.ID, decimal.NewFromInt(100), paymentDate, "")
		require.NoError(t, err, "payment %d", i)
		assert.Equal(t, i, payment.PaymentNumber)
		assert.True(t, updated.RemainingAmount.Equal(decimal.NewFromInt(int64(1000-i*100))), "balance after payment %d", i)
		paymentDate = paymentDate.AddDate(0, 1, 0)
	}

	final, err := f.installments.FindPlanByID(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, installment.StatusCompleted, final.Status)
	assert.True(t, final.RemainingAmount.IsZero())

	// the linked invoice settles with the plan
	storedInv, err := f.invoices.FindByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, invoice.StatusPaid, storedInv.Status)

	// a completed plan takes no further payments
	_, _, err = f.installments.RecordPayment(ctx, plan.ID, decimal.NewFromInt(1), paymentDate, "")
	assert.ErrorIs(t, err, installment.ErrPlanNotPayable)

	payments, err := f.installments.ListPaymentsByPlan(ctx, plan.ID)
	require.NoError(t, err)
	require.Len(t, payments, 10)
	for i, p := range payments {
		assert.Equal(t, i+1, p.PaymentNumber)
	}
}

func TestRecordPaymentOverpaymentLeavesStateIntact(t *testing.T) {
	f := newInstallmentFixture(t)
	ctx := context.Background()
	_, _, plan := f.seedPlan(t, 5, 200, 10)

	_, _, err := f.installments.RecordPayment(ctx, plan.ID, decimal.NewFromInt(1500), time.Now(), "")
	require.ErrorIs(t, err, installment.ErrOverpayment)

	stored, err := f.installments.FindPlanByID(ctx, plan.ID)
	require.NoError(t, err)
	assert.True(t, stored.RemainingAmount.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, installment.StatusActive, stored.Status)

	count, err := f.installments.CountPaymentsByPlan(ctx, plan.ID)
	require.NoError(t, err)
	assert.Zero(t, count, "no payment record on failure")
}

func TestRecordPaymentUnknownPlan(t *testing.T) {
	f := newInstallmentFixture(t)

	_, _, err := f.installments.RecordPayment(context.Background(), 42, decimal.NewFromInt(100), time.Now(), "")
	assert.ErrorIs(t, err, installment.ErrPlanNotFound)
}

func TestCancelPlan(t *testing.T) {
	f := newInstallmentFixture(t)
	ctx := context.Background()
	_, _, plan := f.seedPlan(t, 5, 200, 10)

	cancelled, err := f.installments.CancelPlan(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, installment.StatusCancelled, cancelled.Status)

	_, err = f.installments.CancelPlan(ctx, plan.ID)
	assert.ErrorIs(t, err, installment.ErrPlanNotCancellable)

	_, _, err = f.installments.RecordPayment(ctx, plan.ID, decimal.NewFromInt(100), time.Now(), "")
	assert.ErrorIs(t, err, installment.ErrPlanNotPayable)
}

func TestReconcileOverdue(t *testing.T) {
	f := newInstallmentFixture(t)
	ctx := context.Background()
	_, _, plan := f.seedPlan(t, 5, 200, 10)

	// before the first due date nothing is overdue
	early := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	n, err := f.installments.ReconcileOverdue(ctx, early)
	require.NoError(t, err)
	assert.Zero(t, n)

	// past the first due date with no payment recorded
	late := time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)
	n, err = f.installments.ReconcileOverdue(ctx, late)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	stored, err := f.installments.FindPlanByID(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, installment.StatusOverdue, stored.Status)

	// already overdue plans are not transitioned again
	n, err = f.installments.ReconcileOverdue(ctx, late)
	require.NoError(t, err)
	assert.Zero(t, n)

	// a late payment brings the plan current again
	_, updated, err := f.installments.RecordPayment(ctx, plan.ID, decimal.NewFromInt(100), late, "")
	require.NoError(t, err)
	assert.Equal(t, installment.StatusActive, updated.Status)

	// with one payment on record the next due date is in February
	n, err = f.installments.ReconcileOverdue(ctx, late)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestListPlansByStatus(t *testing.T) {
	f := newInstallmentFixture(t)
	ctx := context.Background()

	_, _, active := f.seedPlan(t, 10, 200, 10)
	_, _, toCancel := f.seedPlan(t, 10, 0, 6)

	_, err := f.installments.CancelPlan(ctx, toCancel.ID)
	require.NoError(t, err)

	actives, err := f.installments.ListPlansByStatus(ctx, installment.StatusActive, 10, 0)
	require.NoError(t, err)
	require.Len(t, actives, 1)
	assert.Equal(t, active.ID, actives[0].ID)

	cancelled, err := f.installments.ListPlansByStatus(ctx, installment.StatusCancelled, 10, 0)
	require.NoError(t, err)
	require.Len(t, cancelled, 1)
	assert.Equal(t, toCancel.ID, cancelled[0].ID)
}
