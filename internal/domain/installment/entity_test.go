package installment

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPlan(t *testing.T, total, down int64, count int) *Plan {
	t.Helper()
	p, err := NewPlan(
		1,
		"أحمد الخالد",
		"0501234567",
		"1089342211",
		decimal.NewFromInt(total),
		decimal.NewFromInt(down),
		count,
		time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return p
}

func TestNewPlanComputesBalance(t *testing.T) {
	p := newTestPlan(t, 1200, 200, 10)

	assert.True(t, p.RemainingAmount.Equal(decimal.NewFromInt(1000)), "remaining = %s", p.RemainingAmount)
	assert.True(t, p.InstallmentAmount.Equal(decimal.NewFromInt(100)), "installment = %s", p.InstallmentAmount)
	assert.Equal(t, StatusActive, p.Status)
	assert.True(t, p.TotalPaid().Equal(decimal.NewFromInt(200)), "total paid = %s", p.TotalPaid())
}

func TestNewPlanValidation(t *testing.T) {
	start := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		customerName   string
		customerPhone  string
		identityNumber string
		total          decimal.Decimal
		down           decimal.Decimal
		count          int
		wantErr        error
	}{
		{
			name:           "zero installments",
			customerName:   "أحمد",
			customerPhone:  "0501234567",
			identityNumber: "1089342211",
			total:          decimal.NewFromInt(1200),
			down:           decimal.NewFromInt(200),
			count:          0,
			wantErr:        ErrInvalidInstallmentCount,
		},
		{
			name:           "negative installments",
			customerName:   "أحمد",
			customerPhone:  "0501234567",
			identityNumber: "1089342211",
			total:          decimal.NewFromInt(1200),
			down:           decimal.NewFromInt(200),
			count:          -3,
			wantErr:        ErrInvalidInstallmentCount,
		},
		{
			name:           "down payment exceeds total",
			customerName:   "أحمد",
			customerPhone:  "0501234567",
			identityNumber: "1089342211",
			total:          decimal.NewFromInt(500),
			down:           decimal.NewFromInt(600),
			count:          5,
			wantErr:        ErrDownPaymentExceedsTotal,
		},
		{
			name:           "negative total",
			customerName:   "أحمد",
			customerPhone:  "0501234567",
			identityNumber: "1089342211",
			total:          decimal.NewFromInt(-10),
			down:           decimal.Zero,
			count:          5,
			wantErr:        ErrNegativeAmount,
		},
		{
			name:           "empty customer name",
			customerName:   "",
			customerPhone:  "0501234567",
			identityNumber: "1089342211",
			total:          decimal.NewFromInt(1200),
			down:           decimal.Zero,
			count:          5,
			wantErr:        ErrEmptyCustomerName,
		},
		{
			name:           "empty phone",
			customerName:   "أحمد",
			customerPhone:  "",
			identityNumber: "1089342211",
			total:          decimal.NewFromInt(1200),
			down:           decimal.Zero,
			count:          5,
			wantErr:        ErrEmptyCustomerPhone,
		},
		{
			name:           "empty identity number",
			customerName:   "أحمد",
			customerPhone:  "0501234567",
			identityNumber: "",
			total:          decimal.NewFromInt(1200),
			down:           decimal.Zero,
			count:          5,
			wantErr:        ErrEmptyIdentityNumber,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPlan(1, tt.customerName, tt.customerPhone, tt.identityNumber, tt.total, tt.down, tt.count, start)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestApplyPaymentRetiresBalance(t *testing.T) {
	p := newTestPlan(t, 1200, 200, 10)

	for i := 1; i <= 10; i++ {
		require.NoError(t, p.ApplyPayment(decimal.NewFromInt(100)), "payment %d", i)
	}

	assert.True(t, p.RemainingAmount.IsZero(), "remaining = %s", p.RemainingAmount)
	assert.Equal(t, StatusCompleted, p.Status)
	assert.True(t, p.TotalPaid().Equal(decimal.NewFromInt(1200)))
	assert.True(t, p.Progress().Equal(decimal.NewFromInt(1)), "progress = %s", p.Progress())

	// completed plans are terminal
	err := p.ApplyPayment(decimal.NewFromInt(1))
	assert.ErrorIs(t, err, ErrPlanNotPayable)
}

func TestApplyPaymentPartialProgress(t *testing.T) {
	p := newTestPlan(t, 1200, 200, 10)

	for i := 0; i < 4; i++ {
		require.NoError(t, p.ApplyPayment(decimal.NewFromInt(100)))
	}

	assert.True(t, p.RemainingAmount.Equal(decimal.NewFromInt(600)))
	assert.True(t, p.TotalPaid().Equal(decimal.NewFromInt(600)))
	assert.True(t, p.Progress().Equal(decimal.RequireFromString("0.5")), "progress = %s", p.Progress())
	assert.Equal(t, StatusActive, p.Status)
}

func TestApplyPaymentRejectsOverpayment(t *testing.T) {
	p := newTestPlan(t, 1200, 200, 10)

	err := p.ApplyPayment(decimal.NewFromInt(1001))
	assert.ErrorIs(t, err, ErrOverpayment)
	assert.True(t, p.RemainingAmount.Equal(decimal.NewFromInt(1000)), "balance must be untouched")
	assert.Equal(t, StatusActive, p.Status)
}

func TestApplyPaymentRejectsNegativeAmount(t *testing.T) {
	p := newTestPlan(t, 1200, 200, 10)

	err := p.ApplyPayment(decimal.NewFromInt(-5))
	assert.ErrorIs(t, err, ErrNegativeAmount)
}

func TestApplyPaymentOnOverduePlan(t *testing.T) {
	p := newTestPlan(t, 1200, 200, 10)
	p.Status = StatusOverdue

	require.NoError(t, p.ApplyPayment(decimal.NewFromInt(100)))
	assert.Equal(t, StatusActive, p.Status, "a late payment brings the plan current")
}

func TestApplyPaymentOnCancelledPlan(t *testing.T) {
	p := newTestPlan(t, 1200, 200, 10)
	require.NoError(t, p.Cancel())

	err := p.ApplyPayment(decimal.NewFromInt(100))
	assert.ErrorIs(t, err, ErrPlanNotPayable)
}

func TestCancel(t *testing.T) {
	p := newTestPlan(t, 1200, 200, 10)
	require.NoError(t, p.Cancel())
	assert.Equal(t, StatusCancelled, p.Status)

	assert.ErrorIs(t, p.Cancel(), ErrPlanNotCancellable)

	completed := newTestPlan(t, 1000, 0, 2)
	require.NoError(t, completed.ApplyPayment(decimal.NewFromInt(1000)))
	assert.ErrorIs(t, completed.Cancel(), ErrPlanNotCancellable)
}

func TestDueDates(t *testing.T) {
	p := newTestPlan(t, 1200, 200, 10)

	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), p.DueDate(1))
	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), p.DueDate(3))

	assert.Equal(t, p.DueDate(1), p.NextDueDate(0))
	assert.Equal(t, p.DueDate(6), p.NextDueDate(5))
	assert.True(t, p.NextDueDate(10).IsZero(), "fully scheduled out")
}

func TestDeriveStatus(t *testing.T) {
	p := newTestPlan(t, 1200, 200, 10)

	beforeFirstDue := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	afterFirstDue := time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)
	afterThirdDue := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, StatusActive, p.DeriveStatus(0, beforeFirstDue))
	assert.Equal(t, StatusOverdue, p.DeriveStatus(0, afterFirstDue))

	// two payments on time, third one late
	assert.Equal(t, StatusActive, p.DeriveStatus(3, afterThirdDue))
	assert.Equal(t, StatusOverdue, p.DeriveStatus(2, afterThirdDue))

	// terminal states are never re-derived
	cancelled := newTestPlan(t, 1200, 200, 10)
	require.NoError(t, cancelled.Cancel())
	assert.Equal(t, StatusCancelled, cancelled.DeriveStatus(0, afterThirdDue))

	completed := newTestPlan(t, 1000, 0, 2)
	require.NoError(t, completed.ApplyPayment(decimal.NewFromInt(1000)))
	assert.Equal(t, StatusCompleted, completed.DeriveStatus(1, afterThirdDue))
}

func TestNewPayment(t *testing.T) {
	paymentDate := time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)

	payment, err := NewPayment(7, decimal.NewFromInt(100), 3, paymentDate, "late by one day")
	require.NoError(t, err)
	assert.Equal(t, int64(7), payment.PlanID)
	assert.Equal(t, 3, payment.PaymentNumber)
	assert.Equal(t, PaymentStatusPaid, payment.Status)

	_, err = NewPayment(7, decimal.NewFromInt(-1), 1, paymentDate, "")
	assert.ErrorIs(t, err, ErrNegativeAmount)
}
