package reports

import (
	"bytes"
	"testing"
	"time"

	"github.com/dukkanlabs/dukkan-erp/internal/domain/installment"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteInstallmentBook(t *testing.T) {
	start := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	plan, err := installment.NewPlan(3, "أحمد الخالد", "0501234567", "1089342211",
		decimal.NewFromInt(1200), decimal.NewFromInt(200), 10, start)
	require.NoError(t, err)
	plan.ID = 1

	payment, err := installment.NewPayment(plan.ID, decimal.NewFromInt(100), 1, start, "")
	require.NoError(t, err)
	require.NoError(t, plan.ApplyPayment(payment.Amount))

	var buf bytes.Buffer
	now := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	err = WriteInstallmentBook(&buf, []*installment.Plan{plan}, map[int64][]*installment.Payment{
		plan.ID: {payment},
	}, now)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Installments")
	require.NoError(t, err)
	require.Len(t, rows, 2, "header plus one plan row")

	assert.Equal(t, "Plan ID", rows[0][0])

	row := rows[1]
	assert.Equal(t, "أحمد الخالد", row[2])
	assert.Equal(t, "1200.00", row[5])
	assert.Equal(t, "900.00", row[7])
	assert.Equal(t, "300.00", row[11])
	assert.Equal(t, "active", row[13])
	assert.Equal(t, "2025-02-15", row[15])
}
