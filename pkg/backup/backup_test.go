package backup

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/dukkanlabs/dukkan-erp/internal/adapter/repository/memory"
	"github.com/dukkanlabs/dukkan-erp/internal/domain/customer"
	"github.com/dukkanlabs/dukkan-erp/internal/domain/installment"
	"github.com/dukkanlabs/dukkan-erp/internal/domain/invoice"
	"github.com/dukkanlabs/dukkan-erp/internal/domain/product"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedStore(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	customers := memory.NewCustomerRepository(store)
	products := memory.NewProductRepository(store)
	installments := memory.NewInstallmentRepository(store)

	cust, err := customer.NewCustomer("أحمد الخالد", "0501234567")
	require.NoError(t, err)
	require.NoError(t, customers.Create(ctx, cust))

	prod, err := product.NewProduct("غسالة", "", decimal.NewFromInt(400), decimal.NewFromInt(300), 10, 2)
	require.NoError(t, err)
	require.NoError(t, products.Create(ctx, prod))

	items := []invoice.Item{{ProductID: prod.ID, Name: prod.Name, Quantity: 3, UnitPrice: prod.Price}}
	inv, err := invoice.NewInvoice(cust.ID, items, decimal.Zero, decimal.Zero, invoice.PaymentMethodInstallment)
	require.NoError(t, err)

	plan, err := installment.NewPlan(
		0, cust.Name, cust.Phone, "1089342211",
		inv.Total, decimal.NewFromInt(200), 10,
		time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	require.NoError(t, installments.CreatePlanWithInvoice(ctx, inv, plan))

	_, _, err = installments.RecordPayment(ctx, plan.ID, decimal.NewFromInt(100), time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), "")
	require.NoError(t, err)

	return store
}

func TestExportImportRoundTrip(t *testing.T) {
	src := seedStore(t)

	var buf bytes.Buffer
	require.NoError(t, NewService(src).Export(&buf))

	dst := memory.NewStore()
	require.NoError(t, NewService(dst).Import(bytes.NewReader(buf.Bytes()), int64(buf.Len())))

	ctx := context.Background()
	installments := memory.NewInstallmentRepository(dst)

	plans, err := installments.ListPlans(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.True(t, plans[0].RemainingAmount.Equal(decimal.NewFromInt(900)), "remaining = %s", plans[0].RemainingAmount)

	payments, err := installments.ListPaymentsByPlan(ctx, plans[0].ID)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, 1, payments[0].PaymentNumber)

	// the id sequence continues after the highest restored id: a payment
	// recorded after restore must not collide with existing records
	_, _, err = installments.RecordPayment(ctx, plans[0].ID, decimal.NewFromInt(100), time.Now(), "")
	require.NoError(t, err)

	payments, err = installments.ListPaymentsByPlan(ctx, plans[0].ID)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, 2, payments[1].PaymentNumber)
}

func TestImportRejectsUnsupportedSchema(t *testing.T) {
	payload, err := json.Marshal(Archive{SchemaVersion: SchemaVersion + 1})
	require.NoError(t, err)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("data.json")
	require.NoError(t, err)
	_, err = f.Write(payload)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	store := seedStore(t)
	err = NewService(store).Import(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.ErrorIs(t, err, ErrUnsupportedSchema)

	// the existing dataset survives a failed restore
	plans, listErr := memory.NewInstallmentRepository(store).ListPlans(context.Background(), 10, 0)
	require.NoError(t, listErr)
	assert.Len(t, plans, 1)
}

func TestImportRejectsMissingDataFile(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("readme.txt")
	require.NoError(t, err)
	_, err = f.Write([]byte("not a backup"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	err = NewService(memory.NewStore()).Import(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	assert.ErrorIs(t, err, ErrMissingDataFile)
}

func TestExportIsAZipWithSingleDataFile(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewService(seedStore(t)).Export(&buf))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, zr.File, 1)
	assert.Equal(t, "data.json", zr.File[0].Name)

	rc, err := zr.File[0].Open()
	require.NoError(t, err)
	defer rc.Close()

	var archive Archive
	require.NoError(t, json.NewDecoder(rc).Decode(&archive))
	assert.Equal(t, SchemaVersion, archive.SchemaVersion)
	assert.Len(t, archive.Plans, 1)
	assert.Len(t, archive.Payments, 1)
	assert.Len(t, archive.Customers, 1)
	assert.Len(t, archive.Products, 1)
	assert.Len(t, archive.Invoices, 1)
}
