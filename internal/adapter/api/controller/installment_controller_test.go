package controller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dukkanlabs/dukkan-erp/internal/adapter/api/controller"
	"github.com/dukkanlabs/dukkan-erp/internal/adapter/api/dto"
	"github.com/dukkanlabs/dukkan-erp/internal/adapter/api/route"
	"github.com/dukkanlabs/dukkan-erp/internal/adapter/repository/memory"
	"github.com/dukkanlabs/dukkan-erp/internal/domain/product"
	"github.com/dukkanlabs/dukkan-erp/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRouter wires the installment routes over a fresh in-memory store
// with authentication stubbed out.
func newTestRouter(t *testing.T) (*gin.Engine, product.Repository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	productRepo := memory.NewProductRepository(store)
	installmentRepo := memory.NewInstallmentRepository(store)
	log := logger.NewLogger()

	installmentController := controller.NewInstallmentController(installmentRepo, productRepo, log)

	router := gin.New()
	api := router.Group("/api")
	passThrough := func(c *gin.Context) { c.Next() }
	route.RegisterInstallmentRoutes(api, installmentController, passThrough)
	return router, productRepo
}

func seedProduct(t *testing.T, repo product.Repository, stock int) *product.Product {
	t.Helper()
	prod, err := product.NewProduct("مكيف", "", decimal.NewFromInt(400), decimal.NewFromInt(250), stock, 1)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), prod))
	return prod
}

func planBody(productID int64, quantity, count int, downPayment string) map[string]any {
	return map[string]any{
		"customer_name":          "أحمد الخالد",
		"customer_phone":         "0501234567",
		"identity_number":        "1089342211",
		"items":                  []map[string]any{{"product_id": productID, "quantity": quantity}},
		"down_payment":           downPayment,
		"number_of_installments": count,
		"start_date":             time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC).Format(time.RFC3339),
	}
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateInstallmentPlan(t *testing.T) {
	router, products := newTestRouter(t)
	prod := seedProduct(t, products, 5)

	w := doJSON(t, router, http.MethodPost, "/api/installments", planBody(prod.ID, 3, 10, "200"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp dto.InstallmentPlanDetailResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(1200)), "total = %s", resp.TotalAmount)
	assert.True(t, resp.RemainingAmount.Equal(decimal.NewFromInt(1000)))
	assert.True(t, resp.InstallmentAmount.Equal(decimal.NewFromInt(100)))
	assert.NotZero(t, resp.InvoiceID)
	require.Len(t, resp.Schedule, 10)
	assert.Empty(t, resp.Payments)
}

func TestCreateInstallmentPlanRejectsZeroInstallments(t *testing.T) {
	router, products := newTestRouter(t)
	prod := seedProduct(t, products, 5)

	w := doJSON(t, router, http.MethodPost, "/api/installments", planBody(prod.ID, 3, 0, "200"))
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	// nothing was created
	list := doJSON(t, router, http.MethodGet, "/api/installments", nil)
	require.Equal(t, http.StatusOK, list.Code)
	var listResp dto.InstallmentPlanListResponse
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &listResp))
	assert.Zero(t, listResp.Total)
}

func TestCreateInstallmentPlanInsufficientStock(t *testing.T) {
	router, products := newTestRouter(t)
	prod := seedProduct(t, products, 2)

	w := doJSON(t, router, http.MethodPost, "/api/installments", planBody(prod.ID, 3, 10, "200"))
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
}

func TestRecordPaymentLifecycle(t *testing.T) {
	router, products := newTestRouter(t)
	prod := seedProduct(t, products, 5)

	created := doJSON(t, router, http.MethodPost, "/api/installments", planBody(prod.ID, 3, 10, "200"))
	require.Equal(t, http.StatusCreated, created.Code)
	var plan dto.InstallmentPlanDetailResponse
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &plan))

	payURL := fmt.Sprintf("/api/installments/%d/payments", plan.ID)

	for i := 1; i <= 10; i++ {
		w := doJSON(t, router, http.MethodPost, payURL, map[string]any{"amount": "100"})
		require.Equal(t, http.StatusCreated, w.Code, "payment %d: %s", i, w.Body.String())

		var resp dto.RecordPaymentResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, i, resp.Payment.PaymentNumber)
	}

	// completed after the balance hits zero
	detail := doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/installments/%d", plan.ID), nil)
	require.Equal(t, http.StatusOK, detail.Code)
	var final dto.InstallmentPlanDetailResponse
	require.NoError(t, json.Unmarshal(detail.Body.Bytes(), &final))
	assert.True(t, final.RemainingAmount.IsZero())
	assert.True(t, final.Progress.Equal(decimal.NewFromInt(1)), "progress = %s", final.Progress)
	assert.Len(t, final.Payments, 10)
	assert.Nil(t, final.NextDueDate)

	// an eleventh payment is rejected
	w := doJSON(t, router, http.MethodPost, payURL, map[string]any{"amount": "1"})
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
}

func TestRecordPaymentOverpayment(t *testing.T) {
	router, products := newTestRouter(t)
	prod := seedProduct(t, products, 5)

	created := doJSON(t, router, http.MethodPost, "/api/installments", planBody(prod.ID, 3, 10, "200"))
	require.Equal(t, http.StatusCreated, created.Code)
	var plan dto.InstallmentPlanDetailResponse
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &plan))

	w := doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/installments/%d/payments", plan.ID), map[string]any{"amount": "1500"})
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
}

func TestRecordPaymentUnknownPlan(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/installments/99/payments", map[string]any{"amount": "100"})
	assert.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
}

func TestCancelPlan(t *testing.T) {
	router, products := newTestRouter(t)
	prod := seedProduct(t, products, 5)

	created := doJSON(t, router, http.MethodPost, "/api/installments", planBody(prod.ID, 3, 10, "200"))
	require.Equal(t, http.StatusCreated, created.Code)
	var plan dto.InstallmentPlanDetailResponse
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &plan))

	w := doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/installments/%d/cancel", plan.ID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var cancelled dto.InstallmentPlanResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cancelled))
	assert.Equal(t, "cancelled", string(cancelled.Status))

	// cancelling twice conflicts
	again := doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/installments/%d/cancel", plan.ID), nil)
	assert.Equal(t, http.StatusConflict, again.Code)
}

func TestReconcileEndpoint(t *testing.T) {
	router, products := newTestRouter(t)
	prod := seedProduct(t, products, 5)

	// start date in the past so the first installment is already due
	body := planBody(prod.ID, 3, 10, "200")
	body["start_date"] = time.Now().AddDate(0, -2, 0).Format(time.RFC3339)
	created := doJSON(t, router, http.MethodPost, "/api/installments", body)
	require.Equal(t, http.StatusCreated, created.Code)

	w := doJSON(t, router, http.MethodPost, "/api/payments/reconcile", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.ReconcileResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Transitioned)

	// the persisted status now reads overdue
	list := doJSON(t, router, http.MethodGet, "/api/installments?status=overdue", nil)
	require.Equal(t, http.StatusOK, list.Code)
	var listResp dto.InstallmentPlanListResponse
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &listResp))
	require.Len(t, listResp.Items, 1)
}
