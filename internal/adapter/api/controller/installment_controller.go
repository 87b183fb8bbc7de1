package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dukkanlabs/dukkan-erp/internal/adapter/api/dto"
	installmentdomain "github.com/dukkanlabs/dukkan-erp/internal/domain/installment"
	invoicedomain "github.com/dukkanlabs/dukkan-erp/internal/domain/invoice"
	productdomain "github.com/dukkanlabs/dukkan-erp/internal/domain/product"
	"github.com/dukkanlabs/dukkan-erp/pkg/logger"
	"github.com/gin-gonic/gin"
)

// InstallmentController handles installment plan and payment requests
type InstallmentController struct {
	installmentRepo installmentdomain.Repository
	productRepo     productdomain.Repository
	logger          logger.Logger
}

// NewInstallmentController creates a new InstallmentController
func NewInstallmentController(installmentRepo installmentdomain.Repository, productRepo productdomain.Repository, logger logger.Logger) *InstallmentController {
	return &InstallmentController{
		installmentRepo: installmentRepo,
		productRepo:     productRepo,
		logger:          logger,
	}
}

// Create creates an installment sale: the invoice and the plan are
// persisted as one atomic operation.
// @Summary Create installment plan
// @Tags installments
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param plan body dto.InstallmentPlanRequest true "Plan data"
// @Success 201 {object} dto.InstallmentPlanDetailResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /installments [post]
func (c *InstallmentController) Create(ctx *gin.Context) {
	var req dto.InstallmentPlanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid request body", err.Error()))
		return
	}

	items, err := buildInvoiceItems(ctx, c.productRepo, req.Items)
	if err != nil {
		if errors.Is(err, productdomain.ErrProductNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "product not found", ""))
			return
		}
		c.logger.Error("failed to resolve invoice items", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to resolve invoice items", err.Error()))
		return
	}

	inv, err := invoicedomain.NewInvoice(req.CustomerID, items, req.Discount, req.Tax, invoicedomain.PaymentMethodInstallment)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "failed to create invoice", err.Error()))
		return
	}
	inv.Notes = req.Notes

	plan, err := installmentdomain.NewPlan(
		0, // invoice id is assigned when both records are persisted
		req.CustomerName,
		req.CustomerPhone,
		req.IdentityNumber,
		inv.Total,
		req.DownPayment,
		req.NumberOfInstallments,
		req.StartDate,
	)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "failed to create installment plan", err.Error()))
		return
	}
	plan.GuarantorName = req.GuarantorName
	plan.GuarantorPhone = req.GuarantorPhone
	plan.Notes = req.Notes

	if err := c.installmentRepo.CreatePlanWithInvoice(ctx, inv, plan); err != nil {
		switch {
		case errors.Is(err, productdomain.ErrProductNotFound):
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "product not found", ""))
		case errors.Is(err, productdomain.ErrInsufficientStock):
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "insufficient stock", err.Error()))
		default:
			c.logger.Error("failed to create installment plan", "error", err)
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to create installment plan", err.Error()))
		}
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToInstallmentPlanDetailResponse(plan, nil, time.Now()))
}

// Get returns a plan with its payment history and schedule
// @Summary Get installment plan
// @Tags installments
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path int true "Plan ID"
// @Success 200 {object} dto.InstallmentPlanDetailResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /installments/{id} [get]
func (c *InstallmentController) Get(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid plan id", err.Error()))
		return
	}

	plan, err := c.installmentRepo.FindPlanByID(ctx, id)
	if err != nil {
		if errors.Is(err, installmentdomain.ErrPlanNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "installment plan not found", ""))
			return
		}
		c.logger.Error("failed to find installment plan", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to find installment plan", err.Error()))
		return
	}

	payments, err := c.installmentRepo.ListPaymentsByPlan(ctx, id)
	if err != nil {
		c.logger.Error("failed to list plan payments", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to list plan payments", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInstallmentPlanDetailResponse(plan, payments, time.Now()))
}

// List lists plans with pagination, optionally filtered by status
// @Summary List installment plans
// @Tags installments
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param page query int false "Page"
// @Param size query int false "Page size"
// @Param status query string false "Filter by status"
// @Success 200 {object} dto.InstallmentPlanListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /installments [get]
func (c *InstallmentController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "10"))
	pagination := dto.GetPagination(page, size)

	var (
		plans []*installmentdomain.Plan
		err   error
	)
	if status := ctx.Query("status"); status != "" {
		plans, err = c.installmentRepo.ListPlansByStatus(ctx, installmentdomain.Status(status), pagination.Size, pagination.Offset())
	} else {
		plans, err = c.installmentRepo.ListPlans(ctx, pagination.Size, pagination.Offset())
	}
	if err != nil {
		c.logger.Error("failed to list installment plans", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to list installment plans", err.Error()))
		return
	}

	total, err := c.installmentRepo.CountPlans(ctx)
	if err != nil {
		c.logger.Error("failed to count installment plans", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to count installment plans", err.Error()))
		return
	}

	now := time.Now()
	items := make([]dto.InstallmentPlanResponse, len(plans))
	for i, plan := range plans {
		paidCount, countErr := c.installmentRepo.CountPaymentsByPlan(ctx, plan.ID)
		if countErr != nil {
			c.logger.Error("failed to count plan payments", "error", countErr)
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to count plan payments", countErr.Error()))
			return
		}
		items[i] = *dto.ToInstallmentPlanResponse(plan, paidCount, now)
	}

	ctx.JSON(http.StatusOK, dto.InstallmentPlanListResponse{
		Items:      items,
		Total:      total,
		Page:       pagination.Page,
		Size:       pagination.Size,
		TotalPages: pagination.TotalPages(total),
	})
}

// RecordPayment records a payment against a plan, decrements the balance
// and transitions the plan status, atomically
// @Summary Record installment payment
// @Tags installments
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path int true "Plan ID"
// @Param payment body dto.InstallmentPaymentRequest true "Payment data"
// @Success 201 {object} dto.RecordPaymentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /installments/{id}/payments [post]
func (c *InstallmentController) RecordPayment(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid plan id", err.Error()))
		return
	}

	var req dto.InstallmentPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid request body", err.Error()))
		return
	}

	paymentDate := time.Now()
	if req.PaymentDate != nil {
		paymentDate = *req.PaymentDate
	}

	payment, plan, err := c.installmentRepo.RecordPayment(ctx, id, req.Amount, paymentDate, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, installmentdomain.ErrPlanNotFound):
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "installment plan not found", ""))
		case errors.Is(err, installmentdomain.ErrPlanNotPayable):
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "plan does not accept payments", err.Error()))
		case errors.Is(err, installmentdomain.ErrOverpayment):
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "payment exceeds remaining balance", err.Error()))
		case errors.Is(err, installmentdomain.ErrNegativeAmount):
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid payment amount", err.Error()))
		default:
			c.logger.Error("failed to record payment", "error", err)
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to record payment", err.Error()))
		}
		return
	}

	ctx.JSON(http.StatusCreated, dto.RecordPaymentResponse{
		Payment: *dto.ToInstallmentPaymentResponse(payment),
		Plan:    *dto.ToInstallmentPlanResponse(plan, payment.PaymentNumber, time.Now()),
	})
}

// ListPlanPayments lists a plan's payments ordered by payment number
// @Summary List plan payments
// @Tags installments
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path int true "Plan ID"
// @Success 200 {array} dto.InstallmentPaymentResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /installments/{id}/payments [get]
func (c *InstallmentController) ListPlanPayments(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid plan id", err.Error()))
		return
	}

	if _, err := c.installmentRepo.FindPlanByID(ctx, id); err != nil {
		if errors.Is(err, installmentdomain.ErrPlanNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "installment plan not found", ""))
			return
		}
		c.logger.Error("failed to find installment plan", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to find installment plan", err.Error()))
		return
	}

	payments, err := c.installmentRepo.ListPaymentsByPlan(ctx, id)
	if err != nil {
		c.logger.Error("failed to list plan payments", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to list plan payments", err.Error()))
		return
	}

	items := make([]dto.InstallmentPaymentResponse, len(payments))
	for i, payment := range payments {
		items[i] = *dto.ToInstallmentPaymentResponse(payment)
	}
	ctx.JSON(http.StatusOK, items)
}

// Cancel transitions a plan to cancelled
// @Summary Cancel installment plan
// @Tags installments
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path int true "Plan ID"
// @Success 200 {object} dto.InstallmentPlanResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /installments/{id}/cancel [post]
func (c *InstallmentController) Cancel(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid plan id", err.Error()))
		return
	}

	plan, err := c.installmentRepo.CancelPlan(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, installmentdomain.ErrPlanNotFound):
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "installment plan not found", ""))
		case errors.Is(err, installmentdomain.ErrPlanNotCancellable):
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "plan cannot be cancelled", err.Error()))
		default:
			c.logger.Error("failed to cancel installment plan", "error", err)
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to cancel installment plan", err.Error()))
		}
		return
	}

	paidCount, err := c.installmentRepo.CountPaymentsByPlan(ctx, id)
	if err != nil {
		c.logger.Error("failed to count plan payments", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to count plan payments", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInstallmentPlanResponse(plan, paidCount, time.Now()))
}

// ListPayments lists all recorded payments, newest first
// @Summary List payments
// @Tags payments
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param page query int false "Page"
// @Param size query int false "Page size"
// @Success 200 {object} dto.InstallmentPaymentListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /payments [get]
func (c *InstallmentController) ListPayments(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "10"))
	pagination := dto.GetPagination(page, size)

	payments, err := c.installmentRepo.ListPayments(ctx, pagination.Size, pagination.Offset())
	if err != nil {
		c.logger.Error("failed to list payments", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to list payments", err.Error()))
		return
	}

	items := make([]dto.InstallmentPaymentResponse, len(payments))
	for i, payment := range payments {
		items[i] = *dto.ToInstallmentPaymentResponse(payment)
	}

	ctx.JSON(http.StatusOK, dto.InstallmentPaymentListResponse{
		Items:      items,
		Total:      len(items),
		Page:       pagination.Page,
		Size:       pagination.Size,
		TotalPages: pagination.TotalPages(len(items)),
	})
}

// Reconcile persists the overdue status for every active plan whose next
// unpaid installment is past due
// @Summary Reconcile overdue plans
// @Tags payments
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} dto.ReconcileResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /payments/reconcile [post]
func (c *InstallmentController) Reconcile(ctx *gin.Context) {
	now := time.Now()
	transitioned, err := c.installmentRepo.ReconcileOverdue(ctx, now)
	if err != nil {
		c.logger.Error("failed to reconcile overdue plans", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to reconcile overdue plans", err.Error()))
		return
	}

	c.logger.Info("overdue reconciliation finished", "transitioned", transitioned)
	ctx.JSON(http.StatusOK, dto.ReconcileResponse{
		Transitioned: transitioned,
		RanAt:        now,
	})
}
