package controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dukkanlabs/dukkan-erp/internal/adapter/api/dto"
	installmentdomain "github.com/dukkanlabs/dukkan-erp/internal/domain/installment"
	"github.com/dukkanlabs/dukkan-erp/pkg/logger"
	"github.com/dukkanlabs/dukkan-erp/pkg/reports"
	"github.com/gin-gonic/gin"
)

// ReportController renders spreadsheet exports
type ReportController struct {
	installmentRepo installmentdomain.Repository
	logger          logger.Logger
}

// NewReportController creates a new ReportController
func NewReportController(installmentRepo installmentdomain.Repository, logger logger.Logger) *ReportController {
	return &ReportController{
		installmentRepo: installmentRepo,
		logger:          logger,
	}
}

// InstallmentBook streams the full installment book as an xlsx workbook
// @Summary Export installment book
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param Authorization header string true "Bearer token"
// @Success 200 {file} file
// @Failure 500 {object} dto.ErrorResponse
// @Router /reports/installments [get]
func (c *ReportController) InstallmentBook(ctx *gin.Context) {
	total, err := c.installmentRepo.CountPlans(ctx)
	if err != nil {
		c.logger.Error("failed to count installment plans", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to count installment plans", err.Error()))
		return
	}
	if total == 0 {
		total = 1 // keep the limit positive for an empty book
	}

	plans, err := c.installmentRepo.ListPlans(ctx, total, 0)
	if err != nil {
		c.logger.Error("failed to list installment plans", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to list installment plans", err.Error()))
		return
	}

	paymentsByPlan := make(map[int64][]*installmentdomain.Payment, len(plans))
	for _, plan := range plans {
		payments, err := c.installmentRepo.ListPaymentsByPlan(ctx, plan.ID)
		if err != nil {
			c.logger.Error("failed to list plan payments", "error", err)
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to list plan payments", err.Error()))
			return
		}
		paymentsByPlan[plan.ID] = payments
	}

	name := fmt.Sprintf("installments-%s.xlsx", time.Now().Format("20060102-150405"))
	ctx.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))

	if err := reports.WriteInstallmentBook(ctx.Writer, plans, paymentsByPlan, time.Now()); err != nil {
		c.logger.Error("failed to render installment book", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to render installment book", err.Error()))
		return
	}
}
