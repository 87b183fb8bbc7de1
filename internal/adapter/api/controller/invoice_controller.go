package controller

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/dukkanlabs/dukkan-erp/internal/adapter/api/dto"
	invoicedomain "github.com/dukkanlabs/dukkan-erp/internal/domain/invoice"
	productdomain "github.com/dukkanlabs/dukkan-erp/internal/domain/product"
	"github.com/dukkanlabs/dukkan-erp/pkg/logger"
	"github.com/gin-gonic/gin"
)

// InvoiceController handles direct (cash and card) sales
type InvoiceController struct {
	invoiceRepo invoicedomain.Repository
	productRepo productdomain.Repository
	logger      logger.Logger
}

// NewInvoiceController creates a new InvoiceController
func NewInvoiceController(invoiceRepo invoicedomain.Repository, productRepo productdomain.Repository, logger logger.Logger) *InvoiceController {
	return &InvoiceController{
		invoiceRepo: invoiceRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// buildInvoiceItems resolves request lines against the product catalog.
// Name and unit price are copied from the product at sale time unless the
// caller overrides the price.
func buildInvoiceItems(ctx context.Context, productRepo productdomain.Repository, reqItems []dto.InvoiceItemRequest) ([]invoicedomain.Item, error) {
	items := make([]invoicedomain.Item, len(reqItems))
	for i, line := range reqItems {
		prod, err := productRepo.FindByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}

		price := prod.Price
		if line.UnitPrice != nil {
			price = *line.UnitPrice
		}

		items[i] = invoicedomain.Item{
			ProductID: prod.ID,
			Name:      prod.Name,
			Quantity:  line.Quantity,
			UnitPrice: price,
		}
	}
	return items, nil
}

// Create creates a cash or card sale, decrementing stock atomically
// @Summary Create invoice
// @Tags invoices
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param invoice body dto.InvoiceRequest true "Invoice data"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /invoices [post]
func (c *InvoiceController) Create(ctx *gin.Context) {
	var req dto.InvoiceRequest
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

	inv, err := invoicedomain.NewInvoice(req.CustomerID, items, req.Discount, req.Tax, req.PaymentMethod)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "failed to create invoice", err.Error()))
		return
	}
	inv.Notes = req.Notes

	if err := c.invoiceRepo.Create(ctx, inv); err != nil {
		switch {
		case errors.Is(err, productdomain.ErrProductNotFound):
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "product not found", ""))
		case errors.Is(err, productdomain.ErrInsufficientStock):
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "insufficient stock", err.Error()))
		default:
			c.logger.Error("failed to create invoice", "error", err)
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to create invoice", err.Error()))
		}
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToInvoiceResponse(inv))
}

// Get returns an invoice by id
// @Summary Get invoice
// @Tags invoices
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path int true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /invoices/{id} [get]
func (c *InvoiceController) Get(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid invoice id", err.Error()))
		return
	}

	inv, err := c.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, invoicedomain.ErrInvoiceNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "invoice not found", ""))
			return
		}
		c.logger.Error("failed to find invoice", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to find invoice", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInvoiceResponse(inv))
}

// List lists invoices with pagination, optionally filtered by customer
// @Summary List invoices
// @Tags invoices
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param page query int false "Page"
// @Param size query int false "Page size"
// @Param customer_id query int false "Filter by customer"
// @Success 200 {object} dto.InvoiceListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /invoices [get]
func (c *InvoiceController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "10"))
	pagination := dto.GetPagination(page, size)

	var (
		invoices []*invoicedomain.Invoice
		err      error
	)
	if raw := ctx.Query("customer_id"); raw != "" {
		customerID, parseErr := strconv.ParseInt(raw, 10, 64)
		if parseErr != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid customer id", parseErr.Error()))
			return
		}
		invoices, err = c.invoiceRepo.ListByCustomer(ctx, customerID, pagination.Size, pagination.Offset())
	} else {
		invoices, err = c.invoiceRepo.List(ctx, pagination.Size, pagination.Offset())
	}
	if err != nil {
		c.logger.Error("failed to list invoices", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to list invoices", err.Error()))
		return
	}

	total, err := c.invoiceRepo.Count(ctx)
	if err != nil {
		c.logger.Error("failed to count invoices", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to count invoices", err.Error()))
		return
	}

	items := make([]dto.InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		items[i] = *dto.ToInvoiceResponse(inv)
	}

	ctx.JSON(http.StatusOK, dto.InvoiceListResponse{
		Items:      items,
		Total:      total,
		Page:       pagination.Page,
		Size:       pagination.Size,
		TotalPages: pagination.TotalPages(total),
	})
}
