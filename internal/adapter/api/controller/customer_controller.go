package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dukkanlabs/dukkan-erp/internal/adapter/api/dto"
	customerdomain "github.com/dukkanlabs/dukkan-erp/internal/domain/customer"
	"github.com/dukkanlabs/dukkan-erp/pkg/logger"
	"github.com/gin-gonic/gin"
)

// CustomerController handles customer requests
type CustomerController struct {
	customerRepo customerdomain.Repository
	logger       logger.Logger
}

// NewCustomerController creates a new CustomerController
func NewCustomerController(customerRepo customerdomain.Repository, logger logger.Logger) *CustomerController {
	return &CustomerController{
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// Create creates a new customer
// @Summary Create customer
// @Tags customers
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param customer body dto.CustomerRequest true "Customer data"
// @Success 201 {object} dto.CustomerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /customers [post]
func (c *CustomerController) Create(ctx *gin.Context) {
	var req dto.CustomerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid request body", err.Error()))
		return
	}

	cust, err := customerdomain.NewCustomer(req.Name, req.Phone)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "failed to create customer", err.Error()))
		return
	}

	if err := cust.Update(req.Name, req.NameLatin, req.Phone, req.Email, req.Address, req.IdentityNumber, req.Notes); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "failed to create customer", err.Error()))
		return
	}

	if err := c.customerRepo.Create(ctx, cust); err != nil {
		c.logger.Error("failed to create customer", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to create customer", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCustomerResponse(cust))
}

// Get returns a customer by id
// @Summary Get customer
// @Tags customers
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path int true "Customer ID"
// @Success 200 {object} dto.CustomerResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /customers/{id} [get]
func (c *CustomerController) Get(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid customer id", err.Error()))
		return
	}

	cust, err := c.customerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, customerdomain.ErrCustomerNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "customer not found", ""))
			return
		}
		c.logger.Error("failed to find customer", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to find customer", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCustomerResponse(cust))
}

// List lists customers with pagination. A search query filters by name or
// phone.
// @Summary List customers
// @Tags customers
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param page query int false "Page"
// @Param size query int false "Page size"
// @Param q query string false "Search by name or phone"
// @Success 200 {object} dto.CustomerListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /customers [get]
func (c *CustomerController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "10"))
	pagination := dto.GetPagination(page, size)

	var (
		customers []*customerdomain.Customer
		err       error
	)
	if query := ctx.Query("q"); query != "" {
		customers, err = c.customerRepo.Search(ctx, query, pagination.Size, pagination.Offset())
	} else {
		customers, err = c.customerRepo.List(ctx, pagination.Size, pagination.Offset())
	}
	if err != nil {
		c.logger.Error("failed to list customers", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to list customers", err.Error()))
		return
	}

	total, err := c.customerRepo.Count(ctx)
	if err != nil {
		c.logger.Error("failed to count customers", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to count customers", err.Error()))
		return
	}

	items := make([]dto.CustomerResponse, len(customers))
	for i, cust := range customers {
		items[i] = *dto.ToCustomerResponse(cust)
	}

	ctx.JSON(http.StatusOK, dto.CustomerListResponse{
		Items:      items,
		Total:      total,
		Page:       pagination.Page,
		Size:       pagination.Size,
		TotalPages: pagination.TotalPages(total),
	})
}

// Update updates a customer
// @Summary Update customer
// @Tags customers
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path int true "Customer ID"
// @Param customer body dto.CustomerRequest true "Customer data"
// @Success 200 {object} dto.CustomerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /customers/{id} [put]
func (c *CustomerController) Update(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid customer id", err.Error()))
		return
	}

	var req dto.CustomerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid request body", err.Error()))
		return
	}

	cust, err := c.customerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, customerdomain.ErrCustomerNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "customer not found", ""))
			return
		}
		c.logger.Error("failed to find customer", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to find customer", err.Error()))
		return
	}

	if err := cust.Update(req.Name, req.NameLatin, req.Phone, req.Email, req.Address, req.IdentityNumber, req.Notes); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "failed to update customer", err.Error()))
		return
	}

	if err := c.customerRepo.Update(ctx, cust); err != nil {
		c.logger.Error("failed to update customer", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to update customer", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCustomerResponse(cust))
}

// UpdateStatus activates or deactivates a customer
// @Summary Update customer status
// @Tags customers
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path int true "Customer ID"
// @Param status body dto.CustomerStatusRequest true "New status"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /customers/{id}/status [patch]
func (c *CustomerController) UpdateStatus(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid customer id", err.Error()))
		return
	}

	var req dto.CustomerStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid request body", err.Error()))
		return
	}

	if err := c.customerRepo.UpdateStatus(ctx, id, req.Status); err != nil {
		if errors.Is(err, customerdomain.ErrCustomerNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "customer not found", ""))
			return
		}
		c.logger.Error("failed to update customer status", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to update customer status", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("customer status updated", nil))
}

// Delete removes a customer
// @Summary Delete customer
// @Tags customers
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path int true "Customer ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /customers/{id} [delete]
func (c *CustomerController) Delete(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid customer id", err.Error()))
		return
	}

	if err := c.customerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, customerdomain.ErrCustomerNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "customer not found", ""))
			return
		}
		c.logger.Error("failed to delete customer", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to delete customer", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("customer deleted", nil))
}
