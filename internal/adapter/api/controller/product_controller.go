package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dukkanlabs/dukkan-erp/internal/adapter/api/dto"
	productdomain "github.com/dukkanlabs/dukkan-erp/internal/domain/product"
	"github.com/dukkanlabs/dukkan-erp/pkg/logger"
	"github.com/gin-gonic/gin"
)

// ProductController handles product and stock requests
type ProductController struct {
	productRepo productdomain.Repository
	logger      logger.Logger
}

// NewProductController creates a new ProductController
func NewProductController(productRepo productdomain.Repository, logger logger.Logger) *ProductController {
	return &ProductController{
		productRepo: productRepo,
		logger:      logger,
	}
}

// Create creates a new product
// @Summary Create product
// @Tags products
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param product body dto.ProductRequest true "Product data"
// @Success 201 {object} dto.ProductResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /products [post]
func (c *ProductController) Create(ctx *gin.Context) {
	var req dto.ProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid request body", err.Error()))
		return
	}

	prod, err := productdomain.NewProduct(req.Name, req.Barcode, req.Price, req.Cost, req.Quantity, req.MinQuantity)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "failed to create product", err.Error()))
		return
	}
	prod.NameLatin = req.NameLatin

	if err := c.productRepo.Create(ctx, prod); err != nil {
		if errors.Is(err, productdomain.ErrDuplicateBarcode) {
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "barcode already in use", ""))
			return
		}
		c.logger.Error("failed to create product", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to create product", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToProductResponse(prod))
}

// Get returns a product by id
// @Summary Get product
// @Tags products
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path int true "Product ID"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /products/{id} [get]
func (c *ProductController) Get(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid product id", err.Error()))
		return
	}

	prod, err := c.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, productdomain.ErrProductNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "product not found", ""))
			return
		}
		c.logger.Error("failed to find product", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to find product", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProductResponse(prod))
}

// GetByBarcode returns a product by barcode, used by the sale screen scanner
// @Summary Get product by barcode
// @Tags products
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param barcode path string true "Barcode"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /products/barcode/{barcode} [get]
func (c *ProductController) GetByBarcode(ctx *gin.Context) {
	barcode := ctx.Param("barcode")

	prod, err := c.productRepo.FindByBarcode(ctx, barcode)
	if err != nil {
		if errors.Is(err, productdomain.ErrProductNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "product not found", ""))
			return
		}
		c.logger.Error("failed to find product by barcode", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to find product", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProductResponse(prod))
}

// List lists products with pagination. low_stock=true filters to products
// at or below their minimum quantity.
// @Summary List products
// @Tags products
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param page query int false "Page"
// @Param size query int false "Page size"
// @Param low_stock query bool false "Only low stock products"
// @Success 200 {object} dto.ProductListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /products [get]
func (c *ProductController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "10"))
	pagination := dto.GetPagination(page, size)

	var (
		products []*productdomain.Product
		err      error
	)
	if ctx.Query("low_stock") == "true" {
		products, err = c.productRepo.ListLowStock(ctx, pagination.Size, pagination.Offset())
	} else {
		products, err = c.productRepo.List(ctx, pagination.Size, pagination.Offset())
	}
	if err != nil {
		c.logger.Error("failed to list products", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to list products", err.Error()))
		return
	}

	total, err := c.productRepo.Count(ctx)
	if err != nil {
		c.logger.Error("failed to count products", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to count products", err.Error()))
		return
	}

	items := make([]dto.ProductResponse, len(products))
	for i, prod := range products {
		items[i] = *dto.ToProductResponse(prod)
	}

	ctx.JSON(http.StatusOK, dto.ProductListResponse{
		Items:      items,
		Total:      total,
		Page:       pagination.Page,
		Size:       pagination.Size,
		TotalPages: pagination.TotalPages(total),
	})
}

// Update updates a product
// @Summary Update product
// @Tags products
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path int true "Product ID"
// @Param product body dto.ProductRequest true "Product data"
// @Success 200 {object} dto.ProductResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /products/{id} [put]
func (c *ProductController) Update(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid product id", err.Error()))
		return
	}

	var req dto.ProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid request body", err.Error()))
		return
	}

	prod, err := c.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, productdomain.ErrProductNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "product not found", ""))
			return
		}
		c.logger.Error("failed to find product", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to find product", err.Error()))
		return
	}

	if err := prod.Update(req.Name, req.NameLatin, req.Barcode, req.Price, req.Cost, req.Quantity, req.MinQuantity); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "failed to update product", err.Error()))
		return
	}

	if err := c.productRepo.Update(ctx, prod); err != nil {
		if errors.Is(err, productdomain.ErrDuplicateBarcode) {
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "barcode already in use", ""))
			return
		}
		c.logger.Error("failed to update product", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to update product", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProductResponse(prod))
}

// AdjustStock moves the quantity on hand by a signed delta
// @Summary Adjust product stock
// @Tags products
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path int true "Product ID"
// @Param adjustment body dto.StockAdjustmentRequest true "Stock delta"
// @Success 200 {object} dto.ProductResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /products/{id}/stock [patch]
func (c *ProductController) AdjustStock(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid product id", err.Error()))
		return
	}

	var req dto.StockAdjustmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid request body", err.Error()))
		return
	}

	if err := c.productRepo.AdjustStock(ctx, id, req.Delta); err != nil {
		switch {
		case errors.Is(err, productdomain.ErrProductNotFound):
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "product not found", ""))
		case errors.Is(err, productdomain.ErrInsufficientStock):
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "insufficient stock", err.Error()))
		default:
			c.logger.Error("failed to adjust stock", "error", err)
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to adjust stock", err.Error()))
		}
		return
	}

	prod, err := c.productRepo.FindByID(ctx, id)
	if err != nil {
		c.logger.Error("failed to reload product", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to reload product", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProductResponse(prod))
}

// Delete removes a product
// @Summary Delete product
// @Tags products
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path int true "Product ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /products/{id} [delete]
func (c *ProductController) Delete(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid product id", err.Error()))
		return
	}

	if err := c.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, productdomain.ErrProductNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "product not found", ""))
			return
		}
		c.logger.Error("failed to delete product", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to delete product", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("product deleted", nil))
}
