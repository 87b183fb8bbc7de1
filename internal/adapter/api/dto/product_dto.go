package dto

import (
	"time"

	"github.com/dukkanlabs/dukkan-erp/internal/domain/product"
	"github.com/shopspring/decimal"
)

// ProductRequest creates or updates a product
type ProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	NameLatin   string          `json:"name_latin"`
	Barcode     string          `json:"barcode"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Cost        decimal.Decimal `json:"cost"`
	Quantity    int             `json:"quantity"`
	MinQuantity int             `json:"min_quantity"`
}

// StockAdjustmentRequest moves the quantity on hand by a signed delta
type StockAdjustmentRequest struct {
	Delta int    `json:"delta" binding:"required"`
	Notes string `json:"notes"`
}

// ProductResponse is the API representation of a product
type ProductResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	NameLatin   string          `json:"name_latin"`
	Barcode     string          `json:"barcode"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
	Quantity    int             `json:"quantity"`
	MinQuantity int             `json:"min_quantity"`
	LowStock    bool            `json:"low_stock"`
	Status      product.Status  `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse is a paginated list of products
type ProductListResponse struct {
	Items      []ProductResponse `json:"items"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	Size       int               `json:"size"`
	TotalPages int               `json:"total_pages"`
}

// ToProductResponse converts a product to the API representation
func ToProductResponse(p *product.Product) *ProductResponse {
	return &ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		NameLatin:   p.NameLatin,
		Barcode:     p.Barcode,
		Price:       p.Price,
		Cost:        p.Cost,
		Quantity:    p.Quantity,
		MinQuantity: p.MinQuantity,
		LowStock:    p.IsLowStock(),
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
