package dto

import (
	"time"

	"github.com/dukkanlabs/dukkan-erp/internal/domain/invoice"
	"github.com/shopspring/decimal"
)

// InvoiceItemRequest is a single line of a sale. The unit price is looked
// up from the product unless the caller overrides it.
type InvoiceItemRequest struct {
	ProductID int64            `json:"product_id" binding:"required"`
	Quantity  int              `json:"quantity" binding:"required,min=1"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// InvoiceRequest creates a cash or card sale
type InvoiceRequest struct {
	CustomerID    int64                 `json:"customer_id"`
	Items         []InvoiceItemRequest  `json:"items" binding:"required,min=1,dive"`
	Discount      decimal.Decimal       `json:"discount"`
	Tax           decimal.Decimal       `json:"tax"`
	PaymentMethod invoice.PaymentMethod `json:"payment_method" binding:"required,oneof=cash card"`
	Notes         string                `json:"notes"`
}

// InvoiceItemResponse is the API representation of an invoice line
type InvoiceItemResponse struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// InvoiceResponse is the API representation of an invoice
type InvoiceResponse struct {
	ID            int64                 `json:"id"`
	InvoiceNumber string                `json:"invoice_number"`
	CustomerID    int64                 `json:"customer_id"`
	Items         []InvoiceItemResponse `json:"items"`
	Subtotal      decimal.Decimal       `json:"subtotal"`
	Discount      decimal.Decimal       `json:"discount"`
	Tax           decimal.Decimal       `json:"tax"`
	Total         decimal.Decimal       `json:"total"`
	PaymentMethod invoice.PaymentMethod `json:"payment_method"`
	Status        invoice.Status        `json:"status"`
	Notes         string                `json:"notes"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// InvoiceListResponse is a paginated list of invoices
type InvoiceListResponse struct {
	Items      []InvoiceResponse `json:"items"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	Size       int               `json:"size"`
	TotalPages int               `json:"total_pages"`
}

// ToInvoiceResponse converts an invoice to the API representation
func ToInvoiceResponse(inv *invoice.Invoice) *InvoiceResponse {
	items := make([]InvoiceItemResponse, len(inv.Items))
	for i, item := range inv.Items {
		items[i] = InvoiceItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Total:     item.Total,
		}
	}

	return &InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		CustomerID:    inv.CustomerID,
		Items:         items,
		Subtotal:      inv.Subtotal,
		Discount:      inv.Discount,
		Tax:           inv.Tax,
		Total:         inv.Total,
		PaymentMethod: inv.PaymentMethod,
		Status:        inv.Status,
		Notes:         inv.Notes,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}
