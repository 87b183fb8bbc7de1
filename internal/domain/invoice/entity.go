package invoice

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNoItems         = errors.New("invoice must have at least one item")
	ErrInvalidQuantity = errors.New("item quantity must be positive")
	ErrNegativeAmount  = errors.New("amount cannot be negative")
)

// Status represents the payment state of an invoice
type Status string

const (
	StatusPaid      Status = "paid"
	StatusPartial   Status = "partial"
	StatusPending   Status = "pending"
	StatusCancelled Status = "cancelled"
)

// PaymentMethod defines how an invoice is settled
type PaymentMethod string

const (
	PaymentMethodCash        PaymentMethod = "cash"
	PaymentMethodCard        PaymentMethod = "card"
	PaymentMethodInstallment PaymentMethod = "installment"
)

// Item represents a single line of an invoice. The product name and unit
// price are copied in at sale time so later product edits do not rewrite
// issued invoices.
type Item struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// Invoice represents a sales invoice
type Invoice struct {
	ID            int64           `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	CustomerID    int64           `json:"customer_id"`
	Items         []Item          `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	Status        Status          `json:"status"`
	Notes         string          `json:"notes"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// NewInvoice creates an invoice from its line items. Line and invoice
// totals are always recomputed here, never trusted from the caller.
func NewInvoice(customerID int64, items []Item, discount, tax decimal.Decimal, method PaymentMethod) (*Invoice, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	if discount.IsNegative() || tax.IsNegative() {
		return nil, ErrNegativeAmount
	}

	subtotal := decimal.Zero
	for i := range items {
		if items[i].Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		if items[i].UnitPrice.IsNegative() {
			return nil, ErrNegativeAmount
		}
		items[i].Total = items[i].UnitPrice.Mul(decimal.NewFromInt(int64(items[i].Quantity)))
		subtotal = subtotal.Add(items[i].Total)
	}

	total := subtotal.Sub(discount).Add(tax)
	if total.IsNegative() {
		return nil, ErrNegativeAmount
	}

	status := StatusPaid
	if method == PaymentMethodInstallment {
		status = StatusPartial
	}

	now := time.Now()
	return &Invoice{
		InvoiceNumber: newInvoiceNumber(now),
		CustomerID:    customerID,
		Items:         items,
		Subtotal:      subtotal,
		Discount:      discount,
		Tax:           tax,
		Total:         total,
		PaymentMethod: method,
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// MarkPaid marks the invoice as fully settled
func (i *Invoice) MarkPaid() {
	i.Status = StatusPaid
	i.UpdatedAt = time.Now()
}

// Cancel marks the invoice as cancelled
func (i *Invoice) Cancel() {
	i.Status = StatusCancelled
	i.UpdatedAt = time.Now()
}

// newInvoiceNumber builds a human-readable invoice number. Uniqueness is
// guaranteed by the id, the number is for printing only.
func newInvoiceNumber(t time.Time) string {
	return fmt.Sprintf("INV-%s", t.Format("20060102-150405.000"))
}
