package invoice

import (
	"context"
	"errors"
)

var ErrInvoiceNotFound = errors.New("invoice not found")

// Repository defines the storage operations for invoices
type Repository interface {
	// Create persists a new invoice and assigns its id
	Create(ctx context.Context, inv *Invoice) error

	// FindByID returns an invoice by its id
	FindByID(ctx context.Context, id int64) (*Invoice, error)

	// List lists invoices, newest first
	List(ctx context.Context, limit, offset int) ([]*Invoice, error)

	// ListByCustomer lists a customer's invoices, newest first
	ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]*Invoice, error)

	// Count counts all invoices
	Count(ctx context.Context) (int, error)

	// UpdateStatus updates the status of an invoice
	UpdateStatus(ctx context.Context, id int64, status Status) error
}
