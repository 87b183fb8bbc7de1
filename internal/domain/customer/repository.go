package customer

import (
	"context"
	"errors"
)

var ErrCustomerNotFound = errors.New("customer not found")

// Repository defines the storage operations for customers
type Repository interface {
	// Create persists a new customer and assigns its id
	Create(ctx context.Context, c *Customer) error

	// FindByID returns a customer by its id
	FindByID(ctx context.Context, id int64) (*Customer, error)

	// FindByPhone returns a customer by its phone number
	FindByPhone(ctx context.Context, phone string) (*Customer, error)

	// Search lists customers whose name or phone contains the query
	Search(ctx context.Context, query string, limit, offset int) ([]*Customer, error)

	// List lists customers ordered by name
	List(ctx context.Context, limit, offset int) ([]*Customer, error)

	// Count counts all customers
	Count(ctx context.Context) (int, error)

	// Update updates an existing customer
	Update(ctx context.Context, c *Customer) error

	// UpdateStatus updates the status of a customer
	UpdateStatus(ctx context.Context, id int64, status Status) error

	// Delete removes a customer
	Delete(ctx context.Context, id int64) error
}
