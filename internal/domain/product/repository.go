package product

import (
	"context"
	"errors"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrDuplicateBarcode = errors.New("a product with the same barcode already exists")
)

// Repository defines the storage operations for products
type Repository interface {
	// Create persists a new product and assigns its id
	Create(ctx context.Context, p *Product) error

	// FindByID returns a product by its id
	FindByID(ctx context.Context, id int64) (*Product, error)

	// FindByBarcode returns a product by its barcode
	FindByBarcode(ctx context.Context, barcode string) (*Product, error)

	// List lists products ordered by name
	List(ctx context.Context, limit, offset int) ([]*Product, error)

	// ListLowStock lists products at or below their minimum quantity
	ListLowStock(ctx context.Context, limit, offset int) ([]*Product, error)

	// Count counts all products
	Count(ctx context.Context) (int, error)

	// Update updates an existing product
	Update(ctx context.Context, p *Product) error

	// AdjustStock changes the quantity on hand by delta (negative to
	// remove), failing when stock would go negative
	AdjustStock(ctx context.Context, id int64, delta int) error

	// Delete removes a product
	Delete(ctx context.Context, id int64) error
}
