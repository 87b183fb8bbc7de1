package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dukkanlabs/dukkan-erp/internal/domain/product"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProductRepository implements product.Repository
type ProductRepository struct {
	db *pgxpool.Pool
}

// NewProductRepository creates a new ProductRepository
func NewProductRepository(db *pgxpool.Pool) product.Repository {
	return &ProductRepository{db: db}
}

const productColumns = `id, name, name_latin, barcode, price, cost, quantity, min_quantity, status, created_at, updated_at`

// Create implements product.Repository.Create
func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO products (
			name, name_latin, barcode, price, cost, quantity, min_quantity,
			status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		p.Name, p.NameLatin, p.Barcode, p.Price, p.Cost, p.Quantity,
		p.MinQuantity, p.Status, p.CreatedAt, p.UpdatedAt).Scan(&p.ID)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return product.ErrDuplicateBarcode
		}
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// FindByID implements product.Repository.FindByID
func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*product.Product, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, product.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return p, nil
}

// FindByBarcode implements product.Repository.FindByBarcode
func (r *ProductRepository) FindByBarcode(ctx context.Context, barcode string) (*product.Product, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE barcode = $1`, barcode)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, product.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return p, nil
}

// List implements product.Repository.List
func (r *ProductRepository) List(ctx context.Context, limit, offset int) ([]*product.Product, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+productColumns+`
		FROM products
		ORDER BY name ASC
		LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	return scanProductRows(rows)
}

// ListLowStock implements product.Repository.ListLowStock
func (r *ProductRepository) ListLowStock(ctx context.Context, limit, offset int) ([]*product.Product, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+productColumns+`
		FROM products
		WHERE quantity <= min_quantity
		ORDER BY name ASC
		LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list low stock products: %w", err)
	}
	defer rows.Close()

	return scanProductRows(rows)
}

// Count implements product.Repository.Count
func (r *ProductRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// Update implements product.Repository.Update
func (r *ProductRepository) Update(ctx context.Context, p *product.Product) error {
	result, err := r.db.Exec(ctx,
		`UPDATE products SET
			name = $1, name_latin = $2, barcode = $3, price = $4, cost = $5,
			quantity = $6, min_quantity = $7, status = $8, updated_at = $9
		WHERE id = $10`,
		p.Name, p.NameLatin, p.Barcode, p.Price, p.Cost,
		p.Quantity, p.MinQuantity, p.Status, p.UpdatedAt, p.ID)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return product.ErrDuplicateBarcode
		}
		return fmt.Errorf("failed to update product: %w", err)
	}
	if result.RowsAffected() == 0 {
		return product.ErrProductNotFound
	}
	return nil
}

// AdjustStock implements product.Repository.AdjustStock
func (r *ProductRepository) AdjustStock(ctx context.Context, id int64, delta int) error {
	result, err := r.db.Exec(ctx,
		`UPDATE products SET quantity = quantity + $1, updated_at = NOW()
		WHERE id = $2 AND quantity + $1 >= 0`,
		delta, id)

	if err != nil {
		return fmt.Errorf("failed to adjust stock: %w", err)
	}
	if result.RowsAffected() == 0 {
		// either the product is missing or the adjustment would go negative
		exists, err := r.exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return product.ErrProductNotFound
		}
		return product.ErrInsufficientStock
	}
	return nil
}

// Delete implements product.Repository.Delete
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if result.RowsAffected() == 0 {
		return product.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check product existence: %w", err)
	}
	return exists, nil
}

func scanProduct(row pgx.Row) (*product.Product, error) {
	var p product.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.NameLatin, &p.Barcode, &p.Price, &p.Cost,
		&p.Quantity, &p.MinQuantity, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanProductRows(rows pgx.Rows) ([]*product.Product, error) {
	products := make([]*product.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read products: %w", err)
	}
	return products, nil
}
