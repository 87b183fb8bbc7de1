// Package postgres implements the domain repositories over PostgreSQL
// using pgx. Composite installment operations run inside a single
// transaction.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dukkanlabs/dukkan-erp/internal/domain/customer"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CustomerRepository implements customer.Repository
type CustomerRepository struct {
	db *pgxpool.Pool
}

// NewCustomerRepository creates a new CustomerRepository
func NewCustomerRepository(db *pgxpool.Pool) customer.Repository {
	return &CustomerRepository{db: db}
}

const customerColumns = `id, name, name_latin, phone, email, address, identity_number, notes, status, created_at, updated_at`

// Create implements customer.Repository.Create
func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO customers (
			name, name_latin, phone, email, address, identity_number,
			notes, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		c.Name, c.NameLatin, c.Phone, c.Email, c.Address, c.IdentityNumber,
		c.Notes, c.Status, c.CreatedAt, c.UpdatedAt).Scan(&c.ID)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return fmt.Errorf("customer with the same phone already exists: %w", err)
		}
		return fmt.Errorf("failed to create customer: %w", err)
	}

	return nil
}

// FindByID implements customer.Repository.FindByID
func (r *CustomerRepository) FindByID(ctx context.Context, id int64) (*customer.Customer, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)

	c, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, customer.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}
	return c, nil
}

// FindByPhone implements customer.Repository.FindByPhone
func (r *CustomerRepository) FindByPhone(ctx context.Context, phone string) (*customer.Customer, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE phone = $1`, phone)

	c, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, customer.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}
	return c, nil
}

// Search implements customer.Repository.Search
func (r *CustomerRepository) Search(ctx context.Context, query string, limit, offset int) ([]*customer.Customer, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+customerColumns+`
		FROM customers
		WHERE name ILIKE $1 OR name_latin ILIKE $1 OR phone LIKE $1
		ORDER BY name ASC
		LIMIT $2 OFFSET $3`,
		"%"+query+"%", limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to search customers: %w", err)
	}
	defer rows.Close()

	return scanCustomerRows(rows)
}

// List implements customer.Repository.List
func (r *CustomerRepository) List(ctx context.Context, limit, offset int) ([]*customer.Customer, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+customerColumns+`
		FROM customers
		ORDER BY name ASC
		LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	return scanCustomerRows(rows)
}

// Count implements customer.Repository.Count
func (r *CustomerRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM customers").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count customers: %w", err)
	}
	return count, nil
}

// Update implements customer.Repository.Update
func (r *CustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	result, err := r.db.Exec(ctx,
		`UPDATE customers SET
			name = $1, name_latin = $2, phone = $3, email = $4, address = $5,
			identity_number = $6, notes = $7, status = $8, updated_at = $9
		WHERE id = $10`,
		c.Name, c.NameLatin, c.Phone, c.Email, c.Address,
		c.IdentityNumber, c.Notes, c.Status, c.UpdatedAt, c.ID)

	if err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}
	if result.RowsAffected() == 0 {
		return customer.ErrCustomerNotFound
	}
	return nil
}

// UpdateStatus implements customer.Repository.UpdateStatus
func (r *CustomerRepository) UpdateStatus(ctx context.Context, id int64, status customer.Status) error {
	result, err := r.db.Exec(ctx,
		"UPDATE customers SET status = $1, updated_at = $2 WHERE id = $3",
		status, time.Now(), id)

	if err != nil {
		return fmt.Errorf("failed to update customer status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return customer.ErrCustomerNotFound
	}
	return nil
}

// Delete implements customer.Repository.Delete
func (r *CustomerRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, "DELETE FROM customers WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	if result.RowsAffected() == 0 {
		return customer.ErrCustomerNotFound
	}
	return nil
}

func scanCustomer(row pgx.Row) (*customer.Customer, error) {
	var c customer.Customer
	err := row.Scan(
		&c.ID, &c.Name, &c.NameLatin, &c.Phone, &c.Email, &c.Address,
		&c.IdentityNumber, &c.Notes, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func scanCustomerRows(rows pgx.Rows) ([]*customer.Customer, error) {
	customers := make([]*customer.Customer, 0)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read customers: %w", err)
	}
	return customers, nil
}
