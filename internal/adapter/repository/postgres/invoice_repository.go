package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dukkanlabs/dukkan-erp/internal/domain/invoice"
	"github.com/dukkanlabs/dukkan-erp/internal/domain/product"
	"github.com/dukkanlabs/dukkan-erp/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InvoiceRepository implements invoice.Repository. Line items are stored
// as a JSONB document on the invoice row; stock adjustments happen in the
// same transaction as the insert.
type InvoiceRepository struct {
	db *pgxpool.Pool
}

// NewInvoiceRepository creates a new InvoiceRepository
func NewInvoiceRepository(db *pgxpool.Pool) invoice.Repository {
	return &InvoiceRepository{db: db}
}

const invoiceColumns = `id, invoice_number, customer_id, items, subtotal, discount, tax, total, payment_method, status, notes, created_at, updated_at`

// Create implements invoice.Repository.Create
func (r *InvoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	return database.Transaction(ctx, r.db, func(tx pgx.Tx) error {
		return insertInvoiceTx(ctx, tx, inv)
	})
}

// insertInvoiceTx inserts the invoice and decrements product stock inside
// the given transaction. The installment repository reuses it for the
// invoice+plan composite.
func insertInvoiceTx(ctx context.Context, tx pgx.Tx, inv *invoice.Invoice) error {
	for _, item := range inv.Items {
		result, err := tx.Exec(ctx,
			`UPDATE products SET quantity = quantity - $1, updated_at = NOW()
			WHERE id = $2 AND quantity >= $1`,
			item.Quantity, item.ProductID)
		if err != nil {
			return fmt.Errorf("failed to adjust stock: %w", err)
		}
		if result.RowsAffected() == 0 {
			return product.ErrInsufficientStock
		}
	}

	items, err := json.Marshal(inv.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal invoice items: %w", err)
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO invoices (
			invoice_number, customer_id, items, subtotal, discount, tax,
			total, payment_method, status, notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`,
		inv.InvoiceNumber, inv.CustomerID, items, inv.Subtotal, inv.Discount,
		inv.Tax, inv.Total, inv.PaymentMethod, inv.Status, inv.Notes,
		inv.CreatedAt, inv.UpdatedAt).Scan(&inv.ID)

	if err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}
	return nil
}

// FindByID implements invoice.Repository.FindByID
func (r *InvoiceRepository) FindByID(ctx context.Context, id int64) (*invoice.Invoice, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id)

	inv, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, invoice.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("failed to find invoice: %w", err)
	}
	return inv, nil
}

// List implements invoice.Repository.List
func (r *InvoiceRepository) List(ctx context.Context, limit, offset int) ([]*invoice.Invoice, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+invoiceColumns+`
		FROM invoices
		ORDER BY id DESC
		LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	return scanInvoiceRows(rows)
}

// ListByCustomer implements invoice.Repository.ListByCustomer
func (r *InvoiceRepository) ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]*invoice.Invoice, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+invoiceColumns+`
		FROM invoices
		WHERE customer_id = $1
		ORDER BY id DESC
		LIMIT $2 OFFSET $3`,
		customerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	return scanInvoiceRows(rows)
}

// Count implements invoice.Repository.Count
func (r *InvoiceRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM invoices").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count invoices: %w", err)
	}
	return count, nil
}

// UpdateStatus implements invoice.Repository.UpdateStatus
func (r *InvoiceRepository) UpdateStatus(ctx context.Context, id int64, status invoice.Status) error {
	result, err := r.db.Exec(ctx,
		"UPDATE invoices SET status = $1, updated_at = NOW() WHERE id = $2",
		status, id)

	if err != nil {
		return fmt.Errorf("failed to update invoice status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return invoice.ErrInvoiceNotFound
	}
	return nil
}

func scanInvoice(row pgx.Row) (*invoice.Invoice, error) {
	var inv invoice.Invoice
	var itemsJSON []byte

	err := row.Scan(
		&inv.ID, &inv.InvoiceNumber, &inv.CustomerID, &itemsJSON,
		&inv.Subtotal, &inv.Discount, &inv.Tax, &inv.Total,
		&inv.PaymentMethod, &inv.Status, &inv.Notes,
		&inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(itemsJSON, &inv.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal invoice items: %w", err)
	}
	return &inv, nil
}

func scanInvoiceRows(rows pgx.Rows) ([]*invoice.Invoice, error) {
	invoices := make([]*invoice.Invoice, 0)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read invoices: %w", err)
	}
	return invoices, nil
}
