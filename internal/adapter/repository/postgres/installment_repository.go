package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dukkanlabs/dukkan-erp/internal/domain/installment"
	"github.com/dukkanlabs/dukkan-erp/internal/domain/invoice"
	"github.com/dukkanlabs/dukkan-erp/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// InstallmentRepository implements installment.Repository. The composite
// operations lock the plan row (SELECT ... FOR UPDATE) and run every step
// inside one transaction, so the balance invariants hold under concurrent
// requests.
type InstallmentRepository struct {
	db *pgxpool.Pool
}

// NewInstallmentRepository creates a new InstallmentRepository
func NewInstallmentRepository(db *pgxpool.Pool) installment.Repository {
	return &InstallmentRepository{db: db}
}

const planColumns = `id, invoice_id, customer_name, customer_phone, identity_number,
	guarantor_name, guarantor_phone, total_amount, down_payment, remaining_amount,
	installment_amount, number_of_installments, start_date, status, notes,
	created_at, updated_at`

const paymentColumns = `id, plan_id, amount, payment_number, payment_date, status, notes, created_at`

// CreatePlanWithInvoice implements installment.Repository.CreatePlanWithInvoice
func (r *InstallmentRepository) CreatePlanWithInvoice(ctx context.Context, inv *invoice.Invoice, p *installment.Plan) error {
	return database.Transaction(ctx, r.db, func(tx pgx.Tx) error {
		if err := insertInvoiceTx(ctx, tx, inv); err != nil {
			return err
		}

		p.InvoiceID = inv.ID
		err := tx.QueryRow(ctx,
			`INSERT INTO installment_plans (
				invoice_id, customer_name, customer_phone, identity_number,
				guarantor_name, guarantor_phone, total_amount, down_payment,
				remaining_amount, installment_amount, number_of_installments,
				start_date, status, notes, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
			RETURNING id`,
			p.InvoiceID, p.CustomerName, p.CustomerPhone, p.IdentityNumber,
			p.GuarantorName, p.GuarantorPhone, p.TotalAmount, p.DownPayment,
			p.RemainingAmount, p.InstallmentAmount, p.NumberOfInstallments,
			p.StartDate, p.Status, p.Notes, p.CreatedAt, p.UpdatedAt).Scan(&p.ID)

		if err != nil {
			return fmt.Errorf("failed to create installment plan: %w", err)
		}
		return nil
	})
}

// FindPlanByID implements installment.Repository.FindPlanByID
func (r *InstallmentRepository) FindPlanByID(ctx context.Context, id int64) (*installment.Plan, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+planColumns+` FROM installment_plans WHERE id = $1`, id)

	p, err := scanPlan(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, installment.ErrPlanNotFound
		}
		return nil, fmt.Errorf("failed to find installment plan: %w", err)
	}
	return p, nil
}

// ListPlans implements installment.Repository.ListPlans
func (r *InstallmentRepository) ListPlans(ctx context.Context, limit, offset int) ([]*installment.Plan, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+planColumns+`
		FROM installment_plans
		ORDER BY id DESC
		LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list installment plans: %w", err)
	}
	defer rows.Close()

	return scanPlanRows(rows)
}

// ListPlansByStatus implements installment.Repository.ListPlansByStatus
func (r *InstallmentRepository) ListPlansByStatus(ctx context.Context, status installment.Status, limit, offset int) ([]*installment.Plan, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+planColumns+`
		FROM installment_plans
		WHERE status = $1
		ORDER BY id DESC
		LIMIT $2 OFFSET $3`,
		status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list installment plans: %w", err)
	}
	defer rows.Close()

	return scanPlanRows(rows)
}

// CountPlans implements installment.Repository.CountPlans
func (r *InstallmentRepository) CountPlans(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM installment_plans").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count installment plans: %w", err)
	}
	return count, nil
}

// RecordPayment implements installment.Repository.RecordPayment
func (r *InstallmentRepository) RecordPayment(ctx context.Context, planID int64, amount decimal.Decimal, paymentDate time.Time, notes string) (*installment.Payment, *installment.Plan, error) {
	var payment *installment.Payment
	var plan *installment.Plan

	err := database.Transaction(ctx, r.db, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx,
			`SELECT `+planColumns+` FROM installment_plans WHERE id = $1 FOR UPDATE`,
			planID)

		p, err := scanPlan(row)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return installment.ErrPlanNotFound
			}
			return fmt.Errorf("failed to lock installment plan: %w", err)
		}

		if err := p.ApplyPayment(amount); err != nil {
			return err
		}

		var count int
		if err := tx.QueryRow(ctx,
			"SELECT COUNT(*) FROM installment_payments WHERE plan_id = $1",
			planID).Scan(&count); err != nil {
			return fmt.Errorf("failed to count payments: %w", err)
		}

		pay, err := installment.NewPayment(planID, amount, count+1, paymentDate, notes)
		if err != nil {
			return err
		}

		if err := tx.QueryRow(ctx,
			`INSERT INTO installment_payments (
				plan_id, amount, payment_number, payment_date, status, notes, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id`,
			pay.PlanID, pay.Amount, pay.PaymentNumber, pay.PaymentDate,
			pay.Status, pay.Notes, pay.CreatedAt).Scan(&pay.ID); err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}

		if _, err := tx.Exec(ctx,
			`UPDATE installment_plans SET
				remaining_amount = $1, status = $2, updated_at = $3
			WHERE id = $4`,
			p.RemainingAmount, p.Status, p.UpdatedAt, p.ID); err != nil {
			return fmt.Errorf("failed to update installment plan: %w", err)
		}

		if p.Status == installment.StatusCompleted {
			if _, err := tx.Exec(ctx,
				"UPDATE invoices SET status = $1, updated_at = NOW() WHERE id = $2",
				invoice.StatusPaid, p.InvoiceID); err != nil {
				return fmt.Errorf("failed to settle invoice: %w", err)
			}
		}

		payment = pay
		plan = p
		return nil
	})

	if err != nil {
		return nil, nil, err
	}
	return payment, plan, nil
}

// CancelPlan implements installment.Repository.CancelPlan
func (r *InstallmentRepository) CancelPlan(ctx context.Context, id int64) (*installment.Plan, error) {
	var plan *installment.Plan

	err := database.Transaction(ctx, r.db, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx,
			`SELECT `+planColumns+` FROM installment_plans WHERE id = $1 FOR UPDATE`, id)

		p, err := scanPlan(row)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return installment.ErrPlanNotFound
			}
			return fmt.Errorf("failed to lock installment plan: %w", err)
		}

		if err := p.Cancel(); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx,
			"UPDATE installment_plans SET status = $1, updated_at = $2 WHERE id = $3",
			p.Status, p.UpdatedAt, p.ID); err != nil {
			return fmt.Errorf("failed to cancel installment plan: %w", err)
		}

		plan = p
		return nil
	})

	if err != nil {
		return nil, err
	}
	return plan, nil
}

// ListPayments implements installment.Repository.ListPayments
func (r *InstallmentRepository) ListPayments(ctx context.Context, limit, offset int) ([]*installment.Payment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+paymentColumns+`
		FROM installment_payments
		ORDER BY id DESC
		LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	return scanPaymentRows(rows)
}

// ListPaymentsByPlan implements installment.Repository.ListPaymentsByPlan
func (r *InstallmentRepository) ListPaymentsByPlan(ctx context.Context, planID int64) ([]*installment.Payment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+paymentColumns+`
		FROM installment_payments
		WHERE plan_id = $1
		ORDER BY payment_number ASC`,
		planID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	return scanPaymentRows(rows)
}

// CountPaymentsByPlan implements installment.Repository.CountPaymentsByPlan
func (r *InstallmentRepository) CountPaymentsByPlan(ctx context.Context, planID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM installment_payments WHERE plan_id = $1",
		planID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count payments: %w", err)
	}
	return count, nil
}

// ReconcileOverdue implements installment.Repository.ReconcileOverdue
func (r *InstallmentRepository) ReconcileOverdue(ctx context.Context, now time.Time) (int, error) {
	transitioned := 0

	err := database.Transaction(ctx, r.db, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx,
			`SELECT `+planColumns+`
			FROM installment_plans
			WHERE status = $1
			FOR UPDATE`,
			installment.StatusActive)
		if err != nil {
			return fmt.Errorf("failed to list active plans: %w", err)
		}

		plans, err := scanPlanRows(rows)
		if err != nil {
			return err
		}

		for _, p := range plans {
			var paid int
			if err := tx.QueryRow(ctx,
				"SELECT COUNT(*) FROM installment_payments WHERE plan_id = $1",
				p.ID).Scan(&paid); err != nil {
				return fmt.Errorf("failed to count payments: %w", err)
			}

			if p.DeriveStatus(paid, now) != installment.StatusOverdue {
				continue
			}

			if _, err := tx.Exec(ctx,
				"UPDATE installment_plans SET status = $1, updated_at = $2 WHERE id = $3",
				installment.StatusOverdue, now, p.ID); err != nil {
				return fmt.Errorf("failed to mark plan overdue: %w", err)
			}
			transitioned++
		}
		return nil
	})

	if err != nil {
		return 0, err
	}
	return transitioned, nil
}

func scanPlan(row pgx.Row) (*installment.Plan, error) {
	var p installment.Plan
	err := row.Scan(
		&p.ID, &p.InvoiceID, &p.CustomerName, &p.CustomerPhone, &p.IdentityNumber,
		&p.GuarantorName, &p.GuarantorPhone, &p.TotalAmount, &p.DownPayment,
		&p.RemainingAmount, &p.InstallmentAmount, &p.NumberOfInstallments,
		&p.StartDate, &p.Status, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanPlanRows(rows pgx.Rows) ([]*installment.Plan, error) {
	defer rows.Close()

	plans := make([]*installment.Plan, 0)
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan installment plan: %w", err)
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read installment plans: %w", err)
	}
	return plans, nil
}

func scanPaymentRows(rows pgx.Rows) ([]*installment.Payment, error) {
	payments := make([]*installment.Payment, 0)
	for rows.Next() {
		var p installment.Payment
		err := rows.Scan(
			&p.ID, &p.PlanID, &p.Amount, &p.PaymentNumber, &p.PaymentDate,
			&p.Status, &p.Notes, &p.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read payments: %w", err)
	}
	return payments, nil
}
