// Package reports renders spreadsheet exports of the business data.
package reports

import (
	"fmt"
	"io"
	"time"

	"github.com/dukkanlabs/dukkan-erp/internal/domain/installment"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const installmentSheet = "Installments"

var installmentHeaders = []string{
	"Plan ID", "Invoice ID", "Customer", "Phone", "Identity No.",
	"Total", "Down Payment", "Remaining", "Per Installment", "Installments",
	"Payments Made", "Total Paid", "Progress %", "Status", "Start Date", "Next Due",
}

// WriteInstallmentBook renders the installment book as an xlsx workbook.
// paymentsByPlan maps a plan id to its recorded payments.
func WriteInstallmentBook(w io.Writer, plans []*installment.Plan, paymentsByPlan map[int64][]*installment.Payment, now time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(installmentSheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}

	for col, header := range installmentHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to compute header cell: %w", err)
		}
		if err := f.SetCellValue(installmentSheet, cell, header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, plan := range plans {
		payments := paymentsByPlan[plan.ID]
		paidCount := len(payments)

		nextDue := ""
		if due := plan.NextDueDate(paidCount); !due.IsZero() && plan.Status != installment.StatusCompleted && plan.Status != installment.StatusCancelled {
			nextDue = due.Format("2006-01-02")
		}

		progress := plan.Progress().Mul(decimal.NewFromInt(100)).Round(1)

		values := []interface{}{
			plan.ID,
			plan.InvoiceID,
			plan.CustomerName,
			plan.CustomerPhone,
			plan.IdentityNumber,
			plan.TotalAmount.StringFixed(2),
			plan.DownPayment.StringFixed(2),
			plan.RemainingAmount.StringFixed(2),
			plan.InstallmentAmount.StringFixed(2),
			plan.NumberOfInstallments,
			paidCount,
			plan.TotalPaid().StringFixed(2),
			progress.String(),
			string(plan.DeriveStatus(paidCount, now)),
			plan.StartDate.Format("2006-01-02"),
			nextDue,
		}

		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return fmt.Errorf("failed to compute cell: %w", err)
			}
			if err := f.SetCellValue(installmentSheet, cell, value); err != nil {
				return fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
