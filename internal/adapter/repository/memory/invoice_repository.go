package memory

import (
	"context"
	"sort"

	"github.com/dukkanlabs/dukkan-erp/internal/domain/invoice"
	"github.com/dukkanlabs/dukkan-erp/internal/domain/product"
)

// InvoiceRepository implements invoice.Repository over the shared store.
// Creating an invoice decrements the stock of every referenced product in
// the same lock section, so a failed stock check leaves nothing behind.
type InvoiceRepository struct {
	store *Store
}

// NewInvoiceRepository creates a new InvoiceRepository
func NewInvoiceRepository(store *Store) invoice.Repository {
	return &InvoiceRepository{store: store}
}

// Create implements invoice.Repository.Create
func (r *InvoiceRepository) Create(_ context.Context, inv *invoice.Invoice) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return createInvoiceLocked(r.store, inv)
}

// createInvoiceLocked inserts an invoice and adjusts stock. The caller
// must hold the write lock; the installment repository reuses this inside
// its invoice+plan composite.
func createInvoiceLocked(s *Store, inv *invoice.Invoice) error {
	// validate stock for all items before touching anything
	for _, item := range inv.Items {
		p, ok := s.products[item.ProductID]
		if !ok {
			return product.ErrProductNotFound
		}
		if item.Quantity > p.Quantity {
			return product.ErrInsufficientStock
		}
	}

	for _, item := range inv.Items {
		if err := s.products[item.ProductID].RemoveStock(item.Quantity); err != nil {
			return err
		}
	}

	inv.ID = s.nextSequence()
	s.invoices[inv.ID] = cloneInvoice(inv)
	return nil
}

// FindByID implements invoice.Repository.FindByID
func (r *InvoiceRepository) FindByID(_ context.Context, id int64) (*invoice.Invoice, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	inv, ok := r.store.invoices[id]
	if !ok {
		return nil, invoice.ErrInvoiceNotFound
	}
	return cloneInvoice(inv), nil
}

// List implements invoice.Repository.List
func (r *InvoiceRepository) List(_ context.Context, limit, offset int) ([]*invoice.Invoice, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	all := make([]*invoice.Invoice, 0, len(r.store.invoices))
	for _, inv := range r.store.invoices {
		all = append(all, cloneInvoice(inv))
	}
	sortInvoicesNewestFirst(all)
	return paginate(all, limit, offset), nil
}

// ListByCustomer implements invoice.Repository.ListByCustomer
func (r *InvoiceRepository) ListByCustomer(_ context.Context, customerID int64, limit, offset int) ([]*invoice.Invoice, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	matches := make([]*invoice.Invoice, 0)
	for _, inv := range r.store.invoices {
		if inv.CustomerID == customerID {
			matches = append(matches, cloneInvoice(inv))
		}
	}
	sortInvoicesNewestFirst(matches)
	return paginate(matches, limit, offset), nil
}

// Count implements invoice.Repository.Count
func (r *InvoiceRepository) Count(_ context.Context) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return len(r.store.invoices), nil
}

// UpdateStatus implements invoice.Repository.UpdateStatus
func (r *InvoiceRepository) UpdateStatus(_ context.Context, id int64, status invoice.Status) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	inv, ok := r.store.invoices[id]
	if !ok {
		return invoice.ErrInvoiceNotFound
	}
	inv.Status = status
	return nil
}

func sortInvoicesNewestFirst(invoices []*invoice.Invoice) {
	sort.Slice(invoices, func(i, j int) bool {
		return invoices[i].ID > invoices[j].ID
	})
}
