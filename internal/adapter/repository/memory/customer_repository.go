package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/dukkanlabs/dukkan-erp/internal/domain/customer"
)

// CustomerRepository implements customer.Repository over the shared store
type CustomerRepository struct {
	store *Store
}

// NewCustomerRepository creates a new CustomerRepository
func NewCustomerRepository(store *Store) customer.Repository {
	return &CustomerRepository{store: store}
}

// Create implements customer.Repository.Create
func (r *CustomerRepository) Create(_ context.Context, c *customer.Customer) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	c.ID = r.store.nextSequence()
	r.store.customers[c.ID] = cloneCustomer(c)
	return nil
}

// FindByID implements customer.Repository.FindByID
func (r *CustomerRepository) FindByID(_ context.Context, id int64) (*customer.Customer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	c, ok := r.store.customers[id]
	if !ok {
		return nil, customer.ErrCustomerNotFound
	}
	return cloneCustomer(c), nil
}

// FindByPhone implements customer.Repository.FindByPhone
func (r *CustomerRepository) FindByPhone(_ context.Context, phone string) (*customer.Customer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, c := range r.store.customers {
		if c.Phone == phone {
			return cloneCustomer(c), nil
		}
	}
	return nil, customer.ErrCustomerNotFound
}

// Search implements customer.Repository.Search
func (r *CustomerRepository) Search(_ context.Context, query string, limit, offset int) ([]*customer.Customer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	query = strings.ToLower(query)
	matches := make([]*customer.Customer, 0)
	for _, c := range r.store.customers {
		if strings.Contains(strings.ToLower(c.Name), query) ||
			strings.Contains(strings.ToLower(c.NameLatin), query) ||
			strings.Contains(c.Phone, query) {
			matches = append(matches, cloneCustomer(c))
		}
	}
	sortCustomersByName(matches)
	return paginate(matches, limit, offset), nil
}

// List implements customer.Repository.List
func (r *CustomerRepository) List(_ context.Context, limit, offset int) ([]*customer.Customer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	all := make([]*customer.Customer, 0, len(r.store.customers))
	for _, c := range r.store.customers {
		all = append(all, cloneCustomer(c))
	}
	sortCustomersByName(all)
	return paginate(all, limit, offset), nil
}

// Count implements customer.Repository.Count
func (r *CustomerRepository) Count(_ context.Context) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return len(r.store.customers), nil
}

// Update implements customer.Repository.Update
func (r *CustomerRepository) Update(_ context.Context, c *customer.Customer) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.customers[c.ID]; !ok {
		return customer.ErrCustomerNotFound
	}
	r.store.customers[c.ID] = cloneCustomer(c)
	return nil
}

// UpdateStatus implements customer.Repository.UpdateStatus
func (r *CustomerRepository) UpdateStatus(_ context.Context, id int64, status customer.Status) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	c, ok := r.store.customers[id]
	if !ok {
		return customer.ErrCustomerNotFound
	}
	c.Status = status
	return nil
}

// Delete implements customer.Repository.Delete
func (r *CustomerRepository) Delete(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.customers[id]; !ok {
		return customer.ErrCustomerNotFound
	}
	delete(r.store.customers, id)
	return nil
}

func sortCustomersByName(customers []*customer.Customer) {
	sort.Slice(customers, func(i, j int) bool {
		return customers[i].Name < customers[j].Name
	})
}

// paginate applies limit/offset semantics to an already sorted slice
func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
