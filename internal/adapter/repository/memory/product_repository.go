package memory

import (
	"context"
	"sort"

	"github.com/dukkanlabs/dukkan-erp/internal/domain/product"
)

// ProductRepository implements product.Repository over the shared store
type ProductRepository struct {
	store *Store
}

// NewProductRepository creates a new ProductRepository
func NewProductRepository(store *Store) product.Repository {
	return &ProductRepository{store: store}
}

// Create implements product.Repository.Create
func (r *ProductRepository) Create(_ context.Context, p *product.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if p.Barcode != "" {
		for _, existing := range r.store.products {
			if existing.Barcode == p.Barcode {
				return product.ErrDuplicateBarcode
			}
		}
	}

	p.ID = r.store.nextSequence()
	r.store.products[p.ID] = cloneProduct(p)
	return nil
}

// FindByID implements product.Repository.FindByID
func (r *ProductRepository) FindByID(_ context.Context, id int64) (*product.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p, ok := r.store.products[id]
	if !ok {
		return nil, product.ErrProductNotFound
	}
	return cloneProduct(p), nil
}

// FindByBarcode implements product.Repository.FindByBarcode
func (r *ProductRepository) FindByBarcode(_ context.Context, barcode string) (*product.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, p := range r.store.products {
		if p.Barcode == barcode {
			return cloneProduct(p), nil
		}
	}
	return nil, product.ErrProductNotFound
}

// List implements product.Repository.List
func (r *ProductRepository) List(_ context.Context, limit, offset int) ([]*product.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	all := make([]*product.Product, 0, len(r.store.products))
	for _, p := range r.store.products {
		all = append(all, cloneProduct(p))
	}
	sortProductsByName(all)
	return paginate(all, limit, offset), nil
}

// ListLowStock implements product.Repository.ListLowStock
func (r *ProductRepository) ListLowStock(_ context.Context, limit, offset int) ([]*product.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	low := make([]*product.Product, 0)
	for _, p := range r.store.products {
		if p.IsLowStock() {
			low = append(low, cloneProduct(p))
		}
	}
	sortProductsByName(low)
	return paginate(low, limit, offset), nil
}

// Count implements product.Repository.Count
func (r *ProductRepository) Count(_ context.Context) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return len(r.store.products), nil
}

// Update implements product.Repository.Update
func (r *ProductRepository) Update(_ context.Context, p *product.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.products[p.ID]; !ok {
		return product.ErrProductNotFound
	}
	r.store.products[p.ID] = cloneProduct(p)
	return nil
}

// AdjustStock implements product.Repository.AdjustStock
func (r *ProductRepository) AdjustStock(_ context.Context, id int64, delta int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	p, ok := r.store.products[id]
	if !ok {
		return product.ErrProductNotFound
	}
	if delta < 0 {
		return p.RemoveStock(-delta)
	}
	return p.AddStock(delta)
}

// Delete implements product.Repository.Delete
func (r *ProductRepository) Delete(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.products[id]; !ok {
		return product.ErrProductNotFound
	}
	delete(r.store.products, id)
	return nil
}

func sortProductsByName(products []*product.Product) {
	sort.Slice(products, func(i, j int) bool {
		return products[i].Name < products[j].Name
	})
}
