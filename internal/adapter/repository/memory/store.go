// Package memory implements the domain repositories over a single
// in-process store: one map per entity, one shared id sequence, one lock.
// It is the default storage driver; state lives only for the process
// lifetime and survives restarts only through explicit backup archives.
package memory

import (
	"sync"

	"github.com/dukkanlabs/dukkan-erp/internal/domain/customer"
	"github.com/dukkanlabs/dukkan-erp/internal/domain/installment"
	"github.com/dukkanlabs/dukkan-erp/internal/domain/invoice"
	"github.com/dukkanlabs/dukkan-erp/internal/domain/product"
	"github.com/dukkanlabs/dukkan-erp/internal/domain/setting"
	"github.com/dukkanlabs/dukkan-erp/internal/domain/user"
)

// Store is the shared in-memory dataset. All repositories created from the
// same Store see the same data and serialize their mutations on one mutex,
// which is also the transactional boundary for the composite installment
// operations.
type Store struct {
	mu     sync.RWMutex
	nextID int64

	customers map[int64]*customer.Customer
	products  map[int64]*product.Product
	invoices  map[int64]*invoice.Invoice
	plans     map[int64]*installment.Plan
	payments  map[int64]*installment.Payment
	users     map[int64]*user.User
	settings  map[string]*setting.Setting
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		customers: make(map[int64]*customer.Customer),
		products:  make(map[int64]*product.Product),
		invoices:  make(map[int64]*invoice.Invoice),
		plans:     make(map[int64]*installment.Plan),
		payments:  make(map[int64]*installment.Payment),
		users:     make(map[int64]*user.User),
		settings:  make(map[string]*setting.Setting),
	}
}

// nextSequence returns the next id from the shared sequence.
// The caller must hold the write lock.
func (s *Store) nextSequence() int64 {
	s.nextID++
	return s.nextID
}

// Dataset is a point-in-time copy of the whole store, used by the backup
// service for export and staged restore.
type Dataset struct {
	Customers []*customer.Customer
	Products  []*product.Product
	Invoices  []*invoice.Invoice
	Plans     []*installment.Plan
	Payments  []*installment.Payment
	Users     []*user.User
	Settings  []*setting.Setting
}

// Snapshot returns a deep copy of the current dataset
func (s *Store) Snapshot() *Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ds := &Dataset{}
	for _, c := range s.customers {
		ds.Customers = append(ds.Customers, cloneCustomer(c))
	}
	for _, p := range s.products {
		ds.Products = append(ds.Products, cloneProduct(p))
	}
	for _, inv := range s.invoices {
		ds.Invoices = append(ds.Invoices, cloneInvoice(inv))
	}
	for _, p := range s.plans {
		ds.Plans = append(ds.Plans, clonePlan(p))
	}
	for _, p := range s.payments {
		ds.Payments = append(ds.Payments, clonePayment(p))
	}
	for _, u := range s.users {
		ds.Users = append(ds.Users, cloneUser(u))
	}
	for _, st := range s.settings {
		ds.Settings = append(ds.Settings, cloneSetting(st))
	}
	return ds
}

// Replace swaps the whole dataset in one step. The new maps are fully
// built before the lock is taken, so a failed restore never leaves the
// store half-written.
func (s *Store) Replace(ds *Dataset) {
	customers := make(map[int64]*customer.Customer, len(ds.Customers))
	products := make(map[int64]*product.Product, len(ds.Products))
	invoices := make(map[int64]*invoice.Invoice, len(ds.Invoices))
	plans := make(map[int64]*installment.Plan, len(ds.Plans))
	payments := make(map[int64]*installment.Payment, len(ds.Payments))
	users := make(map[int64]*user.User, len(ds.Users))
	settings := make(map[string]*setting.Setting, len(ds.Settings))

	var maxID int64
	for _, c := range ds.Customers {
		customers[c.ID] = cloneCustomer(c)
		maxID = max(maxID, c.ID)
	}
	for _, p := range ds.Products {
		products[p.ID] = cloneProduct(p)
		maxID = max(maxID, p.ID)
	}
	for _, inv := range ds.Invoices {
		invoices[inv.ID] = cloneInvoice(inv)
		maxID = max(maxID, inv.ID)
	}
	for _, p := range ds.Plans {
		plans[p.ID] = clonePlan(p)
		maxID = max(maxID, p.ID)
	}
	for _, p := range ds.Payments {
		payments[p.ID] = clonePayment(p)
		maxID = max(maxID, p.ID)
	}
	for _, u := range ds.Users {
		users[u.ID] = cloneUser(u)
		maxID = max(maxID, u.ID)
	}
	for _, st := range ds.Settings {
		settings[st.Key] = cloneSetting(st)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers = customers
	s.products = products
	s.invoices = invoices
	s.plans = plans
	s.payments = payments
	s.users = users
	s.settings = settings
	s.nextID = maxID
}

func cloneCustomer(c *customer.Customer) *customer.Customer {
	cp := *c
	return &cp
}

func cloneProduct(p *product.Product) *product.Product {
	cp := *p
	return &cp
}

func cloneInvoice(inv *invoice.Invoice) *invoice.Invoice {
	cp := *inv
	cp.Items = make([]invoice.Item, len(inv.Items))
	copy(cp.Items, inv.Items)
	return &cp
}

func clonePlan(p *installment.Plan) *installment.Plan {
	cp := *p
	return &cp
}

func clonePayment(p *installment.Payment) *installment.Payment {
	cp := *p
	return &cp
}

func cloneUser(u *user.User) *user.User {
	cp := *u
	if u.LastLoginAt != nil {
		t := *u.LastLoginAt
		cp.LastLoginAt = &t
	}
	return &cp
}

func cloneSetting(st *setting.Setting) *setting.Setting {
	cp := *st
	return &cp
}
