package memory

import (
	"context"
	"sort"

	"github.com/dukkanlabs/dukkan-erp/internal/domain/user"
)

// UserRepository implements user.Repository over the shared store
type UserRepository struct {
	store *Store
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(store *Store) user.Repository {
	return &UserRepository{store: store}
}

// Create implements user.Repository.Create
func (r *UserRepository) Create(_ context.Context, u *user.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.users {
		if existing.Email == u.Email {
			return user.ErrDuplicateEmail
		}
	}

	u.ID = r.store.nextSequence()
	r.store.users[u.ID] = cloneUser(u)
	return nil
}

// FindByID implements user.Repository.FindByID
func (r *UserRepository) FindByID(_ context.Context, id int64) (*user.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	u, ok := r.store.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return cloneUser(u), nil
}

// FindByEmail implements user.Repository.FindByEmail
func (r *UserRepository) FindByEmail(_ context.Context, email string) (*user.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, u := range r.store.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, user.ErrUserNotFound
}

// List implements user.Repository.List
func (r *UserRepository) List(_ context.Context, limit, offset int) ([]*user.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	all := make([]*user.User, 0, len(r.store.users))
	for _, u := range r.store.users {
		all = append(all, cloneUser(u))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return paginate(all, limit, offset), nil
}

// Update implements user.Repository.Update
func (r *UserRepository) Update(_ context.Context, u *user.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.users[u.ID]; !ok {
		return user.ErrUserNotFound
	}
	r.store.users[u.ID] = cloneUser(u)
	return nil
}

// Delete implements user.Repository.Delete
func (r *UserRepository) Delete(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.users[id]; !ok {
		return user.ErrUserNotFound
	}
	delete(r.store.users, id)
	return nil
}
