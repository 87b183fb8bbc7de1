package memory

import (
	"context"
	"sort"

	"github.com/dukkanlabs/dukkan-erp/internal/domain/setting"
)

// SettingRepository implements setting.Repository over the shared store
type SettingRepository struct {
	store *Store
}

// NewSettingRepository creates a new SettingRepository
func NewSettingRepository(store *Store) setting.Repository {
	return &SettingRepository{store: store}
}

// Get implements setting.Repository.Get
func (r *SettingRepository) Get(_ context.Context, key string) (*setting.Setting, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	s, ok := r.store.settings[key]
	if !ok {
		return nil, setting.ErrSettingNotFound
	}
	return cloneSetting(s), nil
}

// List implements setting.Repository.List
func (r *SettingRepository) List(_ context.Context) ([]*setting.Setting, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	all := make([]*setting.Setting, 0, len(r.store.settings))
	for _, s := range r.store.settings {
		all = append(all, cloneSetting(s))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Key < all[j].Key })
	return all, nil
}

// Put implements setting.Repository.Put
func (r *SettingRepository) Put(_ context.Context, s *setting.Setting) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.settings[s.Key] = cloneSetting(s)
	return nil
}

// Delete implements setting.Repository.Delete
func (r *SettingRepository) Delete(_ context.Context, key string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.settings[key]; !ok {
		return setting.ErrSettingNotFound
	}
	delete(r.store.settings, key)
	return nil
}
