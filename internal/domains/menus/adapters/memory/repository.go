package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/brewlabs/coffee-store-api/internal/domains/menus/domain"
	"github.com/brewlabs/coffee-store-api/internal/domains/menus/ports"
	"github.com/brewlabs/coffee-store-api/internal/shared/pagination"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is the in-memory menu persistence adapter.
type Repository struct {
	mu    sync.RWMutex
	menus map[uuid.UUID]*domain.Menu
}

func NewRepository() *Repository {
	return &Repository{menus: map[uuid.UUID]*domain.Menu{}}
}

func (r *Repository) Create(_ context.Context, menu *domain.Menu) error {
	if menu == nil {
		return errors.New("menu is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.menus[menu.ID]; exists {
		return errors.New("menu id already exists")
	}
	r.menus[menu.ID] = cloneMenu(menu)
	return nil
}

func (r *Repository) Update(_ context.Context, menu *domain.Menu) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.menus[menu.ID]; !exists {
		return ports.ErrNotFound
	}
	r.menus[menu.ID] = cloneMenu(menu)
	return nil
}

func (r *Repository) GetByID(_ context.Context, id uuid.UUID) (*domain.Menu, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	menu, ok := r.menus[id]
	if !ok || menu.DeletedAt != nil {
		return nil, ports.ErrNotFound
	}
	return cloneMenu(menu), nil
}

func (r *Repository) List(_ context.Context, filter ports.Filter, page pagination.Request) ([]*domain.Menu, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name := strings.ToLower(strings.TrimSpace(filter.Name))
	var matched []*domain.Menu
	for _, menu := range r.menus {
		if menu.DeletedAt != nil {
			continue
		}
		if name != "" && !strings.Contains(strings.ToLower(menu.Name), name) {
			continue
		}
		if filter.ActiveOn != nil && !menu.ActiveOn(*filter.ActiveOn) {
			continue
		}
		matched = append(matched, cloneMenu(menu))
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].FromDate.Equal(matched[j].FromDate) {
			return matched[i].FromDate.After(matched[j].FromDate)
		}
		return strings.Compare(matched[i].ID.String(), matched[j].ID.String()) > 0
	})
	total := int64(len(matched))
	start := page.Offset()
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + page.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func cloneMenu(menu *domain.Menu) *domain.Menu {
	clone := *menu
	clone.Items = append([]domain.MenuItem(nil), menu.Items...)
	if menu.DeletedAt != nil {
		deleted := *menu.DeletedAt
		clone.DeletedAt = &deleted
	}
	return &clone
}
