package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/brewlabs/coffee-store-api/internal/domains/orders/domain"
	"github.com/brewlabs/coffee-store-api/internal/domains/orders/ports"
	"github.com/brewlabs/coffee-store-api/internal/shared/pagination"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order persistence adapter. The single mutex
// stands in for the row-level locking the SQL adapter relies on.
type Repository struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*domain.Order
}

func NewRepository() *Repository {
	return &Repository{orders: map[uuid.UUID]*domain.Order{}}
}

func (r *Repository) Create(_ context.Context, order *domain.Order) error {
	if order == nil {
		return errors.New("order is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.orders[order.ID]; exists {
		return errors.New("order id already exists")
	}
	r.orders[order.ID] = cloneOrder(order)
	return nil
}

func (r *Repository) GetByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok || order.DeletedAt != nil {
		return nil, ports.ErrNotFound
	}
	return cloneOrder(order), nil
}

func (r *Repository) Mutate(_ context.Context, id uuid.UUID, fn func(*domain.Order) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok || order.DeletedAt != nil {
		return ports.ErrNotFound
	}
	draft := cloneOrder(order)
	if err := fn(draft); err != nil {
		return err
	}
	r.orders[id] = draft
	return nil
}

func (r *Repository) List(_ context.Context, filter ports.Filter, page pagination.Request) ([]*domain.Order, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*domain.Order
	for _, order := range r.orders {
		if order.DeletedAt != nil {
			continue
		}
		if filter.UserID != "" && order.UserID != filter.UserID {
			continue
		}
		if filter.Status != nil && order.Status != *filter.Status {
			continue
		}
		if filter.FromDate != nil && order.OrderDate.Before(*filter.FromDate) {
			continue
		}
		if filter.ToDate != nil && order.OrderDate.After(*filter.ToDate) {
			continue
		}
		matched = append(matched, cloneOrder(order))
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].OrderDate.Equal(matched[j].OrderDate) {
			return matched[i].OrderDate.After(matched[j].OrderDate)
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

func cloneOrder(order *domain.Order) *domain.Order {
	clone := *order
	clone.Lines = append([]domain.Line(nil), order.Lines...)
	if order.Payment != nil {
		payment := *order.Payment
		clone.Payment = &payment
	}
	if order.DeletedAt != nil {
		deleted := *order.DeletedAt
		clone.DeletedAt = &deleted
	}
	return &clone
}
