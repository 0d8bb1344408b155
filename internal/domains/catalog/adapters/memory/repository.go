package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/brewlabs/coffee-store-api/internal/domains/catalog/domain"
	"github.com/brewlabs/coffee-store-api/internal/domains/catalog/ports"
	"github.com/brewlabs/coffee-store-api/internal/shared/pagination"
)

var (
	_ ports.ProductRepository  = (*ProductRepository)(nil)
	_ ports.CategoryRepository = (*CategoryRepository)(nil)
)

// ProductRepository is the in-memory product persistence adapter.
type ProductRepository struct {
	mu       sync.RWMutex
	products map[uuid.UUID]*domain.Product
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{products: map[uuid.UUID]*domain.Product{}}
}

func (r *ProductRepository) Create(_ context.Context, product *domain.Product) error {
	if product == nil {
		return errors.New("product is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.products[product.ID]; exists {
		return errors.New("product id already exists")
	}
	r.products[product.ID] = cloneProduct(product)
	return nil
}

func (r *ProductRepository) Update(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.products[product.ID]; !exists {
		return ports.ErrNotFound
	}
	r.products[product.ID] = cloneProduct(product)
	return nil
}

func (r *ProductRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[id]
	if !ok || product.DeletedAt != nil {
		return nil, ports.ErrNotFound
	}
	return cloneProduct(product), nil
}

func (r *ProductRepository) List(_ context.Context, filter ports.ProductFilter, order ports.Sort, page pagination.Request) ([]*domain.Product, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var matched []*domain.Product
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	for _, product := range r.products {
		if product.DeletedAt != nil {
			continue
		}
		if filter.ActiveOnly && !product.Active {
			continue
		}
		if filter.CategoryID != nil && product.CategoryID != *filter.CategoryID {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(product.Name), search) &&
			!strings.Contains(strings.ToLower(product.Description), search) {
			continue
		}
		matched = append(matched, cloneProduct(product))
	}
	sortProducts(matched, order)
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

func (r *ProductRepository) ResolveActive(_ context.Context, ids []uuid.UUID) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var resolved []*domain.Product
	for _, id := range ids {
		if product, ok := r.products[id]; ok && product.Sellable() {
			resolved = append(resolved, cloneProduct(product))
		}
	}
	return resolved, nil
}

func sortProducts(products []*domain.Product, order ports.Sort) {
	less := func(a, b *domain.Product) bool { return a.CreatedAt.Before(b.CreatedAt) }
	switch order.Key {
	case ports.SortKeyName:
		less = func(a, b *domain.Product) bool { return a.Name < b.Name }
	case ports.SortKeyPrice:
		less = func(a, b *domain.Product) bool { return a.Price.LessThan(b.Price) }
	case ports.SortKeyUpdatedAt:
		less = func(a, b *domain.Product) bool { return a.UpdatedAt.Before(b.UpdatedAt) }
	}
	sort.SliceStable(products, func(i, j int) bool {
		if order.Desc {
			return less(products[j], products[i])
		}
		return less(products[i], products[j])
	})
}

func cloneProduct(product *domain.Product) *domain.Product {
	clone := *product
	if product.DeletedAt != nil {
		deleted := *product.DeletedAt
		clone.DeletedAt = &deleted
	}
	return &clone
}

// CategoryRepository is the in-memory category persistence adapter.
type CategoryRepository struct {
	mu         sync.RWMutex
	categories map[uuid.UUID]*domain.Category
}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{categories: map[uuid.UUID]*domain.Category{}}
}

func (r *CategoryRepository) Create(_ context.Context, category *domain.Category) error {
	if category == nil {
		return errors.New("category is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.categories {
		if strings.EqualFold(existing.Name, category.Name) {
			return ports.ErrDuplicateName
		}
	}
	clone := *category
	r.categories[category.ID] = &clone
	return nil
}

func (r *CategoryRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	category, ok := r.categories[id]
	if !ok || category.DeletedAt != nil {
		return nil, ports.ErrNotFound
	}
	clone := *category
	return &clone, nil
}

func (r *CategoryRepository) List(_ context.Context) ([]*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*domain.Category
	for _, category := range r.categories {
		if category.DeletedAt != nil {
			continue
		}
		clone := *category
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}
