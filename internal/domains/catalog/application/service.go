package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/brewlabs/coffee-store-api/internal/domains/catalog/domain"
	"github.com/brewlabs/coffee-store-api/internal/domains/catalog/ports"
	ordersports "github.com/brewlabs/coffee-store-api/internal/domains/orders/ports"
	"github.com/brewlabs/coffee-store-api/internal/shared/pagination"
)

// Service orchestrates the catalog use cases. It also serves the orders core
// as its product-resolution port.
type Service struct {
	products   ports.ProductRepository
	categories ports.CategoryRepository
	now        func() time.Time
}

func NewService(products ports.ProductRepository, categories ports.CategoryRepository) *Service {
	return &Service{products: products, categories: categories, now: time.Now}
}

// CreateProduct validates the input, checks the category exists, and persists.
func (s *Service) CreateProduct(ctx context.Context, input ports.ProductInput) (*domain.Product, error) {
	if err := s.checkCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}
	product, err := domain.NewProduct(input.Name, input.Description, input.ImageURL, input.Price, input.CategoryID, s.now().UTC())
	if err != nil {
		return nil, mapError(err)
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct applies new field values to an existing product.
func (s *Service) UpdateProduct(ctx context.Context, id uuid.UUID, input ports.ProductInput) (*domain.Product, error) {
	if err := s.checkCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := product.Update(input.Name, input.Description, input.ImageURL, input.Price, input.CategoryID, input.Active, s.now().UTC()); err != nil {
		return nil, mapError(err)
	}
	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct soft-deletes; the product disappears from reads but existing
// order lines keep their captured snapshot.
func (s *Service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return err
	}
	product.Delete(s.now().UTC())
	return s.products.Update(ctx, product)
}

func (s *Service) GetProductByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

// ListProducts returns one page ordered by the whitelisted sort.
func (s *Service) ListProducts(ctx context.Context, input ports.ListProductsInput) (pagination.Page[*domain.Product], error) {
	sort := input.Sort
	if sort.Key == "" {
		sort = ports.DefaultSort
	}
	page := input.Page.Normalize()
	products, total, err := s.products.List(ctx, input.Filter, sort, page)
	if err != nil {
		return pagination.Page[*domain.Product]{}, err
	}
	return pagination.NewPage(products, total, page), nil
}

func (s *Service) CreateCategory(ctx context.Context, input ports.CategoryInput) (*domain.Category, error) {
	category, err := domain.NewCategory(input.Name, input.Description, s.now().UTC())
	if err != nil {
		return nil, mapError(err)
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.categories.List(ctx)
}

// ResolveActiveProducts implements the orders core product port. Unknown,
// inactive, and deleted ids are silently absent from the result; the caller
// decides how to report them.
func (s *Service) ResolveActiveProducts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]ordersports.ProductInfo, error) {
	products, err := s.products.ResolveActive(ctx, ids)
	if err != nil {
		return nil, err
	}
	resolved := make(map[uuid.UUID]ordersports.ProductInfo, len(products))
	for _, product := range products {
		resolved[product.ID] = ordersports.ProductInfo{Name: product.Name, Price: product.Price}
	}
	return resolved, nil
}

func (s *Service) checkCategory(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("%w: %w", ErrValidation, domain.ErrUnknownCategory)
	}
	if _, err := s.categories.GetByID(ctx, id); err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return fmt.Errorf("%w: %w: %s", ErrValidation, domain.ErrUnknownCategory, id)
		}
		return err
	}
	return nil
}

var (
	_ ports.Service       = (*Service)(nil)
	_ ordersports.Catalog = (*Service)(nil)
)
