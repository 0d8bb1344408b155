package application

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/brewlabs/coffee-store-api/internal/domains/menus/domain"
	"github.com/brewlabs/coffee-store-api/internal/domains/menus/ports"
	"github.com/brewlabs/coffee-store-api/internal/shared/pagination"
)

// Service orchestrates the menu use cases.
type Service struct {
	repo    ports.Repository
	catalog ports.Catalog
	now     func() time.Time
}

func NewService(repo ports.Repository, catalog ports.Catalog) *Service {
	return &Service{repo: repo, catalog: catalog, now: time.Now}
}

// CreateMenu validates the input against the catalog and persists.
func (s *Service) CreateMenu(ctx context.Context, input ports.MenuInput) (*domain.Menu, error) {
	items, err := s.buildItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}
	menu, err := domain.NewMenu(input.Name, input.Description, input.FromDate, input.ToDate, items, s.now().UTC())
	if err != nil {
		return nil, mapError(err)
	}
	if err := s.repo.Create(ctx, menu); err != nil {
		return nil, err
	}
	return menu, nil
}

// UpdateMenu replaces all menu fields including the item set.
func (s *Service) UpdateMenu(ctx context.Context, id uuid.UUID, input ports.MenuInput) (*domain.Menu, error) {
	items, err := s.buildItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}
	menu, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := menu.Update(input.Name, input.Description, input.FromDate, input.ToDate, items, s.now().UTC()); err != nil {
		return nil, mapError(err)
	}
	if err := s.repo.Update(ctx, menu); err != nil {
		return nil, err
	}
	return menu, nil
}

// DeleteMenu soft-deletes the menu.
func (s *Service) DeleteMenu(ctx context.Context, id uuid.UUID) error {
	menu, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	menu.Delete(s.now().UTC())
	return s.repo.Update(ctx, menu)
}

// GetMenuByID loads the menu and joins its items with current product data.
// Items whose product has since been retired keep their place with an empty
// snapshot.
func (s *Service) GetMenuByID(ctx context.Context, id uuid.UUID) (*ports.MenuDetails, error) {
	menu, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(menu.Items))
	for _, item := range menu.Items {
		ids = append(ids, item.ProductID)
	}
	resolved, err := s.catalog.ResolveProducts(ctx, ids)
	if err != nil {
		return nil, err
	}
	details := &ports.MenuDetails{Menu: menu, Items: make([]ports.ItemDetails, 0, len(menu.Items))}
	for _, item := range menu.Items {
		entry := ports.ItemDetails{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
		if snapshot, ok := resolved[item.ProductID]; ok {
			entry.ProductName = snapshot.Name
			entry.UnitPrice = snapshot.Price
		}
		details.Items = append(details.Items, entry)
	}
	return details, nil
}

// ListMenus returns one page of menus matching the filter.
func (s *Service) ListMenus(ctx context.Context, input ports.ListMenusInput) (pagination.Page[*domain.Menu], error) {
	page := input.Page.Normalize()
	menus, total, err := s.repo.List(ctx, input.Filter, page)
	if err != nil {
		return pagination.Page[*domain.Menu]{}, err
	}
	return pagination.NewPage(menus, total, page), nil
}

// buildItems validates the requested items and checks every product exists
// and is sellable, naming the offenders.
func (s *Service) buildItems(ctx context.Context, inputs []ports.ItemInput) ([]domain.MenuItem, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrValidation, domain.ErrNoItems)
	}
	ids := make([]uuid.UUID, 0, len(inputs))
	seen := make(map[uuid.UUID]struct{}, len(inputs))
	for _, input := range inputs {
		if input.Quantity <= 0 {
			return nil, fmt.Errorf("%w: %w: product %s", ErrValidation, domain.ErrInvalidQuantity, input.ProductID)
		}
		if _, dup := seen[input.ProductID]; dup {
			return nil, fmt.Errorf("%w: %w: product %s", ErrValidation, domain.ErrDuplicateProduct, input.ProductID)
		}
		seen[input.ProductID] = struct{}{}
		ids = append(ids, input.ProductID)
	}

	resolved, err := s.catalog.ResolveProducts(ctx, ids)
	if err != nil {
		return nil, err
	}
	var missing []string
	for _, id := range ids {
		if _, ok := resolved[id]; !ok {
			missing = append(missing, id.String())
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("%w: products not found or inactive: %s", ErrValidation, strings.Join(missing, ", "))
	}

	items := make([]domain.MenuItem, 0, len(inputs))
	for _, input := range inputs {
		items = append(items, domain.MenuItem{
			ID:        uuid.New(),
			ProductID: input.ProductID,
			Quantity:  input.Quantity,
		})
	}
	return items, nil
}

var _ ports.Service = (*Service)(nil)
