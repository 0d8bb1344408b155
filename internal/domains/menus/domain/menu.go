package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidName      = errors.New("menu name must not be empty")
	ErrInvalidDateRange = errors.New("menu start date must not be after end date")
	ErrNoItems          = errors.New("menu must contain at least one item")
	ErrInvalidQuantity  = errors.New("menu item quantity must be greater than zero")
	ErrDuplicateProduct = errors.New("menu items must reference distinct products")
)

// MenuItem references a product offered on a menu.
type MenuItem struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	Quantity  int
}

// Menu is a dated selection of products. An order of the items themselves is
// not tracked; menus are a presentation grouping, not a cart.
type Menu struct {
	ID          uuid.UUID
	Name        string
	Description string
	FromDate    time.Time
	ToDate      time.Time
	Items       []MenuItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// NewMenu validates and constructs a menu.
func NewMenu(name, description string, fromDate, toDate time.Time, items []MenuItem, now time.Time) (*Menu, error) {
	menu := &Menu{
		ID:        uuid.New(),
		CreatedAt: now,
	}
	if err := menu.apply(name, description, fromDate, toDate, items, now); err != nil {
		return nil, err
	}
	return menu, nil
}

// Update replaces all mutable fields under the construction invariants.
func (m *Menu) Update(name, description string, fromDate, toDate time.Time, items []MenuItem, now time.Time) error {
	return m.apply(name, description, fromDate, toDate, items, now)
}

func (m *Menu) apply(name, description string, fromDate, toDate time.Time, items []MenuItem, now time.Time) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidName
	}
	if toDate.Before(fromDate) {
		return ErrInvalidDateRange
	}
	if err := validateItems(items); err != nil {
		return err
	}
	m.Name = name
	m.Description = strings.TrimSpace(description)
	m.FromDate = fromDate
	m.ToDate = toDate
	m.Items = items
	m.UpdatedAt = now
	return nil
}

func validateItems(items []MenuItem) error {
	if len(items) == 0 {
		return ErrNoItems
	}
	seen := make(map[uuid.UUID]struct{}, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: product %s", ErrInvalidQuantity, item.ProductID)
		}
		if _, dup := seen[item.ProductID]; dup {
			return fmt.Errorf("%w: product %s", ErrDuplicateProduct, item.ProductID)
		}
		seen[item.ProductID] = struct{}{}
	}
	return nil
}

// Delete marks the menu soft-deleted.
func (m *Menu) Delete(now time.Time) {
	m.DeletedAt = &now
	m.UpdatedAt = now
}

// ActiveOn reports whether the menu covers the given date.
func (m *Menu) ActiveOn(date time.Time) bool {
	return !date.Before(m.FromDate) && !date.After(m.ToDate)
}
