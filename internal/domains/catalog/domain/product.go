package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidName     = errors.New("name must not be empty")
	ErrInvalidPrice    = errors.New("price must not be negative")
	ErrUnknownCategory = errors.New("category does not exist")
)

// Category groups products on the menu board.
type Category struct {
	ID          uuid.UUID
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// NewCategory validates and constructs a category.
func NewCategory(name, description string, now time.Time) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	return &Category{
		ID:          uuid.New(),
		Name:        name,
		Description: strings.TrimSpace(description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Product is a sellable catalog entry. Deleted products stay in storage but
// are invisible to every read path, including order line resolution.
type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       decimal.Decimal
	ImageURL    string
	CategoryID  uuid.UUID
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// NewProduct validates and constructs an active product.
func NewProduct(name, description, imageURL string, price decimal.Decimal, categoryID uuid.UUID, now time.Time) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	if price.IsNegative() {
		return nil, ErrInvalidPrice
	}
	return &Product{
		ID:          uuid.New(),
		Name:        name,
		Description: strings.TrimSpace(description),
		Price:       price,
		ImageURL:    strings.TrimSpace(imageURL),
		CategoryID:  categoryID,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Update applies new field values under the same invariants as construction.
func (p *Product) Update(name, description, imageURL string, price decimal.Decimal, categoryID uuid.UUID, active bool, now time.Time) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidName
	}
	if price.IsNegative() {
		return ErrInvalidPrice
	}
	p.Name = name
	p.Description = strings.TrimSpace(description)
	p.ImageURL = strings.TrimSpace(imageURL)
	p.Price = price
	p.CategoryID = categoryID
	p.Active = active
	p.UpdatedAt = now
	return nil
}

// Delete marks the product soft-deleted.
func (p *Product) Delete(now time.Time) {
	p.DeletedAt = &now
	p.Active = false
	p.UpdatedAt = now
}

// Sellable reports whether the product may appear on new order lines.
func (p *Product) Sellable() bool {
	return p.Active && p.DeletedAt == nil
}
