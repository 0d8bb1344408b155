package mapper

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	catalogdomain "github.com/brewlabs/coffee-store-api/internal/domains/catalog/domain"
	catalogports "github.com/brewlabs/coffee-store-api/internal/domains/catalog/ports"
)

// ProductPayload is the transport shape for product mutations.
type ProductPayload struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	ImageURL    string          `json:"imageUrl"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	CategoryID  uuid.UUID       `json:"categoryId" binding:"required"`
	Active      *bool           `json:"active"`
}

// Product is the transport representation of a product.
type Product struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  uuid.UUID       `json:"categoryId"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// CategoryPayload is the transport shape for category mutations.
type CategoryPayload struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// Category is the transport representation of a category.
type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToProductInput converts the transport payload into the service input.
// Active defaults to true when absent.
func ToProductInput(payload ProductPayload) catalogports.ProductInput {
	active := true
	if payload.Active != nil {
		active = *payload.Active
	}
	return catalogports.ProductInput{
		Name:        payload.Name,
		Description: payload.Description,
		ImageURL:    payload.ImageURL,
		Price:       payload.Price,
		CategoryID:  payload.CategoryID,
		Active:      active,
	}
}

// FromDomainProduct converts a domain product to transport.
func FromDomainProduct(product *catalogdomain.Product) Product {
	if product == nil {
		return Product{}
	}
	return Product{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		ImageURL:    product.ImageURL,
		Price:       product.Price,
		CategoryID:  product.CategoryID,
		Active:      product.Active,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

// FromDomainProductList converts a page of products.
func FromDomainProductList(products []*catalogdomain.Product) []Product {
	result := make([]Product, 0, len(products))
	for _, product := range products {
		result = append(result, FromDomainProduct(product))
	}
	return result
}

// ToCategoryInput converts the transport payload into the service input.
func ToCategoryInput(payload CategoryPayload) catalogports.CategoryInput {
	return catalogports.CategoryInput{Name: payload.Name, Description: payload.Description}
}

// FromDomainCategory converts a domain category to transport.
func FromDomainCategory(category *catalogdomain.Category) Category {
	if category == nil {
		return Category{}
	}
	return Category{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		CreatedAt:   category.CreatedAt,
	}
}

// FromDomainCategoryList converts a list of categories.
func FromDomainCategoryList(categories []*catalogdomain.Category) []Category {
	result := make([]Category, 0, len(categories))
	for _, category := range categories {
		result = append(result, FromDomainCategory(category))
	}
	return result
}
