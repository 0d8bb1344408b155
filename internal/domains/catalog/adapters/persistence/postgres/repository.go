package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/brewlabs/coffee-store-api/internal/domains/catalog/domain"
	"github.com/brewlabs/coffee-store-api/internal/domains/catalog/ports"
	"github.com/brewlabs/coffee-store-api/internal/shared/pagination"
)

var (
	_ ports.ProductRepository  = (*ProductRepository)(nil)
	_ ports.CategoryRepository = (*CategoryRepository)(nil)
)

// productRecord maps a product to its relational row.
type productRecord struct {
	ID          uuid.UUID       `gorm:"primaryKey;column:id;type:uuid"`
	Name        string          `gorm:"column:name;index"`
	Description string          `gorm:"column:description"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2)"`
	ImageURL    string          `gorm:"column:image_url"`
	CategoryID  uuid.UUID       `gorm:"column:category_id;type:uuid;index"`
	Active      bool            `gorm:"column:active;index"`
	CreatedAt   time.Time       `gorm:"column:created_at;index"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;index"`
	DeletedAt   *time.Time      `gorm:"column:deleted_at;index"`
}

func (productRecord) TableName() string { return "products" }

type categoryRecord struct {
	ID          uuid.UUID  `gorm:"primaryKey;column:id;type:uuid"`
	Name        string     `gorm:"column:name;uniqueIndex"`
	Description string     `gorm:"column:description"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
	DeletedAt   *time.Time `gorm:"column:deleted_at;index"`
}

func (categoryRecord) TableName() string { return "categories" }

// sortColumn maps the whitelisted sort keys to column expressions. The map is
// the single place a sort key touches SQL.
func sortColumn(order ports.Sort) string {
	column := "created_at"
	switch order.Key {
	case ports.SortKeyName:
		column = "name"
	case ports.SortKeyPrice:
		column = "price"
	case ports.SortKeyUpdatedAt:
		column = "updated_at"
	}
	if order.Desc {
		return column + " DESC"
	}
	return column + " ASC"
}

func activeRows(db *gorm.DB) *gorm.DB {
	return db.Where("deleted_at IS NULL")
}

// ProductRepository is the PostgreSQL product persistence adapter.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	record := toProductRecord(product)
	return r.db.WithContext(ctx).Create(&record).Error
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	record := toProductRecord(product)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&record)
	return result.Error
}

func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	var record productRecord
	err := activeRows(r.db.WithContext(ctx)).First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *ProductRepository) List(ctx context.Context, filter ports.ProductFilter, order ports.Sort, page pagination.Request) ([]*domain.Product, int64, error) {
	query := activeRows(r.db.WithContext(ctx).Model(&productRecord{}))
	if filter.ActiveOnly {
		query = query.Where("active = ?", true)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []productRecord
	if err := query.
		Order(sortColumn(order)).
		Order("id ASC").
		Offset(page.Offset()).
		Limit(page.PageSize).
		Find(&records).Error; err != nil {
		return nil, 0, err
	}
	products := make([]*domain.Product, 0, len(records))
	for _, record := range records {
		products = append(products, record.toDomain())
	}
	return products, total, nil
}

func (r *ProductRepository) ResolveActive(ctx context.Context, ids []uuid.UUID) ([]*domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var records []productRecord
	err := activeRows(r.db.WithContext(ctx)).
		Where("id IN ?", ids).
		Where("active = ?", true).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	products := make([]*domain.Product, 0, len(records))
	for _, record := range records {
		products = append(products, record.toDomain())
	}
	return products, nil
}

func toProductRecord(product *domain.Product) productRecord {
	return productRecord{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		ImageURL:    product.ImageURL,
		CategoryID:  product.CategoryID,
		Active:      product.Active,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
		DeletedAt:   product.DeletedAt,
	}
}

func (r productRecord) toDomain() *domain.Product {
	return &domain.Product{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		ImageURL:    r.ImageURL,
		CategoryID:  r.CategoryID,
		Active:      r.Active,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		DeletedAt:   r.DeletedAt,
	}
}

// CategoryRepository is the PostgreSQL category persistence adapter.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	record := categoryRecord{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
	err := r.db.WithContext(ctx).Create(&record).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return ports.ErrDuplicateName
	}
	return err
}

func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	var record categoryRecord
	err := activeRows(r.db.WithContext(ctx)).First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	var records []categoryRecord
	err := activeRows(r.db.WithContext(ctx)).Order("name ASC").Find(&records).Error
	if err != nil {
		return nil, err
	}
	categories := make([]*domain.Category, 0, len(records))
	for _, record := range records {
		categories = append(categories, record.toDomain())
	}
	return categories, nil
}

func (r categoryRecord) toDomain() *domain.Category {
	return &domain.Category{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		DeletedAt:   r.DeletedAt,
	}
}
