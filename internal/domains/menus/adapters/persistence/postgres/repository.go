package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brewlabs/coffee-store-api/internal/domains/menus/domain"
	"github.com/brewlabs/coffee-store-api/internal/domains/menus/ports"
	"github.com/brewlabs/coffee-store-api/internal/shared/pagination"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists menus in PostgreSQL. Items are replaced as a whole on
// every update, mirroring the aggregate semantics.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type menuRecord struct {
	ID          uuid.UUID  `gorm:"primaryKey;column:id;type:uuid"`
	Name        string     `gorm:"column:name;index"`
	Description string     `gorm:"column:description"`
	FromDate    time.Time  `gorm:"column:from_date;index"`
	ToDate      time.Time  `gorm:"column:to_date;index"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
	DeletedAt   *time.Time `gorm:"column:deleted_at;index"`
}

func (menuRecord) TableName() string { return "menus" }

type menuItemRecord struct {
	ID        uuid.UUID `gorm:"primaryKey;column:id;type:uuid"`
	MenuID    uuid.UUID `gorm:"column:menu_id;type:uuid;index:idx_menu_items_menu_product,priority:1"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;index:idx_menu_items_menu_product,priority:2"`
	Quantity  int       `gorm:"column:quantity"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (menuItemRecord) TableName() string { return "menu_items" }

func active(db *gorm.DB) *gorm.DB {
	return db.Where("deleted_at IS NULL")
}

func (r *Repository) Create(ctx context.Context, menu *domain.Menu) error {
	record, items := toRecords(menu)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		return tx.Create(&items).Error
	})
}

func (r *Repository) Update(ctx context.Context, menu *domain.Menu) error {
	record, items := toRecords(menu)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&menuRecord{}).Where("id = ?", menu.ID).Updates(map[string]any{
			"name":        record.Name,
			"description": record.Description,
			"from_date":   record.FromDate,
			"to_date":     record.ToDate,
			"updated_at":  record.UpdatedAt,
			"deleted_at":  record.DeletedAt,
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ports.ErrNotFound
		}
		if err := tx.Where("menu_id = ?", menu.ID).Delete(&menuItemRecord{}).Error; err != nil {
			return err
		}
		return tx.Create(&items).Error
	})
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Menu, error) {
	var record menuRecord
	err := active(r.db.WithContext(ctx)).First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	var items []menuItemRecord
	if err := r.db.WithContext(ctx).Where("menu_id = ?", id).Find(&items).Error; err != nil {
		return nil, err
	}
	return record.toDomain(items), nil
}

func (r *Repository) List(ctx context.Context, filter ports.Filter, page pagination.Request) ([]*domain.Menu, int64, error) {
	query := active(r.db.WithContext(ctx).Model(&menuRecord{}))
	if name := strings.TrimSpace(filter.Name); name != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	if filter.ActiveOn != nil {
		query = query.Where("from_date <= ? AND to_date >= ?", *filter.ActiveOn, *filter.ActiveOn)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []menuRecord
	if err := query.
		Order("from_date DESC").
		Order("id DESC").
		Offset(page.Offset()).
		Limit(page.PageSize).
		Find(&records).Error; err != nil {
		return nil, 0, err
	}
	if len(records) == 0 {
		return nil, total, nil
	}

	ids := make([]uuid.UUID, 0, len(records))
	for _, record := range records {
		ids = append(ids, record.ID)
	}
	var items []menuItemRecord
	if err := r.db.WithContext(ctx).Where("menu_id IN ?", ids).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	itemsByMenu := make(map[uuid.UUID][]menuItemRecord, len(records))
	for _, item := range items {
		itemsByMenu[item.MenuID] = append(itemsByMenu[item.MenuID], item)
	}

	menus := make([]*domain.Menu, 0, len(records))
	for _, record := range records {
		menus = append(menus, record.toDomain(itemsByMenu[record.ID]))
	}
	return menus, total, nil
}

func toRecords(menu *domain.Menu) (menuRecord, []menuItemRecord) {
	record := menuRecord{
		ID:          menu.ID,
		Name:        menu.Name,
		Description: menu.Description,
		FromDate:    menu.FromDate,
		ToDate:      menu.ToDate,
		CreatedAt:   menu.CreatedAt,
		UpdatedAt:   menu.UpdatedAt,
		DeletedAt:   menu.DeletedAt,
	}
	items := make([]menuItemRecord, 0, len(menu.Items))
	for _, item := range menu.Items {
		items = append(items, menuItemRecord{
			ID:        item.ID,
			MenuID:    menu.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			CreatedAt: menu.UpdatedAt,
			UpdatedAt: menu.UpdatedAt,
		})
	}
	return record, items
}

func (r menuRecord) toDomain(items []menuItemRecord) *domain.Menu {
	menu := &domain.Menu{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		FromDate:    r.FromDate,
		ToDate:      r.ToDate,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		DeletedAt:   r.DeletedAt,
	}
	menu.Items = make([]domain.MenuItem, 0, len(items))
	for _, item := range items {
		menu.Items = append(menu.Items, domain.MenuItem{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	return menu
}
