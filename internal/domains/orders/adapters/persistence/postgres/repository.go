package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/brewlabs/coffee-store-api/internal/domains/orders/domain"
	"github.com/brewlabs/coffee-store-api/internal/domains/orders/ports"
	"github.com/brewlabs/coffee-store-api/internal/shared/pagination"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM. Every mutation runs in
// a single transaction; Mutate additionally takes a row lock on the order so
// concurrent lifecycle requests serialize.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// orderRecord maps the order aggregate root to a relational table.
type orderRecord struct {
	ID        uuid.UUID  `gorm:"primaryKey;column:id;type:uuid"`
	UserID    string     `gorm:"column:user_id;index"`
	OrderDate time.Time  `gorm:"column:order_date;index:idx_orders_date_id,priority:1"`
	Status    string     `gorm:"column:status;type:varchar(32);index"`
	PaymentID *uuid.UUID `gorm:"column:payment_id;type:uuid"`
	CreatedAt time.Time  `gorm:"column:created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at"`
	DeletedAt *time.Time `gorm:"column:deleted_at;index"`
}

func (orderRecord) TableName() string { return "orders" }

// orderLineRecord holds one captured product/price pair of an order.
type orderLineRecord struct {
	ID          uuid.UUID       `gorm:"primaryKey;column:id;type:uuid"`
	OrderID     uuid.UUID       `gorm:"column:order_id;type:uuid;index"`
	ProductID   uuid.UUID       `gorm:"column:product_id;type:uuid"`
	ProductName string          `gorm:"column:product_name"`
	Quantity    int             `gorm:"column:quantity"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2)"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
}

func (orderLineRecord) TableName() string { return "order_lines" }

// paymentRecord stores the completed gateway payment linked to an order.
type paymentRecord struct {
	ID        uuid.UUID       `gorm:"primaryKey;column:id;type:uuid"`
	OrderID   uuid.UUID       `gorm:"column:order_id;type:uuid;uniqueIndex"`
	Amount    decimal.Decimal `gorm:"column:amount;type:numeric(12,2)"`
	PaidAt    time.Time       `gorm:"column:paid_at"`
	Method    string          `gorm:"column:method;type:varchar(16)"`
	CreatedAt time.Time       `gorm:"column:created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

func (paymentRecord) TableName() string { return "payments" }

// active excludes soft-deleted orders on every read path.
func active(db *gorm.DB) *gorm.DB {
	return db.Where("deleted_at IS NULL")
}

// Create persists the order and its lines in one transaction.
func (r *Repository) Create(ctx context.Context, order *domain.Order) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	if order == nil {
		return errors.New("order is nil")
	}
	record, lines := toRecords(order)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		return tx.Create(&lines).Error
	})
}

// GetByID loads the aggregate with lines and payment.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	return loadOrder(r.db.WithContext(ctx), id, false)
}

// Mutate locks the order row, applies fn, and persists the result.
func (r *Repository) Mutate(ctx context.Context, id uuid.UUID, fn func(*domain.Order) error) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := loadOrder(tx, id, true)
		if err != nil {
			return err
		}
		hadPayment := order.Payment != nil
		if err := fn(order); err != nil {
			return err
		}
		return persistMutation(tx, order, hadPayment)
	})
}

// List returns one page, newest OrderDate first with id as the unique
// tie-breaker so rows cannot repeat or vanish across pages.
func (r *Repository) List(ctx context.Context, filter ports.Filter, page pagination.Request) ([]*domain.Order, int64, error) {
	if err := r.ensureDB(); err != nil {
		return nil, 0, err
	}
	query := active(r.db.WithContext(ctx).Model(&orderRecord{}))
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.FromDate != nil {
		query = query.Where("order_date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("order_date <= ?", *filter.ToDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []orderRecord
	if err := query.
		Order("order_date DESC").
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
	for _, rec := range records {
		ids = append(ids, rec.ID)
	}
	var lineRecords []orderLineRecord
	if err := r.db.WithContext(ctx).Where("order_id IN ?", ids).Find(&lineRecords).Error; err != nil {
		return nil, 0, err
	}
	linesByOrder := make(map[uuid.UUID][]orderLineRecord, len(records))
	for _, line := range lineRecords {
		linesByOrder[line.OrderID] = append(linesByOrder[line.OrderID], line)
	}
	var payments []paymentRecord
	if err := r.db.WithContext(ctx).Where("order_id IN ?", ids).Find(&payments).Error; err != nil {
		return nil, 0, err
	}
	paymentByOrder := make(map[uuid.UUID]paymentRecord, len(payments))
	for _, payment := range payments {
		paymentByOrder[payment.OrderID] = payment
	}

	orders := make([]*domain.Order, 0, len(records))
	for _, rec := range records {
		order := rec.toDomain(linesByOrder[rec.ID])
		if payment, ok := paymentByOrder[rec.ID]; ok {
			order.Payment = payment.toDomain()
		}
		orders = append(orders, order)
	}
	return orders, total, nil
}

func loadOrder(tx *gorm.DB, id uuid.UUID, forUpdate bool) (*domain.Order, error) {
	query := active(tx)
	if forUpdate {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var record orderRecord
	if err := query.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	var lines []orderLineRecord
	if err := tx.Where("order_id = ?", id).Find(&lines).Error; err != nil {
		return nil, err
	}
	order := record.toDomain(lines)
	var payment paymentRecord
	err := tx.First(&payment, "order_id = ?", id).Error
	switch {
	case err == nil:
		order.Payment = payment.toDomain()
	case errors.Is(err, gorm.ErrRecordNotFound):
		// no payment yet
	default:
		return nil, err
	}
	return order, nil
}

func persistMutation(tx *gorm.DB, order *domain.Order, hadPayment bool) error {
	record, lines := toRecords(order)
	if err := tx.Model(&orderRecord{}).Where("id = ?", order.ID).Updates(map[string]any{
		"status":     record.Status,
		"payment_id": record.PaymentID,
		"updated_at": record.UpdatedAt,
	}).Error; err != nil {
		return err
	}
	if err := tx.Where("order_id = ?", order.ID).Delete(&orderLineRecord{}).Error; err != nil {
		return err
	}
	if err := tx.Create(&lines).Error; err != nil {
		return err
	}
	if order.Payment != nil && !hadPayment {
		payment := toPaymentRecord(order.Payment, order.UpdatedAt)
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecords(order *domain.Order) (orderRecord, []orderLineRecord) {
	record := orderRecord{
		ID:        order.ID,
		UserID:    order.UserID,
		OrderDate: order.OrderDate,
		Status:    string(order.Status),
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
		DeletedAt: order.DeletedAt,
	}
	if order.Payment != nil {
		id := order.Payment.ID
		record.PaymentID = &id
	}
	lines := make([]orderLineRecord, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, orderLineRecord{
			ID:          line.ID,
			OrderID:     order.ID,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			CreatedAt:   order.UpdatedAt,
			UpdatedAt:   order.UpdatedAt,
		})
	}
	return record, lines
}

func toPaymentRecord(payment *domain.Payment, now time.Time) paymentRecord {
	return paymentRecord{
		ID:        payment.ID,
		OrderID:   payment.OrderID,
		Amount:    payment.Amount,
		PaidAt:    payment.PaidAt,
		Method:    string(payment.Method),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (r orderRecord) toDomain(lines []orderLineRecord) *domain.Order {
	order := &domain.Order{
		ID:        r.ID,
		UserID:    r.UserID,
		OrderDate: r.OrderDate,
		Status:    domain.Status(r.Status),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
		DeletedAt: r.DeletedAt,
	}
	order.Lines = make([]domain.Line, 0, len(lines))
	for _, line := range lines {
		order.Lines = append(order.Lines, domain.Line{
			ID:          line.ID,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
		})
	}
	return order
}

func (p paymentRecord) toDomain() *domain.Payment {
	return &domain.Payment{
		ID:      p.ID,
		OrderID: p.OrderID,
		Amount:  p.Amount,
		PaidAt:  p.PaidAt,
		Method:  domain.PaymentMethod(p.Method),
	}
}
