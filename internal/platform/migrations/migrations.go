package migrations

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&categoryRecord{},
		&productRecord{},
		&menuRecord{},
		&menuItemRecord{},
		&orderRecord{},
		&orderLineRecord{},
		&paymentRecord{},
		&userRecord{},
		&refreshTokenRecord{},
	)
}

// Category schema mirrors the catalog Postgres adapter.
type categoryRecord struct {
	ID          uuid.UUID  `gorm:"primaryKey;column:id;type:uuid"`
	Name        string     `gorm:"column:name;uniqueIndex"`
	Description string     `gorm:"column:description"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
	DeletedAt   *time.Time `gorm:"column:deleted_at;index"`
}

func (categoryRecord) TableName() string { return "categories" }

// Product schema mirrors the catalog Postgres adapter.
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

// Menu schema mirrors the menus Postgres adapter.
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

// Order schema mirrors the orders Postgres adapter.
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

// User schema mirrors the users Postgres adapter.
type userRecord struct {
	ID           uuid.UUID  `gorm:"primaryKey;column:id;type:uuid"`
	Email        string     `gorm:"column:email;uniqueIndex"`
	PasswordHash string     `gorm:"column:password_hash"`
	FullName     string     `gorm:"column:full_name"`
	Role         string     `gorm:"column:role;type:varchar(16);index"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
	DeletedAt    *time.Time `gorm:"column:deleted_at;index"`
}

func (userRecord) TableName() string { return "users" }

// Refresh token schema mirrors the users token store.
type refreshTokenRecord struct {
	Token           string     `gorm:"primaryKey;column:token;size:512"`
	UserID          uuid.UUID  `gorm:"column:user_id;type:uuid;index"`
	ExpiresAt       time.Time  `gorm:"column:expires_at;index"`
	RevokedAt       *time.Time `gorm:"column:revoked_at"`
	RevokedReason   string     `gorm:"column:revoked_reason"`
	ReplacedByToken string     `gorm:"column:replaced_by_token"`
	CreatedAt       time.Time  `gorm:"column:created_at;index"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
}

func (refreshTokenRecord) TableName() string { return "refresh_tokens" }
