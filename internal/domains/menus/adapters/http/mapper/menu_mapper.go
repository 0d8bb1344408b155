package mapper

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	menusdomain "github.com/brewlabs/coffee-store-api/internal/domains/menus/domain"
	menusports "github.com/brewlabs/coffee-store-api/internal/domains/menus/ports"
)

// MenuItemPayload is one requested product on a menu.
type MenuItemPayload struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required"`
}

// MenuPayload is the transport shape for menu mutations.
type MenuPayload struct {
	Name        string            `json:"name" binding:"required"`
	Description string            `json:"description"`
	FromDate    time.Time         `json:"fromDate" binding:"required"`
	ToDate      time.Time         `json:"toDate" binding:"required"`
	Items       []MenuItemPayload `json:"items" binding:"required"`
}

// Menu is the transport representation of a menu without resolved products.
type Menu struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	FromDate    time.Time  `json:"fromDate"`
	ToDate      time.Time  `json:"toDate"`
	Items       []MenuItem `json:"items"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// MenuItem is the transport shape of one menu entry.
type MenuItem struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

// MenuDetails adds resolved product data to each item.
type MenuDetails struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	FromDate    time.Time         `json:"fromDate"`
	ToDate      time.Time         `json:"toDate"`
	Items       []MenuItemDetails `json:"items"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// MenuItemDetails is a menu entry joined with current product data.
type MenuItemDetails struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"productId"`
	ProductName string          `json:"productName,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// ToMenuInput converts the transport payload into the service input.
func ToMenuInput(payload MenuPayload) menusports.MenuInput {
	items := make([]menusports.ItemInput, 0, len(payload.Items))
	for _, item := range payload.Items {
		items = append(items, menusports.ItemInput{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return menusports.MenuInput{
		Name:        payload.Name,
		Description: payload.Description,
		FromDate:    payload.FromDate,
		ToDate:      payload.ToDate,
		Items:       items,
	}
}

// FromDomainMenu converts a domain menu to transport.
func FromDomainMenu(menu *menusdomain.Menu) Menu {
	if menu == nil {
		return Menu{}
	}
	items := make([]MenuItem, 0, len(menu.Items))
	for _, item := range menu.Items {
		items = append(items, MenuItem{ID: item.ID, ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return Menu{
		ID:          menu.ID,
		Name:        menu.Name,
		Description: menu.Description,
		FromDate:    menu.FromDate,
		ToDate:      menu.ToDate,
		Items:       items,
		CreatedAt:   menu.CreatedAt,
		UpdatedAt:   menu.UpdatedAt,
	}
}

// FromDomainMenuList converts a page of menus.
func FromDomainMenuList(menus []*menusdomain.Menu) []Menu {
	result := make([]Menu, 0, len(menus))
	for _, menu := range menus {
		result = append(result, FromDomainMenu(menu))
	}
	return result
}

// FromMenuDetails converts the resolved projection to transport.
func FromMenuDetails(details *menusports.MenuDetails) MenuDetails {
	if details == nil || details.Menu == nil {
		return MenuDetails{}
	}
	items := make([]MenuItemDetails, 0, len(details.Items))
	for _, item := range details.Items {
		items = append(items, MenuItemDetails{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	return MenuDetails{
		ID:          details.Menu.ID,
		Name:        details.Menu.Name,
		Description: details.Menu.Description,
		FromDate:    details.Menu.FromDate,
		ToDate:      details.Menu.ToDate,
		Items:       items,
		CreatedAt:   details.Menu.CreatedAt,
		UpdatedAt:   details.Menu.UpdatedAt,
	}
}
