package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	menushttpmapper "github.com/brewlabs/coffee-store-api/internal/domains/menus/adapters/http/mapper"
	menusports "github.com/brewlabs/coffee-store-api/internal/domains/menus/ports"
)

// MenuAPI wires HTTP transport with the menus bounded context service.
type MenuAPI struct {
	service menusports.Service
}

// NewMenuAPI creates a MenuAPI backed by the provided service.
func NewMenuAPI(service menusports.Service) MenuAPI {
	return MenuAPI{service: service}
}

// Post /v1/menus
// Add a new menu
func (api *MenuAPI) CreateMenu(c *gin.Context) {
	var payload menushttpmapper.MenuPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	menu, err := api.service.CreateMenu(c.Request.Context(), menushttpmapper.ToMenuInput(payload))
	if err != nil {
		respondMenuServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, menushttpmapper.FromDomainMenu(menu))
}

// Put /v1/menus/:menuId
// Update an existing menu
func (api *MenuAPI) UpdateMenu(c *gin.Context) {
	menuID, ok := parseUUIDParam(c, "menuId")
	if !ok {
		return
	}
	var payload menushttpmapper.MenuPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	menu, err := api.service.UpdateMenu(c.Request.Context(), menuID, menushttpmapper.ToMenuInput(payload))
	if err != nil {
		respondMenuServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, menushttpmapper.FromDomainMenu(menu))
}

// Delete /v1/menus/:menuId
// Soft-deletes a menu
func (api *MenuAPI) DeleteMenu(c *gin.Context) {
	menuID, ok := parseUUIDParam(c, "menuId")
	if !ok {
		return
	}
	if err := api.service.DeleteMenu(c.Request.Context(), menuID); err != nil {
		respondMenuServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get /v1/menus/:menuId
// Loads a menu with its items joined against current product data.
func (api *MenuAPI) GetMenuById(c *gin.Context) {
	menuID, ok := parseUUIDParam(c, "menuId")
	if !ok {
		return
	}
	details, err := api.service.GetMenuByID(c.Request.Context(), menuID)
	if err != nil {
		respondMenuServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, menushttpmapper.FromMenuDetails(details))
}

// Get /v1/menus
// Lists menus. The activeOn query keeps menus whose date range covers the
// given day (RFC 3339 date).
func (api *MenuAPI) ListMenus(c *gin.Context) {
	filter := menusports.Filter{Name: c.Query("name")}
	if raw := c.Query("activeOn"); raw != "" {
		parsed, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, err)
			return
		}
		filter.ActiveOn = &parsed
	}

	page, err := api.service.ListMenus(c.Request.Context(), menusports.ListMenusInput{
		Filter: filter,
		Page:   parsePage(c),
	})
	if err != nil {
		respondMenuServiceError(c, err)
		return
	}
	setPaginationHeader(c, page)
	c.JSON(http.StatusOK, menushttpmapper.FromDomainMenuList(page.Results))
}
