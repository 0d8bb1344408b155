package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	ordershttpmapper "github.com/brewlabs/coffee-store-api/internal/domains/orders/adapters/http/mapper"
	ordersdomain "github.com/brewlabs/coffee-store-api/internal/domains/orders/domain"
	ordersports "github.com/brewlabs/coffee-store-api/internal/domains/orders/ports"
)

// OrderAPI wires HTTP transport with the orders bounded context service.
type OrderAPI struct {
	service ordersports.Service
}

// NewOrderAPI creates an OrderAPI backed by the provided service.
func NewOrderAPI(service ordersports.Service) OrderAPI {
	return OrderAPI{service: service}
}

type createOrderPayload struct {
	Items []ordershttpmapper.OrderItem `json:"items" binding:"required"`
}

type updateOrderPayload struct {
	Items []ordershttpmapper.OrderItem `json:"items" binding:"required"`
}

type orderStatusPayload struct {
	Status string `json:"status" binding:"required"`
}

// Post /v1/orders
// Opens a new order in the editing state for the authenticated user.
func (api *OrderAPI) CreateOrder(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, errors.New("authentication required"))
		return
	}
	var payload createOrderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	input := ordersports.CreateOrderInput{
		UserID: claims.UserID.String(),
		Items:  ordershttpmapper.ToLineInputs(payload.Items),
	}
	orderID, err := api.service.CreateOrder(c.Request.Context(), input)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	order, err := api.service.GetOrderByID(c.Request.Context(), orderID)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ordershttpmapper.FromDomainOrder(order))
}

// Put /v1/orders/:orderId
// Replaces the line set of an editing order. Prices are re-captured from the
// current catalog.
func (api *OrderAPI) UpdateOrder(c *gin.Context) {
	orderID, ok := parseUUIDParam(c, "orderId")
	if !ok {
		return
	}
	var payload updateOrderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if !api.authorizeOrderAccess(c, orderID) {
		return
	}
	if err := api.service.UpdateOrder(c.Request.Context(), orderID, ordershttpmapper.ToLineInputs(payload.Items)); err != nil {
		respondOrderServiceError(c, err)
		return
	}
	order, err := api.service.GetOrderByID(c.Request.Context(), orderID)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordershttpmapper.FromDomainOrder(order))
}

// Patch /v1/orders/:orderId/status
// Moves the order through its lifecycle.
func (api *OrderAPI) UpdateOrderStatus(c *gin.Context) {
	orderID, ok := parseUUIDParam(c, "orderId")
	if !ok {
		return
	}
	var payload orderStatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if !api.authorizeOrderAccess(c, orderID) {
		return
	}
	if err := api.service.SetOrderStatus(c.Request.Context(), orderID, ordersdomain.Status(payload.Status)); err != nil {
		respondOrderServiceError(c, err)
		return
	}
	order, err := api.service.GetOrderByID(c.Request.Context(), orderID)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordershttpmapper.FromDomainOrder(order))
}

// Get /v1/orders/:orderId
// Loads one order with its lines and payment.
func (api *OrderAPI) GetOrder(c *gin.Context) {
	orderID, ok := parseUUIDParam(c, "orderId")
	if !ok {
		return
	}
	claims, ok := claimsFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, errors.New("authentication required"))
		return
	}
	order, err := api.service.GetOrderByID(c.Request.Context(), orderID)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	if !isAdmin(claims) && order.UserID != claims.UserID.String() {
		respondError(c, http.StatusForbidden, errors.New("order belongs to another user"))
		return
	}
	c.JSON(http.StatusOK, ordershttpmapper.FromDomainOrder(order))
}

// Get /v1/orders
// Lists order summaries newest first. Customers only see their own orders;
// admins may filter by any user.
func (api *OrderAPI) ListOrders(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, errors.New("authentication required"))
		return
	}
	filter := ordersports.Filter{UserID: c.Query("userId")}
	if !isAdmin(claims) {
		filter.UserID = claims.UserID.String()
	}
	if raw := c.Query("status"); raw != "" {
		status, err := ordersdomain.ParseStatus(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, err)
			return
		}
		filter.Status = &status
	}
	if raw := c.Query("fromDate"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, err)
			return
		}
		filter.FromDate = &parsed
	}
	if raw := c.Query("toDate"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, err)
			return
		}
		filter.ToDate = &parsed
	}

	page, err := api.service.ListOrders(c.Request.Context(), ordersports.ListOrdersInput{
		Filter: filter,
		Page:   parsePage(c),
	})
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	setPaginationHeader(c, page)
	c.JSON(http.StatusOK, ordershttpmapper.FromSummaryList(page.Results))
}

// authorizeOrderAccess loads the order and rejects customers touching orders
// that are not theirs. Admins pass through.
func (api *OrderAPI) authorizeOrderAccess(c *gin.Context, orderID uuid.UUID) bool {
	claims, ok := claimsFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, errors.New("authentication required"))
		return false
	}
	if isAdmin(claims) {
		return true
	}
	order, err := api.service.GetOrderByID(c.Request.Context(), orderID)
	if err != nil {
		respondOrderServiceError(c, err)
		return false
	}
	if order.UserID != claims.UserID.String() {
		respondError(c, http.StatusForbidden, errors.New("order belongs to another user"))
		return false
	}
	return true
}
