package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	usersdomain "github.com/brewlabs/coffee-store-api/internal/domains/users/domain"
	"github.com/brewlabs/coffee-store-api/internal/platform/auth"
)

// ApiHandleFunctions groups the per-context API handlers the router mounts.
type ApiHandleFunctions struct {
	OrderAPI   OrderAPI
	ProductAPI ProductAPI
	MenuAPI    MenuAPI
	UserAPI    UserAPI
	PaymentAPI PaymentAPI
}

// NewRouter mounts all routes under /v1. Catalog and menu reads plus the auth
// endpoints are public; order and account routes require a bearer token, and
// catalog/menu writes require the admin role.
func NewRouter(handlers ApiHandleFunctions, manager *auth.Manager, middleware ...gin.HandlerFunc) *gin.Engine {
	router := gin.Default()
	router.Use(middleware...)
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/v1")

	v1.POST("/auth/register", handlers.UserAPI.Register)
	v1.POST("/auth/login", handlers.UserAPI.Login)
	v1.POST("/auth/refresh", handlers.UserAPI.Refresh)
	v1.POST("/auth/logout", handlers.UserAPI.Logout)

	v1.GET("/products", handlers.ProductAPI.ListProducts)
	// The v2 listing shares the handler; sort and search are additive, so the
	// old route keeps working for clients that never send them.
	router.GET("/v2/products", handlers.ProductAPI.ListProducts)
	v1.GET("/products/:productId", handlers.ProductAPI.GetProductById)
	v1.GET("/categories", handlers.ProductAPI.ListCategories)
	v1.GET("/menus", handlers.MenuAPI.ListMenus)
	v1.GET("/menus/:menuId", handlers.MenuAPI.GetMenuById)

	// The gateway calls this endpoint directly; it authenticates with its
	// HMAC signature instead of a bearer token.
	v1.GET("/payments/vnpay/ipn", handlers.PaymentAPI.VNPayIPN)

	authenticated := v1.Group("", Authenticate(manager))
	authenticated.POST("/auth/logout-all", handlers.UserAPI.LogoutAll)
	authenticated.GET("/users/me", handlers.UserAPI.Me)

	authenticated.POST("/orders", handlers.OrderAPI.CreateOrder)
	authenticated.GET("/orders", handlers.OrderAPI.ListOrders)
	authenticated.GET("/orders/:orderId", handlers.OrderAPI.GetOrder)
	authenticated.PUT("/orders/:orderId", handlers.OrderAPI.UpdateOrder)
	authenticated.PATCH("/orders/:orderId/status", handlers.OrderAPI.UpdateOrderStatus)
	authenticated.GET("/orders/:orderId/payment-url", handlers.PaymentAPI.GetPaymentURL)

	admin := authenticated.Group("", RequireRole(usersdomain.RoleAdmin))
	admin.POST("/products", handlers.ProductAPI.CreateProduct)
	admin.PUT("/products/:productId", handlers.ProductAPI.UpdateProduct)
	admin.DELETE("/products/:productId", handlers.ProductAPI.DeleteProduct)
	admin.POST("/categories", handlers.ProductAPI.CreateCategory)
	admin.POST("/menus", handlers.MenuAPI.CreateMenu)
	admin.PUT("/menus/:menuId", handlers.MenuAPI.UpdateMenu)
	admin.DELETE("/menus/:menuId", handlers.MenuAPI.DeleteMenu)

	return router
}
