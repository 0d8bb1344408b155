package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	cataloghttpmapper "github.com/brewlabs/coffee-store-api/internal/domains/catalog/adapters/http/mapper"
	catalogports "github.com/brewlabs/coffee-store-api/internal/domains/catalog/ports"
)

// ProductAPI wires HTTP transport with the catalog bounded context service.
type ProductAPI struct {
	service catalogports.Service
}

// NewProductAPI creates a ProductAPI backed by the provided service.
func NewProductAPI(service catalogports.Service) ProductAPI {
	return ProductAPI{service: service}
}

// Post /v1/products
// Add a new product to the catalog
func (api *ProductAPI) CreateProduct(c *gin.Context) {
	var payload cataloghttpmapper.ProductPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	product, err := api.service.CreateProduct(c.Request.Context(), cataloghttpmapper.ToProductInput(payload))
	if err != nil {
		respondCatalogServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cataloghttpmapper.FromDomainProduct(product))
}

// Put /v1/products/:productId
// Update an existing product
func (api *ProductAPI) UpdateProduct(c *gin.Context) {
	productID, ok := parseUUIDParam(c, "productId")
	if !ok {
		return
	}
	var payload cataloghttpmapper.ProductPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	product, err := api.service.UpdateProduct(c.Request.Context(), productID, cataloghttpmapper.ToProductInput(payload))
	if err != nil {
		respondCatalogServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromDomainProduct(product))
}

// Delete /v1/products/:productId
// Soft-deletes a product
func (api *ProductAPI) DeleteProduct(c *gin.Context) {
	productID, ok := parseUUIDParam(c, "productId")
	if !ok {
		return
	}
	if err := api.service.DeleteProduct(c.Request.Context(), productID); err != nil {
		respondCatalogServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get /v1/products/:productId
// Find product by ID
func (api *ProductAPI) GetProductById(c *gin.Context) {
	productID, ok := parseUUIDParam(c, "productId")
	if !ok {
		return
	}
	product, err := api.service.GetProductByID(c.Request.Context(), productID)
	if err != nil {
		respondCatalogServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromDomainProduct(product))
}

// Get /v1/products
// Lists products with search, category filter, and whitelisted sorting. The
// sort query accepts name, price, createdAt, or updatedAt, with a leading "-"
// for descending.
func (api *ProductAPI) ListProducts(c *gin.Context) {
	sort, err := catalogports.ParseSort(c.Query("sort"))
	if err != nil {
		respondCatalogServiceError(c, err)
		return
	}
	filter := catalogports.ProductFilter{
		Search:     c.Query("search"),
		ActiveOnly: c.Query("includeInactive") != "true",
	}
	if raw := c.Query("categoryId"); raw != "" {
		categoryID, err := uuid.Parse(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, err)
			return
		}
		filter.CategoryID = &categoryID
	}

	page, err := api.service.ListProducts(c.Request.Context(), catalogports.ListProductsInput{
		Filter: filter,
		Sort:   sort,
		Page:   parsePage(c),
	})
	if err != nil {
		respondCatalogServiceError(c, err)
		return
	}
	setPaginationHeader(c, page)
	c.JSON(http.StatusOK, cataloghttpmapper.FromDomainProductList(page.Results))
}

// Post /v1/categories
// Add a new product category
func (api *ProductAPI) CreateCategory(c *gin.Context) {
	var payload cataloghttpmapper.CategoryPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	category, err := api.service.CreateCategory(c.Request.Context(), cataloghttpmapper.ToCategoryInput(payload))
	if err != nil {
		respondCatalogServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cataloghttpmapper.FromDomainCategory(category))
}

// Get /v1/categories
// Lists all categories
func (api *ProductAPI) ListCategories(c *gin.Context) {
	categories, err := api.service.ListCategories(c.Request.Context())
	if err != nil {
		respondCatalogServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromDomainCategoryList(categories))
}
