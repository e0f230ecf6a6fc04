package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/playfiesta/store_api/internal/models"
	"github.com/playfiesta/store_api/internal/repository"
	"github.com/playfiesta/store_api/internal/service"
	"github.com/playfiesta/store_api/internal/utils"
)

// CatalogHandler serves the public storefront catalog.
type CatalogHandler struct {
	catalogService  *service.CatalogService
	categoryService *service.CategoryService
}

// NewCatalogHandler constructs a CatalogHandler.
func NewCatalogHandler(catalogService *service.CatalogService, categoryService *service.CategoryService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService, categoryService: categoryService}
}

// ListProducts handles GET /v1/store/:division/products
// A failed read degrades to an empty page (success=false in the payload)
// so the storefront renders an empty state instead of an error.
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	division := models.ParseDivision(c.Param("division"))

	filter := repository.ProductFilter{
		Division:      division,
		CategorySlug:  c.Query("category"),
		Search:        c.Query("search"),
		OnlyAvailable: c.DefaultQuery("all", "") != "true",
		Page:          1,
		Limit:         20,
	}
	if page := c.Query("page"); page != "" {
		if p, err := strconv.Atoi(page); err == nil {
			filter.Page = p
		}
	}
	if limit := c.Query("limit"); limit != "" {
		if l, err := strconv.Atoi(limit); err == nil {
			filter.Limit = l
		}
	}

	page := h.catalogService.ListProducts(c.Request.Context(), filter)
	utils.SuccessWithPagination(c, 200, "Products retrieved", page, page.Page, page.Limit, page.TotalItems)
}

// GetProduct handles GET /v1/store/:division/products/:slug
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	division := models.ParseDivision(c.Param("division"))

	product, err := h.catalogService.GetProductBySlug(division, c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, 200, "Product retrieved", product)
}

// ListCategories handles GET /v1/store/:division/categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	division := models.ParseDivision(c.Param("division"))

	categories, err := h.categoryService.ListCategories(division)
	if err != nil {
		// Degrade to an empty list; the storefront nav simply renders empty.
		categories = []models.Category{}
	}
	utils.Success(c, 200, "Categories retrieved", categories)
}
