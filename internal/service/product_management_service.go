package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/playfiesta/store_api/internal/models"
	"github.com/playfiesta/store_api/internal/repository"
	"github.com/playfiesta/store_api/internal/utils"
)

// ProductStore is the product write surface for the admin panel.
// Implemented by *repository.ProductRepository.
type ProductStore interface {
	ListPaged(f repository.ProductFilter) ([]models.Product, int, error)
	GetByID(id int) (*models.Product, error)
	ExistsSlug(slug string, excludeID int) (bool, error)
	Create(p *models.Product) error
	Update(p *models.Product) error
	Delete(id int) error
}

// CategoryGetter resolves categories when validating product writes.
type CategoryGetter interface {
	GetByID(id int) (*models.Category, error)
}

// CacheInvalidator drops cached catalog pages after admin mutations.
// Implemented by *cache.CatalogCache.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, divisions ...string)
}

// ProductManagementService handles admin product CRUD.
type ProductManagementService struct {
	products   ProductStore
	categories CategoryGetter
	cache      CacheInvalidator
}

// NewProductManagementService constructs a ProductManagementService.
// cache may be nil.
func NewProductManagementService(products ProductStore, categories CategoryGetter, cache CacheInvalidator) *ProductManagementService {
	return &ProductManagementService{products: products, categories: categories, cache: cache}
}

// SaveProductRequest is the admin product form input, shared between create
// and update.
type SaveProductRequest struct {
	Title           string           `json:"title" binding:"required"`
	Slug            string           `json:"slug"`
	Price           decimal.Decimal  `json:"price" binding:"required"`
	Stock           int              `json:"stock" binding:"min=0"`
	IsAvailable     bool             `json:"isAvailable"`
	Division        string           `json:"division" binding:"required"`
	CategoryID      int              `json:"categoryId" binding:"required"`
	Images          []string         `json:"images"`
	WholesalePrice  *decimal.Decimal `json:"wholesalePrice"`
	WholesaleMinQty *int             `json:"wholesaleMinQty"`
	DiscountPercent *decimal.Decimal `json:"discountPercent"`
	Barcode         *string          `json:"barcode"`
}

// ListProducts returns a page of products for the admin panel.
func (s *ProductManagementService) ListProducts(f repository.ProductFilter) ([]models.Product, int, error) {
	return s.products.ListPaged(f)
}

// GetProduct returns a product by id.
func (s *ProductManagementService) GetProduct(id int) (*models.Product, error) {
	product, err := s.products.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// CreateProduct validates and inserts a new product. The slug defaults to a
// slugified title and must be unique system-wide.
func (s *ProductManagementService) CreateProduct(ctx context.Context, req *SaveProductRequest) (*models.Product, error) {
	product, err := s.buildProduct(req, 0)
	if err != nil {
		return nil, err
	}
	if err := s.products.Create(product); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, utils.ErrSlugExists
		}
		return nil, err
	}
	s.invalidate(ctx)
	return product, nil
}

// UpdateProduct validates and rewrites an existing product.
func (s *ProductManagementService) UpdateProduct(ctx context.Context, id int, req *SaveProductRequest) (*models.Product, error) {
	if _, err := s.GetProduct(id); err != nil {
		return nil, err
	}
	product, err := s.buildProduct(req, id)
	if err != nil {
		return nil, err
	}
	product.ID = id
	if err := s.products.Update(product); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, utils.ErrSlugExists
		}
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrProductNotFound
		}
		return nil, err
	}
	s.invalidate(ctx)
	return s.GetProduct(id)
}

// DeleteProduct removes a product.
func (s *ProductManagementService) DeleteProduct(ctx context.Context, id int) error {
	if err := s.products.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return utils.ErrProductNotFound
		}
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *ProductManagementService) buildProduct(req *SaveProductRequest, excludeID int) (*models.Product, error) {
	division := models.Division(req.Division)
	if !division.Valid() {
		return nil, utils.ErrInvalidDivision
	}
	if _, err := s.categories.GetByID(req.CategoryID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrCategoryNotFound
		}
		return nil, err
	}

	slug := req.Slug
	if slug == "" {
		slug = utils.Slugify(req.Title)
	}
	taken, err := s.products.ExistsSlug(slug, excludeID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, utils.ErrSlugExists
	}

	if req.Stock < 0 {
		return nil, utils.ErrInsufficientStock
	}

	return &models.Product{
		Title:           req.Title,
		Slug:            slug,
		Price:           req.Price,
		Stock:           req.Stock,
		IsAvailable:     req.IsAvailable,
		Division:        division,
		CategoryID:      req.CategoryID,
		Images:          pq.StringArray(req.Images),
		WholesalePrice:  req.WholesalePrice,
		WholesaleMinQty: req.WholesaleMinQty,
		DiscountPercent: req.DiscountPercent,
		Barcode:         req.Barcode,
	}, nil
}

func (s *ProductManagementService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, string(models.DivisionToys), string(models.DivisionParty))
	}
}
