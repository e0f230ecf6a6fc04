package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/playfiesta/store_api/internal/models"
	"github.com/playfiesta/store_api/internal/repository"
	"github.com/playfiesta/store_api/internal/utils"
)

// CatalogStore is the product read surface for the storefront. Implemented
// by *repository.ProductRepository.
type CatalogStore interface {
	ListPaged(f repository.ProductFilter) ([]models.Product, int, error)
	GetBySlug(division models.Division, slug string) (*models.Product, error)
	GetByBarcode(barcode string) (*models.Product, error)
}

// PageCache caches serialized catalog pages. Implemented by
// *cache.CatalogCache.
type PageCache interface {
	Get(ctx context.Context, division string) ([]byte, bool)
	Set(ctx context.Context, division string, payload []byte)
}

// CatalogService resolves products for storefront and POS display.
type CatalogService struct {
	products CatalogStore
	cache    PageCache
}

// NewCatalogService constructs a CatalogService. cache may be nil.
func NewCatalogService(products CatalogStore, cache PageCache) *CatalogService {
	return &CatalogService{products: products, cache: cache}
}

// ProductView is the presentation shape of a product. Prices are converted
// from decimal to plain floats here, at the boundary, and nowhere else.
type ProductView struct {
	ID              int      `json:"id"`
	Title           string   `json:"title"`
	Slug            string   `json:"slug"`
	Price           float64  `json:"price"`
	Stock           int      `json:"stock"`
	IsAvailable     bool     `json:"isAvailable"`
	Division        string   `json:"division"`
	CategoryName    string   `json:"categoryName"`
	Images          []string `json:"images"`
	WholesalePrice  *float64 `json:"wholesalePrice,omitempty"`
	WholesaleMinQty *int     `json:"wholesaleMinQty,omitempty"`
	DiscountPercent *float64 `json:"discountPercent,omitempty"`
	Barcode         string   `json:"barcode,omitempty"`
}

// CatalogPage is the paged catalog result. Success=false signals a degraded
// (empty-state) page after a data-access failure; callers render it rather
// than surfacing an error to the shopper.
type CatalogPage struct {
	Success    bool          `json:"success"`
	Products   []ProductView `json:"products"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalItems int           `json:"totalItems"`
	TotalPages int           `json:"totalPages"`
}

// ListProducts returns a catalog page for a division. The unfiltered first
// page is served from the 60s cache when possible; staleness within that
// window is accepted. On storage failure the page degrades to empty with
// Success=false instead of returning an error.
func (s *CatalogService) ListProducts(ctx context.Context, f repository.ProductFilter) *CatalogPage {
	cacheable := s.cache != nil && f.Page <= 1 && f.CategorySlug == "" && f.Search == "" && f.OnlyAvailable
	if cacheable {
		if payload, ok := s.cache.Get(ctx, string(f.Division)); ok {
			var page CatalogPage
			if err := json.Unmarshal(payload, &page); err == nil {
				return &page
			}
		}
	}

	products, total, err := s.products.ListPaged(f)
	if err != nil {
		log.Error().Err(err).Str("division", string(f.Division)).Msg("catalog query failed")
		return &CatalogPage{Success: false, Products: []ProductView{}, Page: f.Page, Limit: f.Limit}
	}

	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = 20
	}
	page := &CatalogPage{
		Success:    true,
		Products:   toProductViews(products),
		Page:       f.Page,
		Limit:      f.Limit,
		TotalItems: total,
		TotalPages: (total + f.Limit - 1) / f.Limit,
	}

	if cacheable {
		if payload, err := json.Marshal(page); err == nil {
			s.cache.Set(ctx, string(f.Division), payload)
		}
	}
	return page
}

// GetProductBySlug returns a single product view for a division.
func (s *CatalogService) GetProductBySlug(division models.Division, slug string) (*ProductView, error) {
	product, err := s.products.GetBySlug(division, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrProductNotFound
		}
		return nil, err
	}
	view := toProductView(product)
	return &view, nil
}

// GetProductByBarcode resolves a product for the POS scanner.
func (s *CatalogService) GetProductByBarcode(barcode string) (*ProductView, error) {
	product, err := s.products.GetByBarcode(barcode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrProductNotFound
		}
		return nil, err
	}
	view := toProductView(product)
	return &view, nil
}

func toProductViews(products []models.Product) []ProductView {
	views := make([]ProductView, 0, len(products))
	for i := range products {
		views = append(views, toProductView(&products[i]))
	}
	return views
}

func toProductView(p *models.Product) ProductView {
	view := ProductView{
		ID:           p.ID,
		Title:        p.Title,
		Slug:         p.Slug,
		Price:        p.Price.InexactFloat64(),
		Stock:        p.Stock,
		IsAvailable:  p.IsAvailable,
		Division:     string(p.Division),
		CategoryName: p.CategoryName,
		Images:       append([]string{}, p.Images...),
	}
	if p.WholesalePrice != nil {
		v := p.WholesalePrice.InexactFloat64()
		view.WholesalePrice = &v
	}
	view.WholesaleMinQty = p.WholesaleMinQty
	if p.DiscountPercent != nil {
		v := p.DiscountPercent.InexactFloat64()
		view.DiscountPercent = &v
	}
	if p.Barcode != nil {
		view.Barcode = *p.Barcode
	}
	return view
}
