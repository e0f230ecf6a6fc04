package service

import (
	"fmt"
	"time"

	"github.com/playfiesta/store_api/internal/models"
)

// SitemapProductSource lists the products exposed to search engines.
type SitemapProductSource interface {
	ListAvailable() ([]models.Product, error)
}

// SitemapCategorySource lists all categories.
type SitemapCategorySource interface {
	ListAll() ([]models.Category, error)
}

// SitemapService generates the sitemap entry list for search-engine
// discovery.
type SitemapService struct {
	products   SitemapProductSource
	categories SitemapCategorySource
	baseURL    string
}

// NewSitemapService constructs a SitemapService. baseURL is the public
// storefront origin without a trailing slash.
func NewSitemapService(products SitemapProductSource, categories SitemapCategorySource, baseURL string) *SitemapService {
	return &SitemapService{products: products, categories: categories, baseURL: baseURL}
}

// SitemapEntry is one sitemap URL record.
type SitemapEntry struct {
	Loc        string    `xml:"loc"`
	LastMod    time.Time `xml:"lastmod"`
	ChangeFreq string    `xml:"changefreq"`
	Priority   float64   `xml:"priority"`
}

// Entries returns the full entry list: static home pages first (one per
// division), then categories, then every available product.
func (s *SitemapService) Entries() ([]SitemapEntry, error) {
	now := time.Now()
	entries := []SitemapEntry{
		{Loc: s.baseURL + "/", LastMod: now, ChangeFreq: "daily", Priority: 1.0},
		{Loc: fmt.Sprintf("%s/%s", s.baseURL, models.DivisionToys), LastMod: now, ChangeFreq: "daily", Priority: 0.9},
		{Loc: fmt.Sprintf("%s/%s", s.baseURL, models.DivisionParty), LastMod: now, ChangeFreq: "daily", Priority: 0.9},
	}

	categories, err := s.categories.ListAll()
	if err != nil {
		return nil, err
	}
	for _, c := range categories {
		entries = append(entries, SitemapEntry{
			Loc:        fmt.Sprintf("%s/%s/category/%s", s.baseURL, c.Division, c.Slug),
			LastMod:    now,
			ChangeFreq: "weekly",
			Priority:   0.7,
		})
	}

	products, err := s.products.ListAvailable()
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		entries = append(entries, SitemapEntry{
			Loc:        fmt.Sprintf("%s/%s/product/%s", s.baseURL, p.Division, p.Slug),
			LastMod:    p.UpdatedAt,
			ChangeFreq: "weekly",
			Priority:   0.6,
		})
	}
	return entries, nil
}
