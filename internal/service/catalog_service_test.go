package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playfiesta/store_api/internal/models"
	"github.com/playfiesta/store_api/internal/repository"
	"github.com/playfiesta/store_api/internal/utils"
)

type fakeCatalogStore struct {
	products []models.Product
	err      error
	calls    int
}

func (f *fakeCatalogStore) ListPaged(_ repository.ProductFilter) ([]models.Product, int, error) {
	f.calls++
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.products, len(f.products), nil
}

func (f *fakeCatalogStore) GetBySlug(division models.Division, slug string) (*models.Product, error) {
	for i := range f.products {
		if f.products[i].Division == division && f.products[i].Slug == slug {
			return &f.products[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeCatalogStore) GetByBarcode(barcode string) (*models.Product, error) {
	for i := range f.products {
		if f.products[i].Barcode != nil && *f.products[i].Barcode == barcode {
			return &f.products[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

type fakePageCache struct {
	entries map[string][]byte
}

func newFakePageCache() *fakePageCache {
	return &fakePageCache{entries: make(map[string][]byte)}
}

func (f *fakePageCache) Get(_ context.Context, division string) ([]byte, bool) {
	payload, ok := f.entries[division]
	return payload, ok
}

func (f *fakePageCache) Set(_ context.Context, division string, payload []byte) {
	f.entries[division] = payload
}

func TestListProductsDegradesToEmptyPage(t *testing.T) {
	store := &fakeCatalogStore{err: errors.New("connection refused")}
	svc := NewCatalogService(store, nil)

	page := svc.ListProducts(context.Background(), repository.ProductFilter{
		Division: models.DivisionToys,
		Page:     1,
		Limit:    20,
	})

	assert.False(t, page.Success)
	assert.Empty(t, page.Products)
	assert.NotNil(t, page.Products, "degraded page still carries an empty slice")
}

func TestListProductsCachesUnfilteredFirstPage(t *testing.T) {
	store := &fakeCatalogStore{products: []models.Product{
		{ID: 1, Title: "Kite", Slug: "kite", Price: money("12.90"), Division: models.DivisionToys, IsAvailable: true},
	}}
	pageCache := newFakePageCache()
	svc := NewCatalogService(store, pageCache)

	filter := repository.ProductFilter{
		Division:      models.DivisionToys,
		Page:          1,
		Limit:         20,
		OnlyAvailable: true,
	}

	first := svc.ListProducts(context.Background(), filter)
	require.True(t, first.Success)
	assert.Equal(t, 1, store.calls)

	second := svc.ListProducts(context.Background(), filter)
	assert.Equal(t, 1, store.calls, "second read must come from the cache")
	assert.Equal(t, first.Products, second.Products)
	assert.Equal(t, 12.90, second.Products[0].Price)
}

func TestListProductsFilteredPagesBypassCache(t *testing.T) {
	store := &fakeCatalogStore{}
	pageCache := newFakePageCache()
	svc := NewCatalogService(store, pageCache)

	svc.ListProducts(context.Background(), repository.ProductFilter{
		Division:      models.DivisionToys,
		Page:          1,
		CategorySlug:  "kites",
		OnlyAvailable: true,
	})
	svc.ListProducts(context.Background(), repository.ProductFilter{
		Division:      models.DivisionToys,
		Page:          2,
		OnlyAvailable: true,
	})

	assert.Equal(t, 2, store.calls)
	assert.Empty(t, pageCache.entries, "filtered pages must not be cached")
}

func TestGetProductBySlug(t *testing.T) {
	barcode := "780000000001"
	store := &fakeCatalogStore{products: []models.Product{
		{ID: 1, Title: "Kite", Slug: "kite", Price: money("12.90"), Division: models.DivisionToys, Barcode: &barcode},
	}}
	svc := NewCatalogService(store, nil)

	view, err := svc.GetProductBySlug(models.DivisionToys, "kite")
	require.NoError(t, err)
	assert.Equal(t, "Kite", view.Title)
	assert.Equal(t, 12.90, view.Price)
	assert.Equal(t, barcode, view.Barcode)

	// Same slug under the other division is not visible.
	_, err = svc.GetProductBySlug(models.DivisionParty, "kite")
	assert.ErrorIs(t, err, utils.ErrProductNotFound)
}

func TestGetProductByBarcode(t *testing.T) {
	barcode := "780000000001"
	store := &fakeCatalogStore{products: []models.Product{
		{ID: 1, Title: "Kite", Slug: "kite", Price: money("12.90"), Barcode: &barcode},
	}}
	svc := NewCatalogService(store, nil)

	view, err := svc.GetProductByBarcode(barcode)
	require.NoError(t, err)
	assert.Equal(t, 1, view.ID)

	_, err = svc.GetProductByBarcode("999")
	assert.ErrorIs(t, err, utils.ErrProductNotFound)
}
