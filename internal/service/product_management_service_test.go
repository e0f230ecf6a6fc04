package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playfiesta/store_api/internal/models"
	"github.com/playfiesta/store_api/internal/repository"
	"github.com/playfiesta/store_api/internal/utils"
)

type memAdminProductStore struct {
	products map[int]*models.Product
	nextID   int
}

func newMemAdminProductStore() *memAdminProductStore {
	return &memAdminProductStore{products: make(map[int]*models.Product), nextID: 1}
}

func (m *memAdminProductStore) ListPaged(_ repository.ProductFilter) ([]models.Product, int, error) {
	var out []models.Product
	for _, p := range m.products {
		out = append(out, *p)
	}
	return out, len(out), nil
}

func (m *memAdminProductStore) GetByID(id int) (*models.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *p
	return &cp, nil
}

func (m *memAdminProductStore) ExistsSlug(slug string, excludeID int) (bool, error) {
	for _, p := range m.products {
		if p.Slug == slug && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memAdminProductStore) Create(p *models.Product) error {
	p.ID = m.nextID
	m.nextID++
	cp := *p
	m.products[p.ID] = &cp
	return nil
}

func (m *memAdminProductStore) Update(p *models.Product) error {
	if _, ok := m.products[p.ID]; !ok {
		return sql.ErrNoRows
	}
	cp := *p
	m.products[p.ID] = &cp
	return nil
}

func (m *memAdminProductStore) Delete(id int) error {
	if _, ok := m.products[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.products, id)
	return nil
}

type fixedCategoryGetter struct {
	ids map[int]bool
}

func (f *fixedCategoryGetter) GetByID(id int) (*models.Category, error) {
	if !f.ids[id] {
		return nil, sql.ErrNoRows
	}
	return &models.Category{ID: id, Name: "Kites", Slug: "kites", Division: models.DivisionToys}, nil
}

type countingInvalidator struct {
	calls int
}

func (c *countingInvalidator) Invalidate(_ context.Context, _ ...string) {
	c.calls++
}

func newTestProductService() (*ProductManagementService, *memAdminProductStore, *countingInvalidator) {
	store := newMemAdminProductStore()
	inv := &countingInvalidator{}
	svc := NewProductManagementService(store, &fixedCategoryGetter{ids: map[int]bool{1: true}}, inv)
	return svc, store, inv
}

func TestCreateProductDefaultsSlugAndInvalidatesCache(t *testing.T) {
	svc, _, inv := newTestProductService()

	p, err := svc.CreateProduct(context.Background(), &SaveProductRequest{
		Title:      "Rainbow Kite XL",
		Price:      money("12.90"),
		Stock:      10,
		Division:   "toys",
		CategoryID: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "rainbow-kite-xl", p.Slug)
	assert.Equal(t, 1, inv.calls, "catalog cache dropped after the write")
}

func TestCreateProductRejectsDuplicateSlug(t *testing.T) {
	svc, _, _ := newTestProductService()

	req := &SaveProductRequest{Title: "Kite", Price: money("5"), Division: "toys", CategoryID: 1}
	_, err := svc.CreateProduct(context.Background(), req)
	require.NoError(t, err)
	_, err = svc.CreateProduct(context.Background(), req)
	assert.ErrorIs(t, err, utils.ErrSlugExists)
}

func TestCreateProductRejectsBadReferences(t *testing.T) {
	svc, _, inv := newTestProductService()

	_, err := svc.CreateProduct(context.Background(), &SaveProductRequest{
		Title: "Kite", Price: money("5"), Division: "garden", CategoryID: 1,
	})
	assert.ErrorIs(t, err, utils.ErrInvalidDivision)

	_, err = svc.CreateProduct(context.Background(), &SaveProductRequest{
		Title: "Kite", Price: money("5"), Division: "toys", CategoryID: 99,
	})
	assert.ErrorIs(t, err, utils.ErrCategoryNotFound)

	assert.Equal(t, 0, inv.calls, "rejected writes leave the cache alone")
}

func TestUpdateProductKeepsOwnSlug(t *testing.T) {
	svc, _, _ := newTestProductService()

	p, err := svc.CreateProduct(context.Background(), &SaveProductRequest{
		Title: "Kite", Price: money("5"), Division: "toys", CategoryID: 1,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateProduct(context.Background(), p.ID, &SaveProductRequest{
		Title: "Kite Deluxe", Slug: p.Slug, Price: money("7"), Division: "toys", CategoryID: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "Kite Deluxe", updated.Title)
	assert.Equal(t, p.Slug, updated.Slug)
}

func TestDeleteProduct(t *testing.T) {
	svc, store, inv := newTestProductService()

	p, err := svc.CreateProduct(context.Background(), &SaveProductRequest{
		Title: "Kite", Price: money("5"), Division: "toys", CategoryID: 1,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(context.Background(), p.ID))
	_, err = store.GetByID(p.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.Equal(t, 2, inv.calls)

	assert.ErrorIs(t, svc.DeleteProduct(context.Background(), p.ID), utils.ErrProductNotFound)
}
