package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playfiesta/store_api/internal/models"
)

type fakeSitemapSource struct {
	products   []models.Product
	categories []models.Category
	err        error
}

func (f *fakeSitemapSource) ListAvailable() ([]models.Product, error) {
	return f.products, f.err
}

func (f *fakeSitemapSource) ListAll() ([]models.Category, error) {
	return f.categories, f.err
}

func TestSitemapEntriesOrdering(t *testing.T) {
	src := &fakeSitemapSource{
		categories: []models.Category{
			{Name: "Kites", Slug: "kites", Division: models.DivisionToys},
		},
		products: []models.Product{
			{Title: "Rainbow Kite", Slug: "rainbow-kite", Division: models.DivisionToys},
			{Title: "Balloons", Slug: "balloons", Division: models.DivisionParty},
		},
	}
	svc := NewSitemapService(src, src, "https://playfiesta.cl")

	entries, err := svc.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 6)

	assert.Equal(t, "https://playfiesta.cl/", entries[0].Loc)
	assert.Equal(t, "https://playfiesta.cl/toys", entries[1].Loc)
	assert.Equal(t, "https://playfiesta.cl/party", entries[2].Loc)
	assert.Equal(t, "https://playfiesta.cl/toys/category/kites", entries[3].Loc)
	assert.Equal(t, "https://playfiesta.cl/toys/product/rainbow-kite", entries[4].Loc)
	assert.Equal(t, "https://playfiesta.cl/party/product/balloons", entries[5].Loc)

	assert.Equal(t, 1.0, entries[0].Priority)
	assert.Equal(t, "daily", entries[1].ChangeFreq)
	assert.Equal(t, "weekly", entries[3].ChangeFreq)
}

func TestSitemapEntriesPropagatesErrors(t *testing.T) {
	src := &fakeSitemapSource{err: errors.New("db down")}
	svc := NewSitemapService(src, src, "https://playfiesta.cl")

	_, err := svc.Entries()
	assert.Error(t, err)
}
