package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/playfiesta/store_api/internal/models"
)

// CategoryRepository handles data access for categories.
type CategoryRepository struct {
	db *sqlx.DB
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// ListByDivision returns all categories for a division ordered by name.
func (r *CategoryRepository) ListByDivision(division models.Division) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Select(&categories,
		`SELECT id, name, slug, division FROM categories WHERE division = $1 ORDER BY name`,
		division)
	return categories, err
}

// ListAll returns every category, used for sitemap generation.
func (r *CategoryRepository) ListAll() ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Select(&categories,
		`SELECT id, name, slug, division FROM categories ORDER BY division, name`)
	return categories, err
}

// GetByID returns a single category by id.
func (r *CategoryRepository) GetByID(id int) (*models.Category, error) {
	var c models.Category
	if err := r.db.Get(&c,
		`SELECT id, name, slug, division FROM categories WHERE id = $1 LIMIT 1`, id); err != nil {
		return nil, err
	}
	return &c, nil
}

// ExistsSlug reports whether a slug is already taken by a category other
// than excludeID.
func (r *CategoryRepository) ExistsSlug(slug string, excludeID int) (bool, error) {
	var exists bool
	err := r.db.Get(&exists,
		`SELECT EXISTS(SELECT 1 FROM categories WHERE slug = $1 AND id <> $2)`,
		slug, excludeID)
	return exists, err
}

// CountProducts returns the number of products referencing a category.
func (r *CategoryRepository) CountProducts(categoryID int) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(1) FROM products WHERE category_id = $1`, categoryID)
	return n, err
}

// Create inserts a category and populates its generated id.
func (r *CategoryRepository) Create(c *models.Category) error {
	return r.db.QueryRowx(
		`INSERT INTO categories (name, slug, division) VALUES ($1, $2, $3) RETURNING id`,
		c.Name, c.Slug, c.Division,
	).Scan(&c.ID)
}

// Update rewrites a category row.
func (r *CategoryRepository) Update(c *models.Category) error {
	res, err := r.db.Exec(
		`UPDATE categories SET name = $1, slug = $2, division = $3 WHERE id = $4`,
		c.Name, c.Slug, c.Division, c.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a category by id. The service layer checks the product
// reference count first; the FK constraint is the backstop.
func (r *CategoryRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
