package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/playfiesta/store_api/internal/models"
)

// ProductRepository handles data access for products.
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// ProductFilter narrows ListPaged results. Empty string / nil fields are
// ignored. Page begins at 1.
type ProductFilter struct {
	Division      models.Division
	CategorySlug  string
	OnlyAvailable bool
	Search        string
	Page          int
	Limit         int
}

const productColumns = `p.id, p.title, p.slug, p.price, p.stock, p.is_available,
        p.division, p.category_id, p.images, p.wholesale_price, p.wholesale_min_qty,
        p.discount_percent, p.barcode, p.created_at, p.updated_at,
        c.name AS category_name`

// ListPaged returns a page of products with the category name joined, plus
// the total count for the filter.
func (r *ProductRepository) ListPaged(f ProductFilter) ([]models.Product, int, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = 20
	}
	offset := (f.Page - 1) * f.Limit

	const baseWhere = `FROM products p
        JOIN categories c ON c.id = p.category_id
        WHERE p.division = $1
        AND ($2 = '' OR c.slug = $2)
        AND ($3 = false OR p.is_available = true)
        AND ($4 = '' OR p.title ILIKE '%' || $4 || '%')`

	var total int
	if err := r.db.Get(&total, `SELECT COUNT(1) `+baseWhere,
		f.Division, f.CategorySlug, f.OnlyAvailable, f.Search); err != nil {
		return nil, 0, err
	}

	var products []models.Product
	err := r.db.Select(&products,
		`SELECT `+productColumns+` `+baseWhere+`
        ORDER BY c.name, p.title LIMIT $5 OFFSET $6`,
		f.Division, f.CategorySlug, f.OnlyAvailable, f.Search, f.Limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// ListAvailable returns every available product, used for sitemap generation.
func (r *ProductRepository) ListAvailable() ([]models.Product, error) {
	var products []models.Product
	err := r.db.Select(&products, `SELECT `+productColumns+`
        FROM products p JOIN categories c ON c.id = p.category_id
        WHERE p.is_available = true
        ORDER BY p.updated_at DESC`)
	return products, err
}

// GetByID returns a single product by id.
func (r *ProductRepository) GetByID(id int) (*models.Product, error) {
	var p models.Product
	err := r.db.Get(&p, `SELECT `+productColumns+`
        FROM products p JOIN categories c ON c.id = p.category_id
        WHERE p.id = $1 LIMIT 1`, id)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetBySlug returns a single product by division and slug.
func (r *ProductRepository) GetBySlug(division models.Division, slug string) (*models.Product, error) {
	var p models.Product
	err := r.db.Get(&p, `SELECT `+productColumns+`
        FROM products p JOIN categories c ON c.id = p.category_id
        WHERE p.division = $1 AND p.slug = $2 LIMIT 1`, division, slug)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByBarcode returns a single product by barcode, used by the POS lookup.
func (r *ProductRepository) GetByBarcode(barcode string) (*models.Product, error) {
	var p models.Product
	err := r.db.Get(&p, `SELECT `+productColumns+`
        FROM products p JOIN categories c ON c.id = p.category_id
        WHERE p.barcode = $1 LIMIT 1`, barcode)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ExistsSlug reports whether a slug is already taken by a product other than
// excludeID. Pass 0 to check against all products.
func (r *ProductRepository) ExistsSlug(slug string, excludeID int) (bool, error) {
	var exists bool
	err := r.db.Get(&exists,
		`SELECT EXISTS(SELECT 1 FROM products WHERE slug = $1 AND id <> $2)`,
		slug, excludeID)
	return exists, err
}

// Create inserts a product and populates its generated id.
func (r *ProductRepository) Create(p *models.Product) error {
	return r.db.QueryRowx(`
        INSERT INTO products (title, slug, price, stock, is_available, division,
            category_id, images, wholesale_price, wholesale_min_qty,
            discount_percent, barcode)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING id, created_at, updated_at`,
		p.Title, p.Slug, p.Price, p.Stock, p.IsAvailable, p.Division,
		p.CategoryID, pq.Array(p.Images), p.WholesalePrice, p.WholesaleMinQty,
		p.DiscountPercent, p.Barcode,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// Update rewrites a product row.
func (r *ProductRepository) Update(p *models.Product) error {
	res, err := r.db.Exec(`
        UPDATE products SET title = $1, slug = $2, price = $3, stock = $4,
            is_available = $5, division = $6, category_id = $7, images = $8,
            wholesale_price = $9, wholesale_min_qty = $10, discount_percent = $11,
            barcode = $12, updated_at = NOW()
        WHERE id = $13`,
		p.Title, p.Slug, p.Price, p.Stock, p.IsAvailable, p.Division,
		p.CategoryID, pq.Array(p.Images), p.WholesalePrice, p.WholesaleMinQty,
		p.DiscountPercent, p.Barcode, p.ID)
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

// Delete removes a product by id.
func (r *ProductRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM products WHERE id = $1`, id)
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

// IsUniqueViolation reports whether err is a Postgres unique constraint
// violation, used to translate driver errors into conflict sentinels.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
