package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/playfiesta/store_api/internal/models"
)

// StoreConfigRepository handles the singleton store configuration row.
type StoreConfigRepository struct {
	db *sqlx.DB
}

// NewStoreConfigRepository creates a new StoreConfigRepository.
func NewStoreConfigRepository(db *sqlx.DB) *StoreConfigRepository {
	return &StoreConfigRepository{db: db}
}

// Get returns the configuration row. sql.ErrNoRows means it has not been
// created yet; the service falls back to defaults and creates it.
func (r *StoreConfigRepository) Get() (*models.StoreConfig, error) {
	var c models.StoreConfig
	if err := r.db.Get(&c, `SELECT * FROM store_config ORDER BY id LIMIT 1`); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts the configuration row.
func (r *StoreConfigRepository) Create(c *models.StoreConfig) error {
	return r.db.QueryRowx(`
        INSERT INTO store_config (contact_phone, welcome_message, delivery_price,
            hero_title, hero_subtitle, hero_image)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, updated_at`,
		c.ContactPhone, c.WelcomeMessage, c.DeliveryPrice,
		c.HeroTitle, c.HeroSubtitle, c.HeroImage,
	).Scan(&c.ID, &c.UpdatedAt)
}

// Update rewrites the configuration row.
func (r *StoreConfigRepository) Update(c *models.StoreConfig) error {
	_, err := r.db.Exec(`
        UPDATE store_config SET contact_phone = $1, welcome_message = $2,
            delivery_price = $3, hero_title = $4, hero_subtitle = $5,
            hero_image = $6, updated_at = NOW()
        WHERE id = $7`,
		c.ContactPhone, c.WelcomeMessage, c.DeliveryPrice,
		c.HeroTitle, c.HeroSubtitle, c.HeroImage, c.ID)
	return err
}
