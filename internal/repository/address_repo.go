package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/playfiesta/store_api/internal/models"
)

// AddressRepository handles data access for user addresses. Every query is
// scoped by the owning user id; an address id alone is never enough to read
// or mutate a row.
type AddressRepository struct {
	db *sqlx.DB
}

// NewAddressRepository creates a new AddressRepository.
func NewAddressRepository(db *sqlx.DB) *AddressRepository {
	return &AddressRepository{db: db}
}

// GetByUserID returns the address owned by a user.
func (r *AddressRepository) GetByUserID(userID int) (*models.Address, error) {
	var a models.Address
	if err := r.db.Get(&a, `SELECT * FROM addresses WHERE user_id = $1 LIMIT 1`, userID); err != nil {
		return nil, err
	}
	return &a, nil
}

// Upsert inserts or replaces the address for a user (one row per user).
func (r *AddressRepository) Upsert(a *models.Address) error {
	return r.db.QueryRowx(`
        INSERT INTO addresses (user_id, recipient, line1, line2, phone, country, province, city)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        ON CONFLICT (user_id) DO UPDATE SET
            recipient = EXCLUDED.recipient,
            line1 = EXCLUDED.line1,
            line2 = EXCLUDED.line2,
            phone = EXCLUDED.phone,
            country = EXCLUDED.country,
            province = EXCLUDED.province,
            city = EXCLUDED.city,
            updated_at = NOW()
        RETURNING id, created_at, updated_at`,
		a.UserID, a.Recipient, a.Line1, a.Line2, a.Phone, a.Country, a.Province, a.City,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

// DeleteByUserID removes the address owned by a user.
func (r *AddressRepository) DeleteByUserID(userID int) error {
	res, err := r.db.Exec(`DELETE FROM addresses WHERE user_id = $1`, userID)
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
