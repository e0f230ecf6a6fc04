package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/playfiesta/store_api/internal/models"
)

// UserRepository handles data access for user accounts.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByEmail returns a user by (lower-cased) email.
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var u models.User
	if err := r.db.Get(&u, `SELECT * FROM users WHERE email = $1 LIMIT 1`, email); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID returns a user by id.
func (r *UserRepository) GetByID(id int) (*models.User, error) {
	var u models.User
	if err := r.db.Get(&u, `SELECT * FROM users WHERE id = $1 LIMIT 1`, id); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a user and populates its generated id.
func (r *UserRepository) Create(u *models.User) error {
	return r.db.QueryRowx(`
        INSERT INTO users (name, email, password_hash, role, signup_source)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`,
		u.Name, u.Email, u.PasswordHash, u.Role, u.SignupSource,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
}
