package service

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/playfiesta/store_api/internal/models"
	"github.com/playfiesta/store_api/internal/repository"
	"github.com/playfiesta/store_api/internal/utils"
)

// UserStore is the account persistence surface. Implemented by
// *repository.UserRepository.
type UserStore interface {
	GetByEmail(email string) (*models.User, error)
	GetByID(id int) (*models.User, error)
	Create(u *models.User) error
}

// AuthService handles registration and credential login for all roles.
type AuthService struct {
	users UserStore
}

// NewAuthService constructs an AuthService.
func NewAuthService(users UserStore) *AuthService {
	return &AuthService{users: users}
}

// RegisterRequest is the signup form input.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// Register creates a USER account with a bcrypt-hashed password. Email is
// normalized to lower case before the uniqueness check.
func (s *AuthService) Register(req *RegisterRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hash := string(hashed)

	user := &models.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: &hash,
		Role:         models.RoleUser,
		SignupSource: "credentials",
	}
	if err := s.users.Create(user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, utils.ErrEmailExists
		}
		return nil, err
	}
	log.Info().Str("email", email).Msg("user registered")
	return user, nil
}

// Login verifies credentials and returns a signed session token plus the
// account. Accounts without a password hash (external signups) cannot log in
// with credentials.
func (s *AuthService) Login(email, password string) (string, *models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil, utils.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if user.PasswordHash == nil {
		return "", nil, utils.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		return "", nil, utils.ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, string(user.Role))
	if err != nil {
		return "", nil, err
	}
	log.Info().Str("email", email).Msg("login successful")
	return token, user, nil
}
