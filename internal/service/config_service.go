package service

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	appconfig "github.com/playfiesta/store_api/internal/config"
	"github.com/playfiesta/store_api/internal/models"
)

// StoreConfigStore is the singleton configuration row surface. Implemented
// by *repository.StoreConfigRepository.
type StoreConfigStore interface {
	Get() (*models.StoreConfig, error)
	Create(c *models.StoreConfig) error
	Update(c *models.StoreConfig) error
}

// ConfigService owns the find-or-create contract for the store configuration
// singleton. Defaults are enumerated in the config package, not inlined here.
type ConfigService struct {
	store    StoreConfigStore
	defaults appconfig.StoreConfig
}

// NewConfigService constructs a ConfigService.
func NewConfigService(store StoreConfigStore, defaults appconfig.StoreConfig) *ConfigService {
	return &ConfigService{store: store, defaults: defaults}
}

// Get loads the configuration row, creating it from the documented defaults
// if it does not exist yet.
func (s *ConfigService) Get() (*models.StoreConfig, error) {
	cfg, err := s.store.Get()
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	cfg = &models.StoreConfig{
		ContactPhone:   s.defaults.DefaultContactPhone,
		WelcomeMessage: s.defaults.DefaultWelcomeMessage,
		DeliveryPrice:  s.defaults.DefaultDeliveryPrice,
	}
	if err := s.store.Create(cfg); err != nil {
		return nil, err
	}
	log.Info().Msg("store config created from defaults")
	return cfg, nil
}

// UpdateConfigRequest carries partial updates; nil fields keep their current
// value.
type UpdateConfigRequest struct {
	ContactPhone   *string          `json:"contactPhone"`
	WelcomeMessage *string          `json:"welcomeMessage"`
	DeliveryPrice  *decimal.Decimal `json:"deliveryPrice"`
	HeroTitle      *string          `json:"heroTitle"`
	HeroSubtitle   *string          `json:"heroSubtitle"`
	HeroImage      *string          `json:"heroImage"`
}

// Update applies a partial update to the singleton, creating it first if
// needed.
func (s *ConfigService) Update(req *UpdateConfigRequest) (*models.StoreConfig, error) {
	cfg, err := s.Get()
	if err != nil {
		return nil, err
	}
	if req.ContactPhone != nil {
		cfg.ContactPhone = *req.ContactPhone
	}
	if req.WelcomeMessage != nil {
		cfg.WelcomeMessage = *req.WelcomeMessage
	}
	if req.DeliveryPrice != nil {
		cfg.DeliveryPrice = *req.DeliveryPrice
	}
	if req.HeroTitle != nil {
		cfg.HeroTitle = *req.HeroTitle
	}
	if req.HeroSubtitle != nil {
		cfg.HeroSubtitle = *req.HeroSubtitle
	}
	if req.HeroImage != nil {
		cfg.HeroImage = *req.HeroImage
	}
	if err := s.store.Update(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
