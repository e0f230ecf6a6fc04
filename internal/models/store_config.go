package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StoreConfig is the singleton storefront configuration row. It is read via
// find-or-create; defaults come from the config package, not scattered
// literals.
type StoreConfig struct {
	ID             int             `db:"id" json:"-"`
	ContactPhone   string          `db:"contact_phone" json:"contactPhone"`
	WelcomeMessage string          `db:"welcome_message" json:"welcomeMessage"`
	DeliveryPrice  decimal.Decimal `db:"delivery_price" json:"deliveryPrice"`
	HeroTitle      string          `db:"hero_title" json:"heroTitle"`
	HeroSubtitle   string          `db:"hero_subtitle" json:"heroSubtitle"`
	HeroImage      string          `db:"hero_image" json:"heroImage"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updatedAt"`
}
