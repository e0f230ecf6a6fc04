package cache

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/playfiesta/store_api/internal/models"
)

// PreferenceStore persists per-admin panel preferences as simple key/value
// flags. Currently the only preference is the active brand division.
type PreferenceStore struct {
	redis *RedisClient
}

// NewPreferenceStore creates a new PreferenceStore.
func NewPreferenceStore(redis *RedisClient) *PreferenceStore {
	return &PreferenceStore{redis: redis}
}

func (p *PreferenceStore) divisionKey(adminID int) string {
	return fmt.Sprintf("pref:division:%d", adminID)
}

// GetDivision returns the admin's preferred division. Missing, invalid, or
// unreadable values all fall back to the default division.
func (p *PreferenceStore) GetDivision(ctx context.Context, adminID int) models.Division {
	val, err := p.redis.Get(ctx, p.divisionKey(adminID))
	if err != nil {
		if !IsNil(err) {
			log.Warn().Err(err).Int("admin_id", adminID).Msg("division preference read failed")
		}
		return models.DefaultDivision
	}
	return models.ParseDivision(val)
}

// SetDivision stores the admin's preferred division. No TTL; the preference
// lives until overwritten.
func (p *PreferenceStore) SetDivision(ctx context.Context, adminID int, division models.Division) error {
	return p.redis.Set(ctx, p.divisionKey(adminID), string(division), 0)
}
