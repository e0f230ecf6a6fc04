package service

import (
	"database/sql"
	"errors"

	"github.com/playfiesta/store_api/internal/models"
	"github.com/playfiesta/store_api/internal/utils"
)

// AddressStore is the address persistence surface. Implemented by
// *repository.AddressRepository.
type AddressStore interface {
	GetByUserID(userID int) (*models.Address, error)
	Upsert(a *models.Address) error
	DeleteByUserID(userID int) error
}

// AddressService manages each user's single delivery address. Every
// operation takes the authenticated user id explicitly; the owner is never
// taken from the request body, so one user can never touch another's row.
type AddressService struct {
	addresses AddressStore
}

// NewAddressService constructs an AddressService.
func NewAddressService(addresses AddressStore) *AddressService {
	return &AddressService{addresses: addresses}
}

// SetAddressRequest is the address form input.
type SetAddressRequest struct {
	Recipient string `json:"recipient" binding:"required"`
	Line1     string `json:"line1" binding:"required"`
	Line2     string `json:"line2"`
	Phone     string `json:"phone" binding:"required"`
	Province  string `json:"province"`
	City      string `json:"city"`
}

// GetAddress returns the caller's address.
func (s *AddressService) GetAddress(userID int) (*models.Address, error) {
	addr, err := s.addresses.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrAddressNotFound
		}
		return nil, err
	}
	return addr, nil
}

// SetAddress creates or replaces the caller's address. Country is fixed.
func (s *AddressService) SetAddress(userID int, req *SetAddressRequest) (*models.Address, error) {
	addr := &models.Address{
		UserID:    userID,
		Recipient: req.Recipient,
		Line1:     req.Line1,
		Line2:     req.Line2,
		Phone:     req.Phone,
		Country:   models.AddressCountry,
		Province:  req.Province,
		City:      req.City,
	}
	if err := s.addresses.Upsert(addr); err != nil {
		return nil, err
	}
	return addr, nil
}

// DeleteAddress removes the caller's address.
func (s *AddressService) DeleteAddress(userID int) error {
	if err := s.addresses.DeleteByUserID(userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return utils.ErrAddressNotFound
		}
		return err
	}
	return nil
}
