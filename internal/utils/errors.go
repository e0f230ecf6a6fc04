package utils

import "errors"

// Common application errors used across services.
var (
	ErrProductNotFound    = errors.New("PRODUCT_NOT_FOUND")
	ErrCategoryNotFound   = errors.New("CATEGORY_NOT_FOUND")
	ErrOrderNotFound      = errors.New("ORDER_NOT_FOUND")
	ErrAddressNotFound    = errors.New("ADDRESS_NOT_FOUND")
	ErrInsufficientStock  = errors.New("INSUFFICIENT_STOCK")
	ErrIllegalTransition  = errors.New("ILLEGAL_TRANSITION")
	ErrSlugExists         = errors.New("SLUG_EXISTS")
	ErrBarcodeExists      = errors.New("BARCODE_EXISTS")
	ErrEmailExists        = errors.New("EMAIL_EXISTS")
	ErrCategoryInUse      = errors.New("CATEGORY_IN_USE")
	ErrInvalidCredentials = errors.New("INVALID_CREDENTIALS")
	ErrInvalidDivision    = errors.New("INVALID_DIVISION")
	ErrInvalidStatus      = errors.New("INVALID_STATUS")
	ErrEmptyOrder         = errors.New("EMPTY_ORDER")
	ErrUnauthorized       = errors.New("UNAUTHORIZED")
)
