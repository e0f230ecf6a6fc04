package handler

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/playfiesta/store_api/internal/utils"
)

// statusFor maps service sentinel errors to HTTP status codes.
var statusFor = map[error]int{
	utils.ErrProductNotFound:    404,
	utils.ErrCategoryNotFound:   404,
	utils.ErrOrderNotFound:      404,
	utils.ErrAddressNotFound:    404,
	utils.ErrInsufficientStock:  409,
	utils.ErrIllegalTransition:  409,
	utils.ErrSlugExists:         409,
	utils.ErrBarcodeExists:      409,
	utils.ErrEmailExists:        409,
	utils.ErrCategoryInUse:      409,
	utils.ErrInvalidCredentials: 401,
	utils.ErrUnauthorized:       401,
	utils.ErrInvalidDivision:    400,
	utils.ErrInvalidStatus:      400,
	utils.ErrEmptyOrder:         400,
}

// messageFor maps sentinel errors to user-facing messages. Services never
// leak driver errors, and handlers never leak stack traces.
var messageFor = map[error]string{
	utils.ErrProductNotFound:    "Product not found",
	utils.ErrCategoryNotFound:   "Category not found",
	utils.ErrOrderNotFound:      "Order not found",
	utils.ErrAddressNotFound:    "Address not found",
	utils.ErrInsufficientStock:  "Not enough stock for one or more items",
	utils.ErrIllegalTransition:  "Order status change not allowed",
	utils.ErrSlugExists:         "Slug is already in use",
	utils.ErrBarcodeExists:      "Barcode is already in use",
	utils.ErrEmailExists:        "Email is already registered",
	utils.ErrCategoryInUse:      "Category still has products",
	utils.ErrInvalidCredentials: "Invalid email or password",
	utils.ErrUnauthorized:       "Not authorized",
	utils.ErrInvalidDivision:    "Unknown division",
	utils.ErrInvalidStatus:      "Unknown order status",
	utils.ErrEmptyOrder:         "Order has no items",
}

// respondError translates a service error into the standard envelope.
// Unknown errors become an opaque 500.
func respondError(c *gin.Context, err error) {
	for sentinel, status := range statusFor {
		if errors.Is(err, sentinel) {
			utils.Error(c, status, sentinel.Error(), messageFor[sentinel])
			return
		}
	}
	utils.Error(c, 500, "INTERNAL_ERROR", "Something went wrong")
}

// bindingFields extracts a field-name -> constraint map from gin binding
// errors, so form validation failures come back per field.
func bindingFields(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		if name != "" {
			name = strings.ToLower(name[:1]) + name[1:]
		}
		fields[name] = fe.Tag()
	}
	return fields
}
