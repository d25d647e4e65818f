package utils

import "errors"

// Common application errors used across services.
var (
	ErrProductNotFound    = errors.New("PRODUCT_NOT_FOUND")
	ErrVariantNotFound    = errors.New("VARIANT_NOT_FOUND")
	ErrCollectionNotFound = errors.New("COLLECTION_NOT_FOUND")
	ErrLineNotFound       = errors.New("LINE_NOT_FOUND")
	ErrInvalidQuantity    = errors.New("INVALID_QUANTITY")
	ErrInvalidToken       = errors.New("INVALID_TOKEN")
	ErrInvalidCredentials = errors.New("INVALID_CREDENTIALS")
	ErrEmailRegistered    = errors.New("EMAIL_ALREADY_REGISTERED")
	ErrCustomerNotFound   = errors.New("CUSTOMER_NOT_FOUND")
)
