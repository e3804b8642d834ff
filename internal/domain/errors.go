package domain

import "errors"

// Sentinel errors shared across services and handlers. Handlers translate
// these into stable problem codes; raw storage errors never reach clients.
var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("insufficient permissions")
	ErrInvalidRequest      = errors.New("invalid request")
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInsufficientFunds   = errors.New("insufficient balance for this transaction")
	ErrContention          = errors.New("transfer contention, retry")
	ErrStorageUnavailable  = errors.New("storage unavailable")
	ErrUserExists          = errors.New("user already exists")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrAccountInactive     = errors.New("account inactive")
	ErrNotFound            = errors.New("not found")
)
