package domain

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrSameAccount         = errors.New("cannot transfer to the same account")
	ErrDuplicateIdentifier = errors.New("generated identifier already in use")
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidAccountType  = errors.New("invalid account type")
	ErrInvalidCardType     = errors.New("invalid card type")
	ErrInvalidRequest      = errors.New("invalid request")
)
