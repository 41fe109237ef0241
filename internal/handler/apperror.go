package handler

import "net/http"

type AppError struct {
	Status  int
	Code    string
	Message string
}

func (e *AppError) Error() string { return e.Message }

var (
	ErrMissingToken       = &AppError{http.StatusUnauthorized, "MISSING_TOKEN", "Authorization header required"}
	ErrInvalidToken       = &AppError{http.StatusUnauthorized, "INVALID_TOKEN", "Token is invalid or expired"}
	ErrInvalidCredentials = &AppError{http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password"}
	ErrInvalidRequest     = &AppError{http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body"}
	ErrValidationFailed   = &AppError{http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed"}
	ErrResourceNotFound   = &AppError{http.StatusNotFound, "RESOURCE_NOT_FOUND", "Resource not found"}
	ErrInternalError      = &AppError{http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred"}

	ErrInvalidAmount      = &AppError{http.StatusBadRequest, "INVALID_AMOUNT", "Amount must be greater than zero"}
	ErrInsufficientFunds  = &AppError{http.StatusUnprocessableEntity, "INSUFFICIENT_FUNDS", "Insufficient funds"}
	ErrSameAccount        = &AppError{http.StatusUnprocessableEntity, "SAME_ACCOUNT", "Cannot transfer to the same account"}
	ErrEmailTaken         = &AppError{http.StatusBadRequest, "EMAIL_ALREADY_REGISTERED", "Email already registered"}
	ErrInvalidAccountType = &AppError{http.StatusBadRequest, "INVALID_ACCOUNT_TYPE", "Account type must be CHECKING, SAVINGS, or BUSINESS"}
	ErrInvalidCardType    = &AppError{http.StatusBadRequest, "INVALID_CARD_TYPE", "Card type must be DEBIT or CREDIT"}
)
