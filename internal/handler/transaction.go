package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rslakra/BankService/internal/auth"
	"github.com/rslakra/BankService/internal/domain"
	"github.com/rslakra/BankService/internal/logging"
	"github.com/rslakra/BankService/internal/service"
)

const defaultTransactionLimit = 100

type transactionService interface {
	ApplyTransaction(ctx context.Context, req service.ApplyTransactionRequest) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, accountID, userID uuid.UUID, skip, limit int) ([]domain.Transaction, error)
}

type TransactionHandler struct {
	ledger transactionService
}

func NewTransactionHandler(ledger transactionService) *TransactionHandler {
	return &TransactionHandler{ledger: ledger}
}

type createTransactionRequest struct {
	TransactionType string          `json:"transaction_type"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
}

func (r createTransactionRequest) Validate() []FieldError {
	var errs []FieldError
	if r.TransactionType == "" {
		errs = append(errs, FieldError{Field: "transaction_type", Message: "required"})
	} else if !domain.TransactionType(r.TransactionType).IsValid() {
		errs = append(errs, FieldError{Field: "transaction_type", Message: "must be CREDIT or DEBIT"})
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, FieldError{Field: "amount", Message: "must be greater than 0"})
	}
	return errs
}

type transactionDTO struct {
	ID              uuid.UUID       `json:"id"`
	AccountID       uuid.UUID       `json:"account_id"`
	TransactionType string          `json:"transaction_type"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	ReferenceNumber string          `json:"reference_number"`
	Timestamp       time.Time       `json:"timestamp"`
}

func toTransactionDTO(t *domain.Transaction) transactionDTO {
	return transactionDTO{
		ID:              t.ID,
		AccountID:       t.AccountID,
		TransactionType: string(t.Type),
		Amount:          t.Amount,
		Description:     t.Description,
		ReferenceNumber: t.ReferenceNumber,
		Timestamp:       t.Timestamp,
	}
}

func toTransactionDTOs(txns []domain.Transaction) []transactionDTO {
	dtos := make([]transactionDTO, len(txns))
	for i := range txns {
		dtos[i] = toTransactionDTO(&txns[i])
	}
	return dtos
}

func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		RespondAppError(w, ErrMissingToken, nil)
		return
	}

	accountID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		RespondAppError(w, ErrResourceNotFound, nil)
		return
	}

	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	txn, err := h.ledger.ApplyTransaction(r.Context(), service.ApplyTransactionRequest{
		AccountID:   accountID,
		UserID:      userID,
		Type:        domain.TransactionType(req.TransactionType),
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		logging.FromContext(r.Context()).Warn("transaction failed", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, toTransactionDTO(txn))
}

func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		RespondAppError(w, ErrMissingToken, nil)
		return
	}

	accountID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		RespondAppError(w, ErrResourceNotFound, nil)
		return
	}

	skip := queryInt(r, "skip", 0)
	limit := queryInt(r, "limit", defaultTransactionLimit)

	txns, err := h.ledger.ListTransactions(r.Context(), accountID, userID, skip, limit)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toTransactionDTOs(txns))
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
