package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rslakra/BankService/internal/auth"
	"github.com/rslakra/BankService/internal/domain"
	"github.com/rslakra/BankService/internal/logging"
	"github.com/rslakra/BankService/internal/service"
)

type transferService interface {
	ApplyTransfer(ctx context.Context, req service.ApplyTransferRequest) (*domain.Transfer, error)
	ListTransfers(ctx context.Context, userID uuid.UUID) ([]domain.Transfer, error)
}

type TransferHandler struct {
	ledger transferService
}

func NewTransferHandler(ledger transferService) *TransferHandler {
	return &TransferHandler{ledger: ledger}
}

type createTransferRequest struct {
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
}

func (r createTransferRequest) Validate() []FieldError {
	var errs []FieldError
	if _, err := uuid.Parse(r.FromAccountID); err != nil {
		errs = append(errs, FieldError{Field: "from_account_id", Message: "must be a valid account id"})
	}
	if _, err := uuid.Parse(r.ToAccountID); err != nil {
		errs = append(errs, FieldError{Field: "to_account_id", Message: "must be a valid account id"})
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, FieldError{Field: "amount", Message: "must be greater than 0"})
	}
	return errs
}

type transferDTO struct {
	ID              uuid.UUID       `json:"id"`
	FromAccountID   uuid.UUID       `json:"from_account_id"`
	ToAccountID     uuid.UUID       `json:"to_account_id"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	ReferenceNumber string          `json:"reference_number"`
	Timestamp       time.Time       `json:"timestamp"`
}

func toTransferDTO(t *domain.Transfer) transferDTO {
	return transferDTO{
		ID:              t.ID,
		FromAccountID:   t.FromAccountID,
		ToAccountID:     t.ToAccountID,
		Amount:          t.Amount,
		Description:     t.Description,
		ReferenceNumber: t.ReferenceNumber,
		Timestamp:       t.Timestamp,
	}
}

func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		RespondAppError(w, ErrMissingToken, nil)
		return
	}

	var req createTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	fromID, _ := uuid.Parse(req.FromAccountID)
	toID, _ := uuid.Parse(req.ToAccountID)

	transfer, err := h.ledger.ApplyTransfer(r.Context(), service.ApplyTransferRequest{
		FromAccountID: fromID,
		ToAccountID:   toID,
		UserID:        userID,
		Amount:        req.Amount,
		Description:   req.Description,
	})
	if err != nil {
		logging.FromContext(r.Context()).Warn("transfer failed", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, toTransferDTO(transfer))
}

func (h *TransferHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		RespondAppError(w, ErrMissingToken, nil)
		return
	}

	transfers, err := h.ledger.ListTransfers(r.Context(), userID)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to list transfers", "error", err)
		RespondDomainError(w, err)
		return
	}

	dtos := make([]transferDTO, len(transfers))
	for i := range transfers {
		dtos[i] = toTransferDTO(&transfers[i])
	}

	RespondSuccess(w, http.StatusOK, dtos)
}
