package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/rslakra/BankService/internal/auth"
	"github.com/rslakra/BankService/internal/domain"
)

type statementService interface {
	GetStatement(ctx context.Context, accountID, userID uuid.UUID, start, end *time.Time) ([]domain.Transaction, error)
}

type StatementHandler struct {
	ledger statementService
}

func NewStatementHandler(ledger statementService) *StatementHandler {
	return &StatementHandler{ledger: ledger}
}

func (h *StatementHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	var fields []FieldError
	start, fieldErr := parseTimeParam(r, "start_date")
	if fieldErr != nil {
		fields = append(fields, *fieldErr)
	}
	end, fieldErr := parseTimeParam(r, "end_date")
	if fieldErr != nil {
		fields = append(fields, *fieldErr)
	}
	if len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	txns, err := h.ledger.GetStatement(r.Context(), accountID, userID, start, end)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toTransactionDTOs(txns))
}

// parseTimeParam accepts RFC 3339 timestamps or bare dates.
func parseTimeParam(r *http.Request, name string) (*time.Time, *FieldError) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t, nil
	}
	return nil, &FieldError{Field: name, Message: "must be an RFC 3339 timestamp or YYYY-MM-DD date"}
}
