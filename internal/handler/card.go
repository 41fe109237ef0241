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
)

type cardService interface {
	IssueCard(ctx context.Context, accountID, userID uuid.UUID, cardType domain.CardType, creditLimit decimal.Decimal) (*domain.Card, error)
	ListCards(ctx context.Context, accountID, userID uuid.UUID) ([]domain.Card, error)
}

type CardHandler struct {
	cards cardService
}

func NewCardHandler(cards cardService) *CardHandler {
	return &CardHandler{cards: cards}
}

type createCardRequest struct {
	CardType    string          `json:"card_type"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
}

func (r createCardRequest) Validate() []FieldError {
	var errs []FieldError
	if r.CardType == "" {
		errs = append(errs, FieldError{Field: "card_type", Message: "required"})
	} else if !domain.CardType(r.CardType).IsValid() {
		errs = append(errs, FieldError{Field: "card_type", Message: "must be DEBIT or CREDIT"})
	}
	if r.CreditLimit.IsNegative() {
		errs = append(errs, FieldError{Field: "credit_limit", Message: "must not be negative"})
	}
	return errs
}

// cardDTO never carries the verification code; it is write-only past the
// issuance boundary.
type cardDTO struct {
	ID          uuid.UUID       `json:"id"`
	AccountID   uuid.UUID       `json:"account_id"`
	CardNumber  string          `json:"card_number"`
	CardType    string          `json:"card_type"`
	Status      string          `json:"status"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
	ExpiryDate  time.Time       `json:"expiry_date"`
	CreatedAt   time.Time       `json:"created_at"`
}

func toCardDTO(c *domain.Card) cardDTO {
	return cardDTO{
		ID:          c.ID,
		AccountID:   c.AccountID,
		CardNumber:  c.CardNumber,
		CardType:    string(c.CardType),
		Status:      string(c.Status),
		CreditLimit: c.CreditLimit,
		ExpiryDate:  c.ExpiryDate,
		CreatedAt:   c.CreatedAt,
	}
}

func (h *CardHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	var req createCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	card, err := h.cards.IssueCard(r.Context(), accountID, userID, domain.CardType(req.CardType), req.CreditLimit)
	if err != nil {
		logging.FromContext(r.Context()).Warn("card issuance failed", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, toCardDTO(card))
}

func (h *CardHandler) List(w http.ResponseWriter, r *http.Request) {
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

	cards, err := h.cards.ListCards(r.Context(), accountID, userID)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	dtos := make([]cardDTO, len(cards))
	for i := range cards {
		dtos[i] = toCardDTO(&cards[i])
	}

	RespondSuccess(w, http.StatusOK, dtos)
}
