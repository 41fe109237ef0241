package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rslakra/BankService/internal/domain"
	"github.com/rslakra/BankService/internal/identifier"
	"github.com/rslakra/BankService/internal/logging"
)

// cardExpiryYears is the fixed offset between issuance and expiry.
const cardExpiryYears = 4

type accountChecker interface {
	GetForUser(ctx context.Context, id, userID uuid.UUID) (*domain.Account, error)
}

type cardRepo interface {
	Create(ctx context.Context, card *domain.Card) error
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]domain.Card, error)
}

type CardService struct {
	accounts accountChecker
	cards    cardRepo
}

func NewCardService(accounts accountChecker, cards cardRepo) *CardService {
	return &CardService{accounts: accounts, cards: cards}
}

func (s *CardService) IssueCard(ctx context.Context, accountID, userID uuid.UUID, cardType domain.CardType, creditLimit decimal.Decimal) (*domain.Card, error) {
	if !cardType.IsValid() {
		return nil, fmt.Errorf("IssueCard: %w", domain.ErrInvalidCardType)
	}
	if creditLimit.IsNegative() {
		return nil, fmt.Errorf("IssueCard: %w", domain.ErrInvalidAmount)
	}

	if _, err := s.accounts.GetForUser(ctx, accountID, userID); err != nil {
		return nil, fmt.Errorf("IssueCard: %w", err)
	}

	code, err := identifier.VerificationCode()
	if err != nil {
		return nil, fmt.Errorf("IssueCard: %w", err)
	}

	var lastErr error
	for range maxIdentifierAttempts {
		number, err := identifier.CardNumber(cardType)
		if err != nil {
			return nil, fmt.Errorf("IssueCard: %w", err)
		}

		now := time.Now().UTC()
		card := &domain.Card{
			ID:               uuid.New(),
			AccountID:        accountID,
			CardNumber:       number,
			CardType:         cardType,
			Status:           domain.CardStatusActive,
			CreditLimit:      creditLimit,
			ExpiryDate:       now.AddDate(cardExpiryYears, 0, 0),
			VerificationCode: code,
			CreatedAt:        now,
			UpdatedAt:        now,
		}

		lastErr = s.cards.Create(ctx, card)
		if lastErr == nil {
			logging.FromContext(ctx).Info("card issued",
				"card_id", card.ID,
				"account_id", accountID,
				"card_type", cardType,
			)
			return card, nil
		}
		if !errors.Is(lastErr, domain.ErrDuplicateIdentifier) {
			return nil, fmt.Errorf("IssueCard: %w", lastErr)
		}
	}

	return nil, fmt.Errorf("IssueCard: card number regeneration exhausted: %w", lastErr)
}

func (s *CardService) ListCards(ctx context.Context, accountID, userID uuid.UUID) ([]domain.Card, error) {
	if _, err := s.accounts.GetForUser(ctx, accountID, userID); err != nil {
		return nil, fmt.Errorf("ListCards: %w", err)
	}
	cards, err := s.cards.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("ListCards: %w", err)
	}
	return cards, nil
}
