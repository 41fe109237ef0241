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

// maxIdentifierAttempts bounds regeneration after a generated identifier
// collides with an existing row. Collisions carry no side effects, so the
// retry is transparent to callers.
const maxIdentifierAttempts = 3

type accountCreatorRepo interface {
	Create(ctx context.Context, account *domain.Account) error
	GetForUser(ctx context.Context, id, userID uuid.UUID) (*domain.Account, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Account, error)
}

type AccountService struct {
	accounts accountCreatorRepo
}

func NewAccountService(accounts accountCreatorRepo) *AccountService {
	return &AccountService{accounts: accounts}
}

func (s *AccountService) CreateAccount(ctx context.Context, userID uuid.UUID, accountType domain.AccountType, initialBalance decimal.Decimal) (*domain.Account, error) {
	log := logging.FromContext(ctx)

	if !accountType.IsValid() {
		return nil, fmt.Errorf("CreateAccount: %w", domain.ErrInvalidAccountType)
	}
	if initialBalance.IsNegative() {
		return nil, fmt.Errorf("CreateAccount: %w", domain.ErrInvalidAmount)
	}

	var lastErr error
	for range maxIdentifierAttempts {
		number, err := identifier.AccountNumber()
		if err != nil {
			return nil, fmt.Errorf("CreateAccount: %w", err)
		}

		now := time.Now().UTC()
		account := &domain.Account{
			ID:            uuid.New(),
			UserID:        userID,
			AccountNumber: number,
			AccountType:   accountType,
			Balance:       initialBalance,
			IsActive:      true,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		lastErr = s.accounts.Create(ctx, account)
		if lastErr == nil {
			log.Info("account created",
				"account_id", account.ID,
				"user_id", userID,
				"account_type", accountType,
			)
			return account, nil
		}
		if !errors.Is(lastErr, domain.ErrDuplicateIdentifier) {
			return nil, fmt.Errorf("CreateAccount: %w", lastErr)
		}
	}

	return nil, fmt.Errorf("CreateAccount: account number regeneration exhausted: %w", lastErr)
}

func (s *AccountService) GetUserAccounts(ctx context.Context, userID uuid.UUID) ([]domain.Account, error) {
	accounts, err := s.accounts.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("GetUserAccounts: %w", err)
	}
	return accounts, nil
}

func (s *AccountService) GetAccountForUser(ctx context.Context, accountID, userID uuid.UUID) (*domain.Account, error) {
	account, err := s.accounts.GetForUser(ctx, accountID, userID)
	if err != nil {
		return nil, fmt.Errorf("GetAccountForUser: %w", err)
	}
	return account, nil
}
