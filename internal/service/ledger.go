package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rslakra/BankService/internal/domain"
	"github.com/rslakra/BankService/internal/identifier"
	"github.com/rslakra/BankService/internal/logging"
)

type accountStore interface {
	GetForUser(ctx context.Context, id, userID uuid.UUID) (*domain.Account, error)
	GetForUpdate(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*domain.Account, error)
	UpdateBalance(ctx context.Context, tx *sql.Tx, id uuid.UUID, newBalance decimal.Decimal) error
}

type transactionStore interface {
	Create(ctx context.Context, tx *sql.Tx, txn *domain.Transaction) error
	ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]domain.Transaction, error)
	Statement(ctx context.Context, accountID uuid.UUID, start, end *time.Time) ([]domain.Transaction, error)
}

type transferStore interface {
	Create(ctx context.Context, tx *sql.Tx, transfer *domain.Transfer) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Transfer, error)
}

// LedgerService owns every balance mutation. Each operation re-reads the
// current balance under a row lock inside a single database transaction and
// commits the balance change together with its transaction/transfer records,
// or not at all.
type LedgerService struct {
	db           *sql.DB
	accounts     accountStore
	transactions transactionStore
	transfers    transferStore
}

func NewLedgerService(db *sql.DB, accounts accountStore, transactions transactionStore, transfers transferStore) *LedgerService {
	return &LedgerService{
		db:           db,
		accounts:     accounts,
		transactions: transactions,
		transfers:    transfers,
	}
}

type ApplyTransactionRequest struct {
	AccountID   uuid.UUID
	UserID      uuid.UUID
	Type        domain.TransactionType
	Amount      decimal.Decimal
	Description string
}

func (s *LedgerService) ApplyTransaction(ctx context.Context, req ApplyTransactionRequest) (*domain.Transaction, error) {
	if !req.Type.IsValid() {
		return nil, fmt.Errorf("ApplyTransaction: %w", domain.ErrInvalidRequest)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("ApplyTransaction: %w", domain.ErrInvalidAmount)
	}

	var txn *domain.Transaction
	err := s.retryOnDuplicate(func() error {
		var err error
		txn, err = s.applyTransactionOnce(ctx, req)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("ApplyTransaction: %w", err)
	}

	logging.FromContext(ctx).Info("transaction applied",
		"transaction_id", txn.ID,
		"account_id", req.AccountID,
		"type", req.Type,
		"amount", req.Amount,
	)
	return txn, nil
}

func (s *LedgerService) applyTransactionOnce(ctx context.Context, req ApplyTransactionRequest) (*domain.Transaction, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("applyTransactionOnce: begin tx: %w", err)
	}
	defer tx.Rollback()

	account, err := s.accounts.GetForUpdate(ctx, tx, req.AccountID)
	if err != nil {
		return nil, fmt.Errorf("applyTransactionOnce: %w", err)
	}
	if account.UserID != req.UserID {
		return nil, fmt.Errorf("applyTransactionOnce: %w", domain.ErrNotFound)
	}

	var newBalance decimal.Decimal
	switch req.Type {
	case domain.TransactionTypeCredit:
		newBalance = account.Balance.Add(req.Amount)
	case domain.TransactionTypeDebit:
		if account.Balance.LessThan(req.Amount) {
			return nil, fmt.Errorf("applyTransactionOnce: %w", domain.ErrInsufficientFunds)
		}
		newBalance = account.Balance.Sub(req.Amount)
	}

	txn := &domain.Transaction{
		ID:              uuid.New(),
		AccountID:       account.ID,
		Type:            req.Type,
		Amount:          req.Amount,
		Description:     req.Description,
		ReferenceNumber: identifier.ReferenceNumber(),
		Timestamp:       time.Now().UTC(),
	}

	if err := s.transactions.Create(ctx, tx, txn); err != nil {
		return nil, fmt.Errorf("applyTransactionOnce: create transaction: %w", err)
	}
	if err := s.accounts.UpdateBalance(ctx, tx, account.ID, newBalance); err != nil {
		return nil, fmt.Errorf("applyTransactionOnce: update balance: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("applyTransactionOnce: commit: %w", err)
	}
	return txn, nil
}

type ApplyTransferRequest struct {
	FromAccountID uuid.UUID
	ToAccountID   uuid.UUID
	UserID        uuid.UUID
	Amount        decimal.Decimal
	Description   string
}

func (s *LedgerService) ApplyTransfer(ctx context.Context, req ApplyTransferRequest) (*domain.Transfer, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("ApplyTransfer: %w", domain.ErrInvalidAmount)
	}
	if req.FromAccountID == req.ToAccountID {
		return nil, fmt.Errorf("ApplyTransfer: %w", domain.ErrSameAccount)
	}

	var transfer *domain.Transfer
	err := s.retryOnDuplicate(func() error {
		var err error
		transfer, err = s.applyTransferOnce(ctx, req)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("ApplyTransfer: %w", err)
	}

	logging.FromContext(ctx).Info("transfer completed",
		"transfer_id", transfer.ID,
		"from_account", req.FromAccountID,
		"to_account", req.ToAccountID,
		"amount", req.Amount,
	)
	return transfer, nil
}

func (s *LedgerService) applyTransferOnce(ctx context.Context, req ApplyTransferRequest) (*domain.Transfer, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("applyTransferOnce: begin tx: %w", err)
	}
	defer tx.Rollback()

	locked, err := s.lockAccountsInOrder(ctx, tx, req.FromAccountID, req.ToAccountID)
	if err != nil {
		return nil, fmt.Errorf("applyTransferOnce: %w", err)
	}

	source, dest := locked[req.FromAccountID], locked[req.ToAccountID]

	// The source must belong to the caller; the destination may belong to
	// anyone. A cross-user source looks exactly like a missing account.
	if source.UserID != req.UserID {
		return nil, fmt.Errorf("applyTransferOnce: source: %w", domain.ErrNotFound)
	}

	if source.Balance.LessThan(req.Amount) {
		return nil, fmt.Errorf("applyTransferOnce: %w", domain.ErrInsufficientFunds)
	}

	now := time.Now().UTC()
	transfer := &domain.Transfer{
		ID:              uuid.New(),
		FromAccountID:   source.ID,
		ToAccountID:     dest.ID,
		Amount:          req.Amount,
		Description:     req.Description,
		ReferenceNumber: identifier.ReferenceNumber(),
		Timestamp:       now,
	}
	if err := s.transfers.Create(ctx, tx, transfer); err != nil {
		return nil, fmt.Errorf("applyTransferOnce: create transfer: %w", err)
	}

	debit := &domain.Transaction{
		ID:              uuid.New(),
		AccountID:       source.ID,
		Type:            domain.TransactionTypeDebit,
		Amount:          req.Amount,
		Description:     fmt.Sprintf("Transfer to account %s: %s", dest.AccountNumber, req.Description),
		ReferenceNumber: identifier.ReferenceNumber(),
		Timestamp:       now,
	}
	if err := s.transactions.Create(ctx, tx, debit); err != nil {
		return nil, fmt.Errorf("applyTransferOnce: create debit: %w", err)
	}

	credit := &domain.Transaction{
		ID:              uuid.New(),
		AccountID:       dest.ID,
		Type:            domain.TransactionTypeCredit,
		Amount:          req.Amount,
		Description:     fmt.Sprintf("Transfer from account %s: %s", source.AccountNumber, req.Description),
		ReferenceNumber: identifier.ReferenceNumber(),
		Timestamp:       now,
	}
	if err := s.transactions.Create(ctx, tx, credit); err != nil {
		return nil, fmt.Errorf("applyTransferOnce: create credit: %w", err)
	}

	if err := s.accounts.UpdateBalance(ctx, tx, source.ID, source.Balance.Sub(req.Amount)); err != nil {
		return nil, fmt.Errorf("applyTransferOnce: update source: %w", err)
	}
	if err := s.accounts.UpdateBalance(ctx, tx, dest.ID, dest.Balance.Add(req.Amount)); err != nil {
		return nil, fmt.Errorf("applyTransferOnce: update destination: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("applyTransferOnce: commit: %w", err)
	}
	return transfer, nil
}

func (s *LedgerService) ListTransactions(ctx context.Context, accountID, userID uuid.UUID, skip, limit int) ([]domain.Transaction, error) {
	if _, err := s.accounts.GetForUser(ctx, accountID, userID); err != nil {
		return nil, fmt.Errorf("ListTransactions: %w", err)
	}
	txns, err := s.transactions.ListByAccount(ctx, accountID, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("ListTransactions: %w", err)
	}
	return txns, nil
}

// GetStatement returns the account's transactions newest first, optionally
// bounded by inclusive start/end timestamps.
func (s *LedgerService) GetStatement(ctx context.Context, accountID, userID uuid.UUID, start, end *time.Time) ([]domain.Transaction, error) {
	if _, err := s.accounts.GetForUser(ctx, accountID, userID); err != nil {
		return nil, fmt.Errorf("GetStatement: %w", err)
	}
	txns, err := s.transactions.Statement(ctx, accountID, start, end)
	if err != nil {
		return nil, fmt.Errorf("GetStatement: %w", err)
	}
	return txns, nil
}

func (s *LedgerService) ListTransfers(ctx context.Context, userID uuid.UUID) ([]domain.Transfer, error) {
	transfers, err := s.transfers.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ListTransfers: %w", err)
	}
	return transfers, nil
}

// retryOnDuplicate re-runs the whole atomic scope when a generated
// reference number collides. Nothing is committed on the failed attempt, so
// re-execution is safe; any other error aborts immediately.
func (s *LedgerService) retryOnDuplicate(fn func() error) error {
	var err error
	for range maxIdentifierAttempts {
		err = fn()
		if err == nil || !errors.Is(err, domain.ErrDuplicateIdentifier) {
			return err
		}
	}
	return fmt.Errorf("retryOnDuplicate: identifier regeneration exhausted: %w", err)
}

// lockAccountsInOrder acquires row locks in ascending id order so that two
// transfers touching the same pair of accounts in opposite directions cannot
// deadlock.
func (s *LedgerService) lockAccountsInOrder(ctx context.Context, tx *sql.Tx, ids ...uuid.UUID) (map[uuid.UUID]*domain.Account, error) {
	sorted := make([]uuid.UUID, len(ids))
	copy(sorted, ids)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].String() < sorted[j].String()
	})

	result := make(map[uuid.UUID]*domain.Account, len(ids))
	for _, id := range sorted {
		acct, err := s.accounts.GetForUpdate(ctx, tx, id)
		if err != nil {
			return nil, fmt.Errorf("lockAccountsInOrder: %w", err)
		}
		result[id] = acct
	}
	return result, nil
}
