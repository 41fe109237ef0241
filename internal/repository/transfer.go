package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/rslakra/BankService/internal/domain"
)

const transferColumns = `id, from_account_id, to_account_id, amount, description, reference_number, created_at`

type TransferRepository struct {
	db *sql.DB
}

func NewTransferRepository(db *sql.DB) *TransferRepository {
	return &TransferRepository{db: db}
}

func (r *TransferRepository) Create(ctx context.Context, tx *sql.Tx, transfer *domain.Transfer) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO transfers (id, from_account_id, to_account_id, amount, description, reference_number, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		transfer.ID, transfer.FromAccountID, transfer.ToAccountID,
		transfer.Amount, transfer.Description, transfer.ReferenceNumber, transfer.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", mapUniqueViolation(err))
	}
	return nil
}

// ListByUser returns transfers where either endpoint account belongs to the
// user, newest first.
func (r *TransferRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Transfer, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT t.id, t.from_account_id, t.to_account_id, t.amount, t.description, t.reference_number, t.created_at
		FROM transfers t
		WHERE t.from_account_id IN (SELECT id FROM accounts WHERE user_id = $1)
		   OR t.to_account_id IN (SELECT id FROM accounts WHERE user_id = $1)
		ORDER BY t.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListByUser: %w", err)
	}
	defer rows.Close()

	var transfers []domain.Transfer
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("ListByUser: scan: %w", err)
		}
		transfers = append(transfers, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListByUser: rows: %w", err)
	}
	return transfers, nil
}

func scanTransfer(s scanner) (*domain.Transfer, error) {
	var t domain.Transfer
	err := s.Scan(
		&t.ID, &t.FromAccountID, &t.ToAccountID,
		&t.Amount, &t.Description, &t.ReferenceNumber, &t.Timestamp,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
