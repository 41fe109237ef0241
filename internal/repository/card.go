package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/rslakra/BankService/internal/domain"
)

const cardColumns = `id, account_id, card_number, card_type, status, credit_limit, expiry_date, verification_code, created_at, updated_at`

type CardRepository struct {
	db *sql.DB
}

func NewCardRepository(db *sql.DB) *CardRepository {
	return &CardRepository{db: db}
}

func (r *CardRepository) Create(ctx context.Context, card *domain.Card) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO cards (id, account_id, card_number, card_type, status, credit_limit, expiry_date, verification_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		card.ID, card.AccountID, card.CardNumber, card.CardType, card.Status,
		card.CreditLimit, card.ExpiryDate, card.VerificationCode,
		card.CreatedAt, card.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", mapUniqueViolation(err))
	}
	return nil
}

func (r *CardRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]domain.Card, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+cardColumns+` FROM cards WHERE account_id = $1 ORDER BY created_at`, accountID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListByAccount: %w", err)
	}
	defer rows.Close()

	var cards []domain.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("ListByAccount: scan: %w", err)
		}
		cards = append(cards, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListByAccount: rows: %w", err)
	}
	return cards, nil
}

func scanCard(s scanner) (*domain.Card, error) {
	var c domain.Card
	err := s.Scan(
		&c.ID, &c.AccountID, &c.CardNumber, &c.CardType, &c.Status,
		&c.CreditLimit, &c.ExpiryDate, &c.VerificationCode,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
