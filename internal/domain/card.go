package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CardType string

const (
	CardTypeDebit  CardType = "DEBIT"
	CardTypeCredit CardType = "CREDIT"
)

func (t CardType) IsValid() bool {
	return t == CardTypeDebit || t == CardTypeCredit
}

type CardStatus string

const (
	CardStatusActive  CardStatus = "ACTIVE"
	CardStatusBlocked CardStatus = "BLOCKED"
	CardStatusExpired CardStatus = "EXPIRED"
)

type Card struct {
	ID               uuid.UUID
	AccountID        uuid.UUID
	CardNumber       string
	CardType         CardType
	Status           CardStatus
	CreditLimit      decimal.Decimal
	ExpiryDate       time.Time
	VerificationCode string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
