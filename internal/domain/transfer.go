package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transfer moves funds between two distinct accounts. A successful transfer
// commits exactly one Transfer record plus a DEBIT transaction on the source
// and a CREDIT transaction on the destination in a single atomic scope.
type Transfer struct {
	ID              uuid.UUID
	FromAccountID   uuid.UUID
	ToAccountID     uuid.UUID
	Amount          decimal.Decimal
	Description     string
	ReferenceNumber string
	Timestamp       time.Time
}
