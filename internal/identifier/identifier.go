// Package identifier generates the externally displayable numbers the
// service hands out: account numbers, transaction/transfer reference
// numbers, card numbers and card verification codes. Generation is pure;
// uniqueness is enforced by database constraints at commit time, and
// callers regenerate on collision.
package identifier

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
	"github.com/rslakra/BankService/internal/domain"
)

// AccountNumber returns a 10-digit numeric string with a non-zero leading
// digit.
func AccountNumber() (string, error) {
	digits, err := randomDigits(10)
	if err != nil {
		return "", fmt.Errorf("AccountNumber: %w", err)
	}
	if digits[0] == '0' {
		digits[0] = '1'
	}
	return string(digits), nil
}

// ReferenceNumber returns a globally unique opaque token for a transaction
// or transfer.
func ReferenceNumber() string {
	return uuid.NewString()
}

// CardNumber returns a 16-digit numeric string. The leading digit is fixed
// per card type so numbers stay brand-consistent: 4 for debit, 5 for credit.
func CardNumber(cardType domain.CardType) (string, error) {
	digits, err := randomDigits(16)
	if err != nil {
		return "", fmt.Errorf("CardNumber: %w", err)
	}
	switch cardType {
	case domain.CardTypeCredit:
		digits[0] = '5'
	default:
		digits[0] = '4'
	}
	return string(digits), nil
}

// VerificationCode returns a 3-digit code. Codes are not required to be
// unique.
func VerificationCode() (string, error) {
	digits, err := randomDigits(3)
	if err != nil {
		return "", fmt.Errorf("VerificationCode: %w", err)
	}
	return string(digits), nil
}

func randomDigits(n int) ([]byte, error) {
	digits := make([]byte, n)
	for i := range digits {
		v, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return nil, fmt.Errorf("randomDigits: %w", err)
		}
		digits[i] = '0' + byte(v.Int64())
	}
	return digits, nil
}
