package service_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rslakra/BankService/internal/domain"
	"github.com/rslakra/BankService/internal/repository"
	"github.com/rslakra/BankService/internal/service"
	"github.com/rslakra/BankService/internal/testutil"
)

func setupCardService(t *testing.T, db *sql.DB) *service.CardService {
	t.Helper()
	return service.NewCardService(
		repository.NewAccountRepository(db),
		repository.NewCardRepository(db),
	)
}

func TestIssueCard_Debit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupCardService(t, db)
	ctx := context.Background()

	user := testutil.SeedTestUser(t, db, "card@test.com", "Card User")
	acct := testutil.SeedTestAccount(t, db, user.ID, domain.AccountTypeChecking, dec("100.00"))

	card, err := svc.IssueCard(ctx, acct.ID, user.ID, domain.CardTypeDebit, dec("0"))

	require.NoError(t, err)
	assert.Equal(t, acct.ID, card.AccountID)
	assert.Equal(t, domain.CardTypeDebit, card.CardType)
	assert.Equal(t, domain.CardStatusActive, card.Status)
	assert.Len(t, card.CardNumber, 16)
	assert.Equal(t, byte('4'), card.CardNumber[0])
	assert.Len(t, card.VerificationCode, 3)

	wantExpiry := time.Now().UTC().AddDate(4, 0, 0)
	assert.WithinDuration(t, wantExpiry, card.ExpiryDate, time.Minute)
}

func TestIssueCard_Credit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupCardService(t, db)
	ctx := context.Background()

	user := testutil.SeedTestUser(t, db, "credit-card@test.com", "Credit Card User")
	acct := testutil.SeedTestAccount(t, db, user.ID, domain.AccountTypeChecking, dec("100.00"))

	card, err := svc.IssueCard(ctx, acct.ID, user.ID, domain.CardTypeCredit, dec("5000.00"))

	require.NoError(t, err)
	assert.Equal(t, domain.CardTypeCredit, card.CardType)
	assert.Equal(t, byte('5'), card.CardNumber[0])
	assert.True(t, card.CreditLimit.Equal(dec("5000.00")))
}

func TestIssueCard_InvalidType(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupCardService(t, db)
	ctx := context.Background()

	user := testutil.SeedTestUser(t, db, "badcard@test.com", "Badcard User")
	acct := testutil.SeedTestAccount(t, db, user.ID, domain.AccountTypeChecking, dec("100.00"))

	_, err := svc.IssueCard(ctx, acct.ID, user.ID, domain.CardType("PREPAID"), dec("0"))

	require.ErrorIs(t, err, domain.ErrInvalidCardType)
}

func TestIssueCard_NegativeCreditLimit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupCardService(t, db)
	ctx := context.Background()

	user := testutil.SeedTestUser(t, db, "neglimit@test.com", "Neglimit User")
	acct := testutil.SeedTestAccount(t, db, user.ID, domain.AccountTypeChecking, dec("100.00"))

	_, err := svc.IssueCard(ctx, acct.ID, user.ID, domain.CardTypeCredit, dec("-100.00"))

	require.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestIssueCard_OtherUsersAccount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupCardService(t, db)
	ctx := context.Background()

	owner := testutil.SeedTestUser(t, db, "cardowner@test.com", "Owner")
	intruder := testutil.SeedTestUser(t, db, "cardintruder@test.com", "Intruder")
	acct := testutil.SeedTestAccount(t, db, owner.ID, domain.AccountTypeChecking, dec("100.00"))

	_, err := svc.IssueCard(ctx, acct.ID, intruder.ID, domain.CardTypeDebit, dec("0"))

	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListCards(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupCardService(t, db)
	ctx := context.Background()

	user := testutil.SeedTestUser(t, db, "listcards@test.com", "Listcards User")
	acct := testutil.SeedTestAccount(t, db, user.ID, domain.AccountTypeChecking, dec("100.00"))

	_, err := svc.IssueCard(ctx, acct.ID, user.ID, domain.CardTypeDebit, dec("0"))
	require.NoError(t, err)
	_, err = svc.IssueCard(ctx, acct.ID, user.ID, domain.CardTypeCredit, dec("2000.00"))
	require.NoError(t, err)

	cards, err := svc.ListCards(ctx, acct.ID, user.ID)

	require.NoError(t, err)
	assert.Len(t, cards, 2)
}
