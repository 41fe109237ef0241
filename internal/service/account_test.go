package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rslakra/BankService/internal/domain"
	"github.com/rslakra/BankService/internal/repository"
	"github.com/rslakra/BankService/internal/service"
	"github.com/rslakra/BankService/internal/testutil"
)

func TestCreateAccount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := service.NewAccountService(repository.NewAccountRepository(db))
	ctx := context.Background()

	user := testutil.SeedTestUser(t, db, "create@test.com", "Create User")

	acct, err := svc.CreateAccount(ctx, user.ID, domain.AccountTypeSavings, dec("500.00"))

	require.NoError(t, err)
	assert.Equal(t, user.ID, acct.UserID)
	assert.Equal(t, domain.AccountTypeSavings, acct.AccountType)
	assert.True(t, acct.Balance.Equal(dec("500.00")))
	assert.Len(t, acct.AccountNumber, 10)
	assert.NotEqual(t, byte('0'), acct.AccountNumber[0])
	assert.True(t, acct.IsActive)

	assert.True(t, testutil.GetAccountBalance(t, db, acct.ID).Equal(dec("500.00")))
}

func TestCreateAccount_ZeroBalance(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := service.NewAccountService(repository.NewAccountRepository(db))
	ctx := context.Background()

	user := testutil.SeedTestUser(t, db, "zero@test.com", "Zero User")

	acct, err := svc.CreateAccount(ctx, user.ID, domain.AccountTypeChecking, dec("0"))

	require.NoError(t, err)
	assert.True(t, acct.Balance.IsZero())
}

func TestCreateAccount_NegativeInitialBalance(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := service.NewAccountService(repository.NewAccountRepository(db))
	ctx := context.Background()

	user := testutil.SeedTestUser(t, db, "negative@test.com", "Negative User")

	_, err := svc.CreateAccount(ctx, user.ID, domain.AccountTypeChecking, dec("-1.00"))

	require.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestCreateAccount_InvalidType(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := service.NewAccountService(repository.NewAccountRepository(db))
	ctx := context.Background()

	user := testutil.SeedTestUser(t, db, "badtype@test.com", "Badtype User")

	_, err := svc.CreateAccount(ctx, user.ID, domain.AccountType("PREMIUM"), dec("100.00"))

	require.ErrorIs(t, err, domain.ErrInvalidAccountType)
}

func TestGetUserAccounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := service.NewAccountService(repository.NewAccountRepository(db))
	ctx := context.Background()

	user := testutil.SeedTestUser(t, db, "list@test.com", "List User")
	other := testutil.SeedTestUser(t, db, "listother@test.com", "Other User")
	testutil.SeedTestAccount(t, db, user.ID, domain.AccountTypeChecking, dec("10.00"))
	testutil.SeedTestAccount(t, db, user.ID, domain.AccountTypeSavings, dec("20.00"))
	testutil.SeedTestAccount(t, db, other.ID, domain.AccountTypeChecking, dec("30.00"))

	accounts, err := svc.GetUserAccounts(ctx, user.ID)

	require.NoError(t, err)
	assert.Len(t, accounts, 2)
	for _, a := range accounts {
		assert.Equal(t, user.ID, a.UserID)
	}
}

func TestGetAccountForUser_CrossUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := service.NewAccountService(repository.NewAccountRepository(db))
	ctx := context.Background()

	owner := testutil.SeedTestUser(t, db, "getowner@test.com", "Owner")
	intruder := testutil.SeedTestUser(t, db, "getintruder@test.com", "Intruder")
	acct := testutil.SeedTestAccount(t, db, owner.ID, domain.AccountTypeChecking, dec("100.00"))

	got, err := svc.GetAccountForUser(ctx, acct.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, acct.ID, got.ID)

	_, err = svc.GetAccountForUser(ctx, acct.ID, intruder.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
