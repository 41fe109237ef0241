package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rslakra/BankService/internal/auth"
	"github.com/rslakra/BankService/internal/domain"
	"github.com/rslakra/BankService/internal/service"
)

type mockLedger struct {
	applied *service.ApplyTransactionRequest
	txn     *domain.Transaction
	listed  []domain.Transaction
	err     error
}

func (m *mockLedger) ApplyTransaction(_ context.Context, req service.ApplyTransactionRequest) (*domain.Transaction, error) {
	m.applied = &req
	if m.err != nil {
		return nil, m.err
	}
	return m.txn, nil
}

func (m *mockLedger) ListTransactions(_ context.Context, _, _ uuid.UUID, _, _ int) ([]domain.Transaction, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.listed, nil
}

func doTransactionRequest(t *testing.T, ledger *mockLedger, userID uuid.UUID, accountID, body string) *httptest.ResponseRecorder {
	t.Helper()

	h := NewTransactionHandler(ledger)
	mux := http.NewServeMux()
	mux.HandleFunc("POST /accounts/{id}/transactions", h.Create)

	req := httptest.NewRequest(http.MethodPost, "/accounts/"+accountID+"/transactions", strings.NewReader(body))
	req = req.WithContext(auth.ContextWithUserID(req.Context(), userID))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestCreateTransaction(t *testing.T) {
	userID := uuid.New()
	accountID := uuid.New()

	tests := []struct {
		name       string
		body       string
		svcErr     error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "valid credit",
			body:       `{"transaction_type":"CREDIT","amount":"100.50","description":"deposit"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "malformed json",
			body:       `{not json`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_REQUEST",
		},
		{
			name:       "unknown type",
			body:       `{"transaction_type":"WITHDRAW","amount":"10"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_FAILED",
		},
		{
			name:       "zero amount",
			body:       `{"transaction_type":"DEBIT","amount":"0"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_FAILED",
		},
		{
			name:       "insufficient funds",
			body:       `{"transaction_type":"DEBIT","amount":"10"}`,
			svcErr:     domain.ErrInsufficientFunds,
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "INSUFFICIENT_FUNDS",
		},
		{
			name:       "account not visible",
			body:       `{"transaction_type":"DEBIT","amount":"10"}`,
			svcErr:     domain.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "RESOURCE_NOT_FOUND",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ledger := &mockLedger{
				err: tc.svcErr,
				txn: &domain.Transaction{
					ID:              uuid.New(),
					AccountID:       accountID,
					Type:            domain.TransactionTypeCredit,
					Amount:          decimal.RequireFromString("100.50"),
					Description:     "deposit",
					ReferenceNumber: uuid.NewString(),
					Timestamp:       time.Now().UTC(),
				},
			}

			rec := doTransactionRequest(t, ledger, userID, accountID.String(), tc.body)

			assert.Equal(t, tc.wantStatus, rec.Code)

			var resp APIResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

			if tc.wantCode != "" {
				require.NotNil(t, resp.Error)
				assert.Equal(t, tc.wantCode, resp.Error.Code)
				assert.False(t, resp.Success)
			} else {
				assert.True(t, resp.Success)
				require.NotNil(t, ledger.applied)
				assert.Equal(t, userID, ledger.applied.UserID)
				assert.Equal(t, accountID, ledger.applied.AccountID)
			}
		})
	}
}

func TestCreateTransaction_MissingUser(t *testing.T) {
	h := NewTransactionHandler(&mockLedger{})
	mux := http.NewServeMux()
	mux.HandleFunc("POST /accounts/{id}/transactions", h.Create)

	req := httptest.NewRequest(http.MethodPost, "/accounts/"+uuid.NewString()+"/transactions",
		strings.NewReader(`{"transaction_type":"CREDIT","amount":"10"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateTransaction_BadAccountID(t *testing.T) {
	rec := doTransactionRequest(t, &mockLedger{}, uuid.New(), "not-a-uuid",
		`{"transaction_type":"CREDIT","amount":"10"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
