package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayo6706/wallet-ledger/internal/api/middleware"
	"github.com/ayo6706/wallet-ledger/internal/domain"
	"github.com/ayo6706/wallet-ledger/internal/models"
	"github.com/ayo6706/wallet-ledger/internal/repository"
	"github.com/ayo6706/wallet-ledger/internal/service"
)

// stubLedgerStore backs the transfer handler tests with a single account
// balance and captures the appended ledger entry.
type stubLedgerStore struct {
	balance decimal.Decimal
	entry   *models.LedgerEntry
}

func (s *stubLedgerStore) RunInTx(ctx context.Context, fn func(tx repository.Tx) error) error {
	return fn(&stubLedgerTx{store: s})
}

type stubLedgerTx struct {
	store *stubLedgerStore
}

func (t *stubLedgerTx) BalanceForUpdate(ctx context.Context, userID int64, currency domain.Currency) (decimal.Decimal, error) {
	return t.store.balance, nil
}

func (t *stubLedgerTx) DebitBalance(ctx context.Context, userID int64, currency domain.Currency, amount decimal.Decimal) error {
	if t.store.balance.LessThan(amount) {
		return domain.ErrInsufficientFunds
	}
	t.store.balance = t.store.balance.Sub(amount)
	return nil
}

func (t *stubLedgerTx) CreditBalance(ctx context.Context, userID int64, currency domain.Currency, amount decimal.Decimal) error {
	t.store.balance = t.store.balance.Add(amount)
	return nil
}

func (t *stubLedgerTx) AppendLedgerEntry(ctx context.Context, entry *models.LedgerEntry) error {
	entry.ID = 42
	t.store.entry = entry
	return nil
}

func (t *stubLedgerTx) LedgerStatusForUpdate(ctx context.Context, id int64) (string, error) {
	return domain.TxStatusPending, nil
}

func (t *stubLedgerTx) SetLedgerStatus(ctx context.Context, id int64, status string) error {
	return nil
}

type noopNotices struct{}

func (noopNotices) Notify(ctx context.Context, userID int64, noticeType, title, message string) error {
	return nil
}

func newTransferRig(t *testing.T, balance string) (*stubLedgerStore, http.Handler, string) {
	t.Helper()
	middleware.SetJWTSecret("handler-test-secret-0123456789-ab")
	middleware.SetJWTValidation("wallet-ledger-test", "wallet-api-test")
	middleware.SetTokenTTL(time.Hour)

	store := &stubLedgerStore{balance: decimal.RequireFromString(balance)}
	svc := service.NewTransferService(store, noopNotices{}, nil, domain.DefaultFees(), 0)
	h := NewTransferHandler(svc)

	token, err := middleware.IssueToken(7, false)
	require.NoError(t, err)
	return store, middleware.AuthMiddleware(http.HandlerFunc(h.Create)), token
}

func postTransfer(handler http.Handler, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/v1/transfers", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestCreateAcceptsDocumentedBody(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{name: "string amount", body: `{"currency":"BTC","amount":"0.5","address":"bc1qdestination"}`},
		{name: "number amount", body: `{"currency":"btc","amount":0.5,"address":"bc1qdestination"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store, handler, token := newTransferRig(t, "1.0")

			w := postTransfer(handler, token, tc.body)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			require.NotNil(t, store.entry)
			assert.Equal(t, "bc1qdestination", store.entry.ToAddress)
			assert.True(t, store.entry.Amount.Equal(decimal.RequireFromString("0.5")))
		})
	}
}

func TestCreateRejectsMissingAddress(t *testing.T) {
	store, handler, token := newTransferRig(t, "1.0")

	w := postTransfer(handler, token, `{"currency":"BTC","amount":"0.5"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/problem+json")
	assert.Nil(t, store.entry)
}
