package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayo6706/wallet-ledger/internal/domain"
	"github.com/ayo6706/wallet-ledger/internal/models"
)

type memAdminReader struct {
	users   []models.User
	entries []models.AdminLedgerEntry
	stats   models.Stats
}

func (m *memAdminReader) ListUsers(ctx context.Context) ([]models.User, error) {
	return m.users, nil
}

func (m *memAdminReader) ListAllLedgerEntries(ctx context.Context, limit int) ([]models.AdminLedgerEntry, error) {
	if limit < len(m.entries) {
		return m.entries[:limit], nil
	}
	return m.entries, nil
}

func (m *memAdminReader) GetStats(ctx context.Context) (*models.Stats, error) {
	stats := m.stats
	return &stats, nil
}

func newAdminFixture() (*AdminService, *memStore, *memNotices) {
	store := newMemStore()
	notices := &memNotices{}
	svc := NewAdminService(&memAdminReader{}, store, notices)
	return svc, store, notices
}

func TestLedgerTransitions(t *testing.T) {
	cases := []struct {
		current string
		next    string
		want    bool
	}{
		{domain.TxStatusPending, domain.TxStatusCompleted, true},
		{domain.TxStatusPending, domain.TxStatusFailed, true},
		{domain.TxStatusCompleted, domain.TxStatusFailed, false},
		{domain.TxStatusCompleted, domain.TxStatusPending, false},
		{domain.TxStatusFailed, domain.TxStatusCompleted, false},
		{domain.TxStatusFailed, domain.TxStatusPending, false},
		{"bogus", domain.TxStatusCompleted, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, canTransitionLedger(tc.current, tc.next), "%s -> %s", tc.current, tc.next)
	}
}

func TestResolveTransaction(t *testing.T) {
	svc, store, _ := newAdminFixture()
	store.ledger = []models.LedgerEntry{
		{ID: 1, Status: domain.TxStatusPending},
		{ID: 2, Status: domain.TxStatusCompleted},
	}

	require.NoError(t, svc.ResolveTransaction(context.Background(), 1, domain.TxStatusCompleted))
	assert.Equal(t, domain.TxStatusCompleted, store.entries()[0].Status)

	// Resolving to the same status is idempotent.
	require.NoError(t, svc.ResolveTransaction(context.Background(), 1, domain.TxStatusCompleted))

	// Terminal entries never change again.
	err := svc.ResolveTransaction(context.Background(), 2, domain.TxStatusFailed)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)

	// Only the two terminal statuses are accepted at all.
	err = svc.ResolveTransaction(context.Background(), 1, domain.TxStatusPending)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)

	err = svc.ResolveTransaction(context.Background(), 404, domain.TxStatusFailed)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdminCreditAppendsDepositEntry(t *testing.T) {
	svc, store, notices := newAdminFixture()
	store.seed(1, domain.BTC, "0.25")

	entry, err := svc.Credit(context.Background(), 1, "btc", "0.75", "")
	require.NoError(t, err)

	assert.True(t, store.balance(1, domain.BTC).Equal(decimal.NewFromInt(1)))
	assert.Equal(t, domain.TxTypeDeposit, entry.Type)
	assert.Equal(t, domain.TxStatusCompleted, entry.Status)
	assert.True(t, entry.Fee.IsZero())
	assert.Contains(t, entry.Description, "Deposited 0.75000000 BTC")

	require.Len(t, store.entries(), 1)

	noted := notices.all()
	require.Len(t, noted, 1)
	assert.Equal(t, "Deposit Received", noted[0].Title)
}

func TestAdminCreditValidation(t *testing.T) {
	svc, store, _ := newAdminFixture()
	store.seed(2, domain.BTC, "0")

	_, err := svc.Credit(context.Background(), 2, "XYZ", "1", "")
	assert.ErrorIs(t, err, domain.ErrUnsupportedCurrency)

	_, err = svc.Credit(context.Background(), 2, "BTC", "-1", "")
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	assert.True(t, store.balance(2, domain.BTC).IsZero())
	assert.Empty(t, store.entries())
}
