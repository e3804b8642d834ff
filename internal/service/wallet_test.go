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

type memWalletReader struct {
	balances models.Balances
	ledger   []models.LedgerEntry
	notices  []models.Notice

	ledgerLimit int
	noticeLimit int
}

func (m *memWalletReader) GetBalances(ctx context.Context, userID int64) (models.Balances, error) {
	return m.balances, nil
}

func (m *memWalletReader) ListLedgerEntries(ctx context.Context, userID int64, limit int) ([]models.LedgerEntry, error) {
	m.ledgerLimit = limit
	return m.ledger, nil
}

func (m *memWalletReader) ListNotices(ctx context.Context, userID int64, limit int) ([]models.Notice, error) {
	m.noticeLimit = limit
	return m.notices, nil
}

func TestAccountView(t *testing.T) {
	reader := &memWalletReader{
		balances: models.Balances{
			domain.BTC:  decimal.RequireFromString("0.5"),
			domain.USDT: decimal.NewFromInt(250),
		},
		ledger:  []models.LedgerEntry{{ID: 1, Type: domain.TxTypeTransfer}},
		notices: []models.Notice{{ID: 7, Title: "Welcome to CryptoApp"}},
	}
	svc := NewWalletService(reader)

	view, err := svc.Account(context.Background(), 1)
	require.NoError(t, err)

	assert.True(t, view.Balances[domain.BTC].Equal(decimal.RequireFromString("0.5")))
	require.Len(t, view.Ledger, 1)
	require.Len(t, view.Notices, 1)
	assert.Equal(t, 50, reader.ledgerLimit)
	assert.Equal(t, 10, reader.noticeLimit)
}

func TestSingleCurrencyBalance(t *testing.T) {
	reader := &memWalletReader{
		balances: models.Balances{domain.BTC: decimal.RequireFromString("0.5")},
	}
	svc := NewWalletService(reader)

	balance, err := svc.Balance(context.Background(), 1, "btc")
	require.NoError(t, err)
	assert.Equal(t, "0.50000000", balance)

	// A currency the user holds nothing of still formats as zero.
	balance, err = svc.Balance(context.Background(), 1, "USDT")
	require.NoError(t, err)
	assert.Equal(t, "0.000000", balance)

	_, err = svc.Balance(context.Background(), 1, "XYZ")
	assert.ErrorIs(t, err, domain.ErrUnsupportedCurrency)
}
