package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayo6706/wallet-ledger/internal/domain"
)

type memReconciliationReader struct {
	ledgerNet   map[domain.Currency]decimal.Decimal
	balanceSums map[domain.Currency]decimal.Decimal
	err         error
}

func (m *memReconciliationReader) LedgerNetByCurrency(ctx context.Context) (map[domain.Currency]decimal.Decimal, error) {
	return m.ledgerNet, m.err
}

func (m *memReconciliationReader) BalanceSumsByCurrency(ctx context.Context) (map[domain.Currency]decimal.Decimal, error) {
	return m.balanceSums, m.err
}

func TestReconciliationBalanced(t *testing.T) {
	reader := &memReconciliationReader{
		ledgerNet: map[domain.Currency]decimal.Decimal{
			domain.BTC: decimal.RequireFromString("1.5"),
		},
		balanceSums: map[domain.Currency]decimal.Decimal{
			domain.BTC: decimal.RequireFromString("1.50000000"),
		},
	}

	err := NewReconciliationService(reader).Run(context.Background())
	require.NoError(t, err)
}

func TestReconciliationDetectsDriftWithoutFailing(t *testing.T) {
	reader := &memReconciliationReader{
		ledgerNet: map[domain.Currency]decimal.Decimal{
			domain.BTC: decimal.RequireFromString("2"),
		},
		balanceSums: map[domain.Currency]decimal.Decimal{
			domain.BTC: decimal.RequireFromString("1.9"),
		},
	}

	// Drift is a signal, not a run failure.
	err := NewReconciliationService(reader).Run(context.Background())
	require.NoError(t, err)
}

func TestReconciliationPropagatesReadErrors(t *testing.T) {
	reader := &memReconciliationReader{err: errors.New("db down")}
	err := NewReconciliationService(reader).Run(context.Background())
	assert.Error(t, err)
}
