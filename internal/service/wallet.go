package service

import (
	"context"

	"github.com/ayo6706/wallet-ledger/internal/domain"
	"github.com/ayo6706/wallet-ledger/internal/models"
)

// WalletReader is the read-only account surface: balances, ledger history,
// notices.
type WalletReader interface {
	GetBalances(ctx context.Context, userID int64) (models.Balances, error)
	ListLedgerEntries(ctx context.Context, userID int64, limit int) ([]models.LedgerEntry, error)
	ListNotices(ctx context.Context, userID int64, limit int) ([]models.Notice, error)
}

// AccountView is the aggregate the dashboard renders.
type AccountView struct {
	Balances models.Balances      `json:"balances"`
	Ledger   []models.LedgerEntry `json:"transactions"`
	Notices  []models.Notice      `json:"notices"`
}

// WalletService serves the read-only account view. It consumes the balance
// store and ledger as collaborators and never mutates either.
type WalletService struct {
	store WalletReader
}

func NewWalletService(store WalletReader) *WalletService {
	return &WalletService{store: store}
}

// Account returns balances, recent ledger entries and recent notices for a
// user. Two calls with no intervening writes return identical results.
func (s *WalletService) Account(ctx context.Context, userID int64) (*AccountView, error) {
	balances, err := s.store.GetBalances(ctx, userID)
	if err != nil {
		return nil, err
	}
	ledger, err := s.store.ListLedgerEntries(ctx, userID, 50)
	if err != nil {
		return nil, err
	}
	notices, err := s.store.ListNotices(ctx, userID, 10)
	if err != nil {
		return nil, err
	}
	return &AccountView{Balances: balances, Ledger: ledger, Notices: notices}, nil
}

// Balance returns a single currency balance.
func (s *WalletService) Balance(ctx context.Context, userID int64, currencyCode string) (string, error) {
	currency, err := domain.ParseCurrency(currencyCode)
	if err != nil {
		return "", err
	}
	balances, err := s.store.GetBalances(ctx, userID)
	if err != nil {
		return "", err
	}
	return domain.FormatAmount(balances[currency], currency), nil
}
