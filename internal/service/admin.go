package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ayo6706/wallet-ledger/internal/domain"
	"github.com/ayo6706/wallet-ledger/internal/models"
	"github.com/ayo6706/wallet-ledger/internal/repository"
)

// AdminReader is the listing/aggregate surface for the admin panel.
type AdminReader interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	ListAllLedgerEntries(ctx context.Context, limit int) ([]models.AdminLedgerEntry, error)
	GetStats(ctx context.Context) (*models.Stats, error)
}

// AdminService backs the admin panel: listings, stats, ledger status
// resolution and the external credit (deposit) path.
type AdminService struct {
	reader  AdminReader
	store   TxRunner
	notices NoticeEmitter
}

func NewAdminService(reader AdminReader, store TxRunner, notices NoticeEmitter) *AdminService {
	return &AdminService{reader: reader, store: store, notices: notices}
}

func (s *AdminService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.reader.ListUsers(ctx)
}

func (s *AdminService) ListTransactions(ctx context.Context, limit int) ([]models.AdminLedgerEntry, error) {
	return s.reader.ListAllLedgerEntries(ctx, limit)
}

func (s *AdminService) Stats(ctx context.Context) (*models.Stats, error) {
	return s.reader.GetStats(ctx)
}

// ResolveTransaction moves a pending ledger entry to completed or failed.
// The row is locked for the duration of the check so a status can resolve
// at most once.
func (s *AdminService) ResolveTransaction(ctx context.Context, ledgerID int64, nextStatus string) error {
	if nextStatus != domain.TxStatusCompleted && nextStatus != domain.TxStatusFailed {
		return fmt.Errorf("%w: status must be %q or %q", domain.ErrInvalidRequest, domain.TxStatusCompleted, domain.TxStatusFailed)
	}
	return s.store.RunInTx(ctx, func(tx repository.Tx) error {
		current, err := tx.LedgerStatusForUpdate(ctx, ledgerID)
		if err != nil {
			if repository.IsNotFound(err) {
				return domain.ErrNotFound
			}
			return err
		}
		if current == nextStatus {
			return nil
		}
		if !canTransitionLedger(current, nextStatus) {
			return fmt.Errorf("%w: cannot transition %s entry to %s", domain.ErrInvalidRequest, current, nextStatus)
		}
		return tx.SetLedgerStatus(ctx, ledgerID, nextStatus)
	})
}

// Credit is the external deposit path: it credits a user balance and
// appends the matching ledger entry in one transaction.
func (s *AdminService) Credit(ctx context.Context, userID int64, currencyCode, rawAmount, description string) (*models.LedgerEntry, error) {
	currency, err := domain.ParseCurrency(currencyCode)
	if err != nil {
		return nil, err
	}
	amount, err := domain.ParseAmount(rawAmount, currency)
	if err != nil {
		return nil, err
	}
	if description == "" {
		description = fmt.Sprintf("Deposited %s %s", domain.FormatAmount(amount, currency), currency)
	}

	entry := &models.LedgerEntry{
		UserID:      userID,
		Type:        domain.TxTypeDeposit,
		Currency:    currency,
		Amount:      amount,
		Fee:         decimal.Zero,
		Status:      domain.TxStatusCompleted,
		Description: description,
	}
	err = s.store.RunInTx(ctx, func(tx repository.Tx) error {
		if err := tx.CreditBalance(ctx, userID, currency, amount); err != nil {
			return err
		}
		return tx.AppendLedgerEntry(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	if err := s.notices.Notify(ctx, userID, domain.NoticeTypeTransaction, "Deposit Received", entry.Description); err != nil {
		zap.L().Warn("deposit notice failed", zap.Error(err), zap.Int64("user_id", userID))
	}
	return entry, nil
}
