package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ayo6706/wallet-ledger/internal/domain"
	"github.com/ayo6706/wallet-ledger/internal/models"
	"github.com/ayo6706/wallet-ledger/internal/observability"
	"github.com/ayo6706/wallet-ledger/internal/repository"
)

const maxAddressLen = 128

// TransferService is the balance-mutating core. A transfer runs its funds
// check, debit and ledger append inside one database transaction holding a
// row lock on the sender's account, so two concurrent debits against a
// borderline balance can never both commit.
type TransferService struct {
	store      TxRunner
	notices    NoticeEmitter
	events     TransferPublisher
	fees       domain.FeeTable
	maxRetries int
}

func NewTransferService(store TxRunner, notices NoticeEmitter, events TransferPublisher, fees domain.FeeTable, maxRetries int) *TransferService {
	if fees == nil {
		fees = domain.DefaultFees()
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &TransferService{
		store:      store,
		notices:    notices,
		events:     events,
		fees:       fees,
		maxRetries: maxRetries,
	}
}

// Transfer debits amount plus the currency's network fee from the user and
// appends a completed ledger entry, atomically. Validation and the funds
// check happen before any mutation; a rejected transfer writes nothing.
func (s *TransferService) Transfer(ctx context.Context, userID int64, currencyCode, rawAmount, address string) (*models.LedgerEntry, error) {
	currency, err := domain.ParseCurrency(currencyCode)
	if err != nil {
		observability.IncrementTransfer("UNKNOWN", "invalid")
		return nil, err
	}
	amount, err := domain.ParseAmount(rawAmount, currency)
	if err != nil {
		observability.IncrementTransfer(string(currency), "invalid")
		return nil, err
	}
	address = strings.TrimSpace(address)
	if address == "" || len(address) > maxAddressLen {
		observability.IncrementTransfer(string(currency), "invalid")
		return nil, fmt.Errorf("%w: destination address is required", domain.ErrInvalidRequest)
	}

	fee := s.fees.Fee(currency)
	total := amount.Add(fee)

	entry := &models.LedgerEntry{
		UserID:      userID,
		Type:        domain.TxTypeTransfer,
		Currency:    currency,
		Amount:      amount,
		Fee:         fee,
		Status:      domain.TxStatusCompleted,
		ToAddress:   address,
		Description: fmt.Sprintf("Sent %s %s to %s", domain.FormatAmount(amount, currency), currency, address),
	}

	if err := s.debitAndAppend(ctx, entry, total); err != nil {
		observability.IncrementTransfer(string(currency), transferOutcome(err))
		return nil, err
	}
	observability.IncrementTransfer(string(currency), "completed")

	// Post-commit side effects. The debit is durable at this point; a
	// failed notice or event must not undo it.
	if err := s.notices.Notify(ctx, userID, domain.NoticeTypeTransaction, "Transaction Successful", entry.Description); err != nil {
		zap.L().Warn("transfer notice failed", zap.Error(err), zap.Int64("user_id", userID), zap.Int64("ledger_id", entry.ID))
	}
	if s.events != nil {
		s.events.PublishTransfer(ctx, entry)
	}

	return entry, nil
}

// debitAndAppend runs the atomic section, retrying a bounded number of
// times on lock or serialization conflicts before surfacing Contention.
func (s *TransferService) debitAndAppend(ctx context.Context, entry *models.LedgerEntry, total decimal.Decimal) error {
	var err error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		err = s.store.RunInTx(ctx, func(tx repository.Tx) error {
			balance, err := tx.BalanceForUpdate(ctx, entry.UserID, entry.Currency)
			if err != nil {
				if repository.IsNotFound(err) {
					return domain.ErrUserNotFound
				}
				return err
			}
			if balance.LessThan(total) {
				return domain.ErrInsufficientFunds
			}
			if err := tx.DebitBalance(ctx, entry.UserID, entry.Currency, total); err != nil {
				return err
			}
			return tx.AppendLedgerEntry(ctx, entry)
		})
		if err == nil {
			return nil
		}
		if !repository.IsContention(err) {
			return err
		}
		zap.L().Warn("transfer contention, retrying",
			zap.Int64("user_id", entry.UserID),
			zap.String("currency", string(entry.Currency)),
			zap.Int("attempt", attempt+1),
		)
	}
	return fmt.Errorf("%w: %v", domain.ErrContention, err)
}

func transferOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrContention):
		return "contention"
	default:
		return "error"
	}
}
