package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ayo6706/wallet-ledger/internal/domain"
	"github.com/ayo6706/wallet-ledger/internal/models"
)

// Store provides transaction scoping around the connection pool. All
// balance mutations go through RunInTx; nothing mutates account state
// outside it.
type Store struct {
	db          *pgxpool.Pool
	lockTimeout time.Duration
}

// NewStore creates a store wrapper around a pgx connection pool.
func NewStore(db *pgxpool.Pool, lockTimeout time.Duration) *Store {
	if lockTimeout <= 0 {
		lockTimeout = 3 * time.Second
	}
	return &Store{db: db, lockTimeout: lockTimeout}
}

// Tx is the mutation surface available inside a database transaction.
type Tx interface {
	// BalanceForUpdate row-locks the user's account and returns the
	// currency balance as of the lock.
	BalanceForUpdate(ctx context.Context, userID int64, currency domain.Currency) (decimal.Decimal, error)
	// DebitBalance subtracts amount from the balance. It fails with
	// domain.ErrInsufficientFunds unless balance - amount >= 0 at commit;
	// the non-negativity CHECK constraint backstops the conditional update.
	DebitBalance(ctx context.Context, userID int64, currency domain.Currency, amount decimal.Decimal) error
	CreditBalance(ctx context.Context, userID int64, currency domain.Currency, amount decimal.Decimal) error
	// AppendLedgerEntry writes one immutable ledger row and fills in the
	// assigned id and creation timestamp.
	AppendLedgerEntry(ctx context.Context, entry *models.LedgerEntry) error
	LedgerStatusForUpdate(ctx context.Context, id int64) (string, error)
	SetLedgerStatus(ctx context.Context, id int64, status string) error
}

// RunInTx executes fn within a database transaction. Row locks acquired by
// fn time out after the configured lock_timeout instead of blocking
// indefinitely.
func (s *Store) RunInTx(ctx context.Context, fn func(tx Tx) error) error {
	pgtx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: begin transaction: %v", domain.ErrStorageUnavailable, err)
	}
	defer pgtx.Rollback(ctx)

	if _, err := pgtx.Exec(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", s.lockTimeout.Milliseconds())); err != nil {
		return fmt.Errorf("set lock timeout: %w", err)
	}

	if err := fn(&pgTx{tx: pgtx}); err != nil {
		return err
	}

	if err := pgtx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// IsContention reports whether err is a lock or serialization conflict the
// caller may retry: serialization_failure, deadlock_detected or
// lock_not_available.
func IsContention(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case "40001", "40P01", "55P03":
		return true
	}
	return false
}

// IsNotFound reports whether err means no row matched.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
