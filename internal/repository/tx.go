package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/ayo6706/wallet-ledger/internal/domain"
	"github.com/ayo6706/wallet-ledger/internal/models"
)

// pgTx implements Tx over an open pgx transaction. Balance column names are
// resolved through the closed domain.Currency table, never from request
// input.
type pgTx struct {
	tx pgx.Tx
}

func (t *pgTx) BalanceForUpdate(ctx context.Context, userID int64, currency domain.Currency) (decimal.Decimal, error) {
	query := fmt.Sprintf(`SELECT %s::text FROM users WHERE id = $1 FOR UPDATE`, currency.BalanceColumn())
	var raw string
	if err := t.tx.QueryRow(ctx, query, userID).Scan(&raw); err != nil {
		return decimal.Zero, fmt.Errorf("lock balance: %w", err)
	}
	balance, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse stored balance %q: %w", raw, err)
	}
	return balance, nil
}

func (t *pgTx) DebitBalance(ctx context.Context, userID int64, currency domain.Currency, amount decimal.Decimal) error {
	col := currency.BalanceColumn()
	query := fmt.Sprintf(`UPDATE users SET %s = %s - $1, updated_at = NOW() WHERE id = $2 AND %s >= $1`, col, col, col)
	tag, err := t.tx.Exec(ctx, query, amount.String(), userID)
	if err != nil {
		return fmt.Errorf("debit balance: %w", err)
	}
	if tag.RowsAffected() != 1 {
		return domain.ErrInsufficientFunds
	}
	return nil
}

func (t *pgTx) CreditBalance(ctx context.Context, userID int64, currency domain.Currency, amount decimal.Decimal) error {
	col := currency.BalanceColumn()
	query := fmt.Sprintf(`UPDATE users SET %s = %s + $1, updated_at = NOW() WHERE id = $2`, col, col)
	tag, err := t.tx.Exec(ctx, query, amount.String(), userID)
	if err != nil {
		return fmt.Errorf("credit balance: %w", err)
	}
	if tag.RowsAffected() != 1 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (t *pgTx) AppendLedgerEntry(ctx context.Context, entry *models.LedgerEntry) error {
	query := `
		INSERT INTO transactions (user_id, type, currency, amount, fee, status, to_address, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at
	`
	err := t.tx.QueryRow(ctx, query,
		entry.UserID,
		entry.Type,
		string(entry.Currency),
		entry.Amount.String(),
		entry.Fee.String(),
		entry.Status,
		entry.ToAddress,
		entry.Description,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("append ledger entry: %w", err)
	}
	return nil
}

func (t *pgTx) LedgerStatusForUpdate(ctx context.Context, id int64) (string, error) {
	var status string
	err := t.tx.QueryRow(ctx, `SELECT status FROM transactions WHERE id = $1 FOR UPDATE`, id).Scan(&status)
	if err != nil {
		return "", fmt.Errorf("lock ledger entry: %w", err)
	}
	return status, nil
}

func (t *pgTx) SetLedgerStatus(ctx context.Context, id int64, status string) error {
	tag, err := t.tx.Exec(ctx, `UPDATE transactions SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("update ledger status: %w", err)
	}
	if tag.RowsAffected() != 1 {
		return fmt.Errorf("update ledger status affected %d rows", tag.RowsAffected())
	}
	return nil
}
