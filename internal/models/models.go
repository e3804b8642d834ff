package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ayo6706/wallet-ledger/internal/domain"
)

type User struct {
	ID           int64      `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Username     string     `json:"username,omitempty"`
	FirstName    string     `json:"first_name,omitempty"`
	LastName     string     `json:"last_name,omitempty"`
	Country      string     `json:"country,omitempty"`
	Status       string     `json:"status"`
	KYCStatus    string     `json:"kyc_status"`
	IsAdmin      bool       `json:"is_admin"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	LoginIP      string     `json:"login_ip,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Balances     Balances   `json:"balances,omitempty"`
}

// Balances maps a currency to its current balance. Keys cover the full
// supported set; a missing key never means zero, it means a bug.
type Balances map[domain.Currency]decimal.Decimal

// LedgerEntry is one immutable row of the transactions table. Amount and
// Fee are fixed at append time; only Status may change, and only
// pending -> completed|failed.
type LedgerEntry struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	Type        string          `json:"type"`
	Currency    domain.Currency `json:"currency"`
	Amount      decimal.Decimal `json:"amount"`
	Fee         decimal.Decimal `json:"fee"`
	Status      string          `json:"status"`
	ToAddress   string          `json:"to_address,omitempty"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}

// AdminLedgerEntry is a ledger row joined with the owning user's email for
// the admin listing view.
type AdminLedgerEntry struct {
	LedgerEntry
	UserEmail string `json:"user_email"`
}

type Notice struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// Stats is the admin dashboard aggregate.
type Stats struct {
	TotalUsers        int64           `json:"total_users"`
	TotalTransactions int64           `json:"total_transactions"`
	CompletedVolume   decimal.Decimal `json:"completed_volume"`
}
