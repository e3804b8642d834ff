package service

import (
	"context"

	"github.com/ayo6706/wallet-ledger/internal/models"
	"github.com/ayo6706/wallet-ledger/internal/repository"
)

// TxRunner is the transaction-scoping contract services need from the
// repository store.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(tx repository.Tx) error) error
}

// UserStore defines the user persistence operations the auth service needs.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	RecordLogin(ctx context.Context, id int64, ip string) error
}

// NoticeEmitter records a user-facing notice. Purely additive; callers on
// the transfer path treat failures as non-fatal.
type NoticeEmitter interface {
	Notify(ctx context.Context, userID int64, noticeType, title, message string) error
}

// TransferPublisher emits a completed-transfer event to interested
// consumers. Best effort: implementations must not fail the transfer.
type TransferPublisher interface {
	PublishTransfer(ctx context.Context, entry *models.LedgerEntry)
}
