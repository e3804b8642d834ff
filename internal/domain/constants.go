package domain

// Ledger entry types.
const (
	TxTypeTransfer = "transfer"
	TxTypeDeposit  = "deposit"
	TxTypeSwap     = "swap"
)

// Ledger entry statuses. Completed entries are immutable; pending entries
// may transition exactly once.
const (
	TxStatusPending   = "pending"
	TxStatusCompleted = "completed"
	TxStatusFailed    = "failed"
)

// Notice types.
const (
	NoticeTypeSystem      = "system"
	NoticeTypeTransaction = "transaction"
	NoticeTypeSecurity    = "security"
	NoticeTypeKYC         = "kyc"
	NoticeTypePromotion   = "promotion"
)

// Account statuses.
const (
	UserStatusActive    = "active"
	UserStatusSuspended = "suspended"
	UserStatusBlocked   = "blocked"
	UserStatusPending   = "pending"
)
