package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ayo6706/wallet-ledger/internal/domain"
	"github.com/ayo6706/wallet-ledger/internal/models"
)

// Repository holds the non-transactional, typed query set. Every row is
// validated into an explicit record at this boundary; nothing downstream
// sees raw query results.
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const userColumns = `
	id, email, password_hash,
	COALESCE(username, ''), COALESCE(first_name, ''), COALESCE(last_name, ''), COALESCE(country, ''),
	status, kyc_status, is_admin, last_login, COALESCE(login_ip, ''), created_at, updated_at
`

func scanUser(row pgx.Row) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash,
		&u.Username, &u.FirstName, &u.LastName, &u.Country,
		&u.Status, &u.KYCStatus, &u.IsAdmin, &u.LastLogin, &u.LoginIP, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// CreateUser inserts a user with all balances at their zero defaults.
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, password_hash, status, kyc_status, login_ip, last_login, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, user.Email, user.PasswordHash, user.Status, user.KYCStatus, user.LoginIP).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	user, err := scanUser(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return user, nil
}

func (r *Repository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	user, err := scanUser(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return user, nil
}

// IsAdmin reads the persisted admin flag. Admin routes call this fresh on
// every request instead of trusting the token claim, so a revoked flag
// takes effect immediately.
func (r *Repository) IsAdmin(ctx context.Context, id int64) (bool, error) {
	var isAdmin bool
	err := r.db.QueryRow(ctx, `SELECT is_admin FROM users WHERE id = $1`, id).Scan(&isAdmin)
	if err != nil {
		if IsNotFound(err) {
			return false, domain.ErrUserNotFound
		}
		return false, fmt.Errorf("check admin flag: %w", err)
	}
	return isAdmin, nil
}

func (r *Repository) RecordLogin(ctx context.Context, id int64, ip string) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET last_login = NOW(), login_ip = $1, updated_at = NOW() WHERE id = $2`, ip, id)
	if err != nil {
		return fmt.Errorf("record login: %w", err)
	}
	return nil
}

func balanceSelect() string {
	cols := make([]string, 0, len(domain.Currencies()))
	for _, c := range domain.Currencies() {
		cols = append(cols, c.BalanceColumn()+"::text")
	}
	return strings.Join(cols, ", ")
}

func scanBalances(row pgx.Row) (models.Balances, error) {
	currencies := domain.Currencies()
	raw := make([]string, len(currencies))
	dest := make([]any, len(currencies))
	for i := range raw {
		dest[i] = &raw[i]
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	balances := make(models.Balances, len(currencies))
	for i, c := range currencies {
		value, err := decimal.NewFromString(raw[i])
		if err != nil {
			return nil, fmt.Errorf("parse stored %s balance %q: %w", c, raw[i], err)
		}
		balances[c] = value
	}
	return balances, nil
}

// GetBalances returns the full per-currency balance map for a user.
func (r *Repository) GetBalances(ctx context.Context, userID int64) (models.Balances, error) {
	row := r.db.QueryRow(ctx, `SELECT `+balanceSelect()+` FROM users WHERE id = $1`, userID)
	balances, err := scanBalances(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get balances: %w", err)
	}
	return balances, nil
}

// ListUsers returns non-admin users with their balances, newest first.
func (r *Repository) ListUsers(ctx context.Context) ([]models.User, error) {
	query := `SELECT ` + userColumns + `, ` + balanceSelect() + ` FROM users WHERE NOT is_admin ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	currencies := domain.Currencies()
	var users []models.User
	for rows.Next() {
		var u models.User
		raw := make([]string, len(currencies))
		dest := []any{
			&u.ID, &u.Email, &u.PasswordHash,
			&u.Username, &u.FirstName, &u.LastName, &u.Country,
			&u.Status, &u.KYCStatus, &u.IsAdmin, &u.LastLogin, &u.LoginIP, &u.CreatedAt, &u.UpdatedAt,
		}
		for i := range raw {
			dest = append(dest, &raw[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		u.Balances = make(models.Balances, len(currencies))
		for i, c := range currencies {
			value, err := decimal.NewFromString(raw[i])
			if err != nil {
				return nil, fmt.Errorf("parse stored %s balance %q: %w", c, raw[i], err)
			}
			u.Balances[c] = value
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

const ledgerColumns = `id, user_id, type, currency, amount::text, fee::text, status, COALESCE(to_address, ''), description, created_at`

func scanLedgerEntry(rows pgx.Rows) (models.LedgerEntry, error) {
	var e models.LedgerEntry
	var currency, amount, fee string
	err := rows.Scan(&e.ID, &e.UserID, &e.Type, &currency, &amount, &fee, &e.Status, &e.ToAddress, &e.Description, &e.CreatedAt)
	if err != nil {
		return e, err
	}
	e.Currency = domain.Currency(currency)
	if e.Amount, err = decimal.NewFromString(amount); err != nil {
		return e, fmt.Errorf("parse stored amount %q: %w", amount, err)
	}
	if e.Fee, err = decimal.NewFromString(fee); err != nil {
		return e, fmt.Errorf("parse stored fee %q: %w", fee, err)
	}
	return e, nil
}

// ListLedgerEntries returns a user's ledger rows, newest first.
func (r *Repository) ListLedgerEntries(ctx context.Context, userID int64, limit int) ([]models.LedgerEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT ` + ledgerColumns + ` FROM transactions WHERE user_id = $1 ORDER BY id DESC LIMIT $2`
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []models.LedgerEntry
	for rows.Next() {
		entry, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// ListAllLedgerEntries returns every ledger row joined with the owner's
// email, newest first. Admin listing view.
func (r *Repository) ListAllLedgerEntries(ctx context.Context, limit int) ([]models.AdminLedgerEntry, error) {
	if limit <= 0 {
		limit = 200
	}
	query := `
		SELECT t.id, t.user_id, t.type, t.currency, t.amount::text, t.fee::text, t.status,
		       COALESCE(t.to_address, ''), t.description, t.created_at, u.email
		FROM transactions t
		JOIN users u ON u.id = t.user_id
		ORDER BY t.created_at DESC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list all ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []models.AdminLedgerEntry
	for rows.Next() {
		var e models.AdminLedgerEntry
		var currency, amount, fee string
		err := rows.Scan(&e.ID, &e.UserID, &e.Type, &currency, &amount, &fee, &e.Status, &e.ToAddress, &e.Description, &e.CreatedAt, &e.UserEmail)
		if err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		e.Currency = domain.Currency(currency)
		if e.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("parse stored amount %q: %w", amount, err)
		}
		if e.Fee, err = decimal.NewFromString(fee); err != nil {
			return nil, fmt.Errorf("parse stored fee %q: %w", fee, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// InsertNotice appends one user-facing notice.
func (r *Repository) InsertNotice(ctx context.Context, notice *models.Notice) error {
	query := `
		INSERT INTO account_notices (user_id, type, title, message, is_read, created_at)
		VALUES ($1, $2, $3, $4, FALSE, NOW())
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, notice.UserID, notice.Type, notice.Title, notice.Message).
		Scan(&notice.ID, &notice.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert notice: %w", err)
	}
	return nil
}

func (r *Repository) ListNotices(ctx context.Context, userID int64, limit int) ([]models.Notice, error) {
	if limit <= 0 {
		limit = 10
	}
	query := `
		SELECT id, user_id, type, title, message, is_read, created_at
		FROM account_notices
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list notices: %w", err)
	}
	defer rows.Close()

	var notices []models.Notice
	for rows.Next() {
		var n models.Notice
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notice: %w", err)
		}
		notices = append(notices, n)
	}
	return notices, rows.Err()
}

// MarkNoticeRead flips the is-read flag on the caller's own notice.
func (r *Repository) MarkNoticeRead(ctx context.Context, userID, noticeID int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE account_notices SET is_read = TRUE WHERE id = $1 AND user_id = $2`, noticeID, userID)
	if err != nil {
		return fmt.Errorf("mark notice read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetStats aggregates the admin dashboard numbers.
func (r *Repository) GetStats(ctx context.Context) (*models.Stats, error) {
	stats := &models.Stats{}
	var volume string
	query := `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM transactions),
			(SELECT COALESCE(SUM(amount), 0)::text FROM transactions WHERE status = 'completed')
	`
	if err := r.db.QueryRow(ctx, query).Scan(&stats.TotalUsers, &stats.TotalTransactions, &volume); err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}
	var err error
	if stats.CompletedVolume, err = decimal.NewFromString(volume); err != nil {
		return nil, fmt.Errorf("parse stored volume %q: %w", volume, err)
	}
	return stats, nil
}

// LedgerNetByCurrency computes, per currency, the net amount the completed
// ledger says user balances should hold: deposits minus transfer
// amount+fee. Reconciliation input.
func (r *Repository) LedgerNetByCurrency(ctx context.Context) (map[domain.Currency]decimal.Decimal, error) {
	query := `
		SELECT currency,
		       COALESCE(SUM(CASE type WHEN 'deposit' THEN amount ELSE -(amount + fee) END), 0)::text
		FROM transactions
		WHERE status = 'completed'
		GROUP BY currency
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ledger net by currency: %w", err)
	}
	defer rows.Close()

	net := make(map[domain.Currency]decimal.Decimal)
	for rows.Next() {
		var currency, raw string
		if err := rows.Scan(&currency, &raw); err != nil {
			return nil, fmt.Errorf("scan ledger net: %w", err)
		}
		value, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("parse ledger net %q: %w", raw, err)
		}
		net[domain.Currency(currency)] = value
	}
	return net, rows.Err()
}

// BalanceSumsByCurrency sums every user's balance per currency.
// Reconciliation input.
func (r *Repository) BalanceSumsByCurrency(ctx context.Context) (map[domain.Currency]decimal.Decimal, error) {
	currencies := domain.Currencies()
	cols := make([]string, 0, len(currencies))
	for _, c := range currencies {
		cols = append(cols, fmt.Sprintf("COALESCE(SUM(%s), 0)::text", c.BalanceColumn()))
	}
	query := `SELECT ` + strings.Join(cols, ", ") + ` FROM users`

	raw := make([]string, len(currencies))
	dest := make([]any, len(currencies))
	for i := range raw {
		dest[i] = &raw[i]
	}
	if err := r.db.QueryRow(ctx, query).Scan(dest...); err != nil {
		return nil, fmt.Errorf("balance sums by currency: %w", err)
	}

	sums := make(map[domain.Currency]decimal.Decimal, len(currencies))
	for i, c := range currencies {
		value, err := decimal.NewFromString(raw[i])
		if err != nil {
			return nil, fmt.Errorf("parse balance sum %q: %w", raw[i], err)
		}
		sums[c] = value
	}
	return sums, nil
}
