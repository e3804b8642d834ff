package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ayo6706/wallet-ledger/internal/api/middleware"
	"github.com/ayo6706/wallet-ledger/internal/api/problem"
	"github.com/ayo6706/wallet-ledger/internal/domain"
)

// RespondJSON writes a JSON response.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondError writes an error response.
func RespondError(w http.ResponseWriter, r *http.Request, status int, problemType, message string) {
	if problemType != "" && problemType != "about:blank" && !strings.HasPrefix(problemType, "http") {
		problemType = problem.Type(problemType)
	}
	problem.Write(w, r, status, problemType, http.StatusText(status), message)
}

func requestUser(r *http.Request) (int64, error) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID <= 0 {
		return 0, domain.ErrUnauthorized
	}
	return userID, nil
}

// mapDomainError translates sentinel errors from the service layer into
// status codes and problem slugs. The detail text is the sentinel's wrapped
// message, which is written for end users.
func mapDomainError(err error) (status int, problemType string, ok bool) {
	switch {
	case errors.Is(err, domain.ErrUnsupportedCurrency):
		return http.StatusBadRequest, "wallet/unsupported-currency", true
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest, "wallet/invalid-amount", true
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest, "request/invalid", true
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest, "wallet/insufficient-funds", true
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "auth/invalid-credentials", true
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "auth/unauthorized", true
	case errors.Is(err, domain.ErrAccountInactive):
		return http.StatusForbidden, "auth/account-inactive", true
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "auth/insufficient-permissions", true
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "auth/user-exists", true
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "resource/not-found", true
	case errors.Is(err, domain.ErrContention):
		return http.StatusConflict, "wallet/contention", true
	case errors.Is(err, domain.ErrStorageUnavailable):
		return http.StatusServiceUnavailable, "storage/unavailable", true
	default:
		return 0, "", false
	}
}

func mapDBError(err error) (status int, problemType, message string, ok bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return 0, "", "", false
	}

	switch pgErr.Code {
	case "23505": // unique_violation
		return http.StatusConflict, "db/unique-violation", "resource already exists", true
	case "23503": // foreign_key_violation
		return http.StatusBadRequest, "db/foreign-key-violation", "invalid reference", true
	case "23514": // check_violation
		return http.StatusBadRequest, "db/check-violation", "request violates data constraints", true
	case "23502": // not_null_violation
		return http.StatusBadRequest, "db/not-null-violation", "missing required field", true
	default:
		return 0, "", "", false
	}
}

// amountString accepts an amount sent as either a JSON string or a JSON
// number and returns the bare literal for decimal parsing.
func amountString(raw json.RawMessage) string {
	trimmed := strings.TrimSpace(string(raw))
	if len(trimmed) >= 2 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	return trimmed
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if idx := strings.IndexByte(fwd, ','); idx > 0 {
			return strings.TrimSpace(fwd[:idx])
		}
		return strings.TrimSpace(fwd)
	}
	host := r.RemoteAddr
	if idx := strings.LastIndexByte(host, ':'); idx > 0 {
		host = host[:idx]
	}
	return host
}
