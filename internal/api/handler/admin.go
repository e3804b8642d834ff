package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"

	"github.com/ayo6706/wallet-ledger/internal/service"
)

const defaultAdminLedgerLimit = 100

// AdminHandler backs the admin panel. Every route behind it passes the
// RequireAdmin middleware, which re-checks the persisted flag.
type AdminHandler struct {
	svc *service.AdminService
}

func NewAdminHandler(svc *service.AdminService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		zap.L().Error("admin list users failed", zap.Error(err))
		RespondError(w, r, http.StatusInternalServerError, "admin/users-read-failed", "Failed to list users")
		return
	}
	RespondJSON(w, http.StatusOK, map[string]interface{}{"users": users})
}

func (h *AdminHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	limit := defaultAdminLedgerLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 1000 {
			limit = n
		}
	}

	entries, err := h.svc.ListTransactions(r.Context(), limit)
	if err != nil {
		zap.L().Error("admin list transactions failed", zap.Error(err))
		RespondError(w, r, http.StatusInternalServerError, "admin/transactions-read-failed", "Failed to list transactions")
		return
	}
	RespondJSON(w, http.StatusOK, map[string]interface{}{"transactions": entries})
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		zap.L().Error("admin stats failed", zap.Error(err))
		RespondError(w, r, http.StatusInternalServerError, "admin/stats-failed", "Failed to compute stats")
		return
	}
	RespondJSON(w, http.StatusOK, stats)
}

// ResolveTransaction moves a pending ledger entry to completed or failed.
func (h *AdminHandler) ResolveTransaction(w http.ResponseWriter, r *http.Request) {
	ledgerID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		RespondError(w, r, http.StatusBadRequest, "request/invalid-transaction-id", "Invalid transaction id")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, r, http.StatusBadRequest, "request/invalid-body", "Invalid request body")
		return
	}

	if err := h.svc.ResolveTransaction(r.Context(), ledgerID, req.Status); err != nil {
		if status, pType, ok := mapDomainError(err); ok {
			RespondError(w, r, status, pType, err.Error())
			return
		}
		zap.L().Error("resolve transaction failed", zap.Error(err), zap.Int64("ledger_id", ledgerID))
		RespondError(w, r, http.StatusInternalServerError, "admin/resolve-failed", "Failed to update transaction")
		return
	}

	RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Credit records an external deposit to a user's balance.
func (h *AdminHandler) Credit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID      int64           `json:"user_id"`
		Currency    string          `json:"currency"`
		Amount      json.RawMessage `json:"amount"`
		Description string          `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, r, http.StatusBadRequest, "request/invalid-body", "Invalid request body")
		return
	}
	if req.UserID <= 0 {
		RespondError(w, r, http.StatusBadRequest, "request/invalid-user-id", "Invalid user_id")
		return
	}

	entry, err := h.svc.Credit(r.Context(), req.UserID, req.Currency, amountString(req.Amount), req.Description)
	if err != nil {
		if status, pType, ok := mapDomainError(err); ok {
			RespondError(w, r, status, pType, err.Error())
			return
		}
		if status, pType, msg, ok := mapDBError(err); ok {
			RespondError(w, r, status, pType, msg)
			return
		}
		zap.L().Error("admin credit failed", zap.Error(err), zap.Int64("user_id", req.UserID))
		RespondError(w, r, http.StatusInternalServerError, "admin/credit-failed", "Failed to credit account")
		return
	}

	RespondJSON(w, http.StatusCreated, entry)
}
