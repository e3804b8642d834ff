package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ayo6706/wallet-ledger/internal/service"
)

type AccountHandler struct {
	svc *service.WalletService
}

func NewAccountHandler(svc *service.WalletService) *AccountHandler {
	return &AccountHandler{svc: svc}
}

// Account renders the dashboard aggregate: balances, recent ledger entries
// and recent notices for the authenticated user.
func (h *AccountHandler) Account(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUser(r)
	if err != nil {
		RespondError(w, r, http.StatusUnauthorized, "auth/unauthorized", "Unauthorized")
		return
	}

	view, err := h.svc.Account(r.Context(), userID)
	if err != nil {
		if status, pType, ok := mapDomainError(err); ok {
			RespondError(w, r, status, pType, err.Error())
			return
		}
		zap.L().Error("account view failed", zap.Error(err), zap.Int64("user_id", userID))
		RespondError(w, r, http.StatusInternalServerError, "account/read-failed", "Failed to load account")
		return
	}

	RespondJSON(w, http.StatusOK, view)
}

// Balance returns one currency balance formatted at the currency's scale.
func (h *AccountHandler) Balance(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUser(r)
	if err != nil {
		RespondError(w, r, http.StatusUnauthorized, "auth/unauthorized", "Unauthorized")
		return
	}

	code := chi.URLParam(r, "currency")
	balance, err := h.svc.Balance(r.Context(), userID, code)
	if err != nil {
		if status, pType, ok := mapDomainError(err); ok {
			RespondError(w, r, status, pType, err.Error())
			return
		}
		zap.L().Error("balance read failed", zap.Error(err), zap.Int64("user_id", userID), zap.String("currency", code))
		RespondError(w, r, http.StatusInternalServerError, "account/balance-read-failed", "Failed to get balance")
		return
	}

	RespondJSON(w, http.StatusOK, map[string]string{"balance": balance})
}
