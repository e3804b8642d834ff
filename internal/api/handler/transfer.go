package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/ayo6706/wallet-ledger/internal/service"
)

type TransferHandler struct {
	svc *service.TransferService
}

func NewTransferHandler(svc *service.TransferService) *TransferHandler {
	return &TransferHandler{svc: svc}
}

// Create executes a withdrawal transfer for the authenticated user. The
// amount is accepted as a JSON string or number and parsed as an exact
// decimal either way.
func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUser(r)
	if err != nil {
		RespondError(w, r, http.StatusUnauthorized, "auth/unauthorized", "Unauthorized")
		return
	}

	var req struct {
		Currency string          `json:"currency"`
		Amount   json.RawMessage `json:"amount"`
		Address  string          `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, r, http.StatusBadRequest, "request/invalid-body", "Invalid request body")
		return
	}

	entry, err := h.svc.Transfer(r.Context(), userID, req.Currency, amountString(req.Amount), req.Address)
	if err != nil {
		if status, pType, ok := mapDomainError(err); ok {
			RespondError(w, r, status, pType, err.Error())
			return
		}
		zap.L().Error("transfer failed", zap.Error(err), zap.Int64("user_id", userID))
		RespondError(w, r, http.StatusInternalServerError, "wallet/transfer-failed", "Transfer failed")
		return
	}

	RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"transactionId": entry.ID,
	})
}
