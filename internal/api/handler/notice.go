package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ayo6706/wallet-ledger/internal/service"
)

const defaultNoticeLimit = 20

type NoticeHandler struct {
	svc *service.NoticeService
}

func NewNoticeHandler(svc *service.NoticeService) *NoticeHandler {
	return &NoticeHandler{svc: svc}
}

func (h *NoticeHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUser(r)
	if err != nil {
		RespondError(w, r, http.StatusUnauthorized, "auth/unauthorized", "Unauthorized")
		return
	}

	limit := defaultNoticeLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	notices, err := h.svc.List(r.Context(), userID, limit)
	if err != nil {
		zap.L().Error("list notices failed", zap.Error(err), zap.Int64("user_id", userID))
		RespondError(w, r, http.StatusInternalServerError, "notices/read-failed", "Failed to list notices")
		return
	}

	RespondJSON(w, http.StatusOK, map[string]interface{}{"notices": notices})
}

// MarkRead flips the is-read flag of one of the caller's notices.
func (h *NoticeHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUser(r)
	if err != nil {
		RespondError(w, r, http.StatusUnauthorized, "auth/unauthorized", "Unauthorized")
		return
	}

	noticeID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		RespondError(w, r, http.StatusBadRequest, "request/invalid-notice-id", "Invalid notice id")
		return
	}

	if err := h.svc.MarkRead(r.Context(), userID, noticeID); err != nil {
		if status, pType, ok := mapDomainError(err); ok {
			RespondError(w, r, status, pType, "notice not found")
			return
		}
		zap.L().Error("mark notice read failed", zap.Error(err), zap.Int64("user_id", userID), zap.Int64("notice_id", noticeID))
		RespondError(w, r, http.StatusInternalServerError, "notices/update-failed", "Failed to update notice")
		return
	}

	RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
