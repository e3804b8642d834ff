package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/ayo6706/wallet-ledger/internal/api/middleware"
	"github.com/ayo6706/wallet-ledger/internal/service"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, r, http.StatusBadRequest, "request/invalid-body", "Invalid request body")
		return
	}

	user, err := h.svc.Register(r.Context(), req.Email, req.Password, clientIP(r))
	if err != nil {
		if status, pType, ok := mapDomainError(err); ok {
			RespondError(w, r, status, pType, err.Error())
			return
		}
		if status, pType, msg, ok := mapDBError(err); ok {
			RespondError(w, r, status, pType, msg)
			return
		}
		zap.L().Error("register failed", zap.Error(err))
		RespondError(w, r, http.StatusInternalServerError, "auth/register-failed", "Failed to register")
		return
	}

	token, err := middleware.IssueToken(user.ID, user.IsAdmin)
	if err != nil {
		zap.L().Error("token sign failed", zap.Error(err), zap.Int64("user_id", user.ID))
		RespondError(w, r, http.StatusInternalServerError, "auth/token-sign-failed", "Failed to sign token")
		return
	}

	RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, r, http.StatusBadRequest, "request/invalid-body", "Invalid request body")
		return
	}

	user, err := h.svc.Login(r.Context(), req.Email, req.Password, clientIP(r))
	if err != nil {
		if status, pType, ok := mapDomainError(err); ok {
			RespondError(w, r, status, pType, err.Error())
			return
		}
		zap.L().Error("login failed", zap.Error(err))
		RespondError(w, r, http.StatusInternalServerError, "auth/login-failed", "Failed to log in")
		return
	}

	token, err := middleware.IssueToken(user.ID, user.IsAdmin)
	if err != nil {
		zap.L().Error("token sign failed", zap.Error(err), zap.Int64("user_id", user.ID))
		RespondError(w, r, http.StatusInternalServerError, "auth/token-sign-failed", "Failed to sign token")
		return
	}

	RespondJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// Verify resolves the bearer token into a fresh user snapshot.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUser(r)
	if err != nil {
		RespondError(w, r, http.StatusUnauthorized, "auth/unauthorized", "Unauthorized")
		return
	}

	user, err := h.svc.Verify(r.Context(), userID)
	if err != nil {
		if status, pType, ok := mapDomainError(err); ok {
			RespondError(w, r, status, pType, err.Error())
			return
		}
		zap.L().Error("verify failed", zap.Error(err), zap.Int64("user_id", userID))
		RespondError(w, r, http.StatusInternalServerError, "auth/verify-failed", "Failed to verify token")
		return
	}

	RespondJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}
