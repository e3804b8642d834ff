package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ayo6706/wallet-ledger/internal/domain"
	"github.com/ayo6706/wallet-ledger/internal/models"
)

const minPasswordLen = 8

var inactiveStatusMessages = map[string]string{
	domain.UserStatusSuspended: "Your account has been suspended. Please contact support.",
	domain.UserStatusBlocked:   "Your account has been blocked. Please contact support.",
	domain.UserStatusPending:   "Your account is pending activation. Please check your email.",
}

// AuthService handles registration, login and token-holder resolution.
type AuthService struct {
	users   UserStore
	notices NoticeEmitter
}

func NewAuthService(users UserStore, notices NoticeEmitter) *AuthService {
	return &AuthService{users: users, notices: notices}
}

// Register creates a user with zeroed balances and a welcome notice.
func (s *AuthService) Register(ctx context.Context, email, password, ip string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email address", domain.ErrInvalidRequest)
	}
	if len(password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidRequest, minPasswordLen)
	}

	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		Status:       domain.UserStatusActive,
		KYCStatus:    "none",
		LoginIP:      ip,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	if err := s.notices.Notify(ctx, user.ID, domain.NoticeTypeSystem, "Welcome to CryptoApp", "Thank you for joining!"); err != nil {
		zap.L().Warn("welcome notice failed", zap.Error(err), zap.Int64("user_id", user.ID))
	}
	return user, nil
}

// Login verifies credentials and records the login. Inactive accounts are
// refused with a status-specific message.
func (s *AuthService) Login(ctx context.Context, email, password, ip string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := requireActive(user); err != nil {
		return nil, err
	}
	if err := s.users.RecordLogin(ctx, user.ID, ip); err != nil {
		zap.L().Warn("record login failed", zap.Error(err), zap.Int64("user_id", user.ID))
	}
	return user, nil
}

// Verify resolves an authenticated user id into a fresh snapshot, applying
// the same account-status gate as login. Token claims can go stale; the
// persisted status wins.
func (s *AuthService) Verify(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		// A token whose subject no longer exists is a dead credential.
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if err := requireActive(user); err != nil {
		return nil, err
	}
	return user, nil
}

func requireActive(user *models.User) error {
	if user.Status == domain.UserStatusActive {
		return nil
	}
	msg, ok := inactiveStatusMessages[user.Status]
	if !ok {
		msg = "Account inactive"
	}
	return fmt.Errorf("%w: %s", domain.ErrAccountInactive, msg)
}
