package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ayo6706/wallet-ledger/internal/domain"
	"github.com/ayo6706/wallet-ledger/internal/models"
)

type memUsers struct {
	byEmail map[string]*models.User
	nextID  int64
	logins  []int64
}

func newMemUsers() *memUsers {
	return &memUsers{byEmail: make(map[string]*models.User)}
}

func (m *memUsers) CreateUser(ctx context.Context, user *models.User) error {
	m.nextID++
	user.ID = m.nextID
	user.CreatedAt = time.Now()
	m.byEmail[user.Email] = user
	return nil
}

func (m *memUsers) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if user, ok := m.byEmail[email]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *memUsers) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	for _, user := range m.byEmail {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *memUsers) RecordLogin(ctx context.Context, id int64, ip string) error {
	m.logins = append(m.logins, id)
	return nil
}

func newAuthFixture() (*AuthService, *memUsers, *memNotices) {
	users := newMemUsers()
	notices := &memNotices{}
	return NewAuthService(users, notices), users, notices
}

func TestRegisterCreatesUserWithWelcomeNotice(t *testing.T) {
	svc, users, notices := newAuthFixture()

	user, err := svc.Register(context.Background(), "Alice@Example.com", "hunter2abc", "203.0.113.9")
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, domain.UserStatusActive, user.Status)
	assert.NotEqual(t, "hunter2abc", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter2abc")))

	_, ok := users.byEmail["alice@example.com"]
	assert.True(t, ok)

	noted := notices.all()
	require.Len(t, noted, 1)
	assert.Equal(t, domain.NoticeTypeSystem, noted[0].Type)
	assert.Equal(t, "Welcome to CryptoApp", noted[0].Title)
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newAuthFixture()

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{name: "invalid email", email: "not-an-email", password: "hunter2abc"},
		{name: "empty email", email: "", password: "hunter2abc"},
		{name: "short password", email: "bob@example.com", password: "short"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.email, tc.password, "")
			assert.ErrorIs(t, err, domain.ErrInvalidRequest)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), "carol@example.com", "hunter2abc", "")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "CAROL@example.com", "different1", "")
	assert.ErrorIs(t, err, domain.ErrUserExists)
}

func TestLogin(t *testing.T) {
	svc, users, _ := newAuthFixture()
	registered, err := svc.Register(context.Background(), "dave@example.com", "hunter2abc", "")
	require.NoError(t, err)

	user, err := svc.Login(context.Background(), "dave@example.com", "hunter2abc", "203.0.113.9")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.Contains(t, users.logins, registered.ID)

	_, err = svc.Login(context.Background(), "dave@example.com", "wrongpass1", "")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	// Unknown email gets the same error as a wrong password.
	_, err = svc.Login(context.Background(), "nobody@example.com", "hunter2abc", "")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginRefusesInactiveAccounts(t *testing.T) {
	svc, users, _ := newAuthFixture()
	_, err := svc.Register(context.Background(), "erin@example.com", "hunter2abc", "")
	require.NoError(t, err)

	cases := []struct {
		status  string
		message string
	}{
		{status: domain.UserStatusSuspended, message: "suspended"},
		{status: domain.UserStatusBlocked, message: "blocked"},
		{status: domain.UserStatusPending, message: "pending activation"},
	}
	for _, tc := range cases {
		t.Run(tc.status, func(t *testing.T) {
			users.byEmail["erin@example.com"].Status = tc.status
			_, err := svc.Login(context.Background(), "erin@example.com", "hunter2abc", "")
			require.ErrorIs(t, err, domain.ErrAccountInactive)
			assert.Contains(t, err.Error(), tc.message)
		})
	}
}

func TestVerifyAppliesStatusGate(t *testing.T) {
	svc, users, _ := newAuthFixture()
	registered, err := svc.Register(context.Background(), "frank@example.com", "hunter2abc", "")
	require.NoError(t, err)

	user, err := svc.Verify(context.Background(), registered.ID)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	users.byEmail["frank@example.com"].Status = domain.UserStatusBlocked
	_, err = svc.Verify(context.Background(), registered.ID)
	assert.ErrorIs(t, err, domain.ErrAccountInactive)

	// A token for a user that no longer exists is refused, without
	// leaking whether the account ever existed.
	_, err = svc.Verify(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
