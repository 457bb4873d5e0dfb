package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"posadmin/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Repository mocks
// =====================

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmailOrPhone(ctx context.Context, login string) (*model.User, error) {
	args := m.Called(ctx, login)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) UpdatePasswordHash(ctx context.Context, userID int64, passwordHash string) error {
	args := m.Called(ctx, userID, passwordHash)
	return args.Error(0)
}

type ResetRepoMock struct{ mock.Mock }

func (m *ResetRepoMock) Create(ctx context.Context, reset *model.PasswordReset) error {
	args := m.Called(ctx, reset)
	return args.Error(0)
}

func (m *ResetRepoMock) FindActiveByUserID(ctx context.Context, userID int64, now time.Time) (*model.PasswordReset, error) {
	args := m.Called(ctx, userID, now)
	r, _ := args.Get(0).(*model.PasswordReset)
	return r, args.Error(1)
}

func (m *ResetRepoMock) MarkUsed(ctx context.Context, resetID string, usedAt time.Time) error {
	args := m.Called(ctx, resetID, usedAt)
	return args.Error(0)
}

// =====================
// Port fakes
// =====================

// ハッシュの中身は問わず、呼び出しの向きだけ検証できる素朴な実装
type stubHasher struct{}

func (h *stubHasher) Hash(plain string) (string, error) {
	return "hashed:" + plain, nil
}

type stubVerifier struct{}

func (v *stubVerifier) Verify(plain string, hashed string) bool {
	return hashed == "hashed:"+plain
}

type stubIssuer struct{}

func (i *stubIssuer) Issue(userID int64, role model.Role, name string, now time.Time) (string, time.Time, error) {
	return "token", now.Add(7 * 24 * time.Hour), nil
}

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time {
	return c.now
}

type seqIDGen struct{ next string }

func (g *seqIDGen) NewID() string {
	return g.next
}

type MailerMock struct{ mock.Mock }

func (m *MailerMock) Send(to string, subject string, body string) error {
	args := m.Called(to, subject, body)
	return args.Error(0)
}

func assertErrIs(t *testing.T, err error, want error) {
	t.Helper()
	if assert.Error(t, err) {
		assert.True(t, strings.Contains(err.Error(), want.Error()), "err=%q want %q", err.Error(), want.Error())
	}
}
