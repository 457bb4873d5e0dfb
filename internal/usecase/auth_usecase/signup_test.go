package auth

import (
	"context"
	"testing"
	"time"

	"posadmin/internal/domain/model"
	"posadmin/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newSignupUC(userRepo *UserRepoMock) *SignupUsecase {
	clock := &fixedClock{now: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)}
	return NewSignupUsecase(userRepo, &stubHasher{}, &stubIssuer{}, clock)
}

func TestSignup_MissingFields(t *testing.T) {
	uc := newSignupUC(new(UserRepoMock))

	_, err := uc.Execute(context.Background(), SignupInput{
		Name: "a", Email: "a@example.com", Password: "secret1",
	})
	assertErrIs(t, err, ErrMissingFields)
}

func TestSignup_InvalidEmail(t *testing.T) {
	uc := newSignupUC(new(UserRepoMock))

	_, err := uc.Execute(context.Background(), SignupInput{
		Name: "a", PhoneNumber: "090", Email: "not-an-email", Password: "secret1",
	})
	assertErrIs(t, err, ErrInvalidEmailFormat)
}

func TestSignup_PasswordTooShort(t *testing.T) {
	uc := newSignupUC(new(UserRepoMock))

	_, err := uc.Execute(context.Background(), SignupInput{
		Name: "a", PhoneNumber: "090", Email: "a@example.com", Password: "12345",
	})
	assertErrIs(t, err, ErrPasswordTooShort)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	userRepo := new(UserRepoMock)
	userRepo.On("FindByEmail", mock.Anything, "a@example.com").Return(&model.User{ID: 1}, nil)

	uc := newSignupUC(userRepo)

	_, err := uc.Execute(context.Background(), SignupInput{
		Name: "a", PhoneNumber: "090", Email: "a@example.com", Password: "secret1",
	})
	assertErrIs(t, err, ErrEmailAlreadyExists)

	userRepo.AssertNotCalled(t, "Create")
}

func TestSignup_DefaultRoleIsEmployee(t *testing.T) {
	userRepo := new(UserRepoMock)
	userRepo.On("FindByEmail", mock.Anything, "a@example.com").Return((*model.User)(nil), repository.ErrUserNotFound)
	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Role == model.RoleEmployee && u.Email == "a@example.com" && u.PasswordHash == "hashed:secret1"
	})).Return(nil)

	uc := newSignupUC(userRepo)

	out, err := uc.Execute(context.Background(), SignupInput{
		Name: "a", PhoneNumber: "090", Email: "A@Example.com ", Password: "secret1",
	})
	assert.NoError(t, err)

	assert.Equal(t, model.RoleEmployee, out.User.Role)
	assert.Equal(t, "token", out.Token)
	// レスポンスにハッシュは載せない
	assert.Equal(t, "", out.User.PasswordHash)

	userRepo.AssertExpectations(t)
}

func TestSignup_ExplicitAdminRole(t *testing.T) {
	userRepo := new(UserRepoMock)
	userRepo.On("FindByEmail", mock.Anything, "boss@example.com").Return((*model.User)(nil), repository.ErrUserNotFound)
	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Role == model.RoleAdmin
	})).Return(nil)

	uc := newSignupUC(userRepo)

	out, err := uc.Execute(context.Background(), SignupInput{
		Name: "boss", PhoneNumber: "080", Email: "boss@example.com", Password: "secret1", Role: "admin",
	})
	assert.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, out.User.Role)
}

// "ADMIN"や"Admin"では昇格しない。"admin"の完全一致だけ。
func TestSignup_RoleStringMustMatchExactly(t *testing.T) {
	userRepo := new(UserRepoMock)
	userRepo.On("FindByEmail", mock.Anything, mock.Anything).Return((*model.User)(nil), repository.ErrUserNotFound)
	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Role == model.RoleEmployee
	})).Return(nil)

	uc := newSignupUC(userRepo)

	out, err := uc.Execute(context.Background(), SignupInput{
		Name: "a", PhoneNumber: "090", Email: "a@example.com", Password: "secret1", Role: "Admin",
	})
	assert.NoError(t, err)
	assert.Equal(t, model.RoleEmployee, out.User.Role)
}
