package auth

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"posadmin/internal/domain/model"
	"posadmin/internal/repository"
)

// サインアップの入力
type SignupInput struct {
	Name        string
	PhoneNumber string
	Email       string
	Password    string
	Role        string // "admin"を明示したときだけ管理者、それ以外はEMPLOYEE
}

// handlerがJSONにして返す
type SignupOutput struct {
	User      model.User `json:"user"`
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
}

var (
	// 入力が不正
	ErrMissingFields      = errors.New("name, phone, email and password are required")
	ErrInvalidEmailFormat = errors.New("invalid email format")
	ErrPasswordTooShort   = errors.New("password too short")

	// 競合
	ErrEmailAlreadyExists = errors.New("email already in use")
)

// SignupUsecaseはスタッフ登録の処理。
type SignupUsecase struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	issuer   AccessTokenIssuer
	clock    Clock
}

// DI
func NewSignupUsecase(
	userRepo repository.UserRepository,
	hasher PasswordHasher,
	issuer AccessTokenIssuer,
	clock Clock,
) *SignupUsecase {
	return &SignupUsecase{
		userRepo: userRepo,
		hasher:   hasher,
		issuer:   issuer,
		clock:    clock,
	}
}

func (u *SignupUsecase) Execute(ctx context.Context, in SignupInput) (SignupOutput, error) {
	var out SignupOutput

	name := strings.TrimSpace(in.Name)
	phone := strings.TrimSpace(in.PhoneNumber)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if name == "" || phone == "" || email == "" || in.Password == "" {
		return out, ErrMissingFields
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return out, ErrInvalidEmailFormat
	}
	if len(in.Password) < 6 {
		return out, ErrPasswordTooShort
	}

	//email重複チェック
	existing, err := u.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return out, ErrEmailAlreadyExists
	}
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return out, err
	}

	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return out, err
	}

	//"admin"を明示したときだけ管理者
	role := model.RoleEmployee
	if in.Role == "admin" {
		role = model.RoleAdmin
	}

	now := u.clock.Now()
	user := &model.User{
		Name:         name,
		PhoneNumber:  phone,
		Email:        email,
		PasswordHash: hashed,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		return out, err
	}

	token, expiresAt, err := u.issuer.Issue(user.ID, user.Role, user.Name, now)
	if err != nil {
		return out, err
	}

	//返すときはハッシュを空にして漏洩防止
	safeUser := *user
	safeUser.PasswordHash = ""

	out.User = safeUser
	out.Token = token
	out.ExpiresAt = expiresAt
	return out, nil
}
