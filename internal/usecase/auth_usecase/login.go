package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"posadmin/internal/domain/model"
	"posadmin/internal/repository"
)

// handlerからusecaseに渡す入力。
// Loginはメールでも電話番号でもよい。
type LoginInput struct {
	Login    string
	Password string
}

type LoginOutput struct {
	User      model.User `json:"user"`
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// メールまたはパスワードが違う
var ErrInvalidCredentials = errors.New("invalid login credentials")

type LoginUsecase struct {
	userRepo repository.UserRepository
	verifier PasswordVerifier
	issuer   AccessTokenIssuer
	clock    Clock
}

func NewLoginUsecase(
	userRepo repository.UserRepository,
	verifier PasswordVerifier,
	issuer AccessTokenIssuer,
	clock Clock,
) *LoginUsecase {
	return &LoginUsecase{
		userRepo: userRepo,
		verifier: verifier,
		issuer:   issuer,
		clock:    clock,
	}
}

// ログイン処理を実行する
func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (LoginOutput, error) {
	var out LoginOutput

	login := strings.TrimSpace(in.Login)
	if login == "" || in.Password == "" {
		return out, ErrInvalidCredentials
	}

	//メールか電話番号でユーザー取得。
	//見つからない理由は外に漏らさない（同じエラーで返す）。
	user, err := u.userRepo.FindByEmailOrPhone(ctx, strings.ToLower(login))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return out, ErrInvalidCredentials
		}
		return out, err
	}

	//パスワード照合
	if ok := u.verifier.Verify(in.Password, user.PasswordHash); !ok {
		return out, ErrInvalidCredentials
	}

	//AccessToken発行
	now := u.clock.Now()
	token, expiresAt, err := u.issuer.Issue(user.ID, user.Role, user.Name, now)
	if err != nil {
		return out, err
	}

	safeUser := *user
	safeUser.PasswordHash = ""

	out.User = safeUser
	out.Token = token
	out.ExpiresAt = expiresAt
	return out, nil
}
