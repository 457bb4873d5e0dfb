package repository

import (
	"context"
	"errors"

	"posadmin/internal/domain/model"
)

// ユーザーが見つかりませんを統一
var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	//ログインはメールでも電話番号でもできる。
	FindByEmailOrPhone(ctx context.Context, login string) (*model.User, error)

	//パスワード再設定後のハッシュ差し替え。
	UpdatePasswordHash(ctx context.Context, userID int64, passwordHash string) error
}
