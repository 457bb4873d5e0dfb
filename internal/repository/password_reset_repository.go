package repository

import (
	"context"
	"time"

	"posadmin/internal/domain/model"
)

// パスワード再設定OTPの保存・取得・消費の約束。
type PasswordResetRepository interface {
	Create(ctx context.Context, reset *model.PasswordReset) error

	//ユーザーの未使用・未期限切れのOTPを新しい順で1件返す。
	FindActiveByUserID(ctx context.Context, userID int64, now time.Time) (*model.PasswordReset, error)

	//使用済みにする。二度は使えない。
	MarkUsed(ctx context.Context, resetID string, usedAt time.Time) error
}
